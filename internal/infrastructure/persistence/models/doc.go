// Package models contains GORM-specific persistence models that map to database tables.
// These models are separate from domain entities to keep the domain layer pure and free
// from ORM concerns.
//
// Structure:
//   - base.go: AggregateModel, the columns shared by aggregate tables
//   - json.go: JSON column type for slices and maps
//   - catalog.go: collections, products, variants
//   - partner.go: customers
//   - promotion.go: coupons, coupon usages, discounts
//   - trade.go: orders, order items, packages, sequences
package models
