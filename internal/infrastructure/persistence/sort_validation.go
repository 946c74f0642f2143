package persistence

import (
	"strings"

	"github.com/Charan2012-gif/Shopping-App/internal/domain/shared"
	"gorm.io/gorm"
)

// sortColumns whitelists the columns a list may be ordered by. Requests for
// anything else fall back to the default column.
type sortColumns struct {
	fallback string
	allowed  map[string]struct{}
}

// sortable allows id, created_at and updated_at plus columns; lists default
// to newest first.
func sortable(columns ...string) sortColumns {
	s := sortColumns{fallback: "created_at", allowed: make(map[string]struct{}, len(columns)+3)}
	for _, c := range append([]string{"id", "created_at", "updated_at"}, columns...) {
		s.allowed[c] = struct{}{}
	}
	return s
}

var (
	collectionSort = sortable("name", "is_active", "products_count")
	productSort    = sortable("name", "type", "gender", "activity", "collection_id", "is_active")
	customerSort   = sortable("name", "email", "mobile", "role", "is_active")
	couponSort     = sortable("code", "max_usage", "used_count", "is_active", "expiry_date")
	discountSort   = sortable("name", "percent", "is_active", "start_date", "end_date")
	orderSort      = sortable("order_number", "customer_name", "status", "payment_status", "total_mrp", "discount_amount", "final_amount", "confirmed_at", "shipped_at", "delivered_at")
	packageSort    = sortable("package_number", "status", "courier_service", "estimated_delivery", "shipped_at")
)

// column returns requested when it is whitelisted, matching exactly after
// trimming spaces.
func (s sortColumns) column(requested string) string {
	requested = strings.TrimSpace(requested)
	if _, ok := s.allowed[requested]; ok {
		return requested
	}
	return s.fallback
}

// sortDirection accepts asc in any case; everything else sorts descending.
func sortDirection(dir string) string {
	if strings.EqualFold(strings.TrimSpace(dir), "asc") {
		return "ASC"
	}
	return "DESC"
}

// apply pages query and orders it by the requested column, then by id so
// pages stay stable.
func (s sortColumns) apply(query *gorm.DB, filter shared.Filter) *gorm.DB {
	if filter.Page > 0 && filter.PageSize > 0 {
		query = query.Offset(filter.Offset()).Limit(filter.PageSize)
	}
	dir := sortDirection(filter.OrderDir)
	return query.Order(s.column(filter.OrderBy) + " " + dir).Order("id " + dir)
}

// likePattern builds a case-insensitive substring pattern for LOWER(column) LIKE ?
func likePattern(search string) string {
	return "%" + strings.ToLower(strings.TrimSpace(search)) + "%"
}
