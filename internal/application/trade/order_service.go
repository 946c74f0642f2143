package trade

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	promotionapp "github.com/Charan2012-gif/Shopping-App/internal/application/promotion"
	"github.com/Charan2012-gif/Shopping-App/internal/application/uow"
	"github.com/Charan2012-gif/Shopping-App/internal/domain/identity"
	"github.com/Charan2012-gif/Shopping-App/internal/domain/partner"
	"github.com/Charan2012-gif/Shopping-App/internal/domain/promotion"
	"github.com/Charan2012-gif/Shopping-App/internal/domain/shared"
	"github.com/Charan2012-gif/Shopping-App/internal/domain/shared/valueobject"
	"github.com/Charan2012-gif/Shopping-App/internal/domain/trade"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// OrderService handles order placement and the order lifecycle
type OrderService struct {
	orderRepo      trade.OrderRepository
	txScope        uow.TransactionScope
	eventPublisher shared.EventPublisher
	now            func() time.Time
}

// NewOrderService creates a new OrderService
func NewOrderService(orderRepo trade.OrderRepository, txScope uow.TransactionScope) *OrderService {
	return &OrderService{
		orderRepo: orderRepo,
		txScope:   txScope,
		now:       time.Now,
	}
}

// SetEventPublisher sets the event publisher for cross-context integration
func (s *OrderService) SetEventPublisher(publisher shared.EventPublisher) {
	s.eventPublisher = publisher
}

// Create places an order. Stock decrement, coupon redemption and order
// numbering commit together or not at all.
func (s *OrderService) Create(ctx context.Context, req CreateOrderRequest) (*OrderResponse, error) {
	caller, err := identity.Require(ctx)
	if err != nil {
		return nil, err
	}
	customerID := caller.ID
	if req.CustomerID != nil && *req.CustomerID != caller.ID {
		if !caller.IsOwner() {
			return nil, shared.ErrForbidden
		}
		customerID = *req.CustomerID
	}

	lines, err := mergeItems(req.Items)
	if err != nil {
		return nil, err
	}

	var shippingAddress *valueobject.Address
	if req.ShippingAddress != nil {
		addr, err := req.ShippingAddress.ToAddress()
		if err != nil {
			return nil, shared.NewDomainError("INVALID_ADDRESS", err.Error())
		}
		shippingAddress = &addr
	}

	var (
		order  *trade.Order
		coupon *promotion.Coupon
	)
	now := s.now()
	err = s.txScope.Execute(ctx, func(repos uow.TransactionalRepositories) error {
		customer, err := findCustomer(ctx, repos.Customers(), customerID)
		if err != nil {
			return err
		}
		if !customer.IsActive {
			return shared.NewDomainError("CUSTOMER_INACTIVE", "Customer account is inactive")
		}

		items := make([]trade.LineItem, 0, len(lines))
		for _, line := range lines {
			item, err := reserveItem(ctx, repos, line)
			if err != nil {
				return err
			}
			items = append(items, item)
		}
		subtotal := trade.TotalMRP(items)

		discount := decimal.Zero
		couponCode := ""
		if code := strings.TrimSpace(req.CouponCode); code != "" {
			coupon, err = promotionapp.FindCoupon(ctx, repos.Coupons(), code)
			if err != nil {
				return err
			}
			discount, err = coupon.ValidateFor(subtotal, customer.ID, customer.IsActive, now)
			if err != nil {
				return err
			}
			couponCode = coupon.Code
		}

		seq, err := repos.Sequences().Next(ctx, trade.SequenceOrder)
		if err != nil {
			return fmt.Errorf("next order number: %w", err)
		}

		address := customer.Address
		if shippingAddress != nil {
			address = *shippingAddress
		}
		order, err = trade.NewOrder(trade.OrderDraft{
			OrderNumber:     trade.FormatNumber(trade.PrefixOrder, now, seq),
			CustomerID:      customer.ID,
			CustomerName:    customer.Name,
			Items:           items,
			CouponCode:      couponCode,
			DiscountAmount:  discount,
			ShippingAddress: address,
			PaymentMethod:   trade.PaymentMethod(req.PaymentMethod),
		})
		if err != nil {
			return err
		}
		if err := repos.Orders().Save(ctx, order); err != nil {
			return err
		}

		if coupon != nil {
			usage, err := coupon.RecordUsage(customer.ID, order.ID, now)
			if err != nil {
				return err
			}
			if err := repos.Coupons().RecordUsage(ctx, usage); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.publishEvents(ctx, order)
	if coupon != nil {
		s.publishEvents(ctx, coupon)
	}

	response := ToOrderResponse(order)
	return &response, nil
}

// GetByID retrieves an order. Customers only see their own orders.
func (s *OrderService) GetByID(ctx context.Context, id uuid.UUID) (*OrderResponse, error) {
	order, err := s.orderRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := authorizeOrder(ctx, order); err != nil {
		return nil, err
	}
	response := ToOrderResponse(order)
	return &response, nil
}

// GetByNumber retrieves an order by its display number
func (s *OrderService) GetByNumber(ctx context.Context, orderNumber string) (*OrderResponse, error) {
	order, err := s.orderRepo.FindByNumber(ctx, strings.TrimSpace(orderNumber))
	if err != nil {
		return nil, err
	}
	if err := authorizeOrder(ctx, order); err != nil {
		return nil, err
	}
	response := ToOrderResponse(order)
	return &response, nil
}

// List retrieves orders with filtering and pagination.
// Customers are restricted to their own orders whatever the filter says.
func (s *OrderService) List(ctx context.Context, filter OrderListFilter) ([]OrderResponse, int64, error) {
	domainFilter := shared.DefaultFilter()
	if filter.Page > 0 {
		domainFilter.Page = filter.Page
	}
	if filter.PageSize > 0 {
		domainFilter.PageSize = filter.PageSize
	}
	if filter.OrderBy != "" {
		domainFilter.OrderBy = filter.OrderBy
	}
	if filter.OrderDir != "" {
		domainFilter.OrderDir = filter.OrderDir
	}
	domainFilter.Search = filter.Search
	if filter.Status != "" {
		domainFilter.Filters["status"] = filter.Status
	}
	if filter.PaymentStatus != "" {
		domainFilter.Filters["payment_status"] = filter.PaymentStatus
	}
	if filter.CustomerID != nil {
		domainFilter.Filters["customer_id"] = *filter.CustomerID
	}
	if filter.From != nil {
		domainFilter.Filters["from"] = *filter.From
	}
	if filter.To != nil {
		domainFilter.Filters["to"] = *filter.To
	}
	if caller, ok := identity.FromContext(ctx); ok && !caller.IsOwner() {
		domainFilter.Filters["customer_id"] = caller.ID
	}

	orders, err := s.orderRepo.FindAll(ctx, domainFilter)
	if err != nil {
		return nil, 0, err
	}
	total, err := s.orderRepo.Count(ctx, domainFilter)
	if err != nil {
		return nil, 0, err
	}

	responses := make([]OrderResponse, len(orders))
	for i := range orders {
		responses[i] = ToOrderResponse(&orders[i])
	}
	return responses, total, nil
}

// UpdateStatus moves an order along its lifecycle. Cancelling goes through Cancel.
func (s *OrderService) UpdateStatus(ctx context.Context, id uuid.UUID, req UpdateOrderStatusRequest) (*OrderResponse, error) {
	target := trade.OrderStatus(req.Status)
	if target == trade.OrderStatusCancelled {
		return s.Cancel(ctx, id, CancelOrderRequest{Reason: req.Reason})
	}

	var order *trade.Order
	err := s.txScope.Execute(ctx, func(repos uow.TransactionalRepositories) error {
		var err error
		order, err = repos.Orders().FindByID(ctx, id)
		if err != nil {
			return err
		}
		if err := order.UpdateStatus(target, req.TrackingID); err != nil {
			return err
		}
		return repos.Orders().Save(ctx, order)
	})
	if err != nil {
		return nil, err
	}
	s.publishEvents(ctx, order)

	response := ToOrderResponse(order)
	return &response, nil
}

// Cancel cancels an order and returns its units to stock in the same transaction.
// Customers may cancel their own orders while they are still pending.
func (s *OrderService) Cancel(ctx context.Context, id uuid.UUID, req CancelOrderRequest) (*OrderResponse, error) {
	var order *trade.Order
	err := s.txScope.Execute(ctx, func(repos uow.TransactionalRepositories) error {
		var err error
		order, err = repos.Orders().FindByID(ctx, id)
		if err != nil {
			return err
		}
		if caller, ok := identity.FromContext(ctx); ok && !caller.IsOwner() {
			if order.CustomerID != caller.ID {
				return shared.ErrNotFound
			}
			if order.Status != trade.OrderStatusPending {
				return shared.NewDomainError("INVALID_STATE", "Only pending orders can be cancelled by the customer")
			}
		}
		if err := order.Cancel(req.Reason); err != nil {
			return err
		}
		for _, item := range order.Items {
			if err := repos.Variants().IncrementStock(ctx, item.VariantID, item.Quantity); err != nil {
				if errors.Is(err, shared.ErrNotFound) {
					// variant removed with its product; nothing to restock
					continue
				}
				return err
			}
		}
		return repos.Orders().Save(ctx, order)
	})
	if err != nil {
		return nil, err
	}
	s.publishEvents(ctx, order)

	response := ToOrderResponse(order)
	return &response, nil
}

// UpdatePaymentStatus records a payment status change
func (s *OrderService) UpdatePaymentStatus(ctx context.Context, id uuid.UUID, req UpdatePaymentStatusRequest) (*OrderResponse, error) {
	var order *trade.Order
	err := s.txScope.Execute(ctx, func(repos uow.TransactionalRepositories) error {
		var err error
		order, err = repos.Orders().FindByID(ctx, id)
		if err != nil {
			return err
		}
		if err := order.SetPaymentStatus(trade.PaymentStatus(req.PaymentStatus)); err != nil {
			return err
		}
		return repos.Orders().Save(ctx, order)
	})
	if err != nil {
		return nil, err
	}
	s.publishEvents(ctx, order)

	response := ToOrderResponse(order)
	return &response, nil
}

// mergeItems folds repeated variants into one line, keeping first-seen order
func mergeItems(items []OrderItemRequest) ([]OrderItemRequest, error) {
	if len(items) == 0 {
		return nil, shared.NewDomainError("NO_ITEMS", "Order must contain at least one item")
	}
	index := make(map[uuid.UUID]int, len(items))
	merged := make([]OrderItemRequest, 0, len(items))
	for _, item := range items {
		if item.VariantID == uuid.Nil {
			return nil, shared.NewDomainError("INVALID_ITEM", "Variant ID is required")
		}
		if item.Quantity < 1 {
			return nil, shared.NewDomainError("INVALID_QUANTITY", "Quantity must be at least 1")
		}
		if i, ok := index[item.VariantID]; ok {
			merged[i].Quantity += item.Quantity
			continue
		}
		index[item.VariantID] = len(merged)
		merged = append(merged, item)
	}
	return merged, nil
}

// reserveItem snapshots a line and takes its units out of stock
func reserveItem(ctx context.Context, repos uow.TransactionalRepositories, line OrderItemRequest) (trade.LineItem, error) {
	variant, err := repos.Variants().FindByID(ctx, line.VariantID)
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return trade.LineItem{}, shared.NewDomainError("VARIANT_NOT_FOUND",
				fmt.Sprintf("Variant %s not found", line.VariantID))
		}
		return trade.LineItem{}, err
	}
	product, err := repos.Products().FindByID(ctx, variant.ProductID)
	if err != nil {
		return trade.LineItem{}, err
	}
	if !product.IsActive {
		return trade.LineItem{}, shared.NewDomainError("PRODUCT_INACTIVE",
			fmt.Sprintf("Product %s is no longer available", product.Name))
	}

	item, err := trade.NewLineItem(product, variant, line.Quantity)
	if err != nil {
		return trade.LineItem{}, err
	}
	if err := repos.Variants().DecrementStock(ctx, variant.ID, line.Quantity); err != nil {
		if errors.Is(err, shared.ErrInsufficientStock) {
			return trade.LineItem{}, shared.NewDomainError("INSUFFICIENT_STOCK",
				fmt.Sprintf("Only %d left of %s (%s, %s)", variant.Quantity, product.Name, variant.Size, variant.Color))
		}
		return trade.LineItem{}, err
	}
	return item, nil
}

func findCustomer(ctx context.Context, repo partner.CustomerRepository, id uuid.UUID) (*partner.Customer, error) {
	customer, err := repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return nil, shared.NewDomainError("CUSTOMER_NOT_FOUND", "Customer not found")
		}
		return nil, err
	}
	return customer, nil
}

// authorizeOrder hides other customers' orders behind NOT_FOUND
func authorizeOrder(ctx context.Context, order *trade.Order) error {
	caller, ok := identity.FromContext(ctx)
	if !ok {
		return nil
	}
	if !caller.CanAccessCustomer(order.CustomerID) {
		return shared.ErrNotFound
	}
	return nil
}

func (s *OrderService) publishEvents(ctx context.Context, aggregates ...shared.AggregateRoot) {
	shared.PublishPending(ctx, s.eventPublisher, aggregates...)
}
