package trade

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/Charan2012-gif/Shopping-App/internal/application/uow"
	"github.com/Charan2012-gif/Shopping-App/internal/domain/shared"
	"github.com/Charan2012-gif/Shopping-App/internal/domain/trade"
	"github.com/google/uuid"
)

// PackingSlip is everything printed on the slip that travels with a package
type PackingSlip struct {
	Package     PackageResponse
	Orders      []OrderResponse
	GeneratedAt time.Time
}

// PackingSlipRenderer turns a packing slip into a printable document
type PackingSlipRenderer interface {
	RenderPackingSlip(ctx context.Context, slip PackingSlip) ([]byte, error)
}

// PackageService groups orders into shipments and tracks them
type PackageService struct {
	packageRepo    trade.PackageRepository
	orderRepo      trade.OrderRepository
	txScope        uow.TransactionScope
	renderer       PackingSlipRenderer
	eventPublisher shared.EventPublisher
	now            func() time.Time
}

// NewPackageService creates a new PackageService
func NewPackageService(packageRepo trade.PackageRepository, orderRepo trade.OrderRepository, txScope uow.TransactionScope) *PackageService {
	return &PackageService{
		packageRepo: packageRepo,
		orderRepo:   orderRepo,
		txScope:     txScope,
		now:         time.Now,
	}
}

// SetEventPublisher sets the event publisher for cross-context integration
func (s *PackageService) SetEventPublisher(publisher shared.EventPublisher) {
	s.eventPublisher = publisher
}

// SetRenderer sets the packing slip renderer
func (s *PackageService) SetRenderer(renderer PackingSlipRenderer) {
	s.renderer = renderer
}

// Create packs orders into a new package. Confirmed orders move to processing.
func (s *PackageService) Create(ctx context.Context, req CreatePackageRequest) (*PackageResponse, error) {
	ids := dedupeIDs(req.OrderIDs)
	if len(ids) == 0 {
		return nil, shared.NewDomainError("NO_ORDERS", "Package must contain at least one order")
	}

	var (
		pkg    *trade.Package
		orders []*trade.Order
	)
	err := s.txScope.Execute(ctx, func(repos uow.TransactionalRepositories) error {
		var err error
		orders, err = loadOrders(ctx, repos.Orders(), ids)
		if err != nil {
			return err
		}

		packaged, err := repos.Packages().FindPackagedOrderIDs(ctx, ids)
		if err != nil {
			return err
		}
		if len(packaged) > 0 {
			return shared.NewDomainError("ORDER_ALREADY_PACKAGED",
				fmt.Sprintf("Order %s is already in a package", packaged[0]))
		}
		if err := ensureUniqueTracking(ctx, repos.Packages(), req.TrackingID, nil); err != nil {
			return err
		}

		seq, err := repos.Sequences().Next(ctx, trade.SequencePackage)
		if err != nil {
			return fmt.Errorf("next package number: %w", err)
		}
		pkg, err = trade.NewPackage(trade.FormatNumber(trade.PrefixPackage, s.now(), seq), orders, req.details())
		if err != nil {
			return err
		}

		for _, order := range orders {
			if order.Status != trade.OrderStatusConfirmed {
				continue
			}
			if err := order.UpdateStatus(trade.OrderStatusProcessing, ""); err != nil {
				return err
			}
			if err := repos.Orders().Save(ctx, order); err != nil {
				return err
			}
		}
		return repos.Packages().Save(ctx, pkg)
	})
	if err != nil {
		return nil, err
	}

	s.publish(ctx, pkg, orders)

	response := ToPackageResponse(pkg)
	response.Orders = summarize(orders)
	return &response, nil
}

// GetByID retrieves a package with summaries of its orders
func (s *PackageService) GetByID(ctx context.Context, id uuid.UUID) (*PackageResponse, error) {
	pkg, err := s.packageRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	orders, err := s.orderRepo.FindByIDs(ctx, pkg.OrderIDs)
	if err != nil {
		return nil, err
	}

	response := ToPackageResponse(pkg)
	response.Orders = toPackageOrderSummaries(orders)
	return &response, nil
}

// List retrieves packages with filtering and pagination
func (s *PackageService) List(ctx context.Context, filter PackageListFilter) ([]PackageResponse, int64, error) {
	domainFilter := shared.DefaultFilter()
	if filter.Page > 0 {
		domainFilter.Page = filter.Page
	}
	if filter.PageSize > 0 {
		domainFilter.PageSize = filter.PageSize
	}
	domainFilter.Search = filter.Search
	if filter.Status != "" {
		domainFilter.Filters["status"] = filter.Status
	}

	packages, err := s.packageRepo.FindAll(ctx, domainFilter)
	if err != nil {
		return nil, 0, err
	}
	total, err := s.packageRepo.Count(ctx, domainFilter)
	if err != nil {
		return nil, 0, err
	}

	responses := make([]PackageResponse, len(packages))
	for i := range packages {
		responses[i] = ToPackageResponse(&packages[i])
	}
	return responses, total, nil
}

// UpdateDetails replaces the courier details of a package
func (s *PackageService) UpdateDetails(ctx context.Context, id uuid.UUID, req ShipmentDetailsRequest) (*PackageResponse, error) {
	pkg, err := s.packageRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if tracking := strings.TrimSpace(req.TrackingID); tracking != pkg.TrackingID {
		if err := ensureUniqueTracking(ctx, s.packageRepo, tracking, &pkg.ID); err != nil {
			return nil, err
		}
	}
	if err := pkg.UpdateDetails(req.details()); err != nil {
		return nil, err
	}
	if err := s.packageRepo.Save(ctx, pkg); err != nil {
		return nil, err
	}

	response := ToPackageResponse(pkg)
	return &response, nil
}

// UpdateStatus advances a package. Shipping and delivery cascade to its orders;
// cancelled orders and orders already at the target are left alone.
func (s *PackageService) UpdateStatus(ctx context.Context, id uuid.UUID, req UpdatePackageStatusRequest) (*PackageResponse, error) {
	var (
		pkg    *trade.Package
		orders []*trade.Order
	)
	err := s.txScope.Execute(ctx, func(repos uow.TransactionalRepositories) error {
		var err error
		pkg, err = repos.Packages().FindByID(ctx, id)
		if err != nil {
			return err
		}
		if tracking := strings.TrimSpace(req.TrackingID); tracking != "" && tracking != pkg.TrackingID {
			if err := ensureUniqueTracking(ctx, repos.Packages(), tracking, &pkg.ID); err != nil {
				return err
			}
		}
		if err := pkg.UpdateStatus(trade.PackageStatus(req.Status), req.TrackingID); err != nil {
			return err
		}

		if target, ok := pkg.Status.OrderStatusFor(); ok {
			orders, err = loadOrders(ctx, repos.Orders(), pkg.OrderIDs)
			if err != nil {
				return err
			}
			for _, order := range orders {
				if order.IsCancelled() || reached(order.Status, target) {
					continue
				}
				if err := advanceOrder(order, target, pkg.TrackingID); err != nil {
					return err
				}
				if err := repos.Orders().Save(ctx, order); err != nil {
					return err
				}
			}
		}
		return repos.Packages().Save(ctx, pkg)
	})
	if err != nil {
		return nil, err
	}

	s.publish(ctx, pkg, orders)

	response := ToPackageResponse(pkg)
	if orders != nil {
		response.Orders = summarize(orders)
	}
	return &response, nil
}

// PackingSlip renders the packing slip of a package
func (s *PackageService) PackingSlip(ctx context.Context, id uuid.UUID) ([]byte, error) {
	if s.renderer == nil {
		return nil, shared.NewDomainError("RENDERER_UNAVAILABLE", "Packing slip rendering is not configured")
	}
	pkg, err := s.packageRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	orders, err := s.orderRepo.FindByIDs(ctx, pkg.OrderIDs)
	if err != nil {
		return nil, err
	}

	slip := PackingSlip{
		Package:     ToPackageResponse(pkg),
		Orders:      make([]OrderResponse, len(orders)),
		GeneratedAt: s.now(),
	}
	slip.Package.Orders = toPackageOrderSummaries(orders)
	for i := range orders {
		slip.Orders[i] = ToOrderResponse(&orders[i])
	}
	return s.renderer.RenderPackingSlip(ctx, slip)
}

func (s *PackageService) publish(ctx context.Context, pkg *trade.Package, orders []*trade.Order) {
	aggregates := make([]shared.AggregateRoot, 0, len(orders)+1)
	aggregates = append(aggregates, pkg)
	for _, o := range orders {
		aggregates = append(aggregates, o)
	}
	shared.PublishPending(ctx, s.eventPublisher, aggregates...)
}

var forwardPath = []trade.OrderStatus{
	trade.OrderStatusPending,
	trade.OrderStatusConfirmed,
	trade.OrderStatusProcessing,
	trade.OrderStatusShipped,
	trade.OrderStatusDelivered,
}

func stage(status trade.OrderStatus) int {
	for i, s := range forwardPath {
		if s == status {
			return i
		}
	}
	return -1
}

// reached reports whether status is at or past target on the forward path
func reached(status, target trade.OrderStatus) bool {
	return stage(status) >= stage(target)
}

// advanceOrder walks an order forward one step at a time until it reaches target
func advanceOrder(order *trade.Order, target trade.OrderStatus, trackingID string) error {
	for _, next := range forwardPath[1:] {
		if order.Status == target {
			return nil
		}
		if !order.Status.CanTransitionTo(next) {
			continue
		}
		if err := order.UpdateStatus(next, trackingID); err != nil {
			return err
		}
	}
	if order.Status != target {
		return shared.NewDomainError("INVALID_STATE",
			fmt.Sprintf("Cannot move order %s from %s to %s", order.OrderNumber, order.Status, target))
	}
	return nil
}

// loadOrders fetches every id or fails with ORDER_NOT_FOUND, preserving the order of ids
func loadOrders(ctx context.Context, repo trade.OrderRepository, ids []uuid.UUID) ([]*trade.Order, error) {
	found, err := repo.FindByIDs(ctx, ids)
	if err != nil {
		return nil, err
	}
	byID := make(map[uuid.UUID]*trade.Order, len(found))
	for i := range found {
		byID[found[i].ID] = &found[i]
	}
	orders := make([]*trade.Order, 0, len(ids))
	for _, id := range ids {
		order, ok := byID[id]
		if !ok {
			return nil, shared.NewDomainError("ORDER_NOT_FOUND", fmt.Sprintf("Order %s not found", id))
		}
		orders = append(orders, order)
	}
	return orders, nil
}

func ensureUniqueTracking(ctx context.Context, repo trade.PackageRepository, trackingID string, excludeID *uuid.UUID) error {
	trackingID = strings.TrimSpace(trackingID)
	if trackingID == "" {
		return nil
	}
	exists, err := repo.ExistsByTrackingID(ctx, trackingID, excludeID)
	if err != nil {
		return err
	}
	if exists {
		return shared.NewDomainError("ALREADY_EXISTS", "Another package already uses this tracking ID")
	}
	return nil
}

func summarize(orders []*trade.Order) []PackageOrderSummary {
	flat := make([]trade.Order, len(orders))
	for i, o := range orders {
		flat[i] = *o
	}
	return toPackageOrderSummaries(flat)
}

func dedupeIDs(ids []uuid.UUID) []uuid.UUID {
	seen := make(map[uuid.UUID]bool, len(ids))
	out := make([]uuid.UUID, 0, len(ids))
	for _, id := range ids {
		if id == uuid.Nil || seen[id] {
			continue
		}
		seen[id] = true
		out = append(out, id)
	}
	return out
}
