package handler

import (
	"context"
	"io"
	"time"

	catalogapp "github.com/Charan2012-gif/Shopping-App/internal/application/catalog"
	appidentity "github.com/Charan2012-gif/Shopping-App/internal/application/identity"
	"github.com/Charan2012-gif/Shopping-App/internal/application/media"
	partnerapp "github.com/Charan2012-gif/Shopping-App/internal/application/partner"
	promotionapp "github.com/Charan2012-gif/Shopping-App/internal/application/promotion"
	tradeapp "github.com/Charan2012-gif/Shopping-App/internal/application/trade"
	"github.com/Charan2012-gif/Shopping-App/internal/domain/report"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
)

// result returns the first mock return value as T, or the zero value
func result[T any](args mock.Arguments) T {
	var zero T
	if v := args.Get(0); v != nil {
		return v.(T)
	}
	return zero
}

type mockAuthService struct {
	mock.Mock
}

func (m *mockAuthService) Login(ctx context.Context, req appidentity.LoginRequest) (*appidentity.TokenResponse, error) {
	args := m.Called(ctx, req)
	return result[*appidentity.TokenResponse](args), args.Error(1)
}

func (m *mockAuthService) Refresh(ctx context.Context, req appidentity.RefreshRequest) (*appidentity.TokenResponse, error) {
	args := m.Called(ctx, req)
	return result[*appidentity.TokenResponse](args), args.Error(1)
}

func (m *mockAuthService) Logout(ctx context.Context, input appidentity.LogoutInput) error {
	return m.Called(ctx, input).Error(0)
}

type mockCollectionService struct {
	mock.Mock
}

func (m *mockCollectionService) Create(ctx context.Context, req catalogapp.CreateCollectionRequest) (*catalogapp.CollectionResponse, error) {
	args := m.Called(ctx, req)
	return result[*catalogapp.CollectionResponse](args), args.Error(1)
}

func (m *mockCollectionService) GetByID(ctx context.Context, id uuid.UUID) (*catalogapp.CollectionResponse, error) {
	args := m.Called(ctx, id)
	return result[*catalogapp.CollectionResponse](args), args.Error(1)
}

func (m *mockCollectionService) List(ctx context.Context, filter catalogapp.CollectionListFilter) ([]catalogapp.CollectionResponse, int64, error) {
	args := m.Called(ctx, filter)
	return result[[]catalogapp.CollectionResponse](args), args.Get(1).(int64), args.Error(2)
}

func (m *mockCollectionService) Update(ctx context.Context, id uuid.UUID, req catalogapp.UpdateCollectionRequest) (*catalogapp.CollectionResponse, error) {
	args := m.Called(ctx, id, req)
	return result[*catalogapp.CollectionResponse](args), args.Error(1)
}

func (m *mockCollectionService) Delete(ctx context.Context, id uuid.UUID) error {
	return m.Called(ctx, id).Error(0)
}

type mockProductService struct {
	mock.Mock
}

func (m *mockProductService) Create(ctx context.Context, req catalogapp.CreateProductRequest) (*catalogapp.ProductResponse, error) {
	args := m.Called(ctx, req)
	return result[*catalogapp.ProductResponse](args), args.Error(1)
}

func (m *mockProductService) GetByID(ctx context.Context, id uuid.UUID) (*catalogapp.ProductDetailResponse, error) {
	args := m.Called(ctx, id)
	return result[*catalogapp.ProductDetailResponse](args), args.Error(1)
}

func (m *mockProductService) List(ctx context.Context, filter catalogapp.ProductListFilter) ([]catalogapp.ProductResponse, int64, error) {
	args := m.Called(ctx, filter)
	return result[[]catalogapp.ProductResponse](args), args.Get(1).(int64), args.Error(2)
}

func (m *mockProductService) Update(ctx context.Context, id uuid.UUID, req catalogapp.UpdateProductRequest) (*catalogapp.ProductResponse, error) {
	args := m.Called(ctx, id, req)
	return result[*catalogapp.ProductResponse](args), args.Error(1)
}

func (m *mockProductService) Delete(ctx context.Context, id uuid.UUID) error {
	return m.Called(ctx, id).Error(0)
}

func (m *mockProductService) UpsertVariants(ctx context.Context, productID uuid.UUID, req catalogapp.UpsertVariantsRequest) (*catalogapp.UpsertVariantsResult, error) {
	args := m.Called(ctx, productID, req)
	return result[*catalogapp.UpsertVariantsResult](args), args.Error(1)
}

func (m *mockProductService) ListVariants(ctx context.Context, productID uuid.UUID) ([]catalogapp.VariantResponse, error) {
	args := m.Called(ctx, productID)
	return result[[]catalogapp.VariantResponse](args), args.Error(1)
}

func (m *mockProductService) ImportVariants(ctx context.Context, productID uuid.UUID, r io.Reader) (*catalogapp.VariantImportResult, error) {
	args := m.Called(ctx, productID, r)
	return result[*catalogapp.VariantImportResult](args), args.Error(1)
}

type mockPriceResolver struct {
	mock.Mock
}

func (m *mockPriceResolver) EffectivePrice(ctx context.Context, productID uuid.UUID, price decimal.Decimal, at time.Time) (*promotionapp.EffectivePriceResponse, error) {
	args := m.Called(ctx, productID, price, at)
	return result[*promotionapp.EffectivePriceResponse](args), args.Error(1)
}

type mockOrderService struct {
	mock.Mock
}

func (m *mockOrderService) Create(ctx context.Context, req tradeapp.CreateOrderRequest) (*tradeapp.OrderResponse, error) {
	args := m.Called(ctx, req)
	return result[*tradeapp.OrderResponse](args), args.Error(1)
}

func (m *mockOrderService) GetByID(ctx context.Context, id uuid.UUID) (*tradeapp.OrderResponse, error) {
	args := m.Called(ctx, id)
	return result[*tradeapp.OrderResponse](args), args.Error(1)
}

func (m *mockOrderService) GetByNumber(ctx context.Context, orderNumber string) (*tradeapp.OrderResponse, error) {
	args := m.Called(ctx, orderNumber)
	return result[*tradeapp.OrderResponse](args), args.Error(1)
}

func (m *mockOrderService) List(ctx context.Context, filter tradeapp.OrderListFilter) ([]tradeapp.OrderResponse, int64, error) {
	args := m.Called(ctx, filter)
	return result[[]tradeapp.OrderResponse](args), args.Get(1).(int64), args.Error(2)
}

func (m *mockOrderService) UpdateStatus(ctx context.Context, id uuid.UUID, req tradeapp.UpdateOrderStatusRequest) (*tradeapp.OrderResponse, error) {
	args := m.Called(ctx, id, req)
	return result[*tradeapp.OrderResponse](args), args.Error(1)
}

func (m *mockOrderService) Cancel(ctx context.Context, id uuid.UUID, req tradeapp.CancelOrderRequest) (*tradeapp.OrderResponse, error) {
	args := m.Called(ctx, id, req)
	return result[*tradeapp.OrderResponse](args), args.Error(1)
}

func (m *mockOrderService) UpdatePaymentStatus(ctx context.Context, id uuid.UUID, req tradeapp.UpdatePaymentStatusRequest) (*tradeapp.OrderResponse, error) {
	args := m.Called(ctx, id, req)
	return result[*tradeapp.OrderResponse](args), args.Error(1)
}

type mockPackageService struct {
	mock.Mock
}

func (m *mockPackageService) Create(ctx context.Context, req tradeapp.CreatePackageRequest) (*tradeapp.PackageResponse, error) {
	args := m.Called(ctx, req)
	return result[*tradeapp.PackageResponse](args), args.Error(1)
}

func (m *mockPackageService) GetByID(ctx context.Context, id uuid.UUID) (*tradeapp.PackageResponse, error) {
	args := m.Called(ctx, id)
	return result[*tradeapp.PackageResponse](args), args.Error(1)
}

func (m *mockPackageService) List(ctx context.Context, filter tradeapp.PackageListFilter) ([]tradeapp.PackageResponse, int64, error) {
	args := m.Called(ctx, filter)
	return result[[]tradeapp.PackageResponse](args), args.Get(1).(int64), args.Error(2)
}

func (m *mockPackageService) UpdateDetails(ctx context.Context, id uuid.UUID, req tradeapp.ShipmentDetailsRequest) (*tradeapp.PackageResponse, error) {
	args := m.Called(ctx, id, req)
	return result[*tradeapp.PackageResponse](args), args.Error(1)
}

func (m *mockPackageService) UpdateStatus(ctx context.Context, id uuid.UUID, req tradeapp.UpdatePackageStatusRequest) (*tradeapp.PackageResponse, error) {
	args := m.Called(ctx, id, req)
	return result[*tradeapp.PackageResponse](args), args.Error(1)
}

func (m *mockPackageService) PackingSlip(ctx context.Context, id uuid.UUID) ([]byte, error) {
	args := m.Called(ctx, id)
	return result[[]byte](args), args.Error(1)
}

type mockCouponService struct {
	mock.Mock
}

func (m *mockCouponService) Create(ctx context.Context, req promotionapp.CouponRequest) (*promotionapp.CouponResponse, error) {
	args := m.Called(ctx, req)
	return result[*promotionapp.CouponResponse](args), args.Error(1)
}

func (m *mockCouponService) GetByID(ctx context.Context, id uuid.UUID) (*promotionapp.CouponResponse, error) {
	args := m.Called(ctx, id)
	return result[*promotionapp.CouponResponse](args), args.Error(1)
}

func (m *mockCouponService) List(ctx context.Context, filter promotionapp.CouponListFilter) ([]promotionapp.CouponResponse, int64, error) {
	args := m.Called(ctx, filter)
	return result[[]promotionapp.CouponResponse](args), args.Get(1).(int64), args.Error(2)
}

func (m *mockCouponService) Update(ctx context.Context, id uuid.UUID, req promotionapp.CouponRequest) (*promotionapp.CouponResponse, error) {
	args := m.Called(ctx, id, req)
	return result[*promotionapp.CouponResponse](args), args.Error(1)
}

func (m *mockCouponService) Delete(ctx context.Context, id uuid.UUID) error {
	return m.Called(ctx, id).Error(0)
}

func (m *mockCouponService) Toggle(ctx context.Context, id uuid.UUID) (*promotionapp.CouponResponse, error) {
	args := m.Called(ctx, id)
	return result[*promotionapp.CouponResponse](args), args.Error(1)
}

func (m *mockCouponService) Stats(ctx context.Context, id uuid.UUID) (*promotionapp.CouponStatsResponse, error) {
	args := m.Called(ctx, id)
	return result[*promotionapp.CouponStatsResponse](args), args.Error(1)
}

func (m *mockCouponService) Validate(ctx context.Context, req promotionapp.ValidateCouponRequest) (*promotionapp.ValidateCouponResponse, error) {
	args := m.Called(ctx, req)
	return result[*promotionapp.ValidateCouponResponse](args), args.Error(1)
}

type mockDiscountService struct {
	mock.Mock
}

func (m *mockDiscountService) Create(ctx context.Context, req promotionapp.DiscountRequest) (*promotionapp.DiscountResponse, error) {
	args := m.Called(ctx, req)
	return result[*promotionapp.DiscountResponse](args), args.Error(1)
}

func (m *mockDiscountService) GetByID(ctx context.Context, id uuid.UUID) (*promotionapp.DiscountResponse, error) {
	args := m.Called(ctx, id)
	return result[*promotionapp.DiscountResponse](args), args.Error(1)
}

func (m *mockDiscountService) List(ctx context.Context, filter promotionapp.DiscountListFilter) ([]promotionapp.DiscountResponse, int64, error) {
	args := m.Called(ctx, filter)
	return result[[]promotionapp.DiscountResponse](args), args.Get(1).(int64), args.Error(2)
}

func (m *mockDiscountService) Update(ctx context.Context, id uuid.UUID, req promotionapp.DiscountRequest) (*promotionapp.DiscountResponse, error) {
	args := m.Called(ctx, id, req)
	return result[*promotionapp.DiscountResponse](args), args.Error(1)
}

func (m *mockDiscountService) Delete(ctx context.Context, id uuid.UUID) error {
	return m.Called(ctx, id).Error(0)
}

func (m *mockDiscountService) Toggle(ctx context.Context, id uuid.UUID) (*promotionapp.DiscountResponse, error) {
	args := m.Called(ctx, id)
	return result[*promotionapp.DiscountResponse](args), args.Error(1)
}

type mockCustomerService struct {
	mock.Mock
}

func (m *mockCustomerService) Create(ctx context.Context, req partnerapp.CreateCustomerRequest) (*partnerapp.CustomerResponse, error) {
	args := m.Called(ctx, req)
	return result[*partnerapp.CustomerResponse](args), args.Error(1)
}

func (m *mockCustomerService) GetByID(ctx context.Context, id uuid.UUID) (*partnerapp.CustomerResponse, error) {
	args := m.Called(ctx, id)
	return result[*partnerapp.CustomerResponse](args), args.Error(1)
}

func (m *mockCustomerService) Me(ctx context.Context) (*partnerapp.CustomerResponse, error) {
	args := m.Called(ctx)
	return result[*partnerapp.CustomerResponse](args), args.Error(1)
}

func (m *mockCustomerService) List(ctx context.Context, filter partnerapp.CustomerListFilter) ([]partnerapp.CustomerResponse, int64, error) {
	args := m.Called(ctx, filter)
	return result[[]partnerapp.CustomerResponse](args), args.Get(1).(int64), args.Error(2)
}

func (m *mockCustomerService) Update(ctx context.Context, id uuid.UUID, req partnerapp.UpdateCustomerRequest) (*partnerapp.CustomerResponse, error) {
	args := m.Called(ctx, id, req)
	return result[*partnerapp.CustomerResponse](args), args.Error(1)
}

func (m *mockCustomerService) SetStatus(ctx context.Context, id uuid.UUID, active bool) (*partnerapp.CustomerResponse, error) {
	args := m.Called(ctx, id, active)
	return result[*partnerapp.CustomerResponse](args), args.Error(1)
}

func (m *mockCustomerService) Orders(ctx context.Context, id uuid.UUID, page, pageSize int) ([]partnerapp.CustomerOrderResponse, int64, error) {
	args := m.Called(ctx, id, page, pageSize)
	return result[[]partnerapp.CustomerOrderResponse](args), args.Get(1).(int64), args.Error(2)
}

type mockDashboardService struct {
	mock.Mock
}

func (m *mockDashboardService) OrderStats(ctx context.Context, periodName string) (*report.OrderStats, error) {
	args := m.Called(ctx, periodName)
	return result[*report.OrderStats](args), args.Error(1)
}

func (m *mockDashboardService) TopProducts(ctx context.Context, limit int) ([]report.TopProduct, error) {
	args := m.Called(ctx, limit)
	return result[[]report.TopProduct](args), args.Error(1)
}

func (m *mockDashboardService) Overview(ctx context.Context) (*report.Overview, error) {
	args := m.Called(ctx)
	return result[*report.Overview](args), args.Error(1)
}

type mockUploadService struct {
	mock.Mock
}

func (m *mockUploadService) UploadSingle(ctx context.Context, target media.UploadTarget, file media.FileInput) (*media.UploadedFile, error) {
	args := m.Called(ctx, target, file)
	return result[*media.UploadedFile](args), args.Error(1)
}

func (m *mockUploadService) UploadMultiple(ctx context.Context, target media.UploadTarget, files []media.FileInput) ([]media.UploadedFile, error) {
	args := m.Called(ctx, target, files)
	return result[[]media.UploadedFile](args), args.Error(1)
}

func (m *mockUploadService) Delete(ctx context.Context, key string) error {
	return m.Called(ctx, key).Error(0)
}
