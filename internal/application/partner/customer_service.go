package partner

import (
	"context"

	"github.com/Charan2012-gif/Shopping-App/internal/domain/identity"
	"github.com/Charan2012-gif/Shopping-App/internal/domain/partner"
	"github.com/Charan2012-gif/Shopping-App/internal/domain/shared"
	"github.com/Charan2012-gif/Shopping-App/internal/domain/shared/valueobject"
	"github.com/Charan2012-gif/Shopping-App/internal/domain/trade"
	"github.com/google/uuid"
)

// CustomerService handles customer-related business operations
type CustomerService struct {
	customerRepo   partner.CustomerRepository
	orderRepo      trade.OrderRepository
	eventPublisher shared.EventPublisher
}

// NewCustomerService creates a new CustomerService
func NewCustomerService(customerRepo partner.CustomerRepository, orderRepo trade.OrderRepository) *CustomerService {
	return &CustomerService{
		customerRepo: customerRepo,
		orderRepo:    orderRepo,
	}
}

// SetEventPublisher sets the event publisher for publishing domain events
func (s *CustomerService) SetEventPublisher(publisher shared.EventPublisher) {
	s.eventPublisher = publisher
}

// Create creates a new customer
func (s *CustomerService) Create(ctx context.Context, req CreateCustomerRequest) (*CustomerResponse, error) {
	customer, err := partner.NewCustomer(req.Name, req.Email, req.Mobile, identity.Role(req.Role))
	if err != nil {
		return nil, err
	}
	if err := s.ensureUniqueContact(ctx, customer.Email, customer.Mobile, nil); err != nil {
		return nil, err
	}

	if req.Address != nil {
		addr, err := toAddress(*req.Address)
		if err != nil {
			return nil, err
		}
		customer.SetAddress(addr)
	}
	if req.Password != "" {
		if err := customer.SetPassword(req.Password); err != nil {
			return nil, err
		}
	}

	if err := s.customerRepo.Save(ctx, customer); err != nil {
		return nil, err
	}
	s.publishEvents(ctx, customer)

	response := ToCustomerResponse(customer)
	return &response, nil
}

// GetByID retrieves a customer by ID. Customers may only read themselves.
func (s *CustomerService) GetByID(ctx context.Context, id uuid.UUID) (*CustomerResponse, error) {
	if err := authorizeCustomer(ctx, id); err != nil {
		return nil, err
	}
	customer, err := s.customerRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	response := ToCustomerResponse(customer)
	return &response, nil
}

// Me retrieves the customer record of the caller
func (s *CustomerService) Me(ctx context.Context) (*CustomerResponse, error) {
	caller, err := identity.Require(ctx)
	if err != nil {
		return nil, err
	}
	return s.GetByID(ctx, caller.ID)
}

// List retrieves a list of customers with filtering and pagination
func (s *CustomerService) List(ctx context.Context, filter CustomerListFilter) ([]CustomerResponse, int64, error) {
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
	if filter.Role != "" {
		domainFilter.Filters["role"] = filter.Role
	}
	if filter.IsActive != nil {
		domainFilter.Filters["is_active"] = *filter.IsActive
	}

	customers, err := s.customerRepo.FindAll(ctx, domainFilter)
	if err != nil {
		return nil, 0, err
	}
	total, err := s.customerRepo.Count(ctx, domainFilter)
	if err != nil {
		return nil, 0, err
	}

	responses := make([]CustomerResponse, len(customers))
	for i := range customers {
		responses[i] = ToCustomerResponse(&customers[i])
	}
	return responses, total, nil
}

// Update updates a customer. Customers may only update themselves and
// only an owner may change a role.
func (s *CustomerService) Update(ctx context.Context, id uuid.UUID, req UpdateCustomerRequest) (*CustomerResponse, error) {
	if err := authorizeCustomer(ctx, id); err != nil {
		return nil, err
	}
	if req.Role != nil {
		if err := authorizeOwner(ctx); err != nil {
			return nil, err
		}
	}
	customer, err := s.customerRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	name, email, mobile := customer.Name, customer.Email, customer.Mobile
	if req.Name != nil {
		name = *req.Name
	}
	if req.Email != nil {
		email = *req.Email
	}
	if req.Mobile != nil {
		mobile = *req.Mobile
	}
	if req.Email != nil || req.Mobile != nil {
		normalized := partner.NormalizeEmail(email)
		checkEmail, checkMobile := "", ""
		if normalized != customer.Email {
			checkEmail = normalized
		}
		if mobile != customer.Mobile {
			checkMobile = mobile
		}
		if err := s.ensureUniqueContact(ctx, checkEmail, checkMobile, &customer.ID); err != nil {
			return nil, err
		}
	}
	if req.Name != nil || req.Email != nil || req.Mobile != nil {
		if err := customer.Update(name, email, mobile); err != nil {
			return nil, err
		}
	}

	if req.Role != nil {
		if err := customer.SetRole(identity.Role(*req.Role)); err != nil {
			return nil, err
		}
	}
	if req.Password != nil {
		if err := customer.SetPassword(*req.Password); err != nil {
			return nil, err
		}
	}
	if req.Address != nil {
		addr, err := toAddress(*req.Address)
		if err != nil {
			return nil, err
		}
		customer.SetAddress(addr)
	}

	if err := s.customerRepo.Save(ctx, customer); err != nil {
		return nil, err
	}

	response := ToCustomerResponse(customer)
	return &response, nil
}

// SetStatus activates or soft-deletes a customer. Owners only.
func (s *CustomerService) SetStatus(ctx context.Context, id uuid.UUID, active bool) (*CustomerResponse, error) {
	if err := authorizeOwner(ctx); err != nil {
		return nil, err
	}
	customer, err := s.customerRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if active {
		err = customer.Activate()
	} else {
		err = customer.Deactivate()
	}
	if err != nil {
		return nil, err
	}

	if err := s.customerRepo.Save(ctx, customer); err != nil {
		return nil, err
	}
	s.publishEvents(ctx, customer)

	response := ToCustomerResponse(customer)
	return &response, nil
}

// Orders lists the orders placed by a customer, newest first
func (s *CustomerService) Orders(ctx context.Context, id uuid.UUID, page, pageSize int) ([]CustomerOrderResponse, int64, error) {
	if err := authorizeCustomer(ctx, id); err != nil {
		return nil, 0, err
	}
	if _, err := s.customerRepo.FindByID(ctx, id); err != nil {
		return nil, 0, err
	}

	filter := shared.DefaultFilter()
	if page > 0 {
		filter.Page = page
	}
	if pageSize > 0 {
		filter.PageSize = pageSize
	}
	filter.Filters["customer_id"] = id

	orders, err := s.orderRepo.FindAll(ctx, filter)
	if err != nil {
		return nil, 0, err
	}
	total, err := s.orderRepo.Count(ctx, filter)
	if err != nil {
		return nil, 0, err
	}

	responses := make([]CustomerOrderResponse, len(orders))
	for i := range orders {
		responses[i] = ToCustomerOrderResponse(&orders[i])
	}
	return responses, total, nil
}

// ensureUniqueContact checks email and mobile uniqueness; empty values are skipped
func (s *CustomerService) ensureUniqueContact(ctx context.Context, email, mobile string, excludeID *uuid.UUID) error {
	if email != "" {
		exists, err := s.customerRepo.ExistsByEmail(ctx, email, excludeID)
		if err != nil {
			return err
		}
		if exists {
			return shared.NewDomainError("ALREADY_EXISTS", "Customer with this email already exists")
		}
	}
	if mobile != "" {
		exists, err := s.customerRepo.ExistsByMobile(ctx, mobile, excludeID)
		if err != nil {
			return err
		}
		if exists {
			return shared.NewDomainError("ALREADY_EXISTS", "Customer with this mobile already exists")
		}
	}
	return nil
}

func (s *CustomerService) publishEvents(ctx context.Context, customer *partner.Customer) {
	shared.PublishPending(ctx, s.eventPublisher, customer)
}

// authorizeCustomer lets owners through and restricts customers to their own records.
// Calls without an identity come from trusted internal callers.
func authorizeCustomer(ctx context.Context, customerID uuid.UUID) error {
	caller, ok := identity.FromContext(ctx)
	if !ok {
		return nil
	}
	if !caller.CanAccessCustomer(customerID) {
		return shared.ErrForbidden
	}
	return nil
}

// authorizeOwner refuses callers that are not owners. Calls without an
// identity come from inside the process and pass, as in authorizeCustomer.
func authorizeOwner(ctx context.Context) error {
	if caller, ok := identity.FromContext(ctx); ok && !caller.IsOwner() {
		return shared.ErrForbidden
	}
	return nil
}

func toAddress(dto valueobject.AddressDTO) (valueobject.Address, error) {
	addr, err := dto.ToAddress()
	if err != nil {
		return valueobject.Address{}, shared.NewDomainError("INVALID_ADDRESS", err.Error())
	}
	return addr, nil
}
