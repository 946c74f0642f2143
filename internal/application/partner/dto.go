package partner

import (
	"time"

	"github.com/Charan2012-gif/Shopping-App/internal/domain/partner"
	"github.com/Charan2012-gif/Shopping-App/internal/domain/shared/valueobject"
	"github.com/Charan2012-gif/Shopping-App/internal/domain/trade"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// CreateCustomerRequest represents a request to create a customer
type CreateCustomerRequest struct {
	Name     string                  `json:"name" binding:"required,min=1,max=50"`
	Email    string                  `json:"email" binding:"required,email,max=200"`
	Mobile   string                  `json:"mobile" binding:"required,mobile"`
	Role     string                  `json:"role" binding:"omitempty,oneof=customer owner"`
	Password string                  `json:"password" binding:"omitempty,min=8,max=72"`
	Address  *valueobject.AddressDTO `json:"address"`
}

// UpdateCustomerRequest represents a request to update a customer
type UpdateCustomerRequest struct {
	Name     *string                 `json:"name" binding:"omitempty,min=1,max=50"`
	Email    *string                 `json:"email" binding:"omitempty,email,max=200"`
	Mobile   *string                 `json:"mobile" binding:"omitempty,mobile"`
	Role     *string                 `json:"role" binding:"omitempty,oneof=customer owner"`
	Password *string                 `json:"password" binding:"omitempty,min=8,max=72"`
	Address  *valueobject.AddressDTO `json:"address"`
}

// SetCustomerStatusRequest activates or soft-deletes a customer
type SetCustomerStatusRequest struct {
	IsActive *bool `json:"is_active" binding:"required"`
}

// CustomerListFilter represents filter options for the customer list
type CustomerListFilter struct {
	Search   string `form:"search"`
	Role     string `form:"role" binding:"omitempty,oneof=customer owner"`
	IsActive *bool  `form:"is_active"`
	Page     int    `form:"page" binding:"min=0"`
	PageSize int    `form:"page_size" binding:"min=0,max=100"`
	OrderBy  string `form:"order_by"`
	OrderDir string `form:"order_dir" binding:"omitempty,oneof=asc desc"`
}

// CustomerResponse represents a customer in API responses
type CustomerResponse struct {
	ID           uuid.UUID               `json:"id"`
	Name         string                  `json:"name"`
	Email        string                  `json:"email"`
	Mobile       string                  `json:"mobile"`
	Role         string                  `json:"role"`
	Address      *valueobject.AddressDTO `json:"address,omitempty"`
	IsActive     bool                    `json:"is_active"`
	HasPassword  bool                    `json:"has_password"`
	OrderHistory []uuid.UUID             `json:"order_history"`
	CreatedAt    time.Time               `json:"created_at"`
	UpdatedAt    time.Time               `json:"updated_at"`
	Version      int                     `json:"version"`
}

// ToCustomerResponse converts a domain Customer to CustomerResponse
func ToCustomerResponse(c *partner.Customer) CustomerResponse {
	history := c.OrderHistory
	if history == nil {
		history = []uuid.UUID{}
	}
	resp := CustomerResponse{
		ID:           c.ID,
		Name:         c.Name,
		Email:        c.Email,
		Mobile:       c.Mobile,
		Role:         c.Role.String(),
		IsActive:     c.IsActive,
		HasPassword:  c.PasswordHash != "",
		OrderHistory: history,
		CreatedAt:    c.CreatedAt,
		UpdatedAt:    c.UpdatedAt,
		Version:      c.Version,
	}
	if !c.Address.IsEmpty() {
		addr := c.Address.ToDTO()
		resp.Address = &addr
	}
	return resp
}

// CustomerOrderResponse is one row of a customer's order history
type CustomerOrderResponse struct {
	ID            uuid.UUID       `json:"id"`
	OrderNumber   string          `json:"order_number"`
	Status        string          `json:"status"`
	PaymentStatus string          `json:"payment_status"`
	ItemCount     int             `json:"item_count"`
	FinalAmount   decimal.Decimal `json:"final_amount"`
	CreatedAt     time.Time       `json:"created_at"`
}

// ToCustomerOrderResponse converts a domain Order to CustomerOrderResponse
func ToCustomerOrderResponse(o *trade.Order) CustomerOrderResponse {
	return CustomerOrderResponse{
		ID:            o.ID,
		OrderNumber:   o.OrderNumber,
		Status:        o.Status.String(),
		PaymentStatus: string(o.PaymentStatus),
		ItemCount:     o.ItemCount(),
		FinalAmount:   o.FinalAmount,
		CreatedAt:     o.CreatedAt,
	}
}
