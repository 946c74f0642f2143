package partner

import (
	"regexp"
	"strings"
	"time"

	"github.com/Charan2012-gif/Shopping-App/internal/domain/identity"
	"github.com/Charan2012-gif/Shopping-App/internal/domain/shared"
	"github.com/Charan2012-gif/Shopping-App/internal/domain/shared/valueobject"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// Password cost for bcrypt
const bcryptCost = 12

var (
	emailPattern  = regexp.MustCompile(`^[a-z0-9._%+\-]+@[a-z0-9.\-]+\.[a-z]{2,}$`)
	mobilePattern = regexp.MustCompile(`^[6-9]\d{9}$`)
	lowerCaser    = cases.Lower(language.Und)
)

// Customer is a person who shops with the store, or an owner who runs it
type Customer struct {
	shared.BaseAggregateRoot
	Name         string
	Email        string
	Mobile       string
	Role         identity.Role
	Address      valueobject.Address
	IsActive     bool
	PasswordHash string
	OrderHistory []uuid.UUID // loaded from the orders table, oldest first
}

// NewCustomer creates a new active customer
func NewCustomer(name, email, mobile string, role identity.Role) (*Customer, error) {
	name = strings.TrimSpace(name)
	email = NormalizeEmail(email)
	mobile = strings.TrimSpace(mobile)

	if err := validateCustomerName(name); err != nil {
		return nil, err
	}
	if err := validateEmail(email); err != nil {
		return nil, err
	}
	if err := validateMobile(mobile); err != nil {
		return nil, err
	}
	if role == "" {
		role = identity.RoleCustomer
	}
	if !role.IsValid() {
		return nil, shared.NewDomainError("INVALID_ROLE", "Role must be customer or owner")
	}

	c := &Customer{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		Name:              name,
		Email:             email,
		Mobile:            mobile,
		Role:              role,
		IsActive:          true,
		OrderHistory:      make([]uuid.UUID, 0),
	}
	c.AddDomainEvent(NewCustomerCreatedEvent(c))
	return c, nil
}

// NormalizeEmail trims and lower-cases an email address
func NormalizeEmail(email string) string {
	return lowerCaser.String(strings.TrimSpace(email))
}

// Update changes the contact details
func (c *Customer) Update(name, email, mobile string) error {
	name = strings.TrimSpace(name)
	email = NormalizeEmail(email)
	mobile = strings.TrimSpace(mobile)

	if err := validateCustomerName(name); err != nil {
		return err
	}
	if err := validateEmail(email); err != nil {
		return err
	}
	if err := validateMobile(mobile); err != nil {
		return err
	}

	c.Name = name
	c.Email = email
	c.Mobile = mobile
	c.touch()
	return nil
}

// SetAddress replaces the delivery address; an empty address clears it
func (c *Customer) SetAddress(addr valueobject.Address) {
	c.Address = addr
	c.touch()
}

// SetRole changes the customer's role
func (c *Customer) SetRole(role identity.Role) error {
	if !role.IsValid() {
		return shared.NewDomainError("INVALID_ROLE", "Role must be customer or owner")
	}
	c.Role = role
	c.touch()
	return nil
}

// SetPassword hashes and stores a login password
func (c *Customer) SetPassword(password string) error {
	if len(password) < 8 {
		return shared.NewDomainError("INVALID_PASSWORD", "Password must be at least 8 characters")
	}
	if len(password) > 72 {
		return shared.NewDomainError("INVALID_PASSWORD", "Password cannot exceed 72 characters")
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcryptCost)
	if err != nil {
		return err
	}
	c.PasswordHash = string(hash)
	c.touch()
	return nil
}

// VerifyPassword checks password against the stored hash
func (c *Customer) VerifyPassword(password string) bool {
	if c.PasswordHash == "" {
		return false
	}
	return bcrypt.CompareHashAndPassword([]byte(c.PasswordHash), []byte(password)) == nil
}

// Activate re-enables a soft-deleted customer
func (c *Customer) Activate() error {
	if c.IsActive {
		return shared.NewDomainError("ALREADY_ACTIVE", "Customer is already active")
	}
	c.IsActive = true
	c.touch()
	c.AddDomainEvent(NewCustomerStatusChangedEvent(c))
	return nil
}

// Deactivate soft-deletes the customer
func (c *Customer) Deactivate() error {
	if !c.IsActive {
		return shared.NewDomainError("ALREADY_INACTIVE", "Customer is already inactive")
	}
	c.IsActive = false
	c.touch()
	c.AddDomainEvent(NewCustomerStatusChangedEvent(c))
	return nil
}

// Identity returns the caller identity for this customer
func (c *Customer) Identity() identity.Identity {
	return identity.Identity{ID: c.ID, Name: c.Name, Role: c.Role}
}

func (c *Customer) touch() {
	c.Touch(time.Now())
}

func validateCustomerName(name string) error {
	if name == "" {
		return shared.NewDomainError("INVALID_NAME", "Customer name cannot be empty")
	}
	if len([]rune(name)) > 50 {
		return shared.NewDomainError("INVALID_NAME", "Customer name cannot exceed 50 characters")
	}
	return nil
}

func validateEmail(email string) error {
	if len(email) > 200 {
		return shared.NewDomainError("INVALID_EMAIL", "Email cannot exceed 200 characters")
	}
	if !emailPattern.MatchString(email) {
		return shared.NewDomainError("INVALID_EMAIL", "Invalid email format")
	}
	return nil
}

func validateMobile(mobile string) error {
	if !mobilePattern.MatchString(mobile) {
		return shared.NewDomainError("INVALID_MOBILE", "Mobile must be 10 digits starting with 6-9")
	}
	return nil
}
