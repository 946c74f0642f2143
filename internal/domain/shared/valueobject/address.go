package valueobject

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"regexp"
	"strings"
)

var pincodePattern = regexp.MustCompile(`^[1-9][0-9]{5}$`)

// Address is a value object representing a delivery address.
// It is immutable; all operations return new Address instances.
type Address struct {
	line1   string
	area    string
	city    string
	pincode string
}

// NewAddress creates a new Address. Line1, city and pincode are required.
func NewAddress(line1, area, city, pincode string) (Address, error) {
	line1 = strings.TrimSpace(line1)
	area = strings.TrimSpace(area)
	city = strings.TrimSpace(city)
	pincode = strings.TrimSpace(pincode)

	if line1 == "" {
		return Address{}, fmt.Errorf("address line1 cannot be empty")
	}
	if len(line1) > 200 {
		return Address{}, fmt.Errorf("address line1 cannot exceed 200 characters")
	}
	if len(area) > 100 {
		return Address{}, fmt.Errorf("area cannot exceed 100 characters")
	}
	if city == "" {
		return Address{}, fmt.Errorf("city cannot be empty")
	}
	if len(city) > 100 {
		return Address{}, fmt.Errorf("city cannot exceed 100 characters")
	}
	if !IsValidPincode(pincode) {
		return Address{}, fmt.Errorf("pincode must be 6 digits and cannot start with 0")
	}

	return Address{line1: line1, area: area, city: city, pincode: pincode}, nil
}

// MustNewAddress creates a new Address, panics on error
func MustNewAddress(line1, area, city, pincode string) Address {
	addr, err := NewAddress(line1, area, city, pincode)
	if err != nil {
		panic(err)
	}
	return addr
}

// EmptyAddress returns an empty address (for optional address fields)
func EmptyAddress() Address {
	return Address{}
}

// IsValidPincode reports whether s is a six digit postal index number
func IsValidPincode(s string) bool {
	return pincodePattern.MatchString(s)
}

// Line1 returns the first address line
func (a Address) Line1() string { return a.line1 }

// Area returns the locality
func (a Address) Area() string { return a.area }

// City returns the city
func (a Address) City() string { return a.city }

// Pincode returns the postal index number
func (a Address) Pincode() string { return a.pincode }

// IsEmpty checks if the address is empty
func (a Address) IsEmpty() bool {
	return a.line1 == "" && a.city == "" && a.pincode == ""
}

// String returns the address on one line
func (a Address) String() string {
	if a.IsEmpty() {
		return ""
	}
	parts := []string{a.line1}
	if a.area != "" {
		parts = append(parts, a.area)
	}
	parts = append(parts, a.city+" - "+a.pincode)
	return strings.Join(parts, ", ")
}

// Equals checks if two addresses are equal
func (a Address) Equals(other Address) bool {
	return a == other
}

// AddressDTO is the wire and storage shape of an Address
type AddressDTO struct {
	Line1   string `json:"line1"`
	Area    string `json:"area,omitempty"`
	City    string `json:"city"`
	Pincode string `json:"pincode"`
}

// ToDTO converts Address to AddressDTO
func (a Address) ToDTO() AddressDTO {
	return AddressDTO{Line1: a.line1, Area: a.area, City: a.city, Pincode: a.pincode}
}

// ToAddress converts AddressDTO back to Address
func (dto AddressDTO) ToAddress() (Address, error) {
	if dto.Line1 == "" && dto.City == "" && dto.Pincode == "" && dto.Area == "" {
		return EmptyAddress(), nil
	}
	return NewAddress(dto.Line1, dto.Area, dto.City, dto.Pincode)
}

// MarshalJSON implements json.Marshaler
func (a Address) MarshalJSON() ([]byte, error) {
	return json.Marshal(a.ToDTO())
}

// UnmarshalJSON implements json.Unmarshaler and applies the same validation as NewAddress.
func (a *Address) UnmarshalJSON(data []byte) error {
	var v AddressDTO
	if err := json.Unmarshal(data, &v); err != nil {
		return err
	}
	addr, err := v.ToAddress()
	if err != nil {
		return err
	}
	*a = addr
	return nil
}

// Value implements driver.Valuer, storing the address as JSON
func (a Address) Value() (driver.Value, error) {
	if a.IsEmpty() {
		return nil, nil
	}
	b, err := json.Marshal(a)
	if err != nil {
		return nil, err
	}
	return string(b), nil
}

// Scan implements sql.Scanner
func (a *Address) Scan(value any) error {
	if value == nil {
		*a = EmptyAddress()
		return nil
	}

	var data []byte
	switch v := value.(type) {
	case string:
		data = []byte(v)
	case []byte:
		data = v
	default:
		return fmt.Errorf("cannot scan %T into Address", value)
	}

	if len(data) == 0 || string(data) == "null" {
		*a = EmptyAddress()
		return nil
	}

	return json.Unmarshal(data, a)
}
