package entity

import "github.com/peatti/auth-server/internal/domain/valueobject"

// Role tells the two account aggregates apart. Both share the same shape.
type Role string

const (
	RoleCustomer        Role = "customer"
	RoleRestaurantOwner Role = "restaurant_owner"
)

// Model is the owner kind used in value object error messages.
func (r Role) Model() valueobject.Model {
	if r == RoleRestaurantOwner {
		return valueobject.ModelRestaurantOwner
	}
	return valueobject.ModelCustomer
}

// Title is the capitalized label used in user-facing messages.
func (r Role) Title() string {
	if r == RoleRestaurantOwner {
		return "Restaurant owner"
	}
	return "Customer"
}

func (r Role) String() string { return string(r) }
