// Package valueobject contains the self-validating building blocks of an account.
// Values are only obtainable through their constructors and expose read accessors only.
package valueobject

import (
	"strings"

	"github.com/google/uuid"

	"github.com/peatti/auth-server/internal/domain/apperror"
)

// Model names the kind of account a value belongs to. It only feeds error messages.
type Model string

const (
	ModelCustomer        Model = "customer"
	ModelRestaurantOwner Model = "restaurant owner"
)

func (m Model) String() string { return string(m) }

// newUUID is swapped in tests to simulate generator failures.
var newUUID = uuid.NewV7

type ID struct {
	value string
	model Model
}

// GenerateID returns a fresh time-ordered identifier.
func GenerateID(model Model) (ID, error) {
	u, err := newUUID()
	if err != nil {
		return ID{}, apperror.IDGeneration(model.String(), err)
	}
	return ID{value: u.String(), model: model}, nil
}

// ParseID wraps an identifier read back from storage.
func ParseID(raw string, model Model) (ID, error) {
	v := strings.TrimSpace(raw)
	if v == "" {
		return ID{}, apperror.InvalidID(model.String(), raw)
	}
	return ID{value: v, model: model}, nil
}

func (id ID) Value() string  { return id.value }
func (id ID) String() string { return id.value }
func (id ID) Model() Model   { return id.model }
func (id ID) IsZero() bool   { return id.value == "" }

// Equal compares trimmed values case-insensitively.
func (id ID) Equal(other ID) bool {
	return strings.EqualFold(strings.TrimSpace(id.value), strings.TrimSpace(other.value))
}

func ownerRef(ownerID *ID) string {
	if ownerID == nil {
		return ""
	}
	return ownerID.value
}
