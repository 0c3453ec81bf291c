package entity

import (
	"sort"
	"strings"
	"unicode/utf8"

	"github.com/peatti/auth-server/internal/domain/apperror"
	"github.com/peatti/auth-server/internal/domain/valueobject"
)

// MinNameLength applies to both roles and to request binding.
const MinNameLength = 3

// PendingVerification marks a contact channel that has not been confirmed yet.
type PendingVerification string

const (
	PendingEmailVerification    PendingVerification = "EMAIL_VERIFICATION"
	PendingWhatsAppVerification PendingVerification = "WHATSAPP_VERIFICATION"
)

// Account is the customer / restaurant owner aggregate.
// Fields are only set by NewAccount.
type Account struct {
	id        valueobject.ID
	role      Role
	name      string
	email     valueobject.Email
	whatsApp  valueobject.WhatsApp
	password  valueobject.Password
	pending   map[PendingVerification]struct{}
	createdAt valueobject.DateTime
	updatedAt valueobject.DateTime
	deletedAt *valueobject.DateTime
}

// AccountSummary is what uniqueness lookups return about an existing account.
type AccountSummary struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Email    string `json:"email"`
	WhatsApp string `json:"whatsapp"`
}

// ValidateName checks the trimmed name against MinNameLength and returns it trimmed.
func ValidateName(role Role, name string, ownerID *valueobject.ID) (string, error) {
	trimmed := strings.TrimSpace(name)
	if utf8.RuneCountInString(trimmed) < MinNameLength {
		ref := ""
		if ownerID != nil {
			ref = ownerID.Value()
		}
		return "", apperror.InvalidName(role.Model().String(), name, ref)
	}
	return trimmed, nil
}

// IDGenerator issues account identifiers; valueobject.GenerateID in production.
type IDGenerator func(model valueobject.Model) (valueobject.ID, error)

// NewAccount assigns a fresh ID and timestamps and seeds both pending verifications.
// The password is expected to be encrypted already.
func NewAccount(role Role, name string, email valueobject.Email, whatsApp valueobject.WhatsApp, password valueobject.Password) (*Account, error) {
	return NewAccountWith(valueobject.GenerateID, role, name, email, whatsApp, password)
}

// NewAccountWith is NewAccount with the identifier taken from newID.
func NewAccountWith(newID IDGenerator, role Role, name string, email valueobject.Email, whatsApp valueobject.WhatsApp, password valueobject.Password) (*Account, error) {
	id, err := newID(role.Model())
	if err != nil {
		return nil, err
	}
	now := valueobject.Now()
	return &Account{
		id:       id,
		role:     role,
		name:     name,
		email:    email,
		whatsApp: whatsApp,
		password: password,
		pending: map[PendingVerification]struct{}{
			PendingEmailVerification:    {},
			PendingWhatsAppVerification: {},
		},
		createdAt: now,
		updatedAt: now,
	}, nil
}

func (a *Account) ID() valueobject.ID               { return a.id }
func (a *Account) Role() Role                       { return a.role }
func (a *Account) Name() string                     { return a.name }
func (a *Account) Email() valueobject.Email         { return a.email }
func (a *Account) WhatsApp() valueobject.WhatsApp   { return a.whatsApp }
func (a *Account) Password() valueobject.Password   { return a.password }
func (a *Account) CreatedAt() valueobject.DateTime  { return a.createdAt }
func (a *Account) UpdatedAt() valueobject.DateTime  { return a.updatedAt }
func (a *Account) DeletedAt() *valueobject.DateTime { return a.deletedAt }
func (a *Account) HasPendingVerification(p PendingVerification) bool {
	_, ok := a.pending[p]
	return ok
}

// PendingVerifications returns the markers in a stable order.
func (a *Account) PendingVerifications() []PendingVerification {
	out := make([]PendingVerification, 0, len(a.pending))
	for p := range a.pending {
		out = append(out, p)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

func (a *Account) Summary() AccountSummary {
	return AccountSummary{
		ID:       a.id.Value(),
		Name:     a.name,
		Email:    a.email.Value(),
		WhatsApp: a.whatsApp.Value(),
	}
}
