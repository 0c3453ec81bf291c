package entity

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/peatti/auth-server/internal/domain/apperror"
	"github.com/peatti/auth-server/internal/domain/valueobject"
)

func TestValidateName(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
		ok   bool
	}{
		{name: "full name", in: "John Doe", want: "John Doe", ok: true},
		{name: "minimum", in: "Ana", want: "Ana", ok: true},
		{name: "trimmed", in: "  Bob  ", want: "Bob", ok: true},
		{name: "accented", in: "Zé ", want: "", ok: false},
		{name: "two chars", in: "Al", ok: false},
		{name: "empty", in: "", ok: false},
		{name: "spaces", in: "      ", ok: false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ValidateName(RoleCustomer, tt.in, nil)
			if !tt.ok {
				require.Error(t, err)
				assert.True(t, apperror.IsKind(err, apperror.KindInvalidName))
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestValidateName_MessageNamesRole(t *testing.T) {
	_, err := ValidateName(RoleRestaurantOwner, "Al", nil)
	appErr, ok := apperror.As(err)
	require.True(t, ok)
	assert.Equal(t, "Invalid restaurant owner name for restaurant owner Al", appErr.Message)
}

func TestNewAccount(t *testing.T) {
	email, err := valueobject.NewEmail("John@Example.com", RoleCustomer.Model(), nil)
	require.NoError(t, err)
	whatsApp, err := valueobject.NewWhatsApp("+1 (234) 567-8900", RoleCustomer.Model(), nil)
	require.NoError(t, err)
	password := valueobject.NewEncryptedPassword("$2a$12$hash")

	acc, err := NewAccount(RoleCustomer, "John Doe", email, whatsApp, password)
	require.NoError(t, err)

	assert.False(t, acc.ID().IsZero())
	assert.Equal(t, valueobject.ModelCustomer, acc.ID().Model())
	assert.Equal(t, RoleCustomer, acc.Role())
	assert.Equal(t, "john@example.com", acc.Email().Value())
	assert.Equal(t, "+12345678900", acc.WhatsApp().Value())
	assert.True(t, acc.Password().IsEncrypted())
	assert.True(t, acc.CreatedAt().Equal(acc.UpdatedAt()))
	assert.Nil(t, acc.DeletedAt())
	assert.Equal(t, []PendingVerification{PendingEmailVerification, PendingWhatsAppVerification}, acc.PendingVerifications())
	assert.True(t, acc.HasPendingVerification(PendingWhatsAppVerification))

	summary := acc.Summary()
	assert.Equal(t, acc.ID().Value(), summary.ID)
	assert.Equal(t, "John Doe", summary.Name)
}

func TestNewAccount_IDsAreUnique(t *testing.T) {
	email, _ := valueobject.NewEmail("a@b.co", valueobject.ModelRestaurantOwner, nil)
	whatsApp, _ := valueobject.NewWhatsApp("1234567", valueobject.ModelRestaurantOwner, nil)

	a, err := NewAccount(RoleRestaurantOwner, "Owner", email, whatsApp, valueobject.NewEncryptedPassword("h"))
	require.NoError(t, err)
	b, err := NewAccount(RoleRestaurantOwner, "Owner", email, whatsApp, valueobject.NewEncryptedPassword("h"))
	require.NoError(t, err)
	assert.False(t, a.ID().Equal(b.ID()))
}

func TestNewAccountWith_GeneratorFailure(t *testing.T) {
	email, _ := valueobject.NewEmail("a@b.co", valueobject.ModelCustomer, nil)
	whatsApp, _ := valueobject.NewWhatsApp("1234567", valueobject.ModelCustomer, nil)
	failing := func(m valueobject.Model) (valueobject.ID, error) {
		return valueobject.ID{}, apperror.IDGeneration(m.String(), errors.New("no entropy"))
	}

	acc, err := NewAccountWith(failing, RoleCustomer, "Owner", email, whatsApp, valueobject.NewEncryptedPassword("h"))
	assert.Nil(t, acc)
	assert.True(t, apperror.IsKind(err, apperror.KindIDGeneration))
	assert.EqualError(t, err, "IdGenerationError: Failed to generate ID for customer: no entropy")
}
