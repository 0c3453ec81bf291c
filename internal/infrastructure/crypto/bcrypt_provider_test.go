package crypto

import (
	"context"
	"testing"

	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/peatti/auth-server/internal/domain/apperror"
	"github.com/peatti/auth-server/internal/domain/valueobject"
)

func TestEncryptPassword(t *testing.T) {
	logger, _ := test.NewNullLogger()
	p := NewBcryptProvider(bcrypt.MinCost, logger)

	plain, err := valueobject.NewDecryptedPassword("Secret123", valueobject.ModelCustomer, nil)
	require.NoError(t, err)

	hashed, err := p.EncryptPassword(context.Background(), plain)
	require.NoError(t, err)
	assert.True(t, hashed.IsEncrypted())
	assert.NotEqual(t, "Secret123", hashed.Value())
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(hashed.Value()), []byte("Secret123")))

	cost, err := bcrypt.Cost([]byte(hashed.Value()))
	require.NoError(t, err)
	assert.Equal(t, bcrypt.MinCost, cost)
}

func TestEncryptPassword_KeepsEncryptedValue(t *testing.T) {
	p := NewBcryptProvider(bcrypt.MinCost, nil)
	already := valueobject.NewEncryptedPassword("$2a$04$existing")

	got, err := p.EncryptPassword(context.Background(), already)
	require.NoError(t, err)
	assert.Equal(t, already, got)
}

func TestEncryptPassword_CancelledContext(t *testing.T) {
	logger, hook := test.NewNullLogger()
	p := NewBcryptProvider(bcrypt.MinCost, logger)
	plain, err := valueobject.NewDecryptedPassword("Secret123", valueobject.ModelCustomer, nil)
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err = p.EncryptPassword(ctx, plain)

	appErr, ok := apperror.As(err)
	require.True(t, ok)
	assert.Equal(t, apperror.StatusProvider, appErr.Status)
	assert.Equal(t, "Error in crypto provider in encrypt password method. Error in external lib name: bcrypt.", appErr.Message)
	assert.ErrorIs(t, err, context.Canceled)
	assert.NotEmpty(t, hook.AllEntries())
}

func TestNewBcryptProvider_DefaultCost(t *testing.T) {
	assert.Equal(t, DefaultCost, NewBcryptProvider(0, nil).Cost)
}
