package crypto

import (
	"context"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/peatti/auth-server/internal/domain/apperror"
	"github.com/peatti/auth-server/internal/domain/provider"
	"github.com/peatti/auth-server/internal/domain/valueobject"
	"github.com/peatti/auth-server/pkg/helpers"
)

// DefaultCost matches the work factor accounts have always been hashed with.
const DefaultCost = 12

type BcryptProvider struct {
	Cost   int
	Logger logrus.FieldLogger
}

var _ provider.PasswordEncrypter = (*BcryptProvider)(nil)

func NewBcryptProvider(cost int, logger logrus.FieldLogger) *BcryptProvider {
	if cost == 0 {
		cost = DefaultCost
	}
	return &BcryptProvider{Cost: cost, Logger: logger}
}

// EncryptPassword hashes a plaintext password. Already encrypted values are returned unchanged.
func (p *BcryptProvider) EncryptPassword(ctx context.Context, password valueobject.Password) (valueobject.Password, error) {
	if password.IsEncrypted() {
		return password, nil
	}
	started := time.Now()
	hash, err := p.hash(ctx, password.Value())
	helpers.LogTime(p.Logger, helpers.LayerProvider, "crypto", "EncryptPassword", started, err == nil)
	if err != nil {
		appErr := apperror.Provider("crypto", "encrypt password", "bcrypt", err)
		helpers.LogDebug(p.Logger, appErr.Message, err, nil)
		return valueobject.Password{}, appErr
	}
	return valueobject.NewEncryptedPassword(hash), nil
}

func (p *BcryptProvider) hash(ctx context.Context, plain string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	return helpers.HashPassword(plain, p.Cost)
}
