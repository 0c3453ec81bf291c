package provider

import (
	"context"

	"github.com/peatti/auth-server/internal/domain/valueobject"
)

// PasswordEncrypter turns a validated plaintext password into its encrypted form.
type PasswordEncrypter interface {
	EncryptPassword(ctx context.Context, password valueobject.Password) (valueobject.Password, error)
}
