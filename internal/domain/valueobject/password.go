package valueobject

import (
	"fmt"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/peatti/auth-server/internal/domain/apperror"
)

const (
	PasswordMinLength = 8
	PasswordMaxLength = 32
	// bcrypt ignores input past 72 bytes.
	passwordMaxBytes = 72
)

// Password is either a plaintext candidate or an opaque hash.
type Password struct {
	value     string
	encrypted bool
}

// NewDecryptedPassword validates a plaintext password.
func NewDecryptedPassword(raw string, model Model, ownerID *ID) (Password, error) {
	if raw == "" {
		return Password{}, apperror.InvalidPassword(model.String(), "password is required", ownerRef(ownerID))
	}
	n := utf8.RuneCountInString(raw)
	if n < PasswordMinLength || n > PasswordMaxLength {
		reason := fmt.Sprintf("password length must be between %d and %d characters", PasswordMinLength, PasswordMaxLength)
		return Password{}, apperror.InvalidPassword(model.String(), reason, ownerRef(ownerID))
	}
	if len(raw) > passwordMaxBytes {
		reason := fmt.Sprintf("password must not exceed %d bytes when encoded", passwordMaxBytes)
		return Password{}, apperror.InvalidPassword(model.String(), reason, ownerRef(ownerID))
	}
	if strings.IndexFunc(raw, unicode.IsSpace) >= 0 {
		return Password{}, apperror.InvalidPassword(model.String(), "password must not contain whitespace", ownerRef(ownerID))
	}
	return Password{value: raw}, nil
}

// NewEncryptedPassword wraps a hash produced by a crypto provider.
func NewEncryptedPassword(hash string) Password {
	return Password{value: hash, encrypted: true}
}

func (p Password) Value() string     { return p.value }
func (p Password) IsEncrypted() bool { return p.encrypted }

// String masks the value so passwords never end up in logs.
func (p Password) String() string { return "********" }
