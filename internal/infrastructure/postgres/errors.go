package postgres

import (
	"errors"
	"strings"

	"github.com/jackc/pgx/v5/pgconn"

	"github.com/peatti/auth-server/internal/domain/apperror"
	"github.com/peatti/auth-server/internal/domain/valueobject"
)

const (
	uniqueViolationCode = "23505"
	externalLib         = "pgx"
)

// IsUniqueViolation reports whether err is a PostgreSQL unique constraint violation.
func IsUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == uniqueViolationCode
}

// mapError turns a driver error into the domain taxonomy. Unique violations on the
// email or whatsapp constraints become the matching AlreadyInUse error.
func mapError(tables accountTables, model valueobject.Model, method string, err error, email, whatsApp string) error {
	if err == nil {
		return nil
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == uniqueViolationCode {
		switch {
		case pgErr.ConstraintName == tables.emailKey || strings.Contains(pgErr.ConstraintName, "email"):
			conflict := apperror.EmailAlreadyInUse(model.String(), email)
			conflict.Err = err
			return conflict
		case pgErr.ConstraintName == tables.whatsAppKey || strings.Contains(pgErr.ConstraintName, "whatsapp"):
			conflict := apperror.WhatsAppAlreadyInUse(model.String(), whatsApp)
			conflict.Err = err
			return conflict
		}
	}
	return apperror.Repository(tables.accounts, method, externalLib, err)
}
