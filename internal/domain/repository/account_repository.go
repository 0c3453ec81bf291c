package repository

import (
	"context"

	"github.com/peatti/auth-server/internal/domain/entity"
	"github.com/peatti/auth-server/internal/domain/valueobject"
)

// WhatsAppFinder looks up an existing account by WhatsApp number.
// A nil summary with a nil error means no account uses it.
type WhatsAppFinder interface {
	FindByWhatsApp(ctx context.Context, whatsApp valueobject.WhatsApp) (*entity.AccountSummary, error)
}

// EmailFinder looks up an existing account by email.
type EmailFinder interface {
	FindByEmail(ctx context.Context, email valueobject.Email) (*entity.AccountSummary, error)
}

// AccountSaver persists a newly created account with its pending verifications.
// Unique violations surface as the AlreadyInUse errors.
type AccountSaver interface {
	Save(ctx context.Context, account *entity.Account) error
}

// AccountRepository is the capability set the sign-up use case depends on.
type AccountRepository interface {
	WhatsAppFinder
	EmailFinder
	AccountSaver
}
