package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/sirupsen/logrus"

	"github.com/peatti/auth-server/internal/domain/apperror"
	"github.com/peatti/auth-server/internal/domain/entity"
	"github.com/peatti/auth-server/internal/domain/repository"
	"github.com/peatti/auth-server/internal/domain/valueobject"
	"github.com/peatti/auth-server/internal/infrastructure/metrics"
	"github.com/peatti/auth-server/pkg/helpers"
)

// DB is the subset of *pgxpool.Pool the repository needs.
type DB interface {
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
	Begin(ctx context.Context) (pgx.Tx, error)
}

type accountTables struct {
	accounts    string
	pendings    string
	emailKey    string
	whatsAppKey string
}

func tablesFor(role entity.Role) accountTables {
	if role == entity.RoleRestaurantOwner {
		return accountTables{
			accounts:    "restaurant_owners",
			pendings:    "restaurant_owner_pendings",
			emailKey:    "restaurant_owners_email_key",
			whatsAppKey: "restaurant_owners_whatsapp_key",
		}
	}
	return accountTables{
		accounts:    "customers",
		pendings:    "customer_pendings",
		emailKey:    "customers_email_key",
		whatsAppKey: "customers_whatsapp_key",
	}
}

// AccountRepository stores one role's accounts in its own pair of tables.
type AccountRepository struct {
	db      DB
	role    entity.Role
	tables  accountTables
	Logger  logrus.FieldLogger
	Metrics *metrics.Metrics
}

var _ repository.AccountRepository = (*AccountRepository)(nil)

func NewAccountRepository(db DB, role entity.Role, logger logrus.FieldLogger, m *metrics.Metrics) *AccountRepository {
	return &AccountRepository{db: db, role: role, tables: tablesFor(role), Logger: logger, Metrics: m}
}

// Name is the repository label used in logs and errors.
func (r *AccountRepository) Name() string { return r.tables.accounts }

func (r *AccountRepository) observe(method string, started time.Time, err error) {
	helpers.LogTime(r.Logger, helpers.LayerRepository, r.Name(), method, started, err == nil)
	r.Metrics.ObserveRepository(r.Name(), method, started, err)
	if err != nil && apperror.KindOf(err) == apperror.KindRepository {
		helpers.LogDebug(r.Logger, "repository call failed", err, logrus.Fields{"repository": r.Name(), "method": method})
	}
}

func (r *AccountRepository) FindByWhatsApp(ctx context.Context, whatsApp valueobject.WhatsApp) (summary *entity.AccountSummary, err error) {
	started := time.Now()
	defer func() { r.observe("FindByWhatsApp", started, err) }()

	query := fmt.Sprintf(`
		SELECT id, name, email, whatsapp
		FROM %s
		WHERE whatsapp = $1
		LIMIT 1
	`, r.tables.accounts)
	return r.findOne(ctx, "FindByWhatsApp", query, whatsApp.Value())
}

func (r *AccountRepository) FindByEmail(ctx context.Context, email valueobject.Email) (summary *entity.AccountSummary, err error) {
	started := time.Now()
	defer func() { r.observe("FindByEmail", started, err) }()

	query := fmt.Sprintf(`
		SELECT id, name, email, whatsapp
		FROM %s
		WHERE email = $1
		LIMIT 1
	`, r.tables.accounts)
	return r.findOne(ctx, "FindByEmail", query, email.Value())
}

func (r *AccountRepository) findOne(ctx context.Context, method, query, arg string) (*entity.AccountSummary, error) {
	var id, name, email, whatsApp string
	if err := r.db.QueryRow(ctx, query, arg).Scan(&id, &name, &email, &whatsApp); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, apperror.Repository(r.Name(), method, externalLib, err)
	}

	// Rows are re-validated so corrupt data never leaves the repository.
	model := r.role.Model()
	parsedID, err := valueobject.ParseID(id, model)
	if err != nil {
		return nil, apperror.Repository(r.Name(), method, externalLib, err)
	}
	if _, err := valueobject.NewEmail(email, model, &parsedID); err != nil {
		return nil, apperror.Repository(r.Name(), method, externalLib, err)
	}
	return &entity.AccountSummary{ID: parsedID.Value(), Name: name, Email: email, WhatsApp: whatsApp}, nil
}

// Save inserts the account row and its pending verifications in one transaction.
func (r *AccountRepository) Save(ctx context.Context, account *entity.Account) (err error) {
	started := time.Now()
	defer func() { r.observe("Save", started, err) }()

	fail := func(err error) error {
		return mapError(r.tables, r.role.Model(), "Save", err, account.Email().Value(), account.WhatsApp().Value())
	}

	tx, err := r.db.Begin(ctx)
	if err != nil {
		return fail(err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	var deletedAt *time.Time
	if d := account.DeletedAt(); d != nil {
		t := d.Time()
		deletedAt = &t
	}
	insertAccount := fmt.Sprintf(`
		INSERT INTO %s (id, name, email, whatsapp, password_hash, created_at, updated_at, deleted_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`, r.tables.accounts)
	if _, err := tx.Exec(ctx, insertAccount,
		account.ID().Value(),
		account.Name(),
		account.Email().Value(),
		account.WhatsApp().Value(),
		account.Password().Value(),
		account.CreatedAt().Time(),
		account.UpdatedAt().Time(),
		deletedAt,
	); err != nil {
		return fail(err)
	}

	insertPending := fmt.Sprintf(`
		INSERT INTO %s (account_id, type, created_at, updated_at)
		VALUES ($1, $2, $3, $4)
	`, r.tables.pendings)
	for _, p := range account.PendingVerifications() {
		if _, err := tx.Exec(ctx, insertPending,
			account.ID().Value(), string(p), account.CreatedAt().Time(), account.UpdatedAt().Time(),
		); err != nil {
			return fail(err)
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return fail(err)
	}
	return nil
}
