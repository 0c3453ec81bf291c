// Package redis decorates account repositories with a read-through Redis cache.
package redis

import (
	"context"
	"time"

	goredis "github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"

	"github.com/peatti/auth-server/internal/domain/entity"
	"github.com/peatti/auth-server/internal/domain/repository"
	"github.com/peatti/auth-server/internal/domain/valueobject"
	"github.com/peatti/auth-server/internal/infrastructure/metrics"
	"github.com/peatti/auth-server/pkg/helpers"
)

const DefaultTTL = 10 * time.Minute

// CachedAccountRepository caches positive uniqueness lookups. Misses are never cached,
// so a number or address taken after a lookup is still seen by the next one.
// Cache failures are logged and fall through to the wrapped repository.
type CachedAccountRepository struct {
	next    repository.AccountRepository
	rdb     goredis.Cmdable
	role    entity.Role
	ttl     time.Duration
	Logger  logrus.FieldLogger
	Metrics *metrics.Metrics
}

var _ repository.AccountRepository = (*CachedAccountRepository)(nil)

func NewCachedAccountRepository(next repository.AccountRepository, rdb goredis.Cmdable, role entity.Role, ttl time.Duration, logger logrus.FieldLogger, m *metrics.Metrics) *CachedAccountRepository {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &CachedAccountRepository{next: next, rdb: rdb, role: role, ttl: ttl, Logger: logger, Metrics: m}
}

func (r *CachedAccountRepository) emailKey(email string) string {
	return "account:" + r.role.String() + ":email:" + email
}

func (r *CachedAccountRepository) whatsAppKey(whatsApp string) string {
	return "account:" + r.role.String() + ":whatsapp:" + whatsApp
}

func (r *CachedAccountRepository) FindByWhatsApp(ctx context.Context, whatsApp valueobject.WhatsApp) (*entity.AccountSummary, error) {
	key := r.whatsAppKey(whatsApp.Value())
	if hit := r.get(ctx, "FindByWhatsApp", key); hit != nil {
		return hit, nil
	}
	found, err := r.next.FindByWhatsApp(ctx, whatsApp)
	if err != nil || found == nil {
		return found, err
	}
	r.set(ctx, key, found)
	return found, nil
}

func (r *CachedAccountRepository) FindByEmail(ctx context.Context, email valueobject.Email) (*entity.AccountSummary, error) {
	key := r.emailKey(email.Value())
	if hit := r.get(ctx, "FindByEmail", key); hit != nil {
		return hit, nil
	}
	found, err := r.next.FindByEmail(ctx, email)
	if err != nil || found == nil {
		return found, err
	}
	r.set(ctx, key, found)
	return found, nil
}

// Save writes through and primes both lookup keys for the new account.
func (r *CachedAccountRepository) Save(ctx context.Context, account *entity.Account) error {
	if err := r.next.Save(ctx, account); err != nil {
		return err
	}
	summary := account.Summary()
	r.set(ctx, r.emailKey(summary.Email), &summary)
	r.set(ctx, r.whatsAppKey(summary.WhatsApp), &summary)
	return nil
}

func (r *CachedAccountRepository) get(ctx context.Context, method, key string) *entity.AccountSummary {
	var cached entity.AccountSummary
	ok, err := helpers.RedisGetJSON(ctx, r.rdb, key, &cached)
	if err != nil {
		r.warn("account cache read failed", key, err)
		return nil
	}
	r.Metrics.ObserveCache(method, ok)
	if !ok {
		return nil
	}
	return &cached
}

func (r *CachedAccountRepository) set(ctx context.Context, key string, summary *entity.AccountSummary) {
	if err := helpers.RedisSetJSON(ctx, r.rdb, key, summary, r.ttl); err != nil {
		r.warn("account cache write failed", key, err)
	}
}

func (r *CachedAccountRepository) warn(msg, key string, err error) {
	if r.Logger == nil {
		return
	}
	r.Logger.WithError(err).WithField("key", key).Warn(msg)
}
