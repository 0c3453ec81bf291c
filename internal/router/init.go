package router

import (
	"github.com/peatti/auth-server/internal/application"
	"github.com/peatti/auth-server/internal/container"
	"github.com/peatti/auth-server/internal/domain/entity"
	repo "github.com/peatti/auth-server/internal/domain/repository"
	"github.com/peatti/auth-server/internal/infrastructure/crypto"
	esinfra "github.com/peatti/auth-server/internal/infrastructure/elasticsearch"
	pginfra "github.com/peatti/auth-server/internal/infrastructure/postgres"
	redisinfra "github.com/peatti/auth-server/internal/infrastructure/redis"
	handlers "github.com/peatti/auth-server/internal/interface/http"
	"github.com/peatti/auth-server/internal/router/modules"
)

// BuildAccountRepository stacks the storage for one role:
// Redis cache -> Elasticsearch indexing -> Postgres.
func BuildAccountRepository(c *container.Container, role entity.Role) repo.AccountRepository {
	var r repo.AccountRepository = pginfra.NewAccountRepository(c.PGPool, role, c.Logger, c.Metrics)
	if c.ES != nil {
		r = esinfra.NewIndexedAccountRepository(r, esinfra.NewAccountIndexer(c.ES, c.Config.ESAccountsIndex, c.Logger))
	}
	if c.Redis != nil {
		r = redisinfra.NewCachedAccountRepository(r, c.Redis, role, c.Config.AccountCacheTTL, c.Logger, c.Metrics)
	}
	return r
}

// BuildSignUp assembles the sign-up use case for role.
func BuildSignUp(c *container.Container, role entity.Role) *application.SignUp {
	return application.NewSignUp(
		role,
		BuildAccountRepository(c, role),
		crypto.NewBcryptProvider(c.Config.BcryptCost, c.Logger),
		c.Logger,
		c.Metrics,
	)
}

// InitModules builds every feature module from the container and adds it to the registry.
// Call once during startup.
func InitModules(r *Registry, c *container.Container) {
	signUp := handlers.NewSignUpHandler(
		handlers.NewSignUpController(BuildSignUp(c, entity.RoleCustomer), entity.RoleCustomer, c.Logger),
		handlers.NewSignUpController(BuildSignUp(c, entity.RoleRestaurantOwner), entity.RoleRestaurantOwner, c.Logger),
	)
	r.Add(modules.NewSignUpModule(signUp))

	checks := map[string]handlers.HealthCheck{}
	if c.PGPool != nil {
		checks["postgres"] = c.PingPostgres
	}
	if c.Redis != nil {
		checks["redis"] = c.PingRedis
	}
	r.Add(modules.NewHealthModule(handlers.NewHealthHandler(checks, c.Logger)))

	if c.Config.MetricsEnabled && c.Gatherer != nil {
		r.Add(modules.NewDebugModule(c.Gatherer))
	}
}
