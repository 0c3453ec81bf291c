// Package container holds the infrastructure built once by the process entry point.
// Nothing here is global: the entry point owns a Container and passes it to the router.
package container

import (
	"context"

	"github.com/elastic/go-elasticsearch/v8"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"

	"github.com/peatti/auth-server/config"
	"github.com/peatti/auth-server/internal/infrastructure/metrics"
)

type Container struct {
	Config  *config.Config
	Logger  *logrus.Logger
	PGPool  *pgxpool.Pool
	Redis   *redis.Client
	ES      *elasticsearch.Client // nil when indexing is disabled
	Metrics *metrics.Metrics
	// Gatherer backs the /metrics endpoint.
	Gatherer prometheus.Gatherer
}

// New wires the metrics registry; the clients are supplied by the caller.
func New(cfg *config.Config, logger *logrus.Logger, pool *pgxpool.Pool, rdb *redis.Client, es *elasticsearch.Client) *Container {
	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	return &Container{
		Config:   cfg,
		Logger:   logger,
		PGPool:   pool,
		Redis:    rdb,
		ES:       es,
		Metrics:  metrics.New("auth_server", reg),
		Gatherer: reg,
	}
}

// Close releases the clients in reverse order of construction.
func (c *Container) Close() {
	if c.Redis != nil {
		_ = c.Redis.Close()
	}
	if c.PGPool != nil {
		c.PGPool.Close()
	}
}

// PingPostgres and PingRedis are the health probes of the backing stores.
func (c *Container) PingPostgres(ctx context.Context) error {
	return c.PGPool.Ping(ctx)
}

func (c *Container) PingRedis(ctx context.Context) error {
	return c.Redis.Ping(ctx).Err()
}
