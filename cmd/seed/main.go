package main

import (
	"context"

	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"

	"github.com/peatti/auth-server/config"
	"github.com/peatti/auth-server/internal/application"
	"github.com/peatti/auth-server/internal/container"
	"github.com/peatti/auth-server/internal/domain/apperror"
	"github.com/peatti/auth-server/internal/domain/entity"
	pginfra "github.com/peatti/auth-server/internal/infrastructure/postgres"
	"github.com/peatti/auth-server/internal/router"
	"github.com/peatti/auth-server/pkg/helpers"
)

type demoAccount struct {
	role  entity.Role
	input application.SignUpInput
}

var demoAccounts = []demoAccount{
	{entity.RoleCustomer, application.SignUpInput{
		Name: "Demo Customer", Email: "customer@example.com", WhatsApp: "+15550000001", Password: "password123",
	}},
	{entity.RoleRestaurantOwner, application.SignUpInput{
		Name: "Demo Owner", Email: "owner@example.com", WhatsApp: "+15550000002", Password: "password123",
	}},
}

// Seeds one account per role through the regular sign-up flow, so the
// same validation and hashing apply. Reruns are no-ops.
func main() {
	_ = godotenv.Load()
	cfg := config.Load()
	logger := helpers.NewLogger(cfg.AppName+"-seed", cfg.Env, cfg.LogLevel)

	ctx := context.Background()
	pool, err := pginfra.NewPool(ctx, pginfra.PoolConfig{
		DSN:           cfg.PostgresDSN(),
		MaxConns:      2,
		MinConns:      0,
		MaxConnLife:   cfg.DBMaxConnLife,
		QueryLogLevel: "none",
	}, logger)
	if err != nil {
		logger.WithError(err).Fatal("failed to connect to postgres")
	}

	// No cache or index: the seeder writes straight to Postgres.
	c := container.New(cfg, logger, pool, nil, nil)
	defer c.Close()

	for _, demo := range demoAccounts {
		fields := logrus.Fields{"role": demo.role.String(), "email": demo.input.Email}
		out, err := router.BuildSignUp(c, demo.role).Execute(ctx, demo.input)
		switch {
		case apperror.IsKind(err, apperror.KindEmailAlreadyInUse), apperror.IsKind(err, apperror.KindWhatsAppAlreadyInUse):
			logger.WithFields(fields).Info("already seeded")
		case err != nil:
			logger.WithFields(fields).WithError(err).Fatal("failed to seed account")
		default:
			fields["id"] = out.Account.ID().String()
			logger.WithFields(fields).Info("seeded account")
		}
	}
}
