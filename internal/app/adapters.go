// Package app wires the infrastructure adapters shared by the risk binaries.
package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/MarwanRagab123/Bank-risk-analysis/internal/domain/port"
	"github.com/MarwanRagab123/Bank-risk-analysis/internal/infrastructure/config"
	"github.com/MarwanRagab123/Bank-risk-analysis/internal/infrastructure/kafka"
	"github.com/MarwanRagab123/Bank-risk-analysis/internal/infrastructure/postgres"
	"github.com/MarwanRagab123/Bank-risk-analysis/internal/infrastructure/redis"
	pkgkafka "github.com/MarwanRagab123/Bank-risk-analysis/pkg/kafka"
	pkgpostgres "github.com/MarwanRagab123/Bank-risk-analysis/pkg/postgres"
)

// Selection chooses which optional adapters to connect.
type Selection struct {
	Persist bool
	Publish bool
}

// Adapters are the connected infrastructure adapters. Repo and Publisher are
// nil when the matching adapter was not selected.
type Adapters struct {
	Repo      port.RunRepository
	Publisher port.EventPublisher

	// Checks are readiness probes keyed by dependency name.
	Checks map[string]func(context.Context) error

	closers []func() error
}

// Connect opens the selected adapters. Persistence requires DATABASE_URL and
// runs the schema migrations; a Redis cache is layered on top when REDIS_URL
// is set. Publishing requires KAFKA_BROKERS.
func Connect(ctx context.Context, cfg *config.Config, sel Selection, logger *slog.Logger) (*Adapters, error) {
	a := &Adapters{Checks: map[string]func(context.Context) error{}}

	if sel.Persist {
		if err := a.connectStore(ctx, cfg, logger); err != nil {
			a.Close()
			return nil, err
		}
	}
	if sel.Publish {
		if err := a.connectBroker(cfg, logger); err != nil {
			a.Close()
			return nil, err
		}
	}
	return a, nil
}

func (a *Adapters) connectStore(ctx context.Context, cfg *config.Config, logger *slog.Logger) error {
	if cfg.DatabaseURL == "" {
		return errors.New("persistence requested but DATABASE_URL is not set")
	}

	pool, err := pkgpostgres.NewPool(ctx, pkgpostgres.Config{URL: cfg.DatabaseURL})
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	a.closers = append(a.closers, func() error { pool.Close(); return nil })

	if err := pkgpostgres.RunMigrations(cfg.DatabaseURL, postgres.Migrations, postgres.MigrationsDir); err != nil {
		return fmt.Errorf("failed to run migrations: %w", err)
	}
	logger.Info("connected to database")

	a.Checks["database"] = func(ctx context.Context) error { return pkgpostgres.HealthCheck(ctx, pool) }
	a.Repo = postgres.NewRunRepository(pool)

	if cfg.RedisURL == "" {
		return nil
	}
	cache, err := redis.NewClient(ctx, cfg.RedisURL)
	if err != nil {
		return fmt.Errorf("failed to connect to redis: %w", err)
	}
	a.closers = append(a.closers, cache.Close)
	a.Checks["redis"] = cache.Ping
	a.Repo = redis.NewCachedRunRepository(a.Repo, cache, cfg.RedisTTL, logger)
	logger.Info("run cache enabled", "ttl", cfg.RedisTTL)
	return nil
}

func (a *Adapters) connectBroker(cfg *config.Config, logger *slog.Logger) error {
	if len(cfg.KafkaBrokers) == 0 {
		return errors.New("publishing requested but KAFKA_BROKERS is not set")
	}

	producer, err := pkgkafka.NewProducer(pkgkafka.Config{
		Brokers:  cfg.KafkaBrokers,
		ClientID: cfg.KafkaClientID,
	})
	if err != nil {
		return fmt.Errorf("failed to create kafka producer: %w", err)
	}
	a.closers = append(a.closers, producer.Close)
	a.Publisher = kafka.NewPublisher(producer, cfg.KafkaTopic, logger)
	logger.Info("event publishing enabled", "brokers", cfg.KafkaBrokers, "topic", cfg.KafkaTopic)
	return nil
}

// Close releases the adapters in reverse order of opening.
func (a *Adapters) Close() error {
	var errs []error
	for i := len(a.closers) - 1; i >= 0; i-- {
		errs = append(errs, a.closers[i]())
	}
	a.closers = nil
	return errors.Join(errs...)
}

// Compile-time assertion that the pool satisfies postgres.DB.
var _ postgres.DB = (*pgxpool.Pool)(nil)
