package main

import (
	"context"
	"log/slog"
	"os"
	"time"

	"github.com/dmitrymomot/authsvc/internal/auth"
	"github.com/dmitrymomot/authsvc/internal/httpapi"
	"github.com/dmitrymomot/authsvc/internal/session"
	"github.com/dmitrymomot/authsvc/internal/storage/postgres"
	"github.com/dmitrymomot/authsvc/pkg/config"
	"github.com/dmitrymomot/authsvc/pkg/httpserver"
	"github.com/dmitrymomot/authsvc/pkg/logger"
	"github.com/dmitrymomot/authsvc/pkg/pg"
	"github.com/dmitrymomot/authsvc/pkg/redis"
)

type appConfig struct {
	Addr        string        `env:"HTTP_ADDR" envDefault:":8080"`
	Environment string        `env:"APP_ENV" envDefault:"production"`
	SessionTTL  time.Duration `env:"SESSION_TTL" envDefault:"10m"`
}

func main() {
	var (
		appCfg  appConfig
		pgCfg   pg.Config
		rdsCfg  redis.Config
		httpCfg httpapi.Config
	)
	config.MustLoad(&appCfg)
	config.MustLoad(&pgCfg)
	config.MustLoad(&rdsCfg)
	config.MustLoad(&httpCfg)

	log := logger.New(logger.WithEnvironment(appCfg.Environment, "authsvc"))
	logger.SetAsDefault(log)

	if err := run(context.Background(), appCfg, pgCfg, rdsCfg, httpCfg, log); err != nil {
		log.Error("service exited with error", logger.Error(err))
		os.Exit(1)
	}
}

func run(ctx context.Context, appCfg appConfig, pgCfg pg.Config, rdsCfg redis.Config, httpCfg httpapi.Config, log *slog.Logger) error {
	pool, err := pg.Connect(ctx, pgCfg)
	if err != nil {
		return err
	}
	defer pool.Close()

	if err := pg.Migrate(ctx, pool, pgCfg, log); err != nil {
		return err
	}

	redisClient, err := redis.Connect(ctx, rdsCfg)
	if err != nil {
		return err
	}
	defer func() {
		if err := redisClient.Close(); err != nil {
			log.ErrorContext(ctx, "failed to close redis client", logger.Error(err))
		}
	}()

	svc := auth.NewService(
		postgres.NewUserRepository(pool),
		session.NewManager(session.NewRedisStore(redisClient)),
		auth.WithSessionTTL(appCfg.SessionTTL),
		auth.WithLogger(log),
	)

	handler := httpapi.NewHandler(svc, httpCfg, log)
	router := httpapi.Router(handler,
		pg.Healthcheck(pool),
		redis.Healthcheck(redisClient),
	)

	srv := httpserver.New(
		httpserver.WithAddr(appCfg.Addr),
		httpserver.WithLogger(log),
	)
	return srv.Run(ctx, router)
}
