// @title           Client Registry API
// @version         1.0
// @description     Client management dashboard for a law firm: sessions, client intake, search and activity.
// @BasePath        /
// @securityDefinitions.apikey BearerAuth
// @in              header
// @name            Authorization
// @description     Type "Bearer" followed by the session token.
package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"

	"github.com/nolivos/client-registry/internal/api"
	"github.com/nolivos/client-registry/internal/api/handler"
	"github.com/nolivos/client-registry/internal/api/metrics"
	"github.com/nolivos/client-registry/internal/core/ports"
	"github.com/nolivos/client-registry/internal/core/service"
	"github.com/nolivos/client-registry/internal/infrastructure/config"
	"github.com/nolivos/client-registry/internal/infrastructure/db/memory"
	mongodb "github.com/nolivos/client-registry/internal/infrastructure/db/mongo"
	redisdb "github.com/nolivos/client-registry/internal/infrastructure/db/redis"
	"github.com/nolivos/client-registry/internal/infrastructure/identity"
	"github.com/nolivos/client-registry/internal/infrastructure/notify"
	"github.com/nolivos/client-registry/internal/infrastructure/queue"
	"github.com/nolivos/client-registry/pkg/logger"
)

const shutdownTimeout = 10 * time.Second

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg, err := config.Load(ctx)
	if err != nil {
		fmt.Fprintf(os.Stderr, "config error: %v\n", err)
		os.Exit(1)
	}

	log := logger.Init(logger.Options{
		Level:   cfg.LogLevel,
		Pretty:  cfg.IsDevelopment(),
		Service: "client-registry",
	})

	if err := run(ctx, cfg, log); err != nil {
		log.Error().Err(err).Msg("server stopped")
		os.Exit(1)
	}
}

func run(ctx context.Context, cfg *config.Config, log zerolog.Logger) error {
	checks := map[string]handler.Check{}

	var (
		clients  ports.ClientRepository   = memory.NewClientRepository()
		activity ports.ActivityRepository = memory.NewActivityRepository(0)
		sessions ports.SessionStore       = memory.NewSessionStore()
		verifier ports.IdentityVerifier
	)

	creds, err := cfg.Credentials()
	if err != nil {
		return err
	}
	if len(creds) == 0 {
		creds = identity.DefaultCredentials
	}

	// --- MongoDB ---
	if cfg.UsesMongo() {
		client, db, err := mongodb.Connect(ctx, mongodb.Config{URI: cfg.Mongo.URI, Database: cfg.Mongo.Database})
		if err != nil {
			return err
		}
		defer func() {
			dctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
			defer cancel()
			_ = client.Disconnect(dctx)
		}()
		checks["mongodb"] = mongodb.Pinger(db)
		log.Info().Str("database", cfg.Mongo.Database).Msg("connected to mongodb")

		if cfg.ClientStore == config.BackendMongo {
			repo := mongodb.NewClientRepository(db)
			if err := repo.EnsureIndexes(ctx); err != nil {
				return err
			}
			clients = repo
			activity = mongodb.NewActivityRepository(db)
		}

		if cfg.IdentitySource == config.BackendMongo {
			repo := mongodb.NewIdentityRepository(db, cfg.BcryptCost)
			if err := repo.EnsureIndexes(ctx); err != nil {
				return err
			}
			if err := repo.Seed(ctx, creds); err != nil {
				return err
			}
			verifier = repo
		}
	}

	// --- Redis ---
	if cfg.UsesRedis() {
		rdb, err := redisdb.Connect(ctx, redisdb.Config{Addr: cfg.Redis.Addr, DB: cfg.Redis.DB})
		if err != nil {
			return err
		}
		defer rdb.Close()
		checks["redis"] = redisdb.Pinger(rdb)
		sessions = redisdb.NewSessionStore(rdb)
		log.Info().Str("addr", cfg.Redis.Addr).Msg("connected to redis")
	}

	if verifier == nil {
		static, err := identity.NewStaticVerifier(creds, cfg.BcryptCost)
		if err != nil {
			return err
		}
		verifier = static
	}

	// --- Notifications ---
	workerCtx, cancelWorkers := context.WithCancel(context.Background())
	dispatcher := queue.NewDispatcher(cfg.ActivityWorkers, activity, log)
	dispatcher.Start(workerCtx)
	defer func() {
		cancelWorkers()
		dispatcher.Wait()
	}()

	bus := notify.NewBus()
	subscribers := []func(notify.Event){
		notify.LogSink(log),
		func(ev notify.Event) {
			metrics.NotificationsTotal.WithLabelValues(string(ev.Kind), string(ev.Notification.Variant)).Inc()
		},
		func(ev notify.Event) {
			dispatcher.Enqueue(ev.Activity())
		},
	}
	for _, fn := range subscribers {
		if err := bus.Subscribe(fn); err != nil {
			return fmt.Errorf("subscribe: %w", err)
		}
	}

	// --- HTTP ---
	e := api.NewRouter(api.Dependencies{
		Sessions: service.NewSessionService(verifier, sessions, bus, cfg.JWTSecret, cfg.SessionTTL, log),
		Clients:  service.NewClientService(clients, bus, log),
		Activity: activity,
		Checks:   checks,
		Logger:   log,
	})

	errCh := make(chan error, 1)
	go func() {
		log.Info().
			Str("port", cfg.Port).
			Str("client_store", cfg.ClientStore).
			Str("identity_source", cfg.IdentitySource).
			Str("session_store", cfg.SessionStore).
			Msg("http server listening")
		if err := e.Start(":" + cfg.Port); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	log.Info().Msg("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	return e.Shutdown(shutdownCtx)
}
