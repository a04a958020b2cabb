package main

import (
	"context"
	"database/sql"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"
	"github.com/redis/go-redis/v9"
	"github.com/spf13/pflag"

	"github.com/iliyamo/course-enrollment/internal/config"
	"github.com/iliyamo/course-enrollment/internal/database"
	"github.com/iliyamo/course-enrollment/internal/lib/slogcustom"
	"github.com/iliyamo/course-enrollment/internal/middleware"
	"github.com/iliyamo/course-enrollment/internal/queue"
	"github.com/iliyamo/course-enrollment/internal/repository"
	"github.com/iliyamo/course-enrollment/internal/router"
	"github.com/iliyamo/course-enrollment/internal/service"
	"github.com/iliyamo/course-enrollment/internal/session"
)

const shutdownTimeout = 10 * time.Second

func main() {
	envFile := pflag.String("env-file", ".env", "dotenv file to load before reading the environment")
	migrateOnly := pflag.Bool("migrate-only", false, "apply database migrations and exit")
	pflag.Parse()

	if err := godotenv.Load(*envFile); err != nil {
		slog.Warn("env file not loaded, using process environment", "file", *envFile, "err", err)
	}

	cfg, err := config.Load()
	if err != nil {
		slog.Error("load config", "err", err)
		os.Exit(1)
	}
	log := setupLogger(cfg)
	slog.SetDefault(log)

	if err := run(cfg, log, *migrateOnly); err != nil {
		log.Error("server stopped", "err", err)
		os.Exit(1)
	}
}

func run(cfg config.Config, log *slog.Logger, migrateOnly bool) error {
	db, err := database.Open(cfg)
	if err != nil {
		return err
	}
	defer db.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	err = database.Migrate(ctx, db, cfg.DBDriver)
	cancel()
	if err != nil {
		return err
	}
	log.Info("migrations applied", "driver", cfg.DBDriver)
	if migrateOnly {
		return nil
	}

	redisCfg, err := config.LoadRedisConfig()
	if err != nil {
		return err
	}
	rlCfg, err := config.LoadRateLimitConfig()
	if err != nil {
		return err
	}
	cacheCfg, err := config.LoadClientCacheConfig()
	if err != nil {
		return err
	}

	rdb := config.NewRedisClient(redisCfg)
	var store session.Store
	if rdb != nil {
		defer rdb.Close()
		store = session.NewRedisStore(rdb, "session")
	} else {
		log.Warn("redis unreachable, sessions kept in memory and rate limiting off", "addr", redisCfg.Address())
		store = session.NewMemoryStore()
	}

	var events queue.Publisher = queue.Noop{}
	if cfg.EventsEnabled {
		events = queue.NewAMQPPublisher(cfg.RabbitMQURL)
	}

	e := buildServer(cfg, log, db, rdb, store, events, rlCfg, cacheCfg)

	addr := ":" + cfg.Port
	srvErr := make(chan error, 1)
	go func() {
		log.Info("listening", "addr", addr, "env", cfg.Env)
		srvErr <- e.Start(addr)
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	select {
	case err := <-srvErr:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case sig := <-stop:
		log.Info("shutting down", "signal", sig.String())
	}

	shutdownCtx, cancelShutdown := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancelShutdown()
	return e.Shutdown(shutdownCtx)
}

func buildServer(
	cfg config.Config,
	log *slog.Logger,
	db *sql.DB,
	rdb *redis.Client,
	store session.Store,
	events queue.Publisher,
	rlCfg config.RateLimitConfig,
	cacheCfg config.ClientCacheConfig,
) *echo.Echo {
	users := repository.NewUserRepo(db)
	courses := repository.NewCourseRepo(db)

	account := service.NewAccount(users, store, service.AccountOptions{
		BcryptCost:     cfg.BcryptCost,
		SessionTTL:     cfg.SessionTTL,
		UploadDir:      cfg.UploadDir,
		AvatarMaxBytes: cfg.AvatarMaxBytes,
	}, log)

	return router.New(router.Deps{
		Log:   log,
		DB:    db,
		Redis: rdb,
		Sessions: &middleware.Sessions{
			Codec:      session.NewCodec(cfg.SessionSecret, cfg.SessionTTL),
			Resolver:   account,
			CookieName: cfg.SessionCookie,
			Secure:     cfg.CookieSecure,
			Log:        log,
		},
		Account:        account,
		Catalog:        service.NewCatalog(courses, log),
		Enrollment:     service.NewEnrollment(repository.NewApplicationRepo(db), courses, events, log),
		Support:        service.NewSupport(repository.NewTicketRepo(db), log),
		RateLimit:      rlCfg,
		ClientCache:    cacheCfg,
		CORSOrigins:    cfg.CORSOrigins,
		UploadDir:      cfg.UploadDir,
		AvatarMaxBytes: cfg.AvatarMaxBytes,
	})
}

// setupLogger writes coloured text in development and JSON elsewhere.
func setupLogger(cfg config.Config) *slog.Logger {
	var level slog.Level
	switch strings.ToLower(cfg.LogLevel) {
	case "debug":
		level = slog.LevelDebug
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	default:
		level = slog.LevelInfo
	}
	if cfg.IsProd() {
		return slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: level}))
	}
	return slog.New(slogcustom.NewCustomHandler(os.Stdout, level))
}
