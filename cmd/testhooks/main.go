package main

import (
	"context"
	"database/sql"
	"errors"
	"io/fs"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	persistence "github.com/goliatone/go-persistence-bun"
	testhooks "github.com/goliatone/go-testhooks"
	"github.com/goliatone/go-testhooks/core"
	"github.com/goliatone/go-testhooks/dispatch"
	"github.com/goliatone/go-testhooks/inbound"
	hookmigrations "github.com/goliatone/go-testhooks/migrations"
	"github.com/goliatone/go-testhooks/rest"
	"github.com/goliatone/go-testhooks/scheduler"
	sqlstore "github.com/goliatone/go-testhooks/store/sql"
	_ "github.com/lib/pq"
	_ "github.com/mattn/go-sqlite3"
	"github.com/uptrace/bun/dialect/pgdialect"
	"github.com/uptrace/bun/dialect/sqlitedialect"
	"github.com/uptrace/bun/schema"

	glog "github.com/goliatone/go-logger/glog"
)

type persistenceConfig struct {
	driver string
	server string
}

func (c persistenceConfig) GetDebug() bool                { return false }
func (c persistenceConfig) GetDriver() string             { return c.driver }
func (c persistenceConfig) GetServer() string             { return c.server }
func (c persistenceConfig) GetPingTimeout() time.Duration { return 5 * time.Second }
func (c persistenceConfig) GetOtelIdentifier() string     { return "go-testhooks" }

func main() {
	_, logger := glog.Resolve("testhooks", nil, nil)

	if err := run(logger); err != nil {
		logger.Error("service exited", "error", err.Error())
		os.Exit(1)
	}
}

func run(logger core.Logger) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	driver := getEnv("DATABASE_DRIVER", "sqlite3")
	dsn := getEnv("DATABASE_DSN", "file:testhooks.db?_foreign_keys=on")

	var dialect schema.Dialect
	switch driver {
	case "postgres":
		dialect = pgdialect.New()
	case "sqlite3":
		dialect = sqlitedialect.New()
	default:
		return errors.New("unsupported DATABASE_DRIVER: " + driver)
	}

	sqlDB, err := sql.Open(driver, dsn)
	if err != nil {
		return err
	}

	client, err := persistence.New(persistenceConfig{driver: driver, server: dsn}, sqlDB, dialect)
	if err != nil {
		_ = sqlDB.Close()
		return err
	}
	defer client.Close()

	migrationDialect := hookmigrations.DialectSQLite
	if driver == "postgres" {
		migrationDialect = hookmigrations.DialectPostgres
	}
	if _, err := hookmigrations.Register(ctx, func(_ context.Context, dialect string, _ string, fsys fs.FS) error {
		if dialect != migrationDialect {
			return nil
		}
		client.RegisterSQLMigrations(fsys)
		return nil
	}, hookmigrations.WithValidationTargets(migrationDialect)); err != nil {
		return err
	}
	if err := client.Migrate(ctx); err != nil {
		return err
	}

	factory, err := sqlstore.NewRepositoryFactoryFromPersistence(client)
	if err != nil {
		return err
	}

	cfg := core.DefaultConfig()
	if spec := strings.TrimSpace(os.Getenv("TESTHOOKS_CRON_SPEC")); spec != "" {
		cfg.Scheduler.CronSpec = spec
	}

	service, err := testhooks.New(cfg,
		core.WithLogger(logger),
		core.WithStoreProvider(factory),
		core.WithDispatcher(dispatch.New(nil, cfg.Dispatch)),
	)
	if err != nil {
		return err
	}

	receiver, err := inbound.NewReceiver(factory.IdentityStore(), service, logger)
	if err != nil {
		return err
	}

	runner := scheduler.New(service.Config().Scheduler, logger)
	runner.RegisterCallback(func(ctx context.Context) error {
		_, err := service.RunScheduled(ctx)
		return err
	})
	if err := runner.Start(ctx); err != nil {
		return err
	}
	defer runner.Stop()

	engine := gin.New()
	engine.Use(gin.Recovery())
	rest.NewRouter(service, receiver, logger).Mount(engine)

	server := &http.Server{
		Addr:    ":" + getEnv("PORT", "8080"),
		Handler: engine,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("http server listening", "addr", server.Addr)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
			return
		}
		errCh <- nil
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	logger.Info("shutting down")
	runner.Stop()
	if err := runner.WaitForShutdown(context.Background()); err != nil {
		logger.Error("scheduler shutdown", "error", err.Error())
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return server.Shutdown(shutdownCtx)
}

func getEnv(key string, fallback string) string {
	value := strings.TrimSpace(os.Getenv(key))
	if value == "" {
		return fallback
	}
	return value
}
