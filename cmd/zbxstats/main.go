// @title           zbxstats API
// @version         1.0
// @description     Resampled and host-aggregated item history read from a Zabbix-style store.
// @termsOfService  http://swagger.io/terms/

// @contact.name   API Support
// @contact.url    http://www.swagger.io/support
// @contact.email  support@swagger.io

// @license.name  Apache 2.0
// @license.url   http://www.apache.org/licenses/LICENSE-2.0.html

// @securityDefinitions.apikey ApiKeyAuth
// @in header
// @name X-API-Key
// @description API Key authentication

// @host      localhost:8080
// @BasePath  /api/v1

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

	"github.com/urfave/cli/v2"
	"golang.org/x/sync/errgroup"

	_ "zbxstats/docs" // Swagger docs

	apiserver "zbxstats/internal/api"
	catalogapp "zbxstats/internal/catalog/application"
	cataloginfra "zbxstats/internal/catalog/infrastructure"
	configapp "zbxstats/internal/config/application"
	historyapp "zbxstats/internal/history/application"
	historyinfra "zbxstats/internal/history/infrastructure"
	"zbxstats/internal/infrastructure/database"
	"zbxstats/internal/infrastructure/logger"
	entityinfra "zbxstats/internal/shared/entity/infrastructure"
	statsapp "zbxstats/internal/stats/application"
)

const shutdownTimeout = 5 * time.Second

func newApp() *cli.App {
	return &cli.App{
		Name:  "zbxstats",
		Usage: "serve resampled item history from a Zabbix-style store",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "api-key", Usage: "API key required in X-API-Key (env ZBXSTATS_API_KEY)"},
			&cli.StringFlag{Name: "port", Usage: "HTTP port (env ZBXSTATS_API_PORT, default 8080)"},
			&cli.StringFlag{Name: "log-level", Usage: "DEBUG, INFO, WARN or ERROR (env ZBXSTATS_LOG_LEVEL)"},
			&cli.StringFlag{Name: "log-format", Usage: "text or json (env ZBXSTATS_LOG_FORMAT)"},
			&cli.StringFlag{Name: "log-output", Usage: "stdout, stderr or a file path (env ZBXSTATS_LOG_OUTPUT)"},
			&cli.StringFlag{Name: "log-mute", Usage: "comma separated message prefixes to drop (env ZBXSTATS_LOG_MUTE)"},
			&cli.StringFlag{Name: "db-driver", Usage: "sqlite or postgres (env ZBXSTATS_DB_DRIVER)"},
			&cli.StringFlag{Name: "db-dsn", Usage: "database file or connection string (env ZBXSTATS_DB_DSN)"},
			&cli.StringFlag{Name: "config", Aliases: []string{"c"}, Usage: "YAML engine and inventory file (env ZBXSTATS_CONFIG)"},
			&cli.StringFlag{Name: "env-file", Usage: "dotenv file loaded before reading the environment", Value: configapp.DefaultEnvFile},
			&cli.BoolFlag{Name: "dev", Usage: "serve Swagger UI (env ZBXSTATS_DEV_MODE)"},
		},
		Action: func(c *cli.Context) error {
			return run(c.Context, configapp.Flags{
				APIKey:     c.String("api-key"),
				Port:       c.String("port"),
				LogLevel:   c.String("log-level"),
				LogFormat:  c.String("log-format"),
				LogOutput:  c.String("log-output"),
				LogMute:    c.String("log-mute"),
				DBDriver:   c.String("db-driver"),
				DBDSN:      c.String("db-dsn"),
				ConfigPath: c.String("config"),
				DevMode:    c.Bool("dev"),
			}, c.String("env-file"))
		},
	}
}

func run(ctx context.Context, flags configapp.Flags, envFile string) error {
	if _, err := configapp.LoadEnvFile(logger.DefaultLogger(), envFile); err != nil {
		return err
	}

	runtimeCfg := configapp.LoadRuntimeConfig(flags)
	if err := runtimeCfg.Validate(); err != nil {
		return err
	}

	appLogger := logger.New(logger.Options{
		Level:  runtimeCfg.LogLevel,
		Format: runtimeCfg.LogFormat,
		Output: runtimeCfg.LogOutput,
		Mute:   runtimeCfg.LogMute,
	})
	logger.SetDefaultLogger(appLogger)

	appLogger.Info("Starting zbxstats", "version", "1.0", "db_driver", runtimeCfg.DBDriver)

	sigCtx, cancel := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer cancel()

	appLogger.Debug("Connecting to database", "driver", runtimeCfg.DBDriver)
	db, err := database.Connect(sigCtx, runtimeCfg.DBDriver, runtimeCfg.DBDSN)
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	defer db.Close()

	hostRepo := entityinfra.NewRepository(db)
	itemRepo := cataloginfra.NewRepository(db)

	configLoader := configapp.NewLoader(appLogger, hostRepo, itemRepo)
	cfg, err := configLoader.Load(sigCtx, runtimeCfg.ConfigPath)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	if err := configLoader.Seed(sigCtx, cfg.Inventory); err != nil {
		return fmt.Errorf("failed to seed inventory: %w", err)
	}
	appLogger.Info("Configuration loaded", "hosts", len(cfg.Inventory.Hosts), "concurrency", cfg.Engine.Concurrency)

	historyRepo := historyinfra.NewRepository(db, cfg.Engine.QueryTimeout)
	catalog := catalogapp.NewLookup(itemRepo).WithDefaultDelay(cfg.Engine.DefaultDelay)
	statsService := statsapp.NewService(appLogger, hostRepo, catalog, historyRepo, historyRepo,
		statsapp.Config{Concurrency: cfg.Engine.Concurrency})
	recorder := historyapp.NewRecorder(appLogger, itemRepo, historyRepo)

	apiServer, err := apiserver.NewServer(appLogger, runtimeCfg, hostRepo, statsService, recorder)
	if err != nil {
		return fmt.Errorf("failed to create API server: %w", err)
	}

	var housekeeper *historyapp.Housekeeper
	if cfg.Housekeeping.Enabled {
		housekeeper = historyapp.NewHousekeeper(appLogger, itemRepo, historyRepo, cfg.Housekeeping.Interval)
		housekeeper.Start(sigCtx)
		appLogger.Debug("Housekeeper started", "interval", cfg.Housekeeping.Interval)
	}

	g, gctx := errgroup.WithContext(sigCtx)
	g.Go(func() error {
		if err := apiServer.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("API server error: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		appLogger.Info("Shutting down")

		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer shutdownCancel()

		var errs []error
		if err := apiServer.Shutdown(shutdownCtx); err != nil {
			errs = append(errs, fmt.Errorf("API server shutdown error: %w", err))
		}
		if housekeeper != nil {
			if err := housekeeper.Stop(shutdownCtx); err != nil {
				errs = append(errs, fmt.Errorf("housekeeper shutdown error: %w", err))
			}
		}
		return errors.Join(errs...)
	})

	appLogger.Info("zbxstats started", "port", runtimeCfg.APIPort)
	if err := g.Wait(); err != nil {
		return err
	}
	appLogger.Info("Graceful shutdown completed")
	return nil
}

func main() {
	if err := newApp().Run(os.Args); err != nil {
		logger.DefaultLogger().Error("Application error", "err", err)
		os.Exit(1)
	}
}
