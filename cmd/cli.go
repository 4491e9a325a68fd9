package cmd

import (
	"context"
	"errors"
	"fmt"
	"log"
	"os/signal"
	"syscall"

	"github.com/hamza13-12/flickfeed/internal/data/repository"
	"github.com/hamza13-12/flickfeed/internal/wire"
	"github.com/hamza13-12/flickfeed/pkg/database"
	"github.com/hamza13-12/flickfeed/pkg/utils"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

// CLI is the command line parsed by kong in main.
type CLI struct {
	EnvFile string `name:"env-file" default:".env" help:"Optional dotenv file read before the environment."`

	Serve   ServeCmd   `cmd:"" default:"1" help:"Run the HTTP API (default)."`
	Migrate MigrateCmd `cmd:"" help:"Apply the database schema and exit."`
}

type ServeCmd struct{}

type MigrateCmd struct{}

func bootstrap(envFile string) (*utils.Config, *zap.Logger, error) {
	config, err := utils.LoadConfigFrom(envFile)
	if err != nil {
		return nil, nil, fmt.Errorf("load config: %w", err)
	}

	logger, err := utils.InitLogger(config.App.LogPath, config.App.Debug)
	if err != nil {
		log.Printf("Failed to init logger: %v. Using production defaults.", err)
		logger, _ = zap.NewProduction()
	}
	return config, logger, nil
}

func (c *ServeCmd) Run(cli *CLI) error {
	config, logger, err := bootstrap(cli.EnvFile)
	if err != nil {
		return err
	}
	defer logger.Sync()

	logger.Info("Starting application",
		zap.String("app", config.App.Name),
		zap.String("port", config.App.Port),
		zap.String("db_driver", config.Database.Driver),
		zap.Bool("debug", config.App.Debug),
	)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	var repo *repository.Repository
	switch config.Database.Driver {
	case utils.DriverMemory:
		logger.Warn("Using in-memory storage, data is lost on restart")
		repo = repository.NewMemoryRepository(logger)
	default:
		db, err := database.InitDB(ctx, config.Database)
		if err != nil {
			logger.Error("Failed to connect to database", zap.Error(err))
			return err
		}
		defer db.Close()
		logger.Info("Database connected successfully")
		repo = repository.NewRepository(db, logger)
	}

	var rdb *redis.Client
	if config.Redis.Enabled() {
		rdb, err = database.InitRedis(ctx, config.Redis)
		if err != nil {
			logger.Error("Failed to connect to redis", zap.Error(err))
			return err
		}
		defer rdb.Close()
		logger.Info("Redis connected, rate limiting enabled",
			zap.Int("requests", config.RateLimit.Requests),
			zap.Duration("window", config.RateLimit.Window))
	}

	app := wire.Wiring(repo, config, logger, rdb)

	return APIServer(ctx, app.Router, config.App.Port, logger)
}

func (c *MigrateCmd) Run(cli *CLI) error {
	config, logger, err := bootstrap(cli.EnvFile)
	if err != nil {
		return err
	}
	defer logger.Sync()

	if config.Database.Driver != utils.DriverPostgres {
		return errors.New("migrate requires DB_DRIVER=postgres")
	}

	ctx := context.Background()
	db, err := database.InitDB(ctx, config.Database)
	if err != nil {
		return err
	}
	defer db.Close()

	if err := database.Migrate(ctx, db); err != nil {
		logger.Error("Migration failed", zap.Error(err))
		return err
	}

	logger.Info("Schema applied", zap.String("database", config.Database.Name))
	return nil
}
