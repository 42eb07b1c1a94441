package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	"github.com/yigit/schoolreg/internal/app/migrations"
	"github.com/yigit/schoolreg/internal/config"
	"github.com/yigit/schoolreg/internal/db"
	"github.com/yigit/schoolreg/internal/pkg/logger"
)

func main() {
	flag.Parse()
	args := flag.Args()
	if len(args) == 0 {
		usage()
		os.Exit(1)
	}

	_ = godotenv.Load()

	cfg, err := config.LoadConfig(config.GetEnv("CONFIG_PATH", config.DefaultConfigPath))
	if err != nil {
		logger.Fatal().Err(err).Msg("Failed to load configuration")
	}
	if cfg.IsInMemorySQLite() {
		logger.Fatal().Msg("Refusing to migrate an in-memory database")
	}

	database, err := db.Open(cfg)
	if err != nil {
		logger.Fatal().Err(err).Msg("Failed to connect to database")
	}
	defer database.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
	defer cancel()

	m := migrations.NewMigrator(database.SQL, database.Dialect, logger.Get())

	switch args[0] {
	case "up":
		if err := m.Up(ctx); err != nil {
			logger.Fatal().Err(err).Msg("up failed")
		}
		logger.Info().Msg("migrations: up completed")

	case "down":
		steps := 1
		if len(args) > 1 {
			n, err := strconv.Atoi(args[1])
			if err != nil || n < 1 {
				logger.Fatal().Str("steps", args[1]).Msg("down: invalid steps argument")
			}
			steps = n
		}
		if err := m.Down(ctx, steps); err != nil {
			logger.Fatal().Err(err).Msg("down failed")
		}
		logger.Info().Int("steps", steps).Msg("migrations: down completed")

	case "version":
		v, dirty, err := m.Version(ctx)
		if err != nil {
			logger.Fatal().Err(err).Msg("version failed")
		}
		fmt.Printf("version: %d  dirty: %v\n", v, dirty)

	case "force":
		if len(args) < 2 {
			logger.Fatal().Msg("force: version argument required")
		}
		v, err := strconv.Atoi(args[1])
		if err != nil {
			logger.Fatal().Str("version", args[1]).Msg("force: invalid version")
		}
		if err := m.Force(ctx, v); err != nil {
			logger.Fatal().Err(err).Msg("force failed")
		}
		logger.Info().Int("version", v).Msg("migrations: forced")

	default:
		usage()
		os.Exit(1)
	}
}

func usage() {
	fmt.Fprintln(os.Stderr, `Usage: migrate <command> [args]

Commands:
  up           Apply all pending migrations
  down [N]     Roll back N migrations (default: 1)
  version      Print current migration version
  force <V>    Force set migration version (clears dirty state)

Environment:
  CONFIG_PATH  Path to the YAML config (default: configs/config.yaml)
  DB_*         Database overrides, see configs/config.yaml`)
}
