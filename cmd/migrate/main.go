package main

import (
	"errors"
	"flag"
	"fmt"
	"os"
	"strconv"

	"github.com/sahithdaddla/latish13-Payslip-Module/internal/shared/config"
	"github.com/sahithdaddla/latish13-Payslip-Module/migrations"

	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	"github.com/golang-migrate/migrate/v4/source/iofs"
	"go.uber.org/zap"
)

func main() {
	flag.Parse()
	args := flag.Args()
	if len(args) == 0 {
		usage()
		os.Exit(1)
	}

	logger, err := zap.NewDevelopment()
	if err != nil {
		panic(err)
	}
	defer logger.Sync()
	log := logger.Named("migrate")

	cfg, err := config.Load()
	if err != nil {
		log.Fatal("load config failed", zap.Error(err))
	}

	m, err := newMigrator(cfg)
	if err != nil {
		log.Fatal("migration init failed", zap.Error(err))
	}
	defer m.Close()
	m.Log = &migrateLogger{log: log.Sugar()}

	switch args[0] {
	case "up":
		if err := m.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
			log.Fatal("up failed", zap.Error(err))
		}
		log.Info("up completed")

	case "down":
		steps := 1
		if len(args) > 1 {
			n, err := strconv.Atoi(args[1])
			if err != nil || n < 1 {
				log.Fatal("down: invalid steps argument", zap.String("steps", args[1]))
			}
			steps = n
		}
		if err := m.Steps(-steps); err != nil && !errors.Is(err, migrate.ErrNoChange) {
			log.Fatal("down failed", zap.Error(err))
		}
		log.Info("down completed", zap.Int("steps", steps))

	case "version":
		v, dirty, err := m.Version()
		if err != nil && !errors.Is(err, migrate.ErrNilVersion) {
			log.Fatal("version failed", zap.Error(err))
		}
		fmt.Printf("version: %d  dirty: %v\n", v, dirty)

	case "force":
		if len(args) < 2 {
			log.Fatal("force: version argument required")
		}
		v, err := strconv.Atoi(args[1])
		if err != nil {
			log.Fatal("force: invalid version", zap.String("version", args[1]))
		}
		if err := m.Force(v); err != nil {
			log.Fatal("force failed", zap.Error(err))
		}
		log.Info("forced", zap.Int("version", v))

	default:
		usage()
		os.Exit(1)
	}
}

// newMigrator reads SQL from MIGRATIONS_PATH when set and from the embedded
// migrations otherwise.
func newMigrator(cfg *config.Config) (*migrate.Migrate, error) {
	if cfg.MigrationsPath != "" {
		return migrate.New("file://"+cfg.MigrationsPath, cfg.MigrationURL())
	}

	src, err := iofs.New(migrations.FS, ".")
	if err != nil {
		return nil, err
	}
	return migrate.NewWithSourceInstance("iofs", src, cfg.MigrationURL())
}

type migrateLogger struct {
	log *zap.SugaredLogger
}

func (l *migrateLogger) Printf(format string, v ...any) {
	l.log.Infof(format, v...)
}

func (l *migrateLogger) Verbose() bool { return false }

func usage() {
	fmt.Fprintln(os.Stderr, `Usage: migrate <command> [args]

Commands:
  up           Apply all pending migrations
  down [N]     Roll back N migrations (default: 1)
  version      Print current migration version
  force <V>    Force set migration version (clears dirty state)

Environment:
  DATABASE_URL      Postgres URL; built from DB_* when empty.
  MIGRATIONS_PATH   Read SQL from this directory instead of the embedded set.`)
}
