package main

import (
	"github.com/sahithdaddla/latish13-Payslip-Module/internal/app"
	"github.com/sahithdaddla/latish13-Payslip-Module/internal/bootstrap"
	"github.com/sahithdaddla/latish13-Payslip-Module/internal/shared/apperror"
	"github.com/sahithdaddla/latish13-Payslip-Module/internal/shared/config"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic(err)
	}

	logger, err := newLogger(cfg)
	if err != nil {
		panic(err)
	}
	defer logger.Sync()
	zap.ReplaceGlobals(logger)

	apperror.Init()
	decimal.MarshalJSONWithoutQuotes = true

	r := app.NewRouter(cfg, logger)

	// A closed pool cannot recover in-process; let the supervisor restart us.
	onPoolBroken := func(err error) {
		logger.Fatal("database pool closed, terminating", zap.Error(err))
	}

	application, err := app.BuildApp(r, cfg, logger, onPoolBroken)
	if err != nil {
		logger.Fatal("build app failed", zap.Error(err))
	}

	bootstrap.StartHTTPServer(
		r,
		bootstrap.DefaultServerConfig(cfg.Port),
		logger,
		application.Close,
	)
}

func newLogger(cfg *config.Config) (*zap.Logger, error) {
	if cfg.IsProduction() {
		return zap.NewProduction()
	}
	return zap.NewDevelopment()
}
