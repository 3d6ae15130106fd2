package bootstrap

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type ServerConfig struct {
	Port            string
	ReadTimeout     time.Duration
	WriteTimeout    time.Duration
	IdleTimeout     time.Duration
	ShutdownTimeout time.Duration
}

func DefaultServerConfig(port string) ServerConfig {
	return ServerConfig{
		Port:            port,
		ReadTimeout:     5 * time.Second,
		WriteTimeout:    10 * time.Second,
		IdleTimeout:     60 * time.Second,
		ShutdownTimeout: 10 * time.Second,
	}
}

// StartHTTPServer runs the router until SIGINT/SIGTERM, then drains
// in-flight requests and runs onShutdown hooks in order.
func StartHTTPServer(
	router *gin.Engine,
	cfg ServerConfig,
	logger *zap.Logger,
	onShutdown ...func(context.Context) error,
) {
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(quit)

	Serve(router, cfg, logger, quit, onShutdown...)
}

// Serve is StartHTTPServer with the stop signal supplied by the caller.
func Serve(
	router *gin.Engine,
	cfg ServerConfig,
	logger *zap.Logger,
	stop <-chan os.Signal,
	onShutdown ...func(context.Context) error,
) {
	log := logger.Named("http")
	server := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      router,
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
		IdleTimeout:  cfg.IdleTimeout,
	}

	go func() {
		log.Info("HTTP server running", zap.String("port", cfg.Port))
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal("ListenAndServe error", zap.Error(err))
		}
	}()

	sig := <-stop
	log.Info("shutdown signal received", zap.String("signal", sig.String()))

	timeout := cfg.ShutdownTimeout
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		log.Error("forced shutdown", zap.Error(err))
	} else {
		log.Info("server exited gracefully")
	}

	for _, hook := range onShutdown {
		if err := hook(ctx); err != nil {
			log.Error("shutdown hook failed", zap.Error(err))
		}
	}
}
