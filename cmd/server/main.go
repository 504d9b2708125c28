package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"

	"job_backend/internal/app/config"
	"job_backend/internal/app/di"
	"job_backend/internal/app/router"
	authhandler "job_backend/internal/feature/auth/transport/handler"
	authusecase "job_backend/internal/feature/auth/usecase"
	jobshandler "job_backend/internal/feature/jobs/transport/handler"
	jobsusecase "job_backend/internal/feature/jobs/usecase"
	"job_backend/internal/platform/http/handler"
	"job_backend/internal/platform/logging"
)

const shutdownTimeout = 15 * time.Second

func main() {
	if err := run(); err != nil {
		slog.Error("server exited", "error", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	level, err := logging.ParseLevel(cfg.LogLevel)
	if err != nil {
		return err
	}
	logger := logging.Setup(os.Stdout, level, cfg.LogFormat)

	if cfg.GinMode != "" {
		gin.SetMode(cfg.GinMode)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Store
	users, closeUsers, err := di.NewUserRepository(ctx, cfg)
	if err != nil {
		return err
	}
	defer closeOnExit("user store", closeUsers)

	// Denylist
	denylist, closeDenylist := di.NewDenylist(ctx, cfg)
	defer closeOnExit("denylist", closeDenylist)

	issuer, err := di.NewTokenIssuer(cfg)
	if err != nil {
		return err
	}

	// Usecase
	authUC := authusecase.NewAuthUsecase(users, di.NewPasswordHasher(cfg), issuer, denylist)
	jobsUC := jobsusecase.NewJobsUsecase(di.NewJobFeed(cfg), cfg.JobsFeedLimit)

	// Router
	engine := router.NewRouter(
		router.Options{CORSOrigins: cfg.CORSOrigins, RequestTimeout: cfg.RequestTimeout, Logger: logger},
		router.Handlers{
			Auth:      authhandler.NewAuthHandler(authUC),
			Jobs:      jobshandler.NewJobsHandler(jobsUC),
			Readiness: handler.Readiness(authUC, 0),
		},
		authUC,
	)

	srv := &http.Server{
		Addr:              cfg.HTTPAddr,
		Handler:           engine,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		slog.Info("server listening", "addr", cfg.HTTPAddr, "store", cfg.StoreDriver, "jwt_alg", issuer.Algorithm())
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	case <-ctx.Done():
	}

	slog.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}

func closeOnExit(name string, closeFn di.Closer) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := closeFn(ctx); err != nil {
		slog.Error("failed to close "+name, "error", err)
	}
}
