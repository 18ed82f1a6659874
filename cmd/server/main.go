// cmd/server/main.go
package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os/signal"
	"syscall"

	"go.uber.org/zap"

	"coffee-subscribe/internal/client"
	"coffee-subscribe/internal/common/config"
	"coffee-subscribe/internal/common/logger"
	"coffee-subscribe/internal/common/observability"
	"coffee-subscribe/internal/mail"
	"coffee-subscribe/internal/router"
	"coffee-subscribe/internal/subscription"
	"coffee-subscribe/internal/web"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		bootLog := logger.New("info", "console")
		bootLog.Fatal("config load failed", zap.Error(err))
	}

	zapLog := logger.New(cfg.Logging.Level, cfg.Logging.Format)
	defer zapLog.Sync()

	log := logger.NewZapAdapter(zapLog)

	zapLog.Info("starting subscription service",
		zap.String("name", cfg.App.Name),
		zap.String("environment", cfg.App.Environment),
		zap.String("emailMode", cfg.Email.Mode),
	)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	obs := observability.New(cfg.App.Name)
	defer obs.Shutdown()

	dispatcher, err := buildDispatcher(ctx, cfg, log)
	if err != nil {
		zapLog.Fatal("dispatcher init failed", zap.Error(err))
	}

	service := subscription.NewService(subscription.ServiceDependencies{
		Dispatcher: dispatcher,
		Logger:     log,
		Obs:        obs,
	}, cfg.Email)

	// The form page submits through the same HTTP contract a browser or SDK
	// caller would use, against this process's own listen address. One client
	// per form post; the in-flight guard must never span users.
	newSubmit := func() *client.Client {
		return client.New(fmt.Sprintf("http://%s", cfg.Server.Addr()), nil, log)
	}

	engine := router.New(router.Handlers{
		Subscribe: subscription.NewHandler(service, log),
		Web:       web.NewHandler(newSubmit, log),
	}, log)

	srv := &http.Server{
		Addr:         cfg.Server.Addr(),
		Handler:      engine,
		ReadTimeout:  config.GetDuration(cfg.Server.ReadTimeout),
		WriteTimeout: config.GetDuration(cfg.Server.WriteTimeout),
	}

	go func() {
		zapLog.Info("listening", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			zapLog.Fatal("server failed", zap.Error(err))
		}
	}()

	<-ctx.Done()
	zapLog.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), config.GetDuration(cfg.Server.ShutdownTimeout))
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		zapLog.Error("graceful shutdown failed", zap.Error(err))
	}
}

func buildDispatcher(ctx context.Context, cfg *config.Config, log logger.Logger) (mail.Dispatcher, error) {
	switch cfg.Email.Mode {
	case "ses":
		return mail.NewSESDispatcher(ctx, cfg.Email.AWSRegion, cfg.Email.Sender(), log)
	default:
		return mail.NewDemoDispatcher(log), nil
	}
}
