package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/sirupsen/logrus"

	"github.com/hongminglow/all-in-admin/internal/api"
	"github.com/hongminglow/all-in-admin/internal/auth"
	"github.com/hongminglow/all-in-admin/internal/config"
	"github.com/hongminglow/all-in-admin/internal/logging"
	"github.com/hongminglow/all-in-admin/internal/metrics"
	"github.com/hongminglow/all-in-admin/internal/router"
	"github.com/hongminglow/all-in-admin/internal/server"
	"github.com/hongminglow/all-in-admin/internal/services"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		logrus.Fatalf("load config: %v", err)
	}

	log, err := logging.New(cfg.LogLevel, cfg.LogFormat)
	if err != nil {
		logrus.Fatalf("init logger: %v", err)
	}

	m := metrics.New(prometheus.DefaultRegisterer)
	client, err := api.New(api.Options{
		BaseURL: cfg.APIBaseURL,
		Timeout: cfg.APITimeout,
		Logger:  log,
		Metrics: m,
	})
	if err != nil {
		log.Fatalf("init api client: %v", err)
	}

	table, err := router.NewTable(router.DefaultRoutes())
	if err != nil {
		log.Fatalf("init route table: %v", err)
	}

	srv := server.New(cfg, server.Deps{
		Tokens:   auth.NewTokenManager(cfg.JWTSecret, cfg.JWTIssuer, cfg.JWTTTL),
		Guard:    router.NewGuard(table, log, m),
		Registry: services.NewRegistry(client, log, m),
		Gatherer: prometheus.DefaultGatherer,
		Logger:   log,
	})

	go func() {
		log.WithFields(logrus.Fields{
			"addr":    cfg.HTTPAddress(),
			"backend": cfg.APIBaseURL,
		}).Info("admin console listening")
		if err := srv.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("http server error: %v", err)
		}
	}()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	<-sigCh

	ctxShutdown, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctxShutdown); err != nil {
		log.Errorf("graceful shutdown error: %v", err)
	}
}
