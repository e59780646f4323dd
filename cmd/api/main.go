package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/sirupsen/logrus"

	"sponsorwatch/internal/config"
	"sponsorwatch/internal/metrics"
	"sponsorwatch/internal/monitor"
	"sponsorwatch/internal/scheduler"
	"sponsorwatch/internal/store"
	transporthttp "sponsorwatch/internal/transport/http"
)

func main() {
	logger := logrus.New()
	logger.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})

	cfg, err := config.FromEnv()
	if err != nil {
		logger.WithError(err).Fatal("Failed to load config")
	}

	if level, err := logrus.ParseLevel(cfg.LogLevel); err == nil {
		logger.SetLevel(level)
	}

	metrics.Init(logger)

	taxonomy := monitor.DefaultTaxonomy()
	if cfg.TaxonomyPath != "" {
		taxonomy, err = monitor.LoadTaxonomy(cfg.TaxonomyPath)
		if err != nil {
			logger.WithError(err).Fatal("Failed to load taxonomy")
		}
		logger.WithField("path", cfg.TaxonomyPath).Info("Loaded custom taxonomy")
	}

	analyzer, err := monitor.NewAnalyzer(taxonomy, monitor.WithWorkers(cfg.Workers))
	if err != nil {
		logger.WithError(err).Fatal("Failed to init analyzer")
	}

	var snapshotSource monitor.Source
	if staticSource, err := monitor.NewStaticFileSource("snapshot", cfg.SnapshotPath); err != nil {
		logger.WithError(err).Warn("Snapshot file unavailable, serving built-in sample data")
		snapshotSource = monitor.SampleSource{}
	} else {
		snapshotSource = staticSource
	}

	ingestSource := monitor.NewIngestSource("ingest")

	registry, err := monitor.NewRegistry(snapshotSource, ingestSource)
	if err != nil {
		logger.WithError(err).Fatal("Failed to init source registry")
	}

	st, err := store.New(cfg.DBPath)
	if err != nil {
		logger.WithError(err).Fatal("Failed to open run archive")
	}
	defer st.Close()

	server := transporthttp.NewServer(analyzer, registry, ingestSource, st, logger, cfg.CacheTTL)

	sched := scheduler.New(logger)
	if err := sched.AddJob("refresh", cfg.RefreshSchedule, server.Refresh); err != nil {
		logger.WithError(err).Fatal("Failed to schedule refresh job")
	}
	sched.Start()
	defer sched.Stop()

	// Warm the cache and archive an initial run before serving traffic.
	{
		ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
		if err := server.Refresh(ctx); err != nil {
			logger.WithError(err).Error("Initial analysis run failed")
		}
		cancel()
	}

	httpServer := &http.Server{
		Addr:         cfg.ListenAddr,
		Handler:      withLogging(logger, withCORS(server.Routes())),
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		logger.WithField("addr", cfg.ListenAddr).Info("SponsorWatch API listening")
		if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.WithError(err).Fatal("Listen failed")
		}
	}()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	sig := <-sigCh
	logger.WithField("signal", sig.String()).Info("Shutting down")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := httpServer.Shutdown(ctx); err != nil {
		logger.WithError(err).Error("Graceful shutdown failed")
	}
}

func withLogging(logger *logrus.Logger, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		next.ServeHTTP(w, r)

		logger.WithFields(logrus.Fields{
			"method":   r.Method,
			"path":     r.URL.Path,
			"duration": time.Since(start).String(),
		}).Debug("Request handled")
	})
}

func withCORS(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")

		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusOK)
			return
		}

		next.ServeHTTP(w, r)
	})
}
