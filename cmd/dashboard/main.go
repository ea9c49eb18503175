package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"ChurnSentinel/internal/classifier"
	"ChurnSentinel/internal/config"
	"ChurnSentinel/internal/dashboard"
	"ChurnSentinel/internal/notifier"
	"ChurnSentinel/internal/observability"
	"ChurnSentinel/internal/recorder"
	"ChurnSentinel/internal/scheduler"
	"ChurnSentinel/internal/scoring"
)

func main() {
	log.SetFlags(log.LstdFlags | log.Lshortfile)
	log.Println("[INFO] ChurnSentinel starting...")

	// Load config
	cfgPath := "configs/config.yaml"
	if v := os.Getenv("CONFIG_PATH"); v != "" {
		cfgPath = v
	}
	cfg, err := config.Load(cfgPath)
	if err != nil {
		log.Fatalf("[FATAL] load config: %v", err)
	}
	if err := cfg.Validate(); err != nil {
		log.Fatalf("[FATAL] config validation: %v", err)
	}

	// Load models once; they are never reloaded while running
	logistic := mustLoad(cfg.Models.LogisticPath)
	forest := mustLoad(cfg.Models.ForestPath)

	// Init recorder
	var rec recorder.Recorder
	if cfg.Database.SQLitePath != "" {
		sr, err := recorder.NewSQLiteRecorder(cfg.Database.SQLitePath)
		if err != nil {
			log.Printf("[WARN] init sqlite recorder failed, using noop: %v", err)
			rec = recorder.NewNoopRecorder()
		} else {
			rec = sr
			defer sr.Close()
		}
	} else {
		rec = recorder.NewNoopRecorder()
	}

	artifacts := []scheduler.Artifact{
		{Role: "logistic", Info: logistic.Info()},
		{Role: "forest", Info: forest.Info()},
	}
	infos := make([]classifier.Info, 0, len(artifacts))
	for _, a := range artifacts {
		infos = append(infos, a.Info)
		if err := rec.RecordArtifactLoad(&recorder.ArtifactLoadEvent{
			Role:        a.Role,
			Name:        a.Info.Name,
			Kind:        a.Info.Kind,
			Path:        a.Info.Path,
			Fingerprint: a.Info.Fingerprint,
			Features:    a.Info.Features,
		}); err != nil {
			log.Printf("[WARN] record artifact load: %v", err)
		}
	}

	metrics := observability.NewMetrics("")
	sc, err := scoring.NewScorer(logistic, forest, metrics)
	if err != nil {
		log.Fatalf("[FATAL] init scorer: %v", err)
	}

	// Context for graceful shutdown
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Telegram is optional; a nil notifier must not reach the Sender interface
	var tn *notifier.TelegramNotifier
	var sender scheduler.Sender
	if cfg.TelegramEnabled() {
		tn = notifier.NewTelegramNotifier(cfg.Telegram.BotToken, cfg.Telegram.ChatID, cfg.Proxy)
		sender = tn
	}

	// Init scheduler
	sched := scheduler.NewScheduler(ctx, sc, artifacts, sender, rec)
	sched.Observer = metrics
	if err := sched.RegisterAll(cfg.Schedule.ArtifactCheckCron); err != nil {
		log.Fatalf("[FATAL] register cron tasks: %v", err)
	}
	sched.Start()
	defer sched.Stop()

	if tn != nil {
		go tn.StartPolling(ctx, sched.HandleCommand)
		log.Println("[INFO] Telegram polling started")
	}

	// HTTP server
	h := dashboard.NewHandler(sc, infos, metrics.Handler())
	srv := &http.Server{
		Addr:              cfg.Server.Addr,
		Handler:           dashboard.NewRouter(h, cfg.Server.AllowedOrigins),
		ReadHeaderTimeout: 10 * time.Second,
	}
	go func() {
		log.Printf("[INFO] dashboard listening on %s", cfg.Server.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Printf("[ERROR] http server: %v", err)
			cancel()
		}
	}()

	log.Println("[INFO] ChurnSentinel is running. Press Ctrl+C to stop.")

	// Wait for shutdown signal
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	select {
	case <-sigCh:
		log.Println("[INFO] shutdown signal received, stopping...")
	case <-ctx.Done():
	}

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Printf("[WARN] http shutdown: %v", err)
	}
	cancel()
	log.Println("[INFO] ChurnSentinel stopped")
}

// mustLoad loads a model artifact or exits, naming the path and why it failed.
func mustLoad(path string) classifier.Model {
	m, err := classifier.Load(path)
	if err != nil {
		var le *classifier.LoadError
		if errors.As(err, &le) {
			log.Fatalf("[FATAL] model artifact %s is %s: %v", le.Path, le.Kind, le.Err)
		}
		log.Fatalf("[FATAL] load model %s: %v", path, err)
	}
	info := m.Info()
	log.Printf("[INFO] loaded %s model %s from %s (%d features, sha256 %s)", info.Kind, info.Name, info.Path, info.Features, info.Fingerprint)
	return m
}
