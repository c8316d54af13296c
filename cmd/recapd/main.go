package main

import (
	"context"
	"log"
	"os/signal"
	"path/filepath"
	"syscall"

	"recap/internal/analysis"
	"recap/internal/config"
	"recap/internal/daemon"
	"recap/internal/history"
	"recap/internal/logging"
	"recap/internal/resultcache"
	"recap/internal/subtitles"
	"recap/internal/summarizer"
)

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	cfg, configPath, _, err := config.Load("")
	if err != nil {
		log.Fatalf("load config: %v", err)
	}
	if err := cfg.EnsureDirectories(); err != nil {
		log.Fatalf("prepare directories: %v", err)
	}

	logger, err := logging.New(logging.Options{
		Level:  cfg.Logging.Level,
		Format: cfg.Logging.Format,
		OutputPaths: []string{
			"stdout",
			filepath.Join(cfg.Paths.LogDir, "recapd.log"),
		},
	})
	if err != nil {
		log.Fatalf("init logger: %v", err)
	}
	logger.Info("starting recapd", logging.String("config", configPath))

	store, err := history.Open(cfg)
	if err != nil {
		logger.Error("open history store", logging.Error(err))
		return
	}

	cache := resultcache.NewMemory(cfg.Cache.TTL())
	runner := subtitles.NewRunner(cfg.Subtitles, cfg.YtdlpBinary(), logger)
	summarizerClient := summarizer.New(cfg.GetLLM(), logger)

	pipeline := analysis.NewPipeline(cfg, runner, summarizerClient, cache, logger)
	pipeline.WithRecorder(store)

	d, err := daemon.New(cfg, pipeline, store, logger)
	if err != nil {
		logger.Error("create daemon", logging.Error(err))
		return
	}
	defer d.Close()

	if err := d.Start(ctx); err != nil {
		logger.Error("daemon start", logging.Error(err))
		return
	}

	<-ctx.Done()
	logger.Info("recapd shutting down")
}
