package daemon

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sync/atomic"

	"github.com/gofrs/flock"

	"recap/internal/analysis"
	"recap/internal/config"
	"recap/internal/deps"
	"recap/internal/history"
	"recap/internal/logging"
)

// Daemon owns the API server, the analysis pipeline, and the instance lock.
type Daemon struct {
	cfg      *config.Config
	logger   *slog.Logger
	pipeline *analysis.Pipeline
	store    *history.Store

	lockPath string
	lock     *flock.Flock

	api     *apiServer
	running atomic.Bool
	cancel  context.CancelFunc
}

// Status represents daemon runtime information.
type Status struct {
	Running         bool          `json:"running"`
	PID             int           `json:"pid"`
	HistoryDBPath   string        `json:"history_db_path,omitempty"`
	LockFilePath    string        `json:"lock_file_path"`
	CacheTTLSeconds int           `json:"cache_ttl_sec"`
	HistoryCount    int64         `json:"history_count"`
	Dependencies    []deps.Status `json:"dependencies"`
}

// New constructs a daemon. The history store may be nil when persistence is
// disabled.
func New(cfg *config.Config, pipeline *analysis.Pipeline, store *history.Store, logger *slog.Logger) (*Daemon, error) {
	if cfg == nil || pipeline == nil {
		return nil, errors.New("daemon requires config and pipeline")
	}
	if logger == nil {
		logger = logging.NewNop()
	}

	lockPath := filepath.Join(cfg.Paths.LogDir, "recapd.lock")
	return &Daemon{
		cfg:      cfg,
		logger:   logging.NewComponentLogger(logger, "daemon"),
		pipeline: pipeline,
		store:    store,
		lockPath: lockPath,
		lock:     flock.New(lockPath),
	}, nil
}

// Start acquires the instance lock and brings up the API server. It returns
// once the server is listening; ctx cancellation triggers shutdown.
func (d *Daemon) Start(ctx context.Context) error {
	if d.running.Load() {
		return errors.New("daemon already running")
	}

	ok, err := d.lock.TryLock()
	if err != nil {
		return fmt.Errorf("acquire lock: %w", err)
	}
	if !ok {
		return errors.New("another recap daemon instance is already running")
	}

	runCtx, cancel := context.WithCancel(ctx)
	api, err := newAPIServer(d.cfg, d, d.logger)
	if err != nil {
		cancel()
		_ = d.lock.Unlock()
		return err
	}
	if api != nil {
		if err := api.start(runCtx); err != nil {
			cancel()
			_ = d.lock.Unlock()
			return err
		}
	}

	d.api = api
	d.cancel = cancel
	d.running.Store(true)
	d.logger.Info("recap daemon started", logging.String("lock", d.lockPath))
	return nil
}

// Stop shuts down the API server and releases the instance lock.
func (d *Daemon) Stop() {
	if !d.running.Load() {
		return
	}

	if d.cancel != nil {
		d.cancel()
		d.cancel = nil
	}
	if d.api != nil {
		d.api.stop()
		d.api = nil
	}
	if err := d.lock.Unlock(); err != nil {
		d.logger.Warn("failed to release daemon lock", logging.Error(err))
	}
	d.running.Store(false)
	d.logger.Info("recap daemon stopped")
}

// Close releases resources held by the daemon.
func (d *Daemon) Close() error {
	d.Stop()
	if d.store != nil {
		return d.store.Close()
	}
	return nil
}

// Analyze runs one request through the pipeline.
func (d *Daemon) Analyze(ctx context.Context, req analysis.Request) (*analysis.Result, error) {
	return d.pipeline.Analyze(ctx, req)
}

// Status reports runtime information for diagnostics.
func (d *Daemon) Status(ctx context.Context) Status {
	status := Status{
		Running:         d.running.Load(),
		PID:             os.Getpid(),
		LockFilePath:    d.lockPath,
		CacheTTLSeconds: d.cfg.Cache.TTLSeconds,
		Dependencies:    deps.CheckBinaries(deps.Default(d.cfg)),
	}
	if d.store != nil {
		status.HistoryDBPath = d.store.Path()
		if count, err := d.store.Count(ctx); err == nil {
			status.HistoryCount = count
		} else {
			d.logger.Warn("failed to count history entries", logging.Error(err))
		}
	}
	return status
}

// Addr returns the API listen address, empty before Start.
func (d *Daemon) Addr() string {
	if d.api == nil {
		return ""
	}
	return d.api.addr()
}
