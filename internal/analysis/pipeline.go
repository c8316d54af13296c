package analysis

import (
	"context"
	"errors"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"

	"recap/internal/config"
	"recap/internal/history"
	"recap/internal/logging"
	"recap/internal/services"
	"recap/internal/subtitles"
	"recap/internal/summarizer"
)

const (
	extractionFailedSummary = "Could not retrieve subtitles from the video."
	noSubtitlesSummary      = "No subtitles were found for this video."

	failureStderrTail = 3000
	successStderrTail = 1000
)

// Request carries the caller's inputs for one analysis.
type Request struct {
	URL    string
	Langs  string
	Prompt string
}

// Extractor runs the subtitle extraction ladder inside a scratch directory.
type Extractor interface {
	ExtractWithFallback(ctx context.Context, workdir, url, langs string) (subtitles.ExtractResult, error)
	CommandPreview(url, langs string) []string
}

// Summarizer produces a summary and key points from a cleaned transcript.
type Summarizer interface {
	Summarize(ctx context.Context, transcript, instruction string) (summarizer.Summary, error)
}

// Recorder persists completed analyses. Recording is best-effort.
type Recorder interface {
	Record(ctx context.Context, entry history.Entry) (int64, error)
}

// Pipeline wires extraction, cleanup, summarization, caching, and history
// into the analysis flow.
type Pipeline struct {
	cfg        *config.Config
	extractor  Extractor
	summarizer Summarizer
	cache      Cache
	recorder   Recorder
	logger     *slog.Logger
}

// NewPipeline constructs the analysis pipeline.
func NewPipeline(cfg *config.Config, extractor Extractor, summ Summarizer, cache Cache, logger *slog.Logger) *Pipeline {
	if logger == nil {
		logger = logging.NewNop()
	}
	return &Pipeline{
		cfg:        cfg,
		extractor:  extractor,
		summarizer: summ,
		cache:      cache,
		logger:     logging.NewComponentLogger(logger, "analysis"),
	}
}

// WithRecorder attaches a history recorder.
func (p *Pipeline) WithRecorder(recorder Recorder) {
	p.recorder = recorder
}

// Analyze runs one request end to end. Terminal outcomes, including
// extraction failures, come back as structured results and are cached; only
// a summarizer failure propagates as an error so the caller can surface it
// without poisoning the cache.
func (p *Pipeline) Analyze(ctx context.Context, req Request) (*Result, error) {
	url := strings.TrimSpace(req.URL)
	if url == "" {
		return nil, services.Wrap(services.ErrValidation, "analysis", "analyze", "url is required", nil)
	}

	logger := logging.WithContext(ctx, p.logger)
	subCfg := p.cfg.Subtitles
	langs := subtitles.NormalizeLangs(subCfg, req.Langs)
	prompt := strings.TrimSpace(req.Prompt)
	key := Key{URL: url, Langs: langs, Prompt: prompt}

	if cached, ok := p.cache.Get(key); ok {
		logger.Debug("cache hit",
			logging.String("url", url),
			logging.String("langs", langs),
		)
		if subCfg.Debug && cached.DebugInfo != nil {
			cached.DebugInfo.CacheTTLSeconds = p.cfg.Cache.TTLSeconds
		}
		return cached, nil
	}

	workdir := filepath.Join(p.cfg.Paths.WorkDir, "recap-"+uuid.NewString())
	if err := os.MkdirAll(workdir, 0o755); err != nil {
		return nil, services.Wrap(services.ErrConfiguration, "analysis", "create scratch dir", workdir, err)
	}
	if subCfg.KeepWorkDirs {
		logger.Info("retaining scratch dir", logging.String("workdir", workdir))
	} else {
		defer func() {
			if err := os.RemoveAll(workdir); err != nil {
				logger.Warn("failed to remove scratch dir",
					logging.String("workdir", workdir),
					logging.Error(err),
				)
			}
		}()
	}

	extract, err := p.extractor.ExtractWithFallback(ctx, workdir, url, langs)
	if err != nil {
		status := StatusExtractErr
		if errors.Is(err, services.ErrBlocked) {
			status = StatusBlocked
		}
		logger.Error("subtitle extraction failed",
			logging.String("url", url),
			logging.String("status", string(status)),
			logging.Error(err),
		)
		result := &Result{
			URL:     url,
			Status:  status,
			Summary: extractionFailedSummary,
		}
		if subCfg.Debug {
			detail := extract.Stderr
			if strings.TrimSpace(detail) == "" {
				detail = err.Error()
			}
			result.DebugInfo = p.debugInfo(langs, p.failureCommand(extract, url, langs), tailRunes(detail, failureStderrTail))
		}
		p.finish(ctx, key, langs, result)
		return result, nil
	}

	if strings.TrimSpace(extract.Text) == "" {
		logger.Info("no subtitles after all attempts", logging.String("url", url))
		result := &Result{
			URL:     url,
			Status:  StatusNoSubtitles,
			Summary: noSubtitlesSummary,
		}
		if subCfg.Debug {
			result.DebugInfo = p.debugInfo(langs, p.failureCommand(extract, url, langs), tailRunes(extract.Stderr, failureStderrTail))
		}
		p.finish(ctx, key, langs, result)
		return result, nil
	}

	transcript := subtitles.Clean(extract.Text)
	summary, err := p.summarizer.Summarize(ctx, transcript, prompt)
	if err != nil {
		logger.Error("summarization failed",
			logging.String("url", url),
			logging.Error(err),
		)
		return nil, err
	}

	result := &Result{
		URL:        url,
		Status:     StatusOK,
		Summary:    summary.Summary,
		KeyPoints:  summary.KeyPoints,
		Transcript: transcript,
	}
	if subCfg.Debug {
		result.DebugInfo = p.debugInfo(langs, extract.Command, tailRunes(extract.Stderr, successStderrTail))
	}
	p.finish(ctx, key, langs, result)
	return result, nil
}

// finish caches the terminal result and records it in history. Neither step
// may fail the request.
func (p *Pipeline) finish(ctx context.Context, key Key, langs string, result *Result) {
	p.cache.Put(key, result)
	if p.recorder == nil {
		return
	}
	entry := history.Entry{
		URL:             result.URL,
		Langs:           langs,
		Status:          string(result.Status),
		Summary:         result.Summary,
		KeyPointCount:   len(result.KeyPoints),
		TranscriptChars: len([]rune(result.Transcript)),
		CacheHit:        false,
	}
	logger := logging.WithContext(ctx, p.logger)
	id, err := p.recorder.Record(ctx, entry)
	if err != nil {
		logger.Warn("failed to record analysis history",
			logging.String("url", result.URL),
			logging.Error(err),
		)
		return
	}
	logger.Debug("recorded analysis", logging.Int64("history_id", id))
}

func (p *Pipeline) failureCommand(extract subtitles.ExtractResult, url, langs string) []string {
	if len(extract.Command) > 0 {
		return extract.Command
	}
	return p.extractor.CommandPreview(url, langs)
}

func (p *Pipeline) debugInfo(langs string, command []string, stderrTail string) *DebugInfo {
	subCfg := p.cfg.Subtitles
	return &DebugInfo{
		Command:                strings.Join(command, " "),
		StderrTail:             stderrTail,
		Langs:                  langs,
		ManualMode:             subCfg.ManualMode,
		IncludeRegularSubs:     subCfg.IncludeRegularSubs,
		FallbackRegularOnEmpty: subCfg.FallbackRegularOnEmpty,
		FallbackLangsOnEmpty:   subCfg.FallbackLangsOnEmpty,
		CookiesConfigured:      strings.TrimSpace(subCfg.CookiesPath) != "",
	}
}

func tailRunes(value string, limit int) string {
	runes := []rune(value)
	if len(runes) <= limit {
		return value
	}
	return string(runes[len(runes)-limit:])
}
