package analysis

// Status classifies the outcome of an analysis request.
type Status string

const (
	StatusOK          Status = "ok"
	StatusNoSubtitles Status = "no_subtitles"
	StatusExtractErr  Status = "extract_error"
	StatusBlocked     Status = "blocked_by_youtube"
)

// DebugInfo carries extraction diagnostics returned alongside a result when
// debug reporting is enabled.
type DebugInfo struct {
	Command                string `json:"yt_dlp_command,omitempty"`
	StderrTail             string `json:"stderr_tail,omitempty"`
	Langs                  string `json:"langs,omitempty"`
	ManualMode             bool   `json:"manual_mode"`
	IncludeRegularSubs     bool   `json:"include_regular_subs"`
	FallbackRegularOnEmpty bool   `json:"fallback_regular_on_empty"`
	FallbackLangsOnEmpty   bool   `json:"fallback_langs_on_empty"`
	CookiesConfigured      bool   `json:"cookies_configured"`
	CacheTTLSeconds        int    `json:"cache_ttl_sec,omitempty"`
}

// Result is the terminal output of one analysis request.
type Result struct {
	URL        string     `json:"url"`
	Status     Status     `json:"status"`
	Summary    string     `json:"summary,omitempty"`
	KeyPoints  []string   `json:"key_points,omitempty"`
	Transcript string     `json:"transcript,omitempty"`
	DebugInfo  *DebugInfo `json:"debug_info,omitempty"`
	// CacheHit marks results served from the cache rather than computed for
	// this request.
	CacheHit bool `json:"cache_hit"`
}

// Clone returns a deep copy so cached values never alias caller-held slices.
func (r *Result) Clone() *Result {
	if r == nil {
		return nil
	}
	dup := *r
	if r.KeyPoints != nil {
		dup.KeyPoints = append([]string(nil), r.KeyPoints...)
	}
	if r.DebugInfo != nil {
		info := *r.DebugInfo
		dup.DebugInfo = &info
	}
	return &dup
}
