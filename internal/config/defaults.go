package config

const (
	defaultLogDir             = "~/.local/share/recap/logs"
	defaultWorkDir            = "~/.local/share/recap/work"
	defaultHistoryDB          = "~/.local/share/recap/history.db"
	defaultAPIBind            = "127.0.0.1:8321"
	defaultYtdlpBinary        = "yt-dlp"
	defaultSubLangs           = "ru,ru-orig"
	defaultFallbackLangs      = "en,en-orig"
	defaultJSRuntime          = "node"
	defaultRemoteComponents   = "ejs:github"
	defaultExtractorArgs      = "youtube:player_client=web"
	defaultCacheTTLSeconds    = 900
	defaultLLMBaseURL         = "https://openrouter.ai/api/v1/chat/completions"
	defaultLLMModel           = "openai/gpt-4o-mini"
	defaultLLMTimeoutSeconds  = 60
	defaultLogFormat          = "console"
	defaultLogLevel           = "info"
)

// SentinelLangs is the legacy client default language preference. Requests
// carrying exactly this value are treated as "no preference" and resolve to
// the configured default list.
const SentinelLangs = "ru,en"

// Default returns a Config populated with repository defaults.
func Default() Config {
	return Config{
		Paths: Paths{
			LogDir:    defaultLogDir,
			WorkDir:   defaultWorkDir,
			HistoryDB: defaultHistoryDB,
			APIBind:   defaultAPIBind,
		},
		Subtitles: Subtitles{
			Binary:                 defaultYtdlpBinary,
			DefaultLangs:           defaultSubLangs,
			FallbackLangs:          defaultFallbackLangs,
			ManualMode:             true,
			IncludeRegularSubs:     false,
			FallbackRegularOnEmpty: true,
			FallbackLangsOnEmpty:   true,
			JSRuntime:              defaultJSRuntime,
			RemoteComponents:       defaultRemoteComponents,
			ExtractorArgs:          defaultExtractorArgs,
		},
		Cache: Cache{
			TTLSeconds: defaultCacheTTLSeconds,
		},
		LLM: LLM{
			BaseURL:        defaultLLMBaseURL,
			Model:          defaultLLMModel,
			TimeoutSeconds: defaultLLMTimeoutSeconds,
		},
		Logging: Logging{
			Format: defaultLogFormat,
			Level:  defaultLogLevel,
		},
	}
}
