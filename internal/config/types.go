package config

type Config struct {
	Telegram  TelegramConfig  `json:"telegram"`
	Google    GoogleConfig    `json:"google"`
	Logging   LoggingConfig   `json:"logging"`
	Scheduler SchedulerConfig `json:"scheduler"`
	HTTP      HTTPConfig      `json:"http,omitempty"`
	Notifier  NotifierConfig  `json:"notifier,omitempty"`
}

type TelegramConfig struct {
	Token string `json:"token"`

	// Primary digest channel.
	ChannelID       int64 `json:"channel_id"`
	ChannelThreadID int   `json:"channel_thread_id,omitempty"`

	// Optional admin channel for failure reports.
	AdminChannelID int64 `json:"admin_channel_id,omitempty"`
	AdminThreadID  int   `json:"admin_thread_id,omitempty"`
}

// GoogleConfig holds service-account credentials for the calendar source.
// The private key can be given inline (private_key) or as a file path
// (private_key_file); inline wins when both are set.
type GoogleConfig struct {
	ClientEmail    string `json:"client_email"`
	PrivateKey     string `json:"private_key,omitempty"`
	PrivateKeyFile string `json:"private_key_file,omitempty"`
	CalendarID     string `json:"calendar_id"`
}

// SchedulerConfig controls cron-triggered digest runs. Specs are standard
// 5-field cron expressions (seconds field optional).
type SchedulerConfig struct {
	Enabled bool   `json:"enabled"`
	Daily   string `json:"daily,omitempty"`
	Weekly  string `json:"weekly,omitempty"`
	// Trigger timezone (IANA name). Digest windows themselves stay UTC.
	Timezone string `json:"timezone,omitempty"`
}

// HTTPConfig controls the optional HTTP invocation surface.
//
// Security note:
//   - Prefer binding to localhost (e.g. "127.0.0.1:8080").
//   - If you bind to a non-loopback address, set a token or explicitly
//     allow_insecure.
type HTTPConfig struct {
	Enabled       bool   `json:"enabled"`
	Addr          string `json:"addr,omitempty"`  // default: "127.0.0.1:8080"
	Token         string `json:"token,omitempty"` // optional bearer token (do not log)
	AllowInsecure bool   `json:"allow_insecure,omitempty"`

	// Server timeouts (Go duration strings).
	ReadTimeout  string `json:"read_timeout,omitempty"`
	WriteTimeout string `json:"write_timeout,omitempty"`
	IdleTimeout  string `json:"idle_timeout,omitempty"`
}

type NotifierConfig struct {
	RatePerSec int `json:"rate_per_sec,omitempty"`
}

type LoggingConfig struct {
	Level    string          `json:"level"`
	Console  bool            `json:"console"`
	File     LoggingFile     `json:"file"`
	Telegram LoggingTelegram `json:"telegram"`
}

type LoggingFile struct {
	Enabled bool   `json:"enabled"`
	Path    string `json:"path"`
}

type LoggingTelegram struct {
	Enabled    bool   `json:"enabled"`
	ThreadID   int    `json:"thread_id"`
	MinLevel   string `json:"min_level"`
	RatePerSec int    `json:"rate_per_sec"`
}
