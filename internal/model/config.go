package model

import "time"

// Config is the full runtime configuration tree.
type Config struct {
	Training TrainingConfig `yaml:"training"`
	Oracles  OraclesConfig  `yaml:"oracles"`
	Cache    CacheConfig    `yaml:"cache"`
	HTTP     HTTPConfig     `yaml:"http"`
	Output   OutputConfig   `yaml:"output"`
}

// TrainingConfig holds the learned-pipeline knobs. The document-frequency
// ceiling and pass cap are configurable defaults inherited from the
// reference setup; do not assume different values are better without data.
type TrainingConfig struct {
	// DocFreqCeiling drops terms appearing in more than this fraction of
	// training documents from the vocabulary.
	DocFreqCeiling float64 `yaml:"doc_freq_ceiling"`

	// Aggressiveness bounds the passive-aggressive update step (the C
	// regularization parameter).
	Aggressiveness float64 `yaml:"aggressiveness"`

	// MaxPasses caps full passes over the training data.
	MaxPasses int `yaml:"max_passes"`
}

// OracleConfig configures a single external oracle backend.
type OracleConfig struct {
	// Provider selects the backend: "openai", "server", "prose" (entity
	// oracle only), or "" to disable.
	Provider string `yaml:"provider"`

	// Model name where the backend takes one (openai).
	Model string `yaml:"model"`

	// APIKey for hosted backends.
	APIKey string `yaml:"api_key"`

	// BaseURL for self-hosted inference servers.
	BaseURL string `yaml:"base_url"`

	// Timeout per oracle call, in seconds. Expiry is treated as oracle
	// failure, never as a failure of the whole prediction.
	Timeout int `yaml:"timeout"`

	// Proxy settings
	HTTPProxy  string `yaml:"http_proxy"`
	HTTPSProxy string `yaml:"https_proxy"`
}

// OraclesConfig groups the two oracle endpoints plus shared call policy.
type OraclesConfig struct {
	Sentiment OracleConfig `yaml:"sentiment"`
	Entity    OracleConfig `yaml:"entity"`

	// RequestsPerSecond rate-limits outbound oracle calls.
	RequestsPerSecond float64 `yaml:"requests_per_second"`
	Burst             int     `yaml:"burst"`
}

// CacheConfig configures the enrichment result cache.
type CacheConfig struct {
	Enabled   bool          `yaml:"enabled"`
	Dir       string        `yaml:"dir"`
	MemoryTTL time.Duration `yaml:"memory_ttl"`
	DiskTTL   time.Duration `yaml:"disk_ttl"`
}

// HTTPConfig configures article fetching for URL inputs.
type HTTPConfig struct {
	Timeout      time.Duration `yaml:"timeout"`
	UserAgent    string        `yaml:"user_agent"`
	MaxBodyBytes int64         `yaml:"max_body_bytes"`
}

// OutputConfig controls reporting behavior.
type OutputConfig struct {
	Verbose bool `yaml:"verbose"`
}

// DefaultConfig returns sensible defaults
func DefaultConfig() *Config {
	return &Config{
		Training: TrainingConfig{
			DocFreqCeiling: 0.70,
			Aggressiveness: 1.0,
			MaxPasses:      100,
		},
		Oracles: OraclesConfig{
			Sentiment: OracleConfig{
				Provider: "",
				Timeout:  10,
			},
			Entity: OracleConfig{
				Provider: "prose",
				Timeout:  10,
			},
			RequestsPerSecond: 4,
			Burst:             4,
		},
		Cache: CacheConfig{
			Enabled:   true,
			Dir:       "",
			MemoryTTL: 30 * time.Minute,
			DiskTTL:   24 * time.Hour,
		},
		HTTP: HTTPConfig{
			Timeout:      30 * time.Second,
			UserAgent:    "Veridict/0.1 (+https://github.com/veridict/veridict)",
			MaxBodyBytes: 2_000_000,
		},
		Output: OutputConfig{
			Verbose: false,
		},
	}
}
