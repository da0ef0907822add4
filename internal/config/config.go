package config

import "time"

type Duration struct {
	Duration time.Duration
}

type HTTPConfig struct {
	Addr              string   `yaml:"addr"`
	ReadHeaderTimeout Duration `yaml:"read_header_timeout"`
	IdleTimeout       Duration `yaml:"idle_timeout"`
	ShutdownTimeout   Duration `yaml:"shutdown_timeout"`
	MaxRequestBytes   int64    `yaml:"max_request_bytes"`

	// TrustedProxies lists the IPs or CIDRs whose X-Forwarded-For / X-Real-IP headers are
	// believed. Empty means the socket peer is the client.
	TrustedProxies []string `yaml:"trusted_proxies"`
}

type LogConfig struct {
	// HashSalt salts the hashes logged in place of client addresses.
	HashSalt string `yaml:"hash_salt"`
	// DisableRedaction logs secrets verbatim. Local debugging only.
	DisableRedaction bool `yaml:"disable_redaction"`
}

type CORSConfig struct {
	// FrontendOrigin is the single origin allowed to call the API from a browser.
	// Empty reflects whatever origin the request carries.
	FrontendOrigin string `yaml:"frontend_origin"`
}

type LLMConfig struct {
	BaseURL             string `yaml:"base_url"`
	ChatCompletionsPath string `yaml:"chat_completions_path"`

	// APIKey is sent as `Authorization: Bearer <api_key>`.
	APIKey string `yaml:"api_key"`

	PrimaryModel  string  `yaml:"primary_model"`
	FallbackModel string  `yaml:"fallback_model"`
	Temperature   float64 `yaml:"temperature"`

	// Timeout bounds each attempt (primary and fallback separately). Zero leaves the
	// transport default in place.
	Timeout Duration `yaml:"timeout"`

	// JSONRepair strips code fences and surrounding prose from model output before it is
	// parsed.
	JSONRepair bool `yaml:"json_repair"`
}

type RateLimitConfig struct {
	Max    int      `yaml:"max"`
	Window Duration `yaml:"window"`

	// RedisAddr switches the limiter to a shared fixed window kept in Redis.
	RedisAddr   string `yaml:"redis_addr"`
	RedisPrefix string `yaml:"redis_prefix"`
}

type MetricsConfig struct {
	Enabled   bool   `yaml:"enabled"`
	Namespace string `yaml:"namespace"`
}

type TracingConfig struct {
	Enabled     bool    `yaml:"enabled"`
	ServiceName string  `yaml:"service_name"`
	Endpoint    string  `yaml:"endpoint"`
	Insecure    bool    `yaml:"insecure"`
	SampleRatio float64 `yaml:"sample_ratio"`
}

type Config struct {
	Env       string          `yaml:"env"`
	Log       LogConfig       `yaml:"log"`
	HTTP      HTTPConfig      `yaml:"http"`
	CORS      CORSConfig      `yaml:"cors"`
	LLM       LLMConfig       `yaml:"llm"`
	RateLimit RateLimitConfig `yaml:"rate_limit"`
	Metrics   MetricsConfig   `yaml:"metrics"`
	Tracing   TracingConfig   `yaml:"tracing"`
}
