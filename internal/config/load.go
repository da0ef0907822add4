package config

import (
	"errors"
	"fmt"
	"net"
	"net/url"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/yungbote/cas-backend/internal/platform/envutil"
)

const (
	DefaultPrimaryModel  = "gpt-4o-mini"
	DefaultFallbackModel = "gpt-4o"
	DefaultTemperature   = 0.4
	DefaultPort          = "8787"
)

func (d *Duration) UnmarshalYAML(value *yaml.Node) error {
	if value.Kind != yaml.ScalarNode {
		return fmt.Errorf("duration must be a scalar, got kind %d", value.Kind)
	}
	s := strings.TrimSpace(value.Value)
	if s == "" || s == "null" || s == "~" {
		d.Duration = 0
		return nil
	}
	if n, err := strconv.ParseInt(s, 10, 64); err == nil {
		d.Duration = time.Duration(n)
		return nil
	}
	dd, err := time.ParseDuration(s)
	if err != nil {
		return fmt.Errorf("duration must be a string like \"5s\" or an int nanoseconds: %w", err)
	}
	d.Duration = dd
	return nil
}

func (d Duration) MarshalYAML() (any, error) {
	return d.Duration.String(), nil
}

func defaultConfig() *Config {
	return &Config{
		Env: "development",
		HTTP: HTTPConfig{
			Addr:              ":" + DefaultPort,
			ReadHeaderTimeout: Duration{Duration: 5 * time.Second},
			IdleTimeout:       Duration{Duration: 2 * time.Minute},
			ShutdownTimeout:   Duration{Duration: 15 * time.Second},
			MaxRequestBytes:   1 << 20,
		},
		LLM: LLMConfig{
			BaseURL:             "https://api.openai.com",
			ChatCompletionsPath: "/v1/chat/completions",
			PrimaryModel:        DefaultPrimaryModel,
			FallbackModel:       DefaultFallbackModel,
			Temperature:         DefaultTemperature,
			Timeout:             Duration{Duration: 60 * time.Second},
		},
		RateLimit: RateLimitConfig{
			Max:         60,
			Window:      Duration{Duration: time.Minute},
			RedisPrefix: "cas:ratelimit",
		},
		Metrics: MetricsConfig{
			Namespace: "cas",
		},
		Tracing: TracingConfig{
			ServiceName: "cas-backend",
			SampleRatio: 0.1,
		},
	}
}

// Load resolves the process configuration: defaults, then the YAML file (explicit path,
// CAS_CONFIG_PATH, or ./config/config.yaml when present), then environment overrides.
func Load(path string) (*Config, error) {
	cfg := defaultConfig()

	cfgPath := strings.TrimSpace(path)
	if cfgPath == "" {
		cfgPath, _ = envutil.String("CAS_CONFIG_PATH")
	}
	if cfgPath == "" {
		if wd, err := os.Getwd(); err == nil {
			p := filepath.Join(wd, "config", "config.yaml")
			if _, err := os.Stat(p); err == nil {
				cfgPath = p
			}
		}
	}

	if cfgPath != "" {
		b, err := os.ReadFile(cfgPath)
		if err != nil {
			return nil, fmt.Errorf("read config %s: %w", cfgPath, err)
		}
		if err := yaml.Unmarshal(b, cfg); err != nil {
			return nil, fmt.Errorf("parse config %s: %w", cfgPath, err)
		}
	}

	applyEnv(cfg)

	if err := normalize(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

func applyEnv(cfg *Config) {
	if v, ok := envutil.String("LOG_MODE"); ok {
		cfg.Env = v
	}
	if v, ok := envutil.String("LOG_HASH_SALT"); ok {
		cfg.Log.HashSalt = v
	}
	cfg.Log.DisableRedaction = envutil.Bool("LOG_DISABLE_REDACTION", cfg.Log.DisableRedaction)
	if v, ok := envutil.String("CAS_TRUSTED_PROXIES"); ok {
		cfg.HTTP.TrustedProxies = strings.Split(v, ",")
	}
	if v, ok := envutil.String("CAS_HTTP_ADDR"); ok {
		cfg.HTTP.Addr = v
	} else if v, ok := envutil.String("PORT"); ok {
		cfg.HTTP.Addr = addrFromPort(v)
	}
	if v, ok := envutil.String("FRONTEND_ORIGIN"); ok {
		cfg.CORS.FrontendOrigin = v
	}

	if v, ok := envutil.String("OPENAI_BASE_URL"); ok {
		cfg.LLM.BaseURL = v
	}
	if v, ok := envutil.String("OPENAI_API_KEY"); ok {
		cfg.LLM.APIKey = v
	}
	if v, ok := envutil.String("CAS_MODEL_ID"); ok {
		cfg.LLM.PrimaryModel = v
	}
	if v, ok := envutil.String("CAS_FALLBACK_MODEL_ID"); ok {
		cfg.LLM.FallbackModel = v
	}
	cfg.LLM.Timeout.Duration = envutil.Duration("CAS_LLM_TIMEOUT", cfg.LLM.Timeout.Duration)
	cfg.LLM.JSONRepair = envutil.Bool("CAS_JSON_REPAIR", cfg.LLM.JSONRepair)

	cfg.RateLimit.Max = envutil.Int("CAS_RATE_LIMIT_MAX", cfg.RateLimit.Max)
	cfg.RateLimit.Window.Duration = envutil.Duration("CAS_RATE_LIMIT_WINDOW", cfg.RateLimit.Window.Duration)
	if v, ok := envutil.String("REDIS_ADDR"); ok {
		cfg.RateLimit.RedisAddr = v
	}

	cfg.Metrics.Enabled = envutil.Bool("METRICS_ENABLED", cfg.Metrics.Enabled)

	cfg.Tracing.Enabled = envutil.Bool("OTEL_ENABLED", cfg.Tracing.Enabled)
	if v, ok := envutil.String("OTEL_EXPORTER_OTLP_ENDPOINT"); ok {
		cfg.Tracing.Endpoint = v
	}
	cfg.Tracing.Insecure = envutil.Bool("OTEL_EXPORTER_OTLP_INSECURE", cfg.Tracing.Insecure)
	cfg.Tracing.SampleRatio = envutil.Float("OTEL_SAMPLER_RATIO", cfg.Tracing.SampleRatio)
}

func normalize(cfg *Config) error {
	cfg.Env = strings.TrimSpace(cfg.Env)
	if cfg.Env == "" {
		cfg.Env = "development"
	}
	if strings.TrimSpace(cfg.HTTP.Addr) == "" {
		cfg.HTTP.Addr = ":" + DefaultPort
	}
	if cfg.HTTP.MaxRequestBytes <= 0 {
		cfg.HTTP.MaxRequestBytes = 1 << 20
	}
	if cfg.HTTP.ShutdownTimeout.Duration <= 0 {
		cfg.HTTP.ShutdownTimeout = Duration{Duration: 15 * time.Second}
	}
	proxies := make([]string, 0, len(cfg.HTTP.TrustedProxies))
	for _, p := range cfg.HTTP.TrustedProxies {
		p = strings.TrimSpace(p)
		if p == "" {
			continue
		}
		if net.ParseIP(p) == nil {
			if _, _, err := net.ParseCIDR(p); err != nil {
				return fmt.Errorf("http.trusted_proxies: %q is not an IP or CIDR", p)
			}
		}
		proxies = append(proxies, p)
	}
	cfg.HTTP.TrustedProxies = nil
	if len(proxies) > 0 {
		cfg.HTTP.TrustedProxies = proxies
	}
	cfg.Log.HashSalt = strings.TrimSpace(cfg.Log.HashSalt)

	cfg.CORS.FrontendOrigin = strings.TrimRight(strings.TrimSpace(cfg.CORS.FrontendOrigin), "/")
	if cfg.CORS.FrontendOrigin == "*" {
		cfg.CORS.FrontendOrigin = ""
	}
	if o := cfg.CORS.FrontendOrigin; o != "" && !strings.HasPrefix(o, "http://") && !strings.HasPrefix(o, "https://") {
		return fmt.Errorf("cors.frontend_origin %q must start with http:// or https://", o)
	}

	m := &cfg.LLM
	m.BaseURL = strings.TrimRight(strings.TrimSpace(m.BaseURL), "/")
	if m.BaseURL == "" {
		return errors.New("llm.base_url is required")
	}
	if u, err := url.Parse(m.BaseURL); err != nil || u.Scheme == "" || u.Host == "" {
		return fmt.Errorf("llm.base_url %q is not an absolute URL", m.BaseURL)
	}
	m.ChatCompletionsPath = strings.TrimSpace(m.ChatCompletionsPath)
	if m.ChatCompletionsPath == "" {
		m.ChatCompletionsPath = "/v1/chat/completions"
	}
	if !strings.HasPrefix(m.ChatCompletionsPath, "/") {
		m.ChatCompletionsPath = "/" + m.ChatCompletionsPath
	}
	m.APIKey = strings.TrimSpace(m.APIKey)
	m.PrimaryModel = strings.TrimSpace(m.PrimaryModel)
	if m.PrimaryModel == "" {
		m.PrimaryModel = DefaultPrimaryModel
	}
	m.FallbackModel = strings.TrimSpace(m.FallbackModel)
	if m.FallbackModel == "" {
		m.FallbackModel = DefaultFallbackModel
	}
	if m.Temperature < 0 || m.Temperature > 2 {
		return fmt.Errorf("llm.temperature %.2f out of range [0,2]", m.Temperature)
	}
	if m.Timeout.Duration < 0 {
		return errors.New("llm.timeout must not be negative")
	}

	rl := &cfg.RateLimit
	if rl.Max < 0 {
		return errors.New("rate_limit.max must not be negative")
	}
	if rl.Max > 0 && rl.Window.Duration <= 0 {
		return errors.New("rate_limit.window must be positive when rate_limit.max is set")
	}
	rl.RedisAddr = strings.TrimSpace(rl.RedisAddr)
	rl.RedisPrefix = strings.TrimSpace(rl.RedisPrefix)
	if rl.RedisPrefix == "" {
		rl.RedisPrefix = "cas:ratelimit"
	}

	if strings.TrimSpace(cfg.Metrics.Namespace) == "" {
		cfg.Metrics.Namespace = "cas"
	}

	t := &cfg.Tracing
	if strings.TrimSpace(t.ServiceName) == "" {
		t.ServiceName = "cas-backend"
	}
	if t.SampleRatio < 0 {
		t.SampleRatio = 0
	}
	if t.SampleRatio > 1 {
		t.SampleRatio = 1
	}
	return nil
}

func addrFromPort(v string) string {
	v = strings.TrimSpace(v)
	if strings.Contains(v, ":") {
		return v
	}
	return ":" + v
}

// IsProduction reports whether logging and gin should run in release mode.
func (c *Config) IsProduction() bool {
	switch strings.ToLower(strings.TrimSpace(c.Env)) {
	case "prod", "production":
		return true
	default:
		return false
	}
}
