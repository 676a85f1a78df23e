package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/Black-And-White-Club/bowl-bot/app/shared/observability"
)

// Config struct to hold the configuration settings
type Config struct {
	HTTP          HTTPConfig          `yaml:"http"`
	NATS          NATSConfig          `yaml:"nats"`
	JWT           JWTConfig           `yaml:"jwt"`
	Games         GamesConfig         `yaml:"games"`
	Observability ObservabilityConfig `yaml:"observability"`
}

// HTTPConfig holds the API server configuration.
type HTTPConfig struct {
	Addr           string   `yaml:"addr"`
	AllowedOrigins []string `yaml:"allowed_origins"`
	RateLimit      float64  `yaml:"rate_limit"`
	RateBurst      int      `yaml:"rate_burst"`
}

// NATSConfig holds NATS configuration. An empty URL runs the event bus in process and
// disables the request/reply subject.
type NATSConfig struct {
	URL            string `yaml:"url"`
	NKeySeed       string `yaml:"nkey_seed"`
	RequestSubject string `yaml:"request_subject"`
	QueueGroup     string `yaml:"queue_group"`
}

// JWTConfig holds JWT configuration. An empty secret leaves the write routes open.
type JWTConfig struct {
	Secret     string        `yaml:"secret"`
	Issuer     string        `yaml:"issuer"`
	DefaultTTL time.Duration `yaml:"default_ttl"`
}

// GamesConfig controls the live game store.
type GamesConfig struct {
	IdleTTL       time.Duration `yaml:"idle_ttl"`
	SweepInterval time.Duration `yaml:"sweep_interval"`
}

// ObservabilityConfig holds configuration for observability components
type ObservabilityConfig struct {
	ServiceName    string `yaml:"service_name"`
	Environment    string `yaml:"environment"`
	LogLevel       string `yaml:"log_level"`
	LogFormat      string `yaml:"log_format"` // json|text
	MetricsAddress string `yaml:"metrics_address"`
}

const (
	DefaultHTTPAddr       = ":8080"
	DefaultRequestSubject = "bowling.scorecard.compute.v1"
	DefaultQueueGroup     = "bowl-bot"
	DefaultJWTIssuer      = "bowl-bot"
)

// LoadConfig loads the configuration from a YAML file. A missing file is not an error:
// the configuration then comes from defaults and environment variables.
func LoadConfig(filename string) (*Config, error) {
	var cfg Config

	data, err := os.ReadFile(filename)
	switch {
	case err == nil:
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return nil, fmt.Errorf("failed to unmarshal config: %w", err)
		}
	case errors.Is(err, fs.ErrNotExist):
	default:
		return nil, fmt.Errorf("failed to read config: %w", err)
	}

	if err := applyEnv(&cfg); err != nil {
		return nil, err
	}
	cfg.applyDefaults()
	return &cfg, nil
}

// applyEnv overrides the file values with the environment variables that are set.
func applyEnv(cfg *Config) error {
	if v := os.Getenv("HTTP_ADDR"); v != "" {
		cfg.HTTP.Addr = v
	}
	if v := os.Getenv("ALLOWED_ORIGINS"); v != "" {
		cfg.HTTP.AllowedOrigins = splitList(v)
	}
	if v := os.Getenv("RATE_LIMIT"); v != "" {
		f, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return fmt.Errorf("invalid RATE_LIMIT value: %v", err)
		}
		cfg.HTTP.RateLimit = f
	}
	if v := os.Getenv("RATE_BURST"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("invalid RATE_BURST value: %v", err)
		}
		cfg.HTTP.RateBurst = n
	}
	if v := os.Getenv("NATS_URL"); v != "" {
		cfg.NATS.URL = v
	}
	if v := os.Getenv("NATS_NKEY_SEED"); v != "" {
		cfg.NATS.NKeySeed = v
	}
	if v := os.Getenv("NATS_REQUEST_SUBJECT"); v != "" {
		cfg.NATS.RequestSubject = v
	}
	if v := os.Getenv("NATS_QUEUE_GROUP"); v != "" {
		cfg.NATS.QueueGroup = v
	}
	if v := os.Getenv("JWT_SECRET"); v != "" {
		cfg.JWT.Secret = v
	}
	if v := os.Getenv("JWT_ISSUER"); v != "" {
		cfg.JWT.Issuer = v
	}
	if v := os.Getenv("JWT_DEFAULT_TTL"); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			return fmt.Errorf("invalid JWT_DEFAULT_TTL value: %v", err)
		}
		cfg.JWT.DefaultTTL = d
	}
	if v := os.Getenv("GAME_IDLE_TTL"); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			return fmt.Errorf("invalid GAME_IDLE_TTL value: %v", err)
		}
		cfg.Games.IdleTTL = d
	}
	if v := os.Getenv("ENV"); v != "" {
		cfg.Observability.Environment = v
	}
	if v := os.Getenv("LOG_LEVEL"); v != "" {
		cfg.Observability.LogLevel = v
	}
	if v := os.Getenv("LOG_FORMAT"); v != "" {
		cfg.Observability.LogFormat = v
	}
	if v := os.Getenv("METRICS_ADDRESS"); v != "" {
		cfg.Observability.MetricsAddress = v
	}
	return nil
}

func (c *Config) applyDefaults() {
	if c.HTTP.Addr == "" {
		c.HTTP.Addr = DefaultHTTPAddr
	}
	if c.NATS.RequestSubject == "" {
		c.NATS.RequestSubject = DefaultRequestSubject
	}
	if c.NATS.QueueGroup == "" {
		c.NATS.QueueGroup = DefaultQueueGroup
	}
	if c.JWT.Issuer == "" {
		c.JWT.Issuer = DefaultJWTIssuer
	}
	if c.JWT.DefaultTTL == 0 {
		c.JWT.DefaultTTL = 12 * time.Hour
	}
	if c.Games.IdleTTL == 0 {
		c.Games.IdleTTL = 6 * time.Hour
	}
	if c.Games.SweepInterval == 0 {
		c.Games.SweepInterval = 5 * time.Minute
	}
	if c.Observability.ServiceName == "" {
		c.Observability.ServiceName = "bowl-bot"
	}
	if c.Observability.Environment == "" {
		c.Observability.Environment = "development"
	}
	if c.Observability.LogLevel == "" {
		c.Observability.LogLevel = "info"
	}
}

func splitList(v string) []string {
	var out []string
	for _, s := range strings.Split(v, ",") {
		if s = strings.TrimSpace(s); s != "" {
			out = append(out, s)
		}
	}
	return out
}

func ToObsConfig(appCfg *Config) observability.Config {
	return observability.Config{
		ServiceName:    appCfg.Observability.ServiceName,
		Environment:    appCfg.Observability.Environment,
		LogLevel:       appCfg.Observability.LogLevel,
		LogFormat:      appCfg.Observability.LogFormat,
		MetricsAddress: appCfg.Observability.MetricsAddress,
	}
}
