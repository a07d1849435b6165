package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/creasty/defaults"
	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"
)

// Duration wraps time.Duration so YAML configs can use "30s" notation.
type Duration time.Duration

func (d *Duration) UnmarshalYAML(value *yaml.Node) error {
	parsed, err := time.ParseDuration(value.Value)
	if err != nil {
		return fmt.Errorf("parse duration %q: %w", value.Value, err)
	}
	*d = Duration(parsed)
	return nil
}

// Std returns the standard library duration.
func (d Duration) Std() time.Duration { return time.Duration(d) }

type Config struct {
	Environment string `yaml:"environment" default:"development"`

	Server struct {
		Port            int      `yaml:"port" default:"8080" validate:"gt=0,lte=65535"`
		ReadTimeout     Duration `yaml:"read_timeout"`
		WriteTimeout    Duration `yaml:"write_timeout"`
		ShutdownTimeout Duration `yaml:"shutdown_timeout"`
	} `yaml:"server"`

	Logging struct {
		Level  string `yaml:"level" default:"info"`
		Format string `yaml:"format" default:"console"`
		Output string `yaml:"output" default:"stdout"`
	} `yaml:"logging"`

	Metrics struct {
		Enabled bool   `yaml:"enabled"`
		Path    string `yaml:"path" default:"/metrics"`
	} `yaml:"metrics"`

	Engine struct {
		Symbols          []string `yaml:"symbols" validate:"min=1"`
		PrimaryTimeframe string   `yaml:"primary_timeframe" default:"5m"`
		Interval         Duration `yaml:"interval"`
		CycleTimeout     Duration `yaml:"cycle_timeout"`
		Workers          int      `yaml:"workers" default:"4" validate:"gt=0"`

		BuyThreshold  float64 `yaml:"buy_threshold" default:"60" validate:"gte=0,lte=100,gtfield=SellThreshold"`
		SellThreshold float64 `yaml:"sell_threshold" default:"40" validate:"gte=0,lte=100"`

		AmplificationBeta      float64 `yaml:"amplification_beta" default:"2.0" validate:"gte=0"`
		AmplificationSafetyCap float64 `yaml:"amplification_safety_cap" default:"15" validate:"gte=0"`
		ConfidenceThreshold    float64 `yaml:"confidence_threshold" default:"0.5" validate:"gte=0,lte=1"`
		ConsensusThreshold     float64 `yaml:"consensus_threshold" default:"0.75" validate:"gte=0,lte=1"`

		// Weights per indicator name; the engine renormalizes them to
		// sum to 1.0, negative weights are rejected here.
		Weights map[string]float64 `yaml:"weights" validate:"dive,gte=0,lte=1"`
	} `yaml:"engine"`

	Cache struct {
		Enabled       bool     `yaml:"enabled"`
		Backend       string   `yaml:"backend" default:"memory" validate:"oneof=memory redis layered"`
		TTL           Duration `yaml:"ttl"`
		MemoryMaxSize int      `yaml:"memory_max_size" default:"1000" validate:"gt=0"`
		Redis         struct {
			Addr     string `yaml:"addr" default:"localhost:6379"`
			Password string `yaml:"password"`
			DB       int    `yaml:"db"`
			PoolSize int    `yaml:"pool_size" default:"10"`
		} `yaml:"redis"`
	} `yaml:"cache"`
}

var validate = validator.New()

// Load reads and parses a YAML configuration file, applies defaults,
// and validates it. Malformed configuration is the one error class
// that surfaces to the caller; everything downstream assumes a valid
// Config.
func Load(path string) (*Config, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}

	var c Config
	if err := yaml.Unmarshal(b, &c); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}

	if err := defaults.Set(&c); err != nil {
		return nil, fmt.Errorf("apply defaults: %w", err)
	}
	c.applyDurationDefaults()

	if err := validate.Struct(&c); err != nil {
		return nil, fmt.Errorf("validate config: %w", err)
	}

	return &c, nil
}

// LoadWithEnv loads config from YAML and overrides with environment
// variables.
func LoadWithEnv(path string) (*Config, error) {
	c, err := Load(path)
	if err != nil {
		return nil, err
	}

	if v := os.Getenv("SYMBOLS"); v != "" {
		c.Engine.Symbols = strings.Split(v, ",")
	}
	if v := os.Getenv("REDIS_ADDR"); v != "" {
		c.Cache.Redis.Addr = v
	}
	if v := os.Getenv("LOG_LEVEL"); v != "" {
		c.Logging.Level = v
	}

	return c, nil
}

// applyDurationDefaults fills zero durations. Kept out of struct tags:
// duration strings need their own parsing path.
func (c *Config) applyDurationDefaults() {
	if c.Server.ReadTimeout <= 0 {
		c.Server.ReadTimeout = Duration(10 * time.Second)
	}
	if c.Server.WriteTimeout <= 0 {
		c.Server.WriteTimeout = Duration(10 * time.Second)
	}
	if c.Server.ShutdownTimeout <= 0 {
		c.Server.ShutdownTimeout = Duration(10 * time.Second)
	}
	if c.Engine.Interval <= 0 {
		c.Engine.Interval = Duration(30 * time.Second)
	}
	if c.Engine.CycleTimeout <= 0 {
		c.Engine.CycleTimeout = Duration(20 * time.Second)
	}
	if c.Cache.TTL <= 0 {
		c.Cache.TTL = Duration(30 * time.Second)
	}
}
