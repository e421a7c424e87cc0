package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	App      AppConfig      `mapstructure:"app"`
	Server   ServerConfig   `mapstructure:"server"`
	Redis    RedisConfig    `mapstructure:"redis"`
	Queues   QueuesConfig   `mapstructure:"queues"`
	Logging  LoggingConfig  `mapstructure:"logging"`
	Progress ProgressConfig `mapstructure:"progress"`
	Cookbook CookbookConfig `mapstructure:"cookbook"`
	Jobs     JobsConfig     `mapstructure:"jobs"`
	CORS     CORSConfig     `mapstructure:"cors"`
}

type AppConfig struct {
	Name string `mapstructure:"name"`
	Env  string `mapstructure:"env"`
}

type ServerConfig struct {
	HTTP   HTTPConfig   `mapstructure:"http"`
	GRPC   GRPCConfig   `mapstructure:"grpc"`
	Worker WorkerConfig `mapstructure:"worker"`
}

type HTTPConfig struct {
	Host         string        `mapstructure:"host"`
	Port         int           `mapstructure:"port"`
	ReadTimeout  time.Duration `mapstructure:"read_timeout"`
	WriteTimeout time.Duration `mapstructure:"write_timeout"`
	MaxBodyBytes int64         `mapstructure:"max_body_bytes"`
}

type GRPCConfig struct {
	Enabled bool   `mapstructure:"enabled"`
	Host    string `mapstructure:"host"`
	Port    int    `mapstructure:"port"`
}

type WorkerConfig struct {
	Concurrency int `mapstructure:"concurrency"`
	// MetricsPort exposes /metrics from the worker when non-zero.
	MetricsPort int `mapstructure:"metrics_port"`
}

type RedisConfig struct {
	Addr     string `mapstructure:"addr"`
	Password string `mapstructure:"password"`
	DB       int    `mapstructure:"db"`
}

type QueuesConfig struct {
	Critical int `mapstructure:"critical"`
	High     int `mapstructure:"high"`
	Default  int `mapstructure:"default"`
	Low      int `mapstructure:"low"`
}

type LoggingConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

type ProgressConfig struct {
	MaxLen      int64         `mapstructure:"max_len"`
	TTL         time.Duration `mapstructure:"ttl"`
	ReadTimeout time.Duration `mapstructure:"read_timeout"`
}

// CookbookConfig selects where cookbook entries live.
type CookbookConfig struct {
	// Store is "memory" or "redis".
	Store     string `mapstructure:"store"`
	KeyPrefix string `mapstructure:"key_prefix"`
}

type JobsConfig struct {
	Enabled   bool          `mapstructure:"enabled"`
	Retention time.Duration `mapstructure:"retention"`
	ChunkSize int           `mapstructure:"chunk_size"`
}

type CORSConfig struct {
	AllowOrigins []string `mapstructure:"allow_origins"`
}

func Load(configPath string) (*Config, error) {
	v := viper.New()

	v.SetConfigType("yaml")

	if configPath != "" {
		v.SetConfigFile(configPath)
	} else {
		v.SetConfigName("config")
		v.AddConfigPath("./configs")
		v.AddConfigPath(".")
	}

	v.SetEnvPrefix("TALLY")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		return nil, err
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, err
	}

	cfg.applyDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

func (c *Config) applyDefaults() {
	if c.App.Name == "" {
		c.App.Name = "tally"
	}
	if c.Server.HTTP.ReadTimeout == 0 {
		c.Server.HTTP.ReadTimeout = 15 * time.Second
	}
	if c.Server.HTTP.WriteTimeout == 0 {
		c.Server.HTTP.WriteTimeout = 15 * time.Second
	}
	if c.Server.HTTP.MaxBodyBytes == 0 {
		c.Server.HTTP.MaxBodyBytes = 8 << 20
	}
	if c.Server.Worker.Concurrency == 0 {
		c.Server.Worker.Concurrency = 10
	}
	if c.Queues == (QueuesConfig{}) {
		c.Queues = QueuesConfig{Critical: 6, High: 4, Default: 2, Low: 1}
	}
	if c.Progress.MaxLen == 0 {
		c.Progress.MaxLen = 1000
	}
	if c.Progress.TTL == 0 {
		c.Progress.TTL = time.Hour
	}
	if c.Progress.ReadTimeout == 0 {
		c.Progress.ReadTimeout = 30 * time.Second
	}
	if c.Cookbook.Store == "" {
		c.Cookbook.Store = "memory"
	}
	if c.Cookbook.KeyPrefix == "" {
		c.Cookbook.KeyPrefix = "cookbook"
	}
	if c.Jobs.Retention == 0 {
		c.Jobs.Retention = 24 * time.Hour
	}
	if c.Jobs.ChunkSize == 0 {
		c.Jobs.ChunkSize = 1000
	}
}

func (c *Config) Validate() error {
	if c.Server.HTTP.Port <= 0 {
		return fmt.Errorf("server.http.port must be greater than 0")
	}
	if c.Server.HTTP.MaxBodyBytes < 0 {
		return fmt.Errorf("server.http.max_body_bytes must be greater than or equal to 0")
	}
	if c.Server.GRPC.Enabled && c.Server.GRPC.Port <= 0 {
		return fmt.Errorf("server.grpc.port must be greater than 0")
	}
	if c.Server.Worker.Concurrency <= 0 {
		return fmt.Errorf("server.worker.concurrency must be greater than 0")
	}
	if c.Queues.Critical <= 0 || c.Queues.High <= 0 || c.Queues.Default <= 0 || c.Queues.Low <= 0 {
		return fmt.Errorf("queues weights must be greater than 0")
	}
	if c.Progress.MaxLen < 0 {
		return fmt.Errorf("progress.max_len must be greater than or equal to 0")
	}
	if c.Progress.TTL < 0 {
		return fmt.Errorf("progress.ttl must be greater than or equal to 0")
	}
	if c.Progress.ReadTimeout < 0 {
		return fmt.Errorf("progress.read_timeout must be greater than or equal to 0")
	}
	switch c.Cookbook.Store {
	case "memory":
	case "redis":
		if c.Redis.Addr == "" {
			return fmt.Errorf("redis.addr is required when cookbook.store is redis")
		}
	default:
		return fmt.Errorf("cookbook.store must be memory or redis, got %q", c.Cookbook.Store)
	}
	if c.Jobs.Enabled {
		if c.Redis.Addr == "" {
			return fmt.Errorf("redis.addr is required when jobs are enabled")
		}
		if c.Jobs.ChunkSize <= 0 {
			return fmt.Errorf("jobs.chunk_size must be greater than 0")
		}
	}
	return nil
}

// UsesRedis reports whether any enabled component needs a Redis connection.
func (c *Config) UsesRedis() bool {
	return c.Jobs.Enabled || c.Cookbook.Store == "redis"
}

func (c *Config) IsDevelopment() bool {
	return c.App.Env == "development"
}

func (c *Config) IsProduction() bool {
	return c.App.Env == "production"
}

func (c *QueuesConfig) ToMap() map[string]int {
	return map[string]int{
		"critical": c.Critical,
		"high":     c.High,
		"default":  c.Default,
		"low":      c.Low,
	}
}
