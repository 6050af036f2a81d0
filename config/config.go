package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"time"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
	"gopkg.in/yaml.v3"
)

const envPrefix = "MEETING"

type HTTP struct {
	Addr            string        `yaml:"addr"`
	ReadTimeout     time.Duration `yaml:"readTimeout" split_words:"true"`
	WriteTimeout    time.Duration `yaml:"writeTimeout" split_words:"true"`
	IdleTimeout     time.Duration `yaml:"idleTimeout" split_words:"true"`
	RequestTimeout  time.Duration `yaml:"requestTimeout" split_words:"true"`
	ShutdownTimeout time.Duration `yaml:"shutdownTimeout" split_words:"true"`
}

type GRPC struct {
	Addr           string        `yaml:"addr"`
	DefaultTimeout time.Duration `yaml:"defaultTimeout" split_words:"true"`
}

type Logging struct {
	Env       string `yaml:"env"`       // dev|stage|prod
	Service   string `yaml:"service"`   // meeting-service
	Version   string `yaml:"version"`   // v0.1.0
	Backend   string `yaml:"backend"`   // std|zap
	Level     string `yaml:"level"`     // debug|info|warn|error
	AddSource bool   `yaml:"addSource" split_words:"true"`
	Debug     bool   `yaml:"debug"`
}

type Postgres struct {
	DSN             string        `yaml:"dsn"`
	MaxConns        int32         `yaml:"maxConns" split_words:"true"`
	MaxConnLifetime time.Duration `yaml:"maxConnLifetime" split_words:"true"`
}

type Badger struct {
	Path     string `yaml:"path"`
	InMemory bool   `yaml:"inMemory" split_words:"true"`
}

const (
	DriverMemory   = "memory"
	DriverPostgres = "postgres"
)

type Storage struct {
	Driver   string   `yaml:"driver"` // memory|postgres
	Postgres Postgres `yaml:"postgres"`
	Badger   Badger   `yaml:"badger"`
}

// Задержки по умолчанию: чтение встреч, запись встреч, операции с участниками и чатом.
const (
	DefaultReadLatency   = 200 * time.Millisecond
	DefaultWriteLatency  = 300 * time.Millisecond
	DefaultMemberLatency = 200 * time.Millisecond
)

// Simulation: искусственные задержки хранилища. nil — значение по умолчанию,
// явный 0s отключает задержку.
type Simulation struct {
	ReadLatency   *time.Duration `yaml:"readLatency" split_words:"true"`
	WriteLatency  *time.Duration `yaml:"writeLatency" split_words:"true"`
	MemberLatency *time.Duration `yaml:"memberLatency" split_words:"true"` // участники и чат
	DemoFallback  *bool          `yaml:"demoFallback" split_words:"true"`
}

type Chat struct {
	DemoHistory *bool `yaml:"demoHistory" split_words:"true"`
	MaxLength   int   `yaml:"maxLength" split_words:"true"`
}

type CORS struct {
	AllowedOrigins []string `yaml:"allowedOrigins" split_words:"true"`
}

type Config struct {
	HTTP       HTTP       `yaml:"http"`
	GRPC       GRPC       `yaml:"grpc"`
	Logging    Logging    `yaml:"logging"`
	Storage    Storage    `yaml:"storage"`
	Simulation Simulation `yaml:"simulation"`
	Chat       Chat       `yaml:"chat"`
	CORS       CORS       `yaml:"cors"`
}

// LoadConfig читает CONFIG_PATH (по умолчанию ./config/config.yaml),
// затем накладывает переменные окружения MEETING_*.
func LoadConfig() (*Config, error) {
	// .env необязателен
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("load .env: %w", err)
	}

	path := os.Getenv("CONFIG_PATH")
	if path == "" {
		path = "./config/config.yaml"
	}
	return Load(path)
}

func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	if err := envconfig.Process(envPrefix, &cfg); err != nil {
		return nil, fmt.Errorf("env overlay: %w", err)
	}
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) validate() error {
	if c.HTTP.Addr == "" {
		return errors.New("http.addr is required")
	}
	if c.GRPC.Addr == "" {
		return errors.New("grpc.addr is required")
	}

	switch c.Storage.Driver {
	case "":
		c.Storage.Driver = DriverMemory
	case DriverMemory:
	case DriverPostgres:
		if c.Storage.Postgres.DSN == "" {
			return errors.New("storage.postgres.dsn is required for postgres driver")
		}
	default:
		return fmt.Errorf("storage.driver: unknown driver %q", c.Storage.Driver)
	}
	if c.Storage.Badger.Path == "" && !c.Storage.Badger.InMemory {
		return errors.New("storage.badger.path is required unless inMemory")
	}
	for _, d := range []*time.Duration{c.Simulation.ReadLatency, c.Simulation.WriteLatency, c.Simulation.MemberLatency} {
		if d != nil && *d < 0 {
			return errors.New("simulation latencies must not be negative")
		}
	}

	// установка дефолтов, если значения не указаны
	if c.Logging.Service == "" {
		c.Logging.Service = "meeting-service"
	}
	if c.Logging.Env == "" {
		c.Logging.Env = "dev"
	}
	if c.Logging.Version == "" {
		c.Logging.Version = "v0.1.0"
	}
	if c.Logging.Backend == "" {
		c.Logging.Backend = "std"
	}
	c.HTTP.ReadTimeout = durationOr(c.HTTP.ReadTimeout, 10*time.Second)
	c.HTTP.WriteTimeout = durationOr(c.HTTP.WriteTimeout, 15*time.Second)
	c.HTTP.IdleTimeout = durationOr(c.HTTP.IdleTimeout, 60*time.Second)
	c.HTTP.RequestTimeout = durationOr(c.HTTP.RequestTimeout, 30*time.Second)
	c.HTTP.ShutdownTimeout = durationOr(c.HTTP.ShutdownTimeout, 10*time.Second)
	c.GRPC.DefaultTimeout = durationOr(c.GRPC.DefaultTimeout, 5*time.Second)
	if c.Chat.MaxLength <= 0 {
		c.Chat.MaxLength = 4000
	}
	c.Simulation.ReadLatency = durationPtrOr(c.Simulation.ReadLatency, DefaultReadLatency)
	c.Simulation.WriteLatency = durationPtrOr(c.Simulation.WriteLatency, DefaultWriteLatency)
	c.Simulation.MemberLatency = durationPtrOr(c.Simulation.MemberLatency, DefaultMemberLatency)
	if c.Simulation.DemoFallback == nil {
		c.Simulation.DemoFallback = boolPtr(true)
	}
	if c.Chat.DemoHistory == nil {
		c.Chat.DemoHistory = boolPtr(true)
	}
	if len(c.CORS.AllowedOrigins) == 0 {
		c.CORS.AllowedOrigins = []string{"http://localhost:5173", "http://localhost:3000"}
	}
	return nil
}

func durationOr(d, def time.Duration) time.Duration {
	if d > 0 {
		return d
	}
	return def
}

func durationPtrOr(d *time.Duration, def time.Duration) *time.Duration {
	if d != nil {
		return d
	}
	return &def
}

func boolPtr(v bool) *bool { return &v }
