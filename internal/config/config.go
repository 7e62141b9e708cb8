package config

import (
	"os"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

type Config struct {
	Env string `yaml:"env"`

	Log struct {
		Level string `yaml:"level"`
	} `yaml:"log"`

	Server struct {
		Host string `yaml:"host"`
		Port int    `yaml:"port"`
	} `yaml:"server"`

	Catalog struct {
		Provider       string `yaml:"provider"` // dummyjson|fakestore|platzi
		TimeoutSeconds int    `yaml:"timeout_seconds"`
		SearchLimit    int    `yaml:"search_limit"`

		DummyJSON struct {
			BaseURL string `yaml:"base_url"`
			Limit   int    `yaml:"limit"`
		} `yaml:"dummyjson"`

		FakeStore struct {
			BaseURL string `yaml:"base_url"`
		} `yaml:"fakestore"`

		Platzi struct {
			BaseURL     string `yaml:"base_url"`
			CategoryIDs []int  `yaml:"category_ids"`
		} `yaml:"platzi"`
	} `yaml:"catalog"`

	Storage struct {
		Backend     string `yaml:"backend"` // memory|localdisk|redis|postgres
		Dir         string `yaml:"dir"`
		RedisAddr   string `yaml:"redis_addr"`
		PostgresDSN string `yaml:"postgres_dsn"`
	} `yaml:"storage"`

	Cart struct {
		FlightDurationMS int `yaml:"flight_duration_ms"`
		FlightTimeoutMS  int `yaml:"flight_timeout_ms"`
	} `yaml:"cart"`

	Search struct {
		DebounceMS int `yaml:"debounce_ms"`
	} `yaml:"search"`

	AMQP struct {
		URL   string `yaml:"url"`
		Queue string `yaml:"queue"`
	} `yaml:"amqp"`
}

// Load reads the YAML config at path and applies env overrides and defaults.
// A missing file is not an error: the service runs on defaults alone.
func Load(path string) (*Config, error) {
	var cfg Config

	if path != "" {
		b, err := os.ReadFile(path)
		if err == nil {
			if err := yaml.Unmarshal(b, &cfg); err != nil {
				return nil, err
			}
		} else if !os.IsNotExist(err) {
			return nil, err
		}
	}

	applyEnv(&cfg)
	applyDefaults(&cfg)
	return &cfg, nil
}

func applyEnv(cfg *Config) {
	if v := os.Getenv("PORT"); v != "" {
		if p, err := strconv.Atoi(v); err == nil {
			cfg.Server.Port = p
		}
	}
	if v := os.Getenv("CATALOG_PROVIDER"); v != "" {
		cfg.Catalog.Provider = v
	}
	if v := os.Getenv("STORAGE_BACKEND"); v != "" {
		cfg.Storage.Backend = v
	}
	if v := os.Getenv("STORAGE_DIR"); v != "" {
		cfg.Storage.Dir = v
	}
	if v := os.Getenv("REDIS_ADDR"); v != "" {
		cfg.Storage.RedisAddr = v
	}
	if v := os.Getenv("DB_DSN"); v != "" {
		cfg.Storage.PostgresDSN = v
	}
	if v := os.Getenv("AMQP_URL"); v != "" {
		cfg.AMQP.URL = v
	}
	if v := os.Getenv("AMQP_QUEUE"); v != "" {
		cfg.AMQP.Queue = v
	}
	if v := os.Getenv("LOG_LEVEL"); v != "" {
		cfg.Log.Level = v
	}
	if v := os.Getenv("APP_ENV"); v != "" {
		cfg.Env = v
	}
}

func applyDefaults(cfg *Config) {
	cfg.Env = strings.ToLower(strings.TrimSpace(cfg.Env))
	if cfg.Env == "" {
		cfg.Env = "development"
	}

	if cfg.Log.Level == "" {
		if cfg.Env == "production" || cfg.Env == "prod" {
			cfg.Log.Level = "info"
		} else {
			cfg.Log.Level = "debug"
		}
	}

	if cfg.Server.Host == "" {
		cfg.Server.Host = "0.0.0.0"
	}
	if cfg.Server.Port == 0 {
		cfg.Server.Port = 8080
	}

	cfg.Catalog.Provider = strings.ToLower(strings.TrimSpace(cfg.Catalog.Provider))
	if cfg.Catalog.Provider == "" {
		cfg.Catalog.Provider = "dummyjson"
	}
	if cfg.Catalog.TimeoutSeconds <= 0 {
		cfg.Catalog.TimeoutSeconds = 15
	}
	if cfg.Catalog.SearchLimit <= 0 {
		cfg.Catalog.SearchLimit = 10
	}
	if cfg.Catalog.DummyJSON.BaseURL == "" {
		cfg.Catalog.DummyJSON.BaseURL = "https://dummyjson.com"
	}
	if cfg.Catalog.DummyJSON.Limit <= 0 {
		cfg.Catalog.DummyJSON.Limit = 100
	}
	if cfg.Catalog.FakeStore.BaseURL == "" {
		cfg.Catalog.FakeStore.BaseURL = "https://fakestoreapi.com"
	}
	if cfg.Catalog.Platzi.BaseURL == "" {
		cfg.Catalog.Platzi.BaseURL = "https://api.escuelajs.co/api/v1"
	}
	if len(cfg.Catalog.Platzi.CategoryIDs) == 0 {
		cfg.Catalog.Platzi.CategoryIDs = []int{1, 2, 3, 4}
	}

	cfg.Storage.Backend = strings.ToLower(strings.TrimSpace(cfg.Storage.Backend))
	if cfg.Storage.Backend == "" {
		cfg.Storage.Backend = "localdisk"
	}
	if cfg.Storage.Dir == "" {
		cfg.Storage.Dir = "data"
	}
	if cfg.Storage.RedisAddr == "" {
		cfg.Storage.RedisAddr = "localhost:6379"
	}

	// 800ms matches the presentation's flight transition; the timeout is the
	// safety net that commits an add whose completion signal never fires.
	if cfg.Cart.FlightDurationMS <= 0 {
		cfg.Cart.FlightDurationMS = 800
	}
	if cfg.Cart.FlightTimeoutMS <= 0 {
		cfg.Cart.FlightTimeoutMS = 3000
	}
	if cfg.Cart.FlightTimeoutMS < cfg.Cart.FlightDurationMS {
		cfg.Cart.FlightTimeoutMS = cfg.Cart.FlightDurationMS
	}

	if cfg.Search.DebounceMS <= 0 {
		cfg.Search.DebounceMS = 300
	}

	if cfg.AMQP.Queue == "" {
		cfg.AMQP.Queue = "storefront_orders"
	}
}
