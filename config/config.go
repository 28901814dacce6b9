package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/goccy/go-yaml"
	"github.com/joho/godotenv"
)

type Config struct {
	API struct {
		BaseURL string        `yaml:"base_url"`
		Timeout time.Duration `yaml:"timeout"`
	} `yaml:"api"`
	Session struct {
		Backend string `yaml:"backend"` // file, redis or memory
		Dir     string `yaml:"dir"`
		Key     string `yaml:"key"`
	} `yaml:"session"`
	Redis struct {
		Addr     string `yaml:"addr"`
		Password string `yaml:"password"`
		DB       int    `yaml:"db"`
		Prefix   string `yaml:"prefix"`
	} `yaml:"redis"`
	Routes struct {
		Login   string `yaml:"login"`
		Landing string `yaml:"landing"`
	} `yaml:"routes"`
	Log struct {
		Level    string `yaml:"level"`
		Encoding string `yaml:"encoding"`
		Output   string `yaml:"output"`
	} `yaml:"log"`
	DevAPI struct {
		Port         string        `yaml:"port"`
		Mode         string        `yaml:"mode"`
		JWTSecret    string        `yaml:"jwt_secret"`
		TokenTTL     time.Duration `yaml:"token_ttl"`
		AdminEmail   string        `yaml:"admin_email"`
		AdminPass    string        `yaml:"admin_password"`
		AllowOrigins []string      `yaml:"allow_origins"`
	} `yaml:"devapi"`
}

// Default returns the configuration used when no env file is present.
func Default() *Config {
	var cfg Config
	cfg.API.BaseURL = "http://localhost:8080"
	cfg.API.Timeout = 15 * time.Second
	cfg.Session.Backend = "file"
	cfg.Session.Key = "library_token"
	cfg.Redis.Addr = "localhost:6379"
	cfg.Redis.Prefix = "libctl:"
	cfg.Routes.Login = "/login"
	cfg.Routes.Landing = "/dashboard"
	cfg.Log.Level = "warn"
	cfg.Log.Encoding = "console"
	cfg.Log.Output = "stderr"
	cfg.DevAPI.Port = "8080"
	cfg.DevAPI.Mode = "debug"
	cfg.DevAPI.TokenTTL = 24 * time.Hour
	cfg.DevAPI.AdminEmail = "admin@library.local"
	cfg.DevAPI.AdminPass = "admin"
	cfg.DevAPI.AllowOrigins = []string{"http://localhost:4200"}
	return &cfg
}

// Load reads config/envs/<env>.yaml on top of the defaults and applies
// LIBCTL_* environment overrides. A missing env file is not an error.
func Load(env string) (*Config, error) {
	_ = godotenv.Load()

	if env == "" {
		env = os.Getenv("LIBCTL_ENV")
	}
	if env == "" {
		env = "local"
	}

	cfg := Default()
	configPath := filepath.Join("config", "envs", env+".yaml")
	if dir := os.Getenv("LIBCTL_CONFIG_DIR"); dir != "" {
		configPath = filepath.Join(dir, env+".yaml")
	}

	f, err := os.Open(configPath)
	switch {
	case err == nil:
		defer f.Close()
		if err := yaml.NewDecoder(f).Decode(cfg); err != nil {
			return nil, fmt.Errorf("decode %s: %w", configPath, err)
		}
	case !os.IsNotExist(err):
		return nil, err
	}

	if err := applyEnv(cfg); err != nil {
		return nil, err
	}
	if err := validate(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

// validate checks the shape of values the console cannot work without.
// Whether the routes exist is checked against the route table at start-up.
func validate(cfg *Config) error {
	for key, path := range map[string]string{"routes.login": cfg.Routes.Login, "routes.landing": cfg.Routes.Landing} {
		if !strings.HasPrefix(path, "/") || strings.Trim(path, "/") == "" {
			return fmt.Errorf("%s must be an absolute console path, got %q", key, path)
		}
	}
	if cfg.Routes.Login == cfg.Routes.Landing {
		return fmt.Errorf("routes.login and routes.landing must differ, both are %q", cfg.Routes.Login)
	}
	return nil
}

func applyEnv(cfg *Config) error {
	if url := os.Getenv("LIBCTL_API_URL"); url != "" {
		cfg.API.BaseURL = url
	}
	if timeout := os.Getenv("LIBCTL_API_TIMEOUT"); timeout != "" {
		d, err := time.ParseDuration(timeout)
		if err != nil {
			return fmt.Errorf("LIBCTL_API_TIMEOUT: %w", err)
		}
		cfg.API.Timeout = d
	}
	if backend := os.Getenv("LIBCTL_SESSION_BACKEND"); backend != "" {
		cfg.Session.Backend = backend
	}
	if dir := os.Getenv("LIBCTL_SESSION_DIR"); dir != "" {
		cfg.Session.Dir = dir
	}

	// Redis
	if addr := os.Getenv("LIBCTL_REDIS_ADDR"); addr != "" {
		cfg.Redis.Addr = addr
	}
	if password := os.Getenv("LIBCTL_REDIS_PASSWORD"); password != "" {
		cfg.Redis.Password = password
	}
	if db := os.Getenv("LIBCTL_REDIS_DB"); db != "" {
		n, err := strconv.Atoi(db)
		if err != nil {
			return fmt.Errorf("LIBCTL_REDIS_DB: %w", err)
		}
		cfg.Redis.DB = n
	}

	if level := os.Getenv("LIBCTL_LOG_LEVEL"); level != "" {
		cfg.Log.Level = level
	}

	// Dev API
	if port := os.Getenv("LIBCTL_DEVAPI_PORT"); port != "" {
		cfg.DevAPI.Port = port
	}
	if secret := os.Getenv("LIBCTL_JWT_SECRET"); secret != "" {
		cfg.DevAPI.JWTSecret = secret
	}
	return nil
}
