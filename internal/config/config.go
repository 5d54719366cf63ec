package config

import (
	"fmt"
	"os"
	"regexp"

	"gopkg.in/yaml.v3"
)

// Config is everything the server needs at startup. Values come from an
// optional YAML file (with ${VAR} placeholders expanded from the
// environment) and fall back to plain environment variables, so both a
// config.yaml deployment and a bare .env one work.
type Config struct {
	Port string `yaml:"port"`

	Database struct {
		// Driver is "postgres" or "sqlite". SQLite is the local-dev and
		// test path; Postgres is what you run in production.
		Driver string `yaml:"driver"`
		DSN    string `yaml:"dsn"`
	} `yaml:"database"`

	CORS struct {
		AllowedOrigins []string `yaml:"allowed_origins"`
	} `yaml:"cors"`

	LLM struct {
		APIKey string `yaml:"api_key"`
		Model  string `yaml:"model"`
	} `yaml:"llm"`
}

var envVarPattern = regexp.MustCompile(`\$\{([A-Za-z_][A-Za-z0-9_]*)\}`)

// Load reads the config file at path, expands ${VAR} placeholders, and fills
// any remaining gaps from the environment. A missing file is not an error;
// you just get the env-only config.
func Load(path string) (*Config, error) {
	var cfg Config

	if path != "" {
		b, err := os.ReadFile(path)
		if err == nil {
			content := expandEnvVars(string(b))
			if err := yaml.Unmarshal([]byte(content), &cfg); err != nil {
				return nil, fmt.Errorf("parse %s: %w", path, err)
			}
		} else if !os.IsNotExist(err) {
			return nil, fmt.Errorf("read %s: %w", path, err)
		}
	}

	cfg.applyDefaults()
	return &cfg, nil
}

func (cfg *Config) applyDefaults() {
	if cfg.Port == "" {
		cfg.Port = getenv("PORT", "8080")
	}
	if cfg.Database.Driver == "" {
		cfg.Database.Driver = getenv("DB_DRIVER", "postgres")
	}
	if cfg.Database.DSN == "" {
		switch cfg.Database.Driver {
		case "sqlite":
			cfg.Database.DSN = getenv("DB_DSN", "jobtrackr.sqlite")
		default:
			cfg.Database.DSN = getenv("DB_DSN",
				"host=localhost user=postgres password=password dbname=jobtrackr port=5432 sslmode=disable")
		}
	}
	if cfg.LLM.APIKey == "" {
		cfg.LLM.APIKey = os.Getenv("GEMINI_API_KEY")
	}
	if cfg.LLM.Model == "" {
		cfg.LLM.Model = getenv("GEMINI_MODEL", "gemini-2.5-flash")
	}
}

// expandEnvVars replaces ${VAR_NAME} placeholders with environment values.
// Unset variables expand to the empty string so the YAML stays parseable.
func expandEnvVars(content string) string {
	return envVarPattern.ReplaceAllStringFunc(content, func(match string) string {
		name := envVarPattern.FindStringSubmatch(match)[1]
		return os.Getenv(name)
	})
}

func getenv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
