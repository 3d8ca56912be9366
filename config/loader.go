package config

import (
	"errors"
	"io/fs"
	"os"
	"strconv"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// DefaultPaths are searched when Load is called with an empty path.
var DefaultPaths = []string{"config.yml", "./config/config.yml"}

// Load reads the configuration from path, or from the first of DefaultPaths
// that exists when path is empty, applies environment overrides and
// defaults, and validates the result.
func Load(path string) (*AppConfig, error) {
	data, err := readConfigFile(path)
	if err != nil {
		return nil, err
	}
	var cfg AppConfig
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, err
	}

	// .env is optional
	_ = godotenv.Load()
	applyEnv(&cfg)
	applyDefaults(&cfg)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate checks the struct tags. Call it again after changing a loaded
// configuration, e.g. from command line flags.
func (c *AppConfig) Validate() error {
	return validator.New().Struct(c)
}

func readConfigFile(path string) ([]byte, error) {
	if path != "" {
		return os.ReadFile(path)
	}
	for _, p := range DefaultPaths {
		data, err := os.ReadFile(p)
		if err == nil {
			return data, nil
		}
		if !errors.Is(err, fs.ErrNotExist) {
			return nil, err
		}
	}
	return nil, nil
}

func applyEnv(cfg *AppConfig) {
	if v := os.Getenv("EIBI_SOURCE_FILE"); v != "" {
		cfg.Source.File = v
	}
	if v := os.Getenv("EIBI_SITES_FILE"); v != "" {
		cfg.Source.SitesFile = v
	}
	if v := os.Getenv("EIBI_BASE_URL"); v != "" {
		cfg.Fetch.BaseURL = v
	}
	if v := os.Getenv("EIBI_FETCH_ATTEMPTS"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			cfg.Fetch.Attempts = n
		}
	}
	if v := os.Getenv("EIBI_WORKDIR"); v != "" {
		cfg.Output.Dir = v
	}
	if v := os.Getenv("EIBI_JSON_LABEL"); v != "" {
		cfg.Output.JSONLabel = v
	}
	if v := os.Getenv("EIBI_LOG_LEVEL"); v != "" {
		cfg.Log.Level = v
	}
	if v := os.Getenv("EIBI_S3_BUCKET"); v != "" {
		cfg.Publish.Bucket = v
	}
	if v := os.Getenv("EIBI_S3_REGION"); v != "" {
		cfg.Publish.Region = v
	}
}

func applyDefaults(cfg *AppConfig) {
	if cfg.Source.Encoding == "" {
		cfg.Source.Encoding = "auto"
	}
	if cfg.Fetch.BaseURL == "" {
		cfg.Fetch.BaseURL = "http://www.eibispace.de/dx"
	}
	if cfg.Fetch.Attempts == 0 {
		cfg.Fetch.Attempts = 3
	}
	if cfg.Fetch.TimeoutMS == 0 {
		cfg.Fetch.TimeoutMS = 3000
	}
	if cfg.Fetch.RetryDelayMS == 0 {
		cfg.Fetch.RetryDelayMS = 3000
	}
	if cfg.Output.CSVFile == "" {
		cfg.Output.CSVFile = "kiwi.csv"
	}
	if cfg.Output.JSONFile == "" {
		cfg.Output.JSONFile = "kiwi.json"
	}
	if cfg.Output.Mode == "" {
		cfg.Output.Mode = "QAM"
	}
	if cfg.Output.UnknownDays == "" {
		cfg.Output.UnknownDays = "keep"
	}
	if cfg.Log.Level == "" {
		cfg.Log.Level = "info"
	}
}
