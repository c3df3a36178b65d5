package cliparse

import (
	"errors"
	"flag"
	"os"
	"strconv"

	"github.com/dustin/go-humanize"
)

type Config struct {
	Port         int
	DatabaseURL  string
	DatabaseType string
	DataDir      string
	BaseURL      string
	AdminEmail   string
	MaxUpload    uint64
	LogLevel     string
}

// DefaultMaxUpload caps a whole album-creation request body.
const DefaultMaxUpload = "25 MiB"

// ParseFlags validates flags and fills defaults from the environment
func ParseFlags(args []string) (Config, error) {
	var cfg Config
	var maxUpload string

	fs := flag.NewFlagSet("kinshare", flag.ContinueOnError)

	// Network config (can be CLI args or env)
	fs.IntVar(&cfg.Port, "p", 0, "Server port")
	fs.StringVar(&cfg.DatabaseURL, "d", "", "Database URL or path")
	fs.StringVar(&cfg.DatabaseType, "t", "", "Database type (sqlite or postgres)")
	fs.StringVar(&cfg.DataDir, "data", "", "Directory for uploaded image blobs")
	fs.StringVar(&cfg.BaseURL, "base-url", "", "Public base URL for download links")

	// Operational settings
	fs.StringVar(&cfg.AdminEmail, "admin-email", "", "Email to approve and promote to admin at startup")
	fs.StringVar(&maxUpload, "max-upload", "", "Max upload request size (e.g. 25 MiB)")
	fs.StringVar(&cfg.LogLevel, "log-level", "", "Log level (debug, info, warn, error)")

	if err := fs.Parse(args); err != nil {
		return Config{}, err
	}

	// Fall back to environment variables
	if cfg.Port == 0 {
		if portStr := os.Getenv("PORT"); portStr != "" {
			port, err := strconv.Atoi(portStr)
			if err != nil {
				return Config{}, errors.New("invalid PORT env variable")
			}
			cfg.Port = port
		} else {
			cfg.Port = 8080 // default
		}
	}
	if cfg.DatabaseType == "" {
		cfg.DatabaseType = os.Getenv("DATABASE_TYPE")
		if cfg.DatabaseType == "" {
			cfg.DatabaseType = "sqlite"
		}
	}
	if cfg.DatabaseType != "sqlite" && cfg.DatabaseType != "postgres" {
		return Config{}, errors.New("database type must be sqlite or postgres")
	}

	if cfg.DatabaseURL == "" {
		cfg.DatabaseURL = os.Getenv("DATABASE_URL")
	}
	if cfg.DatabaseURL == "" {
		if cfg.DatabaseType == "postgres" {
			return Config{}, errors.New("database URL required for postgres (use -d or DATABASE_URL env)")
		}
		cfg.DatabaseURL = "kinshare.db"
	}

	if cfg.DataDir == "" {
		cfg.DataDir = os.Getenv("DATA_DIR")
		if cfg.DataDir == "" {
			cfg.DataDir = "data"
		}
	}

	if cfg.BaseURL == "" {
		cfg.BaseURL = os.Getenv("BASE_URL")
		if cfg.BaseURL == "" {
			cfg.BaseURL = "http://localhost:" + strconv.Itoa(cfg.Port)
		}
	}

	if cfg.AdminEmail == "" {
		cfg.AdminEmail = os.Getenv("ADMIN_EMAIL")
	}

	if maxUpload == "" {
		maxUpload = os.Getenv("MAX_UPLOAD")
		if maxUpload == "" {
			maxUpload = DefaultMaxUpload
		}
	}
	size, err := humanize.ParseBytes(maxUpload)
	if err != nil {
		return Config{}, errors.New("invalid max upload size: " + maxUpload)
	}
	cfg.MaxUpload = size

	if cfg.LogLevel == "" {
		cfg.LogLevel = os.Getenv("LOG_LEVEL")
		if cfg.LogLevel == "" {
			cfg.LogLevel = "info"
		}
	}

	return cfg, nil
}
