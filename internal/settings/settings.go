// Package settings reads runtime settings from the environment.
package settings

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"

	"github.com/njt/zermelo/libzermelo"
)

// Settings are the environment driven knobs of the CLI.
type Settings struct {
	Timeout     time.Duration
	APIURL      string
	Environment string
}

// Load reads settings from the process environment, after loading an optional
// .env file from the working directory. Variables already set in the
// environment take precedence over the file.
func Load() (Settings, error) {
	_ = godotenv.Load()
	return FromEnv()
}

// FromEnv reads settings from the process environment only.
func FromEnv() (Settings, error) {
	cfg := Settings{
		Timeout:     libzermelo.DefaultTimeout,
		APIURL:      libzermelo.DefaultBaseURL,
		Environment: "development",
	}

	invalid := make([]string, 0, 3)

	if value := strings.TrimSpace(os.Getenv("ZERMELO_TIMEOUT")); value != "" {
		timeout, err := time.ParseDuration(value)
		if err != nil || timeout <= 0 {
			invalid = append(invalid, "ZERMELO_TIMEOUT")
		} else {
			cfg.Timeout = timeout
		}
	}

	if value := strings.TrimSpace(os.Getenv("ZERMELO_API_URL")); value != "" {
		if !strings.HasPrefix(value, "http://") && !strings.HasPrefix(value, "https://") {
			invalid = append(invalid, "ZERMELO_API_URL")
		} else {
			cfg.APIURL = value
		}
	}

	if value := strings.TrimSpace(os.Getenv("ZERMELO_ENV")); value != "" {
		switch value {
		case "development", "production":
			cfg.Environment = value
		default:
			invalid = append(invalid, "ZERMELO_ENV")
		}
	}

	if len(invalid) > 0 {
		return Settings{}, fmt.Errorf("invalid environment variables: %s", strings.Join(invalid, ", "))
	}

	return cfg, nil
}
