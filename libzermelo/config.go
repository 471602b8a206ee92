package libzermelo

import (
	"bytes"
	"fmt"
	"os"

	"github.com/BurntSushi/toml"
)

// Config is the persisted credential document.
//
//	school = "myschool"
//	access_token = "..."
//
// or, before the first run:
//
//	school = "myschool"
//
//	[temp]
//	auth_code = "123456789012"
type Config struct {
	School      string  `toml:"school"`
	AccessToken *string `toml:"access_token,omitempty"`
	Temp        *Temp   `toml:"temp,omitempty"`
}

// Temp holds the one-time authorization code awaiting exchange.
type Temp struct {
	AuthCode string `toml:"auth_code"`
}

// LoadConfig reads and parses the config document at path.
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrConfigRead, err)
	}

	var config Config
	md, err := toml.Decode(string(data), &config)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrConfigParse, err)
	}
	if !md.IsDefined("school") {
		return nil, fmt.Errorf("%w: missing field `school`", ErrConfigParse)
	}
	if md.IsDefined("temp") && !md.IsDefined("temp", "auth_code") {
		return nil, fmt.Errorf("%w: missing field `auth_code` in [temp]", ErrConfigParse)
	}

	return &config, nil
}

// Save writes the config document to path, replacing any existing file.
func (c *Config) Save(path string) error {
	var buf bytes.Buffer
	if err := toml.NewEncoder(&buf).Encode(c); err != nil {
		return fmt.Errorf("%w: failed to marshal config: %w", ErrConfigWrite, err)
	}

	if err := os.WriteFile(path, buf.Bytes(), 0600); err != nil {
		return fmt.Errorf("%w: %w", ErrConfigWrite, err)
	}

	return nil
}

// WithAccessToken returns the document as it is persisted after a successful
// exchange: the access token set and the temporary section dropped.
func (c *Config) WithAccessToken(token string) *Config {
	return &Config{
		School:      c.School,
		AccessToken: &token,
	}
}
