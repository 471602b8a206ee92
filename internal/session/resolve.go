// Package session decides how a run obtains its access token and turns the
// chosen credentials into an authorized session.
package session

import (
	"errors"
	"fmt"
	"strings"

	"github.com/njt/zermelo/libzermelo"
)

var (
	ErrMissingCredential     = errors.New("access token and authentication code not present in config")
	ErrMissingSchool         = errors.New("school not specified")
	ErrInsufficientArguments = errors.New("not enough arguments specified")
)

// Source identifies which credential variant a run uses.
type Source int

const (
	// ConfigDerived uses the access token stored in the config file.
	ConfigDerived Source = iota + 1
	// ConfigDerivedPending exchanges the config file's auth code and
	// stores the resulting token back into the file.
	ConfigDerivedPending
	// DirectAuthCode exchanges an auth code given on the command line.
	DirectAuthCode
	// DirectAccessToken uses an access token given on the command line.
	DirectAccessToken
)

func (s Source) String() string {
	switch s {
	case ConfigDerived:
		return "config"
	case ConfigDerivedPending:
		return "config-pending"
	case DirectAuthCode:
		return "auth-code"
	case DirectAccessToken:
		return "access-token"
	default:
		return "unknown"
	}
}

// NeedsBootstrap reports whether an auth code must be exchanged first.
func (s Source) NeedsBootstrap() bool {
	return s == ConfigDerivedPending || s == DirectAuthCode
}

// Input is what the user supplied. Empty strings are treated as absent.
type Input struct {
	ConfigPath  string
	AuthCode    string
	AccessToken string
	School      string
}

// Credentials is the resolved credential variant. Only the fields relevant
// to Source are set.
type Credentials struct {
	Source      Source
	School      string
	AccessToken string
	AuthCode    string

	// ConfigPath and Config are set for the config-derived variants.
	ConfigPath string
	Config     *libzermelo.Config
}

// Resolve picks exactly one credential variant. The config file wins over an
// explicit auth code, which wins over an explicit access token.
func Resolve(in Input) (*Credentials, error) {
	switch {
	case in.ConfigPath != "":
		config, err := libzermelo.LoadConfig(in.ConfigPath)
		if err != nil {
			return nil, err
		}
		return fromConfig(in.ConfigPath, config)

	case in.AuthCode != "":
		if in.School == "" {
			return nil, fmt.Errorf("%w: authenticating without school", ErrMissingSchool)
		}
		return &Credentials{
			Source:   DirectAuthCode,
			School:   in.School,
			AuthCode: in.AuthCode,
		}, nil

	case in.AccessToken != "":
		if in.School == "" {
			return nil, fmt.Errorf("%w: retrieving schedule without school", ErrMissingSchool)
		}
		return &Credentials{
			Source:      DirectAccessToken,
			School:      in.School,
			AccessToken: in.AccessToken,
		}, nil

	default:
		return nil, ErrInsufficientArguments
	}
}

func fromConfig(path string, config *libzermelo.Config) (*Credentials, error) {
	if strings.TrimSpace(config.School) == "" {
		return nil, fmt.Errorf("%w: config %s has an empty school", ErrMissingSchool, path)
	}

	creds := &Credentials{
		School:     config.School,
		ConfigPath: path,
		Config:     config,
	}

	switch {
	case config.AccessToken != nil:
		creds.Source = ConfigDerived
		creds.AccessToken = *config.AccessToken
	case config.Temp != nil:
		creds.Source = ConfigDerivedPending
		creds.AuthCode = config.Temp.AuthCode
	default:
		return nil, ErrMissingCredential
	}

	return creds, nil
}
