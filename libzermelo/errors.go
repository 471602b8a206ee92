package libzermelo

import "errors"

// Errors returned by the portal client and the config document. They are
// wrapped with context, so match them with errors.Is.
var (
	ErrConfigRead     = errors.New("could not read config")
	ErrConfigParse    = errors.New("could not parse config")
	ErrConfigWrite    = errors.New("could not write config")
	ErrAuthentication = errors.New("authentication failed")
	ErrFetch          = errors.New("could not retrieve appointments")
)
