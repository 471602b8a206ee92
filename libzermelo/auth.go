package libzermelo

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"golang.org/x/oauth2"
)

// oauthConfig returns the token endpoint configuration for a school.
func (c *Client) oauthConfig(school string) *oauth2.Config {
	return &oauth2.Config{
		Endpoint: oauth2.Endpoint{
			TokenURL:  c.SchoolURL(school) + "/oauth/token",
			AuthStyle: oauth2.AuthStyleInParams,
		},
	}
}

// Authenticate exchanges a one-time authorization code from the portal
// (Koppelingen -> Koppel App) for a durable access token.
func (c *Client) Authenticate(ctx context.Context, school, code string) (string, error) {
	if school == "" {
		return "", fmt.Errorf("%w: school is required", ErrAuthentication)
	}

	// The portal displays the code in groups of three digits.
	code = strings.Join(strings.Fields(code), "")
	if code == "" {
		return "", fmt.Errorf("%w: authorization code is required", ErrAuthentication)
	}

	token, err := c.oauthConfig(school).Exchange(c.oauthContext(ctx), code)
	if err != nil {
		var retrieveErr *oauth2.RetrieveError
		if errors.As(err, &retrieveErr) && retrieveErr.Response != nil {
			return "", fmt.Errorf("%w: token endpoint returned status %d", ErrAuthentication, retrieveErr.Response.StatusCode)
		}
		return "", fmt.Errorf("%w: %w", ErrAuthentication, err)
	}

	if token.AccessToken == "" {
		return "", fmt.Errorf("%w: empty access token in response", ErrAuthentication)
	}

	return token.AccessToken, nil
}
