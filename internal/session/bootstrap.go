package session

import (
	"context"
	"errors"
	"fmt"
	"io"

	"go.uber.org/zap"

	"github.com/njt/zermelo/libzermelo"
)

// Authenticator exchanges an auth code for an access token.
type Authenticator interface {
	Authenticate(ctx context.Context, school, code string) (string, error)
}

// Bootstrapper turns resolved credentials into a session, exchanging and
// persisting the auth code when needed.
type Bootstrapper struct {
	auth   Authenticator
	out    io.Writer
	logger *zap.Logger
}

// NewBootstrapper creates a bootstrapper. Informational messages about a
// newly issued token go to out.
func NewBootstrapper(auth Authenticator, out io.Writer, logger *zap.Logger) *Bootstrapper {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Bootstrapper{auth: auth, out: out, logger: logger}
}

// Session returns the session for creds. When the token was freshly issued for
// a config file but could not be written back, the usable session is returned
// together with an ErrConfigWrite error.
func (b *Bootstrapper) Session(ctx context.Context, creds *Credentials) (libzermelo.Session, error) {
	if !creds.Source.NeedsBootstrap() {
		b.logger.Debug("using existing access token",
			zap.Stringer("source", creds.Source),
			zap.String("school", creds.School))
		return libzermelo.NewSession(creds.School, creds.AccessToken), nil
	}

	b.logger.Debug("exchanging authentication code",
		zap.Stringer("source", creds.Source),
		zap.String("school", creds.School))

	token, err := b.auth.Authenticate(ctx, creds.School, creds.AuthCode)
	if err != nil {
		if !errors.Is(err, libzermelo.ErrAuthentication) {
			err = fmt.Errorf("%w: %w", libzermelo.ErrAuthentication, err)
		}
		return libzermelo.Session{}, err
	}

	session := libzermelo.NewSession(creds.School, token)

	fmt.Fprintf(b.out, "Your access token is: %s\n", token)

	if creds.Source != ConfigDerivedPending {
		fmt.Fprintln(b.out, "You might want to store it somewhere.")
		return session, nil
	}

	fmt.Fprintln(b.out, "It will be stored in your config.")

	if err := creds.Config.WithAccessToken(token).Save(creds.ConfigPath); err != nil {
		return session, err
	}
	b.logger.Debug("stored access token", zap.String("path", creds.ConfigPath))

	return session, nil
}
