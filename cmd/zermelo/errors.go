package main

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/njt/zermelo/internal/session"
	"github.com/njt/zermelo/libzermelo"
)

// errorNotes returns hints printed below an error message.
func errorNotes(err error) []string {
	switch {
	case errors.Is(err, session.ErrMissingCredential):
		return []string{
			"set access token or authentication code.",
			"`access_token = \"your_token\"` or",
			"```\n[temp]\nauth_code = \"your_auth_code\"\n```",
		}
	case errors.Is(err, session.ErrMissingSchool):
		return []string{"use `--school [your_school]` to specify your school."}
	case errors.Is(err, session.ErrInsufficientArguments):
		return []string{"use `--help` to get some help."}
	case errors.Is(err, libzermelo.ErrAuthentication):
		return []string{"an authentication code can only be used once; request a new one in the Zermelo Portal (Koppelingen -> Koppel App)."}
	case errors.Is(err, libzermelo.ErrConfigWrite):
		return []string{"store the access token printed above in your config as `access_token = \"your_token\"`."}
	case errors.Is(err, libzermelo.ErrFetch):
		return []string{"if your access token was revoked, authenticate again with `--auth`."}
	default:
		return nil
	}
}

// reportError writes err and its notes in the form the CLI has always used.
func reportError(w io.Writer, err error) {
	fmt.Fprintf(w, "Error: %s.\n", strings.TrimSuffix(err.Error(), "."))
	for _, note := range errorNotes(err) {
		fmt.Fprintf(w, "Note: %s\n", note)
	}
}
