// Package auth extracts Gong API credentials from HTTP Basic Authorization
// headers and threads them through request contexts. Credentials live for the
// duration of a single request; nothing here persists or caches them.
package auth

import (
	"context"
	"encoding/base64"
	"errors"
	"fmt"
	"net/http"
	"strings"
)

var (
	// ErrMissingAuth indicates the Authorization header was absent.
	ErrMissingAuth = errors.New("missing Authorization header")
	// ErrMalformedAuth indicates the Authorization header was present but unusable.
	ErrMalformedAuth = errors.New("malformed Authorization header")
)

// Credentials is an opaque Gong access key/secret pair.
type Credentials struct {
	AccessKey    string
	AccessSecret string
}

// FromHeader parses an Authorization header value of the form
// "Basic base64(key:secret)" into Credentials.
func FromHeader(header string) (Credentials, error) {
	if header == "" {
		return Credentials{}, ErrMissingAuth
	}

	scheme, encoded, found := strings.Cut(header, " ")
	if !found || !strings.EqualFold(scheme, "Basic") {
		return Credentials{}, fmt.Errorf("%w: expected Basic scheme", ErrMalformedAuth)
	}

	decoded, err := base64.StdEncoding.DecodeString(strings.TrimSpace(encoded))
	if err != nil {
		return Credentials{}, fmt.Errorf("%w: invalid base64 payload", ErrMalformedAuth)
	}

	key, secret, found := strings.Cut(string(decoded), ":")
	if !found || key == "" {
		return Credentials{}, fmt.Errorf("%w: expected key:secret pair", ErrMalformedAuth)
	}

	return Credentials{AccessKey: key, AccessSecret: secret}, nil
}

// FromRequest extracts Credentials from the request's Authorization header.
func FromRequest(r *http.Request) (Credentials, error) {
	return FromHeader(r.Header.Get("Authorization"))
}

type ctxKey struct{}

// WithCredentials returns a context carrying the given credentials.
func WithCredentials(ctx context.Context, c Credentials) context.Context {
	return context.WithValue(ctx, ctxKey{}, c)
}

// CredentialsFromContext returns the credentials attached to ctx, if any.
func CredentialsFromContext(ctx context.Context) (Credentials, bool) {
	c, ok := ctx.Value(ctxKey{}).(Credentials)
	return c, ok
}
