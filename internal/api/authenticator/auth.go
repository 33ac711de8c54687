package authenticator

import (
	"context"
	"errors"
	"strings"

	"github.com/valyala/fasthttp"

	"github.com/boardlyhq/boardly/internal/services/user"
)

var ErrNoToken = errors.New("no token in request")

// Authenticator resolves opaque bearer tokens to users.
type Authenticator struct {
	users *user.UserService
}

func New(users *user.UserService) *Authenticator {
	return &Authenticator{users: users}
}

// TokenFromRequest extracts the token from the Authorization header.
// Both "Token <key>" and "Bearer <key>" schemes are accepted.
func TokenFromRequest(ctx *fasthttp.RequestCtx) (string, error) {
	header := string(ctx.Request.Header.Peek("Authorization"))
	if header == "" {
		return "", ErrNoToken
	}

	for _, scheme := range []string{"Token ", "Bearer "} {
		if strings.HasPrefix(header, scheme) {
			token := strings.TrimSpace(strings.TrimPrefix(header, scheme))
			if token == "" {
				return "", ErrNoToken
			}
			return token, nil
		}
	}

	return "", ErrNoToken
}

// Authenticate resolves a token to its user.
func (a *Authenticator) Authenticate(ctx context.Context, token string) (*user.User, error) {
	return a.users.GetByToken(ctx, token)
}
