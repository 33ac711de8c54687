package authenticator

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/valyala/fasthttp"
)

func TestTokenFromRequest(t *testing.T) {
	tests := []struct {
		name   string
		header string
		token  string
		err    error
	}{
		{"token scheme", "Token abc123", "abc123", nil},
		{"bearer scheme", "Bearer abc123", "abc123", nil},
		{"missing header", "", "", ErrNoToken},
		{"empty token", "Token ", "", ErrNoToken},
		{"unknown scheme", "Basic abc123", "", ErrNoToken},
		{"bare token", "abc123", "", ErrNoToken},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctx := &fasthttp.RequestCtx{}
			if tt.header != "" {
				ctx.Request.Header.Set("Authorization", tt.header)
			}

			token, err := TokenFromRequest(ctx)
			if tt.err != nil {
				require.ErrorIs(t, err, tt.err)
				return
			}

			require.NoError(t, err)
			assert.Equal(t, tt.token, token)
		})
	}
}
