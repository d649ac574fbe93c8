package middleware

import (
	"errors"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v4"
	"github.com/stretchr/testify/require"
	"github.com/valyala/fasthttp"
	"go.uber.org/mock/gomock"

	"github.com/fastygo/journal/domain"
	"github.com/fastygo/journal/internal/mocks"
	"github.com/fastygo/journal/pkg/httpcontext"
)

const secret = "test-secret"

func signed(t *testing.T, method jwt.SigningMethod, key interface{}, claims sessionClaims) string {
	t.Helper()
	s, err := jwt.NewWithClaims(method, claims).SignedString(key)
	require.NoError(t, err)
	return s
}

func validClaims(sid string) sessionClaims {
	return sessionClaims{
		SessionID: sid,
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    "journal-auth",
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
	}
}

func run(mw func(fasthttp.RequestHandler) fasthttp.RequestHandler, authorization string) (*fasthttp.RequestCtx, bool) {
	var ctx fasthttp.RequestCtx
	if authorization != "" {
		ctx.Request.Header.Set("Authorization", authorization)
	}
	called := false
	mw(func(*fasthttp.RequestCtx) { called = true })(&ctx)
	return &ctx, called
}

func TestAuth(t *testing.T) {
	cfg := AuthConfig{Secret: secret, Issuer: "journal-auth"}

	t.Run("valid session passes the user through", func(t *testing.T) {
		req := require.New(t)
		lookup := mocks.NewMockSessionLookup(gomock.NewController(t))
		lookup.EXPECT().Lookup(gomock.Any(), "s1").Return(domain.SessionUser{UserID: "u1", Name: "Alice"}, true, nil)

		var seen domain.SessionUser
		var ctx fasthttp.RequestCtx
		ctx.Request.Header.Set("Authorization", "Bearer "+signed(t, jwt.SigningMethodHS256, []byte(secret), validClaims("s1")))
		Auth(cfg, lookup, nil)(func(c *fasthttp.RequestCtx) {
			seen, _ = httpcontext.SessionUser(c)
		})(&ctx)

		req.Equal("u1", seen.UserID)
		req.Equal("u1", string(ctx.Request.Header.Peek("X-User-ID")))
	})

	t.Run("missing token", func(t *testing.T) {
		lookup := mocks.NewMockSessionLookup(gomock.NewController(t))
		ctx, called := run(Auth(cfg, lookup, nil), "")
		require.False(t, called)
		require.Equal(t, fasthttp.StatusUnauthorized, ctx.Response.StatusCode())
	})

	t.Run("wrong secret", func(t *testing.T) {
		lookup := mocks.NewMockSessionLookup(gomock.NewController(t))
		token := signed(t, jwt.SigningMethodHS256, []byte("other"), validClaims("s1"))
		ctx, called := run(Auth(cfg, lookup, nil), "Bearer "+token)
		require.False(t, called)
		require.Equal(t, fasthttp.StatusUnauthorized, ctx.Response.StatusCode())
	})

	t.Run("wrong issuer", func(t *testing.T) {
		lookup := mocks.NewMockSessionLookup(gomock.NewController(t))
		claims := validClaims("s1")
		claims.Issuer = "someone-else"
		ctx, called := run(Auth(cfg, lookup, nil), "Bearer "+signed(t, jwt.SigningMethodHS256, []byte(secret), claims))
		require.False(t, called)
		require.Equal(t, fasthttp.StatusUnauthorized, ctx.Response.StatusCode())
	})

	t.Run("unknown session", func(t *testing.T) {
		lookup := mocks.NewMockSessionLookup(gomock.NewController(t))
		lookup.EXPECT().Lookup(gomock.Any(), "gone").Return(domain.SessionUser{}, false, nil)
		token := signed(t, jwt.SigningMethodHS256, []byte(secret), validClaims("gone"))
		ctx, called := run(Auth(cfg, lookup, nil), "Bearer "+token)
		require.False(t, called)
		require.Equal(t, fasthttp.StatusUnauthorized, ctx.Response.StatusCode())
		require.Contains(t, string(ctx.Response.Body()), "UNAUTHORIZED")
	})

	t.Run("lookup failure is internal", func(t *testing.T) {
		lookup := mocks.NewMockSessionLookup(gomock.NewController(t))
		lookup.EXPECT().Lookup(gomock.Any(), "s1").Return(domain.SessionUser{}, false, errors.New("redis down"))
		token := signed(t, jwt.SigningMethodHS256, []byte(secret), validClaims("s1"))
		ctx, called := run(Auth(cfg, lookup, nil), "Bearer "+token)
		require.False(t, called)
		require.Equal(t, fasthttp.StatusInternalServerError, ctx.Response.StatusCode())
	})
}
