package middleware

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v4"
	"github.com/valyala/fasthttp"
	"go.uber.org/zap"

	"github.com/fastygo/journal/api/transport"
	"github.com/fastygo/journal/domain"
	"github.com/fastygo/journal/pkg/httpcontext"
	"github.com/fastygo/journal/usecase"
)

// sessionClaims is the token the auth service issues. sid names the session in the shared store.
type sessionClaims struct {
	SessionID string `json:"sid"`
	jwt.RegisteredClaims
}

type AuthConfig struct {
	Secret        string
	Issuer        string
	LookupTimeout time.Duration
}

// Auth verifies the bearer token, resolves its session and stores the user on the request.
// Requests without a live session get 401.
func Auth(cfg AuthConfig, sessions usecase.SessionLookup, logger *zap.Logger) func(fasthttp.RequestHandler) fasthttp.RequestHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	if cfg.LookupTimeout <= 0 {
		cfg.LookupTimeout = 2 * time.Second
	}
	parser := jwt.NewParser(jwt.WithValidMethods([]string{"HS256", "HS384", "HS512"}))

	return func(next fasthttp.RequestHandler) fasthttp.RequestHandler {
		return func(ctx *fasthttp.RequestCtx) {
			tokenString := extractToken(ctx)
			if tokenString == "" {
				unauthorized(ctx, "missing bearer token")
				return
			}

			claims := &sessionClaims{}
			token, err := parser.ParseWithClaims(tokenString, claims, func(*jwt.Token) (interface{}, error) {
				return []byte(cfg.Secret), nil
			})
			if err != nil || !token.Valid {
				logger.Warn("invalid jwt token", zap.Error(err))
				unauthorized(ctx, "invalid token")
				return
			}
			if cfg.Issuer != "" && !claims.VerifyIssuer(cfg.Issuer, true) {
				unauthorized(ctx, "invalid token issuer")
				return
			}
			if claims.SessionID == "" {
				unauthorized(ctx, "token carries no session")
				return
			}

			lookupCtx, cancel := context.WithTimeout(context.Background(), cfg.LookupTimeout)
			user, ok, err := sessions.Lookup(lookupCtx, claims.SessionID)
			cancel()
			if err != nil {
				logger.Error("session lookup failed", zap.Error(err))
				writeError(ctx, fasthttp.StatusInternalServerError, domain.ErrCodeInternal, "session lookup failed")
				return
			}
			if !ok {
				unauthorized(ctx, "session expired or unknown")
				return
			}

			ctx.SetUserValue(httpcontext.UserValueKey, user)
			ctx.Request.Header.Set("X-User-ID", user.UserID)
			next(ctx)
		}
	}
}

func extractToken(ctx *fasthttp.RequestCtx) string {
	header := strings.TrimSpace(string(ctx.Request.Header.Peek("Authorization")))
	if header == "" {
		return ""
	}
	if len(header) > 7 && strings.EqualFold(header[:7], "Bearer ") {
		return strings.TrimSpace(header[7:])
	}
	return header
}

func unauthorized(ctx *fasthttp.RequestCtx, msg string) {
	writeError(ctx, fasthttp.StatusUnauthorized, domain.ErrCodeUnauthorized, msg)
}

func writeError(ctx *fasthttp.RequestCtx, status int, code domain.ErrorCode, msg string) {
	body, err := json.Marshal(transport.NewError(string(code), msg, nil))
	if err != nil {
		body = []byte(fmt.Sprintf(`{"status":"error","code":%q}`, code))
	}
	ctx.Response.Header.SetContentType("application/json")
	ctx.SetStatusCode(status)
	ctx.SetBody(body)
}
