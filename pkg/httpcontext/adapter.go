package httpcontext

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/valyala/fasthttp"

	"github.com/fastygo/journal/domain"
	appLogger "github.com/fastygo/journal/pkg/logger"
)

// Key represents a context value key exported for reuse.
type Key string

const (
	KeyRemoteAddr Key = "remote_addr"
	KeyUserAgent  Key = "user_agent"
	KeyUser       Key = "session_user"
)

// UserValueKey is where the auth middleware stores the domain.SessionUser on the fasthttp request.
const UserValueKey = "session_user"

// Adapter converts fasthttp.RequestCtx into a stdlib context with deadlines and metadata.
type Adapter struct {
	timeout time.Duration
}

// NewAdapter constructs a new Adapter using the provided timeout.
func NewAdapter(timeout time.Duration) *Adapter {
	if timeout <= 0 {
		timeout = 5 * time.Second
	}
	return &Adapter{
		timeout: timeout,
	}
}

// Attach creates a context with timeout derived from the adapter and enriches it with request metadata.
func (a *Adapter) Attach(ctx *fasthttp.RequestCtx) (context.Context, context.CancelFunc) {
	stdCtx, cancel := context.WithTimeout(context.Background(), a.timeout)

	reqID := getRequestID(ctx)
	stdCtx = appLogger.ContextWithRequestID(stdCtx, reqID)
	ctx.Response.Header.Set("X-Request-ID", reqID)

	if remoteAddr := ctx.RemoteAddr(); remoteAddr != nil {
		stdCtx = context.WithValue(stdCtx, KeyRemoteAddr, remoteAddr.String())
	}
	if ua := string(ctx.Request.Header.UserAgent()); ua != "" {
		stdCtx = context.WithValue(stdCtx, KeyUserAgent, ua)
	}
	if user, ok := SessionUser(ctx); ok {
		stdCtx = context.WithValue(stdCtx, KeyUser, user)
		stdCtx = appLogger.ContextWithUserID(stdCtx, user.UserID)
	}

	return stdCtx, cancel
}

// SessionUser returns the user the auth middleware resolved for this request.
func SessionUser(ctx *fasthttp.RequestCtx) (domain.SessionUser, bool) {
	if ctx == nil {
		return domain.SessionUser{}, false
	}
	user, ok := ctx.UserValue(UserValueKey).(domain.SessionUser)
	return user, ok && user.UserID != ""
}

// UserFromContext is the stdlib-context counterpart of SessionUser.
func UserFromContext(ctx context.Context) (domain.SessionUser, bool) {
	user, ok := ctx.Value(KeyUser).(domain.SessionUser)
	return user, ok && user.UserID != ""
}

func getRequestID(ctx *fasthttp.RequestCtx) string {
	if ctx == nil {
		return uuid.NewString()
	}
	if header := string(ctx.Request.Header.Peek("X-Request-ID")); strings.TrimSpace(header) != "" {
		return header
	}
	return uuid.NewString()
}
