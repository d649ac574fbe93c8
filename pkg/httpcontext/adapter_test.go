package httpcontext

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"github.com/valyala/fasthttp"

	"github.com/fastygo/journal/domain"
)

func TestAttach(t *testing.T) {
	req := require.New(t)
	var rc fasthttp.RequestCtx
	rc.Request.Header.Set("X-Request-ID", "req-42")
	rc.SetUserValue(UserValueKey, domain.SessionUser{UserID: "u1", Name: "Alice"})

	ctx, cancel := NewAdapter(time.Second).Attach(&rc)
	defer cancel()

	req.Equal("req-42", string(rc.Response.Header.Peek("X-Request-ID")))
	user, ok := UserFromContext(ctx)
	req.True(ok)
	req.Equal("Alice", user.Name)
	_, hasDeadline := ctx.Deadline()
	req.True(hasDeadline)
}

func TestAttachGeneratesRequestID(t *testing.T) {
	var rc fasthttp.RequestCtx
	ctx, cancel := NewAdapter(0).Attach(&rc)
	defer cancel()

	require.NotEmpty(t, string(rc.Response.Header.Peek("X-Request-ID")))
	_, ok := UserFromContext(ctx)
	require.False(t, ok)
}
