package push

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/valyala/fasthttp"
	"go.uber.org/zap"

	"github.com/fastygo/journal/domain"
	"github.com/fastygo/journal/internal/config"
)

const defaultExpoEndpoint = "https://exp.host/--/api/v2/push/send"

type expoMessage struct {
	To    string            `json:"to"`
	Title string            `json:"title"`
	Body  string            `json:"body"`
	Data  map[string]string `json:"data,omitempty"`
	Sound string            `json:"sound,omitempty"`
}

type expoTicket struct {
	Status  string `json:"status"`
	ID      string `json:"id,omitempty"`
	Message string `json:"message,omitempty"`
	Details struct {
		Error string `json:"error,omitempty"`
	} `json:"details"`
}

type expoResponse struct {
	Data   expoTicket `json:"data"`
	Errors []struct {
		Code    string `json:"code"`
		Message string `json:"message"`
	} `json:"errors,omitempty"`
}

// doer is satisfied by *fasthttp.Client.
type doer interface {
	DoTimeout(req *fasthttp.Request, resp *fasthttp.Response, timeout time.Duration) error
}

// Expo sends push notifications through the Expo push service.
type Expo struct {
	client      doer
	endpoint    string
	accessToken string
	timeout     time.Duration
	logger      *zap.Logger
}

func NewExpo(cfg config.PushConfig, logger *zap.Logger) *Expo {
	return newExpo(&fasthttp.Client{
		Name:                "journal-push",
		MaxConnsPerHost:     64,
		ReadTimeout:         cfg.Timeout,
		WriteTimeout:        cfg.Timeout,
		MaxIdleConnDuration: time.Minute,
	}, cfg, logger)
}

func newExpo(client doer, cfg config.PushConfig, logger *zap.Logger) *Expo {
	if logger == nil {
		logger = zap.NewNop()
	}
	if cfg.Endpoint == "" {
		cfg.Endpoint = defaultExpoEndpoint
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = 10 * time.Second
	}
	return &Expo{client: client, endpoint: cfg.Endpoint, accessToken: cfg.AccessToken, timeout: cfg.Timeout, logger: logger}
}

// Send delivers msg to one device. A device the service no longer knows yields
// domain.ErrPushTokenNotFound so the caller can forget the token.
func (e *Expo) Send(ctx context.Context, token string, msg domain.PushMessage) error {
	payload, err := json.Marshal(expoMessage{To: token, Title: msg.Title, Body: msg.Body, Data: msg.Data, Sound: "default"})
	if err != nil {
		return err
	}

	req := fasthttp.AcquireRequest()
	resp := fasthttp.AcquireResponse()
	defer fasthttp.ReleaseRequest(req)
	defer fasthttp.ReleaseResponse(resp)

	req.SetRequestURI(e.endpoint)
	req.Header.SetMethod(fasthttp.MethodPost)
	req.Header.SetContentType("application/json")
	req.Header.Set("Accept", "application/json")
	if e.accessToken != "" {
		req.Header.Set("Authorization", "Bearer "+e.accessToken)
	}
	req.SetBodyRaw(payload)

	timeout := e.timeout
	if deadline, ok := ctx.Deadline(); ok {
		if remaining := time.Until(deadline); remaining < timeout {
			timeout = remaining
		}
	}
	if err := ctx.Err(); err != nil {
		return err
	}
	if err := e.client.DoTimeout(req, resp, timeout); err != nil {
		return fmt.Errorf("expo request: %w", err)
	}

	if status := resp.StatusCode(); status >= fasthttp.StatusBadRequest {
		return fmt.Errorf("expo responded with status %d: %s", status, resp.Body())
	}

	var out expoResponse
	if err := json.Unmarshal(resp.Body(), &out); err != nil {
		return fmt.Errorf("decode expo response: %w", err)
	}
	if len(out.Errors) > 0 {
		return fmt.Errorf("expo error %s: %s", out.Errors[0].Code, out.Errors[0].Message)
	}
	if out.Data.Status == "error" {
		if out.Data.Details.Error == "DeviceNotRegistered" {
			return domain.ErrPushTokenNotFound
		}
		return fmt.Errorf("expo ticket error %s: %s", out.Data.Details.Error, out.Data.Message)
	}

	e.logger.Debug("push accepted", zap.String("ticket_id", out.Data.ID))
	return nil
}
