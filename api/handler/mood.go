package handler

import (
	"net/http"

	"github.com/valyala/fasthttp"
	"go.uber.org/zap"

	"github.com/fastygo/journal/api/transport"
	"github.com/fastygo/journal/pkg/httpcontext"
	moodUC "github.com/fastygo/journal/usecase/mood"
)

type MoodHandler struct {
	baseHandler
	uc *moodUC.UseCase
}

func NewMoodHandler(uc *moodUC.UseCase, adapter *httpcontext.Adapter, logger *zap.Logger) *MoodHandler {
	return &MoodHandler{
		baseHandler: newBaseHandler(adapter, logger),
		uc:          uc,
	}
}

func moodInput(req transport.MoodRequest) moodUC.Input {
	return moodUC.Input{Emotion: req.Emotion, Intensity: req.Intensity, Note: req.Note, LoggedAt: req.LoggedAt}
}

// @Summary Log a mood
// @Tags moods
// @Router /api/v1/moods [post]
func (h *MoodHandler) Log(ctx *fasthttp.RequestCtx) {
	userID, ok := h.user(ctx)
	if !ok {
		return
	}
	var req transport.MoodRequest
	if !h.decode(ctx, &req) {
		return
	}

	stdCtx, cancel := h.requestContext(ctx)
	defer cancel()

	view, err := h.uc.Log(stdCtx, userID, moodInput(req))
	if err != nil {
		h.respondError(ctx, stdCtx, err)
		return
	}
	h.respondSuccess(ctx, http.StatusCreated, view)
}

// @Summary List mood entries, optionally within ?from=&to=
// @Tags moods
// @Router /api/v1/moods [get]
func (h *MoodHandler) List(ctx *fasthttp.RequestCtx) {
	userID, ok := h.user(ctx)
	if !ok {
		return
	}
	page, ok := h.page(ctx)
	if !ok {
		return
	}

	stdCtx, cancel := h.requestContext(ctx)
	defer cancel()

	args := ctx.QueryArgs()
	from, err := transport.ParseTime("from", string(args.Peek("from")))
	if err != nil {
		h.respondError(ctx, stdCtx, err)
		return
	}
	to, err := transport.ParseTime("to", string(args.Peek("to")))
	if err != nil {
		h.respondError(ctx, stdCtx, err)
		return
	}

	result, err := h.uc.List(stdCtx, userID, from, to, page)
	if err != nil {
		h.respondError(ctx, stdCtx, err)
		return
	}
	h.respondJSON(ctx, http.StatusOK, transport.NewPage(result))
}

// @Summary Get a mood entry
// @Tags moods
// @Router /api/v1/moods/{id} [get]
func (h *MoodHandler) Get(ctx *fasthttp.RequestCtx) {
	userID, ok := h.user(ctx)
	if !ok {
		return
	}

	stdCtx, cancel := h.requestContext(ctx)
	defer cancel()

	view, err := h.uc.Get(stdCtx, userID, pathParam(ctx, "id"))
	if err != nil {
		h.respondError(ctx, stdCtx, err)
		return
	}
	h.respondSuccess(ctx, http.StatusOK, view)
}

// @Summary Update a mood entry
// @Tags moods
// @Router /api/v1/moods/{id} [put]
func (h *MoodHandler) Update(ctx *fasthttp.RequestCtx) {
	userID, ok := h.user(ctx)
	if !ok {
		return
	}
	var req transport.MoodRequest
	if !h.decode(ctx, &req) {
		return
	}

	stdCtx, cancel := h.requestContext(ctx)
	defer cancel()

	view, err := h.uc.Update(stdCtx, userID, pathParam(ctx, "id"), moodInput(req))
	if err != nil {
		h.respondError(ctx, stdCtx, err)
		return
	}
	h.respondSuccess(ctx, http.StatusOK, view)
}

// @Summary Delete a mood entry
// @Tags moods
// @Router /api/v1/moods/{id} [delete]
func (h *MoodHandler) Delete(ctx *fasthttp.RequestCtx) {
	userID, ok := h.user(ctx)
	if !ok {
		return
	}

	stdCtx, cancel := h.requestContext(ctx)
	defer cancel()

	if err := h.uc.Delete(stdCtx, userID, pathParam(ctx, "id")); err != nil {
		h.respondError(ctx, stdCtx, err)
		return
	}
	h.respondNoContent(ctx)
}
