package handler

import (
	"net/http"

	"github.com/valyala/fasthttp"
	"go.uber.org/zap"

	"github.com/fastygo/journal/api/transport"
	"github.com/fastygo/journal/pkg/httpcontext"
	moodboardUC "github.com/fastygo/journal/usecase/moodboard"
)

type MoodboardHandler struct {
	baseHandler
	uc *moodboardUC.UseCase
}

func NewMoodboardHandler(uc *moodboardUC.UseCase, adapter *httpcontext.Adapter, logger *zap.Logger) *MoodboardHandler {
	return &MoodboardHandler{
		baseHandler: newBaseHandler(adapter, logger),
		uc:          uc,
	}
}

// @Summary Create a moodboard
// @Tags moodboards
// @Router /api/v1/moodboards [post]
func (h *MoodboardHandler) Create(ctx *fasthttp.RequestCtx) {
	userID, ok := h.user(ctx)
	if !ok {
		return
	}
	var req transport.MoodboardRequest
	if !h.decode(ctx, &req) {
		return
	}

	stdCtx, cancel := h.requestContext(ctx)
	defer cancel()

	view, err := h.uc.Create(stdCtx, userID, req.Title, req.Description)
	if err != nil {
		h.respondError(ctx, stdCtx, err)
		return
	}
	h.respondSuccess(ctx, http.StatusCreated, view)
}

// @Summary List moodboards
// @Tags moodboards
// @Router /api/v1/moodboards [get]
func (h *MoodboardHandler) List(ctx *fasthttp.RequestCtx) {
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

	result, err := h.uc.List(stdCtx, userID, page)
	if err != nil {
		h.respondError(ctx, stdCtx, err)
		return
	}
	h.respondJSON(ctx, http.StatusOK, transport.NewPage(result))
}

// @Summary Get a moodboard
// @Tags moodboards
// @Router /api/v1/moodboards/{id} [get]
func (h *MoodboardHandler) Get(ctx *fasthttp.RequestCtx) {
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

// @Summary Update moodboard details
// @Tags moodboards
// @Router /api/v1/moodboards/{id} [patch]
func (h *MoodboardHandler) Update(ctx *fasthttp.RequestCtx) {
	userID, ok := h.user(ctx)
	if !ok {
		return
	}
	var req transport.MoodboardRequest
	if !h.decode(ctx, &req) {
		return
	}

	stdCtx, cancel := h.requestContext(ctx)
	defer cancel()

	view, err := h.uc.Update(stdCtx, userID, pathParam(ctx, "id"), req.Title, req.Description)
	if err != nil {
		h.respondError(ctx, stdCtx, err)
		return
	}
	h.respondSuccess(ctx, http.StatusOK, view)
}

// @Summary Delete a moodboard and its stored images
// @Tags moodboards
// @Router /api/v1/moodboards/{id} [delete]
func (h *MoodboardHandler) Delete(ctx *fasthttp.RequestCtx) {
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

// @Summary Add a pin
// @Tags moodboards
// @Router /api/v1/moodboards/{id}/pins [post]
func (h *MoodboardHandler) AddPin(ctx *fasthttp.RequestCtx) {
	userID, ok := h.user(ctx)
	if !ok {
		return
	}
	var req transport.PinRequest
	if !h.decode(ctx, &req) {
		return
	}

	stdCtx, cancel := h.requestContext(ctx)
	defer cancel()

	view, err := h.uc.AddPin(stdCtx, userID, pathParam(ctx, "id"), req.Input())
	if err != nil {
		h.respondError(ctx, stdCtx, err)
		return
	}
	h.respondSuccess(ctx, http.StatusCreated, view)
}

// @Summary Move a pin
// @Tags moodboards
// @Router /api/v1/moodboards/{id}/pins/{pinId}/move [post]
func (h *MoodboardHandler) MovePin(ctx *fasthttp.RequestCtx) {
	userID, ok := h.user(ctx)
	if !ok {
		return
	}
	var req transport.MoveRequest
	if !h.decode(ctx, &req) {
		return
	}

	stdCtx, cancel := h.requestContext(ctx)
	defer cancel()

	view, err := h.uc.MovePin(stdCtx, userID, pathParam(ctx, "id"), pathParam(ctx, "pinId"), *req.Position)
	if err != nil {
		h.respondError(ctx, stdCtx, err)
		return
	}
	h.respondSuccess(ctx, http.StatusOK, view)
}

// @Summary Remove a pin
// @Tags moodboards
// @Router /api/v1/moodboards/{id}/pins/{pinId} [delete]
func (h *MoodboardHandler) RemovePin(ctx *fasthttp.RequestCtx) {
	userID, ok := h.user(ctx)
	if !ok {
		return
	}

	stdCtx, cancel := h.requestContext(ctx)
	defer cancel()

	view, err := h.uc.RemovePin(stdCtx, userID, pathParam(ctx, "id"), pathParam(ctx, "pinId"))
	if err != nil {
		h.respondError(ctx, stdCtx, err)
		return
	}
	h.respondSuccess(ctx, http.StatusOK, view)
}

// @Summary Request a presigned upload URL for a pin image
// @Tags moodboards
// @Router /api/v1/moodboards/upload-url [post]
func (h *MoodboardHandler) UploadURL(ctx *fasthttp.RequestCtx) {
	userID, ok := h.user(ctx)
	if !ok {
		return
	}
	var req transport.UploadURLRequest
	if !h.decode(ctx, &req) {
		return
	}

	stdCtx, cancel := h.requestContext(ctx)
	defer cancel()

	upload, err := h.uc.RequestUploadURL(stdCtx, userID, moodboardUC.UploadInput{
		FileName: req.FileName,
		MimeType: req.MimeType,
		Size:     req.Size,
	})
	if err != nil {
		h.respondError(ctx, stdCtx, err)
		return
	}
	h.respondSuccess(ctx, http.StatusOK, upload)
}
