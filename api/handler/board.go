package handler

import (
	"net/http"

	"github.com/valyala/fasthttp"
	"go.uber.org/zap"

	"github.com/fastygo/journal/api/transport"
	"github.com/fastygo/journal/pkg/httpcontext"
	boardUC "github.com/fastygo/journal/usecase/board"
)

type BoardHandler struct {
	baseHandler
	uc *boardUC.UseCase
}

func NewBoardHandler(uc *boardUC.UseCase, adapter *httpcontext.Adapter, logger *zap.Logger) *BoardHandler {
	return &BoardHandler{
		baseHandler: newBaseHandler(adapter, logger),
		uc:          uc,
	}
}

// @Summary Create a board
// @Tags boards
// @Router /api/v1/boards [post]
func (h *BoardHandler) Create(ctx *fasthttp.RequestCtx) {
	userID, ok := h.user(ctx)
	if !ok {
		return
	}
	var req transport.BoardRequest
	if !h.decode(ctx, &req) {
		return
	}

	stdCtx, cancel := h.requestContext(ctx)
	defer cancel()

	view, err := h.uc.Create(stdCtx, userID, req.Title, req.Columns)
	if err != nil {
		h.respondError(ctx, stdCtx, err)
		return
	}
	h.respondSuccess(ctx, http.StatusCreated, view)
}

// @Summary List boards
// @Tags boards
// @Router /api/v1/boards [get]
func (h *BoardHandler) List(ctx *fasthttp.RequestCtx) {
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

// @Summary Get a board
// @Tags boards
// @Router /api/v1/boards/{id} [get]
func (h *BoardHandler) Get(ctx *fasthttp.RequestCtx) {
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

// @Summary Rename a board
// @Tags boards
// @Router /api/v1/boards/{id} [patch]
func (h *BoardHandler) Rename(ctx *fasthttp.RequestCtx) {
	userID, ok := h.user(ctx)
	if !ok {
		return
	}
	var req transport.RenameRequest
	if !h.decode(ctx, &req) {
		return
	}

	stdCtx, cancel := h.requestContext(ctx)
	defer cancel()

	view, err := h.uc.Rename(stdCtx, userID, pathParam(ctx, "id"), req.Title)
	if err != nil {
		h.respondError(ctx, stdCtx, err)
		return
	}
	h.respondSuccess(ctx, http.StatusOK, view)
}

// @Summary Delete a board
// @Tags boards
// @Router /api/v1/boards/{id} [delete]
func (h *BoardHandler) Delete(ctx *fasthttp.RequestCtx) {
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

// @Summary Add a column
// @Tags boards
// @Router /api/v1/boards/{id}/columns [post]
func (h *BoardHandler) AddColumn(ctx *fasthttp.RequestCtx) {
	userID, ok := h.user(ctx)
	if !ok {
		return
	}
	var req transport.ColumnRequest
	if !h.decode(ctx, &req) {
		return
	}

	stdCtx, cancel := h.requestContext(ctx)
	defer cancel()

	view, err := h.uc.AddColumn(stdCtx, userID, pathParam(ctx, "id"), req.Title, req.Color)
	if err != nil {
		h.respondError(ctx, stdCtx, err)
		return
	}
	h.respondSuccess(ctx, http.StatusCreated, view)
}

// @Summary Rename or recolor a column
// @Tags boards
// @Router /api/v1/boards/{id}/columns/{columnId} [patch]
func (h *BoardHandler) RenameColumn(ctx *fasthttp.RequestCtx) {
	userID, ok := h.user(ctx)
	if !ok {
		return
	}
	var req transport.ColumnRequest
	if !h.decode(ctx, &req) {
		return
	}

	stdCtx, cancel := h.requestContext(ctx)
	defer cancel()

	view, err := h.uc.RenameColumn(stdCtx, userID, pathParam(ctx, "id"), pathParam(ctx, "columnId"), req.Title, req.Color)
	if err != nil {
		h.respondError(ctx, stdCtx, err)
		return
	}
	h.respondSuccess(ctx, http.StatusOK, view)
}

// @Summary Move a column
// @Tags boards
// @Router /api/v1/boards/{id}/columns/{columnId}/move [post]
func (h *BoardHandler) MoveColumn(ctx *fasthttp.RequestCtx) {
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

	view, err := h.uc.MoveColumn(stdCtx, userID, pathParam(ctx, "id"), pathParam(ctx, "columnId"), *req.Position)
	if err != nil {
		h.respondError(ctx, stdCtx, err)
		return
	}
	h.respondSuccess(ctx, http.StatusOK, view)
}

// @Summary Remove a column with its cards
// @Tags boards
// @Router /api/v1/boards/{id}/columns/{columnId} [delete]
func (h *BoardHandler) RemoveColumn(ctx *fasthttp.RequestCtx) {
	userID, ok := h.user(ctx)
	if !ok {
		return
	}

	stdCtx, cancel := h.requestContext(ctx)
	defer cancel()

	view, err := h.uc.RemoveColumn(stdCtx, userID, pathParam(ctx, "id"), pathParam(ctx, "columnId"))
	if err != nil {
		h.respondError(ctx, stdCtx, err)
		return
	}
	h.respondSuccess(ctx, http.StatusOK, view)
}

// @Summary Add a card to a column
// @Tags boards
// @Router /api/v1/boards/{id}/columns/{columnId}/cards [post]
func (h *BoardHandler) AddCard(ctx *fasthttp.RequestCtx) {
	userID, ok := h.user(ctx)
	if !ok {
		return
	}
	var req transport.CardRequest
	if !h.decode(ctx, &req) {
		return
	}

	stdCtx, cancel := h.requestContext(ctx)
	defer cancel()

	view, err := h.uc.AddCard(stdCtx, userID, pathParam(ctx, "id"), pathParam(ctx, "columnId"), req.Input())
	if err != nil {
		h.respondError(ctx, stdCtx, err)
		return
	}
	h.respondSuccess(ctx, http.StatusCreated, view)
}

// @Summary Move a card, possibly across columns
// @Tags boards
// @Router /api/v1/boards/{id}/cards/{cardId}/move [post]
func (h *BoardHandler) MoveCard(ctx *fasthttp.RequestCtx) {
	userID, ok := h.user(ctx)
	if !ok {
		return
	}
	var req transport.MoveCardRequest
	if !h.decode(ctx, &req) {
		return
	}

	stdCtx, cancel := h.requestContext(ctx)
	defer cancel()

	view, err := h.uc.MoveCard(stdCtx, userID, pathParam(ctx, "id"), pathParam(ctx, "cardId"), req.ColumnID, *req.Position)
	if err != nil {
		h.respondError(ctx, stdCtx, err)
		return
	}
	h.respondSuccess(ctx, http.StatusOK, view)
}

// @Summary Remove a card
// @Tags boards
// @Router /api/v1/boards/{id}/cards/{cardId} [delete]
func (h *BoardHandler) RemoveCard(ctx *fasthttp.RequestCtx) {
	userID, ok := h.user(ctx)
	if !ok {
		return
	}

	stdCtx, cancel := h.requestContext(ctx)
	defer cancel()

	view, err := h.uc.RemoveCard(stdCtx, userID, pathParam(ctx, "id"), pathParam(ctx, "cardId"))
	if err != nil {
		h.respondError(ctx, stdCtx, err)
		return
	}
	h.respondSuccess(ctx, http.StatusOK, view)
}
