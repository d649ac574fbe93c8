package handler

import (
	"net/http"

	"github.com/valyala/fasthttp"
	"go.uber.org/zap"

	"github.com/fastygo/journal/api/transport"
	"github.com/fastygo/journal/pkg/httpcontext"
	tableauUC "github.com/fastygo/journal/usecase/tableau"
)

type TableauHandler struct {
	baseHandler
	uc *tableauUC.UseCase
}

func NewTableauHandler(uc *tableauUC.UseCase, adapter *httpcontext.Adapter, logger *zap.Logger) *TableauHandler {
	return &TableauHandler{
		baseHandler: newBaseHandler(adapter, logger),
		uc:          uc,
	}
}

// @Summary Create a tableau
// @Tags tableaux
// @Router /api/v1/tableaux [post]
func (h *TableauHandler) Create(ctx *fasthttp.RequestCtx) {
	userID, ok := h.user(ctx)
	if !ok {
		return
	}
	var req transport.TableauRequest
	if !h.decode(ctx, &req) {
		return
	}

	stdCtx, cancel := h.requestContext(ctx)
	defer cancel()

	view, err := h.uc.Create(stdCtx, userID, req.Title)
	if err != nil {
		h.respondError(ctx, stdCtx, err)
		return
	}
	h.respondSuccess(ctx, http.StatusCreated, view)
}

// @Summary List tableaux
// @Tags tableaux
// @Router /api/v1/tableaux [get]
func (h *TableauHandler) List(ctx *fasthttp.RequestCtx) {
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

// @Summary Get a tableau
// @Tags tableaux
// @Router /api/v1/tableaux/{id} [get]
func (h *TableauHandler) Get(ctx *fasthttp.RequestCtx) {
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

// @Summary Rename a tableau
// @Tags tableaux
// @Router /api/v1/tableaux/{id} [patch]
func (h *TableauHandler) Rename(ctx *fasthttp.RequestCtx) {
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

// @Summary Delete a tableau
// @Tags tableaux
// @Router /api/v1/tableaux/{id} [delete]
func (h *TableauHandler) Delete(ctx *fasthttp.RequestCtx) {
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

// @Summary Add a row
// @Tags tableaux
// @Router /api/v1/tableaux/{id}/rows [post]
func (h *TableauHandler) AddRow(ctx *fasthttp.RequestCtx) {
	userID, ok := h.user(ctx)
	if !ok {
		return
	}
	var req transport.RowRequest
	if !h.decode(ctx, &req) {
		return
	}

	stdCtx, cancel := h.requestContext(ctx)
	defer cancel()

	view, err := h.uc.AddRow(stdCtx, userID, pathParam(ctx, "id"), req.Input())
	if err != nil {
		h.respondError(ctx, stdCtx, err)
		return
	}
	h.respondSuccess(ctx, http.StatusCreated, view)
}

// @Summary Replace the fields of a row
// @Tags tableaux
// @Router /api/v1/tableaux/{id}/rows/{rowId} [put]
func (h *TableauHandler) UpdateRow(ctx *fasthttp.RequestCtx) {
	userID, ok := h.user(ctx)
	if !ok {
		return
	}
	var req transport.RowRequest
	if !h.decode(ctx, &req) {
		return
	}

	stdCtx, cancel := h.requestContext(ctx)
	defer cancel()

	view, err := h.uc.UpdateRow(stdCtx, userID, pathParam(ctx, "id"), pathParam(ctx, "rowId"), req.Input())
	if err != nil {
		h.respondError(ctx, stdCtx, err)
		return
	}
	h.respondSuccess(ctx, http.StatusOK, view)
}

// @Summary Move a row
// @Tags tableaux
// @Router /api/v1/tableaux/{id}/rows/{rowId}/move [post]
func (h *TableauHandler) MoveRow(ctx *fasthttp.RequestCtx) {
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

	view, err := h.uc.MoveRow(stdCtx, userID, pathParam(ctx, "id"), pathParam(ctx, "rowId"), *req.Position)
	if err != nil {
		h.respondError(ctx, stdCtx, err)
		return
	}
	h.respondSuccess(ctx, http.StatusOK, view)
}

// @Summary Remove a row
// @Tags tableaux
// @Router /api/v1/tableaux/{id}/rows/{rowId} [delete]
func (h *TableauHandler) RemoveRow(ctx *fasthttp.RequestCtx) {
	userID, ok := h.user(ctx)
	if !ok {
		return
	}

	stdCtx, cancel := h.requestContext(ctx)
	defer cancel()

	view, err := h.uc.RemoveRow(stdCtx, userID, pathParam(ctx, "id"), pathParam(ctx, "rowId"))
	if err != nil {
		h.respondError(ctx, stdCtx, err)
		return
	}
	h.respondSuccess(ctx, http.StatusOK, view)
}
