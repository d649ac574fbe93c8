package handler

import (
	"context"
	"net/http"

	"github.com/valyala/fasthttp"
	"go.uber.org/zap"

	"github.com/fastygo/journal/api/transport"
	"github.com/fastygo/journal/pkg/httpcontext"
	friendshipUC "github.com/fastygo/journal/usecase/friendship"
)

type FriendshipHandler struct {
	baseHandler
	uc *friendshipUC.UseCase
}

func NewFriendshipHandler(uc *friendshipUC.UseCase, adapter *httpcontext.Adapter, logger *zap.Logger) *FriendshipHandler {
	return &FriendshipHandler{
		baseHandler: newBaseHandler(adapter, logger),
		uc:          uc,
	}
}

// @Summary Send a friend request
// @Tags friends
// @Router /api/v1/friend-requests [post]
func (h *FriendshipHandler) Send(ctx *fasthttp.RequestCtx) {
	userID, ok := h.user(ctx)
	if !ok {
		return
	}
	var req transport.FriendRequestRequest
	if !h.decode(ctx, &req) {
		return
	}

	stdCtx, cancel := h.requestContext(ctx)
	defer cancel()

	view, err := h.uc.SendRequest(stdCtx, userID, req.ReceiverID)
	if err != nil {
		h.respondError(ctx, stdCtx, err)
		return
	}
	h.respondSuccess(ctx, http.StatusCreated, view)
}

// @Summary List friend requests involving the caller
// @Tags friends
// @Router /api/v1/friend-requests [get]
func (h *FriendshipHandler) List(ctx *fasthttp.RequestCtx) {
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

	result, err := h.uc.List(stdCtx, userID, string(ctx.QueryArgs().Peek("status")), page)
	if err != nil {
		h.respondError(ctx, stdCtx, err)
		return
	}
	h.respondJSON(ctx, http.StatusOK, transport.NewPage(result))
}

// @Summary Get a friend request
// @Tags friends
// @Router /api/v1/friend-requests/{id} [get]
func (h *FriendshipHandler) Get(ctx *fasthttp.RequestCtx) {
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

// @Summary Accept a friend request
// @Tags friends
// @Router /api/v1/friend-requests/{id}/accept [post]
func (h *FriendshipHandler) Accept(ctx *fasthttp.RequestCtx) {
	h.respond(ctx, h.uc.Accept)
}

// @Summary Reject a friend request
// @Tags friends
// @Router /api/v1/friend-requests/{id}/reject [post]
func (h *FriendshipHandler) Reject(ctx *fasthttp.RequestCtx) {
	h.respond(ctx, h.uc.Reject)
}

func (h *FriendshipHandler) respond(ctx *fasthttp.RequestCtx, op func(stdCtx context.Context, actorID, id string) (friendshipUC.RequestView, error)) {
	userID, ok := h.user(ctx)
	if !ok {
		return
	}

	stdCtx, cancel := h.requestContext(ctx)
	defer cancel()

	view, err := op(stdCtx, userID, pathParam(ctx, "id"))
	if err != nil {
		h.respondError(ctx, stdCtx, err)
		return
	}
	h.respondSuccess(ctx, http.StatusOK, view)
}

// @Summary Cancel a pending friend request
// @Tags friends
// @Router /api/v1/friend-requests/{id} [delete]
func (h *FriendshipHandler) Cancel(ctx *fasthttp.RequestCtx) {
	userID, ok := h.user(ctx)
	if !ok {
		return
	}

	stdCtx, cancel := h.requestContext(ctx)
	defer cancel()

	if err := h.uc.Cancel(stdCtx, userID, pathParam(ctx, "id")); err != nil {
		h.respondError(ctx, stdCtx, err)
		return
	}
	h.respondNoContent(ctx)
}
