package handler

import (
	"net/http"

	"github.com/valyala/fasthttp"
	"go.uber.org/zap"

	"github.com/fastygo/journal/api/transport"
	"github.com/fastygo/journal/domain"
	"github.com/fastygo/journal/pkg/httpcontext"
	messagingUC "github.com/fastygo/journal/usecase/messaging"
)

type MessagingHandler struct {
	baseHandler
	uc *messagingUC.UseCase
}

func NewMessagingHandler(uc *messagingUC.UseCase, adapter *httpcontext.Adapter, logger *zap.Logger) *MessagingHandler {
	return &MessagingHandler{
		baseHandler: newBaseHandler(adapter, logger),
		uc:          uc,
	}
}

func attachments(in []transport.AttachmentRequest) []domain.AttachmentInput {
	out := make([]domain.AttachmentInput, 0, len(in))
	for _, a := range in {
		out = append(out, a.Input())
	}
	return out
}

// @Summary Send a direct message, opening the conversation when needed
// @Tags messaging
// @Router /api/v1/messages [post]
func (h *MessagingHandler) SendDirect(ctx *fasthttp.RequestCtx) {
	userID, ok := h.user(ctx)
	if !ok {
		return
	}
	var req transport.SendDirectMessageRequest
	if !h.decode(ctx, &req) {
		return
	}

	stdCtx, cancel := h.requestContext(ctx)
	defer cancel()

	msg, err := h.uc.SendDirectMessage(stdCtx, messagingUC.DirectMessageInput{
		SenderID:    userID,
		RecipientID: req.RecipientID,
		Content:     req.Content,
		Attachments: attachments(req.Attachments),
	})
	if err != nil {
		h.respondError(ctx, stdCtx, err)
		return
	}
	h.respondSuccess(ctx, http.StatusCreated, msg)
}

// @Summary Send a message into an existing conversation
// @Tags messaging
// @Router /api/v1/conversations/{id}/messages [post]
func (h *MessagingHandler) Send(ctx *fasthttp.RequestCtx) {
	userID, ok := h.user(ctx)
	if !ok {
		return
	}
	var req transport.SendMessageRequest
	if !h.decode(ctx, &req) {
		return
	}

	stdCtx, cancel := h.requestContext(ctx)
	defer cancel()

	msg, err := h.uc.SendMessage(stdCtx, messagingUC.MessageInput{
		ConversationID: pathParam(ctx, "id"),
		SenderID:       userID,
		Content:        req.Content,
		Attachments:    attachments(req.Attachments),
	})
	if err != nil {
		h.respondError(ctx, stdCtx, err)
		return
	}
	h.respondSuccess(ctx, http.StatusCreated, msg)
}

// @Summary List conversations
// @Tags messaging
// @Router /api/v1/conversations [get]
func (h *MessagingHandler) ListConversations(ctx *fasthttp.RequestCtx) {
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

	result, err := h.uc.ListConversations(stdCtx, userID, page)
	if err != nil {
		h.respondError(ctx, stdCtx, err)
		return
	}
	h.respondJSON(ctx, http.StatusOK, transport.NewPage(result))
}

// @Summary Get a conversation
// @Tags messaging
// @Router /api/v1/conversations/{id} [get]
func (h *MessagingHandler) GetConversation(ctx *fasthttp.RequestCtx) {
	userID, ok := h.user(ctx)
	if !ok {
		return
	}

	stdCtx, cancel := h.requestContext(ctx)
	defer cancel()

	conv, err := h.uc.GetConversation(stdCtx, userID, pathParam(ctx, "id"))
	if err != nil {
		h.respondError(ctx, stdCtx, err)
		return
	}
	h.respondSuccess(ctx, http.StatusOK, conv)
}

// @Summary List messages of a conversation, newest first
// @Tags messaging
// @Router /api/v1/conversations/{id}/messages [get]
func (h *MessagingHandler) ListMessages(ctx *fasthttp.RequestCtx) {
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

	result, err := h.uc.ListMessages(stdCtx, userID, pathParam(ctx, "id"), page)
	if err != nil {
		h.respondError(ctx, stdCtx, err)
		return
	}
	h.respondJSON(ctx, http.StatusOK, transport.NewPage(result))
}

// @Summary Mark a conversation read
// @Tags messaging
// @Router /api/v1/conversations/{id}/read [post]
func (h *MessagingHandler) MarkRead(ctx *fasthttp.RequestCtx) {
	userID, ok := h.user(ctx)
	if !ok {
		return
	}

	stdCtx, cancel := h.requestContext(ctx)
	defer cancel()

	conv, err := h.uc.MarkConversationRead(stdCtx, userID, pathParam(ctx, "id"))
	if err != nil {
		h.respondError(ctx, stdCtx, err)
		return
	}
	h.respondSuccess(ctx, http.StatusOK, conv)
}

// @Summary Delete a conversation
// @Tags messaging
// @Router /api/v1/conversations/{id} [delete]
func (h *MessagingHandler) DeleteConversation(ctx *fasthttp.RequestCtx) {
	userID, ok := h.user(ctx)
	if !ok {
		return
	}

	stdCtx, cancel := h.requestContext(ctx)
	defer cancel()

	if err := h.uc.DeleteConversation(stdCtx, userID, pathParam(ctx, "id")); err != nil {
		h.respondError(ctx, stdCtx, err)
		return
	}
	h.respondNoContent(ctx)
}

// @Summary Edit a message
// @Tags messaging
// @Router /api/v1/messages/{id} [patch]
func (h *MessagingHandler) Edit(ctx *fasthttp.RequestCtx) {
	userID, ok := h.user(ctx)
	if !ok {
		return
	}
	var req transport.EditMessageRequest
	if !h.decode(ctx, &req) {
		return
	}

	stdCtx, cancel := h.requestContext(ctx)
	defer cancel()

	msg, err := h.uc.EditMessage(stdCtx, userID, pathParam(ctx, "id"), req.Content)
	if err != nil {
		h.respondError(ctx, stdCtx, err)
		return
	}
	h.respondSuccess(ctx, http.StatusOK, msg)
}

// @Summary Soft-delete a message
// @Tags messaging
// @Router /api/v1/messages/{id} [delete]
func (h *MessagingHandler) Delete(ctx *fasthttp.RequestCtx) {
	userID, ok := h.user(ctx)
	if !ok {
		return
	}

	stdCtx, cancel := h.requestContext(ctx)
	defer cancel()

	msg, err := h.uc.DeleteMessage(stdCtx, userID, pathParam(ctx, "id"))
	if err != nil {
		h.respondError(ctx, stdCtx, err)
		return
	}
	h.respondSuccess(ctx, http.StatusOK, msg)
}

// @Summary Toggle a reaction on a message
// @Tags messaging
// @Router /api/v1/messages/{id}/reactions [post]
func (h *MessagingHandler) React(ctx *fasthttp.RequestCtx) {
	userID, ok := h.user(ctx)
	if !ok {
		return
	}
	var req transport.ReactionRequest
	if !h.decode(ctx, &req) {
		return
	}

	stdCtx, cancel := h.requestContext(ctx)
	defer cancel()

	result, msg, err := h.uc.ToggleReaction(stdCtx, userID, pathParam(ctx, "id"), req.Emoji)
	if err != nil {
		h.respondError(ctx, stdCtx, err)
		return
	}
	h.respondSuccess(ctx, http.StatusOK, map[string]interface{}{
		"result":  result,
		"message": msg,
	})
}
