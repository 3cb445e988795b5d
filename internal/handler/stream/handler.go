package stream

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"strings"

	chatmodel "github.com/gospia/gospia/backend/internal/model/chat"
	accountservice "github.com/gospia/gospia/backend/internal/service/account"
	chatservice "github.com/gospia/gospia/backend/internal/service/chat"
	"github.com/gospia/gospia/backend/internal/service/resolver"
	"github.com/gospia/gospia/backend/pkg/utils"
)

// Handler streams replies over Server-Sent Events so the frontend can
// show the typing indicator while the resolver waits.
type Handler struct {
	chatSvc     *chatservice.Service
	accountSvc  *accountservice.Service
	resolverSvc *resolver.Service
}

// New creates the stream handler.
func New(chatSvc *chatservice.Service, accountSvc *accountservice.Service, resolverSvc *resolver.Service) *Handler {
	return &Handler{
		chatSvc:     chatSvc,
		accountSvc:  accountSvc,
		resolverSvc: resolverSvc,
	}
}

// StreamResponse is a single SSE frame.
type StreamResponse struct {
	Event          string `json:"event"`
	Content        string `json:"content,omitempty"`
	ConversationID string `json:"conversationId,omitempty"`
	Finished       bool   `json:"finished,omitempty"`
	Error          string `json:"error,omitempty"`
}

// HandleStreamRequest runs the send pipeline and emits start, reply
// and done events. The resolver is cancelled when the client closes
// the stream, so no stale reply is appended afterwards.
func (h *Handler) HandleStreamRequest(ctx context.Context, w http.ResponseWriter, conversationID, userMessage string) error {
	flusher, ok := w.(http.Flusher)
	if !ok {
		return fmt.Errorf("streaming unsupported")
	}

	utils.SetupSSEHeaders(w)

	content := strings.TrimSpace(userMessage)
	if content == "" {
		h.sendError(w, flusher, "message is required")
		return nil
	}
	if !h.accountSvc.LoggedIn() {
		h.sendError(w, flusher, "faça login para conversar com o pastor")
		return nil
	}

	switch err := h.chatSvc.BeginResolve(conversationID); {
	case errors.Is(err, chatservice.ErrConversationNotFound):
		h.sendError(w, flusher, "conversation not found")
		return nil
	case errors.Is(err, chatservice.ErrResolving):
		h.sendError(w, flusher, "a reply is still being resolved")
		return nil
	case err != nil:
		return err
	}
	defer h.chatSvc.EndResolve(conversationID)

	if _, err := h.chatSvc.AppendMessage(ctx, conversationID, chatmodel.RoleUser, content); err != nil {
		h.sendError(w, flusher, err.Error())
		return err
	}

	selected := h.accountSvc.Selected()
	utils.SendSSEChunk(w, flusher, StreamResponse{
		Event:          "start",
		ConversationID: conversationID,
		Content:        fmt.Sprintf("%s está escrevendo...", selected.Name),
	})

	replyText, err := h.resolverSvc.Resolve(ctx, content, selected)
	if err != nil {
		if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
			log.Printf("[stream] resolution abandoned for conversation=%s: %v", conversationID, err)
			return nil
		}
		h.sendError(w, flusher, "resolution failed")
		return err
	}

	reply, err := h.chatSvc.AppendMessage(ctx, conversationID, chatmodel.RoleAssistant, replyText)
	if err != nil {
		h.sendError(w, flusher, err.Error())
		return err
	}

	utils.SendSSEChunk(w, flusher, StreamResponse{
		Event:          "reply",
		ConversationID: conversationID,
		Content:        reply.Content,
	})
	utils.SendSSEChunk(w, flusher, StreamResponse{
		Event:          "done",
		ConversationID: conversationID,
		Finished:       true,
	})
	return nil
}

func (h *Handler) sendError(w http.ResponseWriter, flusher http.Flusher, message string) {
	utils.SendSSEChunk(w, flusher, StreamResponse{Event: "error", Error: message})
}
