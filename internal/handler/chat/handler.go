package chat

import (
	"context"
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	chatmodel "github.com/gospia/gospia/backend/internal/model/chat"
	accountservice "github.com/gospia/gospia/backend/internal/service/account"
	chatservice "github.com/gospia/gospia/backend/internal/service/chat"
	"github.com/gospia/gospia/backend/internal/service/resolver"
	"github.com/gospia/gospia/backend/pkg/utils"
)

// genericFailureReply is appended in place of a reply when resolution
// fails unexpectedly, so the transcript keeps flowing.
const genericFailureReply = "Desculpe, não consegui gerar uma resposta agora. Por favor, tente novamente."

// Handler drives the conversation endpoints.
type Handler struct {
	chatSvc     *chatservice.Service
	accountSvc  *accountservice.Service
	resolverSvc *resolver.Service
}

// New creates the chat handler.
func New(chatSvc *chatservice.Service, accountSvc *accountservice.Service, resolverSvc *resolver.Service) *Handler {
	return &Handler{
		chatSvc:     chatSvc,
		accountSvc:  accountSvc,
		resolverSvc: resolverSvc,
	}
}

// RegisterRoutes registers the conversation routes.
func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Post("/conversations", h.handleCreateConversation)
	r.Route("/conversations/{conversationID}", func(r chi.Router) {
		r.Get("/messages", h.handleTranscript)
		r.Post("/messages", h.handleSendMessage)
	})
}

// handleCreateConversation opens a transcript with the currently
// selected persona and its greeting.
func (h *Handler) handleCreateConversation(w http.ResponseWriter, r *http.Request) {
	selected := h.accountSvc.Selected()

	conversation, err := h.chatSvc.CreateConversation(r.Context(), selected)
	if err != nil {
		utils.RespondError(w, http.StatusInternalServerError, err.Error())
		return
	}

	messages, err := h.chatSvc.Transcript(r.Context(), conversation.ID)
	if err != nil {
		utils.RespondError(w, http.StatusInternalServerError, err.Error())
		return
	}

	utils.RespondJSON(w, http.StatusCreated, map[string]any{
		"conversation": conversation,
		"messages":     messages,
	})
}

func (h *Handler) handleTranscript(w http.ResponseWriter, r *http.Request) {
	conversationID := chi.URLParam(r, "conversationID")

	messages, err := h.chatSvc.Transcript(r.Context(), conversationID)
	if errors.Is(err, chatservice.ErrConversationNotFound) {
		utils.RespondError(w, http.StatusNotFound, "conversation not found")
		return
	}
	if err != nil {
		utils.RespondError(w, http.StatusInternalServerError, err.Error())
		return
	}

	utils.RespondJSON(w, http.StatusOK, map[string]any{
		"messages":  messages,
		"resolving": h.chatSvc.Resolving(conversationID),
	})
}

// handleSendMessage appends the user's message, resolves the reply
// with the active persona and appends it. While the reply is pending,
// further sends on the same conversation are rejected.
func (h *Handler) handleSendMessage(w http.ResponseWriter, r *http.Request) {
	conversationID := chi.URLParam(r, "conversationID")

	var payload struct {
		Content string `json:"content"`
	}
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		utils.RespondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	content := strings.TrimSpace(payload.Content)
	if content == "" {
		utils.RespondError(w, http.StatusBadRequest, "content is required")
		return
	}

	if !h.accountSvc.LoggedIn() {
		utils.RespondError(w, http.StatusUnauthorized, "faça login para conversar com o pastor")
		return
	}

	switch err := h.chatSvc.BeginResolve(conversationID); {
	case errors.Is(err, chatservice.ErrConversationNotFound):
		utils.RespondError(w, http.StatusNotFound, "conversation not found")
		return
	case errors.Is(err, chatservice.ErrResolving):
		utils.RespondError(w, http.StatusConflict, "a reply is still being resolved")
		return
	case err != nil:
		utils.RespondError(w, http.StatusInternalServerError, err.Error())
		return
	}
	defer h.chatSvc.EndResolve(conversationID)

	userMessage, err := h.chatSvc.AppendMessage(r.Context(), conversationID, chatmodel.RoleUser, content)
	if err != nil {
		utils.RespondError(w, http.StatusInternalServerError, err.Error())
		return
	}

	selected := h.accountSvc.Selected()
	replyText, err := h.resolverSvc.Resolve(r.Context(), content, selected)
	if err != nil {
		if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
			// Client went away; leave the transcript as it is.
			log.Printf("[chat] resolution abandoned for conversation=%s: %v", conversationID, err)
			return
		}
		log.Printf("[chat] resolution failed for conversation=%s: %v", conversationID, err)
		replyText = genericFailureReply
	}

	reply, err := h.chatSvc.AppendMessage(context.WithoutCancel(r.Context()), conversationID, chatmodel.RoleAssistant, replyText)
	if err != nil {
		utils.RespondError(w, http.StatusInternalServerError, err.Error())
		return
	}

	utils.RespondJSON(w, http.StatusOK, map[string]any{
		"userMessage": userMessage,
		"reply":       reply,
	})
}
