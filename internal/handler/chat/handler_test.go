package chat

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"

	"github.com/gospia/gospia/backend/internal/analysis/safety"
	"github.com/gospia/gospia/backend/internal/model/persona"
	accountservice "github.com/gospia/gospia/backend/internal/service/account"
	chatservice "github.com/gospia/gospia/backend/internal/service/chat"
	"github.com/gospia/gospia/backend/internal/service/resolver"
	"github.com/gospia/gospia/backend/internal/storage"
)

func setupRouter(t *testing.T) (*chi.Mux, *accountservice.Service, *chatservice.Service) {
	t.Helper()

	catalog, err := persona.NewMemoryCatalog(persona.Seed())
	if err != nil {
		t.Fatalf("NewMemoryCatalog err: %v", err)
	}
	accountSvc := accountservice.NewService(catalog, storage.NewMemoryStore())
	chatSvc := chatservice.NewService()
	handler := New(chatSvc, accountSvc, resolver.NewService(0))

	r := chi.NewRouter()
	handler.RegisterRoutes(r)
	return r, accountSvc, chatSvc
}

func createConversation(t *testing.T, r http.Handler) string {
	t.Helper()

	req := httptest.NewRequest(http.MethodPost, "/conversations", nil)
	resp := httptest.NewRecorder()
	r.ServeHTTP(resp, req)

	if resp.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", resp.Code, resp.Body.String())
	}

	var payload struct {
		Conversation struct {
			ID string `json:"id"`
		} `json:"conversation"`
	}
	if err := json.Unmarshal(resp.Body.Bytes(), &payload); err != nil {
		t.Fatalf("unmarshal err: %v", err)
	}
	return payload.Conversation.ID
}

func sendMessage(t *testing.T, r http.Handler, conversationID, content string) *httptest.ResponseRecorder {
	t.Helper()

	payload, _ := json.Marshal(map[string]string{"content": content})
	req := httptest.NewRequest(http.MethodPost, "/conversations/"+conversationID+"/messages", bytes.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")
	resp := httptest.NewRecorder()
	r.ServeHTTP(resp, req)
	return resp
}

func TestSendMessageRequiresLogin(t *testing.T) {
	r, _, _ := setupRouter(t)
	conversationID := createConversation(t, r)

	resp := sendMessage(t, r, conversationID, "Oi")

	if resp.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", resp.Code)
	}
}

func TestSendMessageRejectsEmptyContent(t *testing.T) {
	r, accountSvc, _ := setupRouter(t)
	accountSvc.Login("Ana", "ana@x.com", persona.TierFree)
	conversationID := createConversation(t, r)

	for _, content := range []string{"", "   ", "\n\t"} {
		if resp := sendMessage(t, r, conversationID, content); resp.Code != http.StatusBadRequest {
			t.Errorf("content %q: expected 400, got %d", content, resp.Code)
		}
	}
}

func TestSendMessageUnknownConversation(t *testing.T) {
	r, accountSvc, _ := setupRouter(t)
	accountSvc.Login("Ana", "ana@x.com", persona.TierFree)

	if resp := sendMessage(t, r, "missing", "Oi"); resp.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", resp.Code)
	}
}

func TestSendMessageAppendsBothTurns(t *testing.T) {
	r, accountSvc, chatSvc := setupRouter(t)
	accountSvc.Login("Ana", "ana@x.com", persona.TierFree)
	conversationID := createConversation(t, r)

	resp := sendMessage(t, r, conversationID, "Como lidar com ansiedade?")
	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", resp.Code, resp.Body.String())
	}

	var payload struct {
		UserMessage struct {
			Role    string `json:"role"`
			Content string `json:"content"`
		} `json:"userMessage"`
		Reply struct {
			Role    string `json:"role"`
			Content string `json:"content"`
		} `json:"reply"`
	}
	if err := json.Unmarshal(resp.Body.Bytes(), &payload); err != nil {
		t.Fatalf("unmarshal err: %v", err)
	}
	if payload.UserMessage.Role != "user" || payload.Reply.Role != "assistant" {
		t.Fatalf("unexpected roles: %+v", payload)
	}
	if !bytes.Contains([]byte(payload.Reply.Content), []byte("A paz do Senhor. Sou o Pastor Elder.")) {
		t.Fatalf("reply missing Elder intro: %q", payload.Reply.Content)
	}

	messages, err := chatSvc.Transcript(context.Background(), conversationID)
	if err != nil {
		t.Fatalf("Transcript err: %v", err)
	}
	if len(messages) != 3 { // welcome + user + reply
		t.Fatalf("expected 3 messages in transcript, got %d", len(messages))
	}
	if chatSvc.Resolving(conversationID) {
		t.Fatal("resolving flag must be cleared after the reply")
	}
}

func TestSendMessageSafetyOverride(t *testing.T) {
	r, accountSvc, _ := setupRouter(t)
	accountSvc.Login("Ana", "ana@x.com", persona.TierPro)
	if _, err := accountSvc.SwitchPersona("eduardo"); err != nil {
		t.Fatalf("SwitchPersona err: %v", err)
	}
	conversationID := createConversation(t, r)

	resp := sendMessage(t, r, conversationID, "Estou pensando em suicidio")
	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.Code)
	}

	var payload struct {
		Reply struct {
			Content string `json:"content"`
		} `json:"reply"`
	}
	if err := json.Unmarshal(resp.Body.Bytes(), &payload); err != nil {
		t.Fatalf("unmarshal err: %v", err)
	}
	if payload.Reply.Content != safety.Response {
		t.Fatalf("reply must be the fixed crisis response, got %q", payload.Reply.Content)
	}
}

func TestTranscriptEndpoint(t *testing.T) {
	r, accountSvc, _ := setupRouter(t)
	accountSvc.Login("Ana", "ana@x.com", persona.TierFree)
	conversationID := createConversation(t, r)

	req := httptest.NewRequest(http.MethodGet, "/conversations/"+conversationID+"/messages", nil)
	resp := httptest.NewRecorder()
	r.ServeHTTP(resp, req)

	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.Code)
	}

	var payload struct {
		Messages  []struct{ Content string } `json:"messages"`
		Resolving bool                       `json:"resolving"`
	}
	if err := json.Unmarshal(resp.Body.Bytes(), &payload); err != nil {
		t.Fatalf("unmarshal err: %v", err)
	}
	if len(payload.Messages) != 1 {
		t.Fatalf("expected the welcome message, got %d", len(payload.Messages))
	}
	if payload.Resolving {
		t.Fatal("new conversation must not be resolving")
	}
}

func TestTranscriptUnknownConversation(t *testing.T) {
	r, _, _ := setupRouter(t)

	req := httptest.NewRequest(http.MethodGet, "/conversations/missing/messages", nil)
	resp := httptest.NewRecorder()
	r.ServeHTTP(resp, req)

	if resp.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", resp.Code)
	}
}
