package chat

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/gospia/gospia/backend/internal/model/chat"
	"github.com/gospia/gospia/backend/internal/model/persona"
)

var (
	ErrConversationNotFound = errors.New("conversation not found")
	ErrResolving            = errors.New("a reply is already being resolved for this conversation")
)

// Service holds the in-memory conversation transcripts. Messages are
// append-only and live only for the current process; nothing here is
// persisted.
type Service struct {
	mu            sync.RWMutex
	conversations map[string]chat.Conversation
	messages      map[string][]chat.Message
	resolving     map[string]bool
}

// NewService bootstraps the in-memory conversation service.
func NewService() *Service {
	return &Service{
		conversations: make(map[string]chat.Conversation),
		messages:      make(map[string][]chat.Message),
		resolving:     make(map[string]bool),
	}
}

// CreateConversation provisions a transcript bound to the persona and
// seeds it with the persona's greeting, mirroring the chat screen's
// opening message.
func (s *Service) CreateConversation(_ context.Context, p persona.Persona) (chat.Conversation, error) {
	conversation := chat.Conversation{
		ID:        uuid.NewString(),
		PersonaID: p.ID,
		CreatedAt: time.Now().UTC(),
	}

	welcome := chat.Message{
		ID:             uuid.NewString(),
		ConversationID: conversation.ID,
		Role:           chat.RoleAssistant,
		Content:        fmt.Sprintf("Olá! Sou o %s. %s Como posso te ajudar hoje?", p.Name, p.Description),
		CreatedAt:      conversation.CreatedAt,
	}

	s.mu.Lock()
	s.conversations[conversation.ID] = conversation
	s.messages[conversation.ID] = append(make([]chat.Message, 0, 16), welcome)
	s.mu.Unlock()

	return conversation, nil
}

// GetConversation retrieves a conversation by identifier.
func (s *Service) GetConversation(_ context.Context, conversationID string) (chat.Conversation, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	conversation, ok := s.conversations[conversationID]
	if !ok {
		return chat.Conversation{}, ErrConversationNotFound
	}
	return conversation, nil
}

// AppendMessage appends a turn to the transcript and returns it with
// its assigned id.
func (s *Service) AppendMessage(_ context.Context, conversationID string, role chat.Role, content string) (chat.Message, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.conversations[conversationID]; !ok {
		return chat.Message{}, ErrConversationNotFound
	}

	message := chat.Message{
		ID:             uuid.NewString(),
		ConversationID: conversationID,
		Role:           role,
		Content:        content,
		CreatedAt:      time.Now().UTC(),
	}
	s.messages[conversationID] = append(s.messages[conversationID], message)
	return message, nil
}

// Transcript returns a copy of the stored messages in order.
func (s *Service) Transcript(_ context.Context, conversationID string) ([]chat.Message, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	messages, ok := s.messages[conversationID]
	if !ok {
		return nil, ErrConversationNotFound
	}

	copied := make([]chat.Message, len(messages))
	copy(copied, messages)
	return copied, nil
}

// BeginResolve marks the conversation as waiting for a reply. A second
// send while one is pending fails with ErrResolving so the transcript
// only ever has one reply in flight.
func (s *Service) BeginResolve(conversationID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.conversations[conversationID]; !ok {
		return ErrConversationNotFound
	}
	if s.resolving[conversationID] {
		return ErrResolving
	}
	s.resolving[conversationID] = true
	return nil
}

// EndResolve clears the resolving flag. Safe to call unconditionally.
func (s *Service) EndResolve(conversationID string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.resolving, conversationID)
}

// Resolving reports whether a reply is pending for the conversation.
func (s *Service) Resolving(conversationID string) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.resolving[conversationID]
}
