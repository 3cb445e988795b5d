package chat

import "time"

// Conversation captures a transient in-memory transcript. Transcripts
// do not survive a restart; only the account snapshot is persisted.
type Conversation struct {
	ID        string    `json:"id"`
	PersonaID string    `json:"personaId"`
	CreatedAt time.Time `json:"createdAt"`
}
