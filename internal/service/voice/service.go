// Package voice mocks the synthesis side channel the chat screen uses
// to read replies aloud. The real synthesis runs in the browser; this
// service only tracks the speak/cancel lifecycle and the capability
// flag so clients have a single contract to program against.
package voice

import (
	"errors"
	"sync"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"
)

var (
	ErrUnavailable = errors.New("speech synthesis is not available")
	ErrEmptyText   = errors.New("text is required")
)

// Config controls the mock synthesis behavior.
type Config struct {
	Enabled  bool
	Language string
	Rate     float32
}

// Utterance is one synthesis request in flight.
type Utterance struct {
	ID        string    `json:"id"`
	Text      string    `json:"text"`
	Language  string    `json:"language"`
	StartedAt time.Time `json:"startedAt"`
}

// Service tracks at most one utterance at a time; starting a new one
// cancels the previous, exactly like the browser synthesizer.
type Service struct {
	mu      sync.Mutex
	cfg     Config
	current *Utterance
}

func NewService(cfg Config) *Service {
	if cfg.Language == "" {
		cfg.Language = "pt-BR"
	}
	if cfg.Rate <= 0 {
		cfg.Rate = 1.0
	}
	return &Service{cfg: cfg}
}

// SynthesisSupported is the capability flag clients query before
// showing the speaker control.
func (s *Service) SynthesisSupported() bool {
	return s.cfg.Enabled
}

// Speak begins a new utterance, cancelling any in progress.
func (s *Service) Speak(text string) (Utterance, error) {
	if !s.cfg.Enabled {
		return Utterance{}, ErrUnavailable
	}
	if text == "" {
		return Utterance{}, ErrEmptyText
	}

	utterance := Utterance{
		ID:        uuid.NewString(),
		Text:      text,
		Language:  s.cfg.Language,
		StartedAt: time.Now().UTC(),
	}

	s.mu.Lock()
	s.current = &utterance
	s.mu.Unlock()

	return utterance, nil
}

// Cancel stops the current utterance. Reports whether one was active.
func (s *Service) Cancel() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	active := s.current != nil
	s.current = nil
	return active
}

// Finish clears the utterance if it is still the active one, so a
// cancel followed by a late playback-done event is a no-op.
func (s *Service) Finish(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.current != nil && s.current.ID == id {
		s.current = nil
	}
}

// Speaking returns the active utterance, if any.
func (s *Service) Speaking() (Utterance, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.current == nil {
		return Utterance{}, false
	}
	return *s.current, true
}

// EstimateDuration approximates playback time from text length at the
// configured rate, for scheduling the mock "finished" event.
func (s *Service) EstimateDuration(text string) time.Duration {
	const charsPerSecond = 15.0
	seconds := float64(utf8.RuneCountInString(text)) / (charsPerSecond * float64(s.cfg.Rate))
	duration := time.Duration(seconds * float64(time.Second))
	if duration < time.Second {
		duration = time.Second
	}
	return duration
}
