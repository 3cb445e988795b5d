package resolver

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/gospia/gospia/backend/internal/analysis/safety"
	"github.com/gospia/gospia/backend/internal/model/persona"
)

// ErrResolutionFailed marks an unexpected internal failure, e.g. a
// malformed persona descriptor. Callers surface it as a generic
// "couldn't get a response" message instead of crashing the transcript.
var ErrResolutionFailed = errors.New("resolution failed")

// Service produces assistant replies. It is stateless between calls:
// the reply is a pure function of (text, persona) plus a configured
// latency that emulates asynchronous generation.
type Service struct {
	delay time.Duration
}

// NewService builds a resolver with the given artificial latency.
// Tests pass zero to resolve immediately.
func NewService(delay time.Duration) *Service {
	return &Service{delay: delay}
}

// Resolve returns the assistant reply for a user message. The safety
// protocol takes absolute priority: if the message contains a crisis
// term the fixed crisis response is returned verbatim, ignoring the
// persona entirely. A cancelled context aborts the wait so a stale
// reply is never delivered after the caller has moved on.
func (s *Service) Resolve(ctx context.Context, text string, p persona.Persona) (string, error) {
	if err := s.wait(ctx); err != nil {
		return "", err
	}

	if _, found := safety.Detect(text); found {
		return safety.Response, nil
	}

	if strings.TrimSpace(p.Name) == "" {
		return "", fmt.Errorf("%w: persona %q has no name", ErrResolutionFailed, p.ID)
	}

	parts := partsFor(p)
	return strings.Join([]string{parts.Intro, parts.Body, parts.Scripture, closingPrayer}, "\n\n"), nil
}

func (s *Service) wait(ctx context.Context) error {
	if s.delay <= 0 {
		return ctx.Err()
	}

	timer := time.NewTimer(s.delay)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
