package voice

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"

	voiceservice "github.com/gospia/gospia/backend/internal/service/voice"
)

func setupRouter(enabled bool) *chi.Mux {
	voiceSvc := voiceservice.NewService(voiceservice.Config{Enabled: enabled})
	handler := New(voiceSvc)

	r := chi.NewRouter()
	handler.RegisterRoutes(r)
	return r
}

func TestCapabilities(t *testing.T) {
	r := setupRouter(true)

	req := httptest.NewRequest(http.MethodGet, "/voice/capabilities", nil)
	resp := httptest.NewRecorder()
	r.ServeHTTP(resp, req)

	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.Code)
	}

	var payload struct {
		SynthesisSupport bool `json:"synthesisSupport"`
		Speaking         bool `json:"speaking"`
	}
	if err := json.Unmarshal(resp.Body.Bytes(), &payload); err != nil {
		t.Fatalf("unmarshal err: %v", err)
	}
	if !payload.SynthesisSupport || payload.Speaking {
		t.Fatalf("unexpected capabilities %+v", payload)
	}
}

func TestSpeakAndCancel(t *testing.T) {
	r := setupRouter(true)

	body, _ := json.Marshal(map[string]string{"text": "A paz do Senhor."})
	req := httptest.NewRequest(http.MethodPost, "/voice/speak", bytes.NewReader(body))
	resp := httptest.NewRecorder()
	r.ServeHTTP(resp, req)

	if resp.Code != http.StatusAccepted {
		t.Fatalf("speak expected 202, got %d: %s", resp.Code, resp.Body.String())
	}

	req = httptest.NewRequest(http.MethodPost, "/voice/cancel", nil)
	resp = httptest.NewRecorder()
	r.ServeHTTP(resp, req)

	if resp.Code != http.StatusOK {
		t.Fatalf("cancel expected 200, got %d", resp.Code)
	}

	var payload struct {
		Cancelled bool `json:"cancelled"`
	}
	if err := json.Unmarshal(resp.Body.Bytes(), &payload); err != nil {
		t.Fatalf("unmarshal err: %v", err)
	}
	if !payload.Cancelled {
		t.Fatal("cancel must report the active utterance")
	}
}

func TestClosedConnStopsFinishedTimer(t *testing.T) {
	client := &wsConn{}

	fired := make(chan struct{}, 1)
	client.scheduleFinished(10*time.Millisecond, func() { fired <- struct{}{} })
	client.close()

	select {
	case <-fired:
		t.Fatal("finished callback fired after the connection closed")
	case <-time.After(50 * time.Millisecond):
	}

	// After close, scheduling and sending must be no-ops. send would
	// panic on the nil conn if the closed check were missing.
	client.scheduleFinished(time.Millisecond, func() { fired <- struct{}{} })
	client.send("finished", map[string]string{"id": "stale"})

	select {
	case <-fired:
		t.Fatal("timer armed on a closed connection")
	case <-time.After(20 * time.Millisecond):
	}
}

func TestSpeakUnavailableWhenDisabled(t *testing.T) {
	r := setupRouter(false)

	body, _ := json.Marshal(map[string]string{"text": "Oi"})
	req := httptest.NewRequest(http.MethodPost, "/voice/speak", bytes.NewReader(body))
	resp := httptest.NewRecorder()
	r.ServeHTTP(resp, req)

	if resp.Code != http.StatusServiceUnavailable {
		t.Fatalf("expected 503, got %d", resp.Code)
	}
}
