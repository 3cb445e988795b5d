package voice

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	voiceservice "github.com/gospia/gospia/backend/internal/service/voice"
	"github.com/gospia/gospia/backend/pkg/utils"
)

// Handler exposes the voice side channel. Speech recognition runs in
// the browser and feeds its transcript through the normal send
// endpoint; only synthesis state is tracked here.
type Handler struct {
	voiceSvc *voiceservice.Service
}

// New creates the voice handler.
func New(voiceSvc *voiceservice.Service) *Handler {
	return &Handler{voiceSvc: voiceSvc}
}

// RegisterRoutes registers the voice routes.
func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Route("/voice", func(r chi.Router) {
		r.Get("/capabilities", h.handleCapabilities)
		r.Post("/speak", h.handleSpeak)
		r.Post("/cancel", h.handleCancel)

		wsHandler := NewWebSocketHandler(h.voiceSvc)
		wsHandler.RegisterWebSocketRoutes(r)
	})
}

func (h *Handler) handleCapabilities(w http.ResponseWriter, _ *http.Request) {
	_, speaking := h.voiceSvc.Speaking()
	utils.RespondJSON(w, http.StatusOK, map[string]any{
		"synthesisSupport": h.voiceSvc.SynthesisSupported(),
		"speaking":         speaking,
	})
}

func (h *Handler) handleSpeak(w http.ResponseWriter, r *http.Request) {
	var payload struct {
		Text string `json:"text"`
	}
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		utils.RespondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	utterance, err := h.voiceSvc.Speak(payload.Text)
	switch {
	case errors.Is(err, voiceservice.ErrUnavailable):
		utils.RespondError(w, http.StatusServiceUnavailable, err.Error())
	case errors.Is(err, voiceservice.ErrEmptyText):
		utils.RespondError(w, http.StatusBadRequest, err.Error())
	case err != nil:
		utils.RespondError(w, http.StatusInternalServerError, err.Error())
	default:
		utils.RespondJSON(w, http.StatusAccepted, utterance)
	}
}

func (h *Handler) handleCancel(w http.ResponseWriter, _ *http.Request) {
	cancelled := h.voiceSvc.Cancel()
	utils.RespondJSON(w, http.StatusOK, map[string]bool{"cancelled": cancelled})
}
