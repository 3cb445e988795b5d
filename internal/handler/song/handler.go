package song

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/gospia/gospia/backend/internal/model/persona"
	accountservice "github.com/gospia/gospia/backend/internal/service/account"
	"github.com/gospia/gospia/backend/pkg/utils"
)

// Handler gates the praise-song generator ("Gerador de Louvor"). The
// Suno integration is not live yet, so Pro subscribers get a
// coming-soon payload and everyone else gets an upgrade prompt.
type Handler struct {
	accountSvc *accountservice.Service
}

// New creates the song handler.
func New(accountSvc *accountservice.Service) *Handler {
	return &Handler{accountSvc: accountSvc}
}

// RegisterRoutes registers the song routes.
func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Post("/songs", h.handleGenerateSong)
}

func (h *Handler) handleGenerateSong(w http.ResponseWriter, _ *http.Request) {
	if h.accountSvc.Tier() != persona.TierPro {
		utils.RespondError(w, http.StatusForbidden, "a criação de louvores está disponível apenas no plano Pro")
		return
	}

	utils.RespondJSON(w, http.StatusAccepted, map[string]string{
		"status":  "coming_soon",
		"message": "A integração com a API da Suno para geração de louvores estará disponível em breve para usuários Pro.",
	})
}
