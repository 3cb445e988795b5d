package persona

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/gospia/gospia/backend/internal/model/persona"
	accountservice "github.com/gospia/gospia/backend/internal/service/account"
	"github.com/gospia/gospia/backend/pkg/utils"
)

// Handler serves the persona catalog.
type Handler struct {
	catalog    persona.Catalog
	accountSvc *accountservice.Service
}

// New creates the persona handler.
func New(catalog persona.Catalog, accountSvc *accountservice.Service) *Handler {
	return &Handler{
		catalog:    catalog,
		accountSvc: accountSvc,
	}
}

// RegisterRoutes registers the persona routes.
func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Get("/personas", h.handleListPersonas)
}

// listedPersona is a catalog entry with its lock state computed
// against the caller's current tier, so the sidebar can show padlocks
// without reimplementing the entitlement rule.
type listedPersona struct {
	persona.Persona
	Locked bool `json:"locked"`
}

func (h *Handler) handleListPersonas(w http.ResponseWriter, _ *http.Request) {
	tier := h.accountSvc.Tier()

	items := h.catalog.List()
	listed := make([]listedPersona, 0, len(items))
	for _, item := range items {
		listed = append(listed, listedPersona{
			Persona: item,
			Locked:  !tier.Allows(item.Tier),
		})
	}

	utils.RespondJSON(w, http.StatusOK, listed)
}
