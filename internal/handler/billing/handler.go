package billing

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	accountservice "github.com/gospia/gospia/backend/internal/service/account"
	"github.com/gospia/gospia/backend/pkg/utils"
)

// Plan is a subscription option shown on the pricing page. Prices are
// in BRL cents. No real payment happens; subscribing upgrades the
// account after a short simulated processing delay.
type Plan struct {
	ID           string   `json:"id"`
	Name         string   `json:"name"`
	PriceCents   int      `json:"priceCents"`
	BillingCycle string   `json:"billingCycle"`
	Highlight    bool     `json:"highlight,omitempty"`
	Features     []string `json:"features"`
}

func plans() []Plan {
	return []Plan{
		{
			ID:           "mensal",
			Name:         "Mensal",
			PriceCents:   8000,
			BillingCycle: "monthly",
			Features:     []string{"Todos os Pastores", "Criar Louvores", "Sem limites"},
		},
		{
			ID:           "trimestral",
			Name:         "Trimestral",
			PriceCents:   6000,
			BillingCycle: "quarterly",
			Highlight:    true,
			Features:     []string{"Todos os Pastores", "Criar Louvores", "Prioridade no suporte"},
		},
		{
			ID:           "anual",
			Name:         "Anual",
			PriceCents:   3000,
			BillingCycle: "yearly",
			Features:     []string{"Todos os Pastores", "Criar Louvores", "Maior economia"},
		},
	}
}

// Handler exposes the simulated billing flow.
type Handler struct {
	accountSvc     *accountservice.Service
	processingTime time.Duration
}

// New creates the billing handler. processingTime emulates the payment
// provider round trip; tests pass zero.
func New(accountSvc *accountservice.Service, processingTime time.Duration) *Handler {
	return &Handler{
		accountSvc:     accountSvc,
		processingTime: processingTime,
	}
}

// RegisterRoutes registers the billing routes.
func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Route("/billing", func(r chi.Router) {
		r.Get("/plans", h.handleListPlans)
		r.Post("/subscribe", h.handleSubscribe)
	})
}

func (h *Handler) handleListPlans(w http.ResponseWriter, _ *http.Request) {
	utils.RespondJSON(w, http.StatusOK, plans())
}

func (h *Handler) handleSubscribe(w http.ResponseWriter, r *http.Request) {
	var payload struct {
		PlanID string `json:"planId"`
	}
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		utils.RespondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	var known bool
	for _, plan := range plans() {
		if plan.ID == payload.PlanID {
			known = true
			break
		}
	}
	if !known {
		utils.RespondError(w, http.StatusNotFound, "plan not found")
		return
	}

	if h.processingTime > 0 {
		timer := time.NewTimer(h.processingTime)
		defer timer.Stop()
		select {
		case <-r.Context().Done():
			return
		case <-timer.C:
		}
	}

	h.accountSvc.Upgrade()
	utils.RespondJSON(w, http.StatusOK, h.accountSvc.Snapshot())
}
