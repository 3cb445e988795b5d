package account

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	ptlocale "github.com/go-playground/locales/pt_BR"
	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	pttranslations "github.com/go-playground/validator/v10/translations/pt_BR"

	"github.com/gospia/gospia/backend/internal/model/persona"
	accountservice "github.com/gospia/gospia/backend/internal/service/account"
	"github.com/gospia/gospia/backend/pkg/utils"
)

// Handler exposes the account operations over HTTP.
type Handler struct {
	accountSvc *accountservice.Service
	validate   *validator.Validate
	translator ut.Translator
}

// New builds the account handler with a pt-BR validator, matching the
// product's language.
func New(accountSvc *accountservice.Service) (*Handler, error) {
	validate := validator.New(validator.WithRequiredStructEnabled())
	pt := ptlocale.New()
	uni := ut.New(pt, pt)
	trans, _ := uni.GetTranslator("pt_BR")
	if err := pttranslations.RegisterDefaultTranslations(validate, trans); err != nil {
		return nil, err
	}

	return &Handler{
		accountSvc: accountSvc,
		validate:   validate,
		translator: trans,
	}, nil
}

// RegisterRoutes registers the account routes.
func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Route("/account", func(r chi.Router) {
		r.Get("/", h.handleSnapshot)
		r.Post("/login", h.handleLogin)
		r.Post("/logout", h.handleLogout)
		r.Post("/upgrade", h.handleUpgrade)
		r.Put("/persona", h.handleSwitchPersona)
	})
}

func (h *Handler) handleSnapshot(w http.ResponseWriter, _ *http.Request) {
	utils.RespondJSON(w, http.StatusOK, h.accountSvc.Snapshot())
}

func (h *Handler) handleLogin(w http.ResponseWriter, r *http.Request) {
	var payload struct {
		// Name and email must be present; their format is not
		// otherwise validated.
		Name  string `json:"name" validate:"required"`
		Email string `json:"email" validate:"required"`
		Tier  string `json:"tier"`
	}

	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		utils.RespondError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if err := h.validate.Struct(payload); err != nil {
		h.respondValidationError(w, err)
		return
	}

	tier := persona.TierFree
	if payload.Tier != "" {
		parsed, err := persona.ParseTier(payload.Tier)
		if err != nil {
			utils.RespondError(w, http.StatusBadRequest, err.Error())
			return
		}
		tier = parsed
	}

	h.accountSvc.Login(payload.Name, payload.Email, tier)
	utils.RespondJSON(w, http.StatusOK, h.accountSvc.Snapshot())
}

func (h *Handler) handleLogout(w http.ResponseWriter, _ *http.Request) {
	h.accountSvc.Logout()
	utils.RespondJSON(w, http.StatusOK, h.accountSvc.Snapshot())
}

func (h *Handler) handleUpgrade(w http.ResponseWriter, _ *http.Request) {
	h.accountSvc.Upgrade()
	utils.RespondJSON(w, http.StatusOK, h.accountSvc.Snapshot())
}

func (h *Handler) handleSwitchPersona(w http.ResponseWriter, r *http.Request) {
	var payload struct {
		PersonaID string `json:"personaId" validate:"required"`
	}

	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		utils.RespondError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if err := h.validate.Struct(payload); err != nil {
		h.respondValidationError(w, err)
		return
	}

	selected, err := h.accountSvc.SwitchPersona(payload.PersonaID)
	switch {
	case errors.Is(err, accountservice.ErrPersonaNotFound):
		utils.RespondError(w, http.StatusNotFound, "persona not found")
	case errors.Is(err, accountservice.ErrPersonaLocked):
		utils.RespondError(w, http.StatusForbidden, "este pastor está disponível apenas no plano Pro")
	case err != nil:
		utils.RespondError(w, http.StatusInternalServerError, err.Error())
	default:
		utils.RespondJSON(w, http.StatusOK, selected)
	}
}

func (h *Handler) respondValidationError(w http.ResponseWriter, err error) {
	validationErrors := validator.ValidationErrors{}
	if ok := errors.As(err, &validationErrors); ok && len(validationErrors) > 0 {
		utils.RespondError(w, http.StatusBadRequest, validationErrors[0].Translate(h.translator))
		return
	}
	utils.RespondError(w, http.StatusBadRequest, err.Error())
}
