package handler

import (
	"log"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	accounthandler "github.com/gospia/gospia/backend/internal/handler/account"
	billinghandler "github.com/gospia/gospia/backend/internal/handler/billing"
	chathandler "github.com/gospia/gospia/backend/internal/handler/chat"
	personahandler "github.com/gospia/gospia/backend/internal/handler/persona"
	songhandler "github.com/gospia/gospia/backend/internal/handler/song"
	"github.com/gospia/gospia/backend/internal/handler/stream"
	voicehandler "github.com/gospia/gospia/backend/internal/handler/voice"
	middlewarePkg "github.com/gospia/gospia/backend/internal/middleware"
	personaModel "github.com/gospia/gospia/backend/internal/model/persona"
	accountService "github.com/gospia/gospia/backend/internal/service/account"
	chatService "github.com/gospia/gospia/backend/internal/service/chat"
	resolverService "github.com/gospia/gospia/backend/internal/service/resolver"
	voiceService "github.com/gospia/gospia/backend/internal/service/voice"
	"github.com/gospia/gospia/backend/pkg/utils"
)

// Deps collects the services the router wires to HTTP routes.
type Deps struct {
	Catalog     personaModel.Catalog
	AccountSvc  *accountService.Service
	ChatSvc     *chatService.Service
	ResolverSvc *resolverService.Service
	VoiceSvc    *voiceService.Service
	// BillingProcessingTime emulates the payment provider round trip.
	BillingProcessingTime time.Duration
}

// NewRouter wires HTTP routes to core services.
func NewRouter(deps Deps) (http.Handler, error) {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(middlewarePkg.CORS)

	accountHandler, err := accounthandler.New(deps.AccountSvc)
	if err != nil {
		return nil, err
	}
	personaHandler := personahandler.New(deps.Catalog, deps.AccountSvc)
	chatHandler := chathandler.New(deps.ChatSvc, deps.AccountSvc, deps.ResolverSvc)
	billingHandler := billinghandler.New(deps.AccountSvc, deps.BillingProcessingTime)
	songHandler := songhandler.New(deps.AccountSvc)
	streamHandler := stream.New(deps.ChatSvc, deps.AccountSvc, deps.ResolverSvc)

	r.Route("/api", func(api chi.Router) {
		accountHandler.RegisterRoutes(api)
		personaHandler.RegisterRoutes(api)
		chatHandler.RegisterRoutes(api)
		billingHandler.RegisterRoutes(api)
		songHandler.RegisterRoutes(api)

		api.Get("/stream/{conversationID}", func(w http.ResponseWriter, r *http.Request) {
			conversationID := chi.URLParam(r, "conversationID")
			userMessage := r.URL.Query().Get("message")

			if userMessage == "" {
				utils.RespondError(w, http.StatusBadRequest, "message query parameter is required")
				return
			}

			if err := streamHandler.HandleStreamRequest(r.Context(), w, conversationID, userMessage); err != nil {
				log.Printf("[stream] error handling request: %v", err)
			}
		})

		if deps.VoiceSvc != nil {
			voiceHandler := voicehandler.New(deps.VoiceSvc)
			voiceHandler.RegisterRoutes(api)
		}
	})

	return r, nil
}
