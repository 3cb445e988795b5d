package billing

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"

	"github.com/gospia/gospia/backend/internal/model/persona"
	accountservice "github.com/gospia/gospia/backend/internal/service/account"
	"github.com/gospia/gospia/backend/internal/storage"
)

func setupRouter(t *testing.T) (*chi.Mux, *accountservice.Service) {
	t.Helper()

	catalog, err := persona.NewMemoryCatalog(persona.Seed())
	if err != nil {
		t.Fatalf("NewMemoryCatalog err: %v", err)
	}
	accountSvc := accountservice.NewService(catalog, storage.NewMemoryStore())
	handler := New(accountSvc, 0)

	r := chi.NewRouter()
	handler.RegisterRoutes(r)
	return r, accountSvc
}

func TestListPlans(t *testing.T) {
	r, _ := setupRouter(t)

	req := httptest.NewRequest(http.MethodGet, "/billing/plans", nil)
	resp := httptest.NewRecorder()
	r.ServeHTTP(resp, req)

	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.Code)
	}

	var plans []struct {
		ID         string   `json:"id"`
		PriceCents int      `json:"priceCents"`
		Features   []string `json:"features"`
	}
	if err := json.Unmarshal(resp.Body.Bytes(), &plans); err != nil {
		t.Fatalf("unmarshal err: %v", err)
	}
	if len(plans) != 3 {
		t.Fatalf("expected 3 plans, got %d", len(plans))
	}
	if plans[0].ID != "mensal" || plans[0].PriceCents != 8000 {
		t.Fatalf("unexpected first plan %+v", plans[0])
	}
	if plans[1].ID != "trimestral" || plans[1].PriceCents != 6000 {
		t.Fatalf("unexpected second plan %+v", plans[1])
	}
	if plans[2].ID != "anual" || plans[2].PriceCents != 3000 {
		t.Fatalf("unexpected third plan %+v", plans[2])
	}
	if len(plans[2].Features) != 3 || plans[2].Features[2] != "Maior economia" {
		t.Fatalf("unexpected anual features %v", plans[2].Features)
	}
}

func TestSubscribeUpgradesAccount(t *testing.T) {
	r, accountSvc := setupRouter(t)
	accountSvc.Login("Ana", "ana@x.com", persona.TierFree)

	payload, _ := json.Marshal(map[string]string{"planId": "trimestral"})
	req := httptest.NewRequest(http.MethodPost, "/billing/subscribe", bytes.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")
	resp := httptest.NewRecorder()
	r.ServeHTTP(resp, req)

	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", resp.Code, resp.Body.String())
	}
	if accountSvc.Tier() != persona.TierPro {
		t.Fatalf("tier = %s, want Pro", accountSvc.Tier())
	}
}

func TestSubscribeUnknownPlan(t *testing.T) {
	r, accountSvc := setupRouter(t)

	payload, _ := json.Marshal(map[string]string{"planId": "vitalicio"})
	req := httptest.NewRequest(http.MethodPost, "/billing/subscribe", bytes.NewReader(payload))
	resp := httptest.NewRecorder()
	r.ServeHTTP(resp, req)

	if resp.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", resp.Code)
	}
	if accountSvc.Tier() != persona.TierFree {
		t.Fatal("failed subscribe must not upgrade the account")
	}
}
