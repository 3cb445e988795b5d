package account

import (
	"encoding/json"
	"errors"
	"log"
	"sync"

	"github.com/gospia/gospia/backend/internal/model/persona"
	"github.com/gospia/gospia/backend/internal/storage"
)

// Snapshot store keys, matching the frontend's historical localStorage
// layout so an exported snapshot stays recognizable.
const (
	userKey = "gospia_user"
	tierKey = "gospia_tier"
)

var (
	ErrPersonaNotFound = errors.New("persona not found")
	ErrPersonaLocked   = errors.New("persona requires the Pro plan")
)

// Identity is the logged-in user. Absent means anonymous.
type Identity struct {
	Name  string `json:"name"`
	Email string `json:"email"`
}

// Service is the single source of truth for identity, tier and the
// selected persona, and the arbiter of persona access. Identity and
// tier are mirrored into the snapshot store on every mutation; the
// persona selection deliberately is not and resets each run.
type Service struct {
	mu       sync.RWMutex
	catalog  persona.Catalog
	store    storage.Store
	identity *Identity
	tier     persona.Tier
	selected persona.Persona
}

// Snapshot is a consistent read of the account state.
type Snapshot struct {
	Identity *Identity       `json:"user"`
	Tier     persona.Tier    `json:"tier"`
	Selected persona.Persona `json:"selectedPersona"`
}

// NewService restores the persisted snapshot, if any, and selects the
// catalog default persona. Missing keys mean anonymous and Free;
// corrupt values are logged and treated as absent.
func NewService(catalog persona.Catalog, store storage.Store) *Service {
	s := &Service{
		catalog:  catalog,
		store:    store,
		tier:     persona.TierFree,
		selected: catalog.Default(),
	}
	s.restore()
	return s
}

func (s *Service) restore() {
	if raw, err := s.store.Get(userKey); err == nil {
		var identity Identity
		if err := json.Unmarshal([]byte(raw), &identity); err != nil {
			log.Printf("[account] discarding corrupt %s snapshot: %v", userKey, err)
		} else {
			s.identity = &identity
		}
	}

	if raw, err := s.store.Get(tierKey); err == nil {
		tier, err := persona.ParseTier(raw)
		if err != nil {
			log.Printf("[account] discarding corrupt %s snapshot: %v", tierKey, err)
		} else {
			s.tier = tier
		}
	}
}

// Snapshot returns the current account state.
func (s *Service) Snapshot() Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var identity *Identity
	if s.identity != nil {
		copied := *s.identity
		identity = &copied
	}
	return Snapshot{Identity: identity, Tier: s.tier, Selected: s.selected}
}

// LoggedIn reports whether an identity is set.
func (s *Service) LoggedIn() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.identity != nil
}

// Selected returns the active persona.
func (s *Service) Selected() persona.Persona {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.selected
}

// Tier returns the current subscription tier.
func (s *Service) Tier() persona.Tier {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.tier
}

// Login sets the identity and initial tier and persists both. Input
// validation (non-empty name and email) belongs to the caller; Login
// itself always succeeds.
func (s *Service) Login(name, email string, tier persona.Tier) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.identity = &Identity{Name: name, Email: email}
	s.tier = tier

	s.persistIdentity()
	s.persistTier()
}

// Logout clears the identity, resets the tier to Free, restores the
// default persona and removes the persisted snapshot. Idempotent.
func (s *Service) Logout() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.identity = nil
	s.tier = persona.TierFree
	s.selected = s.catalog.Default()

	if err := s.store.Delete(userKey); err != nil {
		log.Printf("[account] failed to remove %s: %v", userKey, err)
	}
	if err := s.store.Delete(tierKey); err != nil {
		log.Printf("[account] failed to remove %s: %v", tierKey, err)
	}
}

// Upgrade forces the tier to Pro and persists it. Idempotent, and
// deliberately does not require an identity: upgrading while anonymous
// has no lasting effect because Logout resets the tier anyway.
func (s *Service) Upgrade() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.tier = persona.TierPro
	s.persistTier()
}

// SwitchPersona selects a persona by id. It returns ErrPersonaNotFound
// for unknown ids and ErrPersonaLocked when a Pro persona is requested
// on the Free tier; in both cases the selection is unchanged.
func (s *Service) SwitchPersona(id string) (persona.Persona, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	p, ok := s.catalog.FindByID(id)
	if !ok {
		return persona.Persona{}, ErrPersonaNotFound
	}
	if !s.tier.Allows(p.Tier) {
		return persona.Persona{}, ErrPersonaLocked
	}

	s.selected = p
	return p, nil
}

// persistIdentity and persistTier are best-effort: a failed write is
// logged and the in-memory state stays authoritative.
func (s *Service) persistIdentity() {
	data, err := json.Marshal(s.identity)
	if err != nil {
		log.Printf("[account] failed to encode identity: %v", err)
		return
	}
	if err := s.store.Put(userKey, string(data)); err != nil {
		log.Printf("[account] failed to persist %s: %v", userKey, err)
	}
}

func (s *Service) persistTier() {
	if err := s.store.Put(tierKey, string(s.tier)); err != nil {
		log.Printf("[account] failed to persist %s: %v", tierKey, err)
	}
}
