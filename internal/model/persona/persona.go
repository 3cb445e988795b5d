package persona

import "fmt"

// Tier is the subscription level that gates persona access.
type Tier string

const (
	TierFree Tier = "Free"
	TierPro  Tier = "Pro"
)

// ParseTier validates a tier literal as stored in the snapshot store.
func ParseTier(raw string) (Tier, error) {
	switch Tier(raw) {
	case TierFree:
		return TierFree, nil
	case TierPro:
		return TierPro, nil
	default:
		return "", fmt.Errorf("unknown tier %q", raw)
	}
}

// Allows reports whether a subscriber at tier t may select a persona
// requiring the given tier.
func (t Tier) Allows(required Tier) bool {
	if required == TierPro {
		return t == TierPro
	}
	return true
}

// Persona captures the counselor attributes exposed to the frontend.
type Persona struct {
	ID           string `json:"id"`
	Name         string `json:"name"`
	Role         string `json:"role"`
	Tier         Tier   `json:"tier"`
	Description  string `json:"description"`
	SystemPrompt string `json:"systemPrompt,omitempty"`
}
