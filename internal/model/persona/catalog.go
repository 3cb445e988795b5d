package persona

import "fmt"

// Catalog exposes persona retrieval for services and HTTP handlers.
// The first seeded persona is the default assigned on logout and at
// startup.
type Catalog interface {
	List() []Persona
	FindByID(id string) (Persona, bool)
	Default() Persona
}

// MemoryCatalog implements Catalog with an immutable in-memory list.
type MemoryCatalog struct {
	items []Persona
	byID  map[string]Persona
}

// NewMemoryCatalog builds a MemoryCatalog from the supplied personas.
// It rejects empty catalogs and duplicate ids so a bad seed fails at
// startup rather than at lookup time.
func NewMemoryCatalog(items []Persona) (*MemoryCatalog, error) {
	if len(items) == 0 {
		return nil, fmt.Errorf("persona catalog must not be empty")
	}

	byID := make(map[string]Persona, len(items))
	for _, item := range items {
		if item.ID == "" {
			return nil, fmt.Errorf("persona %q has an empty id", item.Name)
		}
		if _, exists := byID[item.ID]; exists {
			return nil, fmt.Errorf("duplicate persona id %q", item.ID)
		}
		byID[item.ID] = item
	}

	return &MemoryCatalog{
		items: append([]Persona(nil), items...),
		byID:  byID,
	}, nil
}

// List returns the personas in seed order.
func (c *MemoryCatalog) List() []Persona {
	return append([]Persona(nil), c.items...)
}

// FindByID looks up a persona by identifier.
func (c *MemoryCatalog) FindByID(id string) (Persona, bool) {
	item, ok := c.byID[id]
	return item, ok
}

// Default returns the persona selected for anonymous sessions.
func (c *MemoryCatalog) Default() Persona {
	return c.items[0]
}
