// Package registry holds the closed catalog of diagrams served by the
// application and the startup loader that builds it from authored content.
package registry

import "github.com/llmarch/core/internal/models"

// Registry maps route keys to validated diagrams. It is populated once at
// startup and only read afterwards; Register must not be called once the
// registry is shared between goroutines.
type Registry struct {
	byKey map[string]*models.Diagram
	order []string
}

func New() *Registry {
	return &Registry{byKey: make(map[string]*models.Diagram)}
}

// Register adds d under d.Key. It returns a *models.DuplicateKeyError when
// the key is already taken.
func (r *Registry) Register(d *models.Diagram) error {
	if _, exists := r.byKey[d.Key]; exists {
		return &models.DuplicateKeyError{Key: d.Key}
	}
	r.byKey[d.Key] = d
	r.order = append(r.order, d.Key)
	return nil
}

// Get returns the diagram registered under key or a *models.NotFoundError.
func (r *Registry) Get(key string) (*models.Diagram, error) {
	d, ok := r.byKey[key]
	if !ok {
		return nil, &models.NotFoundError{Key: key}
	}
	return d, nil
}

// List returns the key and title of every diagram in registration order.
func (r *Registry) List() []models.Summary {
	out := make([]models.Summary, len(r.order))
	for i, key := range r.order {
		out[i] = r.byKey[key].Summary()
	}
	return out
}

func (r *Registry) Len() int {
	return len(r.order)
}
