package ports

import (
	"context"
	"time"
)

// PageState is the restoration payload captured after a successful render:
// the rendered body plus the scroll position a later restoration visit
// should reproduce.
type PageState struct {
	Location   string    `json:"location"`
	Body       string    `json:"body"`
	ScrollX    float64   `json:"scroll_x"`
	ScrollY    float64   `json:"scroll_y"`
	RenderedAt time.Time `json:"rendered_at"`
}

// PageStore defines the interface for persisting restoration state per
// location. This allows scroll and content restoration to survive process
// restarts and to be shared across replicas.
type PageStore interface {
	// Save persists the page state for a location.
	Save(ctx context.Context, location string, page *PageState) error

	// Load retrieves the page state for a location.
	// Returns ErrPageNotFound if nothing was saved for it.
	Load(ctx context.Context, location string) (*PageState, error)

	// Delete removes the page state for a location.
	Delete(ctx context.Context, location string) error

	// List returns the locations with saved state.
	List(ctx context.Context) ([]string, error)
}
