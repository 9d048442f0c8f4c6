package domain

import "context"

// Suggester looks up positions matching a free-text search term.
type Suggester interface {
	// Suggest returns the raw response elements in API order. An empty slice
	// with a nil error means the API found nothing.
	Suggest(ctx context.Context, term string) ([]RawSuggestion, error)
}
