package catalog

import (
	"context"
	"fmt"

	"khata/internal/port"
)

// LoadHSNLookup reads the HSN master from repo. On error it still returns a
// usable empty lookup alongside the error, so callers may continue without
// label suggestions.
func LoadHSNLookup(ctx context.Context, repo port.HSNRepository) (*HSNLookup, error) {
	entries, err := repo.LoadAll(ctx)
	if err != nil {
		return NewHSNLookup(nil), fmt.Errorf("loading HSN master: %w", err)
	}
	return NewHSNLookup(entries), nil
}

// Len returns the number of distinct codes in the lookup.
func (h *HSNLookup) Len() int {
	if h == nil {
		return 0
	}
	return len(h.byCode)
}
