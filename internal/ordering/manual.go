package ordering

import (
	"slices"

	"github.com/dmitrijs2005/gophwallet/internal/models"
)

// ManualOrdering is the result of laying passes out by a stored manual order.
type ManualOrdering struct {
	Ordered    []models.LocalizedPassWithTags
	Normalized []string
}

// ApplyManualOrder arranges passes by the stored id sequence. Passes missing
// from it come first, newest added first; the rest follow in stored order with
// duplicate and unknown ids dropped. Normalized is the id sequence of Ordered
// and is what should be persisted when it differs from stored.
func ApplyManualOrder(passes []models.LocalizedPassWithTags, stored []string) ManualOrdering {
	byID := make(map[string]models.LocalizedPassWithTags, len(passes))
	for _, p := range passes {
		byID[p.Pass.ID] = p
	}

	inStored := make(map[string]struct{}, len(stored))
	existing := make([]models.LocalizedPassWithTags, 0, len(stored))
	for _, id := range stored {
		if _, dup := inStored[id]; dup {
			continue
		}
		inStored[id] = struct{}{}
		if p, ok := byID[id]; ok {
			existing = append(existing, p)
		}
	}

	missing := make([]models.LocalizedPassWithTags, 0, len(passes)-len(existing))
	for _, p := range passes {
		if _, ok := inStored[p.Pass.ID]; !ok {
			missing = append(missing, p)
		}
	}
	slices.SortStableFunc(missing, byAddedAtDesc)

	ordered := append(missing, existing...)
	normalized := make([]string, len(ordered))
	for i, p := range ordered {
		normalized[i] = p.Pass.ID
	}
	return ManualOrdering{Ordered: ordered, Normalized: normalized}
}

// Move drags fromID onto toID's slot in a normalized order and returns the
// new order. downward is true when the item moves towards the end of the
// visible list, in which case it lands after toID. An unknown fromID leaves
// the order unchanged; an unknown toID sends the item to the end.
func Move(normalized []string, fromID, toID string, downward bool) []string {
	from := slices.Index(normalized, fromID)
	if from < 0 {
		return slices.Clone(normalized)
	}

	updated := slices.Delete(slices.Clone(normalized), from, from+1)
	at := slices.Index(updated, toID)
	if at < 0 {
		at = len(updated)
	}
	if downward {
		at++
	}
	at = min(max(at, 0), len(updated))
	return slices.Insert(updated, at, fromID)
}
