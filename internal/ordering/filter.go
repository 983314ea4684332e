package ordering

import (
	"slices"

	"github.com/dmitrijs2005/gophwallet/internal/models"
)

// Filter selects which passes a view shows.
type Filter struct {
	// Archived picks the archive instead of the active wallet.
	Archived bool
	// Types limits the pass types shown; empty shows all.
	Types []models.PassType
	// Tag, when set, keeps only passes carrying that tag.
	Tag *int64
}

// Archive keeps passes whose archived flag matches the filter.
func (f Filter) Archive(passes []models.LocalizedPassWithTags) []models.LocalizedPassWithTags {
	out := make([]models.LocalizedPassWithTags, 0, len(passes))
	for _, p := range passes {
		if p.Pass.Archived == f.Archived {
			out = append(out, p)
		}
	}
	return out
}

// Apply keeps passes of the selected types carrying the selected tag. It does
// not look at the archived flag.
func (f Filter) Apply(passes []models.LocalizedPassWithTags) []models.LocalizedPassWithTags {
	out := make([]models.LocalizedPassWithTags, 0, len(passes))
	for _, p := range passes {
		if len(f.Types) > 0 && !slices.Contains(f.Types, p.Pass.Type) {
			continue
		}
		if f.Tag != nil && !p.HasTag(*f.Tag) {
			continue
		}
		out = append(out, p)
	}
	return out
}
