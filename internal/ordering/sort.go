package ordering

import (
	"cmp"
	"fmt"
	"slices"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/dmitrijs2005/gophwallet/internal/common"
	"github.com/dmitrijs2005/gophwallet/internal/models"
)

// Persisted sort option names.
const (
	NameTimeAdded          = "TimeAdded"
	NameRelevantDateNewest = "RelevantDateNewest"
	NameRelevantDateOldest = "RelevantDateOldest"
	NameName               = "Name"
	NameCreatedAt          = "CreatedAt"
	NameManual             = "Manual"
)

type compareFunc func(a, b models.LocalizedPassWithTags) int

// SortOption is one of a closed set of orderings. Each carries its own
// comparator; the zero value is not usable.
type SortOption struct {
	name    string
	label   string
	compare compareFunc
}

var (
	TimeAdded          = SortOption{NameTimeAdded, "Date added", byAddedAtDesc}
	RelevantDateNewest = SortOption{NameRelevantDateNewest, "Relevant date (newest)", byRelevantDate(true)}
	RelevantDateOldest = SortOption{NameRelevantDateOldest, "Relevant date (oldest)", byRelevantDate(false)}
	Name               = SortOption{NameName, "Name", byDescription}
	CreatedAt          = SortOption{NameCreatedAt, "Created (oldest)", byAddedAtAsc}
	// Manual keeps the persisted order; its comparator is only a fallback.
	Manual = SortOption{NameManual, "Manual", byAddedAtDesc}
)

// All lists every option in selection order.
func All() []SortOption {
	return []SortOption{TimeAdded, RelevantDateNewest, RelevantDateOldest, Name, CreatedAt, Manual}
}

// ByName restores a persisted option.
func ByName(name string) (SortOption, bool) {
	for _, o := range All() {
		if o.name == name {
			return o, true
		}
	}
	return SortOption{}, false
}

// Parse is ByName with an error for unknown names.
func Parse(name string) (SortOption, error) {
	o, ok := ByName(name)
	if !ok {
		return SortOption{}, fmt.Errorf("%w: %q", common.ErrUnknownSortOption, name)
	}
	return o, nil
}

func (o SortOption) Name() string  { return o.name }
func (o SortOption) Label() string { return o.label }
func (o SortOption) String() string {
	return o.name
}

func (o SortOption) IsManual() bool { return o.name == NameManual }

// Compare orders a before b with a negative result.
func (o SortOption) Compare(a, b models.LocalizedPassWithTags) int {
	return o.compare(a, b)
}

// Sort returns a stably sorted copy of passes.
func (o SortOption) Sort(passes []models.LocalizedPassWithTags) []models.LocalizedPassWithTags {
	out := slices.Clone(passes)
	slices.SortStableFunc(out, o.compare)
	return out
}

func byAddedAtDesc(a, b models.LocalizedPassWithTags) int {
	return b.Pass.AddedAt.Compare(a.Pass.AddedAt)
}

func byAddedAtAsc(a, b models.LocalizedPassWithTags) int {
	return a.Pass.AddedAt.Compare(b.Pass.AddedAt)
}

// byRelevantDate compares first relevant dates; passes without one go last
// in both directions.
func byRelevantDate(newestFirst bool) compareFunc {
	return func(a, b models.LocalizedPassWithTags) int {
		da, okA := a.Pass.FirstRelevantDate()
		db, okB := b.Pass.FirstRelevantDate()
		switch {
		case !okA && !okB:
			return 0
		case !okA:
			return 1
		case !okB:
			return -1
		}
		if newestFirst {
			return db.Compare(da)
		}
		return da.Compare(db)
	}
}

func byDescription(a, b models.LocalizedPassWithTags) int {
	// Caser is stateful, so one per comparison.
	lower := cases.Lower(language.Und)
	return cmp.Compare(lower.String(a.Pass.Description), lower.String(b.Pass.Description))
}
