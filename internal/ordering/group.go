package ordering

import "github.com/dmitrijs2005/gophwallet/internal/models"

// Bucket holds the passes sharing one group id, in display order.
type Bucket struct {
	GroupID int64
	Passes  []models.LocalizedPassWithTags
}

// GroupByGroupID splits ordered passes into group buckets, ordered by first
// appearance, and the ungrouped rest. Group ids are taken as stored, so a
// reference to a deleted group still forms a bucket.
func GroupByGroupID(ordered []models.LocalizedPassWithTags) ([]Bucket, []models.LocalizedPassWithTags) {
	var (
		buckets   []Bucket
		ungrouped []models.LocalizedPassWithTags
		index     = map[int64]int{}
	)
	for _, p := range ordered {
		if p.Pass.GroupID == nil {
			ungrouped = append(ungrouped, p)
			continue
		}
		gid := *p.Pass.GroupID
		i, ok := index[gid]
		if !ok {
			i = len(buckets)
			index[gid] = i
			buckets = append(buckets, Bucket{GroupID: gid})
		}
		buckets[i].Passes = append(buckets[i].Passes, p)
	}
	return buckets, ungrouped
}
