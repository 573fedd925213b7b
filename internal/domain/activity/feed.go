package activity

import (
	"slices"
	"sort"
)

// Recent flattens the given feeds, newest first, and keeps at most opts.Limit entries.
func Recent(feeds []Feed, opts ListOptions) []RecentEntry {
	limit := opts.Limit
	if limit <= 0 {
		limit = DefaultRecentLimit
	}

	var out []RecentEntry
	for _, feed := range feeds {
		if opts.ProjectID != "" && feed.ProjectID != opts.ProjectID {
			continue
		}
		for _, entry := range feed.Entries {
			if len(opts.Types) > 0 && !slices.Contains(opts.Types, entry.Type) {
				continue
			}
			out = append(out, RecentEntry{
				Entry:       entry,
				ProjectID:   feed.ProjectID,
				ProjectName: feed.ProjectName,
			})
		}
	}

	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Timestamp.After(out[j].Timestamp)
	})

	if len(out) > limit {
		out = out[:limit]
	}
	return out
}
