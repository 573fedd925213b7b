package project

import (
	"context"
	"math"
	"time"

	"github.com/Lilw3n/multisite-platform-sub002/internal/domain/activity"
)

// GetStatistics aggregates counters over the whole forest.
func (s *Service) GetStatistics(_ context.Context) Statistics {
	s.mu.RLock()
	defer s.mu.RUnlock()

	stats := Statistics{
		ProjectsByType:   make(map[Type]int, len(Types)),
		ProjectsByStatus: make(map[Status]int, len(Statuses)),
	}
	for _, t := range Types {
		stats.ProjectsByType[t] = 0
	}
	for _, st := range Statuses {
		stats.ProjectsByStatus[st] = 0
	}

	var completionDays, completedWithDates int
	for _, id := range s.tree.order {
		p := s.tree.byID[id]
		stats.TotalProjects++
		switch p.Status {
		case StatusActive:
			stats.ActiveProjects++
		case StatusCompleted:
			stats.CompletedProjects++
			if p.StartDate != nil && p.EndDate != nil {
				completionDays += ceilDays(p.EndDate.Sub(*p.StartDate))
				completedWithDates++
			}
		}
		stats.TotalItems += p.TotalItems
		stats.TotalFiles += p.TotalFiles
		stats.TotalSize += p.TotalSize
		stats.ProjectsByType[p.Type]++
		stats.ProjectsByStatus[p.Status]++
	}
	if completedWithDates > 0 {
		stats.AverageCompletionDays = float64(completionDays) / float64(completedWithDates)
	}

	stats.RecentActivity = activity.Recent(s.feedsLocked(), activity.ListOptions{Limit: activity.DefaultRecentLimit})
	if stats.RecentActivity == nil {
		stats.RecentActivity = []activity.RecentEntry{}
	}
	return stats
}

// RecentActivity returns activity entries across projects, newest first.
func (s *Service) RecentActivity(_ context.Context, opts activity.ListOptions) []activity.RecentEntry {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := activity.Recent(s.feedsLocked(), opts)
	if out == nil {
		return []activity.RecentEntry{}
	}
	return out
}

func (s *Service) feedsLocked() []activity.Feed {
	feeds := make([]activity.Feed, 0, len(s.tree.order))
	for _, id := range s.tree.order {
		p := s.tree.byID[id]
		feeds = append(feeds, activity.Feed{
			ProjectID:   p.ID,
			ProjectName: p.Name,
			Entries:     p.Activities,
		})
	}
	return feeds
}

func ceilDays(d time.Duration) int {
	return int(math.Ceil(d.Hours() / 24))
}
