// services/heatmap_service.go
package services

import (
	"context"
	"log"
)

// ActivityHeatmap merges daily submission counts from every platform that
// reports a calendar. Same tolerance policy as the dashboard: a failed platform
// contributes nothing, the call itself never fails.
type ActivityHeatmap struct {
	TotalActiveDays  int                       `json:"total_active_days"`
	SubmissionsByDay map[string]int            `json:"submissions_by_day"`
	Platforms        map[string]map[string]int `json:"platforms"`
}

type HeatmapService struct {
	Profiles   ProfileStore
	LeetCode   LeetCodeFetcher
	Codeforces CodeforcesFetcher
}

func NewHeatmapService(profiles ProfileStore, leetcode LeetCodeFetcher, codeforces CodeforcesFetcher) *HeatmapService {
	return &HeatmapService{Profiles: profiles, LeetCode: leetcode, Codeforces: codeforces}
}

// GetActivity returns the merged per-day activity map for one user.
// CodeChef exposes no public submission calendar, so only LeetCode and
// Codeforces contribute.
func (s *HeatmapService) GetActivity(ctx context.Context, userID string) *ActivityHeatmap {
	heatmap := &ActivityHeatmap{
		SubmissionsByDay: make(map[string]int),
		Platforms:        make(map[string]map[string]int),
	}

	user, err := s.Profiles.FindByID(ctx, userID)
	if err != nil {
		log.Printf("⚠️ [HEATMAP] profile lookup failed for user %s, serving empty heatmap: %v", userID, err)
		return heatmap
	}

	if user.LeetcodeUsername != "" {
		if snapshot, err := s.LeetCode.FetchStats(ctx, user.LeetcodeUsername); err != nil {
			log.Printf("⚠️ [HEATMAP] leetcode fetch failed for %q: %v", user.LeetcodeUsername, err)
		} else if len(snapshot.SubmissionsByDay) > 0 {
			heatmap.Platforms["leetcode"] = snapshot.SubmissionsByDay
		}
	}

	if user.CodeforcesUsername != "" {
		if snapshot, err := s.Codeforces.FetchProfile(ctx, user.CodeforcesUsername); err != nil {
			log.Printf("⚠️ [HEATMAP] codeforces fetch failed for %q: %v", user.CodeforcesUsername, err)
		} else if len(snapshot.SubmissionsByDay) > 0 {
			heatmap.Platforms["codeforces"] = snapshot.SubmissionsByDay
		}
	}

	for _, byDay := range heatmap.Platforms {
		for day, count := range byDay {
			heatmap.SubmissionsByDay[day] += count
		}
	}
	heatmap.TotalActiveDays = len(heatmap.SubmissionsByDay)

	return heatmap
}
