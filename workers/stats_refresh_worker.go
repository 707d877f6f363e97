// workers/stats_refresh_worker.go
package workers

import (
	"context"
	"log"
	"time"

	"codefolio-backend/models"
	"codefolio-backend/services"

	"github.com/go-co-op/gocron/v2"
)

// StatsRefreshWorker periodically recomputes dashboard data for every user with
// a linked platform and persists it through the upsert path, so public
// portfolios stay populated without anyone opening the dashboard.
type StatsRefreshWorker struct {
	users     *services.UserService
	dashboard *services.DashboardService
	interval  time.Duration
}

func NewStatsRefreshWorker(users *services.UserService, dashboard *services.DashboardService, interval time.Duration) *StatsRefreshWorker {
	return &StatsRefreshWorker{users: users, dashboard: dashboard, interval: interval}
}

func (w *StatsRefreshWorker) Start(ctx context.Context) {
	sched, err := gocron.NewScheduler()
	if err != nil {
		log.Printf("❌ [STATS_REFRESH] failed to create scheduler: %v", err)
		return
	}

	_, err = sched.NewJob(
		gocron.DurationJob(w.interval),
		gocron.NewTask(func() { w.RefreshAll(ctx) }),
	)
	if err != nil {
		log.Printf("❌ [STATS_REFRESH] failed to schedule job: %v", err)
		return
	}

	sched.Start()
	log.Printf("🔁 Stats refresh worker running (every %s)", w.interval)

	go func() {
		<-ctx.Done()
		_ = sched.Shutdown()
		log.Println("⏹️ Stats refresh worker stopped")
	}()
}

// RefreshAll runs one full refresh pass. Per-user failures are logged and do
// not stop the pass.
func (w *StatsRefreshWorker) RefreshAll(ctx context.Context) {
	users, err := w.users.ListWithLinkedPlatforms(ctx)
	if err != nil {
		log.Printf("❌ [STATS_REFRESH] failed to list users: %v", err)
		return
	}
	if len(users) == 0 {
		return
	}

	log.Printf("[STATS_REFRESH] 📡 Refreshing stats for %d user(s)…", len(users))

	var refreshed, errored int
	for _, user := range users {
		if ctx.Err() != nil {
			return
		}
		if err := w.refreshUser(ctx, &user); err != nil {
			errored++
			log.Printf("⚠️ [STATS_REFRESH] user %s: %v", user.ID, err)
		} else {
			refreshed++
		}
	}

	log.Printf("✅ [STATS_REFRESH] refreshed %d user(s), %d error(s)", refreshed, errored)
}

func (w *StatsRefreshWorker) refreshUser(ctx context.Context, user *models.User) error {
	data := w.dashboard.GetDashboardData(ctx, user.ID)
	tq := data.TotalQuestions[0]
	cr := data.ContestRankingInfo[0]

	// Only fields belonging to linked platforms are written, and null ratings
	// never clobber previously persisted ones.
	tqFields := make(map[string]any)
	crFields := make(map[string]any)

	if user.LeetcodeUsername != "" {
		tqFields["leetcode_total"] = tq.LeetcodeTotal
		tqFields["leetcode_easy"] = tq.LeetcodeEasy
		tqFields["leetcode_medium"] = tq.LeetcodeMedium
		tqFields["leetcode_hard"] = tq.LeetcodeHard
		if cr.LeetcodeRecentContestRating != nil {
			crFields["leetcode_recent_contest_rating"] = *cr.LeetcodeRecentContestRating
		}
		if cr.LeetcodeMaxContestRating != nil {
			crFields["leetcode_max_contest_rating"] = *cr.LeetcodeMaxContestRating
		}
	}
	if user.CodeforcesUsername != "" {
		tqFields["codeforces_total"] = tq.CodeforcesTotal
		if cr.CodeforcesRecentContestRating != nil {
			crFields["codeforces_recent_contest_rating"] = *cr.CodeforcesRecentContestRating
		}
		if cr.CodeforcesMaxContestRating != nil {
			crFields["codeforces_max_contest_rating"] = *cr.CodeforcesMaxContestRating
		}
	}
	if user.CodechefUsername != "" {
		tqFields["codechef_total"] = tq.CodechefTotal
		if cr.CodechefStars != nil {
			crFields["codechef_stars"] = *cr.CodechefStars
		}
		if cr.CodechefRecentContestRating != nil {
			crFields["codechef_recent_contest_rating"] = *cr.CodechefRecentContestRating
		}
		if cr.CodechefMaxContestRating != nil {
			crFields["codechef_max_contest_rating"] = *cr.CodechefMaxContestRating
		}
	}

	if _, err := w.dashboard.UpsertTotalQuestions(ctx, user.ID, tqFields); err != nil {
		return err
	}
	if _, err := w.dashboard.UpsertContestRankingInfo(ctx, user.ID, crFields); err != nil {
		return err
	}
	return nil
}
