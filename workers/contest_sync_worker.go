// workers/contest_sync_worker.go
package workers

import (
	"context"
	"log"
	"time"

	"codefolio-backend/services"
)

// PollContests keeps the upcoming_contests mirror fresh. Runs one sync at
// startup, then on every tick until the context is cancelled.
func PollContests(ctx context.Context, contestService *services.ContestService, pollInterval time.Duration) {
	log.Println("🔁 Starting contest sync polling…")

	if err := contestService.SyncUpcoming(ctx); err != nil {
		log.Printf("⚠️ Initial contest sync failed: %v", err)
	}

	ticker := time.NewTicker(pollInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			if err := contestService.SyncUpcoming(ctx); err != nil {
				log.Printf("❌ Contest sync failed: %v", err)
			}
		case <-ctx.Done():
			log.Println("⏹️ Contest sync polling stopped")
			return
		}
	}
}
