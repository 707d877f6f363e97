// services/contest_service.go
package services

import (
	"context"
	"log"
	"time"

	"codefolio-backend/models"
	"codefolio-backend/platforms"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// ContestFetcher is implemented by every platform client that can list
// not-yet-started contests.
type ContestFetcher interface {
	FetchUpcomingContests(ctx context.Context) ([]platforms.ContestInfo, error)
}

type ContestService struct {
	DB      *gorm.DB
	Sources []ContestFetcher
}

func NewContestService(db *gorm.DB) *ContestService {
	return &ContestService{
		DB: db,
		Sources: []ContestFetcher{
			platforms.NewLeetCodeClient(),
			platforms.NewCodeforcesClient(),
			platforms.NewCodechefClient(),
		},
	}
}

// SyncUpcoming refreshes the upcoming_contests mirror from every source.
// A failing source is logged and skipped; the others still sync.
func (s *ContestService) SyncUpcoming(ctx context.Context) error {
	var upsertCount, errorCount int

	for _, source := range s.Sources {
		contests, err := source.FetchUpcomingContests(ctx)
		if err != nil {
			errorCount++
			log.Printf("⚠️ [CONTEST_SYNC] source fetch failed: %v", err)
			continue
		}

		for _, info := range contests {
			record := models.UpcomingContest{
				ID:              uuid.NewString(),
				Platform:        info.Platform,
				ExternalKey:     info.Key,
				Name:            info.Name,
				URL:             info.URL,
				StartsAt:        info.StartsAt,
				DurationSeconds: int64(info.Duration / time.Second),
			}
			err := s.DB.WithContext(ctx).Clauses(clause.OnConflict{
				Columns:   []clause.Column{{Name: "platform"}, {Name: "external_key"}},
				DoUpdates: clause.AssignmentColumns([]string{"name", "url", "starts_at", "duration_seconds", "updated_at"}),
			}).Create(&record).Error
			if err != nil {
				errorCount++
				log.Printf("⚠️ [CONTEST_SYNC] failed to upsert %s/%s: %v", info.Platform, info.Key, err)
			} else {
				upsertCount++
			}
		}
	}

	// Drop contests that started since the last sync.
	if err := s.DB.WithContext(ctx).
		Where("starts_at < ?", time.Now().UTC()).
		Delete(&models.UpcomingContest{}).Error; err != nil {
		log.Printf("⚠️ [CONTEST_SYNC] failed to prune started contests: %v", err)
	}

	log.Printf("✅ [CONTEST_SYNC] synced %d contest(s), %d error(s)", upsertCount, errorCount)
	return nil
}

// GetUpcoming lists mirrored contests that have not started, soonest first.
func (s *ContestService) GetUpcoming(ctx context.Context) ([]models.UpcomingContest, error) {
	var contests []models.UpcomingContest
	err := s.DB.WithContext(ctx).
		Where("starts_at >= ?", time.Now().UTC()).
		Order("starts_at ASC").
		Find(&contests).Error
	if err != nil {
		return nil, err
	}
	return contests, nil
}
