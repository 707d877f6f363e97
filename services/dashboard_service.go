// services/dashboard_service.go
package services

import (
	"context"
	"log"

	"codefolio-backend/models"
	"codefolio-backend/platforms"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"
	"gorm.io/gorm"
)

// ProfileStore resolves linked platform usernames for the aggregation path.
// Implemented by UserService; kept as an interface so the dashboard never
// depends on process-wide state.
type ProfileStore interface {
	FindByID(ctx context.Context, id string) (*models.User, error)
}

// Fetchers wrap the three platform clients so tests can substitute fakes.
type LeetCodeFetcher interface {
	FetchStats(ctx context.Context, username string) (*platforms.LeetCodeSnapshot, error)
}

type CodeforcesFetcher interface {
	FetchProfile(ctx context.Context, handle string) (*platforms.CodeforcesSnapshot, error)
}

type CodechefFetcher interface {
	FetchProfile(ctx context.Context, username string) (*platforms.CodechefSnapshot, error)
}

// DashboardData is the UI contract: both summaries are always wrapped in a
// single-element list, no matter how many platforms are linked or failed.
type DashboardData struct {
	TotalQuestions     []models.TotalQuestionsSummary `json:"total_questions"`
	ContestRankingInfo []models.ContestRankingSummary `json:"contest_ranking_info"`
}

type DashboardService struct {
	DB       *gorm.DB
	Profiles ProfileStore

	LeetCode   LeetCodeFetcher
	Codeforces CodeforcesFetcher
	Codechef   CodechefFetcher
}

func NewDashboardService(db *gorm.DB, profiles ProfileStore) *DashboardService {
	return &DashboardService{
		DB:         db,
		Profiles:   profiles,
		LeetCode:   platforms.NewLeetCodeClient(),
		Codeforces: platforms.NewCodeforcesClient(),
		Codechef:   platforms.NewCodechefClient(),
	}
}

// GetDashboardData produces the combined cross-platform snapshot for one user.
// It never fails: an unresolved user means no linked platforms, and a platform
// fetch error contributes that platform's zero/null defaults. Each swallowed
// failure still gets a log line so partial data stays debuggable.
func (s *DashboardService) GetDashboardData(ctx context.Context, userID string) *DashboardData {
	var tq models.TotalQuestionsSummary
	var cr models.ContestRankingSummary

	user, err := s.Profiles.FindByID(ctx, userID)
	if err != nil {
		log.Printf("⚠️ [DASHBOARD] profile lookup failed for user %s, serving defaults: %v", userID, err)
		return wrapDashboardData(tq, cr)
	}

	// The three lookups contribute disjoint fields, so they run concurrently
	// and write without coordination.
	g, gctx := errgroup.WithContext(ctx)

	if user.LeetcodeUsername != "" {
		username := user.LeetcodeUsername
		g.Go(func() error {
			snapshot, err := s.LeetCode.FetchStats(gctx, username)
			if err != nil {
				log.Printf("⚠️ [DASHBOARD] leetcode fetch failed for %q: %v", username, err)
				return nil
			}
			tq.LeetcodeTotal = snapshot.TotalSolved
			tq.LeetcodeEasy = snapshot.EasySolved
			tq.LeetcodeMedium = snapshot.MediumSolved
			tq.LeetcodeHard = snapshot.HardSolved
			cr.LeetcodeRecentContestRating = snapshot.RecentContestRating
			cr.LeetcodeMaxContestRating = snapshot.MaxContestRating
			return nil
		})
	}

	if user.CodeforcesUsername != "" {
		handle := user.CodeforcesUsername
		g.Go(func() error {
			snapshot, err := s.Codeforces.FetchProfile(gctx, handle)
			if err != nil {
				log.Printf("⚠️ [DASHBOARD] codeforces fetch failed for %q: %v", handle, err)
				return nil
			}
			tq.CodeforcesTotal = snapshot.TotalSolved
			cr.CodeforcesRecentContestRating = snapshot.Rating
			cr.CodeforcesMaxContestRating = snapshot.MaxRating
			return nil
		})
	}

	if user.CodechefUsername != "" {
		username := user.CodechefUsername
		g.Go(func() error {
			snapshot, err := s.Codechef.FetchProfile(gctx, username)
			if err != nil {
				log.Printf("⚠️ [DASHBOARD] codechef fetch failed for %q: %v", username, err)
				return nil
			}
			tq.CodechefTotal = snapshot.ProblemsSolved
			cr.CodechefStars = snapshot.Stars
			cr.CodechefRecentContestRating = snapshot.Rating
			cr.CodechefMaxContestRating = snapshot.HighestRating
			return nil
		})
	}

	_ = g.Wait()

	return wrapDashboardData(tq, cr)
}

func wrapDashboardData(tq models.TotalQuestionsSummary, cr models.ContestRankingSummary) *DashboardData {
	return &DashboardData{
		TotalQuestions:     []models.TotalQuestionsSummary{tq},
		ContestRankingInfo: []models.ContestRankingSummary{cr},
	}
}

// UpsertTotalQuestions merges partial solved-count fields into the persisted
// summary for one user. Fields absent from the input keep their stored values;
// last write wins per field.
func (s *DashboardService) UpsertTotalQuestions(ctx context.Context, userID string, fields map[string]any) (*models.TotalQuestionsSummary, error) {
	if err := s.ensureUserExists(ctx, userID); err != nil {
		return nil, err
	}

	var summary models.TotalQuestionsSummary
	err := s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where(models.TotalQuestionsSummary{UserID: userID}).
			Attrs(models.TotalQuestionsSummary{ID: uuid.NewString()}).
			FirstOrCreate(&summary).Error; err != nil {
			return err
		}
		if len(fields) > 0 {
			if err := tx.Model(&summary).Updates(fields).Error; err != nil {
				return err
			}
		}
		return tx.Where("user_id = ?", userID).First(&summary).Error
	})
	if err != nil {
		return nil, err
	}
	return &summary, nil
}

// UpsertContestRankingInfo merges partial rating fields into the persisted
// contest summary for one user, same semantics as UpsertTotalQuestions.
func (s *DashboardService) UpsertContestRankingInfo(ctx context.Context, userID string, fields map[string]any) (*models.ContestRankingSummary, error) {
	if err := s.ensureUserExists(ctx, userID); err != nil {
		return nil, err
	}

	var summary models.ContestRankingSummary
	err := s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where(models.ContestRankingSummary{UserID: userID}).
			Attrs(models.ContestRankingSummary{ID: uuid.NewString()}).
			FirstOrCreate(&summary).Error; err != nil {
			return err
		}
		if len(fields) > 0 {
			if err := tx.Model(&summary).Updates(fields).Error; err != nil {
				return err
			}
		}
		return tx.Where("user_id = ?", userID).First(&summary).Error
	})
	if err != nil {
		return nil, err
	}
	return &summary, nil
}

func (s *DashboardService) ensureUserExists(ctx context.Context, userID string) error {
	var count int64
	if err := s.DB.WithContext(ctx).Model(&models.User{}).Where("id = ?", userID).Count(&count).Error; err != nil {
		return err
	}
	if count == 0 {
		return ErrUserNotFound
	}
	return nil
}
