package workers

import (
	"context"
	"errors"
	"testing"

	"codefolio-backend/models"
	"codefolio-backend/platforms"
	"codefolio-backend/services"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func newWorkerTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open("file:"+uuid.NewString()+"?mode=memory&cache=shared"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(
		&models.User{},
		&models.TotalQuestionsSummary{},
		&models.ContestRankingSummary{},
	))
	return db
}

type stubLeetCode struct {
	snapshot *platforms.LeetCodeSnapshot
	err      error
}

func (s *stubLeetCode) FetchStats(ctx context.Context, username string) (*platforms.LeetCodeSnapshot, error) {
	return s.snapshot, s.err
}

type stubCodeforces struct {
	snapshot *platforms.CodeforcesSnapshot
	err      error
}

func (s *stubCodeforces) FetchProfile(ctx context.Context, handle string) (*platforms.CodeforcesSnapshot, error) {
	return s.snapshot, s.err
}

type stubCodechef struct{}

func (s *stubCodechef) FetchProfile(ctx context.Context, username string) (*platforms.CodechefSnapshot, error) {
	return nil, errors.New("unused")
}

func seedWorkerUser(t *testing.T, db *gorm.DB, leetcode, codeforces string) *models.User {
	t.Helper()
	user := models.User{
		ID:                 uuid.NewString(),
		Name:               "Worker User",
		Email:              uuid.NewString() + "@example.com",
		PasswordHash:       "x",
		Handle:             "worker-" + uuid.NewString()[:8],
		LeetcodeUsername:   leetcode,
		CodeforcesUsername: codeforces,
	}
	require.NoError(t, db.Create(&user).Error)
	return &user
}

func TestRefreshAllPersistsSummaries(t *testing.T) {
	db := newWorkerTestDB(t)
	user := seedWorkerUser(t, db, "lc_user", "cf_user")

	rating := 1450
	maxRating := 1500
	lcRating := 1700.5
	userService := services.NewUserService(db)
	dashboard := &services.DashboardService{
		DB:       db,
		Profiles: userService,
		LeetCode: &stubLeetCode{snapshot: &platforms.LeetCodeSnapshot{
			TotalSolved: 100, EasySolved: 50, MediumSolved: 40, HardSolved: 10,
			RecentContestRating: &lcRating, MaxContestRating: &lcRating,
		}},
		Codeforces: &stubCodeforces{snapshot: &platforms.CodeforcesSnapshot{
			TotalSolved: 30, Rating: &rating, MaxRating: &maxRating,
		}},
		Codechef: &stubCodechef{},
	}

	worker := NewStatsRefreshWorker(userService, dashboard, 0)
	worker.RefreshAll(context.Background())

	var tq models.TotalQuestionsSummary
	require.NoError(t, db.Where("user_id = ?", user.ID).First(&tq).Error)
	assert.Equal(t, 100, tq.LeetcodeTotal)
	assert.Equal(t, 30, tq.CodeforcesTotal)
	assert.Zero(t, tq.CodechefTotal)

	var cr models.ContestRankingSummary
	require.NoError(t, db.Where("user_id = ?", user.ID).First(&cr).Error)
	require.NotNil(t, cr.CodeforcesRecentContestRating)
	assert.Equal(t, 1450, *cr.CodeforcesRecentContestRating)
	assert.Nil(t, cr.CodechefStars)
}

func TestRefreshAllDoesNotClobberRatingsOnFailure(t *testing.T) {
	db := newWorkerTestDB(t)
	user := seedWorkerUser(t, db, "", "cf_user")

	userService := services.NewUserService(db)
	dashboard := &services.DashboardService{
		DB:         db,
		Profiles:   userService,
		LeetCode:   &stubLeetCode{err: errors.New("unused")},
		Codeforces: &stubCodeforces{err: errors.New("codeforces down")},
		Codechef:   &stubCodechef{},
	}

	// A previous pass persisted a rating.
	seeded := 1400
	require.NoError(t, db.Create(&models.ContestRankingSummary{
		ID: uuid.NewString(), UserID: user.ID, CodeforcesRecentContestRating: &seeded,
	}).Error)

	worker := NewStatsRefreshWorker(userService, dashboard, 0)
	worker.RefreshAll(context.Background())

	var cr models.ContestRankingSummary
	require.NoError(t, db.Where("user_id = ?", user.ID).First(&cr).Error)
	require.NotNil(t, cr.CodeforcesRecentContestRating)
	assert.Equal(t, 1400, *cr.CodeforcesRecentContestRating, "failed fetch must not null out a persisted rating")

	// Solved counts for the linked platform do reset to the fetch result.
	var tq models.TotalQuestionsSummary
	require.NoError(t, db.Where("user_id = ?", user.ID).First(&tq).Error)
	assert.Zero(t, tq.CodeforcesTotal)
}

func TestRefreshAllSkipsUsersWithoutLinks(t *testing.T) {
	db := newWorkerTestDB(t)
	seedWorkerUser(t, db, "", "")

	userService := services.NewUserService(db)
	dashboard := &services.DashboardService{
		DB:         db,
		Profiles:   userService,
		LeetCode:   &stubLeetCode{},
		Codeforces: &stubCodeforces{},
		Codechef:   &stubCodechef{},
	}

	worker := NewStatsRefreshWorker(userService, dashboard, 0)
	worker.RefreshAll(context.Background())

	var count int64
	require.NoError(t, db.Model(&models.TotalQuestionsSummary{}).Count(&count).Error)
	assert.Zero(t, count)
}
