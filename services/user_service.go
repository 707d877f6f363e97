// services/user_service.go
package services

import (
	"context"
	"errors"
	"fmt"

	"codefolio-backend/models"

	"github.com/google/uuid"
	"github.com/gosimple/slug"
	"gorm.io/gorm"
)

// ErrUserNotFound is returned whenever a user id or handle does not resolve.
var ErrUserNotFound = errors.New("user not found")

type UserService struct {
	DB *gorm.DB
}

func NewUserService(db *gorm.DB) *UserService {
	return &UserService{DB: db}
}

func (s *UserService) FindByID(ctx context.Context, id string) (*models.User, error) {
	var user models.User
	if err := s.DB.WithContext(ctx).Where("id = ?", id).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return &user, nil
}

func (s *UserService) FindByEmail(ctx context.Context, email string) (*models.User, error) {
	var user models.User
	if err := s.DB.WithContext(ctx).Where("email = ?", email).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return &user, nil
}

func (s *UserService) FindByHandle(ctx context.Context, handle string) (*models.User, error) {
	var user models.User
	if err := s.DB.WithContext(ctx).Where("handle = ?", handle).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return &user, nil
}

// Create inserts a new user with a unique slug handle derived from the name.
func (s *UserService) Create(ctx context.Context, name, email, passwordHash string) (*models.User, error) {
	user := models.User{
		ID:           uuid.NewString(),
		Name:         name,
		Email:        email,
		PasswordHash: passwordHash,
		Handle:       s.uniqueHandle(ctx, name),
	}
	if err := s.DB.WithContext(ctx).Create(&user).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

func (s *UserService) uniqueHandle(ctx context.Context, name string) string {
	base := slug.Make(name)
	if base == "" {
		base = "user"
	}

	var count int64
	s.DB.WithContext(ctx).Model(&models.User{}).Where("handle = ?", base).Count(&count)
	if count == 0 {
		return base
	}
	return fmt.Sprintf("%s-%s", base, uuid.NewString()[:8])
}

// UpdateProfileInput carries the editable profile fields. Email is deliberately
// absent: the original profile route strips it from every update.
type UpdateProfileInput struct {
	Name               string `json:"name"`
	GitHub             string `json:"github"`
	LinkedIn           string `json:"linkedin"`
	LeetcodeUsername   string `json:"leetcode_username"`
	CodeforcesUsername string `json:"codeforces_username"`
	CodechefUsername   string `json:"codechef_username"`
}

func (s *UserService) UpdateProfile(ctx context.Context, id string, input UpdateProfileInput) (*models.User, error) {
	user, err := s.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	user.Name = input.Name
	user.GitHub = input.GitHub
	user.LinkedIn = input.LinkedIn
	user.LeetcodeUsername = input.LeetcodeUsername
	user.CodeforcesUsername = input.CodeforcesUsername
	user.CodechefUsername = input.CodechefUsername

	if err := s.DB.WithContext(ctx).Save(user).Error; err != nil {
		return nil, err
	}
	return user, nil
}

func (s *UserService) SetAvatarURL(ctx context.Context, id, avatarURL string) (*models.User, error) {
	user, err := s.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	user.AvatarURL = &avatarURL
	if err := s.DB.WithContext(ctx).Save(user).Error; err != nil {
		return nil, err
	}
	return user, nil
}

// ListWithLinkedPlatforms returns every user that linked at least one platform.
// Used by the stats refresh worker.
func (s *UserService) ListWithLinkedPlatforms(ctx context.Context) ([]models.User, error) {
	var users []models.User
	err := s.DB.WithContext(ctx).
		Where("leetcode_username <> '' OR codeforces_username <> '' OR codechef_username <> ''").
		Find(&users).Error
	if err != nil {
		return nil, err
	}
	return users, nil
}

// Portfolio is the public read-only view served by handle: profile basics plus
// whatever summaries the upsert path has persisted so far.
type Portfolio struct {
	Name               string                         `json:"name"`
	Handle             string                         `json:"handle"`
	AvatarURL          *string                        `json:"avatar_url,omitempty"`
	GitHub             string                         `json:"github,omitempty"`
	LinkedIn           string                         `json:"linkedin,omitempty"`
	TotalQuestions     []models.TotalQuestionsSummary `json:"total_questions"`
	ContestRankingInfo []models.ContestRankingSummary `json:"contest_ranking_info"`
}

func (s *UserService) GetPortfolio(ctx context.Context, handle string) (*Portfolio, error) {
	user, err := s.FindByHandle(ctx, handle)
	if err != nil {
		return nil, err
	}

	var tq models.TotalQuestionsSummary
	if err := s.DB.WithContext(ctx).Where("user_id = ?", user.ID).First(&tq).Error; err != nil {
		tq = models.TotalQuestionsSummary{}
	}
	var cr models.ContestRankingSummary
	if err := s.DB.WithContext(ctx).Where("user_id = ?", user.ID).First(&cr).Error; err != nil {
		cr = models.ContestRankingSummary{}
	}

	return &Portfolio{
		Name:               user.Name,
		Handle:             user.Handle,
		AvatarURL:          user.AvatarURL,
		GitHub:             user.GitHub,
		LinkedIn:           user.LinkedIn,
		TotalQuestions:     []models.TotalQuestionsSummary{tq},
		ContestRankingInfo: []models.ContestRankingSummary{cr},
	}, nil
}
