package services

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/yungbote/skillpath-backend/internal/logger"
	"github.com/yungbote/skillpath-backend/internal/repos"
	"github.com/yungbote/skillpath-backend/internal/types"
)

type UserService interface {
	GetMe(ctx context.Context, userID uuid.UUID) (*types.User, error)
	// ConnectGithub stores the user's GitHub identity and token so the
	// evidence sync can call the API on their behalf.
	ConnectGithub(ctx context.Context, userID uuid.UUID, githubID, githubUsername, accessToken string) error
}

type userService struct {
	db       *gorm.DB
	log      *logger.Logger
	userRepo repos.UserRepo
}

func NewUserService(db *gorm.DB, log *logger.Logger, userRepo repos.UserRepo) UserService {
	return &userService{
		db:       db,
		log:      log.With("service", "UserService"),
		userRepo: userRepo,
	}
}

func (s *userService) GetMe(ctx context.Context, userID uuid.UUID) (*types.User, error) {
	users, err := s.userRepo.GetByIDs(ctx, nil, []uuid.UUID{userID})
	if err != nil {
		return nil, fmt.Errorf("load user %s: %w", userID, err)
	}
	if len(users) == 0 {
		return nil, fmt.Errorf("user %s: %w", userID, ErrNotFound)
	}
	user := users[0]
	user.Password = ""
	user.GithubAccessToken = ""
	return user, nil
}

func (s *userService) ConnectGithub(ctx context.Context, userID uuid.UUID, githubID, githubUsername, accessToken string) error {
	if accessToken == "" {
		return fmt.Errorf("Github access token is required")
	}
	users, err := s.userRepo.GetByIDs(ctx, nil, []uuid.UUID{userID})
	if err != nil {
		return fmt.Errorf("load user %s: %w", userID, err)
	}
	if len(users) == 0 {
		return fmt.Errorf("user %s: %w", userID, ErrNotFound)
	}
	user := users[0]
	now := time.Now().UTC()
	user.GithubID = githubID
	user.GithubUsername = githubUsername
	user.GithubAccessToken = accessToken
	user.GithubConnectedAt = &now
	if err := s.userRepo.Update(ctx, nil, user); err != nil {
		return fmt.Errorf("update user %s: %w", userID, err)
	}
	s.log.Info("Github connected", "user_id", userID, "github_username", githubUsername)
	return nil
}
