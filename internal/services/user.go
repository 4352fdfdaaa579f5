package services

import (
	"context"
	"fmt"
	"strconv"

	"rates-bot/internal/models"
)

type UserStore interface {
	Save(ctx context.Context, user models.ChatUser) error
}

// UserService records chat users who start the bot.
type UserService struct {
	repo      UserStore
	publisher Publisher
}

// NewUserService accepts a nil publisher, in which case nothing is published.
func NewUserService(repo UserStore, publisher Publisher) *UserService {
	return &UserService{repo: repo, publisher: publisher}
}

func (s *UserService) Register(ctx context.Context, user models.ChatUser) error {
	if user.UserID <= 0 {
		return fmt.Errorf("invalid UserID: %d", user.UserID)
	}

	if err := s.repo.Save(ctx, user); err != nil {
		return err
	}

	if s.publisher != nil {
		s.publisher.PublishObjectAsync([]byte(strconv.FormatInt(user.UserID, 10)), user)
	}
	return nil
}
