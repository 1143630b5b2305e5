package service

import (
	"context"

	"github.com/jask/notewise/internal/database/repository"
)

// NotificationService backs the notifications screen and the dashboard bell.
type NotificationService struct {
	Repo *repository.NotificationRepo
}

func (s *NotificationService) List(ctx context.Context) ([]repository.Notification, error) {
	return s.Repo.List(ctx)
}

func (s *NotificationService) UnreadCount(ctx context.Context) (int, error) {
	return s.Repo.UnreadCount(ctx)
}

func (s *NotificationService) MarkRead(ctx context.Context, id string) error {
	return s.Repo.MarkRead(ctx, id)
}

func (s *NotificationService) MarkAllRead(ctx context.Context) error {
	return s.Repo.MarkAllRead(ctx)
}
