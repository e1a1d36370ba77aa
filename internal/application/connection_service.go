package application

import (
	"context"
	"errors"
	"fmt"

	"github.com/sirupsen/logrus"

	"github.com/Renanf68/nlw2-server/internal/domain/entity"
	repo "github.com/Renanf68/nlw2-server/internal/domain/repository"
)

// ConnectionService records students reaching out to tutors.
type ConnectionService struct {
	Repo   repo.ConnectionRepository
	Logger *logrus.Logger
}

func NewConnectionService(r repo.ConnectionRepository, logger *logrus.Logger) *ConnectionService {
	return &ConnectionService{Repo: r, Logger: logger}
}

// Create stores a connection to userID. It returns repository.ErrUserNotFound
// when no such tutor exists.
func (s *ConnectionService) Create(ctx context.Context, userID int64) error {
	err := s.Repo.Create(ctx, &entity.Connection{UserID: userID})
	if err == nil {
		countEvent("connections")
		return nil
	}
	if errors.Is(err, repo.ErrUserNotFound) {
		return err
	}
	s.Logger.WithError(err).WithField("user_id", userID).Error("create connection failed")
	return fmt.Errorf("%w: %w", ErrStoreFailure, err)
}

// Total returns the number of connections ever made.
func (s *ConnectionService) Total(ctx context.Context) (int64, error) {
	n, err := s.Repo.Count(ctx)
	if err != nil {
		s.Logger.WithError(err).Error("count connections failed")
		return 0, fmt.Errorf("%w: %w", ErrStoreFailure, err)
	}
	return n, nil
}
