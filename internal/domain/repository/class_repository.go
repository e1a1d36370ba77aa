package repository

import (
	"context"

	"github.com/Renanf68/nlw2-server/internal/domain/entity"
)

// Enrollment is everything written by one atomic class creation.
// Slot ClassID fields are filled in by the repository.
type Enrollment struct {
	User     entity.User
	Class    entity.Class
	Schedule []entity.ScheduleSlot
}

// ClassRepository defines the store operations for classes.
type ClassRepository interface {
	// Search returns classes of subject having a slot that covers window.
	Search(ctx context.Context, subject string, window entity.SearchWindow) ([]entity.ClassListing, error)
	// Enroll writes the user, class and schedule in one transaction and
	// sets the generated IDs on e.
	Enroll(ctx context.Context, e *Enrollment) error
}
