package repository

import (
	"context"

	"github.com/Renanf68/nlw2-server/internal/domain/entity"
)

// ConnectionRepository defines the store operations for connections.
type ConnectionRepository interface {
	Create(ctx context.Context, c *entity.Connection) error
	Count(ctx context.Context) (int64, error)
}
