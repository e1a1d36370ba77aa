package postgres

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/Renanf68/nlw2-server/internal/domain/entity"
	"github.com/Renanf68/nlw2-server/internal/domain/repository"
)

const pgForeignKeyViolation = "23503"

type ConnectionRepository struct {
	pool *pgxpool.Pool
}

func NewConnectionRepository(pool *pgxpool.Pool) *ConnectionRepository {
	return &ConnectionRepository{pool: pool}
}

func (r *ConnectionRepository) Create(ctx context.Context, c *entity.Connection) error {
	row := r.pool.QueryRow(ctx, `
		INSERT INTO connections (user_id)
		VALUES ($1)
		RETURNING id, created_at
	`, c.UserID)

	if err := row.Scan(&c.ID, &c.CreatedAt); err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == pgForeignKeyViolation {
			return repository.ErrUserNotFound
		}
		return err
	}
	return nil
}

func (r *ConnectionRepository) Count(ctx context.Context) (int64, error) {
	var total int64
	if err := r.pool.QueryRow(ctx, `SELECT COUNT(*) FROM connections`).Scan(&total); err != nil {
		return 0, err
	}
	return total, nil
}

var _ repository.ConnectionRepository = (*ConnectionRepository)(nil)
