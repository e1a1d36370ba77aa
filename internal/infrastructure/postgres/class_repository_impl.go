package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/Renanf68/nlw2-server/internal/domain/entity"
	"github.com/Renanf68/nlw2-server/internal/domain/repository"
)

// searchClassesSQL selects classes of a subject that own at least one slot
// spanning the whole requested window.
const searchClassesSQL = `
	SELECT c.id, c.subject, c.cost, c.user_id,
	       u.id, u.name, u.avatar, u.whatsapp, u.bio
	FROM classes c
	JOIN users u ON u.id = c.user_id
	WHERE c.subject = $1
	  AND EXISTS (
	      SELECT 1
	      FROM class_schedule s
	      WHERE s.class_id = c.id
	        AND s.week_day = $2
	        AND s."from" <= $3
	        AND s."to" >= $4
	  )
	ORDER BY c.id
`

var scheduleColumns = []string{"week_day", "from", "to", "class_id"}

type ClassRepository struct {
	pool *pgxpool.Pool
}

func NewClassRepository(pool *pgxpool.Pool) *ClassRepository {
	return &ClassRepository{pool: pool}
}

func (r *ClassRepository) Search(ctx context.Context, subject string, window entity.SearchWindow) ([]entity.ClassListing, error) {
	rows, err := r.pool.Query(ctx, searchClassesSQL,
		subject, window.WeekDay, int32(window.From), int32(window.To))
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]entity.ClassListing, 0)
	for rows.Next() {
		var l entity.ClassListing
		if err := rows.Scan(&l.ID, &l.Subject, &l.Cost, &l.UserID,
			&l.User.ID, &l.User.Name, &l.User.Avatar, &l.User.Whatsapp, &l.User.Bio); err != nil {
			return nil, err
		}
		out = append(out, l)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

func (r *ClassRepository) Enroll(ctx context.Context, e *repository.Enrollment) error {
	tx, err := r.pool.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return fmt.Errorf("begin: %w", err)
	}
	// no-op once committed
	defer func() { _ = tx.Rollback(ctx) }()

	if err := tx.QueryRow(ctx, `
		INSERT INTO users (name, avatar, whatsapp, bio)
		VALUES ($1, $2, $3, $4)
		RETURNING id
	`, e.User.Name, e.User.Avatar, e.User.Whatsapp, e.User.Bio).Scan(&e.User.ID); err != nil {
		return fmt.Errorf("insert user: %w", err)
	}

	e.Class.UserID = e.User.ID
	if err := tx.QueryRow(ctx, `
		INSERT INTO classes (subject, cost, user_id)
		VALUES ($1, $2, $3)
		RETURNING id
	`, e.Class.Subject, e.Class.Cost, e.Class.UserID).Scan(&e.Class.ID); err != nil {
		return fmt.Errorf("insert class: %w", err)
	}

	if len(e.Schedule) > 0 {
		rows := make([][]any, 0, len(e.Schedule))
		for i := range e.Schedule {
			e.Schedule[i].ClassID = e.Class.ID
			s := e.Schedule[i]
			rows = append(rows, []any{int16(s.WeekDay), int32(s.From), int32(s.To), s.ClassID})
		}
		n, err := tx.CopyFrom(ctx, pgx.Identifier{"class_schedule"}, scheduleColumns, pgx.CopyFromRows(rows))
		if err != nil {
			return fmt.Errorf("insert schedule: %w", err)
		}
		if int(n) != len(rows) {
			return fmt.Errorf("insert schedule: copied %d of %d rows", n, len(rows))
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit: %w", err)
	}
	return nil
}

var _ repository.ClassRepository = (*ClassRepository)(nil)
