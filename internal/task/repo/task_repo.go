// Package repo persists tasks. Every statement here carries the owner
// in its WHERE clause, so the ownership check and the mutation are one
// atomic round trip; there is no window between "verify owner" and
// "apply change" for another request to slip through. A row owned by
// someone else is indistinguishable from a row that does not exist:
// both come back as sql.ErrNoRows.
package repo

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/Hanif8193/Hakathon-Todo/internal/task/entity"
)

// Repository provides owner-scoped data access for tasks.
type Repository interface {
	Create(ctx context.Context, t *entity.Task) (*entity.Task, error)
	ListByOwner(ctx context.Context, ownerID string) ([]*entity.Task, error)
	GetByID(ctx context.Context, ownerID, id string) (*entity.Task, error)
	Update(ctx context.Context, ownerID, id string, title, description *string) (*entity.Task, error)
	ToggleCompletion(ctx context.Context, ownerID, id string) (*entity.Task, error)
	Delete(ctx context.Context, ownerID, id string) error
}

// PostgresRepository implements Repository using sqlx over lib/pq.
type PostgresRepository struct {
	db *sqlx.DB
}

func NewPostgresRepository(db *sqlx.DB) *PostgresRepository {
	return &PostgresRepository{db: db}
}

const taskColumns = `id, owner_id, title, description, completed, created_at, updated_at`

func (r *PostgresRepository) Create(ctx context.Context, t *entity.Task) (*entity.Task, error) {
	const q = `INSERT INTO tasks (id, owner_id, title, description)
		VALUES ($1, $2, $3, $4)
		RETURNING completed, created_at, updated_at`

	err := r.db.QueryRowxContext(ctx, q, t.ID, t.OwnerID, t.Title, t.Description).
		Scan(&t.Completed, &t.CreatedAt, &t.UpdatedAt)
	if err != nil {
		return nil, fmt.Errorf("insert task: %w", err)
	}
	return t, nil
}

func (r *PostgresRepository) ListByOwner(ctx context.Context, ownerID string) ([]*entity.Task, error) {
	const q = `SELECT ` + taskColumns + ` FROM tasks
		WHERE owner_id = $1
		ORDER BY created_at DESC, id DESC`

	tasks := []*entity.Task{}
	if err := r.db.SelectContext(ctx, &tasks, q, ownerID); err != nil {
		return nil, fmt.Errorf("list tasks: %w", err)
	}
	return tasks, nil
}

func (r *PostgresRepository) GetByID(ctx context.Context, ownerID, id string) (*entity.Task, error) {
	const q = `SELECT ` + taskColumns + ` FROM tasks WHERE id = $1 AND owner_id = $2`

	var t entity.Task
	if err := r.db.GetContext(ctx, &t, q, id, ownerID); err != nil {
		return nil, err
	}
	return &t, nil
}

// Update applies a partial update in a single conditional statement.
// Nil title/description leave the stored value untouched.
func (r *PostgresRepository) Update(ctx context.Context, ownerID, id string, title, description *string) (*entity.Task, error) {
	const q = `UPDATE tasks
		SET title = COALESCE($3, title),
		    description = COALESCE($4, description),
		    updated_at = NOW()
		WHERE id = $1 AND owner_id = $2
		RETURNING ` + taskColumns

	var t entity.Task
	if err := r.db.QueryRowxContext(ctx, q, id, ownerID, title, description).StructScan(&t); err != nil {
		return nil, err
	}
	return &t, nil
}

func (r *PostgresRepository) ToggleCompletion(ctx context.Context, ownerID, id string) (*entity.Task, error) {
	const q = `UPDATE tasks
		SET completed = NOT completed,
		    updated_at = NOW()
		WHERE id = $1 AND owner_id = $2
		RETURNING ` + taskColumns

	var t entity.Task
	if err := r.db.QueryRowxContext(ctx, q, id, ownerID).StructScan(&t); err != nil {
		return nil, err
	}
	return &t, nil
}

func (r *PostgresRepository) Delete(ctx context.Context, ownerID, id string) error {
	const q = `DELETE FROM tasks WHERE id = $1 AND owner_id = $2`

	res, err := r.db.ExecContext(ctx, q, id, ownerID)
	if err != nil {
		return fmt.Errorf("delete task: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("delete task: %w", err)
	}
	if n == 0 {
		return sql.ErrNoRows
	}
	return nil
}
