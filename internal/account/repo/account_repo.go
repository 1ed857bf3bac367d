package repo

import (
	"context"
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"

	"github.com/Hanif8193/Hakathon-Todo/internal/account/entity"
)

// ErrDuplicateEmail is returned when an insert trips the unique email
// index. Uniqueness lives in the database, not in a check-then-insert,
// so two concurrent signups with the same email cannot both succeed.
var ErrDuplicateEmail = errors.New("email already registered")

// Repository provides data access for accounts.
type Repository interface {
	Create(ctx context.Context, a *entity.Account) (*entity.Account, error)
	GetByEmail(ctx context.Context, email string) (*entity.Account, error)
}

// PostgresRepository implements Repository using sqlx over lib/pq.
type PostgresRepository struct {
	db *sqlx.DB
}

func NewPostgresRepository(db *sqlx.DB) *PostgresRepository {
	return &PostgresRepository{db: db}
}

const uniqueViolation = "23505"

func (r *PostgresRepository) Create(ctx context.Context, a *entity.Account) (*entity.Account, error) {
	const q = `INSERT INTO accounts (id, email, password_hash)
		VALUES ($1, $2, $3)
		RETURNING created_at`

	err := r.db.QueryRowxContext(ctx, q, a.ID, a.Email, a.PasswordHash).Scan(&a.CreatedAt)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code == uniqueViolation {
			return nil, ErrDuplicateEmail
		}
		return nil, fmt.Errorf("insert account: %w", err)
	}
	return a, nil
}

// GetByEmail returns the account for a normalized email, or
// sql.ErrNoRows when no such account exists.
func (r *PostgresRepository) GetByEmail(ctx context.Context, email string) (*entity.Account, error) {
	const q = `SELECT id, email, password_hash, created_at FROM accounts WHERE email = $1`

	var a entity.Account
	if err := r.db.GetContext(ctx, &a, q, email); err != nil {
		return nil, err
	}
	return &a, nil
}
