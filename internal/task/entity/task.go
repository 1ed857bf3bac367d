package entity

import "time"

// Task is a todo item owned by exactly one account. OwnerID is set at
// creation and never changes; every query against tasks is conditioned
// on it.
type Task struct {
	ID          string    `db:"id" json:"id"`
	OwnerID     string    `db:"owner_id" json:"user_id"`
	Title       string    `db:"title" json:"title"`
	Description string    `db:"description" json:"description"`
	Completed   bool      `db:"completed" json:"completed"`
	CreatedAt   time.Time `db:"created_at" json:"created_at"`
	UpdatedAt   time.Time `db:"updated_at" json:"updated_at"`
}
