package entity

import "time"

// Account is a registered user identified by a unique, lower-cased
// email. PasswordHash is a bcrypt digest and must never appear in
// logs or responses.
type Account struct {
	ID           string    `db:"id" json:"id"`
	Email        string    `db:"email" json:"email"`
	PasswordHash string    `db:"password_hash" json:"-"`
	CreatedAt    time.Time `db:"created_at" json:"created_at"`
}
