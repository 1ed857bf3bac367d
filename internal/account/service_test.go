package account

import (
	"context"
	"database/sql"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Hanif8193/Hakathon-Todo/internal/account/entity"
	accountrepo "github.com/Hanif8193/Hakathon-Todo/internal/account/repo"
	"github.com/Hanif8193/Hakathon-Todo/internal/auth"
)

// memRepo is an in-memory Repository keyed by email.
type memRepo struct {
	byEmail map[string]*entity.Account
}

func newMemRepo() *memRepo {
	return &memRepo{byEmail: make(map[string]*entity.Account)}
}

func (m *memRepo) Create(ctx context.Context, a *entity.Account) (*entity.Account, error) {
	if _, ok := m.byEmail[a.Email]; ok {
		return nil, accountrepo.ErrDuplicateEmail
	}
	a.CreatedAt = time.Now()
	m.byEmail[a.Email] = a
	return a, nil
}

func (m *memRepo) GetByEmail(ctx context.Context, email string) (*entity.Account, error) {
	a, ok := m.byEmail[email]
	if !ok {
		return nil, sql.ErrNoRows
	}
	return a, nil
}

func newTestService(repo accountrepo.Repository) *Service {
	tokens := auth.NewTokens(auth.Config{
		Secret:   strings.Repeat("k", auth.MinSecretLen),
		TokenTTL: time.Hour,
	})
	// MinCost keeps the hashing fast in tests
	return NewService(repo, BcryptHasher{Cost: 4}, tokens)
}

func TestSignup_Success(t *testing.T) {
	t.Parallel()

	svc := newTestService(newMemRepo())
	res, err := svc.Signup(context.Background(), "  Alice@Example.COM ", "password123")
	require.NoError(t, err)

	assert.Equal(t, "alice@example.com", res.Account.Email, "email is normalized")
	assert.NotEmpty(t, res.Account.ID)
	assert.NotEmpty(t, res.Token)
	assert.NotContains(t, res.Account.PasswordHash, "password123", "hash never contains the password")
}

func TestSignup_TokenIsUsable(t *testing.T) {
	t.Parallel()

	tokens := auth.NewTokens(auth.Config{Secret: strings.Repeat("k", auth.MinSecretLen), TokenTTL: time.Hour})
	svc := NewService(newMemRepo(), BcryptHasher{Cost: 4}, tokens)

	res, err := svc.Signup(context.Background(), "bob@example.com", "password123")
	require.NoError(t, err)

	sub, err := tokens.Verify(res.Token)
	require.NoError(t, err)
	assert.Equal(t, res.Account.ID, sub)
}

func TestSignup_DuplicateEmail(t *testing.T) {
	t.Parallel()

	svc := newTestService(newMemRepo())
	_, err := svc.Signup(context.Background(), "alice@example.com", "password123")
	require.NoError(t, err)

	_, err = svc.Signup(context.Background(), "ALICE@example.com", "password456")
	assert.ErrorIs(t, err, ErrEmailTaken)
}

func TestSignup_Validation(t *testing.T) {
	t.Parallel()

	svc := newTestService(newMemRepo())
	tests := []struct {
		name     string
		email    string
		password string
		want     error
	}{
		{"empty email", "", "password123", ErrInvalidEmail},
		{"no at sign", "not-an-email", "password123", ErrInvalidEmail},
		{"at sign first", "@example.com", "password123", ErrInvalidEmail},
		{"at sign last", "alice@", "password123", ErrInvalidEmail},
		{"email too long", strings.Repeat("a", 250) + "@example.com", "password123", ErrInvalidEmail},
		{"password too short", "alice@example.com", "short", ErrWeakPassword},
		{"password too long", "alice@example.com", strings.Repeat("p", 129), ErrWeakPassword},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.Signup(context.Background(), tt.email, tt.password)
			assert.ErrorIs(t, err, tt.want)
		})
	}
}

func TestLogin_Success(t *testing.T) {
	t.Parallel()

	svc := newTestService(newMemRepo())
	created, err := svc.Signup(context.Background(), "alice@example.com", "password123")
	require.NoError(t, err)

	res, err := svc.Login(context.Background(), "Alice@Example.com", "password123")
	require.NoError(t, err)
	assert.Equal(t, created.Account.ID, res.Account.ID)
	assert.NotEmpty(t, res.Token)
}

func TestLogin_NoEnumeration(t *testing.T) {
	t.Parallel()

	svc := newTestService(newMemRepo())
	_, err := svc.Signup(context.Background(), "alice@example.com", "password123")
	require.NoError(t, err)

	_, errUnknown := svc.Login(context.Background(), "nobody@example.com", "password123")
	_, errWrongPw := svc.Login(context.Background(), "alice@example.com", "wrong-password")

	// unknown account and wrong password are indistinguishable
	assert.ErrorIs(t, errUnknown, ErrBadCredentials)
	assert.ErrorIs(t, errWrongPw, ErrBadCredentials)
	assert.Equal(t, errUnknown, errWrongPw)
}

func TestLogin_MalformedEmail(t *testing.T) {
	t.Parallel()

	svc := newTestService(newMemRepo())
	_, err := svc.Login(context.Background(), "not-an-email", "password123")
	assert.ErrorIs(t, err, ErrBadCredentials)
}
