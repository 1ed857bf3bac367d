// Package account implements signup and login: credential storage,
// password verification, and token issuance on success.
package account

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"golang.org/x/crypto/bcrypt"

	"github.com/Hanif8193/Hakathon-Todo/internal/account/entity"
	accountrepo "github.com/Hanif8193/Hakathon-Todo/internal/account/repo"
	"github.com/Hanif8193/Hakathon-Todo/internal/auth"
	"github.com/Hanif8193/Hakathon-Todo/pkg/utilities"
)

var (
	ErrEmailTaken     = errors.New("email already registered")
	ErrBadCredentials = errors.New("invalid email or password")
	ErrInvalidEmail   = errors.New("email must be a valid address of at most 255 characters")
	ErrWeakPassword   = errors.New("password must be between 8 and 128 characters")
)

// PasswordHasher abstracts the hashing primitive so it can be swapped
// (or cheapened in tests) without touching the flows around it.
type PasswordHasher interface {
	Hash(pw string) (string, error)
	Verify(hash, pw string) bool
}

// BcryptHasher implementation.
type BcryptHasher struct{ Cost int }

func (b BcryptHasher) Hash(pw string) (string, error) {
	cost := b.Cost
	if cost == 0 {
		cost = bcrypt.DefaultCost
	}
	h, err := bcrypt.GenerateFromPassword([]byte(pw), cost)
	if err != nil {
		return "", err
	}
	return string(h), nil
}

func (b BcryptHasher) Verify(hash, pw string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(pw)) == nil
}

// AuthResult is what both signup and login hand back: the account plus
// a token it can immediately authenticate with.
type AuthResult struct {
	Account *entity.Account
	Token   string
}

// Service orchestrates the credential flows.
type Service struct {
	repo   accountrepo.Repository
	hasher PasswordHasher
	tokens *auth.Tokens
}

func NewService(repo accountrepo.Repository, hasher PasswordHasher, tokens *auth.Tokens) *Service {
	if hasher == nil {
		hasher = BcryptHasher{Cost: 12}
	}
	return &Service{repo: repo, hasher: hasher, tokens: tokens}
}

// Signup creates an account and logs it in. The unique index is the
// only duplicate check; a concurrent signup racing this one surfaces
// as ErrEmailTaken from the insert.
func (s *Service) Signup(ctx context.Context, email, password string) (*AuthResult, error) {
	email, err := normalizeEmail(email)
	if err != nil {
		return nil, err
	}
	if len(password) < 8 || len(password) > 128 {
		return nil, ErrWeakPassword
	}

	hash, err := s.hasher.Hash(password)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	a := &entity.Account{
		ID:           utilities.NewID(),
		Email:        email,
		PasswordHash: hash,
	}
	a, err = s.repo.Create(ctx, a)
	if err != nil {
		if errors.Is(err, accountrepo.ErrDuplicateEmail) {
			return nil, ErrEmailTaken
		}
		return nil, err
	}

	return s.issueFor(a)
}

// Login authenticates by email and password. An unknown email and a
// wrong password take the same path to the same error so callers
// cannot probe which emails are registered.
func (s *Service) Login(ctx context.Context, email, password string) (*AuthResult, error) {
	email, err := normalizeEmail(email)
	if err != nil {
		return nil, ErrBadCredentials
	}

	a, err := s.repo.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrBadCredentials
		}
		return nil, err
	}

	if !s.hasher.Verify(a.PasswordHash, password) {
		return nil, ErrBadCredentials
	}

	return s.issueFor(a)
}

func (s *Service) issueFor(a *entity.Account) (*AuthResult, error) {
	tok, err := s.tokens.Issue(a.ID, a.Email)
	if err != nil {
		return nil, fmt.Errorf("issue token: %w", err)
	}
	return &AuthResult{Account: a, Token: tok}, nil
}

func normalizeEmail(email string) (string, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	at := strings.Index(email, "@")
	if email == "" || len(email) > 255 || at < 1 || at == len(email)-1 {
		return "", ErrInvalidEmail
	}
	return email, nil
}
