// Package task implements the owner-scoped task CRUD: input validation
// in the service, isolation in the repository's SQL conditions.
package task

import (
	"context"
	"database/sql"
	"errors"
	"strings"
	"unicode/utf8"

	"github.com/Hanif8193/Hakathon-Todo/internal/task/entity"
	taskrepo "github.com/Hanif8193/Hakathon-Todo/internal/task/repo"
	"github.com/Hanif8193/Hakathon-Todo/pkg/utilities"
)

const (
	maxTitleLen       = 200
	maxDescriptionLen = 2000
)

var (
	// ErrNotFound covers both an absent row and a row owned by a
	// different account; callers cannot tell the two apart.
	ErrNotFound = errors.New("task not found")

	ErrInvalidTitle       = errors.New("title must be between 1 and 200 characters")
	ErrInvalidDescription = errors.New("description must be at most 2000 characters")
)

// Service validates input and delegates to the repository. It holds no
// state of its own; the owner ID is an explicit parameter on every
// call so the scoping is visible at each call site.
type Service struct {
	repo taskrepo.Repository
}

func NewService(repo taskrepo.Repository) *Service {
	return &Service{repo: repo}
}

func (s *Service) Create(ctx context.Context, ownerID, title, description string) (*entity.Task, error) {
	title, err := validTitle(title)
	if err != nil {
		return nil, err
	}
	description, err = validDescription(description)
	if err != nil {
		return nil, err
	}

	t := &entity.Task{
		ID:          utilities.NewID(),
		OwnerID:     ownerID,
		Title:       title,
		Description: description,
	}
	return s.repo.Create(ctx, t)
}

func (s *Service) List(ctx context.Context, ownerID string) ([]*entity.Task, error) {
	return s.repo.ListByOwner(ctx, ownerID)
}

func (s *Service) Get(ctx context.Context, ownerID, id string) (*entity.Task, error) {
	t, err := s.repo.GetByID(ctx, ownerID, id)
	if err != nil {
		return nil, mapNoRows(err)
	}
	return t, nil
}

// Update applies a partial update: nil fields stay unchanged.
func (s *Service) Update(ctx context.Context, ownerID, id string, title, description *string) (*entity.Task, error) {
	if title != nil {
		v, err := validTitle(*title)
		if err != nil {
			return nil, err
		}
		title = &v
	}
	if description != nil {
		v, err := validDescription(*description)
		if err != nil {
			return nil, err
		}
		description = &v
	}

	t, err := s.repo.Update(ctx, ownerID, id, title, description)
	if err != nil {
		return nil, mapNoRows(err)
	}
	return t, nil
}

func (s *Service) ToggleCompletion(ctx context.Context, ownerID, id string) (*entity.Task, error) {
	t, err := s.repo.ToggleCompletion(ctx, ownerID, id)
	if err != nil {
		return nil, mapNoRows(err)
	}
	return t, nil
}

func (s *Service) Delete(ctx context.Context, ownerID, id string) error {
	if err := s.repo.Delete(ctx, ownerID, id); err != nil {
		return mapNoRows(err)
	}
	return nil
}

func mapNoRows(err error) error {
	if errors.Is(err, sql.ErrNoRows) {
		return ErrNotFound
	}
	return err
}

func validTitle(title string) (string, error) {
	title = strings.TrimSpace(title)
	if title == "" || utf8.RuneCountInString(title) > maxTitleLen {
		return "", ErrInvalidTitle
	}
	return title, nil
}

func validDescription(description string) (string, error) {
	description = strings.TrimSpace(description)
	if utf8.RuneCountInString(description) > maxDescriptionLen {
		return "", ErrInvalidDescription
	}
	return description, nil
}
