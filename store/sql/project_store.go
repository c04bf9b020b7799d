package sqlstore

import (
	"context"
	"fmt"
	"strings"
	"time"

	repository "github.com/goliatone/go-repository-bun"
	"github.com/goliatone/go-testhooks/core"
	"github.com/google/uuid"
	"github.com/uptrace/bun"
)

type ProjectStore struct {
	db   *bun.DB
	repo repository.Repository[*projectRecord]
}

func NewProjectStore(db *bun.DB) (*ProjectStore, error) {
	if db == nil {
		return nil, fmt.Errorf("sqlstore: bun db is required")
	}
	repo := repository.NewRepository[*projectRecord](db, projectHandlers())
	if validator, ok := repo.(repository.Validator); ok {
		if err := validator.Validate(); err != nil {
			return nil, fmt.Errorf("sqlstore: invalid project repository wiring: %w", err)
		}
	}
	return &ProjectStore{
		db:   db,
		repo: repo,
	}, nil
}

func (s *ProjectStore) Create(ctx context.Context, in core.CreateProjectInput) (core.Project, error) {
	if s == nil || s.repo == nil {
		return core.Project{}, fmt.Errorf("sqlstore: project store is not configured")
	}
	if err := in.Validate(); err != nil {
		return core.Project{}, err
	}

	record := newProjectRecord(in, time.Now().UTC())
	record.ID = uuid.NewString()

	created, err := s.repo.Create(ctx, record)
	if err != nil {
		return core.Project{}, err
	}
	return created.toDomain(), nil
}

func (s *ProjectStore) GetByID(ctx context.Context, id string) (core.Project, error) {
	if s == nil || s.repo == nil {
		return core.Project{}, fmt.Errorf("sqlstore: project store is not configured")
	}
	trimmed := strings.TrimSpace(id)
	if trimmed == "" {
		return core.Project{}, core.ErrProjectNotFound
	}
	record, err := s.repo.GetByID(ctx, trimmed)
	if err != nil {
		if isNoRows(err) {
			return core.Project{}, core.ErrProjectNotFound
		}
		return core.Project{}, err
	}
	return record.toDomain(), nil
}

func (s *ProjectStore) ListByUser(ctx context.Context, userID string) ([]core.Project, error) {
	if s == nil || s.repo == nil {
		return nil, fmt.Errorf("sqlstore: project store is not configured")
	}
	trimmed := strings.TrimSpace(userID)
	if trimmed == "" {
		return nil, fmt.Errorf("sqlstore: user id is required")
	}
	records, _, err := s.repo.List(ctx,
		repository.SelectBy("user_id", "=", trimmed),
		repository.OrderBy("created_at ASC"),
	)
	if err != nil {
		return nil, err
	}

	out := make([]core.Project, 0, len(records))
	for _, record := range records {
		out = append(out, record.toDomain())
	}
	return out, nil
}
