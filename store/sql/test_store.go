package sqlstore

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	repository "github.com/goliatone/go-repository-bun"
	"github.com/goliatone/go-testhooks/core"
	"github.com/google/uuid"
	"github.com/uptrace/bun"
)

type TestStore struct {
	db   *bun.DB
	repo repository.Repository[*testRecord]
}

func NewTestStore(db *bun.DB) (*TestStore, error) {
	if db == nil {
		return nil, fmt.Errorf("sqlstore: bun db is required")
	}
	repo := repository.NewRepository[*testRecord](db, testHandlers())
	if validator, ok := repo.(repository.Validator); ok {
		if err := validator.Validate(); err != nil {
			return nil, fmt.Errorf("sqlstore: invalid test repository wiring: %w", err)
		}
	}
	return &TestStore{
		db:   db,
		repo: repo,
	}, nil
}

func (s *TestStore) Create(ctx context.Context, in core.CreateTestInput) (core.Test, error) {
	if s == nil || s.repo == nil {
		return core.Test{}, fmt.Errorf("sqlstore: test store is not configured")
	}
	if err := in.Validate(); err != nil {
		return core.Test{}, err
	}

	record := newTestRecord(in, time.Now().UTC())
	record.ID = uuid.NewString()

	created, err := s.repo.Create(ctx, record)
	if err != nil {
		return core.Test{}, err
	}
	return created.toDomain(), nil
}

func (s *TestStore) GetByID(ctx context.Context, id string) (core.Test, error) {
	if s == nil || s.repo == nil {
		return core.Test{}, fmt.Errorf("sqlstore: test store is not configured")
	}
	trimmed := strings.TrimSpace(id)
	if trimmed == "" {
		return core.Test{}, core.ErrTestNotFound
	}
	record, err := s.repo.GetByID(ctx, trimmed)
	if err != nil {
		if isNoRows(err) {
			return core.Test{}, core.ErrTestNotFound
		}
		return core.Test{}, err
	}
	return record.toDomain(), nil
}

func (s *TestStore) ListScheduled(ctx context.Context) ([]core.Test, error) {
	if s == nil || s.repo == nil {
		return nil, fmt.Errorf("sqlstore: test store is not configured")
	}
	// Bind a real boolean so the dialect encodes it; sqlite stores
	// booleans as integers and a string literal would never match.
	records, _, err := s.repo.List(ctx,
		repository.SelectRawProcessor(func(q *bun.SelectQuery) *bun.SelectQuery {
			return q.Where("?TableAlias.scheduled = ?", true)
		}),
		repository.OrderBy("created_at ASC"),
	)
	if err != nil {
		return nil, err
	}

	out := make([]core.Test, 0, len(records))
	for _, record := range records {
		out = append(out, record.toDomain())
	}
	return out, nil
}

func (s *TestStore) ListByProject(ctx context.Context, projectID string) ([]core.Test, error) {
	if s == nil || s.repo == nil {
		return nil, fmt.Errorf("sqlstore: test store is not configured")
	}
	trimmed := strings.TrimSpace(projectID)
	if trimmed == "" {
		return nil, fmt.Errorf("sqlstore: project id is required")
	}
	records, _, err := s.repo.List(ctx,
		repository.SelectBy("project_id", "=", trimmed),
		repository.OrderBy("created_at ASC"),
	)
	if err != nil {
		return nil, err
	}

	out := make([]core.Test, 0, len(records))
	for _, record := range records {
		out = append(out, record.toDomain())
	}
	return out, nil
}

func isNoRows(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, sql.ErrNoRows) {
		return true
	}
	return strings.Contains(strings.ToLower(err.Error()), "no rows")
}
