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

// ResultStore is append only. Rows are never updated or deleted once written.
type ResultStore struct {
	db   *bun.DB
	repo repository.Repository[*testResultRecord]
}

func NewResultStore(db *bun.DB) (*ResultStore, error) {
	if db == nil {
		return nil, fmt.Errorf("sqlstore: bun db is required")
	}
	repo := repository.NewRepository[*testResultRecord](db, testResultHandlers())
	if validator, ok := repo.(repository.Validator); ok {
		if err := validator.Validate(); err != nil {
			return nil, fmt.Errorf("sqlstore: invalid test result repository wiring: %w", err)
		}
	}
	return &ResultStore{
		db:   db,
		repo: repo,
	}, nil
}

func (s *ResultStore) Insert(ctx context.Context, in core.InsertResultInput) (core.TestResult, error) {
	if s == nil || s.repo == nil {
		return core.TestResult{}, fmt.Errorf("sqlstore: result store is not configured")
	}
	if strings.TrimSpace(in.TestID) == "" {
		return core.TestResult{}, fmt.Errorf("sqlstore: test id is required")
	}
	if err := in.Status.Validate(); err != nil {
		return core.TestResult{}, err
	}

	record := newTestResultRecord(in, time.Now().UTC())
	record.ID = uuid.NewString()

	created, err := s.repo.Create(ctx, record)
	if err != nil {
		return core.TestResult{}, err
	}
	return created.toDomain(), nil
}

func (s *ResultStore) ListByTest(ctx context.Context, testID string) ([]core.TestResult, error) {
	if s == nil || s.repo == nil {
		return nil, fmt.Errorf("sqlstore: result store is not configured")
	}
	trimmed := strings.TrimSpace(testID)
	if trimmed == "" {
		return nil, fmt.Errorf("sqlstore: test id is required")
	}
	records, _, err := s.repo.List(ctx,
		repository.SelectBy("test_id", "=", trimmed),
		repository.OrderBy("created_at DESC"),
	)
	if err != nil {
		return nil, err
	}

	out := make([]core.TestResult, 0, len(records))
	for _, record := range records {
		out = append(out, record.toDomain())
	}
	return out, nil
}
