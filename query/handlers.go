package query

import (
	"context"

	"github.com/goliatone/go-testhooks/core"
)

type TestReader interface {
	GetTest(ctx context.Context, testID string) (core.Test, error)
}

type ResultReader interface {
	ListResults(ctx context.Context, testID string) ([]core.TestResult, error)
}

type ProjectReader interface {
	ListProjects(ctx context.Context, userID string) ([]core.Project, error)
}

type GetTestQuery struct {
	reader TestReader
}

func NewGetTestQuery(reader TestReader) *GetTestQuery {
	return &GetTestQuery{reader: reader}
}

func (q *GetTestQuery) Query(ctx context.Context, msg GetTestMessage) (core.Test, error) {
	if q == nil || q.reader == nil {
		return core.Test{}, queryDependencyError("query: test reader is required")
	}
	return q.reader.GetTest(ctx, msg.TestID)
}

type ListResultsQuery struct {
	reader ResultReader
}

func NewListResultsQuery(reader ResultReader) *ListResultsQuery {
	return &ListResultsQuery{reader: reader}
}

func (q *ListResultsQuery) Query(ctx context.Context, msg ListResultsMessage) ([]core.TestResult, error) {
	if q == nil || q.reader == nil {
		return nil, queryDependencyError("query: result reader is required")
	}
	return q.reader.ListResults(ctx, msg.TestID)
}

type ListProjectsQuery struct {
	reader ProjectReader
}

func NewListProjectsQuery(reader ProjectReader) *ListProjectsQuery {
	return &ListProjectsQuery{reader: reader}
}

func (q *ListProjectsQuery) Query(ctx context.Context, msg ListProjectsMessage) ([]core.Project, error) {
	if q == nil || q.reader == nil {
		return nil, queryDependencyError("query: project reader is required")
	}
	return q.reader.ListProjects(ctx, msg.UserID)
}
