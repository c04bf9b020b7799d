package core

import (
	"context"

	glog "github.com/goliatone/go-logger/glog"
)

// Logger aliases keep the rest of the module decoupled from the logging
// library while matching its call conventions.
type Logger = glog.Logger

type LoggerProvider = glog.LoggerProvider

type FieldsLogger = glog.FieldsLogger

// TestStore is the consumed test catalogue. Tests are immutable after Create,
// so implementations are free to cache reads.
type TestStore interface {
	Create(ctx context.Context, in CreateTestInput) (Test, error)
	GetByID(ctx context.Context, id string) (Test, error)
	ListScheduled(ctx context.Context) ([]Test, error)
	ListByProject(ctx context.Context, projectID string) ([]Test, error)
}

// ResultStore is append-only: inserts and ordered reads, nothing else. It must
// tolerate concurrent inserts for the same or different tests; atomicity comes
// from the persistence layer, not an application lock.
type ResultStore interface {
	Insert(ctx context.Context, in InsertResultInput) (TestResult, error)
	ListByTest(ctx context.Context, testID string) ([]TestResult, error)
}

type ProjectStore interface {
	Create(ctx context.Context, in CreateProjectInput) (Project, error)
	GetByID(ctx context.Context, id string) (Project, error)
	ListByUser(ctx context.Context, userID string) ([]Project, error)
}

// IdentityStore resolves inbound callback credentials to their owning user.
type IdentityStore interface {
	Create(ctx context.Context, in CreateUserInput) (User, error)
	FindByAPIKey(ctx context.Context, key string) (User, error)
}

// Dispatcher performs one outbound webhook call and classifies the outcome.
// It never returns an error: every call resolves to an Outcome value.
type Dispatcher interface {
	Dispatch(ctx context.Context, test Test) Outcome
}

// StoreProvider exposes the full store set, typically backed by the sql
// repository factory.
type StoreProvider interface {
	TestStore() TestStore
	ResultStore() ResultStore
	ProjectStore() ProjectStore
	IdentityStore() IdentityStore
}

type MetricsRecorder interface {
	IncCounter(ctx context.Context, name string, value int64, tags map[string]string)
	ObserveHistogram(ctx context.Context, name string, value float64, tags map[string]string)
}

type NopMetricsRecorder struct{}

func (NopMetricsRecorder) IncCounter(context.Context, string, int64, map[string]string) {}

func (NopMetricsRecorder) ObserveHistogram(context.Context, string, float64, map[string]string) {}
