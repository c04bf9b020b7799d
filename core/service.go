package core

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	glog "github.com/goliatone/go-logger/glog"
)

// Service is the run coordinator: it decides which tests run, invokes the
// dispatcher for each, and appends exactly one result row per dispatch
// attempt. Batches are processed sequentially so persistence order matches
// input order; that caps throughput and is a deliberate trade for the
// ordering guarantee at the volumes this engine targets.
type Service struct {
	config   Config
	logger   Logger
	metrics  MetricsRecorder
	mapError ErrorMapper

	dispatcher Dispatcher
	tests      TestStore
	results    ResultStore
	projects   ProjectStore
	identities IdentityStore

	now func() time.Time
}

func NewService(cfg Config, options ...Option) (*Service, error) {
	builder := defaultServiceBuilder(cfg)
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(&builder)
	}

	provider, logger := glog.Resolve("testhooks", builder.loggerProvider, builder.logger)
	logger = glog.Ensure(logger)
	if provider != nil {
		if named := provider.GetLogger("testhooks"); named != nil {
			logger = glog.Ensure(named)
		}
	}

	if builder.metricsRecorder == nil {
		builder.metricsRecorder = NopMetricsRecorder{}
	}
	if builder.errorMapper == nil {
		builder.errorMapper = defaultErrorMapper
	}
	if builder.configProvider == nil {
		builder.configProvider = NewCfgxConfigProvider(nil)
	}
	if builder.optionsResolver == nil {
		builder.optionsResolver = GoOptionsResolver{}
	}

	defaults := DefaultConfig()
	loaded, err := builder.configProvider.Load(context.Background(), defaults)
	if err != nil {
		return nil, builder.errorMapper(err)
	}
	finalConfig, err := builder.optionsResolver.Resolve(defaults, loaded, builder.runtimeConfig)
	if err != nil {
		return nil, builder.errorMapper(err)
	}

	if builder.storeProvider != nil {
		if builder.testStore == nil {
			builder.testStore = builder.storeProvider.TestStore()
		}
		if builder.resultStore == nil {
			builder.resultStore = builder.storeProvider.ResultStore()
		}
		if builder.projectStore == nil {
			builder.projectStore = builder.storeProvider.ProjectStore()
		}
		if builder.identityStore == nil {
			builder.identityStore = builder.storeProvider.IdentityStore()
		}
	}

	if builder.testStore == nil {
		return nil, builder.errorMapper(fmt.Errorf("core: test store is required"))
	}
	if builder.resultStore == nil {
		return nil, builder.errorMapper(fmt.Errorf("core: result store is required"))
	}
	if builder.dispatcher == nil {
		return nil, builder.errorMapper(fmt.Errorf("core: dispatcher is required"))
	}

	return &Service{
		config:     finalConfig,
		logger:     logger,
		metrics:    builder.metricsRecorder,
		mapError:   builder.errorMapper,
		dispatcher: builder.dispatcher,
		tests:      builder.testStore,
		results:    builder.resultStore,
		projects:   builder.projectStore,
		identities: builder.identityStore,
		now: func() time.Time {
			return time.Now().UTC()
		},
	}, nil
}

func (s *Service) Config() Config {
	if s == nil {
		return Config{}
	}
	return s.config
}

// RunBatch dispatches every test in input order and persists one result per
// attempt. A failed dispatch becomes a failed row and the batch continues; a
// failed insert is collected and surfaced after the loop, still without
// stopping the remaining tests.
func (s *Service) RunBatch(ctx context.Context, tests []Test) ([]TestResult, error) {
	if s == nil {
		return nil, fmt.Errorf("core: service is nil")
	}
	startedAt := s.now()
	results := make([]TestResult, 0, len(tests))

	var insertErr error
	for _, test := range tests {
		outcome := s.dispatcher.Dispatch(ctx, test)
		result, err := s.results.Insert(ctx, InsertResultInput{
			TestID:  test.ID,
			Status:  outcome.Status,
			Payload: outcome.Payload,
		})
		if err != nil {
			insertErr = joinErrors(insertErr, fmt.Errorf("core: persist result for test %q: %w", test.ID, err))
			continue
		}
		results = append(results, result)
	}

	s.observeOperation(ctx, startedAt, "run_batch", insertErr, map[string]any{
		"batch_size": len(tests),
		"persisted":  len(results),
	})
	if insertErr != nil {
		return results, s.mapError(insertErr)
	}
	return results, nil
}

// RunTest is the one-element case of RunBatch.
func (s *Service) RunTest(ctx context.Context, testID string) (TestResult, error) {
	if s == nil {
		return TestResult{}, fmt.Errorf("core: service is nil")
	}
	trimmed := strings.TrimSpace(testID)
	if trimmed == "" {
		return TestResult{}, s.mapError(fmt.Errorf("core: test id is required"))
	}
	test, err := s.tests.GetByID(ctx, trimmed)
	if err != nil {
		return TestResult{}, s.mapError(err)
	}
	results, err := s.RunBatch(ctx, []Test{test})
	if err != nil {
		return TestResult{}, err
	}
	if len(results) != 1 {
		return TestResult{}, s.mapError(fmt.Errorf("core: expected one result for test %q, got %d", trimmed, len(results)))
	}
	return results[0], nil
}

// RunProject runs every test belonging to the project. An empty test set
// returns an empty slice; the route layer decides whether that is a 404.
func (s *Service) RunProject(ctx context.Context, projectID string) ([]TestResult, error) {
	if s == nil {
		return nil, fmt.Errorf("core: service is nil")
	}
	trimmed := strings.TrimSpace(projectID)
	if trimmed == "" {
		return nil, s.mapError(fmt.Errorf("core: project id is required"))
	}
	tests, err := s.tests.ListByProject(ctx, trimmed)
	if err != nil {
		return nil, s.mapError(err)
	}
	return s.RunBatch(ctx, tests)
}

// RunScheduled runs every test flagged scheduled as one batch. Called by the
// periodic trigger; the scheduler logs and swallows the returned error so the
// next tick still fires.
func (s *Service) RunScheduled(ctx context.Context) ([]TestResult, error) {
	if s == nil {
		return nil, fmt.Errorf("core: service is nil")
	}
	tests, err := s.tests.ListScheduled(ctx)
	if err != nil {
		return nil, s.mapError(fmt.Errorf("core: list scheduled tests: %w", err))
	}
	return s.RunBatch(ctx, tests)
}

// ReportResult persists an asynchronously reported outcome. The referenced
// test must exist and the status must be a member of the result enum; the
// payload is stored verbatim.
func (s *Service) ReportResult(ctx context.Context, in ReportResultInput) (TestResult, error) {
	if s == nil {
		return TestResult{}, fmt.Errorf("core: service is nil")
	}
	startedAt := s.now()
	testID := strings.TrimSpace(in.TestID)
	if testID == "" {
		return TestResult{}, s.mapError(fmt.Errorf("core: test id is required"))
	}
	status, err := ParseResultStatus(in.Status)
	if err != nil {
		return TestResult{}, s.mapError(err)
	}
	if _, err := s.tests.GetByID(ctx, testID); err != nil {
		return TestResult{}, s.mapError(err)
	}
	result, err := s.results.Insert(ctx, InsertResultInput{
		TestID:  testID,
		Status:  status,
		Payload: in.Payload,
	})
	s.observeOperation(ctx, startedAt, "report_result", err, map[string]any{
		"test_id": testID,
		"status":  string(status),
	})
	if err != nil {
		return TestResult{}, s.mapError(err)
	}
	return result, nil
}

// ListResults returns the accumulated results for a test, newest first.
func (s *Service) ListResults(ctx context.Context, testID string) ([]TestResult, error) {
	if s == nil {
		return nil, fmt.Errorf("core: service is nil")
	}
	trimmed := strings.TrimSpace(testID)
	if trimmed == "" {
		return nil, s.mapError(fmt.Errorf("core: test id is required"))
	}
	results, err := s.results.ListByTest(ctx, trimmed)
	if err != nil {
		return nil, s.mapError(err)
	}
	return results, nil
}

func (s *Service) GetTest(ctx context.Context, testID string) (Test, error) {
	if s == nil {
		return Test{}, fmt.Errorf("core: service is nil")
	}
	test, err := s.tests.GetByID(ctx, strings.TrimSpace(testID))
	if err != nil {
		return Test{}, s.mapError(err)
	}
	return test, nil
}

func (s *Service) CreateTest(ctx context.Context, in CreateTestInput) (Test, error) {
	if s == nil {
		return Test{}, fmt.Errorf("core: service is nil")
	}
	if err := in.Validate(); err != nil {
		return Test{}, s.mapError(err)
	}
	test, err := s.tests.Create(ctx, in)
	if err != nil {
		return Test{}, s.mapError(err)
	}
	return test, nil
}

func (s *Service) CreateProject(ctx context.Context, in CreateProjectInput) (Project, error) {
	if s == nil {
		return Project{}, fmt.Errorf("core: service is nil")
	}
	if s.projects == nil {
		return Project{}, s.mapError(fmt.Errorf("core: project store is not configured"))
	}
	if err := in.Validate(); err != nil {
		return Project{}, s.mapError(err)
	}
	project, err := s.projects.Create(ctx, in)
	if err != nil {
		return Project{}, s.mapError(err)
	}
	return project, nil
}

func (s *Service) ListProjects(ctx context.Context, userID string) ([]Project, error) {
	if s == nil {
		return nil, fmt.Errorf("core: service is nil")
	}
	if s.projects == nil {
		return nil, s.mapError(fmt.Errorf("core: project store is not configured"))
	}
	trimmed := strings.TrimSpace(userID)
	if trimmed == "" {
		return nil, s.mapError(fmt.Errorf("core: user id is required"))
	}
	projects, err := s.projects.ListByUser(ctx, trimmed)
	if err != nil {
		return nil, s.mapError(err)
	}
	return projects, nil
}

func (s *Service) CreateUser(ctx context.Context, in CreateUserInput) (User, error) {
	if s == nil {
		return User{}, fmt.Errorf("core: service is nil")
	}
	if s.identities == nil {
		return User{}, s.mapError(fmt.Errorf("core: identity store is not configured"))
	}
	if err := in.Validate(); err != nil {
		return User{}, s.mapError(err)
	}
	user, err := s.identities.Create(ctx, in)
	if err != nil {
		return User{}, s.mapError(err)
	}
	return user, nil
}

func joinErrors(existing error, next error) error {
	if existing == nil {
		return next
	}
	if next == nil {
		return existing
	}
	return errors.Join(existing, next)
}
