package testhooks

import "github.com/goliatone/go-testhooks/core"

type Config = core.Config

type DispatchConfig = core.DispatchConfig

type SchedulerConfig = core.SchedulerConfig

type Option = core.Option

type Service = core.Service

type Test = core.Test
type TestResult = core.TestResult
type Project = core.Project
type User = core.User
type Outcome = core.Outcome
type ResultStatus = core.ResultStatus

type TestStore = core.TestStore
type ResultStore = core.ResultStore
type ProjectStore = core.ProjectStore
type IdentityStore = core.IdentityStore
type Dispatcher = core.Dispatcher
type StoreProvider = core.StoreProvider

var (
	WithLogger          = core.WithLogger
	WithLoggerProvider  = core.WithLoggerProvider
	WithMetricsRecorder = core.WithMetricsRecorder
	WithErrorMapper     = core.WithErrorMapper
	WithConfigProvider  = core.WithConfigProvider
	WithOptionsResolver = core.WithOptionsResolver
	WithDispatcher      = core.WithDispatcher
	WithTestStore       = core.WithTestStore
	WithResultStore     = core.WithResultStore
	WithProjectStore    = core.WithProjectStore
	WithIdentityStore   = core.WithIdentityStore
	WithStoreProvider   = core.WithStoreProvider
)

func DefaultConfig() Config {
	return core.DefaultConfig()
}

func New(cfg Config, opts ...Option) (*Service, error) {
	return core.NewService(cfg, opts...)
}
