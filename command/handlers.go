package command

import (
	"context"

	gocmd "github.com/goliatone/go-command"
	"github.com/goliatone/go-testhooks/core"
)

// MutatingService is the slice of the run coordinator the command layer
// depends on.
type MutatingService interface {
	RunTest(ctx context.Context, testID string) (core.TestResult, error)
	RunProject(ctx context.Context, projectID string) ([]core.TestResult, error)
	ReportResult(ctx context.Context, in core.ReportResultInput) (core.TestResult, error)
	CreateTest(ctx context.Context, in core.CreateTestInput) (core.Test, error)
	CreateProject(ctx context.Context, in core.CreateProjectInput) (core.Project, error)
	CreateUser(ctx context.Context, in core.CreateUserInput) (core.User, error)
}

type RunTestCommand struct {
	service MutatingService
}

func NewRunTestCommand(service MutatingService) *RunTestCommand {
	return &RunTestCommand{service: service}
}

func (c *RunTestCommand) Execute(ctx context.Context, msg RunTestMessage) error {
	if c == nil || c.service == nil {
		return commandDependencyError("command: run test service is required")
	}
	out, err := c.service.RunTest(ctx, msg.TestID)
	if err != nil {
		return err
	}
	storeResult(ctx, out)
	return nil
}

type RunProjectCommand struct {
	service MutatingService
}

func NewRunProjectCommand(service MutatingService) *RunProjectCommand {
	return &RunProjectCommand{service: service}
}

func (c *RunProjectCommand) Execute(ctx context.Context, msg RunProjectMessage) error {
	if c == nil || c.service == nil {
		return commandDependencyError("command: run project service is required")
	}
	out, err := c.service.RunProject(ctx, msg.ProjectID)
	if err != nil {
		return err
	}
	storeResult(ctx, out)
	return nil
}

type ReportResultCommand struct {
	service MutatingService
}

func NewReportResultCommand(service MutatingService) *ReportResultCommand {
	return &ReportResultCommand{service: service}
}

func (c *ReportResultCommand) Execute(ctx context.Context, msg ReportResultMessage) error {
	if c == nil || c.service == nil {
		return commandDependencyError("command: report result service is required")
	}
	out, err := c.service.ReportResult(ctx, msg.Request)
	if err != nil {
		return err
	}
	storeResult(ctx, out)
	return nil
}

type CreateTestCommand struct {
	service MutatingService
}

func NewCreateTestCommand(service MutatingService) *CreateTestCommand {
	return &CreateTestCommand{service: service}
}

func (c *CreateTestCommand) Execute(ctx context.Context, msg CreateTestMessage) error {
	if c == nil || c.service == nil {
		return commandDependencyError("command: create test service is required")
	}
	out, err := c.service.CreateTest(ctx, msg.Input)
	if err != nil {
		return err
	}
	storeResult(ctx, out)
	return nil
}

type CreateProjectCommand struct {
	service MutatingService
}

func NewCreateProjectCommand(service MutatingService) *CreateProjectCommand {
	return &CreateProjectCommand{service: service}
}

func (c *CreateProjectCommand) Execute(ctx context.Context, msg CreateProjectMessage) error {
	if c == nil || c.service == nil {
		return commandDependencyError("command: create project service is required")
	}
	out, err := c.service.CreateProject(ctx, msg.Input)
	if err != nil {
		return err
	}
	storeResult(ctx, out)
	return nil
}

type CreateUserCommand struct {
	service MutatingService
}

func NewCreateUserCommand(service MutatingService) *CreateUserCommand {
	return &CreateUserCommand{service: service}
}

func (c *CreateUserCommand) Execute(ctx context.Context, msg CreateUserMessage) error {
	if c == nil || c.service == nil {
		return commandDependencyError("command: create user service is required")
	}
	out, err := c.service.CreateUser(ctx, msg.Input)
	if err != nil {
		return err
	}
	storeResult(ctx, out)
	return nil
}

func storeResult[T any](ctx context.Context, value T) {
	collector := gocmd.ResultFromContext[T](ctx)
	if collector == nil {
		return
	}
	collector.Store(value)
}
