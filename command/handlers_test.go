package command

import (
	"context"
	"encoding/json"
	"fmt"
	"testing"

	gocmd "github.com/goliatone/go-command"
	goerrors "github.com/goliatone/go-errors"
	"github.com/goliatone/go-testhooks/core"
)

func TestRunTestCommand_ExecuteDelegatesAndStoresResult(t *testing.T) {
	expected := core.TestResult{ID: "res_1", TestID: "test_1", Status: core.ResultStatusSuccess}
	called := false

	svc := stubMutatingService{
		runTestFn: func(_ context.Context, testID string) (core.TestResult, error) {
			called = true
			if testID != "test_1" {
				t.Fatalf("expected test_1, got %q", testID)
			}
			return expected, nil
		},
	}

	cmd := NewRunTestCommand(svc)
	collector := gocmd.NewResult[core.TestResult]()
	ctx := gocmd.ContextWithResult(context.Background(), collector)

	if err := cmd.Execute(ctx, RunTestMessage{TestID: "test_1"}); err != nil {
		t.Fatalf("execute run test: %v", err)
	}
	if !called {
		t.Fatalf("expected run test invocation")
	}
	result, ok := collector.Load()
	if !ok {
		t.Fatalf("expected result to be stored")
	}
	if result.ID != expected.ID || result.Status != expected.Status {
		t.Fatalf("unexpected result: %#v", result)
	}
}

func TestRunProjectCommand_ExecuteStoresBatchResults(t *testing.T) {
	expected := []core.TestResult{
		{ID: "res_1", TestID: "test_1", Status: core.ResultStatusSuccess},
		{ID: "res_2", TestID: "test_2", Status: core.ResultStatusFailed},
	}

	svc := stubMutatingService{
		runProjectFn: func(_ context.Context, projectID string) ([]core.TestResult, error) {
			if projectID != "proj_1" {
				t.Fatalf("expected proj_1, got %q", projectID)
			}
			return expected, nil
		},
	}

	cmd := NewRunProjectCommand(svc)
	collector := gocmd.NewResult[[]core.TestResult]()
	ctx := gocmd.ContextWithResult(context.Background(), collector)

	if err := cmd.Execute(ctx, RunProjectMessage{ProjectID: "proj_1"}); err != nil {
		t.Fatalf("execute run project: %v", err)
	}
	results, ok := collector.Load()
	if !ok {
		t.Fatalf("expected results to be stored")
	}
	if len(results) != 2 || results[1].Status != core.ResultStatusFailed {
		t.Fatalf("unexpected results: %#v", results)
	}
}

func TestReportResultCommand_ExecuteDelegatesToService(t *testing.T) {
	called := false
	payload := json.RawMessage(`{"ok":true}`)

	svc := stubMutatingService{
		reportResultFn: func(_ context.Context, in core.ReportResultInput) (core.TestResult, error) {
			called = true
			if in.TestID != "test_1" || in.Status != "success" {
				t.Fatalf("unexpected report input: %#v", in)
			}
			return core.TestResult{ID: "res_1", TestID: in.TestID, Status: core.ResultStatusSuccess, Payload: in.Payload}, nil
		},
	}

	cmd := NewReportResultCommand(svc)
	msg := ReportResultMessage{Request: core.ReportResultInput{TestID: "test_1", Status: "success", Payload: payload}}
	if err := cmd.Execute(context.Background(), msg); err != nil {
		t.Fatalf("execute report result: %v", err)
	}
	if !called {
		t.Fatalf("expected report result invocation")
	}
}

func TestCreationCommands_DelegateToService(t *testing.T) {
	t.Run("create test", func(t *testing.T) {
		called := false
		svc := stubMutatingService{
			createTestFn: func(_ context.Context, in core.CreateTestInput) (core.Test, error) {
				called = true
				if in.Name != "checkout" {
					t.Fatalf("unexpected create input: %#v", in)
				}
				return core.Test{ID: "test_1", Name: in.Name, WebhookURL: in.WebhookURL}, nil
			},
		}
		cmd := NewCreateTestCommand(svc)
		msg := CreateTestMessage{Input: core.CreateTestInput{Name: "checkout", WebhookURL: "https://hooks.example.com/checkout"}}
		if err := cmd.Execute(context.Background(), msg); err != nil {
			t.Fatalf("execute create test: %v", err)
		}
		if !called {
			t.Fatalf("expected create test invocation")
		}
	})

	t.Run("create project", func(t *testing.T) {
		called := false
		svc := stubMutatingService{
			createProjectFn: func(_ context.Context, in core.CreateProjectInput) (core.Project, error) {
				called = true
				return core.Project{ID: "proj_1", Name: in.Name, UserID: in.UserID}, nil
			},
		}
		cmd := NewCreateProjectCommand(svc)
		msg := CreateProjectMessage{Input: core.CreateProjectInput{Name: "billing", UserID: "user_1"}}
		if err := cmd.Execute(context.Background(), msg); err != nil {
			t.Fatalf("execute create project: %v", err)
		}
		if !called {
			t.Fatalf("expected create project invocation")
		}
	})

	t.Run("create user", func(t *testing.T) {
		called := false
		svc := stubMutatingService{
			createUserFn: func(_ context.Context, in core.CreateUserInput) (core.User, error) {
				called = true
				return core.User{ID: "user_1", Username: in.Username, APIKey: in.APIKey}, nil
			},
		}
		cmd := NewCreateUserCommand(svc)
		msg := CreateUserMessage{Input: core.CreateUserInput{Username: "ops", PasswordHash: "hash", APIKey: "key_1"}}
		if err := cmd.Execute(context.Background(), msg); err != nil {
			t.Fatalf("execute create user: %v", err)
		}
		if !called {
			t.Fatalf("expected create user invocation")
		}
	})
}

func TestRunTestCommand_ServiceErrorPropagates(t *testing.T) {
	svc := stubMutatingService{
		runTestFn: func(_ context.Context, _ string) (core.TestResult, error) {
			return core.TestResult{}, core.ErrTestNotFound
		},
	}
	cmd := NewRunTestCommand(svc)
	err := cmd.Execute(context.Background(), RunTestMessage{TestID: "missing"})
	if err == nil {
		t.Fatalf("expected error")
	}
}

func TestRunTestMessage_ValidateReturnsRichError(t *testing.T) {
	err := (RunTestMessage{}).Validate()
	if err == nil {
		t.Fatalf("expected validation error")
	}

	var rich *goerrors.Error
	if !goerrors.As(err, &rich) {
		t.Fatalf("expected go-errors envelope, got %T", err)
	}
	if rich.Category != goerrors.CategoryValidation {
		t.Fatalf("expected validation category, got %q", rich.Category)
	}
	if rich.TextCode != core.ServiceErrorBadInput {
		t.Fatalf("expected %q text code, got %q", core.ServiceErrorBadInput, rich.TextCode)
	}
}

func TestRunTestCommand_NilServiceReturnsRichError(t *testing.T) {
	var cmd *RunTestCommand
	err := cmd.Execute(context.Background(), RunTestMessage{TestID: "test_1"})
	if err == nil {
		t.Fatalf("expected command dependency error")
	}

	var rich *goerrors.Error
	if !goerrors.As(err, &rich) {
		t.Fatalf("expected go-errors envelope, got %T", err)
	}
	if rich.Category != goerrors.CategoryInternal {
		t.Fatalf("expected internal category, got %q", rich.Category)
	}
}

type stubMutatingService struct {
	runTestFn       func(ctx context.Context, testID string) (core.TestResult, error)
	runProjectFn    func(ctx context.Context, projectID string) ([]core.TestResult, error)
	reportResultFn  func(ctx context.Context, in core.ReportResultInput) (core.TestResult, error)
	createTestFn    func(ctx context.Context, in core.CreateTestInput) (core.Test, error)
	createProjectFn func(ctx context.Context, in core.CreateProjectInput) (core.Project, error)
	createUserFn    func(ctx context.Context, in core.CreateUserInput) (core.User, error)
}

func (s stubMutatingService) RunTest(ctx context.Context, testID string) (core.TestResult, error) {
	if s.runTestFn == nil {
		return core.TestResult{}, fmt.Errorf("run test not configured")
	}
	return s.runTestFn(ctx, testID)
}

func (s stubMutatingService) RunProject(ctx context.Context, projectID string) ([]core.TestResult, error) {
	if s.runProjectFn == nil {
		return nil, fmt.Errorf("run project not configured")
	}
	return s.runProjectFn(ctx, projectID)
}

func (s stubMutatingService) ReportResult(ctx context.Context, in core.ReportResultInput) (core.TestResult, error) {
	if s.reportResultFn == nil {
		return core.TestResult{}, fmt.Errorf("report result not configured")
	}
	return s.reportResultFn(ctx, in)
}

func (s stubMutatingService) CreateTest(ctx context.Context, in core.CreateTestInput) (core.Test, error) {
	if s.createTestFn == nil {
		return core.Test{}, fmt.Errorf("create test not configured")
	}
	return s.createTestFn(ctx, in)
}

func (s stubMutatingService) CreateProject(ctx context.Context, in core.CreateProjectInput) (core.Project, error) {
	if s.createProjectFn == nil {
		return core.Project{}, fmt.Errorf("create project not configured")
	}
	return s.createProjectFn(ctx, in)
}

func (s stubMutatingService) CreateUser(ctx context.Context, in core.CreateUserInput) (core.User, error) {
	if s.createUserFn == nil {
		return core.User{}, fmt.Errorf("create user not configured")
	}
	return s.createUserFn(ctx, in)
}
