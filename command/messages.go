package command

import (
	"fmt"
	"strings"

	"github.com/goliatone/go-testhooks/core"
)

const (
	TypeRunTest       = "testhooks.command.test.run"
	TypeRunProject    = "testhooks.command.project.run"
	TypeReportResult  = "testhooks.command.result.report"
	TypeCreateTest    = "testhooks.command.test.create"
	TypeCreateProject = "testhooks.command.project.create"
	TypeCreateUser    = "testhooks.command.user.create"
)

type RunTestMessage struct {
	TestID string
}

func (RunTestMessage) Type() string { return TypeRunTest }

func (m RunTestMessage) Validate() error {
	if strings.TrimSpace(m.TestID) == "" {
		return commandWrapValidation(fmt.Errorf("command: test id is required"), "command: invalid run test message")
	}
	return nil
}

type RunProjectMessage struct {
	ProjectID string
}

func (RunProjectMessage) Type() string { return TypeRunProject }

func (m RunProjectMessage) Validate() error {
	if strings.TrimSpace(m.ProjectID) == "" {
		return commandWrapValidation(fmt.Errorf("command: project id is required"), "command: invalid run project message")
	}
	return nil
}

type ReportResultMessage struct {
	Request core.ReportResultInput
}

func (ReportResultMessage) Type() string { return TypeReportResult }

func (m ReportResultMessage) Validate() error {
	if strings.TrimSpace(m.Request.TestID) == "" {
		return commandWrapValidation(fmt.Errorf("command: test id is required"), "command: invalid report result message")
	}
	if strings.TrimSpace(m.Request.Status) == "" {
		return commandWrapValidation(fmt.Errorf("command: status is required"), "command: invalid report result message")
	}
	return nil
}

type CreateTestMessage struct {
	Input core.CreateTestInput
}

func (CreateTestMessage) Type() string { return TypeCreateTest }

func (m CreateTestMessage) Validate() error {
	return commandWrapValidation(m.Input.Validate(), "command: invalid create test message")
}

type CreateProjectMessage struct {
	Input core.CreateProjectInput
}

func (CreateProjectMessage) Type() string { return TypeCreateProject }

func (m CreateProjectMessage) Validate() error {
	return commandWrapValidation(m.Input.Validate(), "command: invalid create project message")
}

type CreateUserMessage struct {
	Input core.CreateUserInput
}

func (CreateUserMessage) Type() string { return TypeCreateUser }

func (m CreateUserMessage) Validate() error {
	return commandWrapValidation(m.Input.Validate(), "command: invalid create user message")
}
