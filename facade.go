package testhooks

import (
	"fmt"

	hookscommand "github.com/goliatone/go-testhooks/command"
	hooksquery "github.com/goliatone/go-testhooks/query"
)

// CommandQueryService is the surface the facade binds command and query
// handlers to. *core.Service satisfies it.
type CommandQueryService interface {
	hookscommand.MutatingService
	hooksquery.TestReader
	hooksquery.ResultReader
	hooksquery.ProjectReader
}

type Commands struct {
	RunTest       *hookscommand.RunTestCommand
	RunProject    *hookscommand.RunProjectCommand
	ReportResult  *hookscommand.ReportResultCommand
	CreateTest    *hookscommand.CreateTestCommand
	CreateProject *hookscommand.CreateProjectCommand
	CreateUser    *hookscommand.CreateUserCommand
}

type Queries struct {
	GetTest      *hooksquery.GetTestQuery
	ListResults  *hooksquery.ListResultsQuery
	ListProjects *hooksquery.ListProjectsQuery
}

type Facade struct {
	service  CommandQueryService
	commands Commands
	queries  Queries
}

func NewFacade(service CommandQueryService) (*Facade, error) {
	if service == nil {
		return nil, fmt.Errorf("testhooks: command/query service is required")
	}

	facade := &Facade{service: service}
	facade.commands = Commands{
		RunTest:       hookscommand.NewRunTestCommand(service),
		RunProject:    hookscommand.NewRunProjectCommand(service),
		ReportResult:  hookscommand.NewReportResultCommand(service),
		CreateTest:    hookscommand.NewCreateTestCommand(service),
		CreateProject: hookscommand.NewCreateProjectCommand(service),
		CreateUser:    hookscommand.NewCreateUserCommand(service),
	}
	facade.queries = Queries{
		GetTest:      hooksquery.NewGetTestQuery(service),
		ListResults:  hooksquery.NewListResultsQuery(service),
		ListProjects: hooksquery.NewListProjectsQuery(service),
	}

	return facade, nil
}

func (f *Facade) Commands() Commands {
	if f == nil {
		return Commands{}
	}
	return f.commands
}

func (f *Facade) Queries() Queries {
	if f == nil {
		return Queries{}
	}
	return f.queries
}

func (f *Facade) Service() CommandQueryService {
	if f == nil {
		return nil
	}
	return f.service
}
