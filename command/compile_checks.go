package command

import gocmd "github.com/goliatone/go-command"

var (
	_ gocmd.Commander[RunTestMessage]       = (*RunTestCommand)(nil)
	_ gocmd.Commander[RunProjectMessage]    = (*RunProjectCommand)(nil)
	_ gocmd.Commander[ReportResultMessage]  = (*ReportResultCommand)(nil)
	_ gocmd.Commander[CreateTestMessage]    = (*CreateTestCommand)(nil)
	_ gocmd.Commander[CreateProjectMessage] = (*CreateProjectCommand)(nil)
	_ gocmd.Commander[CreateUserMessage]    = (*CreateUserCommand)(nil)
)
