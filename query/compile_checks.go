package query

import (
	gocmd "github.com/goliatone/go-command"
	"github.com/goliatone/go-testhooks/core"
)

var (
	_ gocmd.Querier[GetTestMessage, core.Test]             = (*GetTestQuery)(nil)
	_ gocmd.Querier[ListResultsMessage, []core.TestResult] = (*ListResultsQuery)(nil)
	_ gocmd.Querier[ListProjectsMessage, []core.Project]   = (*ListProjectsQuery)(nil)
)
