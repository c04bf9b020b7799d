package query

import (
	"fmt"
	"strings"
)

const (
	TypeGetTest      = "testhooks.query.test.get"
	TypeListResults  = "testhooks.query.result.list"
	TypeListProjects = "testhooks.query.project.list"
)

type GetTestMessage struct {
	TestID string
}

func (GetTestMessage) Type() string { return TypeGetTest }

func (m GetTestMessage) Validate() error {
	if strings.TrimSpace(m.TestID) == "" {
		return queryWrapValidation(fmt.Errorf("query: test id is required"), "query: invalid get test message")
	}
	return nil
}

type ListResultsMessage struct {
	TestID string
}

func (ListResultsMessage) Type() string { return TypeListResults }

func (m ListResultsMessage) Validate() error {
	if strings.TrimSpace(m.TestID) == "" {
		return queryWrapValidation(fmt.Errorf("query: test id is required"), "query: invalid list results message")
	}
	return nil
}

type ListProjectsMessage struct {
	UserID string
}

func (ListProjectsMessage) Type() string { return TypeListProjects }

func (m ListProjectsMessage) Validate() error {
	if strings.TrimSpace(m.UserID) == "" {
		return queryWrapValidation(fmt.Errorf("query: user id is required"), "query: invalid list projects message")
	}
	return nil
}
