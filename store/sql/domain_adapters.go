package sqlstore

import (
	"strings"
	"time"

	"github.com/goliatone/go-testhooks/core"
)

func newTestRecord(in core.CreateTestInput, now time.Time) *testRecord {
	record := &testRecord{
		Name:       strings.TrimSpace(in.Name),
		WebhookURL: strings.TrimSpace(in.WebhookURL),
		Scheduled:  in.Scheduled,
		CreatedAt:  now,
	}
	if projectID := strings.TrimSpace(in.ProjectID); projectID != "" {
		record.ProjectID = &projectID
	}
	return record
}

func (r *testRecord) toDomain() core.Test {
	if r == nil {
		return core.Test{}
	}
	test := core.Test{
		ID:         r.ID,
		Name:       r.Name,
		WebhookURL: r.WebhookURL,
		Scheduled:  r.Scheduled,
		CreatedAt:  r.CreatedAt,
	}
	if r.ProjectID != nil {
		test.ProjectID = *r.ProjectID
	}
	return test
}

func newTestResultRecord(in core.InsertResultInput, now time.Time) *testResultRecord {
	return &testResultRecord{
		TestID:    strings.TrimSpace(in.TestID),
		Status:    string(in.Status),
		Payload:   append([]byte(nil), in.Payload...),
		CreatedAt: now,
	}
}

func (r *testResultRecord) toDomain() core.TestResult {
	if r == nil {
		return core.TestResult{}
	}
	return core.TestResult{
		ID:        r.ID,
		TestID:    r.TestID,
		Status:    core.ResultStatus(r.Status),
		Payload:   append([]byte(nil), r.Payload...),
		CreatedAt: r.CreatedAt,
	}
}

func newProjectRecord(in core.CreateProjectInput, now time.Time) *projectRecord {
	return &projectRecord{
		Name:      strings.TrimSpace(in.Name),
		UserID:    strings.TrimSpace(in.UserID),
		CreatedAt: now,
	}
}

func (r *projectRecord) toDomain() core.Project {
	if r == nil {
		return core.Project{}
	}
	return core.Project{
		ID:        r.ID,
		Name:      r.Name,
		UserID:    r.UserID,
		CreatedAt: r.CreatedAt,
	}
}

func newUserRecord(in core.CreateUserInput, now time.Time) *userRecord {
	return &userRecord{
		Username:     strings.TrimSpace(in.Username),
		PasswordHash: in.PasswordHash,
		APIKey:       strings.TrimSpace(in.APIKey),
		CreatedAt:    now,
	}
}

func (r *userRecord) toDomain() core.User {
	if r == nil {
		return core.User{}
	}
	return core.User{
		ID:           r.ID,
		Username:     r.Username,
		PasswordHash: r.PasswordHash,
		APIKey:       r.APIKey,
		CreatedAt:    r.CreatedAt,
	}
}
