package core

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/url"
	"strings"
	"time"
)

var (
	ErrInvalidResultStatus = errors.New("core: invalid result status")
	ErrInvalidWebhookURL   = errors.New("core: invalid webhook url")
	ErrTestNotFound        = errors.New("core: test not found")
	ErrProjectNotFound     = errors.New("core: project not found")
	ErrUserNotFound        = errors.New("core: user not found")
)

type ResultStatus string

const (
	ResultStatusSuccess ResultStatus = "success"
	ResultStatusFailed  ResultStatus = "failed"
)

func (s ResultStatus) Validate() error {
	switch s {
	case ResultStatusSuccess, ResultStatusFailed:
		return nil
	default:
		return fmt.Errorf("%w: %q", ErrInvalidResultStatus, string(s))
	}
}

// ParseResultStatus normalizes a caller-supplied status string into the enum.
func ParseResultStatus(value string) (ResultStatus, error) {
	status := ResultStatus(strings.TrimSpace(strings.ToLower(value)))
	if err := status.Validate(); err != nil {
		return "", err
	}
	return status, nil
}

// Test is an externally hosted check reachable over HTTP. Tests are immutable
// once created; the webhook URL is validated here and treated as opaque on
// every subsequent run.
type Test struct {
	ID         string
	Name       string
	ProjectID  string
	WebhookURL string
	Scheduled  bool
	CreatedAt  time.Time
}

type CreateTestInput struct {
	Name       string
	ProjectID  string
	WebhookURL string
	Scheduled  bool
}

func (in CreateTestInput) Validate() error {
	if strings.TrimSpace(in.Name) == "" {
		return fmt.Errorf("core: test name is required")
	}
	return ValidateWebhookURL(in.WebhookURL)
}

// ValidateWebhookURL accepts absolute http(s) URLs only.
func ValidateWebhookURL(raw string) error {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return fmt.Errorf("%w: empty", ErrInvalidWebhookURL)
	}
	parsed, err := url.Parse(trimmed)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidWebhookURL, err)
	}
	scheme := strings.ToLower(parsed.Scheme)
	if scheme != "http" && scheme != "https" {
		return fmt.Errorf("%w: unsupported scheme %q", ErrInvalidWebhookURL, parsed.Scheme)
	}
	if parsed.Host == "" {
		return fmt.Errorf("%w: missing host", ErrInvalidWebhookURL)
	}
	return nil
}

// TestResult is one appended outcome row. Results are never updated or
// deleted; multiple rows accumulate per test over time.
type TestResult struct {
	ID        string
	TestID    string
	Status    ResultStatus
	Payload   json.RawMessage
	CreatedAt time.Time
}

type InsertResultInput struct {
	TestID  string
	Status  ResultStatus
	Payload json.RawMessage
}

func (in InsertResultInput) Validate() error {
	if strings.TrimSpace(in.TestID) == "" {
		return fmt.Errorf("core: test id is required")
	}
	return in.Status.Validate()
}

// Outcome is the in-memory result of one dispatch attempt, before persistence.
type Outcome struct {
	Status  ResultStatus
	Payload json.RawMessage
}

// FailurePayload wraps an error description into the opaque payload shape the
// webhook path uses for failed dispatches.
func FailurePayload(message string) json.RawMessage {
	encoded, err := json.Marshal(map[string]string{"error": message})
	if err != nil {
		return json.RawMessage(`{"error":"dispatch failed"}`)
	}
	return encoded
}

// NormalizePayload keeps valid JSON as-is and re-encodes anything else as a
// JSON string, so the stored payload is always structured but schema-free.
func NormalizePayload(body []byte) json.RawMessage {
	trimmed := strings.TrimSpace(string(body))
	if trimmed == "" {
		return json.RawMessage("null")
	}
	if json.Valid([]byte(trimmed)) {
		return json.RawMessage(trimmed)
	}
	encoded, err := json.Marshal(trimmed)
	if err != nil {
		return json.RawMessage("null")
	}
	return encoded
}

type Project struct {
	ID        string
	Name      string
	UserID    string
	CreatedAt time.Time
}

type CreateProjectInput struct {
	Name   string
	UserID string
}

func (in CreateProjectInput) Validate() error {
	if strings.TrimSpace(in.Name) == "" {
		return fmt.Errorf("core: project name is required")
	}
	if strings.TrimSpace(in.UserID) == "" {
		return fmt.Errorf("core: user id is required")
	}
	return nil
}

type User struct {
	ID           string
	Username     string
	PasswordHash string
	APIKey       string
	CreatedAt    time.Time
}

type CreateUserInput struct {
	Username     string
	PasswordHash string
	APIKey       string
}

func (in CreateUserInput) Validate() error {
	if strings.TrimSpace(in.Username) == "" {
		return fmt.Errorf("core: username is required")
	}
	if strings.TrimSpace(in.APIKey) == "" {
		return fmt.Errorf("core: api key is required")
	}
	return nil
}

// ReportResultInput carries an asynchronously reported outcome from an
// external test runner. Status is validated against the enum; payload is
// persisted verbatim.
type ReportResultInput struct {
	TestID  string
	Status  string
	Payload json.RawMessage
}
