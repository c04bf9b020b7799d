package inbound

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/goliatone/go-testhooks/core"

	goerrors "github.com/goliatone/go-errors"
)

type stubIdentityStore struct {
	users map[string]core.User
}

func (s *stubIdentityStore) Create(ctx context.Context, in core.CreateUserInput) (core.User, error) {
	return core.User{}, nil
}

func (s *stubIdentityStore) FindByAPIKey(ctx context.Context, apiKey string) (core.User, error) {
	user, ok := s.users[apiKey]
	if !ok {
		return core.User{}, core.ErrUserNotFound
	}
	return user, nil
}

type stubReporter struct {
	calls   []core.ReportResultInput
	failure error
}

func (s *stubReporter) ReportResult(ctx context.Context, in core.ReportResultInput) (core.TestResult, error) {
	s.calls = append(s.calls, in)
	if s.failure != nil {
		return core.TestResult{}, s.failure
	}
	return core.TestResult{
		ID:      "result-1",
		TestID:  in.TestID,
		Status:  core.ResultStatus(in.Status),
		Payload: in.Payload,
	}, nil
}

func newTestReceiver(t *testing.T, reporter *stubReporter) *Receiver {
	t.Helper()

	identities := &stubIdentityStore{users: map[string]core.User{
		"valid-key": {ID: "user-1", Username: "ops", APIKey: "valid-key"},
	}}
	receiver, err := NewReceiver(identities, reporter, nil)
	if err != nil {
		t.Fatalf("NewReceiver: %v", err)
	}
	return receiver
}

func assertStatusCode(t *testing.T, err error, wantStatus int, wantText string) {
	t.Helper()

	var rich *goerrors.Error
	if !goerrors.As(err, &rich) {
		t.Fatalf("expected *goerrors.Error, got %T: %v", err, err)
	}
	if rich.Code != wantStatus {
		t.Fatalf("expected status %d, got %d", wantStatus, rich.Code)
	}
	if rich.TextCode != wantText {
		t.Fatalf("expected text code %s, got %s", wantText, rich.TextCode)
	}
}

func TestAuthenticateRequiresAPIKey(t *testing.T) {
	reporter := &stubReporter{}
	receiver := newTestReceiver(t, reporter)

	_, err := receiver.Authenticate(context.Background(), "   ")
	if err == nil {
		t.Fatal("expected error for empty API key")
	}
	assertStatusCode(t, err, 401, "TESTHOOKS_AUTH_REQUIRED")
}

func TestAuthenticateRejectsUnknownKey(t *testing.T) {
	reporter := &stubReporter{}
	receiver := newTestReceiver(t, reporter)

	_, err := receiver.Authenticate(context.Background(), "wrong-key")
	if err == nil {
		t.Fatal("expected error for unknown API key")
	}
	assertStatusCode(t, err, 401, "TESTHOOKS_AUTH_INVALID")
}

func TestReceiveRejectsUnauthenticatedCallback(t *testing.T) {
	reporter := &stubReporter{}
	receiver := newTestReceiver(t, reporter)

	_, _, err := receiver.Receive(context.Background(), Callback{
		APIKey: "",
		TestID: "test-1",
		Status: "success",
	})
	if err == nil {
		t.Fatal("expected auth error")
	}
	assertStatusCode(t, err, 401, "TESTHOOKS_AUTH_REQUIRED")
	if len(reporter.calls) != 0 {
		t.Fatalf("expected no reporter calls, got %d", len(reporter.calls))
	}
}

func TestReceivePropagatesReporterError(t *testing.T) {
	reporter := &stubReporter{failure: core.ErrTestNotFound}
	receiver := newTestReceiver(t, reporter)

	_, user, err := receiver.Receive(context.Background(), Callback{
		APIKey: "valid-key",
		TestID: "missing",
		Status: "success",
	})
	if err == nil {
		t.Fatal("expected reporter error")
	}
	if user.ID != "user-1" {
		t.Fatalf("expected resolved user, got %+v", user)
	}
}

func TestReceivePersistsCallbackResult(t *testing.T) {
	reporter := &stubReporter{}
	receiver := newTestReceiver(t, reporter)

	payload := json.RawMessage(`{"latency_ms":42}`)
	result, user, err := receiver.Receive(context.Background(), Callback{
		APIKey:  "valid-key",
		TestID:  "test-1",
		Status:  "failed",
		Payload: payload,
	})
	if err != nil {
		t.Fatalf("Receive: %v", err)
	}
	if user.ID != "user-1" {
		t.Fatalf("expected user-1, got %+v", user)
	}
	if len(reporter.calls) != 1 {
		t.Fatalf("expected one reporter call, got %d", len(reporter.calls))
	}
	if got := reporter.calls[0]; got.TestID != "test-1" || got.Status != "failed" {
		t.Fatalf("unexpected report input: %+v", got)
	}
	if string(result.Payload) != string(payload) {
		t.Fatalf("payload altered: %s", result.Payload)
	}
}
