package inbound

import (
	"context"
	"encoding/json"
	"errors"
	"strings"

	"github.com/goliatone/go-testhooks/core"

	glog "github.com/goliatone/go-logger/glog"
)

// ResultReporter is the slice of the run coordinator the receiver needs.
type ResultReporter interface {
	ReportResult(ctx context.Context, in core.ReportResultInput) (core.TestResult, error)
}

// Callback is one inbound result report. APIKey comes from the X-API-Key
// header; the rest is the request body.
type Callback struct {
	APIKey  string
	TestID  string
	Status  string
	Payload json.RawMessage
}

type Receiver struct {
	identities core.IdentityStore
	reporter   ResultReporter
	logger     core.Logger
}

func NewReceiver(identities core.IdentityStore, reporter ResultReporter, logger core.Logger) (*Receiver, error) {
	if identities == nil {
		return nil, inboundInternal(nil, "inbound: identity store is required")
	}
	if reporter == nil {
		return nil, inboundInternal(nil, "inbound: result reporter is required")
	}
	return &Receiver{
		identities: identities,
		reporter:   reporter,
		logger:     glog.Ensure(logger),
	}, nil
}

// Authenticate resolves the API key to its owning user. A missing credential
// and an unknown credential are distinct 401 errors; no handler work happens
// on either.
func (r *Receiver) Authenticate(ctx context.Context, apiKey string) (core.User, error) {
	if r == nil || r.identities == nil {
		return core.User{}, inboundInternal(nil, "inbound: receiver is not configured")
	}
	key := strings.TrimSpace(apiKey)
	if key == "" {
		return core.User{}, inboundAuthRequired("inbound: API key is required")
	}
	user, err := r.identities.FindByAPIKey(ctx, key)
	if err != nil {
		if errors.Is(err, core.ErrUserNotFound) {
			return core.User{}, inboundAuthInvalid("inbound: invalid API key")
		}
		return core.User{}, inboundInternal(err, "inbound: resolve API key")
	}
	return user, nil
}

// Receive authenticates the callback and persists the reported result. The
// returned user is the resolved reporter identity.
func (r *Receiver) Receive(ctx context.Context, cb Callback) (core.TestResult, core.User, error) {
	user, err := r.Authenticate(ctx, cb.APIKey)
	if err != nil {
		return core.TestResult{}, core.User{}, err
	}

	result, err := r.reporter.ReportResult(ctx, core.ReportResultInput{
		TestID:  cb.TestID,
		Status:  cb.Status,
		Payload: cb.Payload,
	})
	if err != nil {
		return core.TestResult{}, user, err
	}

	r.logger.Info("inbound result recorded",
		"test_id", result.TestID,
		"status", string(result.Status),
		"user_id", user.ID,
	)
	return result, user, nil
}
