package dispatch

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/goliatone/go-testhooks/core"
)

const defaultTimeout = 30 * time.Second
const defaultResponseBodyLimit int64 = 10 << 20 // 10 MiB

type HTTPDoer interface {
	Do(req *http.Request) (*http.Response, error)
}

// Dispatcher sends the webhook request for a test. Every call resolves to an
// Outcome value: transport errors, timeouts, non-2xx responses, and oversized
// bodies all become failed outcomes with an error payload, per-run faults
// never escape to the batch caller.
type Dispatcher struct {
	Client               HTTPDoer
	Timeout              time.Duration
	MaxResponseBodyBytes int64
	DefaultHeaders       map[string]string
}

func New(client HTTPDoer, cfg core.DispatchConfig) *Dispatcher {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	limit := cfg.MaxResponseBodyBytes
	if limit <= 0 {
		limit = defaultResponseBodyLimit
	}
	if client == nil {
		client = &http.Client{Timeout: timeout}
	}
	return &Dispatcher{
		Client:               client,
		Timeout:              timeout,
		MaxResponseBodyBytes: limit,
		DefaultHeaders:       map[string]string{},
	}
}

type dispatchBody struct {
	TestID string `json:"testId"`
}

func (d *Dispatcher) Dispatch(ctx context.Context, test core.Test) core.Outcome {
	if d == nil || d.Client == nil {
		return failedOutcome("dispatch: dispatcher is not configured")
	}
	if ctx == nil {
		ctx = context.Background()
	}

	body, err := json.Marshal(dispatchBody{TestID: test.ID})
	if err != nil {
		return failedOutcome(fmt.Sprintf("dispatch: encode request body: %v", err))
	}

	requestCtx := ctx
	cancel := func() {}
	if d.Timeout > 0 {
		requestCtx, cancel = context.WithTimeout(ctx, d.Timeout)
	}
	defer cancel()

	req, err := http.NewRequestWithContext(requestCtx, http.MethodPost, test.WebhookURL, bytes.NewReader(body))
	if err != nil {
		return failedOutcome(fmt.Sprintf("dispatch: create request: %v", err))
	}
	req.Header.Set("Content-Type", "application/json")
	for key, value := range d.DefaultHeaders {
		if key == "" {
			continue
		}
		req.Header.Set(key, value)
	}

	res, err := d.Client.Do(req)
	if err != nil {
		return failedOutcome(fmt.Sprintf("dispatch: execute request: %v", err))
	}
	defer res.Body.Close()

	limit := d.MaxResponseBodyBytes
	if limit <= 0 {
		limit = defaultResponseBodyLimit
	}
	responseBody, err := io.ReadAll(io.LimitReader(res.Body, limit+1))
	if err != nil {
		return failedOutcome(fmt.Sprintf("dispatch: read response body: %v", err))
	}
	if int64(len(responseBody)) > limit {
		return failedOutcome(fmt.Sprintf("dispatch: response body exceeds limit of %d bytes", limit))
	}

	if res.StatusCode < http.StatusOK || res.StatusCode >= http.StatusMultipleChoices {
		return failedOutcome(fmt.Sprintf("dispatch: webhook returned status %d", res.StatusCode))
	}

	return core.Outcome{
		Status:  core.ResultStatusSuccess,
		Payload: core.NormalizePayload(responseBody),
	}
}

func failedOutcome(message string) core.Outcome {
	return core.Outcome{
		Status:  core.ResultStatusFailed,
		Payload: core.FailurePayload(message),
	}
}

var _ core.Dispatcher = (*Dispatcher)(nil)
