// Package rest exposes the testhooks HTTP API. Handlers adapt gin requests to
// the command and query layers and render service errors as JSON envelopes.
package rest
