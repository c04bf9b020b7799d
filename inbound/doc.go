// Package inbound receives asynchronously reported test results from
// external runners. Requests authenticate with an API key header; the
// resolved user identity travels with the callback into the handler body.
package inbound
