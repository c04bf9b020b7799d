// Package core holds the domain model and orchestration service for
// go-testhooks: tests that are external webhooks, the append-only results they
// produce, and the coordinator that runs them one at a time while isolating
// per-test failures.
package core
