// Package dispatch performs outbound webhook calls: one HTTP POST per test,
// classified into a success or failed outcome. It never raises a fault past
// its boundary and never retries.
package dispatch
