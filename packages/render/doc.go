// Package render turns test lifecycle events into human-readable,
// optionally ANSI-colored console lines.
//
// A Recorder consumes one event at a time, keeps concurrency-safe
// aggregated counters per test hierarchy, and hands each finished line
// to a caller-supplied sink. It never influences test execution.
package render
