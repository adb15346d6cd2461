// Package testutil carries small fixtures shared across this module's test
// suites: a thread-safe log buffer and a recording event collector.
package testutil
