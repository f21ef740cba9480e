package testutils

import "testing"

var _ TestingT = (*testing.T)(nil)

// TestingT is the subset of testing.TB used by the helpers.
type TestingT interface {
	Helper()
	Logf(format string, args ...interface{})
	Error(args ...interface{})
	Errorf(format string, args ...interface{})
	Fatal(args ...interface{})
}
