//go:build !stsassert

// Package assert checks engine preconditions. Checks compile to nothing
// unless the stsassert build tag is set.
package assert

// Enabled reports whether precondition checks run.
const Enabled = false

// That panics with msg when cond is false and checks are enabled.
func That(cond bool, msg string) {}
