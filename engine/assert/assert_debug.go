//go:build stsassert

package assert

const Enabled = true

func That(cond bool, msg string) {
	if !cond {
		panic("spirecore: precondition violated: " + msg)
	}
}
