package cli

import "errors"

// Process exit codes.
const (
	ExitFailure = 1
	ExitUsage   = 2
)

// ExitError asks main to exit with Code. Msg is already phrased for the user.
type ExitError struct {
	Code   int
	Silent bool // main prints nothing
	Msg    string
}

func (e *ExitError) Error() string { return e.Msg }

// usageError marks a flag or config problem: exit status 2.
func usageError(err error) error {
	return &ExitError{Code: ExitUsage, Msg: err.Error()}
}

// ExitCode unpacks an ExitError anywhere in err's chain.
func ExitCode(err error) (code int, silent bool, ok bool) {
	var ee *ExitError
	if errors.As(err, &ee) {
		return ee.Code, ee.Silent, true
	}
	return 0, false, false
}
