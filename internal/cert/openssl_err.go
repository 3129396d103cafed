package cert

import (
	"errors"
	"fmt"
	"strings"
)

// preferStderr returns stderr as the error when available. This avoids surfacing
// unhelpful "exit status N" messages in logs.
func preferStderr(err error, stderr []byte) error {
	msg := strings.TrimSpace(string(stderr))
	if msg == "" {
		return err
	}
	// Only the first line; openssl follows it with a stack of library frames.
	if i := strings.IndexByte(msg, '\n'); i >= 0 {
		msg = strings.TrimSpace(msg[:i])
	}
	if err == nil {
		return errors.New(msg)
	}
	return fmt.Errorf("%s: %w", msg, err)
}
