package cert

import (
	"context"
	"errors"
	"fmt"
	"strings"
)

// ErrNoDates is returned when openssl succeeds but prints nothing usable.
var ErrNoDates = errors.New("no dates in openssl output")

// NotAfter runs `openssl x509 -in PATH -noout -dates` and returns the output
// unchanged:
//
//	notBefore=Jan  1 00:00:00 2024 GMT
//	notAfter=Jan  1 00:00:00 2025 GMT
func (e *Engine) NotAfter(ctx context.Context, path string) (string, error) {
	stdout, err := e.run(ctx, "x509", "-in", path, "-noout", "-dates")
	if err != nil {
		return "", fmt.Errorf("read certificate dates: %w", err)
	}
	out := string(stdout)
	if strings.TrimSpace(out) == "" {
		return "", ErrNoDates
	}
	return out, nil
}
