package cert

import (
	"bytes"
	"context"
	"os/exec"
	"strings"
)

// DefaultOpenSSL is the binary name resolved through PATH when no explicit
// path is configured.
const DefaultOpenSSL = "openssl"

// Executor runs openssl commands and returns stdout, stderr, and any error.
type Executor interface {
	Run(ctx context.Context, args ...string) (stdout, stderr []byte, err error)
}

// OSExecutor calls openssl via exec.CommandContext.
type OSExecutor struct {
	// Bin is the openssl binary. Empty means DefaultOpenSSL.
	Bin string
}

func (o *OSExecutor) Run(ctx context.Context, args ...string) ([]byte, []byte, error) {
	bin := strings.TrimSpace(o.Bin)
	if bin == "" {
		bin = DefaultOpenSSL
	}

	cmd := exec.CommandContext(ctx, bin, args...)
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr
	err := cmd.Run()
	return stdout.Bytes(), stderr.Bytes(), err
}

// Engine wraps an Executor and answers Toolkit questions by invoking openssl.
type Engine struct {
	exec Executor
}

// NewEngine creates an Engine with the given Executor.
func NewEngine(exec Executor) *Engine {
	return &Engine{exec: exec}
}

// NewDefaultEngine creates an Engine with the real OS executor.
func NewDefaultEngine() *Engine {
	return &Engine{exec: &OSExecutor{}}
}

// NewEngineWithBinary creates an Engine that runs the given openssl binary.
func NewEngineWithBinary(bin string) *Engine {
	return &Engine{exec: &OSExecutor{Bin: bin}}
}

// run invokes openssl and, on failure, returns an error built from stderr
// when there is any.
func (e *Engine) run(ctx context.Context, args ...string) ([]byte, error) {
	stdout, stderr, err := e.exec.Run(ctx, args...)
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return nil, ctxErr
		}
		return nil, preferStderr(err, stderr)
	}
	return stdout, nil
}
