package cert

import (
	"context"
	"errors"
	"strings"
	"testing"
)

func TestNotAfter_ArgsAndRawOutput(t *testing.T) {
	out := "notBefore=Jan  1 00:00:00 2024 GMT\nnotAfter=Jan  1 00:00:00 2025 GMT\n"
	exec := &modulusFakeExec{stdout: []byte(out)}
	e := NewEngine(exec)

	got, err := e.NotAfter(context.Background(), "/certs/a.pem")
	if err != nil {
		t.Fatalf("NotAfter() error = %v", err)
	}
	if got != out {
		t.Fatalf("expected raw output, got %q", got)
	}
	want := "x509 -in /certs/a.pem -noout -dates"
	if strings.Join(exec.last, " ") != want {
		t.Fatalf("args: got %q, want %q", strings.Join(exec.last, " "), want)
	}
}

func TestNotAfter_EmptyOutput(t *testing.T) {
	e := NewEngine(&modulusFakeExec{stdout: []byte("  \n")})

	_, err := e.NotAfter(context.Background(), "/certs/a.pem")
	if !errors.Is(err, ErrNoDates) {
		t.Fatalf("expected ErrNoDates, got %v", err)
	}
}

func TestNotAfter_Failure(t *testing.T) {
	e := NewEngine(&modulusFakeExec{
		stderr: []byte("Could not read certificate from /certs/a.pem"),
		err:    errors.New("exit status 1"),
	})

	_, err := e.NotAfter(context.Background(), "/certs/a.pem")
	if err == nil {
		t.Fatalf("expected error")
	}
	if !strings.Contains(err.Error(), "Could not read certificate") {
		t.Fatalf("expected stderr-based error, got %v", err)
	}
}
