package cert

import (
	"context"
	"fmt"
	"strings"
)

// Toolkit extracts the two facts the inventory needs from certificate and key
// files. Implementations return the raw text a command-line toolkit would
// print ("Modulus=...", "notAfter=...") so callers parse both sources the
// same way.
type Toolkit interface {
	// CertModulus returns the key identity of the certificate at path.
	CertModulus(ctx context.Context, path string) (string, error)
	// KeyModulus returns the key identity of the private key at path.
	KeyModulus(ctx context.Context, path string) (string, error)
	// NotAfter returns the raw end-date output for the certificate at path.
	NotAfter(ctx context.Context, path string) (string, error)
}

// Toolkit names accepted by NewToolkit.
const (
	ToolkitOpenSSL = "openssl"
	ToolkitNative  = "native"
)

// NewToolkit builds the named toolkit. bin is only used by the openssl
// toolkit.
func NewToolkit(name, bin string) (Toolkit, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", ToolkitOpenSSL:
		return NewEngineWithBinary(bin), nil
	case ToolkitNative:
		return Native{}, nil
	default:
		return nil, fmt.Errorf("unknown toolkit %q (want %s or %s)", name, ToolkitOpenSSL, ToolkitNative)
	}
}

// Identity extracts the comparable value from toolkit output: surrounding
// whitespace is trimmed and everything up to the last '=' is dropped.
//
//	Identity("Modulus=ABCD\n") == "ABCD"
func Identity(raw string) string {
	s := strings.TrimSpace(raw)
	if i := strings.LastIndexByte(s, '='); i >= 0 {
		s = s[i+1:]
	}
	return s
}

// LastValue returns the value of the last non-empty line of multi-line
// "key=value" output, e.g. the notAfter line of `openssl x509 -dates`.
func LastValue(raw string) string {
	lines := strings.Split(strings.TrimSpace(raw), "\n")
	return Identity(lines[len(lines)-1])
}
