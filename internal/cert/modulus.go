package cert

import (
	"context"
	"crypto/md5"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"strings"
)

// ErrNotRSA means the file holds a key type with no modulus.
var ErrNotRSA = errors.New("not an RSA key or certificate")

// CertModulus runs `openssl x509 -in PATH -noout -modulus` and returns its
// output unchanged ("Modulus=ABCDEF...").
func (e *Engine) CertModulus(ctx context.Context, path string) (string, error) {
	return e.modulus(ctx, "x509", "-in", path, "-noout", "-modulus")
}

// KeyModulus runs `openssl rsa -in PATH -passin pass: -noout -modulus`. The
// empty passphrase makes encrypted keys fail at once instead of prompting on
// the terminal.
func (e *Engine) KeyModulus(ctx context.Context, path string) (string, error) {
	return e.modulus(ctx, "rsa", "-in", path, "-passin", "pass:", "-noout", "-modulus")
}

// notRSAMarkers are stderr fragments openssl prints when asked for the
// modulus of a non-RSA key or certificate.
var notRSAMarkers = []string{"non-rsa", "not rsa", "can't use -modulus", "expecting: any private key"}

func (e *Engine) modulus(ctx context.Context, args ...string) (string, error) {
	stdout, stderr, err := e.exec.Run(ctx, args...)
	switch {
	case err != nil && ctx.Err() != nil:
		// openssl was killed by the deadline; its stderr is noise.
		return "", ctx.Err()
	case err != nil && isNotRSA(stderr):
		return "", ErrNotRSA
	case err != nil:
		return "", fmt.Errorf("openssl %s: %w", args[0], preferStderr(err, stderr))
	}

	if _, ok := parseModulus(stdout); !ok {
		return "", ErrNotRSA
	}
	return string(stdout), nil
}

func isNotRSA(stderr []byte) bool {
	msg := strings.ToLower(string(stderr))
	for _, m := range notRSAMarkers {
		if strings.Contains(msg, m) {
			return true
		}
	}
	return false
}

// parseModulus returns the hex after "Modulus=" on the first line that has
// one.
func parseModulus(stdout []byte) (string, bool) {
	for _, line := range strings.Split(string(stdout), "\n") {
		if v, ok := strings.CutPrefix(strings.TrimSpace(line), "Modulus="); ok {
			v = strings.TrimSpace(v)
			return v, v != ""
		}
	}
	return "", false
}

// ModulusDigestsHex returns short, comparable digests of a modulus for display.
func ModulusDigestsHex(modulusHex string) (sha256Hex string, md5Hex string) {
	b := []byte(strings.TrimSpace(modulusHex))
	sha := sha256.Sum256(b)
	md := md5.Sum(b)
	return hex.EncodeToString(sha[:]), hex.EncodeToString(md[:])
}
