package cert

import (
	"context"
	"crypto"
	"crypto/rsa"
	"crypto/sha256"
	"crypto/x509"
	"encoding/hex"
	"fmt"
	"strings"
	"time"
)

// OpenSSLDateLayout is the layout openssl uses for notBefore/notAfter.
const OpenSSLDateLayout = "Jan _2 15:04:05 2006 GMT"

// Native implements Toolkit with crypto/x509 instead of an openssl binary.
//
// RSA identities are printed exactly as openssl prints them, so a Native
// result compares equal to an Engine result for the same file. Other key
// types, which have no modulus, are identified by the SHA-256 of their
// SubjectPublicKeyInfo.
type Native struct{}

var _ Toolkit = Native{}
var _ Toolkit = (*Engine)(nil)

func (Native) CertModulus(ctx context.Context, path string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	c, err := ParseCertFile(path)
	if err != nil {
		return "", fmt.Errorf("parse certificate: %w", err)
	}
	return publicIdentity(c.PublicKey)
}

func (Native) KeyModulus(ctx context.Context, path string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	k, err := ParseKeyFile(path)
	if err != nil {
		return "", fmt.Errorf("parse private key: %w", err)
	}
	return publicIdentity(k.Public())
}

func (Native) NotAfter(ctx context.Context, path string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	c, err := ParseCertFile(path)
	if err != nil {
		return "", fmt.Errorf("parse certificate: %w", err)
	}
	return "notBefore=" + c.NotBefore.UTC().Format(OpenSSLDateLayout) + "\n" +
		"notAfter=" + c.NotAfter.UTC().Format(OpenSSLDateLayout) + "\n", nil
}

func publicIdentity(pub crypto.PublicKey) (string, error) {
	if rsaPub, ok := pub.(*rsa.PublicKey); ok {
		return "Modulus=" + strings.ToUpper(rsaPub.N.Text(16)) + "\n", nil
	}
	der, err := x509.MarshalPKIXPublicKey(pub)
	if err != nil {
		return "", fmt.Errorf("marshal public key: %w", err)
	}
	sum := sha256.Sum256(der)
	return "SPKI-SHA256=" + hex.EncodeToString(sum[:]) + "\n", nil
}

// FormatNotAfter renders t the way openssl does, for callers that build
// toolkit output by hand.
func FormatNotAfter(t time.Time) string {
	return "notAfter=" + t.UTC().Format(OpenSSLDateLayout)
}
