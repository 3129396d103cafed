package testutil

import (
	"crypto"
	"crypto/ecdsa"
	"crypto/elliptic"
	"crypto/rand"
	"crypto/rsa"
	"crypto/x509"
	"crypto/x509/pkix"
	"encoding/pem"
	"math/big"
	"os"
	"path/filepath"
	"testing"
	"time"
)

// CertPair holds paths to a generated cert and key in a temp directory.
type CertPair struct {
	CertPath string
	KeyPath  string
	Dir      string
}

// Artifact is one <name>.json / <name>.pem / <name>.key triple on disk.
type Artifact struct {
	Name           string
	Dir            string
	CertPath       string
	KeyPath        string
	DescriptorPath string
	NotAfter       time.Time
	Key            crypto.Signer
}

type artifactOptions struct {
	notAfter time.Time
	ec       bool
	pkcs8    bool
}

// Option customises WriteArtifact.
type Option func(*artifactOptions)

// WithNotAfter sets the certificate's expiry.
func WithNotAfter(t time.Time) Option {
	return func(o *artifactOptions) { o.notAfter = t }
}

// WithECKey uses a P-256 key instead of RSA.
func WithECKey() Option {
	return func(o *artifactOptions) { o.ec = true }
}

// WithPKCS8 writes the key as "PRIVATE KEY" instead of the legacy encoding.
func WithPKCS8() Option {
	return func(o *artifactOptions) { o.pkcs8 = true }
}

// MakeCertPair generates an ephemeral RSA certificate and key pair for testing.
func MakeCertPair(t *testing.T) *CertPair {
	t.Helper()

	a := WriteArtifact(t, t.TempDir(), "test")
	return &CertPair{CertPath: a.CertPath, KeyPath: a.KeyPath, Dir: a.Dir}
}

// WriteArtifact generates a self-signed certificate and its key and writes
// the descriptor, certificate and key for name into dir.
func WriteArtifact(t *testing.T, dir, name string, opts ...Option) *Artifact {
	t.Helper()

	o := artifactOptions{notAfter: time.Now().Add(365 * 24 * time.Hour)}
	for _, opt := range opts {
		opt(&o)
	}

	var key crypto.Signer
	var err error
	if o.ec {
		key, err = ecdsa.GenerateKey(elliptic.P256(), rand.Reader)
	} else {
		key, err = rsa.GenerateKey(rand.Reader, 2048)
	}
	if err != nil {
		t.Fatalf("generate key: %v", err)
	}

	template := &x509.Certificate{
		SerialNumber: big.NewInt(1),
		Subject: pkix.Name{
			CommonName:   name + ".test.local",
			Organization: []string{"certfacts Test"},
		},
		NotBefore:             o.notAfter.Add(-365 * 24 * time.Hour),
		NotAfter:              o.notAfter,
		KeyUsage:              x509.KeyUsageDigitalSignature,
		ExtKeyUsage:           []x509.ExtKeyUsage{x509.ExtKeyUsageServerAuth},
		BasicConstraintsValid: true,
	}

	certDER, err := x509.CreateCertificate(rand.Reader, template, template, key.Public(), key)
	if err != nil {
		t.Fatalf("create certificate: %v", err)
	}

	a := &Artifact{
		Name:           name,
		Dir:            dir,
		CertPath:       filepath.Join(dir, name+".pem"),
		KeyPath:        filepath.Join(dir, name+".key"),
		DescriptorPath: filepath.Join(dir, name+".json"),
		NotAfter:       o.notAfter,
		Key:            key,
	}

	writePEM(t, a.CertPath, "CERTIFICATE", certDER, 0o644)
	WriteKey(t, a.KeyPath, key, o.pkcs8)
	WriteDescriptor(t, dir, name)
	return a
}

// WriteKey writes key to path as PEM.
func WriteKey(t *testing.T, path string, key crypto.Signer, pkcs8 bool) {
	t.Helper()

	if pkcs8 {
		der, err := x509.MarshalPKCS8PrivateKey(key)
		if err != nil {
			t.Fatalf("marshal PKCS#8 key: %v", err)
		}
		writePEM(t, path, "PRIVATE KEY", der, 0o600)
		return
	}

	switch k := key.(type) {
	case *rsa.PrivateKey:
		writePEM(t, path, "RSA PRIVATE KEY", x509.MarshalPKCS1PrivateKey(k), 0o600)
	case *ecdsa.PrivateKey:
		der, err := x509.MarshalECPrivateKey(k)
		if err != nil {
			t.Fatalf("marshal EC key: %v", err)
		}
		writePEM(t, path, "EC PRIVATE KEY", der, 0o600)
	default:
		t.Fatalf("unsupported key type %T", key)
	}
}

// WriteDescriptor writes an empty JSON descriptor for name.
func WriteDescriptor(t *testing.T, dir, name string) string {
	t.Helper()
	path := filepath.Join(dir, name+".json")
	if err := os.WriteFile(path, []byte("{}\n"), 0o644); err != nil {
		t.Fatalf("write descriptor: %v", err)
	}
	return path
}

// SwapKey overwrites a's key file with other's key so the pair no longer
// matches.
func SwapKey(t *testing.T, a, other *Artifact) {
	t.Helper()
	data, err := os.ReadFile(other.KeyPath)
	if err != nil {
		t.Fatalf("read key: %v", err)
	}
	if err := os.WriteFile(a.KeyPath, data, 0o600); err != nil {
		t.Fatalf("write key: %v", err)
	}
}

func writePEM(t *testing.T, path, blockType string, der []byte, perm os.FileMode) {
	t.Helper()
	data := pem.EncodeToMemory(&pem.Block{Type: blockType, Bytes: der})
	if err := os.WriteFile(path, data, perm); err != nil {
		t.Fatalf("write %s: %v", path, err)
	}
}
