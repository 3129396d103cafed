package cert

import (
	"crypto"
	"crypto/ecdsa"
	"crypto/ed25519"
	"crypto/rsa"
	"crypto/sha256"
	"crypto/x509"
	"encoding/pem"
	"errors"
	"fmt"
	"os"
	"strings"
)

// ErrEncryptedKey is returned for password-protected key files; the
// inventory never prompts for secrets.
var ErrEncryptedKey = errors.New("encrypted private key")

// keyDecoders maps PEM block types to their parser.
var keyDecoders = map[string]func([]byte) (crypto.Signer, error){
	"RSA PRIVATE KEY": func(der []byte) (crypto.Signer, error) { return x509.ParsePKCS1PrivateKey(der) },
	"EC PRIVATE KEY":  func(der []byte) (crypto.Signer, error) { return x509.ParseECPrivateKey(der) },
	"PRIVATE KEY":     parsePKCS8Signer,
}

// ParseCertFile returns the first certificate in a PEM or DER file.
func ParseCertFile(path string) (*x509.Certificate, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return ParseCertBytes(data)
}

// ParseCertBytes returns the first CERTIFICATE block in data, falling back
// to reading data as DER when it holds no PEM at all.
func ParseCertBytes(data []byte) (*x509.Certificate, error) {
	block, sawPEM := firstBlock(data, func(b *pem.Block) bool { return b.Type == "CERTIFICATE" })
	if block != nil {
		return x509.ParseCertificate(block.Bytes)
	}
	if sawPEM {
		return nil, errors.New("no CERTIFICATE block in PEM data")
	}
	return x509.ParseCertificate(data)
}

// ParseKeyFile returns the first private key in a PEM file.
func ParseKeyFile(path string) (crypto.Signer, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return ParseKeyBytes(data)
}

// ParseKeyBytes accepts PKCS#1 RSA, SEC 1 EC and unencrypted PKCS#8 keys.
func ParseKeyBytes(data []byte) (crypto.Signer, error) {
	block, _ := firstBlock(data, func(b *pem.Block) bool {
		_, ok := keyDecoders[b.Type]
		return ok || b.Type == "ENCRYPTED PRIVATE KEY"
	})
	switch {
	case block == nil:
		return nil, errors.New("no PEM private key found")
	case block.Type == "ENCRYPTED PRIVATE KEY":
		return nil, ErrEncryptedKey
	}
	return keyDecoders[block.Type](block.Bytes)
}

func parsePKCS8Signer(der []byte) (crypto.Signer, error) {
	k, err := x509.ParsePKCS8PrivateKey(der)
	if err != nil {
		return nil, err
	}
	s, ok := k.(crypto.Signer)
	if !ok {
		return nil, fmt.Errorf("unsupported PKCS#8 key type %T", k)
	}
	return s, nil
}

// firstBlock walks the PEM blocks in data and returns the first one match
// accepts. sawPEM reports whether data held any PEM block.
func firstBlock(data []byte, match func(*pem.Block) bool) (block *pem.Block, sawPEM bool) {
	for rest := data; ; {
		var b *pem.Block
		b, rest = pem.Decode(rest)
		if b == nil {
			return nil, sawPEM
		}
		sawPEM = true
		if match(b) {
			return b, true
		}
	}
}

// DescribePublicKey labels the certificate's key, e.g. "RSA 2048" or
// "ECDSA P-256".
func DescribePublicKey(c *x509.Certificate) string {
	switch pub := c.PublicKey.(type) {
	case *rsa.PublicKey:
		return fmt.Sprintf("RSA %d", pub.N.BitLen())
	case *ecdsa.PublicKey:
		if pub.Curve == nil {
			return "ECDSA"
		}
		return "ECDSA " + pub.Curve.Params().Name
	case ed25519.PublicKey:
		return "Ed25519"
	}
	return c.PublicKeyAlgorithm.String()
}

// FormatCertFingerprint is the SHA-256 of the certificate DER as
// colon-separated upper-case hex.
func FormatCertFingerprint(c *x509.Certificate) string {
	sum := sha256.Sum256(c.Raw)
	octets := make([]string, len(sum))
	for i, b := range sum {
		octets[i] = fmt.Sprintf("%02X", b)
	}
	return strings.Join(octets, ":")
}
