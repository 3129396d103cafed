package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// EnvCertDir overrides cert_dir from the environment.
const EnvCertDir = "CERTFACTS_CERT_DIR"

// Default values applied when fields are absent from the config file.
const (
	DefaultDescriptorExt = ".json"
	DefaultToolkit       = "openssl"
	DefaultOpenSSL       = "openssl"
	DefaultWorkers       = 4
	DefaultTimeout       = 10 * time.Second
)

// ErrNoCertDir is returned when neither cert_dir nor an OS-family mapping
// yields a directory.
var ErrNoCertDir = errors.New("no cert directory configured for this host")

// Config is the certfacts configuration.
//
// File location: ~/.config/certfacts/config.yml (or $XDG_CONFIG_HOME/certfacts/config.yml)
type Config struct {
	// CertDir is the directory to inventory. When empty, the directory is
	// chosen from OSFamilyDirs.
	CertDir string `yaml:"cert_dir"`

	// DescriptorExt is the extension of the per-name descriptor file.
	DescriptorExt string `yaml:"descriptor_ext"`

	// Toolkit is openssl or native.
	Toolkit string `yaml:"toolkit"`

	// OpenSSL is the openssl binary used by the openssl toolkit.
	OpenSSL string `yaml:"openssl_bin"`

	// Workers bounds concurrent inspections.
	Workers int `yaml:"workers"`

	// Timeout bounds the toolkit calls for one name.
	Timeout time.Duration `yaml:"timeout"`

	// OSFamilyDirs maps an OS family (RedHat, Debian, ...) to its cert
	// directory.
	OSFamilyDirs map[string]string `yaml:"os_family_dirs"`
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		DescriptorExt: DefaultDescriptorExt,
		Toolkit:       DefaultToolkit,
		OpenSSL:       DefaultOpenSSL,
		Workers:       DefaultWorkers,
		Timeout:       DefaultTimeout,
		OSFamilyDirs: map[string]string{
			FamilyRedHat: "/etc/pki/vault-secrets",
			FamilyDebian: "/etc/ssl/vault-secrets",
		},
	}
}

// Path returns the default config file location.
func Path() (string, error) {
	base := strings.TrimSpace(os.Getenv("XDG_CONFIG_HOME"))
	if base == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", err
		}
		base = filepath.Join(home, ".config")
	}
	return filepath.Join(base, "certfacts", "config.yml"), nil
}

// Load reads the config file at path. An empty path means Path(). A missing
// file is not an error when path was not given explicitly: Default() is
// returned. The environment override is applied last.
func Load(path string) (Config, error) {
	cfg := Default()

	explicit := strings.TrimSpace(path) != ""
	if !explicit {
		p, err := Path()
		if err != nil {
			applyEnv(&cfg)
			return cfg, err
		}
		path = p
	}

	data, err := os.ReadFile(path)
	switch {
	case err == nil:
		if err := parse(data, &cfg); err != nil {
			return cfg, fmt.Errorf("config: %s: %w", path, err)
		}
	case os.IsNotExist(err) && !explicit:
	default:
		return cfg, fmt.Errorf("config: read file: %w", err)
	}

	applyEnv(&cfg)
	return cfg, nil
}

func parse(data []byte, cfg *Config) error {
	defaults := cfg.OSFamilyDirs
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return fmt.Errorf("parse yaml: %w", err)
	}
	// A partial os_family_dirs map extends the defaults rather than
	// replacing them.
	for family, dir := range defaults {
		if _, ok := cfg.OSFamilyDirs[family]; !ok {
			if cfg.OSFamilyDirs == nil {
				cfg.OSFamilyDirs = map[string]string{}
			}
			cfg.OSFamilyDirs[family] = dir
		}
	}
	return Validate(*cfg)
}

func applyEnv(cfg *Config) {
	if v := strings.TrimSpace(os.Getenv(EnvCertDir)); v != "" {
		cfg.CertDir = v
	}
}

// Validate checks field values and names the offending key.
func Validate(cfg Config) error {
	switch strings.ToLower(strings.TrimSpace(cfg.Toolkit)) {
	case "", "openssl", "native":
	default:
		return fmt.Errorf("toolkit must be openssl or native, got %q", cfg.Toolkit)
	}
	if cfg.Workers < 0 {
		return fmt.Errorf("workers must be non-negative, got %d", cfg.Workers)
	}
	if cfg.Timeout < 0 {
		return fmt.Errorf("timeout must be non-negative, got %s", cfg.Timeout)
	}
	if ext := strings.TrimSpace(cfg.DescriptorExt); ext == "." || strings.ContainsAny(ext, `/\`) {
		return fmt.Errorf("descriptor_ext is not a file extension: %q", cfg.DescriptorExt)
	}
	return nil
}

// ResolveCertDir returns CertDir when set, otherwise the directory mapped
// to family.
func (c Config) ResolveCertDir(family string) (string, error) {
	if dir := strings.TrimSpace(c.CertDir); dir != "" {
		return dir, nil
	}
	if family == "" {
		return "", ErrNoCertDir
	}
	if dir, ok := c.OSFamilyDirs[family]; ok && strings.TrimSpace(dir) != "" {
		return dir, nil
	}
	return "", fmt.Errorf("%w (os family %s)", ErrNoCertDir, family)
}
