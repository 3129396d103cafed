package cli

import (
	"fmt"
	"io"
	"log/slog"
	"strings"
	"time"

	"github.com/nickromney/certfacts/internal/cert"
	"github.com/nickromney/certfacts/internal/config"
	"github.com/nickromney/certfacts/internal/inventory"
	"github.com/spf13/cobra"
)

// globalOptions are the persistent flags shared by every subcommand.
type globalOptions struct {
	configPath string
	dir        string
	toolkit    string
	openssl    string
	workers    int
	timeout    time.Duration
	logLevel   string
	logFormat  string
	noColor    bool
	quiet      bool

	// osReleasePath is overridable in tests.
	osReleasePath string
}

func (o *globalOptions) register(cmd *cobra.Command) {
	f := cmd.PersistentFlags()
	f.StringVar(&o.configPath, "config", "", "config file (default $XDG_CONFIG_HOME/certfacts/config.yml)")
	f.StringVarP(&o.dir, "dir", "d", "", "cert directory to inventory (overrides config and OS family)")
	f.StringVar(&o.toolkit, "toolkit", "", "crypto toolkit: openssl or native")
	f.StringVar(&o.openssl, "openssl", "", "openssl binary")
	f.IntVar(&o.workers, "workers", 0, "names inspected concurrently")
	f.DurationVar(&o.timeout, "timeout", 0, "per-name toolkit timeout")
	f.StringVar(&o.logLevel, "log-level", "warn", "log level: debug, info, warn, error")
	f.StringVar(&o.logFormat, "log-format", "text", "log format: text or json")
	f.BoolVar(&o.noColor, "no-color", false, "disable coloured output")
	f.BoolVarP(&o.quiet, "quiet", "q", false, "suppress status lines")
}

// runtime is everything a subcommand needs, resolved from flags and config.
type runtime struct {
	cfg     config.Config
	dir     string
	builder *inventory.Builder
}

func (o *globalOptions) resolve(cmd *cobra.Command) (*runtime, error) {
	cfg, err := config.Load(o.configPath)
	if err != nil {
		if strings.TrimSpace(o.configPath) != "" {
			return nil, err
		}
		slog.Warn("using default config", "err", err)
	}

	flags := cmd.Flags()
	if flags.Changed("toolkit") {
		cfg.Toolkit = o.toolkit
	}
	if flags.Changed("openssl") {
		cfg.OpenSSL = o.openssl
	}
	if flags.Changed("workers") {
		cfg.Workers = o.workers
	}
	if flags.Changed("timeout") {
		cfg.Timeout = o.timeout
	}
	if strings.TrimSpace(o.dir) != "" {
		cfg.CertDir = o.dir
	}
	if err := config.Validate(cfg); err != nil {
		return nil, usageError(err)
	}

	family := ""
	if strings.TrimSpace(cfg.CertDir) == "" {
		family = config.DetectOSFamily(o.osReleasePath)
	}
	dir, err := cfg.ResolveCertDir(family)
	if err != nil {
		return nil, usageError(fmt.Errorf("%w; use --dir or set cert_dir", err))
	}

	tk, err := cert.NewToolkit(cfg.Toolkit, cfg.OpenSSL)
	if err != nil {
		return nil, usageError(err)
	}

	logger := slog.Default()
	logger.Debug("resolved runtime", "dir", dir, "os_family", family, "toolkit", cfg.Toolkit,
		"workers", cfg.Workers, "timeout", cfg.Timeout)

	return &runtime{
		cfg: cfg,
		dir: dir,
		builder: &inventory.Builder{
			Inspector:     &inventory.Inspector{Toolkit: tk, Log: logger},
			DescriptorExt: cfg.DescriptorExt,
			Workers:       cfg.Workers,
			Timeout:       cfg.Timeout,
			Log:           logger,
		},
	}, nil
}

// NewLogger builds the process logger from --log-level and --log-format.
func NewLogger(w io.Writer, level, format string) (*slog.Logger, error) {
	var lvl slog.Level
	if err := lvl.UnmarshalText([]byte(strings.TrimSpace(level))); err != nil {
		return nil, fmt.Errorf("invalid --log-level %q", level)
	}
	opts := &slog.HandlerOptions{Level: lvl}

	switch strings.ToLower(strings.TrimSpace(format)) {
	case "", "text":
		return slog.New(slog.NewTextHandler(w, opts)), nil
	case "json":
		return slog.New(slog.NewJSONHandler(w, opts)), nil
	default:
		return nil, fmt.Errorf("invalid --log-format %q (want text or json)", format)
	}
}

func (o *globalOptions) setup(cmd *cobra.Command) error {
	logger, err := NewLogger(cmd.ErrOrStderr(), o.logLevel, o.logFormat)
	if err != nil {
		return usageError(err)
	}
	slog.SetDefault(logger)

	color := colorAllowed(o.noColor)
	con = console{
		stdout:  cmd.OutOrStdout(),
		stderr:  cmd.ErrOrStderr(),
		color:   color,
		unicode: color,
		quiet:   o.quiet,
	}
	return nil
}
