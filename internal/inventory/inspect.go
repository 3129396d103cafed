package inventory

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"github.com/nickromney/certfacts/internal/cert"
)

// Inspector turns one logical name into a Record.
type Inspector struct {
	Toolkit cert.Toolkit
	// Now is the evaluation clock. "Today" is Now's date in Now's location.
	Now func() time.Time
	Log *slog.Logger
}

// NewInspector returns an Inspector using the local clock and the default
// logger.
func NewInspector(tk cert.Toolkit) *Inspector {
	return &Inspector{Toolkit: tk}
}

func (in *Inspector) now() time.Time {
	if in.Now != nil {
		return in.Now()
	}
	return time.Now()
}

func (in *Inspector) log() *slog.Logger {
	if in.Log != nil {
		return in.Log
	}
	return slog.Default()
}

// Inspect builds the Record for name in dir. It never fails: toolkit and
// parse errors surface as Absent or Unknown fields.
func (in *Inspector) Inspect(ctx context.Context, dir, name string) Record {
	return in.inspect(ctx, dir, name, 0)
}

// inspect runs the pairing and expiration checks, each under its own
// deadline derived from ctx. timeout <= 0 adds no deadline.
func (in *Inspector) inspect(ctx context.Context, dir, name string, timeout time.Duration) Record {
	rec := Record{Name: name}
	paths := PathsFor(dir, name)

	if !isRegularFile(paths.Cert) || !isRegularFile(paths.Key) {
		rec.Valid = Of(false)
		return rec
	}

	pairCtx, cancel := withTimeout(ctx, timeout)
	rec.Valid = in.checkPair(pairCtx, name, paths)
	cancel()

	expiryCtx, cancel := withTimeout(ctx, timeout)
	rec.Expiration, rec.DaysRemaining = in.checkExpiry(expiryCtx, name, paths)
	cancel()
	return rec
}

func withTimeout(ctx context.Context, d time.Duration) (context.Context, context.CancelFunc) {
	if d <= 0 {
		return ctx, func() {}
	}
	return context.WithTimeout(ctx, d)
}

func (in *Inspector) checkPair(ctx context.Context, name string, p Paths) Field[bool] {
	certOut, certErr := in.Toolkit.CertModulus(ctx, p.Cert)
	keyOut, keyErr := in.Toolkit.KeyModulus(ctx, p.Key)
	if certErr != nil || keyErr != nil {
		in.log().Debug("pairing check failed", "name", name,
			"cert_err", certErr, "key_err", keyErr)
		return Field[bool]{}
	}
	return Of(cert.Identity(certOut) == cert.Identity(keyOut))
}

func (in *Inspector) checkExpiry(ctx context.Context, name string, p Paths) (Field[Date], Field[int]) {
	out, err := in.Toolkit.NotAfter(ctx, p.Cert)
	if err != nil || strings.TrimSpace(out) == "" {
		in.log().Debug("expiration check failed", "name", name, "err", err)
		return Field[Date]{}, Field[int]{}
	}

	exp, err := ParseNotAfter(cert.LastValue(out))
	if err != nil {
		in.log().Debug("expiration unparsable", "name", name, "err", err)
		return UnknownField[Date](), UnknownField[int]()
	}

	today := DateOf(in.now())
	return Of(exp), Of(exp.DaysSince(today))
}
