package inventory

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"
)

// Defaults for Builder.
const (
	DefaultWorkers = 4
	DefaultTimeout = 10 * time.Second
)

// Builder produces a Report for a directory. A Report is built from scratch
// on every call.
type Builder struct {
	Inspector *Inspector
	// DescriptorExt selects descriptor files; empty means ".json".
	DescriptorExt string
	// Workers bounds how many names are inspected at once. <= 0 means
	// DefaultWorkers.
	Workers int
	// Timeout bounds each check (pairing, expiration) of a single name
	// separately. 0 means DefaultTimeout; negative disables the deadline.
	Timeout time.Duration
	Log     *slog.Logger
}

func (b *Builder) log() *slog.Logger {
	if b.Log != nil {
		return b.Log
	}
	return slog.Default()
}

// Build enumerates dir and inspects every name found. Names are inspected
// concurrently; each check gets its own deadline so a hung toolkit call only
// degrades that field of that name's record.
//
// If ctx is cancelled during the build, records may be missing or cut short,
// so Build returns a nil Report and an error wrapping ctx.Err().
func (b *Builder) Build(ctx context.Context, dir string) (Report, error) {
	names := enumerate(b.log(), dir, b.DescriptorExt)
	report := make(Report, len(names))
	if len(names) > 0 {
		b.inspectAll(ctx, dir, names, report)
	}
	if err := ctx.Err(); err != nil {
		b.log().Warn("report build cancelled", "dir", dir, "names", len(names), "records", len(report), "err", err)
		return nil, fmt.Errorf("build report for %s: %w", dir, err)
	}

	b.log().Debug("report built", "dir", dir, "names", len(names), "records", len(report))
	return report, nil
}

func (b *Builder) inspectAll(ctx context.Context, dir string, names []string, report Report) {
	workers := b.Workers
	if workers <= 0 {
		workers = DefaultWorkers
	}
	if workers > len(names) {
		workers = len(names)
	}

	var (
		mu sync.Mutex
		wg sync.WaitGroup
	)
	jobs := make(chan string)

	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for name := range jobs {
				rec := b.inspectOne(ctx, dir, name)
				mu.Lock()
				report[name] = rec
				mu.Unlock()
			}
		}()
	}

dispatch:
	for _, name := range names {
		select {
		case <-ctx.Done():
			break dispatch
		case jobs <- name:
		}
	}
	close(jobs)
	wg.Wait()
}

// Inspect builds a single record with the same per-check deadlines Build
// uses.
func (b *Builder) Inspect(ctx context.Context, dir, name string) Record {
	return b.inspectOne(ctx, dir, name)
}

func (b *Builder) inspectOne(ctx context.Context, dir, name string) Record {
	timeout := b.Timeout
	if timeout == 0 {
		timeout = DefaultTimeout
	}
	return b.Inspector.inspect(ctx, dir, name, timeout)
}
