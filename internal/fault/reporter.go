package fault

import (
	"context"
	"sync"

	"github.com/vk/graphene/internal/ctxlog"
)

// Reporter receives recoverable failures. Implementations must not panic.
type Reporter interface {
	Report(ctx context.Context, err error)
}

// ReporterFunc adapts a plain function to the Reporter interface.
type ReporterFunc func(ctx context.Context, err error)

// Report calls f(ctx, err).
func (f ReporterFunc) Report(ctx context.Context, err error) {
	f(ctx, err)
}

// LogReporter writes every reported error as a warning to the logger found
// in the context.
type LogReporter struct{}

// Report implements Reporter.
func (LogReporter) Report(ctx context.Context, err error) {
	if err == nil {
		return
	}
	ctxlog.FromContext(ctx).Warn("Graph engine reported an error.", "kind", Kind(err), "error", err)
}

// Discard drops every report.
var Discard Reporter = ReporterFunc(func(context.Context, error) {})

// Multi fans a report out to several reporters, in order.
func Multi(reporters ...Reporter) Reporter {
	return ReporterFunc(func(ctx context.Context, err error) {
		for _, r := range reporters {
			if r != nil {
				r.Report(ctx, err)
			}
		}
	})
}

// Collector records reported errors. It is safe for concurrent use and is
// mostly useful in tests.
type Collector struct {
	mu   sync.Mutex
	errs []error
}

// Report implements Reporter.
func (c *Collector) Report(_ context.Context, err error) {
	if err == nil {
		return
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	c.errs = append(c.errs, err)
}

// Errors returns a copy of everything reported so far.
func (c *Collector) Errors() []error {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]error, len(c.errs))
	copy(out, c.errs)
	return out
}

// Len returns the number of reported errors.
func (c *Collector) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.errs)
}

// Reset forgets everything reported so far.
func (c *Collector) Reset() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.errs = nil
}
