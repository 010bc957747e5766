// Package ratelog emits warnings with a per-category cap.
//
// Large inputs can trigger the same warning thousands of times. A Limiter
// logs the first N occurrences of each category, then a single summary line,
// then nothing. Every occurrence is still counted, in memory and in metrics.
package ratelog

import (
	"log/slog"
	"slices"
	"sort"
	"sync"

	"github.com/roach88/metnet/internal/metrics"
)

// DefaultLimit is the number of messages logged per category before the
// summary line.
const DefaultLimit = 5

// Limiter is a capped warning emitter.
//
// Thread-safety: all methods are safe for concurrent use. Counters are
// shared across goroutines so parallel loaders respect one cap.
type Limiter struct {
	mu      sync.Mutex
	limit   int
	counts  map[string]int
	logger  *slog.Logger
	metrics *metrics.Metrics
}

// Option configures a Limiter.
type Option func(*Limiter)

// WithLogger sets the destination logger. Default: slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(l *Limiter) {
		l.logger = logger
	}
}

// WithMetrics records emissions on m.
func WithMetrics(m *metrics.Metrics) Option {
	return func(l *Limiter) {
		l.metrics = m
	}
}

// New creates a Limiter that logs at most limit messages per category.
// A negative limit disables the cap.
func New(limit int, opts ...Option) *Limiter {
	l := &Limiter{
		limit:  limit,
		counts: make(map[string]int),
	}
	for _, opt := range opts {
		opt(l)
	}
	if l.logger == nil {
		l.logger = slog.Default()
	}
	if l.metrics == nil {
		l.metrics = metrics.Discard()
	}
	return l
}

// Emit records one occurrence of category and logs msg at WARN level if the
// category is still under its cap. The occurrence right after the cap is
// reached logs a summary line instead. Returns true if msg itself was logged.
func (l *Limiter) Emit(category, msg string, args ...any) bool {
	l.mu.Lock()
	l.counts[category]++
	n := l.counts[category]
	l.mu.Unlock()

	l.metrics.WarningsTotal.WithLabelValues(category).Inc()

	if l.limit < 0 || n <= l.limit {
		l.logger.Warn(msg, slices.Concat(args, []any{"category", category})...)
		return true
	}

	l.metrics.WarningsSuppressedTotal.WithLabelValues(category).Inc()
	if n == l.limit+1 {
		l.logger.Warn("further warnings suppressed",
			"category", category,
			"limit", l.limit,
		)
	}
	return false
}

// Count returns how many times category was emitted.
func (l *Limiter) Count(category string) int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.counts[category]
}

// Suppressed returns how many emissions of category were not logged.
func (l *Limiter) Suppressed(category string) int {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.limit < 0 {
		return 0
	}
	return max(l.counts[category]-l.limit, 0)
}

// Limit returns the per-category cap.
func (l *Limiter) Limit() int {
	return l.limit
}

// Categories returns every category seen so far, sorted.
func (l *Limiter) Categories() []string {
	l.mu.Lock()
	defer l.mu.Unlock()
	out := make([]string, 0, len(l.counts))
	for c := range l.counts {
		out = append(out, c)
	}
	sort.Strings(out)
	return out
}
