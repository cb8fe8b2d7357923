package repository

import (
	"github.com/haikuowuya/Rosie/events"
	"github.com/haikuowuya/Rosie/metrics"
)

type options struct {
	name     string
	metrics  *metrics.MetricsWriter
	coalesce bool
	changes  events.ISubscriptionManager
}

// Option configures a Repository
type Option func(*options)

// WithName sets the name used in logs and metrics
func WithName(name string) Option {
	return func(o *options) {
		o.name = name
	}
}

// WithMetrics records operation metrics through mw
func WithMetrics(mw *metrics.MetricsWriter) Option {
	return func(o *options) {
		o.metrics = mw
	}
}

// WithReadCoalescing collapses concurrent readable-source fetches of the
// same key into a single call whose result is shared by all callers
func WithReadCoalescing() Option {
	return func(o *options) {
		o.coalesce = true
	}
}

// WithChangeNotifications emits an events.Change on m after every
// successful write or delete
func WithChangeNotifications(m events.ISubscriptionManager) Option {
	return func(o *options) {
		o.changes = m
	}
}
