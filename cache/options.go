package cache

import "github.com/haikuowuya/Rosie/timeprovider"

type options struct {
	name  string
	clock timeprovider.TimeProvider
}

// Option configures a cache data source
type Option func(*options)

// WithName sets the name the data source reports in metrics and failures
func WithName(name string) Option {
	return func(o *options) {
		o.name = name
	}
}

// WithTimeProvider sets the clock used to timestamp and expire entries.
// Only the in-memory data sources honour it; go-cache and ristretto
// track expiry with their own clock.
func WithTimeProvider(clock timeprovider.TimeProvider) Option {
	return func(o *options) {
		o.clock = clock
	}
}

func buildOptions(defaultName string, opts []Option) options {
	o := options{
		name:  defaultName,
		clock: timeprovider.System{},
	}
	for _, opt := range opts {
		opt(&o)
	}
	return o
}
