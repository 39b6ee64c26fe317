package stream

import "go.uber.org/zap"

type options struct {
	limit   int
	bounded bool
	logger  *zap.SugaredLogger
}

// Option configures an Index at construction.
type Option func(*options)

// WithLimit bounds the number of identifiers kept after a push.
// Negative values are treated as 0. Without it the index is unbounded.
func WithLimit(limit int) Option {
	return func(o *options) {
		if limit < 0 {
			limit = 0
		}
		o.limit = limit
		o.bounded = true
	}
}

func WithLogger(logger *zap.SugaredLogger) Option {
	return func(o *options) {
		if logger != nil {
			o.logger = logger
		}
	}
}
