package stretch

import (
	"github.com/cwbudde/algo-stretch/dsp/buffer"
	"go.uber.org/zap"
)

// DefaultSampleRate is used when Process runs on a session that was never
// configured.
const DefaultSampleRate = 44100.0

// Option configures a Session.
type Option func(*Session)

// WithLogger sets the logger used for latency diagnostics. A nil logger is
// ignored.
func WithLogger(logger *zap.Logger) Option {
	return func(s *Session) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// WithPool sets the pool that per-call scratch buffers come from. Sessions
// may share a pool.
func WithPool(pool *buffer.Pool) Option {
	return func(s *Session) {
		if pool != nil {
			s.pool = pool
		}
	}
}

// WithTimeFactor sets the initial time factor. Values that are not positive
// and finite are ignored and the session keeps its default factor of 1; use
// SetTimeFactor to get an error instead.
func WithTimeFactor(factor float64) Option {
	return func(s *Session) {
		_ = s.SetTimeFactor(factor)
	}
}

// WithExactLength sets the initial exact-length flag.
func WithExactLength(exact bool) Option {
	return func(s *Session) {
		s.exactLength = exact
	}
}
