package mssn

import (
	"github.com/lalawue/mssn/internal/rng"
	"github.com/rs/zerolog"
)

// Option configures a Session at creation time.
type Option func(*Session)

// WithRNG overrides the masking-key source. The default is a
// github.com/valyala/fastrand-backed generator; pass
// rng.NewXoroshiro128Plus(seed0, seed1) for the dependency-free
// reference algorithm instead.
func WithRNG(source rng.Source) Option {
	return func(s *Session) {
		s.rng = source
	}
}

// WithLogger attaches a per-session debug logger. Nil (the default)
// disables all tracing; no log statement runs on the hot path unless a
// logger is attached.
func WithLogger(logger zerolog.Logger) Option {
	return func(s *Session) {
		s.logger = &logger
	}
}
