package dxf

import "log/slog"

// ParserConfig holds the tunables a Parse call accepts: the INSERT depth
// cap, the spline sample floor, the hit-test chord sample count, and the
// logger. Parse reads the logger, and the depth cap only for its
// circular-reference warning; Extents, HitBox, HitPoint and EvalSpline do
// not receive this configuration and use their fixed defaults.
type ParserConfig struct {
	maxInsertDepth   int
	splineMinSamples int
	hitChordSamples  int
	logger           *slog.Logger
}

// ParserOption configures a Parse call.
type ParserOption func(*ParserConfig)

func defaultParserConfig() ParserConfig {
	return ParserConfig{
		maxInsertDepth:   20,
		splineMinSamples: 100,
		hitChordSamples:  20,
		logger:           slog.Default(),
	}
}

// WithLogger sets the structured logger used for non-fatal diagnostics
// (truncated circular INSERTs, dropped unknown-block INSERTs, defaulted
// malformed optional fields). The default is slog.Default().
func WithLogger(logger *slog.Logger) ParserOption {
	return func(c *ParserConfig) {
		if logger != nil {
			c.logger = logger
		}
	}
}

// WithMaxInsertDepth sets the INSERT depth cap recorded in the
// configuration (default 20). Parse reports it in the circular-reference
// warning; the extent and hit-test walkers keep their own cap of 20.
func WithMaxInsertDepth(depth int) ParserOption {
	return func(c *ParserConfig) {
		if depth > 0 {
			c.maxInsertDepth = depth
		}
	}
}

// WithSplineMinSamples sets the B-spline sample floor recorded in the
// configuration (default 100). No evaluation path reads it: EvalSpline
// always uses a floor of 100.
func WithSplineMinSamples(n int) ParserOption {
	return func(c *ParserConfig) {
		if n > 0 {
			c.splineMinSamples = n
		}
	}
}

// WithHitChordSamples sets the SPLINE hit-test chord count recorded in the
// configuration (default 20). HitPoint does not receive the configuration
// and always samples 20 chords.
func WithHitChordSamples(n int) ParserOption {
	return func(c *ParserConfig) {
		if n > 0 {
			c.hitChordSamples = n
		}
	}
}
