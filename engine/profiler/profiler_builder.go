package profiler

import "time"

// ProfilerBuilderOption is a functional option applied to a profiler during construction via NewProfiler.
type ProfilerBuilderOption func(*profiler)

// WithInterval sets how often stats are reported. Non-positive values are ignored.
//
// Parameters:
//   - interval: the reporting interval
//
// Returns:
//   - ProfilerBuilderOption: a function that applies the interval option to a profiler
func WithInterval(interval time.Duration) ProfilerBuilderOption {
	return func(p *profiler) {
		if interval > 0 {
			p.updateInterval = interval
		}
	}
}

// WithReporter replaces the default log output with a custom sink.
//
// Parameters:
//   - reporter: the function receiving each interval's stats
//
// Returns:
//   - ProfilerBuilderOption: a function that applies the reporter option to a profiler
func WithReporter(reporter func(Stats)) ProfilerBuilderOption {
	return func(p *profiler) {
		if reporter != nil {
			p.reporter = reporter
		}
	}
}

// WithClock replaces the time source.
//
// Parameters:
//   - now: the function returning the current time
//
// Returns:
//   - ProfilerBuilderOption: a function that applies the clock option to a profiler
func WithClock(now func() time.Time) ProfilerBuilderOption {
	return func(p *profiler) {
		if now != nil {
			p.now = now
		}
	}
}
