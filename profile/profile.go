package profile

// Stopper ends a profiling session.
type Stopper interface{ Stop() }

type settings struct {
	mode  string
	path  string
	quiet bool
}

// Option configures a profiling session.
type Option func(settings) settings

// WithMode selects the profiling mode. See [Modes].
func WithMode(mode string) Option {
	return func(s settings) settings {
		s.mode = mode

		return s
	}
}

// WithPath sets the directory profiles are written to.
func WithPath(path string) Option {
	return func(s settings) settings {
		s.path = path

		return s
	}
}

// WithQuiet suppresses the profiler's own log output.
func WithQuiet(quiet bool) Option {
	return func(s settings) settings {
		s.quiet = quiet

		return s
	}
}

// Start begins a profiling session and returns its [Stopper].
//
// Start returns a no-op Stopper if the mode is empty or unknown, or if the
// binary was built without the pprof tag. Stop is always safe to call.
func Start(opts ...Option) Stopper {
	var s settings

	for _, opt := range opts {
		s = opt(s)
	}

	if s.mode == "" {
		return ignore{}
	}

	return start(s)
}

type ignore struct{}

func (ignore) Stop() {}
