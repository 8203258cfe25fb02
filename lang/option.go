package lang

import "github.com/ardnew/dfprop/log"

// parseConfig holds parser configuration options.
type parseConfig struct {
	skipLineSeparator   bool
	checkDuplicateEntry bool
	logger              log.Logger // structured logger (zero value is a no-op)
}

// ParseOption configures parsing behavior.
type ParseOption func(parseConfig) parseConfig

// WithSkipLineSeparator removes all line separators from the input before
// parsing. Full-line comments are dropped first so they cannot merge into the
// following line.
func WithSkipLineSeparator(skip bool) ParseOption {
	return func(c parseConfig) parseConfig {
		c.skipLineSeparator = skip

		return c
	}
}

// WithCheckDuplicateEntry makes a repeated key within one map fatal.
// By default the last occurrence wins.
func WithCheckDuplicateEntry(check bool) ParseOption {
	return func(c parseConfig) parseConfig {
		c.checkDuplicateEntry = check

		return c
	}
}

// WithLogger sets the structured logger for trace-level debugging.
// If not provided, the logger is zero-valued and all logging is a no-op.
func WithLogger(logger log.Logger) ParseOption {
	return func(c parseConfig) parseConfig {
		c.logger = logger

		return c
	}
}

func makeParseConfig(opts ...ParseOption) parseConfig {
	var c parseConfig

	for _, opt := range opts {
		c = opt(c)
	}

	return c
}

// DefaultIndent is the number of spaces per depth in the indented layout.
const DefaultIndent = 4

// formatConfig holds serializer configuration options.
type formatConfig struct {
	oneLiner  bool
	sideSpace bool
	indent    int
	mapper    func(any) (*Map, bool)
}

// FormatOption configures serialization behavior.
type FormatOption func(formatConfig) formatConfig

// WithOneLiner selects the single-line layout.
func WithOneLiner(enable bool) FormatOption {
	return func(c formatConfig) formatConfig {
		c.oneLiner = enable

		return c
	}
}

// WithSideSpace pads separators and braces with spaces in the single-line
// layout. It has no effect on the indented layout.
func WithSideSpace(enable bool) FormatOption {
	return func(c formatConfig) formatConfig {
		c.sideSpace = enable

		return c
	}
}

// WithIndent sets the number of spaces per depth in the indented layout.
// Non-positive widths select [DefaultIndent].
func WithIndent(width int) FormatOption {
	return func(c formatConfig) formatConfig {
		c.indent = width

		return c
	}
}

// WithObjectMapper installs a hook that converts host values which are
// neither primitive nor [Structured] into a map before serialization.
// The hook reports false if it cannot convert the value.
func WithObjectMapper(mapper func(any) (*Map, bool)) FormatOption {
	return func(c formatConfig) formatConfig {
		c.mapper = mapper

		return c
	}
}

func makeFormatConfig(opts ...FormatOption) formatConfig {
	c := formatConfig{indent: DefaultIndent}

	for _, opt := range opts {
		c = opt(c)
	}

	if c.indent <= 0 {
		c.indent = DefaultIndent
	}

	return c
}
