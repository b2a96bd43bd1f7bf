package tui

import "io"

// Theme captures message prefixes the runner applies to driver output.
type Theme struct {
	InfoPrefix  string
	ErrorPrefix string
}

// DefaultTheme marks validation errors with a cross.
var DefaultTheme = Theme{ErrorPrefix: "✗ "}

// Option configures the runner.
type Option func(*Runner)

// WithPromptDriver overrides the prompt driver.
func WithPromptDriver(driver PromptDriver) Option {
	return func(r *Runner) {
		if driver != nil {
			r.driver = driver
		}
	}
}

// WithOutput sets where the text summary is written.
func WithOutput(out io.Writer) Option {
	return func(r *Runner) {
		if out != nil {
			r.out = out
		}
	}
}

// WithTheme applies message prefixes.
func WithTheme(theme Theme) Option {
	return func(r *Runner) {
		r.theme = theme
	}
}

// WithMaxAttempts bounds how many times the form is re-prompted after a
// rejected submit. Zero means unbounded.
func WithMaxAttempts(n int) Option {
	return func(r *Runner) {
		if n >= 0 {
			r.maxAttempts = n
		}
	}
}
