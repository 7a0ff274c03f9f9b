package validation

import "github.com/goliatone/go-reportschema/pkg/model"

// Option customises an Engine.
type Option func(*Engine)

// WithMaxFields overrides the total field count above which a warning is
// raised. Values below 1 are ignored.
func WithMaxFields(n int) Option {
	return func(e *Engine) {
		if n > 0 {
			e.limits.MaxFields = n
		}
	}
}

// WithMaxSections overrides the section count above which a warning is raised.
// Values below 1 are ignored.
func WithMaxSections(n int) Option {
	return func(e *Engine) {
		if n > 0 {
			e.limits.MaxSections = n
		}
	}
}

// WithRules appends custom rules after the built-in ones.
func WithRules(rules ...Rule) Option {
	return func(e *Engine) {
		for _, rule := range rules {
			if rule != nil {
				e.rules = append(e.rules, rule)
			}
		}
	}
}

// Engine runs the rule set against template snapshots. An Engine holds no
// mutable state after construction and may be shared between goroutines.
type Engine struct {
	limits Limits
	rules  []Rule
}

// New constructs an Engine with the built-in rules and default limits.
func New(options ...Option) *Engine {
	e := &Engine{
		limits: DefaultLimits(),
		rules:  BuiltinRules(),
	}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(e)
	}
	return e
}

// Limits returns the thresholds in use.
func (e *Engine) Limits() Limits {
	return e.limits
}

// Validate runs every rule in order; rules are never short-circuited, so every
// applicable issue is reported. Validate is deterministic: the same template
// always yields the same issue lists.
func (e *Engine) Validate(t model.Template) Result {
	report := &Report{}
	for _, rule := range e.rules {
		rule(t, e.limits, report)
	}
	return report.result()
}

var defaultEngine = New()

// Validate checks t with the default engine.
func Validate(t model.Template) Result {
	return defaultEngine.Validate(t)
}
