package validation

// Severity classifies a validation finding. Only SeverityError blocks saving
// or activating a template.
type Severity string

const (
	SeverityError   Severity = "error"
	SeverityWarning Severity = "warning"
	SeverityInfo    Severity = "info"
)

// StructurePath is the issue path used for template-wide heuristics.
const StructurePath = "structure"

// Issue is one validation finding. Field holds a dotted path such as "name",
// "sections.0.title" or "sections.1.fields.2.options". Action is only set on
// suggestions.
type Issue struct {
	Field    string   `json:"field"`
	Message  string   `json:"message"`
	Severity Severity `json:"severity"`
	Action   string   `json:"action,omitempty"`
}

// Result is the outcome of validating a template. IsValid is true iff Errors
// is empty; warnings and suggestions never affect it. The slices are never
// nil so encoded results are stable.
type Result struct {
	IsValid     bool    `json:"isValid"`
	Errors      []Issue `json:"errors"`
	Warnings    []Issue `json:"warnings"`
	Suggestions []Issue `json:"suggestions"`
}

// Blocking reports whether the result prevents persistence or activation.
func (r Result) Blocking() bool {
	return len(r.Errors) > 0
}

// Issues returns errors, warnings and suggestions in that order.
func (r Result) Issues() []Issue {
	out := make([]Issue, 0, len(r.Errors)+len(r.Warnings)+len(r.Suggestions))
	out = append(out, r.Errors...)
	out = append(out, r.Warnings...)
	out = append(out, r.Suggestions...)
	return out
}

// Counts returns the number of issues per severity.
func (r Result) Counts() map[Severity]int {
	return map[Severity]int{
		SeverityError:   len(r.Errors),
		SeverityWarning: len(r.Warnings),
		SeverityInfo:    len(r.Suggestions),
	}
}

// Normalize fills nil slices and recomputes IsValid. Results decoded from a
// remote validator pass through it so they match locally produced ones.
func (r Result) Normalize() Result {
	if r.Errors == nil {
		r.Errors = []Issue{}
	}
	if r.Warnings == nil {
		r.Warnings = []Issue{}
	}
	if r.Suggestions == nil {
		r.Suggestions = []Issue{}
	}
	r.IsValid = len(r.Errors) == 0
	return r
}

// Report accumulates issues while rules run. Rules receive it instead of
// returning slices so every rule sees the same ordering.
type Report struct {
	errors      []Issue
	warnings    []Issue
	suggestions []Issue
}

// Error records an error-severity issue.
func (r *Report) Error(path, message string) {
	r.errors = append(r.errors, Issue{Field: path, Message: message, Severity: SeverityError})
}

// Warn records a warning.
func (r *Report) Warn(path, message string) {
	r.warnings = append(r.warnings, Issue{Field: path, Message: message, Severity: SeverityWarning})
}

// Suggest records a suggestion with an optional remediation label.
func (r *Report) Suggest(path, message, action string) {
	r.suggestions = append(r.suggestions, Issue{Field: path, Message: message, Severity: SeverityInfo, Action: action})
}

func (r *Report) result() Result {
	return Result{
		Errors:      r.errors,
		Warnings:    r.warnings,
		Suggestions: r.suggestions,
	}.Normalize()
}
