// Package validation classifies problems in a report template as errors,
// warnings or suggestions. Validate is pure and deterministic; only errors
// block saving or activating a template. The Validator interface lets the
// application swap in a remote validator whose Result replaces the local one
// wholesale.
package validation
