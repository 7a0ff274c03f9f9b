// Package reportschema builds, edits and validates inspection report
// templates. The root package re-exports the most common entry points; the
// pkg/ packages hold the full API.
package reportschema

import (
	"context"

	"github.com/goliatone/go-reportschema/pkg/codec"
	"github.com/goliatone/go-reportschema/pkg/editor"
	"github.com/goliatone/go-reportschema/pkg/model"
	"github.com/goliatone/go-reportschema/pkg/openapi"
	"github.com/goliatone/go-reportschema/pkg/preview"
	"github.com/goliatone/go-reportschema/pkg/sample"
	"github.com/goliatone/go-reportschema/pkg/validation"
)

// Template aliases model.Template for callers that only import the root
// package.
type Template = model.Template

// Result aliases validation.Result.
type Result = validation.Result

// ImportResult aliases codec.ImportResult.
type ImportResult = codec.ImportResult

// NewTemplate returns an empty template ready for editing.
func NewTemplate(name string, reportType model.ReportType) Template {
	return model.NewTemplate(name, reportType)
}

// NewHistory starts an undo/redo history at t.
func NewHistory(t Template, options ...editor.HistoryOption) *editor.History {
	return editor.NewHistory(t, options...)
}

// Import decodes, sanitises, normalises and validates a JSON or YAML
// template document.
func Import(data []byte, options ...codec.ImportOption) (ImportResult, error) {
	return codec.Import(data, options...)
}

// Validate runs the stock rule set synchronously.
func Validate(t Template) Result {
	return validation.Validate(t)
}

// ValidateWith validates through v, falling back to the local rules when v
// is nil.
func ValidateWith(ctx context.Context, v validation.Validator, t Template) (Result, error) {
	if v == nil {
		v = validation.LocalValidator{}
	}
	return v.Validate(ctx, t)
}

// Sample generates sample values with a generator seeded from seed.
func Sample(t Template, seed int64) map[string]any {
	return sample.New(sample.WithSeed(seed)).Generate(t)
}

// PayloadSchema returns the OpenAPI document describing report payloads for
// t.
func PayloadSchema(t Template) ([]byte, error) {
	return openapi.Document(t).MarshalJSON()
}

// Preview renders t with values using the embedded HTML layout.
func Preview(t Template, values map[string]any) (string, error) {
	renderer, err := preview.New()
	if err != nil {
		return "", err
	}
	return renderer.Render(t, values)
}
