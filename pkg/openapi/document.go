package openapi

import (
	"fmt"

	"github.com/getkin/kin-openapi/openapi3"

	"github.com/goliatone/go-reportschema/pkg/model"
)

// Document wraps PayloadSchema in a standalone OpenAPI document under
// components.schemas.
func Document(t model.Template) *openapi3.T {
	title := t.Name
	if title == "" {
		title = "Report template"
	}

	info := &openapi3.Info{
		Title:       title,
		Description: t.Description,
		Version:     documentVersion,
	}
	if t.ReportType != "" {
		info.Extensions = map[string]any{"x-report-type": string(t.ReportType)}
	}

	return &openapi3.T{
		OpenAPI: openAPIVersion,
		Info:    info,
		Paths:   openapi3.NewPaths(),
		Components: &openapi3.Components{
			Schemas: openapi3.Schemas{
				SchemaName(t): openapi3.NewSchemaRef("", PayloadSchema(t)),
			},
		},
	}
}

// ValidatePayload checks report values against the payload schema of t. All
// violations are reported, not just the first.
func ValidatePayload(t model.Template, values map[string]any) error {
	if values == nil {
		values = map[string]any{}
	}
	if err := PayloadSchema(t).VisitJSON(values, openapi3.MultiErrors()); err != nil {
		return fmt.Errorf("openapi: payload does not match template: %w", err)
	}
	return nil
}
