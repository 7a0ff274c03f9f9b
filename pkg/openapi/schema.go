package openapi

import (
	"strings"
	"unicode"

	"github.com/getkin/kin-openapi/openapi3"

	"github.com/goliatone/go-reportschema/pkg/model"
)

const (
	openAPIVersion  = "3.0.3"
	documentVersion = "1.0.0"
	formatDate      = "date"
)

// PayloadSchema returns an object schema with one property per field, keyed by
// model.ValueKeys. Fields of required sections that are themselves required
// are listed in the schema's required set.
func PayloadSchema(t model.Template) *openapi3.Schema {
	schema := openapi3.NewObjectSchema()
	schema.Title = t.Name
	schema.Description = t.Description
	schema.Properties = make(openapi3.Schemas, t.FieldCount())

	var required []string
	keys := model.ValueKeys(t)
	t.Walk(func(ref model.FieldRef, section model.Section, field model.Field) {
		key := keys[ref]
		schema.Properties[key] = openapi3.NewSchemaRef("", FieldSchema(field))
		if section.IsRequired && field.Required {
			required = append(required, key)
		}
	})
	schema.Required = required
	return schema
}

// FieldSchema maps a single field onto its value schema.
func FieldSchema(field model.Field) *openapi3.Schema {
	var schema *openapi3.Schema
	c := field.Validation

	switch field.Type {
	case model.FieldTypeNumber:
		schema = openapi3.NewFloat64Schema()
		if c != nil && c.Min != nil {
			schema.WithMin(*c.Min)
		}
		if c != nil && c.Max != nil {
			schema.WithMax(*c.Max)
		}
	case model.FieldTypeDate:
		schema = openapi3.NewStringSchema().WithFormat(formatDate)
	case model.FieldTypeSelect:
		schema = openapi3.NewStringSchema().WithEnum(enumValues(field.Options)...)
	case model.FieldTypeMultiselect:
		items := openapi3.NewStringSchema().WithEnum(enumValues(field.Options)...)
		schema = openapi3.NewArraySchema().WithItems(items)
		if field.Required {
			schema.WithMinItems(1)
		}
	case model.FieldTypeCheckbox:
		schema = openapi3.NewBoolSchema()
	case model.FieldTypeFile, model.FieldTypeImage:
		schema = openapi3.NewStringSchema()
		schema.Extensions = map[string]any{"x-upload": string(field.Type)}
	default:
		schema = openapi3.NewStringSchema()
		applyTextConstraints(schema, c)
	}

	schema.Title = field.Label
	schema.Description = field.Description
	if field.Default != nil {
		schema.Default = field.Default
	}
	return schema
}

func applyTextConstraints(schema *openapi3.Schema, c *model.Constraints) {
	if c == nil {
		return
	}
	if c.Min != nil && *c.Min > 0 {
		schema.WithMinLength(int64(*c.Min))
	}
	if c.Max != nil && *c.Max >= 0 {
		schema.WithMaxLength(int64(*c.Max))
	}
	if c.Pattern != "" {
		schema.WithPattern(c.Pattern)
	}
}

func enumValues(options []string) []any {
	out := make([]any, len(options))
	for idx, option := range options {
		out[idx] = option
	}
	return out
}

// SchemaName returns the component name used for t in Document, e.g.
// "PSVBenchTestReport" for "PSV bench test".
func SchemaName(t model.Template) string {
	var builder strings.Builder
	for _, word := range strings.FieldsFunc(t.Name, func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r)
	}) {
		runes := []rune(word)
		runes[0] = unicode.ToUpper(runes[0])
		builder.WriteString(string(runes))
	}
	name := builder.String()
	if name == "" || unicode.IsDigit([]rune(name)[0]) {
		name = "Template" + name
	}
	return name + "Report"
}
