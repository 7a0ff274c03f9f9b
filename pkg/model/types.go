package model

import internalmodel "github.com/goliatone/go-reportschema/internal/model"

// FieldType re-exports the internal FieldType enumeration.
type FieldType = internalmodel.FieldType

const (
	FieldTypeText        = internalmodel.FieldTypeText
	FieldTypeTextarea    = internalmodel.FieldTypeTextarea
	FieldTypeNumber      = internalmodel.FieldTypeNumber
	FieldTypeDate        = internalmodel.FieldTypeDate
	FieldTypeSelect      = internalmodel.FieldTypeSelect
	FieldTypeMultiselect = internalmodel.FieldTypeMultiselect
	FieldTypeCheckbox    = internalmodel.FieldTypeCheckbox
	FieldTypeFile        = internalmodel.FieldTypeFile
	FieldTypeImage       = internalmodel.FieldTypeImage
)

// ReportType re-exports the internal ReportType enumeration.
type ReportType = internalmodel.ReportType

const (
	ReportTypePSV         = internalmodel.ReportTypePSV
	ReportTypeCrane       = internalmodel.ReportTypeCrane
	ReportTypeCorrosion   = internalmodel.ReportTypeCorrosion
	ReportTypeGeneral     = internalmodel.ReportTypeGeneral
	ReportTypeMaintenance = internalmodel.ReportTypeMaintenance
)

type Constraints = internalmodel.Constraints
type Field = internalmodel.Field
type Section = internalmodel.Section
type Template = internalmodel.Template
type FieldRef = internalmodel.FieldRef
type StructuralError = internalmodel.StructuralError

var (
	ErrUnknownFieldType  = internalmodel.ErrUnknownFieldType
	ErrUnknownReportType = internalmodel.ErrUnknownReportType
	ErrMalformedTemplate = internalmodel.ErrMalformedTemplate
)

// FieldTypes lists the supported field types in declaration order.
func FieldTypes() []FieldType { return internalmodel.FieldTypes() }

// ReportTypes lists the supported report types in declaration order.
func ReportTypes() []ReportType { return internalmodel.ReportTypes() }

// ParseFieldType converts a raw string into a FieldType.
func ParseFieldType(raw string) (FieldType, error) { return internalmodel.ParseFieldType(raw) }

// ParseReportType converts a raw string into a ReportType.
func ParseReportType(raw string) (ReportType, error) { return internalmodel.ParseReportType(raw) }

// Check verifies the structural contract of a template before validation.
func Check(t Template) error { return internalmodel.Check(t) }

// ValueKey derives the "{section}_{field}" key shared by sample data, payload
// schemas and previews.
func ValueKey(sectionIndex int, sectionTitle, fieldName string) string {
	return internalmodel.ValueKey(sectionIndex, sectionTitle, fieldName)
}

// ValueKeys assigns each field a unique value key, suffixing keys that two
// fields would otherwise share.
func ValueKeys(t Template) map[FieldRef]string { return internalmodel.ValueKeys(t) }

// DefaultLabeler turns a field name into a display label.
func DefaultLabeler(name string) string { return internalmodel.DefaultLabeler(name) }

// NewTemplate returns an empty template ready for editing.
func NewTemplate(name string, reportType ReportType) Template {
	return Template{
		Name:       name,
		ReportType: reportType,
		Sections:   []Section{},
	}
}

// Float returns a pointer to v, handy when building Constraints literals.
func Float(v float64) *float64 {
	return &v
}
