package model

// FieldType enumerates the input kinds a report template can declare.
type FieldType string

const (
	FieldTypeText        FieldType = "text"
	FieldTypeTextarea    FieldType = "textarea"
	FieldTypeNumber      FieldType = "number"
	FieldTypeDate        FieldType = "date"
	FieldTypeSelect      FieldType = "select"
	FieldTypeMultiselect FieldType = "multiselect"
	FieldTypeCheckbox    FieldType = "checkbox"
	FieldTypeFile        FieldType = "file"
	FieldTypeImage       FieldType = "image"
)

var fieldTypes = []FieldType{
	FieldTypeText,
	FieldTypeTextarea,
	FieldTypeNumber,
	FieldTypeDate,
	FieldTypeSelect,
	FieldTypeMultiselect,
	FieldTypeCheckbox,
	FieldTypeFile,
	FieldTypeImage,
}

// FieldTypes returns every supported field type in declaration order.
func FieldTypes() []FieldType {
	return append([]FieldType(nil), fieldTypes...)
}

// Valid reports whether t is one of the declared field types.
func (t FieldType) Valid() bool {
	for _, candidate := range fieldTypes {
		if candidate == t {
			return true
		}
	}
	return false
}

// HasOptions reports whether fields of this type carry an option list.
func (t FieldType) HasOptions() bool {
	return t == FieldTypeSelect || t == FieldTypeMultiselect
}

// ReportType identifies the inspection family a template produces reports for.
type ReportType string

const (
	ReportTypePSV         ReportType = "PSV"
	ReportTypeCrane       ReportType = "CRANE"
	ReportTypeCorrosion   ReportType = "CORROSION"
	ReportTypeGeneral     ReportType = "GENERAL"
	ReportTypeMaintenance ReportType = "MAINTENANCE"
)

var reportTypes = []ReportType{
	ReportTypePSV,
	ReportTypeCrane,
	ReportTypeCorrosion,
	ReportTypeGeneral,
	ReportTypeMaintenance,
}

// ReportTypes returns every supported report type in declaration order.
func ReportTypes() []ReportType {
	return append([]ReportType(nil), reportTypes...)
}

// Valid reports whether r is one of the declared report types.
func (r ReportType) Valid() bool {
	for _, candidate := range reportTypes {
		if candidate == r {
			return true
		}
	}
	return false
}

// Constraints holds the optional validation bounds of a field. Their meaning
// depends on the field type: length bounds for text, numeric bounds for
// number, a size bound for file/image and a regex (or accept list) in Pattern.
type Constraints struct {
	Min     *float64 `json:"min,omitempty" yaml:"min,omitempty"`
	Max     *float64 `json:"max,omitempty" yaml:"max,omitempty"`
	Pattern string   `json:"pattern,omitempty" yaml:"pattern,omitempty"`
}

// Empty reports whether no constraint is set.
func (c *Constraints) Empty() bool {
	return c == nil || (c.Min == nil && c.Max == nil && c.Pattern == "")
}

// Clone returns a deep copy of the constraint set.
func (c *Constraints) Clone() *Constraints {
	if c == nil {
		return nil
	}
	out := &Constraints{Pattern: c.Pattern}
	if c.Min != nil {
		min := *c.Min
		out.Min = &min
	}
	if c.Max != nil {
		max := *c.Max
		out.Max = &max
	}
	return out
}

// Field is a single typed input definition inside a section.
type Field struct {
	Name        string       `json:"name" yaml:"name"`
	Label       string       `json:"label" yaml:"label"`
	Type        FieldType    `json:"type" yaml:"type"`
	Description string       `json:"description,omitempty" yaml:"description,omitempty"`
	Required    bool         `json:"required" yaml:"required"`
	Order       int          `json:"order" yaml:"order"`
	Options     []string     `json:"options,omitempty" yaml:"options,omitempty"`
	Validation  *Constraints `json:"validation,omitempty" yaml:"validation,omitempty"`
	Default     any          `json:"defaultValue,omitempty" yaml:"defaultValue,omitempty"`
}

// WithOrder returns a copy of the field positioned at order.
func (f Field) WithOrder(order int) Field {
	f.Order = order
	return f
}

// Position returns the field's order index.
func (f Field) Position() int {
	return f.Order
}

// Clone returns a deep copy of the field.
func (f Field) Clone() Field {
	if f.Options != nil {
		f.Options = append([]string{}, f.Options...)
	}
	f.Validation = f.Validation.Clone()
	return f
}

// Section is an ordered group of fields within a template.
type Section struct {
	Title       string  `json:"title" yaml:"title"`
	Description string  `json:"description,omitempty" yaml:"description,omitempty"`
	Order       int     `json:"order" yaml:"order"`
	IsRequired  bool    `json:"isRequired" yaml:"isRequired"`
	Fields      []Field `json:"fields" yaml:"fields"`
}

// WithOrder returns a copy of the section positioned at order.
func (s Section) WithOrder(order int) Section {
	s.Order = order
	return s
}

// Position returns the section's order index.
func (s Section) Position() int {
	return s.Order
}

// Clone returns a deep copy of the section and its fields.
func (s Section) Clone() Section {
	fields := make([]Field, len(s.Fields))
	for idx, field := range s.Fields {
		fields[idx] = field.Clone()
	}
	s.Fields = fields
	return s
}

// Template is the top-level report schema being authored. Values are treated
// as immutable snapshots: mutators in pkg/editor return fresh copies.
type Template struct {
	ID          string     `json:"id,omitempty" yaml:"id,omitempty"`
	Name        string     `json:"name" yaml:"name"`
	Description string     `json:"description" yaml:"description"`
	ReportType  ReportType `json:"reportType" yaml:"reportType"`
	IsActive    bool       `json:"isActive" yaml:"isActive"`
	Sections    []Section  `json:"sections" yaml:"sections"`
}

// Clone returns a deep copy of the template.
func (t Template) Clone() Template {
	sections := make([]Section, len(t.Sections))
	for idx, section := range t.Sections {
		sections[idx] = section.Clone()
	}
	t.Sections = sections
	return t
}

// FieldCount returns the number of fields across every section.
func (t Template) FieldCount() int {
	total := 0
	for _, section := range t.Sections {
		total += len(section.Fields)
	}
	return total
}

// FieldRef locates a field inside a template.
type FieldRef struct {
	Section int
	Field   int
}

// Walk calls fn for every field in section then field order.
func (t Template) Walk(fn func(ref FieldRef, section Section, field Field)) {
	for sIdx, section := range t.Sections {
		for fIdx, field := range section.Fields {
			fn(FieldRef{Section: sIdx, Field: fIdx}, section, field)
		}
	}
}
