package model

import "strconv"

// Factory builds sections and fields carrying type-appropriate defaults.
type Factory struct {
	opts Options
}

// NewFactory creates a Factory, filling unset options with the defaults.
func NewFactory(options Options) *Factory {
	opts := defaultOptions()
	if options.Labeler != nil {
		opts.Labeler = options.Labeler
	}
	if len(options.PlaceholderOptions) > 0 {
		opts.PlaceholderOptions = append([]string(nil), options.PlaceholderOptions...)
	}
	if options.SectionTitle != nil {
		opts.SectionTitle = options.SectionTitle
	}
	return &Factory{opts: opts}
}

// Section returns an empty section positioned at index.
func (f *Factory) Section(index int) Section {
	return Section{
		Title:  f.opts.SectionTitle(index),
		Order:  index,
		Fields: []Field{},
	}
}

// Field returns a field of the given type positioned at order. Select and
// multiselect fields receive the placeholder options; checkboxes default to
// false.
func (f *Factory) Field(fieldType FieldType, name string, order int) Field {
	field := Field{
		Name:  name,
		Label: f.opts.Labeler(name),
		Type:  fieldType,
		Order: order,
	}
	switch fieldType {
	case FieldTypeSelect, FieldTypeMultiselect:
		field.Options = f.PlaceholderOptions()
	case FieldTypeCheckbox:
		field.Default = false
	case FieldTypeText, FieldTypeTextarea, FieldTypeNumber, FieldTypeDate, FieldTypeFile, FieldTypeImage:
	}
	return field
}

// PlaceholderOptions returns a copy of the options seeded into new select
// fields.
func (f *Factory) PlaceholderOptions() []string {
	return append([]string(nil), f.opts.PlaceholderOptions...)
}

// FieldName returns the first "{type}_field_{k}" name, k >= 1, that no field
// in t already uses.
func FieldName(t Template, fieldType FieldType) string {
	used := make(map[string]struct{}, t.FieldCount())
	t.Walk(func(_ FieldRef, _ Section, field Field) {
		used[field.Name] = struct{}{}
	})
	prefix := string(fieldType) + "_field_"
	for k := 1; ; k++ {
		candidate := prefix + strconv.Itoa(k)
		if _, exists := used[candidate]; !exists {
			return candidate
		}
	}
}

func defaultSectionTitle(index int) string {
	return "Section " + strconv.Itoa(index+1)
}
