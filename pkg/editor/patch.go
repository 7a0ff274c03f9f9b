package editor

import "github.com/goliatone/go-reportschema/pkg/model"

// SectionPatch lists the section properties to overwrite. Nil members are left
// unchanged; Order is owned by the editor and cannot be patched.
type SectionPatch struct {
	Title       *string `json:"title,omitempty"`
	Description *string `json:"description,omitempty"`
	IsRequired  *bool   `json:"isRequired,omitempty"`
}

func (p SectionPatch) apply(section model.Section) model.Section {
	if p.Title != nil {
		section.Title = *p.Title
	}
	if p.Description != nil {
		section.Description = *p.Description
	}
	if p.IsRequired != nil {
		section.IsRequired = *p.IsRequired
	}
	return section
}

// FieldPatch lists the field properties to overwrite. Nil members are left
// unchanged. Options and Validation use an extra level of indirection so a
// patch can clear them: a non-nil pointer to a nil value removes the
// property.
type FieldPatch struct {
	Name        *string             `json:"name,omitempty"`
	Label       *string             `json:"label,omitempty"`
	Type        *model.FieldType    `json:"type,omitempty"`
	Description *string             `json:"description,omitempty"`
	Required    *bool               `json:"required,omitempty"`
	Options     *[]string           `json:"options,omitempty"`
	Validation  **model.Constraints `json:"validation,omitempty"`
	Default     *any                `json:"defaultValue,omitempty"`
}

func (p FieldPatch) apply(field model.Field, placeholders func() []string) (model.Field, error) {
	if p.Type != nil && *p.Type != field.Type {
		if !p.Type.Valid() {
			return model.Field{}, ErrUnknownFieldType
		}
		switch {
		case p.Type.HasOptions() && !field.Type.HasOptions():
			field.Options = placeholders()
		case !p.Type.HasOptions():
			field.Options = nil
		}
		field.Type = *p.Type
		field.Default = nil
	}
	if p.Name != nil {
		field.Name = *p.Name
	}
	if p.Label != nil {
		field.Label = *p.Label
	}
	if p.Description != nil {
		field.Description = *p.Description
	}
	if p.Required != nil {
		field.Required = *p.Required
	}
	if p.Options != nil {
		field.Options = append([]string(nil), (*p.Options)...)
	}
	if p.Validation != nil {
		field.Validation = (*p.Validation).Clone()
	}
	if p.Default != nil {
		field.Default = *p.Default
	}
	return field, nil
}

// String, Bool and Type return pointers for patch literals.
func String(v string) *string { return &v }

func Bool(v bool) *bool { return &v }

func Type(v model.FieldType) *model.FieldType { return &v }

// Options wraps values for FieldPatch.Options. Passing no values clears the
// option list.
func Options(values ...string) *[]string {
	if len(values) == 0 {
		var empty []string
		return &empty
	}
	out := append([]string(nil), values...)
	return &out
}

// Validation wraps c for FieldPatch.Validation. A nil c clears the
// constraints.
func Validation(c *model.Constraints) **model.Constraints {
	return &c
}
