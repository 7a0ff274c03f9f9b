package validation

import (
	"fmt"
	"regexp"
	"strings"
	"unicode/utf8"

	"github.com/goliatone/go-reportschema/pkg/model"
)

const (
	MsgNameRequired          = "Template name is required"
	MsgNameShort             = "Template name should be at least 3 characters"
	MsgDescriptionRequired   = "Template description is required"
	MsgDescriptionShort      = "Template description should be at least 10 characters"
	MsgSectionsRequired      = "Template must have at least one section"
	MsgSectionTitleRequired  = "Section title is required"
	MsgSectionEmpty          = "Section has no fields"
	MsgFieldNameRequired     = "Field name is required"
	MsgFieldNameInvalid      = "Field name must start with a letter or underscore and contain only letters, numbers, and underscores"
	MsgFieldLabelRequired    = "Field label is required"
	MsgSelectOptionsRequired = "Select fields must have at least one option"
	MsgMinMax                = "min must be less than max"
	MsgAddDescription        = "Consider adding a description to help users"
	MsgAddValidation         = "Consider adding validation rules for required fields"
	MsgNoRequiredFields      = "No fields are marked as required"

	ActionAddDescription = "Add description"
	ActionAddValidation  = "Add validation"
	ActionMarkRequired   = "Mark key fields as required"
)

var fieldNamePattern = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*$`)

// Limits holds the thresholds used by the built-in rules.
type Limits struct {
	MinNameLength        int
	MinDescriptionLength int
	MaxFields            int
	MaxSections          int
}

// DefaultLimits returns the stock thresholds.
func DefaultLimits() Limits {
	return Limits{
		MinNameLength:        3,
		MinDescriptionLength: 10,
		MaxFields:            50,
		MaxSections:          10,
	}
}

// Rule inspects a template and records findings on the report. Rules must be
// deterministic and must not retain the template.
type Rule func(t model.Template, limits Limits, report *Report)

// BuiltinRules returns the stock rule set in evaluation order.
func BuiltinRules() []Rule {
	return []Rule{
		templateMetadataRule,
		sectionsPresentRule,
		sectionRule,
		fieldIdentityRule,
		uniqueFieldNamesRule,
		fieldTypeRule,
		fieldSuggestionRule,
		structureRule,
	}
}

// FieldPath returns the dotted path of one property of one field.
func FieldPath(sectionIndex, fieldIndex int, prop string) string {
	return fmt.Sprintf("sections.%d.fields.%d.%s", sectionIndex, fieldIndex, prop)
}

// SectionPath returns the dotted path of one property of one section.
func SectionPath(sectionIndex int, prop string) string {
	return fmt.Sprintf("sections.%d.%s", sectionIndex, prop)
}

func blank(value string) bool {
	return strings.TrimSpace(value) == ""
}

func length(value string) int {
	return utf8.RuneCountInString(strings.TrimSpace(value))
}

func templateMetadataRule(t model.Template, limits Limits, report *Report) {
	switch {
	case blank(t.Name):
		report.Error("name", MsgNameRequired)
	case length(t.Name) < limits.MinNameLength:
		report.Warn("name", MsgNameShort)
	}

	switch {
	case blank(t.Description):
		report.Error("description", MsgDescriptionRequired)
	case length(t.Description) < limits.MinDescriptionLength:
		report.Warn("description", MsgDescriptionShort)
	}
}

func sectionsPresentRule(t model.Template, _ Limits, report *Report) {
	if len(t.Sections) == 0 {
		report.Error("sections", MsgSectionsRequired)
	}
}

func sectionRule(t model.Template, _ Limits, report *Report) {
	for sIdx, section := range t.Sections {
		if blank(section.Title) {
			report.Error(SectionPath(sIdx, "title"), MsgSectionTitleRequired)
		}
		if len(section.Fields) == 0 {
			report.Warn(SectionPath(sIdx, "fields"), MsgSectionEmpty)
		}
	}
}

func fieldIdentityRule(t model.Template, _ Limits, report *Report) {
	t.Walk(func(ref model.FieldRef, _ model.Section, field model.Field) {
		switch {
		case blank(field.Name):
			report.Error(FieldPath(ref.Section, ref.Field, "name"), MsgFieldNameRequired)
		case !fieldNamePattern.MatchString(field.Name):
			report.Error(FieldPath(ref.Section, ref.Field, "name"), MsgFieldNameInvalid)
		}
		if blank(field.Label) {
			report.Error(FieldPath(ref.Section, ref.Field, "label"), MsgFieldLabelRequired)
		}
	})
}

// uniqueFieldNamesRule scans the whole template once; every occurrence of a
// name after the first is reported at its own path and points back to the
// first occurrence.
func uniqueFieldNamesRule(t model.Template, _ Limits, report *Report) {
	first := make(map[string]model.FieldRef, t.FieldCount())
	t.Walk(func(ref model.FieldRef, _ model.Section, field model.Field) {
		if blank(field.Name) {
			return
		}
		original, seen := first[field.Name]
		if !seen {
			first[field.Name] = ref
			return
		}
		report.Error(
			FieldPath(ref.Section, ref.Field, "name"),
			fmt.Sprintf("Field name %q is already used by sections.%d.fields.%d", field.Name, original.Section, original.Field),
		)
	})
}

func fieldTypeRule(t model.Template, _ Limits, report *Report) {
	t.Walk(func(ref model.FieldRef, _ model.Section, field model.Field) {
		switch field.Type {
		case model.FieldTypeSelect, model.FieldTypeMultiselect:
			if len(field.Options) == 0 {
				report.Error(FieldPath(ref.Section, ref.Field, "options"), MsgSelectOptionsRequired)
			}
		case model.FieldTypeNumber:
			if v := field.Validation; v != nil && v.Min != nil && v.Max != nil && *v.Min >= *v.Max {
				report.Error(FieldPath(ref.Section, ref.Field, "validation"), MsgMinMax)
			}
		case model.FieldTypeText, model.FieldTypeTextarea, model.FieldTypeDate,
			model.FieldTypeCheckbox, model.FieldTypeFile, model.FieldTypeImage:
		}
	})
}

func fieldSuggestionRule(t model.Template, _ Limits, report *Report) {
	t.Walk(func(ref model.FieldRef, _ model.Section, field model.Field) {
		if blank(field.Description) {
			report.Suggest(FieldPath(ref.Section, ref.Field, "description"), MsgAddDescription, ActionAddDescription)
		}
		if field.Required && field.Validation.Empty() {
			report.Suggest(FieldPath(ref.Section, ref.Field, "validation"), MsgAddValidation, ActionAddValidation)
		}
	})
}

func structureRule(t model.Template, limits Limits, report *Report) {
	total := t.FieldCount()
	if total > limits.MaxFields {
		report.Warn(StructurePath, fmt.Sprintf("Template has more than %d fields; consider splitting it", limits.MaxFields))
	}

	required := 0
	t.Walk(func(_ model.FieldRef, _ model.Section, field model.Field) {
		if field.Required {
			required++
		}
	})
	if total > 0 && required == 0 {
		report.Suggest(StructurePath, MsgNoRequiredFields, ActionMarkRequired)
	}

	if len(t.Sections) > limits.MaxSections {
		report.Warn(StructurePath, fmt.Sprintf("Template has more than %d sections; consider consolidating", limits.MaxSections))
	}
}
