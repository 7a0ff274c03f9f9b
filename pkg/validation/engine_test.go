package validation_test

import (
	"fmt"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-reportschema/pkg/model"
	"github.com/goliatone/go-reportschema/pkg/validation"
)

func validTemplate() model.Template {
	return model.Template{
		Name:        "Crane inspection",
		Description: "Monthly crane inspection checklist",
		ReportType:  model.ReportTypeCrane,
		Sections: []model.Section{
			{
				Title: "General",
				Order: 0,
				Fields: []model.Field{
					{
						Name:        "inspector",
						Label:       "Inspector",
						Type:        model.FieldTypeText,
						Description: "Person performing the inspection",
						Required:    true,
						Validation:  &model.Constraints{Min: model.Float(2)},
					},
				},
			},
		},
	}
}

func withFields(fields ...model.Field) model.Template {
	tpl := validTemplate()
	for idx := range fields {
		fields[idx].Order = idx
		if fields[idx].Description == "" {
			fields[idx].Description = "described"
		}
	}
	tpl.Sections[0].Fields = fields
	return tpl
}

func TestValidate_ValidTemplateIsClean(t *testing.T) {
	result := validation.Validate(validTemplate())

	want := validation.Result{
		IsValid:     true,
		Errors:      []validation.Issue{},
		Warnings:    []validation.Issue{},
		Suggestions: []validation.Issue{},
	}
	if diff := cmp.Diff(want, result); diff != "" {
		t.Fatalf("result mismatch (-want +got):\n%s", diff)
	}
}

func TestValidate_NoSections(t *testing.T) {
	tpl := model.Template{
		Name:        "Empty template",
		Description: "A template without any sections",
		ReportType:  model.ReportTypeGeneral,
	}

	result := validation.Validate(tpl)

	if result.IsValid {
		t.Fatalf("expected template without sections to be invalid")
	}
	want := []validation.Issue{{Field: "sections", Message: validation.MsgSectionsRequired, Severity: validation.SeverityError}}
	if diff := cmp.Diff(want, result.Errors); diff != "" {
		t.Fatalf("errors mismatch (-want +got):\n%s", diff)
	}
}

func TestValidate_TitleAndMalformedName(t *testing.T) {
	tpl := validTemplate()
	tpl.Sections = []model.Section{{
		Title: "",
		Fields: []model.Field{
			{Name: "1bad", Label: "Bad", Type: model.FieldTypeText},
		},
	}}

	result := validation.Validate(tpl)

	want := []validation.Issue{
		{Field: "sections.0.title", Message: validation.MsgSectionTitleRequired, Severity: validation.SeverityError},
		{Field: "sections.0.fields.0.name", Message: validation.MsgFieldNameInvalid, Severity: validation.SeverityError},
	}
	if diff := cmp.Diff(want, result.Errors); diff != "" {
		t.Fatalf("errors mismatch (-want +got):\n%s", diff)
	}
}

func TestValidate_SelectWithoutOptions(t *testing.T) {
	tpl := withFields(model.Field{Name: "status", Label: "Status", Type: model.FieldTypeSelect, Options: []string{}})

	result := validation.Validate(tpl)

	want := []validation.Issue{{Field: "sections.0.fields.0.options", Message: validation.MsgSelectOptionsRequired, Severity: validation.SeverityError}}
	if diff := cmp.Diff(want, result.Errors); diff != "" {
		t.Fatalf("errors mismatch (-want +got):\n%s", diff)
	}
}

func TestValidate_MinNotLessThanMax(t *testing.T) {
	cases := []struct {
		name     string
		min, max float64
		wantErr  bool
	}{
		{name: "inverted", min: 10, max: 5, wantErr: true},
		{name: "equal", min: 5, max: 5, wantErr: true},
		{name: "ordered", min: 1, max: 5, wantErr: false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			tpl := withFields(model.Field{
				Name:       "pressure",
				Label:      "Pressure",
				Type:       model.FieldTypeNumber,
				Required:   true,
				Validation: &model.Constraints{Min: model.Float(tc.min), Max: model.Float(tc.max)},
			})
			result := validation.Validate(tpl)
			if got := len(result.Errors) > 0; got != tc.wantErr {
				t.Fatalf("expected error=%v, got %+v", tc.wantErr, result.Errors)
			}
			if tc.wantErr && result.Errors[0].Message != "min must be less than max" {
				t.Fatalf("unexpected message %q", result.Errors[0].Message)
			}
		})
	}
}

func TestValidate_MinMaxOnlyAppliesToNumbers(t *testing.T) {
	tpl := withFields(model.Field{
		Name:       "notes",
		Label:      "Notes",
		Type:       model.FieldTypeText,
		Validation: &model.Constraints{Min: model.Float(10), Max: model.Float(5)},
	})
	if result := validation.Validate(tpl); !result.IsValid {
		t.Fatalf("expected text bounds to be ignored, got %+v", result.Errors)
	}
}

func TestValidate_DuplicateNamesAcrossSections(t *testing.T) {
	tpl := validTemplate()
	tpl.Sections = append(tpl.Sections,
		model.Section{Title: "Second", Order: 1, Fields: []model.Field{
			{Name: "inspector", Label: "Inspector again", Type: model.FieldTypeText},
		}},
		model.Section{Title: "Third", Order: 2, Fields: []model.Field{
			{Name: "serial", Label: "Serial", Type: model.FieldTypeText},
			{Name: "inspector", Label: "Inspector third", Type: model.FieldTypeText, Order: 1},
		}},
	)

	result := validation.Validate(tpl)

	want := []validation.Issue{
		{Field: "sections.1.fields.0.name", Message: `Field name "inspector" is already used by sections.0.fields.0`, Severity: validation.SeverityError},
		{Field: "sections.2.fields.1.name", Message: `Field name "inspector" is already used by sections.0.fields.0`, Severity: validation.SeverityError},
	}
	if diff := cmp.Diff(want, result.Errors); diff != "" {
		t.Fatalf("errors mismatch (-want +got):\n%s", diff)
	}
}

func TestValidate_DuplicateNamesSamePositionDifferentSections(t *testing.T) {
	tpl := validTemplate()
	tpl.Sections = append(tpl.Sections, model.Section{Title: "Second", Order: 1, Fields: []model.Field{
		{Name: "inspector", Label: "Inspector", Type: model.FieldTypeText},
	}})

	result := validation.Validate(tpl)

	if len(result.Errors) != 1 || result.Errors[0].Field != "sections.1.fields.0.name" {
		t.Fatalf("expected one duplicate error on the second field, got %+v", result.Errors)
	}
}

func TestValidate_TemplateMetadata(t *testing.T) {
	tpl := validTemplate()
	tpl.Name = "  "
	tpl.Description = "short"

	result := validation.Validate(tpl)

	wantErrors := []validation.Issue{{Field: "name", Message: validation.MsgNameRequired, Severity: validation.SeverityError}}
	wantWarnings := []validation.Issue{{Field: "description", Message: validation.MsgDescriptionShort, Severity: validation.SeverityWarning}}
	if diff := cmp.Diff(wantErrors, result.Errors); diff != "" {
		t.Fatalf("errors mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff(wantWarnings, result.Warnings); diff != "" {
		t.Fatalf("warnings mismatch (-want +got):\n%s", diff)
	}

	tpl.Name = "QA"
	tpl.Description = ""
	result = validation.Validate(tpl)
	if result.Warnings[0].Field != "name" || result.Errors[0].Field != "description" {
		t.Fatalf("unexpected issues: errors=%+v warnings=%+v", result.Errors, result.Warnings)
	}
}

func TestValidate_FieldIdentity(t *testing.T) {
	tpl := withFields(
		model.Field{Name: "", Label: "", Type: model.FieldTypeDate},
		model.Field{Name: "has space", Label: "Has space", Type: model.FieldTypeDate},
		model.Field{Name: "_ok_1", Label: "Ok", Type: model.FieldTypeDate},
	)

	result := validation.Validate(tpl)

	want := []validation.Issue{
		{Field: "sections.0.fields.0.name", Message: validation.MsgFieldNameRequired, Severity: validation.SeverityError},
		{Field: "sections.0.fields.0.label", Message: validation.MsgFieldLabelRequired, Severity: validation.SeverityError},
		{Field: "sections.0.fields.1.name", Message: validation.MsgFieldNameInvalid, Severity: validation.SeverityError},
	}
	if diff := cmp.Diff(want, result.Errors); diff != "" {
		t.Fatalf("errors mismatch (-want +got):\n%s", diff)
	}
}

func TestValidate_Suggestions(t *testing.T) {
	tpl := validTemplate()
	tpl.Sections[0].Fields = []model.Field{
		{Name: "serial", Label: "Serial", Type: model.FieldTypeText, Required: true},
	}

	result := validation.Validate(tpl)

	want := []validation.Issue{
		{Field: "sections.0.fields.0.description", Message: validation.MsgAddDescription, Severity: validation.SeverityInfo, Action: validation.ActionAddDescription},
		{Field: "sections.0.fields.0.validation", Message: validation.MsgAddValidation, Severity: validation.SeverityInfo, Action: validation.ActionAddValidation},
	}
	if diff := cmp.Diff(want, result.Suggestions); diff != "" {
		t.Fatalf("suggestions mismatch (-want +got):\n%s", diff)
	}
	if !result.IsValid {
		t.Fatalf("suggestions must not block: %+v", result.Errors)
	}
}

func TestValidate_StructureHeuristics(t *testing.T) {
	tpl := validTemplate()
	tpl.Sections = nil
	for s := 0; s < 11; s++ {
		section := model.Section{Title: fmt.Sprintf("Section %d", s+1), Order: s}
		for f := 0; f < 5; f++ {
			section.Fields = append(section.Fields, model.Field{
				Name:        fmt.Sprintf("f_%d_%d", s, f),
				Label:       "Field",
				Type:        model.FieldTypeCheckbox,
				Description: "described",
				Order:       f,
			})
		}
		tpl.Sections = append(tpl.Sections, section)
	}

	result := validation.Validate(tpl)

	wantWarnings := []validation.Issue{
		{Field: "structure", Message: "Template has more than 50 fields; consider splitting it", Severity: validation.SeverityWarning},
		{Field: "structure", Message: "Template has more than 10 sections; consider consolidating", Severity: validation.SeverityWarning},
	}
	if diff := cmp.Diff(wantWarnings, result.Warnings); diff != "" {
		t.Fatalf("warnings mismatch (-want +got):\n%s", diff)
	}
	wantSuggestions := []validation.Issue{
		{Field: "structure", Message: validation.MsgNoRequiredFields, Severity: validation.SeverityInfo, Action: validation.ActionMarkRequired},
	}
	if diff := cmp.Diff(wantSuggestions, result.Suggestions); diff != "" {
		t.Fatalf("suggestions mismatch (-want +got):\n%s", diff)
	}
	if !result.IsValid {
		t.Fatalf("warnings must not block")
	}
}

func TestEngine_CustomLimitsAndRules(t *testing.T) {
	engine := validation.New(
		validation.WithMaxSections(0),
		validation.WithMaxFields(0),
		validation.WithRules(func(t model.Template, _ validation.Limits, report *validation.Report) {
			if !t.IsActive {
				report.Warn("isActive", "Template is inactive")
			}
		}),
	)
	if got := engine.Limits(); got.MaxFields != 50 || got.MaxSections != 10 {
		t.Fatalf("non-positive limits must be ignored, got %+v", got)
	}

	result := engine.Validate(validTemplate())
	if len(result.Warnings) != 1 || result.Warnings[0].Field != "isActive" {
		t.Fatalf("expected custom rule warning, got %+v", result.Warnings)
	}

	strict := validation.New(validation.WithMaxFields(1))
	tpl := withFields(
		model.Field{Name: "a", Label: "A", Type: model.FieldTypeText, Required: true, Validation: &model.Constraints{Pattern: "^a"}},
		model.Field{Name: "b", Label: "B", Type: model.FieldTypeText},
	)
	if res := strict.Validate(tpl); len(res.Warnings) != 1 || res.Warnings[0].Field != validation.StructurePath {
		t.Fatalf("expected field count warning, got %+v", res.Warnings)
	}
}

func TestValidate_Idempotent(t *testing.T) {
	tpl := validTemplate()
	tpl.Sections = append(tpl.Sections, model.Section{Title: "", Order: 1, Fields: []model.Field{
		{Name: "inspector", Label: "", Type: model.FieldTypeMultiselect},
	}})

	first := validation.Validate(tpl)
	second := validation.Validate(tpl)
	if diff := cmp.Diff(first, second); diff != "" {
		t.Fatalf("validation is not idempotent (-first +second):\n%s", diff)
	}
}

func TestResult_IsValidTracksErrorsOnly(t *testing.T) {
	tpl := validTemplate()
	tpl.Description = "tiny"
	tpl.Sections = append(tpl.Sections, model.Section{Title: "Empty", Order: 1})

	result := validation.Validate(tpl)
	if !result.IsValid || result.Blocking() {
		t.Fatalf("warnings alone must not invalidate: %+v", result)
	}
	counts := result.Counts()
	if counts[validation.SeverityWarning] != 2 || counts[validation.SeverityError] != 0 {
		t.Fatalf("unexpected counts %v", counts)
	}

	tpl.Sections[1].Title = ""
	result = validation.Validate(tpl)
	if result.IsValid != (len(result.Errors) == 0) {
		t.Fatalf("IsValid out of sync with errors: %+v", result)
	}
	if len(result.Issues()) != len(result.Errors)+len(result.Warnings)+len(result.Suggestions) {
		t.Fatalf("Issues() dropped entries")
	}
}
