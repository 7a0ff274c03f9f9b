package openapi_test

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/getkin/kin-openapi/openapi3"
	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-reportschema/pkg/model"
	"github.com/goliatone/go-reportschema/pkg/openapi"
	"github.com/goliatone/go-reportschema/pkg/sample"
)

func craneTemplate() model.Template {
	return model.Template{
		Name:        "Crane inspection",
		Description: "Annual overhead crane inspection",
		ReportType:  model.ReportTypeCrane,
		Sections: []model.Section{
			{
				Title:      "Hoist",
				IsRequired: true,
				Fields: []model.Field{
					{Name: "serial", Label: "Serial", Type: model.FieldTypeText, Required: true, Validation: &model.Constraints{Min: model.Float(3), Max: model.Float(12), Pattern: `^[A-Z0-9-]+$`}},
					{Name: "capacity", Label: "Capacity", Type: model.FieldTypeNumber, Required: true, Order: 1, Validation: &model.Constraints{Min: model.Float(0), Max: model.Float(50)}},
					{Name: "inspected_on", Label: "Inspected on", Type: model.FieldTypeDate, Order: 2},
					{Name: "defects", Label: "Defects", Type: model.FieldTypeMultiselect, Required: true, Options: []string{"Wear", "Crack"}, Order: 3},
				},
			},
			{
				Title: "Sign off",
				Order: 1,
				Fields: []model.Field{
					{Name: "verdict", Label: "Verdict", Type: model.FieldTypeSelect, Required: true, Options: []string{"Safe", "Unsafe"}},
					{Name: "retest", Label: "Retest", Type: model.FieldTypeCheckbox, Order: 1, Default: false},
					{Name: "photo", Label: "Photo", Type: model.FieldTypeImage, Order: 2},
				},
			},
		},
	}
}

func TestPayloadSchema_TypeMapping(t *testing.T) {
	schema := openapi.PayloadSchema(craneTemplate())

	if !schema.Type.Is(openapi3.TypeObject) {
		t.Fatalf("expected object schema, got %v", schema.Type)
	}
	wantKeys := []string{
		"hoist_serial", "hoist_capacity", "hoist_inspected_on", "hoist_defects",
		"sign_off_verdict", "sign_off_retest", "sign_off_photo",
	}
	for _, key := range wantKeys {
		if _, ok := schema.Properties[key]; !ok {
			t.Fatalf("missing property %s in %v", key, schema.Properties)
		}
	}

	serial := schema.Properties["hoist_serial"].Value
	if !serial.Type.Is(openapi3.TypeString) || serial.MinLength != 3 || serial.MaxLength == nil || *serial.MaxLength != 12 || serial.Pattern == "" {
		t.Fatalf("text constraints not mapped: %+v", serial)
	}
	capacity := schema.Properties["hoist_capacity"].Value
	if !capacity.Type.Is(openapi3.TypeNumber) || *capacity.Min != 0 || *capacity.Max != 50 {
		t.Fatalf("number constraints not mapped: %+v", capacity)
	}
	if got := schema.Properties["hoist_inspected_on"].Value.Format; got != "date" {
		t.Fatalf("date format = %q", got)
	}
	defects := schema.Properties["hoist_defects"].Value
	if !defects.Type.Is(openapi3.TypeArray) || defects.MinItems != 1 {
		t.Fatalf("multiselect not mapped: %+v", defects)
	}
	if diff := cmp.Diff([]any{"Wear", "Crack"}, defects.Items.Value.Enum); diff != "" {
		t.Fatalf("multiselect enum mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]any{"Safe", "Unsafe"}, schema.Properties["sign_off_verdict"].Value.Enum); diff != "" {
		t.Fatalf("select enum mismatch (-want +got):\n%s", diff)
	}
	if !schema.Properties["sign_off_retest"].Value.Type.Is(openapi3.TypeBoolean) {
		t.Fatalf("checkbox must map to boolean")
	}
	if schema.Properties["sign_off_photo"].Value.Title != "Photo" {
		t.Fatalf("labels must become titles")
	}

	// sign_off_verdict is required but its section is optional.
	if diff := cmp.Diff([]string{"hoist_serial", "hoist_capacity", "hoist_defects"}, schema.Required); diff != "" {
		t.Fatalf("required mismatch (-want +got):\n%s", diff)
	}
}

func TestDocument_IsValidOpenAPI(t *testing.T) {
	doc := openapi.Document(craneTemplate())
	if err := doc.Validate(context.Background()); err != nil {
		t.Fatalf("document invalid: %v", err)
	}
	if _, ok := doc.Components.Schemas["CraneInspectionReport"]; !ok {
		t.Fatalf("expected CraneInspectionReport component, got %v", doc.Components.Schemas)
	}

	payload, err := json.Marshal(doc)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	loaded, err := openapi3.NewLoader().LoadFromData(payload)
	if err != nil {
		t.Fatalf("reload: %v", err)
	}
	if loaded.Info.Title != "Crane inspection" {
		t.Fatalf("unexpected title %q", loaded.Info.Title)
	}
}

func TestSchemaName(t *testing.T) {
	cases := map[string]string{
		"PSV bench test":   "PSVBenchTestReport",
		"crane-inspection": "CraneInspectionReport",
		"":                 "TemplateReport",
		"2024 survey":      "Template2024SurveyReport",
	}
	for name, want := range cases {
		if got := openapi.SchemaName(model.Template{Name: name}); got != want {
			t.Errorf("SchemaName(%q) = %q, want %q", name, got, want)
		}
	}
}

func TestValidatePayload(t *testing.T) {
	tpl := craneTemplate()
	tpl.Sections[0].Fields[0].Validation = nil

	values := sample.New(sample.WithSeed(5)).Generate(tpl)
	values["hoist_capacity"] = 12
	if err := openapi.ValidatePayload(tpl, values); err != nil {
		t.Fatalf("sample payload must validate: %v", err)
	}

	values["hoist_capacity"] = 75
	values["sign_off_verdict"] = "Maybe"
	err := openapi.ValidatePayload(tpl, values)
	if err == nil {
		t.Fatalf("expected payload errors")
	}
	var multi openapi3.MultiError
	if !errors.As(err, &multi) || len(multi) < 2 {
		t.Fatalf("expected both violations, got %v", err)
	}

	if err := openapi.ValidatePayload(tpl, nil); err == nil {
		t.Fatalf("missing required values must fail")
	}
}

func TestPayloadSchema_CollidingKeys(t *testing.T) {
	tpl := model.Template{Sections: []model.Section{
		{Title: "a", Fields: []model.Field{{Name: "b_c", Type: model.FieldTypeText}}},
		{Title: "a_b", Fields: []model.Field{{Name: "c", Type: model.FieldTypeNumber}}},
	}}
	schema := openapi.PayloadSchema(tpl)

	if len(schema.Properties) != 2 {
		t.Fatalf("expected 2 properties, got %d", len(schema.Properties))
	}
	if got := schema.Properties["a_b_c"].Value.Type; !got.Is(openapi3.TypeString) {
		t.Fatalf("a_b_c type = %v", got)
	}
	if got := schema.Properties["a_b_c_2"].Value.Type; !got.Is(openapi3.TypeNumber) {
		t.Fatalf("a_b_c_2 type = %v", got)
	}
}
