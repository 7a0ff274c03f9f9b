package prompt

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-reportschema/pkg/model"
	"github.com/goliatone/go-reportschema/pkg/validation"
)

// scriptDriver answers prompts from a queue. Each answer must match the
// prompt kind: string for Input/TextArea, bool for Confirm, int for Select.
type scriptDriver struct {
	answers  []any
	pos      int
	messages []string
	prompts  []string
}

func (s *scriptDriver) next(kind, message string) (any, error) {
	s.prompts = append(s.prompts, kind+": "+message)
	if s.pos >= len(s.answers) {
		return nil, fmt.Errorf("no answer scripted for %s %q", kind, message)
	}
	answer := s.answers[s.pos]
	s.pos++
	if err, ok := answer.(error); ok {
		return nil, err
	}
	return answer, nil
}

func (s *scriptDriver) Input(_ context.Context, cfg InputConfig) (string, error) {
	answer, err := s.next("input", cfg.Message)
	if err != nil {
		return "", err
	}
	value := answer.(string)
	if value == "" {
		value = cfg.Default
	}
	if cfg.Validator != nil {
		if err := cfg.Validator(value); err != nil {
			return "", err
		}
	}
	return value, nil
}

func (s *scriptDriver) Confirm(_ context.Context, cfg ConfirmConfig) (bool, error) {
	answer, err := s.next("confirm", cfg.Message)
	if err != nil {
		return false, err
	}
	return answer.(bool), nil
}

func (s *scriptDriver) Select(_ context.Context, cfg SelectConfig) (int, error) {
	answer, err := s.next("select", cfg.Message)
	if err != nil {
		return 0, err
	}
	return answer.(int), nil
}

func (s *scriptDriver) TextArea(_ context.Context, cfg TextAreaConfig) (string, error) {
	answer, err := s.next("textarea", cfg.Message)
	if err != nil {
		return "", err
	}
	return answer.(string), nil
}

func (s *scriptDriver) Info(_ context.Context, msg string) error {
	s.messages = append(s.messages, msg)
	return nil
}

func menuIndex(action string) int {
	for i, entry := range menu {
		if entry == action {
			return i
		}
	}
	panic("unknown action " + action)
}

func typeIndex(ft model.FieldType) int {
	for i, candidate := range model.FieldTypes() {
		if candidate == ft {
			return i
		}
	}
	panic("unknown field type " + string(ft))
}

func reportTypeIndex(rt model.ReportType) int {
	for i, candidate := range model.ReportTypes() {
		if candidate == rt {
			return i
		}
	}
	panic("unknown report type " + string(rt))
}

func TestWizard_BuildsTemplate(t *testing.T) {
	driver := &scriptDriver{answers: []any{
		"Crane inspection",
		"Periodic inspection of overhead cranes",
		reportTypeIndex(model.ReportTypeCrane),

		menuIndex(ActionAddSection), "Hoist", true,

		menuIndex(ActionAddField), typeIndex(model.FieldTypeText), "serial", "", true,

		menuIndex(ActionAddField), typeIndex(model.FieldTypeSelect), "verdict", "Verdict", false, "Pass, Fail,  ",

		menuIndex(ActionAddField), typeIndex(model.FieldTypeNumber), "", "Capacity", false, "1", "",

		menuIndex(ActionFinish),
	}}

	result, err := NewWizard(driver).Run(context.Background())
	if err != nil {
		t.Fatalf("run: %v (prompts %v)", err, driver.prompts)
	}

	want := []model.Section{{
		Title:      "Hoist",
		IsRequired: true,
		Fields: []model.Field{
			{Name: "serial", Label: "Serial", Type: model.FieldTypeText, Required: true},
			{Name: "verdict", Label: "Verdict", Type: model.FieldTypeSelect, Options: []string{"Pass", "Fail"}, Order: 1},
			{Name: "number_field_1", Label: "Capacity", Type: model.FieldTypeNumber, Order: 2, Validation: &model.Constraints{Min: model.Float(1)}},
		},
	}}
	if diff := cmp.Diff(want, result.Template.Sections); diff != "" {
		t.Fatalf("sections mismatch (-want +got):\n%s", diff)
	}
	if result.Template.Name != "Crane inspection" || result.Template.ReportType != model.ReportTypeCrane {
		t.Fatalf("unexpected metadata %+v", result.Template)
	}
	if !result.Validation.IsValid {
		t.Fatalf("expected valid template, got %+v", result.Validation)
	}
	if driver.pos != len(driver.answers) {
		t.Fatalf("consumed %d of %d answers", driver.pos, len(driver.answers))
	}
}

func TestWizard_UndoRedo(t *testing.T) {
	initial := model.NewTemplate("Corrosion survey", model.ReportTypeCorrosion)
	initial.Description = "Wall thickness readings per location"

	driver := &scriptDriver{answers: []any{
		menuIndex(ActionUndo),
		menuIndex(ActionAddSection), "Readings", false,
		menuIndex(ActionAddSection), "Photos", false,
		menuIndex(ActionUndo),
		menuIndex(ActionRedo),
		menuIndex(ActionUndo),
		menuIndex(ActionRedo),
		menuIndex(ActionRedo),
		menuIndex(ActionUndo),
		menuIndex(ActionFinish),
	}}

	result, err := NewWizard(driver, WithInitial(initial)).Run(context.Background())
	if err != nil {
		t.Fatalf("run: %v", err)
	}
	if got := len(result.Template.Sections); got != 1 {
		t.Fatalf("expected 1 section after undo, got %d", got)
	}
	if result.Template.Sections[0].Title != "Readings" {
		t.Fatalf("unexpected section %+v", result.Template.Sections[0])
	}
	wantMessages := []string{"Nothing to undo", "Nothing to redo"}
	for _, want := range wantMessages {
		if !contains(driver.messages, want) {
			t.Fatalf("expected message %q in %v", want, driver.messages)
		}
	}
}

func TestWizard_FinishWithErrorsNeedsConfirmation(t *testing.T) {
	initial := model.NewTemplate("", model.ReportTypeGeneral)

	driver := &scriptDriver{answers: []any{
		menuIndex(ActionFinish), false,
		menuIndex(ActionAddField),
		menuIndex(ActionFinish), true,
	}}

	result, err := NewWizard(driver, WithInitial(initial)).Run(context.Background())
	if err != nil {
		t.Fatalf("run: %v", err)
	}
	if result.Validation.IsValid {
		t.Fatalf("expected invalid result")
	}
	if !contains(driver.messages, "Add a section first") {
		t.Fatalf("expected section hint, got %v", driver.messages)
	}
	var sawNameError bool
	for _, msg := range driver.messages {
		if strings.HasPrefix(msg, "error") && strings.Contains(msg, "name: Template name is required") {
			sawNameError = true
		}
	}
	if !sawNameError {
		t.Fatalf("expected formatted name error in %v", driver.messages)
	}
}

func TestWizard_SectionChoiceWithMultipleSections(t *testing.T) {
	initial := model.NewTemplate("PSV bench test", model.ReportTypePSV)
	initial.Description = "Bench test of pressure safety valves"

	driver := &scriptDriver{answers: []any{
		menuIndex(ActionAddSection), "", false,
		menuIndex(ActionAddSection), "Results", true,
		menuIndex(ActionAddField), 0, typeIndex(model.FieldTypeCheckbox), "", "", false,
		menuIndex(ActionFinish),
	}}

	result, err := NewWizard(driver, WithInitial(initial)).Run(context.Background())
	if err != nil {
		t.Fatalf("run: %v", err)
	}
	first := result.Template.Sections[0]
	if first.Title != "Section 1" || len(first.Fields) != 1 {
		t.Fatalf("unexpected first section %+v", first)
	}
	field := first.Fields[0]
	if field.Name != "checkbox_field_1" || field.Label != "Checkbox Field 1" || field.Default != false {
		t.Fatalf("unexpected field %+v", field)
	}
	if len(result.Template.Sections[1].Fields) != 0 {
		t.Fatalf("second section should stay empty")
	}
}

func TestWizard_Abort(t *testing.T) {
	driver := &scriptDriver{answers: []any{ErrAborted}}
	if _, err := NewWizard(driver).Run(context.Background()); !errors.Is(err, ErrAborted) {
		t.Fatalf("expected ErrAborted, got %v", err)
	}
}

func TestFormatIssue(t *testing.T) {
	got := FormatIssue(validation.Issue{
		Field:    "sections.0.fields.1.description",
		Message:  validation.MsgAddDescription,
		Severity: validation.SeverityInfo,
		Action:   validation.ActionAddDescription,
	})
	want := "info    sections.0.fields.1.description: Consider adding a description to help users (Add description)"
	if got != want {
		t.Fatalf("FormatIssue() = %q, want %q", got, want)
	}
}

func contains(values []string, want string) bool {
	for _, v := range values {
		if v == want {
			return true
		}
	}
	return false
}
