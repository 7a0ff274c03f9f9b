// Package prompt drives interactive template authoring on a terminal. Every
// change goes through editor commands on an editor.History, so the session
// supports undo and redo.
package prompt

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/goliatone/go-reportschema/pkg/editor"
	"github.com/goliatone/go-reportschema/pkg/model"
	"github.com/goliatone/go-reportschema/pkg/validation"
)

// Menu entries offered between edits.
const (
	ActionAddSection = "Add section"
	ActionAddField   = "Add field"
	ActionUndo       = "Undo"
	ActionRedo       = "Redo"
	ActionValidate   = "Validate"
	ActionFinish     = "Finish"
)

var menu = []string{ActionAddSection, ActionAddField, ActionUndo, ActionRedo, ActionValidate, ActionFinish}

// Result is the outcome of a wizard session.
type Result struct {
	Template   model.Template
	Validation validation.Result
}

// WizardOption customises a Wizard.
type WizardOption func(*Wizard)

// WithValidator replaces the local validation engine.
func WithValidator(v validation.Validator) WizardOption {
	return func(w *Wizard) {
		if v != nil {
			w.validator = v
		}
	}
}

// WithInitial starts the session from an existing template instead of
// asking for template metadata.
func WithInitial(t model.Template) WizardOption {
	return func(w *Wizard) {
		initial := t.Clone()
		w.initial = &initial
	}
}

// Wizard builds a template interactively.
type Wizard struct {
	driver    Driver
	validator validation.Validator
	initial   *model.Template
}

// NewWizard creates a Wizard prompting through driver.
func NewWizard(driver Driver, options ...WizardOption) *Wizard {
	w := &Wizard{
		driver:    driver,
		validator: validation.LocalValidator{Engine: validation.New()},
	}
	for _, opt := range options {
		if opt != nil {
			opt(w)
		}
	}
	return w
}

// Run collects template metadata, then loops over the edit menu until the
// user finishes. Finishing with validation errors requires confirmation.
func (w *Wizard) Run(ctx context.Context) (Result, error) {
	start, err := w.startTemplate(ctx)
	if err != nil {
		return Result{}, err
	}
	history := editor.NewHistory(start)

	for {
		choice, err := w.driver.Select(ctx, SelectConfig{Message: "Next step", Options: menu})
		if err != nil {
			return Result{}, err
		}
		if choice < 0 || choice >= len(menu) {
			continue
		}

		switch menu[choice] {
		case ActionAddSection:
			err = w.addSection(ctx, history)
		case ActionAddField:
			err = w.addField(ctx, history)
		case ActionUndo:
			_, err = history.Undo()
		case ActionRedo:
			_, err = history.Redo()
		case ActionValidate:
			_, err = w.report(ctx, history.Current())
		case ActionFinish:
			result, done, finishErr := w.finish(ctx, history.Current())
			if finishErr != nil || done {
				return result, finishErr
			}
		}

		switch {
		case err == nil:
		case errors.Is(err, editor.ErrNothingToUndo), errors.Is(err, editor.ErrNothingToRedo):
			if err := w.driver.Info(ctx, "Nothing to "+strings.ToLower(menu[choice])); err != nil {
				return Result{}, err
			}
		default:
			return Result{}, err
		}
	}
}

func (w *Wizard) startTemplate(ctx context.Context) (model.Template, error) {
	if w.initial != nil {
		return w.initial.Clone(), nil
	}

	name, err := w.driver.Input(ctx, InputConfig{Message: "Template name", Validator: notBlank})
	if err != nil {
		return model.Template{}, err
	}
	description, err := w.driver.TextArea(ctx, TextAreaConfig{Message: "Description"})
	if err != nil {
		return model.Template{}, err
	}

	reportTypes := model.ReportTypes()
	options := make([]string, len(reportTypes))
	for i, rt := range reportTypes {
		options[i] = string(rt)
	}
	idx, err := w.driver.Select(ctx, SelectConfig{Message: "Report type", Options: options})
	if err != nil {
		return model.Template{}, err
	}
	if idx < 0 || idx >= len(reportTypes) {
		return model.Template{}, fmt.Errorf("prompt: report type choice %d out of range", idx)
	}

	t := model.NewTemplate(strings.TrimSpace(name), reportTypes[idx])
	t.Description = strings.TrimSpace(description)
	return t, nil
}

func (w *Wizard) addSection(ctx context.Context, history *editor.History) error {
	index := len(history.Current().Sections)
	title, err := w.driver.Input(ctx, InputConfig{
		Message: "Section title",
		Default: "Section " + strconv.Itoa(index+1),
	})
	if err != nil {
		return err
	}
	required, err := w.driver.Confirm(ctx, ConfirmConfig{Message: "Is the section required?"})
	if err != nil {
		return err
	}

	_, err = history.Apply(editor.Sequence(
		editor.AddSectionCmd(),
		editor.UpdateSectionCmd(index, editor.SectionPatch{
			Title:      editor.String(strings.TrimSpace(title)),
			IsRequired: editor.Bool(required),
		}),
	))
	return err
}

func (w *Wizard) addField(ctx context.Context, history *editor.History) error {
	current := history.Current()
	if len(current.Sections) == 0 {
		return w.driver.Info(ctx, "Add a section first")
	}

	sectionIndex := len(current.Sections) - 1
	if len(current.Sections) > 1 {
		titles := make([]string, len(current.Sections))
		for i, section := range current.Sections {
			titles[i] = fmt.Sprintf("%d. %s", i+1, section.Title)
		}
		idx, err := w.driver.Select(ctx, SelectConfig{Message: "Section", Options: titles, DefaultIndex: sectionIndex})
		if err != nil {
			return err
		}
		if idx >= 0 && idx < len(titles) {
			sectionIndex = idx
		}
	}

	fieldTypes := model.FieldTypes()
	typeNames := make([]string, len(fieldTypes))
	for i, ft := range fieldTypes {
		typeNames[i] = string(ft)
	}
	typeIdx, err := w.driver.Select(ctx, SelectConfig{Message: "Field type", Options: typeNames})
	if err != nil {
		return err
	}
	if typeIdx < 0 || typeIdx >= len(fieldTypes) {
		return fmt.Errorf("prompt: field type choice %d out of range", typeIdx)
	}
	fieldType := fieldTypes[typeIdx]

	patch, err := w.fieldPatch(ctx, current, fieldType)
	if err != nil {
		return err
	}

	fieldIndex := len(current.Sections[sectionIndex].Fields)
	_, err = history.Apply(editor.Sequence(
		editor.AddFieldCmd(sectionIndex, fieldType),
		editor.UpdateFieldCmd(sectionIndex, fieldIndex, patch),
	))
	return err
}

func (w *Wizard) fieldPatch(ctx context.Context, current model.Template, fieldType model.FieldType) (editor.FieldPatch, error) {
	var patch editor.FieldPatch

	name, err := w.driver.Input(ctx, InputConfig{
		Message:   "Field name",
		Default:   model.FieldName(current, fieldType),
		Validator: notBlank,
	})
	if err != nil {
		return patch, err
	}
	name = strings.TrimSpace(name)
	label, err := w.driver.Input(ctx, InputConfig{Message: "Label", Default: model.DefaultLabeler(name)})
	if err != nil {
		return patch, err
	}
	required, err := w.driver.Confirm(ctx, ConfirmConfig{Message: "Required?"})
	if err != nil {
		return patch, err
	}
	patch.Name = editor.String(name)
	patch.Label = editor.String(strings.TrimSpace(label))
	patch.Required = editor.Bool(required)

	switch fieldType {
	case model.FieldTypeSelect, model.FieldTypeMultiselect:
		raw, err := w.driver.Input(ctx, InputConfig{
			Message:   "Options (comma separated)",
			Validator: notBlank,
		})
		if err != nil {
			return patch, err
		}
		options := splitOptions(raw)
		patch.Options = &options
	case model.FieldTypeNumber:
		constraints, err := w.numberConstraints(ctx)
		if err != nil {
			return patch, err
		}
		if !constraints.Empty() {
			patch.Validation = &constraints
		}
	case model.FieldTypeText, model.FieldTypeTextarea, model.FieldTypeDate,
		model.FieldTypeCheckbox, model.FieldTypeFile, model.FieldTypeImage:
	}
	return patch, nil
}

func (w *Wizard) numberConstraints(ctx context.Context) (*model.Constraints, error) {
	var c model.Constraints
	for _, bound := range []struct {
		message string
		target  **float64
	}{
		{message: "Minimum (blank for none)", target: &c.Min},
		{message: "Maximum (blank for none)", target: &c.Max},
	} {
		raw, err := w.driver.Input(ctx, InputConfig{Message: bound.message, Validator: optionalNumber})
		if err != nil {
			return nil, err
		}
		if raw = strings.TrimSpace(raw); raw == "" {
			continue
		}
		value, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			return nil, fmt.Errorf("prompt: %s: %w", bound.message, err)
		}
		*bound.target = &value
	}
	return &c, nil
}

// report validates t and prints one line per issue.
func (w *Wizard) report(ctx context.Context, t model.Template) (validation.Result, error) {
	result, err := w.validator.Validate(ctx, t)
	if err != nil {
		return validation.Result{}, err
	}
	if len(result.Issues()) == 0 {
		return result, w.driver.Info(ctx, "No issues found")
	}
	for _, issue := range result.Issues() {
		if err := w.driver.Info(ctx, FormatIssue(issue)); err != nil {
			return validation.Result{}, err
		}
	}
	return result, nil
}

func (w *Wizard) finish(ctx context.Context, t model.Template) (Result, bool, error) {
	result, err := w.report(ctx, t)
	if err != nil {
		return Result{}, false, err
	}
	if result.Blocking() {
		keep, err := w.driver.Confirm(ctx, ConfirmConfig{
			Message: fmt.Sprintf("Template has %d error(s). Finish anyway?", len(result.Errors)),
		})
		if err != nil || !keep {
			return Result{}, false, err
		}
	}
	return Result{Template: t, Validation: result}, true, nil
}

// FormatIssue renders an issue as "severity field: message".
func FormatIssue(issue validation.Issue) string {
	line := fmt.Sprintf("%-7s %s: %s", issue.Severity, issue.Field, issue.Message)
	if issue.Action != "" {
		line += " (" + issue.Action + ")"
	}
	return line
}

func splitOptions(raw string) []string {
	parts := strings.Split(raw, ",")
	out := make([]string, 0, len(parts))
	for _, part := range parts {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

func notBlank(value string) error {
	if strings.TrimSpace(value) == "" {
		return errors.New("a value is required")
	}
	return nil
}

func optionalNumber(value string) error {
	value = strings.TrimSpace(value)
	if value == "" {
		return nil
	}
	if _, err := strconv.ParseFloat(value, 64); err != nil {
		return errors.New("enter a number")
	}
	return nil
}
