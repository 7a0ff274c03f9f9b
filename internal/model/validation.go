package model

import (
	"errors"
	"fmt"
	"strings"
)

var (
	ErrUnknownFieldType  = errors.New("model: unknown field type")
	ErrUnknownReportType = errors.New("model: unknown report type")
	ErrMalformedTemplate = errors.New("model: malformed template")
)

// StructuralError reports a template that cannot be handed to the validation
// engine: values outside the closed enums or broken order indices. Path uses
// the same dotted notation as validation issues.
type StructuralError struct {
	Path   string
	Reason string
	Err    error
}

func (e *StructuralError) Error() string {
	if e.Path == "" {
		return fmt.Sprintf("model: %s", e.Reason)
	}
	return fmt.Sprintf("model: %s: %s", e.Path, e.Reason)
}

func (e *StructuralError) Unwrap() error {
	if e.Err != nil {
		return e.Err
	}
	return ErrMalformedTemplate
}

// ParseFieldType converts raw into a FieldType, rejecting unknown values.
func ParseFieldType(raw string) (FieldType, error) {
	candidate := FieldType(strings.ToLower(strings.TrimSpace(raw)))
	if !candidate.Valid() {
		return "", fmt.Errorf("%w %q", ErrUnknownFieldType, raw)
	}
	return candidate, nil
}

// ParseReportType converts raw into a ReportType, rejecting unknown values.
func ParseReportType(raw string) (ReportType, error) {
	candidate := ReportType(strings.ToUpper(strings.TrimSpace(raw)))
	if !candidate.Valid() {
		return "", fmt.Errorf("%w %q", ErrUnknownReportType, raw)
	}
	return candidate, nil
}

// Check verifies the structural contract of t: enum members are known, only
// select/multiselect fields carry options, and order indices are contiguous.
// Content problems (empty titles, bad names) are left to the validation
// engine.
func Check(t Template) error {
	if !t.ReportType.Valid() {
		return &StructuralError{
			Path:   "reportType",
			Reason: fmt.Sprintf("unknown report type %q", t.ReportType),
			Err:    ErrUnknownReportType,
		}
	}

	for sIdx, section := range t.Sections {
		sectionPath := fmt.Sprintf("sections.%d", sIdx)
		if section.Order != sIdx {
			return &StructuralError{
				Path:   sectionPath + ".order",
				Reason: fmt.Sprintf("expected order %d, got %d", sIdx, section.Order),
			}
		}
		for fIdx, field := range section.Fields {
			fieldPath := fmt.Sprintf("%s.fields.%d", sectionPath, fIdx)
			if !field.Type.Valid() {
				return &StructuralError{
					Path:   fieldPath + ".type",
					Reason: fmt.Sprintf("unknown field type %q", field.Type),
					Err:    ErrUnknownFieldType,
				}
			}
			if field.Order != fIdx {
				return &StructuralError{
					Path:   fieldPath + ".order",
					Reason: fmt.Sprintf("expected order %d, got %d", fIdx, field.Order),
				}
			}
			if len(field.Options) > 0 && !field.Type.HasOptions() {
				return &StructuralError{
					Path:   fieldPath + ".options",
					Reason: fmt.Sprintf("options are not allowed on %s fields", field.Type),
				}
			}
		}
	}
	return nil
}
