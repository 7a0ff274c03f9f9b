// Package editor implements the structural edits of a report template as pure
// transitions: every mutator receives a Template snapshot and returns a new,
// internally consistent one with contiguous order indices. Inputs are never
// modified, so callers can keep previous snapshots for undo/redo.
package editor

import (
	"github.com/goliatone/go-reportschema/pkg/model"
	"github.com/goliatone/go-reportschema/pkg/ordering"
)

// Option customises an Editor.
type Option func(*Editor)

// WithFactory injects the factory used to seed new sections and fields.
func WithFactory(factory model.Factory) Option {
	return func(e *Editor) {
		e.factory = factory
	}
}

// Editor applies mutations using a configurable model.Factory. The zero value
// is not usable; construct with New.
type Editor struct {
	factory model.Factory
}

// New constructs an Editor, defaulting to model.NewFactory().
func New(options ...Option) *Editor {
	e := &Editor{}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(e)
	}
	if e.factory == nil {
		e.factory = model.NewFactory()
	}
	return e
}

var defaultEditor = New()

// AddSection appends an empty section titled "Section {n+1}".
func AddSection(t model.Template) model.Template { return defaultEditor.AddSection(t) }

// UpdateSection merges patch into the section at index.
func UpdateSection(t model.Template, index int, patch SectionPatch) (model.Template, error) {
	return defaultEditor.UpdateSection(t, index, patch)
}

// DeleteSection removes the section at index and renumbers the rest.
func DeleteSection(t model.Template, index int) (model.Template, error) {
	return defaultEditor.DeleteSection(t, index)
}

// MoveSection relocates a section from one index to another.
func MoveSection(t model.Template, from, to int) model.Template {
	return defaultEditor.MoveSection(t, from, to)
}

// AddField appends a field of fieldType to the section at sectionIndex.
func AddField(t model.Template, sectionIndex int, fieldType model.FieldType) (model.Template, error) {
	return defaultEditor.AddField(t, sectionIndex, fieldType)
}

// UpdateField merges patch into one field of one section.
func UpdateField(t model.Template, sectionIndex, fieldIndex int, patch FieldPatch) (model.Template, error) {
	return defaultEditor.UpdateField(t, sectionIndex, fieldIndex, patch)
}

// DeleteField removes one field and renumbers the remaining fields.
func DeleteField(t model.Template, sectionIndex, fieldIndex int) (model.Template, error) {
	return defaultEditor.DeleteField(t, sectionIndex, fieldIndex)
}

// MoveField relocates a field within its section.
func MoveField(t model.Template, sectionIndex, from, to int) (model.Template, error) {
	return defaultEditor.MoveField(t, sectionIndex, from, to)
}

// AddSection appends an empty section with order n, where n is the current
// section count.
func (e *Editor) AddSection(t model.Template) model.Template {
	next := t.Clone()
	next.Sections = append(next.Sections, e.factory.Section(len(next.Sections)))
	return next
}

// UpdateSection structurally merges patch into the section at index.
func (e *Editor) UpdateSection(t model.Template, index int, patch SectionPatch) (model.Template, error) {
	if err := checkSection("update section", t, index); err != nil {
		return model.Template{}, err
	}
	next := t.Clone()
	next.Sections[index] = patch.apply(next.Sections[index])
	return next, nil
}

// DeleteSection removes the section at index; remaining sections are
// renumbered to [0, n-1).
func (e *Editor) DeleteSection(t model.Template, index int) (model.Template, error) {
	if err := checkSection("delete section", t, index); err != nil {
		return model.Template{}, err
	}
	next := t.Clone()
	remaining := append(next.Sections[:index:index], next.Sections[index+1:]...)
	next.Sections = ordering.Renumber(remaining)
	return next, nil
}

// MoveSection relocates the section at from to to. Out-of-range or equal
// indices leave the template unchanged, matching ordering.Move.
func (e *Editor) MoveSection(t model.Template, from, to int) model.Template {
	next := t.Clone()
	next.Sections = ordering.Reorder(next.Sections, from, to)
	return next
}

// AddField appends a new field to the target section with a generated unique
// name, type-appropriate defaults and order equal to the section's current
// field count.
func (e *Editor) AddField(t model.Template, sectionIndex int, fieldType model.FieldType) (model.Template, error) {
	if err := checkSection("add field", t, sectionIndex); err != nil {
		return model.Template{}, err
	}
	if !fieldType.Valid() {
		return model.Template{}, ErrUnknownFieldType
	}
	next := t.Clone()
	section := next.Sections[sectionIndex]
	field := e.factory.Field(fieldType, model.FieldName(t, fieldType), len(section.Fields))
	section.Fields = append(section.Fields, field)
	next.Sections[sectionIndex] = section
	return next, nil
}

// UpdateField structurally merges patch into the addressed field.
func (e *Editor) UpdateField(t model.Template, sectionIndex, fieldIndex int, patch FieldPatch) (model.Template, error) {
	if err := checkField("update field", t, sectionIndex, fieldIndex); err != nil {
		return model.Template{}, err
	}
	next := t.Clone()
	section := next.Sections[sectionIndex]
	updated, err := patch.apply(section.Fields[fieldIndex], e.factory.PlaceholderOptions)
	if err != nil {
		return model.Template{}, err
	}
	section.Fields[fieldIndex] = updated
	next.Sections[sectionIndex] = section
	return next, nil
}

// DeleteField removes the addressed field; remaining fields are renumbered.
func (e *Editor) DeleteField(t model.Template, sectionIndex, fieldIndex int) (model.Template, error) {
	if err := checkField("delete field", t, sectionIndex, fieldIndex); err != nil {
		return model.Template{}, err
	}
	next := t.Clone()
	section := next.Sections[sectionIndex]
	remaining := append(section.Fields[:fieldIndex:fieldIndex], section.Fields[fieldIndex+1:]...)
	section.Fields = ordering.Renumber(remaining)
	next.Sections[sectionIndex] = section
	return next, nil
}

// MoveField relocates a field inside the section at sectionIndex. The section
// index must be valid; from/to follow the ordering.Move no-op rules.
func (e *Editor) MoveField(t model.Template, sectionIndex, from, to int) (model.Template, error) {
	if err := checkSection("move field", t, sectionIndex); err != nil {
		return model.Template{}, err
	}
	next := t.Clone()
	section := next.Sections[sectionIndex]
	section.Fields = ordering.Reorder(section.Fields, from, to)
	next.Sections[sectionIndex] = section
	return next, nil
}

func checkSection(op string, t model.Template, index int) error {
	if !ordering.InRange(len(t.Sections), index) {
		return &IndexError{Op: op, Target: "section", Index: index, Len: len(t.Sections)}
	}
	return nil
}

func checkField(op string, t model.Template, sectionIndex, fieldIndex int) error {
	if err := checkSection(op, t, sectionIndex); err != nil {
		return err
	}
	fields := t.Sections[sectionIndex].Fields
	if !ordering.InRange(len(fields), fieldIndex) {
		return &IndexError{Op: op, Target: "field", Index: fieldIndex, Len: len(fields)}
	}
	return nil
}
