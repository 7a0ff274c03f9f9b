package editor

import "github.com/goliatone/go-reportschema/pkg/model"

// Command is a pure template transition. UI event handlers build commands from
// primitive parameters and hand them to a History (or apply them directly).
type Command func(model.Template) (model.Template, error)

// AddSectionCmd appends a default section.
func AddSectionCmd() Command {
	return func(t model.Template) (model.Template, error) {
		return AddSection(t), nil
	}
}

// UpdateSectionCmd patches the section at index.
func UpdateSectionCmd(index int, patch SectionPatch) Command {
	return func(t model.Template) (model.Template, error) {
		return UpdateSection(t, index, patch)
	}
}

// DeleteSectionCmd removes the section at index.
func DeleteSectionCmd(index int) Command {
	return func(t model.Template) (model.Template, error) {
		return DeleteSection(t, index)
	}
}

// MoveSectionCmd relocates a section.
func MoveSectionCmd(from, to int) Command {
	return func(t model.Template) (model.Template, error) {
		return MoveSection(t, from, to), nil
	}
}

// AddFieldCmd appends a field of fieldType to a section.
func AddFieldCmd(sectionIndex int, fieldType model.FieldType) Command {
	return func(t model.Template) (model.Template, error) {
		return AddField(t, sectionIndex, fieldType)
	}
}

// UpdateFieldCmd patches one field.
func UpdateFieldCmd(sectionIndex, fieldIndex int, patch FieldPatch) Command {
	return func(t model.Template) (model.Template, error) {
		return UpdateField(t, sectionIndex, fieldIndex, patch)
	}
}

// DeleteFieldCmd removes one field.
func DeleteFieldCmd(sectionIndex, fieldIndex int) Command {
	return func(t model.Template) (model.Template, error) {
		return DeleteField(t, sectionIndex, fieldIndex)
	}
}

// MoveFieldCmd relocates a field inside its section.
func MoveFieldCmd(sectionIndex, from, to int) Command {
	return func(t model.Template) (model.Template, error) {
		return MoveField(t, sectionIndex, from, to)
	}
}

// Apply runs cmds in sequence, stopping at the first error. The input
// template is returned untouched alongside the error.
func Apply(t model.Template, cmds ...Command) (model.Template, error) {
	current := t
	for _, cmd := range cmds {
		if cmd == nil {
			continue
		}
		next, err := cmd(current)
		if err != nil {
			return t, err
		}
		current = next
	}
	return current, nil
}

// Sequence groups cmds into one Command so a History records them as a single
// undo step.
func Sequence(cmds ...Command) Command {
	return func(t model.Template) (model.Template, error) {
		return Apply(t, cmds...)
	}
}
