package editor

import (
	"errors"
	"fmt"

	"github.com/goliatone/go-reportschema/pkg/model"
)

var (
	// ErrUnknownOperation is returned by Operation.Command for unsupported op
	// names.
	ErrUnknownOperation = errors.New("editor: unknown operation")
	// ErrMissingIndex is returned by Operation.Command when the op needs an
	// index the operation does not carry.
	ErrMissingIndex = errors.New("editor: missing index")
)

// Operation names accepted in Operation.Op.
const (
	OpAddSection    = "addSection"
	OpUpdateSection = "updateSection"
	OpDeleteSection = "deleteSection"
	OpMoveSection   = "moveSection"
	OpAddField      = "addField"
	OpUpdateField   = "updateField"
	OpDeleteField   = "deleteField"
	OpMoveField     = "moveField"
)

// Operation is the wire form of a Command, e.g.
//
//	{"op": "moveField", "section": 0, "from": 2, "to": 0}
//	{"op": "updateField", "section": 1, "field": 0, "fieldPatch": {"required": true}}
type Operation struct {
	Op           string          `json:"op"`
	Section      *int            `json:"section,omitempty"`
	Field        *int            `json:"field,omitempty"`
	From         *int            `json:"from,omitempty"`
	To           *int            `json:"to,omitempty"`
	Type         model.FieldType `json:"type,omitempty"`
	SectionPatch *SectionPatch   `json:"sectionPatch,omitempty"`
	FieldPatch   *FieldPatch     `json:"fieldPatch,omitempty"`
}

// Command converts the operation into a Command. Indices are never
// defaulted: an op missing one it needs fails with ErrMissingIndex.
func (o Operation) Command() (Command, error) {
	switch o.Op {
	case OpAddSection:
		return AddSectionCmd(), nil
	case OpUpdateSection:
		if err := o.require(indexArg{"section", o.Section}); err != nil {
			return nil, err
		}
		var patch SectionPatch
		if o.SectionPatch != nil {
			patch = *o.SectionPatch
		}
		return UpdateSectionCmd(*o.Section, patch), nil
	case OpDeleteSection:
		if err := o.require(indexArg{"section", o.Section}); err != nil {
			return nil, err
		}
		return DeleteSectionCmd(*o.Section), nil
	case OpMoveSection:
		if err := o.require(indexArg{"from", o.From}, indexArg{"to", o.To}); err != nil {
			return nil, err
		}
		return MoveSectionCmd(*o.From, *o.To), nil
	case OpAddField:
		if err := o.require(indexArg{"section", o.Section}); err != nil {
			return nil, err
		}
		return AddFieldCmd(*o.Section, o.Type), nil
	case OpUpdateField:
		if err := o.require(indexArg{"section", o.Section}, indexArg{"field", o.Field}); err != nil {
			return nil, err
		}
		var patch FieldPatch
		if o.FieldPatch != nil {
			patch = *o.FieldPatch
		}
		return UpdateFieldCmd(*o.Section, *o.Field, patch), nil
	case OpDeleteField:
		if err := o.require(indexArg{"section", o.Section}, indexArg{"field", o.Field}); err != nil {
			return nil, err
		}
		return DeleteFieldCmd(*o.Section, *o.Field), nil
	case OpMoveField:
		if err := o.require(indexArg{"section", o.Section}, indexArg{"from", o.From}, indexArg{"to", o.To}); err != nil {
			return nil, err
		}
		return MoveFieldCmd(*o.Section, *o.From, *o.To), nil
	default:
		return nil, fmt.Errorf("%w %q", ErrUnknownOperation, o.Op)
	}
}

type indexArg struct {
	name  string
	value *int
}

// require reports the first index the operation left out.
func (o Operation) require(indices ...indexArg) error {
	for _, idx := range indices {
		if idx.value == nil {
			return fmt.Errorf("%w: %s needs %q", ErrMissingIndex, o.Op, idx.name)
		}
	}
	return nil
}

// Index returns a pointer for Operation index literals.
func Index(v int) *int { return &v }

// Commands converts a batch of operations, failing on the first unknown op.
func Commands(ops []Operation) ([]Command, error) {
	cmds := make([]Command, 0, len(ops))
	for idx, op := range ops {
		cmd, err := op.Command()
		if err != nil {
			return nil, fmt.Errorf("operation %d: %w", idx, err)
		}
		cmds = append(cmds, cmd)
	}
	return cmds, nil
}
