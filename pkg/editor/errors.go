package editor

import (
	"errors"
	"fmt"
)

var (
	// ErrIndexOutOfRange is matched by every IndexError.
	ErrIndexOutOfRange = errors.New("editor: index out of range")
	// ErrUnknownFieldType is returned when AddField receives a type outside
	// the FieldType enumeration.
	ErrUnknownFieldType = errors.New("editor: unknown field type")
	// ErrNothingToUndo and ErrNothingToRedo are returned by History when the
	// respective stack is empty.
	ErrNothingToUndo = errors.New("editor: nothing to undo")
	ErrNothingToRedo = errors.New("editor: nothing to redo")
)

// IndexError reports an index-addressed mutation whose index does not address
// an existing section or field. Mutators never clamp indices.
type IndexError struct {
	Op     string
	Target string
	Index  int
	Len    int
}

func (e *IndexError) Error() string {
	return fmt.Sprintf("editor: %s: %s index %d out of range [0,%d)", e.Op, e.Target, e.Index, e.Len)
}

// Is lets errors.Is(err, ErrIndexOutOfRange) match.
func (e *IndexError) Is(target error) bool {
	return target == ErrIndexOutOfRange
}
