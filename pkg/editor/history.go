package editor

import "github.com/goliatone/go-reportschema/pkg/model"

const defaultHistoryLimit = 100

// History is the caller-owned mutable reference to the "current" template.
// Each applied command replaces the snapshot wholesale and pushes the previous
// one onto the undo stack. History is not safe for concurrent use.
type History struct {
	current model.Template
	undo    []model.Template
	redo    []model.Template
	limit   int
}

// HistoryOption customises a History.
type HistoryOption func(*History)

// WithLimit bounds the undo stack; values below 1 keep the default.
func WithLimit(limit int) HistoryOption {
	return func(h *History) {
		if limit > 0 {
			h.limit = limit
		}
	}
}

// NewHistory starts a history at initial.
func NewHistory(initial model.Template, options ...HistoryOption) *History {
	h := &History{
		current: initial.Clone(),
		limit:   defaultHistoryLimit,
	}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(h)
	}
	return h
}

// Current returns a copy of the current snapshot.
func (h *History) Current() model.Template {
	return h.current.Clone()
}

// Apply runs cmd against the current snapshot. On error the history is left
// unchanged.
func (h *History) Apply(cmd Command) (model.Template, error) {
	next, err := Apply(h.current, cmd)
	if err != nil {
		return h.Current(), err
	}
	h.undo = append(h.undo, h.current)
	if len(h.undo) > h.limit {
		h.undo = append([]model.Template(nil), h.undo[len(h.undo)-h.limit:]...)
	}
	h.redo = nil
	h.current = next
	return h.Current(), nil
}

// Undo restores the previous snapshot.
func (h *History) Undo() (model.Template, error) {
	if len(h.undo) == 0 {
		return h.Current(), ErrNothingToUndo
	}
	last := len(h.undo) - 1
	h.redo = append(h.redo, h.current)
	h.current = h.undo[last]
	h.undo = h.undo[:last]
	return h.Current(), nil
}

// Redo re-applies the most recently undone snapshot.
func (h *History) Redo() (model.Template, error) {
	if len(h.redo) == 0 {
		return h.Current(), ErrNothingToRedo
	}
	last := len(h.redo) - 1
	h.undo = append(h.undo, h.current)
	h.current = h.redo[last]
	h.redo = h.redo[:last]
	return h.Current(), nil
}

// CanUndo reports whether Undo would succeed.
func (h *History) CanUndo() bool { return len(h.undo) > 0 }

// CanRedo reports whether Redo would succeed.
func (h *History) CanRedo() bool { return len(h.redo) > 0 }
