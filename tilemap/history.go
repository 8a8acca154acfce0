package tilemap

import "github.com/zyedidia/generic/stack"

type ActionType int

const (
	ActionAdd ActionType = iota
	ActionDelete
)

func (a ActionType) String() string {
	switch a {
	case ActionAdd:
		return "add"
	case ActionDelete:
		return "delete"
	default:
		return "unknown"
	}
}

// Action is one recorded tile change on a single layer. Replaced lists the
// tiles an Add overwrote so undo can put them back.
type Action struct {
	Type     ActionType
	LayerID  string
	Tiles    []PlacedTile
	Replaced []PlacedTile
}

// History is a linear undo log. Recording after an undo drops the undone
// actions.
type History struct {
	done   *stack.Stack[Action]
	undone *stack.Stack[Action]
}

func NewHistory() *History {
	return &History{done: stack.New[Action](), undone: stack.New[Action]()}
}

func (h *History) Record(a Action) {
	a.Tiles = append([]PlacedTile(nil), a.Tiles...)
	a.Replaced = append([]PlacedTile(nil), a.Replaced...)
	h.done.Push(a)
	if h.undone.Size() > 0 {
		h.undone = stack.New[Action]()
	}
}

func (h *History) CanUndo() bool { return h.done.Size() > 0 }
func (h *History) CanRedo() bool { return h.undone.Size() > 0 }

// Cursor is the index of the last applied action, -1 when nothing is applied.
func (h *History) Cursor() int { return h.done.Size() - 1 }

func (h *History) Len() int { return h.done.Size() + h.undone.Size() }

// undo moves the newest applied action to the redo side and returns it.
func (h *History) undo() (Action, bool) {
	if !h.CanUndo() {
		return Action{}, false
	}
	a := h.done.Pop()
	h.undone.Push(a)
	return a, true
}

func (h *History) redo() (Action, bool) {
	if !h.CanRedo() {
		return Action{}, false
	}
	a := h.undone.Pop()
	h.done.Push(a)
	return a, true
}

// revert applies the inverse of a to l. Tiles are matched by value.
func revert(l *Layer, a Action) {
	switch a.Type {
	case ActionAdd:
		for _, t := range a.Tiles {
			l.removeExact(t)
		}
		for _, t := range a.Replaced {
			l.put(t)
		}
	case ActionDelete:
		for _, t := range a.Tiles {
			l.put(t)
		}
	}
}

func apply(l *Layer, a Action) {
	switch a.Type {
	case ActionAdd:
		for _, t := range a.Replaced {
			l.removeExact(t)
		}
		for _, t := range a.Tiles {
			l.put(t)
		}
	case ActionDelete:
		for _, t := range a.Tiles {
			l.removeExact(t)
		}
	}
}
