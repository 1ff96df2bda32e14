package grid

import "fmt"

// Phase is the state of a single drag gesture
type Phase int

const (
	Idle Phase = iota
	Dragging
	Hovering
)

func (p Phase) String() string {
	switch p {
	case Idle:
		return "idle"
	case Dragging:
		return "dragging"
	case Hovering:
		return "hovering"
	default:
		return fmt.Sprintf("phase(%d)", int(p))
	}
}

// State is the gesture state. Source and Target are positions in the
// rendered order and are only meaningful outside Idle.
type State struct {
	Phase  Phase
	Source int
	Target int
}

// EventType names an abstract drag event
type EventType string

const (
	DragStart  EventType = "dragStart"
	DragOver   EventType = "dragOver"
	DragLeave  EventType = "dragLeave"
	Drop       EventType = "drop"
	DragCancel EventType = "dragCancel"
)

// Event is a platform-independent drag event
type Event struct {
	Type EventType `json:"type"`
	Pos  int       `json:"pos"`
}

// EffectType names a side effect requested by Step
type EffectType string

const (
	MarkDragging EffectType = "markDragging"
	MarkHover    EffectType = "markHover"
	ClearHover   EffectType = "clearHover"
	SwapCards    EffectType = "swap"
	ClearAll     EffectType = "clearAll"
)

// Effect is a side effect for the rendering surface or the grid
type Effect struct {
	Type EffectType `json:"type"`
	From int        `json:"from"`
	To   int        `json:"to"`
	Pos  int        `json:"pos"`
}

// Step advances the gesture state machine. movable reports whether a
// position may be a drag source or target. Step is pure: it only computes
// the next state and the effects to apply.
func Step(s State, ev Event, movable func(pos int) bool) (State, []Effect) {
	idle := State{Phase: Idle}

	switch ev.Type {
	case DragStart:
		if !movable(ev.Pos) {
			if s.Phase == Idle {
				return idle, nil
			}
			return idle, []Effect{{Type: ClearAll}}
		}
		var effects []Effect
		if s.Phase != Idle {
			effects = append(effects, Effect{Type: ClearAll})
		}
		effects = append(effects, Effect{Type: MarkDragging, Pos: ev.Pos})
		return State{Phase: Dragging, Source: ev.Pos}, effects

	case DragOver:
		if s.Phase == Idle {
			return s, nil
		}
		var effects []Effect
		if s.Phase == Hovering && s.Target != ev.Pos {
			effects = append(effects, Effect{Type: ClearHover, Pos: s.Target})
		}
		if !movable(ev.Pos) {
			return State{Phase: Dragging, Source: s.Source}, effects
		}
		if s.Phase == Hovering && s.Target == ev.Pos {
			return s, nil
		}
		effects = append(effects, Effect{Type: MarkHover, Pos: ev.Pos})
		return State{Phase: Hovering, Source: s.Source, Target: ev.Pos}, effects

	case DragLeave:
		if s.Phase == Hovering && s.Target == ev.Pos {
			return State{Phase: Dragging, Source: s.Source}, []Effect{{Type: ClearHover, Pos: ev.Pos}}
		}
		return s, nil

	case Drop:
		if s.Phase == Idle {
			return idle, []Effect{{Type: ClearAll}}
		}
		var effects []Effect
		if ev.Pos != s.Source && movable(ev.Pos) && movable(s.Source) {
			effects = append(effects, Effect{Type: SwapCards, From: s.Source, To: ev.Pos})
		}
		return idle, append(effects, Effect{Type: ClearAll})

	case DragCancel:
		return idle, []Effect{{Type: ClearAll}}
	}

	return s, nil
}

// Gesture drives Step against a Grid
type Gesture struct {
	grid  *Grid
	state State
}

// NewGesture starts an idle gesture tracker for g
func NewGesture(g *Grid) *Gesture {
	return &Gesture{grid: g}
}

// State returns the current gesture state
func (gs *Gesture) State() State {
	return gs.state
}

// Handle applies ev. It returns the effects produced and whether the
// canonical order changed.
func (gs *Gesture) Handle(ev Event) ([]Effect, bool) {
	next, effects := Step(gs.state, ev, gs.grid.Movable)
	gs.state = next

	changed := false
	for _, e := range effects {
		if e.Type == SwapCards {
			changed = gs.grid.Swap(e.From, e.To) || changed
		}
	}
	return effects, changed
}

// Reset abandons any gesture in progress
func (gs *Gesture) Reset() {
	gs.state = State{Phase: Idle}
}
