package grid

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/arcanaland/shufflegrid/internal/card"
)

func notIntro(pos int) bool {
	return pos > 0 && pos < 6
}

func TestStepDragDrop(t *testing.T) {
	s, effects := Step(State{}, Event{Type: DragStart, Pos: 2}, notIntro)
	assert.Equal(t, State{Phase: Dragging, Source: 2}, s)
	assert.Equal(t, []Effect{{Type: MarkDragging, Pos: 2}}, effects)

	s, effects = Step(s, Event{Type: DragOver, Pos: 4}, notIntro)
	assert.Equal(t, State{Phase: Hovering, Source: 2, Target: 4}, s)
	assert.Equal(t, []Effect{{Type: MarkHover, Pos: 4}}, effects)

	s, effects = Step(s, Event{Type: DragOver, Pos: 5}, notIntro)
	assert.Equal(t, State{Phase: Hovering, Source: 2, Target: 5}, s)
	assert.Equal(t, []Effect{{Type: ClearHover, Pos: 4}, {Type: MarkHover, Pos: 5}}, effects)

	s, effects = Step(s, Event{Type: Drop, Pos: 5}, notIntro)
	assert.Equal(t, Idle, s.Phase)
	assert.Equal(t, []Effect{{Type: SwapCards, From: 2, To: 5}, {Type: ClearAll}}, effects)
}

func TestStepDragStartOnIntroIsRejected(t *testing.T) {
	s, effects := Step(State{}, Event{Type: DragStart, Pos: 0}, notIntro)
	assert.Equal(t, Idle, s.Phase)
	assert.Empty(t, effects)
}

func TestStepHoverIntroDoesNotMark(t *testing.T) {
	s := State{Phase: Hovering, Source: 2, Target: 3}

	s, effects := Step(s, Event{Type: DragOver, Pos: 0}, notIntro)
	assert.Equal(t, State{Phase: Dragging, Source: 2}, s)
	assert.Equal(t, []Effect{{Type: ClearHover, Pos: 3}}, effects)
}

func TestStepDropOnIntroOrSelfOnlyClears(t *testing.T) {
	for _, target := range []int{0, 2} {
		s, effects := Step(State{Phase: Dragging, Source: 2}, Event{Type: Drop, Pos: target}, notIntro)
		assert.Equal(t, Idle, s.Phase)
		assert.Equal(t, []Effect{{Type: ClearAll}}, effects)
	}
}

func TestStepCancelAlwaysClears(t *testing.T) {
	for _, s := range []State{{}, {Phase: Dragging, Source: 1}, {Phase: Hovering, Source: 1, Target: 2}} {
		next, effects := Step(s, Event{Type: DragCancel}, notIntro)
		assert.Equal(t, State{Phase: Idle}, next)
		assert.Equal(t, []Effect{{Type: ClearAll}}, effects)
	}
}

func TestStepDragLeave(t *testing.T) {
	s := State{Phase: Hovering, Source: 1, Target: 3}

	next, effects := Step(s, Event{Type: DragLeave, Pos: 4}, notIntro)
	assert.Equal(t, s, next)
	assert.Empty(t, effects)

	next, effects = Step(s, Event{Type: DragLeave, Pos: 3}, notIntro)
	assert.Equal(t, State{Phase: Dragging, Source: 1}, next)
	assert.Equal(t, []Effect{{Type: ClearHover, Pos: 3}}, effects)
}

func TestStepOverWhileIdleIgnored(t *testing.T) {
	s, effects := Step(State{}, Event{Type: DragOver, Pos: 3}, notIntro)
	assert.Equal(t, State{}, s)
	assert.Empty(t, effects)
}

func TestGestureSwapsGrid(t *testing.T) {
	renders := 0
	g := New(testCards(6), OnChanged(func([]card.Card) { renders++ }))
	gs := NewGesture(g)

	_, changed := gs.Handle(Event{Type: DragStart, Pos: 1})
	assert.False(t, changed)
	gs.Handle(Event{Type: DragOver, Pos: 3})
	effects, changed := gs.Handle(Event{Type: Drop, Pos: 3})

	require.True(t, changed)
	assert.Contains(t, effects, Effect{Type: ClearAll})
	assert.Equal(t, []string{"intro", "c3", "c2", "c1", "c4", "c5"}, card.IDs(g.Items()))
	assert.Equal(t, 1, renders)
	assert.Equal(t, Idle, gs.State().Phase)
}

func TestGestureIntroEndpointsLeaveListUntouched(t *testing.T) {
	g := New(testCards(6))
	gs := NewGesture(g)
	before := card.IDs(g.Items())

	gs.Handle(Event{Type: DragStart, Pos: 0})
	_, changed := gs.Handle(Event{Type: Drop, Pos: 3})
	assert.False(t, changed)

	gs.Handle(Event{Type: DragStart, Pos: 3})
	_, changed = gs.Handle(Event{Type: Drop, Pos: 0})
	assert.False(t, changed)

	assert.Equal(t, before, card.IDs(g.Items()))
}

func TestPhaseString(t *testing.T) {
	assert.Equal(t, "idle", Idle.String())
	assert.Equal(t, "hovering", Hovering.String())
	assert.Equal(t, "phase(9)", Phase(9).String())
}

func TestStepRestartClearsPreviousMarks(t *testing.T) {
	for _, s := range []State{{Phase: Dragging, Source: 1}, {Phase: Hovering, Source: 1, Target: 3}} {
		next, effects := Step(s, Event{Type: DragStart, Pos: 4}, notIntro)
		assert.Equal(t, State{Phase: Dragging, Source: 4}, next)
		assert.Equal(t, []Effect{{Type: ClearAll}, {Type: MarkDragging, Pos: 4}}, effects)
	}
}
