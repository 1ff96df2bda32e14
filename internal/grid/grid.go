// Package grid owns the canonical card order and the operations that
// reorder it.
package grid

import (
	"math/rand/v2"

	"github.com/arcanaland/shufflegrid/internal/card"
)

// Grid holds the canonical ordered list of cards for one page
type Grid struct {
	cards     []card.Card
	pinIntro  bool
	intn      func(n int) int
	onChanged func([]card.Card)
}

// Option configures a Grid
type Option func(*Grid)

// WithPinnedIntro keeps the intro card in place when shuffling
func WithPinnedIntro(pin bool) Option {
	return func(g *Grid) {
		g.pinIntro = pin
	}
}

// WithRand sets the source of randomness used by Shuffle. intn must return
// a value in [0, n).
func WithRand(intn func(n int) int) Option {
	return func(g *Grid) {
		g.intn = intn
	}
}

// OnChanged registers a callback run with the new order after every
// mutation, typically a re-render
func OnChanged(fn func([]card.Card)) Option {
	return func(g *Grid) {
		g.onChanged = fn
	}
}

// New creates a grid owning a copy of cards
func New(cards []card.Card, opts ...Option) *Grid {
	g := &Grid{
		cards: append([]card.Card(nil), cards...),
		intn:  rand.IntN,
	}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

// Items returns a copy of the current order
func (g *Grid) Items() []card.Card {
	return append([]card.Card(nil), g.cards...)
}

// Len returns the number of cards
func (g *Grid) Len() int {
	return len(g.cards)
}

// At returns the card at pos
func (g *Grid) At(pos int) (card.Card, bool) {
	if pos < 0 || pos >= len(g.cards) {
		return card.Card{}, false
	}
	return g.cards[pos], true
}

// IndexOf returns the position of the card with the given id, or -1
func (g *Grid) IndexOf(id string) int {
	for i, c := range g.cards {
		if c.ID == id {
			return i
		}
	}
	return -1
}

// PinsIntro reports whether Shuffle keeps the intro card in place
func (g *Grid) PinsIntro() bool {
	return g.pinIntro
}

// Movable reports whether the card at pos may take part in a drag
func (g *Grid) Movable(pos int) bool {
	c, ok := g.At(pos)
	return ok && !c.IsIntro()
}

// Shuffle applies a Fisher-Yates permutation to the list. When the intro
// is pinned it keeps its position and only the other cards are permuted.
func (g *Grid) Shuffle() {
	if g.pinIntro {
		idx := make([]int, 0, len(g.cards))
		for i, c := range g.cards {
			if !c.IsIntro() {
				idx = append(idx, i)
			}
		}
		for i := len(idx) - 1; i > 0; i-- {
			j := g.intn(i + 1)
			a, b := idx[i], idx[j]
			g.cards[a], g.cards[b] = g.cards[b], g.cards[a]
		}
	} else {
		for i := len(g.cards) - 1; i > 0; i-- {
			j := g.intn(i + 1)
			g.cards[i], g.cards[j] = g.cards[j], g.cards[i]
		}
	}
	g.changed()
}

// Swap exchanges the cards at positions i and j. It reports false and
// leaves the list untouched when either position is out of range, holds the
// intro card, or both positions are the same.
func (g *Grid) Swap(i, j int) bool {
	if i == j || !g.Movable(i) || !g.Movable(j) {
		return false
	}
	g.cards[i], g.cards[j] = g.cards[j], g.cards[i]
	g.changed()
	return true
}

func (g *Grid) changed() {
	if g.onChanged != nil {
		g.onChanged(g.Items())
	}
}
