package render

import (
	"sync"
	"time"

	"github.com/arcanaland/shufflegrid/internal/card"
)

// Reveal makes cards visible one after another. Each Start replaces the
// previous schedule: timers from an older pass never call show.
type Reveal struct {
	step time.Duration
	show func(id string)

	mu     sync.Mutex
	gen    uint64
	timers []*time.Timer
}

// NewReveal creates a scheduler that calls show for each id, step apart.
// show is called with the scheduler's lock held and must not call back
// into the scheduler.
func NewReveal(step time.Duration, show func(id string)) *Reveal {
	return &Reveal{step: step, show: show}
}

// Start schedules ids in order, cancelling any pending schedule
func (r *Reveal) Start(ids []string) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.stopLocked()
	gen := r.gen
	r.timers = make([]*time.Timer, 0, len(ids))
	for i, id := range ids {
		id := id
		r.timers = append(r.timers, time.AfterFunc(time.Duration(i)*r.step, func() {
			r.fire(gen, id)
		}))
	}
}

// Stop cancels the pending schedule
func (r *Reveal) Stop() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.stopLocked()
}

func (r *Reveal) stopLocked() {
	r.gen++
	for _, t := range r.timers {
		t.Stop()
	}
	r.timers = nil
}

func (r *Reveal) fire(gen uint64, id string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if gen != r.gen {
		return
	}
	r.show(id)
}

// Renderer turns cards into descriptors and kicks off the reveal stagger
// for every render pass
type Renderer struct {
	step   time.Duration
	reveal *Reveal
}

// NewRenderer returns a renderer. reveal may be nil when nothing needs
// timed visibility.
func NewRenderer(step time.Duration, reveal *Reveal) *Renderer {
	if step <= 0 {
		step = DefaultRevealStep
	}
	return &Renderer{step: step, reveal: reveal}
}

// Render produces descriptors for cards and restarts the reveal schedule
func (r *Renderer) Render(cards []card.Card) []Descriptor {
	ds := DescribeAll(cards, r.step)
	if r.reveal != nil {
		r.reveal.Start(card.IDs(cards))
	}
	return ds
}

// Close stops any pending reveal
func (r *Renderer) Close() {
	if r.reveal != nil {
		r.reveal.Stop()
	}
}
