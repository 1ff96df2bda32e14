package grid

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/arcanaland/shufflegrid/internal/card"
	"github.com/arcanaland/shufflegrid/internal/normalize"
)

// MaxFeedItems caps how many feed posts make it into the grid
const MaxFeedItems = 6

// Result is the settled outcome of one source fetch
type Result[T any] struct {
	Value T
	Err   error
}

// OK wraps a successful fetch
func OK[T any](v T) Result[T] {
	return Result[T]{Value: v}
}

// Failed wraps a failed fetch
func Failed[T any](err error) Result[T] {
	return Result[T]{Err: err}
}

// Sources is everything the assembler merges into the initial order
type Sources struct {
	Intro    card.Card
	Feed     Result[[]normalize.FeedPost]
	Social   []card.Card
	Projects Result[[]card.Card]
}

// Assemble builds the initial canonical order:
// intro, feed posts, social links, projects.
// A failed source contributes nothing.
func Assemble(src Sources, log *zap.Logger) []card.Card {
	if log == nil {
		log = zap.NewNop()
	}

	intro := src.Intro
	intro.ID = card.IntroID
	intro.Kind = card.KindIntro
	intro.Link = ""

	var feed []card.Card
	if src.Feed.Err != nil {
		log.Warn("feed source unavailable", zap.Error(src.Feed.Err))
	} else {
		feed = normalize.Posts(src.Feed.Value, MaxFeedItems)
	}

	var projects []card.Card
	if src.Projects.Err != nil {
		log.Warn("project source unavailable", zap.Error(src.Projects.Err))
	} else {
		projects = make([]card.Card, 0, len(src.Projects.Value))
		for i, p := range src.Projects.Value {
			if p.IsIntro() || p.Kind == card.KindIntro {
				log.Warn("dropping project that claims the intro slot", zap.String("id", p.ID), zap.String("title", p.Title))
				continue
			}
			if p.ID == "" {
				p.ID = fmt.Sprintf("project-%d", i)
			}
			projects = append(projects, normalize.Project(p))
		}
	}

	cards := make([]card.Card, 0, 1+len(feed)+len(src.Social)+len(projects))
	cards = append(cards, intro)
	cards = append(cards, feed...)
	for i, s := range src.Social {
		if s.IsIntro() {
			continue
		}
		if s.ID == "" {
			s.ID = fmt.Sprintf("social-%d", i)
		}
		if s.Kind == "" {
			s.Kind = card.KindSocial
		}
		cards = append(cards, s)
	}
	cards = append(cards, projects...)
	cards = dedupe(cards, log)

	log.Debug("grid assembled",
		zap.Int("feed", len(feed)),
		zap.Int("social", len(src.Social)),
		zap.Int("projects", len(projects)),
		zap.Int("total", len(cards)))

	return cards
}

// dedupe keeps the first card for each id
func dedupe(cards []card.Card, log *zap.Logger) []card.Card {
	seen := make(map[string]bool, len(cards))
	out := cards[:0]
	for _, c := range cards {
		if seen[c.ID] {
			log.Warn("dropping card with duplicate id", zap.String("id", c.ID), zap.String("title", c.Title))
			continue
		}
		seen[c.ID] = true
		out = append(out, c)
	}
	return out
}
