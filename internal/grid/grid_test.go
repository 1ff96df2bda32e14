package grid

import (
	"errors"
	"fmt"
	"math/rand/v2"
	"sort"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/arcanaland/shufflegrid/internal/card"
	"github.com/arcanaland/shufflegrid/internal/normalize"
)

func testCards(n int) []card.Card {
	cards := []card.Card{{ID: card.IntroID, Kind: card.KindIntro, Title: "Hi"}}
	for i := 1; i < n; i++ {
		cards = append(cards, card.Card{ID: fmt.Sprintf("c%d", i), Kind: card.KindProject, Title: "card"})
	}
	return cards
}

func seeded(seed uint64) Option {
	r := rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
	return WithRand(r.IntN)
}

func sortedIDs(cards []card.Card) []string {
	ids := card.IDs(cards)
	sort.Strings(ids)
	return ids
}

func TestShuffleIsPermutation(t *testing.T) {
	cards := testCards(14)
	g := New(cards, seeded(7))

	for i := 0; i < 50; i++ {
		g.Shuffle()
		require.Equal(t, len(cards), g.Len())
		require.Equal(t, sortedIDs(cards), sortedIDs(g.Items()))
	}
}

func TestShuffleMovesIntroByDefault(t *testing.T) {
	g := New(testCards(8), seeded(1))

	moved := false
	for i := 0; i < 100 && !moved; i++ {
		g.Shuffle()
		moved = g.IndexOf(card.IntroID) != 0
	}
	assert.True(t, moved, "whole-list shuffle should eventually move the intro card")
}

func TestShufflePinnedIntroStaysFirst(t *testing.T) {
	g := New(testCards(8), seeded(3), WithPinnedIntro(true))
	require.True(t, g.PinsIntro())

	for i := 0; i < 100; i++ {
		g.Shuffle()
		require.Equal(t, 0, g.IndexOf(card.IntroID))
	}
}

func TestShuffleNotifies(t *testing.T) {
	var got [][]string
	g := New(testCards(4), seeded(5), OnChanged(func(cards []card.Card) {
		got = append(got, card.IDs(cards))
	}))

	g.Shuffle()

	require.Len(t, got, 1)
	assert.Equal(t, card.IDs(g.Items()), got[0])
}

func TestSwapIsItsOwnInverse(t *testing.T) {
	g := New(testCards(6))
	before := card.IDs(g.Items())

	require.True(t, g.Swap(1, 4))
	assert.Equal(t, "c4", g.Items()[1].ID)
	assert.Equal(t, "c1", g.Items()[4].ID)

	require.True(t, g.Swap(1, 4))
	assert.Equal(t, before, card.IDs(g.Items()))
}

func TestSwapRejectsIntroAndInvalid(t *testing.T) {
	tests := []struct {
		name string
		i, j int
	}{
		{"intro source", 0, 3},
		{"intro target", 2, 0},
		{"self", 2, 2},
		{"out of range", 1, 9},
		{"negative", -1, 2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			calls := 0
			g := New(testCards(5), OnChanged(func([]card.Card) { calls++ }))
			before := card.IDs(g.Items())

			assert.False(t, g.Swap(tt.i, tt.j))
			assert.Equal(t, before, card.IDs(g.Items()))
			assert.Zero(t, calls)
		})
	}
}

func TestSwapFollowsIntroAfterShuffle(t *testing.T) {
	g := New(testCards(6), seeded(11))
	for g.IndexOf(card.IntroID) == 0 {
		g.Shuffle()
	}
	intro := g.IndexOf(card.IntroID)
	before := card.IDs(g.Items())

	assert.False(t, g.Swap(intro, 0))
	assert.False(t, g.Swap(0, intro))
	assert.Equal(t, before, card.IDs(g.Items()))

	other := 1
	for other == intro {
		other++
	}
	assert.True(t, g.Swap(0, other))
}

func TestItemsIsACopy(t *testing.T) {
	g := New(testCards(3))
	items := g.Items()
	items[1].Title = "mutated"

	c, ok := g.At(1)
	require.True(t, ok)
	assert.Equal(t, "card", c.Title)
}

func TestAssembleOrder(t *testing.T) {
	feed := make([]normalize.FeedPost, 8)
	for i := range feed {
		feed[i] = normalize.FeedPost{Title: fmt.Sprintf("post %d", i), Link: "https://example.com"}
	}
	social := []card.Card{
		{ID: "social-github", Kind: card.KindSocial, Title: "GitHub"},
		{ID: "social-youtube", Title: "YouTube"},
	}
	projects := []card.Card{{ID: "P1", Title: "One"}, {ID: "P2", Kind: card.KindProject, Title: "Two"}}

	got := Assemble(Sources{
		Intro:    card.Card{Title: "Hi"},
		Feed:     OK(feed),
		Social:   social,
		Projects: OK(projects),
	}, nil)

	want := []string{
		"intro",
		"feed-0", "feed-1", "feed-2", "feed-3", "feed-4", "feed-5",
		"social-github", "social-youtube",
		"P1", "P2",
	}
	assert.Equal(t, want, card.IDs(got))
	assert.Equal(t, card.KindIntro, got[0].Kind)
	assert.Equal(t, card.KindSocial, got[8].Kind)
	assert.Equal(t, card.KindProject, got[9].Kind)
}

func TestAssembleFeedFailure(t *testing.T) {
	got := Assemble(Sources{
		Intro:    card.Card{Title: "Hi"},
		Feed:     Failed[[]normalize.FeedPost](errors.New("boom")),
		Social:   []card.Card{{ID: "social-github", Kind: card.KindSocial}},
		Projects: OK([]card.Card{{ID: "P1", Title: "One"}}),
	}, nil)

	assert.Equal(t, []string{"intro", "social-github", "P1"}, card.IDs(got))
}

func TestAssembleBothFail(t *testing.T) {
	got := Assemble(Sources{
		Feed:     Failed[[]normalize.FeedPost](errors.New("feed")),
		Social:   []card.Card{{ID: "social-github", Kind: card.KindSocial}},
		Projects: Failed[[]card.Card](errors.New("projects")),
	}, nil)

	assert.Equal(t, []string{"intro", "social-github"}, card.IDs(got))
}

func TestAssembleDropsReservedProjects(t *testing.T) {
	got := Assemble(Sources{
		Projects: OK([]card.Card{
			{ID: "intro", Title: "impostor"},
			{ID: "x", Kind: card.KindIntro, Title: "also impostor"},
			{ID: "P1", Title: "real"},
		}),
	}, nil)

	assert.Equal(t, []string{"intro", "P1"}, card.IDs(got))
}

func TestAssembleIDsAreUnique(t *testing.T) {
	got := Assemble(Sources{
		Social: []card.Card{{ID: "social-github", Kind: card.KindSocial}},
		Projects: OK([]card.Card{
			{Title: "A", Link: "https://a.example.com"},
			{Title: "B", Link: "https://b.example.com"},
			{ID: "social-github", Title: "collides with social"},
			{ID: "P1", Title: "first"},
			{ID: "P1", Title: "second"},
		}),
	}, nil)

	assert.Equal(t, []string{"intro", "social-github", "project-0", "project-1", "P1"}, card.IDs(got))
	assert.Equal(t, card.KindSocial, got[1].Kind)
	assert.Equal(t, "first", got[4].Title)

	g := New(got)
	assert.Equal(t, 2, g.IndexOf("project-0"))
	assert.Equal(t, -1, g.IndexOf(""))
}
