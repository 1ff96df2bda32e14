// Package normalize converts raw source records into grid cards.
package normalize

import (
	"fmt"
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"

	"github.com/arcanaland/shufflegrid/internal/card"
)

// PlaceholderPattern is the image used for feed posts that embed no image
const PlaceholderPattern = "https://picsum.photos/400/300?random=%d"

// FeedPost is one entry of the feed collaborator's items array
type FeedPost struct {
	Title       string `json:"title"`
	Link        string `json:"link"`
	Content     string `json:"content,omitempty"`
	Description string `json:"description,omitempty"`
}

// FeedDocument is the feed collaborator's response body
type FeedDocument struct {
	Items []FeedPost `json:"items"`
}

// Post turns a feed record into a card. index is the record's position
// in the feed and seeds both the id and the placeholder image.
func Post(post FeedPost, index int) card.Card {
	image := FirstImage(post.Content)
	if image == "" {
		image = FirstImage(post.Description)
	}
	if image == "" {
		image = Placeholder(index)
	}

	return card.Card{
		ID:         fmt.Sprintf("feed-%d", index),
		Kind:       card.KindFeed,
		Title:      post.Title,
		Image:      image,
		Link:       post.Link,
		BadgeColor: card.FeedBadgeColor,
	}
}

// Posts normalizes up to limit records in source order. A negative limit
// keeps every record.
func Posts(posts []FeedPost, limit int) []card.Card {
	if limit >= 0 && len(posts) > limit {
		posts = posts[:limit]
	}
	cards := make([]card.Card, 0, len(posts))
	for i, p := range posts {
		cards = append(cards, Post(p, i))
	}
	return cards
}

// Project passes a project record through, only filling an empty kind
func Project(c card.Card) card.Card {
	if c.Kind == "" {
		c.Kind = card.KindProject
	}
	return c
}

// Placeholder returns the deterministic stand-in image for a feed index
func Placeholder(index int) string {
	return fmt.Sprintf(PlaceholderPattern, index)
}

// FirstImage returns the src of the first <img> element in an HTML fragment,
// or "" when there is none
func FirstImage(fragment string) string {
	if fragment == "" {
		return ""
	}

	z := html.NewTokenizer(strings.NewReader(fragment))
	for {
		switch z.Next() {
		case html.ErrorToken:
			// io.EOF or malformed input, either way there is no image
			return ""
		case html.StartTagToken, html.SelfClosingTagToken:
			name, hasAttr := z.TagName()
			if atom.Lookup(name) != atom.Img || !hasAttr {
				continue
			}
			for {
				key, val, more := z.TagAttr()
				if string(key) == "src" && len(val) > 0 {
					return string(val)
				}
				if !more {
					break
				}
			}
		}
	}
}
