// Package render projects the canonical card order into presentation
// descriptors and renders them as HTML.
package render

import (
	"fmt"
	"html/template"
	"strings"
	"time"

	"github.com/arcanaland/shufflegrid/internal/card"
)

// DefaultRevealStep is the delay between consecutive cards becoming visible
const DefaultRevealStep = 150 * time.Millisecond

// Variant is the presentation shape of a card
type Variant int

const (
	VariantIntro Variant = iota
	VariantFeedImage
	VariantImage
	VariantIcon
)

func (v Variant) String() string {
	switch v {
	case VariantIntro:
		return "intro"
	case VariantFeedImage:
		return "feed-image"
	case VariantImage:
		return "image"
	case VariantIcon:
		return "icon"
	default:
		return fmt.Sprintf("variant(%d)", int(v))
	}
}

// MarshalText renders the variant name in JSON output
func (v Variant) MarshalText() ([]byte, error) {
	return []byte(v.String()), nil
}

// Gradient is a two-stop background
type Gradient struct {
	From string `json:"from"`
	To   string `json:"to"`
}

// CSS returns the gradient as a CSS background value. Colors that are not
// plain hex or functional notation are replaced by the fallback pair.
func (g Gradient) CSS() template.CSS {
	return template.CSS(fmt.Sprintf("linear-gradient(135deg, %s, %s)", safeColor(g.From, "#8b5cf6"), safeColor(g.To, "#6366f1")))
}

// Badge is the small type label on image cards
type Badge struct {
	Label string `json:"label"`
	Color string `json:"color"`
}

// Style returns the badge background as CSS
func (b Badge) Style() template.CSS {
	return template.CSS("background: " + safeColor(b.Color, card.DefaultBadgeColor))
}

// Descriptor is everything a presentation layer needs to draw one card
type Descriptor struct {
	ID          string        `json:"id"`
	Kind        card.Kind     `json:"kind"`
	Variant     Variant       `json:"variant"`
	Position    int           `json:"position"`
	Link        string        `json:"link,omitempty"`
	Draggable   bool          `json:"draggable"`
	Gradient    Gradient      `json:"gradient"`
	Title       string        `json:"title,omitempty"`
	ShowTitle   bool          `json:"showTitle"`
	Description string        `json:"description,omitempty"`
	Badge       *Badge        `json:"badge,omitempty"`
	Image       string        `json:"image,omitempty"`
	Icon        string        `json:"icon,omitempty"`
	IconIsGlyph bool          `json:"iconIsGlyph,omitempty"`
	RevealDelay time.Duration `json:"-"`
	RevealMs    int64         `json:"revealDelayMs"`
}

// Linked reports whether the card is wrapped in a link
func (d Descriptor) Linked() bool {
	return d.Variant != VariantIntro && d.Link != ""
}

// Describe picks the presentation variant for a single card
func Describe(c card.Card) Descriptor {
	from, to := c.Accents()
	d := Descriptor{
		ID:        c.ID,
		Kind:      c.Kind,
		Link:      c.Link,
		Draggable: !c.IsIntro(),
		Gradient:  Gradient{From: from, To: to},
	}

	switch {
	case c.IsIntro():
		d.Variant = VariantIntro
		d.Link = ""
		d.Title = c.Title
		d.ShowTitle = true
		d.Description = c.Description

	case c.Kind == card.KindFeed && c.Image != "":
		d.Variant = VariantFeedImage
		d.Image = c.Image
		d.Title = c.Title
		d.ShowTitle = true

	case c.Image != "":
		d.Variant = VariantImage
		d.Image = c.Image
		d.Title = c.Title
		d.ShowTitle = true
		d.Description = c.Description
		d.Badge = &Badge{Label: badgeLabel(c.Kind), Color: c.Badge()}

	default:
		d.Variant = VariantIcon
		d.Icon = c.Icon
		d.IconIsGlyph = c.IconIsGlyph
		if c.Kind != card.KindSocial {
			d.Title = c.Title
			d.ShowTitle = true
			d.Description = c.Description
		}
	}

	// social cards stay compact whatever variant they land in
	if c.Kind == card.KindSocial {
		d.Title = ""
		d.ShowTitle = false
		d.Description = ""
	}

	return d
}

// DescribeAll produces one descriptor per card in list order, with reveal
// delays spaced step apart
func DescribeAll(cards []card.Card, step time.Duration) []Descriptor {
	ds := make([]Descriptor, len(cards))
	for i, c := range cards {
		d := Describe(c)
		d.Position = i
		d.RevealDelay = time.Duration(i) * step
		d.RevealMs = d.RevealDelay.Milliseconds()
		ds[i] = d
	}
	return ds
}

func badgeLabel(k card.Kind) string {
	switch k {
	case card.KindFeed:
		return "post"
	case card.KindSocial:
		return "social"
	case card.KindProject:
		return "project"
	default:
		return string(k)
	}
}

// safeColor keeps a color only if it is made of characters that cannot
// break out of a CSS value
func safeColor(s, fallback string) string {
	s = strings.TrimSpace(s)
	if s == "" {
		return fallback
	}
	lower := strings.ToLower(s)
	if strings.Contains(lower, "url") || strings.Contains(lower, "expression") {
		return fallback
	}
	depth := 0
	for _, r := range s {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9':
		case r == '#', r == ',', r == '.', r == ' ', r == '%':
		case r == '(':
			depth++
		case r == ')':
			depth--
			if depth < 0 {
				return fallback
			}
		default:
			return fallback
		}
	}
	if depth != 0 {
		return fallback
	}
	return s
}
