package card

import (
	"encoding/json"
	"fmt"
	"strings"
	"unicode"

	"github.com/lucasb-eyer/go-colorful"
)

// IntroID is reserved for the lead card of every grid
const IntroID = "intro"

// Kind determines how a card is presented and whether it can be dragged
type Kind string

const (
	KindIntro   Kind = "intro"
	KindFeed    Kind = "feed-post"
	KindSocial  Kind = "social-link"
	KindProject Kind = "project-link"
)

// Default badge colors
const (
	DefaultBadgeColor = "rgba(139, 92, 246, 0.8)"
	FeedBadgeColor    = "rgba(249, 115, 22, 0.8)"
)

// Card is one entry in the grid
type Card struct {
	ID           string `json:"id"`
	Kind         Kind   `json:"type"`
	Title        string `json:"title"`
	Description  string `json:"description,omitempty"`
	Image        string `json:"image,omitempty"`
	Link         string `json:"link,omitempty"`
	AccentColor  string `json:"color,omitempty"`
	AccentColor2 string `json:"color2,omitempty"`
	Icon         string `json:"icon,omitempty"`
	IconIsGlyph  bool   `json:"iconIsEmoji,omitempty"`
	BadgeColor   string `json:"badgeColor,omitempty"`
}

// ParseKind maps a kind name, including the short legacy aliases, to a Kind
func ParseKind(s string) (Kind, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "intro":
		return KindIntro, true
	case "feed-post", "feed", "substack":
		return KindFeed, true
	case "social-link", "social":
		return KindSocial, true
	case "project-link", "project", "":
		return KindProject, true
	default:
		return "", false
	}
}

// UnmarshalJSON accepts legacy kind aliases. Unknown kinds are kept
// verbatim so that validation can report them.
func (k *Kind) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return fmt.Errorf("card kind must be a string: %v", err)
	}
	if parsed, ok := ParseKind(s); ok {
		*k = parsed
		return nil
	}
	*k = Kind(s)
	return nil
}

// UnmarshalJSON fills in IconIsGlyph when the record leaves it out
func (c *Card) UnmarshalJSON(data []byte) error {
	type plain Card
	aux := struct {
		*plain
		IconIsGlyph *bool `json:"iconIsEmoji"`
	}{plain: (*plain)(c)}
	if err := json.Unmarshal(data, &aux); err != nil {
		return err
	}
	if aux.IconIsGlyph != nil {
		c.IconIsGlyph = *aux.IconIsGlyph
	} else {
		c.IconIsGlyph = LooksLikeGlyph(c.Icon)
	}
	return nil
}

// IsIntro reports whether c is the reserved lead card
func (c Card) IsIntro() bool {
	return c.ID == IntroID
}

// Accents returns the card's gradient pair, falling back to the kind default
func (c Card) Accents() (string, string) {
	from, to := DefaultAccents(c.Kind)
	if c.AccentColor != "" {
		from = c.AccentColor
	}
	if c.AccentColor2 != "" {
		to = c.AccentColor2
	}
	return from, to
}

// Badge returns the badge background color
func (c Card) Badge() string {
	if c.BadgeColor != "" {
		return c.BadgeColor
	}
	return DefaultBadgeColor
}

// DefaultAccents returns the gradient pair used when a card sets none
func DefaultAccents(k Kind) (string, string) {
	switch k {
	case KindIntro:
		return "#6366f1", "#8b5cf6"
	case KindFeed:
		return "#ff6719", "#ff8533"
	default:
		return "#8b5cf6", "#6366f1"
	}
}

// ParseColor parses a hex accent color
func ParseColor(s string) (colorful.Color, error) {
	c, err := colorful.Hex(strings.TrimSpace(s))
	if err != nil {
		return colorful.Color{}, fmt.Errorf("invalid color %q: %v", s, err)
	}
	return c, nil
}

// LooksLikeGlyph reports whether an icon reference is a literal character
// rather than an icon class name
func LooksLikeGlyph(icon string) bool {
	if icon == "" {
		return false
	}
	for _, r := range icon {
		if r < unicode.MaxASCII && (unicode.IsLetter(r) || r == '-') {
			return false
		}
	}
	return true
}

// IDs returns the ids of cards in order
func IDs(cards []Card) []string {
	ids := make([]string, len(cards))
	for i, c := range cards {
		ids[i] = c.ID
	}
	return ids
}
