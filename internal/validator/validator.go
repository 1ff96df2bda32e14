package validator

import (
	"fmt"
	"net/url"
	"os"
	"strings"

	"github.com/arcanaland/shufflegrid/internal/card"
	"github.com/arcanaland/shufflegrid/internal/source"
)

type ValidationResults struct {
	Errors   []string
	Warnings []string
}

type Validator struct {
	ProjectsPath string
	Results      ValidationResults
}

func NewValidator(projectsPath string) *Validator {
	return &Validator{
		ProjectsPath: projectsPath,
		Results:      ValidationResults{},
	}
}

// Validate checks a projects file. The returned error is only for files
// that cannot be read or parsed at all; problems with individual records
// land in the results.
func (v *Validator) Validate() (ValidationResults, error) {
	if _, err := os.Stat(v.ProjectsPath); os.IsNotExist(err) {
		return v.Results, fmt.Errorf("projects file not found: %s", v.ProjectsPath)
	}

	cards, err := source.ReadProjectsFile(v.ProjectsPath)
	if err != nil {
		return v.Results, err
	}

	v.ValidateCards(cards)
	return v.Results, nil
}

// ValidateCards checks already decoded project records
func (v *Validator) ValidateCards(cards []card.Card) {
	if len(cards) == 0 {
		v.Results.Warnings = append(v.Results.Warnings, "projects file contains no records")
		return
	}

	seen := make(map[string]int)
	for i, c := range cards {
		label := recordLabel(i, c)

		v.validateIdentity(label, c, seen, i)
		v.validateKind(label, c)
		v.validateLink(label, c)
		v.validateColors(label, c)
		v.validatePresentation(label, c)
	}
}

// validateIdentity checks ids and titles
func (v *Validator) validateIdentity(label string, c card.Card, seen map[string]int, index int) {
	if strings.TrimSpace(c.Title) == "" {
		v.Results.Errors = append(v.Results.Errors, fmt.Sprintf("%s: title is required", label))
	}

	if c.ID == "" {
		v.Results.Errors = append(v.Results.Errors, fmt.Sprintf("%s: id is required", label))
		return
	}

	if c.ID == card.IntroID {
		v.Results.Errors = append(v.Results.Errors,
			fmt.Sprintf("%s: id %q is reserved for the intro card", label, card.IntroID))
	}

	if strings.HasPrefix(c.ID, "feed-") {
		v.Results.Warnings = append(v.Results.Warnings,
			fmt.Sprintf("%s: id %q may collide with generated feed ids", label, c.ID))
	}

	if first, ok := seen[c.ID]; ok {
		v.Results.Errors = append(v.Results.Errors,
			fmt.Sprintf("%s: duplicate id %q (first used by record %d)", label, c.ID, first+1))
	} else {
		seen[c.ID] = index
	}
}

// validateKind checks the record type
func (v *Validator) validateKind(label string, c card.Card) {
	if c.Kind == "" {
		return
	}
	kind, ok := card.ParseKind(string(c.Kind))
	if !ok {
		v.Results.Errors = append(v.Results.Errors,
			fmt.Sprintf("%s: unknown type %q (expected project-link, social-link or feed-post)", label, c.Kind))
		return
	}
	if kind == card.KindIntro {
		v.Results.Errors = append(v.Results.Errors,
			fmt.Sprintf("%s: type intro is reserved for the intro card", label))
	}
}

// validateLink checks the target URL
func (v *Validator) validateLink(label string, c card.Card) {
	if c.Link == "" {
		v.Results.Errors = append(v.Results.Errors, fmt.Sprintf("%s: link is required", label))
		return
	}

	u, err := url.Parse(c.Link)
	if err != nil || u.Scheme == "" || u.Host == "" {
		v.Results.Errors = append(v.Results.Errors, fmt.Sprintf("%s: link %q is not an absolute URL", label, c.Link))
		return
	}

	if u.Scheme != "https" {
		v.Results.Warnings = append(v.Results.Warnings, fmt.Sprintf("%s: link %q does not use https", label, c.Link))
	}
}

// validateColors checks the accent gradient pair
func (v *Validator) validateColors(label string, c card.Card) {
	for _, pair := range []struct {
		field string
		value string
	}{
		{"color", c.AccentColor},
		{"color2", c.AccentColor2},
	} {
		if pair.value == "" {
			continue
		}
		if _, err := card.ParseColor(pair.value); err != nil {
			v.Results.Errors = append(v.Results.Errors, fmt.Sprintf("%s: %s: %v", label, pair.field, err))
		}
	}

	if (c.AccentColor == "") != (c.AccentColor2 == "") {
		v.Results.Warnings = append(v.Results.Warnings,
			fmt.Sprintf("%s: only one of color/color2 is set, the other falls back to the default", label))
	}
}

// validatePresentation checks that the card has something to show
func (v *Validator) validatePresentation(label string, c card.Card) {
	if c.Image == "" && c.Icon == "" {
		v.Results.Warnings = append(v.Results.Warnings,
			fmt.Sprintf("%s: no image or icon, the card will show its gradient only", label))
	}

	if c.Image != "" {
		if u, err := url.Parse(c.Image); err != nil || (u.Scheme != "" && u.Scheme != "https" && u.Scheme != "http") {
			v.Results.Errors = append(v.Results.Errors, fmt.Sprintf("%s: image %q is not a usable URL", label, c.Image))
		}
	}
}

func recordLabel(i int, c card.Card) string {
	if c.ID != "" {
		return fmt.Sprintf("record %d (%s)", i+1, c.ID)
	}
	return fmt.Sprintf("record %d", i+1)
}
