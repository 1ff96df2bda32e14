package cmd

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/arcanaland/shufflegrid/internal/card"
	"github.com/arcanaland/shufflegrid/internal/preview"
	"github.com/arcanaland/shufflegrid/internal/render"
)

func TestParseSwap(t *testing.T) {
	i, j, err := parseSwap("2, 5")
	require.NoError(t, err)
	assert.Equal(t, 2, i)
	assert.Equal(t, 5, j)

	for _, bad := range []string{"2", "a,b", "1,2,3", ""} {
		_, _, err := parseSwap(bad)
		assert.Error(t, err, bad)
	}
}

func TestWrapText(t *testing.T) {
	lines := wrapText("one two three four five six", 10)
	assert.Equal(t, []string{"one two", "three four", "five six"}, lines)
	assert.Nil(t, wrapText("", 20))
}

func TestDescribeLinesSocialHidesTitle(t *testing.T) {
	d := render.Describe(card.Card{ID: "social-github", Kind: card.KindSocial, Title: "GitHub", Icon: "fa-brands fa-github", Link: "https://github.com/x"})

	text := preview.StripAnsi(strings.Join(describeLines(d, 80), "\n"))
	assert.NotContains(t, text, "GitHub")
	assert.Contains(t, text, "fa-brands fa-github")
	assert.Contains(t, text, "https://github.com/x")
}

func TestDescribeLinesIntroPinned(t *testing.T) {
	d := render.Describe(card.Card{ID: card.IntroID, Kind: card.KindIntro, Title: "Hello", Description: "words here"})

	text := preview.StripAnsi(strings.Join(describeLines(d, 80), "\n"))
	assert.Contains(t, text, "Hello")
	assert.Contains(t, text, "pinned")
	assert.Contains(t, text, "words here")
}

func TestValidateCommand(t *testing.T) {
	dir := t.TempDir()
	good := filepath.Join(dir, "good.json")
	bad := filepath.Join(dir, "bad.json")
	require.NoError(t, os.WriteFile(good, []byte(`[{"id":"a","title":"A","link":"https://a.example.com","icon":"x"}]`), 0644))
	require.NoError(t, os.WriteFile(bad, []byte(`[{"id":"intro","title":"","link":"https://a.example.com"}]`), 0644))

	RootCmd.SetArgs([]string{"validate", good})
	assert.NoError(t, RootCmd.Execute())

	RootCmd.SetArgs([]string{"validate", bad})
	assert.Error(t, RootCmd.Execute())
}
