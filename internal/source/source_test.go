package source

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/arcanaland/shufflegrid/internal/card"
)

func serve(t *testing.T, status int, body string) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(status)
		_, _ = w.Write([]byte(body))
	}))
	t.Cleanup(srv.Close)
	return srv
}

func TestFeedFetch(t *testing.T) {
	srv := serve(t, http.StatusOK, `{"status":"ok","items":[{"title":"A","link":"https://a","content":"<img src=\"x.png\">"},{"title":"B","link":"https://b"}]}`)

	posts, err := Feed{URL: srv.URL}.Fetch(context.Background())
	require.NoError(t, err)
	require.Len(t, posts, 2)
	assert.Equal(t, "A", posts[0].Title)
	assert.Equal(t, `<img src="x.png">`, posts[0].Content)
}

func TestFeedWithoutItemsIsEmpty(t *testing.T) {
	srv := serve(t, http.StatusOK, `{"status":"ok"}`)

	posts, err := Feed{URL: srv.URL}.Fetch(context.Background())
	require.NoError(t, err)
	assert.Empty(t, posts)
}

func TestFeedErrors(t *testing.T) {
	bad := serve(t, http.StatusBadGateway, `oops`)
	_, err := Feed{URL: bad.URL}.Fetch(context.Background())
	assert.ErrorIs(t, err, ErrStatus)

	garbled := serve(t, http.StatusOK, `{"items": [`)
	_, err = Feed{URL: garbled.URL}.Fetch(context.Background())
	assert.ErrorIs(t, err, ErrDecode)
}

func TestProjectsRemote(t *testing.T) {
	srv := serve(t, http.StatusOK, `[{"id":"p1","type":"project","title":"Tool","link":"https://tool"}]`)

	cards, err := Projects{Location: srv.URL}.Fetch(context.Background())
	require.NoError(t, err)
	require.Len(t, cards, 1)
	assert.Equal(t, card.KindProject, cards[0].Kind)
}

func TestProjectsFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "projects.json")
	require.NoError(t, os.WriteFile(path, []byte(`[{"id":"p1","title":"Tool","link":"https://tool","icon":"🛠️"}]`), 0644))

	cards, err := Projects{Location: path}.Fetch(context.Background())
	require.NoError(t, err)
	require.Len(t, cards, 1)
	assert.True(t, cards[0].IconIsGlyph)
}

func TestProjectsFileMissing(t *testing.T) {
	_, err := Projects{Location: filepath.Join(t.TempDir(), "nope.json")}.Fetch(context.Background())
	assert.Error(t, err)
}

func TestDecodeProjectsMalformed(t *testing.T) {
	_, err := DecodeProjects(strings.NewReader(`{"not":"an array"}`))
	assert.ErrorIs(t, err, ErrDecode)
}
