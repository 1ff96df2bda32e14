// Package source fetches the grid's external content: the post feed and the
// project list.
package source

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"

	"github.com/arcanaland/shufflegrid/internal/card"
	"github.com/arcanaland/shufflegrid/internal/normalize"
)

var (
	// ErrStatus is returned when a source answers with a non-2xx status
	ErrStatus = errors.New("unexpected status")
	// ErrDecode is returned when a source body is not the expected JSON
	ErrDecode = errors.New("malformed response")
)

// DefaultFeedURL is the feed used when the config names none
const DefaultFeedURL = "https://api.rss2json.com/v1/api.json?rss_url=https://adnjoo.substack.com/feed"

// Fetcher retrieves a value from an external collaborator
type Fetcher[T any] interface {
	Fetch(ctx context.Context) (T, error)
}

// Feed fetches posts from a JSON feed endpoint
type Feed struct {
	URL    string
	Client *http.Client
}

// Fetch returns the posts of the feed. A document without items is empty,
// not an error.
func (f Feed) Fetch(ctx context.Context) ([]normalize.FeedPost, error) {
	var doc normalize.FeedDocument
	if err := getJSON(ctx, f.Client, f.URL, &doc); err != nil {
		return nil, fmt.Errorf("error fetching feed: %w", err)
	}
	return doc.Items, nil
}

// Projects loads project cards from an http(s) URL or a local file
type Projects struct {
	Location string
	Client   *http.Client
}

// Fetch returns the project records in source order
func (p Projects) Fetch(ctx context.Context) ([]card.Card, error) {
	if !isRemote(p.Location) {
		return ReadProjectsFile(p.Location)
	}

	var cards []card.Card
	if err := getJSON(ctx, p.Client, p.Location, &cards); err != nil {
		return nil, fmt.Errorf("error fetching projects: %w", err)
	}
	return cards, nil
}

// ReadProjectsFile decodes a local projects JSON file
func ReadProjectsFile(path string) ([]card.Card, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("error opening projects file: %w", err)
	}
	defer f.Close()

	cards, err := DecodeProjects(f)
	if err != nil {
		return nil, fmt.Errorf("error reading projects file %s: %w", path, err)
	}
	return cards, nil
}

// DecodeProjects decodes a JSON array of project records
func DecodeProjects(r io.Reader) ([]card.Card, error) {
	var cards []card.Card
	if err := json.NewDecoder(r).Decode(&cards); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrDecode, err)
	}
	return cards, nil
}

func isRemote(location string) bool {
	return strings.HasPrefix(location, "http://") || strings.HasPrefix(location, "https://")
}

func getJSON(ctx context.Context, client *http.Client, url string, v any) error {
	if client == nil {
		client = http.DefaultClient
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return err
	}
	req.Header.Set("Accept", "application/json")

	resp, err := client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return fmt.Errorf("%w: %s from %s", ErrStatus, resp.Status, url)
	}

	if err := json.NewDecoder(resp.Body).Decode(v); err != nil {
		return fmt.Errorf("%w: %v", ErrDecode, err)
	}
	return nil
}
