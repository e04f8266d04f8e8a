// Package catalog holds the track library loaded at startup.
//
// The catalog is read-only for the rest of the application: tracks are
// loaded once and never mutated or deleted at runtime.
package catalog

import (
	_ "embed"
	"encoding/json"
	"fmt"
	"os"
)

// Track is a single playable audio item with descriptive metadata.
type Track struct {
	ID              string  `json:"id"`
	Title           string  `json:"title"`
	Artist          string  `json:"artist"`
	Album           string  `json:"album"`
	DurationSeconds float64 `json:"duration_seconds"`
	AudioLocator    string  `json:"audio"`
	ArtworkLocator  string  `json:"artwork"`
	Genre           string  `json:"genre"`
	Tempo           string  `json:"tempo"`
	Characteristics string  `json:"characteristics"`
}

// Catalog is an ordered, immutable collection of tracks.
type Catalog struct {
	tracks []Track
	byID   map[string]Track
}

//go:embed default_catalog.json
var defaultCatalog []byte

// New builds a catalog from the given tracks.
// Tracks with a duplicate or empty id are skipped.
func New(tracks []Track) *Catalog {
	c := &Catalog{byID: make(map[string]Track, len(tracks))}
	for _, t := range tracks {
		if t.ID == "" {
			continue
		}
		if _, ok := c.byID[t.ID]; ok {
			continue
		}
		c.byID[t.ID] = t
		c.tracks = append(c.tracks, t)
	}
	return c
}

// Load reads a catalog from a JSON file. An empty path or a missing or
// malformed file yields the embedded default catalog instead of an error:
// the worst outcome of a bad catalog file is the sample library, never a
// failed startup.
func Load(path string) *Catalog {
	if path == "" {
		return Default()
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return Default()
	}
	tracks, err := parse(data)
	if err != nil {
		return Default()
	}
	return New(tracks)
}

// Default returns the catalog embedded in the binary.
func Default() *Catalog {
	tracks, err := parse(defaultCatalog)
	if err != nil {
		// The embedded catalog is validated by tests.
		return New(nil)
	}
	return New(tracks)
}

func parse(data []byte) ([]Track, error) {
	var tracks []Track
	if err := json.Unmarshal(data, &tracks); err != nil {
		return nil, fmt.Errorf("parse catalog: %w", err)
	}
	return tracks, nil
}

// All returns every track in catalog order.
// The returned slice is a copy and safe to retain.
func (c *Catalog) All() []Track {
	out := make([]Track, len(c.tracks))
	copy(out, c.tracks)
	return out
}

// Get returns the track with the given id.
func (c *Catalog) Get(id string) (Track, bool) {
	t, ok := c.byID[id]
	return t, ok
}

// Has reports whether a track with the given id exists.
func (c *Catalog) Has(id string) bool {
	_, ok := c.byID[id]
	return ok
}

// Len returns the number of tracks.
func (c *Catalog) Len() int {
	return len(c.tracks)
}
