package mpris

import (
	"fmt"
	"hash/fnv"
	"os"
	"path/filepath"
	"strings"

	"github.com/adrg/xdg"

	"github.com/tuneflow/tuneflow/internal/artwork"
)

// CoverURL turns resolved artwork into a URL usable as MPRIS art.
// Embedded image bytes are written once to a cache file; fallback
// locators pass through when they are already URLs or absolute paths.
func CoverURL(trackID string, art artwork.Art) string {
	if !art.Embedded() {
		switch {
		case strings.HasPrefix(art.Locator, "http://"), strings.HasPrefix(art.Locator, "https://"):
			return art.Locator
		case filepath.IsAbs(art.Locator):
			return "file://" + art.Locator
		default:
			return ""
		}
	}

	path, err := xdg.CacheFile(filepath.Join("tuneflow", "art", cacheName(trackID)+extFor(art.MIMEType)))
	if err != nil {
		return ""
	}
	if _, err := os.Stat(path); err != nil {
		if err := os.WriteFile(path, art.Data, 0o644); err != nil {
			return ""
		}
	}
	return "file://" + path
}

// cacheName hashes the track id so catalog-supplied ids cannot carry
// path separators into the cache directory.
func cacheName(trackID string) string {
	h := fnv.New64a()
	h.Write([]byte(trackID))
	return fmt.Sprintf("%016x", h.Sum64())
}

func extFor(mimeType string) string {
	switch mimeType {
	case "image/png":
		return ".png"
	default:
		return ".jpg"
	}
}
