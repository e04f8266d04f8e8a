package mpris

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/adrg/xdg"

	"github.com/tuneflow/tuneflow/internal/artwork"
)

func TestCoverURL_HTTPLocatorPassesThrough(t *testing.T) {
	url := CoverURL("1", artwork.Art{Locator: "https://example.com/cover.jpg"})

	if url != "https://example.com/cover.jpg" {
		t.Errorf("CoverURL = %q", url)
	}
}

func TestCoverURL_AbsolutePathBecomesFileURL(t *testing.T) {
	url := CoverURL("1", artwork.Art{Locator: "/music/cover.png"})

	if url != "file:///music/cover.png" {
		t.Errorf("CoverURL = %q", url)
	}
}

func TestCoverURL_RelativeLocatorDropped(t *testing.T) {
	if url := CoverURL("1", artwork.Art{Locator: "cover.jpg"}); url != "" {
		t.Errorf("CoverURL = %q, want empty", url)
	}
}

func TestCoverURL_EmbeddedWritesCacheFile(t *testing.T) {
	t.Setenv("XDG_CACHE_HOME", t.TempDir())
	xdg.Reload()

	art := artwork.Art{Data: []byte("jpeg bytes"), MIMEType: "image/jpeg"}
	url := CoverURL("track-9", art)

	if !strings.HasPrefix(url, "file://") {
		t.Fatalf("CoverURL = %q, want file URL", url)
	}
	path := strings.TrimPrefix(url, "file://")
	if !strings.HasSuffix(path, cacheName("track-9")+".jpg") {
		t.Errorf("cache file = %q, want hashed track id with .jpg", path)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read cache file: %v", err)
	}
	if string(data) != "jpeg bytes" {
		t.Errorf("cache contents = %q", data)
	}
}

func TestCoverURL_HostileTrackIDStaysInCacheDir(t *testing.T) {
	cacheDir := t.TempDir()
	t.Setenv("XDG_CACHE_HOME", cacheDir)
	xdg.Reload()

	art := artwork.Art{Data: []byte("jpeg bytes"), MIMEType: "image/jpeg"}
	url := CoverURL("../../../../tmp/evil", art)

	if !strings.HasPrefix(url, "file://") {
		t.Fatalf("CoverURL = %q, want file URL", url)
	}
	path := strings.TrimPrefix(url, "file://")
	wantDir := filepath.Join(cacheDir, "tuneflow", "art")
	if filepath.Dir(path) != wantDir {
		t.Errorf("cache file %q escaped %q", path, wantDir)
	}
}

func TestCacheNameDistinctAndClean(t *testing.T) {
	a := cacheName("1")
	b := cacheName("2")
	if a == b {
		t.Error("different ids should hash to different names")
	}
	if strings.ContainsAny(a, "/\\.") {
		t.Errorf("cacheName = %q, want no path characters", a)
	}
}

func TestExtFor(t *testing.T) {
	if extFor("image/png") != ".png" {
		t.Error("png mime should map to .png")
	}
	if extFor("image/jpeg") != ".jpg" {
		t.Error("jpeg mime should map to .jpg")
	}
	if extFor("") != ".jpg" {
		t.Error("unknown mime should default to .jpg")
	}
}
