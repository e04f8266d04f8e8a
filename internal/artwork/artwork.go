// Package artwork resolves album art for catalog tracks.
//
// Resolution tries the picture embedded in the audio file's metadata and
// falls back to the track's artwork locator on any failure. Results,
// including fallbacks, are cached per track id for the process lifetime.
package artwork

import (
	"bytes"
	"context"
	"fmt"
	"image"
	"image/jpeg"
	_ "image/png" // register PNG decoding for embedded art
	"io"
	"net/http"
	"os"
	"strings"
	"sync"
	"time"

	"github.com/dhowden/tag"
	"github.com/nfnt/resize"

	"github.com/tuneflow/tuneflow/internal/catalog"
)

const (
	// Embedded art larger than this is downscaled before caching.
	maxDimension = 600
	// Embedded pictures beyond this size are rejected outright.
	maxPictureBytes = 16 << 20
)

// Art is the result of a resolution: either embedded image bytes or a
// fallback locator, never both.
type Art struct {
	Data     []byte
	MIMEType string
	Locator  string
}

// Embedded reports whether the art carries image bytes.
func (a Art) Embedded() bool {
	return len(a.Data) > 0
}

// Resolver resolves and caches artwork.
type Resolver struct {
	mu         sync.Mutex
	cache      map[string]Art
	httpClient *http.Client
}

// NewResolver creates an artwork resolver.
func NewResolver() *Resolver {
	return &Resolver{
		cache: make(map[string]Art),
		httpClient: &http.Client{
			Timeout: 10 * time.Second,
		},
	}
}

// Resolve returns artwork for the track. It never fails: any error along
// the way resolves to the track's fallback locator.
func (r *Resolver) Resolve(ctx context.Context, track catalog.Track) Art {
	r.mu.Lock()
	if art, ok := r.cache[track.ID]; ok {
		r.mu.Unlock()
		return art
	}
	r.mu.Unlock()

	art := r.resolve(ctx, track)

	r.mu.Lock()
	r.cache[track.ID] = art
	r.mu.Unlock()
	return art
}

func (r *Resolver) resolve(ctx context.Context, track catalog.Track) Art {
	fallback := Art{Locator: track.ArtworkLocator}
	if track.AudioLocator == "" {
		return fallback
	}

	data, mimeType, err := r.extractEmbedded(ctx, track.AudioLocator)
	if err != nil || data == nil {
		return fallback
	}

	if scaled, scaledMIME, err := constrain(data, mimeType); err == nil {
		return Art{Data: scaled, MIMEType: scaledMIME}
	}
	return Art{Data: data, MIMEType: mimeType}
}

// extractEmbedded reads the embedded picture from the audio bytes at the
// locator, which may be a file path or an HTTP URL.
func (r *Resolver) extractEmbedded(ctx context.Context, locator string) (data []byte, mimeType string, err error) {
	var rs io.ReadSeeker
	if strings.HasPrefix(locator, "http://") || strings.HasPrefix(locator, "https://") {
		body, err := r.fetch(ctx, locator)
		if err != nil {
			return nil, "", err
		}
		rs = bytes.NewReader(body)
	} else {
		f, err := os.Open(locator)
		if err != nil {
			return nil, "", err
		}
		defer f.Close()
		rs = f
	}

	m, err := tag.ReadFrom(rs)
	if err != nil {
		return nil, "", err
	}
	pic := m.Picture()
	if pic == nil || len(pic.Data) == 0 || len(pic.Data) > maxPictureBytes {
		return nil, "", nil
	}
	return pic.Data, pic.MIMEType, nil
}

func (r *Resolver) fetch(ctx context.Context, url string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, http.NoBody)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	resp, err := r.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("http request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("unexpected status: %s", resp.Status)
	}
	return io.ReadAll(resp.Body)
}

// constrain downscales oversized art to maxDimension, re-encoding as
// JPEG. Images already small enough are returned unchanged.
func constrain(data []byte, mimeType string) ([]byte, string, error) {
	img, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, "", err
	}
	bounds := img.Bounds()
	if bounds.Dx() <= maxDimension && bounds.Dy() <= maxDimension {
		return data, mimeType, nil
	}

	small := resize.Thumbnail(maxDimension, maxDimension, img, resize.Lanczos3)
	var buf bytes.Buffer
	if err := jpeg.Encode(&buf, small, &jpeg.Options{Quality: 85}); err != nil {
		return nil, "", err
	}
	return buf.Bytes(), "image/jpeg", nil
}
