//go:build linux

package mpris

import (
	"fmt"
	"hash/fnv"
	"sync"

	"github.com/godbus/dbus/v5"
	"github.com/quarckster/go-mpris-server/pkg/server"
	"github.com/quarckster/go-mpris-server/pkg/types"
)

// Adapter connects the playback session to MPRIS over D-Bus.
type Adapter struct {
	mu     sync.Mutex
	snap   Snapshot
	server *server.Server
}

// New creates and starts a new MPRIS adapter. Commands arriving over
// D-Bus are forwarded to the transport.
func New(transport Transport) (*Adapter, error) {
	a := &Adapter{}

	rootAdapter := &rootAdapter{}
	playerAdapter := &playerAdapter{adapter: a, transport: transport}

	a.server = server.NewServer("tuneflow", rootAdapter, playerAdapter)

	// Start the server in background
	go func() {
		_ = a.server.Listen()
	}()

	return a, nil
}

// Publish replaces the snapshot served to D-Bus property reads.
func (a *Adapter) Publish(s Snapshot) {
	a.mu.Lock()
	a.snap = s
	a.mu.Unlock()
}

func (a *Adapter) snapshot() Snapshot {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.snap
}

// Close stops the adapter and releases D-Bus resources.
func (a *Adapter) Close() error {
	return a.server.Stop()
}

// rootAdapter implements OrgMprisMediaPlayer2Adapter.
type rootAdapter struct{}

func (r *rootAdapter) Raise() error {
	return nil // Not supported
}

func (r *rootAdapter) Quit() error {
	return nil // Not supported - app manages its own lifecycle
}

func (r *rootAdapter) CanQuit() (bool, error) {
	return false, nil
}

func (r *rootAdapter) CanRaise() (bool, error) {
	return false, nil
}

func (r *rootAdapter) HasTrackList() (bool, error) {
	return false, nil
}

func (r *rootAdapter) Identity() (string, error) {
	return "TuneFlow", nil
}

//nolint:revive // Method name required by interface.
func (r *rootAdapter) SupportedUriSchemes() ([]string, error) {
	return []string{"file"}, nil
}

func (r *rootAdapter) SupportedMimeTypes() ([]string, error) {
	return []string{"audio/mpeg", "audio/flac", "audio/mp3"}, nil
}

// playerAdapter implements OrgMprisMediaPlayer2PlayerAdapter.
type playerAdapter struct {
	adapter   *Adapter
	transport Transport
}

func (p *playerAdapter) Next() error {
	p.transport.Next()
	return nil
}

func (p *playerAdapter) Previous() error {
	p.transport.Previous()
	return nil
}

func (p *playerAdapter) Pause() error {
	if p.adapter.snapshot().Playing {
		p.transport.PlayPause()
	}
	return nil
}

func (p *playerAdapter) PlayPause() error {
	p.transport.PlayPause()
	return nil
}

func (p *playerAdapter) Stop() error {
	if p.adapter.snapshot().Playing {
		p.transport.PlayPause()
	}
	return nil
}

func (p *playerAdapter) Play() error {
	if !p.adapter.snapshot().Playing {
		p.transport.PlayPause()
	}
	return nil
}

func (p *playerAdapter) Seek(offset types.Microseconds) error {
	p.transport.SeekBy(float64(offset) / 1e6)
	return nil
}

func (p *playerAdapter) SetPosition(_ string, position types.Microseconds) error {
	snap := p.adapter.snapshot()
	target := float64(position) / 1e6
	p.transport.SeekBy(target - snap.PositionSeconds)
	return nil
}

//nolint:revive // Method name required by interface.
func (p *playerAdapter) OpenUri(_ string) error {
	return nil // Not supported
}

func (p *playerAdapter) PlaybackStatus() (types.PlaybackStatus, error) {
	snap := p.adapter.snapshot()
	switch {
	case !snap.HasTrack:
		return types.PlaybackStatusStopped, nil
	case snap.Playing:
		return types.PlaybackStatusPlaying, nil
	default:
		return types.PlaybackStatusPaused, nil
	}
}

func (p *playerAdapter) Rate() (float64, error) {
	return 1.0, nil
}

func (p *playerAdapter) SetRate(_ float64) error {
	return nil // Not supported
}

func (p *playerAdapter) Metadata() (types.Metadata, error) {
	snap := p.adapter.snapshot()
	if !snap.HasTrack {
		return types.Metadata{}, nil
	}

	meta := types.Metadata{
		TrackId: dbus.ObjectPath(formatTrackID(snap.TrackID)),
		Length:  types.Microseconds(int64(snap.DurationSeconds * 1e6)),
		Title:   snap.Title,
		Artist:  []string{snap.Artist},
		Album:   snap.Album,
		ArtUrl:  snap.ArtURL,
	}
	return meta, nil
}

func (p *playerAdapter) Volume() (float64, error) {
	return p.adapter.snapshot().Volume, nil
}

func (p *playerAdapter) SetVolume(v float64) error {
	p.transport.SetVolume(v)
	return nil
}

func (p *playerAdapter) Position() (int64, error) {
	return int64(p.adapter.snapshot().PositionSeconds * 1e6), nil
}

func (p *playerAdapter) MinimumRate() (float64, error) {
	return 1.0, nil
}

func (p *playerAdapter) MaximumRate() (float64, error) {
	return 1.0, nil
}

func (p *playerAdapter) CanGoNext() (bool, error) {
	return p.adapter.snapshot().HasTrack, nil
}

func (p *playerAdapter) CanGoPrevious() (bool, error) {
	return p.adapter.snapshot().HasTrack, nil
}

func (p *playerAdapter) CanPlay() (bool, error) {
	return p.adapter.snapshot().HasTrack, nil
}

func (p *playerAdapter) CanPause() (bool, error) {
	return true, nil
}

func (p *playerAdapter) CanSeek() (bool, error) {
	return true, nil
}

func (p *playerAdapter) CanControl() (bool, error) {
	return true, nil
}

func formatTrackID(id string) string {
	h := fnv.New64a()
	h.Write([]byte(id))
	return fmt.Sprintf("/org/mpris/MediaPlayer2/Track/%x", h.Sum64())
}
