// Package session owns the playback state machine: which track is
// current, which list playback advances through, and how transport
// operations and device events mutate that state.
//
// All transitions are synchronous and assume a single event loop; the only
// asynchronous boundary is the device, whose notifications are fed back in
// through HandleDeviceEvent.
package session

import (
	"fmt"

	"github.com/tuneflow/tuneflow/internal/catalog"
	"github.com/tuneflow/tuneflow/internal/collections"
	"github.com/tuneflow/tuneflow/internal/device"
)

// Session is the playback session.
type Session struct {
	catalog     *catalog.Catalog
	collections *collections.Store
	device      device.Device
	blobs       collections.Blobs

	currentID string
	source    Source // list next/previous advances through
	browse    Source // list the UI displays, independent of source
	playing   bool
	volume    float64
	position  float64
	duration  float64
}

// New creates a session over the given catalog, collections and device.
// Previously saved session state is restored from the blob store when
// present. The session registers itself with the collection store so
// deleting a playlist clears any reference to it.
func New(cat *catalog.Catalog, cols *collections.Store, dev device.Device, blobs collections.Blobs) *Session {
	s := &Session{
		catalog:     cat,
		collections: cols,
		device:      dev,
		blobs:       blobs,
		source:      AllTracks(),
		browse:      AllTracks(),
		volume:      0.5,
	}
	s.restore()
	cols.OnPlaylistDeleted(s.playlistDeleted)
	dev.SetVolume(s.volume)
	return s
}

// ResolveList resolves a source to its ordered track list.
//
// Favorites resolve in catalog order; a playlist resolves in playlist
// order, so the user's arrangement is what playback walks through. An
// unknown or deleted playlist falls back to the full catalog rather than
// failing.
func (s *Session) ResolveList(src Source) []catalog.Track {
	switch src.Kind {
	case SourceFavorites:
		favs := s.collections.FavoriteIDs()
		var out []catalog.Track
		for _, t := range s.catalog.All() {
			if favs[t.ID] {
				out = append(out, t)
			}
		}
		return out
	case SourcePlaylist:
		pl, ok := s.collections.Playlist(src.PlaylistID)
		if !ok {
			return s.catalog.All()
		}
		var out []catalog.Track
		for _, id := range pl.TrackIDs {
			if t, ok := s.catalog.Get(id); ok {
				out = append(out, t)
			}
		}
		return out
	default:
		return s.catalog.All()
	}
}

// Play loads and plays the given track, keeping the current playback
// source. Unknown track ids leave the session unchanged.
func (s *Session) Play(trackID string) error {
	return s.play(trackID, nil)
}

// PlayFrom plays the given track and adopts src as the playback source
// for subsequent Next/Previous navigation. The track is not required to
// belong to the resolved source list.
func (s *Session) PlayFrom(trackID string, src Source) error {
	return s.play(trackID, &src)
}

func (s *Session) play(trackID string, src *Source) error {
	track, ok := s.catalog.Get(trackID)
	if !ok {
		// Benign race between UI state and catalog; not an error.
		return nil
	}
	if src != nil {
		s.source = *src
	}

	changed := trackID != s.currentID
	s.currentID = trackID
	s.playing = true

	if changed {
		s.position = 0
		s.duration = 0
		if err := s.device.Load(track.AudioLocator); err != nil {
			s.playing = false
			s.persist()
			return fmt.Errorf("load %q: %w", track.Title, err)
		}
	}
	s.device.Play()
	s.persist()
	return nil
}

// TogglePlayPause inverts the playing state.
// A no-op when nothing is loaded.
func (s *Session) TogglePlayPause() {
	if s.currentID == "" {
		return
	}
	s.playing = !s.playing
	if s.playing {
		s.device.Play()
	} else {
		s.device.Pause()
	}
}

// Next advances to the next track in the playback list, wrapping around
// at the end. A no-op when the current track is not in the list.
func (s *Session) Next() error {
	return s.step(1)
}

// Previous moves to the previous track in the playback list, wrapping
// around at the start. A no-op when the current track is not in the list.
func (s *Session) Previous() error {
	return s.step(-1)
}

func (s *Session) step(delta int) error {
	list := s.ResolveList(s.source)
	if len(list) == 0 {
		return nil
	}
	idx := -1
	for i, t := range list {
		if t.ID == s.currentID {
			idx = i
			break
		}
	}
	if idx < 0 {
		// The current track left its source list (or nothing is
		// playing); navigation has no anchor.
		return nil
	}
	next := (idx + delta + len(list)) % len(list)
	return s.play(list[next].ID, nil)
}

// SetVolume clamps v to [0,1], forwards it to the device and stores it.
func (s *Session) SetVolume(v float64) {
	if v < 0 {
		v = 0
	}
	if v > 1 {
		v = 1
	}
	s.volume = v
	s.device.SetVolume(v)
	s.persist()
}

// Seek moves playback to the given position. The requested value is
// stored optimistically so UI feedback is immediate; the device remains
// authoritative through subsequent TimeUpdate events.
func (s *Session) Seek(seconds float64) {
	if seconds < 0 {
		seconds = 0
	}
	if s.duration > 0 && seconds > s.duration {
		seconds = s.duration
	}
	s.position = seconds
	s.device.Seek(seconds)
}

// SelectBrowseTarget sets the list the UI displays. Playback source,
// current track and playing state are deliberately untouched: browsing a
// different playlist must not interrupt playback.
func (s *Session) SelectBrowseTarget(src Source) {
	s.browse = src
	s.persist()
}

// HandleDeviceEvent applies an inbound device notification.
// A track ending is the only automatic transition: it advances to the
// next track exactly like an explicit Next.
func (s *Session) HandleDeviceEvent(e device.Event) error {
	switch ev := e.(type) {
	case device.TimeUpdate:
		if ev.Seconds >= 0 {
			s.position = ev.Seconds
		}
	case device.MetadataLoaded:
		if ev.TotalSeconds >= 0 {
			s.duration = ev.TotalSeconds
		}
	case device.TrackEnded:
		return s.Next()
	}
	return nil
}

// playlistDeleted clears references to a deleted playlist. The current
// track is left as-is; if it no longer belongs to the fallback list the
// next Next/Previous is a no-op.
func (s *Session) playlistDeleted(id string) {
	changed := false
	if s.source.IsPlaylist(id) {
		s.source = AllTracks()
		changed = true
	}
	if s.browse.IsPlaylist(id) {
		s.browse = AllTracks()
		changed = true
	}
	if changed {
		s.persist()
	}
}

// State accessors

// CurrentTrack returns the current track, if any.
func (s *Session) CurrentTrack() (catalog.Track, bool) {
	if s.currentID == "" {
		return catalog.Track{}, false
	}
	return s.catalog.Get(s.currentID)
}

// CurrentTrackID returns the current track id, or "" if none.
func (s *Session) CurrentTrackID() string { return s.currentID }

// PlaybackSource returns the source Next/Previous advances through.
func (s *Session) PlaybackSource() Source { return s.source }

// BrowseTarget returns the source the UI displays.
func (s *Session) BrowseTarget() Source { return s.browse }

// BrowseList returns the resolved browse-target track list.
func (s *Session) BrowseList() []catalog.Track {
	return s.ResolveList(s.browse)
}

// IsPlaying reports whether playback is running.
func (s *Session) IsPlaying() bool { return s.playing }

// Volume returns the volume level in [0,1].
func (s *Session) Volume() float64 { return s.volume }

// Position returns the playback position in seconds.
func (s *Session) Position() float64 { return s.position }

// Duration returns the track length in seconds, 0 while unknown.
func (s *Session) Duration() float64 { return s.duration }
