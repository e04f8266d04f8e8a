// Package collections owns user playlists and the favorites set.
//
// Every mutation is written through to the blob store so collections
// survive restarts. Persistence failures are logged by the caller via the
// returned error but never leave the in-memory state inconsistent.
package collections

import (
	"encoding/json"
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/tuneflow/tuneflow/internal/store"
)

// ErrEmptyName is returned when creating a playlist without a name.
var ErrEmptyName = errors.New("playlist name is empty")

// Playlist is a named, user-ordered sequence of track references.
type Playlist struct {
	ID        string   `json:"id"`
	Name      string   `json:"name"`
	TrackIDs  []string `json:"track_ids"`
	CreatedAt int64    `json:"created_at"`
}

// Blobs is the persistence contract the store fulfils.
type Blobs interface {
	Load(key string) ([]byte, bool)
	Save(key string, value []byte) error
}

// DeleteListener is notified when a playlist is deleted, so dependents
// (playback source, browse target) can clear references to its id.
type DeleteListener func(playlistID string)

// Store owns playlists and favorites.
type Store struct {
	blobs     Blobs
	playlists []Playlist
	favorites []string

	onDelete []DeleteListener
}

// New creates a collection store, restoring playlists and favorites from
// the blob store. Missing or malformed blobs yield empty collections.
func New(blobs Blobs) *Store {
	s := &Store{blobs: blobs}
	if data, ok := blobs.Load(store.KeyPlaylists); ok {
		var playlists []Playlist
		if err := json.Unmarshal(data, &playlists); err == nil {
			s.playlists = playlists
		}
	}
	if data, ok := blobs.Load(store.KeyFavorites); ok {
		var favorites []string
		if err := json.Unmarshal(data, &favorites); err == nil {
			s.favorites = favorites
		}
	}
	return s
}

// OnPlaylistDeleted registers a listener invoked after a playlist is
// deleted.
func (s *Store) OnPlaylistDeleted(fn DeleteListener) {
	s.onDelete = append(s.onDelete, fn)
}

// CreatePlaylist creates a playlist with a fresh id and persists it.
func (s *Store) CreatePlaylist(name string, initialTrackIDs []string) (Playlist, error) {
	if name == "" {
		return Playlist{}, ErrEmptyName
	}
	pl := Playlist{
		ID:        uuid.NewString(),
		Name:      name,
		TrackIDs:  append([]string(nil), initialTrackIDs...),
		CreatedAt: time.Now().Unix(),
	}
	s.playlists = append(s.playlists, pl)
	return pl, s.savePlaylists()
}

// DeletePlaylist removes the playlist with the given id and notifies
// deletion listeners. Unknown ids are a silent no-op.
func (s *Store) DeletePlaylist(id string) error {
	idx := s.indexOf(id)
	if idx < 0 {
		return nil
	}
	s.playlists = append(s.playlists[:idx], s.playlists[idx+1:]...)
	err := s.savePlaylists()
	for _, fn := range s.onDelete {
		fn(id)
	}
	return err
}

// AddTrackToPlaylist appends a track to the playlist.
// Unknown playlist ids and tracks already present are silent no-ops.
func (s *Store) AddTrackToPlaylist(playlistID, trackID string) error {
	idx := s.indexOf(playlistID)
	if idx < 0 {
		return nil
	}
	for _, id := range s.playlists[idx].TrackIDs {
		if id == trackID {
			return nil
		}
	}
	s.playlists[idx].TrackIDs = append(s.playlists[idx].TrackIDs, trackID)
	return s.savePlaylists()
}

// ToggleFavorite adds the track to favorites if absent, removes it if
// present. Returns the new favorite status (true = now favorited).
func (s *Store) ToggleFavorite(trackID string) (bool, error) {
	for i, id := range s.favorites {
		if id == trackID {
			s.favorites = append(s.favorites[:i], s.favorites[i+1:]...)
			return false, s.saveFavorites()
		}
	}
	s.favorites = append(s.favorites, trackID)
	return true, s.saveFavorites()
}

// IsFavorite reports whether the track is in the favorites set.
func (s *Store) IsFavorite(trackID string) bool {
	for _, id := range s.favorites {
		if id == trackID {
			return true
		}
	}
	return false
}

// FavoriteIDs returns the favorite track ids as a set for efficient lookup.
func (s *Store) FavoriteIDs() map[string]bool {
	set := make(map[string]bool, len(s.favorites))
	for _, id := range s.favorites {
		set[id] = true
	}
	return set
}

// Playlists returns all playlists in creation order.
func (s *Store) Playlists() []Playlist {
	out := make([]Playlist, len(s.playlists))
	copy(out, s.playlists)
	return out
}

// Playlist returns the playlist with the given id.
func (s *Store) Playlist(id string) (Playlist, bool) {
	idx := s.indexOf(id)
	if idx < 0 {
		return Playlist{}, false
	}
	return s.playlists[idx], true
}

func (s *Store) indexOf(id string) int {
	for i, pl := range s.playlists {
		if pl.ID == id {
			return i
		}
	}
	return -1
}

func (s *Store) savePlaylists() error {
	data, err := json.Marshal(s.playlists)
	if err != nil {
		return err
	}
	return s.blobs.Save(store.KeyPlaylists, data)
}

func (s *Store) saveFavorites() error {
	data, err := json.Marshal(s.favorites)
	if err != nil {
		return err
	}
	return s.blobs.Save(store.KeyFavorites, data)
}
