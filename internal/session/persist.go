package session

import (
	"encoding/json"

	zlog "github.com/rs/zerolog/log"

	"github.com/tuneflow/tuneflow/internal/store"
)

// saved is the restorable slice of session state. Transient fields
// (playing flag, position, duration) are intentionally excluded: a fresh
// session starts paused at the beginning of the restored track.
type saved struct {
	Volume         float64 `json:"volume"`
	Source         Source  `json:"source"`
	Browse         Source  `json:"browse"`
	CurrentTrackID string  `json:"current_track_id,omitempty"`
}

// persist writes the restorable state through to the blob store.
// Best-effort: a failed write loses nothing but the next restore.
func (s *Session) persist() {
	data, err := json.Marshal(saved{
		Volume:         s.volume,
		Source:         s.source,
		Browse:         s.browse,
		CurrentTrackID: s.currentID,
	})
	if err != nil {
		return
	}
	if err := s.blobs.Save(store.KeySession, data); err != nil {
		zlog.Warn().Err(err).Msg("save session state")
	}
}

// restore loads saved state, treating missing or malformed data as absent.
func (s *Session) restore() {
	data, ok := s.blobs.Load(store.KeySession)
	if !ok {
		return
	}
	var sv saved
	if err := json.Unmarshal(data, &sv); err != nil {
		return
	}
	if sv.Volume >= 0 && sv.Volume <= 1 {
		s.volume = sv.Volume
	}
	s.source = sv.Source
	s.browse = sv.Browse
	// The restored track must still resolve to a catalog entry.
	if sv.CurrentTrackID != "" && s.catalog.Has(sv.CurrentTrackID) {
		s.currentID = sv.CurrentTrackID
	}
}
