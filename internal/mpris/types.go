// Package mpris exposes the playback session as an MPRIS media player
// over D-Bus, so desktop media keys and applets control playback.
package mpris

// Snapshot is the slice of session state the adapter publishes.
// The UI pushes a fresh snapshot after every state transition; D-Bus
// property reads are served from the latest one.
type Snapshot struct {
	TrackID         string
	Title           string
	Artist          string
	Album           string
	ArtURL          string
	Playing         bool
	HasTrack        bool
	PositionSeconds float64
	DurationSeconds float64
	Volume          float64
}

// Transport receives desktop-originated commands. Implementations must
// be safe to call from the D-Bus goroutine; the UI satisfies this by
// forwarding commands as messages into its own event loop.
type Transport interface {
	PlayPause()
	Next()
	Previous()
	SetVolume(v float64)
	SeekBy(seconds float64)
}
