package ui

import (
	"github.com/tuneflow/tuneflow/internal/artwork"
	"github.com/tuneflow/tuneflow/internal/device"
)

// DeviceEventMsg wraps an audio device event for the update loop.
type DeviceEventMsg struct {
	Event device.Event
}

// deviceClosedMsg signals that the device event channel closed.
type deviceClosedMsg struct{}

// suggestionsMsg carries the result of a suggestion fetch. Token ties
// the result to the request that started it so replies from a
// superseded fetch are dropped.
type suggestionsMsg struct {
	Token int
	Songs []string
	Err   error
}

// artworkMsg carries resolved artwork for a track.
type artworkMsg struct {
	TrackID string
	Art     artwork.Art
}

// notifySentMsg carries the id of a sent desktop notification, so the
// next one can replace it.
type notifySentMsg struct {
	ID uint32
}

// Remote control messages, sent into the program by the desktop
// integration goroutine.

type remotePlayPauseMsg struct{}

type remoteNextMsg struct{}

type remotePreviousMsg struct{}

type remoteSetVolumeMsg struct {
	Volume float64
}

type remoteSeekByMsg struct {
	Seconds float64
}
