// Package device abstracts the audio output device.
//
// Commands are fire-and-forget; the device reports back through an event
// channel consumed by the session's event loop. The session never blocks
// on the device.
package device

// Event is an inbound notification from the device.
type Event interface{ isEvent() }

// TimeUpdate reports the current playback position.
type TimeUpdate struct {
	Seconds float64
}

// MetadataLoaded reports the decoded track length once known.
type MetadataLoaded struct {
	TotalSeconds float64
}

// TrackEnded signals that the loaded track played to completion.
type TrackEnded struct{}

func (TimeUpdate) isEvent()     {}
func (MetadataLoaded) isEvent() {}
func (TrackEnded) isEvent()     {}

// Device is the audio output contract.
type Device interface {
	// Load prepares the audio at the given locator for playback,
	// replacing whatever was loaded before. Playback starts paused.
	Load(locator string) error
	Play()
	Pause()
	Seek(seconds float64)
	SetVolume(v float64)

	// Events returns the inbound notification channel.
	Events() <-chan Event

	Close() error
}
