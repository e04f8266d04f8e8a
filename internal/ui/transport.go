package ui

import (
	"sync"

	tea "github.com/charmbracelet/bubbletea"
)

// sender is the part of tea.Program the remote transport needs.
type sender interface {
	Send(tea.Msg)
}

// RemoteTransport forwards desktop media commands into the program's
// event loop, so all session mutation stays on the update goroutine.
// Commands arriving before Attach are dropped.
type RemoteTransport struct {
	mu      sync.Mutex
	program sender
}

// NewRemoteTransport creates a transport with no program attached yet.
func NewRemoteTransport() *RemoteTransport {
	return &RemoteTransport{}
}

// Attach binds the transport to a running program.
func (t *RemoteTransport) Attach(p sender) {
	t.mu.Lock()
	t.program = p
	t.mu.Unlock()
}

func (t *RemoteTransport) send(msg tea.Msg) {
	t.mu.Lock()
	p := t.program
	t.mu.Unlock()
	if p != nil {
		p.Send(msg)
	}
}

func (t *RemoteTransport) PlayPause() {
	t.send(remotePlayPauseMsg{})
}

func (t *RemoteTransport) Next() {
	t.send(remoteNextMsg{})
}

func (t *RemoteTransport) Previous() {
	t.send(remotePreviousMsg{})
}

func (t *RemoteTransport) SetVolume(v float64) {
	t.send(remoteSetVolumeMsg{Volume: v})
}

func (t *RemoteTransport) SeekBy(seconds float64) {
	t.send(remoteSeekByMsg{Seconds: seconds})
}
