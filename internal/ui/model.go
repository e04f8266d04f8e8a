// Package ui implements the terminal interface: a track browser with
// playlist and favorite management, playback controls and a suggestion
// popup, all driven by a single bubbletea update loop.
package ui

import (
	"context"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/tuneflow/tuneflow/internal/artwork"
	"github.com/tuneflow/tuneflow/internal/catalog"
	"github.com/tuneflow/tuneflow/internal/collections"
	"github.com/tuneflow/tuneflow/internal/device"
	"github.com/tuneflow/tuneflow/internal/errmsg"
	"github.com/tuneflow/tuneflow/internal/mpris"
	"github.com/tuneflow/tuneflow/internal/notify"
	"github.com/tuneflow/tuneflow/internal/session"
	"github.com/tuneflow/tuneflow/internal/suggest"
	"github.com/tuneflow/tuneflow/internal/ui/cursor"
)

// inputMode selects which handler consumes key presses.
type inputMode int

const (
	modeBrowse inputMode = iota
	modeNewPlaylist
	modePickPlaylist
	modeSuggest
)

// Publisher receives state snapshots for desktop integration.
type Publisher interface {
	Publish(mpris.Snapshot)
}

const (
	volumeStep = 0.05
	seekStep   = 5.0
)

// Model is the root application model.
type Model struct {
	Session     *session.Session
	Catalog     *catalog.Catalog
	Collections *collections.Store
	Device      device.Device
	Suggest     *suggest.Client
	Artwork     *artwork.Resolver
	Remote      Publisher
	Notifier    notify.Notifier

	mode       inputMode
	cursor     cursor.Cursor
	pickCursor int
	nameInput  textinput.Model

	statusMsg string
	statusErr bool

	suggestToken   int
	suggestLoading bool
	suggestions    []string
	suggestErr     error
	cancelSuggest  context.CancelFunc

	artTrackID string
	artURL     string
	notifyID   uint32

	width  int
	height int
}

// New creates the application model. Remote and notifier may be nil
// when desktop integration is unavailable.
func New(
	sess *session.Session,
	cat *catalog.Catalog,
	cols *collections.Store,
	dev device.Device,
	sug *suggest.Client,
	art *artwork.Resolver,
	remote Publisher,
	notifier notify.Notifier,
) Model {
	ti := textinput.New()
	ti.Placeholder = "Playlist name"
	ti.CharLimit = 64
	ti.Width = 30

	return Model{
		Session:     sess,
		Catalog:     cat,
		Collections: cols,
		Device:      dev,
		Suggest:     sug,
		Artwork:     art,
		Remote:      remote,
		Notifier:    notifier,
		nameInput:   ti,
	}
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	cmds := []tea.Cmd{waitForDeviceEvent(m.Device.Events())}
	if track, ok := m.Session.CurrentTrack(); ok {
		cmds = append(cmds, resolveArtwork(m.Artwork, track))
	}
	m.publish()
	return tea.Batch(cmds...)
}

// browseTargets lists the selectable browse sources in display order:
// the full catalog, favorites, then each playlist.
func (m Model) browseTargets() []session.Source {
	targets := []session.Source{session.AllTracks(), session.Favorites()}
	for _, pl := range m.Collections.Playlists() {
		targets = append(targets, session.PlaylistSource(pl.ID))
	}
	return targets
}

// browseIndex returns the position of the current browse target among
// browseTargets, falling back to 0 when the target no longer exists.
func (m Model) browseIndex() int {
	current := m.Session.BrowseTarget()
	for i, t := range m.browseTargets() {
		if t == current {
			return i
		}
	}
	return 0
}

func (m *Model) cycleBrowse(delta int) {
	targets := m.browseTargets()
	idx := (m.browseIndex() + delta + len(targets)) % len(targets)
	m.Session.SelectBrowseTarget(targets[idx])
	m.cursor.Clamp(len(m.Session.BrowseList()), m.listHeight())
}

// selectedTrack returns the track under the cursor.
func (m Model) selectedTrack() (catalog.Track, bool) {
	tracks := m.Session.BrowseList()
	pos := m.cursor.Pos()
	if pos < 0 || pos >= len(tracks) {
		return catalog.Track{}, false
	}
	return tracks[pos], true
}

// listHeight is the number of track rows that fit on screen after the
// header, player bar and status line.
func (m Model) listHeight() int {
	h := m.height - 6
	if h < 1 {
		h = 1
	}
	return h
}

func (m *Model) setStatus(msg string) {
	m.statusMsg = msg
	m.statusErr = false
}

func (m *Model) setError(op errmsg.Op, err error) {
	m.statusMsg = errmsg.Format(op, err)
	m.statusErr = true
}

func (m *Model) setErrorWith(op errmsg.Op, context string, err error) {
	m.statusMsg = errmsg.FormatWith(op, context, err)
	m.statusErr = true
}

// publish pushes the current session state to the desktop integration.
func (m Model) publish() {
	if m.Remote == nil {
		return
	}
	snap := mpris.Snapshot{
		Playing:         m.Session.IsPlaying(),
		PositionSeconds: m.Session.Position(),
		DurationSeconds: m.Session.Duration(),
		Volume:          m.Session.Volume(),
	}
	if track, ok := m.Session.CurrentTrack(); ok {
		snap.HasTrack = true
		snap.TrackID = track.ID
		snap.Title = track.Title
		snap.Artist = track.Artist
		snap.Album = track.Album
		if m.artTrackID == track.ID {
			snap.ArtURL = m.artURL
		}
	}
	m.Remote.Publish(snap)
}
