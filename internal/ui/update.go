package ui

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/tuneflow/tuneflow/internal/errmsg"
	"github.com/tuneflow/tuneflow/internal/mpris"
	"github.com/tuneflow/tuneflow/internal/notify"
	"github.com/tuneflow/tuneflow/internal/session"
)

// Update handles messages and returns the updated model and commands.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.cursor.Clamp(len(m.Session.BrowseList()), m.listHeight())
		return m, nil

	case DeviceEventMsg:
		before := m.Session.CurrentTrackID()
		if err := m.Session.HandleDeviceEvent(msg.Event); err != nil {
			m.setError(errmsg.OpPlaybackNext, err)
		}
		cmds := []tea.Cmd{waitForDeviceEvent(m.Device.Events()), m.maybeResolveArtwork()}
		if m.Session.CurrentTrackID() != before {
			cmds = append(cmds, m.notifyNowPlaying())
		}
		m.publish()
		return m, tea.Batch(cmds...)

	case deviceClosedMsg:
		return m, nil

	case suggestionsMsg:
		if msg.Token != m.suggestToken {
			return m, nil
		}
		m.suggestLoading = false
		m.suggestions = msg.Songs
		m.suggestErr = msg.Err
		return m, nil

	case notifySentMsg:
		m.notifyID = msg.ID
		return m, nil

	case artworkMsg:
		if msg.TrackID != m.Session.CurrentTrackID() {
			return m, nil
		}
		m.artTrackID = msg.TrackID
		m.artURL = mpris.CoverURL(msg.TrackID, msg.Art)
		m.publish()
		return m, nil

	case remotePlayPauseMsg:
		m.Session.TogglePlayPause()
		m.publish()
		return m, nil

	case remoteNextMsg:
		return m.advance(m.Session.Next, errmsg.OpPlaybackNext)

	case remotePreviousMsg:
		return m.advance(m.Session.Previous, errmsg.OpPlaybackPrev)

	case remoteSetVolumeMsg:
		m.Session.SetVolume(msg.Volume)
		m.publish()
		return m, nil

	case remoteSeekByMsg:
		m.Session.Seek(m.Session.Position() + msg.Seconds)
		m.publish()
		return m, nil

	case tea.KeyMsg:
		switch m.mode {
		case modeNewPlaylist:
			return m.updateNewPlaylist(msg)
		case modePickPlaylist:
			return m.updatePickPlaylist(msg)
		case modeSuggest:
			return m.updateSuggest(msg)
		default:
			return m.updateBrowse(msg)
		}
	}

	return m, nil
}

func (m Model) updateBrowse(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+c", "q":
		if m.cancelSuggest != nil {
			m.cancelSuggest()
		}
		return m, tea.Quit

	case "up", "k":
		m.cursor.Move(-1, len(m.Session.BrowseList()), m.listHeight())

	case "down", "j":
		m.cursor.Move(1, len(m.Session.BrowseList()), m.listHeight())

	case "g":
		m.cursor.Jump(0, len(m.Session.BrowseList()), m.listHeight())

	case "G":
		m.cursor.Jump(len(m.Session.BrowseList())-1, len(m.Session.BrowseList()), m.listHeight())

	case "enter":
		track, ok := m.selectedTrack()
		if !ok {
			return m, nil
		}
		if err := m.Session.PlayFrom(track.ID, m.Session.BrowseTarget()); err != nil {
			m.setErrorWith(errmsg.OpPlaybackStart, track.Title, err)
			m.publish()
			return m, nil
		}
		m.setStatus("")
		cmd := tea.Batch(m.maybeResolveArtwork(), m.notifyNowPlaying())
		m.publish()
		return m, cmd

	case " ":
		m.Session.TogglePlayPause()
		m.publish()

	case "n":
		return m.advance(m.Session.Next, errmsg.OpPlaybackNext)

	case "p":
		return m.advance(m.Session.Previous, errmsg.OpPlaybackPrev)

	case "f":
		track, ok := m.selectedTrack()
		if !ok {
			return m, nil
		}
		fav, err := m.Collections.ToggleFavorite(track.ID)
		if err != nil {
			m.setError(errmsg.OpFavoriteToggle, err)
			return m, nil
		}
		if fav {
			m.setStatus(fmt.Sprintf("Added %q to favorites", track.Title))
		} else {
			m.setStatus(fmt.Sprintf("Removed %q from favorites", track.Title))
		}
		m.cursor.Clamp(len(m.Session.BrowseList()), m.listHeight())

	case "c":
		m.mode = modeNewPlaylist
		m.nameInput.SetValue("")
		m.nameInput.Focus()
		return m, textinput.Blink

	case "d":
		target := m.Session.BrowseTarget()
		if target.Kind != session.SourcePlaylist {
			return m, nil
		}
		pl, ok := m.Collections.Playlist(target.PlaylistID)
		if !ok {
			return m, nil
		}
		if err := m.Collections.DeletePlaylist(pl.ID); err != nil {
			m.setErrorWith(errmsg.OpPlaylistDelete, pl.Name, err)
			return m, nil
		}
		m.setStatus(fmt.Sprintf("Deleted playlist %q", pl.Name))
		m.cursor.Clamp(len(m.Session.BrowseList()), m.listHeight())
		m.publish()

	case "a":
		if _, ok := m.selectedTrack(); !ok {
			return m, nil
		}
		if len(m.Collections.Playlists()) == 0 {
			m.setStatus("No playlists yet, press c to create one")
			return m, nil
		}
		m.mode = modePickPlaylist
		m.pickCursor = 0

	case "tab":
		m.cycleBrowse(1)

	case "shift+tab":
		m.cycleBrowse(-1)

	case "+", "=":
		m.Session.SetVolume(m.Session.Volume() + volumeStep)
		m.publish()

	case "-":
		m.Session.SetVolume(m.Session.Volume() - volumeStep)
		m.publish()

	case "left":
		m.Session.Seek(m.Session.Position() - seekStep)
		m.publish()

	case "right":
		m.Session.Seek(m.Session.Position() + seekStep)
		m.publish()

	case "s":
		return m.startSuggestions()

	case "esc":
		m.setStatus("")
	}

	return m, nil
}

func (m Model) updateNewPlaylist(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.mode = modeBrowse
		m.nameInput.Blur()
		return m, nil

	case "enter":
		name := strings.TrimSpace(m.nameInput.Value())
		pl, err := m.Collections.CreatePlaylist(name, nil)
		if err != nil {
			m.setError(errmsg.OpPlaylistCreate, err)
			return m, nil
		}
		m.mode = modeBrowse
		m.nameInput.Blur()
		m.setStatus(fmt.Sprintf("Created playlist %q", pl.Name))
		return m, nil
	}

	var cmd tea.Cmd
	m.nameInput, cmd = m.nameInput.Update(msg)
	return m, cmd
}

func (m Model) updatePickPlaylist(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	playlists := m.Collections.Playlists()

	switch msg.String() {
	case "esc":
		m.mode = modeBrowse

	case "up", "k":
		if m.pickCursor > 0 {
			m.pickCursor--
		}

	case "down", "j":
		if m.pickCursor < len(playlists)-1 {
			m.pickCursor++
		}

	case "enter":
		track, ok := m.selectedTrack()
		if !ok || m.pickCursor >= len(playlists) {
			m.mode = modeBrowse
			return m, nil
		}
		pl := playlists[m.pickCursor]
		if err := m.Collections.AddTrackToPlaylist(pl.ID, track.ID); err != nil {
			m.setErrorWith(errmsg.OpPlaylistAddTrack, pl.Name, err)
		} else {
			m.setStatus(fmt.Sprintf("Added %q to %q", track.Title, pl.Name))
		}
		m.mode = modeBrowse
	}

	return m, nil
}

func (m Model) updateSuggest(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc", "q", "enter", "s":
		if m.cancelSuggest != nil {
			m.cancelSuggest()
			m.cancelSuggest = nil
		}
		m.mode = modeBrowse
		m.suggestLoading = false
	}
	return m, nil
}

// startSuggestions opens the popup and kicks off a fetch for the
// current track, cancelling any fetch still in flight.
func (m Model) startSuggestions() (tea.Model, tea.Cmd) {
	track, ok := m.Session.CurrentTrack()
	if !ok {
		track, ok = m.selectedTrack()
	}
	if !ok {
		m.setStatus("Nothing to suggest from")
		return m, nil
	}
	if !m.Suggest.Configured() {
		m.setStatus("Suggestions are not configured")
		return m, nil
	}

	if m.cancelSuggest != nil {
		m.cancelSuggest()
	}
	ctx, cancel := context.WithCancel(context.Background())
	m.cancelSuggest = cancel
	m.suggestToken++
	m.suggestLoading = true
	m.suggestions = nil
	m.suggestErr = nil
	m.mode = modeSuggest

	return m, fetchSuggestions(ctx, m.Suggest, track, m.suggestToken)
}

// advance runs Next or Previous and refreshes artwork and the desktop
// notification for the track playback landed on.
func (m Model) advance(step func() error, op errmsg.Op) (tea.Model, tea.Cmd) {
	before := m.Session.CurrentTrackID()
	if err := step(); err != nil {
		m.setError(op, err)
		m.publish()
		return m, nil
	}
	cmds := []tea.Cmd{m.maybeResolveArtwork()}
	if m.Session.CurrentTrackID() != before {
		cmds = append(cmds, m.notifyNowPlaying())
	}
	m.publish()
	return m, tea.Batch(cmds...)
}

// notifyNowPlaying builds a notification for the current track, using
// cached artwork as the icon when it resolves to a local file.
func (m Model) notifyNowPlaying() tea.Cmd {
	if m.Notifier == nil {
		return nil
	}
	track, ok := m.Session.CurrentTrack()
	if !ok {
		return nil
	}
	icon := ""
	if m.artTrackID == track.ID && strings.HasPrefix(m.artURL, "file://") {
		icon = strings.TrimPrefix(m.artURL, "file://")
	}
	return sendNotification(m.Notifier, notify.Notification{
		Title:      track.Title,
		Body:       track.Artist,
		Icon:       icon,
		ReplacesID: m.notifyID,
	})
}

// maybeResolveArtwork starts an artwork fetch when the current track
// has no resolved art yet.
func (m Model) maybeResolveArtwork() tea.Cmd {
	track, ok := m.Session.CurrentTrack()
	if !ok || track.ID == m.artTrackID {
		return nil
	}
	return resolveArtwork(m.Artwork, track)
}
