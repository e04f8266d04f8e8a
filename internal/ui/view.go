package ui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/dustin/go-humanize"

	"github.com/tuneflow/tuneflow/internal/errmsg"
	"github.com/tuneflow/tuneflow/internal/session"
	"github.com/tuneflow/tuneflow/internal/ui/render"
)

// View renders the application UI.
func (m Model) View() string {
	if m.width == 0 || m.height == 0 {
		return ""
	}

	switch m.mode {
	case modeNewPlaylist:
		return m.overlay(m.renderNewPlaylist())
	case modePickPlaylist:
		return m.overlay(m.renderPickPlaylist())
	case modeSuggest:
		return m.overlay(m.renderSuggestions())
	}

	var b strings.Builder
	b.WriteString(m.renderHeader())
	b.WriteString("\n")
	b.WriteString(m.renderTrackList())
	b.WriteString(styleSubtle.Render(render.Separator(m.width)))
	b.WriteString("\n")
	b.WriteString(m.renderPlayerBar())
	b.WriteString("\n")
	b.WriteString(m.renderStatus())
	return b.String()
}

func (m Model) renderHeader() string {
	targets := m.browseTargets()
	active := m.browseIndex()

	labels := make([]string, 0, len(targets))
	for i, t := range targets {
		label := m.sourceLabel(t)
		if i == active {
			label = styleAccent.Bold(true).Render(label)
		} else {
			label = styleMuted.Render(label)
		}
		labels = append(labels, label)
	}
	return " " + strings.Join(labels, styleSubtle.Render(" | "))
}

func (m Model) sourceLabel(src session.Source) string {
	switch src.Kind {
	case session.SourceFavorites:
		return "Favorites"
	case session.SourcePlaylist:
		if pl, ok := m.Collections.Playlist(src.PlaylistID); ok {
			return render.Sanitize(pl.Name)
		}
		return "Playlist"
	default:
		return "All Tracks"
	}
}

func (m Model) renderTrackList() string {
	tracks := m.Session.BrowseList()
	height := m.listHeight()

	var b strings.Builder
	if len(tracks) == 0 {
		b.WriteString(styleMuted.Render("  No tracks here yet"))
		b.WriteString("\n")
		for i := 1; i < height; i++ {
			b.WriteString("\n")
		}
		return b.String()
	}

	end := m.cursor.Offset() + height
	if end > len(tracks) {
		end = len(tracks)
	}

	for i := m.cursor.Offset(); i < end; i++ {
		track := tracks[i]

		marker := "  "
		if track.ID == m.Session.CurrentTrackID() {
			if m.Session.IsPlaying() {
				marker = "▶ "
			} else {
				marker = "⏸ "
			}
		}
		fav := " "
		if m.Collections.IsFavorite(track.ID) {
			fav = "♥"
		}

		left := fmt.Sprintf("%s%s %s", marker, fav, render.Sanitize(track.Title))
		right := fmt.Sprintf("%s  %s", render.Sanitize(track.Artist), formatTime(track.DurationSeconds))
		row := render.Row(left, right, m.width-2)

		switch {
		case i == m.cursor.Pos():
			b.WriteString(styleCursor.Render(" " + row + " "))
		case track.ID == m.Session.CurrentTrackID():
			b.WriteString(" " + stylePlaying.Render(row))
		default:
			b.WriteString(" " + styleBase.Render(row))
		}
		b.WriteString("\n")
	}

	for i := end - m.cursor.Offset(); i < height; i++ {
		b.WriteString("\n")
	}
	return b.String()
}

func (m Model) renderPlayerBar() string {
	track, ok := m.Session.CurrentTrack()
	if !ok {
		return styleMuted.Render(" Nothing playing")
	}

	state := "⏸"
	if m.Session.IsPlaying() {
		state = "▶"
	}

	left := fmt.Sprintf(" %s %s", state,
		styleTitle.Render(render.Truncate(render.Sanitize(track.Title), m.width/3)))
	left += styleMuted.Render(" " + render.Truncate(render.Sanitize(track.Artist), m.width/4))

	timing := fmt.Sprintf("%s / %s", formatTime(m.Session.Position()), formatTime(m.Session.Duration()))
	volume := fmt.Sprintf("vol %d%%", int(m.Session.Volume()*100+0.5))
	right := styleMuted.Render(timing + "  " + volume)

	return render.Row(left, right, m.width-1)
}

func (m Model) renderStatus() string {
	if m.statusMsg == "" {
		hint := "enter play  space pause  n/p skip  f fav  a add  c new list  tab source  s suggest  q quit"
		return styleSubtle.Render(" " + render.Truncate(hint, m.width-1))
	}
	if m.statusErr {
		return styleError.Render(" " + render.Truncate(m.statusMsg, m.width-1))
	}
	return styleMuted.Render(" " + render.Truncate(m.statusMsg, m.width-1))
}

func (m Model) renderNewPlaylist() string {
	var b strings.Builder
	b.WriteString(styleTitle.Render("New playlist"))
	b.WriteString("\n\n")
	b.WriteString(m.nameInput.View())
	b.WriteString("\n\n")
	b.WriteString(styleSubtle.Render("enter create  esc cancel"))
	return b.String()
}

func (m Model) renderPickPlaylist() string {
	playlists := m.Collections.Playlists()

	var b strings.Builder
	b.WriteString(styleTitle.Render("Add to playlist"))
	b.WriteString("\n\n")
	for i, pl := range playlists {
		line := fmt.Sprintf("%s  %s", render.Truncate(render.Sanitize(pl.Name), 30),
			styleSubtle.Render(fmt.Sprintf("%d tracks, created %s", len(pl.TrackIDs), humanize.Time(time.Unix(pl.CreatedAt, 0)))))
		if i == m.pickCursor {
			b.WriteString(styleCursor.Render("> " + line))
		} else {
			b.WriteString("  " + line)
		}
		b.WriteString("\n")
	}
	b.WriteString("\n")
	b.WriteString(styleSubtle.Render("enter add  esc cancel"))
	return b.String()
}

func (m Model) renderSuggestions() string {
	var b strings.Builder
	b.WriteString(styleTitle.Render("Similar songs"))
	b.WriteString("\n\n")

	switch {
	case m.suggestLoading:
		b.WriteString(styleMuted.Render("Asking for suggestions..."))
	case m.suggestErr != nil:
		b.WriteString(styleError.Render(render.Truncate(errmsg.Format(errmsg.OpSuggest, m.suggestErr), 60)))
	case len(m.suggestions) == 0:
		b.WriteString(styleMuted.Render("No suggestions"))
	default:
		for _, song := range m.suggestions {
			b.WriteString(styleBase.Render("• " + render.Truncate(render.Sanitize(song), 60)))
			b.WriteString("\n")
		}
	}

	b.WriteString("\n")
	b.WriteString(styleSubtle.Render("esc close"))
	return b.String()
}

func (m Model) overlay(content string) string {
	return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center,
		stylePopup.Render(content))
}

func formatTime(seconds float64) string {
	if seconds < 0 {
		seconds = 0
	}
	total := int(seconds + 0.5)
	return fmt.Sprintf("%d:%02d", total/60, total%60)
}
