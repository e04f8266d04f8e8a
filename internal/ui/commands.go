package ui

import (
	"context"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/tuneflow/tuneflow/internal/artwork"
	"github.com/tuneflow/tuneflow/internal/catalog"
	"github.com/tuneflow/tuneflow/internal/device"
	"github.com/tuneflow/tuneflow/internal/notify"
	"github.com/tuneflow/tuneflow/internal/suggest"
)

// waitForDeviceEvent blocks on the device event channel and delivers
// the next event as a message. Update re-issues it after each event so
// the loop runs for the life of the program.
func waitForDeviceEvent(events <-chan device.Event) tea.Cmd {
	return func() tea.Msg {
		e, ok := <-events
		if !ok {
			return deviceClosedMsg{}
		}
		return DeviceEventMsg{Event: e}
	}
}

func fetchSuggestions(ctx context.Context, client *suggest.Client, track catalog.Track, token int) tea.Cmd {
	return func() tea.Msg {
		songs, err := client.Suggest(ctx, suggest.Query{
			Genre:           track.Genre,
			Tempo:           track.Tempo,
			Characteristics: track.Characteristics,
		})
		return suggestionsMsg{Token: token, Songs: songs, Err: err}
	}
}

func resolveArtwork(resolver *artwork.Resolver, track catalog.Track) tea.Cmd {
	return func() tea.Msg {
		art := resolver.Resolve(context.Background(), track)
		return artworkMsg{TrackID: track.ID, Art: art}
	}
}

func sendNotification(notifier notify.Notifier, n notify.Notification) tea.Cmd {
	return func() tea.Msg {
		id, err := notifier.Notify(n)
		if err != nil || id == 0 {
			return nil
		}
		return notifySentMsg{ID: id}
	}
}
