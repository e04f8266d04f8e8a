package errmsg

import (
	"errors"
	"testing"
)

func TestFormat(t *testing.T) {
	tests := []struct {
		name     string
		op       Op
		err      error
		expected string
	}{
		{
			name:     "nil error returns empty string",
			op:       OpPlaybackStart,
			err:      nil,
			expected: "",
		},
		{
			name:     "playback operation",
			op:       OpPlaybackStart,
			err:      errors.New("no audio device"),
			expected: "Failed to start playback: no audio device",
		},
		{
			name:     "playlist operation",
			op:       OpPlaylistCreate,
			err:      errors.New("name is empty"),
			expected: "Failed to create playlist: name is empty",
		},
		{
			name:     "suggestion operation",
			op:       OpSuggest,
			err:      errors.New("service unavailable"),
			expected: "Failed to fetch suggestions: service unavailable",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := Format(tt.op, tt.err)
			if result != tt.expected {
				t.Errorf("Format(%q, %v) = %q, want %q", tt.op, tt.err, result, tt.expected)
			}
		})
	}
}

func TestFormatWith(t *testing.T) {
	tests := []struct {
		name     string
		op       Op
		context  string
		err      error
		expected string
	}{
		{
			name:     "nil error returns empty string",
			op:       OpPlaylistDelete,
			context:  "Mix",
			err:      nil,
			expected: "",
		},
		{
			name:     "formats error with context",
			op:       OpPlaylistAddTrack,
			context:  "My Playlist",
			err:      errors.New("track not found"),
			expected: "Failed to add track to playlist 'My Playlist': track not found",
		},
		{
			name:     "empty context falls back to Format",
			op:       OpPlaylistDelete,
			context:  "",
			err:      errors.New("locked"),
			expected: "Failed to delete playlist: locked",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := FormatWith(tt.op, tt.context, tt.err)
			if result != tt.expected {
				t.Errorf("FormatWith(%q, %q, %v) = %q, want %q", tt.op, tt.context, tt.err, result, tt.expected)
			}
		})
	}
}

func TestOpConstants(t *testing.T) {
	ops := []Op{
		OpPlaylistCreate, OpPlaylistDelete, OpPlaylistAddTrack,
		OpFavoriteToggle,
		OpPlaybackStart, OpPlaybackNext, OpPlaybackPrev,
		OpSuggest,
		OpInitialize,
	}

	testErr := errors.New("test error")

	for _, op := range ops {
		t.Run(string(op), func(t *testing.T) {
			if op == "" {
				t.Error("Op constant should not be empty")
			}

			expected := "Failed to " + string(op) + ": test error"
			if result := Format(op, testErr); result != expected {
				t.Errorf("Format = %q, want %q", result, expected)
			}
		})
	}
}
