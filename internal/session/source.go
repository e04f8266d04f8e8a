package session

// SourceKind discriminates the playback source variants.
type SourceKind int

const (
	// SourceAll plays the full catalog in catalog order.
	SourceAll SourceKind = iota
	// SourceFavorites plays favorited tracks in catalog order.
	SourceFavorites
	// SourcePlaylist plays a playlist's tracks in playlist order.
	SourcePlaylist
)

// Source identifies an ordered list of tracks: the full catalog, the
// favorites set, or a playlist. The zero value is the full catalog, so an
// unset source always has a defined meaning.
type Source struct {
	Kind       SourceKind `json:"kind"`
	PlaylistID string     `json:"playlist_id,omitempty"`
}

// AllTracks returns the full-catalog source.
func AllTracks() Source {
	return Source{Kind: SourceAll}
}

// Favorites returns the favorites source.
func Favorites() Source {
	return Source{Kind: SourceFavorites}
}

// PlaylistSource returns a source for the given playlist id.
func PlaylistSource(id string) Source {
	return Source{Kind: SourcePlaylist, PlaylistID: id}
}

// IsPlaylist reports whether the source refers to the given playlist.
func (s Source) IsPlaylist(id string) bool {
	return s.Kind == SourcePlaylist && s.PlaylistID == id
}

// String returns a short name for display and logging.
func (s Source) String() string {
	switch s.Kind {
	case SourceAll:
		return "all tracks"
	case SourceFavorites:
		return "favorites"
	case SourcePlaylist:
		return "playlist " + s.PlaylistID
	default:
		return "unknown"
	}
}
