package session

import (
	"errors"
	"testing"

	"github.com/tuneflow/tuneflow/internal/catalog"
	"github.com/tuneflow/tuneflow/internal/collections"
	"github.com/tuneflow/tuneflow/internal/device"
	"github.com/tuneflow/tuneflow/internal/store"
)

type memBlobs struct {
	data map[string][]byte
}

func newMemBlobs() *memBlobs {
	return &memBlobs{data: make(map[string][]byte)}
}

func (m *memBlobs) Load(key string) ([]byte, bool) {
	v, ok := m.data[key]
	return v, ok
}

func (m *memBlobs) Save(key string, value []byte) error {
	m.data[key] = value
	return nil
}

func testCatalog() *catalog.Catalog {
	return catalog.New([]catalog.Track{
		{ID: "1", Title: "A", AudioLocator: "/a.mp3"},
		{ID: "2", Title: "B", AudioLocator: "/b.mp3"},
		{ID: "3", Title: "C", AudioLocator: "/c.mp3"},
	})
}

type fixture struct {
	session *Session
	cols    *collections.Store
	dev     *device.Mock
	blobs   *memBlobs
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	blobs := newMemBlobs()
	cols := collections.New(blobs)
	dev := device.NewMock()
	return &fixture{
		session: New(testCatalog(), cols, dev, blobs),
		cols:    cols,
		dev:     dev,
		blobs:   blobs,
	}
}

func TestPlay(t *testing.T) {
	f := newFixture(t)

	if err := f.session.Play("2"); err != nil {
		t.Fatalf("Play: %v", err)
	}

	if f.session.CurrentTrackID() != "2" {
		t.Errorf("CurrentTrackID = %q, want 2", f.session.CurrentTrackID())
	}
	if !f.session.IsPlaying() {
		t.Error("IsPlaying should be true")
	}
	if got := f.dev.LoadCalls(); len(got) != 1 || got[0] != "/b.mp3" {
		t.Errorf("device loads = %v, want [/b.mp3]", got)
	}
	if f.dev.PlayCalls() != 1 {
		t.Errorf("device play calls = %d, want 1", f.dev.PlayCalls())
	}
}

func TestPlay_UnknownTrackIsNoop(t *testing.T) {
	f := newFixture(t)
	_ = f.session.Play("1")

	if err := f.session.Play("missing"); err != nil {
		t.Fatalf("Play(missing): %v", err)
	}

	if f.session.CurrentTrackID() != "1" {
		t.Error("unknown track id should leave the session unchanged")
	}
	if got := f.dev.LoadCalls(); len(got) != 1 {
		t.Errorf("device loads = %v, want just the first track", got)
	}
}

func TestPlay_SameTrackDoesNotReload(t *testing.T) {
	f := newFixture(t)
	_ = f.session.Play("1")
	f.session.Seek(30)

	if err := f.session.Play("1"); err != nil {
		t.Fatal(err)
	}

	if len(f.dev.LoadCalls()) != 1 {
		t.Error("replaying the current track should not reload it")
	}
	if f.session.Position() != 30 {
		t.Errorf("Position = %v, want 30 (reset only on track change)", f.session.Position())
	}
}

func TestPlay_TrackChangeResetsPosition(t *testing.T) {
	f := newFixture(t)
	_ = f.session.Play("1")
	_ = f.session.HandleDeviceEvent(device.TimeUpdate{Seconds: 42})

	_ = f.session.Play("2")

	if f.session.Position() != 0 {
		t.Errorf("Position = %v, want 0 after track change", f.session.Position())
	}
	if f.session.Duration() != 0 {
		t.Errorf("Duration = %v, want 0 until metadata loads", f.session.Duration())
	}
}

func TestPlay_DeviceLoadError(t *testing.T) {
	f := newFixture(t)
	f.dev.SetLoadError(errors.New("decode failed"))

	err := f.session.Play("1")

	if err == nil {
		t.Fatal("device load failure should surface as an error")
	}
	if f.session.IsPlaying() {
		t.Error("IsPlaying should be false after a failed load")
	}
}

func TestPlayFrom_SwapsSource(t *testing.T) {
	f := newFixture(t)
	pl, _ := f.cols.CreatePlaylist("Mix", []string{"3", "1"})

	_ = f.session.PlayFrom("3", PlaylistSource(pl.ID))

	if got := f.session.PlaybackSource(); !got.IsPlaylist(pl.ID) {
		t.Errorf("PlaybackSource = %v, want playlist %s", got, pl.ID)
	}

	// Play without a source keeps the navigation context.
	_ = f.session.Play("1")
	if got := f.session.PlaybackSource(); !got.IsPlaylist(pl.ID) {
		t.Errorf("Play should keep the source, got %v", got)
	}
}

func TestNext_Wraparound(t *testing.T) {
	f := newFixture(t)

	_ = f.session.Play("2")
	_ = f.session.Next()
	if f.session.CurrentTrackID() != "3" {
		t.Fatalf("after first Next, current = %q, want 3", f.session.CurrentTrackID())
	}

	_ = f.session.Next()
	if f.session.CurrentTrackID() != "1" {
		t.Errorf("after second Next, current = %q, want 1 (wraparound)", f.session.CurrentTrackID())
	}
}

func TestNext_WraparoundClosure(t *testing.T) {
	f := newFixture(t)
	_ = f.session.Play("1")

	for range 3 {
		_ = f.session.Next()
	}

	if f.session.CurrentTrackID() != "1" {
		t.Errorf("Next composed len times should return to the start, got %q",
			f.session.CurrentTrackID())
	}
}

func TestPrevious_InverseOfNext(t *testing.T) {
	f := newFixture(t)
	_ = f.session.Play("2")

	_ = f.session.Next()
	_ = f.session.Previous()

	if f.session.CurrentTrackID() != "2" {
		t.Errorf("Previous after Next should restore the track, got %q",
			f.session.CurrentTrackID())
	}
}

func TestPrevious_WraparoundAtStart(t *testing.T) {
	f := newFixture(t)
	_ = f.session.Play("1")

	_ = f.session.Previous()

	if f.session.CurrentTrackID() != "3" {
		t.Errorf("Previous from the first track should wrap to the last, got %q",
			f.session.CurrentTrackID())
	}
}

func TestNext_NothingPlayingIsNoop(t *testing.T) {
	f := newFixture(t)

	if err := f.session.Next(); err != nil {
		t.Fatalf("Next: %v", err)
	}

	if f.session.CurrentTrackID() != "" {
		t.Error("Next with nothing playing should be a no-op")
	}
}

func TestNext_CurrentNotInSourceIsNoop(t *testing.T) {
	f := newFixture(t)
	pl, _ := f.cols.CreatePlaylist("Mix", []string{"2", "3"})

	// Permissive play: track 1 is valid in the catalog but absent from
	// the playlist backing the source.
	_ = f.session.PlayFrom("1", PlaylistSource(pl.ID))

	_ = f.session.Next()

	if f.session.CurrentTrackID() != "1" {
		t.Errorf("Next without an anchor should be a no-op, got %q",
			f.session.CurrentTrackID())
	}
}

func TestNext_PlaylistOrderNotCatalogOrder(t *testing.T) {
	f := newFixture(t)
	pl, _ := f.cols.CreatePlaylist("Mix", []string{"3", "1", "2"})

	_ = f.session.PlayFrom("3", PlaylistSource(pl.ID))
	_ = f.session.Next()

	if f.session.CurrentTrackID() != "1" {
		t.Errorf("Next should follow playlist order, got %q", f.session.CurrentTrackID())
	}
}

func TestTrackEnded_AdvancesLikeNext(t *testing.T) {
	f := newFixture(t)
	_ = f.session.Play("3")

	_ = f.session.HandleDeviceEvent(device.TrackEnded{})

	if f.session.CurrentTrackID() != "1" {
		t.Errorf("TrackEnded should advance with wraparound, got %q",
			f.session.CurrentTrackID())
	}
	if !f.session.IsPlaying() {
		t.Error("playback should continue after auto-advance")
	}
}

func TestTogglePlayPause(t *testing.T) {
	f := newFixture(t)
	_ = f.session.Play("1")

	f.session.TogglePlayPause()
	if f.session.IsPlaying() {
		t.Error("toggle while playing should pause")
	}
	if f.dev.PauseCalls() != 1 {
		t.Errorf("device pause calls = %d, want 1", f.dev.PauseCalls())
	}

	f.session.TogglePlayPause()
	if !f.session.IsPlaying() {
		t.Error("toggle while paused should resume")
	}
}

func TestTogglePlayPause_NothingLoaded(t *testing.T) {
	f := newFixture(t)

	f.session.TogglePlayPause()

	if f.session.IsPlaying() {
		t.Error("toggle with nothing loaded should be a no-op")
	}
	if f.dev.PlayCalls() != 0 {
		t.Error("device should not receive commands")
	}
}

func TestSetVolume_Clamps(t *testing.T) {
	f := newFixture(t)

	f.session.SetVolume(1.5)
	if f.session.Volume() != 1.0 {
		t.Errorf("Volume = %v, want 1.0", f.session.Volume())
	}

	f.session.SetVolume(-0.2)
	if f.session.Volume() != 0 {
		t.Errorf("Volume = %v, want 0", f.session.Volume())
	}

	f.session.SetVolume(0.7)
	if f.session.Volume() != 0.7 {
		t.Errorf("Volume = %v, want 0.7", f.session.Volume())
	}
}

func TestSeek_ClampsAndStoresOptimistically(t *testing.T) {
	f := newFixture(t)
	_ = f.session.Play("1")
	_ = f.session.HandleDeviceEvent(device.MetadataLoaded{TotalSeconds: 100})

	f.session.Seek(150)
	if f.session.Position() != 100 {
		t.Errorf("Position = %v, want clamped to duration 100", f.session.Position())
	}

	f.session.Seek(-5)
	if f.session.Position() != 0 {
		t.Errorf("Position = %v, want 0", f.session.Position())
	}

	f.session.Seek(42)
	if f.session.Position() != 42 {
		t.Errorf("Position = %v, want 42 before device confirms", f.session.Position())
	}
	if got := f.dev.SeekCalls(); len(got) == 0 || got[len(got)-1] != 42 {
		t.Errorf("device seeks = %v, want trailing 42", got)
	}
}

func TestDeviceEvents_UpdatePositionAndDuration(t *testing.T) {
	f := newFixture(t)
	_ = f.session.Play("1")

	_ = f.session.HandleDeviceEvent(device.MetadataLoaded{TotalSeconds: 188})
	_ = f.session.HandleDeviceEvent(device.TimeUpdate{Seconds: 12.5})

	if f.session.Duration() != 188 {
		t.Errorf("Duration = %v, want 188", f.session.Duration())
	}
	if f.session.Position() != 12.5 {
		t.Errorf("Position = %v, want 12.5", f.session.Position())
	}

	// Negative values from the device are ignored.
	_ = f.session.HandleDeviceEvent(device.TimeUpdate{Seconds: -1})
	if f.session.Position() != 12.5 {
		t.Errorf("negative TimeUpdate should be ignored, got %v", f.session.Position())
	}
}

func TestSelectBrowseTarget_DoesNotTouchPlayback(t *testing.T) {
	f := newFixture(t)
	pl, _ := f.cols.CreatePlaylist("Mix", []string{"1"})
	_ = f.session.Play("2")

	f.session.SelectBrowseTarget(PlaylistSource(pl.ID))

	if !f.session.BrowseTarget().IsPlaylist(pl.ID) {
		t.Error("browse target should change")
	}
	if f.session.CurrentTrackID() != "2" || !f.session.IsPlaying() {
		t.Error("browsing must not interrupt playback")
	}
	if got := f.session.PlaybackSource(); got.Kind != SourceAll {
		t.Errorf("playback source should be untouched, got %v", got)
	}
}

func TestResolveList_Favorites_CatalogOrder(t *testing.T) {
	f := newFixture(t)
	_, _ = f.cols.ToggleFavorite("3")
	_, _ = f.cols.ToggleFavorite("1")

	list := f.session.ResolveList(Favorites())

	if len(list) != 2 || list[0].ID != "1" || list[1].ID != "3" {
		t.Errorf("favorites should resolve in catalog order, got %v", ids(list))
	}
}

func TestResolveList_Playlist_PlaylistOrder(t *testing.T) {
	f := newFixture(t)
	pl, _ := f.cols.CreatePlaylist("Mix", []string{"2", "1"})

	list := f.session.ResolveList(PlaylistSource(pl.ID))

	if len(list) != 2 || list[0].ID != "2" || list[1].ID != "1" {
		t.Errorf("playlist should resolve in playlist order, got %v", ids(list))
	}
}

func TestResolveList_UnknownPlaylistFallsBack(t *testing.T) {
	f := newFixture(t)

	list := f.session.ResolveList(PlaylistSource("gone"))

	if len(list) != 3 {
		t.Errorf("unknown playlist should fall back to the catalog, got %v", ids(list))
	}
}

func TestResolveList_SkipsTracksMissingFromCatalog(t *testing.T) {
	f := newFixture(t)
	pl, _ := f.cols.CreatePlaylist("Mix", []string{"1", "ghost", "2"})

	list := f.session.ResolveList(PlaylistSource(pl.ID))

	if len(list) != 2 || list[0].ID != "1" || list[1].ID != "2" {
		t.Errorf("ids missing from the catalog should be skipped, got %v", ids(list))
	}
}

func TestResolveList_Deterministic(t *testing.T) {
	f := newFixture(t)
	_, _ = f.cols.ToggleFavorite("2")

	a := ids(f.session.ResolveList(Favorites()))
	b := ids(f.session.ResolveList(Favorites()))

	if len(a) != len(b) {
		t.Fatalf("resolution not deterministic: %v vs %v", a, b)
	}
	for i := range a {
		if a[i] != b[i] {
			t.Fatalf("resolution not deterministic: %v vs %v", a, b)
		}
	}
}

func TestDeletePlaybackSourcePlaylist(t *testing.T) {
	f := newFixture(t)
	pl, _ := f.cols.CreatePlaylist("Mix", []string{"2", "3"})
	_ = f.session.PlayFrom("2", PlaylistSource(pl.ID))
	f.session.SelectBrowseTarget(PlaylistSource(pl.ID))

	if err := f.cols.DeletePlaylist(pl.ID); err != nil {
		t.Fatal(err)
	}

	// References cleared, current track untouched.
	if got := f.session.PlaybackSource(); got.Kind != SourceAll {
		t.Errorf("playback source should revert to all tracks, got %v", got)
	}
	if got := f.session.BrowseTarget(); got.Kind != SourceAll {
		t.Errorf("browse target should revert to all tracks, got %v", got)
	}
	if f.session.CurrentTrackID() != "2" {
		t.Error("current track should be left as-is")
	}

	// Navigation keeps working against the fallback list.
	if err := f.session.Next(); err != nil {
		t.Fatalf("Next after source deletion: %v", err)
	}
	if f.session.CurrentTrackID() != "3" {
		t.Errorf("Next should walk the catalog, got %q", f.session.CurrentTrackID())
	}
}

func TestRestore(t *testing.T) {
	f := newFixture(t)
	pl, _ := f.cols.CreatePlaylist("Mix", []string{"1"})
	_ = f.session.PlayFrom("1", PlaylistSource(pl.ID))
	f.session.SetVolume(0.3)

	// A fresh session over the same blobs restores volume, sources and
	// current track, but starts paused.
	s2 := New(testCatalog(), f.cols, device.NewMock(), f.blobs)

	if s2.Volume() != 0.3 {
		t.Errorf("restored Volume = %v, want 0.3", s2.Volume())
	}
	if !s2.PlaybackSource().IsPlaylist(pl.ID) {
		t.Errorf("restored source = %v, want playlist", s2.PlaybackSource())
	}
	if s2.CurrentTrackID() != "1" {
		t.Errorf("restored track = %q, want 1", s2.CurrentTrackID())
	}
	if s2.IsPlaying() {
		t.Error("restored session should start paused")
	}
}

func TestRestore_MalformedStateIgnored(t *testing.T) {
	blobs := newMemBlobs()
	blobs.data[store.KeySession] = []byte("{broken")

	s := New(testCatalog(), collections.New(blobs), device.NewMock(), blobs)

	if s.Volume() != 0.5 {
		t.Errorf("malformed state should leave defaults, volume = %v", s.Volume())
	}
}

func TestRestore_DropsVanishedTrack(t *testing.T) {
	f := newFixture(t)
	_ = f.session.Play("2")

	// Restore against a catalog that no longer has track 2.
	small := catalog.New([]catalog.Track{{ID: "1", AudioLocator: "/a.mp3"}})
	s2 := New(small, f.cols, device.NewMock(), f.blobs)

	if s2.CurrentTrackID() != "" {
		t.Errorf("restored track must resolve in the catalog, got %q", s2.CurrentTrackID())
	}
}

func ids(tracks []catalog.Track) []string {
	out := make([]string, len(tracks))
	for i, t := range tracks {
		out[i] = t.ID
	}
	return out
}
