// Command tuneflow-scan walks a music directory and writes a catalog
// file for the player. Track metadata comes from embedded tags; files
// without tags fall back to their file name.
package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"hash/fnv"
	"io/fs"
	"log"
	"os"
	"path/filepath"
	"strings"

	"github.com/dhowden/tag"
	"github.com/gopxl/beep/v2"
	"github.com/gopxl/beep/v2/flac"
	"github.com/gopxl/beep/v2/mp3"
	"github.com/gopxl/beep/v2/vorbis"
	"github.com/gopxl/beep/v2/wav"

	"github.com/tuneflow/tuneflow/internal/catalog"
)

var audioExtensions = map[string]bool{
	".mp3":  true,
	".flac": true,
	".wav":  true,
	".ogg":  true,
}

func main() {
	output := flag.String("o", "catalog.json", "output catalog file")
	flag.Parse()

	if flag.NArg() != 1 {
		fmt.Fprintf(os.Stderr, "usage: %s [-o catalog.json] <music-dir>\n", os.Args[0])
		os.Exit(2)
	}
	root := flag.Arg(0)

	tracks, err := scan(root)
	if err != nil {
		log.Fatalf("scan %s: %v", root, err)
	}
	if len(tracks) == 0 {
		log.Fatalf("no audio files found under %s", root)
	}

	data, err := json.MarshalIndent(tracks, "", "  ")
	if err != nil {
		log.Fatalf("encode catalog: %v", err)
	}
	if err := os.WriteFile(*output, data, 0o644); err != nil {
		log.Fatalf("write %s: %v", *output, err)
	}
	log.Printf("wrote %d tracks to %s", len(tracks), *output)
}

func scan(root string) ([]catalog.Track, error) {
	var tracks []catalog.Track

	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() || !audioExtensions[strings.ToLower(filepath.Ext(path))] {
			return nil
		}

		track, err := readTrack(root, path)
		if err != nil {
			log.Printf("skip %s: %v", path, err)
			return nil
		}
		tracks = append(tracks, track)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return tracks, nil
}

func readTrack(root, path string) (catalog.Track, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return catalog.Track{}, err
	}

	rel, err := filepath.Rel(root, path)
	if err != nil {
		rel = path
	}

	track := catalog.Track{
		ID:           trackID(rel),
		Title:        strings.TrimSuffix(filepath.Base(path), filepath.Ext(path)),
		AudioLocator: abs,
	}

	f, err := os.Open(path)
	if err != nil {
		return catalog.Track{}, err
	}
	defer f.Close()

	if meta, err := tag.ReadFrom(f); err == nil {
		if meta.Title() != "" {
			track.Title = meta.Title()
		}
		track.Artist = meta.Artist()
		track.Album = meta.Album()
		track.Genre = meta.Genre()
	}

	if _, err := f.Seek(0, 0); err != nil {
		return catalog.Track{}, err
	}
	if dur, err := duration(f, filepath.Ext(path)); err == nil {
		track.DurationSeconds = dur
	}

	return track, nil
}

// duration decodes the stream header to compute the track length.
func duration(f *os.File, ext string) (float64, error) {
	var (
		streamer beep.StreamSeekCloser
		format   beep.Format
		err      error
	)
	switch strings.ToLower(ext) {
	case ".mp3":
		streamer, format, err = mp3.Decode(f)
	case ".flac":
		streamer, format, err = flac.Decode(f)
	case ".wav":
		streamer, format, err = wav.Decode(f)
	case ".ogg":
		streamer, format, err = vorbis.Decode(f)
	default:
		return 0, fmt.Errorf("unsupported format %s", ext)
	}
	if err != nil {
		return 0, err
	}
	return format.SampleRate.D(streamer.Len()).Seconds(), nil
}

// trackID derives a stable id from the path relative to the scan root,
// so favorites and playlists survive a rescan.
func trackID(rel string) string {
	h := fnv.New64a()
	h.Write([]byte(filepath.ToSlash(rel)))
	return fmt.Sprintf("%016x", h.Sum64())
}
