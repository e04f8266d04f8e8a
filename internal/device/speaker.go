package device

import (
	"fmt"
	"math"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/gopxl/beep/v2"
	"github.com/gopxl/beep/v2/effects"
	"github.com/gopxl/beep/v2/flac"
	"github.com/gopxl/beep/v2/mp3"
	"github.com/gopxl/beep/v2/speaker"
	"github.com/gopxl/beep/v2/vorbis"
	"github.com/gopxl/beep/v2/wav"
)

const (
	// All streams are resampled to a fixed output rate so the speaker
	// only needs to be initialized once.
	outputRate     = beep.SampleRate(44100)
	positionPeriod = 500 * time.Millisecond
	eventBufSize   = 16
)

var (
	speakerOnce    sync.Once
	speakerInitErr error
)

// Speaker plays audio through the system output using beep.
type Speaker struct {
	mu sync.Mutex

	file     *os.File
	streamer beep.StreamSeekCloser
	format   beep.Format
	ctrl     *beep.Ctrl
	volume   *effects.Volume
	level    float64

	events chan Event
	stop   chan struct{} // per-load position ticker stop
	closed bool
}

// NewSpeaker creates a speaker-backed device.
func NewSpeaker() *Speaker {
	return &Speaker{
		level:  1.0,
		events: make(chan Event, eventBufSize),
	}
}

// Load decodes the file at locator and prepares it for playback.
// Playback starts paused; call Play to start.
func (s *Speaker) Load(locator string) error {
	speakerOnce.Do(func() {
		speakerInitErr = speaker.Init(outputRate, outputRate.N(time.Second/10))
	})
	if speakerInitErr != nil {
		return fmt.Errorf("init speaker: %w", speakerInitErr)
	}

	f, err := os.Open(locator)
	if err != nil {
		return err
	}

	var streamer beep.StreamSeekCloser
	var format beep.Format
	switch ext := strings.ToLower(filepath.Ext(locator)); ext {
	case ".mp3":
		streamer, format, err = mp3.Decode(f)
	case ".flac":
		streamer, format, err = flac.Decode(f)
	case ".wav":
		streamer, format, err = wav.Decode(f)
	case ".ogg":
		streamer, format, err = vorbis.Decode(f)
	default:
		f.Close()
		return fmt.Errorf("unsupported format: %s", ext)
	}
	if err != nil {
		f.Close()
		return fmt.Errorf("decode %s: %w", filepath.Base(locator), err)
	}

	s.unload()

	s.mu.Lock()
	s.file = f
	s.streamer = streamer
	s.format = format
	s.ctrl = &beep.Ctrl{Streamer: streamer, Paused: true}
	s.volume = &effects.Volume{
		Streamer: beep.Resample(4, format.SampleRate, outputRate, s.ctrl),
		Base:     2,
		Volume:   levelToVolume(s.level),
		Silent:   s.level <= 0,
	}
	s.stop = make(chan struct{})
	stop := s.stop
	total := format.SampleRate.D(streamer.Len()).Seconds()
	s.mu.Unlock()

	speaker.Play(beep.Seq(s.volume, beep.Callback(func() {
		s.emit(TrackEnded{})
	})))

	s.emit(MetadataLoaded{TotalSeconds: total})
	go s.trackPosition(stop)

	return nil
}

// unload stops playback and releases the current stream.
func (s *Speaker) unload() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.stop != nil {
		close(s.stop)
		s.stop = nil
	}
	if s.streamer == nil {
		return
	}
	speaker.Clear()
	s.streamer.Close()
	s.file.Close()
	s.streamer = nil
	s.file = nil
	s.ctrl = nil
	s.volume = nil
}

// Play resumes playback of the loaded track.
func (s *Speaker) Play() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.ctrl == nil {
		return
	}
	speaker.Lock()
	s.ctrl.Paused = false
	speaker.Unlock()
}

// Pause suspends playback.
func (s *Speaker) Pause() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.ctrl == nil {
		return
	}
	speaker.Lock()
	s.ctrl.Paused = true
	speaker.Unlock()
}

// Seek moves playback to the given position, clamped to the stream.
func (s *Speaker) Seek(seconds float64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.streamer == nil {
		return
	}
	if seconds < 0 {
		seconds = 0
	}
	pos := s.format.SampleRate.N(time.Duration(seconds * float64(time.Second)))
	if pos > s.streamer.Len() {
		pos = s.streamer.Len()
	}
	speaker.Lock()
	_ = s.streamer.Seek(pos)
	speaker.Unlock()
}

// SetVolume sets the output level (0.0 to 1.0).
func (s *Speaker) SetVolume(v float64) {
	if v < 0 {
		v = 0
	}
	if v > 1 {
		v = 1
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.level = v
	if s.volume == nil {
		return
	}
	speaker.Lock()
	s.volume.Volume = levelToVolume(v)
	s.volume.Silent = v <= 0
	speaker.Unlock()
}

// Events returns the device notification channel.
func (s *Speaker) Events() <-chan Event {
	return s.events
}

// Close stops playback and releases resources.
func (s *Speaker) Close() error {
	s.unload()
	s.mu.Lock()
	s.closed = true
	s.mu.Unlock()
	return nil
}

// trackPosition emits TimeUpdate events while the stream is playing.
func (s *Speaker) trackPosition(stop chan struct{}) {
	ticker := time.NewTicker(positionPeriod)
	defer ticker.Stop()
	for {
		select {
		case <-stop:
			return
		case <-ticker.C:
			s.mu.Lock()
			if s.streamer == nil || s.ctrl == nil {
				s.mu.Unlock()
				return
			}
			speaker.Lock()
			paused := s.ctrl.Paused
			pos := s.streamer.Position()
			speaker.Unlock()
			rate := s.format.SampleRate
			s.mu.Unlock()
			if !paused {
				s.emit(TimeUpdate{Seconds: rate.D(pos).Seconds()})
			}
		}
	}
}

// emit sends an event without blocking, dropping it if the buffer is full.
func (s *Speaker) emit(e Event) {
	select {
	case s.events <- e:
	default:
	}
}

// levelToVolume maps a 0.0-1.0 level to beep's logarithmic volume.
// 1.0 -> 0 (no change), 0.5 -> -1 (half), 0.25 -> -2, 0 -> silent.
func levelToVolume(level float64) float64 {
	if level <= 0 {
		return -10
	}
	if level >= 1 {
		return 0
	}
	return math.Log2(level)
}

// Verify Speaker implements Device at compile time.
var _ Device = (*Speaker)(nil)
