package audio

import (
	"fmt"
	"math"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/effects"
	"github.com/gopxl/beep/speaker"
	"github.com/gopxl/beep/vorbis"
	"github.com/gopxl/beep/wav"
)

// BeepBackend renders channels through the beep speaker. Start and Stop
// run on the update thread; completion callbacks fire on the speaker
// goroutine, so the ctrl table is mutex-guarded and the finished hook must
// be safe to call from there (Engine.NotifyFinished is)
type BeepBackend struct {
	mu          sync.Mutex
	sampleRate  beep.SampleRate
	musicVolume int
	mixer       *beep.Mixer
	ctrls       map[Handle]*beep.Ctrl
	nextHandle  Handle
	onFinished  func(Handle)
	started     bool
}

// NewBeepBackend creates the backend. musicVolume (0-100) scales every
// music stream; onFinished receives completions, possibly from the
// speaker goroutine
func NewBeepBackend(sampleRate, musicVolume int, onFinished func(Handle)) *BeepBackend {
	return &BeepBackend{
		sampleRate:  beep.SampleRate(sampleRate),
		musicVolume: musicVolume,
		mixer:       &beep.Mixer{},
		ctrls:       make(map[Handle]*beep.Ctrl),
		onFinished:  onFinished,
	}
}

// Start opens the speaker and begins streaming the mixer. Fails when the
// host has no usable audio device; callers degrade to silent mode
func (b *BeepBackend) Start(bufferMS int) error {
	if b.started {
		return nil
	}
	buf := time.Duration(bufferMS) * time.Millisecond
	if err := speaker.Init(b.sampleRate, b.sampleRate.N(buf)); err != nil {
		return fmt.Errorf("speaker init: %w", err)
	}
	speaker.Play(b.mixer)
	b.started = true
	return nil
}

// Close silences everything. beep has no speaker teardown; clearing the
// mixer drops all streamers
func (b *BeepBackend) Close() {
	if !b.started {
		return
	}
	speaker.Lock()
	b.mixer.Clear()
	speaker.Unlock()
	b.mu.Lock()
	b.ctrls = make(map[Handle]*beep.Ctrl)
	b.mu.Unlock()
}

// Resolve implements Backend
func (b *BeepBackend) Resolve(path string) error {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".ogg", ".wav":
	default:
		return fmt.Errorf("unsupported audio format %q", filepath.Ext(path))
	}
	info, err := os.Stat(path)
	if err != nil {
		return err
	}
	if info.IsDir() {
		return fmt.Errorf("%s is a directory", path)
	}
	return nil
}

// StartSound implements Backend
func (b *BeepBackend) StartSound(path string, volume, loops int) (Handle, error) {
	streamer, format, err := b.decode(path)
	if err != nil {
		return 0, err
	}
	s := b.shape(streamer, format, loops, 0)
	s = newVolume(s, float64(volume)/float64(MaxVolume))
	return b.play(s, streamer)
}

// StartMusic implements Backend
func (b *BeepBackend) StartMusic(path string, loops, fadeInMS int) (Handle, error) {
	streamer, format, err := b.decode(path)
	if err != nil {
		return 0, err
	}
	s := b.shape(streamer, format, loops, fadeInMS)
	s = newVolume(s, float64(b.musicVolume)/float64(MaxVolume))
	return b.play(s, streamer)
}

// Stop implements Backend. The drained ctrl still triggers the finished
// callback; arbitration treats that notification as stale
func (b *BeepBackend) Stop(h Handle) {
	b.mu.Lock()
	ctrl, ok := b.ctrls[h]
	delete(b.ctrls, h)
	b.mu.Unlock()
	if !ok || !b.started {
		return
	}
	speaker.Lock()
	ctrl.Streamer = nil
	speaker.Unlock()
}

// decode opens and decodes a file by extension
func (b *BeepBackend) decode(path string) (beep.StreamSeekCloser, beep.Format, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, beep.Format{}, err
	}
	switch strings.ToLower(filepath.Ext(path)) {
	case ".ogg":
		s, format, err := vorbis.Decode(f)
		if err != nil {
			f.Close()
			return nil, beep.Format{}, fmt.Errorf("decode vorbis: %w", err)
		}
		return s, format, nil
	case ".wav":
		s, format, err := wav.Decode(f)
		if err != nil {
			f.Close()
			return nil, beep.Format{}, fmt.Errorf("decode wav: %w", err)
		}
		return s, format, nil
	default:
		f.Close()
		return nil, beep.Format{}, fmt.Errorf("unsupported audio format %q", filepath.Ext(path))
	}
}

// shape applies looping, resampling and fade-in. loops is repeats after
// the first play, so total plays = loops+1
func (b *BeepBackend) shape(streamer beep.StreamSeekCloser, format beep.Format, loops, fadeInMS int) beep.Streamer {
	var s beep.Streamer = beep.Loop(loops+1, streamer)
	if format.SampleRate != b.sampleRate {
		s = beep.Resample(4, format.SampleRate, b.sampleRate, s)
	}
	if fadeInMS > 0 {
		n := b.sampleRate.N(time.Duration(fadeInMS) * time.Millisecond)
		s = effects.Transition(s, n, 0, 1, effects.TransitionLinear)
	}
	return s
}

// play hands a shaped streamer to the mixer under a fresh handle, closing
// the source and reporting completion when it drains
func (b *BeepBackend) play(s beep.Streamer, source beep.StreamSeekCloser) (Handle, error) {
	if !b.started {
		source.Close()
		return 0, fmt.Errorf("audio backend not started")
	}

	b.mu.Lock()
	b.nextHandle++
	h := b.nextHandle
	b.mu.Unlock()

	done := beep.Callback(func() {
		source.Close()
		b.mu.Lock()
		delete(b.ctrls, h)
		b.mu.Unlock()
		if b.onFinished != nil {
			b.onFinished(h)
		}
	})
	ctrl := &beep.Ctrl{Streamer: beep.Seq(s, done)}

	b.mu.Lock()
	b.ctrls[h] = ctrl
	b.mu.Unlock()

	speaker.Lock()
	b.mixer.Add(ctrl)
	speaker.Unlock()
	return h, nil
}

// newVolume wraps a streamer at a linear 0-1 volume on beep's log scale
func newVolume(s beep.Streamer, vol float64) beep.Streamer {
	if vol <= 0 {
		return &effects.Volume{Streamer: s, Base: 2, Volume: 0, Silent: true}
	}
	return &effects.Volume{Streamer: s, Base: 2, Volume: math.Log2(vol), Silent: false}
}
