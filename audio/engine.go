package audio

import (
	"github.com/rs/zerolog"

	"github.com/hollowmere/thornvale/event"
)

// finishedQueueSize bounds the completion queue between the rendering
// goroutine and the update thread. One frame never completes this many
// channels; overflow drops the notification rather than blocking rendering
const finishedQueueSize = 256

// Engine owns the playback channel table and all arbitration decisions:
// at most one active sound per non-sentinel resource id, at most one music
// channel. Decisions and channel-state mutation happen synchronously on
// the update thread before a play call returns; only the rendering itself
// is asynchronous.
//
// Exclusively owned by the update thread. The only cross-thread touchpoint
// is the finished queue the backend feeds; Update drains it on the update
// thread before any channel state changes
type Engine struct {
	backend Backend
	cfg     Config
	log     zerolog.Logger

	// dispatcher carries the events this emitter raises; nil until
	// WireDispatcher, in which case completions only clear state
	dispatcher *event.Dispatcher

	muted bool

	sounds   map[int]*Channel    // non-sentinel resource id -> active sound
	byHandle map[Handle]*Channel // every live channel, music included
	music    *Channel

	finished chan Handle
}

// NewEngine creates the arbitration engine over a backend. A nil backend
// means sound output is unavailable; every play call reports false
func NewEngine(backend Backend, cfg Config, log zerolog.Logger) *Engine {
	return &Engine{
		backend:  backend,
		cfg:      cfg,
		log:      log.With().Str("component", "audio").Logger(),
		muted:    !cfg.Enabled,
		sounds:   make(map[int]*Channel),
		byHandle: make(map[Handle]*Channel),
		finished: make(chan Handle, finishedQueueSize),
	}
}

// EmitterTag implements event.Emitter: the engine is itself an eventable
// object scripts can hook (sound_finished)
func (e *Engine) EmitterTag() string {
	return "audio"
}

// WireDispatcher attaches the dispatcher the engine raises its own events
// through. Optional; without it completions only clear channel state
func (e *Engine) WireDispatcher(d *event.Dispatcher) {
	e.dispatcher = d
}

// NotifyFinished is the backend's completion callback. Safe to call from
// a rendering goroutine; the notification is queued and acted on by the
// next Update on the update thread
func (e *Engine) NotifyFinished(h Handle) {
	select {
	case e.finished <- h:
	default:
		e.log.Warn().Uint64("handle", uint64(h)).Msg("finished queue full, notification dropped")
	}
}

// SetMuted toggles sound output at runtime (user preference)
func (e *Engine) SetMuted(muted bool) {
	e.muted = muted
}

// PlaySound starts a sound. volume -1 selects the configured default;
// loops is the number of repeats after the first play; resourceID other
// than SentinelResourceID replaces any live channel holding the same id,
// discarding the holder only once the replacement has started.
//
// Reports false without side effects when output is muted, the file
// cannot be resolved or the backend refuses the start; the boolean
// carries no reason, so scripts cannot branch on user preference
func (e *Engine) PlaySound(filename string, volume, loops, resourceID int) bool {
	if e.muted || e.backend == nil {
		return false
	}
	hostPath, err := resolveScriptPath(e.cfg.SoundRoot, filename)
	if err != nil {
		e.log.Debug().Err(err).Str("file", filename).Msg("sound path rejected")
		return false
	}
	// Cheap resolve first: missing files never reach the backend stream
	if err := e.backend.Resolve(hostPath); err != nil {
		e.log.Debug().Err(err).Str("file", filename).Msg("sound unavailable")
		return false
	}

	if volume < 0 {
		volume = e.cfg.SoundVolume
	}
	if volume > MaxVolume {
		volume = MaxVolume
	}
	if loops < 0 {
		loops = 0
	}

	h, err := e.backend.StartSound(hostPath, volume, loops)
	if err != nil {
		e.log.Warn().Err(err).Str("file", filename).Msg("sound start failed")
		return false
	}

	// Preempt only after the replacement started: a refused start must
	// leave the holder playing
	if resourceID != SentinelResourceID {
		if old, ok := e.sounds[resourceID]; ok {
			e.discard(old)
		}
	}

	ch := &Channel{
		Handle:     h,
		Path:       filename,
		ResourceID: resourceID,
		Volume:     volume,
		Loops:      loops,
		kind:       kindSound,
	}
	e.byHandle[h] = ch
	if resourceID != SentinelResourceID {
		e.sounds[resourceID] = ch
	}
	return true
}

// PlayMusic starts the music stream. force (the script default) replaces
// any active music, discarding the old channel once the new stream has
// started; with force false an active music channel makes the call a
// no-op reporting false. fadeInMS shapes the backend's fade-in and has no
// bearing on arbitration
func (e *Engine) PlayMusic(filename string, loops int, force bool, fadeInMS int) bool {
	if e.muted || e.backend == nil {
		return false
	}
	hostPath, err := resolveScriptPath(e.cfg.MusicRoot, filename)
	if err != nil {
		e.log.Debug().Err(err).Str("file", filename).Msg("music path rejected")
		return false
	}
	if err := e.backend.Resolve(hostPath); err != nil {
		e.log.Debug().Err(err).Str("file", filename).Msg("music unavailable")
		return false
	}

	if e.music != nil && !force {
		return false
	}
	if loops < 0 {
		loops = 0
	}
	if fadeInMS < 0 {
		fadeInMS = 0
	}

	h, err := e.backend.StartMusic(hostPath, loops, fadeInMS)
	if err != nil {
		e.log.Warn().Err(err).Str("file", filename).Msg("music start failed")
		return false
	}
	// Same discipline as sounds: the old music survives a refused start
	if e.music != nil {
		e.discard(e.music)
	}

	ch := &Channel{
		Handle:   h,
		Path:     filename,
		Loops:    loops,
		FadeInMS: fadeInMS,
		Volume:   e.cfg.MusicVolume,
		kind:     kindMusic,
	}
	e.byHandle[h] = ch
	e.music = ch
	return true
}

// StopMusic discards the active music channel, if any
func (e *Engine) StopMusic() {
	if e.music != nil {
		e.discard(e.music)
	}
}

// MusicPlaying reports whether a music channel is active
func (e *Engine) MusicPlaying() bool {
	return e.music != nil
}

// CurrentMusic returns a copy of the active music channel
func (e *Engine) CurrentMusic() (Channel, bool) {
	if e.music == nil {
		return Channel{}, false
	}
	return *e.music, true
}

// SoundForResource returns a copy of the active sound holding resource id
func (e *Engine) SoundForResource(id int) (Channel, bool) {
	ch, ok := e.sounds[id]
	if !ok {
		return Channel{}, false
	}
	return *ch, true
}

// ActiveChannels returns the number of live channels, music included
func (e *Engine) ActiveChannels() int {
	return len(e.byHandle)
}

// Update drains completion notifications on the update thread, releases
// their channel slots and raises sound_finished for tracked sounds.
//
// A notification whose handle is no longer in the table is stale: its
// channel was preempted (and its slot possibly re-claimed) between finish
// and drain. The claim wins; the stale notification is discarded and the
// re-claimed slot stays untouched
func (e *Engine) Update() {
	for {
		select {
		case h := <-e.finished:
			ch, ok := e.byHandle[h]
			if !ok {
				continue
			}
			e.release(ch)
			if e.dispatcher != nil && ch.kind == kindSound {
				if _, err := e.dispatcher.Fire(e, event.SoundFinished{Path: ch.Path}); err != nil {
					e.log.Warn().Err(err).Str("file", ch.Path).Msg("sound_finished dispatch failed")
				}
			}
		default:
			return
		}
	}
}

// Shutdown discards every live channel
func (e *Engine) Shutdown() {
	for _, ch := range e.byHandle {
		if e.backend != nil {
			e.backend.Stop(ch.Handle)
		}
	}
	e.byHandle = make(map[Handle]*Channel)
	e.sounds = make(map[int]*Channel)
	e.music = nil
}

// discard stops the backend channel and frees its slot. Preemption path:
// the backend may still emit a completion for the stopped handle, which
// Update will find stale and drop
func (e *Engine) discard(ch *Channel) {
	e.backend.Stop(ch.Handle)
	e.release(ch)
}

// release frees the slot bookkeeping for a channel without touching the
// backend
func (e *Engine) release(ch *Channel) {
	delete(e.byHandle, ch.Handle)
	switch ch.kind {
	case kindSound:
		if ch.ResourceID != SentinelResourceID && e.sounds[ch.ResourceID] == ch {
			delete(e.sounds, ch.ResourceID)
		}
	case kindMusic:
		if e.music == ch {
			e.music = nil
		}
	}
}
