package engine

import (
	"github.com/rs/zerolog"

	"github.com/hollowmere/thornvale/audio"
	"github.com/hollowmere/thornvale/event"
)

// jumpSound is the default jump feedback, arbitrated so rapid jumps
// restart the sound instead of stacking it
const jumpSound = "player/jump.ogg"

// Player is the emitter for player action events
type Player struct {
	dispatcher *event.Dispatcher
	registry   *event.Registry
	audio      *audio.Engine
	log        zerolog.Logger
}

// NewPlayer creates a player emitter
func NewPlayer(registry *event.Registry, dispatcher *event.Dispatcher, audioEngine *audio.Engine, log zerolog.Logger) *Player {
	return &Player{
		registry:   registry,
		dispatcher: dispatcher,
		audio:      audioEngine,
		log:        log.With().Str("component", "player").Logger(),
	}
}

// EmitterTag implements event.Emitter
func (p *Player) EmitterTag() string {
	return "player"
}

// Jump raises the jump event, then runs the default behavior (the jump
// sound) unless a handler suppressed it
func (p *Player) Jump() {
	verdict, err := p.dispatcher.Fire(p, event.Jump{})
	if err != nil {
		p.log.Warn().Err(err).Msg("jump dispatch failed")
	}
	if verdict.SuppressDefault {
		return
	}
	p.audio.PlaySound(jumpSound, -1, 0, audio.ResourceJump)
}

// Destroy tears down every script registration keyed to this player
func (p *Player) Destroy() {
	p.registry.TeardownEmitter(p)
}
