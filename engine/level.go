package engine

import (
	"github.com/rs/zerolog"

	"github.com/hollowmere/thornvale/event"
	"github.com/hollowmere/thornvale/save"
)

// Level is the emitter for level lifecycle events. The save subsystem
// calls Save/Restore; script handlers hook "save" and "load" to persist
// their own state alongside the engine's
type Level struct {
	Name string

	dispatcher *event.Dispatcher
	registry   *event.Registry
	log        zerolog.Logger
}

// NewLevel creates a level emitter
func NewLevel(name string, registry *event.Registry, dispatcher *event.Dispatcher, log zerolog.Logger) *Level {
	return &Level{
		Name:       name,
		registry:   registry,
		dispatcher: dispatcher,
		log:        log.With().Str("component", "level").Str("level", name).Logger(),
	}
}

// EmitterTag implements event.Emitter
func (lv *Level) EmitterTag() string {
	return "level"
}

// Save builds the script-visible save payload. The returned store is owned
// by the caller; it lives on this frame for the whole dispatch, so
// handlers only ever see live data. Save events are not cancelable
func (lv *Level) Save() *save.Data {
	data := save.New()
	if _, err := lv.dispatcher.Fire(lv, event.LevelSave{Data: data}); err != nil {
		lv.log.Warn().Err(err).Msg("save dispatch failed")
	}
	return data
}

// Restore hands a previously saved store to the "load" handlers
func (lv *Level) Restore(data *save.Data) {
	if _, err := lv.dispatcher.Fire(lv, event.LevelLoad{Data: data}); err != nil {
		lv.log.Warn().Err(err).Msg("load dispatch failed")
	}
}

// Destroy tears down every script registration keyed to this level.
// Must run on the level's destruction path; firing against a destroyed
// level afterwards is a programming error
func (lv *Level) Destroy() {
	lv.registry.TeardownEmitter(lv)
}
