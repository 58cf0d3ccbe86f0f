// Package engine holds the update-thread glue: the fixed-step loop and
// the native objects that raise events into the dispatch layer
package engine

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"github.com/hollowmere/thornvale/audio"
)

// TickRate is the fixed simulation rate
const TickRate = 60

// Loop drives the update thread. Everything the dispatch layer owns -
// registry, dispatcher, channel table - is touched from Run's goroutine
// only; cross-thread notifications (audio completions) are queued by
// their producers and drained here
type Loop struct {
	audio *audio.Engine
	log   zerolog.Logger
	tick  time.Duration
}

// NewLoop creates the update loop
func NewLoop(audioEngine *audio.Engine, log zerolog.Logger) *Loop {
	return &Loop{
		audio: audioEngine,
		log:   log.With().Str("component", "loop").Logger(),
		tick:  time.Second / TickRate,
	}
}

// Run ticks until the context is cancelled. Each tick drains audio
// completions, which may fire sound_finished handlers
func (lp *Loop) Run(ctx context.Context) {
	ticker := time.NewTicker(lp.tick)
	defer ticker.Stop()

	lp.log.Info().Int("hz", TickRate).Msg("update loop running")
	for {
		select {
		case <-ctx.Done():
			lp.log.Info().Msg("update loop stopped")
			return
		case <-ticker.C:
			lp.audio.Update()
		}
	}
}
