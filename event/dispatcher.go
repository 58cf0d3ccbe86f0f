package event

import (
	"errors"

	"github.com/rs/zerolog"

	"github.com/hollowmere/thornvale/script"
)

// ErrReentrantDispatch means a handler synchronously re-fired the same
// (emitter, event) pair it is running under. Rejected to keep
// script-triggered event loops from recursing without bound
var ErrReentrantDispatch = errors.New("reentrant dispatch on same emitter and event")

// Verdict is the aggregate result of one Fire call
type Verdict struct {
	// Ran is true when at least one handler was invoked
	Ran bool

	// SuppressDefault is true iff any handler explicitly returned the
	// suppress value. Default native behavior runs unless a handler
	// actively cancels it
	SuppressDefault bool
}

// Dispatcher fires events against the registry. Single-threaded with the
// rest of script execution: Fire runs on the update thread and handlers
// run to completion within it, there is no preemption
type Dispatcher struct {
	registry *Registry
	log      zerolog.Logger
	inFlight map[key]struct{}
}

// NewDispatcher creates a dispatcher over the given registry
func NewDispatcher(registry *Registry, log zerolog.Logger) *Dispatcher {
	return &Dispatcher{
		registry: registry,
		log:      log.With().Str("component", "dispatcher").Logger(),
		inFlight: make(map[key]struct{}),
	}
}

// Fire invokes every handler registered for (emitter, ev.Name()) in
// registration order over a snapshot taken now.
//
// A handler that raises is logged and treated as "continue"; the remaining
// handlers still run. Re-entry on the same key returns the no-op verdict
// with ErrReentrantDispatch; firing a different key from inside a handler
// is fine and completes before the outer fire resumes. An unavailable
// interpreter aborts this one fire with the no-op verdict and
// script.ErrInterpreterUnavailable.
//
// Raise sites that only gate their default behavior may ignore the error
func (d *Dispatcher) Fire(emitter Emitter, ev Event) (Verdict, error) {
	k := key{emitter, ev.Name()}
	if _, busy := d.inFlight[k]; busy {
		d.log.Warn().
			Str("event", ev.Name()).
			Str("emitter", emitter.EmitterTag()).
			Msg("reentrant dispatch rejected")
		return Verdict{}, ErrReentrantDispatch
	}

	snapshot := d.registry.snapshot(emitter, ev.Name())
	if len(snapshot) == 0 {
		return Verdict{}, nil
	}
	defer func() {
		for _, fn := range snapshot {
			fn.Release()
		}
	}()

	d.inFlight[k] = struct{}{}
	defer delete(d.inFlight, k)

	verdict := Verdict{Ran: true}
	for _, fn := range snapshot {
		res, err := ev.Invoke(fn)
		if err != nil {
			if errors.Is(err, script.ErrInterpreterUnavailable) {
				return Verdict{}, err
			}
			// Contained at this boundary: gameplay continues
			d.log.Error().
				Err(err).
				Str("event", ev.Name()).
				Str("emitter", emitter.EmitterTag()).
				Msg("handler failed")
			continue
		}
		if res.Suppress {
			verdict.SuppressDefault = true
		}
	}
	return verdict, nil
}
