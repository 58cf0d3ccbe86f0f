package audio

// Backend is the rendering collaborator: start/stop requests are
// fire-and-forget, never awaited for completion. Completion is reported
// through the finished callback given at construction, possibly from a
// rendering goroutine; the Engine marshals it back onto the update thread
// before touching any channel state.
//
// Paths are host filesystem paths; the Engine resolves script-authored
// forward-slash paths against its roots before calling in
type Backend interface {
	// Resolve reports whether path can be opened as playable audio.
	// Checked before arbitration so a failed play has no side effects
	Resolve(path string) error

	// StartSound begins a sound at volume (0-100), played loops+1 times
	StartSound(path string, volume, loops int) (Handle, error)

	// StartMusic begins a music stream, played loops+1 times, with a
	// linear fade-in over fadeInMS milliseconds
	StartMusic(path string, loops, fadeInMS int) (Handle, error)

	// Stop discards the channel. Stopping an already finished or unknown
	// handle is a no-op
	Stop(h Handle)
}
