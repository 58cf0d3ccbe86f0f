package event

import (
	"github.com/hollowmere/thornvale/script"
)

// Emitter identifies a native object handlers bind to. Implementations are
// pointers; registry keys compare by interface identity. The tag only feeds
// diagnostics, never lookup
type Emitter interface {
	EmitterTag() string
}

// Event is one raisable occurrence. Variants are an open set: adding an
// event means adding a type with a Name and its own payload marshaling,
// nothing central changes.
//
// Instances are transient and stack-held by the raising code; a variant
// must never retain ownership of data it cannot guarantee outlives the
// dispatch it is raised in
type Event interface {
	// Name returns the stable identifier used for registry lookup.
	// Never empty, never changes for a given variant
	Name() string

	// Invoke marshals the variant's payload and calls one bound handler
	Invoke(fn script.Callable) (script.Result, error)
}
