package event

import (
	"testing"

	"github.com/hollowmere/thornvale/script"
)

type stubEmitter struct {
	tag string
}

func (s *stubEmitter) EmitterTag() string { return s.tag }

// newTestContext loads source and returns the context plus captures of the
// named global functions, in order
func newTestContext(t *testing.T, source string, names ...string) (*script.Context, []script.Callable) {
	t.Helper()
	ctx := script.NewContext()
	t.Cleanup(ctx.Close)
	if err := ctx.DoString(source); err != nil {
		t.Fatalf("load test script: %v", err)
	}
	fns := make([]script.Callable, len(names))
	for i, name := range names {
		fn, err := ctx.GlobalCallable(name)
		if err != nil {
			t.Fatalf("capture %s: %v", name, err)
		}
		fns[i] = fn
	}
	return ctx, fns
}

// TestRegistrationOrderPreserved verifies HandlersFor returns handlers in
// registration order across interleaved register/unregister sequences
func TestRegistrationOrderPreserved(t *testing.T) {
	_, fns := newTestContext(t,
		`function a() end function b() end function c() end`,
		"a", "b", "c")
	a, b, c := fns[0], fns[1], fns[2]

	em := &stubEmitter{tag: "level"}
	r := NewRegistry()
	r.Register(em, "jump", a)
	r.Register(em, "jump", b)
	r.Register(em, "jump", c)
	r.Unregister(em, "jump", b)

	got := r.HandlersFor(em, "jump")
	if len(got) != 2 {
		t.Fatalf("got %d handlers, want 2", len(got))
	}
	if !got[0].Equals(a) || !got[1].Equals(c) {
		t.Error("handlers out of registration order after unregister")
	}
}

// TestDuplicateRegistrationIsNoop verifies re-registering an identical
// handler keeps a single entry at its original position
func TestDuplicateRegistrationIsNoop(t *testing.T) {
	ctx, fns := newTestContext(t, `function a() end function b() end`, "a", "b")
	a, b := fns[0], fns[1]

	em := &stubEmitter{tag: "audio"}
	r := NewRegistry()
	r.Register(em, "sound_finished", a)
	r.Register(em, "sound_finished", b)

	// Same function, fresh capture
	a2, err := ctx.GlobalCallable("a")
	if err != nil {
		t.Fatalf("capture: %v", err)
	}
	r.Register(em, "sound_finished", a2)

	got := r.HandlersFor(em, "sound_finished")
	if len(got) != 2 {
		t.Fatalf("got %d handlers, want 2", len(got))
	}
	if !got[0].Equals(a) {
		t.Error("duplicate registration moved the handler")
	}
}

// TestUnregisterAbsentIsNoop verifies defensive unregistration is safe
func TestUnregisterAbsentIsNoop(t *testing.T) {
	_, fns := newTestContext(t, `function a() end`, "a")
	em := &stubEmitter{tag: "level"}
	r := NewRegistry()

	if r.Unregister(em, "jump", fns[0]) {
		t.Error("Unregister reported removal from empty registry")
	}
}

// TestHasAndKeyIsolation verifies keys are per (emitter, name)
func TestHasAndKeyIsolation(t *testing.T) {
	_, fns := newTestContext(t, `function a() end`, "a")
	em1 := &stubEmitter{tag: "level"}
	em2 := &stubEmitter{tag: "player"}
	r := NewRegistry()
	r.Register(em1, "save", fns[0])

	if !r.Has(em1, "save") {
		t.Error("Has missed a registered handler")
	}
	if r.Has(em1, "load") || r.Has(em2, "save") {
		t.Error("registration leaked across keys")
	}
}

// TestTeardownEmitterRemovesAllKeys verifies emitter destruction tears
// down every registration for that emitter and only that emitter
func TestTeardownEmitterRemovesAllKeys(t *testing.T) {
	_, fns := newTestContext(t,
		`function a() end function b() end function c() end`,
		"a", "b", "c")

	doomed := &stubEmitter{tag: "enemy"}
	kept := &stubEmitter{tag: "level"}
	r := NewRegistry()
	r.Register(doomed, "jump", fns[0])
	r.Register(doomed, "save", fns[1])
	r.Register(kept, "save", fns[2])

	r.TeardownEmitter(doomed)

	if r.Has(doomed, "jump") || r.Has(doomed, "save") {
		t.Error("teardown left registrations behind")
	}
	if !r.Has(kept, "save") {
		t.Error("teardown removed another emitter's registration")
	}
}

// TestSnapshotUnaffectedByMutation verifies a HandlersFor result survives
// later registry mutation
func TestSnapshotUnaffectedByMutation(t *testing.T) {
	_, fns := newTestContext(t, `function a() end function b() end`, "a", "b")
	a, b := fns[0], fns[1]

	em := &stubEmitter{tag: "level"}
	r := NewRegistry()
	r.Register(em, "jump", a)

	snapshot := r.HandlersFor(em, "jump")
	r.Register(em, "jump", b)

	if len(snapshot) != 1 || !snapshot[0].Equals(a) {
		t.Error("snapshot changed under registry mutation")
	}
	if len(r.HandlersFor(em, "jump")) != 2 {
		t.Error("registry missed the post-snapshot registration")
	}
}
