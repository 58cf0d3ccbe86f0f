package bindings

import (
	"strings"
	"testing"

	"github.com/rs/zerolog"

	"github.com/hollowmere/thornvale/audio"
	"github.com/hollowmere/thornvale/event"
	"github.com/hollowmere/thornvale/save"
	"github.com/hollowmere/thornvale/script"
)

type testFixture struct {
	ctx        *script.Context
	registry   *event.Registry
	dispatcher *event.Dispatcher
	engine     *audio.Engine
	backend    *audio.MockBackend
}

func newFixture(t *testing.T) *testFixture {
	t.Helper()
	ctx := script.NewContext()
	t.Cleanup(ctx.Close)

	registry := event.NewRegistry()
	dispatcher := event.NewDispatcher(registry, zerolog.Nop())

	backend := audio.NewMockBackend()
	cfg := audio.DefaultConfig()
	cfg.SoundRoot = "sounds"
	cfg.MusicRoot = "music"
	eng := audio.NewEngine(backend, cfg, zerolog.Nop())
	eng.WireDispatcher(dispatcher)

	binder := New(ctx, registry)
	binder.InstallSaveData()
	binder.InstallAudio(eng)

	return &testFixture{
		ctx:        ctx,
		registry:   registry,
		dispatcher: dispatcher,
		engine:     eng,
		backend:    backend,
	}
}

func (f *testFixture) globalBool(t *testing.T, name string) bool {
	t.Helper()
	l := f.ctx.State()
	l.Global(name)
	v := l.ToBoolean(-1)
	l.Pop(1)
	return v
}

// TestPlaySoundFromScript verifies the full argument surface including
// the defaults scripts rely on
func TestPlaySoundFromScript(t *testing.T) {
	f := newFixture(t)

	err := f.ctx.DoString(`
		ok_defaults = Audio:play_sound("coin.ogg")
		ok_full = Audio:play_sound("player/jump.ogg", 75, 2, 1)
	`)
	if err != nil {
		t.Fatalf("script: %v", err)
	}
	if !f.globalBool(t, "ok_defaults") || !f.globalBool(t, "ok_full") {
		t.Error("play_sound reported failure")
	}

	if len(f.backend.Started) != 2 {
		t.Fatalf("backend saw %d starts, want 2", len(f.backend.Started))
	}
	full := f.backend.Started[1]
	if full.Volume != 75 || full.Loops != 2 {
		t.Errorf("args not forwarded: %+v", full)
	}
	if _, ok := f.engine.SoundForResource(1); !ok {
		t.Error("resid argument was not applied")
	}
}

// TestPlayMusicForceDefault verifies play_music defaults force to true
// and forwards an explicit false
func TestPlayMusicForceDefault(t *testing.T) {
	f := newFixture(t)

	err := f.ctx.DoString(`
		ok_town = Audio:play_music("town.ogg")
		ok_cave = Audio:play_music("cave.ogg", 0, false)
		ok_force = Audio:play_music("cave.ogg")
	`)
	if err != nil {
		t.Fatalf("script: %v", err)
	}
	if !f.globalBool(t, "ok_town") {
		t.Error("first play_music failed")
	}
	if f.globalBool(t, "ok_cave") {
		t.Error("non-forcing play_music succeeded over active music")
	}
	if !f.globalBool(t, "ok_force") {
		t.Error("forcing play_music failed")
	}
	ch, ok := f.engine.CurrentMusic()
	if !ok || ch.Path != "cave.ogg" {
		t.Errorf("active music %+v, want cave.ogg", ch)
	}
}

// TestAudioClassInstantiationRejected verifies the singleton is the only
// instance scripts can ever hold
func TestAudioClassInstantiationRejected(t *testing.T) {
	f := newFixture(t)

	err := f.ctx.DoString(`AudioClass.new()`)
	if err == nil {
		t.Fatal("AudioClass.new() succeeded")
	}
	if !strings.Contains(err.Error(), "cannot create instances") {
		t.Errorf("unexpected error: %v", err)
	}
}

// TestOnOffFromScript verifies script-side registration drives native
// dispatch and off removes exactly the named handler
func TestOnOffFromScript(t *testing.T) {
	f := newFixture(t)

	err := f.ctx.DoString(`
		finishes = 0
		function count_finish(path) finishes = finishes + 1 end
		Audio:on("sound_finished", count_finish)
	`)
	if err != nil {
		t.Fatalf("script: %v", err)
	}

	f.engine.PlaySound("coin.ogg", -1, 0, audio.SentinelResourceID)
	start, _ := f.backend.LastStart()
	f.engine.NotifyFinished(start.Handle)
	f.engine.Update()

	err = f.ctx.DoString(`
		first_count_ok = (finishes == 1)
		removed = Audio:off("sound_finished", count_finish)
	`)
	if err != nil {
		t.Fatalf("script: %v", err)
	}
	if !f.globalBool(t, "first_count_ok") {
		t.Error("sound_finished handler did not run")
	}
	if !f.globalBool(t, "removed") {
		t.Error("off did not find the registered handler")
	}

	f.engine.PlaySound("coin.ogg", -1, 0, audio.SentinelResourceID)
	start, _ = f.backend.LastStart()
	f.engine.NotifyFinished(start.Handle)
	f.engine.Update()

	if err := f.ctx.DoString(`second_count_ok = (finishes == 1)`); err != nil {
		t.Fatalf("script: %v", err)
	}
	if !f.globalBool(t, "second_count_ok") {
		t.Error("handler ran after off")
	}
}

// TestOffAbsentHandlerIsNoop verifies defensive unregistration from script
func TestOffAbsentHandlerIsNoop(t *testing.T) {
	f := newFixture(t)

	err := f.ctx.DoString(`
		removed = Audio:off("sound_finished", function() end)
	`)
	if err != nil {
		t.Fatalf("script: %v", err)
	}
	if f.globalBool(t, "removed") {
		t.Error("off reported removal of an unregistered handler")
	}
}

// TestSaveDataRoundTripThroughHandler verifies handlers write into the
// borrowed native store during a save dispatch
func TestSaveDataRoundTripThroughHandler(t *testing.T) {
	f := newFixture(t)

	levelEmitter := &fakeLevel{}
	binder := New(f.ctx, f.registry)
	binder.InstallEmitter("Level", "thornvale.level", levelEmitter, nil)

	err := f.ctx.DoString(`
		Level:on("save", function(data)
			data:set("coins", "42")
			if data:has("engine_version") then
				seen_engine_key = true
			end
		end)
	`)
	if err != nil {
		t.Fatalf("script: %v", err)
	}

	data := save.New()
	data.Set("engine_version", "3")
	verdict, err := f.dispatcher.Fire(levelEmitter, event.LevelSave{Data: data})
	if err != nil {
		t.Fatalf("Fire: %v", err)
	}
	if !verdict.Ran {
		t.Fatal("save handler did not run")
	}

	if v, _ := data.Get("coins"); v != "42" {
		t.Errorf("handler write lost: coins = %q", v)
	}
	if !f.globalBool(t, "seen_engine_key") {
		t.Error("handler did not see natively written key")
	}
}

type fakeLevel struct{}

func (*fakeLevel) EmitterTag() string { return "level" }
