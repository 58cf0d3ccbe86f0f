package engine

import (
	"testing"

	"github.com/rs/zerolog"

	"github.com/hollowmere/thornvale/audio"
	"github.com/hollowmere/thornvale/event"
	"github.com/hollowmere/thornvale/script"
)

func newPlayerFixture(t *testing.T) (*Player, *audio.MockBackend, *script.Context, *event.Registry) {
	t.Helper()
	ctx := script.NewContext()
	t.Cleanup(ctx.Close)

	registry := event.NewRegistry()
	dispatcher := event.NewDispatcher(registry, zerolog.Nop())

	backend := audio.NewMockBackend()
	cfg := audio.DefaultConfig()
	eng := audio.NewEngine(backend, cfg, zerolog.Nop())

	player := NewPlayer(registry, dispatcher, eng, zerolog.Nop())
	return player, backend, ctx, registry
}

// TestJumpDefaultPlaysArbitratedSound verifies the default behavior runs
// with the predefined jump resource id when nothing suppresses it
func TestJumpDefaultPlaysArbitratedSound(t *testing.T) {
	player, backend, _, _ := newPlayerFixture(t)

	player.Jump()

	start, ok := backend.LastStart()
	if !ok {
		t.Fatal("jump played no sound")
	}
	if start.Music {
		t.Error("jump started music")
	}

	// Rapid second jump preempts the first sound instead of stacking it
	player.Jump()
	if len(backend.Stopped) != 1 {
		t.Errorf("second jump stopped %d channels, want 1", len(backend.Stopped))
	}
}

// TestJumpSuppressedByHandler verifies a handler returning false cancels
// the default jump sound
func TestJumpSuppressedByHandler(t *testing.T) {
	player, backend, ctx, registry := newPlayerFixture(t)

	if err := ctx.DoString(`function quiet() return false end`); err != nil {
		t.Fatalf("load: %v", err)
	}
	fn, err := ctx.GlobalCallable("quiet")
	if err != nil {
		t.Fatalf("capture: %v", err)
	}
	registry.Register(player, "jump", fn)

	player.Jump()

	if len(backend.Started) != 0 {
		t.Error("suppressed jump still played the default sound")
	}
}

// TestDestroyTearsDownRegistrations verifies the destruction path removes
// the player's handlers
func TestDestroyTearsDownRegistrations(t *testing.T) {
	player, _, ctx, registry := newPlayerFixture(t)

	if err := ctx.DoString(`function h() end`); err != nil {
		t.Fatalf("load: %v", err)
	}
	fn, _ := ctx.GlobalCallable("h")
	registry.Register(player, "jump", fn)

	player.Destroy()

	if registry.Has(player, "jump") {
		t.Error("registrations survived Destroy")
	}
}
