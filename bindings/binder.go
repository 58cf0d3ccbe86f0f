// Package bindings installs the script-visible surface: the Audio
// singleton, the generic eventable on/off methods and the savedata
// userdata handlers mutate during save/load events
package bindings

import (
	"github.com/Shopify/go-lua"

	"github.com/hollowmere/thornvale/event"
	"github.com/hollowmere/thornvale/script"
)

// Binder wires the interpreter to the registry and dispatcher. One binder
// serves one interpreter context
type Binder struct {
	ctx      *script.Context
	registry *event.Registry
}

// New creates a binder over the given context and registry
func New(ctx *script.Context, registry *event.Registry) *Binder {
	return &Binder{ctx: ctx, registry: registry}
}

// InstallEmitter exposes a native emitter as a global userdata with the
// eventable on/off methods plus any extra methods the caller supplies.
// metaName must be unique per emitter type
func (b *Binder) InstallEmitter(global, metaName string, em event.Emitter, extra []lua.RegistryFunction) {
	l := b.ctx.State()

	lua.NewMetaTable(l, metaName)
	l.NewTable()
	methods := append([]lua.RegistryFunction{
		{Name: "on", Function: b.on},
		{Name: "off", Function: b.off},
	}, extra...)
	lua.SetFunctions(l, methods, 0)
	l.SetField(-2, "__index")
	l.Pop(1)

	l.PushUserData(em)
	lua.SetMetaTableNamed(l, metaName)
	l.SetGlobal(global)
}

// checkEmitter recovers the bound emitter from the method receiver
func checkEmitter(l *lua.State) event.Emitter {
	em, ok := l.ToUserData(1).(event.Emitter)
	if !ok {
		lua.ArgumentError(l, 1, "eventable object expected")
	}
	return em
}

// on registers a handler: obj:on(event_name, function(...) end)
// Registering the same function twice for one event is a no-op
func (b *Binder) on(l *lua.State) int {
	em := checkEmitter(l)
	name := lua.CheckString(l, 2)
	lua.CheckType(l, 3, lua.TypeFunction)

	fn, err := b.ctx.CallableAt(3)
	if err != nil {
		lua.Errorf(l, "on: %s", err.Error())
		return 0
	}
	b.registry.Register(em, name, fn)
	return 0
}

// off unregisters a handler: obj:off(event_name, fn)
// Unknown handlers are a no-op; scripts may unregister defensively.
// Returns whether a handler was removed
func (b *Binder) off(l *lua.State) int {
	em := checkEmitter(l)
	name := lua.CheckString(l, 2)
	lua.CheckType(l, 3, lua.TypeFunction)

	probe, err := b.ctx.CallableAt(3)
	if err != nil {
		lua.Errorf(l, "off: %s", err.Error())
		return 0
	}
	removed := b.registry.Unregister(em, name, probe)
	probe.Release()

	l.PushBoolean(removed)
	return 1
}
