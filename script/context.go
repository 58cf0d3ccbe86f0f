package script

import (
	"fmt"

	"github.com/Shopify/go-lua"
)

// callableTable is the registry key of the table holding every native-held
// reference to a script function. go-lua has no luaL_ref, so slots are ours
const callableTable = "thornvale.callables"

// Context wraps one embedded Lua interpreter. It lives on the engine's
// update thread: construction, every call and Close all happen there.
// Nothing in this type is safe for concurrent use
type Context struct {
	l        *lua.State
	closed   bool
	nextSlot int
}

// NewContext creates an interpreter with the standard libraries opened and
// the callable slot table installed
func NewContext() *Context {
	l := lua.NewState()
	lua.OpenLibraries(l)

	l.NewTable()
	l.SetField(lua.RegistryIndex, callableTable)

	return &Context{l: l, nextSlot: 1}
}

// State exposes the raw interpreter state for the binding layer.
// Callers must restore the stack to the depth they found it at
func (c *Context) State() *lua.State {
	return c.l
}

// Closed reports whether the interpreter can no longer make calls
func (c *Context) Closed() bool {
	return c.closed
}

// Close tears the interpreter down. Callables created from this context are
// invalid afterwards; calls through them fail with ErrInterpreterUnavailable
func (c *Context) Close() {
	c.closed = true
}

// DoString runs a chunk of source, typically test setup or a boot script
func (c *Context) DoString(source string) error {
	if c.closed {
		return ErrInterpreterUnavailable
	}
	if err := lua.DoString(c.l, source); err != nil {
		return fmt.Errorf("run chunk: %w", err)
	}
	return nil
}

// DoFile loads and runs a script file
func (c *Context) DoFile(path string) error {
	if c.closed {
		return ErrInterpreterUnavailable
	}
	if err := lua.DoFile(c.l, path); err != nil {
		return fmt.Errorf("run %s: %w", path, err)
	}
	return nil
}

// CallableAt captures the function at the given stack index as a Callable.
// The stack is left unchanged
func (c *Context) CallableAt(index int) (Callable, error) {
	if c.closed {
		return Callable{}, ErrInterpreterUnavailable
	}
	if !c.l.IsFunction(index) {
		return Callable{}, fmt.Errorf("value at index %d is not a function", index)
	}
	abs := c.l.AbsIndex(index)

	c.l.Field(lua.RegistryIndex, callableTable)
	c.l.PushValue(abs)
	slot := c.nextSlot
	c.nextSlot++
	c.l.RawSetInt(-2, slot)
	c.l.Pop(1)

	return Callable{ctx: c, slot: slot}, nil
}

// GlobalCallable captures the global function with the given name
func (c *Context) GlobalCallable(name string) (Callable, error) {
	if c.closed {
		return Callable{}, ErrInterpreterUnavailable
	}
	c.l.Global(name)
	fn, err := c.CallableAt(-1)
	c.l.Pop(1)
	if err != nil {
		return Callable{}, fmt.Errorf("global %q: %w", name, err)
	}
	return fn, nil
}
