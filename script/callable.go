package script

import (
	"github.com/Shopify/go-lua"
)

// Callable is an opaque capability over one script function. The dispatch
// layer never inspects it; it can only be called, compared and released.
// The zero value is invalid
type Callable struct {
	ctx  *Context
	slot int
}

// Valid reports whether the callable references a live context slot
func (f Callable) Valid() bool {
	return f.ctx != nil && f.slot != 0
}

// push puts the referenced function on top of the stack
func (f Callable) push() {
	l := f.ctx.l
	l.Field(lua.RegistryIndex, callableTable)
	l.RawGetInt(-1, f.slot)
	l.Remove(l.AbsIndex(-2))
}

// Equals reports whether the two callables reference the same script
// function (raw equality, no metamethods). Distinct slots may hold the
// same function; the registry relies on this to detect re-registration
func (f Callable) Equals(other Callable) bool {
	if !f.Valid() || !other.Valid() || f.ctx != other.ctx || f.ctx.closed {
		return false
	}
	l := f.ctx.l
	f.push()
	other.push()
	// Released slots push nil; nil must not compare equal to nil
	equal := l.IsFunction(-1) && l.IsFunction(-2) && l.RawEqual(-1, -2)
	l.Pop(2)
	return equal
}

// Clone captures the referenced function under a fresh slot. The clone
// stays callable after the original is released; callers release it when
// done. Dispatch snapshots rely on this to survive mid-fire unregistration
func (f Callable) Clone() (Callable, error) {
	if !f.Valid() || f.ctx.closed {
		return Callable{}, ErrInterpreterUnavailable
	}
	l := f.ctx.l
	f.push()
	clone, err := f.ctx.CallableAt(-1)
	l.Pop(1)
	return clone, err
}

// Release frees the slot so the script function can be collected.
// Safe to call more than once and after the context is closed
func (f Callable) Release() {
	if !f.Valid() || f.ctx.closed {
		return
	}
	l := f.ctx.l
	l.Field(lua.RegistryIndex, callableTable)
	l.PushNil()
	l.RawSetInt(-2, f.slot)
	l.Pop(1)
}

// Result is the outcome of one successful handler invocation
type Result struct {
	// Suppress is true iff the handler explicitly returned false.
	// No return value (nil) and every other value mean "continue":
	// default native behavior runs unless actively cancelled
	Suppress bool
}

// Call invokes the referenced function with the given arguments through a
// protected call. Script failures come back as *HandlerError and never
// unwind into native code
func (f Callable) Call(args ...Arg) (Result, error) {
	if !f.Valid() {
		return Result{}, ErrInterpreterUnavailable
	}
	c := f.ctx
	if c.closed {
		return Result{}, ErrInterpreterUnavailable
	}
	l := c.l
	base := l.Top()

	f.push()
	for _, a := range args {
		a.push(l)
	}
	if err := l.ProtectedCall(len(args), 1, 0); err != nil {
		l.SetTop(base)
		return Result{}, &HandlerError{Err: err}
	}

	var res Result
	if l.TypeOf(-1) == lua.TypeBoolean && !l.ToBoolean(-1) {
		res.Suppress = true
	}
	l.SetTop(base)
	return res, nil
}
