package script

import (
	"github.com/Shopify/go-lua"
)

// Arg is a value an event marshals into a handler call. The set is closed
// over what events actually carry; payload structs pick the variant that
// matches their data
type Arg interface {
	push(l *lua.State)
}

// Bool marshals as a Lua boolean
type Bool bool

func (a Bool) push(l *lua.State) { l.PushBoolean(bool(a)) }

// Int marshals as a Lua integer
type Int int

func (a Int) push(l *lua.State) { l.PushInteger(int(a)) }

// Number marshals as a Lua number
type Number float64

func (a Number) push(l *lua.State) { l.PushNumber(float64(a)) }

// String marshals as a Lua string
type String string

func (a String) push(l *lua.State) { l.PushString(string(a)) }

// Object marshals a native value as userdata carrying a named metatable.
// The handler sees the methods the binding layer registered under that
// name; the native value itself is borrowed, never copied
type Object struct {
	MetaTable string
	Value     any
}

func (a Object) push(l *lua.State) {
	l.PushUserData(a.Value)
	lua.SetMetaTableNamed(l, a.MetaTable)
}
