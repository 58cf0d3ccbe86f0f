package bindings

import (
	"github.com/Shopify/go-lua"

	"github.com/hollowmere/thornvale/event"
	"github.com/hollowmere/thornvale/save"
)

// InstallSaveData registers the metatable save/load events marshal their
// borrowed payload under. Handlers read and write the natively owned
// store directly; nothing is copied and nothing outlives the dispatch
func (b *Binder) InstallSaveData() {
	l := b.ctx.State()

	lua.NewMetaTable(l, event.SaveDataMetaTable)
	l.NewTable()
	lua.SetFunctions(l, []lua.RegistryFunction{
		{Name: "get", Function: saveDataGet},
		{Name: "set", Function: saveDataSet},
		{Name: "has", Function: saveDataHas},
		{Name: "delete", Function: saveDataDelete},
	}, 0)
	l.SetField(-2, "__index")
	l.Pop(1)
}

func checkSaveData(l *lua.State) *save.Data {
	d, ok := lua.CheckUserData(l, 1, event.SaveDataMetaTable).(*save.Data)
	if !ok {
		lua.ArgumentError(l, 1, "savedata expected")
	}
	return d
}

// saveDataGet: data:get(key) -> string | nil
func saveDataGet(l *lua.State) int {
	d := checkSaveData(l)
	key := lua.CheckString(l, 2)
	if v, ok := d.Get(key); ok {
		l.PushString(v)
	} else {
		l.PushNil()
	}
	return 1
}

// saveDataSet: data:set(key, value)
func saveDataSet(l *lua.State) int {
	d := checkSaveData(l)
	key := lua.CheckString(l, 2)
	value := lua.CheckString(l, 3)
	d.Set(key, value)
	return 0
}

// saveDataHas: data:has(key) -> bool
func saveDataHas(l *lua.State) int {
	d := checkSaveData(l)
	l.PushBoolean(d.Has(lua.CheckString(l, 2)))
	return 1
}

// saveDataDelete: data:delete(key)
func saveDataDelete(l *lua.State) int {
	d := checkSaveData(l)
	d.Delete(lua.CheckString(l, 2))
	return 0
}
