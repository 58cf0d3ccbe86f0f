package event

import (
	"github.com/hollowmere/thornvale/save"
	"github.com/hollowmere/thornvale/script"
)

// SaveDataMetaTable names the userdata metatable the binding layer
// registers for borrowed save payloads
const SaveDataMetaTable = "thornvale.savedata"

// Jump signals the player left the ground
// Raiser: Player.Jump | Payload: none
type Jump struct{}

func (Jump) Name() string { return "jump" }

func (Jump) Invoke(fn script.Callable) (script.Result, error) {
	return fn.Call()
}

// LevelSave asks handlers to write their state into the save store
// Raiser: Level.Save | Payload: borrowed *save.Data, owned by the save
// subsystem and kept alive on its frame for the duration of the dispatch
type LevelSave struct {
	Data *save.Data
}

func (LevelSave) Name() string { return "save" }

func (e LevelSave) Invoke(fn script.Callable) (script.Result, error) {
	return fn.Call(script.Object{MetaTable: SaveDataMetaTable, Value: e.Data})
}

// LevelLoad hands handlers the store a previous save produced
// Raiser: Level.Restore | Payload: borrowed *save.Data, same contract as
// LevelSave
type LevelLoad struct {
	Data *save.Data
}

func (LevelLoad) Name() string { return "load" }

func (e LevelLoad) Invoke(fn script.Callable) (script.Result, error) {
	return fn.Call(script.Object{MetaTable: SaveDataMetaTable, Value: e.Data})
}

// SoundFinished signals a tracked playback channel completed or was
// preempted
// Raiser: audio.Engine.Update | Payload: the script-authored path
type SoundFinished struct {
	Path string
}

func (SoundFinished) Name() string { return "sound_finished" }

func (e SoundFinished) Invoke(fn script.Callable) (script.Result, error) {
	return fn.Call(script.String(e.Path))
}
