package bindings

import (
	"github.com/Shopify/go-lua"

	"github.com/hollowmere/thornvale/audio"
)

const audioMetaTable = "thornvale.audio"

// InstallAudio exposes the playback engine as the Audio singleton. The
// AudioClass global exists so scripts can test for it, but constructing
// instances is rejected: the singleton is the only one
func (b *Binder) InstallAudio(eng *audio.Engine) {
	b.InstallEmitter("Audio", audioMetaTable, eng, []lua.RegistryFunction{
		{Name: "play_sound", Function: b.playSound},
		{Name: "play_music", Function: b.playMusic},
		{Name: "stop_music", Function: b.stopMusic},
		{Name: "music_playing", Function: b.musicPlaying},
	})

	l := b.ctx.State()
	l.NewTable()
	lua.SetFunctions(l, []lua.RegistryFunction{
		{Name: "new", Function: audioClassNew},
	}, 0)
	l.SetGlobal("AudioClass")
}

func checkAudio(l *lua.State) *audio.Engine {
	eng, ok := lua.CheckUserData(l, 1, audioMetaTable).(*audio.Engine)
	if !ok {
		lua.ArgumentError(l, 1, "Audio expected")
	}
	return eng
}

// playSound: Audio:play_sound(filename [, volume [, loops [, resid]]]) -> bool
// volume -1 picks the configured default; resid -1 disables arbitration.
// False means the file is unplayable or sound is muted; no detail beyond
// the boolean, so scripts cannot branch on user preference
func (b *Binder) playSound(l *lua.State) int {
	eng := checkAudio(l)
	filename := lua.CheckString(l, 2)
	volume := lua.OptInteger(l, 3, -1)
	loops := lua.OptInteger(l, 4, 0)
	resid := lua.OptInteger(l, 5, audio.SentinelResourceID)

	l.PushBoolean(eng.PlaySound(filename, volume, loops, resid))
	return 1
}

// playMusic: Audio:play_music(filename [, loops [, force [, fadein_ms]]]) -> bool
// force defaults to true: the running music is stopped and discarded
func (b *Binder) playMusic(l *lua.State) int {
	eng := checkAudio(l)
	filename := lua.CheckString(l, 2)
	loops := lua.OptInteger(l, 3, 0)
	force := true
	if !l.IsNoneOrNil(4) {
		force = l.ToBoolean(4)
	}
	fadeInMS := lua.OptInteger(l, 5, 0)

	l.PushBoolean(eng.PlayMusic(filename, loops, force, fadeInMS))
	return 1
}

// stopMusic: Audio:stop_music()
func (b *Binder) stopMusic(l *lua.State) int {
	checkAudio(l).StopMusic()
	return 0
}

// musicPlaying: Audio:music_playing() -> bool
func (b *Binder) musicPlaying(l *lua.State) int {
	l.PushBoolean(checkAudio(l).MusicPlaying())
	return 1
}

func audioClassNew(l *lua.State) int {
	lua.Errorf(l, "cannot create instances of this class")
	return 0
}
