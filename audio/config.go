package audio

import (
	"fmt"

	"github.com/caarlos0/env/v11"
)

// Config holds the playback settings. Loaded from the environment; the
// defaults run the engine against assets/ next to the binary
type Config struct {
	// Enabled false means the user muted sound output: every play call
	// reports false without detail, by design
	Enabled bool `env:"THORNVALE_AUDIO_ENABLED" envDefault:"true"`

	// SoundVolume is the default for play_sound calls passing -1
	SoundVolume int `env:"THORNVALE_SOUND_VOLUME" envDefault:"100"`

	// MusicVolume scales every music stream
	MusicVolume int `env:"THORNVALE_MUSIC_VOLUME" envDefault:"80"`

	SoundRoot string `env:"THORNVALE_SOUND_ROOT" envDefault:"assets/sounds"`
	MusicRoot string `env:"THORNVALE_MUSIC_ROOT" envDefault:"assets/music"`

	SampleRate int `env:"THORNVALE_SAMPLE_RATE" envDefault:"48000"`
	BufferMS   int `env:"THORNVALE_AUDIO_BUFFER_MS" envDefault:"100"`
}

// DefaultConfig returns the settings used when the environment is empty
func DefaultConfig() Config {
	return Config{
		Enabled:     true,
		SoundVolume: 100,
		MusicVolume: 80,
		SoundRoot:   "assets/sounds",
		MusicRoot:   "assets/music",
		SampleRate:  48000,
		BufferMS:    100,
	}
}

// LoadConfig reads the configuration from the environment
func LoadConfig() (Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("parse audio config: %w", err)
	}
	return cfg, nil
}
