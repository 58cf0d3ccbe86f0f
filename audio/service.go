package audio

import (
	"sync/atomic"

	"github.com/rs/zerolog"
)

// Service wraps the engine and beep backend as a lifecycle service.
// Handles graceful degradation when no audio device is available: the
// engine stays usable and every play call reports false
type Service struct {
	engine   *Engine
	backend  *BeepBackend
	cfg      Config
	log      zerolog.Logger
	disabled atomic.Bool
}

// NewService creates the audio service
func NewService(log zerolog.Logger) *Service {
	return &Service{log: log.With().Str("service", "audio").Logger()}
}

// Name implements Service
func (s *Service) Name() string {
	return "audio"
}

// Dependencies implements Service
func (s *Service) Dependencies() []string {
	return nil
}

// Init implements Service
// Loads config from the environment and builds the engine over the beep
// backend. Never returns an error for audio problems; those surface later
// as silent mode
func (s *Service) Init(args ...any) error {
	cfg, err := LoadConfig()
	if err != nil {
		return err
	}
	s.cfg = cfg

	// Engine first: the backend's completion hook needs it
	s.engine = NewEngine(nil, cfg, s.log)
	s.backend = NewBeepBackend(cfg.SampleRate, cfg.MusicVolume, s.engine.NotifyFinished)
	return nil
}

// Start implements Service
// Opens the speaker; a missing audio device flips to silent mode instead
// of failing startup
func (s *Service) Start() error {
	if err := s.backend.Start(s.cfg.BufferMS); err != nil {
		s.disabled.Store(true)
		s.log.Warn().Err(err).Msg("no audio device, running silent")
		return nil
	}
	s.engine.backend = s.backend
	return nil
}

// Stop implements Service
func (s *Service) Stop() error {
	if s.engine != nil {
		s.engine.Shutdown()
	}
	if s.backend != nil && !s.disabled.Load() {
		s.backend.Close()
	}
	return nil
}

// Engine returns the arbitration engine; nil before Init
func (s *Service) Engine() *Engine {
	return s.engine
}
