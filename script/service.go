package script

import (
	"fmt"

	"github.com/rs/zerolog"
)

// Service wraps the interpreter as a lifecycle service. Init constructs the
// context, Start runs the optional boot script, Stop closes the interpreter
type Service struct {
	ctx      *Context
	bootPath string
	log      zerolog.Logger
}

// NewService creates the script service. bootPath may be empty when the
// host has no user script to load
func NewService(bootPath string, log zerolog.Logger) *Service {
	return &Service{
		bootPath: bootPath,
		log:      log.With().Str("service", "script").Logger(),
	}
}

// Name implements Service
func (s *Service) Name() string {
	return "script"
}

// Dependencies implements Service
func (s *Service) Dependencies() []string {
	return nil
}

// Init implements Service
func (s *Service) Init(args ...any) error {
	s.ctx = NewContext()
	return nil
}

// Start implements Service
// The boot script runs after all bindings are installed, so registration
// calls made at its top level land in a fully wired registry
func (s *Service) Start() error {
	if s.ctx == nil {
		return fmt.Errorf("script service not initialized")
	}
	if s.bootPath == "" {
		return nil
	}
	if err := s.ctx.DoFile(s.bootPath); err != nil {
		return fmt.Errorf("boot script: %w", err)
	}
	s.log.Info().Str("path", s.bootPath).Msg("boot script loaded")
	return nil
}

// Stop implements Service
func (s *Service) Stop() error {
	if s.ctx != nil && !s.ctx.Closed() {
		s.ctx.Close()
	}
	return nil
}

// Context returns the interpreter context; nil before Init
func (s *Service) Context() *Context {
	return s.ctx
}
