package service

// Service defines the lifecycle interface for infrastructure subsystems
// Services manage long-lived resources: the interpreter, the audio backend
//
// Lifecycle:
//  1. Construction (via factory)
//  2. Init(args...) - implicit configuration (e.g. from parsed env)
//  3. Start() - open devices, run boot scripts
//  4. [runtime operation on the update thread]
//  5. Stop() - release resources
type Service interface {
	// Name returns the unique identifier for this service
	Name() string

	// Dependencies returns names of services that must Init before this one
	// Return nil or empty slice if no dependencies
	Dependencies() []string

	// Init configures the service from optional args
	Init(args ...any) error

	// Start begins service operation
	// Called after all services have initialized
	Start() error

	// Stop halts service operation and releases resources
	// Must be idempotent - safe to call multiple times
	Stop() error
}

// StopAll stops services in reverse order, ignoring individual failures
func StopAll(services []Service) {
	for i := len(services) - 1; i >= 0; i-- {
		_ = services[i].Stop()
	}
}
