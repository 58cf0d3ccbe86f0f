package audio

import (
	"fmt"
)

// MockBackend records start/stop traffic for tests that exercise
// arbitration without an audio device. All methods run on the caller's
// goroutine; tests deliver completions themselves via the engine's
// NotifyFinished
type MockBackend struct {
	nextHandle Handle

	// Unresolvable paths make Resolve fail, simulating missing files
	Unresolvable map[string]bool

	// FailStarts makes every StartSound/StartMusic return an error
	FailStarts bool

	Started []MockStart
	Stopped []Handle
}

// MockStart is one recorded start request
type MockStart struct {
	Handle   Handle
	Path     string
	Volume   int
	Loops    int
	FadeInMS int
	Music    bool
}

// NewMockBackend creates an empty recorder
func NewMockBackend() *MockBackend {
	return &MockBackend{Unresolvable: make(map[string]bool)}
}

// Resolve implements Backend
func (m *MockBackend) Resolve(path string) error {
	if m.Unresolvable[path] {
		return fmt.Errorf("no such audio file: %s", path)
	}
	return nil
}

// StartSound implements Backend
func (m *MockBackend) StartSound(path string, volume, loops int) (Handle, error) {
	if m.FailStarts {
		return 0, fmt.Errorf("start refused: %s", path)
	}
	m.nextHandle++
	m.Started = append(m.Started, MockStart{
		Handle: m.nextHandle,
		Path:   path,
		Volume: volume,
		Loops:  loops,
	})
	return m.nextHandle, nil
}

// StartMusic implements Backend
func (m *MockBackend) StartMusic(path string, loops, fadeInMS int) (Handle, error) {
	if m.FailStarts {
		return 0, fmt.Errorf("start refused: %s", path)
	}
	m.nextHandle++
	m.Started = append(m.Started, MockStart{
		Handle:   m.nextHandle,
		Path:     path,
		Loops:    loops,
		FadeInMS: fadeInMS,
		Music:    true,
	})
	return m.nextHandle, nil
}

// Stop implements Backend
func (m *MockBackend) Stop(h Handle) {
	m.Stopped = append(m.Stopped, h)
}

// LastStart returns the most recent start request
func (m *MockBackend) LastStart() (MockStart, bool) {
	if len(m.Started) == 0 {
		return MockStart{}, false
	}
	return m.Started[len(m.Started)-1], true
}
