// Package output delivers key symbols to the OS input layer.
package output

import (
	"fmt"
	"log"
	"sync"

	"github.com/renderix/deckhand/internal/plugin"
)

// Sink accepts a symbolic key event and performs the actual injection.
// Emit is best-effort: the frame pipeline logs failures and moves on, and a
// stale key press is never retried.
type Sink interface {
	Emit(key string) error
}

// PluginSink injects keys through an external plugin executed per event. The
// executor's timeout bounds how long a single emission can block the frame
// loop.
type PluginSink struct {
	manager    *plugin.Manager
	executor   *plugin.Executor
	pluginName string
}

// NewPluginSink creates a Sink backed by the named plugin.
func NewPluginSink(manager *plugin.Manager, executor *plugin.Executor, pluginName string) *PluginSink {
	return &PluginSink{
		manager:    manager,
		executor:   executor,
		pluginName: pluginName,
	}
}

// Emit sends a keystroke request to the plugin.
func (s *PluginSink) Emit(key string) error {
	p, err := s.manager.Get(s.pluginName)
	if err != nil {
		return fmt.Errorf("resolve sink plugin %q: %w", s.pluginName, err)
	}

	resp, err := s.executor.Execute(p, &plugin.Request{
		Action: "keystroke",
		Key:    key,
	})
	if err != nil {
		return fmt.Errorf("emit key %q: %w", key, err)
	}
	if !resp.Success {
		return fmt.Errorf("emit key %q rejected: %s", key, resp.Error)
	}

	return nil
}

// LogSink prints key events instead of injecting them. Used as the simulation
// mode when no keyboard plugin is available.
type LogSink struct{}

// Emit logs the key symbol.
func (LogSink) Emit(key string) error {
	log.Printf("simulation: pressed key %q", key)
	return nil
}

// MockSink records emitted keys for tests.
type MockSink struct {
	mu   sync.Mutex
	keys []string
	err  error
}

// NewMockSink creates an empty MockSink.
func NewMockSink() *MockSink {
	return &MockSink{}
}

// SetError makes subsequent Emit calls fail with err.
func (s *MockSink) SetError(err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.err = err
}

// Emit records the key, or fails if an error is configured. Failed emissions
// are not recorded.
func (s *MockSink) Emit(key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.err != nil {
		return s.err
	}
	s.keys = append(s.keys, key)
	return nil
}

// Keys returns a copy of the recorded key sequence.
func (s *MockSink) Keys() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]string, len(s.keys))
	copy(out, s.keys)
	return out
}

// Reset clears the recorded keys.
func (s *MockSink) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.keys = nil
}
