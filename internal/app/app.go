// Package app wires the deckhand capture, detection and control pipeline
// together.
package app

import (
	"errors"
	"fmt"
	"log"
	"strconv"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/renderix/deckhand/internal/capture"
	"github.com/renderix/deckhand/internal/control"
	"github.com/renderix/deckhand/internal/detector"
	"github.com/renderix/deckhand/internal/gesture"
	"github.com/renderix/deckhand/internal/keymap"
	"github.com/renderix/deckhand/internal/output"
	"github.com/renderix/deckhand/internal/plugin"
	"github.com/renderix/deckhand/internal/store"
)

// Pipeline timing constants.
const (
	// IdleFPS is the frame rate when no motion is detected.
	IdleFPS = 5
	// ActiveFPS is the frame rate during active detection.
	ActiveFPS = 15
	// IdleTimeoutMs is the time in milliseconds to wait before switching back to idle mode.
	IdleTimeoutMs = 2000
)

// KeyboardPluginName is the plugin expected to perform key injection.
const KeyboardPluginName = "keyboard"

// Config holds configuration options for the application.
type Config struct {
	Store          *store.Store
	PluginDir      string
	CameraID       int
	MotionThresh   float64
	PinchThreshold float64
	PinchInterval  time.Duration
}

// App orchestrates the frame-synchronous pipeline: capture, hand detection,
// gesture classification, deck resolution, control mapping and key emission.
type App struct {
	config     Config
	camera     capture.Camera
	motion     *capture.MotionDetector
	detector   detector.Detector
	classifier *gesture.Classifier
	mapper     *control.Mapper
	keys       keymap.Map
	sink       output.Sink
	pluginMgr  *plugin.Manager
	pluginExec *plugin.Executor
	enabled    bool
	mu         sync.RWMutex
	stopCh     chan struct{}
	onEvents   []func([]control.Event)
}

// New creates a new App instance with the given configuration.
func New(config Config) *App {
	motionThreshold := config.MotionThresh
	if motionThreshold <= 0 {
		motionThreshold = 1.0 // Default threshold: 1% pixel change
	}

	a := &App{
		config:     config,
		camera:     capture.NewCamera(config.CameraID),
		motion:     capture.NewMotionDetector(motionThreshold),
		classifier: gesture.NewClassifier(config.PinchThreshold),
		mapper:     control.NewMapper(config.PinchInterval, time.Now),
		keys:       keymap.Default(),
		sink:       output.LogSink{},
		pluginMgr:  plugin.NewManager(config.PluginDir),
		pluginExec: plugin.NewExecutor(5 * time.Second),
	}

	// Try MediaPipe first, fall back to mock detector
	if mp, err := detector.NewMediaPipeDetector(detector.DefaultConfig()); err == nil {
		a.detector = mp
		log.Println("Using MediaPipe hand detection")
	} else {
		log.Printf("MediaPipe not available (%v), using mock detector", err)
		a.detector = detector.NewMockDetector()
	}

	return a
}

// Settings keys persisted across runs.
const (
	settingEnabled        = "enabled"
	settingPinchThreshold = "pinch_threshold"
)

// SetEnabled enables or disables gesture control. The flag is persisted so
// the next start comes up in the same state.
func (a *App) SetEnabled(enabled bool) {
	a.mu.Lock()
	a.enabled = enabled
	a.mu.Unlock()

	if a.config.Store != nil {
		if err := a.config.Store.Settings().Set(settingEnabled, strconv.FormatBool(enabled)); err != nil {
			log.Printf("Failed to persist enabled flag: %v", err)
		}
	}
}

// IsEnabled returns whether gesture control is currently enabled.
func (a *App) IsEnabled() bool {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return a.enabled
}

// SetDetector sets the hand detector implementation to use.
func (a *App) SetDetector(d detector.Detector) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.detector = d
}

// SetSink sets the output sink used for key emission.
func (a *App) SetSink(s output.Sink) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.sink = s
}

// SetCamera replaces the camera, for tests driving recorded frames.
func (a *App) SetCamera(c capture.Camera) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.camera = c
}

// OnEvents registers a callback invoked with each frame's control events.
// Callbacks run on the pipeline goroutine and must return quickly.
func (a *App) OnEvents(fn func([]control.Event)) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.onEvents = append(a.onEvents, fn)
}

// LoadKeymap builds the active key table: stock defaults overlaid with the
// store's mappings. On first run the defaults are seeded into the store so
// the settings UI has rows to edit. A disabled stored mapping removes the
// binding entirely.
func (a *App) LoadKeymap() error {
	defaults := keymap.Default()

	if a.config.Store == nil {
		a.setKeymap(defaults)
		return nil
	}

	repo := a.config.Store.Mappings()
	mappings, err := repo.List()
	if err != nil {
		return err
	}

	if len(mappings) == 0 {
		for _, action := range defaults.Actions() {
			m := &store.Mapping{
				ID:      uuid.NewString(),
				Action:  action,
				Key:     defaults[action],
				Enabled: true,
			}
			if err := repo.Create(m); err != nil {
				return err
			}
		}
		log.Printf("Seeded %d default key mappings", len(defaults))
		a.setKeymap(defaults)
		return nil
	}

	keys := make(keymap.Map, len(defaults))
	for name, key := range defaults {
		keys[name] = key
	}
	for _, m := range mappings {
		if m.Enabled {
			keys[m.Action] = m.Key
		} else {
			delete(keys, m.Action)
		}
	}

	log.Printf("Loaded %d key mappings from database", len(mappings))
	a.setKeymap(keys)
	return nil
}

func (a *App) setKeymap(keys keymap.Map) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.keys = keys
}

// Keymap returns the active key table.
func (a *App) Keymap() keymap.Map {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return a.keys
}

// LoadSettings restores persisted settings: the enabled flag and the pinch
// distance threshold. Missing settings keep their defaults; the enabled flag
// defaults to true on first run.
func (a *App) LoadSettings() error {
	if a.config.Store == nil {
		return nil
	}

	repo := a.config.Store.Settings()

	enabled := true
	if v, err := repo.Get(settingEnabled); err == nil {
		parsed, err := strconv.ParseBool(v)
		if err != nil {
			return fmt.Errorf("setting %s: %w", settingEnabled, err)
		}
		enabled = parsed
	} else if !errors.Is(err, store.ErrNotFound) {
		return err
	}

	a.mu.Lock()
	a.enabled = enabled
	a.mu.Unlock()

	if v, err := repo.Get(settingPinchThreshold); err == nil {
		threshold, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return fmt.Errorf("setting %s: %w", settingPinchThreshold, err)
		}
		a.mu.Lock()
		a.classifier = gesture.NewClassifier(threshold)
		a.mu.Unlock()
	} else if !errors.Is(err, store.ErrNotFound) {
		return err
	}

	return nil
}

// DiscoverPlugins scans the plugin directory and, when the keyboard plugin is
// present, switches the output sink to it. Without the plugin the app keeps
// logging key presses instead of injecting them.
func (a *App) DiscoverPlugins() error {
	if err := a.pluginMgr.Discover(); err != nil {
		return err
	}

	if _, err := a.pluginMgr.Get(KeyboardPluginName); err == nil {
		a.SetSink(output.NewPluginSink(a.pluginMgr, a.pluginExec, KeyboardPluginName))
		log.Println("Using keyboard plugin for key injection")
	} else {
		log.Println("Keyboard plugin not found, running in simulation mode")
	}

	return nil
}

// Start begins the detection pipeline.
func (a *App) Start() error {
	a.mu.Lock()
	defer a.mu.Unlock()

	// Don't start if already running
	if a.stopCh != nil {
		return nil
	}

	if err := a.camera.Open(); err != nil {
		return err
	}

	a.camera.SetFPS(IdleFPS)

	a.stopCh = make(chan struct{})
	go a.runPipeline(a.stopCh)

	log.Println("Detection pipeline started")
	return nil
}

// Stop halts the detection pipeline and releases resources.
func (a *App) Stop() {
	a.mu.Lock()
	defer a.mu.Unlock()

	if a.stopCh != nil {
		close(a.stopCh)
		a.stopCh = nil
	}

	if err := a.camera.Close(); err != nil {
		log.Printf("Error closing camera: %v", err)
	}

	a.motion.Close()

	if a.detector != nil {
		if err := a.detector.Close(); err != nil {
			log.Printf("Error closing detector: %v", err)
		}
	}

	log.Println("Detection pipeline stopped")
}

// Camera returns the camera instance.
func (a *App) Camera() capture.Camera {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return a.camera
}

// MotionDetector returns the motion detector instance.
func (a *App) MotionDetector() *capture.MotionDetector {
	return a.motion
}

// Mapper returns the per-deck control mapper.
func (a *App) Mapper() *control.Mapper {
	return a.mapper
}

// PluginManager returns the plugin manager.
func (a *App) PluginManager() *plugin.Manager {
	return a.pluginMgr
}

// Detector returns the hand detector.
func (a *App) Detector() detector.Detector {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return a.detector
}
