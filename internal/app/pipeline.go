package app

import (
	"log"
	"time"

	"github.com/google/uuid"

	"github.com/renderix/deckhand/internal/control"
	"github.com/renderix/deckhand/internal/detector"
	"github.com/renderix/deckhand/internal/gesture"
	"github.com/renderix/deckhand/internal/store"
)

// runPipeline is the frame-synchronous main loop. One frame is fully
// processed (capture, classify, resolve, map, emit) before the next begins;
// nothing is buffered, so a slow frame naturally drops capture frames at the
// source.
//
// Loop behavior:
//  1. Start in idle mode (IdleFPS)
//  2. On motion, switch to active mode (ActiveFPS)
//  3. Run hand detection and the control mapping step
//  4. After 2s without motion, fall back to idle mode
//
// The stop signal is observed between frames; an in-flight frame runs to
// completion.
func (a *App) runPipeline(stopCh chan struct{}) {
	activeMode := false
	lastMotionTime := time.Now()

	frameInterval := time.Second / time.Duration(IdleFPS)

	ticker := time.NewTicker(frameInterval)
	defer ticker.Stop()

	for {
		select {
		case <-stopCh:
			return
		case <-ticker.C:
			// Skip processing if control is disabled
			if !a.IsEnabled() {
				continue
			}

			frame, err := a.Camera().ReadFrame()
			if err != nil {
				// Skip this frame; capture hiccups never end the session
				log.Printf("Error reading frame: %v", err)
				continue
			}

			motionDetected, _ := a.motion.Detect(frame)

			if motionDetected {
				lastMotionTime = time.Now()

				if !activeMode {
					activeMode = true
					a.Camera().SetFPS(ActiveFPS)
					frameInterval = time.Second / time.Duration(ActiveFPS)
					ticker.Reset(frameInterval)
					log.Println("Switched to active mode")
				}
			} else if activeMode {
				if time.Since(lastMotionTime) > time.Duration(IdleTimeoutMs)*time.Millisecond {
					activeMode = false
					a.Camera().SetFPS(IdleFPS)
					frameInterval = time.Second / time.Duration(IdleFPS)
					ticker.Reset(frameInterval)
					log.Println("Switched to idle mode")
				}
			}

			if !activeMode {
				frame.Close()
				continue
			}

			hands, err := a.Detector().Detect(frame)
			frame.Close() // Done with the frame

			if err != nil {
				log.Printf("Error detecting hands: %v", err)
				continue
			}

			events := a.ProcessHands(hands)
			if len(events) > 0 {
				a.Dispatch(events)
			}
		}
	}
}

// ProcessHands runs one frame's worth of hands through classification, deck
// resolution and the control mapper, returning the events to emit. Exposed
// for tests to drive the pipeline without a live camera.
//
// When two observations resolve to the same deck in one frame, the later one
// wins; the earlier snapshot is overwritten before the mapper runs. That is
// the documented policy for misclassified duplicate hands.
func (a *App) ProcessHands(hands []detector.Hand) []control.Event {
	a.mu.RLock()
	classifier := a.classifier
	a.mu.RUnlock()

	snapshots := make(map[control.Deck]gesture.Snapshot, len(hands))

	for i := range hands {
		hand := &hands[i]

		deck, ok := control.Resolve(hand)
		if !ok {
			// Short observation: drop the hand, deck state carries over
			continue
		}

		snapshots[deck] = classifier.Classify(hand)
	}

	return a.mapper.Map(snapshots)
}

// Dispatch resolves each event's key symbol and emits it through the sink.
// Emission is best-effort: failures are logged and never retried, and the
// frame pipeline is never halted. Every event is recorded to the history with
// its emission outcome.
func (a *App) Dispatch(events []control.Event) {
	a.mu.RLock()
	keys := a.keys
	sink := a.sink
	onEvents := make([]func([]control.Event), len(a.onEvents))
	copy(onEvents, a.onEvents)
	a.mu.RUnlock()

	for _, event := range events {
		key, ok := keys.KeyFor(event)
		if !ok {
			log.Printf("No key binding for %s/%s, skipping", event.Deck, event.Action)
			continue
		}

		emitted := true
		if err := sink.Emit(key); err != nil {
			emitted = false
			log.Printf("Failed to emit key %q for %s/%s: %v", key, event.Deck, event.Action, err)
		}

		a.recordEvent(event, key, emitted)
	}

	for _, fn := range onEvents {
		fn(events)
	}
}

// recordEvent appends the event to the store-backed history.
func (a *App) recordEvent(event control.Event, key string, emitted bool) {
	if a.config.Store == nil {
		return
	}

	err := a.config.Store.Events().Record(&store.ControlEvent{
		ID:      uuid.NewString(),
		Deck:    string(event.Deck),
		Action:  string(event.Action),
		Key:     key,
		Emitted: emitted,
	})
	if err != nil {
		log.Printf("Failed to record control event: %v", err)
	}
}
