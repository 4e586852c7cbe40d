package control

import (
	"time"

	"github.com/renderix/deckhand/internal/gesture"
)

// DefaultPinchInterval is the minimum spacing between repeated crossfader
// nudges while a pinch is held: sustained pinches are throttled to at most
// five nudges per second so the downstream key sink is not flooded.
const DefaultPinchInterval = 200 * time.Millisecond

// State is the persistent per-deck control state. It is the only state the
// mapper carries between frames: PrevFist mirrors the previous frame's fist
// predicate and PinchActive mirrors the previous frame's pinch predicate.
// Trigger decisions never look further back than that.
type State struct {
	PrevFist      bool
	PinchActive   bool
	LastPinchEmit time.Time
}

// Mapper converts per-deck gesture snapshots into control events. Each deck's
// state machine is fully independent. The mapper is written for the
// single-threaded frame loop; it is not safe for concurrent use.
type Mapper struct {
	pinchInterval time.Duration
	now           func() time.Time
	states        map[Deck]*State
}

// NewMapper creates a Mapper with the given pinch repeat interval. Intervals
// <= 0 fall back to DefaultPinchInterval. Time is read through the injected
// clock at emission time, never from a background timer.
func NewMapper(pinchInterval time.Duration, now func() time.Time) *Mapper {
	if pinchInterval <= 0 {
		pinchInterval = DefaultPinchInterval
	}
	if now == nil {
		now = time.Now
	}
	return &Mapper{
		pinchInterval: pinchInterval,
		now:           now,
		states: map[Deck]*State{
			DeckLeft:  {},
			DeckRight: {},
		},
	}
}

// State returns a copy of the current control state for a deck.
func (m *Mapper) State(deck Deck) State {
	if s, ok := m.states[deck]; ok {
		return *s
	}
	return State{}
}

// Reset clears all per-deck state back to session-start values.
func (m *Mapper) Reset() {
	for _, s := range m.states {
		*s = State{}
	}
}

// Map advances every deck's state machine with the frame's snapshots and
// returns the control events to emit. Decks missing from the map had no
// resolved hand this frame; their state carries over unchanged and they emit
// nothing. Event order is deterministic: left deck before right deck,
// play/pause before crossfader nudge within a deck.
func (m *Mapper) Map(snapshots map[Deck]gesture.Snapshot) []Event {
	var events []Event
	for _, deck := range Decks {
		snap, ok := snapshots[deck]
		if !ok {
			continue
		}
		events = append(events, m.step(deck, snap)...)
	}
	return events
}

// step advances one deck's state machine by one frame.
func (m *Mapper) step(deck Deck, snap gesture.Snapshot) []Event {
	state := m.states[deck]
	var events []Event

	// Play/pause fires on the rising edge of fist only; a held fist must not
	// repeat-fire. PrevFist is updated unconditionally.
	if snap.Fist && !state.PrevFist {
		events = append(events, Event{Deck: deck, Action: ActionPlayPause})
	}
	state.PrevFist = snap.Fist

	// Pinch drives a three-state machine: idle, newly active, held.
	switch {
	case snap.Pinch && !state.PinchActive:
		// Rising edge: nudge immediately and start the repeat clock.
		events = append(events, Event{Deck: deck, Action: ActionCrossfaderNudge})
		state.PinchActive = true
		state.LastPinchEmit = m.now()

	case snap.Pinch && state.PinchActive:
		// Held: repeat only after the throttle interval has fully elapsed.
		now := m.now()
		if now.Sub(state.LastPinchEmit) > m.pinchInterval {
			events = append(events, Event{Deck: deck, Action: ActionCrossfaderNudge})
			state.LastPinchEmit = now
		}

	case !snap.Pinch && state.PinchActive:
		// Falling edge: release without emitting.
		state.PinchActive = false
	}

	return events
}
