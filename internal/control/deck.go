// Package control turns per-frame gesture snapshots into debounced,
// rate-limited deck control events.
package control

// Deck identifies one of the two independent control targets.
type Deck string

const (
	DeckLeft  Deck = "left"
	DeckRight Deck = "right"
)

// Decks lists both decks in the deterministic processing order: left deck
// events are always emitted before right deck events within a frame.
var Decks = [2]Deck{DeckLeft, DeckRight}

// Action is a semantic control emitted by the mapper.
type Action string

const (
	// ActionPlayPause toggles playback on a deck. Edge-triggered on fist.
	ActionPlayPause Action = "play_pause"
	// ActionCrossfaderNudge moves the crossfader one step toward the deck's
	// side. Rate-limited while a pinch is held.
	ActionCrossfaderNudge Action = "crossfader_nudge"
)

// Event is one control decision for a frame, exposed to the output sink and
// the telemetry layer.
type Event struct {
	Deck   Deck   `json:"deck"`
	Action Action `json:"action"`
}
