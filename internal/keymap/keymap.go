// Package keymap holds the semantic-action to key-symbol configuration table.
// The core emits semantic control events; this table decides which key the
// output sink injects for each one. The table is configuration, not logic:
// it can be replaced wholesale from the store or the HTTP API.
package keymap

import (
	"fmt"
	"sort"

	"github.com/renderix/deckhand/internal/control"
)

// Map binds semantic action names (e.g. "play_pause_left") to opaque key
// symbols understood by the output sink.
type Map map[string]string

// Default returns the stock Mixxx keyboard shortcut table.
func Default() Map {
	return Map{
		// Playback controls
		"play_pause_left":  "d",
		"play_pause_right": "l",
		"cue_left":         "f",
		"cue_right":        ";",

		// Crossfader nudges (left deck nudges left, right deck nudges right)
		"crossfader_nudge_left":  "g",
		"crossfader_nudge_right": "h",

		// Tempo controls
		"tempo_down_left":  "f1",
		"tempo_up_left":    "f2",
		"tempo_down_right": "f5",
		"tempo_up_right":   "f6",

		// Loop controls
		"loop_4beat_left":   "q",
		"loop_4beat_right":  "u",
		"loop_halve_left":   "w",
		"loop_halve_right":  "i",
		"loop_double_left":  "e",
		"loop_double_right": "o",

		// Hot cues
		"hotcue_1_left":  "z",
		"hotcue_1_right": "m",
		"hotcue_2_left":  "x",
		"hotcue_2_right": ",",
		"hotcue_3_left":  "c",
		"hotcue_3_right": ".",
		"hotcue_4_left":  "v",
		"hotcue_4_right": "/",

		// Bass kill
		"bass_kill_left":  "b",
		"bass_kill_right": "n",

		// Effects
		"effects_left":  "5",
		"effects_right": "0",
	}
}

// ActionName builds the table key for a deck-qualified control action.
func ActionName(deck control.Deck, action control.Action) string {
	return fmt.Sprintf("%s_%s", action, deck)
}

// KeyFor resolves the key symbol for a control event.
// Returns false when no binding exists for the action.
func (m Map) KeyFor(event control.Event) (string, bool) {
	key, ok := m[ActionName(event.Deck, event.Action)]
	return key, ok
}

// Actions returns the bound action names in sorted order.
func (m Map) Actions() []string {
	names := make([]string, 0, len(m))
	for name := range m {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Merge overlays other onto a copy of m and returns the result. Bindings in
// other win; neither input is mutated.
func (m Map) Merge(other Map) Map {
	merged := make(Map, len(m)+len(other))
	for name, key := range m {
		merged[name] = key
	}
	for name, key := range other {
		merged[name] = key
	}
	return merged
}
