package keymap

import (
	"testing"

	"github.com/renderix/deckhand/internal/control"
)

func TestDefault_CoreBindings(t *testing.T) {
	m := Default()

	cases := []struct {
		event control.Event
		key   string
	}{
		{control.Event{Deck: control.DeckLeft, Action: control.ActionPlayPause}, "d"},
		{control.Event{Deck: control.DeckRight, Action: control.ActionPlayPause}, "l"},
		{control.Event{Deck: control.DeckLeft, Action: control.ActionCrossfaderNudge}, "g"},
		{control.Event{Deck: control.DeckRight, Action: control.ActionCrossfaderNudge}, "h"},
	}

	for _, tc := range cases {
		key, ok := m.KeyFor(tc.event)
		if !ok {
			t.Errorf("expected binding for %s/%s", tc.event.Deck, tc.event.Action)
			continue
		}
		if key != tc.key {
			t.Errorf("%s/%s: expected key %q, got %q", tc.event.Deck, tc.event.Action, tc.key, key)
		}
	}
}

func TestActionName(t *testing.T) {
	name := ActionName(control.DeckLeft, control.ActionPlayPause)
	if name != "play_pause_left" {
		t.Errorf("expected %q, got %q", "play_pause_left", name)
	}

	name = ActionName(control.DeckRight, control.ActionCrossfaderNudge)
	if name != "crossfader_nudge_right" {
		t.Errorf("expected %q, got %q", "crossfader_nudge_right", name)
	}
}

func TestKeyFor_MissingBinding(t *testing.T) {
	m := Map{}
	if _, ok := m.KeyFor(control.Event{Deck: control.DeckLeft, Action: control.ActionPlayPause}); ok {
		t.Error("expected no binding in an empty map")
	}
}

func TestMerge(t *testing.T) {
	base := Default()
	merged := base.Merge(Map{"play_pause_left": "p", "custom_action": "k"})

	if merged["play_pause_left"] != "p" {
		t.Errorf("expected override to win, got %q", merged["play_pause_left"])
	}
	if merged["custom_action"] != "k" {
		t.Errorf("expected new binding to be present, got %q", merged["custom_action"])
	}
	if merged["play_pause_right"] != "l" {
		t.Errorf("expected base binding to survive, got %q", merged["play_pause_right"])
	}
	if base["play_pause_left"] != "d" {
		t.Error("merge must not mutate the base map")
	}
}

func TestActions_Sorted(t *testing.T) {
	names := Default().Actions()
	for i := 1; i < len(names); i++ {
		if names[i-1] >= names[i] {
			t.Fatalf("actions not sorted: %q before %q", names[i-1], names[i])
		}
	}
}
