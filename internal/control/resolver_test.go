package control

import (
	"testing"

	"github.com/renderix/deckhand/internal/detector"
)

func TestResolve_TagInversion(t *testing.T) {
	t.Run("left tag resolves to right deck", func(t *testing.T) {
		hand := detector.OpenHand(detector.HandednessLeft)
		deck, ok := Resolve(&hand)
		if !ok {
			t.Fatal("expected hand to resolve")
		}
		if deck != DeckRight {
			t.Errorf("expected right deck, got %q", deck)
		}
	})

	t.Run("right tag resolves to left deck", func(t *testing.T) {
		hand := detector.OpenHand(detector.HandednessRight)
		deck, ok := Resolve(&hand)
		if !ok {
			t.Fatal("expected hand to resolve")
		}
		if deck != DeckLeft {
			t.Errorf("expected left deck, got %q", deck)
		}
	})

	t.Run("both tags in one frame resolve to distinct decks", func(t *testing.T) {
		left := detector.OpenHand(detector.HandednessLeft)
		right := detector.OpenHand(detector.HandednessRight)

		deckA, okA := Resolve(&left)
		deckB, okB := Resolve(&right)

		if !okA || !okB {
			t.Fatal("expected both hands to resolve")
		}
		if deckA == deckB {
			t.Errorf("expected distinct decks, both resolved to %q", deckA)
		}
	})
}

func TestResolve_GeometricFallback(t *testing.T) {
	// untaggedHand builds a minimal observation with the thumb tip and the
	// four finger base joints at controlled X positions.
	untaggedHand := func(thumbX int, mcpXs [4]int) detector.Hand {
		h := detector.Hand{
			Handedness: detector.HandednessUnknown,
			Points:     make([]detector.Point, detector.NumLandmarks),
		}
		h.Points[detector.ThumbTip] = detector.Point{X: thumbX, Y: 300}
		h.Points[detector.IndexMCP] = detector.Point{X: mcpXs[0], Y: 300}
		h.Points[detector.MiddleMCP] = detector.Point{X: mcpXs[1], Y: 295}
		h.Points[detector.RingMCP] = detector.Point{X: mcpXs[2], Y: 300}
		h.Points[detector.PinkyMCP] = detector.Point{X: mcpXs[3], Y: 305}
		return h
	}

	t.Run("thumb left of palm center resolves to right deck", func(t *testing.T) {
		hand := untaggedHand(200, [4]int{300, 320, 340, 360})
		deck, ok := Resolve(&hand)
		if !ok {
			t.Fatal("expected hand to resolve")
		}
		if deck != DeckRight {
			t.Errorf("expected right deck, got %q", deck)
		}
	})

	t.Run("thumb right of palm center resolves to left deck", func(t *testing.T) {
		hand := untaggedHand(450, [4]int{300, 320, 340, 360})
		deck, ok := Resolve(&hand)
		if !ok {
			t.Fatal("expected hand to resolve")
		}
		if deck != DeckLeft {
			t.Errorf("expected left deck, got %q", deck)
		}
	})

	t.Run("thumb exactly at palm center resolves to left deck", func(t *testing.T) {
		hand := untaggedHand(330, [4]int{300, 320, 340, 360})
		deck, ok := Resolve(&hand)
		if !ok {
			t.Fatal("expected hand to resolve")
		}
		if deck != DeckLeft {
			t.Errorf("expected left deck at the boundary, got %q", deck)
		}
	})

	t.Run("empty tag uses the fallback", func(t *testing.T) {
		hand := untaggedHand(200, [4]int{300, 320, 340, 360})
		hand.Handedness = ""
		deck, ok := Resolve(&hand)
		if !ok {
			t.Fatal("expected hand to resolve")
		}
		if deck != DeckRight {
			t.Errorf("expected right deck, got %q", deck)
		}
	})
}

func TestResolve_ShortObservation(t *testing.T) {
	t.Run("fewer than 21 landmarks is dropped", func(t *testing.T) {
		hand := detector.Hand{
			Handedness: detector.HandednessLeft,
			Points:     make([]detector.Point, detector.NumLandmarks-1),
		}
		if _, ok := Resolve(&hand); ok {
			t.Error("expected short observation to be dropped")
		}
	})

	t.Run("empty observation is dropped", func(t *testing.T) {
		hand := detector.Hand{Handedness: detector.HandednessRight}
		if _, ok := Resolve(&hand); ok {
			t.Error("expected empty observation to be dropped")
		}
	})
}
