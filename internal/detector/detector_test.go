package detector

import (
	"errors"
	"math"
	"testing"
)

func TestDistance(t *testing.T) {
	t.Run("3-4-5 triangle", func(t *testing.T) {
		d := Distance(Point{X: 0, Y: 0}, Point{X: 3, Y: 4})
		if math.Abs(d-5.0) > 1e-9 {
			t.Errorf("expected distance 5.0, got %f", d)
		}
	})

	t.Run("identical points", func(t *testing.T) {
		d := Distance(Point{X: 10, Y: 20}, Point{X: 10, Y: 20})
		if d != 0 {
			t.Errorf("expected distance 0, got %f", d)
		}
	})

	t.Run("symmetric", func(t *testing.T) {
		a := Point{X: 7, Y: 2}
		b := Point{X: 1, Y: 9}
		if Distance(a, b) != Distance(b, a) {
			t.Error("distance should be symmetric")
		}
	})
}

func TestHand_Complete(t *testing.T) {
	t.Run("nil hand", func(t *testing.T) {
		var h *Hand
		if h.Complete() {
			t.Error("nil hand should not be complete")
		}
	})

	t.Run("too few points", func(t *testing.T) {
		h := &Hand{Points: make([]Point, NumLandmarks-1)}
		if h.Complete() {
			t.Error("hand with 20 points should not be complete")
		}
	})

	t.Run("full set", func(t *testing.T) {
		h := &Hand{Points: make([]Point, NumLandmarks)}
		if !h.Complete() {
			t.Error("hand with 21 points should be complete")
		}
	})
}

func TestJSONHand_ToHand(t *testing.T) {
	t.Run("scales normalized coordinates to pixels", func(t *testing.T) {
		jh := jsonHand{
			Handedness: "Left",
			Score:      0.9,
			Points: []jsonPoint{
				{X: 0.5, Y: 0.5},
				{X: 0.0, Y: 0.0},
				{X: 1.0, Y: 1.0},
			},
		}

		hand := jh.toHand(640, 480)

		if hand.Points[0].X != 320 || hand.Points[0].Y != 240 {
			t.Errorf("expected (320,240), got (%d,%d)", hand.Points[0].X, hand.Points[0].Y)
		}
		if hand.Points[1].X != 0 || hand.Points[1].Y != 0 {
			t.Errorf("expected (0,0), got (%d,%d)", hand.Points[1].X, hand.Points[1].Y)
		}
		// Full-scale coordinates clamp to the last valid pixel
		if hand.Points[2].X != 639 || hand.Points[2].Y != 479 {
			t.Errorf("expected (639,479), got (%d,%d)", hand.Points[2].X, hand.Points[2].Y)
		}
	})

	t.Run("lowercases handedness labels", func(t *testing.T) {
		jh := jsonHand{Handedness: "Right"}
		if got := jh.toHand(640, 480).Handedness; got != HandednessRight {
			t.Errorf("expected %q, got %q", HandednessRight, got)
		}
	})

	t.Run("unrecognized label becomes unknown", func(t *testing.T) {
		jh := jsonHand{Handedness: "Both"}
		if got := jh.toHand(640, 480).Handedness; got != HandednessUnknown {
			t.Errorf("expected %q, got %q", HandednessUnknown, got)
		}
	})

	t.Run("out-of-range coordinates clamp to frame", func(t *testing.T) {
		jh := jsonHand{Points: []jsonPoint{{X: -0.2, Y: 1.4}}}
		hand := jh.toHand(640, 480)
		if hand.Points[0].X != 0 || hand.Points[0].Y != 479 {
			t.Errorf("expected (0,479), got (%d,%d)", hand.Points[0].X, hand.Points[0].Y)
		}
	})
}

func TestMockDetector(t *testing.T) {
	t.Run("returns empty hands by default", func(t *testing.T) {
		mock := NewMockDetector()

		hands, err := mock.Detect(nil)

		if err != nil {
			t.Errorf("unexpected error: %v", err)
		}
		if hands != nil {
			t.Errorf("expected nil hands, got %v", hands)
		}
	})

	t.Run("returns configured hands", func(t *testing.T) {
		mock := NewMockDetector()
		mock.SetHands([]Hand{FistHand(HandednessLeft), OpenHand(HandednessRight)})

		hands, err := mock.Detect(nil)

		if err != nil {
			t.Errorf("unexpected error: %v", err)
		}
		if len(hands) != 2 {
			t.Errorf("expected 2 hands, got %d", len(hands))
		}
	})

	t.Run("returns configured error", func(t *testing.T) {
		mock := NewMockDetector()

		expectedErr := errors.New("detection failed")
		mock.SetError(expectedErr)

		hands, err := mock.Detect(nil)

		if err != expectedErr {
			t.Errorf("expected error %v, got %v", expectedErr, err)
		}
		if hands != nil {
			t.Errorf("expected nil hands when error is set, got %v", hands)
		}
	})

	t.Run("implements Detector interface", func(t *testing.T) {
		var _ Detector = (*MockDetector)(nil)
	})
}

func TestFixtureHands(t *testing.T) {
	t.Run("fist has all four tips below PIP joints", func(t *testing.T) {
		h := FistHand(HandednessLeft)
		tips := []int{IndexTip, MiddleTip, RingTip, PinkyTip}
		pips := []int{IndexPIP, MiddlePIP, RingPIP, PinkyPIP}
		for i := range tips {
			if h.Points[tips[i]].Y <= h.Points[pips[i]].Y {
				t.Errorf("tip %d should be below its PIP joint", tips[i])
			}
		}
	})

	t.Run("open hand has all four tips above PIP joints", func(t *testing.T) {
		h := OpenHand(HandednessLeft)
		tips := []int{IndexTip, MiddleTip, RingTip, PinkyTip}
		pips := []int{IndexPIP, MiddlePIP, RingPIP, PinkyPIP}
		for i := range tips {
			if h.Points[tips[i]].Y >= h.Points[pips[i]].Y {
				t.Errorf("tip %d should be above its PIP joint", tips[i])
			}
		}
	})

	t.Run("pinch hand has thumb and index tips within 30px", func(t *testing.T) {
		h := PinchHand(HandednessLeft)
		d := Distance(h.Points[ThumbTip], h.Points[IndexTip])
		if d >= 30.0 {
			t.Errorf("expected thumb-index distance < 30, got %f", d)
		}
	})

	t.Run("non-pinch fixtures keep thumb and index apart", func(t *testing.T) {
		for _, h := range []Hand{FistHand(HandednessLeft), OpenHand(HandednessLeft)} {
			d := Distance(h.Points[ThumbTip], h.Points[IndexTip])
			if d < 30.0 {
				t.Errorf("expected thumb-index distance >= 30, got %f", d)
			}
		}
	})

	t.Run("fixtures carry a full landmark set", func(t *testing.T) {
		hands := []Hand{
			FistHand(HandednessLeft),
			OpenHand(HandednessRight),
			PinchHand(HandednessUnknown),
			AmbiguousHand(HandednessLeft),
		}
		for i, h := range hands {
			if !h.Complete() {
				t.Errorf("fixture %d missing landmarks: %d", i, len(h.Points))
			}
		}
	})
}
