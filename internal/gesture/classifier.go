// Package gesture derives per-frame gesture predicates from hand landmarks.
package gesture

import (
	"github.com/renderix/deckhand/internal/detector"
)

// DefaultPinchThreshold is the maximum thumb-to-index distance, in pixels,
// that still counts as a pinch. The unit is raw pixels, not normalized to
// hand size or frame resolution, so the effective sensitivity changes with
// capture resolution. Known limitation carried over from the reference
// tuning at 640x480.
const DefaultPinchThreshold = 30.0

// minCurledFingers is how many of the four checked fingers must agree before
// a fist or open-hand call is made.
const minCurledFingers = 4

// Snapshot holds the gesture predicates derived from one hand on one frame.
// Fist and OpenHand are independent booleans: an ambiguous pose (some fingers
// curled, some extended) legitimately has both false.
type Snapshot struct {
	Fist     bool           `json:"fist"`
	OpenHand bool           `json:"open_hand"`
	Pinch    bool           `json:"pinch"`
	Position detector.Point `json:"position"`
}

// Classifier computes gesture snapshots from hand landmarks. It is stateless;
// every call looks at a single frame in isolation.
type Classifier struct {
	pinchThreshold float64
}

// NewClassifier creates a Classifier with the given pinch distance threshold
// in pixels. Values <= 0 fall back to DefaultPinchThreshold.
func NewClassifier(pinchThreshold float64) *Classifier {
	if pinchThreshold <= 0 {
		pinchThreshold = DefaultPinchThreshold
	}
	return &Classifier{pinchThreshold: pinchThreshold}
}

// PinchThreshold returns the configured pinch distance in pixels.
func (c *Classifier) PinchThreshold() float64 {
	return c.pinchThreshold
}

// fingerTips and fingerPIPs pair each checked finger tip with its middle
// (PIP) joint. The thumb is excluded; it does not curl the same way.
var (
	fingerTips = [4]int{detector.IndexTip, detector.MiddleTip, detector.RingTip, detector.PinkyTip}
	fingerPIPs = [4]int{detector.IndexPIP, detector.MiddlePIP, detector.RingPIP, detector.PinkyPIP}
)

// Classify derives the gesture snapshot for one hand. The hand must carry all
// 21 landmarks; enforcing that is the caller's contract (the resolver drops
// short observations before they reach here).
func (c *Classifier) Classify(hand *detector.Hand) Snapshot {
	curled := 0
	extended := 0
	for i := range fingerTips {
		tipY := hand.Points[fingerTips[i]].Y
		pipY := hand.Points[fingerPIPs[i]].Y
		// Image coordinates: larger Y is lower in the frame. A tip exactly
		// level with its PIP joint counts as neither curled nor extended.
		if tipY > pipY {
			curled++
		} else if tipY < pipY {
			extended++
		}
	}

	pinchDist := detector.Distance(hand.Points[detector.ThumbTip], hand.Points[detector.IndexTip])

	return Snapshot{
		Fist:     curled >= minCurledFingers,
		OpenHand: extended >= minCurledFingers,
		Pinch:    pinchDist < c.pinchThreshold,
		Position: hand.Points[detector.Wrist],
	}
}
