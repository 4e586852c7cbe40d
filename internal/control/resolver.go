package control

import (
	"github.com/renderix/deckhand/internal/detector"
)

// Resolve assigns a deck identity to a hand observation. The second return
// value is false when the hand must be dropped for this frame (short landmark
// set); that is missing data, not an error, and leaves deck state untouched.
//
// Two independent corrections happen here, in order:
//
//  1. Tag inversion. The landmark model labels hands from the camera's
//     mirrored point of view, so a hand tagged "left" is the operator's right
//     hand and drives the right deck, and vice versa.
//  2. Geometric fallback. When the tag is "unknown" (or absent), the thumb
//     tip is compared against the palm center, the mean X of the four finger
//     base joints: thumb left of center means the palm faces the camera with
//     the thumb on the operator's right, so the right deck; otherwise left.
func Resolve(hand *detector.Hand) (Deck, bool) {
	if !hand.Complete() {
		return "", false
	}

	switch hand.Handedness {
	case detector.HandednessLeft:
		return DeckRight, true
	case detector.HandednessRight:
		return DeckLeft, true
	}

	return resolveByGeometry(hand), true
}

// resolveByGeometry estimates the deck from landmark positions alone.
func resolveByGeometry(hand *detector.Hand) Deck {
	mcps := [4]int{detector.IndexMCP, detector.MiddleMCP, detector.RingMCP, detector.PinkyMCP}

	sumX := 0
	for _, i := range mcps {
		sumX += hand.Points[i].X
	}
	palmCenterX := float64(sumX) / float64(len(mcps))

	if float64(hand.Points[detector.ThumbTip].X) < palmCenterX {
		return DeckRight
	}
	return DeckLeft
}
