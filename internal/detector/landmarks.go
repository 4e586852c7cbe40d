// Package detector provides hand detection interfaces and types for the
// deckhand gesture pipeline.
package detector

import "math"

// Hand landmark indices following MediaPipe convention.
// See: https://developers.google.com/mediapipe/solutions/vision/hand_landmarker
const (
	Wrist        = 0
	ThumbCMC     = 1
	ThumbMCP     = 2
	ThumbIP      = 3
	ThumbTip     = 4
	IndexMCP     = 5
	IndexPIP     = 6
	IndexDIP     = 7
	IndexTip     = 8
	MiddleMCP    = 9
	MiddlePIP    = 10
	MiddleDIP    = 11
	MiddleTip    = 12
	RingMCP      = 13
	RingPIP      = 14
	RingDIP      = 15
	RingTip      = 16
	PinkyMCP     = 17
	PinkyPIP     = 18
	PinkyDIP     = 19
	PinkyTip     = 20
	NumLandmarks = 21
)

// Handedness labels as reported by the landmark model.
const (
	HandednessLeft    = "left"
	HandednessRight   = "right"
	HandednessUnknown = "unknown"
)

// Point is a 2D landmark position in pixel coordinates. Y grows downward,
// matching image coordinates.
type Point struct {
	X int `json:"x"`
	Y int `json:"y"`
}

// Hand is one detected hand: an ordered sequence of landmark points plus a
// handedness label. A well-formed observation has exactly NumLandmarks points;
// consumers must check the length before indexing by landmark constant.
type Hand struct {
	Points     []Point `json:"points"`
	Handedness string  `json:"handedness"`
	Score      float64 `json:"score"`
}

// Complete reports whether the observation carries all 21 landmarks.
func (h *Hand) Complete() bool {
	return h != nil && len(h.Points) >= NumLandmarks
}

// Distance returns the Euclidean distance between two points in pixel space.
func Distance(a, b Point) float64 {
	dx := float64(a.X - b.X)
	dy := float64(a.Y - b.Y)
	return math.Sqrt(dx*dx + dy*dy)
}
