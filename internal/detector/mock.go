package detector

import (
	"gocv.io/x/gocv"
)

// MockDetector is a test implementation of the Detector interface.
// It allows tests to control the detection results.
type MockDetector struct {
	hands []Hand
	err   error
}

// NewMockDetector creates a new MockDetector instance.
func NewMockDetector() *MockDetector {
	return &MockDetector{}
}

// SetHands sets the hands that will be returned by Detect.
func (m *MockDetector) SetHands(hands []Hand) {
	m.hands = hands
}

// SetError sets the error that will be returned by Detect.
func (m *MockDetector) SetError(err error) {
	m.err = err
}

// Detect returns the pre-configured hands or error.
func (m *MockDetector) Detect(frame *gocv.Mat) ([]Hand, error) {
	if m.err != nil {
		return nil, m.err
	}
	return m.hands, nil
}

// Close is a no-op for the mock detector.
func (m *MockDetector) Close() error {
	return nil
}

// Fixture hands below are laid out in a 640x480 pixel frame, matching the
// default capture resolution. The four finger PIP joints sit at y≈270, so a
// tip below that line reads as curled and a tip above it as extended.

// baseHand returns a hand skeleton with wrist, thumb and finger base joints
// positioned; tip positions are filled in by the specific fixtures.
func baseHand(handedness string) Hand {
	h := Hand{
		Handedness: handedness,
		Score:      0.95,
		Points:     make([]Point, NumLandmarks),
	}

	h.Points[Wrist] = Point{X: 320, Y: 400}

	// Thumb extended to the side
	h.Points[ThumbCMC] = Point{X: 350, Y: 380}
	h.Points[ThumbMCP] = Point{X: 370, Y: 350}
	h.Points[ThumbIP] = Point{X: 385, Y: 330}
	h.Points[ThumbTip] = Point{X: 400, Y: 320}

	// Finger base (MCP) and middle (PIP) joints
	h.Points[IndexMCP] = Point{X: 360, Y: 300}
	h.Points[IndexPIP] = Point{X: 362, Y: 270}
	h.Points[MiddleMCP] = Point{X: 340, Y: 295}
	h.Points[MiddlePIP] = Point{X: 340, Y: 265}
	h.Points[RingMCP] = Point{X: 320, Y: 300}
	h.Points[RingPIP] = Point{X: 318, Y: 270}
	h.Points[PinkyMCP] = Point{X: 300, Y: 305}
	h.Points[PinkyPIP] = Point{X: 296, Y: 275}

	// DIP joints between PIP and tip; refined per fixture
	h.Points[IndexDIP] = Point{X: 363, Y: 250}
	h.Points[MiddleDIP] = Point{X: 340, Y: 245}
	h.Points[RingDIP] = Point{X: 317, Y: 250}
	h.Points[PinkyDIP] = Point{X: 294, Y: 255}

	return h
}

// FistHand returns a hand with all four finger tips curled below their PIP
// joints.
func FistHand(handedness string) Hand {
	h := baseHand(handedness)

	h.Points[IndexTip] = Point{X: 358, Y: 320}
	h.Points[MiddleTip] = Point{X: 338, Y: 318}
	h.Points[RingTip] = Point{X: 318, Y: 320}
	h.Points[PinkyTip] = Point{X: 298, Y: 322}

	h.Points[IndexDIP] = Point{X: 360, Y: 295}
	h.Points[MiddleDIP] = Point{X: 339, Y: 292}
	h.Points[RingDIP] = Point{X: 318, Y: 296}
	h.Points[PinkyDIP] = Point{X: 297, Y: 300}

	return h
}

// OpenHand returns a hand with all four finger tips extended above their PIP
// joints.
func OpenHand(handedness string) Hand {
	h := baseHand(handedness)

	h.Points[IndexTip] = Point{X: 365, Y: 200}
	h.Points[MiddleTip] = Point{X: 340, Y: 190}
	h.Points[RingTip] = Point{X: 316, Y: 200}
	h.Points[PinkyTip] = Point{X: 292, Y: 215}

	// Thumb swings wide on an open palm
	h.Points[ThumbTip] = Point{X: 430, Y: 300}

	return h
}

// PinchHand returns a hand with the index tip touching the thumb tip while
// the remaining fingers stay extended. The pose reads as neither fist nor
// open hand.
func PinchHand(handedness string) Hand {
	h := baseHand(handedness)

	h.Points[ThumbTip] = Point{X: 400, Y: 300}
	h.Points[IndexTip] = Point{X: 410, Y: 315}
	h.Points[IndexDIP] = Point{X: 390, Y: 295}

	h.Points[MiddleTip] = Point{X: 340, Y: 190}
	h.Points[RingTip] = Point{X: 316, Y: 200}
	h.Points[PinkyTip] = Point{X: 292, Y: 215}

	return h
}

// AmbiguousHand returns a half-curled pose: index and middle extended, ring
// and pinky curled. Neither fist nor open hand should match.
func AmbiguousHand(handedness string) Hand {
	h := baseHand(handedness)

	h.Points[IndexTip] = Point{X: 365, Y: 200}
	h.Points[MiddleTip] = Point{X: 340, Y: 190}
	h.Points[RingTip] = Point{X: 318, Y: 320}
	h.Points[PinkyTip] = Point{X: 298, Y: 322}

	return h
}
