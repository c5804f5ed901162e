package detector

import (
	"sync"

	"gocv.io/x/gocv"
)

// MockDetector is a test implementation of the Detector interface.
// Each Detect call returns the next scripted frame result, so tests can
// replay a whole gesture (a sequence of wrist positions and detection
// gaps) without a camera.
type MockDetector struct {
	mu     sync.Mutex
	script [][]HandLandmarks
	index  int
	loop   bool
	err    error
}

// NewMockDetector creates a MockDetector with an empty script.
// With no script, Detect reports no hands.
func NewMockDetector() *MockDetector {
	return &MockDetector{}
}

// SetScript replaces the per-frame results. Each entry is the full
// Detect result for one frame; an empty entry is a no-hand frame.
func (m *MockDetector) SetScript(script [][]HandLandmarks) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.script = script
	m.index = 0
}

// SetHands configures a single result repeated for every frame.
func (m *MockDetector) SetHands(hands []HandLandmarks) {
	m.SetScript([][]HandLandmarks{hands})
	m.mu.Lock()
	m.loop = true
	m.mu.Unlock()
}

// SetLoop makes the script repeat from the beginning once exhausted.
// Without looping, Detect reports no hands past the end of the script.
func (m *MockDetector) SetLoop(loop bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.loop = loop
}

// SetError sets the error that will be returned by Detect.
func (m *MockDetector) SetError(err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.err = err
}

// Detect returns the next scripted result or the configured error.
func (m *MockDetector) Detect(frame *gocv.Mat) ([]HandLandmarks, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.err != nil {
		return nil, m.err
	}

	if len(m.script) == 0 {
		return nil, nil
	}

	if m.index >= len(m.script) {
		if !m.loop {
			return nil, nil
		}
		m.index = 0
	}

	hands := m.script[m.index]
	m.index++
	return hands, nil
}

// Close is a no-op for the mock detector.
func (m *MockDetector) Close() error {
	return nil
}

// HandAt returns a HandLandmarks with the wrist at the given normalized
// vertical position. The remaining landmarks are laid out as a rough
// open palm above the wrist; only the wrist matters for swipe tracking.
func HandAt(wristY float64) HandLandmarks {
	lm := HandLandmarks{
		Handedness: "Right",
		Score:      0.95,
	}

	lm.Points[Wrist] = Point3D{X: 0.5, Y: wristY, Z: 0.0}

	// Fingers fan out above the wrist.
	for i := 1; i < NumLandmarks; i++ {
		lm.Points[i] = Point3D{
			X: 0.35 + 0.02*float64(i%5),
			Y: wristY - 0.05*float64(1+i/5),
			Z: 0.0,
		}
	}

	return lm
}

// SwipeUpScript returns per-frame results replaying an upward hand sweep
// from startY to endY over the given number of frames.
func SwipeUpScript(startY, endY float64, frames int) [][]HandLandmarks {
	if frames < 2 {
		frames = 2
	}

	script := make([][]HandLandmarks, frames)
	step := (startY - endY) / float64(frames-1)
	for i := range script {
		script[i] = []HandLandmarks{HandAt(startY - step*float64(i))}
	}
	return script
}
