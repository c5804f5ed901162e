package detector

import (
	"errors"
	"testing"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	if cfg.MaxHands != 1 {
		t.Errorf("MaxHands = %d, want 1", cfg.MaxHands)
	}
	if cfg.MinConfidence != 0.5 {
		t.Errorf("MinConfidence = %f, want 0.5", cfg.MinConfidence)
	}
	if cfg.MinTrackingConf != 0.5 {
		t.Errorf("MinTrackingConf = %f, want 0.5", cfg.MinTrackingConf)
	}
}

func TestHandAt_WristY(t *testing.T) {
	tests := []struct {
		name   string
		wristY float64
	}{
		{name: "top of frame", wristY: 0.0},
		{name: "center", wristY: 0.5},
		{name: "bottom of frame", wristY: 1.0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			hand := HandAt(tt.wristY)
			if got := hand.WristY(); got != tt.wristY {
				t.Errorf("WristY() = %f, want %f", got, tt.wristY)
			}
		})
	}
}

func TestMockDetector_EmptyScript(t *testing.T) {
	m := NewMockDetector()
	defer m.Close()

	hands, err := m.Detect(nil)
	if err != nil {
		t.Fatalf("Detect() error = %v", err)
	}
	if len(hands) != 0 {
		t.Errorf("expected no hands, got %d", len(hands))
	}
}

func TestMockDetector_ScriptPlayback(t *testing.T) {
	m := NewMockDetector()
	defer m.Close()

	m.SetScript([][]HandLandmarks{
		{HandAt(0.5)},
		nil, // detection gap
		{HandAt(0.3)},
	})

	hands, _ := m.Detect(nil)
	if len(hands) != 1 || hands[0].WristY() != 0.5 {
		t.Errorf("frame 1: unexpected result %v", hands)
	}

	hands, _ = m.Detect(nil)
	if len(hands) != 0 {
		t.Errorf("frame 2: expected gap, got %d hands", len(hands))
	}

	hands, _ = m.Detect(nil)
	if len(hands) != 1 || hands[0].WristY() != 0.3 {
		t.Errorf("frame 3: unexpected result %v", hands)
	}

	// Past the end, no looping: no hands.
	hands, _ = m.Detect(nil)
	if len(hands) != 0 {
		t.Errorf("past end: expected no hands, got %d", len(hands))
	}
}

func TestMockDetector_Loop(t *testing.T) {
	m := NewMockDetector()
	defer m.Close()

	m.SetScript([][]HandLandmarks{{HandAt(0.7)}})
	m.SetLoop(true)

	for i := 0; i < 5; i++ {
		hands, err := m.Detect(nil)
		if err != nil {
			t.Fatalf("Detect() error = %v", err)
		}
		if len(hands) != 1 {
			t.Fatalf("iteration %d: expected 1 hand, got %d", i, len(hands))
		}
	}
}

func TestMockDetector_SetHands(t *testing.T) {
	m := NewMockDetector()
	defer m.Close()

	m.SetHands([]HandLandmarks{HandAt(0.4)})

	for i := 0; i < 3; i++ {
		hands, _ := m.Detect(nil)
		if len(hands) != 1 || hands[0].WristY() != 0.4 {
			t.Fatalf("iteration %d: unexpected result %v", i, hands)
		}
	}
}

func TestMockDetector_Error(t *testing.T) {
	m := NewMockDetector()
	defer m.Close()

	wantErr := errors.New("boom")
	m.SetError(wantErr)

	_, err := m.Detect(nil)
	if !errors.Is(err, wantErr) {
		t.Errorf("Detect() error = %v, want %v", err, wantErr)
	}
}

func TestSwipeUpScript(t *testing.T) {
	script := SwipeUpScript(0.9, 0.1, 9)

	if len(script) != 9 {
		t.Fatalf("expected 9 frames, got %d", len(script))
	}

	first := script[0][0].WristY()
	last := script[len(script)-1][0].WristY()

	if first != 0.9 {
		t.Errorf("first frame wrist Y = %f, want 0.9", first)
	}
	if last < 0.09 || last > 0.11 {
		t.Errorf("last frame wrist Y = %f, want ~0.1", last)
	}

	// Y must strictly decrease across the sweep.
	for i := 1; i < len(script); i++ {
		if script[i][0].WristY() >= script[i-1][0].WristY() {
			t.Errorf("frame %d: Y did not decrease", i)
		}
	}
}
