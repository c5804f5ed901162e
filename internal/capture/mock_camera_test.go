package capture

import (
	"errors"
	"testing"

	"gocv.io/x/gocv"
)

func TestMockCamera_NotOpen(t *testing.T) {
	c := NewMockCamera(nil, false)

	if c.IsOpen() {
		t.Error("camera should not be open before Open")
	}

	_, err := c.ReadFrame()
	if !errors.Is(err, ErrCameraNotOpen) {
		t.Errorf("ReadFrame() error = %v, want ErrCameraNotOpen", err)
	}
}

func TestMockCamera_Playback(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping test that requires GoCV Mat creation")
	}

	frame1 := gocv.NewMatWithSize(480, 640, gocv.MatTypeCV8UC3)
	defer frame1.Close()
	frame2 := gocv.NewMatWithSize(480, 640, gocv.MatTypeCV8UC3)
	defer frame2.Close()

	c := NewMockCamera([]*gocv.Mat{&frame1, &frame2}, false)
	if err := c.Open(); err != nil {
		t.Fatalf("Open() error = %v", err)
	}
	defer c.Close()

	for i := 0; i < 2; i++ {
		got, err := c.ReadFrame()
		if err != nil {
			t.Fatalf("frame %d: ReadFrame() error = %v", i, err)
		}
		got.Close()
	}

	// Non-looping playback runs out
	if _, err := c.ReadFrame(); err == nil {
		t.Error("expected error past end of non-looping sequence")
	}
}

func TestMockCamera_Loop(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping test that requires GoCV Mat creation")
	}

	frame := gocv.NewMatWithSize(480, 640, gocv.MatTypeCV8UC3)
	defer frame.Close()

	c := NewMockCamera([]*gocv.Mat{&frame}, true)
	if err := c.Open(); err != nil {
		t.Fatalf("Open() error = %v", err)
	}
	defer c.Close()

	for i := 0; i < 5; i++ {
		got, err := c.ReadFrame()
		if err != nil {
			t.Fatalf("iteration %d: ReadFrame() error = %v", i, err)
		}
		got.Close()
	}
}

func TestMockCamera_SetFPS(t *testing.T) {
	c := NewMockCamera(nil, false)

	if c.FPS() != DefaultFPS {
		t.Errorf("FPS() = %d, want %d", c.FPS(), DefaultFPS)
	}

	c.SetFPS(15)
	if c.FPS() != 15 {
		t.Errorf("FPS() = %d, want 15", c.FPS())
	}

	c.SetFPS(0)
	if c.FPS() != 15 {
		t.Errorf("zero FPS should be ignored, got %d", c.FPS())
	}
}

func TestMockCamera_Reset(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping test that requires GoCV Mat creation")
	}

	frame := gocv.NewMatWithSize(480, 640, gocv.MatTypeCV8UC3)
	defer frame.Close()

	c := NewMockCamera([]*gocv.Mat{&frame}, false)
	c.Open()
	defer c.Close()

	got, err := c.ReadFrame()
	if err != nil {
		t.Fatalf("ReadFrame() error = %v", err)
	}
	got.Close()

	c.Reset()

	got, err = c.ReadFrame()
	if err != nil {
		t.Fatalf("ReadFrame() after Reset error = %v", err)
	}
	got.Close()
}
