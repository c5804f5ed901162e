// Package app wires the capture, detection, swipe, and feed components
// into the hasta detection pipeline.
package app

import (
	"log"
	"sync"

	"github.com/ayusman/hasta/internal/capture"
	"github.com/ayusman/hasta/internal/detector"
	"github.com/ayusman/hasta/internal/feed"
	"github.com/ayusman/hasta/internal/status"
	"github.com/ayusman/hasta/internal/swipe"
)

// Pipeline timing constants.
const (
	// IdleFPS is the frame rate while the scene is still.
	IdleFPS = 5
	// ActiveFPS is the frame rate during active hand tracking.
	ActiveFPS = 15
	// IdleTimeoutMs is how long the scene must stay still before the
	// pipeline drops back to idle mode.
	IdleTimeoutMs = 2000
)

// Config holds configuration options for the application.
type Config struct {
	Camera       capture.Camera
	Detector     detector.Detector
	Feed         *feed.Controller
	Reporter     status.Reporter
	Swipe        swipe.Config
	CameraID     int
	MotionThresh float64
}

// App is the application driving the frame-to-swipe pipeline.
type App struct {
	config    Config
	camera    capture.Camera
	motion    *capture.MotionGate
	detector  detector.Detector
	debouncer *swipe.Debouncer
	feed      *feed.Controller
	reporter  status.Reporter
	enabled   bool
	mu        sync.RWMutex
	stopCh    chan struct{}
	done      chan struct{}
}

// New creates a new App instance with the given configuration.
func New(config Config) *App {
	motionThreshold := config.MotionThresh
	if motionThreshold <= 0 {
		motionThreshold = 1.0 // 1% pixel change
	}

	camera := config.Camera
	if camera == nil {
		camera = capture.NewCamera(config.CameraID)
	}

	reporter := config.Reporter
	if reporter == nil {
		reporter = status.Nop{}
	}

	a := &App{
		config:    config,
		camera:    camera,
		motion:    capture.NewMotionGate(motionThreshold),
		debouncer: swipe.NewDebouncer(config.Swipe),
		feed:      config.Feed,
		reporter:  reporter,
		enabled:   true,
	}

	if config.Detector != nil {
		a.detector = config.Detector
	} else if mp, err := detector.NewMediaPipeDetector(detector.DefaultConfig()); err == nil {
		a.detector = mp
		log.Println("Using MediaPipe hand tracking")
	} else {
		log.Printf("MediaPipe not available (%v), using mock detector", err)
		a.detector = detector.NewMockDetector()
	}

	return a
}

// SetEnabled enables or disables swipe detection. Disabling also resets
// the debouncer so a stale baseline cannot fire on re-enable.
func (a *App) SetEnabled(enabled bool) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.enabled = enabled
	if !enabled {
		a.debouncer.Reset()
	}
}

// IsEnabled returns whether swipe detection is currently enabled.
func (a *App) IsEnabled() bool {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return a.enabled
}

// SetDetector sets the hand detector implementation to use.
func (a *App) SetDetector(d detector.Detector) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.detector = d
}

// Start begins the detection pipeline. Calling Start on a running app
// is a no-op.
func (a *App) Start() error {
	a.mu.Lock()
	defer a.mu.Unlock()

	if a.stopCh != nil {
		return nil
	}

	a.reporter.Report(status.Initializing)

	if err := a.camera.Open(); err != nil {
		a.reporter.Report(status.PermissionDenied)
		return err
	}

	a.camera.SetFPS(IdleFPS)

	a.stopCh = make(chan struct{})
	a.done = make(chan struct{})
	go a.runPipeline(a.stopCh, a.done)

	a.reporter.Report(status.Ready)
	log.Println("Detection pipeline started")
	return nil
}

// Stop halts the detection pipeline and releases resources. It is safe
// to call multiple times and after a failed Start.
func (a *App) Stop() {
	a.mu.Lock()

	if a.stopCh == nil {
		a.mu.Unlock()
		return
	}

	close(a.stopCh)
	a.stopCh = nil
	done := a.done
	a.mu.Unlock()

	// Wait for the pipeline goroutine before tearing down the camera
	// and detector it reads from.
	<-done

	a.mu.Lock()
	defer a.mu.Unlock()

	if err := a.camera.Close(); err != nil {
		log.Printf("Error closing camera: %v", err)
	}

	a.motion.Close()

	if a.detector != nil {
		if err := a.detector.Close(); err != nil {
			log.Printf("Error closing detector: %v", err)
		}
	}

	a.reporter.Report(status.Stopped)
	log.Println("Detection pipeline stopped")
}

// Camera returns the camera instance.
func (a *App) Camera() capture.Camera {
	return a.camera
}

// MotionGate returns the motion gate instance.
func (a *App) MotionGate() *capture.MotionGate {
	return a.motion
}

// Debouncer returns the swipe debouncer.
func (a *App) Debouncer() *swipe.Debouncer {
	return a.debouncer
}

// Feed returns the feed controller, which may be nil.
func (a *App) Feed() *feed.Controller {
	return a.feed
}

// Detector returns the hand detector.
func (a *App) Detector() detector.Detector {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return a.detector
}
