package app

import (
	"log"
	"time"

	"github.com/ayusman/hasta/internal/swipe"
)

// runPipeline is the main loop turning camera frames into swipe events.
//
// Pipeline logic:
//  1. Start in idle mode (5 FPS)
//  2. On scene activity, switch to active mode (15 FPS)
//  3. Run hand detection on active frames
//  4. Feed the wrist Y position (or a gap) into the debouncer
//  5. Forward emitted events to the feed controller
//  6. After 2s without activity, drop back to idle mode
//
// Frames where detection is skipped, fails, or finds no hand step the debouncer
// with an absent sample, so its baseline resets exactly as it would on
// a real detection gap.
func (a *App) runPipeline(stopCh, done chan struct{}) {
	defer close(done)

	activeMode := false
	lastMotionTime := time.Now()

	frameInterval := time.Second / time.Duration(IdleFPS)
	ticker := time.NewTicker(frameInterval)
	defer ticker.Stop()

	for {
		select {
		case <-stopCh:
			return
		case <-ticker.C:
			if !a.IsEnabled() {
				continue
			}

			frame, err := a.camera.ReadFrame()
			if err != nil {
				log.Printf("Error reading frame: %v", err)
				continue
			}

			active, _ := a.motion.Detect(frame)

			if active {
				lastMotionTime = time.Now()

				if !activeMode {
					activeMode = true
					a.camera.SetFPS(ActiveFPS)
					frameInterval = time.Second / time.Duration(ActiveFPS)
					ticker.Reset(frameInterval)
					log.Println("Switched to active mode")
				}
			} else if activeMode {
				if time.Since(lastMotionTime) > time.Duration(IdleTimeoutMs)*time.Millisecond {
					activeMode = false
					a.camera.SetFPS(IdleFPS)
					frameInterval = time.Second / time.Duration(IdleFPS)
					ticker.Reset(frameInterval)
					log.Println("Switched to idle mode")
				}
			}

			nowMs := time.Now().UnixMilli()

			if !activeMode {
				frame.Close()
				a.step(swipe.Sample{TimestampMs: nowMs})
				continue
			}

			hands, err := a.Detector().Detect(frame)
			frame.Close()

			if err != nil {
				log.Printf("Error detecting hands: %v", err)
				a.step(swipe.Sample{TimestampMs: nowMs})
				continue
			}

			if len(hands) == 0 {
				a.step(swipe.Sample{TimestampMs: nowMs})
				continue
			}

			a.step(swipe.Sample{
				TimestampMs: nowMs,
				Y:           hands[0].WristY(),
				Present:     true,
			})
		}
	}
}

// step runs one debouncer transition and forwards any emitted event to
// the feed controller.
func (a *App) step(sample swipe.Sample) {
	ev, emitted := a.debouncer.Step(sample)
	if !emitted {
		return
	}

	log.Printf("Swipe detected: %s", ev)

	if a.feed == nil {
		return
	}

	if a.feed.OnSwipe(ev) {
		log.Printf("Feed moved to panel %d/%d", a.feed.ActiveIndex()+1, a.feed.PanelCount())
	}
}
