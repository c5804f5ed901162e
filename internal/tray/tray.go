// Package tray provides the system tray menu for the hasta feed daemon.
package tray

import (
	"fmt"
	"sync"

	"github.com/getlantern/systray"
)

// Tray represents the system tray application.
type Tray struct {
	onToggle   func(enabled bool)
	onOpenFeed func()
	onQuit     func()
	enabled    bool
	mu         sync.RWMutex

	// Menu items stored for later updates
	menuToggle *systray.MenuItem
	menuPanel  *systray.MenuItem
	menuStatus *systray.MenuItem
}

// New creates a new Tray instance with detection enabled by default.
func New() *Tray {
	return &Tray{
		enabled: true,
	}
}

// OnToggle sets the callback invoked when detection is toggled.
func (t *Tray) OnToggle(fn func(enabled bool)) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.onToggle = fn
}

// OnOpenFeed sets the callback invoked when the open-feed item is clicked.
func (t *Tray) OnOpenFeed(fn func()) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.onOpenFeed = fn
}

// OnQuit sets the callback invoked when the quit item is clicked.
func (t *Tray) OnQuit(fn func()) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.onQuit = fn
}

// Run starts the system tray application.
// This function blocks until systray.Quit() is called.
func (t *Tray) Run() {
	systray.Run(t.onReady, t.onExit)
}

// onReady is called when the system tray is ready.
// It sets up the menu structure.
func (t *Tray) onReady() {
	systray.SetTitle("Hasta")
	systray.SetTooltip("Hasta hand-swipe feed")

	t.menuToggle = systray.AddMenuItem("● Detection on", "Toggle swipe detection")
	systray.AddSeparator()

	t.menuPanel = systray.AddMenuItem("Panel: –", "Active feed panel")
	t.menuPanel.Disable()

	t.menuStatus = systray.AddMenuItem("Status: initializing", "Pipeline status")
	t.menuStatus.Disable()
	systray.AddSeparator()

	menuOpenFeed := systray.AddMenuItem("Open Feed...", "Open the feed in a browser")
	systray.AddSeparator()

	menuQuit := systray.AddMenuItem("Quit", "Quit Hasta")

	// Handle menu item clicks in a separate goroutine
	go func() {
		for {
			select {
			case <-t.menuToggle.ClickedCh:
				t.handleToggle()
			case <-menuOpenFeed.ClickedCh:
				t.handleOpenFeed()
			case <-menuQuit.ClickedCh:
				t.handleQuit()
				return
			}
		}
	}()
}

// onExit is called when the system tray is about to exit.
func (t *Tray) onExit() {
}

// handleToggle handles the toggle menu item click.
func (t *Tray) handleToggle() {
	t.mu.Lock()
	t.enabled = !t.enabled
	enabled := t.enabled

	if enabled {
		t.menuToggle.SetTitle("● Detection on")
	} else {
		t.menuToggle.SetTitle("○ Detection off")
	}

	callback := t.onToggle
	t.mu.Unlock()

	// Call the callback outside the lock to prevent deadlocks
	if callback != nil {
		callback(enabled)
	}
}

// handleOpenFeed handles the open-feed menu item click.
func (t *Tray) handleOpenFeed() {
	t.mu.RLock()
	callback := t.onOpenFeed
	t.mu.RUnlock()

	if callback != nil {
		callback()
	}
}

// handleQuit handles the quit menu item click.
func (t *Tray) handleQuit() {
	t.mu.RLock()
	callback := t.onQuit
	t.mu.RUnlock()

	if callback != nil {
		callback()
	}

	systray.Quit()
}

// SetActivePanel updates the active panel display in the menu.
func (t *Tray) SetActivePanel(index, count int) {
	t.mu.RLock()
	defer t.mu.RUnlock()

	if t.menuPanel != nil {
		t.menuPanel.SetTitle(fmt.Sprintf("Panel: %d/%d", index+1, count))
	}
}

// Report updates the status line in the menu. Implements
// status.Reporter.
func (t *Tray) Report(message string) {
	t.mu.RLock()
	defer t.mu.RUnlock()

	if t.menuStatus != nil {
		t.menuStatus.SetTitle("Status: " + message)
	}
}

// IsEnabled returns the current enabled state.
func (t *Tray) IsEnabled() bool {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.enabled
}
