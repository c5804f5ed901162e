package main

import (
	"fmt"
	"log"
	"os"
	"os/exec"
	"path/filepath"
	"runtime"
	"time"

	"github.com/ayusman/hasta/internal/app"
	"github.com/ayusman/hasta/internal/feed"
	"github.com/ayusman/hasta/internal/server"
	"github.com/ayusman/hasta/internal/status"
	"github.com/ayusman/hasta/internal/store"
	"github.com/ayusman/hasta/internal/swipe"
	"github.com/ayusman/hasta/internal/tray"
)

const addr = ":8080"

func main() {
	fmt.Println("Hasta - wave through your feed")

	// Initialize the store
	homeDir, err := os.UserHomeDir()
	if err != nil {
		log.Fatalf("Failed to get home directory: %v", err)
	}

	dataDir := filepath.Join(homeDir, ".hasta")
	if err := os.MkdirAll(dataDir, 0755); err != nil {
		log.Fatalf("Failed to create data directory: %v", err)
	}

	st, err := store.New(filepath.Join(dataDir, "hasta.db"))
	if err != nil {
		log.Fatalf("Failed to initialize store: %v", err)
	}
	defer st.Close()

	panels, err := st.Panels().List()
	if err != nil {
		log.Fatalf("Failed to load panels: %v", err)
	}

	settings := st.Settings()
	swipeConfig := swipe.Config{
		Threshold: settings.GetFloat(store.SettingSwipeThreshold, swipe.DefaultThreshold),
		Cooldown:  time.Duration(settings.GetInt(store.SettingCooldownMs, int(swipe.DefaultCooldown.Milliseconds()))) * time.Millisecond,
	}

	hub := server.NewFeedHub()
	sysTray := tray.New()

	var controller *feed.Controller
	controller = feed.NewController(feed.Config{
		Panels:         panels,
		ViewportHeight: settings.GetInt(store.SettingViewportHeight, feed.DefaultViewportHeight),
		Scroller:       hub,
		OnChange: func(index int) {
			hub.NotifyActive(index)
			sysTray.SetActivePanel(index, controller.PanelCount())
		},
	})
	sysTray.SetActivePanel(0, controller.PanelCount())

	application := app.New(app.Config{
		Feed:         controller,
		Swipe:        swipeConfig,
		CameraID:     settings.GetInt(store.SettingCameraID, 0),
		Reporter:     status.Multi{&status.Log{Prefix: "[pipeline]"}, hub, sysTray},
		MotionThresh: 1.0,
	})

	// Find web directory
	webDir := findWebDir()
	if webDir != "" {
		fmt.Printf("Serving feed from: %s\n", webDir)
	}

	srv := server.New(server.Config{
		StaticDir: webDir,
		Store:     st,
		Camera:    application.Camera(),
		Feed:      controller,
		Hub:       hub,
		OnDeckChange: func() {
			fresh, err := st.Panels().List()
			if err != nil {
				log.Printf("Failed to reload panels: %v", err)
				return
			}
			controller.SetPanels(fresh)
			sysTray.SetActivePanel(controller.ActiveIndex(), len(fresh))
		},
	})

	go func() {
		fmt.Printf("Starting server on %s\n", addr)
		if err := srv.ListenAndServe(addr); err != nil {
			log.Fatalf("Server failed: %v", err)
		}
	}()

	if err := application.Start(); err != nil {
		log.Printf("Detection pipeline unavailable: %v", err)
	}

	sysTray.OnToggle(application.SetEnabled)
	sysTray.OnOpenFeed(func() { openBrowser("http://localhost" + addr) })
	sysTray.OnQuit(application.Stop)

	// Blocks until quit
	sysTray.Run()
}

// openBrowser opens the given URL in the default browser.
func openBrowser(url string) {
	var cmd *exec.Cmd
	switch runtime.GOOS {
	case "darwin":
		cmd = exec.Command("open", url)
	case "windows":
		cmd = exec.Command("rundll32", "url.dll,FileProtocolHandler", url)
	default:
		cmd = exec.Command("xdg-open", url)
	}
	if err := cmd.Start(); err != nil {
		log.Printf("Failed to open browser: %v", err)
	}
}

// findWebDir searches for the web directory in common locations.
// It checks: "web", "../web", "../../web", and ~/.hasta/web.
// Returns the first existing directory or empty string if none found.
func findWebDir() string {
	relativePaths := []string{"web", "../web", "../../web"}
	for _, p := range relativePaths {
		if info, err := os.Stat(p); err == nil && info.IsDir() {
			absPath, err := filepath.Abs(p)
			if err == nil {
				return absPath
			}
			return p
		}
	}

	homeDir, err := os.UserHomeDir()
	if err != nil {
		return ""
	}

	homeWebDir := filepath.Join(homeDir, ".hasta", "web")
	if info, err := os.Stat(homeWebDir); err == nil && info.IsDir() {
		return homeWebDir
	}

	return ""
}
