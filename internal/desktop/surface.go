// Package desktop pins the widget's terminal window to the desktop background.
package desktop

import (
	"log"
	"os"
	"strconv"
	"strings"
)

// Widget geometry and opacity applied to the hosting window.
const (
	WidgetWidth   = 400
	WidgetHeight  = 200
	WidgetOpacity = 0.9
)

// Surface abstracts the window-system operations the widget needs.
type Surface interface {
	// PinToDesktopBackground makes the window borderless, translucent and keeps
	// it below normal application windows.
	PinToDesktopBackground() error
	Close() error
	Name() string
}

// Detect returns the best Surface for the current session. When the terminal
// window cannot be addressed it falls back to a surface that leaves the window
// alone.
func Detect() Surface {
	display := strings.TrimSpace(os.Getenv("DISPLAY"))
	windowID, ok := parseWindowID(os.Getenv("WINDOWID"))
	if display == "" || !ok {
		return plainSurface{}
	}
	s, err := newX11Surface(windowID)
	if err != nil {
		log.Printf("x11 surface unavailable, using plain window: %v", err)
		return plainSurface{}
	}
	return s
}

// parseWindowID reads the X11 window id exported by most terminal emulators.
func parseWindowID(raw string) (uint32, bool) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return 0, false
	}
	id, err := strconv.ParseUint(raw, 0, 32)
	if err != nil || id == 0 {
		return 0, false
	}
	return uint32(id), true
}

// plainSurface is used where there is no desktop layer to pin to. The window
// stays a normal top-level window.
type plainSurface struct{}

func (plainSurface) PinToDesktopBackground() error { return nil }
func (plainSurface) Close() error                  { return nil }
func (plainSurface) Name() string                  { return "plain" }
