// Package app is the composition root for avgang.
//
// # Overview
//
// Run wires configuration, logging, the Västtrafik client, the desktop
// surface and the Bubble Tea widget together and blocks until the user quits:
//
//	┌──────────────┐
//	│   Run()      │
//	└──────┬───────┘
//	       ├─────> config.Load()        Credentials, stop area, interval
//	       ├─────> applog.Open()        Standard logger to the log file
//	       ├─────> vasttrafik.NewClient()
//	       ├─────> desktop.Detect()     Pin the window to the desktop (X11)
//	       ├─────> prefs.Load()         Theme
//	       └─────> ui.Run()             Widget (blocks)
//
// Once runs a single cycle for `avgang once` and returns the rendered rows.
//
// # Refresh cycle
//
// Refresher.Refresh fetches a new OAuth token, then the departures for the
// configured stop area starting now. The result goes into state.Store. The
// UI calls Refresh from a tea.Cmd and schedules the next cycle only after the
// previous one returned, so cycles never overlap.
//
// # Error Handling
//
// Fatal errors (returned from Run):
//   - Missing credentials or an invalid config file
//   - The log file cannot be opened
//
// Recoverable errors (logged, the next cycle runs at the normal interval):
//   - Token or departures request failures of any kind
//   - Desktop pinning failures
//
// A failed cycle never clears the board; the store keeps the last good list
// and counts consecutive failures for the log line.
package app
