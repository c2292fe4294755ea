// Package ui renders the departure board as a Bubble Tea program.
//
// # Layout
//
// The board is a 46x12 cell panel: a header with the stop name, up to ten
// departure rows and a footer showing when data was last fetched. A smaller
// terminal shrinks the panel and drops rows from the bottom. Each row reads
//
//	linje 16 till Marklandsgatan Läge A 14:05
//
// with the line, destination, platform and time columns padded to fixed
// widths. An empty response renders the single row "No departures found."
// and a departure whose estimated time cannot be parsed shows "Unknown time".
//
// # Refresh cycle
//
// Init starts the first refresh immediately. When a refresh finishes the
// model schedules exactly one tea.Tick for the next cycle, so refreshes never
// overlap. The rows are rebuilt only when state.Store reports a newer
// successful fetch; a failed cycle leaves the board as it was.
//
// # Moving the panel
//
// Pressing M toggles drag mode. While it is on, pressing the left mouse button
// on the panel and dragging moves it by the pointer delta; releasing ends the
// drag. The panel always stays inside the terminal. Outside drag mode mouse
// input is ignored.
//
// # Key Bindings
//
//   - M: Toggle drag to move
//   - T: Cycle theme (Nightfox, Kanagawa, Slate)
//   - h or ?: Toggle help
//   - q or Ctrl+C: Quit
package ui
