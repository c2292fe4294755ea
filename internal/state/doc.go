// Package state holds the last good departure list for the widget.
//
// # Overview
//
// The refresh command writes to the Store from a Bubble Tea command goroutine and
// the UI reads Snapshots from its event loop, so access is guarded by an RWMutex.
//
//	Refresh command:               UI:
//	┌─────────────────┐           ┌──────────────────┐
//	│ FetchToken()    │           │                  │
//	│ FetchDepartures │           │                  │
//	│      ↓          │           │                  │
//	│ store.Update()  │──────────→│ store.Snapshot() │
//	│ or store.Fail() │  (mutex)  │      ↓           │
//	└─────────────────┘           │ rebuild rows     │
//	                              └──────────────────┘
//
// # Update Semantics
//
//	store.Update(list)
//	→ snapshot.Departures = list
//	→ snapshot.LastError = nil, ConsecutiveFailures = 0
//	→ snapshot.Generation++
//
//	store.Fail(err)
//	→ snapshot.Departures = <unchanged>
//	→ snapshot.LastError = err, ConsecutiveFailures++
//
// A failed refresh never clears what is on screen. Generation lets the UI skip
// rebuilding rows when nothing new arrived.
//
// The zero Store is ready to use. Snapshot returns copies; the result slice is
// cloned and the error is re-wrapped so callers cannot alias stored state.
package state
