// Package state shares persistence health between the save pipeline and the UI.
//
// # Overview
//
// Saves run on the debouncer's clock goroutine while the UI renders on its own
// loop. Store is the coordination point: the saver records every outcome and
// the status line reads a Snapshot on each redraw.
//
//	Producer (saver):              Consumer (UI):
//	┌────────────────┐            ┌──────────────────┐
//	│ store.Save()   │            │                  │
//	│      ↓         │            │                  │
//	│ RecordSave()   │───────────→│ store.Snapshot() │
//	│                │  (mutex)   │      ↓           │
//	│                │            │  status line     │
//	└────────────────┘            └──────────────────┘
//
// # Update Semantics
//
// RecordSave(nil) stamps LastSaved and clears the failure streak.
// RecordSave(err) keeps LastSaved, stores the error and bumps
// ConsecutiveFailures. RecordLoad records the one-time startup load result;
// a failed load is a warning, the application carries on with an empty
// collection.
//
// # Testing Considerations
//
// The zero Store is ready to use. Pass a clock to stamp deterministic times:
//
//	store := &state.Store{Now: manual.Now}
package state
