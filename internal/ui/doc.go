// Package ui provides the terminal user interface for standups.
//
// The UI is a Bubble Tea program with no state of its own beyond cursors and
// the text input. Every frame is rendered from the controller tree owned by
// list.Controller, and the active screen is derived from its destinations:
//
//   - Standups: the collection, one row per standup
//   - Form: the add or edit form (list.Adding or detail.Editing)
//   - Standup: info and meeting history (list.Detail)
//   - Meeting: a recorded meeting and its transcript (detail.ViewingMeeting)
//   - Recording: the running meeting timer (detail.Recording)
//
// Confirmations such as deleting a standup or ending a meeting early are
// alerts drawn over the screen while the matching destination is set.
//
// # Event Flow
//
//  1. Run creates the program and pumps the main loop into it
//  2. Timer and transcriber callbacks queued on the loop arrive as
//     dispatchMsg and run inside Update
//  3. Key presses call controller operations directly
//  4. A periodic tick refreshes the save status shown in the header
//  5. Context cancellation shuts the program down
//
// # Key Bindings
//
//   - a: Add a standup
//   - enter: Open the selected standup or meeting
//   - e: Edit the open standup
//   - s: Start a meeting
//   - n: Next speaker
//   - x: End the meeting early, or delete the selected meeting
//   - D: Delete the open standup
//   - T: Cycle the palette
//   - ?: Help
package ui
