// Package app is the composition root for standups.
//
// Run wires the pieces together and blocks until the UI exits:
//
//  1. Load config from ~/.config/standups/config.toml (defaults when missing)
//  2. Open the JSON log file
//  3. Load prefs (palette, remembered speech answer)
//  4. Open the storage gateway: files, bbolt, or an in-memory demo seed
//  5. Build the speech client for recording sessions
//  6. Create the main loop and the list controller, which loads the collection
//  7. Run the TUI, pumping the main loop into it
//  8. Close the controller tree, flushing any pending save
//
// # Errors
//
// A bad config file, an unwritable log file or a storage backend that cannot
// be opened are fatal and returned from Run. A collection that fails to load
// is not: the list starts empty and the header reports the problem. Failed
// saves are retried once, logged, and shown in the header.
package app
