// Package inkwell is the Composition Root for the inkwell persistence engine.
//
// It connects the core reconciliation logic (Domain Layer) with the two
// storage adapters (Persistence Layer) using the Hexagonal Architecture
// pattern.
//
// Philosophy:
//
// Inkwell keeps exactly one note alive across two redundant, independently
// failing backends: a fast, synchronous, best-effort key-value store and a
// durable, transactional SQLite store. Saves always land in the fast store
// first and trickle into the durable store in the background; reads resolve
// disagreements with a fixed "prefer fast" precedence. Neither backend can
// fail a save or a load; the worst either can do is contribute nothing.
//
// Features:
//
//   - **Dual-Backend Redundancy**: two adapters behind one core.Store contract.
//   - **Race-Safe Autosave**: overlapping saves stay complete, independent upserts.
//   - **Bounded Waits**: every durable-backend wait has a hard upper bound.
//   - **Soft Failures**: backend errors degrade, they never propagate.
//   - **Extensible**: custom backends plug in via `core.Store`.
//
// Usage:
//
//	// Initialize a repository with functional options
//	repo, err := inkwell.New("~/.local/share/inkwell",
//		inkwell.WithLogger(logger),
//	)
//
//	// Save and load the note
//	entry, err := repo.SaveNote(ctx, "<p>hello</p>")
//	note, err := repo.GetNote(ctx)
package inkwell
