package core

// EntryID is the fixed identifier of the single persisted note.
// Exactly one entry ever exists per backend; every put is an upsert
// keyed by this ID.
const EntryID = "note"

// Entry is the central entity of the domain: the one persisted note record.
// Content is an opaque serialized-markup payload; the persistence layer
// validates none of its internal structure.
type Entry struct {
	ID      string `json:"id"`
	Content string `json:"content"`
	// UpdatedAt is milliseconds since epoch. It is stamped exactly once per
	// save by the Repository; adapters must never assign it themselves, so
	// both backends carry the identical value for a given save.
	UpdatedAt int64 `json:"updatedAt"`
}
