package models

import "github.com/google/uuid"

// ensureID assigns a v4 id before insert when the database default is not
// available (SQLite).
func ensureID(id *uuid.UUID) {
	if *id == uuid.Nil {
		*id = uuid.New()
	}
}
