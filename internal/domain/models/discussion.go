package models

import (
	"time"
)

// Discussion anchors one computation tree on a globally unique starting
// number. Operations reference it by ID; the discussion itself is not a
// node of the tree.
type Discussion struct {
	ID             string    `json:"id" db:"id"`
	StartingNumber float64   `json:"starting_number" db:"starting_number"`
	AuthorID       string    `json:"author_id" db:"author_id"`
	CreatedAt      time.Time `json:"created_at" db:"created_at"`

	// Operations is populated for single-discussion reads and listings,
	// ordered oldest-first. Not stored on the discussion row.
	Operations []Operation `json:"operations"`
}
