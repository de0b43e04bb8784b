package models

import (
	"time"

	"github.com/google/uuid"
)

// Folder is a named container for notes. A folder is either personal
// (OwnerID set, TeamID nil) or team-scoped (TeamID set).
//
// NoteCount is derived at query time from notes whose folder field matches;
// it is never stored authoritatively.
type Folder struct {
	// ID is the unique identifier of the folder.
	ID uuid.UUID `json:"id"`

	// Name is the display name of the folder. Notes reference folders by
	// this name in their folder field.
	Name string `json:"name"`

	// OwnerID is the owning user for personal folders.
	OwnerID int64 `json:"owner_id"`

	// TeamID is the owning team for team-scoped folders, nil otherwise.
	TeamID *uuid.UUID `json:"team_id,omitempty"`

	// NoteCount is the number of active notes currently placed in the
	// folder. Recomputed on every listing.
	NoteCount int `json:"note_count"`

	// CreatedAt is the timestamp when the folder was created.
	CreatedAt time.Time `json:"created_at"`

	// UpdatedAt is the timestamp of the last rename.
	UpdatedAt time.Time `json:"updated_at"`
}

// TableName returns the name of the database table
// associated with the Folder model.
func (f *Folder) TableName() string {
	return "folders"
}
