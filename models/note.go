package models

import (
	"time"

	"github.com/google/uuid"
)

// NoteState describes where a note currently sits in its lifecycle.
// A permanently deleted note has no state: the row is removed from storage.
type NoteState string

const (
	// StateActive marks a live note visible in regular listings.
	StateActive NoteState = "active"

	// StateTrashed marks a soft-deleted note. Trashed notes keep their
	// content and can be restored until the retention window expires.
	StateTrashed NoteState = "trashed"
)

// Note is the primary persistence model of the service. A note belongs to a
// single owner and may additionally be attached to a team, in which case team
// roles govern access instead of direct shares.
type Note struct {
	// ID is the unique identifier of the note.
	ID uuid.UUID `json:"id"`

	// OwnerID is the user who created the note. Immutable after creation.
	OwnerID int64 `json:"owner_id"`

	// Title is the human-readable name of the note.
	Title string `json:"title"`

	// Content is opaque rich-text markup produced by an external editor.
	// The server stores it verbatim and never parses it.
	Content string `json:"content"`

	// Folder is an optional logical container used to group notes.
	Folder *string `json:"folder,omitempty"`

	// Starred marks the note as a favourite of its owner.
	Starred bool `json:"starred"`

	// Tags is a free-form set of labels attached to the note.
	Tags []string `json:"tags,omitempty"`

	// IsTeamNote reports whether the note belongs to a team. When true,
	// TeamID must be set and direct shares carry no authority.
	IsTeamNote bool `json:"is_team_note"`

	// TeamID is the owning team when IsTeamNote is true, nil otherwise.
	TeamID *uuid.UUID `json:"team_id,omitempty"`

	// SharedWith lists direct per-note grants. Authoritative only for
	// personal notes; informational on team notes.
	SharedWith []NoteShare `json:"shared_with,omitempty"`

	// State is the lifecycle state of the note.
	State NoteState `json:"state"`

	// DeletedAt is set when the note enters the trash and cleared on
	// restore. It drives the retention countdown.
	DeletedAt *time.Time `json:"deleted_at,omitempty"`

	// CreatedAt is the timestamp when the note was created.
	CreatedAt time.Time `json:"created_at"`

	// UpdatedAt is the timestamp of the last modification.
	UpdatedAt time.Time `json:"updated_at"`
}

// TableName returns the name of the database table
// associated with the Note model.
func (n *Note) TableName() string {
	return "notes"
}

// NoteShare is a direct per-note grant of access to a specific user,
// independent of any team membership.
type NoteShare struct {
	// NoteID is the note the grant applies to.
	NoteID uuid.UUID `json:"note_id"`

	// UserID is the grantee.
	UserID int64 `json:"user_id"`

	// Role is the granted access level: viewer or editor.
	Role ShareRole `json:"role"`

	// SharedByID is the user who created the grant.
	SharedByID int64 `json:"shared_by_id"`

	// CreatedAt is the timestamp when the grant was created.
	CreatedAt time.Time `json:"created_at"`
}

// TableName returns the name of the database table
// associated with the NoteShare model.
func (s *NoteShare) TableName() string {
	return "note_shares"
}

// ShareRole is the access level carried by a direct share.
type ShareRole string

const (
	// ShareViewer grants read-only access.
	ShareViewer ShareRole = "viewer"

	// ShareEditor grants read and write access.
	ShareEditor ShareRole = "editor"
)

// Valid reports whether the role is one of the known share roles.
func (r ShareRole) Valid() bool {
	return r == ShareViewer || r == ShareEditor
}
