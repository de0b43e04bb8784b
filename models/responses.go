package models

import "github.com/google/uuid"

// TrashedNote is a trash-listing entry: the note plus its retention countdown.
type TrashedNote struct {
	Note Note `json:"note"`

	// DaysLeft is the number of whole days remaining before the note is
	// eligible for the automatic purge. Zero means "expires today".
	DaysLeft int `json:"days_left"`
}

// BulkResult reports the outcome of one item of a bulk operation. Items
// succeed or fail independently; a failed item never aborts the batch.
type BulkResult struct {
	NoteID uuid.UUID `json:"note_id"`
	OK     bool      `json:"ok"`
	Error  string    `json:"error,omitempty"`
}

// EmptyTrashResponse reports how many trashed notes were actually purged.
type EmptyTrashResponse struct {
	DeletedCount int `json:"deleted_count"`
}

// NoteSharesResponse lists a note's direct shares. Informational is true for
// team notes, whose shares never affect the permission decision.
type NoteSharesResponse struct {
	Shares        []NoteShare `json:"shares"`
	Informational bool        `json:"informational"`
}

// NoteResponse pairs a note with the caller's resolved access, so clients can
// decide which controls to render without re-deriving permissions.
type NoteResponse struct {
	Note   Note   `json:"note"`
	Access Access `json:"access"`
}
