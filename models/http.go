package models

import "github.com/google/uuid"

// CreateNoteRequest is the body of POST /api/notes/.
type CreateNoteRequest struct {
	Title   string     `json:"title"`
	Content string     `json:"content"`
	Folder  *string    `json:"folder,omitempty"`
	Tags    []string   `json:"tags,omitempty"`
	TeamID  *uuid.UUID `json:"team_id,omitempty"`
}

// UpdateNoteRequest is the body of PUT /api/notes/{id}.
// Nil fields are left untouched.
type UpdateNoteRequest struct {
	Title   *string  `json:"title,omitempty"`
	Content *string  `json:"content,omitempty"`
	Tags    []string `json:"tags,omitempty"`
}

// SetFolderRequest is the body of PUT /api/notes/{id}/folder.
// A nil folder removes the note from its current folder.
type SetFolderRequest struct {
	Folder *string `json:"folder"`
}

// SetStarredRequest is the body of POST /api/notes/{id}/star.
type SetStarredRequest struct {
	Starred bool `json:"starred"`
}

// ShareNoteRequest is the body of POST /api/notes/{id}/shares.
type ShareNoteRequest struct {
	UserID int64     `json:"user_id"`
	Role   ShareRole `json:"role"`
}

// ListNotesQuery carries the optional filters of GET /api/notes/.
// Nil fields are not applied.
type ListNotesQuery struct {
	Folder  *string
	Starred *bool
	Tag     *string
}

// BulkNotesRequest is the body of the bulk restore/purge endpoints.
type BulkNotesRequest struct {
	NoteIDs []uuid.UUID `json:"note_ids"`
}

// CreateTeamRequest is the body of POST /api/teams/.
type CreateTeamRequest struct {
	Name string `json:"name"`
}

// TeamMemberRequest is the body of the member add/update endpoints.
type TeamMemberRequest struct {
	UserID int64    `json:"user_id"`
	Role   TeamRole `json:"role"`
}

// FolderRequest is the body of the folder create/rename endpoints.
type FolderRequest struct {
	Name   string     `json:"name"`
	TeamID *uuid.UUID `json:"team_id,omitempty"`
}
