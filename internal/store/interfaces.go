package store

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/teamnotes/note-keeper/models"
)

//go:generate mockgen -source=interfaces.go -destination=mock/store_mock.go -package=mock

// UserRepository persists user accounts.
type UserRepository interface {
	CreateUser(ctx context.Context, user models.User) (models.User, error)
	FindUserByLogin(ctx context.Context, login string) (models.User, error)
	FindUserByID(ctx context.Context, userID int64) (models.User, error)
}

// NoteFilter narrows a note listing. Nil fields are not applied.
type NoteFilter struct {
	OwnerID *int64
	TeamID  *uuid.UUID
	State   models.NoteState
	Folder  *string
	Starred *bool
	Tag     *string
}

// NoteRepository persists notes, their lifecycle state, and direct shares.
//
// State transitions are conditional updates: TrashNote matches only active
// notes and RestoreNote only trashed ones. When the id exists but the state
// clause does not match, [ErrNoteStateConflict] is returned so callers can
// tell a lost race from a missing note.
type NoteRepository interface {
	CreateNote(ctx context.Context, note models.Note) (models.Note, error)
	GetNoteByID(ctx context.Context, noteID uuid.UUID) (models.Note, error)
	UpdateNote(ctx context.Context, note models.Note) (models.Note, error)
	ListNotes(ctx context.Context, filter NoteFilter) ([]models.Note, error)

	SetFolder(ctx context.Context, noteID uuid.UUID, folder *string) error
	SetStarred(ctx context.Context, noteID uuid.UUID, starred bool) error

	TrashNote(ctx context.Context, noteID uuid.UUID, deletedAt time.Time) (models.Note, error)
	RestoreNote(ctx context.Context, noteID uuid.UUID) (models.Note, error)
	DeleteNote(ctx context.Context, noteID uuid.UUID) error
	ListExpired(ctx context.Context, cutoff time.Time) ([]models.Note, error)

	AddShare(ctx context.Context, share models.NoteShare) error
	RemoveShare(ctx context.Context, noteID uuid.UUID, userID int64) error
	ListShares(ctx context.Context, noteID uuid.UUID) ([]models.NoteShare, error)
}

// TeamRepository persists teams and their memberships.
type TeamRepository interface {
	CreateTeam(ctx context.Context, team models.Team) (models.Team, error)
	GetTeamByID(ctx context.Context, teamID uuid.UUID) (models.Team, error)

	AddMember(ctx context.Context, member models.TeamMember) error
	UpdateMemberRole(ctx context.Context, teamID uuid.UUID, userID int64, role models.TeamRole) error
	RemoveMember(ctx context.Context, teamID uuid.UUID, userID int64) error
	GetMembership(ctx context.Context, teamID uuid.UUID, userID int64) (models.TeamMember, error)
}

// FolderRepository persists folders. Note counts are derived from the notes
// table on every listing, never stored.
type FolderRepository interface {
	CreateFolder(ctx context.Context, folder models.Folder) (models.Folder, error)
	GetFolderByID(ctx context.Context, folderID uuid.UUID) (models.Folder, error)
	ListFolders(ctx context.Context, ownerID int64) ([]models.Folder, error)
	ListTeamFolders(ctx context.Context, teamID uuid.UUID) ([]models.Folder, error)
	RenameFolder(ctx context.Context, folderID uuid.UUID, name string) error
	DeleteFolder(ctx context.Context, folderID uuid.UUID) error
}

// ActivityRepository persists team activity feed entries.
type ActivityRepository interface {
	RecordActivity(ctx context.Context, activity models.Activity) error
	ListTeamActivity(ctx context.Context, teamID uuid.UUID, limit int) ([]models.Activity, error)
}

// ErrorClassificator decides whether a failed database operation is worth
// retrying. Implementations are driver-specific.
type ErrorClassificator interface {
	Classify(err error) ErrorClassification
}
