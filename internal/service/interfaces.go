package service

import (
	"context"

	"github.com/google/uuid"
	"github.com/teamnotes/note-keeper/models"
)

// AuthService handles user registration, credential verification, and JWT
// token lifecycle.
type AuthService interface {
	RegisterUser(ctx context.Context, user models.User) (models.User, error)
	Login(ctx context.Context, user models.User) (models.User, error)
	CreateToken(ctx context.Context, user models.User) (models.Token, error)
	ParseToken(ctx context.Context, tokenString string) (models.Token, error)
}

// NoteService covers note CRUD, metadata mutations, and direct shares.
// Every mutating call is gated by the actor's effective role on the note.
type NoteService interface {
	CreateNote(ctx context.Context, actorID int64, req models.CreateNoteRequest) (models.Note, error)
	GetNote(ctx context.Context, actorID int64, noteID uuid.UUID) (models.Note, models.Access, error)
	UpdateNote(ctx context.Context, actorID int64, noteID uuid.UUID, req models.UpdateNoteRequest) (models.Note, error)
	ListNotes(ctx context.Context, actorID int64, query models.ListNotesQuery) ([]models.Note, error)
	ListTeamNotes(ctx context.Context, actorID int64, teamID uuid.UUID) ([]models.Note, error)

	SetFolder(ctx context.Context, actorID int64, noteID uuid.UUID, folder *string) error
	SetStarred(ctx context.Context, actorID int64, noteID uuid.UUID, starred bool) error

	ShareNote(ctx context.Context, actorID int64, noteID uuid.UUID, targetUserID int64, role models.ShareRole) error
	UnshareNote(ctx context.Context, actorID int64, noteID uuid.UUID, targetUserID int64) error
	ListShares(ctx context.Context, actorID int64, noteID uuid.UUID) (models.NoteSharesResponse, error)
}

// LifecycleService owns the note state machine (active, trashed, purged) and
// the trash retention policy.
type LifecycleService interface {
	SoftDelete(ctx context.Context, actorID int64, noteID uuid.UUID) (models.Note, error)
	Restore(ctx context.Context, actorID int64, noteID uuid.UUID) (models.Note, error)
	Purge(ctx context.Context, actorID int64, noteID uuid.UUID, permanent bool) error

	ListTrash(ctx context.Context, actorID int64) ([]models.TrashedNote, error)
	EmptyTrash(ctx context.Context, actorID int64) (int, error)

	BulkRestore(ctx context.Context, actorID int64, noteIDs []uuid.UUID) []models.BulkResult
	BulkPurge(ctx context.Context, actorID int64, noteIDs []uuid.UUID) []models.BulkResult

	// PurgeExpired is the system sweep over the trash. It runs with no user
	// actor and returns the number of notes removed.
	PurgeExpired(ctx context.Context) (int, error)
}

// TeamService manages teams and their memberships.
type TeamService interface {
	CreateTeam(ctx context.Context, actorID int64, name string) (models.Team, error)
	GetTeam(ctx context.Context, actorID int64, teamID uuid.UUID) (models.Team, error)
	AddMember(ctx context.Context, actorID int64, teamID uuid.UUID, userID int64, role models.TeamRole) error
	UpdateMemberRole(ctx context.Context, actorID int64, teamID uuid.UUID, userID int64, role models.TeamRole) error
	RemoveMember(ctx context.Context, actorID int64, teamID uuid.UUID, userID int64) error
}

// FolderService manages personal and team folders.
type FolderService interface {
	CreateFolder(ctx context.Context, actorID int64, req models.FolderRequest) (models.Folder, error)
	ListFolders(ctx context.Context, actorID int64) ([]models.Folder, error)
	ListTeamFolders(ctx context.Context, actorID int64, teamID uuid.UUID) ([]models.Folder, error)
	RenameFolder(ctx context.Context, actorID int64, folderID uuid.UUID, name string) error
	DeleteFolder(ctx context.Context, actorID int64, folderID uuid.UUID) error
}

// ActivityService records team events and serves the activity feed. Recording
// is best-effort from the caller's point of view: failures are logged, never
// returned.
type ActivityService interface {
	Record(ctx context.Context, teamID uuid.UUID, actorID int64, action models.ActivityAction, subject string)
	ListTeamActivity(ctx context.Context, actorID int64, teamID uuid.UUID, limit int) ([]models.Activity, error)
}

// AppInfoService exposes build metadata.
type AppInfoService interface {
	GetAppVersion(ctx context.Context) string
}
