// SPDX-License-Identifier: Apache-2.0

package service

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/teamnotes/note-keeper/internal/logger"
	"github.com/teamnotes/note-keeper/internal/store"
	"github.com/teamnotes/note-keeper/internal/utils"
	"github.com/teamnotes/note-keeper/internal/validators"
	"github.com/teamnotes/note-keeper/models"
)

// noteService is the concrete implementation of [NoteService]. It performs
// note CRUD, folder/star metadata writes, and direct-share management, with
// every mutation gated by the actor's effective role.
type noteService struct {
	accessResolver

	userRepository store.UserRepository
	activity       ActivityService
	uuids          utils.Generator
	validator      validators.Validator

	logger *logger.Logger
}

// NewNoteService constructs a [NoteService].
func NewNoteService(notes store.NoteRepository, teams store.TeamRepository, users store.UserRepository, activity ActivityService, uuids utils.Generator, logger *logger.Logger) NoteService {
	return &noteService{
		accessResolver: accessResolver{noteRepository: notes, teamRepository: teams},
		userRepository: users,
		activity:       activity,
		uuids:          uuids,
		validator:      validators.NewRequestValidator(),
		logger:         logger,
	}
}

// validate runs the request validator and wraps any field failures in
// [ErrValidation]. Field errors arrive pre-aggregated, joined with commas.
func (n *noteService) validate(ctx context.Context, req any) error {
	if err := n.validator.Validate(ctx, req); err != nil {
		return fmt.Errorf("%w: %s", ErrValidation, err.Error())
	}
	return nil
}

// CreateNote creates an active note owned by the actor. When TeamID is set
// the note becomes a team note, which requires the actor to hold a team role
// that can edit notes.
func (n *noteService) CreateNote(ctx context.Context, actorID int64, req models.CreateNoteRequest) (models.Note, error) {
	log := logger.FromContext(ctx)

	if err := n.validate(ctx, req); err != nil {
		return models.Note{}, err
	}

	if req.TeamID != nil {
		member, err := n.teamRepository.GetMembership(ctx, *req.TeamID, actorID)
		if err != nil {
			return models.Note{}, ErrPermissionDenied
		}
		if !member.Role.CanEditNotes() {
			return models.Note{}, ErrPermissionDenied
		}
	}

	note := models.Note{
		ID:         n.uuids.Generate(),
		OwnerID:    actorID,
		Title:      req.Title,
		Content:    req.Content,
		Folder:     req.Folder,
		Tags:       req.Tags,
		IsTeamNote: req.TeamID != nil,
		TeamID:     req.TeamID,
		State:      models.StateActive,
	}

	created, err := n.noteRepository.CreateNote(ctx, note)
	if err != nil {
		log.Err(err).Str("func", "noteService.CreateNote").Msg("note creation ended with error")
		return models.Note{}, fmt.Errorf("note creation ended with error: %w", err)
	}

	n.recordNoteActivity(ctx, created, actorID, models.ActivityNoteCreated)
	return created, nil
}

// GetNote returns the note together with the actor's resolved access.
// Actors with no effective role receive [ErrPermissionDenied]; the message
// never reveals whether team or share rules produced the denial.
func (n *noteService) GetNote(ctx context.Context, actorID int64, noteID uuid.UUID) (models.Note, models.Access, error) {
	note, access, err := n.resolveNote(ctx, actorID, noteID)
	if err != nil {
		return models.Note{}, models.Denied(), err
	}
	if access.Role == models.AccessNone {
		return models.Note{}, models.Denied(), ErrPermissionDenied
	}

	return note, access, nil
}

// UpdateNote applies a partial update of title, content, and tags. Nil
// request fields leave the stored value untouched. Writes are
// last-write-wins between concurrent permitted editors.
func (n *noteService) UpdateNote(ctx context.Context, actorID int64, noteID uuid.UUID, req models.UpdateNoteRequest) (models.Note, error) {
	note, access, err := n.resolveNote(ctx, actorID, noteID)
	if err != nil {
		return models.Note{}, err
	}
	if !access.CanEdit {
		return models.Note{}, ErrPermissionDenied
	}
	if note.State != models.StateActive {
		return models.Note{}, ErrInvalidState
	}

	if err := n.validate(ctx, req); err != nil {
		return models.Note{}, err
	}

	if req.Title != nil {
		note.Title = *req.Title
	}
	if req.Content != nil {
		note.Content = *req.Content
	}
	if req.Tags != nil {
		note.Tags = req.Tags
	}

	updated, err := n.noteRepository.UpdateNote(ctx, note)
	if err != nil {
		return models.Note{}, err
	}

	n.recordNoteActivity(ctx, updated, actorID, models.ActivityNoteUpdated)
	return updated, nil
}

// ListNotes lists the actor's own active notes, optionally narrowed by
// folder, starred flag, or tag.
func (n *noteService) ListNotes(ctx context.Context, actorID int64, query models.ListNotesQuery) ([]models.Note, error) {
	return n.noteRepository.ListNotes(ctx, store.NoteFilter{
		OwnerID: &actorID,
		State:   models.StateActive,
		Folder:  query.Folder,
		Starred: query.Starred,
		Tag:     query.Tag,
	})
}

// ListTeamNotes lists a team's active notes. Any member may list; outsiders
// are denied.
func (n *noteService) ListTeamNotes(ctx context.Context, actorID int64, teamID uuid.UUID) ([]models.Note, error) {
	if _, err := n.teamRepository.GetMembership(ctx, teamID, actorID); err != nil {
		return nil, ErrPermissionDenied
	}

	return n.noteRepository.ListNotes(ctx, store.NoteFilter{
		TeamID: &teamID,
		State:  models.StateActive,
	})
}

// SetFolder moves the note into the named folder (nil detaches it).
// Requires edit capability; idempotent.
func (n *noteService) SetFolder(ctx context.Context, actorID int64, noteID uuid.UUID, folder *string) error {
	if err := n.requireEdit(ctx, actorID, noteID); err != nil {
		return err
	}
	return n.noteRepository.SetFolder(ctx, noteID, folder)
}

// SetStarred toggles the note's starred flag. Requires edit capability;
// idempotent.
func (n *noteService) SetStarred(ctx context.Context, actorID int64, noteID uuid.UUID, starred bool) error {
	if err := n.requireEdit(ctx, actorID, noteID); err != nil {
		return err
	}
	return n.noteRepository.SetStarred(ctx, noteID, starred)
}

func (n *noteService) requireEdit(ctx context.Context, actorID int64, noteID uuid.UUID) error {
	_, access, err := n.resolveNote(ctx, actorID, noteID)
	if err != nil {
		return err
	}
	if !access.CanEdit {
		return ErrPermissionDenied
	}
	return nil
}

// ShareNote grants a direct share on a personal note. Only the owner may
// share, the target must exist, and team notes cannot be shared directly
// because team roles are authoritative there.
func (n *noteService) ShareNote(ctx context.Context, actorID int64, noteID uuid.UUID, targetUserID int64, role models.ShareRole) error {
	if err := n.validate(ctx, models.ShareNoteRequest{UserID: targetUserID, Role: role}); err != nil {
		return err
	}

	note, access, err := n.resolveNote(ctx, actorID, noteID)
	if err != nil {
		return err
	}
	if access.Role != models.AccessOwner {
		return ErrPermissionDenied
	}
	if note.IsTeamNote {
		return ErrInvalidState
	}
	if targetUserID == actorID {
		return fmt.Errorf("%w: %s", ErrValidation, "cannot share a note with its owner")
	}

	target, err := n.userRepository.FindUserByID(ctx, targetUserID)
	if err != nil {
		return err
	}

	err = n.noteRepository.AddShare(ctx, models.NoteShare{
		NoteID:     noteID,
		UserID:     target.UserID,
		Role:       role,
		SharedByID: actorID,
	})
	if err != nil {
		return err
	}

	n.recordNoteActivity(ctx, note, actorID, models.ActivityNoteShared)
	return nil
}

// UnshareNote revokes a direct share. Only the owner may revoke.
func (n *noteService) UnshareNote(ctx context.Context, actorID int64, noteID uuid.UUID, targetUserID int64) error {
	_, access, err := n.resolveNote(ctx, actorID, noteID)
	if err != nil {
		return err
	}
	if access.Role != models.AccessOwner {
		return ErrPermissionDenied
	}

	return n.noteRepository.RemoveShare(ctx, noteID, targetUserID)
}

// ListShares lists a note's direct shares. For team notes the response is
// marked informational: those shares never influence the permission
// decision.
func (n *noteService) ListShares(ctx context.Context, actorID int64, noteID uuid.UUID) (models.NoteSharesResponse, error) {
	note, access, err := n.resolveNote(ctx, actorID, noteID)
	if err != nil {
		return models.NoteSharesResponse{}, err
	}
	if access.Role == models.AccessNone {
		return models.NoteSharesResponse{}, ErrPermissionDenied
	}

	shares, err := n.noteRepository.ListShares(ctx, noteID)
	if err != nil {
		return models.NoteSharesResponse{}, err
	}

	return models.NoteSharesResponse{
		Shares:        shares,
		Informational: note.IsTeamNote,
	}, nil
}

func (n *noteService) recordNoteActivity(ctx context.Context, note models.Note, actorID int64, action models.ActivityAction) {
	if n.activity == nil || !note.IsTeamNote || note.TeamID == nil {
		return
	}
	n.activity.Record(ctx, *note.TeamID, actorID, action, note.Title)
}
