// SPDX-License-Identifier: Apache-2.0

package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/teamnotes/note-keeper/internal/logger"
	"github.com/teamnotes/note-keeper/internal/store"
	"github.com/teamnotes/note-keeper/models"
)

// ResolveEffectiveRole computes a user's effective access on a note by
// merging ownership, team membership, and direct shares. It is a pure
// function: it performs no I/O, never fails, and collapses any missing data
// to [models.AccessNone].
//
// The authority sources are ordered; the first match wins:
//
//  1. Ownership. The note's creator always holds the owner role, regardless
//     of team or share state.
//  2. Team role, for team notes only. The membership (nil when the user does
//     not belong to the note's team) is authoritative: owner, admin, and
//     editor map to editor capability, viewer to read-only. Direct shares
//     are never consulted for a team note. A share that does exist is
//     surfaced via [models.Access.ConflictingShare] so a UI can warn about
//     the ambiguity, but it never changes the decision.
//  3. Direct share, for personal notes. The stored share role applies.
//  4. Otherwise: no access.
func ResolveEffectiveRole(userID int64, note models.Note, membership *models.TeamMember) models.Access {
	if note.OwnerID == userID {
		return models.Access{Role: models.AccessOwner, CanEdit: true, Source: models.SourceOwner}
	}

	if note.IsTeamNote {
		if membership == nil {
			return models.Denied()
		}

		access := models.Access{Source: models.SourceTeam}
		if membership.Role.CanEditNotes() {
			access.Role = models.AccessEditor
			access.CanEdit = true
		} else {
			access.Role = models.AccessViewer
		}

		if share := findShare(note.SharedWith, userID); share != nil {
			access.ConflictingShare = share
		}

		return access
	}

	if share := findShare(note.SharedWith, userID); share != nil {
		access := models.Access{Source: models.SourceDirectShare}
		if share.Role == models.ShareEditor {
			access.Role = models.AccessEditor
			access.CanEdit = true
		} else {
			access.Role = models.AccessViewer
		}
		return access
	}

	return models.Denied()
}

func findShare(shares []models.NoteShare, userID int64) *models.NoteShare {
	for i := range shares {
		if shares[i].UserID == userID {
			return &shares[i]
		}
	}
	return nil
}

// accessResolver loads the data [ResolveEffectiveRole] needs and runs it.
// It is embedded by the note and lifecycle services so that every gated
// operation resolves permissions the same way.
type accessResolver struct {
	noteRepository store.NoteRepository
	teamRepository store.TeamRepository
}

// resolveNote fetches the note and the actor's effective access on it in one
// step. Returns [store.ErrNoteNotFound] when the note does not exist.
func (r *accessResolver) resolveNote(ctx context.Context, actorID int64, noteID uuid.UUID) (models.Note, models.Access, error) {
	note, err := r.noteRepository.GetNoteByID(ctx, noteID)
	if err != nil {
		return models.Note{}, models.Denied(), err
	}

	access, err := r.resolve(ctx, actorID, note)
	if err != nil {
		return models.Note{}, models.Denied(), err
	}

	return note, access, nil
}

// resolve computes the actor's access on an already-loaded note, looking up
// the team membership when the note belongs to a team.
func (r *accessResolver) resolve(ctx context.Context, actorID int64, note models.Note) (models.Access, error) {
	var membership *models.TeamMember

	if note.IsTeamNote && note.TeamID != nil {
		member, err := r.teamRepository.GetMembership(ctx, *note.TeamID, actorID)
		switch {
		case err == nil:
			membership = &member
		case errors.Is(err, store.ErrMembershipNotFound):
			// Absent membership collapses to no team authority.
		default:
			logger.FromContext(ctx).Err(err).
				Str("func", "accessResolver.resolve").
				Str("note_id", note.ID.String()).
				Msg("membership lookup failed")
			return models.Denied(), fmt.Errorf("membership lookup failed: %w", err)
		}
	}

	return ResolveEffectiveRole(actorID, note, membership), nil
}
