// SPDX-License-Identifier: Apache-2.0

package service

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/teamnotes/note-keeper/internal/logger"
	"github.com/teamnotes/note-keeper/internal/store"
	"github.com/teamnotes/note-keeper/models"
)

const secondsPerDay = 86400

// lifecycleService is the concrete implementation of [LifecycleService].
// It owns the note state machine (active, trashed, purged) and the trash
// retention policy, gating every user-initiated transition on the actor's
// effective role.
//
// The service relies on the repository's conditional state-transition
// updates for safety under concurrency: when the scheduled sweep and a user
// operation race on the same note, whichever commits first wins and the
// loser observes a not-found or invalid-state error.
type lifecycleService struct {
	accessResolver

	activity      ActivityService
	retentionDays int
	now           func() time.Time

	logger *logger.Logger
}

// NewLifecycleService constructs a [LifecycleService] with the given
// retention window in days.
func NewLifecycleService(notes store.NoteRepository, teams store.TeamRepository, activity ActivityService, retentionDays int, logger *logger.Logger) LifecycleService {
	return &lifecycleService{
		accessResolver: accessResolver{noteRepository: notes, teamRepository: teams},
		activity:       activity,
		retentionDays:  retentionDays,
		now:            time.Now,
		logger:         logger,
	}
}

// DaysLeft computes the whole days remaining before a note trashed at
// deletedAt becomes eligible for the automatic purge, floored at zero.
// Zero means "expires today".
func DaysLeft(deletedAt, now time.Time, retentionDays int) int {
	expiry := deletedAt.Add(time.Duration(retentionDays) * secondsPerDay * time.Second)
	remaining := expiry.Sub(now)
	if remaining <= 0 {
		return 0
	}

	days := int(remaining / (secondsPerDay * time.Second))
	if remaining%(secondsPerDay*time.Second) != 0 {
		days++
	}
	return days
}

// SoftDelete moves an active note to the trash, stamping deletedAt.
//
// Requires the actor's effective role to permit editing. Idempotent: calling
// it on an already-trashed note returns the note's current state without an
// error and leaves the original deletedAt untouched.
func (l *lifecycleService) SoftDelete(ctx context.Context, actorID int64, noteID uuid.UUID) (models.Note, error) {
	note, access, err := l.resolveNote(ctx, actorID, noteID)
	if err != nil {
		return models.Note{}, err
	}
	if !access.CanEdit {
		return models.Note{}, ErrPermissionDenied
	}

	if note.State == models.StateTrashed {
		// Repeat deletes are a no-op by contract.
		return note, nil
	}

	trashed, err := l.noteRepository.TrashNote(ctx, noteID, l.now())
	if err != nil {
		if errors.Is(err, store.ErrNoteStateConflict) {
			// Lost a race with a concurrent delete; the note is in the
			// trash either way.
			return l.noteRepository.GetNoteByID(ctx, noteID)
		}
		return models.Note{}, err
	}

	l.recordNoteActivity(ctx, trashed, actorID, models.ActivityNoteTrashed)
	return trashed, nil
}

// Restore moves a trashed note back to the active state and clears
// deletedAt. Fails with [ErrInvalidState] when the note is not trashed.
func (l *lifecycleService) Restore(ctx context.Context, actorID int64, noteID uuid.UUID) (models.Note, error) {
	note, access, err := l.resolveNote(ctx, actorID, noteID)
	if err != nil {
		return models.Note{}, err
	}
	if !access.CanEdit {
		return models.Note{}, ErrPermissionDenied
	}
	if note.State != models.StateTrashed {
		return models.Note{}, ErrInvalidState
	}

	restored, err := l.noteRepository.RestoreNote(ctx, noteID)
	if err != nil {
		if errors.Is(err, store.ErrNoteStateConflict) {
			return models.Note{}, ErrInvalidState
		}
		return models.Note{}, err
	}

	l.recordNoteActivity(ctx, restored, actorID, models.ActivityNoteRestored)
	return restored, nil
}

// Purge removes a note permanently. Irreversible.
//
// A trashed note can be purged by any actor with edit capability. An active
// note can be purged only by its owner and only with the explicit permanent
// flag (the skip-trash delete); otherwise [ErrInvalidState] is returned.
func (l *lifecycleService) Purge(ctx context.Context, actorID int64, noteID uuid.UUID, permanent bool) error {
	note, access, err := l.resolveNote(ctx, actorID, noteID)
	if err != nil {
		return err
	}
	if !access.CanEdit {
		return ErrPermissionDenied
	}

	if note.State == models.StateActive {
		if !permanent {
			return ErrInvalidState
		}
		if access.Role != models.AccessOwner {
			return ErrPermissionDenied
		}
	}

	if err := l.noteRepository.DeleteNote(ctx, noteID); err != nil {
		return err
	}

	l.recordNoteActivity(ctx, note, actorID, models.ActivityNotePurged)
	return nil
}

// ListTrash lists the actor's own trashed notes, each with its retention
// countdown.
func (l *lifecycleService) ListTrash(ctx context.Context, actorID int64) ([]models.TrashedNote, error) {
	notes, err := l.noteRepository.ListNotes(ctx, store.NoteFilter{
		OwnerID: &actorID,
		State:   models.StateTrashed,
	})
	if err != nil {
		return nil, err
	}

	now := l.now()
	trash := make([]models.TrashedNote, 0, len(notes))
	for _, note := range notes {
		entry := models.TrashedNote{Note: note}
		if note.DeletedAt != nil {
			entry.DaysLeft = DaysLeft(*note.DeletedAt, now, l.retentionDays)
		}
		trash = append(trash, entry)
	}

	return trash, nil
}

// EmptyTrash purges all trashed notes owned by the actor. Each purge is
// independent: one failure never rolls back the others, and the returned
// count reports only the deletions that actually succeeded.
func (l *lifecycleService) EmptyTrash(ctx context.Context, actorID int64) (int, error) {
	log := logger.FromContext(ctx)

	notes, err := l.noteRepository.ListNotes(ctx, store.NoteFilter{
		OwnerID: &actorID,
		State:   models.StateTrashed,
	})
	if err != nil {
		return 0, err
	}

	deleted := 0
	for _, note := range notes {
		if err := l.noteRepository.DeleteNote(ctx, note.ID); err != nil {
			log.Err(err).
				Str("func", "lifecycleService.EmptyTrash").
				Str("note_id", note.ID.String()).
				Msg("failed to purge trashed note")
			continue
		}
		deleted++
	}

	return deleted, nil
}

// BulkRestore applies Restore to each id independently and aggregates the
// outcomes. A failed item never aborts the batch.
func (l *lifecycleService) BulkRestore(ctx context.Context, actorID int64, noteIDs []uuid.UUID) []models.BulkResult {
	return l.bulk(noteIDs, func(id uuid.UUID) error {
		_, err := l.Restore(ctx, actorID, id)
		return err
	})
}

// BulkPurge applies Purge to each id independently and aggregates the
// outcomes. A failed item never aborts the batch.
func (l *lifecycleService) BulkPurge(ctx context.Context, actorID int64, noteIDs []uuid.UUID) []models.BulkResult {
	return l.bulk(noteIDs, func(id uuid.UUID) error {
		return l.Purge(ctx, actorID, id, false)
	})
}

func (l *lifecycleService) bulk(noteIDs []uuid.UUID, op func(uuid.UUID) error) []models.BulkResult {
	results := make([]models.BulkResult, 0, len(noteIDs))
	for _, id := range noteIDs {
		result := models.BulkResult{NoteID: id, OK: true}
		if err := op(id); err != nil {
			result.OK = false
			result.Error = err.Error()
		}
		results = append(results, result)
	}
	return results
}

// PurgeExpired removes every trashed note whose retention window has lapsed.
// It runs with no user actor and is safe to invoke concurrently with
// user-initiated restore or purge on the same notes: the loser of such a
// race simply finds the note gone or no longer trashed.
func (l *lifecycleService) PurgeExpired(ctx context.Context) (int, error) {
	log := logger.FromContext(ctx)

	cutoff := l.now().Add(-time.Duration(l.retentionDays) * secondsPerDay * time.Second)
	expired, err := l.noteRepository.ListExpired(ctx, cutoff)
	if err != nil {
		return 0, err
	}

	purged := 0
	for _, note := range expired {
		if err := l.noteRepository.DeleteNote(ctx, note.ID); err != nil {
			if errors.Is(err, store.ErrNoteNotFound) {
				// Already gone: a user purge or another sweep won the race.
				continue
			}
			log.Err(err).
				Str("func", "lifecycleService.PurgeExpired").
				Str("note_id", note.ID.String()).
				Msg("failed to purge expired note")
			continue
		}
		l.recordNoteActivity(ctx, note, 0, models.ActivityNotePurged)
		purged++
	}

	if purged > 0 {
		log.Info().
			Str("func", "lifecycleService.PurgeExpired").
			Int("purged", purged).
			Msg("trash sweep removed expired notes")
	}

	return purged, nil
}

func (l *lifecycleService) recordNoteActivity(ctx context.Context, note models.Note, actorID int64, action models.ActivityAction) {
	if l.activity == nil || !note.IsTeamNote || note.TeamID == nil {
		return
	}
	l.activity.Record(ctx, *note.TeamID, actorID, action, note.Title)
}
