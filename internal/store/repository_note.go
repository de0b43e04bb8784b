// SPDX-License-Identifier: Apache-2.0

package store

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgerrcode"
	"github.com/teamnotes/note-keeper/internal/logger"
	"github.com/teamnotes/note-keeper/models"
)

// noteRepository is the PostgreSQL-backed implementation of [NoteRepository].
// It executes all note CRUD, lifecycle, and share operations directly against
// the "notes" and "note_shares" tables using the embedded [*DB] connection.
//
// Every public method obtains a context-scoped logger via
// [logger.FromContext] so that all database interactions are traced with
// structured fields (note_id, owner_id, etc.).
type noteRepository struct {
	*DB
	logger *logger.Logger
}

// NewNoteRepository constructs a [NoteRepository] backed by the provided
// database connection and logger.
func NewNoteRepository(db *DB, logger *logger.Logger) NoteRepository {
	logger.Debug().Msg("creating note repository")
	return &noteRepository{
		DB:     db,
		logger: logger,
	}
}

// rowScanner abstracts *sql.Row and *sql.Rows for shared scanning code.
type rowScanner interface {
	Scan(dest ...any) error
}

// scanNote reads one full note row in [noteColumns] order.
func scanNote(row rowScanner) (models.Note, error) {
	var (
		note   models.Note
		tags   []byte
		teamID uuid.NullUUID
	)

	err := row.Scan(
		&note.ID,
		&note.OwnerID,
		&note.Title,
		&note.Content,
		&note.Folder,
		&note.Starred,
		&tags,
		&note.IsTeamNote,
		&teamID,
		&note.State,
		&note.DeletedAt,
		&note.CreatedAt,
		&note.UpdatedAt,
	)
	if err != nil {
		return models.Note{}, err
	}

	if teamID.Valid {
		note.TeamID = &teamID.UUID
	}
	if len(tags) > 0 {
		if err := json.Unmarshal(tags, &note.Tags); err != nil {
			return models.Note{}, fmt.Errorf("%w: %w", ErrScanningRow, err)
		}
	}

	return note, nil
}

// marshalTags encodes the tag slice for the jsonb column. A nil slice is
// stored as an empty array so that the containment operator keeps working.
func marshalTags(tags []string) ([]byte, error) {
	if tags == nil {
		tags = []string{}
	}
	return json.Marshal(tags)
}

// CreateNote persists a new note in the active state and returns the
// canonical database representation with server-assigned timestamps.
func (n *noteRepository) CreateNote(ctx context.Context, note models.Note) (models.Note, error) {
	log := logger.FromContext(ctx)

	tags, err := marshalTags(note.Tags)
	if err != nil {
		log.Err(err).Str("func", "noteRepository.CreateNote").Msg("failed to encode tags")
		return models.Note{}, err
	}

	row := n.DB.QueryRowContext(ctx, createNote,
		note.ID, note.OwnerID, note.Title, note.Content, note.Folder,
		note.Starred, tags, note.IsTeamNote, note.TeamID)

	created, err := scanNote(row)
	if err != nil {
		log.Err(err).
			Str("func", "noteRepository.CreateNote").
			Str("note_id", note.ID.String()).
			Int64("owner_id", note.OwnerID).
			Bool("retryable", n.retryable(err)).
			Msg("failed to insert note")
		return models.Note{}, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}

	return created, nil
}

// GetNoteByID retrieves a single note regardless of its lifecycle state,
// along with its direct shares. Returns [ErrNoteNotFound] when no row
// matches.
func (n *noteRepository) GetNoteByID(ctx context.Context, noteID uuid.UUID) (models.Note, error) {
	log := logger.FromContext(ctx)

	row := n.DB.QueryRowContext(ctx, getNoteByID, noteID)

	note, err := scanNote(row)
	if err != nil {
		if isNoRows(err) {
			return models.Note{}, ErrNoteNotFound
		}
		log.Err(err).
			Str("func", "noteRepository.GetNoteByID").
			Str("note_id", noteID.String()).
			Msg("failed to get note")
		return models.Note{}, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}

	shares, err := n.ListShares(ctx, noteID)
	if err != nil {
		return models.Note{}, err
	}
	note.SharedWith = shares

	return note, nil
}

// UpdateNote overwrites the title, content, and tags of a note. The write is
// last-write-wins: no version check is performed. Returns [ErrNoteNotFound]
// when the note does not exist.
func (n *noteRepository) UpdateNote(ctx context.Context, note models.Note) (models.Note, error) {
	log := logger.FromContext(ctx)

	tags, err := marshalTags(note.Tags)
	if err != nil {
		log.Err(err).Str("func", "noteRepository.UpdateNote").Msg("failed to encode tags")
		return models.Note{}, err
	}

	row := n.DB.QueryRowContext(ctx, updateNote, note.ID, note.Title, note.Content, tags)

	updated, err := scanNote(row)
	if err != nil {
		if isNoRows(err) {
			return models.Note{}, ErrNoteNotFound
		}
		log.Err(err).
			Str("func", "noteRepository.UpdateNote").
			Str("note_id", note.ID.String()).
			Msg("failed to update note")
		return models.Note{}, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}

	return updated, nil
}

// ListNotes retrieves all notes matching the filter, newest-updated first.
func (n *noteRepository) ListNotes(ctx context.Context, filter NoteFilter) ([]models.Note, error) {
	log := logger.FromContext(ctx)

	query, args, err := buildListNotesQuery(filter)
	if err != nil {
		log.Err(err).
			Str("func", "noteRepository.ListNotes").
			Msg("failed to build query")
		return nil, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	rows, err := n.DB.QueryContext(ctx, query, args...)
	if err != nil {
		log.Err(err).
			Str("func", "noteRepository.ListNotes").
			Bool("retryable", n.retryable(err)).
			Msg("failed to execute query for listing notes")
		return nil, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}
	defer rows.Close()

	notes := make([]models.Note, 0, 50)
	for rows.Next() {
		note, scanErr := scanNote(rows)
		if scanErr != nil {
			log.Err(scanErr).
				Str("func", "noteRepository.ListNotes").
				Int("scanned so far", len(notes)).
				Msg("failed to scan note row")
			return nil, fmt.Errorf("%w: %w", ErrScanningRows, scanErr)
		}
		notes = append(notes, note)
	}

	if err := rows.Err(); err != nil {
		log.Err(err).
			Str("func", "noteRepository.ListNotes").
			Msg("rows iteration error")
		return nil, fmt.Errorf("%w: %w", ErrScanningRows, err)
	}

	return notes, nil
}

// SetFolder moves the note into the named folder; a nil folder detaches it.
func (n *noteRepository) SetFolder(ctx context.Context, noteID uuid.UUID, folder *string) error {
	return n.execNoteStatement(ctx, "noteRepository.SetFolder", setNoteFolder, noteID, folder)
}

// SetStarred toggles the note's starred flag.
func (n *noteRepository) SetStarred(ctx context.Context, noteID uuid.UUID, starred bool) error {
	return n.execNoteStatement(ctx, "noteRepository.SetStarred", setNoteStarred, noteID, starred)
}

// execNoteStatement runs a single-note UPDATE and maps a zero affected-row
// count to [ErrNoteNotFound].
func (n *noteRepository) execNoteStatement(ctx context.Context, funcName, query string, noteID uuid.UUID, arg any) error {
	log := logger.FromContext(ctx)

	result, err := n.DB.ExecContext(ctx, query, noteID, arg)
	if err != nil {
		log.Err(err).
			Str("func", funcName).
			Str("note_id", noteID.String()).
			Bool("retryable", n.retryable(err)).
			Msg("failed to execute statement")
		return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		log.Err(err).Str("func", funcName).Msg("failed to read affected rows")
		return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}
	if affected == 0 {
		return ErrNoteNotFound
	}

	return nil
}

// TrashNote moves an active note to the trash, stamping deletedAt. The
// UPDATE matches only active rows; when the id exists but the note is
// already trashed, [ErrNoteStateConflict] is returned so callers can treat
// the repeat as an idempotent no-op. A missing id yields [ErrNoteNotFound].
func (n *noteRepository) TrashNote(ctx context.Context, noteID uuid.UUID, deletedAt time.Time) (models.Note, error) {
	return n.transitionNote(ctx, "noteRepository.TrashNote", trashNote, noteID, &deletedAt)
}

// RestoreNote moves a trashed note back to the active state and clears
// deletedAt. The UPDATE matches only trashed rows; an active note yields
// [ErrNoteStateConflict] and a missing id [ErrNoteNotFound].
func (n *noteRepository) RestoreNote(ctx context.Context, noteID uuid.UUID) (models.Note, error) {
	return n.transitionNote(ctx, "noteRepository.RestoreNote", restoreNote, noteID, nil)
}

// transitionNote executes a conditional state-transition UPDATE. When the
// state clause matches no row, a follow-up existence probe distinguishes a
// missing note from a lost race on the state.
func (n *noteRepository) transitionNote(ctx context.Context, funcName, query string, noteID uuid.UUID, deletedAt *time.Time) (models.Note, error) {
	log := logger.FromContext(ctx)

	var row rowScanner
	if deletedAt != nil {
		row = n.DB.QueryRowContext(ctx, query, noteID, *deletedAt)
	} else {
		row = n.DB.QueryRowContext(ctx, query, noteID)
	}

	note, err := scanNote(row)
	if err == nil {
		return note, nil
	}
	if !isNoRows(err) {
		log.Err(err).
			Str("func", funcName).
			Str("note_id", noteID.String()).
			Bool("retryable", n.retryable(err)).
			Msg("failed to execute state transition")
		return models.Note{}, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}

	// No row matched: either the note is gone or it is in the other state.
	var state models.NoteState
	probeErr := n.DB.QueryRowContext(ctx, noteExists, noteID).Scan(&state)
	switch {
	case probeErr == nil:
		return models.Note{}, ErrNoteStateConflict
	case isNoRows(probeErr):
		return models.Note{}, ErrNoteNotFound
	default:
		log.Err(probeErr).
			Str("func", funcName).
			Str("note_id", noteID.String()).
			Msg("failed to probe note state")
		return models.Note{}, fmt.Errorf("%w: %w", ErrExecutingQuery, probeErr)
	}
}

// DeleteNote removes the note row permanently. Shares and activity records
// referencing the note are removed by ON DELETE CASCADE. Returns
// [ErrNoteNotFound] when no row matches.
func (n *noteRepository) DeleteNote(ctx context.Context, noteID uuid.UUID) error {
	log := logger.FromContext(ctx)

	result, err := n.DB.ExecContext(ctx, deleteNote, noteID)
	if err != nil {
		log.Err(err).
			Str("func", "noteRepository.DeleteNote").
			Str("note_id", noteID.String()).
			Bool("retryable", n.retryable(err)).
			Msg("failed to delete note")
		return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		log.Err(err).Str("func", "noteRepository.DeleteNote").Msg("failed to read affected rows")
		return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}
	if affected == 0 {
		return ErrNoteNotFound
	}

	return nil
}

// ListExpired retrieves trashed notes whose deletedAt timestamp is strictly
// before the cutoff, oldest first. Used by the scheduled trash sweep.
func (n *noteRepository) ListExpired(ctx context.Context, cutoff time.Time) ([]models.Note, error) {
	log := logger.FromContext(ctx)

	rows, err := n.DB.QueryContext(ctx, listExpiredNotes, cutoff)
	if err != nil {
		log.Err(err).
			Str("func", "noteRepository.ListExpired").
			Time("cutoff", cutoff).
			Bool("retryable", n.retryable(err)).
			Msg("failed to execute query for listing expired notes")
		return nil, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}
	defer rows.Close()

	notes := make([]models.Note, 0, 50)
	for rows.Next() {
		note, scanErr := scanNote(rows)
		if scanErr != nil {
			log.Err(scanErr).
				Str("func", "noteRepository.ListExpired").
				Msg("failed to scan note row")
			return nil, fmt.Errorf("%w: %w", ErrScanningRows, scanErr)
		}
		notes = append(notes, note)
	}

	if err := rows.Err(); err != nil {
		log.Err(err).
			Str("func", "noteRepository.ListExpired").
			Msg("rows iteration error")
		return nil, fmt.Errorf("%w: %w", ErrScanningRows, err)
	}

	return notes, nil
}

// AddShare records a direct per-note grant. A duplicate (note_id, user_id)
// pair is mapped to [ErrShareAlreadyExists].
func (n *noteRepository) AddShare(ctx context.Context, share models.NoteShare) error {
	log := logger.FromContext(ctx)

	_, err := n.DB.ExecContext(ctx, addNoteShare, share.NoteID, share.UserID, share.Role, share.SharedByID)
	if err != nil {
		if postgresError(err) == pgerrcode.UniqueViolation {
			return ErrShareAlreadyExists
		}
		log.Err(err).
			Str("func", "noteRepository.AddShare").
			Str("note_id", share.NoteID.String()).
			Int64("user_id", share.UserID).
			Msg("failed to insert share")
		return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}

	return nil
}

// RemoveShare revokes a direct grant. Returns [ErrShareNotFound] when no
// grant exists for the pair.
func (n *noteRepository) RemoveShare(ctx context.Context, noteID uuid.UUID, userID int64) error {
	log := logger.FromContext(ctx)

	result, err := n.DB.ExecContext(ctx, removeNoteShare, noteID, userID)
	if err != nil {
		log.Err(err).
			Str("func", "noteRepository.RemoveShare").
			Str("note_id", noteID.String()).
			Int64("user_id", userID).
			Msg("failed to delete share")
		return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		log.Err(err).Str("func", "noteRepository.RemoveShare").Msg("failed to read affected rows")
		return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}
	if affected == 0 {
		return ErrShareNotFound
	}

	return nil
}

// ListShares retrieves all direct grants on a note in creation order.
func (n *noteRepository) ListShares(ctx context.Context, noteID uuid.UUID) ([]models.NoteShare, error) {
	log := logger.FromContext(ctx)

	rows, err := n.DB.QueryContext(ctx, listNoteShares, noteID)
	if err != nil {
		log.Err(err).
			Str("func", "noteRepository.ListShares").
			Str("note_id", noteID.String()).
			Msg("failed to execute query for listing shares")
		return nil, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}
	defer rows.Close()

	shares := make([]models.NoteShare, 0, 8)
	for rows.Next() {
		var share models.NoteShare
		if scanErr := rows.Scan(&share.NoteID, &share.UserID, &share.Role, &share.SharedByID, &share.CreatedAt); scanErr != nil {
			log.Err(scanErr).
				Str("func", "noteRepository.ListShares").
				Msg("failed to scan share row")
			return nil, fmt.Errorf("%w: %w", ErrScanningRows, scanErr)
		}
		shares = append(shares, share)
	}

	if err := rows.Err(); err != nil {
		log.Err(err).
			Str("func", "noteRepository.ListShares").
			Msg("rows iteration error")
		return nil, fmt.Errorf("%w: %w", ErrScanningRows, err)
	}

	return shares, nil
}
