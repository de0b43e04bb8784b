package store

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgerrcode"
	"github.com/teamnotes/note-keeper/internal/logger"
	"github.com/teamnotes/note-keeper/models"
)

// folderRepository is the PostgreSQL-backed implementation of
// [FolderRepository]. Note counts are derived with a correlated subquery on
// the notes table at read time; the folders table stores no counters.
type folderRepository struct {
	*DB
	logger *logger.Logger
}

// NewFolderRepository constructs a [FolderRepository] backed by the provided
// database connection and logger.
func NewFolderRepository(db *DB, logger *logger.Logger) FolderRepository {
	logger.Debug().Msg("creating folder repository")
	return &folderRepository{
		DB:     db,
		logger: logger,
	}
}

// scanFolder reads one folder row, with or without the derived note_count
// column.
func scanFolder(row rowScanner, withCount bool) (models.Folder, error) {
	var (
		folder models.Folder
		teamID uuid.NullUUID
	)

	dest := []any{&folder.ID, &folder.Name, &folder.OwnerID, &teamID, &folder.CreatedAt, &folder.UpdatedAt}
	if withCount {
		dest = append(dest, &folder.NoteCount)
	}
	if err := row.Scan(dest...); err != nil {
		return models.Folder{}, err
	}

	if teamID.Valid {
		folder.TeamID = &teamID.UUID
	}
	return folder, nil
}

// CreateFolder persists a new folder. A duplicate name within the same scope
// (owner or team) is mapped to [ErrFolderAlreadyExists].
func (f *folderRepository) CreateFolder(ctx context.Context, folder models.Folder) (models.Folder, error) {
	log := logger.FromContext(ctx)

	row := f.DB.QueryRowContext(ctx, createFolder, folder.ID, folder.Name, folder.OwnerID, folder.TeamID)

	created, err := scanFolder(row, false)
	if err != nil {
		if postgresError(err) == pgerrcode.UniqueViolation {
			return models.Folder{}, ErrFolderAlreadyExists
		}
		log.Err(err).
			Str("func", "folderRepository.CreateFolder").
			Str("folder_id", folder.ID.String()).
			Msg("failed to insert folder")
		return models.Folder{}, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}

	return created, nil
}

// GetFolderByID retrieves a single folder with its derived note count.
// Returns [ErrFolderNotFound] when no such folder exists.
func (f *folderRepository) GetFolderByID(ctx context.Context, folderID uuid.UUID) (models.Folder, error) {
	log := logger.FromContext(ctx)

	row := f.DB.QueryRowContext(ctx, getFolderByID, folderID)

	folder, err := scanFolder(row, true)
	if err != nil {
		if isNoRows(err) {
			return models.Folder{}, ErrFolderNotFound
		}
		log.Err(err).
			Str("func", "folderRepository.GetFolderByID").
			Str("folder_id", folderID.String()).
			Msg("failed to get folder")
		return models.Folder{}, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}

	return folder, nil
}

// ListFolders retrieves a user's personal folders, sorted by name, each with
// its derived note count.
func (f *folderRepository) ListFolders(ctx context.Context, ownerID int64) ([]models.Folder, error) {
	return f.listFolders(ctx, "folderRepository.ListFolders", listFolders, ownerID)
}

// ListTeamFolders retrieves a team's folders, sorted by name, each with its
// derived note count.
func (f *folderRepository) ListTeamFolders(ctx context.Context, teamID uuid.UUID) ([]models.Folder, error) {
	return f.listFolders(ctx, "folderRepository.ListTeamFolders", listTeamFolders, teamID)
}

func (f *folderRepository) listFolders(ctx context.Context, funcName, query string, scope any) ([]models.Folder, error) {
	log := logger.FromContext(ctx)

	rows, err := f.DB.QueryContext(ctx, query, scope)
	if err != nil {
		log.Err(err).
			Str("func", funcName).
			Bool("retryable", f.retryable(err)).
			Msg("failed to execute query for listing folders")
		return nil, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}
	defer rows.Close()

	folders := make([]models.Folder, 0, 8)
	for rows.Next() {
		folder, scanErr := scanFolder(rows, true)
		if scanErr != nil {
			log.Err(scanErr).
				Str("func", funcName).
				Msg("failed to scan folder row")
			return nil, fmt.Errorf("%w: %w", ErrScanningRows, scanErr)
		}
		folders = append(folders, folder)
	}

	if err := rows.Err(); err != nil {
		log.Err(err).Str("func", funcName).Msg("rows iteration error")
		return nil, fmt.Errorf("%w: %w", ErrScanningRows, err)
	}

	return folders, nil
}

// RenameFolder changes the folder's display name. Returns
// [ErrFolderNotFound] when no row matches and [ErrFolderAlreadyExists] when
// the new name collides within the folder's scope.
//
// Notes reference folders by name, so a rename intentionally detaches the
// notes still pointing at the old name; callers move them explicitly.
func (f *folderRepository) RenameFolder(ctx context.Context, folderID uuid.UUID, name string) error {
	log := logger.FromContext(ctx)

	result, err := f.DB.ExecContext(ctx, renameFolder, folderID, name)
	if err != nil {
		if postgresError(err) == pgerrcode.UniqueViolation {
			return ErrFolderAlreadyExists
		}
		log.Err(err).
			Str("func", "folderRepository.RenameFolder").
			Str("folder_id", folderID.String()).
			Msg("failed to rename folder")
		return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		log.Err(err).Str("func", "folderRepository.RenameFolder").Msg("failed to read affected rows")
		return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}
	if affected == 0 {
		return ErrFolderNotFound
	}

	return nil
}

// DeleteFolder removes a folder and detaches its notes in one transaction.
// The notes themselves are kept. Returns [ErrFolderNotFound] when no such
// folder exists.
func (f *folderRepository) DeleteFolder(ctx context.Context, folderID uuid.UUID) error {
	log := logger.FromContext(ctx)

	tx, err := f.DB.BeginTx(ctx, nil)
	if err != nil {
		log.Err(err).Str("func", "folderRepository.DeleteFolder").Msg("failed to begin transaction")
		return fmt.Errorf("%w: %w", ErrBeginningTransaction, err)
	}
	defer tx.Rollback()

	var (
		name   string
		owner  int64
		teamID uuid.NullUUID
	)
	row := tx.QueryRowContext(ctx, `SELECT name, owner_id, team_id FROM folders WHERE id = $1;`, folderID)
	if err := row.Scan(&name, &owner, &teamID); err != nil {
		if isNoRows(err) {
			return ErrFolderNotFound
		}
		log.Err(err).
			Str("func", "folderRepository.DeleteFolder").
			Str("folder_id", folderID.String()).
			Msg("failed to get folder for deletion")
		return fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}

	if teamID.Valid {
		_, err = tx.ExecContext(ctx, clearNotesFolderTeam, name, teamID.UUID)
	} else {
		_, err = tx.ExecContext(ctx, clearNotesFolderPersonal, name, owner)
	}
	if err != nil {
		log.Err(err).
			Str("func", "folderRepository.DeleteFolder").
			Str("folder_id", folderID.String()).
			Msg("failed to detach folder notes")
		return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}

	if _, err := tx.ExecContext(ctx, deleteFolder, folderID); err != nil {
		log.Err(err).
			Str("func", "folderRepository.DeleteFolder").
			Str("folder_id", folderID.String()).
			Msg("failed to delete folder")
		return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}

	if err := tx.Commit(); err != nil {
		log.Err(err).Str("func", "folderRepository.DeleteFolder").Msg("failed to commit transaction")
		return fmt.Errorf("%w: %w", ErrCommitingTransaction, err)
	}

	return nil
}
