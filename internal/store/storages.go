package store

import (
	"context"
	"fmt"

	"github.com/teamnotes/note-keeper/internal/config"
	"github.com/teamnotes/note-keeper/internal/logger"
)

// Storages is the container of all repositories backed by a single database
// connection.
type Storages struct {
	UserRepository     UserRepository
	NoteRepository     NoteRepository
	TeamRepository     TeamRepository
	FolderRepository   FolderRepository
	ActivityRepository ActivityRepository
}

// NewStorages connects to the configured database, applies pending
// migrations, and wires every repository to the shared connection.
func NewStorages(ctx context.Context, cfg config.Storage, log *logger.Logger) (*Storages, error) {
	db, err := NewConnectPostgres(ctx, cfg.DB, log)
	if err != nil {
		return nil, fmt.Errorf("error connecting to database: %w", err)
	}

	if err := db.Migrate(); err != nil {
		return nil, fmt.Errorf("error applying migrations: %w", err)
	}

	return &Storages{
		UserRepository:     NewUserRepository(db, log),
		NoteRepository:     NewNoteRepository(db, log),
		TeamRepository:     NewTeamRepository(db, log),
		FolderRepository:   NewFolderRepository(db, log),
		ActivityRepository: NewActivityRepository(db, log),
	}, nil
}
