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

// folderService is the concrete implementation of [FolderService]. Personal
// folders belong to their creator; team folders require an owner or admin
// team role to create, rename, or delete.
type folderService struct {
	folderRepository store.FolderRepository
	teamRepository   store.TeamRepository
	uuids            utils.Generator
	validator        validators.Validator

	logger *logger.Logger
}

// NewFolderService constructs a [FolderService].
func NewFolderService(folders store.FolderRepository, teams store.TeamRepository, uuids utils.Generator, logger *logger.Logger) FolderService {
	return &folderService{
		folderRepository: folders,
		teamRepository:   teams,
		uuids:            uuids,
		validator:        validators.NewRequestValidator(),
		logger:           logger,
	}
}

// CreateFolder creates a personal folder, or a team folder when TeamID is
// set (owner/admin only).
func (f *folderService) CreateFolder(ctx context.Context, actorID int64, req models.FolderRequest) (models.Folder, error) {
	if err := f.validator.Validate(ctx, req); err != nil {
		return models.Folder{}, fmt.Errorf("%w: %s", ErrValidation, err.Error())
	}

	if req.TeamID != nil {
		if err := f.requireManage(ctx, actorID, *req.TeamID); err != nil {
			return models.Folder{}, err
		}
	}

	folder := models.Folder{
		ID:      f.uuids.Generate(),
		Name:    req.Name,
		OwnerID: actorID,
		TeamID:  req.TeamID,
	}

	return f.folderRepository.CreateFolder(ctx, folder)
}

// ListFolders lists the actor's personal folders with derived note counts.
func (f *folderService) ListFolders(ctx context.Context, actorID int64) ([]models.Folder, error) {
	return f.folderRepository.ListFolders(ctx, actorID)
}

// ListTeamFolders lists a team's folders. Any member may list.
func (f *folderService) ListTeamFolders(ctx context.Context, actorID int64, teamID uuid.UUID) ([]models.Folder, error) {
	if _, err := f.teamRepository.GetMembership(ctx, teamID, actorID); err != nil {
		return nil, ErrPermissionDenied
	}
	return f.folderRepository.ListTeamFolders(ctx, teamID)
}

// RenameFolder changes a folder's name. Notes keep referencing the old name
// and are therefore detached by the rename.
func (f *folderService) RenameFolder(ctx context.Context, actorID int64, folderID uuid.UUID, name string) error {
	if err := f.validator.Validate(ctx, models.FolderRequest{Name: name}); err != nil {
		return fmt.Errorf("%w: %s", ErrValidation, err.Error())
	}
	if err := f.requireFolderAccess(ctx, actorID, folderID); err != nil {
		return err
	}

	return f.folderRepository.RenameFolder(ctx, folderID, name)
}

// DeleteFolder removes a folder and detaches its notes. The notes survive.
func (f *folderService) DeleteFolder(ctx context.Context, actorID int64, folderID uuid.UUID) error {
	if err := f.requireFolderAccess(ctx, actorID, folderID); err != nil {
		return err
	}

	return f.folderRepository.DeleteFolder(ctx, folderID)
}

// requireFolderAccess gates folder mutations: personal folders are writable
// by their owner only, team folders by owner/admin team roles.
func (f *folderService) requireFolderAccess(ctx context.Context, actorID int64, folderID uuid.UUID) error {
	folder, err := f.folderRepository.GetFolderByID(ctx, folderID)
	if err != nil {
		return err
	}

	if folder.TeamID != nil {
		return f.requireManage(ctx, actorID, *folder.TeamID)
	}
	if folder.OwnerID != actorID {
		return ErrPermissionDenied
	}
	return nil
}

func (f *folderService) requireManage(ctx context.Context, actorID int64, teamID uuid.UUID) error {
	member, err := f.teamRepository.GetMembership(ctx, teamID, actorID)
	if err != nil {
		return ErrPermissionDenied
	}
	if !member.Role.CanManage() {
		return ErrPermissionDenied
	}
	return nil
}
