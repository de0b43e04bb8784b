package service

import (
	"github.com/teamnotes/note-keeper/internal/config"
	"github.com/teamnotes/note-keeper/internal/crypto"
	"github.com/teamnotes/note-keeper/internal/logger"
	"github.com/teamnotes/note-keeper/internal/store"
	"github.com/teamnotes/note-keeper/internal/utils"
)

// Services is the container of all business-logic services wired to the
// storage layer.
type Services struct {
	AuthService      AuthService
	NoteService      NoteService
	LifecycleService LifecycleService
	TeamService      TeamService
	FolderService    FolderService
	ActivityService  ActivityService
	AppInfoService   AppInfoService
}

// NewServices wires every service to the shared repositories and
// configuration.
func NewServices(storages *store.Storages, cfg config.StructuredConfig, logger *logger.Logger) (*Services, error) {
	appInfo, err := NewAppInfoService(cfg.App, logger)
	if err != nil {
		return nil, err
	}

	uuids := utils.NewUUIDGenerator()
	hasher := crypto.NewPasswordHasher()

	activity := NewActivityService(storages.ActivityRepository, storages.TeamRepository, uuids, cfg.App, logger)

	return &Services{
		AuthService:      NewAuthService(storages.UserRepository, hasher, cfg.App, logger),
		NoteService:      NewNoteService(storages.NoteRepository, storages.TeamRepository, storages.UserRepository, activity, uuids, logger),
		LifecycleService: NewLifecycleService(storages.NoteRepository, storages.TeamRepository, activity, cfg.Workers.RetentionDays, logger),
		TeamService:      NewTeamService(storages.TeamRepository, storages.UserRepository, activity, uuids, logger),
		FolderService:    NewFolderService(storages.FolderRepository, storages.TeamRepository, uuids, logger),
		ActivityService:  activity,
		AppInfoService:   appInfo,
	}, nil
}
