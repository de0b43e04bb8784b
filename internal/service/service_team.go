package service

import (
	"context"
	"fmt"
	"strconv"

	"github.com/google/uuid"
	"github.com/teamnotes/note-keeper/internal/logger"
	"github.com/teamnotes/note-keeper/internal/store"
	"github.com/teamnotes/note-keeper/internal/utils"
	"github.com/teamnotes/note-keeper/internal/validators"
	"github.com/teamnotes/note-keeper/models"
)

// teamService is the concrete implementation of [TeamService]. Member
// management requires an owner or admin role; plain members may only read.
type teamService struct {
	teamRepository store.TeamRepository
	userRepository store.UserRepository
	activity       ActivityService
	uuids          utils.Generator
	validator      validators.Validator

	logger *logger.Logger
}

// NewTeamService constructs a [TeamService].
func NewTeamService(teams store.TeamRepository, users store.UserRepository, activity ActivityService, uuids utils.Generator, logger *logger.Logger) TeamService {
	return &teamService{
		teamRepository: teams,
		userRepository: users,
		activity:       activity,
		uuids:          uuids,
		validator:      validators.NewRequestValidator(),
		logger:         logger,
	}
}

// CreateTeam creates a team and makes the creator its owner member.
func (t *teamService) CreateTeam(ctx context.Context, actorID int64, name string) (models.Team, error) {
	log := logger.FromContext(ctx)

	if err := t.validator.Validate(ctx, models.CreateTeamRequest{Name: name}); err != nil {
		return models.Team{}, fmt.Errorf("%w: %s", ErrValidation, err.Error())
	}

	team := models.Team{
		ID:      t.uuids.Generate(),
		Name:    name,
		OwnerID: actorID,
	}

	created, err := t.teamRepository.CreateTeam(ctx, team)
	if err != nil {
		log.Err(err).Str("func", "teamService.CreateTeam").Msg("team creation ended with error")
		return models.Team{}, fmt.Errorf("team creation ended with error: %w", err)
	}

	return created, nil
}

// GetTeam returns the team with its membership list. Only members may read.
func (t *teamService) GetTeam(ctx context.Context, actorID int64, teamID uuid.UUID) (models.Team, error) {
	if _, err := t.teamRepository.GetMembership(ctx, teamID, actorID); err != nil {
		return models.Team{}, ErrPermissionDenied
	}

	return t.teamRepository.GetTeamByID(ctx, teamID)
}

// AddMember adds a user to the team. Requires an owner or admin actor. The
// owner role cannot be granted; it belongs to the creator alone.
func (t *teamService) AddMember(ctx context.Context, actorID int64, teamID uuid.UUID, userID int64, role models.TeamRole) error {
	if err := t.validator.Validate(ctx, models.TeamMemberRequest{UserID: userID, Role: role}); err != nil {
		return fmt.Errorf("%w: %s", ErrValidation, err.Error())
	}
	if err := t.requireManage(ctx, actorID, teamID); err != nil {
		return err
	}

	member, err := t.userRepository.FindUserByID(ctx, userID)
	if err != nil {
		return err
	}

	err = t.teamRepository.AddMember(ctx, models.TeamMember{
		TeamID: teamID,
		UserID: member.UserID,
		Role:   role,
	})
	if err != nil {
		return err
	}

	t.record(ctx, teamID, actorID, models.ActivityMemberAdded, member.Login)
	return nil
}

// UpdateMemberRole changes a member's role. Requires an owner or admin
// actor; the owner's own membership cannot be altered.
func (t *teamService) UpdateMemberRole(ctx context.Context, actorID int64, teamID uuid.UUID, userID int64, role models.TeamRole) error {
	if err := t.validator.Validate(ctx, models.TeamMemberRequest{UserID: userID, Role: role}); err != nil {
		return fmt.Errorf("%w: %s", ErrValidation, err.Error())
	}
	if err := t.requireManage(ctx, actorID, teamID); err != nil {
		return err
	}
	if err := t.forbidTouchingOwner(ctx, teamID, userID); err != nil {
		return err
	}

	if err := t.teamRepository.UpdateMemberRole(ctx, teamID, userID, role); err != nil {
		return err
	}

	t.record(ctx, teamID, actorID, models.ActivityMemberChanged, strconv.FormatInt(userID, 10))
	return nil
}

// RemoveMember removes a user from the team. Requires an owner or admin
// actor, except that any member may remove themselves (leave the team).
// The owner can never be removed.
func (t *teamService) RemoveMember(ctx context.Context, actorID int64, teamID uuid.UUID, userID int64) error {
	if actorID != userID {
		if err := t.requireManage(ctx, actorID, teamID); err != nil {
			return err
		}
	}
	if err := t.forbidTouchingOwner(ctx, teamID, userID); err != nil {
		return err
	}

	if err := t.teamRepository.RemoveMember(ctx, teamID, userID); err != nil {
		return err
	}

	t.record(ctx, teamID, actorID, models.ActivityMemberRemoved, strconv.FormatInt(userID, 10))
	return nil
}

func (t *teamService) requireManage(ctx context.Context, actorID int64, teamID uuid.UUID) error {
	member, err := t.teamRepository.GetMembership(ctx, teamID, actorID)
	if err != nil {
		return ErrPermissionDenied
	}
	if !member.Role.CanManage() {
		return ErrPermissionDenied
	}
	return nil
}

func (t *teamService) forbidTouchingOwner(ctx context.Context, teamID uuid.UUID, userID int64) error {
	team, err := t.teamRepository.GetTeamByID(ctx, teamID)
	if err != nil {
		return err
	}
	if team.OwnerID == userID {
		return ErrPermissionDenied
	}
	return nil
}

func (t *teamService) record(ctx context.Context, teamID uuid.UUID, actorID int64, action models.ActivityAction, subject string) {
	if t.activity == nil {
		return
	}
	t.activity.Record(ctx, teamID, actorID, action, subject)
}
