package store

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgerrcode"
	"github.com/teamnotes/note-keeper/internal/logger"
	"github.com/teamnotes/note-keeper/models"
)

// teamRepository is the PostgreSQL-backed implementation of [TeamRepository].
type teamRepository struct {
	*DB
	logger *logger.Logger
}

// NewTeamRepository constructs a [TeamRepository] backed by the provided
// database connection and logger.
func NewTeamRepository(db *DB, logger *logger.Logger) TeamRepository {
	logger.Debug().Msg("creating team repository")
	return &teamRepository{
		DB:     db,
		logger: logger,
	}
}

// CreateTeam persists a new team and returns the canonical database
// representation. The creator's owner membership is inserted in the same
// transaction so that a team can never exist without an owner.
func (t *teamRepository) CreateTeam(ctx context.Context, team models.Team) (models.Team, error) {
	log := logger.FromContext(ctx)

	tx, err := t.DB.BeginTx(ctx, nil)
	if err != nil {
		log.Err(err).Str("func", "teamRepository.CreateTeam").Msg("failed to begin transaction")
		return models.Team{}, fmt.Errorf("%w: %w", ErrBeginningTransaction, err)
	}
	defer tx.Rollback()

	var created models.Team
	row := tx.QueryRowContext(ctx, createTeam, team.ID, team.Name, team.OwnerID)
	if err := row.Scan(&created.ID, &created.Name, &created.OwnerID, &created.CreatedAt); err != nil {
		log.Err(err).
			Str("func", "teamRepository.CreateTeam").
			Str("team_id", team.ID.String()).
			Msg("failed to insert team")
		return models.Team{}, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}

	if _, err := tx.ExecContext(ctx, addTeamMember, created.ID, created.OwnerID, models.TeamOwner); err != nil {
		log.Err(err).
			Str("func", "teamRepository.CreateTeam").
			Str("team_id", team.ID.String()).
			Msg("failed to insert owner membership")
		return models.Team{}, fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}

	if err := tx.Commit(); err != nil {
		log.Err(err).Str("func", "teamRepository.CreateTeam").Msg("failed to commit transaction")
		return models.Team{}, fmt.Errorf("%w: %w", ErrCommitingTransaction, err)
	}

	created.Members = []models.TeamMember{{TeamID: created.ID, UserID: created.OwnerID, Role: models.TeamOwner}}
	return created, nil
}

// GetTeamByID retrieves a team together with its full membership list.
// Returns [ErrTeamNotFound] when no such team exists.
func (t *teamRepository) GetTeamByID(ctx context.Context, teamID uuid.UUID) (models.Team, error) {
	log := logger.FromContext(ctx)

	var team models.Team
	row := t.DB.QueryRowContext(ctx, getTeamByID, teamID)
	if err := row.Scan(&team.ID, &team.Name, &team.OwnerID, &team.CreatedAt); err != nil {
		if isNoRows(err) {
			return models.Team{}, ErrTeamNotFound
		}
		log.Err(err).
			Str("func", "teamRepository.GetTeamByID").
			Str("team_id", teamID.String()).
			Msg("failed to get team")
		return models.Team{}, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}

	rows, err := t.DB.QueryContext(ctx, listTeamMembers, teamID)
	if err != nil {
		log.Err(err).
			Str("func", "teamRepository.GetTeamByID").
			Str("team_id", teamID.String()).
			Msg("failed to list members")
		return models.Team{}, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}
	defer rows.Close()

	members := make([]models.TeamMember, 0, 8)
	for rows.Next() {
		var member models.TeamMember
		if scanErr := rows.Scan(&member.TeamID, &member.UserID, &member.Role, &member.CreatedAt); scanErr != nil {
			log.Err(scanErr).
				Str("func", "teamRepository.GetTeamByID").
				Msg("failed to scan member row")
			return models.Team{}, fmt.Errorf("%w: %w", ErrScanningRows, scanErr)
		}
		members = append(members, member)
	}
	if err := rows.Err(); err != nil {
		log.Err(err).Str("func", "teamRepository.GetTeamByID").Msg("rows iteration error")
		return models.Team{}, fmt.Errorf("%w: %w", ErrScanningRows, err)
	}

	team.Members = members
	return team, nil
}

// AddMember records a membership. A duplicate (team_id, user_id) pair is
// mapped to [ErrMemberAlreadyExists].
func (t *teamRepository) AddMember(ctx context.Context, member models.TeamMember) error {
	log := logger.FromContext(ctx)

	_, err := t.DB.ExecContext(ctx, addTeamMember, member.TeamID, member.UserID, member.Role)
	if err != nil {
		if postgresError(err) == pgerrcode.UniqueViolation {
			return ErrMemberAlreadyExists
		}
		log.Err(err).
			Str("func", "teamRepository.AddMember").
			Str("team_id", member.TeamID.String()).
			Int64("user_id", member.UserID).
			Msg("failed to insert membership")
		return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}

	return nil
}

// UpdateMemberRole changes an existing member's role. Returns
// [ErrMembershipNotFound] when the user is not a member of the team.
func (t *teamRepository) UpdateMemberRole(ctx context.Context, teamID uuid.UUID, userID int64, role models.TeamRole) error {
	return t.execMembershipStatement(ctx, "teamRepository.UpdateMemberRole", updateTeamMemberRole, teamID, userID, role)
}

// RemoveMember deletes a membership. Returns [ErrMembershipNotFound] when
// the user is not a member of the team.
func (t *teamRepository) RemoveMember(ctx context.Context, teamID uuid.UUID, userID int64) error {
	return t.execMembershipStatement(ctx, "teamRepository.RemoveMember", removeTeamMember, teamID, userID)
}

// execMembershipStatement runs a single-membership statement and maps a zero
// affected-row count to [ErrMembershipNotFound].
func (t *teamRepository) execMembershipStatement(ctx context.Context, funcName, query string, teamID uuid.UUID, userID int64, extra ...any) error {
	log := logger.FromContext(ctx)

	args := append([]any{teamID, userID}, extra...)
	result, err := t.DB.ExecContext(ctx, query, args...)
	if err != nil {
		log.Err(err).
			Str("func", funcName).
			Str("team_id", teamID.String()).
			Int64("user_id", userID).
			Msg("failed to execute statement")
		return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		log.Err(err).Str("func", funcName).Msg("failed to read affected rows")
		return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}
	if affected == 0 {
		return ErrMembershipNotFound
	}

	return nil
}

// GetMembership retrieves a single membership record. Returns
// [ErrMembershipNotFound] when the user does not belong to the team; the
// permission resolver treats that as "no team role".
func (t *teamRepository) GetMembership(ctx context.Context, teamID uuid.UUID, userID int64) (models.TeamMember, error) {
	log := logger.FromContext(ctx)

	var member models.TeamMember
	row := t.DB.QueryRowContext(ctx, getTeamMembership, teamID, userID)
	if err := row.Scan(&member.TeamID, &member.UserID, &member.Role, &member.CreatedAt); err != nil {
		if isNoRows(err) {
			return models.TeamMember{}, ErrMembershipNotFound
		}
		log.Err(err).
			Str("func", "teamRepository.GetMembership").
			Str("team_id", teamID.String()).
			Int64("user_id", userID).
			Msg("failed to get membership")
		return models.TeamMember{}, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}

	return member, nil
}
