package store

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/teamnotes/note-keeper/internal/logger"
	"github.com/teamnotes/note-keeper/models"
)

// activityRepository is the PostgreSQL-backed implementation of
// [ActivityRepository].
type activityRepository struct {
	*DB
	logger *logger.Logger
}

// NewActivityRepository constructs an [ActivityRepository] backed by the
// provided database connection and logger.
func NewActivityRepository(db *DB, logger *logger.Logger) ActivityRepository {
	logger.Debug().Msg("creating activity repository")
	return &activityRepository{
		DB:     db,
		logger: logger,
	}
}

// RecordActivity appends one entry to a team's activity feed.
func (a *activityRepository) RecordActivity(ctx context.Context, activity models.Activity) error {
	log := logger.FromContext(ctx)

	_, err := a.DB.ExecContext(ctx, recordActivity,
		activity.ID, activity.TeamID, activity.ActorID, activity.Action, activity.Subject)
	if err != nil {
		log.Err(err).
			Str("func", "activityRepository.RecordActivity").
			Str("team_id", activity.TeamID.String()).
			Str("action", string(activity.Action)).
			Bool("retryable", a.retryable(err)).
			Msg("failed to insert activity")
		return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}

	return nil
}

// ListTeamActivity retrieves the newest feed entries for a team, capped at
// limit.
func (a *activityRepository) ListTeamActivity(ctx context.Context, teamID uuid.UUID, limit int) ([]models.Activity, error) {
	log := logger.FromContext(ctx)

	rows, err := a.DB.QueryContext(ctx, listTeamActivity, teamID, limit)
	if err != nil {
		log.Err(err).
			Str("func", "activityRepository.ListTeamActivity").
			Str("team_id", teamID.String()).
			Msg("failed to execute query for listing activity")
		return nil, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}
	defer rows.Close()

	feed := make([]models.Activity, 0, limit)
	for rows.Next() {
		var entry models.Activity
		if scanErr := rows.Scan(&entry.ID, &entry.TeamID, &entry.ActorID, &entry.Action, &entry.Subject, &entry.CreatedAt); scanErr != nil {
			log.Err(scanErr).
				Str("func", "activityRepository.ListTeamActivity").
				Msg("failed to scan activity row")
			return nil, fmt.Errorf("%w: %w", ErrScanningRows, scanErr)
		}
		feed = append(feed, entry)
	}

	if err := rows.Err(); err != nil {
		log.Err(err).
			Str("func", "activityRepository.ListTeamActivity").
			Msg("rows iteration error")
		return nil, fmt.Errorf("%w: %w", ErrScanningRows, err)
	}

	return feed, nil
}
