package service

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/teamnotes/note-keeper/internal/config"
	"github.com/teamnotes/note-keeper/internal/logger"
	"github.com/teamnotes/note-keeper/internal/store"
	"github.com/teamnotes/note-keeper/internal/utils"
	"github.com/teamnotes/note-keeper/models"
)

const webhookTimeout = 5 * time.Second

// activityService is the concrete implementation of [ActivityService]. It
// persists team events and, when a webhook URL is configured, pushes each
// event to it. Both paths are best-effort: a recording failure is logged and
// never surfaced to the operation that triggered it.
type activityService struct {
	activityRepository store.ActivityRepository
	teamRepository     store.TeamRepository
	uuids              utils.Generator

	client     *utils.HTTPClient
	webhookURL string

	logger *logger.Logger
}

// NewActivityService constructs an [ActivityService]. When
// cfg.ActivityWebhookURL is empty no webhook client is created and events
// are only persisted.
func NewActivityService(activities store.ActivityRepository, teams store.TeamRepository, uuids utils.Generator, cfg config.App, logger *logger.Logger) ActivityService {
	s := &activityService{
		activityRepository: activities,
		teamRepository:     teams,
		uuids:              uuids,
		webhookURL:         cfg.ActivityWebhookURL,
		logger:             logger,
	}

	if s.webhookURL != "" {
		client := utils.NewHTTPClient()
		client.SetTimeout(webhookTimeout)
		s.client = client
	}

	return s
}

// Record persists one team event and pushes it to the configured webhook.
// Failures are logged, never returned: an activity feed hiccup must not fail
// the note operation that produced the event.
func (a *activityService) Record(ctx context.Context, teamID uuid.UUID, actorID int64, action models.ActivityAction, subject string) {
	log := logger.FromContext(ctx)

	activity := models.Activity{
		ID:      a.uuids.Generate(),
		TeamID:  teamID,
		ActorID: actorID,
		Action:  action,
		Subject: subject,
	}

	if err := a.activityRepository.RecordActivity(ctx, activity); err != nil {
		log.Err(err).
			Str("func", "activityService.Record").
			Str("team_id", teamID.String()).
			Str("action", string(action)).
			Msg("failed to record activity")
		return
	}

	a.push(ctx, activity)
}

// push delivers the event to the webhook URL. Non-2xx responses and
// transport errors are logged and dropped.
func (a *activityService) push(ctx context.Context, activity models.Activity) {
	if a.client == nil {
		return
	}

	log := logger.FromContext(ctx)

	resp, err := a.client.R().
		SetContext(ctx).
		SetHeader("Content-Type", "application/json").
		SetBody(activity).
		Post(a.webhookURL)
	if err != nil {
		log.Err(err).
			Str("func", "activityService.push").
			Str("action", string(activity.Action)).
			Msg("activity webhook delivery failed")
		return
	}
	if resp.IsError() {
		log.Warn().
			Str("func", "activityService.push").
			Int("status", resp.StatusCode()).
			Msg("activity webhook rejected event")
	}
}

// ListTeamActivity returns the newest feed entries for a team. Only members
// may read the feed.
func (a *activityService) ListTeamActivity(ctx context.Context, actorID int64, teamID uuid.UUID, limit int) ([]models.Activity, error) {
	if _, err := a.teamRepository.GetMembership(ctx, teamID, actorID); err != nil {
		return nil, ErrPermissionDenied
	}

	if limit <= 0 || limit > 100 {
		limit = 50
	}

	return a.activityRepository.ListTeamActivity(ctx, teamID, limit)
}
