package models

import (
	"time"

	"github.com/google/uuid"
)

// ActivityAction names a recorded team event.
type ActivityAction string

const (
	ActivityNoteCreated   ActivityAction = "note_created"
	ActivityNoteUpdated   ActivityAction = "note_updated"
	ActivityNoteTrashed   ActivityAction = "note_trashed"
	ActivityNoteRestored  ActivityAction = "note_restored"
	ActivityNotePurged    ActivityAction = "note_purged"
	ActivityNoteShared    ActivityAction = "note_shared"
	ActivityMemberAdded   ActivityAction = "member_added"
	ActivityMemberRemoved ActivityAction = "member_removed"
	ActivityMemberChanged ActivityAction = "member_role_changed"
)

// Activity is a single entry in a team's activity feed.
type Activity struct {
	// ID is the unique identifier of the activity record.
	ID uuid.UUID `json:"id"`

	// TeamID is the team whose feed the entry belongs to.
	TeamID uuid.UUID `json:"team_id"`

	// ActorID is the user who performed the action. Zero for system
	// actions such as the scheduled trash sweep.
	ActorID int64 `json:"actor_id"`

	// Action names what happened.
	Action ActivityAction `json:"action"`

	// Subject is a short human-readable reference to the affected object
	// (typically the note title or member login).
	Subject string `json:"subject"`

	// CreatedAt is the timestamp when the event was recorded.
	CreatedAt time.Time `json:"created_at"`
}

// TableName returns the name of the database table
// associated with the Activity model.
func (a *Activity) TableName() string {
	return "activities"
}
