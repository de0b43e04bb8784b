package models

import (
	"time"

	"github.com/google/uuid"
)

// Team is a shared workspace. Notes attached to a team are governed by the
// members' team roles rather than by per-note shares.
type Team struct {
	// ID is the unique identifier of the team.
	ID uuid.UUID `json:"id"`

	// Name is the display name of the team.
	Name string `json:"name"`

	// OwnerID is the user who created the team.
	OwnerID int64 `json:"owner_id"`

	// Members lists everyone who belongs to the team along with their role.
	Members []TeamMember `json:"members,omitempty"`

	// CreatedAt is the timestamp when the team was created.
	CreatedAt time.Time `json:"created_at"`
}

// TableName returns the name of the database table
// associated with the Team model.
func (t *Team) TableName() string {
	return "teams"
}

// TeamMember is a single membership record inside a team.
type TeamMember struct {
	// TeamID is the team the membership belongs to.
	TeamID uuid.UUID `json:"team_id"`

	// UserID is the member.
	UserID int64 `json:"user_id"`

	// Role is the member's role within the team.
	Role TeamRole `json:"role"`

	// CreatedAt is the timestamp when the membership was created.
	CreatedAt time.Time `json:"created_at"`
}

// TableName returns the name of the database table
// associated with the TeamMember model.
func (m *TeamMember) TableName() string {
	return "team_members"
}

// TeamRole is a member's role within a team. Each role maps to a fixed
// capability set on the team's notes.
type TeamRole string

const (
	// TeamOwner can edit and delete any team note and manage members.
	TeamOwner TeamRole = "owner"

	// TeamAdmin has the same note capabilities as the owner.
	TeamAdmin TeamRole = "admin"

	// TeamEditor can create and edit team notes but cannot manage members.
	TeamEditor TeamRole = "editor"

	// TeamViewer has read-only access to team notes.
	TeamViewer TeamRole = "viewer"
)

// Valid reports whether the role is one of the known team roles.
func (r TeamRole) Valid() bool {
	switch r {
	case TeamOwner, TeamAdmin, TeamEditor, TeamViewer:
		return true
	}
	return false
}

// CanEditNotes reports whether the role allows mutating team notes.
func (r TeamRole) CanEditNotes() bool {
	switch r {
	case TeamOwner, TeamAdmin, TeamEditor:
		return true
	}
	return false
}

// CanManage reports whether the role allows managing members and team folders.
func (r TeamRole) CanManage() bool {
	return r == TeamOwner || r == TeamAdmin
}
