package models

// AccessRole is the effective access level a user holds on a note after all
// authority sources (ownership, team role, direct shares) are merged.
type AccessRole string

const (
	// AccessOwner is held by the note's creator.
	AccessOwner AccessRole = "owner"

	// AccessEditor allows reading and mutating the note.
	AccessEditor AccessRole = "editor"

	// AccessViewer allows reading only.
	AccessViewer AccessRole = "viewer"

	// AccessNone means the user cannot see the note at all.
	AccessNone AccessRole = "none"
)

// AccessSource identifies which authority source produced the effective role.
type AccessSource string

const (
	// SourceOwner means the user owns the note.
	SourceOwner AccessSource = "owner"

	// SourceTeam means the role comes from the user's team membership.
	SourceTeam AccessSource = "team"

	// SourceDirectShare means the role comes from a per-note share.
	SourceDirectShare AccessSource = "direct-share"

	// SourceNone means no authority source matched.
	SourceNone AccessSource = "none"
)

// Access is the result of resolving a user's effective role on a note.
type Access struct {
	// Role is the merged access level.
	Role AccessRole `json:"role"`

	// CanEdit reports whether the role permits mutating the note.
	CanEdit bool `json:"can_edit"`

	// Source names the authority source that produced Role.
	Source AccessSource `json:"source"`

	// ConflictingShare is set when a team note also carries a direct share
	// for the same user. The share never changes the decision; it is
	// surfaced so a UI can warn about the ambiguity.
	ConflictingShare *NoteShare `json:"conflicting_share,omitempty"`
}

// Denied is the zero-authority access value returned when no source matches.
func Denied() Access {
	return Access{Role: AccessNone, CanEdit: false, Source: SourceNone}
}
