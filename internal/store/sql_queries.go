// SPDX-License-Identifier: Apache-2.0

package store

import (
	"encoding/json"

	sq "github.com/Masterminds/squirrel"
)

const (
	createUser = `INSERT INTO users (login, email, password_hash, name)
    VALUES ($1, $2, $3, $4)
    RETURNING user_id, login, email, password_hash, name, created_at;`

	findUserByLogin = `SELECT user_id, login, email, password_hash, name, created_at
    FROM users
    WHERE login = $1;`

	findUserByID = `SELECT user_id, login, email, password_hash, name, created_at
    FROM users
    WHERE user_id = $1;`
)

// noteColumns is the canonical column order used by every query that scans a
// full note row.
const noteColumns = `id, owner_id, title, content, folder, starred, tags, is_team_note, team_id, state, deleted_at, created_at, updated_at`

const (
	createNote = `INSERT INTO notes (id, owner_id, title, content, folder, starred, tags, is_team_note, team_id, state)
    VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, 'active')
    RETURNING ` + noteColumns + `;`

	getNoteByID = `SELECT ` + noteColumns + `
    FROM notes
    WHERE id = $1;`

	updateNote = `UPDATE notes
    SET title = $2, content = $3, tags = $4, updated_at = NOW()
    WHERE id = $1
    RETURNING ` + noteColumns + `;`

	setNoteFolder = `UPDATE notes
    SET folder = $2, updated_at = NOW()
    WHERE id = $1;`

	setNoteStarred = `UPDATE notes
    SET starred = $2, updated_at = NOW()
    WHERE id = $1;`

	// Conditional transitions: the state clause makes concurrent trash,
	// restore, and sweep operations race safely: the loser matches no row.
	trashNote = `UPDATE notes
    SET state = 'trashed', deleted_at = $2, updated_at = NOW()
    WHERE id = $1 AND state = 'active'
    RETURNING ` + noteColumns + `;`

	restoreNote = `UPDATE notes
    SET state = 'active', deleted_at = NULL, updated_at = NOW()
    WHERE id = $1 AND state = 'trashed'
    RETURNING ` + noteColumns + `;`

	deleteNote = `DELETE FROM notes
    WHERE id = $1;`

	listExpiredNotes = `SELECT ` + noteColumns + `
    FROM notes
    WHERE state = 'trashed' AND deleted_at < $1
    ORDER BY deleted_at;`

	noteExists = `SELECT state FROM notes WHERE id = $1;`
)

const (
	addNoteShare = `INSERT INTO note_shares (note_id, user_id, role, shared_by_id)
    VALUES ($1, $2, $3, $4);`

	removeNoteShare = `DELETE FROM note_shares
    WHERE note_id = $1 AND user_id = $2;`

	listNoteShares = `SELECT note_id, user_id, role, shared_by_id, created_at
    FROM note_shares
    WHERE note_id = $1
    ORDER BY created_at;`
)

const (
	createTeam = `INSERT INTO teams (id, name, owner_id)
    VALUES ($1, $2, $3)
    RETURNING id, name, owner_id, created_at;`

	getTeamByID = `SELECT id, name, owner_id, created_at
    FROM teams
    WHERE id = $1;`

	listTeamMembers = `SELECT team_id, user_id, role, created_at
    FROM team_members
    WHERE team_id = $1
    ORDER BY created_at;`

	addTeamMember = `INSERT INTO team_members (team_id, user_id, role)
    VALUES ($1, $2, $3);`

	updateTeamMemberRole = `UPDATE team_members
    SET role = $3
    WHERE team_id = $1 AND user_id = $2;`

	removeTeamMember = `DELETE FROM team_members
    WHERE team_id = $1 AND user_id = $2;`

	getTeamMembership = `SELECT team_id, user_id, role, created_at
    FROM team_members
    WHERE team_id = $1 AND user_id = $2;`
)

const (
	createFolder = `INSERT INTO folders (id, name, owner_id, team_id)
    VALUES ($1, $2, $3, $4)
    RETURNING id, name, owner_id, team_id, created_at, updated_at;`

	getFolderByID = `SELECT f.id, f.name, f.owner_id, f.team_id, f.created_at, f.updated_at,
        (SELECT COUNT(*) FROM notes n WHERE n.folder = f.name AND n.state = 'active'
            AND ((f.team_id IS NULL AND n.owner_id = f.owner_id AND NOT n.is_team_note)
              OR (f.team_id IS NOT NULL AND n.team_id = f.team_id))) AS note_count
    FROM folders f
    WHERE f.id = $1;`

	renameFolder = `UPDATE folders
    SET name = $2, updated_at = NOW()
    WHERE id = $1;`

	deleteFolder = `DELETE FROM folders
    WHERE id = $1;`

	listFolders = `SELECT f.id, f.name, f.owner_id, f.team_id, f.created_at, f.updated_at,
        (SELECT COUNT(*) FROM notes n WHERE n.folder = f.name AND n.state = 'active'
            AND n.owner_id = f.owner_id AND NOT n.is_team_note) AS note_count
    FROM folders f
    WHERE f.owner_id = $1 AND f.team_id IS NULL
    ORDER BY f.name;`

	listTeamFolders = `SELECT f.id, f.name, f.owner_id, f.team_id, f.created_at, f.updated_at,
        (SELECT COUNT(*) FROM notes n WHERE n.folder = f.name AND n.state = 'active'
            AND n.team_id = f.team_id) AS note_count
    FROM folders f
    WHERE f.team_id = $1
    ORDER BY f.name;`

	// Folder deletion keeps the notes and only detaches them.
	clearNotesFolderPersonal = `UPDATE notes
    SET folder = NULL, updated_at = NOW()
    WHERE folder = $1 AND owner_id = $2 AND NOT is_team_note;`

	clearNotesFolderTeam = `UPDATE notes
    SET folder = NULL, updated_at = NOW()
    WHERE folder = $1 AND team_id = $2;`
)

const (
	recordActivity = `INSERT INTO activities (id, team_id, actor_id, action, subject)
    VALUES ($1, $2, $3, $4, $5);`

	listTeamActivity = `SELECT id, team_id, actor_id, action, subject, created_at
    FROM activities
    WHERE team_id = $1
    ORDER BY created_at DESC
    LIMIT $2;`
)

// psql is the shared squirrel statement builder configured for PostgreSQL
// positional placeholders.
var psql = sq.StatementBuilder.PlaceholderFormat(sq.Dollar)

// buildListNotesQuery assembles the dynamic note listing query from a
// [NoteFilter]. Nil filter fields contribute no WHERE clause.
func buildListNotesQuery(filter NoteFilter) (string, []any, error) {
	builder := psql.
		Select(noteColumns).
		From("notes")

	if filter.State != "" {
		builder = builder.Where(sq.Eq{"state": string(filter.State)})
	}
	if filter.OwnerID != nil {
		builder = builder.Where(sq.Eq{"owner_id": *filter.OwnerID})
	}
	if filter.TeamID != nil {
		builder = builder.Where(sq.Eq{"team_id": *filter.TeamID})
	}
	if filter.Folder != nil {
		builder = builder.Where(sq.Eq{"folder": *filter.Folder})
	}
	if filter.Starred != nil {
		builder = builder.Where(sq.Eq{"starred": *filter.Starred})
	}
	if filter.Tag != nil {
		// the containment literal goes through json.Marshal so quotes and
		// backslashes inside the tag stay valid JSON for the ::jsonb cast
		tag, err := json.Marshal([]string{*filter.Tag})
		if err != nil {
			return "", nil, err
		}
		builder = builder.Where(sq.Expr("tags @> ?::jsonb", string(tag)))
	}

	return builder.OrderBy("updated_at DESC").ToSql()
}
