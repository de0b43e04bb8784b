package store

import "errors"

// Sentinel errors returned by repository methods to signal well-known failure
// conditions. Callers should use [errors.Is] to match against these values.
var (
	// ErrLoginAlreadyExists is returned when an attempt to register a new user
	// fails because a user with the same login already exists in the database.
	ErrLoginAlreadyExists = errors.New("login already exists")

	// ErrNoUserWasFound is returned when a query expected to match at least one
	// user record produces an empty result set.
	ErrNoUserWasFound = errors.New("no user was found")

	// ErrNoteNotFound is returned when a query or update targets a note that
	// does not exist in the database. A purged note is indistinguishable from
	// one that never existed.
	ErrNoteNotFound = errors.New("note was not found")

	// ErrNoteStateConflict is returned when a conditional state transition
	// (trash, restore) matches the note id but not its expected lifecycle
	// state, meaning another actor moved the note first.
	ErrNoteStateConflict = errors.New("note is not in the expected state")

	// ErrShareAlreadyExists is returned when adding a direct share for a user
	// who already holds one on the same note.
	ErrShareAlreadyExists = errors.New("note share already exists")

	// ErrShareNotFound is returned when removing or updating a direct share
	// that does not exist.
	ErrShareNotFound = errors.New("note share was not found")

	// ErrTeamNotFound is returned when a team id does not resolve.
	ErrTeamNotFound = errors.New("team was not found")

	// ErrMembershipNotFound is returned when a user holds no membership in
	// the queried team.
	ErrMembershipNotFound = errors.New("team membership was not found")

	// ErrMemberAlreadyExists is returned when adding a member who already
	// belongs to the team.
	ErrMemberAlreadyExists = errors.New("team member already exists")

	// ErrFolderNotFound is returned when a folder id does not resolve.
	ErrFolderNotFound = errors.New("folder was not found")

	// ErrFolderAlreadyExists is returned when creating a folder whose name is
	// already taken within the same personal or team scope.
	ErrFolderAlreadyExists = errors.New("folder already exists")
)

// Low-level database operation errors. These are returned (or wrapped) by
// repository methods when a SQL-level operation fails before any domain logic
// can be applied.
var (
	// ErrBuildingSQLQuery is returned when constructing a parameterised SQL
	// query fails (e.g. invalid argument count or unsupported type).
	ErrBuildingSQLQuery = errors.New("error building sql query")

	// ErrExecutingQuery is returned when executing a SELECT or similar
	// read-only query against the database fails.
	ErrExecutingQuery = errors.New("error executing sql query")

	// ErrExecutingStatement is returned when executing a DML statement
	// (INSERT, UPDATE, DELETE) fails.
	ErrExecutingStatement = errors.New("failed to execute statement")

	// ErrBeginningTransaction is returned when the database driver cannot
	// start a new transaction.
	ErrBeginningTransaction = errors.New("failed to begin transaction")

	// ErrCommitingTransaction is returned when committing an open transaction
	// fails. The transaction is considered rolled back at this point.
	ErrCommitingTransaction = errors.New("failed to commit transaction")

	// ErrScanningRow is returned when scanning column values from a single
	// result row into a destination struct fails.
	ErrScanningRow = errors.New("failed to scan row")

	// ErrScanningRows is returned when scanning column values during
	// multi-row iteration fails, typically mid-result-set.
	ErrScanningRows = errors.New("failed to scan rows")
)
