package validators

import "errors"

var (
	ErrUnsupportedType = errors.New("unsupported type for validation")
	ErrUnknownField    = errors.New("unknown field for validation")

	ErrTitleRequired      = errors.New("title is required")
	ErrContentRequired    = errors.New("content is required")
	ErrTeamNameRequired   = errors.New("team name is required")
	ErrFolderNameRequired = errors.New("folder name is required")
	ErrInvalidShareRole   = errors.New("share role must be viewer or editor")
	ErrInvalidMemberRole  = errors.New("member role must be admin, editor or viewer")
)
