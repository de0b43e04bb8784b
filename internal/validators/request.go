package validators

import (
	"context"
	"strings"

	"github.com/teamnotes/note-keeper/models"
)

// Field name constants used to specify which fields should be validated.
// These constants are passed to Validate to restrict validation to a subset
// of fields (field-level scoping).
const (
	// FieldTitle targets the title of a note request.
	FieldTitle = "title"

	// FieldContent targets the content of a note request.
	FieldContent = "content"

	// FieldName targets the display name of a team or folder request.
	FieldName = "name"

	// FieldRole targets the role carried by a share or membership request.
	FieldRole = "role"
)

type requestValidator struct{}

// NewRequestValidator returns a Validator for the API request models. Field
// errors are aggregated into a single error whose message joins the
// individual failures with ", ".
func NewRequestValidator() Validator {
	return &requestValidator{}
}

func (v *requestValidator) Validate(_ context.Context, value any, fields ...string) error {
	switch req := value.(type) {
	case models.CreateNoteRequest:
		return v.validateCreateNote(req, fields...)
	case models.UpdateNoteRequest:
		return v.validateUpdateNote(req)
	case models.ShareNoteRequest:
		return v.validateShareRole(req.Role)
	case models.CreateTeamRequest:
		return v.validateRequired(req.Name, ErrTeamNameRequired)
	case models.TeamMemberRequest:
		return v.validateMemberRole(req.Role)
	case models.FolderRequest:
		return v.validateRequired(req.Name, ErrFolderNameRequired)
	default:
		return ErrUnsupportedType
	}
}

// validateCreateNote checks every field unless a field-scoping list narrows
// the checks. All failures are reported in one aggregated error.
func (v *requestValidator) validateCreateNote(req models.CreateNoteRequest, fields ...string) error {
	checkAll := len(fields) == 0

	var failures []string
	if (checkAll || contains(fields, FieldTitle)) && strings.TrimSpace(req.Title) == "" {
		failures = append(failures, ErrTitleRequired.Error())
	}
	if (checkAll || contains(fields, FieldContent)) && req.Content == "" {
		failures = append(failures, ErrContentRequired.Error())
	}

	return joined(failures)
}

// validateUpdateNote only checks fields the request actually sets: a nil
// field means "leave unchanged" and is always valid.
func (v *requestValidator) validateUpdateNote(req models.UpdateNoteRequest) error {
	var failures []string
	if req.Title != nil && strings.TrimSpace(*req.Title) == "" {
		failures = append(failures, ErrTitleRequired.Error())
	}
	if req.Content != nil && *req.Content == "" {
		failures = append(failures, ErrContentRequired.Error())
	}

	return joined(failures)
}

func (v *requestValidator) validateShareRole(role models.ShareRole) error {
	if !role.Valid() {
		return ErrInvalidShareRole
	}
	return nil
}

// validateMemberRole rejects unknown roles and the owner role: ownership is
// established at team creation and never granted through membership calls.
func (v *requestValidator) validateMemberRole(role models.TeamRole) error {
	if !role.Valid() || role == models.TeamOwner {
		return ErrInvalidMemberRole
	}
	return nil
}

func (v *requestValidator) validateRequired(value string, failure error) error {
	if strings.TrimSpace(value) == "" {
		return failure
	}
	return nil
}

func contains(fields []string, field string) bool {
	for _, f := range fields {
		if f == field {
			return true
		}
	}
	return false
}

type fieldErrors string

func (e fieldErrors) Error() string { return string(e) }

func joined(failures []string) error {
	if len(failures) == 0 {
		return nil
	}
	return fieldErrors(strings.Join(failures, ", "))
}
