package http

import (
	"errors"
	"net/http"

	"github.com/teamnotes/note-keeper/internal/service"
	"github.com/teamnotes/note-keeper/internal/store"
)

var errorStatusMap = map[error]int{
	service.ErrInvalidDataProvided:     http.StatusBadRequest,
	service.ErrValidation:              http.StatusBadRequest,
	service.ErrWrongPassword:           http.StatusUnauthorized,
	service.ErrTokenIsExpiredOrInvalid: http.StatusUnauthorized,
	service.ErrPermissionDenied:        http.StatusForbidden,
	service.ErrInvalidState:            http.StatusConflict,

	store.ErrLoginAlreadyExists:  http.StatusConflict,
	store.ErrShareAlreadyExists:  http.StatusConflict,
	store.ErrMemberAlreadyExists: http.StatusConflict,
	store.ErrFolderAlreadyExists: http.StatusConflict,
	store.ErrNoteStateConflict:   http.StatusConflict,

	store.ErrNoUserWasFound:     http.StatusNotFound,
	store.ErrNoteNotFound:       http.StatusNotFound,
	store.ErrShareNotFound:      http.StatusNotFound,
	store.ErrTeamNotFound:       http.StatusNotFound,
	store.ErrMembershipNotFound: http.StatusNotFound,
	store.ErrFolderNotFound:     http.StatusNotFound,

	store.ErrBuildingSQLQuery:     http.StatusInternalServerError,
	store.ErrExecutingQuery:       http.StatusInternalServerError,
	store.ErrBeginningTransaction: http.StatusInternalServerError,
	store.ErrCommitingTransaction: http.StatusInternalServerError,
	store.ErrExecutingStatement:   http.StatusInternalServerError,
	store.ErrScanningRow:          http.StatusInternalServerError,
	store.ErrScanningRows:         http.StatusInternalServerError,
}

func statusFromError(err error) int {
	for target, status := range errorStatusMap {
		if errors.Is(err, target) {
			return status
		}
	}
	return http.StatusInternalServerError
}
