package http

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/teamnotes/note-keeper/internal/logger"
	"github.com/teamnotes/note-keeper/internal/utils"
	"github.com/teamnotes/note-keeper/models"
)

// actorID pulls the authenticated user id placed in the request context by
// the auth middleware. A missing id means the middleware did not run.
func actorID(w http.ResponseWriter, r *http.Request) (int64, bool) {
	userID, ok := utils.GetUserIDFromContext(r.Context())
	if !ok {
		logger.FromRequest(r).Error().Msg("no user id in request context")
		http.Error(w, http.StatusText(http.StatusUnauthorized), http.StatusUnauthorized)
		return 0, false
	}
	return userID, true
}

// pathID parses the named URL parameter as a UUID.
func pathID(w http.ResponseWriter, r *http.Request, name string) (uuid.UUID, bool) {
	id, err := uuid.Parse(chi.URLParam(r, name))
	if err != nil {
		logger.FromRequest(r).Err(err).Str("param", name).Msg("invalid id in url")
		http.Error(w, "invalid id", http.StatusBadRequest)
		return uuid.Nil, false
	}
	return id, true
}

func (h *Handler) createNote(w http.ResponseWriter, r *http.Request) {
	log := logger.FromRequest(r)

	userID, ok := actorID(w, r)
	if !ok {
		return
	}

	var req models.CreateNoteRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Err(err).Str("func", "*Handler.createNote").Msg("Invalid JSON was passed")
		http.Error(w, "Invalid JSON was passed", http.StatusBadRequest)
		return
	}

	note, err := h.services.NoteService.CreateNote(r.Context(), userID, req)
	if err != nil {
		log.Err(err).Str("func", "*Handler.createNote").Msg("error creating note")
		http.Error(w, err.Error(), statusFromError(err))
		return
	}

	utils.WriteJSON(w, note, http.StatusCreated)
}

func (h *Handler) getNote(w http.ResponseWriter, r *http.Request) {
	log := logger.FromRequest(r)

	userID, ok := actorID(w, r)
	if !ok {
		return
	}
	noteID, ok := pathID(w, r, "id")
	if !ok {
		return
	}

	note, access, err := h.services.NoteService.GetNote(r.Context(), userID, noteID)
	if err != nil {
		log.Err(err).Str("func", "*Handler.getNote").Msg("error getting note")
		http.Error(w, err.Error(), statusFromError(err))
		return
	}

	utils.WriteJSON(w, models.NoteResponse{Note: note, Access: access}, http.StatusOK)
}

func (h *Handler) updateNote(w http.ResponseWriter, r *http.Request) {
	log := logger.FromRequest(r)

	userID, ok := actorID(w, r)
	if !ok {
		return
	}
	noteID, ok := pathID(w, r, "id")
	if !ok {
		return
	}

	var req models.UpdateNoteRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Err(err).Str("func", "*Handler.updateNote").Msg("Invalid JSON was passed")
		http.Error(w, "Invalid JSON was passed", http.StatusBadRequest)
		return
	}

	note, err := h.services.NoteService.UpdateNote(r.Context(), userID, noteID, req)
	if err != nil {
		log.Err(err).Str("func", "*Handler.updateNote").Msg("error updating note")
		http.Error(w, err.Error(), statusFromError(err))
		return
	}

	utils.WriteJSON(w, note, http.StatusOK)
}

func (h *Handler) listNotes(w http.ResponseWriter, r *http.Request) {
	log := logger.FromRequest(r)

	userID, ok := actorID(w, r)
	if !ok {
		return
	}

	var query models.ListNotesQuery
	params := r.URL.Query()
	if params.Has("folder") {
		folder := params.Get("folder")
		query.Folder = &folder
	}
	if params.Has("starred") {
		starred := params.Get("starred") == "true"
		query.Starred = &starred
	}
	if params.Has("tag") {
		tag := params.Get("tag")
		query.Tag = &tag
	}

	notes, err := h.services.NoteService.ListNotes(r.Context(), userID, query)
	if err != nil {
		log.Err(err).Str("func", "*Handler.listNotes").Msg("error listing notes")
		http.Error(w, err.Error(), statusFromError(err))
		return
	}

	utils.WriteJSON(w, notes, http.StatusOK)
}

func (h *Handler) setNoteFolder(w http.ResponseWriter, r *http.Request) {
	log := logger.FromRequest(r)

	userID, ok := actorID(w, r)
	if !ok {
		return
	}
	noteID, ok := pathID(w, r, "id")
	if !ok {
		return
	}

	var req models.SetFolderRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Err(err).Str("func", "*Handler.setNoteFolder").Msg("Invalid JSON was passed")
		http.Error(w, "Invalid JSON was passed", http.StatusBadRequest)
		return
	}

	if err := h.services.NoteService.SetFolder(r.Context(), userID, noteID, req.Folder); err != nil {
		log.Err(err).Str("func", "*Handler.setNoteFolder").Msg("error moving note to folder")
		http.Error(w, err.Error(), statusFromError(err))
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) starNote(w http.ResponseWriter, r *http.Request) {
	log := logger.FromRequest(r)

	userID, ok := actorID(w, r)
	if !ok {
		return
	}
	noteID, ok := pathID(w, r, "id")
	if !ok {
		return
	}

	var req models.SetStarredRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Err(err).Str("func", "*Handler.starNote").Msg("Invalid JSON was passed")
		http.Error(w, "Invalid JSON was passed", http.StatusBadRequest)
		return
	}

	if err := h.services.NoteService.SetStarred(r.Context(), userID, noteID, req.Starred); err != nil {
		log.Err(err).Str("func", "*Handler.starNote").Msg("error starring note")
		http.Error(w, err.Error(), statusFromError(err))
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) shareNote(w http.ResponseWriter, r *http.Request) {
	log := logger.FromRequest(r)

	userID, ok := actorID(w, r)
	if !ok {
		return
	}
	noteID, ok := pathID(w, r, "id")
	if !ok {
		return
	}

	var req models.ShareNoteRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Err(err).Str("func", "*Handler.shareNote").Msg("Invalid JSON was passed")
		http.Error(w, "Invalid JSON was passed", http.StatusBadRequest)
		return
	}

	if err := h.services.NoteService.ShareNote(r.Context(), userID, noteID, req.UserID, req.Role); err != nil {
		log.Err(err).Str("func", "*Handler.shareNote").Msg("error sharing note")
		http.Error(w, err.Error(), statusFromError(err))
		return
	}

	w.WriteHeader(http.StatusCreated)
}

func (h *Handler) unshareNote(w http.ResponseWriter, r *http.Request) {
	log := logger.FromRequest(r)

	userID, ok := actorID(w, r)
	if !ok {
		return
	}
	noteID, ok := pathID(w, r, "id")
	if !ok {
		return
	}

	targetID, err := strconv.ParseInt(chi.URLParam(r, "userID"), 10, 64)
	if err != nil {
		log.Err(err).Str("func", "*Handler.unshareNote").Msg("invalid user id in url")
		http.Error(w, "invalid user id", http.StatusBadRequest)
		return
	}

	if err := h.services.NoteService.UnshareNote(r.Context(), userID, noteID, targetID); err != nil {
		log.Err(err).Str("func", "*Handler.unshareNote").Msg("error removing share")
		http.Error(w, err.Error(), statusFromError(err))
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) listNoteShares(w http.ResponseWriter, r *http.Request) {
	log := logger.FromRequest(r)

	userID, ok := actorID(w, r)
	if !ok {
		return
	}
	noteID, ok := pathID(w, r, "id")
	if !ok {
		return
	}

	shares, err := h.services.NoteService.ListShares(r.Context(), userID, noteID)
	if err != nil {
		log.Err(err).Str("func", "*Handler.listNoteShares").Msg("error listing shares")
		http.Error(w, err.Error(), statusFromError(err))
		return
	}

	utils.WriteJSON(w, shares, http.StatusOK)
}
