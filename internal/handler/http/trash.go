package http

import (
	"encoding/json"
	"net/http"

	"github.com/teamnotes/note-keeper/internal/logger"
	"github.com/teamnotes/note-keeper/internal/utils"
	"github.com/teamnotes/note-keeper/models"
)

func (h *Handler) trashNote(w http.ResponseWriter, r *http.Request) {
	log := logger.FromRequest(r)

	userID, ok := actorID(w, r)
	if !ok {
		return
	}
	noteID, ok := pathID(w, r, "id")
	if !ok {
		return
	}

	// ?permanent=true skips the trash and removes the note outright.
	if r.URL.Query().Get("permanent") == "true" {
		if err := h.services.LifecycleService.Purge(r.Context(), userID, noteID, true); err != nil {
			log.Err(err).Str("func", "*Handler.trashNote").Msg("error purging note")
			http.Error(w, err.Error(), statusFromError(err))
			return
		}
		w.WriteHeader(http.StatusNoContent)
		return
	}

	note, err := h.services.LifecycleService.SoftDelete(r.Context(), userID, noteID)
	if err != nil {
		log.Err(err).Str("func", "*Handler.trashNote").Msg("error trashing note")
		http.Error(w, err.Error(), statusFromError(err))
		return
	}

	utils.WriteJSON(w, note, http.StatusOK)
}

func (h *Handler) restoreNote(w http.ResponseWriter, r *http.Request) {
	log := logger.FromRequest(r)

	userID, ok := actorID(w, r)
	if !ok {
		return
	}
	noteID, ok := pathID(w, r, "id")
	if !ok {
		return
	}

	note, err := h.services.LifecycleService.Restore(r.Context(), userID, noteID)
	if err != nil {
		log.Err(err).Str("func", "*Handler.restoreNote").Msg("error restoring note")
		http.Error(w, err.Error(), statusFromError(err))
		return
	}

	utils.WriteJSON(w, note, http.StatusOK)
}

func (h *Handler) purgeNote(w http.ResponseWriter, r *http.Request) {
	log := logger.FromRequest(r)

	userID, ok := actorID(w, r)
	if !ok {
		return
	}
	noteID, ok := pathID(w, r, "id")
	if !ok {
		return
	}

	if err := h.services.LifecycleService.Purge(r.Context(), userID, noteID, false); err != nil {
		log.Err(err).Str("func", "*Handler.purgeNote").Msg("error purging note")
		http.Error(w, err.Error(), statusFromError(err))
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) listTrash(w http.ResponseWriter, r *http.Request) {
	log := logger.FromRequest(r)

	userID, ok := actorID(w, r)
	if !ok {
		return
	}

	trashed, err := h.services.LifecycleService.ListTrash(r.Context(), userID)
	if err != nil {
		log.Err(err).Str("func", "*Handler.listTrash").Msg("error listing trash")
		http.Error(w, err.Error(), statusFromError(err))
		return
	}

	utils.WriteJSON(w, trashed, http.StatusOK)
}

func (h *Handler) emptyTrash(w http.ResponseWriter, r *http.Request) {
	log := logger.FromRequest(r)

	userID, ok := actorID(w, r)
	if !ok {
		return
	}

	deleted, err := h.services.LifecycleService.EmptyTrash(r.Context(), userID)
	if err != nil {
		log.Err(err).Str("func", "*Handler.emptyTrash").Msg("error emptying trash")
		http.Error(w, err.Error(), statusFromError(err))
		return
	}

	utils.WriteJSON(w, models.EmptyTrashResponse{DeletedCount: deleted}, http.StatusOK)
}

func (h *Handler) bulkRestore(w http.ResponseWriter, r *http.Request) {
	log := logger.FromRequest(r)

	userID, ok := actorID(w, r)
	if !ok {
		return
	}

	var req models.BulkNotesRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Err(err).Str("func", "*Handler.bulkRestore").Msg("Invalid JSON was passed")
		http.Error(w, "Invalid JSON was passed", http.StatusBadRequest)
		return
	}

	results := h.services.LifecycleService.BulkRestore(r.Context(), userID, req.NoteIDs)
	utils.WriteJSON(w, results, http.StatusOK)
}

func (h *Handler) bulkPurge(w http.ResponseWriter, r *http.Request) {
	log := logger.FromRequest(r)

	userID, ok := actorID(w, r)
	if !ok {
		return
	}

	var req models.BulkNotesRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Err(err).Str("func", "*Handler.bulkPurge").Msg("Invalid JSON was passed")
		http.Error(w, "Invalid JSON was passed", http.StatusBadRequest)
		return
	}

	results := h.services.LifecycleService.BulkPurge(r.Context(), userID, req.NoteIDs)
	utils.WriteJSON(w, results, http.StatusOK)
}
