package http

import (
	"encoding/json"
	"net/http"

	"github.com/teamnotes/note-keeper/internal/logger"
	"github.com/teamnotes/note-keeper/internal/utils"
	"github.com/teamnotes/note-keeper/models"
)

func (h *Handler) createFolder(w http.ResponseWriter, r *http.Request) {
	log := logger.FromRequest(r)

	userID, ok := actorID(w, r)
	if !ok {
		return
	}

	var req models.FolderRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Err(err).Str("func", "*Handler.createFolder").Msg("Invalid JSON was passed")
		http.Error(w, "Invalid JSON was passed", http.StatusBadRequest)
		return
	}

	folder, err := h.services.FolderService.CreateFolder(r.Context(), userID, req)
	if err != nil {
		log.Err(err).Str("func", "*Handler.createFolder").Msg("error creating folder")
		http.Error(w, err.Error(), statusFromError(err))
		return
	}

	utils.WriteJSON(w, folder, http.StatusCreated)
}

func (h *Handler) listFolders(w http.ResponseWriter, r *http.Request) {
	log := logger.FromRequest(r)

	userID, ok := actorID(w, r)
	if !ok {
		return
	}

	folders, err := h.services.FolderService.ListFolders(r.Context(), userID)
	if err != nil {
		log.Err(err).Str("func", "*Handler.listFolders").Msg("error listing folders")
		http.Error(w, err.Error(), statusFromError(err))
		return
	}

	utils.WriteJSON(w, folders, http.StatusOK)
}

func (h *Handler) listTeamFolders(w http.ResponseWriter, r *http.Request) {
	log := logger.FromRequest(r)

	userID, ok := actorID(w, r)
	if !ok {
		return
	}
	teamID, ok := pathID(w, r, "id")
	if !ok {
		return
	}

	folders, err := h.services.FolderService.ListTeamFolders(r.Context(), userID, teamID)
	if err != nil {
		log.Err(err).Str("func", "*Handler.listTeamFolders").Msg("error listing team folders")
		http.Error(w, err.Error(), statusFromError(err))
		return
	}

	utils.WriteJSON(w, folders, http.StatusOK)
}

func (h *Handler) renameFolder(w http.ResponseWriter, r *http.Request) {
	log := logger.FromRequest(r)

	userID, ok := actorID(w, r)
	if !ok {
		return
	}
	folderID, ok := pathID(w, r, "id")
	if !ok {
		return
	}

	var req models.FolderRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Err(err).Str("func", "*Handler.renameFolder").Msg("Invalid JSON was passed")
		http.Error(w, "Invalid JSON was passed", http.StatusBadRequest)
		return
	}

	if err := h.services.FolderService.RenameFolder(r.Context(), userID, folderID, req.Name); err != nil {
		log.Err(err).Str("func", "*Handler.renameFolder").Msg("error renaming folder")
		http.Error(w, err.Error(), statusFromError(err))
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) deleteFolder(w http.ResponseWriter, r *http.Request) {
	log := logger.FromRequest(r)

	userID, ok := actorID(w, r)
	if !ok {
		return
	}
	folderID, ok := pathID(w, r, "id")
	if !ok {
		return
	}

	if err := h.services.FolderService.DeleteFolder(r.Context(), userID, folderID); err != nil {
		log.Err(err).Str("func", "*Handler.deleteFolder").Msg("error deleting folder")
		http.Error(w, err.Error(), statusFromError(err))
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
