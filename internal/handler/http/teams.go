package http

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/teamnotes/note-keeper/internal/logger"
	"github.com/teamnotes/note-keeper/internal/utils"
	"github.com/teamnotes/note-keeper/models"
)

func (h *Handler) createTeam(w http.ResponseWriter, r *http.Request) {
	log := logger.FromRequest(r)

	userID, ok := actorID(w, r)
	if !ok {
		return
	}

	var req models.CreateTeamRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Err(err).Str("func", "*Handler.createTeam").Msg("Invalid JSON was passed")
		http.Error(w, "Invalid JSON was passed", http.StatusBadRequest)
		return
	}

	team, err := h.services.TeamService.CreateTeam(r.Context(), userID, req.Name)
	if err != nil {
		log.Err(err).Str("func", "*Handler.createTeam").Msg("error creating team")
		http.Error(w, err.Error(), statusFromError(err))
		return
	}

	utils.WriteJSON(w, team, http.StatusCreated)
}

func (h *Handler) getTeam(w http.ResponseWriter, r *http.Request) {
	log := logger.FromRequest(r)

	userID, ok := actorID(w, r)
	if !ok {
		return
	}
	teamID, ok := pathID(w, r, "id")
	if !ok {
		return
	}

	team, err := h.services.TeamService.GetTeam(r.Context(), userID, teamID)
	if err != nil {
		log.Err(err).Str("func", "*Handler.getTeam").Msg("error getting team")
		http.Error(w, err.Error(), statusFromError(err))
		return
	}

	utils.WriteJSON(w, team, http.StatusOK)
}

func (h *Handler) addTeamMember(w http.ResponseWriter, r *http.Request) {
	log := logger.FromRequest(r)

	userID, ok := actorID(w, r)
	if !ok {
		return
	}
	teamID, ok := pathID(w, r, "id")
	if !ok {
		return
	}

	var req models.TeamMemberRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Err(err).Str("func", "*Handler.addTeamMember").Msg("Invalid JSON was passed")
		http.Error(w, "Invalid JSON was passed", http.StatusBadRequest)
		return
	}

	if err := h.services.TeamService.AddMember(r.Context(), userID, teamID, req.UserID, req.Role); err != nil {
		log.Err(err).Str("func", "*Handler.addTeamMember").Msg("error adding team member")
		http.Error(w, err.Error(), statusFromError(err))
		return
	}

	w.WriteHeader(http.StatusCreated)
}

func (h *Handler) updateTeamMember(w http.ResponseWriter, r *http.Request) {
	log := logger.FromRequest(r)

	userID, ok := actorID(w, r)
	if !ok {
		return
	}
	teamID, ok := pathID(w, r, "id")
	if !ok {
		return
	}
	memberID, err := strconv.ParseInt(chi.URLParam(r, "userID"), 10, 64)
	if err != nil {
		log.Err(err).Str("func", "*Handler.updateTeamMember").Msg("invalid user id in url")
		http.Error(w, "invalid user id", http.StatusBadRequest)
		return
	}

	var req models.TeamMemberRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Err(err).Str("func", "*Handler.updateTeamMember").Msg("Invalid JSON was passed")
		http.Error(w, "Invalid JSON was passed", http.StatusBadRequest)
		return
	}

	if err := h.services.TeamService.UpdateMemberRole(r.Context(), userID, teamID, memberID, req.Role); err != nil {
		log.Err(err).Str("func", "*Handler.updateTeamMember").Msg("error updating member role")
		http.Error(w, err.Error(), statusFromError(err))
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) removeTeamMember(w http.ResponseWriter, r *http.Request) {
	log := logger.FromRequest(r)

	userID, ok := actorID(w, r)
	if !ok {
		return
	}
	teamID, ok := pathID(w, r, "id")
	if !ok {
		return
	}
	memberID, err := strconv.ParseInt(chi.URLParam(r, "userID"), 10, 64)
	if err != nil {
		log.Err(err).Str("func", "*Handler.removeTeamMember").Msg("invalid user id in url")
		http.Error(w, "invalid user id", http.StatusBadRequest)
		return
	}

	if err := h.services.TeamService.RemoveMember(r.Context(), userID, teamID, memberID); err != nil {
		log.Err(err).Str("func", "*Handler.removeTeamMember").Msg("error removing team member")
		http.Error(w, err.Error(), statusFromError(err))
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) listTeamNotes(w http.ResponseWriter, r *http.Request) {
	log := logger.FromRequest(r)

	userID, ok := actorID(w, r)
	if !ok {
		return
	}
	teamID, ok := pathID(w, r, "id")
	if !ok {
		return
	}

	notes, err := h.services.NoteService.ListTeamNotes(r.Context(), userID, teamID)
	if err != nil {
		log.Err(err).Str("func", "*Handler.listTeamNotes").Msg("error listing team notes")
		http.Error(w, err.Error(), statusFromError(err))
		return
	}

	utils.WriteJSON(w, notes, http.StatusOK)
}

func (h *Handler) listTeamActivity(w http.ResponseWriter, r *http.Request) {
	log := logger.FromRequest(r)

	userID, ok := actorID(w, r)
	if !ok {
		return
	}
	teamID, ok := pathID(w, r, "id")
	if !ok {
		return
	}

	limit := 0
	if raw := r.URL.Query().Get("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil {
			log.Err(err).Str("func", "*Handler.listTeamActivity").Msg("invalid limit query param")
			http.Error(w, "invalid limit", http.StatusBadRequest)
			return
		}
		limit = parsed
	}

	feed, err := h.services.ActivityService.ListTeamActivity(r.Context(), userID, teamID, limit)
	if err != nil {
		log.Err(err).Str("func", "*Handler.listTeamActivity").Msg("error listing team activity")
		http.Error(w, err.Error(), statusFromError(err))
		return
	}

	utils.WriteJSON(w, feed, http.StatusOK)
}
