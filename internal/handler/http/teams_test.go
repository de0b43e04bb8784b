package http

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/teamnotes/note-keeper/internal/logger"
	"github.com/teamnotes/note-keeper/internal/service"
	"github.com/teamnotes/note-keeper/internal/store"
	"github.com/teamnotes/note-keeper/models"
)

// fnTeamService implements service.TeamService for unit tests.
type fnTeamService struct {
	t *testing.T

	createTeamFn       func(ctx context.Context, actorID int64, name string) (models.Team, error)
	getTeamFn          func(ctx context.Context, actorID int64, teamID uuid.UUID) (models.Team, error)
	addMemberFn        func(ctx context.Context, actorID int64, teamID uuid.UUID, userID int64, role models.TeamRole) error
	updateMemberRoleFn func(ctx context.Context, actorID int64, teamID uuid.UUID, userID int64, role models.TeamRole) error
	removeMemberFn     func(ctx context.Context, actorID int64, teamID uuid.UUID, userID int64) error
}

func (f *fnTeamService) CreateTeam(ctx context.Context, actorID int64, name string) (models.Team, error) {
	require.NotNil(f.t, f.createTeamFn, "unexpected CreateTeam call")
	return f.createTeamFn(ctx, actorID, name)
}
func (f *fnTeamService) GetTeam(ctx context.Context, actorID int64, teamID uuid.UUID) (models.Team, error) {
	require.NotNil(f.t, f.getTeamFn, "unexpected GetTeam call")
	return f.getTeamFn(ctx, actorID, teamID)
}
func (f *fnTeamService) AddMember(ctx context.Context, actorID int64, teamID uuid.UUID, userID int64, role models.TeamRole) error {
	require.NotNil(f.t, f.addMemberFn, "unexpected AddMember call")
	return f.addMemberFn(ctx, actorID, teamID, userID, role)
}
func (f *fnTeamService) UpdateMemberRole(ctx context.Context, actorID int64, teamID uuid.UUID, userID int64, role models.TeamRole) error {
	require.NotNil(f.t, f.updateMemberRoleFn, "unexpected UpdateMemberRole call")
	return f.updateMemberRoleFn(ctx, actorID, teamID, userID, role)
}
func (f *fnTeamService) RemoveMember(ctx context.Context, actorID int64, teamID uuid.UUID, userID int64) error {
	require.NotNil(f.t, f.removeMemberFn, "unexpected RemoveMember call")
	return f.removeMemberFn(ctx, actorID, teamID, userID)
}

func newTeamHandler(t *testing.T, teams service.TeamService) *Handler {
	t.Helper()
	return NewHandler(&service.Services{TeamService: teams}, logger.Nop())
}

func TestCreateTeam_Success(t *testing.T) {
	teams := &fnTeamService{
		t: t,
		createTeamFn: func(_ context.Context, actorID int64, name string) (models.Team, error) {
			assert.EqualValues(t, 7, actorID)
			assert.Equal(t, "platform", name)
			return models.Team{ID: uuid.New(), Name: name, OwnerID: actorID}, nil
		},
	}
	h := newTeamHandler(t, teams)

	rec := httptest.NewRecorder()
	h.createTeam(rec, authedRequest(t, http.MethodPost, "/api/teams/", `{"name":"platform"}`, uuid.Nil))

	assert.Equal(t, http.StatusCreated, rec.Code)
	assert.Contains(t, rec.Body.String(), `"name":"platform"`)
}

func TestGetTeam_NonMemberIs403(t *testing.T) {
	teamID := uuid.New()

	teams := &fnTeamService{
		t: t,
		getTeamFn: func(_ context.Context, _ int64, _ uuid.UUID) (models.Team, error) {
			return models.Team{}, service.ErrPermissionDenied
		},
	}
	h := newTeamHandler(t, teams)

	rec := httptest.NewRecorder()
	h.getTeam(rec, authedRequest(t, http.MethodGet, "/api/teams/"+teamID.String(), "", teamID))

	assert.Equal(t, http.StatusForbidden, rec.Code)
}

func TestAddTeamMember_ForwardsRole(t *testing.T) {
	teamID := uuid.New()

	teams := &fnTeamService{
		t: t,
		addMemberFn: func(_ context.Context, _ int64, id uuid.UUID, userID int64, role models.TeamRole) error {
			assert.Equal(t, teamID, id)
			assert.EqualValues(t, 42, userID)
			assert.Equal(t, models.TeamEditor, role)
			return nil
		},
	}
	h := newTeamHandler(t, teams)

	body := `{"user_id":42,"role":"editor"}`
	rec := httptest.NewRecorder()
	h.addTeamMember(rec, authedRequest(t, http.MethodPost, "/api/teams/"+teamID.String()+"/members", body, teamID))

	assert.Equal(t, http.StatusCreated, rec.Code)
}

func TestAddTeamMember_DuplicateIs409(t *testing.T) {
	teamID := uuid.New()

	teams := &fnTeamService{
		t: t,
		addMemberFn: func(_ context.Context, _ int64, _ uuid.UUID, _ int64, _ models.TeamRole) error {
			return store.ErrMemberAlreadyExists
		},
	}
	h := newTeamHandler(t, teams)

	body := `{"user_id":42,"role":"viewer"}`
	rec := httptest.NewRecorder()
	h.addTeamMember(rec, authedRequest(t, http.MethodPost, "/api/teams/"+teamID.String()+"/members", body, teamID))

	assert.Equal(t, http.StatusConflict, rec.Code)
}

// memberRequest builds an authenticated request carrying both the team id and
// the member user id URL params.
func memberRequest(t *testing.T, method, target, body string, teamID uuid.UUID, memberID string) *http.Request {
	t.Helper()

	req := authedRequest(t, method, target, body, uuid.Nil)

	routeCtx := chi.NewRouteContext()
	routeCtx.URLParams.Add("id", teamID.String())
	routeCtx.URLParams.Add("userID", memberID)
	return req.WithContext(context.WithValue(req.Context(), chi.RouteCtxKey, routeCtx))
}

func TestUpdateTeamMember_NoContent(t *testing.T) {
	teamID := uuid.New()

	teams := &fnTeamService{
		t: t,
		updateMemberRoleFn: func(_ context.Context, actorID int64, id uuid.UUID, userID int64, role models.TeamRole) error {
			assert.EqualValues(t, 7, actorID)
			assert.Equal(t, teamID, id)
			assert.EqualValues(t, 42, userID)
			assert.Equal(t, models.TeamAdmin, role)
			return nil
		},
	}
	h := newTeamHandler(t, teams)

	target := "/api/teams/" + teamID.String() + "/members/42"
	rec := httptest.NewRecorder()
	h.updateTeamMember(rec, memberRequest(t, http.MethodPut, target, `{"role":"admin"}`, teamID, "42"))

	assert.Equal(t, http.StatusNoContent, rec.Code)
}

func TestUpdateTeamMember_BadUserIDIs400(t *testing.T) {
	teamID := uuid.New()
	h := newTeamHandler(t, &fnTeamService{t: t})

	target := "/api/teams/" + teamID.String() + "/members/abc"
	rec := httptest.NewRecorder()
	h.updateTeamMember(rec, memberRequest(t, http.MethodPut, target, `{"role":"admin"}`, teamID, "abc"))

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestRemoveTeamMember_NoContent(t *testing.T) {
	teamID := uuid.New()

	teams := &fnTeamService{
		t: t,
		removeMemberFn: func(_ context.Context, _ int64, id uuid.UUID, userID int64) error {
			assert.Equal(t, teamID, id)
			assert.EqualValues(t, 42, userID)
			return nil
		},
	}
	h := newTeamHandler(t, teams)

	target := "/api/teams/" + teamID.String() + "/members/42"
	rec := httptest.NewRecorder()
	h.removeTeamMember(rec, memberRequest(t, http.MethodDelete, target, "", teamID, "42"))

	assert.Equal(t, http.StatusNoContent, rec.Code)
}

// fnActivityService implements service.ActivityService for unit tests.
type fnActivityService struct {
	t *testing.T

	listTeamActivityFn func(ctx context.Context, actorID int64, teamID uuid.UUID, limit int) ([]models.Activity, error)
}

func (f *fnActivityService) Record(_ context.Context, _ uuid.UUID, _ int64, _ models.ActivityAction, _ string) {
	f.t.Fatal("unexpected Record call")
}
func (f *fnActivityService) ListTeamActivity(ctx context.Context, actorID int64, teamID uuid.UUID, limit int) ([]models.Activity, error) {
	require.NotNil(f.t, f.listTeamActivityFn, "unexpected ListTeamActivity call")
	return f.listTeamActivityFn(ctx, actorID, teamID, limit)
}

func TestListTeamActivity_ForwardsLimit(t *testing.T) {
	teamID := uuid.New()

	activity := &fnActivityService{
		t: t,
		listTeamActivityFn: func(_ context.Context, actorID int64, id uuid.UUID, limit int) ([]models.Activity, error) {
			assert.EqualValues(t, 7, actorID)
			assert.Equal(t, teamID, id)
			assert.Equal(t, 25, limit)
			return []models.Activity{
				{ID: uuid.New(), TeamID: id, ActorID: actorID, Action: models.ActivityNoteCreated, Subject: "roadmap"},
			}, nil
		},
	}
	h := NewHandler(&service.Services{ActivityService: activity}, logger.Nop())

	target := "/api/teams/" + teamID.String() + "/activity?limit=25"
	rec := httptest.NewRecorder()
	h.listTeamActivity(rec, authedRequest(t, http.MethodGet, target, "", teamID))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"subject":"roadmap"`)
}

func TestListTeamActivity_BadLimitIs400(t *testing.T) {
	teamID := uuid.New()
	h := NewHandler(&service.Services{ActivityService: &fnActivityService{t: t}}, logger.Nop())

	target := "/api/teams/" + teamID.String() + "/activity?limit=lots"
	rec := httptest.NewRecorder()
	h.listTeamActivity(rec, authedRequest(t, http.MethodGet, target, "", teamID))

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}
