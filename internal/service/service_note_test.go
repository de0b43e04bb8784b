package service

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/teamnotes/note-keeper/internal/logger"
	"github.com/teamnotes/note-keeper/internal/store"
	"github.com/teamnotes/note-keeper/internal/store/mock"
	"github.com/teamnotes/note-keeper/internal/utils"
	"github.com/teamnotes/note-keeper/models"
)

type noteServiceMocks struct {
	notes *mock.MockNoteRepository
	teams *mock.MockTeamRepository
	users *mock.MockUserRepository
}

func newTestNoteService(t *testing.T) (NoteService, noteServiceMocks) {
	ctrl := gomock.NewController(t)
	m := noteServiceMocks{
		notes: mock.NewMockNoteRepository(ctrl),
		teams: mock.NewMockTeamRepository(ctrl),
		users: mock.NewMockUserRepository(ctrl),
	}

	svc := NewNoteService(m.notes, m.teams, m.users, nil, utils.NewUUIDGenerator(), logger.Nop())
	return svc, m
}

func TestCreateNote_ValidationAggregatesFieldErrors(t *testing.T) {
	svc, _ := newTestNoteService(t)

	_, err := svc.CreateNote(context.Background(), 1, models.CreateNoteRequest{})

	require.ErrorIs(t, err, ErrValidation)
	assert.Contains(t, err.Error(), "title is required, content is required")
}

func TestCreateNote_Success(t *testing.T) {
	svc, m := newTestNoteService(t)

	req := models.CreateNoteRequest{Title: "groceries", Content: "<p>milk</p>", Tags: []string{"home"}}

	m.notes.EXPECT().CreateNote(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, note models.Note) (models.Note, error) {
			assert.Equal(t, int64(1), note.OwnerID)
			assert.Equal(t, models.StateActive, note.State)
			assert.False(t, note.IsTeamNote)
			assert.NotEqual(t, uuid.Nil, note.ID)
			return note, nil
		})

	created, err := svc.CreateNote(context.Background(), 1, req)
	require.NoError(t, err)
	assert.Equal(t, "groceries", created.Title)
}

func TestCreateNote_TeamNoteRequiresEditCapableRole(t *testing.T) {
	svc, m := newTestNoteService(t)

	teamID := uuid.New()
	req := models.CreateNoteRequest{Title: "plan", Content: "q3", TeamID: &teamID}

	m.teams.EXPECT().GetMembership(gomock.Any(), teamID, int64(5)).
		Return(models.TeamMember{TeamID: teamID, UserID: 5, Role: models.TeamViewer}, nil)

	_, err := svc.CreateNote(context.Background(), 5, req)
	assert.ErrorIs(t, err, ErrPermissionDenied)
}

func TestGetNote_DenialHidesRuleOrigin(t *testing.T) {
	svc, m := newTestNoteService(t)

	teamID := uuid.New()
	id := uuid.New()
	note := models.Note{ID: id, OwnerID: 1, IsTeamNote: true, TeamID: &teamID}

	m.notes.EXPECT().GetNoteByID(gomock.Any(), id).Return(note, nil)
	m.teams.EXPECT().GetMembership(gomock.Any(), teamID, int64(7)).
		Return(models.TeamMember{}, store.ErrMembershipNotFound)

	_, _, err := svc.GetNote(context.Background(), 7, id)
	require.ErrorIs(t, err, ErrPermissionDenied)
	assert.NotContains(t, err.Error(), "team")
	assert.NotContains(t, err.Error(), "share")
}

func TestUpdateNote_PartialUpdate(t *testing.T) {
	svc, m := newTestNoteService(t)

	id := uuid.New()
	stored := models.Note{ID: id, OwnerID: 1, Title: "old", Content: "body", Tags: []string{"a"}, State: models.StateActive}

	newTitle := "new"
	m.notes.EXPECT().GetNoteByID(gomock.Any(), id).Return(stored, nil)
	m.notes.EXPECT().UpdateNote(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, note models.Note) (models.Note, error) {
			assert.Equal(t, "new", note.Title)
			assert.Equal(t, "body", note.Content, "nil content field leaves stored value")
			assert.Equal(t, []string{"a"}, note.Tags, "nil tags field leaves stored value")
			return note, nil
		})

	updated, err := svc.UpdateNote(context.Background(), 1, id, models.UpdateNoteRequest{Title: &newTitle})
	require.NoError(t, err)
	assert.Equal(t, "new", updated.Title)
}

func TestUpdateNote_TrashedNoteRejected(t *testing.T) {
	svc, m := newTestNoteService(t)

	id := uuid.New()
	trashed := models.Note{ID: id, OwnerID: 1, State: models.StateTrashed}

	m.notes.EXPECT().GetNoteByID(gomock.Any(), id).Return(trashed, nil)

	content := "edit"
	_, err := svc.UpdateNote(context.Background(), 1, id, models.UpdateNoteRequest{Content: &content})
	assert.ErrorIs(t, err, ErrInvalidState)
}

func TestShareNote_TeamNoteCannotBeShared(t *testing.T) {
	svc, m := newTestNoteService(t)

	teamID := uuid.New()
	id := uuid.New()
	note := models.Note{ID: id, OwnerID: 1, IsTeamNote: true, TeamID: &teamID}

	m.notes.EXPECT().GetNoteByID(gomock.Any(), id).Return(note, nil)
	m.teams.EXPECT().GetMembership(gomock.Any(), teamID, int64(1)).
		Return(models.TeamMember{}, store.ErrMembershipNotFound)

	err := svc.ShareNote(context.Background(), 1, id, 2, models.ShareViewer)
	assert.ErrorIs(t, err, ErrInvalidState)
}

func TestShareNote_OnlyOwnerShares(t *testing.T) {
	svc, m := newTestNoteService(t)

	id := uuid.New()
	note := models.Note{
		ID:         id,
		OwnerID:    1,
		SharedWith: []models.NoteShare{{UserID: 2, Role: models.ShareEditor}},
	}

	m.notes.EXPECT().GetNoteByID(gomock.Any(), id).Return(note, nil)

	err := svc.ShareNote(context.Background(), 2, id, 3, models.ShareViewer)
	assert.ErrorIs(t, err, ErrPermissionDenied)
}

func TestShareNote_Success(t *testing.T) {
	svc, m := newTestNoteService(t)

	id := uuid.New()
	note := models.Note{ID: id, OwnerID: 1}

	m.notes.EXPECT().GetNoteByID(gomock.Any(), id).Return(note, nil)
	m.users.EXPECT().FindUserByID(gomock.Any(), int64(2)).Return(models.User{UserID: 2, Login: "jane"}, nil)
	m.notes.EXPECT().AddShare(gomock.Any(), models.NoteShare{
		NoteID:     id,
		UserID:     2,
		Role:       models.ShareEditor,
		SharedByID: 1,
	}).Return(nil)

	err := svc.ShareNote(context.Background(), 1, id, 2, models.ShareEditor)
	assert.NoError(t, err)
}

func TestListShares_TeamNoteMarkedInformational(t *testing.T) {
	svc, m := newTestNoteService(t)

	teamID := uuid.New()
	id := uuid.New()
	note := models.Note{ID: id, OwnerID: 1, IsTeamNote: true, TeamID: &teamID}
	shares := []models.NoteShare{{NoteID: id, UserID: 2, Role: models.ShareViewer}}

	m.notes.EXPECT().GetNoteByID(gomock.Any(), id).Return(note, nil)
	m.teams.EXPECT().GetMembership(gomock.Any(), teamID, int64(1)).
		Return(models.TeamMember{}, store.ErrMembershipNotFound)
	m.notes.EXPECT().ListShares(gomock.Any(), id).Return(shares, nil)

	resp, err := svc.ListShares(context.Background(), 1, id)
	require.NoError(t, err)
	assert.True(t, resp.Informational)
	assert.Len(t, resp.Shares, 1)
}

func TestSetStarred_ViewerDenied(t *testing.T) {
	svc, m := newTestNoteService(t)

	id := uuid.New()
	note := models.Note{
		ID:         id,
		OwnerID:    1,
		SharedWith: []models.NoteShare{{UserID: 2, Role: models.ShareViewer}},
	}

	m.notes.EXPECT().GetNoteByID(gomock.Any(), id).Return(note, nil)

	err := svc.SetStarred(context.Background(), 2, id, true)
	assert.ErrorIs(t, err, ErrPermissionDenied)
}

func TestListNotes_ScopedToActorAndActiveState(t *testing.T) {
	svc, m := newTestNoteService(t)

	actorID := int64(1)
	folder := "work"

	m.notes.EXPECT().ListNotes(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, filter store.NoteFilter) ([]models.Note, error) {
			require.NotNil(t, filter.OwnerID)
			assert.Equal(t, actorID, *filter.OwnerID)
			assert.Equal(t, models.StateActive, filter.State)
			require.NotNil(t, filter.Folder)
			assert.Equal(t, folder, *filter.Folder)
			return nil, nil
		})

	_, err := svc.ListNotes(context.Background(), actorID, models.ListNotesQuery{Folder: &folder})
	assert.NoError(t, err)
}
