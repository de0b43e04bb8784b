package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/teamnotes/note-keeper/internal/logger"
	"github.com/teamnotes/note-keeper/internal/store"
	"github.com/teamnotes/note-keeper/internal/store/mock"
	"github.com/teamnotes/note-keeper/models"
)

func newTestLifecycleService(t *testing.T) (*lifecycleService, *mock.MockNoteRepository, *mock.MockTeamRepository) {
	ctrl := gomock.NewController(t)
	notes := mock.NewMockNoteRepository(ctrl)
	teams := mock.NewMockTeamRepository(ctrl)

	svc := NewLifecycleService(notes, teams, nil, 30, logger.Nop()).(*lifecycleService)
	return svc, notes, teams
}

func TestDaysLeft(t *testing.T) {
	now := time.Date(2026, 3, 15, 12, 0, 0, 0, time.UTC)

	tests := []struct {
		name      string
		deletedAt time.Time
		want      int
	}{
		{name: "trashed 29 days ago", deletedAt: now.AddDate(0, 0, -29), want: 1},
		{name: "trashed 30 days ago expires today", deletedAt: now.AddDate(0, 0, -30), want: 0},
		{name: "trashed 31 days ago already expired", deletedAt: now.AddDate(0, 0, -31), want: 0},
		{name: "just trashed", deletedAt: now, want: 30},
		{name: "partial day rounds up", deletedAt: now.Add(-time.Hour), want: 30},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, DaysLeft(tt.deletedAt, now, 30))
		})
	}
}

func TestSoftDelete_Success(t *testing.T) {
	svc, notes, _ := newTestLifecycleService(t)

	now := time.Now()
	svc.now = func() time.Time { return now }

	id := uuid.New()
	active := models.Note{ID: id, OwnerID: 1, State: models.StateActive}
	trashed := models.Note{ID: id, OwnerID: 1, State: models.StateTrashed, DeletedAt: &now}

	notes.EXPECT().GetNoteByID(gomock.Any(), id).Return(active, nil)
	notes.EXPECT().TrashNote(gomock.Any(), id, now).Return(trashed, nil)

	got, err := svc.SoftDelete(context.Background(), 1, id)
	require.NoError(t, err)
	assert.Equal(t, models.StateTrashed, got.State)
}

func TestSoftDelete_IdempotentOnTrashedNote(t *testing.T) {
	svc, notes, _ := newTestLifecycleService(t)

	firstDeletion := time.Now().Add(-time.Hour)
	id := uuid.New()
	trashed := models.Note{ID: id, OwnerID: 1, State: models.StateTrashed, DeletedAt: &firstDeletion}

	// No TrashNote call is expected: the repeat is a pure read.
	notes.EXPECT().GetNoteByID(gomock.Any(), id).Return(trashed, nil)

	got, err := svc.SoftDelete(context.Background(), 1, id)
	require.NoError(t, err)
	assert.Equal(t, models.StateTrashed, got.State)
	assert.Equal(t, &firstDeletion, got.DeletedAt, "deletedAt must keep the original stamp")
}

func TestSoftDelete_PermissionDenied(t *testing.T) {
	svc, notes, _ := newTestLifecycleService(t)

	id := uuid.New()
	note := models.Note{
		ID:         id,
		OwnerID:    1,
		State:      models.StateActive,
		SharedWith: []models.NoteShare{{UserID: 2, Role: models.ShareViewer}},
	}

	notes.EXPECT().GetNoteByID(gomock.Any(), id).Return(note, nil)

	_, err := svc.SoftDelete(context.Background(), 2, id)
	assert.ErrorIs(t, err, ErrPermissionDenied)
}

func TestSoftDelete_LostRaceReturnsCurrentState(t *testing.T) {
	svc, notes, _ := newTestLifecycleService(t)

	now := time.Now()
	svc.now = func() time.Time { return now }

	id := uuid.New()
	active := models.Note{ID: id, OwnerID: 1, State: models.StateActive}
	trashed := models.Note{ID: id, OwnerID: 1, State: models.StateTrashed, DeletedAt: &now}

	notes.EXPECT().GetNoteByID(gomock.Any(), id).Return(active, nil)
	notes.EXPECT().TrashNote(gomock.Any(), id, now).Return(models.Note{}, store.ErrNoteStateConflict)
	notes.EXPECT().GetNoteByID(gomock.Any(), id).Return(trashed, nil)

	got, err := svc.SoftDelete(context.Background(), 1, id)
	require.NoError(t, err)
	assert.Equal(t, models.StateTrashed, got.State)
}

func TestRestore_RequiresTrashed(t *testing.T) {
	svc, notes, _ := newTestLifecycleService(t)

	id := uuid.New()
	active := models.Note{ID: id, OwnerID: 1, State: models.StateActive}

	notes.EXPECT().GetNoteByID(gomock.Any(), id).Return(active, nil)

	_, err := svc.Restore(context.Background(), 1, id)
	assert.ErrorIs(t, err, ErrInvalidState)
}

func TestRestore_PurgedNoteNotFound(t *testing.T) {
	svc, notes, _ := newTestLifecycleService(t)

	id := uuid.New()

	// once a note is purged its row is gone, so restoring it looks identical
	// to restoring a note that never existed
	notes.EXPECT().GetNoteByID(gomock.Any(), id).Return(models.Note{}, store.ErrNoteNotFound)

	_, err := svc.Restore(context.Background(), 1, id)
	assert.ErrorIs(t, err, store.ErrNoteNotFound)
}

func TestRestore_Success(t *testing.T) {
	svc, notes, _ := newTestLifecycleService(t)

	deletedAt := time.Now().Add(-time.Hour)
	id := uuid.New()
	trashed := models.Note{ID: id, OwnerID: 1, State: models.StateTrashed, DeletedAt: &deletedAt}
	restored := models.Note{ID: id, OwnerID: 1, State: models.StateActive}

	notes.EXPECT().GetNoteByID(gomock.Any(), id).Return(trashed, nil)
	notes.EXPECT().RestoreNote(gomock.Any(), id).Return(restored, nil)

	got, err := svc.Restore(context.Background(), 1, id)
	require.NoError(t, err)
	assert.Equal(t, models.StateActive, got.State)
	assert.Nil(t, got.DeletedAt)
}

func TestPurge_ActiveNoteRequiresPermanentFlag(t *testing.T) {
	svc, notes, _ := newTestLifecycleService(t)

	id := uuid.New()
	active := models.Note{ID: id, OwnerID: 1, State: models.StateActive}

	notes.EXPECT().GetNoteByID(gomock.Any(), id).Return(active, nil)

	err := svc.Purge(context.Background(), 1, id, false)
	assert.ErrorIs(t, err, ErrInvalidState)
}

func TestPurge_SkipTrashDeleteIsOwnerOnly(t *testing.T) {
	svc, notes, _ := newTestLifecycleService(t)

	id := uuid.New()
	active := models.Note{
		ID:         id,
		OwnerID:    1,
		State:      models.StateActive,
		SharedWith: []models.NoteShare{{UserID: 2, Role: models.ShareEditor}},
	}

	notes.EXPECT().GetNoteByID(gomock.Any(), id).Return(active, nil)

	err := svc.Purge(context.Background(), 2, id, true)
	assert.ErrorIs(t, err, ErrPermissionDenied)
}

func TestPurge_TrashedNoteByEditorShare(t *testing.T) {
	svc, notes, _ := newTestLifecycleService(t)

	deletedAt := time.Now()
	id := uuid.New()
	trashed := models.Note{
		ID:         id,
		OwnerID:    1,
		State:      models.StateTrashed,
		DeletedAt:  &deletedAt,
		SharedWith: []models.NoteShare{{UserID: 2, Role: models.ShareEditor}},
	}

	notes.EXPECT().GetNoteByID(gomock.Any(), id).Return(trashed, nil)
	notes.EXPECT().DeleteNote(gomock.Any(), id).Return(nil)

	err := svc.Purge(context.Background(), 2, id, false)
	assert.NoError(t, err)
}

func TestEmptyTrash_PartialFailureReportsActualCount(t *testing.T) {
	svc, notes, _ := newTestLifecycleService(t)

	first, second, third := uuid.New(), uuid.New(), uuid.New()
	deletedAt := time.Now()
	ownerID := int64(1)

	trashedNotes := []models.Note{
		{ID: first, OwnerID: ownerID, State: models.StateTrashed, DeletedAt: &deletedAt},
		{ID: second, OwnerID: ownerID, State: models.StateTrashed, DeletedAt: &deletedAt},
		{ID: third, OwnerID: ownerID, State: models.StateTrashed, DeletedAt: &deletedAt},
	}

	notes.EXPECT().ListNotes(gomock.Any(), store.NoteFilter{OwnerID: &ownerID, State: models.StateTrashed}).Return(trashedNotes, nil)
	notes.EXPECT().DeleteNote(gomock.Any(), first).Return(nil)
	notes.EXPECT().DeleteNote(gomock.Any(), second).Return(errors.New("connection reset"))
	notes.EXPECT().DeleteNote(gomock.Any(), third).Return(nil)

	deleted, err := svc.EmptyTrash(context.Background(), ownerID)
	require.NoError(t, err)
	assert.Equal(t, 2, deleted)
}

func TestBulkRestore_ItemsFailIndependently(t *testing.T) {
	svc, notes, _ := newTestLifecycleService(t)

	deletedAt := time.Now()
	restorable, foreign := uuid.New(), uuid.New()

	trashed := models.Note{ID: restorable, OwnerID: 1, State: models.StateTrashed, DeletedAt: &deletedAt}
	restored := models.Note{ID: restorable, OwnerID: 1, State: models.StateActive}
	someoneElses := models.Note{ID: foreign, OwnerID: 9, State: models.StateTrashed, DeletedAt: &deletedAt}

	notes.EXPECT().GetNoteByID(gomock.Any(), restorable).Return(trashed, nil)
	notes.EXPECT().RestoreNote(gomock.Any(), restorable).Return(restored, nil)
	notes.EXPECT().GetNoteByID(gomock.Any(), foreign).Return(someoneElses, nil)

	results := svc.BulkRestore(context.Background(), 1, []uuid.UUID{restorable, foreign})

	require.Len(t, results, 2)
	assert.True(t, results[0].OK)
	assert.False(t, results[1].OK)
	assert.NotEmpty(t, results[1].Error)
}

func TestPurgeExpired(t *testing.T) {
	svc, notes, _ := newTestLifecycleService(t)

	now := time.Date(2026, 3, 15, 3, 0, 0, 0, time.UTC)
	svc.now = func() time.Time { return now }
	cutoff := now.AddDate(0, 0, -30)

	gone, racing := uuid.New(), uuid.New()
	deletedAt := cutoff.Add(-time.Hour)
	expired := []models.Note{
		{ID: gone, OwnerID: 1, State: models.StateTrashed, DeletedAt: &deletedAt},
		{ID: racing, OwnerID: 2, State: models.StateTrashed, DeletedAt: &deletedAt},
	}

	notes.EXPECT().ListExpired(gomock.Any(), cutoff).Return(expired, nil)
	notes.EXPECT().DeleteNote(gomock.Any(), gone).Return(nil)
	// The second note was purged by its owner between listing and deletion.
	notes.EXPECT().DeleteNote(gomock.Any(), racing).Return(store.ErrNoteNotFound)

	purged, err := svc.PurgeExpired(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, purged)
}

func TestSoftDelete_TeamNoteViewerDenied(t *testing.T) {
	svc, notes, teams := newTestLifecycleService(t)

	teamID := uuid.New()
	id := uuid.New()
	note := models.Note{ID: id, OwnerID: 1, IsTeamNote: true, TeamID: &teamID, State: models.StateActive}

	notes.EXPECT().GetNoteByID(gomock.Any(), id).Return(note, nil)
	teams.EXPECT().GetMembership(gomock.Any(), teamID, int64(3)).
		Return(models.TeamMember{TeamID: teamID, UserID: 3, Role: models.TeamViewer}, nil)

	_, err := svc.SoftDelete(context.Background(), 3, id)
	assert.ErrorIs(t, err, ErrPermissionDenied)
}
