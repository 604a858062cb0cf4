package repository

import (
	"context"
	"testing"

	"onboarding_backend/internal/model"
	"onboarding_backend/internal/testutil"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRecordProgress_CreatesRowOnFirstReport(t *testing.T) {
	db := testutil.NewDB(t)
	_, applicant := testutil.SeedApplicant(t, db)
	repo := NewVideoProgressRepository(db)

	row, newly, err := repo.RecordProgress(context.Background(), VideoProgressRecord{
		ApplicantID:     applicant.ID,
		VideoNumber:     1,
		WatchedDuration: 30,
		TotalDuration:   100,
	})
	require.NoError(t, err)
	assert.False(t, newly)
	assert.Equal(t, 30.0, row.WatchedDuration)
	assert.False(t, row.Completed)
	assert.Nil(t, row.CompletedAt)
}

func TestRecordProgress_KeepsMaxWatched(t *testing.T) {
	db := testutil.NewDB(t)
	_, applicant := testutil.SeedApplicant(t, db)
	repo := NewVideoProgressRepository(db)
	ctx := context.Background()

	for _, watched := range []float64{40, 70, 20} {
		_, _, err := repo.RecordProgress(ctx, VideoProgressRecord{
			ApplicantID: applicant.ID, VideoNumber: 2, WatchedDuration: watched, TotalDuration: 100,
		})
		require.NoError(t, err)
	}

	rows, err := repo.ListByApplicant(ctx, applicant.ID)
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, 70.0, rows[0].WatchedDuration)
}

func TestRecordProgress_CompletesExactlyOnce(t *testing.T) {
	db := testutil.NewDB(t)
	_, applicant := testutil.SeedApplicant(t, db)
	repo := NewVideoProgressRepository(db)
	ctx := context.Background()

	rec := VideoProgressRecord{ApplicantID: applicant.ID, VideoNumber: 1, WatchedDuration: 99, TotalDuration: 100, Completed: true}

	first, newly, err := repo.RecordProgress(ctx, rec)
	require.NoError(t, err)
	assert.True(t, newly)
	require.NotNil(t, first.CompletedAt)

	rec.WatchedDuration = 100
	second, newly, err := repo.RecordProgress(ctx, rec)
	require.NoError(t, err)
	assert.False(t, newly, "repeat reports must not record completion again")
	assert.True(t, second.Completed)
	assert.True(t, first.CompletedAt.Equal(*second.CompletedAt))

	var count int64
	require.NoError(t, db.Model(&model.OnboardingVideoProgress{}).
		Where("applicant_id = ? AND video_number = ?", applicant.ID, 1).Count(&count).Error)
	assert.Equal(t, int64(1), count)
}

func TestRecordProgress_NeverUncompletes(t *testing.T) {
	db := testutil.NewDB(t)
	_, applicant := testutil.SeedApplicant(t, db)
	repo := NewVideoProgressRepository(db)
	ctx := context.Background()

	_, _, err := repo.RecordProgress(ctx, VideoProgressRecord{
		ApplicantID: applicant.ID, VideoNumber: 3, WatchedDuration: 100, TotalDuration: 100, Completed: true,
	})
	require.NoError(t, err)

	row, newly, err := repo.RecordProgress(ctx, VideoProgressRecord{
		ApplicantID: applicant.ID, VideoNumber: 3, WatchedDuration: 5, TotalDuration: 100,
	})
	require.NoError(t, err)
	assert.False(t, newly)
	assert.True(t, row.Completed)
	assert.Equal(t, 100.0, row.WatchedDuration)
}

func TestRecordProgress_RejectsInvalidRecord(t *testing.T) {
	db := testutil.NewDB(t)
	repo := NewVideoProgressRepository(db)
	ctx := context.Background()

	cases := map[string]VideoProgressRecord{
		"video out of range":  {ApplicantID: 1, VideoNumber: 5, WatchedDuration: 1, TotalDuration: 10},
		"missing applicant":   {VideoNumber: 1, WatchedDuration: 1, TotalDuration: 10},
		"zero total":          {ApplicantID: 1, VideoNumber: 1},
		"watched above total": {ApplicantID: 1, VideoNumber: 1, WatchedDuration: 20, TotalDuration: 10},
	}
	for name, rec := range cases {
		t.Run(name, func(t *testing.T) {
			_, _, err := repo.RecordProgress(ctx, rec)
			assert.Error(t, err)
		})
	}
}

func TestListByApplicant_OrderedByVideoNumber(t *testing.T) {
	db := testutil.NewDB(t)
	_, applicant := testutil.SeedApplicant(t, db)
	_, other := testutil.SeedApplicant(t, db)
	repo := NewVideoProgressRepository(db)
	ctx := context.Background()

	for _, n := range []int{3, 1, 2} {
		_, _, err := repo.RecordProgress(ctx, VideoProgressRecord{ApplicantID: applicant.ID, VideoNumber: n, WatchedDuration: 1, TotalDuration: 10})
		require.NoError(t, err)
	}
	_, _, err := repo.RecordProgress(ctx, VideoProgressRecord{ApplicantID: other.ID, VideoNumber: 4, WatchedDuration: 1, TotalDuration: 10})
	require.NoError(t, err)

	rows, err := repo.ListByApplicant(ctx, applicant.ID)
	require.NoError(t, err)
	require.Len(t, rows, 3)
	for i, row := range rows {
		assert.Equal(t, i+1, row.VideoNumber)
	}
}
