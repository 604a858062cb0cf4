package repository

import (
	"context"
	"testing"
	"time"

	"onboarding_backend/internal/model"
	"onboarding_backend/internal/testutil"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSessionRepository_RoundTrip(t *testing.T) {
	rdb, mr := testutil.NewRedis(t)
	repo := NewSessionRepository(rdb, time.Hour)
	ctx := context.Background()

	mobile := false
	session := &model.OnboardingSession{
		ApplicantID: 7,
		Phase:       model.PhaseQuiz,
		ActiveVideo: 4,
		Quiz:        model.QuizDraft{CurrentIndex: 2, Answers: map[int]int{0: 2, 1: 0}},
		Commitment:  model.CommitmentDraft{Acknowledged: true, CanDoMobile: &mobile},
	}
	require.NoError(t, repo.Save(ctx, session))
	assert.Equal(t, time.Hour, mr.TTL("onboarding:session:7"))

	got, err := repo.Get(ctx, 7)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, model.PhaseQuiz, got.Phase)
	assert.Equal(t, map[int]int{0: 2, 1: 0}, got.Quiz.Answers)
	require.NotNil(t, got.Commitment.CanDoMobile)
	assert.False(t, *got.Commitment.CanDoMobile)
}

func TestSessionRepository_MissingAndExpired(t *testing.T) {
	rdb, mr := testutil.NewRedis(t)
	repo := NewSessionRepository(rdb, time.Minute)
	ctx := context.Background()

	got, err := repo.Get(ctx, 1)
	require.NoError(t, err)
	assert.Nil(t, got)

	require.NoError(t, repo.Save(ctx, &model.OnboardingSession{ApplicantID: 1, Phase: model.PhaseVideos}))
	mr.FastForward(2 * time.Minute)

	got, err = repo.Get(ctx, 1)
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestSessionRepository_Delete(t *testing.T) {
	rdb, mr := testutil.NewRedis(t)
	repo := NewSessionRepository(rdb, time.Hour)
	ctx := context.Background()

	require.NoError(t, repo.Save(ctx, &model.OnboardingSession{ApplicantID: 3}))
	require.NoError(t, repo.Delete(ctx, 3))
	assert.False(t, mr.Exists("onboarding:session:3"))
}
