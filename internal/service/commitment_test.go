package service

import (
	"testing"

	"onboarding_backend/internal/model"
	"onboarding_backend/internal/util"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func boolPtr(v bool) *bool { return &v }

func TestCanSubmitCommitment(t *testing.T) {
	draft := &model.CommitmentDraft{}
	assert.False(t, CanSubmitCommitment(draft))

	ApplyCommitmentUpdate(draft, CommitmentUpdate{Acknowledged: boolPtr(true), Ready: boolPtr(true)})
	assert.False(t, CanSubmitCommitment(draft), "mobile answer still missing")

	ApplyCommitmentUpdate(draft, CommitmentUpdate{CanDoMobile: boolPtr(false)})
	assert.False(t, CanSubmitCommitment(draft), "signature still missing")

	require.NoError(t, AddStroke(draft, model.SignatureStroke{{X: 1, Y: 1}, {X: 5, Y: 5}}))
	assert.True(t, CanSubmitCommitment(draft))
}

func TestApplyCommitmentUpdate_PartialUpdate(t *testing.T) {
	draft := &model.CommitmentDraft{Acknowledged: true, CanDoMobile: boolPtr(true)}
	ApplyCommitmentUpdate(draft, CommitmentUpdate{Ready: boolPtr(true)})

	assert.True(t, draft.Acknowledged)
	assert.True(t, draft.Ready)
	require.NotNil(t, draft.CanDoMobile)
	assert.True(t, *draft.CanDoMobile)
}

func TestClearSignature_ResetsHasDrawn(t *testing.T) {
	draft := &model.CommitmentDraft{}
	require.NoError(t, AddStroke(draft, model.SignatureStroke{{X: 1, Y: 1}}))
	require.True(t, draft.HasDrawn)

	ClearSignature(draft)
	assert.False(t, draft.HasDrawn)
	assert.Empty(t, draft.Strokes)
}

func TestCompleteCommitmentDraft(t *testing.T) {
	draft := &model.CommitmentDraft{Acknowledged: true, Ready: true}
	_, _, err := CompleteCommitmentDraft(draft)
	assert.ErrorIs(t, err, util.ErrCommitmentIncomplete)

	draft.CanDoMobile = boolPtr(true)
	require.NoError(t, AddStroke(draft, model.SignatureStroke{{X: 10, Y: 10}, {X: 90, Y: 40}}))

	signature, mobile, err := CompleteCommitmentDraft(draft)
	require.NoError(t, err)
	assert.True(t, mobile)
	_, err = util.DecodeSignatureDataURL(signature)
	assert.NoError(t, err)
}

func TestSetSignatureImage(t *testing.T) {
	pad := NewSignaturePad(nil)
	require.NoError(t, pad.AddStroke(model.SignatureStroke{{X: 3, Y: 3}}))
	uploaded, err := pad.Render()
	require.NoError(t, err)

	draft := &model.CommitmentDraft{Strokes: []model.SignatureStroke{{{X: 1, Y: 1}}}}
	require.NoError(t, SetSignatureImage(draft, uploaded))
	assert.True(t, draft.HasDrawn)
	assert.Empty(t, draft.Strokes)
	assert.Equal(t, uploaded, draft.SignatureData)

	draft.CanDoMobile = boolPtr(false)
	draft.Acknowledged, draft.Ready = true, true
	signature, mobile, err := CompleteCommitmentDraft(draft)
	require.NoError(t, err)
	assert.False(t, mobile)
	assert.Equal(t, uploaded, signature)

	assert.ErrorIs(t, SetSignatureImage(draft, "data:image/png;base64,bm90IGEgcG5n"), util.ErrInvalidSignature)
	assert.ErrorIs(t, SetSignatureImage(draft, "data:image/jpeg;base64,AAAA"), util.ErrInvalidSignature)
}
