package service

import (
	"bytes"
	"image/png"
	"testing"

	"onboarding_backend/internal/model"
	"onboarding_backend/internal/util"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSignaturePad_RenderDrawsStrokes(t *testing.T) {
	pad := NewSignaturePad(nil)
	require.NoError(t, pad.AddStroke(model.SignatureStroke{{X: 10, Y: 100}, {X: 200, Y: 100}}))
	assert.True(t, pad.HasDrawn())

	dataURL, err := pad.Render()
	require.NoError(t, err)

	raw, err := util.DecodeSignatureDataURL(dataURL)
	require.NoError(t, err)
	img, err := png.Decode(bytes.NewReader(raw))
	require.NoError(t, err)

	assert.Equal(t, SignatureWidth, img.Bounds().Dx())
	assert.Equal(t, SignatureHeight, img.Bounds().Dy())

	r, g, b, _ := img.At(100, 100).RGBA()
	assert.Zero(t, r+g+b, "pixel on the stroke should be black")
	r, g, b, _ = img.At(100, 10).RGBA()
	assert.Equal(t, uint32(0xffff), r&g&b, "background should stay white")

	// 线宽 2.5 只覆盖第 98 行像素的一部分，边缘应为灰色
	r, _, _, _ = img.At(100, 98).RGBA()
	assert.Greater(t, r, uint32(0))
	assert.Less(t, r, uint32(0xffff))
}

func TestSignaturePad_SinglePointStroke(t *testing.T) {
	pad := NewSignaturePad(nil)
	require.NoError(t, pad.AddStroke(model.SignatureStroke{{X: 50.5, Y: 50.5}}))

	dataURL, err := pad.Render()
	require.NoError(t, err)
	raw, err := util.DecodeSignatureDataURL(dataURL)
	require.NoError(t, err)
	img, err := png.Decode(bytes.NewReader(raw))
	require.NoError(t, err)

	r, _, _, _ := img.At(50, 50).RGBA()
	assert.Zero(t, r)
}

func TestSignaturePad_RejectsInvalidStrokes(t *testing.T) {
	pad := NewSignaturePad(nil)

	assert.ErrorIs(t, pad.AddStroke(nil), util.ErrInvalidSignature)
	assert.ErrorIs(t, pad.AddStroke(model.SignatureStroke{{X: -1, Y: 0}}), util.ErrInvalidSignature)
	assert.ErrorIs(t, pad.AddStroke(model.SignatureStroke{{X: 0, Y: SignatureHeight + 1}}), util.ErrInvalidSignature)
	assert.False(t, pad.HasDrawn())
}

func TestSignaturePad_PointLimit(t *testing.T) {
	pad := NewSignaturePad(nil)
	stroke := make(model.SignatureStroke, maxSignaturePoints)
	require.NoError(t, pad.AddStroke(stroke))
	assert.ErrorIs(t, pad.AddStroke(model.SignatureStroke{{X: 1, Y: 1}}), util.ErrInvalidSignature)
}
