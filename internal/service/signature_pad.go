package service

import (
	"bytes"
	"image/color"
	"math"
	"onboarding_backend/internal/model"
	"onboarding_backend/internal/util"

	"github.com/fogleman/gg"
)

const (
	SignatureWidth     = 600
	SignatureHeight    = 200
	SignatureLineWidth = 2.5

	maxSignatureStrokes = 200
	maxSignaturePoints  = 2000
)

// SignaturePad 固定尺寸白底画布，所有笔画同一样式（黑色、固定线宽）
type SignaturePad struct {
	Strokes []model.SignatureStroke
}

func NewSignaturePad(strokes []model.SignatureStroke) *SignaturePad {
	return &SignaturePad{Strokes: strokes}
}

func (p *SignaturePad) pointCount() int {
	n := 0
	for _, s := range p.Strokes {
		n += len(s)
	}
	return n
}

// AddStroke 坐标必须落在画布内
func (p *SignaturePad) AddStroke(stroke model.SignatureStroke) error {
	if len(stroke) == 0 {
		return util.ErrInvalidSignature
	}
	if len(p.Strokes) >= maxSignatureStrokes || p.pointCount()+len(stroke) > maxSignaturePoints {
		return util.ErrInvalidSignature
	}
	for _, pt := range stroke {
		if math.IsNaN(pt.X) || math.IsNaN(pt.Y) ||
			pt.X < 0 || pt.X > SignatureWidth || pt.Y < 0 || pt.Y > SignatureHeight {
			return util.ErrInvalidSignature
		}
	}
	p.Strokes = append(p.Strokes, stroke)
	return nil
}

func (p *SignaturePad) HasDrawn() bool {
	return len(p.Strokes) > 0
}

// Render 圆头圆角线条绘制到白底画布，输出 PNG data URL；单点笔画画成线宽大小的圆点
func (p *SignaturePad) Render() (string, error) {
	dc := gg.NewContext(SignatureWidth, SignatureHeight)
	dc.SetColor(color.White)
	dc.Clear()

	dc.SetColor(color.Black)
	dc.SetLineWidth(SignatureLineWidth)
	dc.SetLineCapRound()
	dc.SetLineJoinRound()

	for _, stroke := range p.Strokes {
		if len(stroke) == 1 {
			dc.DrawCircle(stroke[0].X, stroke[0].Y, SignatureLineWidth/2)
			dc.Fill()
			continue
		}
		dc.MoveTo(stroke[0].X, stroke[0].Y)
		for _, pt := range stroke[1:] {
			dc.LineTo(pt.X, pt.Y)
		}
		dc.Stroke()
	}

	var buf bytes.Buffer
	if err := dc.EncodePNG(&buf); err != nil {
		return "", err
	}
	return util.EncodePNGDataURL(buf.Bytes()), nil
}
