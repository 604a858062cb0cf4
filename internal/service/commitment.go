package service

import (
	"onboarding_backend/internal/model"
	"onboarding_backend/internal/util"
)

// CommitmentUpdate 部分更新，nil 字段保持不变
type CommitmentUpdate struct {
	Acknowledged *bool `json:"acknowledged"`
	Ready        *bool `json:"ready"`
	CanDoMobile  *bool `json:"canDoMobile"`
}

type CommitmentView struct {
	Acknowledged bool   `json:"acknowledged"`
	Ready        bool   `json:"ready"`
	CanDoMobile  *bool  `json:"canDoMobile"`
	HasDrawn     bool   `json:"hasDrawn"`
	StrokeCount  int    `json:"strokeCount"`
	CanSubmit    bool   `json:"canSubmit"`
	QuizScore    int    `json:"quizScore"`
	QuizTotal    int    `json:"quizTotal"`
	Signature    string `json:"signature,omitempty"`
}

func ApplyCommitmentUpdate(draft *model.CommitmentDraft, update CommitmentUpdate) {
	if update.Acknowledged != nil {
		draft.Acknowledged = *update.Acknowledged
	}
	if update.Ready != nil {
		draft.Ready = *update.Ready
	}
	if update.CanDoMobile != nil {
		v := *update.CanDoMobile
		draft.CanDoMobile = &v
	}
}

// AddStroke 手写笔画会取代之前上传的签名图片
func AddStroke(draft *model.CommitmentDraft, stroke model.SignatureStroke) error {
	pad := NewSignaturePad(draft.Strokes)
	if err := pad.AddStroke(stroke); err != nil {
		return err
	}
	draft.Strokes = pad.Strokes
	draft.SignatureData = ""
	draft.HasDrawn = true
	return nil
}

// SetSignatureImage 接收客户端已渲染好的 PNG data URL
func SetSignatureImage(draft *model.CommitmentDraft, dataURL string) error {
	if _, err := util.DecodeSignatureDataURL(dataURL); err != nil {
		return err
	}
	draft.Strokes = nil
	draft.SignatureData = dataURL
	draft.HasDrawn = true
	return nil
}

func ClearSignature(draft *model.CommitmentDraft) {
	draft.Strokes = nil
	draft.SignatureData = ""
	draft.HasDrawn = false
}

func CanSubmitCommitment(draft *model.CommitmentDraft) bool {
	return draft.Acknowledged && draft.Ready && draft.CanDoMobile != nil && draft.HasDrawn
}

// CompleteCommitmentDraft 校验草稿并得到签名图片和手机问题的答案，不做持久化
func CompleteCommitmentDraft(draft *model.CommitmentDraft) (string, bool, error) {
	if !CanSubmitCommitment(draft) {
		return "", false, util.ErrCommitmentIncomplete
	}

	signature := draft.SignatureData
	if signature == "" {
		rendered, err := NewSignaturePad(draft.Strokes).Render()
		if err != nil {
			return "", false, err
		}
		signature = rendered
	}
	return signature, *draft.CanDoMobile, nil
}

func BuildCommitmentView(session *model.OnboardingSession) *CommitmentView {
	draft := &session.Commitment
	return &CommitmentView{
		Acknowledged: draft.Acknowledged,
		Ready:        draft.Ready,
		CanDoMobile:  draft.CanDoMobile,
		HasDrawn:     draft.HasDrawn,
		StrokeCount:  len(draft.Strokes),
		CanSubmit:    CanSubmitCommitment(draft),
		QuizScore:    session.QuizScore,
		QuizTotal:    session.QuizTotal,
		Signature:    draft.SignatureData,
	}
}
