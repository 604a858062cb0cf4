package model

import "time"

type OnboardingPhase string

const (
	PhaseVideos     OnboardingPhase = "videos"
	PhaseQuiz       OnboardingPhase = "quiz"
	PhaseCommitment OnboardingPhase = "commitment"
)

// OnboardingSession 是入职流程的会话状态，保存在 Redis 中，过期后按申请人记录重新推导
type OnboardingSession struct {
	ApplicantID uint            `json:"applicantId"`
	Phase       OnboardingPhase `json:"phase"`
	ActiveVideo int             `json:"activeVideo"`
	Quiz        QuizDraft       `json:"quiz"`
	Commitment  CommitmentDraft `json:"commitment"`
	// 测验通过后带入承诺书阶段的成绩
	QuizScore  int       `json:"quizScore"`
	QuizTotal  int       `json:"quizTotal"`
	QuizPassed bool      `json:"quizPassed"`
	StartedAt  time.Time `json:"startedAt"`
	UpdatedAt  time.Time `json:"updatedAt"`
}

type QuizDraft struct {
	CurrentIndex int          `json:"currentIndex"`
	Answers      map[int]int  `json:"answers"`
	Result       *QuizOutcome `json:"result,omitempty"`
}

type QuizOutcome struct {
	Score       int         `json:"score"`
	Total       int         `json:"total"`
	Passed      bool        `json:"passed"`
	Answers     map[int]int `json:"answers"`
	CompletedAt time.Time   `json:"completedAt"`
}

type SignaturePoint struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

type SignatureStroke []SignaturePoint

type CommitmentDraft struct {
	Acknowledged  bool              `json:"acknowledged"`
	Ready         bool              `json:"ready"`
	CanDoMobile   *bool             `json:"canDoMobile"`
	Strokes       []SignatureStroke `json:"strokes,omitempty"`
	SignatureData string            `json:"signatureData,omitempty"`
	HasDrawn      bool              `json:"hasDrawn"`
}
