package service

import (
	_ "embed"
	"fmt"
	"onboarding_backend/internal/model"

	"gopkg.in/yaml.v3"
)

//go:embed quiz_questions.yaml
var defaultQuizQuestions []byte

// QuizBank 固定顺序的题库，加载后只读
type QuizBank struct {
	questions []model.QuizQuestion
}

func LoadQuizBank(data []byte) (*QuizBank, error) {
	var doc struct {
		Questions []model.QuizQuestion `yaml:"questions"`
	}
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("parse quiz bank: %w", err)
	}
	if len(doc.Questions) == 0 {
		return nil, fmt.Errorf("quiz bank has no questions")
	}

	seen := make(map[string]bool, len(doc.Questions))
	for i, q := range doc.Questions {
		if q.ID == "" || q.Prompt == "" {
			return nil, fmt.Errorf("quiz question %d is missing id or prompt", i)
		}
		if seen[q.ID] {
			return nil, fmt.Errorf("duplicate quiz question id %q", q.ID)
		}
		seen[q.ID] = true
		if len(q.Options) < 2 {
			return nil, fmt.Errorf("quiz question %q needs at least two options", q.ID)
		}
		if q.CorrectAnswer < 0 || q.CorrectAnswer >= len(q.Options) {
			return nil, fmt.Errorf("quiz question %q has correct answer %d out of range", q.ID, q.CorrectAnswer)
		}
	}

	return &QuizBank{questions: doc.Questions}, nil
}

func NewDefaultQuizBank() (*QuizBank, error) {
	return LoadQuizBank(defaultQuizQuestions)
}

func (b *QuizBank) Len() int {
	return len(b.questions)
}

func (b *QuizBank) Question(i int) model.QuizQuestion {
	return b.questions[i]
}

// Questions 返回副本，调用方修改不会影响题库
func (b *QuizBank) Questions() []model.QuizQuestion {
	out := make([]model.QuizQuestion, len(b.questions))
	copy(out, b.questions)
	return out
}
