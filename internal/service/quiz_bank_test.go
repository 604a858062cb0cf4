package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultQuizBank(t *testing.T) {
	bank, err := NewDefaultQuizBank()
	require.NoError(t, err)
	assert.Equal(t, 6, bank.Len())

	for i, q := range bank.Questions() {
		assert.Equal(t, correctAnswers[i], q.CorrectAnswer, q.ID)
	}
}

func TestQuizBank_QuestionsIsACopy(t *testing.T) {
	bank, err := NewDefaultQuizBank()
	require.NoError(t, err)

	qs := bank.Questions()
	qs[0].Prompt = "changed"
	assert.NotEqual(t, "changed", bank.Question(0).Prompt)
}

func TestLoadQuizBank_Invalid(t *testing.T) {
	cases := map[string]string{
		"empty":        "questions: []",
		"bad yaml":     "questions: [",
		"one option":   "questions:\n  - id: a\n    prompt: p\n    options: [x]\n    correct_answer: 0\n",
		"answer range": "questions:\n  - id: a\n    prompt: p\n    options: [x, y]\n    correct_answer: 2\n",
		"duplicate id": "questions:\n  - id: a\n    prompt: p\n    options: [x, y]\n    correct_answer: 0\n  - id: a\n    prompt: q\n    options: [x, y]\n    correct_answer: 1\n",
		"missing id":   "questions:\n  - prompt: p\n    options: [x, y]\n    correct_answer: 0\n",
	}
	for name, data := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := LoadQuizBank([]byte(data))
			assert.Error(t, err)
		})
	}
}
