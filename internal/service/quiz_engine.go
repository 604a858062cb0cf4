package service

import (
	"math"
	"onboarding_backend/internal/model"
	"onboarding_backend/internal/util"
	"time"
)

// PassPercentage 通过线（百分比，含）
const PassPercentage = 70

const (
	QuizActionContinue = "continue"
	QuizActionRetake   = "retake"
)

// QuizEngine 只负责题目导航和评分，草稿保存在会话里，结果持久化由编排服务完成
type QuizEngine struct {
	Bank *QuizBank
}

func NewQuizEngine(bank *QuizBank) *QuizEngine {
	return &QuizEngine{Bank: bank}
}

// Passed correct/total*100 >= 70，用整数比较避免浮点误差
func Passed(correct, total int) bool {
	if total <= 0 {
		return false
	}
	return correct*100 >= PassPercentage*total
}

func Percentage(correct, total int) int {
	if total <= 0 {
		return 0
	}
	return int(math.Round(float64(correct) * 100 / float64(total)))
}

func (e *QuizEngine) ensureAnswers(draft *model.QuizDraft) {
	if draft.Answers == nil {
		draft.Answers = make(map[int]int)
	}
}

// Select 记录某题的选项。只能作答当前题及之前的题，提交后不可再改
func (e *QuizEngine) Select(draft *model.QuizDraft, index, option int) error {
	if draft.Result != nil {
		return util.ErrQuizAlreadySubmitted
	}
	if index < 0 || index >= e.Bank.Len() || index > draft.CurrentIndex {
		return util.ErrInvalidQuestionIndex
	}
	if option < 0 || option >= len(e.Bank.Question(index).Options) {
		return util.ErrInvalidOption
	}
	e.ensureAnswers(draft)
	draft.Answers[index] = option
	return nil
}

func (e *QuizEngine) CanAdvance(draft *model.QuizDraft) bool {
	if draft.Result != nil {
		return false
	}
	_, ok := draft.Answers[draft.CurrentIndex]
	return ok
}

func (e *QuizEngine) IsLastQuestion(draft *model.QuizDraft) bool {
	return draft.CurrentIndex == e.Bank.Len()-1
}

// Next 前进一题；在最后一题时返回 submit=true，由调用方完成提交
func (e *QuizEngine) Next(draft *model.QuizDraft) (submit bool, err error) {
	if draft.Result != nil {
		return false, util.ErrQuizAlreadySubmitted
	}
	if !e.CanAdvance(draft) {
		return false, util.ErrAnswerRequired
	}
	if e.IsLastQuestion(draft) {
		return true, nil
	}
	draft.CurrentIndex++
	return false, nil
}

func (e *QuizEngine) Back(draft *model.QuizDraft) error {
	if draft.Result != nil {
		return util.ErrQuizAlreadySubmitted
	}
	if draft.CurrentIndex > 0 {
		draft.CurrentIndex--
	}
	return nil
}

func (e *QuizEngine) AllAnswered(draft *model.QuizDraft) bool {
	for i := 0; i < e.Bank.Len(); i++ {
		if _, ok := draft.Answers[i]; !ok {
			return false
		}
	}
	return true
}

// Score 统计答对题数，不修改草稿
func (e *QuizEngine) Score(answers map[int]int) (correct, total int) {
	total = e.Bank.Len()
	for i := 0; i < total; i++ {
		if chosen, ok := answers[i]; ok && chosen == e.Bank.Question(i).CorrectAnswer {
			correct++
		}
	}
	return correct, total
}

// Evaluate 全部作答后评分并把结果写入草稿
func (e *QuizEngine) Evaluate(draft *model.QuizDraft, now time.Time) (*model.QuizOutcome, error) {
	if draft.Result != nil {
		return nil, util.ErrQuizAlreadySubmitted
	}
	if !e.AllAnswered(draft) {
		return nil, util.ErrQuizIncomplete
	}

	correct, total := e.Score(draft.Answers)
	answers := make(map[int]int, len(draft.Answers))
	for k, v := range draft.Answers {
		answers[k] = v
	}
	outcome := &model.QuizOutcome{
		Score:       correct,
		Total:       total,
		Passed:      Passed(correct, total),
		Answers:     answers,
		CompletedAt: now,
	}
	draft.Result = outcome
	return outcome, nil
}

// Retake 清空答案和结果，回到第一题；已通过时不允许重考
func (e *QuizEngine) Retake(draft *model.QuizDraft) error {
	if draft.Result == nil {
		return util.ErrQuizNotSubmitted
	}
	if draft.Result.Passed {
		return util.ErrQuizPassed
	}
	draft.CurrentIndex = 0
	draft.Answers = make(map[int]int)
	draft.Result = nil
	return nil
}

type QuizQuestionView struct {
	Index    int      `json:"index"`
	ID       string   `json:"id"`
	Prompt   string   `json:"prompt"`
	Options  []string `json:"options"`
	Selected *int     `json:"selected"`
}

type QuizReviewItem struct {
	Index         int    `json:"index"`
	Prompt        string `json:"prompt"`
	Correct       bool   `json:"correct"`
	ChosenAnswer  string `json:"chosenAnswer"`
	CorrectAnswer string `json:"correctAnswer,omitempty"`
	Explanation   string `json:"explanation,omitempty"`
}

type QuizResultView struct {
	Score       int              `json:"score"`
	Total       int              `json:"total"`
	Percentage  int              `json:"percentage"`
	Passed      bool             `json:"passed"`
	CompletedAt time.Time        `json:"completedAt"`
	Review      []QuizReviewItem `json:"review"`
	Actions     []string         `json:"actions"`
}

type QuizView struct {
	Questions    []QuizQuestionView `json:"questions"`
	CurrentIndex int                `json:"currentIndex"`
	Total        int                `json:"total"`
	CanAdvance   bool               `json:"canAdvance"`
	IsLast       bool               `json:"isLast"`
	Result       *QuizResultView    `json:"result,omitempty"`
}

// ResultView 结果页：答错的题目给出正确答案和解析
func (e *QuizEngine) ResultView(outcome *model.QuizOutcome) *QuizResultView {
	view := &QuizResultView{
		Score:       outcome.Score,
		Total:       outcome.Total,
		Percentage:  Percentage(outcome.Score, outcome.Total),
		Passed:      outcome.Passed,
		CompletedAt: outcome.CompletedAt,
		Review:      make([]QuizReviewItem, 0, e.Bank.Len()),
	}
	for i := 0; i < e.Bank.Len(); i++ {
		q := e.Bank.Question(i)
		chosen, answered := outcome.Answers[i]
		item := QuizReviewItem{
			Index:   i,
			Prompt:  q.Prompt,
			Correct: answered && chosen == q.CorrectAnswer,
		}
		if answered && chosen >= 0 && chosen < len(q.Options) {
			item.ChosenAnswer = q.Options[chosen]
		}
		if !item.Correct {
			item.CorrectAnswer = q.Options[q.CorrectAnswer]
			item.Explanation = q.Explanation
		}
		view.Review = append(view.Review, item)
	}
	if outcome.Passed {
		view.Actions = []string{QuizActionContinue}
	} else {
		view.Actions = []string{QuizActionRetake}
	}
	return view
}

func (e *QuizEngine) View(draft *model.QuizDraft) *QuizView {
	view := &QuizView{
		Questions:    make([]QuizQuestionView, 0, e.Bank.Len()),
		CurrentIndex: draft.CurrentIndex,
		Total:        e.Bank.Len(),
		CanAdvance:   e.CanAdvance(draft),
		IsLast:       e.IsLastQuestion(draft),
	}
	for i, q := range e.Bank.Questions() {
		qv := QuizQuestionView{Index: i, ID: q.ID, Prompt: q.Prompt, Options: q.Options}
		if chosen, ok := draft.Answers[i]; ok {
			c := chosen
			qv.Selected = &c
		}
		view.Questions = append(view.Questions, qv)
	}
	if draft.Result != nil {
		view.Result = e.ResultView(draft.Result)
	}
	return view
}
