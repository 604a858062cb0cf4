package service

import (
	"math"
	"onboarding_backend/internal/model"
)

const (
	VideoCount = 4
	// CompletionThreshold 观看比例达到 98% 视为看完
	CompletionThreshold = 0.98
)

// OnboardingProgressView 四个视频的完成情况，以及第一个未完成视频（默认 1，最大 4）
type OnboardingProgressView struct {
	Completed    [VideoCount]bool `json:"completed"`
	CurrentVideo int              `json:"currentVideo"`
}

// VideoGateStatus 单个视频的解锁/完成状态
type VideoGateStatus struct {
	Number          int     `json:"number"`
	Title           string  `json:"title"`
	URL             string  `json:"url"`
	Duration        float64 `json:"duration"`
	WatchedDuration float64 `json:"watchedDuration"`
	Unlocked        bool    `json:"unlocked"`
	Completed       bool    `json:"completed"`
}

func ValidVideoNumber(n int) bool {
	return n >= 1 && n <= VideoCount
}

func BuildProgressView(rows []model.OnboardingVideoProgress) OnboardingProgressView {
	var view OnboardingProgressView
	for _, row := range rows {
		if ValidVideoNumber(row.VideoNumber) && row.Completed {
			view.Completed[row.VideoNumber-1] = true
		}
	}

	view.CurrentVideo = VideoCount
	for i, done := range view.Completed {
		if !done {
			view.CurrentVideo = i + 1
			break
		}
	}
	return view
}

func (v OnboardingProgressView) IsCompleted(n int) bool {
	return ValidVideoNumber(n) && v.Completed[n-1]
}

// IsUnlocked 视频 1 总是可看；视频 N 在 N-1 已完成或 N 本身已完成（允许重看）时可看
func (v OnboardingProgressView) IsUnlocked(n int) bool {
	if !ValidVideoNumber(n) {
		return false
	}
	if n == 1 {
		return true
	}
	return v.Completed[n-2] || v.Completed[n-1]
}

func (v OnboardingProgressView) AllCompleted() bool {
	for _, done := range v.Completed {
		if !done {
			return false
		}
	}
	return true
}

func ReachedThreshold(watched, total float64) bool {
	if total <= 0 || math.IsNaN(watched) || math.IsNaN(total) {
		return false
	}
	return watched/total >= CompletionThreshold
}
