package model

import "time"

// OnboardingVideoProgress 每个 (applicant, video) 至多一行，唯一索引同时作为完成写入的幂等键
// swagger:model OnboardingVideoProgress
type OnboardingVideoProgress struct {
	ID              uint       `gorm:"primaryKey;autoIncrement" json:"id"`
	ApplicantID     uint       `gorm:"not null;uniqueIndex:idx_applicant_video" json:"applicantId"`
	VideoNumber     int        `gorm:"not null;uniqueIndex:idx_applicant_video" json:"videoNumber"`
	WatchedDuration float64    `gorm:"not null;default:0" json:"watchedDuration"`
	TotalDuration   float64    `gorm:"not null;default:0" json:"totalDuration"`
	Completed       bool       `gorm:"not null;default:false" json:"completed"`
	CompletedAt     *time.Time `json:"completedAt"`
	CreatedAt       time.Time  `json:"createdAt"`
	UpdatedAt       time.Time  `json:"updatedAt"`
}

func (OnboardingVideoProgress) TableName() string {
	return "onboarding_video_progress"
}

// OnboardingVideo 视频目录条目，来自配置
type OnboardingVideo struct {
	Number   int     `json:"number"`
	Title    string  `json:"title"`
	URL      string  `json:"url"`
	Duration float64 `json:"duration"`
}
