package model

import "time"

// Applicant 一个申请人一行，测验和承诺书完成时更新，本系统从不删除
// swagger:model Applicant
type Applicant struct {
	BaseModel
	UserID             uint       `gorm:"uniqueIndex;not null" json:"userId"`
	QuizScore          int        `gorm:"default:0" json:"quizScore"`
	QuizTotal          int        `gorm:"default:0" json:"quizTotal"`
	QuizPassed         bool       `gorm:"default:false" json:"quizPassed"`
	QuizCompletedAt    *time.Time `json:"quizCompletedAt"`
	CommitmentSignedAt *time.Time `json:"commitmentSignedAt"`
	SignatureData      string     `gorm:"type:mediumtext" json:"-"`
	SignatureURL       string     `gorm:"size:255" json:"signatureUrl,omitempty"`
	CanDoMobile        *bool      `json:"canDoMobile"`

	User *User `gorm:"foreignKey:UserID" json:"-"`
}

func (Applicant) TableName() string {
	return "applicants"
}

func (a *Applicant) HasSigned() bool {
	return a.CommitmentSignedAt != nil
}

func (a *Applicant) HasCompletedQuiz() bool {
	return a.QuizCompletedAt != nil
}
