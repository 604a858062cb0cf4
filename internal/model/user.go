package model

type UserRole string

const (
	RoleApplicant UserRole = "applicant"
	RoleRecruiter UserRole = "recruiter"
	RoleAdmin     UserRole = "admin"
)

type ApplicationStatus string

const (
	StatusOnboarding ApplicationStatus = "onboarding"
	StatusWaitlist   ApplicationStatus = "waitlist"
)

// User 是申请人的身份记录，ApplicationStatus 由入职流程推进
// swagger:model User
type User struct {
	BaseModel
	Name              string            `gorm:"size:100;not null" json:"name"`
	Email             string            `gorm:"size:100;uniqueIndex;not null" json:"email"`
	Role              UserRole          `gorm:"size:20;default:'applicant'" json:"role"`
	ApplicationStatus ApplicationStatus `gorm:"size:32;default:'onboarding';index" json:"applicationStatus"`
}

func (User) TableName() string {
	return "users"
}
