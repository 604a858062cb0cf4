package repository

import (
	"context"
	"errors"
	"fmt"
	"onboarding_backend/internal/model"
	"onboarding_backend/internal/util"
	"time"

	"gorm.io/gorm"
)

type ApplicantRepository struct {
	DB *gorm.DB
}

func NewApplicantRepository(db *gorm.DB) *ApplicantRepository {
	return &ApplicantRepository{DB: db}
}

type QuizResultRecord struct {
	Score       int       `validate:"gte=0,ltefield=Total"`
	Total       int       `validate:"gt=0"`
	Passed      bool
	CompletedAt time.Time `validate:"required"`
}

type CommitmentRecord struct {
	QuizScore     int       `validate:"gte=0,ltefield=QuizTotal"`
	QuizTotal     int       `validate:"gt=0"`
	SignatureData string    `validate:"required,startswith=data:image/png"`
	CanDoMobile   *bool     `validate:"required"`
	SignedAt      time.Time `validate:"required"`
}

func (r *ApplicantRepository) FindByUserID(ctx context.Context, userID uint) (*model.Applicant, error) {
	var applicant model.Applicant
	err := r.DB.WithContext(ctx).Where("user_id = ?", userID).First(&applicant).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, util.ErrApplicantNotFound
	}
	if err != nil {
		return nil, err
	}
	return &applicant, nil
}

func (r *ApplicantRepository) FindByID(ctx context.Context, id uint) (*model.Applicant, error) {
	var applicant model.Applicant
	err := r.DB.WithContext(ctx).First(&applicant, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, util.ErrApplicantNotFound
	}
	if err != nil {
		return nil, err
	}
	return &applicant, nil
}

// SaveQuizResult 一次写入测验成绩、是否通过和完成时间
func (r *ApplicantRepository) SaveQuizResult(ctx context.Context, applicantID uint, rec QuizResultRecord) error {
	if err := validateRecord(rec); err != nil {
		return err
	}

	res := r.DB.WithContext(ctx).Model(&model.Applicant{}).
		Where("id = ?", applicantID).
		Updates(map[string]interface{}{
			"quiz_score":        rec.Score,
			"quiz_total":        rec.Total,
			"quiz_passed":       rec.Passed,
			"quiz_completed_at": rec.CompletedAt,
			"updated_at":        time.Now(),
		})
	if res.Error != nil {
		return fmt.Errorf("save quiz result: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return util.ErrApplicantNotFound
	}
	return nil
}

// SaveCommitment 写入签名和移动端能力；已签署的记录不会被覆盖
func (r *ApplicantRepository) SaveCommitment(ctx context.Context, applicantID uint, rec CommitmentRecord) error {
	if err := validateRecord(rec); err != nil {
		return err
	}

	res := r.DB.WithContext(ctx).Model(&model.Applicant{}).
		Where("id = ? AND commitment_signed_at IS NULL", applicantID).
		Updates(map[string]interface{}{
			"quiz_score":           rec.QuizScore,
			"quiz_total":           rec.QuizTotal,
			"signature_data":       rec.SignatureData,
			"can_do_mobile":        *rec.CanDoMobile,
			"commitment_signed_at": rec.SignedAt,
			"updated_at":           time.Now(),
		})
	if res.Error != nil {
		return fmt.Errorf("save commitment: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return r.missingOrSigned(ctx, applicantID)
	}
	return nil
}

// missingOrSigned 区分记录不存在和已签署两种 0 行更新
func (r *ApplicantRepository) missingOrSigned(ctx context.Context, applicantID uint) error {
	var count int64
	if err := r.DB.WithContext(ctx).Model(&model.Applicant{}).Where("id = ?", applicantID).Count(&count).Error; err != nil {
		return fmt.Errorf("check applicant: %w", err)
	}
	if count == 0 {
		return util.ErrApplicantNotFound
	}
	return util.ErrAlreadySigned
}

// CompleteCommitment 在同一事务中先保存承诺书，再把申请状态从 onboarding 改为 waitlist
func (r *ApplicantRepository) CompleteCommitment(ctx context.Context, applicant *model.Applicant, rec CommitmentRecord) error {
	return r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := NewApplicantRepository(tx).SaveCommitment(ctx, applicant.ID, rec); err != nil {
			return err
		}
		return NewUserRepository(tx).TransitionStatus(ctx, applicant.UserID, model.StatusOnboarding, model.StatusWaitlist)
	})
}

func (r *ApplicantRepository) UpdateSignatureURL(ctx context.Context, applicantID uint, url string) error {
	return r.DB.WithContext(ctx).Model(&model.Applicant{}).
		Where("id = ?", applicantID).
		Update("signature_url", url).Error
}
