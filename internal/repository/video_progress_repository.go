package repository

import (
	"context"
	"onboarding_backend/internal/model"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type VideoProgressRepository struct {
	DB *gorm.DB
}

func NewVideoProgressRepository(db *gorm.DB) *VideoProgressRepository {
	return &VideoProgressRepository{DB: db}
}

type VideoProgressRecord struct {
	ApplicantID     uint    `validate:"required"`
	VideoNumber     int     `validate:"min=1,max=4"`
	WatchedDuration float64 `validate:"gte=0,ltefield=TotalDuration"`
	TotalDuration   float64 `validate:"gt=0"`
	Completed       bool
}

// RecordProgress 按 (applicant_id, video_number) upsert 观看进度。
// 观看时长只增不减；完成标记只在 completed = false 时写入一次，
// 第二个返回值表示本次调用是否写入了完成标记。
func (r *VideoProgressRepository) RecordProgress(ctx context.Context, rec VideoProgressRecord) (*model.OnboardingVideoProgress, bool, error) {
	if err := validateRecord(rec); err != nil {
		return nil, false, err
	}

	var (
		row            model.OnboardingVideoProgress
		newlyCompleted bool
	)

	err := r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		now := time.Now()

		// 1. 首次上报时创建记录
		initial := &model.OnboardingVideoProgress{
			ApplicantID:     rec.ApplicantID,
			VideoNumber:     rec.VideoNumber,
			WatchedDuration: rec.WatchedDuration,
			TotalDuration:   rec.TotalDuration,
		}
		if err := tx.Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "applicant_id"}, {Name: "video_number"}},
			DoNothing: true,
		}).Create(initial).Error; err != nil {
			return err
		}

		scope := tx.Model(&model.OnboardingVideoProgress{}).
			Where("applicant_id = ? AND video_number = ?", rec.ApplicantID, rec.VideoNumber).
			Session(&gorm.Session{})

		// 2. 更新观看进度
		if err := scope.Updates(map[string]interface{}{
			"watched_duration": gorm.Expr("CASE WHEN watched_duration < ? THEN ? ELSE watched_duration END", rec.WatchedDuration, rec.WatchedDuration),
			"total_duration":   rec.TotalDuration,
			"updated_at":       now,
		}).Error; err != nil {
			return err
		}

		// 3. 条件更新保证完成只记录一次
		if rec.Completed {
			res := scope.Where("completed = ?", false).
				Updates(map[string]interface{}{
					"completed":    true,
					"completed_at": now,
					"updated_at":   now,
				})
			if res.Error != nil {
				return res.Error
			}
			newlyCompleted = res.RowsAffected == 1
		}

		return tx.Where("applicant_id = ? AND video_number = ?", rec.ApplicantID, rec.VideoNumber).First(&row).Error
	})
	if err != nil {
		return nil, false, err
	}

	return &row, newlyCompleted, nil
}

// ListByApplicant 按视频编号升序返回申请人的全部进度
func (r *VideoProgressRepository) ListByApplicant(ctx context.Context, applicantID uint) ([]model.OnboardingVideoProgress, error) {
	var rows []model.OnboardingVideoProgress
	err := r.DB.WithContext(ctx).
		Where("applicant_id = ?", applicantID).
		Order("video_number asc").
		Find(&rows).Error
	return rows, err
}
