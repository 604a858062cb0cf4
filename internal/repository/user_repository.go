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

type UserRepository struct {
	DB *gorm.DB
}

func NewUserRepository(db *gorm.DB) *UserRepository {
	return &UserRepository{DB: db}
}

func (r *UserRepository) FindByID(ctx context.Context, id uint) (*model.User, error) {
	var user model.User
	err := r.DB.WithContext(ctx).First(&user, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, util.ErrApplicantNotFound
	}
	if err != nil {
		return nil, err
	}
	return &user, nil
}

// TransitionStatus 仅当当前状态为 from 时改为 to，否则返回 ErrStatusConflict
func (r *UserRepository) TransitionStatus(ctx context.Context, userID uint, from, to model.ApplicationStatus) error {
	res := r.DB.WithContext(ctx).Model(&model.User{}).
		Where("id = ? AND application_status = ?", userID, from).
		Updates(map[string]interface{}{
			"application_status": to,
			"updated_at":         time.Now(),
		})
	if res.Error != nil {
		return fmt.Errorf("transition application status: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return util.ErrStatusConflict
	}
	return nil
}
