// Package testutil 提供测试用的 sqlite 数据库、miniredis 和申请人数据
package testutil

import (
	"fmt"
	"onboarding_backend/internal/model"
	"onboarding_backend/pkg/database"
	"path/filepath"
	"sync/atomic"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/go-redis/redis/v8"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

var seq atomic.Uint64

// NewDB 每个测试一个独立的 sqlite 文件，已执行迁移
func NewDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(filepath.Join(t.TempDir(), "onboarding.db")), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, database.Migrate(db))

	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			sqlDB.Close()
		}
	})
	return db
}

func NewRedis(t *testing.T) (*redis.Client, *miniredis.Miniredis) {
	t.Helper()

	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { rdb.Close() })
	return rdb, mr
}

// SeedApplicant 创建一个处于 onboarding 状态的用户及其申请人记录
func SeedApplicant(t *testing.T, db *gorm.DB) (*model.User, *model.Applicant) {
	t.Helper()

	n := seq.Add(1)
	user := &model.User{
		Name:              fmt.Sprintf("Applicant %d", n),
		Email:             fmt.Sprintf("applicant%d@example.com", n),
		Role:              model.RoleApplicant,
		ApplicationStatus: model.StatusOnboarding,
	}
	require.NoError(t, db.Create(user).Error)

	applicant := &model.Applicant{UserID: user.ID}
	require.NoError(t, db.Create(applicant).Error)
	return user, applicant
}

func ReloadApplicant(t *testing.T, db *gorm.DB, id uint) *model.Applicant {
	t.Helper()

	var applicant model.Applicant
	require.NoError(t, db.First(&applicant, id).Error)
	return &applicant
}
