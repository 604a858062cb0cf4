package repository

import (
	"context"
	"encoding/json"
	"fmt"
	"onboarding_backend/internal/model"
	"time"

	"github.com/go-redis/redis/v8"
)

const sessionKeyPrefix = "onboarding:session:"

// SessionRepository 在 Redis 中保存入职会话（JSON + TTL）
type SessionRepository struct {
	Redis *redis.Client
	TTL   time.Duration
}

func NewSessionRepository(rdb *redis.Client, ttl time.Duration) *SessionRepository {
	return &SessionRepository{Redis: rdb, TTL: ttl}
}

func sessionKey(applicantID uint) string {
	return fmt.Sprintf("%s%d", sessionKeyPrefix, applicantID)
}

// Get 会话不存在或已过期时返回 nil, nil
func (r *SessionRepository) Get(ctx context.Context, applicantID uint) (*model.OnboardingSession, error) {
	data, err := r.Redis.Get(ctx, sessionKey(applicantID)).Bytes()
	if err == redis.Nil {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("load onboarding session: %w", err)
	}

	var session model.OnboardingSession
	if err := json.Unmarshal(data, &session); err != nil {
		return nil, fmt.Errorf("decode onboarding session: %w", err)
	}
	if session.Quiz.Answers == nil {
		session.Quiz.Answers = map[int]int{}
	}
	return &session, nil
}

func (r *SessionRepository) Save(ctx context.Context, session *model.OnboardingSession) error {
	session.UpdatedAt = time.Now()
	data, err := json.Marshal(session)
	if err != nil {
		return fmt.Errorf("encode onboarding session: %w", err)
	}
	if err := r.Redis.Set(ctx, sessionKey(session.ApplicantID), data, r.TTL).Err(); err != nil {
		return fmt.Errorf("save onboarding session: %w", err)
	}
	return nil
}

func (r *SessionRepository) Delete(ctx context.Context, applicantID uint) error {
	return r.Redis.Del(ctx, sessionKey(applicantID)).Err()
}
