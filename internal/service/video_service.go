package service

import (
	"context"
	"math"
	"onboarding_backend/internal/config"
	"onboarding_backend/internal/model"
	"onboarding_backend/internal/repository"
	"onboarding_backend/internal/util"
	"onboarding_backend/pkg/logger"
	"onboarding_backend/pkg/messaging"
	"onboarding_backend/pkg/monitoring"
	"strconv"
	"time"

	"go.uber.org/zap"
)

// VideoCatalog 按视频编号索引的入职视频
type VideoCatalog map[int]model.OnboardingVideo

// NewVideoCatalog 从配置构建目录；未配置时长但有本地文件时用 ffprobe 读取
func NewVideoCatalog(videos []config.VideoConfig) VideoCatalog {
	catalog := make(VideoCatalog, len(videos))
	for _, v := range videos {
		duration := v.Duration
		if duration == 0 && v.LocalFile != "" {
			info, err := util.GetVideoInfo(v.LocalFile)
			if err != nil {
				logger.Log.Warn("Failed to probe onboarding video duration", zap.Int("video", v.Number), zap.String("file", v.LocalFile), zap.Error(err))
			} else {
				duration = info.Duration
			}
		}
		catalog[v.Number] = model.OnboardingVideo{
			Number:   v.Number,
			Title:    v.Title,
			URL:      v.URL,
			Duration: duration,
		}
	}
	return catalog
}

type VideoService struct {
	ProgressRepo *repository.VideoProgressRepository
	Catalog      VideoCatalog
	Events       messaging.Publisher
}

func NewVideoService(progressRepo *repository.VideoProgressRepository, catalog VideoCatalog, events messaging.Publisher) *VideoService {
	if events == nil {
		events = messaging.NopPublisher{}
	}
	return &VideoService{
		ProgressRepo: progressRepo,
		Catalog:      catalog,
		Events:       events,
	}
}

type PlaybackResult struct {
	Video          VideoGateStatus        `json:"video"`
	Progress       OnboardingProgressView `json:"progress"`
	NewlyCompleted bool                   `json:"newlyCompleted"`
}

type VideoOverview struct {
	Progress OnboardingProgressView `json:"progress"`
	Videos   []VideoGateStatus      `json:"videos"`
}

func (s *VideoService) loadProgress(ctx context.Context, applicantID uint) ([]model.OnboardingVideoProgress, OnboardingProgressView, error) {
	rows, err := s.ProgressRepo.ListByApplicant(ctx, applicantID)
	if err != nil {
		logger.Log.Error("Failed to load video progress", zap.Uint("applicantId", applicantID), zap.Error(err))
		return nil, OnboardingProgressView{}, err
	}
	return rows, BuildProgressView(rows), nil
}

func (s *VideoService) ProgressView(ctx context.Context, applicantID uint) (OnboardingProgressView, error) {
	_, view, err := s.loadProgress(ctx, applicantID)
	return view, err
}

func (s *VideoService) Overview(ctx context.Context, applicantID uint) (*VideoOverview, error) {
	rows, view, err := s.loadProgress(ctx, applicantID)
	if err != nil {
		return nil, err
	}

	overview := &VideoOverview{Progress: view, Videos: make([]VideoGateStatus, 0, VideoCount)}
	for n := 1; n <= VideoCount; n++ {
		overview.Videos = append(overview.Videos, s.gateStatus(n, rows, view))
	}
	return overview, nil
}

func (s *VideoService) GateStatus(ctx context.Context, applicantID uint, number int) (*VideoGateStatus, error) {
	if !ValidVideoNumber(number) {
		return nil, util.ErrInvalidVideoNumber
	}
	rows, view, err := s.loadProgress(ctx, applicantID)
	if err != nil {
		return nil, err
	}
	status := s.gateStatus(number, rows, view)
	return &status, nil
}

func (s *VideoService) gateStatus(number int, rows []model.OnboardingVideoProgress, view OnboardingProgressView) VideoGateStatus {
	video := s.Catalog[number]
	status := VideoGateStatus{
		Number:    number,
		Title:     video.Title,
		URL:       video.URL,
		Duration:  video.Duration,
		Unlocked:  view.IsUnlocked(number),
		Completed: view.IsCompleted(number),
	}
	for _, row := range rows {
		if row.VideoNumber == number {
			status.WatchedDuration = row.WatchedDuration
			if status.Duration == 0 {
				status.Duration = row.TotalDuration
			}
		}
	}
	return status
}

// ReportPlayback 处理一次播放进度上报。达到 98% 且尚未完成时写入完成标记（幂等），
// 返回刷新后的进度视图。
func (s *VideoService) ReportPlayback(ctx context.Context, applicantID uint, number int, watched, total float64) (*PlaybackResult, error) {
	if !ValidVideoNumber(number) {
		return nil, util.ErrInvalidVideoNumber
	}
	if math.IsNaN(watched) || math.IsInf(watched, 0) || math.IsNaN(total) || math.IsInf(total, 0) {
		return nil, util.ErrInvalidPlayback
	}

	_, view, err := s.loadProgress(ctx, applicantID)
	if err != nil {
		return nil, err
	}
	if !view.IsUnlocked(number) {
		return nil, util.ErrVideoLocked
	}

	// 目录中的时长优先于客户端上报
	if d := s.Catalog[number].Duration; d > 0 {
		total = d
	}
	if total <= 0 {
		return nil, util.ErrInvalidPlayback
	}
	watched = math.Max(0, math.Min(watched, total))

	_, newlyCompleted, err := s.ProgressRepo.RecordProgress(ctx, repository.VideoProgressRecord{
		ApplicantID:     applicantID,
		VideoNumber:     number,
		WatchedDuration: watched,
		TotalDuration:   total,
		Completed:       ReachedThreshold(watched, total),
	})
	if err != nil {
		logger.Log.Error("Failed to record video progress",
			zap.Uint("applicantId", applicantID),
			zap.Int("video", number),
			zap.Float64("watched", watched),
			zap.Error(err),
		)
		return nil, err
	}

	if newlyCompleted {
		monitoring.VideoCompletions.WithLabelValues(strconv.Itoa(number)).Inc()
		logger.Log.Info("Onboarding video completed", zap.Uint("applicantId", applicantID), zap.Int("video", number))
		publish(ctx, s.Events, messaging.Event{
			Type:        messaging.EventVideoCompleted,
			ApplicantID: applicantID,
			OccurredAt:  time.Now(),
			Payload:     map[string]interface{}{"video": number, "watched": watched, "total": total},
		})
	}

	rows, view, err := s.loadProgress(ctx, applicantID)
	if err != nil {
		return nil, err
	}

	return &PlaybackResult{
		Video:          s.gateStatus(number, rows, view),
		Progress:       view,
		NewlyCompleted: newlyCompleted,
	}, nil
}

// RecordPlaybackError 只记录日志和指标，不影响已保存的完成状态
func (s *VideoService) RecordPlaybackError(applicantID uint, number int, reason string) error {
	if !ValidVideoNumber(number) {
		return util.ErrInvalidVideoNumber
	}
	monitoring.PlaybackErrors.WithLabelValues(strconv.Itoa(number)).Inc()
	logger.Log.Warn("Onboarding playback error",
		zap.Uint("applicantId", applicantID),
		zap.Int("video", number),
		zap.String("reason", reason),
	)
	return nil
}

func publish(ctx context.Context, events messaging.Publisher, event messaging.Event) {
	if err := events.Publish(ctx, event); err != nil {
		logger.Log.Warn("Failed to publish onboarding event", zap.String("type", event.Type), zap.Uint("applicantId", event.ApplicantID), zap.Error(err))
	}
}
