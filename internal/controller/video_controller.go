package controller

import (
	"onboarding_backend/internal/service"
	"onboarding_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type VideoController struct {
	VideoService      *service.VideoService
	OnboardingService *service.OnboardingService
}

func NewVideoController(videoService *service.VideoService, onboardingService *service.OnboardingService) *VideoController {
	return &VideoController{VideoService: videoService, OnboardingService: onboardingService}
}

type PlaybackProgressRequest struct {
	Watched *float64 `json:"watched" binding:"required"`
	Total   float64  `json:"total"`
}

type PlaybackErrorRequest struct {
	Reason string `json:"reason" binding:"max=500"`
}

// @Summary 获取入职视频列表
// @Description 返回每个视频的解锁和完成状态
// @Tags 入职视频
// @Produce json
// @Security BearerAuth
// @Success 200 {object} util.Response{data=service.VideoOverview}
// @Router /api/onboarding/videos [get]
func (c *VideoController) List(ctx *gin.Context) {
	applicant := util.GetApplicantFromContext(ctx)
	if applicant == nil {
		util.Unauthorized(ctx)
		return
	}

	overview, err := c.VideoService.Overview(ctx.Request.Context(), applicant.ID)
	if err != nil {
		util.RespondError(ctx, err)
		return
	}
	util.Success(ctx, overview)
}

// @Summary 获取单个视频状态
// @Tags 入职视频
// @Produce json
// @Security BearerAuth
// @Param number path int true "视频编号 1-4"
// @Success 200 {object} util.Response{data=service.VideoGateStatus}
// @Failure 400 {object} util.Response
// @Router /api/onboarding/videos/{number} [get]
func (c *VideoController) Get(ctx *gin.Context) {
	applicant := util.GetApplicantFromContext(ctx)
	if applicant == nil {
		util.Unauthorized(ctx)
		return
	}

	number, ok := util.ParseIntParam(ctx.Param("number"))
	if !ok {
		util.RespondError(ctx, util.ErrInvalidVideoNumber)
		return
	}

	status, err := c.VideoService.GateStatus(ctx.Request.Context(), applicant.ID, number)
	if err != nil {
		util.RespondError(ctx, err)
		return
	}
	util.Success(ctx, status)
}

// @Summary 上报播放进度
// @Description 观看比例达到 98% 时记录完成（只记录一次）
// @Tags 入职视频
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param number path int true "视频编号 1-4"
// @Param body body PlaybackProgressRequest true "播放进度（秒）"
// @Success 200 {object} util.Response{data=service.PlaybackResult}
// @Failure 403 {object} util.Response
// @Router /api/onboarding/videos/{number}/progress [post]
func (c *VideoController) ReportProgress(ctx *gin.Context) {
	applicant := util.GetApplicantFromContext(ctx)
	if applicant == nil {
		util.Unauthorized(ctx)
		return
	}

	number, ok := util.ParseIntParam(ctx.Param("number"))
	if !ok {
		util.RespondError(ctx, util.ErrInvalidVideoNumber)
		return
	}

	var req PlaybackProgressRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, "watched position is required")
		return
	}

	result, err := c.OnboardingService.ReportPlayback(ctx.Request.Context(), applicant, number, *req.Watched, req.Total)
	if err != nil {
		util.RespondError(ctx, err)
		return
	}
	util.Success(ctx, result)
}

// @Summary 上报播放失败
// @Description 只记录日志和指标，不影响已保存的完成状态
// @Tags 入职视频
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param number path int true "视频编号 1-4"
// @Param body body PlaybackErrorRequest false "错误原因"
// @Success 200 {object} util.Response
// @Router /api/onboarding/videos/{number}/playback-error [post]
func (c *VideoController) ReportPlaybackError(ctx *gin.Context) {
	applicant := util.GetApplicantFromContext(ctx)
	if applicant == nil {
		util.Unauthorized(ctx)
		return
	}

	number, ok := util.ParseIntParam(ctx.Param("number"))
	if !ok {
		util.RespondError(ctx, util.ErrInvalidVideoNumber)
		return
	}

	var req PlaybackErrorRequest
	if ctx.Request.ContentLength > 0 {
		if err := ctx.ShouldBindJSON(&req); err != nil {
			util.BadRequest(ctx, "reason is too long")
			return
		}
	}

	if err := c.VideoService.RecordPlaybackError(applicant.ID, number, req.Reason); err != nil {
		util.RespondError(ctx, err)
		return
	}
	util.Success(ctx, nil)
}
