package controller

import (
	"onboarding_backend/internal/service"
	"onboarding_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type OnboardingController struct {
	OnboardingService *service.OnboardingService
}

func NewOnboardingController(onboardingService *service.OnboardingService) *OnboardingController {
	return &OnboardingController{OnboardingService: onboardingService}
}

// @Summary 开始入职流程
// @Description 根据已保存的测验/承诺书记录决定起始阶段，并创建新的会话
// @Tags 入职流程
// @Produce json
// @Security BearerAuth
// @Success 200 {object} util.Response{data=service.OnboardingState}
// @Router /api/onboarding/session [post]
func (c *OnboardingController) Start(ctx *gin.Context) {
	applicant := util.GetApplicantFromContext(ctx)
	if applicant == nil {
		util.Unauthorized(ctx)
		return
	}

	state, err := c.OnboardingService.Start(ctx.Request.Context(), applicant)
	if err != nil {
		util.RespondError(ctx, err)
		return
	}
	util.Success(ctx, state)
}

// @Summary 获取入职流程状态
// @Tags 入职流程
// @Produce json
// @Security BearerAuth
// @Success 200 {object} util.Response{data=service.OnboardingState}
// @Router /api/onboarding/state [get]
func (c *OnboardingController) State(ctx *gin.Context) {
	applicant := util.GetApplicantFromContext(ctx)
	if applicant == nil {
		util.Unauthorized(ctx)
		return
	}

	state, err := c.OnboardingService.State(ctx.Request.Context(), applicant)
	if err != nil {
		util.RespondError(ctx, err)
		return
	}
	util.Success(ctx, state)
}

// @Summary 进入测验
// @Description 仅当当前为第 4 个视频且已看完
// @Tags 入职流程
// @Produce json
// @Security BearerAuth
// @Success 200 {object} util.Response{data=service.OnboardingState}
// @Failure 409 {object} util.Response
// @Router /api/onboarding/proceed-to-quiz [post]
func (c *OnboardingController) ProceedToQuiz(ctx *gin.Context) {
	applicant := util.GetApplicantFromContext(ctx)
	if applicant == nil {
		util.Unauthorized(ctx)
		return
	}

	state, err := c.OnboardingService.ProceedToQuiz(ctx.Request.Context(), applicant)
	if err != nil {
		util.RespondError(ctx, err)
		return
	}
	util.Success(ctx, state)
}

// @Summary 返回上一阶段
// @Description 测验返回视频，承诺书返回测验，已填内容保留
// @Tags 入职流程
// @Produce json
// @Security BearerAuth
// @Success 200 {object} util.Response{data=service.OnboardingState}
// @Router /api/onboarding/back [post]
func (c *OnboardingController) Back(ctx *gin.Context) {
	applicant := util.GetApplicantFromContext(ctx)
	if applicant == nil {
		util.Unauthorized(ctx)
		return
	}

	state, err := c.OnboardingService.Back(ctx.Request.Context(), applicant)
	if err != nil {
		util.RespondError(ctx, err)
		return
	}
	util.Success(ctx, state)
}

// @Summary 跳转到指定步骤
// @Description 1-4 为视频，5 为测验或承诺书
// @Tags 入职流程
// @Produce json
// @Security BearerAuth
// @Param step path int true "步骤 1-5"
// @Success 200 {object} util.Response{data=service.OnboardingState}
// @Failure 400 {object} util.Response
// @Router /api/onboarding/steps/{step} [post]
func (c *OnboardingController) JumpToStep(ctx *gin.Context) {
	applicant := util.GetApplicantFromContext(ctx)
	if applicant == nil {
		util.Unauthorized(ctx)
		return
	}

	step, ok := util.ParseIntParam(ctx.Param("step"))
	if !ok {
		util.RespondError(ctx, util.ErrInvalidStep)
		return
	}

	state, err := c.OnboardingService.JumpToStep(ctx.Request.Context(), applicant, step)
	if err != nil {
		util.RespondError(ctx, err)
		return
	}
	util.Success(ctx, state)
}
