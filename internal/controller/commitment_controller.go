package controller

import (
	"onboarding_backend/internal/model"
	"onboarding_backend/internal/service"
	"onboarding_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type CommitmentController struct {
	OnboardingService *service.OnboardingService
}

func NewCommitmentController(onboardingService *service.OnboardingService) *CommitmentController {
	return &CommitmentController{OnboardingService: onboardingService}
}

type StrokeRequest struct {
	Points []model.SignaturePoint `json:"points" binding:"required,min=1"`
}

type SignatureUploadRequest struct {
	DataURL string `json:"dataUrl" binding:"required"`
}

// @Summary 获取承诺书草稿
// @Tags 承诺书
// @Produce json
// @Security BearerAuth
// @Success 200 {object} util.Response{data=service.CommitmentView}
// @Router /api/onboarding/commitment [get]
func (c *CommitmentController) Get(ctx *gin.Context) {
	applicant := util.GetApplicantFromContext(ctx)
	if applicant == nil {
		util.Unauthorized(ctx)
		return
	}

	view, err := c.OnboardingService.Commitment(ctx.Request.Context(), applicant)
	if err != nil {
		util.RespondError(ctx, err)
		return
	}
	util.Success(ctx, view)
}

// @Summary 更新勾选项
// @Description 两个确认勾选项和移动端开发问题，未传的字段保持不变
// @Tags 承诺书
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body service.CommitmentUpdate true "勾选项"
// @Success 200 {object} util.Response{data=service.OnboardingState}
// @Router /api/onboarding/commitment [put]
func (c *CommitmentController) Update(ctx *gin.Context) {
	applicant := util.GetApplicantFromContext(ctx)
	if applicant == nil {
		util.Unauthorized(ctx)
		return
	}

	var req service.CommitmentUpdate
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, "invalid commitment fields")
		return
	}

	state, err := c.OnboardingService.UpdateCommitment(ctx.Request.Context(), applicant, req)
	if err != nil {
		util.RespondError(ctx, err)
		return
	}
	util.Success(ctx, state)
}

// @Summary 添加签名笔画
// @Tags 承诺书
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body StrokeRequest true "笔画坐标（画布 600x200）"
// @Success 200 {object} util.Response{data=service.OnboardingState}
// @Failure 400 {object} util.Response
// @Router /api/onboarding/commitment/strokes [post]
func (c *CommitmentController) AddStroke(ctx *gin.Context) {
	applicant := util.GetApplicantFromContext(ctx)
	if applicant == nil {
		util.Unauthorized(ctx)
		return
	}

	var req StrokeRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.RespondError(ctx, util.ErrInvalidSignature)
		return
	}

	state, err := c.OnboardingService.AddSignatureStroke(ctx.Request.Context(), applicant, model.SignatureStroke(req.Points))
	if err != nil {
		util.RespondError(ctx, err)
		return
	}
	util.Success(ctx, state)
}

// @Summary 上传签名图片
// @Description PNG data URL（data:image/png;base64,...）
// @Tags 承诺书
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body SignatureUploadRequest true "签名图片"
// @Success 200 {object} util.Response{data=service.OnboardingState}
// @Failure 400 {object} util.Response
// @Router /api/onboarding/commitment/signature [put]
func (c *CommitmentController) UploadSignature(ctx *gin.Context) {
	applicant := util.GetApplicantFromContext(ctx)
	if applicant == nil {
		util.Unauthorized(ctx)
		return
	}

	var req SignatureUploadRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.RespondError(ctx, util.ErrInvalidSignature)
		return
	}

	state, err := c.OnboardingService.UploadSignature(ctx.Request.Context(), applicant, req.DataURL)
	if err != nil {
		util.RespondError(ctx, err)
		return
	}
	util.Success(ctx, state)
}

// @Summary 清除签名
// @Tags 承诺书
// @Produce json
// @Security BearerAuth
// @Success 200 {object} util.Response{data=service.OnboardingState}
// @Router /api/onboarding/commitment/signature [delete]
func (c *CommitmentController) ClearSignature(ctx *gin.Context) {
	applicant := util.GetApplicantFromContext(ctx)
	if applicant == nil {
		util.Unauthorized(ctx)
		return
	}

	state, err := c.OnboardingService.ClearSignature(ctx.Request.Context(), applicant)
	if err != nil {
		util.RespondError(ctx, err)
		return
	}
	util.Success(ctx, state)
}

// @Summary 完成承诺书
// @Description 保存签名并把申请状态改为 waitlist（同一事务），成功后跳转等待页
// @Tags 承诺书
// @Produce json
// @Security BearerAuth
// @Success 200 {object} util.Response{data=service.OnboardingState}
// @Failure 409 {object} util.Response
// @Router /api/onboarding/commitment/complete [post]
func (c *CommitmentController) Complete(ctx *gin.Context) {
	applicant := util.GetApplicantFromContext(ctx)
	if applicant == nil {
		util.Unauthorized(ctx)
		return
	}

	state, err := c.OnboardingService.CompleteCommitment(ctx.Request.Context(), applicant)
	if err != nil {
		util.RespondError(ctx, err)
		return
	}
	util.Success(ctx, state)
}
