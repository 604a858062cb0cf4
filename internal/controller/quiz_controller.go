package controller

import (
	"onboarding_backend/internal/service"
	"onboarding_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type QuizController struct {
	OnboardingService *service.OnboardingService
}

func NewQuizController(onboardingService *service.OnboardingService) *QuizController {
	return &QuizController{OnboardingService: onboardingService}
}

type SelectAnswerRequest struct {
	Option *int `json:"option" binding:"required"`
}

// quizAction 测验相关的操作都是“改会话 -> 返回状态”
func (c *QuizController) quizAction(ctx *gin.Context, fn func(*gin.Context) (*service.OnboardingState, error)) {
	if util.GetApplicantFromContext(ctx) == nil {
		util.Unauthorized(ctx)
		return
	}
	state, err := fn(ctx)
	if err != nil {
		util.RespondError(ctx, err)
		return
	}
	util.Success(ctx, state)
}

// @Summary 获取测验
// @Description 题目（不含答案）和当前作答进度
// @Tags 入职测验
// @Produce json
// @Security BearerAuth
// @Success 200 {object} util.Response{data=service.QuizView}
// @Router /api/onboarding/quiz [get]
func (c *QuizController) Get(ctx *gin.Context) {
	applicant := util.GetApplicantFromContext(ctx)
	if applicant == nil {
		util.Unauthorized(ctx)
		return
	}

	view, err := c.OnboardingService.QuizView(ctx.Request.Context(), applicant)
	if err != nil {
		util.RespondError(ctx, err)
		return
	}
	util.Success(ctx, view)
}

// @Summary 选择答案
// @Tags 入职测验
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param index path int true "题目序号（从 0 开始）"
// @Param body body SelectAnswerRequest true "选项序号"
// @Success 200 {object} util.Response{data=service.OnboardingState}
// @Failure 400 {object} util.Response
// @Router /api/onboarding/quiz/answers/{index} [put]
func (c *QuizController) SelectAnswer(ctx *gin.Context) {
	c.quizAction(ctx, func(ctx *gin.Context) (*service.OnboardingState, error) {
		index, ok := util.ParseIntParam(ctx.Param("index"))
		if !ok {
			return nil, util.ErrInvalidQuestionIndex
		}
		var req SelectAnswerRequest
		if err := ctx.ShouldBindJSON(&req); err != nil {
			return nil, util.ErrInvalidOption
		}
		return c.OnboardingService.SelectAnswer(ctx.Request.Context(), util.GetApplicantFromContext(ctx), index, *req.Option)
	})
}

// @Summary 下一题
// @Description 最后一题时直接提交
// @Tags 入职测验
// @Produce json
// @Security BearerAuth
// @Success 200 {object} util.Response{data=service.OnboardingState}
// @Failure 409 {object} util.Response
// @Router /api/onboarding/quiz/next [post]
func (c *QuizController) Next(ctx *gin.Context) {
	c.quizAction(ctx, func(ctx *gin.Context) (*service.OnboardingState, error) {
		return c.OnboardingService.NextQuestion(ctx.Request.Context(), util.GetApplicantFromContext(ctx))
	})
}

// @Summary 上一题
// @Tags 入职测验
// @Produce json
// @Security BearerAuth
// @Success 200 {object} util.Response{data=service.OnboardingState}
// @Router /api/onboarding/quiz/back [post]
func (c *QuizController) Back(ctx *gin.Context) {
	c.quizAction(ctx, func(ctx *gin.Context) (*service.OnboardingState, error) {
		return c.OnboardingService.PreviousQuestion(ctx.Request.Context(), util.GetApplicantFromContext(ctx))
	})
}

// @Summary 提交测验
// @Tags 入职测验
// @Produce json
// @Security BearerAuth
// @Success 200 {object} util.Response{data=service.OnboardingState}
// @Failure 409 {object} util.Response
// @Router /api/onboarding/quiz/submit [post]
func (c *QuizController) Submit(ctx *gin.Context) {
	c.quizAction(ctx, func(ctx *gin.Context) (*service.OnboardingState, error) {
		return c.OnboardingService.SubmitQuiz(ctx.Request.Context(), util.GetApplicantFromContext(ctx))
	})
}

// @Summary 重新测验
// @Description 仅未通过时可用
// @Tags 入职测验
// @Produce json
// @Security BearerAuth
// @Success 200 {object} util.Response{data=service.OnboardingState}
// @Router /api/onboarding/quiz/retake [post]
func (c *QuizController) Retake(ctx *gin.Context) {
	c.quizAction(ctx, func(ctx *gin.Context) (*service.OnboardingState, error) {
		return c.OnboardingService.RetakeQuiz(ctx.Request.Context(), util.GetApplicantFromContext(ctx))
	})
}

// @Summary 继续到承诺书
// @Tags 入职测验
// @Produce json
// @Security BearerAuth
// @Success 200 {object} util.Response{data=service.OnboardingState}
// @Failure 409 {object} util.Response
// @Router /api/onboarding/quiz/continue [post]
func (c *QuizController) Continue(ctx *gin.Context) {
	c.quizAction(ctx, func(ctx *gin.Context) (*service.OnboardingState, error) {
		return c.OnboardingService.ContinueToCommitment(ctx.Request.Context(), util.GetApplicantFromContext(ctx))
	})
}
