package util

import (
	"errors"
	"net/http"
	"onboarding_backend/pkg/logger"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// Response 统一响应结构
type Response struct {
	Code    int         `json:"code"`
	Message string      `json:"message"`
	Data    interface{} `json:"data,omitempty"`
}

func Success(c *gin.Context, data interface{}) {
	c.JSON(http.StatusOK, Response{
		Code:    http.StatusOK,
		Message: "success",
		Data:    data,
	})
}

func Created(c *gin.Context, data interface{}) {
	c.JSON(http.StatusCreated, Response{
		Code:    http.StatusCreated,
		Message: "created",
		Data:    data,
	})
}

func Error(c *gin.Context, code int, message string) {
	c.JSON(code, Response{
		Code:    code,
		Message: message,
	})
}

func Unauthorized(c *gin.Context) {
	Error(c, http.StatusUnauthorized, "Unauthorized")
}

func Forbidden(c *gin.Context) {
	Error(c, http.StatusForbidden, "Forbidden")
}

func BadRequest(c *gin.Context, message string) {
	Error(c, http.StatusBadRequest, message)
}

func NotFound(c *gin.Context) {
	Error(c, http.StatusNotFound, "Resource not found")
}

func InternalServerError(c *gin.Context) {
	Error(c, http.StatusInternalServerError, "Something went wrong, please try again")
}

func LogInternalError(c *gin.Context, err error) {
	logger.Log.Error("Internal server error",
		zap.Error(err),
		zap.String("path", c.FullPath()),
		zap.String("requestId", c.GetString(ContextRequestIDKey)),
	)
	InternalServerError(c)
}

var errorStatus = []struct {
	err    error
	status int
}{
	{ErrApplicantNotFound, http.StatusNotFound},
	{ErrPermissionDenied, http.StatusForbidden},
	{ErrVideoLocked, http.StatusForbidden},
	{ErrInvalidVideoNumber, http.StatusBadRequest},
	{ErrInvalidPlayback, http.StatusBadRequest},
	{ErrInvalidStep, http.StatusBadRequest},
	{ErrInvalidQuestionIndex, http.StatusBadRequest},
	{ErrInvalidOption, http.StatusBadRequest},
	{ErrInvalidSignature, http.StatusBadRequest},
	{ErrVideosIncomplete, http.StatusConflict},
	{ErrWrongPhase, http.StatusConflict},
	{ErrAnswerRequired, http.StatusConflict},
	{ErrQuizIncomplete, http.StatusConflict},
	{ErrQuizAlreadySubmitted, http.StatusConflict},
	{ErrQuizNotSubmitted, http.StatusConflict},
	{ErrQuizNotPassed, http.StatusConflict},
	{ErrQuizPassed, http.StatusConflict},
	{ErrCommitmentIncomplete, http.StatusConflict},
	{ErrAlreadySigned, http.StatusConflict},
	{ErrStatusConflict, http.StatusConflict},
}

// RespondError 把业务错误映射为状态码；未知错误记录日志后返回通用提示
func RespondError(c *gin.Context, err error) {
	for _, e := range errorStatus {
		if errors.Is(err, e.err) {
			Error(c, e.status, e.err.Error())
			return
		}
	}
	LogInternalError(c, err)
}
