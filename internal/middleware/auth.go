package middleware

import (
	"context"
	"errors"
	"onboarding_backend/internal/model"
	"onboarding_backend/internal/util"
	"onboarding_backend/pkg/logger"
	"strings"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// AuthMiddleware 校验 Bearer token，解析出的 claims 存入 gin 上下文
func AuthMiddleware(secret string) gin.HandlerFunc {
	return func(c *gin.Context) {
		tokenString := strings.TrimPrefix(c.GetHeader("Authorization"), "Bearer ")
		if tokenString == "" {
			util.Unauthorized(c)
			c.Abort()
			return
		}

		claims, err := util.ParseJWT(tokenString, secret)
		if err != nil {
			logger.Log.Debug("JWT parse failed", zap.Error(err), zap.String("path", c.FullPath()))
			util.Unauthorized(c)
			c.Abort()
			return
		}

		c.Set(util.ContextUserKey, claims)
		c.Next()
	}
}

func RoleMiddleware(roles ...model.UserRole) gin.HandlerFunc {
	return func(c *gin.Context) {
		user := util.GetUserFromContext(c)
		if user == nil {
			util.Unauthorized(c)
			c.Abort()
			return
		}

		for _, role := range roles {
			if user.Role == role {
				c.Next()
				return
			}
		}
		util.Forbidden(c)
		c.Abort()
	}
}

type ApplicantLoader interface {
	FindByUserID(ctx context.Context, userID uint) (*model.Applicant, error)
}

// ApplicantMiddleware 每个请求按 token 里的用户重新加载申请人记录，后续处理显式使用它
func ApplicantMiddleware(repo ApplicantLoader) gin.HandlerFunc {
	return func(c *gin.Context) {
		user := util.GetUserFromContext(c)
		if user == nil {
			util.Unauthorized(c)
			c.Abort()
			return
		}

		applicant, err := repo.FindByUserID(c.Request.Context(), user.UserID)
		if errors.Is(err, util.ErrApplicantNotFound) {
			util.RespondError(c, err)
			c.Abort()
			return
		}
		if err != nil {
			util.LogInternalError(c, err)
			c.Abort()
			return
		}

		c.Set(util.ContextApplicantKey, applicant)
		c.Next()
	}
}
