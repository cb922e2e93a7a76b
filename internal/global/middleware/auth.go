package middleware

import (
	"project-tracker/internal/global/jwt"
	"project-tracker/internal/global/redis"
	"project-tracker/internal/global/response"
	"project-tracker/internal/model"
	"strings"

	"github.com/gin-gonic/gin"
)

// RevokedTokenKey 注销令牌在 Redis 中的键前缀
const RevokedTokenKey = "revoked_token:"

// Auth 鉴权中间件，minRank 为所需的最低角色等级
func Auth(minRank int) gin.HandlerFunc {
	return func(c *gin.Context) {
		// 获取 Authorization 头
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			response.Fail(c, response.ErrTokenInvalid)
			c.Abort()
			return
		}

		// 检查 Bearer 前缀并提取 token
		if !strings.HasPrefix(authHeader, "Bearer ") {
			response.Fail(c, response.ErrTokenInvalid)
			c.Abort()
			return
		}
		token := strings.TrimPrefix(authHeader, "Bearer ")

		// 已注销的令牌直接拒绝
		if redis.Client != nil {
			if n, err := redis.Client.Exists(c.Request.Context(), RevokedTokenKey+token).Result(); err == nil && n > 0 {
				response.Fail(c, response.ErrTokenInvalid)
				c.Abort()
				return
			}
		}

		// 解析 token
		if payload, valid := jwt.ParseToken(token); !valid {
			response.Fail(c, response.ErrTokenInvalid)
			c.Abort()
			return
		} else if model.RoleRank(payload.Role) < minRank {
			response.Fail(c, response.ErrUnauthorized)
			c.Abort()
			return
		} else {
			c.Set("payload", payload)
			c.Set("token", token)
		}
		c.Next()
	}
}
