package user

import (
	"project-tracker/internal/global/middleware"

	"github.com/gin-gonic/gin"
)

func (u *ModuleUser) InitRouter(r *gin.RouterGroup) {
	userGroup := r.Group("/users")

	// 注册与登录无需鉴权
	userGroup.POST("/create", Register)
	userGroup.POST("/login", Login)

	authed := userGroup.Group("")
	authed.Use(middleware.Auth(0))
	{
		authed.POST("/logout", Logout)
		authed.GET("/me", Me)
	}

	admin := userGroup.Group("")
	admin.Use(middleware.Auth(3))
	{
		admin.GET("/list", ListUsers)
	}
}
