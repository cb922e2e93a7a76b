package statusupdate

import (
	"project-tracker/internal/global/middleware"

	"github.com/gin-gonic/gin"
)

func (s *ModuleStatusUpdate) InitRouter(r *gin.RouterGroup) {
	// 状态变更相关端点以 /project-status 为前缀
	group := r.Group("/project-status")

	group.Use(middleware.Auth(0))
	{
		// 查询项目的状态变更历史
		group.GET("/list/:project_id", ListStatusUpdates)
	}

	group.Use(middleware.Auth(1))
	{
		// 提交状态变更
		group.POST("/create", SubmitStatusUpdate)
	}
}
