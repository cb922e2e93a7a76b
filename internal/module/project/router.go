package project

import (
	"project-tracker/internal/global/middleware"

	"github.com/gin-gonic/gin"
)

func (p *ModuleProject) InitRouter(r *gin.RouterGroup) {
	// 定义项目模块的路由组，所有项目相关端点以 /project 为前缀
	projectGroup := r.Group("/project")

	projectGroup.Use(middleware.Auth(0))
	{
		// 项目列表
		projectGroup.GET("/list", ListProjects)

		// 单项目详情视图，含完整状态变更历史
		projectGroup.GET("/view/:id", GetProjectView)

		// 月度进度统计
		projectGroup.GET("/stats/monthly", MonthlyProgress)
	}

	projectGroup.Use(middleware.Auth(1))
	{
		// 创建项目
		projectGroup.POST("/create", CreateProject)

		// 导出项目列表
		projectGroup.GET("/export", ExportProjects)
	}
}
