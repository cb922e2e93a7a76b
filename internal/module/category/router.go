package category

import (
	"project-tracker/internal/global/middleware"

	"github.com/gin-gonic/gin"
)

func (m *ModuleCategory) InitRouter(r *gin.RouterGroup) {
	group := r.Group("/category")

	group.Use(middleware.Auth(0))
	{
		group.GET("/list", ListCategories)
		group.GET("/name/:name", GetCategoryByName)
	}

	group.Use(middleware.Auth(3))
	{
		// 分类管理仅限管理员
		group.POST("/create", CreateCategory)
		group.DELETE("/delete/:id", DeleteCategory)
	}
}
