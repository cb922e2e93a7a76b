package category

import (
	"project-tracker/internal/global/database"
	"project-tracker/internal/global/response"
	"project-tracker/internal/model"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/pkg/errors"
	"gorm.io/gorm"
)

// CategoryCreateReq 定义创建分类请求的结构体
type CategoryCreateReq struct {
	Name        string `json:"name" binding:"required"` // 分类名称，统一小写保存
	Description string `json:"description"`             // 分类描述
}

// CreateCategory 处理创建分类请求，名称不区分大小写唯一
func CreateCategory(c *gin.Context) {
	var req CategoryCreateReq
	if err := c.ShouldBindJSON(&req); err != nil {
		log.Error("绑定创建分类请求失败", "error", err)
		response.Fail(c, response.ErrInvalidRequest.WithOrigin(err))
		return
	}

	name := strings.ToLower(strings.TrimSpace(req.Name))
	if name == "" {
		response.Fail(c, response.ErrInvalidRequest.WithTips("分类名称不能为空"))
		return
	}

	var existing model.ProjectCategory
	err := database.DB.Where("LOWER(name) = ?", name).First(&existing).Error
	if err == nil {
		log.Warn("分类已存在", "name", name)
		response.Fail(c, response.ErrAlreadyExists.WithTips("分类已存在"))
		return
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		log.Error("数据库查询失败", "error", err, "name", name)
		response.Fail(c, response.ErrDatabase.WithOrigin(err))
		return
	}

	category := model.ProjectCategory{
		Name:        name,
		Description: strings.ToLower(req.Description),
	}
	if err := database.DB.Create(&category).Error; err != nil {
		log.Error("创建分类失败", "error", err, "name", name)
		response.Fail(c, response.ErrDatabase.WithOrigin(err))
		return
	}

	log.Info("分类创建成功", "id", category.ID, "name", category.Name)
	response.Created(c, category)
}

// ListCategories 获取全部分类
func ListCategories(c *gin.Context) {
	var categories []model.ProjectCategory
	if err := database.DB.Order("name ASC").Find(&categories).Error; err != nil {
		log.Error("获取分类列表失败", "error", err)
		response.Fail(c, response.ErrDatabase.WithOrigin(err))
		return
	}
	response.Success(c, categories)
}

// GetCategoryByName 按名称查询分类（不区分大小写）
func GetCategoryByName(c *gin.Context) {
	name := strings.ToLower(c.Param("name"))

	var category model.ProjectCategory
	if err := database.DB.Where("LOWER(name) = ?", name).First(&category).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			response.Fail(c, response.ErrNotFound.WithTips("分类不存在"))
			return
		}
		log.Error("查询分类失败", "error", err, "name", name)
		response.Fail(c, response.ErrDatabase.WithOrigin(err))
		return
	}
	response.Success(c, category)
}

// DeleteCategory 删除分类，仍被项目引用时拒绝
func DeleteCategory(c *gin.Context) {
	id := c.Param("id")
	if id == "" {
		response.Fail(c, response.ErrInvalidRequest.WithTips("分类ID不能为空"))
		return
	}

	var category model.ProjectCategory
	if err := database.DB.First(&category, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			response.Fail(c, response.ErrNotFound.WithTips("分类不存在"))
			return
		}
		log.Error("查询分类失败", "error", err, "id", id)
		response.Fail(c, response.ErrDatabase.WithOrigin(err))
		return
	}

	var inUse int64
	if err := database.DB.Model(&model.Project{}).Where("category_id = ?", category.ID).Count(&inUse).Error; err != nil {
		log.Error("查询分类引用失败", "error", err, "id", id)
		response.Fail(c, response.ErrDatabase.WithOrigin(err))
		return
	}
	if inUse > 0 {
		response.Fail(c, response.ErrInvalidRequest.WithTips("分类仍被项目引用，无法删除"))
		return
	}

	if err := database.DB.Delete(&category).Error; err != nil {
		log.Error("删除分类失败", "error", err, "id", id)
		response.Fail(c, response.ErrDatabase.WithOrigin(err))
		return
	}

	log.Info("分类删除成功", "id", category.ID, "name", category.Name)
	response.Success(c)
}
