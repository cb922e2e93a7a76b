package project

import (
	"os"
	"path/filepath"
	"project-tracker/internal/global/database"
	"project-tracker/internal/global/jwt"
	"project-tracker/internal/global/response"
	"project-tracker/internal/model"
	"project-tracker/tools"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/pkg/errors"
	"github.com/xuri/excelize/v2"
	"gorm.io/gorm"
)

const dateLayout = "2006-01-02"

// ProjectCreateReq 定义创建项目请求的结构体
type ProjectCreateReq struct {
	Name        string `json:"name" binding:"required"`                    // 项目名称
	Description string `json:"description"`                                // 项目描述
	Progress    *int   `json:"progress" binding:"required,gte=0,lte=100"` // 进度百分比
	Category    uint   `json:"category" binding:"required"`                // 分类ID
	StartDate   string `json:"start_date" binding:"required"`              // 开始日期 2006-01-02
	EndDate     string `json:"end_date" binding:"required"`                // 结束日期，不得早于开始日期
}

// CreateProject 处理创建项目请求
func CreateProject(c *gin.Context) {
	actor, exists := jwt.GetUserPayload(c)
	if !exists {
		response.Fail(c, response.ErrUnauthorized)
		return
	}

	var req ProjectCreateReq
	if err := c.ShouldBindJSON(&req); err != nil {
		log.Error("绑定创建项目请求失败", "error", err)
		response.Fail(c, response.ErrInvalidRequest.WithOrigin(err))
		return
	}

	startDate, err := time.Parse(dateLayout, req.StartDate)
	if err != nil {
		response.Fail(c, response.ErrInvalidRequest.WithTips("开始日期格式错误"))
		return
	}
	endDate, err := time.Parse(dateLayout, req.EndDate)
	if err != nil {
		response.Fail(c, response.ErrInvalidRequest.WithTips("结束日期格式错误"))
		return
	}
	if endDate.Before(startDate) {
		response.Fail(c, response.ErrInvalidRequest.WithTips("结束日期不得早于开始日期"))
		return
	}

	// 分类必须存在
	var category model.ProjectCategory
	if err := database.DB.First(&category, "id = ?", req.Category).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			response.Fail(c, response.ErrNotFound.WithTips("分类不存在"))
			return
		}
		log.Error("查询分类失败", "error", err, "category", req.Category)
		response.Fail(c, response.ErrDatabase.WithOrigin(err))
		return
	}

	project := model.Project{
		Name:        req.Name,
		Description: req.Description,
		Progress:    *req.Progress,
		Status:      model.StatusPending,
		StartDate:   &startDate,
		EndDate:     &endDate,
		CategoryID:  category.ID,
		CreateByID:  &actor.UserID,
	}

	if err := database.DB.Create(&project).Error; err != nil {
		log.Error("创建项目失败", "error", err, "name", req.Name)
		response.Fail(c, response.ErrDatabase.WithOrigin(err))
		return
	}

	log.Info("项目创建成功",
		"id", project.ID,
		"name", project.Name,
		"create_by", actor.Username,
	)

	response.Created(c, project)
}

// ListProjectsReq 定义获取项目列表的查询参数结构体
type ListProjectsReq struct {
	Category uint   `form:"category" json:"category"`   // 分类ID筛选
	Name     string `form:"name" json:"name"`           // 项目名称模糊查询
	Page     int    `form:"page" json:"page"`           // 页码，默认为1
	PageSize int    `form:"page_size" json:"page_size"` // 每页大小，默认为10
}

// ListProjects 获取项目列表（支持查询参数）
func ListProjects(c *gin.Context) {
	var req ListProjectsReq
	if err := c.ShouldBindQuery(&req); err != nil {
		log.Error("绑定查询参数失败", "error", err)
		response.Fail(c, response.ErrInvalidRequest.WithOrigin(err))
		return
	}

	// 设置默认值
	if req.Page <= 0 {
		req.Page = 1
	}
	if req.PageSize <= 0 {
		req.PageSize = 10
	}

	query := database.DB.Model(&model.Project{})

	if req.Category != 0 {
		query = query.Where("category_id = ?", req.Category)
	}
	if req.Name != "" {
		query = query.Where("name LIKE ?", "%"+req.Name+"%")
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		log.Error("获取项目总数失败", "error", err)
		response.Fail(c, response.ErrDatabase.WithOrigin(err))
		return
	}

	var projects []model.Project
	offset := (req.Page - 1) * req.PageSize
	err := query.Preload("Category").Preload("CreateBy").
		Offset(offset).Limit(req.PageSize).
		Find(&projects).Error
	if err != nil {
		log.Error("获取项目列表失败", "error", err)
		response.Fail(c, response.ErrDatabase.WithOrigin(err))
		return
	}

	result := map[string]interface{}{
		"projects":    projects,
		"total":       total,
		"page":        req.Page,
		"page_size":   req.PageSize,
		"total_pages": (total + int64(req.PageSize) - 1) / int64(req.PageSize),
	}

	response.Success(c, result)
}

// GetProjectView 获取单项目详情视图，含按创建时间排序的状态变更历史
func GetProjectView(c *gin.Context) {
	id := c.Param("id")
	if id == "" {
		response.Fail(c, response.ErrInvalidRequest.WithTips("项目ID不能为空"))
		return
	}

	var project model.Project
	err := database.DB.
		Preload("Category").
		Preload("CreateBy").
		Preload("StatusUpdates", func(db *gorm.DB) *gorm.DB {
			return db.Order("created_at ASC, id ASC")
		}).
		Preload("StatusUpdates.Documents").
		Preload("StatusUpdates.UpdatedBy").
		First(&project, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			log.Warn("项目不存在", "id", id)
			response.Fail(c, response.ErrNotFound.WithTips("项目不存在"))
			return
		}
		log.Error("查询项目失败", "error", err, "id", id)
		response.Fail(c, response.ErrDatabase.WithOrigin(err))
		return
	}

	response.Success(c, project)
}

// MonthlyProgressRow 月度进度统计行
type MonthlyProgressRow struct {
	Month        string  `json:"month" excel:"月份"`
	AvgProgress  float64 `json:"avg_progress" excel:"平均进度"`
	ProjectCount int64   `json:"project_count" excel:"项目数"`
}

// MonthlyProgress 按月统计项目平均进度与数量
func MonthlyProgress(c *gin.Context) {
	var rows []MonthlyProgressRow
	err := database.DB.Model(&model.Project{}).
		Select("DATE_FORMAT(created_at, '%Y-%m') AS month, AVG(progress) AS avg_progress, COUNT(*) AS project_count").
		Group("month").
		Order("month ASC").
		Scan(&rows).Error
	if err != nil {
		log.Error("月度进度统计失败", "error", err)
		response.Fail(c, response.ErrDatabase.WithOrigin(err))
		return
	}

	response.Success(c, rows)
}

// ProjectExportRow 导出表格的行结构
type ProjectExportRow struct {
	ID        uint   `excel:"ID"`
	Name      string `excel:"项目名称"`
	Category  string `excel:"分类"`
	Progress  int    `excel:"进度"`
	Status    string `excel:"状态"`
	StartDate string `excel:"开始日期"`
	EndDate   string `excel:"结束日期"`
	CreateBy  string `excel:"创建人"`
}

// ExportProjects 导出项目列表为 Excel
func ExportProjects(c *gin.Context) {
	var projects []model.Project
	err := database.DB.Preload("Category").Preload("CreateBy").
		Order("id ASC").
		Find(&projects).Error
	if err != nil {
		log.Error("查询项目列表失败", "error", err)
		response.Fail(c, response.ErrDatabase.WithOrigin(err))
		return
	}

	rows := make([]ProjectExportRow, 0, len(projects))
	for _, p := range projects {
		row := ProjectExportRow{
			ID:       p.ID,
			Name:     p.Name,
			Category: p.Category.Name,
			Progress: p.Progress,
			Status:   string(p.Status),
		}
		if p.StartDate != nil {
			row.StartDate = p.StartDate.Format(dateLayout)
		}
		if p.EndDate != nil {
			row.EndDate = p.EndDate.Format(dateLayout)
		}
		if p.CreateBy != nil {
			row.CreateBy = p.CreateBy.Username
		}
		rows = append(rows, row)
	}

	f := excelize.NewFile()
	defer f.Close()
	if err := tools.ExportToExcel(f, "Projects", rows); err != nil {
		log.Error("生成导出文件失败", "error", err)
		response.Fail(c, response.ErrServerInternal.WithOrigin(err))
		return
	}

	exportPath := filepath.Join(os.TempDir(), "projects_export.xlsx")
	if err := f.SaveAs(exportPath); err != nil {
		log.Error("保存导出文件失败", "error", err)
		response.Fail(c, response.ErrServerInternal.WithOrigin(err))
		return
	}

	_ = tools.SendStoredFile(c, exportPath, "projects.xlsx", tools.ExcelContentType)
}
