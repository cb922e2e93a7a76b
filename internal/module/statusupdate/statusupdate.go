package statusupdate

import (
	"mime/multipart"
	"project-tracker/internal/global/blobstore"
	"project-tracker/internal/global/database"
	"project-tracker/internal/global/jwt"
	"project-tracker/internal/global/response"
	"project-tracker/internal/repository"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/pkg/errors"
)

// SubmitRequest 提交状态变更的 multipart 请求体
type SubmitRequest struct {
	Project         uint                    `form:"project" binding:"required"`      // 项目ID
	Status          string                  `form:"status" binding:"required"`       // 新状态
	ActionMessage   string                  `form:"action_message"`                  // 操作说明，可选
	FileType        string                  `form:"file_type"`                       // 附件类型提示，默认 application/pdf
	SupportingFiles []*multipart.FileHeader `form:"supporting_files" binding:"omitempty"` // 附件，可为空
}

// SubmitStatusUpdate 处理状态变更提交请求
func SubmitStatusUpdate(c *gin.Context) {
	actor, exists := jwt.GetUserPayload(c)
	if !exists {
		response.Fail(c, response.ErrUnauthorized)
		return
	}

	// 绑定 multipart form-data
	var req SubmitRequest
	if err := c.ShouldBind(&req); err != nil {
		log.Error("绑定状态变更请求失败", "error", err)
		response.Fail(c, response.ErrInvalidRequest.WithOrigin(err))
		return
	}

	input := SubmitInput{
		ProjectID:     req.Project,
		Status:        req.Status,
		ActionMessage: req.ActionMessage,
		FileType:      req.FileType,
		Files:         make([]File, 0, len(req.SupportingFiles)),
	}

	// 打开全部附件，任一打开失败则整体拒绝
	for _, fileHeader := range req.SupportingFiles {
		f, err := fileHeader.Open()
		if err != nil {
			log.Error("读取上传附件失败", "error", err, "filename", fileHeader.Filename)
			response.Fail(c, response.ErrInvalidRequest.WithOrigin(err))
			return
		}
		defer f.Close()
		input.Files = append(input.Files, File{
			Name:        fileHeader.Filename,
			ContentType: fileHeader.Header.Get("Content-Type"),
			Content:     f,
		})
	}

	view, failure := Submit(c.Request.Context(), repository.NewStore(database.DB), blobstore.Get(), actor, input)
	if failure != nil {
		log.Warn("状态变更提交失败",
			"project", req.Project,
			"status", req.Status,
			"error", failure.Error())
		response.Fail(c, failure)
		return
	}

	log.Info("状态变更提交成功",
		"project", req.Project,
		"status", view.Status,
		"documents", len(view.Documents),
		"updated_by", actor.Username)

	response.Created(c, view)
}

// ListStatusUpdates 查询某项目的状态变更历史，按创建时间升序
func ListStatusUpdates(c *gin.Context) {
	projectID, err := strconv.ParseUint(c.Param("project_id"), 10, 64)
	if err != nil {
		response.Fail(c, response.ErrInvalidRequest.WithTips("项目ID无效"))
		return
	}

	store := repository.NewStore(database.DB)
	ctx := c.Request.Context()

	if _, err := store.Projects().FindByID(ctx, uint(projectID)); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			response.Fail(c, response.ErrNotFound.WithTips("项目不存在"))
			return
		}
		log.Error("查询项目失败", "error", err, "project", projectID)
		response.Fail(c, response.ErrDatabase.WithOrigin(err))
		return
	}

	updates, err := store.StatusUpdates().ListByProject(ctx, uint(projectID))
	if err != nil {
		log.Error("查询状态变更历史失败", "error", err, "project", projectID)
		response.Fail(c, response.ErrDatabase.WithOrigin(err))
		return
	}

	views := make([]*View, 0, len(updates))
	for i := range updates {
		views = append(views, NewView(ctx, blobstore.Get(), &updates[i]))
	}
	response.Success(c, views)
}
