package statusupdate

import (
	"context"
	"project-tracker/internal/global/blobstore"
	"project-tracker/internal/model"
	"time"
)

// DocumentView 附件视图
type DocumentView struct {
	ID         uint      `json:"id"`
	File       string    `json:"file"` // 访问地址
	UploadedAt time.Time `json:"uploaded_at"`
}

// ActorView 操作人视图
type ActorView struct {
	ID       uint   `json:"id"`
	Username string `json:"username"`
	Email    string `json:"email"`
}

// View 状态变更记录视图，含附件与操作人，可直接展示
type View struct {
	ID            uint           `json:"id"`
	Project       uint           `json:"project"`
	Status        model.Status   `json:"status"`
	ActionMessage string         `json:"action_message"`
	FileType      model.FileType `json:"file_type"`
	CreatedAt     time.Time      `json:"created_at"`
	Documents     []DocumentView `json:"documents"`
	UpdatedBy     *ActorView     `json:"updated_by"`
}

// NewView 由状态变更记录构建视图，附件路径解析为访问地址
func NewView(ctx context.Context, blobs blobstore.Store, update *model.ProjectStatusUpdate) *View {
	view := &View{
		ID:            update.ID,
		Project:       update.ProjectID,
		Status:        update.Status,
		ActionMessage: update.ActionMessage,
		FileType:      update.FileType,
		CreatedAt:     update.CreatedAt,
		Documents:     make([]DocumentView, 0, len(update.Documents)),
	}

	for _, doc := range update.Documents {
		url, err := blobs.URL(ctx, doc.File)
		if err != nil {
			// 地址解析失败时退回存储路径
			url = doc.File
		}
		view.Documents = append(view.Documents, DocumentView{
			ID:         doc.ID,
			File:       url,
			UploadedAt: doc.CreatedAt,
		})
	}

	if update.UpdatedBy != nil {
		view.UpdatedBy = &ActorView{
			ID:       update.UpdatedBy.ID,
			Username: update.UpdatedBy.Username,
			Email:    update.UpdatedBy.Email,
		}
	}
	return view
}
