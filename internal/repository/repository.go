// Package repository 提供状态变更工作流所依赖的持久化接口
// 工作流通过 WithTransaction 将多行写入包成一个事务单元
package repository

import (
	"context"
	"project-tracker/internal/model"

	"gorm.io/gorm"
)

// ErrNotFound 查询目标不存在
var ErrNotFound = gorm.ErrRecordNotFound

type ProjectRepository interface {
	FindByID(ctx context.Context, id uint) (*model.Project, error)
	// UpdateStatus 只更新项目的 status 字段，不触碰其他字段
	UpdateStatus(ctx context.Context, id uint, status model.Status) error
}

type StatusUpdateRepository interface {
	Create(ctx context.Context, update *model.ProjectStatusUpdate) error
	// ListByProject 按创建时间升序返回项目的全部状态变更记录（含附件与操作人）
	ListByProject(ctx context.Context, projectID uint) ([]model.ProjectStatusUpdate, error)
}

type DocumentRepository interface {
	Create(ctx context.Context, doc *model.SupportingDocument) error
	// ExistsByFile 判断指定存储路径是否已被某个附件占用
	ExistsByFile(ctx context.Context, file string) (bool, error)
}

// Store 聚合各实体仓库，并提供事务原语
type Store interface {
	Projects() ProjectRepository
	StatusUpdates() StatusUpdateRepository
	Documents() DocumentRepository
	// WithTransaction 在一个事务中执行 fn，fn 返回错误时整体回滚
	WithTransaction(ctx context.Context, fn func(Store) error) error
}
