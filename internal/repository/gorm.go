package repository

import (
	"context"
	"project-tracker/internal/model"

	"gorm.io/gorm"
)

// gormStore 基于 gorm 的 Store 实现
type gormStore struct {
	db *gorm.DB
}

func NewStore(db *gorm.DB) Store {
	return &gormStore{db: db}
}

func (s *gormStore) Projects() ProjectRepository           { return (*projectRepo)(s) }
func (s *gormStore) StatusUpdates() StatusUpdateRepository { return (*statusUpdateRepo)(s) }
func (s *gormStore) Documents() DocumentRepository         { return (*documentRepo)(s) }

func (s *gormStore) WithTransaction(ctx context.Context, fn func(Store) error) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&gormStore{db: tx})
	})
}

type projectRepo gormStore

func (r *projectRepo) FindByID(ctx context.Context, id uint) (*model.Project, error) {
	var project model.Project
	if err := r.db.WithContext(ctx).First(&project, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &project, nil
}

func (r *projectRepo) UpdateStatus(ctx context.Context, id uint, status model.Status) error {
	return r.db.WithContext(ctx).Model(&model.Project{}).
		Where("id = ?", id).
		Update("status", status).Error
}

type statusUpdateRepo gormStore

func (r *statusUpdateRepo) Create(ctx context.Context, update *model.ProjectStatusUpdate) error {
	return r.db.WithContext(ctx).Create(update).Error
}

func (r *statusUpdateRepo) ListByProject(ctx context.Context, projectID uint) ([]model.ProjectStatusUpdate, error) {
	var updates []model.ProjectStatusUpdate
	err := r.db.WithContext(ctx).
		Preload("Documents").
		Preload("UpdatedBy").
		Where("project_id = ?", projectID).
		Order("created_at ASC, id ASC").
		Find(&updates).Error
	if err != nil {
		return nil, err
	}
	return updates, nil
}

type documentRepo gormStore

func (r *documentRepo) Create(ctx context.Context, doc *model.SupportingDocument) error {
	return r.db.WithContext(ctx).Create(doc).Error
}

func (r *documentRepo) ExistsByFile(ctx context.Context, file string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&model.SupportingDocument{}).
		Where("file = ?", file).
		Count(&count).Error
	if err != nil {
		return false, err
	}
	return count > 0, nil
}
