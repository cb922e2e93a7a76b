package statusupdate

import (
	"context"
	"io"
	"project-tracker/internal/global/blobstore"
	"project-tracker/internal/global/jwt"
	"project-tracker/internal/global/response"
	"project-tracker/internal/model"
	"project-tracker/internal/repository"

	"github.com/pkg/errors"
)

// File 一个待保存的附件
type File struct {
	Name        string
	ContentType string
	Content     io.Reader
}

// SubmitInput 状态变更提交参数
type SubmitInput struct {
	ProjectID     uint
	Status        string
	ActionMessage string
	FileType      string
	Files         []File
}

// validate 纯校验，不触碰持久化
func (in *SubmitInput) validate() (model.Status, model.FileType, *response.Error) {
	if in.ProjectID == 0 {
		return "", "", response.ErrInvalidRequest.WithTips("project 不能为空")
	}
	status, ok := model.ParseStatus(in.Status)
	if !ok {
		return "", "", response.ErrInvalidRequest.WithTips("status 取值无效")
	}
	fileType, ok := model.ParseFileType(in.FileType)
	if !ok {
		return "", "", response.ErrInvalidRequest.WithTips("file_type 取值无效")
	}
	return status, fileType, nil
}

// Submit 提交一次状态变更：
// 在一个事务内插入状态变更记录、把新状态同步到项目的 status 字段，
// 并逐个保存附件、插入附件记录。任一步失败则整体回滚，
// 已写入的对象存储内容成为孤儿，但不会被任何记录引用。
func Submit(ctx context.Context, store repository.Store, blobs blobstore.Store, actor *jwt.Claims, in SubmitInput) (*View, *response.Error) {
	status, fileType, failure := in.validate()
	if failure != nil {
		return nil, failure
	}

	// 写入前确认项目存在
	if _, err := store.Projects().FindByID(ctx, in.ProjectID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, response.ErrNotFound.WithTips("项目不存在")
		}
		return nil, response.ErrDatabase.WithOrigin(err)
	}

	update := &model.ProjectStatusUpdate{
		ProjectID:     in.ProjectID,
		Status:        status,
		ActionMessage: in.ActionMessage,
		FileType:      fileType,
		UpdatedByID:   &actor.UserID,
	}

	err := store.WithTransaction(ctx, func(tx repository.Store) error {
		if err := tx.StatusUpdates().Create(ctx, update); err != nil {
			return err
		}

		// 只同步 status 字段，项目的其他字段不受影响
		if err := tx.Projects().UpdateStatus(ctx, in.ProjectID, status); err != nil {
			return err
		}

		taken := make(map[string]bool)
		for _, file := range in.Files {
			key, err := resolveKey(ctx, tx.Documents(), in.ProjectID, file.Name, taken)
			if err != nil {
				return err
			}
			taken[key] = true

			// 附件内容先落存储，成功后才插入关联记录
			if err := blobs.Put(ctx, key, file.Content, file.ContentType); err != nil {
				return errStorage{err}
			}

			doc := &model.SupportingDocument{
				StatusUpdateID: update.ID,
				File:           key,
			}
			if err := tx.Documents().Create(ctx, doc); err != nil {
				return err
			}
			update.Documents = append(update.Documents, *doc)
		}
		return nil
	})
	if err != nil {
		var se errStorage
		if errors.As(err, &se) {
			return nil, response.ErrStorage.WithOrigin(se.cause)
		}
		return nil, response.ErrDatabase.WithOrigin(err)
	}

	update.UpdatedBy = &model.User{
		Model:    model.Model{ID: actor.UserID},
		Username: actor.Username,
		Email:    actor.Email,
		Role:     actor.Role,
	}
	return NewView(ctx, blobs, update), nil
}

// resolveKey 计算附件的存储路径，重名时追加序号（report.pdf → report_1.pdf）
// 与库中已有附件以及同一次提交内的前序附件都不冲突
func resolveKey(ctx context.Context, docs repository.DocumentRepository, projectID uint, filename string, taken map[string]bool) (string, error) {
	for n := 0; ; n++ {
		key := blobstore.SuffixedKey(projectID, filename, n)
		if taken[key] {
			continue
		}
		exists, err := docs.ExistsByFile(ctx, key)
		if err != nil {
			return "", err
		}
		if !exists {
			return key, nil
		}
	}
}

// errStorage 标记对象存储写入失败，区别于数据库错误
type errStorage struct {
	cause error
}

func (e errStorage) Error() string {
	return "附件存储失败: " + e.cause.Error()
}

func (e errStorage) Unwrap() error {
	return e.cause
}
