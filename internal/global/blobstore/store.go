// Package blobstore 提供状态变更附件的存储能力
// 支持本地磁盘与 S3 两种后端，目录/桶的存在性由存储层自行负责
package blobstore

import (
	"context"
	"fmt"
	"io"
	"path"
	"project-tracker/config"
)

// Store 附件存储接口
type Store interface {
	// Put 将内容写入指定 key，写入失败时返回错误
	Put(ctx context.Context, key string, r io.Reader, contentType string) error
	// URL 返回 key 对应的访问地址
	URL(ctx context.Context, key string) (string, error)
}

var instance Store

func Init() {
	cfg := config.Get()
	if cfg.S3.Enable {
		instance = newS3Store(cfg.S3)
		return
	}
	instance = newLocalStore(cfg.Storage.Home, cfg.Storage.BaseURL)
}

// Get 获取全局存储实例
func Get() Store {
	return instance
}

// DocumentKey 计算附件的存储路径
// 约定为 supporting_documents/project_{projectId}/{filename}，不同项目的文件互不冲突
func DocumentKey(projectID uint, filename string) string {
	return fmt.Sprintf("supporting_documents/project_%d/%s", projectID, path.Base(filename))
}

// SuffixedKey 为重名文件生成带序号的存储路径，如 report_1.pdf
func SuffixedKey(projectID uint, filename string, n int) string {
	if n <= 0 {
		return DocumentKey(projectID, filename)
	}
	base := path.Base(filename)
	ext := path.Ext(base)
	name := base[:len(base)-len(ext)]
	return DocumentKey(projectID, fmt.Sprintf("%s_%d%s", name, n, ext))
}
