package blobstore

import (
	"context"
	"io"
	"os"
	"path/filepath"
	"strings"
)

// localStore 本地磁盘存储
type localStore struct {
	home    string // 保存根目录
	baseURL string // 访问基础URL
}

func newLocalStore(home, baseURL string) *localStore {
	if home == "" {
		home = "./upload"
	}
	return &localStore{home: home, baseURL: strings.TrimRight(baseURL, "/")}
}

func (s *localStore) Put(ctx context.Context, key string, r io.Reader, contentType string) error {
	filePath := filepath.Join(s.home, filepath.FromSlash(key))

	// 确保保存目录存在
	if err := os.MkdirAll(filepath.Dir(filePath), os.ModePerm); err != nil {
		return err
	}

	dst, err := os.Create(filePath)
	if err != nil {
		return err
	}
	defer dst.Close()

	if _, err := io.Copy(dst, r); err != nil {
		return err
	}
	return nil
}

func (s *localStore) URL(ctx context.Context, key string) (string, error) {
	return s.baseURL + "/" + key, nil
}
