package blobstore

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestDocumentKey(t *testing.T) {
	require.Equal(t, "supporting_documents/project_1/report.pdf", DocumentKey(1, "report.pdf"))
	require.Equal(t, "supporting_documents/project_42/a.png", DocumentKey(42, "a.png"))
	// 路径分量被剥离，避免逃出项目目录
	require.Equal(t, "supporting_documents/project_1/evil.pdf", DocumentKey(1, "../../evil.pdf"))
}

func TestSuffixedKey(t *testing.T) {
	require.Equal(t, "supporting_documents/project_1/report.pdf", SuffixedKey(1, "report.pdf", 0))
	require.Equal(t, "supporting_documents/project_1/report_1.pdf", SuffixedKey(1, "report.pdf", 1))
	require.Equal(t, "supporting_documents/project_1/report_2.pdf", SuffixedKey(1, "report.pdf", 2))
	// 无扩展名
	require.Equal(t, "supporting_documents/project_1/README_1", SuffixedKey(1, "README", 1))
}

func TestLocalStorePut(t *testing.T) {
	home := t.TempDir()
	store := newLocalStore(home, "http://localhost:8080/upload")

	key := DocumentKey(3, "report.pdf")
	err := store.Put(context.Background(), key, bytes.NewReader([]byte("content")), "application/pdf")
	require.NoError(t, err)

	data, err := os.ReadFile(filepath.Join(home, "supporting_documents", "project_3", "report.pdf"))
	require.NoError(t, err)
	require.Equal(t, []byte("content"), data)

	url, err := store.URL(context.Background(), key)
	require.NoError(t, err)
	require.Equal(t, "http://localhost:8080/upload/supporting_documents/project_3/report.pdf", url)
}

func TestLocalStoreOverwrite(t *testing.T) {
	home := t.TempDir()
	store := newLocalStore(home, "")
	key := DocumentKey(1, "a.pdf")

	require.NoError(t, store.Put(context.Background(), key, bytes.NewReader([]byte("v1")), "application/pdf"))
	require.NoError(t, store.Put(context.Background(), key, bytes.NewReader([]byte("v2")), "application/pdf"))

	data, err := os.ReadFile(filepath.Join(home, filepath.FromSlash(key)))
	require.NoError(t, err)
	require.Equal(t, []byte("v2"), data)
}
