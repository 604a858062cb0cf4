package service

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"onboarding_backend/internal/config"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStorageService_LocalArchive(t *testing.T) {
	root := t.TempDir()
	svc := NewStorageService(&config.StorageConfig{Type: "local", LocalPath: root})

	key, url, err := svc.ArchiveSignature(context.Background(), 42, []byte("png-bytes"))
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(key, "signatures/42-"))
	assert.Equal(t, "/uploads/"+key, url)

	data, err := os.ReadFile(filepath.Join(root, filepath.FromSlash(key)))
	require.NoError(t, err)
	assert.Equal(t, "png-bytes", string(data))

	require.NoError(t, svc.Provider.Delete(context.Background(), key))
	_, err = os.Stat(filepath.Join(root, filepath.FromSlash(key)))
	assert.True(t, os.IsNotExist(err))
}

func TestNewStorageService_FallsBackToLocal(t *testing.T) {
	svc := NewStorageService(&config.StorageConfig{Type: "unknown", LocalPath: t.TempDir()})
	_, ok := svc.Provider.(*LocalStorageProvider)
	assert.True(t, ok)
}

func TestOSSStorageProvider_URL(t *testing.T) {
	p := &OSSStorageProvider{Endpoint: "oss-cn-hangzhou.aliyuncs.com", Bucket: "signatures"}
	assert.Equal(t, "https://signatures.oss-cn-hangzhou.aliyuncs.com/a.png", p.URL("a.png"))
}
