package services

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
)

// LocalStorageService keeps uploads on disk under basePath and serves them from baseURL.
// It stands in for MinIO in development.
type LocalStorageService struct {
	basePath string
	baseURL  string
}

func NewLocalStorageService(basePath, baseURL string) (*LocalStorageService, error) {
	if err := os.MkdirAll(basePath, 0755); err != nil {
		return nil, err
	}
	return &LocalStorageService{
		basePath: basePath,
		baseURL:  strings.TrimSuffix(baseURL, "/"),
	}, nil
}

func (ls *LocalStorageService) UploadFile(_ context.Context, fileName string, file io.Reader, _ int64, _ string, bucketName string) (string, error) {
	path, err := ls.resolve(bucketName, fileName)
	if err != nil {
		return "", err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return "", err
	}

	dst, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("failed to create file: %w", err)
	}
	defer dst.Close()

	if _, err := io.Copy(dst, file); err != nil {
		return "", fmt.Errorf("failed to save file: %w", err)
	}
	return fmt.Sprintf("%s/%s/%s", ls.baseURL, bucketName, fileName), nil
}

func (ls *LocalStorageService) DeleteFile(_ context.Context, fileName string, bucketName string) error {
	path, err := ls.resolve(bucketName, fileName)
	if err != nil {
		return err
	}
	if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
		return err
	}
	return nil
}

func (ls *LocalStorageService) resolve(bucketName, fileName string) (string, error) {
	path := filepath.Join(ls.basePath, bucketName, filepath.FromSlash(fileName))
	root := filepath.Clean(ls.basePath) + string(os.PathSeparator)
	if !strings.HasPrefix(path, root) {
		return "", fmt.Errorf("invalid file name %q", fileName)
	}
	return path, nil
}
