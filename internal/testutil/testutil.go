// Package testutil provides fixtures and fakes shared by package tests.
package testutil

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"sync"
	"sync/atomic"
	"testing"

	"grammable/configs"
	"grammable/internal/models"
	"grammable/internal/servers/database"
	"grammable/internal/utils"

	"github.com/spf13/viper"
	"gorm.io/gorm"
)

const DefaultPassword = "secret123"

var sequence atomic.Int64

// NewTestConfig returns a config wired for in-memory sqlite, no Redis, no MinIO and no rate limiting.
func NewTestConfig(t *testing.T) *configs.Config {
	t.Helper()
	v := viper.New()
	v.Set("app.env", "test")
	v.Set("server.mode", "test")
	v.Set("server.uploads_dir", t.TempDir())
	v.Set("database.driver", "sqlite")
	v.Set("database.dsn", ":memory:")
	v.Set("redis.enabled", false)
	v.Set("minio.enabled", false)
	v.Set("jwt.secret", "test-secret")
	v.Set("jwt.expiration_time", 3600)
	v.Set("rate_limit.rps", 0)
	v.Set("log.level", "panic")
	return configs.NewConfig(v)
}

func NewTestDB(t *testing.T, config *configs.Config) *gorm.DB {
	t.Helper()
	db, err := database.Open(config)
	if err != nil {
		t.Fatalf("open test database: %v", err)
	}
	if err := database.Migrate(db); err != nil {
		t.Fatalf("migrate test database: %v", err)
	}
	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			sqlDB.Close()
		}
	})
	return db
}

// CreateUser inserts a user with DefaultPassword and a unique email.
func CreateUser(t *testing.T, db *gorm.DB) *models.User {
	t.Helper()
	hash, err := utils.HashPassword(DefaultPassword)
	if err != nil {
		t.Fatalf("hash password: %v", err)
	}
	user := &models.User{
		Email:        fmt.Sprintf("fakeuser%d@gmail.com", sequence.Add(1)),
		PasswordHash: hash,
	}
	if err := db.Create(user).Error; err != nil {
		t.Fatalf("create user: %v", err)
	}
	return user
}

// CreateGram inserts a gram owned by a fresh user unless owner is given.
func CreateGram(t *testing.T, db *gorm.DB, owner *models.User, message string) *models.Gram {
	t.Helper()
	if owner == nil {
		owner = CreateUser(t, db)
	}
	if message == "" {
		message = "hello"
	}
	gram := &models.Gram{Message: message, UserID: owner.ID}
	if err := db.Create(gram).Error; err != nil {
		t.Fatalf("create gram: %v", err)
	}
	gram.User = *owner
	return gram
}

type StoredFile struct {
	Bucket      string
	Name        string
	ContentType string
	Data        []byte
}

// MockFileManager keeps uploaded files in memory.
type MockFileManager struct {
	mu        sync.Mutex
	Files     map[string]*StoredFile
	UploadErr error
}

func NewMockFileManager() *MockFileManager {
	return &MockFileManager{Files: make(map[string]*StoredFile)}
}

func (m *MockFileManager) UploadFile(_ context.Context, fileName string, file io.Reader, _ int64, contentType string, bucketName string) (string, error) {
	if m.UploadErr != nil {
		return "", m.UploadErr
	}
	var buf bytes.Buffer
	if _, err := io.Copy(&buf, file); err != nil {
		return "", err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Files[bucketName+"/"+fileName] = &StoredFile{
		Bucket:      bucketName,
		Name:        fileName,
		ContentType: contentType,
		Data:        buf.Bytes(),
	}
	return "http://files.test/" + bucketName + "/" + fileName, nil
}

func (m *MockFileManager) DeleteFile(_ context.Context, fileName string, bucketName string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.Files, bucketName+"/"+fileName)
	return nil
}

func (m *MockFileManager) Count() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.Files)
}

// Minimal payloads carrying the magic numbers picture uploads are sniffed for.
var (
	PNGBytes  = []byte("\x89PNG\r\n\x1a\n\x00\x00\x00\rIHDR\x00\x00\x00\x01\x00\x00\x00\x01")
	JPEGBytes = []byte("\xff\xd8\xff\xe0\x00\x10JFIF\x00\x01\x01\x00\x00\x01\x00\x01\x00\x00")
	GIFBytes  = []byte("GIF89a\x01\x00\x01\x00\x80\x00\x00\xff\xff\xff\x00\x00\x00")
	PDFBytes  = []byte("%PDF-1.4\n%\xe2\xe3\xcf\xd3\n")
)
