package services

import (
	"context"
	"fmt"
	"grammable/internal/enums"
	"grammable/internal/errs"
	"grammable/internal/interfaces"
	"io"
	"mime/multipart"
	"path"
	"strings"

	"github.com/gabriel-vasile/mimetype"
	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"
)

type FileManagerService struct {
	fileManager interfaces.FileManager
	bucketName  string
}

func NewFileManagerService(fileManager interfaces.FileManager, bucketName string) *FileManagerService {
	if bucketName == "" {
		bucketName = enums.FILE_BUCKET_GRAM_PICTURES
	}
	return &FileManagerService{
		fileManager: fileManager,
		bucketName:  bucketName,
	}
}

// UploadGramPicture stores an image under a random key and returns its public url and key.
// The type is sniffed from the content, the client supplied Content-Type is ignored.
func (fs *FileManagerService) UploadGramPicture(ctx context.Context, picture *multipart.FileHeader) (string, string, error) {
	if picture.Size > enums.MAX_PICTURE_SIZE {
		return "", "", errs.ErrPictureTooLarge
	}

	src, err := picture.Open()
	if err != nil {
		log.WithError(err).Error("Unable to open uploaded picture")
		return "", "", errs.ErrUnableToUploadFile
	}
	defer src.Close()

	detected, err := mimetype.DetectReader(src)
	if err != nil {
		log.WithError(err).Error("Unable to read uploaded picture")
		return "", "", errs.ErrUnableToUploadFile
	}
	contentType, _, _ := strings.Cut(detected.String(), ";")
	ext, ok := enums.AllowedPictureTypes[contentType]
	if !ok {
		return "", "", errs.ErrInvalidPictureType
	}
	if _, err := src.Seek(0, io.SeekStart); err != nil {
		log.WithError(err).Error("Unable to rewind uploaded picture")
		return "", "", errs.ErrUnableToUploadFile
	}

	key := path.Join(enums.FILE_PREFIX_GRAM_PICTURES, fmt.Sprintf("%s%s", uuid.NewString(), ext))
	url, err := fs.fileManager.UploadFile(ctx, key, src, picture.Size, contentType, fs.bucketName)
	if err != nil {
		log.WithError(err).Error("Unable to upload picture")
		return "", "", errs.ErrUnableToUploadFile
	}
	return url, key, nil
}

func (fs *FileManagerService) DeleteGramPicture(ctx context.Context, key string) {
	if key == "" {
		return
	}
	if err := fs.fileManager.DeleteFile(ctx, key, fs.bucketName); err != nil {
		log.WithError(err).WithField("key", key).Warn("Unable to delete picture")
	}
}
