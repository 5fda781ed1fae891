package services

import (
	"context"
	"fmt"
	"grammable/configs"
	"io"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
	log "github.com/sirupsen/logrus"
)

type MinioService struct {
	minioClient *minio.Client
	config      *configs.Config
}

func NewMinioService(ctx context.Context, config *configs.Config) (*MinioService, error) {
	endpoint := config.Viper.GetString("minio.endpoint")
	accessKeyID := config.Viper.GetString("minio.access_key_id")
	secretAccessKey := config.Viper.GetString("minio.secret_access_key")
	useSSL := config.Viper.GetBool("minio.use_ssl")

	minioClient, err := minio.New(endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(accessKeyID, secretAccessKey, ""),
		Secure: useSSL,
	})
	if err != nil {
		return nil, err
	}

	bucketName := config.Viper.GetString("minio.bucket")
	err = minioClient.MakeBucket(ctx, bucketName, minio.MakeBucketOptions{})
	if err != nil {
		exists, errBucketExists := minioClient.BucketExists(ctx, bucketName)
		if errBucketExists != nil || !exists {
			return nil, err
		}
		log.Printf("We already own %s", bucketName)
	} else {
		log.Printf("Successfully created %s", bucketName)
	}

	return &MinioService{
		minioClient: minioClient,
		config:      config,
	}, nil
}

func (ms *MinioService) UploadFile(ctx context.Context, fileName string, file io.Reader, fileSize int64, contentType string, bucketName string) (string, error) {
	info, err := ms.minioClient.PutObject(ctx, bucketName, fileName, file, fileSize, minio.PutObjectOptions{ContentType: contentType})
	if err != nil {
		log.Println(err)
		return "", err
	}

	return ms.GetPublicFileUrl(bucketName, info.Key), nil
}

func (ms *MinioService) DeleteFile(ctx context.Context, fileName string, bucketName string) error {
	return ms.minioClient.RemoveObject(ctx, bucketName, fileName, minio.RemoveObjectOptions{})
}

func (ms *MinioService) GetPublicFileUrl(bucketName, fileKey string) string {
	externalEndpoint := ms.config.Viper.GetString("minio.external_endpoint")
	scheme := "http"
	if ms.config.Viper.GetBool("minio.use_ssl") {
		scheme = "https"
	}
	return fmt.Sprintf("%s://%s/%s/%s", scheme, externalEndpoint, bucketName, fileKey)
}
