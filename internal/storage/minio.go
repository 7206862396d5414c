package storage

import (
	"context"
	"errors"
	"io"

	"videoshub-backend/internal/config"

	"github.com/gofiber/fiber/v3"
	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
	"github.com/sirupsen/logrus"
)

var MinioClient *minio.Client

const bucketName = "videoshub-bucket"

// InitMinio initializes the MinIO client and creates the bucket if missing.
func InitMinio() {
	var err error
	MinioClient, err = minio.New(
		config.App.MinioEndpoint,
		&minio.Options{
			Creds:  credentials.NewStaticV4(config.App.MinioAccessKey, config.App.MinioSecretKey, ""),
			Secure: false,
		})
	if err != nil {
		logrus.Fatalf("MinIO initialization error: %v", err)
	}

	exists, err := MinioClient.BucketExists(context.Background(), bucketName)
	if err != nil {
		logrus.Fatalf("Bucket check error: %v", err)
	}

	if !exists {
		err = MinioClient.MakeBucket(context.Background(), bucketName, minio.MakeBucketOptions{})
		if err != nil {
			logrus.Fatalf("Error creating bucket: %v", err)
		}

		policy := `{
		"Version": "2012-10-17",
		"Statement": [
			{
				"Effect": "Allow",
				"Principal": "*",
				"Action": "s3:GetObject",
				"Resource": "arn:aws:s3:::` + bucketName + `/*"
			}
		]
	}`

		err = MinioClient.SetBucketPolicy(context.Background(), bucketName, policy)
		if err != nil {
			logrus.Fatalln(err)
		}
		logrus.Infof("Bucket %s created and set to public", bucketName)
	}
}

// UploadToMinIO places a blob under the given object key.
func UploadToMinIO(ctx context.Context, objectKey string, src io.Reader, fileSize int64, mimeType string) error {
	_, err := MinioClient.PutObject(
		ctx,
		bucketName,
		objectKey,
		src,
		fileSize,
		minio.PutObjectOptions{ContentType: mimeType},
	)
	if err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "File upload error")
	}

	return nil
}

// DeleteFromMinIO removes a stored blob by object key.
func DeleteFromMinIO(ctx context.Context, objectKey string) error {
	_, err := MinioClient.StatObject(ctx, bucketName, objectKey, minio.StatObjectOptions{})
	if err != nil {
		var minioErr minio.ErrorResponse
		if errors.As(err, &minioErr) && minioErr.Code == "NoSuchKey" {
			return fiber.NewError(fiber.StatusNotFound, "File not found")
		}
		return fiber.NewError(fiber.StatusInternalServerError, "Error checking file existence")
	}
	if err = MinioClient.RemoveObject(ctx, bucketName, objectKey, minio.RemoveObjectOptions{}); err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "Failed to delete file from storage")
	}
	return nil
}
