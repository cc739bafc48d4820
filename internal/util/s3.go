package util

import (
	"context"
	"fmt"
	"io"
	"mime"
	"mime/multipart"
	"net/http"
	"os"
	"path/filepath"

	"github.com/minio/minio-go/v7"
)

func GetProjectDirectoryPath(projectID string) string {
	return fmt.Sprintf("projects/%s", projectID)
}

// GetLogDirectoryPath returns the object prefix holding a daily log's
// attachments: "projects/{projectId}/{YYYY-MM-DD}".
func GetLogDirectoryPath(projectID, logID string) string {
	return filepath.Join(GetProjectDirectoryPath(projectID), logID)
}

func ToLogDirectoryPath(projectID, logID, fileName string) string {
	return filepath.Join(GetLogDirectoryPath(projectID, logID), filepath.Base(fileName))
}

func createBucketIfNotExists(s3 *minio.Client, bucketName string) error {
	exists, err := s3.BucketExists(context.Background(), bucketName)
	if err != nil {
		return err
	}

	if !exists {
		err = s3.MakeBucket(context.Background(), bucketName, minio.MakeBucketOptions{})
		if err != nil {
			return err
		}
	}

	return nil
}

type FileUploadOptions struct {
	// Prefix added to the object name, e.g. "projects/123/2024-03-01".
	DirectoryPath string
	Bucket        string
	ContentType   string
	S3            *minio.Client
}

func UploadToS3(ctx context.Context, reader io.Reader, size int64, objectBaseName string, fuo *FileUploadOptions) (minio.UploadInfo, error) {
	if err := createBucketIfNotExists(fuo.S3, fuo.Bucket); err != nil {
		return minio.UploadInfo{}, fmt.Errorf("failed to create bucket: %w", err)
	}

	objectName := objectBaseName
	if fuo.DirectoryPath != "" {
		objectName = filepath.Join(fuo.DirectoryPath, objectBaseName)
	}

	info, err := fuo.S3.PutObject(
		ctx,
		fuo.Bucket,
		objectName,
		reader,
		size,
		minio.PutObjectOptions{
			ContentType: fuo.ContentType,
		},
	)
	if err != nil {
		return minio.UploadInfo{}, fmt.Errorf("failed to upload object to S3: %w", err)
	}

	return info, nil
}

func UploadFileToS3ByFileHeader(ctx context.Context, fileHeader *multipart.FileHeader, objectBaseName string, fuo *FileUploadOptions) (minio.UploadInfo, error) {
	file, err := fileHeader.Open()
	if err != nil {
		return minio.UploadInfo{}, fmt.Errorf("failed to open file: %w", err)
	}
	defer file.Close()

	if fuo.ContentType == "" {
		fuo.ContentType = fileHeader.Header.Get("Content-Type")
	}

	return UploadToS3(ctx, file, fileHeader.Size, objectBaseName, fuo)
}

// UploadFileToS3ByPath uploads a file from a local path to S3
func UploadFileToS3ByPath(ctx context.Context, path string, objectBaseName string, fuo *FileUploadOptions) (minio.UploadInfo, error) {
	if err := createBucketIfNotExists(fuo.S3, fuo.Bucket); err != nil {
		return minio.UploadInfo{}, fmt.Errorf("failed to create bucket: %w", err)
	}

	contentType := fuo.ContentType
	if contentType == "" {
		var err error
		contentType, err = DetectContentType(path)
		if err != nil {
			return minio.UploadInfo{}, err
		}
	}

	objectName := objectBaseName
	if fuo.DirectoryPath != "" {
		objectName = filepath.Join(fuo.DirectoryPath, objectBaseName)
	}

	info, err := fuo.S3.FPutObject(
		ctx,
		fuo.Bucket,
		objectName,
		path,
		minio.PutObjectOptions{
			ContentType: contentType,
		},
	)
	if err != nil {
		return minio.UploadInfo{}, fmt.Errorf("failed to upload file to S3: %w", err)
	}

	return info, nil
}

// DetectContentType determines the content type of a file at the given path,
// first by extension, then by sniffing the first 512 bytes.
func DetectContentType(path string) (string, error) {
	ext := filepath.Ext(path)
	contentType := mime.TypeByExtension(ext)
	if contentType != "" {
		return contentType, nil
	}

	file, err := os.Open(path)
	if err != nil {
		return "", fmt.Errorf("failed to open file for content type detection: %w", err)
	}
	defer file.Close()

	buf := make([]byte, 512)
	n, err := file.Read(buf)
	if err != nil && err != io.EOF {
		return "", fmt.Errorf("failed to read file for content type detection: %w", err)
	}

	return http.DetectContentType(buf[:n]), nil
}
