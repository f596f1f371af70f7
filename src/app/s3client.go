package app

import (
	"context"
	"fmt"
	"io"
	"log"
	"net/url"
	"sort"
	"strings"
	"time"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"

	"galleryserv/src/model"
)

type ClientMinio interface {
	ListObjects(ctx context.Context, bucketName string, opts minio.ListObjectsOptions) <-chan minio.ObjectInfo
	PresignedGetObject(ctx context.Context, bucketName, objectName string, expires time.Duration, reqParams url.Values) (*url.URL, error)
	PutObject(ctx context.Context, bucketName, objectName string, reader io.Reader, objectSize int64, opts minio.PutObjectOptions) (info minio.UploadInfo, err error)
	GetObject(ctx context.Context, bucketName, objectName string, opts minio.GetObjectOptions) (*minio.Object, error)
}

// MinioMediaStore implements model.MediaStore over an S3-compatible endpoint.
type MinioMediaStore struct {
	endpoint   string
	bucketName string
	urlExpiry  time.Duration
	client     ClientMinio
}

const defaultContentType = "application/octet-stream"

// NewMinioMediaStore creates a new MinioMediaStore instance.
func NewMinioMediaStore(endpoint, accessKeyID, secretAccessKey, bucketName string, useSSL bool, urlExpiry time.Duration) (*MinioMediaStore, error) {
	minioClient, err := minio.New(endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(accessKeyID, secretAccessKey, ""),
		Secure: useSSL,
	})
	if err != nil {
		log.Printf("can not create minio client %v for %s", err, endpoint)
		return nil, fmt.Errorf("failed to create media store client: %v", err)
	}

	return &MinioMediaStore{
		endpoint:   endpoint,
		bucketName: bucketName,
		urlExpiry:  urlExpiry,
		client:     minioClient,
	}, nil
}

// UploadStream streams an object's bytes into the bucket and returns a
// presigned URL for the stored object.
func (s *MinioMediaStore) UploadStream(ctx context.Context, key string, r io.Reader, size int64, contentType string) (string, error) {
	if contentType == "" {
		contentType = defaultContentType
	}
	_, err := s.client.PutObject(ctx, s.bucketName, key, r, size,
		minio.PutObjectOptions{ContentType: contentType})
	if err != nil {
		return "", fmt.Errorf("can not upload object %s: %v", key, err)
	}
	return s.ObjectURL(ctx, key)
}

// ListFolder returns the objects under folder sorted by key descending,
// capped at max. The store lists keys in ascending lexical order, so the
// descending contract is applied here before the cap.
func (s *MinioMediaStore) ListFolder(ctx context.Context, folder string, max int) ([]model.ObjectInfo, error) {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	result := make([]model.ObjectInfo, 0)
	objectCh := s.client.ListObjects(ctx, s.bucketName, minio.ListObjectsOptions{
		Prefix:    folder + "/",
		Recursive: true,
	})
	for object := range objectCh {
		if object.Err != nil {
			log.Printf("list %s/%s: %v", s.bucketName, folder, object.Err)
			return nil, object.Err
		}
		result = append(result, model.ObjectInfo{Key: object.Key, Size: object.Size})
	}
	sort.Slice(result, func(i, j int) bool { return result[i].Key > result[j].Key })
	if max > 0 && len(result) > max {
		result = result[:max]
	}
	return result, nil
}

// FetchObject reads an object's bytes in full, for placeholder rendition.
func (s *MinioMediaStore) FetchObject(ctx context.Context, key string) ([]byte, error) {
	obj, err := s.client.GetObject(ctx, s.bucketName, key, minio.GetObjectOptions{})
	if err != nil {
		return nil, fmt.Errorf("can not fetch object %s: %v", key, err)
	}
	defer obj.Close()
	data, err := io.ReadAll(obj)
	if err != nil {
		return nil, fmt.Errorf("can not read object %s: %v", key, err)
	}
	return data, nil
}

// ObjectURL generates a presigned URL which expires after the configured
// expiry window.
func (s *MinioMediaStore) ObjectURL(ctx context.Context, key string) (string, error) {
	reqParams := make(url.Values)
	reqParams.Set("response-content-disposition", fmt.Sprintf("inline; filename=\"%s\"", baseName(key)))
	presignedURL, err := s.client.PresignedGetObject(ctx, s.bucketName, key, s.urlExpiry, reqParams)
	if err != nil {
		log.Printf("presign %s: %v", key, err)
		return "", err
	}
	return presignedURL.String(), nil
}

func baseName(key string) string {
	parsed := strings.Split(key, "/")
	return parsed[len(parsed)-1]
}
