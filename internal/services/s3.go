package services

import (
	"bytes"
	"context"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"

	"clubhouse/internal/config"
	"clubhouse/internal/models"
	"clubhouse/internal/utils/logger"

	"github.com/google/uuid"
)

// Object metadata keys. Stamped at upload and carried through renames;
// a rename never changes the storage path identity.
const (
	metaUploadedBy   = "uploaded-by"
	metaUploaderName = "uploader-name"
	metaOriginalName = "original-name"
)

// Ensure S3Service implements FileURLGenerator
var _ models.FileURLGenerator = (*S3Service)(nil)

// FileEntry is one stored blob as the API surfaces it.
type FileEntry struct {
	Path         string `json:"path"`
	OriginalName string `json:"originalName"`
	UploadedBy   string `json:"uploadedBy"`
	UploaderName string `json:"uploaderName"`
	Size         int64  `json:"size"`
	ContentType  string `json:"contentType,omitempty"`
	URL          string `json:"url,omitempty"`
}

// OwnerUID implements policy.Resource: a file belongs to its uploader.
func (e *FileEntry) OwnerUID() string { return e.UploadedBy }

type S3Service struct {
	client     *s3.Client
	bucketName string
	logger     *logger.Logger
}

func NewS3Service(cfg config.S3Config) (*S3Service, error) {
	log := logger.New("s3_service")

	if cfg.AccessKey == "" || cfg.SecretKey == "" {
		return nil, log.Error("S3 credentials are empty", fmt.Errorf("accessKey or secretKey is empty"))
	}

	awsCfg, err := awsconfig.LoadDefaultConfig(context.TODO(),
		awsconfig.WithRegion(cfg.Region),
		awsconfig.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(
			cfg.AccessKey,
			cfg.SecretKey,
			"",
		)),
		awsconfig.WithRetryMode(aws.RetryModeStandard),
		awsconfig.WithRetryMaxAttempts(3),
	)
	if err != nil {
		return nil, log.Error("Unable to load SDK config", err)
	}

	client := s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		if cfg.Endpoint != "" {
			o.BaseEndpoint = aws.String(cfg.Endpoint)
			o.UsePathStyle = true
		}
	})

	// Verify credentials before the server starts taking uploads.
	_, err = client.ListObjectsV2(context.TODO(), &s3.ListObjectsV2Input{
		Bucket:  aws.String(cfg.BucketName),
		MaxKeys: aws.Int32(1),
	})
	if err != nil {
		return nil, log.Error("Failed to verify S3 credentials", err)
	}

	log.Success("S3 service initialized")

	return &S3Service{
		client:     client,
		bucketName: cfg.BucketName,
		logger:     log,
	}, nil
}

// Upload stores content under files/<folder>/<uploaderUID>/<uuid><ext>
// and stamps the uploader attribution into object metadata.
func (s *S3Service) Upload(ctx context.Context, content []byte, folder, originalName, contentType string, uploader *models.User) (*FileEntry, error) {
	ext := filepath.Ext(originalName)
	key := fmt.Sprintf("files/%s/%s/%s%s", folder, uploader.ID, uuid.New().String(), ext)

	uploaderName := strings.TrimSpace(uploader.FirstName + " " + uploader.LastName)

	_, err := s.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(s.bucketName),
		Key:         aws.String(key),
		Body:        bytes.NewReader(content),
		ContentType: aws.String(contentType),
		Metadata: map[string]string{
			metaUploadedBy:   uploader.ID,
			metaUploaderName: uploaderName,
			metaOriginalName: originalName,
		},
	})
	if err != nil {
		return nil, s.logger.Error("Failed to upload file to storage", err)
	}

	url, err := s.GetSignedURL(ctx, key, time.Hour)
	if err != nil {
		return nil, err
	}

	s.logger.Success("File uploaded: %s", key)

	return &FileEntry{
		Path:         key,
		OriginalName: originalName,
		UploadedBy:   uploader.ID,
		UploaderName: uploaderName,
		Size:         int64(len(content)),
		ContentType:  contentType,
		URL:          url,
	}, nil
}

// List returns the entries under prefix with their metadata and a
// short-lived signed URL each.
func (s *S3Service) List(ctx context.Context, prefix string) ([]FileEntry, error) {
	var entries []FileEntry

	paginator := s3.NewListObjectsV2Paginator(s.client, &s3.ListObjectsV2Input{
		Bucket: aws.String(s.bucketName),
		Prefix: aws.String(prefix),
	})

	for paginator.HasMorePages() {
		page, err := paginator.NextPage(ctx)
		if err != nil {
			return nil, s.logger.Error("Failed to list storage objects", err)
		}
		for _, obj := range page.Contents {
			entry, err := s.Head(ctx, aws.ToString(obj.Key))
			if err != nil {
				return nil, err
			}
			entries = append(entries, *entry)
		}
	}

	return entries, nil
}

// Head reads one entry's metadata without its content.
func (s *S3Service) Head(ctx context.Context, path string) (*FileEntry, error) {
	head, err := s.client.HeadObject(ctx, &s3.HeadObjectInput{
		Bucket: aws.String(s.bucketName),
		Key:    aws.String(path),
	})
	if err != nil {
		return nil, err
	}

	url, err := s.GetSignedURL(ctx, path, time.Hour)
	if err != nil {
		return nil, err
	}

	return &FileEntry{
		Path:         path,
		OriginalName: head.Metadata[metaOriginalName],
		UploadedBy:   head.Metadata[metaUploadedBy],
		UploaderName: head.Metadata[metaUploaderName],
		Size:         aws.ToInt64(head.ContentLength),
		ContentType:  aws.ToString(head.ContentType),
		URL:          url,
	}, nil
}

// Delete removes the blob.
func (s *S3Service) Delete(ctx context.Context, path string) error {
	_, err := s.client.DeleteObject(ctx, &s3.DeleteObjectInput{
		Bucket: aws.String(s.bucketName),
		Key:    aws.String(path),
	})
	if err != nil {
		return s.logger.Error("Failed to delete storage object", err)
	}
	return nil
}

// Rename changes only the display name in metadata. The object is
// copied onto its own key with replaced metadata; the storage path, and
// with it every existing reference, stays identical.
func (s *S3Service) Rename(ctx context.Context, path, newDisplayName string) error {
	head, err := s.client.HeadObject(ctx, &s3.HeadObjectInput{
		Bucket: aws.String(s.bucketName),
		Key:    aws.String(path),
	})
	if err != nil {
		return s.logger.Error("Failed to read storage object metadata", err)
	}

	metadata := make(map[string]string, len(head.Metadata))
	for k, v := range head.Metadata {
		metadata[k] = v
	}
	metadata[metaOriginalName] = newDisplayName

	_, err = s.client.CopyObject(ctx, &s3.CopyObjectInput{
		Bucket:            aws.String(s.bucketName),
		Key:               aws.String(path),
		CopySource:        aws.String(s.bucketName + "/" + path),
		Metadata:          metadata,
		MetadataDirective: types.MetadataDirectiveReplace,
		ContentType:       head.ContentType,
	})
	if err != nil {
		return s.logger.Error("Failed to rename storage object", err)
	}
	return nil
}

// GetSignedURL implements FileURLGenerator
func (s *S3Service) GetSignedURL(ctx context.Context, path string, duration time.Duration) (string, error) {
	presignClient := s3.NewPresignClient(s.client)

	presignedURL, err := presignClient.PresignGetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(s.bucketName),
		Key:    aws.String(path),
	}, s3.WithPresignExpires(duration))
	if err != nil {
		return "", s.logger.Error("Failed to generate pre-signed URL", err)
	}

	return presignedURL.URL, nil
}
