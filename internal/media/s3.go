package media

import (
	"context"
	"fmt"
	"path"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
)

// S3Store holds movie files in a single bucket. Relocation is a copy into the
// permanent prefix followed by a delete of the temp object; there is no atomic
// rename on S3, so the delete may leave a duplicate temp object behind on
// failure. The sweeper picks those up later.
type S3Store struct {
	client     *s3.Client
	presign    *s3.PresignClient
	bucket     string
	presignTTL time.Duration
}

func NewS3Store(client *s3.Client, bucket string, presignTTL time.Duration) *S3Store {
	return &S3Store{
		client:     client,
		presign:    s3.NewPresignClient(client),
		bucket:     bucket,
		presignTTL: presignTTL,
	}
}

func (s *S3Store) MoveToPermanent(ctx context.Context, filename string) error {
	_, err := s.client.CopyObject(ctx, &s3.CopyObjectInput{
		Bucket:     aws.String(s.bucket),
		CopySource: aws.String(path.Join(s.bucket, TempFolder, filename)),
		Key:        aws.String(path.Join(PermanentFolder, filename)),
	})
	if err != nil {
		return fmt.Errorf("copying movie file to permanent storage: %w", err)
	}

	_, err = s.client.DeleteObject(ctx, &s3.DeleteObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(path.Join(TempFolder, filename)),
	})
	if err != nil {
		return fmt.Errorf("deleting temp movie file: %w", err)
	}

	return nil
}

func (s *S3Store) CreateUploadTarget(ctx context.Context) (*UploadTarget, error) {
	filename := NewUploadFileName()

	req, err := s.presign.PresignPutObject(ctx, &s3.PutObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(path.Join(TempFolder, filename)),
	}, s3.WithPresignExpires(s.presignTTL))
	if err != nil {
		return nil, fmt.Errorf("presigning upload url: %w", err)
	}

	return &UploadTarget{
		FileName:  filename,
		UploadURL: req.URL,
	}, nil
}
