package blobstore

import (
	"context"
	"fmt"
	"io"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/aws/session"
	"github.com/aws/aws-sdk-go/service/s3"
	"github.com/aws/aws-sdk-go/service/s3/s3manager"
)

// S3Store uploads objects to an S3 bucket with a public-read ACL.
type S3Store struct {
	uploader   *s3manager.Uploader
	bucketName string
}

// NewS3Store creates a store for bucket. Extra configs are merged over the
// region, which lets tests point at a fake endpoint.
func NewS3Store(region, bucket string, cfgs ...*aws.Config) (*S3Store, error) {
	if bucket == "" {
		return nil, fmt.Errorf("S3 bucket name is required")
	}

	sess, err := session.NewSession(append([]*aws.Config{{Region: aws.String(region)}}, cfgs...)...)
	if err != nil {
		return nil, fmt.Errorf("creating AWS session: %w", err)
	}

	return &S3Store{
		uploader:   s3manager.NewUploader(sess),
		bucketName: bucket,
	}, nil
}

// Put uploads body and returns the object location.
func (s *S3Store) Put(ctx context.Context, key string, body io.Reader, contentType string) (string, error) {
	input := &s3manager.UploadInput{
		Bucket: aws.String(s.bucketName),
		Key:    aws.String(key),
		Body:   body,
		ACL:    aws.String(s3.ObjectCannedACLPublicRead),
	}
	if contentType != "" {
		input.ContentType = aws.String(contentType)
	}

	out, err := s.uploader.UploadWithContext(ctx, input)
	if err != nil {
		return "", fmt.Errorf("uploading blob: %w", err)
	}
	return out.Location, nil
}
