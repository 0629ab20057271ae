// Package storage uploads property images to S3 and hands back public URLs.
// When credentials are not configured the adapter reports itself unavailable
// instead of failing service startup: deletes soft-succeed, uploads and URL
// signing return ErrUnavailable.
package storage

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
)

var ErrUnavailable = errors.New("object storage is not configured")

// ObjectStorage is the adapter contract used by the upload and property
// handlers.
type ObjectStorage interface {
	Put(ctx context.Context, key string, body []byte, contentType string) (string, error)
	Delete(ctx context.Context, key string) bool
	SignedReadURL(ctx context.Context, key string, ttl time.Duration) (string, error)
	Available() bool
}

type S3Storage struct {
	client *s3.Client
	bucket string
	region string
}

type Credentials struct {
	Region    string
	Bucket    string
	AccessKey string
	SecretKey string
}

// NewS3Storage builds the adapter. Incomplete credentials yield a degraded
// adapter rather than an error.
func NewS3Storage(ctx context.Context, creds Credentials) *S3Storage {
	if creds.Region == "" || creds.Bucket == "" || creds.AccessKey == "" || creds.SecretKey == "" {
		log.Println("S3 credentials not configured, image storage disabled")
		return &S3Storage{}
	}

	cfg, err := awsconfig.LoadDefaultConfig(ctx,
		awsconfig.WithRegion(creds.Region),
		awsconfig.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(creds.AccessKey, creds.SecretKey, ""),
		),
	)
	if err != nil {
		log.Printf("Failed to load AWS config, image storage disabled: %v", err)
		return &S3Storage{}
	}

	return &S3Storage{
		client: s3.NewFromConfig(cfg),
		bucket: creds.Bucket,
		region: creds.Region,
	}
}

func (s *S3Storage) Available() bool {
	return s.client != nil
}

// Put uploads the object publicly readable and returns its URL.
func (s *S3Storage) Put(ctx context.Context, key string, body []byte, contentType string) (string, error) {
	if !s.Available() {
		return "", ErrUnavailable
	}
	_, err := s.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(s.bucket),
		Key:         aws.String(key),
		Body:        bytes.NewReader(body),
		ContentType: aws.String(contentType),
		ACL:         "public-read",
	})
	if err != nil {
		return "", fmt.Errorf("failed to upload object: %w", err)
	}
	return fmt.Sprintf("https://%s.s3.%s.amazonaws.com/%s", s.bucket, s.region, key), nil
}

// Delete removes the object by key. Unavailable storage and delete failures
// are treated as success so callers never block record cleanup on blobs.
func (s *S3Storage) Delete(ctx context.Context, key string) bool {
	if !s.Available() {
		return true
	}
	_, err := s.client.DeleteObject(ctx, &s3.DeleteObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		log.Printf("Failed to delete object %s: %v", key, err)
		return false
	}
	return true
}

// SignedReadURL presigns a GET for a private object.
func (s *S3Storage) SignedReadURL(ctx context.Context, key string, ttl time.Duration) (string, error) {
	if !s.Available() {
		return "", ErrUnavailable
	}
	presign := s3.NewPresignClient(s.client)
	req, err := presign.PresignGetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(key),
	}, func(opts *s3.PresignOptions) {
		opts.Expires = ttl
	})
	if err != nil {
		return "", fmt.Errorf("failed to presign object: %w", err)
	}
	return req.URL, nil
}
