package storage

import (
	"bytes"
	"context"
	"fmt"
	"strings"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/aws/credentials"
	"github.com/aws/aws-sdk-go/aws/session"
	"github.com/aws/aws-sdk-go/service/s3"
	"github.com/pkg/errors"

	"nojom_backend/internals/configs"
)

type S3Storage struct {
	client    *s3.S3
	bucket    string
	publicURL string
}

// NewS3StorageFromEnv reads S3_ENDPOINT, S3_REGION, S3_BUCKET, S3_ACCESS_KEY,
// S3_SECRET_KEY, S3_USE_SSL and S3_PUBLIC_URL.
func NewS3StorageFromEnv() (*S3Storage, error) {
	bucket := configs.GetEnv("S3_BUCKET")
	if bucket == "" {
		return nil, errors.New("S3_BUCKET is not set")
	}
	endpoint := configs.GetEnv("S3_ENDPOINT")

	cfg := &aws.Config{
		Credentials: credentials.NewStaticCredentials(
			configs.GetEnv("S3_ACCESS_KEY"), configs.GetEnv("S3_SECRET_KEY"), ""),
		Region:           aws.String(configs.GetEnv("S3_REGION", "us-east-1")),
		DisableSSL:       aws.Bool(configs.GetEnv("S3_USE_SSL", "true") == "false"),
		S3ForcePathStyle: aws.Bool(endpoint != ""),
	}
	if endpoint != "" {
		cfg.Endpoint = aws.String(endpoint)
	}

	sess, err := session.NewSession(cfg)
	if err != nil {
		return nil, errors.Wrap(err, "aws session")
	}

	public := configs.GetEnv("S3_PUBLIC_URL")
	if public == "" {
		if endpoint != "" {
			public = strings.TrimRight(endpoint, "/") + "/" + bucket
		} else {
			public = fmt.Sprintf("https://%s.s3.%s.amazonaws.com", bucket, *cfg.Region)
		}
	}

	return &S3Storage{
		client:    s3.New(sess),
		bucket:    bucket,
		publicURL: strings.TrimRight(public, "/"),
	}, nil
}

func (s *S3Storage) Put(ctx context.Context, key, contentType string, data []byte) (string, error) {
	_, err := s.client.PutObjectWithContext(ctx, &s3.PutObjectInput{
		Bucket:        aws.String(s.bucket),
		Key:           aws.String(key),
		Body:          bytes.NewReader(data),
		ContentType:   aws.String(contentType),
		ContentLength: aws.Int64(int64(len(data))),
	})
	if err != nil {
		return "", errors.Wrapf(err, "s3 put %s", key)
	}
	return s.publicURL + "/" + key, nil
}

func (s *S3Storage) Delete(ctx context.Context, key string) error {
	_, err := s.client.DeleteObjectWithContext(ctx, &s3.DeleteObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(key),
	})
	return errors.Wrapf(err, "s3 delete %s", key)
}
