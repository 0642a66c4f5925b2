package objectstore

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"path"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/aws/awserr"
	"github.com/aws/aws-sdk-go/aws/session"
	"github.com/aws/aws-sdk-go/service/s3"
)

// S3Store stores objects in an S3 bucket under a key prefix.
type S3Store struct {
	bucket string
	prefix string
	s3     *s3.S3
}

func NewS3(bucket, region, prefix string) (*S3Store, error) {
	sess, err := session.NewSession(aws.NewConfig().WithRegion(region))
	if err != nil {
		return nil, fmt.Errorf("creating aws session: %w", err)
	}

	return &S3Store{
		bucket: bucket,
		prefix: prefix,
		s3:     s3.New(sess),
	}, nil
}

func (s *S3Store) Put(ctx context.Context, key string, r io.Reader, size int64) (string, error) {
	// PutObject needs a seekable body. Buffer unless the caller already
	// hands one over (os.File does).
	body, ok := r.(io.ReadSeeker)
	if !ok {
		data, err := io.ReadAll(r)
		if err != nil {
			return "", fmt.Errorf("%w: reading payload for %s: %w", ErrTransfer, key, err)
		}
		body = bytes.NewReader(data)
	}

	fullKey := s.key(key)
	_, err := s.s3.PutObjectWithContext(ctx, &s3.PutObjectInput{
		Bucket:        aws.String(s.bucket),
		Key:           aws.String(fullKey),
		Body:          aws.ReadSeekCloser(body),
		ContentLength: aws.Int64(size),
	})
	if err != nil {
		return "", fmt.Errorf("%w: uploading s3://%s/%s: %w", ErrTransfer, s.bucket, fullKey, err)
	}

	return s.URI(key), nil
}

func (s *S3Store) Get(ctx context.Context, key string) (io.ReadCloser, error) {
	out, err := s.s3.GetObjectWithContext(ctx, &s3.GetObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(s.key(key)),
	})
	if err != nil {
		return nil, fmt.Errorf("%w: fetching %s: %w", ErrTransfer, s.URI(key), err)
	}
	return out.Body, nil
}

func (s *S3Store) Delete(ctx context.Context, key string) error {
	_, err := s.s3.DeleteObjectWithContext(ctx, &s3.DeleteObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(s.key(key)),
	})
	if err != nil {
		if aerr, ok := err.(awserr.Error); ok && aerr.Code() == s3.ErrCodeNoSuchKey {
			return nil
		}
		return fmt.Errorf("%w: deleting %s: %w", ErrTransfer, s.URI(key), err)
	}
	return nil
}

func (s *S3Store) URI(key string) string {
	return "s3://" + s.bucket + "/" + s.key(key)
}

func (s *S3Store) key(key string) string {
	if s.prefix == "" {
		return key
	}
	return path.Join(s.prefix, key)
}
