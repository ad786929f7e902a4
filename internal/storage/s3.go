package storage

import (
	"bytes"
	"context"
	"errors"
	"mime"

	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	s3types "github.com/aws/aws-sdk-go-v2/service/s3/types"
	"github.com/google/uuid"

	"atelier-backend/internal/apperr"
)

// S3Backend stores objects under {owner}/{uuid}.{ext}; the locator is the
// object key.
type S3Backend struct {
	client *s3.Client
	bucket string
}

func NewS3Backend(ctx context.Context, bucket, region string) (*S3Backend, error) {
	cfg, err := awsconfig.LoadDefaultConfig(ctx, awsconfig.WithRegion(region))
	if err != nil {
		return nil, err
	}
	return &S3Backend{client: s3.NewFromConfig(cfg), bucket: bucket}, nil
}

func (b *S3Backend) Save(ctx context.Context, content []byte, originalFilename, ownerID string) (string, error) {
	name := uuid.New().String()
	contentType := "application/octet-stream"
	if ext := extensionOf(originalFilename); ext != "" {
		name += "." + ext
		if ct := mime.TypeByExtension("." + ext); ct != "" {
			contentType = ct
		}
	}
	key := ownerID + "/" + name

	_, err := b.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      &b.bucket,
		Key:         &key,
		Body:        bytes.NewReader(content),
		ContentType: &contentType,
	})
	if err != nil {
		return "", apperr.Dependency("failed to upload object to s3")
	}
	return key, nil
}

func (b *S3Backend) Delete(ctx context.Context, locator string) (bool, error) {
	// S3 DeleteObject succeeds for missing keys, so check existence first
	// to honor the idempotent-delete contract.
	_, err := b.client.HeadObject(ctx, &s3.HeadObjectInput{
		Bucket: &b.bucket,
		Key:    &locator,
	})
	if err != nil {
		var notFound *s3types.NotFound
		if errors.As(err, &notFound) {
			return false, nil
		}
		return false, apperr.Dependency("failed to check object in s3")
	}

	_, err = b.client.DeleteObject(ctx, &s3.DeleteObjectInput{
		Bucket: &b.bucket,
		Key:    &locator,
	})
	if err != nil {
		return false, apperr.Dependency("failed to delete object from s3")
	}
	return true, nil
}

func (b *S3Backend) ListForOwner(ctx context.Context, ownerID string) ([]string, error) {
	prefix := ownerID + "/"
	locators := make([]string, 0)

	var token *string
	for {
		out, err := b.client.ListObjectsV2(ctx, &s3.ListObjectsV2Input{
			Bucket:            &b.bucket,
			Prefix:            &prefix,
			ContinuationToken: token,
		})
		if err != nil {
			return nil, apperr.Dependency("failed to list objects in s3")
		}
		for _, obj := range out.Contents {
			if obj.Key != nil {
				locators = append(locators, *obj.Key)
			}
		}
		if out.IsTruncated == nil || !*out.IsTruncated {
			break
		}
		token = out.NextContinuationToken
	}
	return locators, nil
}

var _ Backend = (*S3Backend)(nil)
