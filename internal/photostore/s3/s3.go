package s3

import (
	"context"
	"fmt"
	"io"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"
)

// objectAPI is the subset of *s3.Client the store calls.
type objectAPI interface {
	PutObject(ctx context.Context, in *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error)
	PutObjectAcl(ctx context.Context, in *s3.PutObjectAclInput, optFns ...func(*s3.Options)) (*s3.PutObjectAclOutput, error)
}

// S3PhotoStore stores photos in an S3 bucket keyed by file name.
type S3PhotoStore struct {
	client objectAPI
	bucket string
	region string
}

func NewS3PhotoStore(client objectAPI, bucket, region string) *S3PhotoStore {
	return &S3PhotoStore{client: client, bucket: bucket, region: region}
}

func (s *S3PhotoStore) Create(ctx context.Context, name, mimeType string, r io.Reader) (string, error) {
	_, err := s.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(s.bucket),
		Key:         aws.String(name),
		Body:        r,
		ContentType: aws.String(mimeType),
	})
	if err != nil {
		return "", fmt.Errorf("s3 put failed for %s: %w", name, err)
	}
	return name, nil
}

func (s *S3PhotoStore) Share(ctx context.Context, id string) error {
	_, err := s.client.PutObjectAcl(ctx, &s3.PutObjectAclInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(id),
		ACL:    types.ObjectCannedACLPublicRead,
	})
	if err != nil {
		return fmt.Errorf("s3 acl update failed for %s: %w", id, err)
	}
	return nil
}

func (s *S3PhotoStore) PublicURL(id string) string {
	return fmt.Sprintf("https://%s.s3.%s.amazonaws.com/%s", s.bucket, s.region, id)
}
