package assets

import (
	"bytes"
	"context"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/feature/s3/manager"
	"github.com/aws/aws-sdk-go-v2/service/s3"
)

// S3Options holds the settings needed to reach the originals bucket.
// AccessKeyID/SecretAccessKey are optional; when absent the default AWS
// credential chain (env, shared config, instance role) applies.
type S3Options struct {
	Bucket          string
	Region          string
	Profile         string
	AccessKeyID     string
	SecretAccessKey string
}

// S3Store uploads original asset bytes to the S3 bucket watched by the
// external image-processing pipeline. It only writes; the resize step and
// the resulting w{width}.webp / original{ext} objects are produced
// asynchronously by that collaborator.
type S3Store struct {
	uploader *manager.Uploader
	bucket   string
}

// NewS3Store builds an S3-backed store from AWS shared configuration.
func NewS3Store(ctx context.Context, opts S3Options) (*S3Store, error) {
	if opts.Bucket == "" {
		return nil, fmt.Errorf("s3 store requires a bucket")
	}

	loadOpts := []func(*awsconfig.LoadOptions) error{}
	if opts.Region != "" {
		loadOpts = append(loadOpts, awsconfig.WithRegion(opts.Region))
	}
	if opts.Profile != "" {
		loadOpts = append(loadOpts, awsconfig.WithSharedConfigProfile(opts.Profile))
	}
	if opts.AccessKeyID != "" && opts.SecretAccessKey != "" {
		loadOpts = append(loadOpts, awsconfig.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(opts.AccessKeyID, opts.SecretAccessKey, ""),
		))
	}

	awsCfg, err := awsconfig.LoadDefaultConfig(ctx, loadOpts...)
	if err != nil {
		return nil, fmt.Errorf("loading aws config: %w", err)
	}

	client := s3.NewFromConfig(awsCfg)
	return &S3Store{
		uploader: manager.NewUploader(client),
		bucket:   opts.Bucket,
	}, nil
}

// Upload stores the asset bytes under key with the given content type.
func (s *S3Store) Upload(ctx context.Context, key string, data []byte, contentType string) error {
	_, err := s.uploader.Upload(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(s.bucket),
		Key:         aws.String(key),
		Body:        bytes.NewReader(data),
		ContentType: aws.String(contentType),
	})
	if err != nil {
		return fmt.Errorf("uploading %s: %w", key, err)
	}
	return nil
}

// Compile-time check that S3Store implements the RemoteStore interface
var _ RemoteStore = (*S3Store)(nil)
