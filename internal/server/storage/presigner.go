// Package storage hands out presigned upload URLs for an S3-compatible
// object store (MinIO in development). Uploading and serving objects is
// done by the store itself.
package storage

import (
	"context"
	"fmt"
	"path"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	v4 "github.com/aws/aws-sdk-go-v2/aws/signer/v4"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	sc "github.com/dmitrijs2005/photoshare/internal/server/config"
	"github.com/dmitrijs2005/photoshare/internal/server/models"
)

// Seams for tests.
var (
	loadDefaultAWSConfig  = awsconfig.LoadDefaultConfig
	newS3ClientFromConfig = s3.NewFromConfig
	newS3PresignClient    = func(c *s3.Client) *s3.PresignClient { return s3.NewPresignClient(c) }
	presignPutObject      = func(ctx context.Context, pc *s3.PresignClient, in *s3.PutObjectInput, opts ...func(*s3.PresignOptions)) (*v4.PresignedHTTPRequest, error) {
		return pc.PresignPutObject(ctx, in, opts...)
	}
)

type Presigner struct {
	client   *s3.PresignClient
	bucket   string
	endpoint string
	validity time.Duration
	now      func() time.Time
}

// NewPresigner builds the S3 presign client from static credentials. No
// request is sent to the store.
func NewPresigner(ctx context.Context, cfg *sc.Config) (*Presigner, error) {
	awsCfg, err := loadDefaultAWSConfig(ctx,
		awsconfig.WithRegion(cfg.S3Region),
		awsconfig.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(
			cfg.S3RootUser,
			cfg.S3RootPassword,
			"",
		)))
	if err != nil {
		return nil, fmt.Errorf("error loading s3 config: %w", err)
	}

	client := newS3ClientFromConfig(awsCfg, func(o *s3.Options) {
		o.BaseEndpoint = aws.String(cfg.S3BaseEndpoint)
		o.UsePathStyle = true
	})

	return &Presigner{
		client:   newS3PresignClient(client),
		bucket:   cfg.S3Bucket,
		endpoint: strings.TrimRight(cfg.S3BaseEndpoint, "/"),
		validity: cfg.PresignValidityDuration,
		now:      time.Now,
	}, nil
}

// ObjectKey names an upload as <accountID>/<unix millis><ext>.
func ObjectKey(accountID, fileName string, at time.Time) string {
	return fmt.Sprintf("%s/%d%s", accountID, at.UnixMilli(), path.Ext(fileName))
}

// PresignUpload returns a presigned PUT URL for a new object and the public
// URL the object will be readable at once uploaded.
func (p *Presigner) PresignUpload(ctx context.Context, accountID, fileName string) (*models.UploadTarget, error) {
	key := ObjectKey(accountID, fileName, p.now())

	req, err := presignPutObject(ctx, p.client, &s3.PutObjectInput{
		Bucket: aws.String(p.bucket),
		Key:    aws.String(key),
	}, s3.WithPresignExpires(p.validity))
	if err != nil {
		return nil, fmt.Errorf("error presigning put: %w", err)
	}

	return &models.UploadTarget{
		Key:       key,
		UploadURL: req.URL,
		PublicURL: p.endpoint + "/" + p.bucket + "/" + key,
	}, nil
}
