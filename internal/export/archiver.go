package export

import (
	"context"
	"fmt"
	"time"

	"github.com/dmitrijs2005/patentcert/internal/netx"

	"github.com/aws/aws-sdk-go-v2/aws"
	v4 "github.com/aws/aws-sdk-go-v2/aws/signer/v4"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
)

var (
	loadDefaultAWSConfig = config.LoadDefaultConfig

	newS3ClientFromConfig = func(cfg aws.Config, optFns ...func(*s3.Options)) *s3.Client {
		return s3.NewFromConfig(cfg, optFns...)
	}

	newS3PresignClient = func(c *s3.Client) *s3.PresignClient {
		return s3.NewPresignClient(c)
	}

	presignPutObject = func(pc *s3.PresignClient, ctx context.Context, in *s3.PutObjectInput, optFns ...func(*s3.PresignOptions)) (*v4.PresignedHTTPRequest, error) {
		return pc.PresignPutObject(ctx, in, optFns...)
	}
	presignGetObject = func(pc *s3.PresignClient, ctx context.Context, in *s3.GetObjectInput, optFns ...func(*s3.PresignOptions)) (*v4.PresignedHTTPRequest, error) {
		return pc.PresignGetObject(ctx, in, optFns...)
	}

	uploadToPresignedURL = netx.UploadToPresignedURL
)

// S3Config holds the settings for the optional certificate archive in
// S3-compatible object storage (MinIO in development).
type S3Config struct {
	RootUser     string
	RootPassword string
	Bucket       string
	Region       string
	BaseEndpoint string
}

// Enabled reports whether an archive endpoint is configured.
func (c S3Config) Enabled() bool {
	return c.BaseEndpoint != ""
}

// S3Archiver uploads exported certificate documents through presigned PUT
// URLs and hands out presigned GET URLs for later retrieval.
type S3Archiver struct {
	config S3Config
}

func NewS3Archiver(config S3Config) *S3Archiver {
	return &S3Archiver{config: config}
}

func (a *S3Archiver) getPresignClient() (*s3.PresignClient, error) {
	cfg, err := loadDefaultAWSConfig(context.Background(),
		config.WithRegion(a.config.Region),
		config.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(
			a.config.RootUser,
			a.config.RootPassword,
			"",
		)))
	if err != nil {
		return nil, err
	}

	client := newS3ClientFromConfig(cfg, func(o *s3.Options) {
		o.BaseEndpoint = aws.String(a.config.BaseEndpoint)
		o.UsePathStyle = true
	})

	return newS3PresignClient(client), nil
}

// storageKey places every certificate under its issuance date.
func storageKey(certID string, now time.Time) string {
	return fmt.Sprintf("certificates/%d/%02d/%s.pdf", now.Year(), int(now.Month()), certID)
}

// Archive uploads the document and returns a presigned GET URL valid for
// 15 minutes.
func (a *S3Archiver) Archive(ctx context.Context, certID string, payload []byte) (string, error) {
	presignClient, err := a.getPresignClient()
	if err != nil {
		return "", err
	}

	bucket := a.config.Bucket
	key := storageKey(certID, time.Now())

	put, err := presignPutObject(presignClient, ctx, &s3.PutObjectInput{
		Bucket: &bucket,
		Key:    &key,
	}, s3.WithPresignExpires(15*time.Minute))
	if err != nil {
		return "", err
	}

	if err := uploadToPresignedURL(put.URL, payload); err != nil {
		return "", err
	}

	get, err := presignGetObject(presignClient, ctx, &s3.GetObjectInput{
		Bucket: &bucket,
		Key:    &key,
	}, s3.WithPresignExpires(15*time.Minute))
	if err != nil {
		return "", err
	}

	return get.URL, nil
}
