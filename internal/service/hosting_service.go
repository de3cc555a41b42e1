package service

import (
	"bytes"
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	config "github.com/maheshrc27/repostflow/configs"
)

// HostingService re-hosts media bytes on a public bucket and returns a
// publicly fetchable URL the publish API can pull from.
type HostingService interface {
	Upload(ctx context.Context, key string, file []byte, contentType string) (string, error)
}

type r2HostingService struct {
	config config.Config
}

func NewHostingService(cfg config.Config) HostingService {
	return &r2HostingService{config: cfg}
}

func (r *r2HostingService) client(ctx context.Context) (*s3.Client, error) {
	cfg, err := awsconfig.LoadDefaultConfig(ctx,
		awsconfig.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(r.config.R2.AccessKey, r.config.R2.SecretKey, "")),
		awsconfig.WithRegion("auto"),
	)
	if err != nil {
		slog.Info(err.Error())
		return nil, err
	}

	return s3.NewFromConfig(cfg, func(o *s3.Options) {
		o.BaseEndpoint = aws.String(fmt.Sprintf("https://%s.r2.cloudflarestorage.com", r.config.R2.AccountID))
	}), nil
}

// Upload puts the file on Cloudflare R2 and returns its public URL. Any
// failure wraps ErrMediaUpload so callers retain the staged local file.
func (r *r2HostingService) Upload(ctx context.Context, key string, file []byte, contentType string) (string, error) {
	r2Client, err := r.client(ctx)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrMediaUpload, err)
	}

	input := &s3.PutObjectInput{
		Bucket:      aws.String(r.config.R2.BucketName),
		Key:         aws.String(key),
		Body:        bytes.NewReader(file),
		ContentType: aws.String(contentType),
	}

	if _, err := r2Client.PutObject(ctx, input); err != nil {
		slog.Info(err.Error())
		return "", fmt.Errorf("%w: %v", ErrMediaUpload, err)
	}

	return fmt.Sprintf("%s/%s", strings.TrimRight(r.config.R2.PublicURL, "/"), key), nil
}
