package s3

import (
	"fmt"
	"time"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/aws/credentials"
	"github.com/aws/aws-sdk-go/aws/session"
	"github.com/aws/aws-sdk-go/service/s3"

	"content-gate/internal/config"
)

// Client signs short-lived download URLs for attachment objects. The service
// never proxies attachment bytes; clients fetch them from S3 directly.
type Client struct {
	bucketName string
	urlExpiry  time.Duration
	svc        *s3.S3
}

func NewClient(cfg *config.AWSConfig, urlExpiry time.Duration) (*Client, error) {
	sess, err := session.NewSession(&aws.Config{
		Region: aws.String(cfg.Region),
		Credentials: credentials.NewStaticCredentials(
			cfg.AccessKeyID,
			cfg.SecretAccessKey,
			"",
		),
	})
	if err != nil {
		return nil, fmt.Errorf(errFailedCreateSessionFmt, err)
	}

	return &Client{
		bucketName: cfg.AttachmentBucket,
		urlExpiry:  urlExpiry,
		svc:        s3.New(sess),
	}, nil
}

// PresignDownloadURL returns a time-limited GET URL for the given object key.
func (c *Client) PresignDownloadURL(key string) (string, error) {
	req, _ := c.svc.GetObjectRequest(&s3.GetObjectInput{
		Bucket: aws.String(c.bucketName),
		Key:    aws.String(key),
	})

	url, err := req.Presign(c.urlExpiry)
	if err != nil {
		return "", fmt.Errorf(errFailedPresignDownloadFmt, err)
	}

	return url, nil
}

const (
	errFailedCreateSessionFmt   = "failed to create AWS session: %w"
	errFailedPresignDownloadFmt = "failed to presign download URL: %w"
)
