package aws

import (
	"bytes"
	"context"
	"log"
	"os"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"
)

var s3Client *s3.Client

func GetS3Client() *s3.Client {
	if s3Client != nil {
		return s3Client
	}
	cfg, err := config.LoadDefaultConfig(context.TODO())
	if err != nil {
		log.Printf("Could not load default config: %s\n", err.Error())
		return nil
	}
	svc := s3.NewFromConfig(cfg)
	s3Client = svc
	return svc
}

// NewS3Client replaces the client instance, for tests.
func NewS3Client(c *s3.Client) {
	s3Client = c
}

// S3MirrorUpload copies an accepted upload into the uploads bucket. Callers
// only invoke this when S3_UPLOADS_BUCKET is configured.
func S3MirrorUpload(key string, body []byte, contentType string) error {
	bucket := os.Getenv("S3_UPLOADS_BUCKET")
	client := GetS3Client()
	_, err := client.PutObject(context.Background(), &s3.PutObjectInput{
		Bucket:      aws.String(bucket),
		Key:         aws.String(key),
		Body:        bytes.NewReader(body),
		ContentType: aws.String(contentType),
	})
	if err != nil {
		log.Printf("[S3] Error mirroring upload %s: %s\n", key, err.Error())
		return err
	}
	return nil
}
