package repository

import (
	"context"
)

// AWSRepository defines the interface for AWS-related operations: reading transaction
// files from S3, uploading rendered reports and resolving the caller account.
type AWSRepository interface {
	// UseProfile selects the shared config profile for later calls ("" uses the default chain).
	UseProfile(profile string)

	GetObject(ctx context.Context, bucket, key string) ([]byte, error)

	// Publish uploads the local file to destination (s3://bucket/prefix) and returns the
	// object URI.
	Publish(ctx context.Context, localPath, destination string) (string, error)

	// CallerIdentity returns the account the calls are made with.
	CallerIdentity(ctx context.Context) (string, error)
}
