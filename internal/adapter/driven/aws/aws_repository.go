package aws

import (
	"context"
	"fmt"
	"io"
	"os"
	"path"
	"path/filepath"
	"strings"
	"sync"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/sts"
	"github.com/diillson/sales-report-go/internal/domain/repository"
)

// S3Scheme é o prefixo das localizações remotas aceitas.
const S3Scheme = "s3://"

// AWSRepositoryImpl dá acesso ao S3 e ao STS com cache de config e de clientes.
type AWSRepositoryImpl struct {
	profile     string
	cfg         *aws.Config
	clientCache map[string]interface{}
	mu          sync.Mutex
}

// NewAWSRepository cria uma nova implementação do AWSRepository usando a cadeia padrão
// de credenciais até que UseProfile seja chamado.
func NewAWSRepository() *AWSRepositoryImpl {
	return &AWSRepositoryImpl{
		clientCache: make(map[string]interface{}),
	}
}

var _ repository.AWSRepository = (*AWSRepositoryImpl)(nil)

// UseProfile troca o perfil e descarta config e clientes já criados.
func (r *AWSRepositoryImpl) UseProfile(profile string) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if profile == r.profile {
		return
	}
	r.profile = profile
	r.cfg = nil
	r.clientCache = make(map[string]interface{})
}

func (r *AWSRepositoryImpl) getAWSConfig(ctx context.Context) (aws.Config, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.cfg != nil {
		return *r.cfg, nil
	}

	var opts []func(*config.LoadOptions) error
	if r.profile != "" {
		opts = append(opts, config.WithSharedConfigProfile(r.profile))
	}
	cfg, err := config.LoadDefaultConfig(ctx, opts...)
	if err != nil {
		return aws.Config{}, fmt.Errorf("failed to load AWS config for profile %q: %w", r.profile, err)
	}

	r.cfg = &cfg
	return cfg, nil
}

func (r *AWSRepositoryImpl) getServiceClient(ctx context.Context, service string) (interface{}, error) {
	r.mu.Lock()
	if client, ok := r.clientCache[service]; ok {
		r.mu.Unlock()
		return client, nil
	}
	r.mu.Unlock()

	cfg, err := r.getAWSConfig(ctx)
	if err != nil {
		return nil, err
	}

	var client interface{}
	switch service {
	case "s3":
		client = s3.NewFromConfig(cfg)
	case "sts":
		client = sts.NewFromConfig(cfg)
	default:
		return nil, fmt.Errorf("unsupported service: %s", service)
	}

	r.mu.Lock()
	r.clientCache[service] = client
	r.mu.Unlock()

	return client, nil
}

// GetObject baixa o conteúdo de um objeto S3.
func (r *AWSRepositoryImpl) GetObject(ctx context.Context, bucket, key string) ([]byte, error) {
	client, err := r.getServiceClient(ctx, "s3")
	if err != nil {
		return nil, err
	}
	s3Client := client.(*s3.Client)

	out, err := s3Client.GetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		return nil, fmt.Errorf("error downloading s3://%s/%s: %w", bucket, key, err)
	}
	defer out.Body.Close()

	data, err := io.ReadAll(out.Body)
	if err != nil {
		return nil, fmt.Errorf("error reading s3://%s/%s: %w", bucket, key, err)
	}
	return data, nil
}

// Publish envia o artefato local para destination (s3://bucket/prefixo).
func (r *AWSRepositoryImpl) Publish(ctx context.Context, localPath, destination string) (string, error) {
	bucket, prefix, err := ParseS3URI(destination)
	if err != nil {
		return "", err
	}
	key := path.Join(prefix, filepath.Base(localPath))

	file, err := os.Open(localPath)
	if err != nil {
		return "", fmt.Errorf("error opening artifact: %w", err)
	}
	defer file.Close()

	client, err := r.getServiceClient(ctx, "s3")
	if err != nil {
		return "", err
	}
	s3Client := client.(*s3.Client)

	_, err = s3Client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(bucket),
		Key:         aws.String(key),
		Body:        file,
		ContentType: aws.String(contentType(localPath)),
	})
	if err != nil {
		return "", fmt.Errorf("error uploading %s to s3://%s/%s: %w", localPath, bucket, key, err)
	}
	return S3Scheme + bucket + "/" + key, nil
}

// CallerIdentity retorna o ID da conta usada nas chamadas.
func (r *AWSRepositoryImpl) CallerIdentity(ctx context.Context) (string, error) {
	client, err := r.getServiceClient(ctx, "sts")
	if err != nil {
		return "", err
	}
	stsClient := client.(*sts.Client)

	result, err := stsClient.GetCallerIdentity(ctx, &sts.GetCallerIdentityInput{})
	if err != nil {
		return "", fmt.Errorf("error getting account ID for profile %q: %w", r.profile, err)
	}
	return aws.ToString(result.Account), nil
}

// ParseS3URI separa s3://bucket/chave em bucket e chave. A chave pode ser vazia.
func ParseS3URI(uri string) (bucket, key string, err error) {
	if !strings.HasPrefix(uri, S3Scheme) {
		return "", "", fmt.Errorf("not an S3 location: %q", uri)
	}
	rest := strings.TrimPrefix(uri, S3Scheme)
	bucket, key, _ = strings.Cut(rest, "/")
	if bucket == "" {
		return "", "", fmt.Errorf("missing bucket in %q", uri)
	}
	return bucket, strings.TrimSuffix(key, "/"), nil
}

func contentType(name string) string {
	switch strings.ToLower(filepath.Ext(name)) {
	case ".pdf":
		return "application/pdf"
	case ".html":
		return "text/html; charset=utf-8"
	case ".json":
		return "application/json"
	case ".xlsx":
		return "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
	default:
		return "application/octet-stream"
	}
}
