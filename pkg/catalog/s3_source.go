// "Тупой" S3 клиент: скачивает CSV каталога из бакета, парсинг отдельно.

package catalog

import (
	"bytes"
	"context"
	"fmt"
	"io"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"

	"github.com/ilkoid/vibe-stylist/pkg/config"
)

// ObjectFetcher определяет интерфейс для S3 клиента.
// Используется для мокания в тестах и внедрения зависимостей.
type ObjectFetcher interface {
	FetchObject(ctx context.Context, key string) ([]byte, error)
}

// S3Client — minio-обёртка для чтения объектов каталога.
type S3Client struct {
	api    *minio.Client
	bucket string
}

// Проверка что S3Client реализует ObjectFetcher
var _ ObjectFetcher = (*S3Client)(nil)

// NewS3Client создает клиент, используя наш конфиг.
func NewS3Client(cfg config.S3Config) (*S3Client, error) {
	minioClient, err := minio.New(cfg.Endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.AccessKey, cfg.SecretKey, ""),
		Secure: cfg.UseSSL,
		Region: cfg.Region,
	})
	if err != nil {
		return nil, err
	}

	return &S3Client{
		api:    minioClient,
		bucket: cfg.Bucket,
	}, nil
}

// FetchObject скачивает объект целиком в память.
// Каталог небольшой, стримить нет смысла.
func (c *S3Client) FetchObject(ctx context.Context, key string) ([]byte, error) {
	obj, err := c.api.GetObject(ctx, c.bucket, key, minio.GetObjectOptions{})
	if err != nil {
		return nil, fmt.Errorf("failed to get object '%s': %w", key, err)
	}
	defer obj.Close()

	data, err := io.ReadAll(obj)
	if err != nil {
		return nil, fmt.Errorf("failed to read object '%s': %w", key, err)
	}
	return data, nil
}

// LoadS3 загружает каталог из CSV объекта в S3.
func LoadS3(ctx context.Context, fetcher ObjectFetcher, key string) (*Store, error) {
	data, err := fetcher.FetchObject(ctx, key)
	if err != nil {
		return nil, &LoadError{Source: "s3", Detail: fmt.Sprintf("cannot fetch '%s'", key), Err: err}
	}
	return ParseCSV(bytes.NewReader(data), "s3")
}
