package clients

import (
	"context"

	config "github.com/DRSN-tech/ml-service/internal/cfg"
	"github.com/DRSN-tech/ml-service/pkg/e"
	"github.com/jimlawless/whereami"
	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
)

func NewMinIOClient(cfg *config.MinIOCfg) (*minio.Client, error) {
	minioClient, err := minio.New(cfg.MinioEndpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.MinioRootUser, cfg.MinioRootPassword, ""),
		Secure: cfg.MinioUseSSL,
	})
	if err != nil {
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}

	return minioClient, nil
}

// CheckBucket проверяет доступность бакета с изображениями товаров.
// Бакет создаёт и наполняет основной бэкенд, поэтому здесь только проверка.
func CheckBucket(ctx context.Context, client *minio.Client, bucketName string) error {
	exists, err := client.BucketExists(ctx, bucketName)
	if err != nil {
		return e.Wrap(whereami.WhereAmI(), err)
	}

	if !exists {
		return e.Wrap(whereami.WhereAmI(), e.ErrBucketNotFound)
	}

	return nil
}
