package catalog

import (
	"context"
	"fmt"

	"github.com/ilkoid/vibe-stylist/pkg/config"
	"github.com/ilkoid/vibe-stylist/pkg/utils"
)

// Load грузит каталог согласно конфигурации.
//
// Диспетчеризация по catalog.source: "file" (default), "sqlite", "s3".
func Load(ctx context.Context, cfg *config.AppConfig) (*Store, error) {
	var store *Store
	var err error

	switch cfg.Catalog.Source {
	case "", "file":
		store, err = LoadCSVFile(cfg.Catalog.Path)
	case "sqlite":
		store, err = LoadSQLite(cfg.Catalog.Path, cfg.Catalog.Table)
	case "s3":
		var client *S3Client
		client, err = NewS3Client(cfg.S3)
		if err != nil {
			return nil, &LoadError{Source: "s3", Detail: "cannot create s3 client", Err: err}
		}
		store, err = LoadS3(ctx, client, cfg.Catalog.S3Key)
	default:
		return nil, &LoadError{Source: cfg.Catalog.Source, Detail: fmt.Sprintf("unknown catalog source '%s'", cfg.Catalog.Source)}
	}

	if err != nil {
		return nil, err
	}

	utils.Info("Catalog loaded",
		"source", cfg.Catalog.Source,
		"items", store.Len())

	return store, nil
}
