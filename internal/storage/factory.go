package storage

import (
	"fmt"

	"github.com/scanplan/backend/internal/config"
)

// FromConfig builds the configured export sink. Backend "none" (or empty)
// returns nil: exports then stay on local disk only.
func FromConfig(cfg config.StorageConfig) (ObjectStorage, error) {
	switch cfg.Backend {
	case "", "none":
		return nil, nil
	case "s3":
		return NewS3Client(cfg)
	case "minio":
		return NewMinioClient(cfg)
	default:
		return nil, fmt.Errorf("unknown storage backend %q", cfg.Backend)
	}
}
