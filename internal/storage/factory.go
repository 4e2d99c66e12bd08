package storage

import (
	"fmt"

	"github.com/gravadigital/partnerships-api/internal/config"
	"github.com/gravadigital/partnerships-api/internal/domain/globalevent"
	"github.com/gravadigital/partnerships-api/internal/domain/partner"
	"github.com/gravadigital/partnerships-api/internal/storage/file"
	"github.com/gravadigital/partnerships-api/internal/storage/memory"
	"github.com/gravadigital/partnerships-api/internal/storage/postgres"
	"github.com/gravadigital/partnerships-api/internal/storage/sqlite"
)

// Container gives access to every repository of one backend
type Container interface {
	Partners() partner.Repository
	GlobalEvents() globalevent.Repository
	LightweightPartners() globalevent.LightweightRepository
	Health() error
	Close() error
}

// StorageType represents the type of storage backend
type StorageType string

const (
	// StorageTypePostgres represents PostgreSQL storage
	StorageTypePostgres StorageType = "postgres"
	// StorageTypeSQLite is an embedded database file
	StorageTypeSQLite StorageType = "sqlite"
	// StorageTypeMemory keeps everything in process memory
	StorageTypeMemory StorageType = "memory"
	// StorageTypeFile keeps everything in one JSON document
	StorageTypeFile StorageType = "file"
)

// Factory provides a factory pattern for creating storage containers
type Factory struct {
	storageType StorageType
}

// NewFactory creates a new storage factory
func NewFactory(storageType StorageType) *Factory {
	return &Factory{
		storageType: storageType,
	}
}

// CreateContainer creates a storage container based on the configured type
func (f *Factory) CreateContainer(cfg *config.Config) (Container, error) {
	switch f.storageType {
	case StorageTypePostgres:
		c, err := postgres.NewContainer(cfg)
		if err != nil {
			return nil, err
		}
		return c, nil
	case StorageTypeSQLite:
		db, err := sqlite.Open(cfg.Storage.SQLitePath)
		if err != nil {
			return nil, err
		}
		c, err := postgres.NewMigratedContainer(db, string(StorageTypeSQLite))
		if err != nil {
			_ = postgres.Close(db)
			return nil, err
		}
		return c, nil
	case StorageTypeMemory:
		return memory.New(), nil
	case StorageTypeFile:
		s, err := file.Open(cfg.Storage.FilePath)
		if err != nil {
			return nil, err
		}
		return s, nil
	default:
		return nil, fmt.Errorf("unsupported storage type: %s", f.storageType)
	}
}

// GetSupportedTypes returns a list of supported storage types
func GetSupportedTypes() []StorageType {
	return []StorageType{
		StorageTypePostgres,
		StorageTypeSQLite,
		StorageTypeMemory,
		StorageTypeFile,
	}
}

// ValidateStorageType validates if a storage type is supported
func ValidateStorageType(storageType string) (StorageType, error) {
	st := StorageType(storageType)

	for _, supported := range GetSupportedTypes() {
		if st == supported {
			return st, nil
		}
	}

	return "", fmt.Errorf("unsupported storage type: %s. Supported types: %v", storageType, GetSupportedTypes())
}

// NewFromConfig validates cfg.Storage.Type and opens the container
func NewFromConfig(cfg *config.Config) (Container, error) {
	st, err := ValidateStorageType(cfg.Storage.Type)
	if err != nil {
		return nil, err
	}
	return NewFactory(st).CreateContainer(cfg)
}

// DefaultFactory returns a factory configured with the default storage type
func DefaultFactory() *Factory {
	return NewFactory(StorageTypeSQLite)
}
