package storage

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gravadigital/partnerships-api/internal/config"
	"github.com/gravadigital/partnerships-api/internal/domain/partner"
)

func TestValidateStorageType(t *testing.T) {
	for _, st := range GetSupportedTypes() {
		got, err := ValidateStorageType(string(st))
		require.NoError(t, err)
		assert.Equal(t, st, got)
	}

	_, err := ValidateStorageType("mongo")
	assert.Error(t, err)
}

func TestCreateContainerForEmbeddedBackends(t *testing.T) {
	dir := t.TempDir()
	cfg := &config.Config{}
	cfg.Storage.SQLitePath = filepath.Join(dir, "p.db")
	cfg.Storage.FilePath = filepath.Join(dir, "p.json")

	for _, st := range []StorageType{StorageTypeSQLite, StorageTypeMemory, StorageTypeFile} {
		t.Run(string(st), func(t *testing.T) {
			c, err := NewFactory(st).CreateContainer(cfg)
			require.NoError(t, err)
			defer func() { _ = c.Close() }()

			require.NoError(t, c.Health())
			created, err := c.Partners().CreatePartnership(context.Background(), partner.New(partner.Partner{Name: "Acme", Type: partner.TypeStrategic}))
			require.NoError(t, err)
			assert.Equal(t, "acme", created.Partner.Slug)
		})
	}
}

func TestNewFromConfigRejectsUnknownType(t *testing.T) {
	cfg := &config.Config{}
	cfg.Storage.Type = "cassandra"
	_, err := NewFromConfig(cfg)
	assert.Error(t, err)
}
