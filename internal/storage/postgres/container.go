package postgres

import (
	"fmt"

	"github.com/charmbracelet/log"
	"gorm.io/gorm"

	"github.com/gravadigital/partnerships-api/internal/config"
	"github.com/gravadigital/partnerships-api/internal/domain/globalevent"
	"github.com/gravadigital/partnerships-api/internal/domain/partner"
	"github.com/gravadigital/partnerships-api/internal/logger"
	"github.com/gravadigital/partnerships-api/internal/storage/migrations"
)

// Container holds the gorm repositories over one connection
type Container struct {
	db              *gorm.DB
	log             *log.Logger
	kind            string
	partnerRepo     *PartnerRepository
	globalEventRepo *GlobalEventRepository
	lightweightRepo *LightweightPartnerRepository
}

// NewContainer connects to PostgreSQL, migrates and health-checks
func NewContainer(cfg *config.Config) (*Container, error) {
	log := logger.Repository("postgres_container")
	log.Info("Initializing PostgreSQL repository container...")

	db, err := Connect(cfg)
	if err != nil {
		log.Error("Failed to connect to database", "error", err)
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	container, err := NewMigratedContainer(db, "postgres")
	if err != nil {
		_ = Close(db)
		return nil, err
	}

	log.Info("PostgreSQL repository container initialized successfully")
	return container, nil
}

// NewMigratedContainer runs migrations on db and returns a checked container.
// kind names the backend in diagnostics.
func NewMigratedContainer(db *gorm.DB, kind string) (*Container, error) {
	if err := AutoMigrate(db); err != nil {
		return nil, fmt.Errorf("failed to run migrations: %w", err)
	}

	container := NewContainerWithDB(db, kind)
	if err := container.Health(); err != nil {
		container.log.Error("Container health check failed", "error", err)
		return nil, fmt.Errorf("container health check failed: %w", err)
	}
	return container, nil
}

// NewContainerWithDB creates a container with an existing database connection
func NewContainerWithDB(db *gorm.DB, kind string) *Container {
	return &Container{
		db:              db,
		log:             logger.Repository(kind + "_container"),
		kind:            kind,
		partnerRepo:     NewPartnerRepository(db),
		globalEventRepo: NewGlobalEventRepository(db),
		lightweightRepo: NewLightweightPartnerRepository(db),
	}
}

// Partners returns the partner repository
func (c *Container) Partners() partner.Repository {
	return c.partnerRepo
}

// GlobalEvents returns the global event repository
func (c *Container) GlobalEvents() globalevent.Repository {
	return c.globalEventRepo
}

// LightweightPartners returns the lightweight partner repository
func (c *Container) LightweightPartners() globalevent.LightweightRepository {
	return c.lightweightRepo
}

// Health pings the database and checks every table is queryable
func (c *Container) Health() error {
	c.log.Debug("Performing container health check...")

	if err := HealthCheck(c.db); err != nil {
		c.log.Error("Database health check failed", "error", err)
		return fmt.Errorf("database health check failed: %w", err)
	}

	for _, model := range migrations.AllModels() {
		var count int64
		if err := c.db.Model(model).Count(&count).Error; err != nil {
			c.log.Error("Table health check failed", "model", fmt.Sprintf("%T", model), "error", err)
			return fmt.Errorf("table %T health check failed: %w", model, err)
		}
	}

	c.log.Debug("Container health check completed successfully")
	return nil
}

// Close shuts down the connection pool
func (c *Container) Close() error {
	c.log.Info("Closing repository container...", "type", c.kind)

	if c.db == nil {
		c.log.Warn("Database connection is nil, nothing to close")
		return nil
	}

	if err := Close(c.db); err != nil {
		return err
	}

	c.db = nil
	c.log.Info("Repository container closed successfully", "type", c.kind)
	return nil
}

// GetInfo returns information about the container
func (c *Container) GetInfo() map[string]any {
	return map[string]any{
		"type":         c.kind,
		"repositories": []string{"partners", "global_events", "lightweight_partners"},
		"database":     poolInfo(c.db),
	}
}

// GetDB returns the underlying database connection
func (c *Container) GetDB() *gorm.DB {
	return c.db
}
