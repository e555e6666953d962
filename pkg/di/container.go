// Package di provides dependency injection container
package di

import (
	"go.uber.org/zap"

	"github.com/ssargent/recpack/pkg/config"
	"github.com/ssargent/recpack/pkg/metrics"
	"github.com/ssargent/recpack/pkg/storage"
)

// ArchiveOpener opens the buffer archive in a directory
type ArchiveOpener func(dir string) (*storage.Archive, error)

// Container holds all the dependencies for the application
type Container struct {
	config        *config.Config
	logger        *zap.Logger
	metrics       *metrics.Metrics
	archiveOpener ArchiveOpener
}

// NewContainer creates a new dependency injection container
func NewContainer() *Container {
	return &Container{
		config:        config.DefaultConfig(),
		logger:        zap.NewNop(),
		metrics:       metrics.New(),
		archiveOpener: storage.OpenArchive,
	}
}

// GetConfig returns the active configuration
func (c *Container) GetConfig() *config.Config {
	return c.config
}

// SetConfig replaces the active configuration
func (c *Container) SetConfig(cfg *config.Config) {
	c.config = cfg
}

// GetLogger returns the logger
func (c *Container) GetLogger() *zap.Logger {
	return c.logger
}

// SetLogger replaces the logger
func (c *Container) SetLogger(l *zap.Logger) {
	c.logger = l
}

// GetMetrics returns the metrics collectors
func (c *Container) GetMetrics() *metrics.Metrics {
	return c.metrics
}

// OpenArchive opens the archive configured in ArchiveDir
func (c *Container) OpenArchive() (*storage.Archive, error) {
	return c.archiveOpener(c.config.ArchiveDir)
}

// SetArchiveOpener allows overriding how the archive is opened (for testing)
func (c *Container) SetArchiveOpener(opener ArchiveOpener) {
	c.archiveOpener = opener
}
