package di

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/ssargent/recpack/pkg/config"
	"github.com/ssargent/recpack/pkg/storage"
)

func TestNewContainer(t *testing.T) {
	c := NewContainer()

	assert.Equal(t, config.DefaultConfig(), c.GetConfig())
	assert.NotNil(t, c.GetLogger())
	assert.NotNil(t, c.GetMetrics())
}

func TestContainer_Overrides(t *testing.T) {
	c := NewContainer()

	cfg := config.DefaultConfig()
	cfg.ArchiveDir = t.TempDir()
	c.SetConfig(cfg)

	logger := zap.NewExample()
	c.SetLogger(logger)
	assert.Same(t, logger, c.GetLogger())

	var openedDir string
	c.SetArchiveOpener(func(dir string) (*storage.Archive, error) {
		openedDir = dir
		return storage.OpenArchive(dir)
	})

	a, err := c.OpenArchive()
	require.NoError(t, err)
	defer a.Close()
	assert.Equal(t, cfg.ArchiveDir, openedDir)
}
