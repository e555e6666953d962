package cmd

import (
	"time"

	"go.uber.org/zap"

	"github.com/ssargent/recpack/pkg/codec"
	"github.com/ssargent/recpack/pkg/di"
	"github.com/ssargent/recpack/pkg/fileio"
	"github.com/ssargent/recpack/pkg/layout"
	"github.com/ssargent/recpack/pkg/metrics"
)

// loadLayout resolves a layout reference against the configured layout
// directory and compiles it.
func loadLayout(c *di.Container, ref string) (*layout.Layout, error) {
	path := c.GetConfig().ResolveLayout(ref)
	l, err := layout.Load(path)
	if err != nil {
		return nil, err
	}
	c.GetLogger().Debug("layout loaded",
		zap.String("layout", l.Name()),
		zap.String("path", path),
		zap.Int("width", l.Width()))
	return l, nil
}

// loadFile reads a whole file, recording the load in metrics.
func loadFile(c *di.Container, path string) ([]byte, error) {
	start := time.Now()
	buf, err := fileio.Load(path)
	c.GetMetrics().Observe(metrics.OpLoad, start, 0, len(buf), err)
	if err != nil {
		return nil, err
	}
	c.GetLogger().Info("file loaded", zap.String("path", path), zap.Int("bytes", len(buf)))
	return buf, nil
}

// storeFile writes a whole file, recording the store in metrics.
func storeFile(c *di.Container, path string, buf []byte) error {
	start := time.Now()
	err := fileio.Store(path, buf)
	c.GetMetrics().Observe(metrics.OpStore, start, 0, len(buf), err)
	if err != nil {
		return err
	}
	c.GetLogger().Info("file stored", zap.String("path", path), zap.Int("bytes", len(buf)))
	return nil
}

// decodeRows decodes a stream of rows. Unaligned budgets fail when strict is
// set or the config enables strict budgets.
func decodeRows(c *di.Container, l *layout.Layout, buf []byte, cursor *codec.Offset, budget int, strict bool) ([]layout.Row, error) {
	start, from := time.Now(), *cursor

	decode := codec.DecodeStream[layout.Row]
	if strict || c.GetConfig().StrictBudget {
		decode = codec.DecodeStreamExact[layout.Row]
	}

	rows, err := decode(l.Schema(), buf, cursor, budget)
	c.GetMetrics().Observe(metrics.OpDecode, start, len(rows), int(*cursor-from), err)
	if err != nil {
		c.GetLogger().Warn("decode failed",
			zap.String("layout", l.Name()),
			zap.Uint32("offset", uint32(from)),
			zap.Int("budget", budget),
			zap.Error(err))
		return nil, err
	}

	if rest := budget - int(*cursor-from); rest > 0 {
		c.GetLogger().Warn("budget not a multiple of record width, trailing bytes ignored",
			zap.Int("budget", budget),
			zap.Int("width", l.Width()),
			zap.Int("ignored", rest))
	}
	return rows, nil
}

// encodeRows encodes rows into buf, which must hold exactly len(rows) records
// from the cursor on.
func encodeRows(c *di.Container, l *layout.Layout, buf []byte, rows []layout.Row, cursor *codec.Offset) error {
	start, from := time.Now(), *cursor

	err := codec.EncodeStreamExact(l.Schema(), buf, rows, cursor, l.Schema().Span(len(rows)))
	c.GetMetrics().Observe(metrics.OpEncode, start, len(rows), int(*cursor-from), err)
	if err != nil {
		c.GetLogger().Warn("encode failed",
			zap.String("layout", l.Name()),
			zap.Int("records", len(rows)),
			zap.Error(err))
	}
	return err
}
