// Package render projects the aggregated Stats into the output artifacts.
package render

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/dustin/go-humanize"
	"go.uber.org/zap"

	"github.com/naka-gawa/github-contrib-stats/internal/domain"
)

// dateLayout is the YYYY-MM-DD footer format.
const dateLayout = "2006-01-02"

// Meta carries the values that are not part of Stats but appear in rendered output.
type Meta struct {
	// DisplayName is shown in titles and headers.
	DisplayName string
	// Date is the render date printed in footers.
	Date time.Time
}

// Renderer turns Stats into the content of a single artifact.
type Renderer interface {
	Filename() string
	Render(stats *domain.Stats, meta Meta) ([]byte, error)
}

// Default returns the JSON, SVG and Markdown renderers in the order they are written.
func Default() []Renderer {
	return []Renderer{JSON{}, SVG{}, Markdown{}}
}

// WriteAll renders every artifact and overwrites its file under dir.
// It stops at the first renderer or write error.
func WriteAll(dir string, stats *domain.Stats, meta Meta, logger *zap.Logger, renderers ...Renderer) error {
	for _, r := range renderers {
		data, err := r.Render(stats, meta)
		if err != nil {
			return fmt.Errorf("failed to render %s: %w", r.Filename(), err)
		}
		path := filepath.Join(dir, r.Filename())
		if err := os.WriteFile(path, data, 0o644); err != nil {
			return fmt.Errorf("failed to write %s: %w", path, err)
		}
		logger.Info("wrote artifact", zap.String("path", path), zap.String("size", humanize.Bytes(uint64(len(data)))))
	}
	return nil
}
