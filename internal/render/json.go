package render

import (
	"encoding/json"

	"github.com/naka-gawa/github-contrib-stats/internal/domain"
)

// JSON dumps Stats verbatim with 2-space indentation.
type JSON struct{}

func (JSON) Filename() string { return "github-stats.json" }

func (JSON) Render(stats *domain.Stats, _ Meta) ([]byte, error) {
	data, err := json.MarshalIndent(stats, "", "  ")
	if err != nil {
		return nil, err
	}
	return append(data, '\n'), nil
}
