// Package catalog loads the assessment catalog from a JSON file.
// Loading happens once at startup; the resulting catalog is read-only
// for the process lifetime.
package catalog

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/goccy/go-json"
	"go.uber.org/zap"

	domcat "github.com/hirebase/assessrec/internal/domain/catalog"
)

// itemRow is the JSON representation of one assessment record.
type itemRow struct {
	Name            string `json:"name"`
	URL             string `json:"url"`
	RemoteTesting   string `json:"remote_testing"`
	AdaptiveSupport string `json:"adaptive_support"`
	Duration        string `json:"duration"`
	TestType        string `json:"test_type"`
	Description     string `json:"description,omitempty"`
}

// Load reads the catalog file. A missing file yields an empty catalog,
// which the engine treats as "no recommendations possible" rather than
// a fatal error. Records without a name are skipped with a warning.
func Load(path string, logger *zap.Logger) (domcat.Catalog, error) {
	data, err := os.ReadFile(filepath.Clean(path))
	if err != nil {
		if os.IsNotExist(err) {
			logger.Warn("Catalog file not found, starting with empty catalog", zap.String("path", path))
			return nil, nil
		}
		return nil, fmt.Errorf("read catalog %s: %w", path, err)
	}

	var rows []itemRow
	if err := json.Unmarshal(data, &rows); err != nil {
		return nil, fmt.Errorf("parse catalog %s: %w", path, err)
	}

	items := make(domcat.Catalog, 0, len(rows))
	for i, r := range rows {
		item, err := domcat.New(
			r.Name, r.URL, r.RemoteTesting, r.AdaptiveSupport,
			r.Duration, r.TestType, r.Description,
		)
		if err != nil {
			logger.Warn("Skipping invalid catalog record",
				zap.Int("record", i),
				zap.Error(err),
			)
			continue
		}
		items = append(items, item)
	}

	logger.Info("Loaded catalog",
		zap.String("path", path),
		zap.Int("items", len(items)),
		zap.Int("skipped", len(rows)-len(items)),
	)
	return items, nil
}
