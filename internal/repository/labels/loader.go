// Package labels loads the labeled relevance set used by the evaluator.
package labels

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/goccy/go-json"
	"go.uber.org/zap"

	"github.com/hirebase/assessrec/internal/usecase/evaluate"
)

// caseRow is the JSON representation of one labeled test case.
type caseRow struct {
	Query               string   `json:"query"`
	RelevantAssessments []string `json:"relevant_assessments"`
}

// Load reads labeled test cases. A missing file yields no cases, which
// disables evaluation without failing startup.
func Load(path string, logger *zap.Logger) ([]evaluate.TestCase, error) {
	if path == "" {
		return nil, nil
	}
	data, err := os.ReadFile(filepath.Clean(path))
	if err != nil {
		if os.IsNotExist(err) {
			logger.Warn("Labels file not found, evaluation disabled", zap.String("path", path))
			return nil, nil
		}
		return nil, fmt.Errorf("read labels %s: %w", path, err)
	}

	var rows []caseRow
	if err := json.Unmarshal(data, &rows); err != nil {
		return nil, fmt.Errorf("parse labels %s: %w", path, err)
	}

	cases := make([]evaluate.TestCase, 0, len(rows))
	for _, r := range rows {
		if r.Query == "" {
			continue
		}
		cases = append(cases, evaluate.TestCase{
			Query:         r.Query,
			RelevantNames: r.RelevantAssessments,
		})
	}

	logger.Info("Loaded labeled test cases", zap.String("path", path), zap.Int("cases", len(cases)))
	return cases, nil
}
