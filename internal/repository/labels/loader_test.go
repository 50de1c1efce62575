package labels

import (
	"os"
	"path/filepath"
	"testing"

	"go.uber.org/zap"
)

func TestLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "labels.json")
	content := `[
		{
			"query": "hiring java developers",
			"relevant_assessments": ["Core Java (Entry Level)", "Core Java (Advanced Level)"]
		},
		{"query": "", "relevant_assessments": ["ignored"]}
	]`
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("write labels: %v", err)
	}

	cases, err := Load(path, zap.NewNop())
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if len(cases) != 1 {
		t.Fatalf("len = %d, want 1 (empty query skipped)", len(cases))
	}
	if cases[0].Query != "hiring java developers" || len(cases[0].RelevantNames) != 2 {
		t.Errorf("unexpected case: %+v", cases[0])
	}
}

func TestLoad_MissingFile(t *testing.T) {
	cases, err := Load(filepath.Join(t.TempDir(), "absent.json"), zap.NewNop())
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cases != nil {
		t.Errorf("cases = %v, want nil", cases)
	}
}

func TestLoad_EmptyPath(t *testing.T) {
	cases, err := Load("", zap.NewNop())
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cases != nil {
		t.Errorf("cases = %v, want nil", cases)
	}
}
