package security

import (
	"os"
	"path/filepath"
	"testing"
)

func newDefaultScanner(t *testing.T) *Scanner {
	t.Helper()
	s, err := NewScanner(ScanConfig{}, nil)
	if err != nil {
		t.Fatalf("NewScanner() error: %v", err)
	}
	return s
}

func writeTree(t *testing.T, root string, files map[string]string) {
	t.Helper()
	for name, content := range files {
		path := filepath.Join(root, name)
		if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
			t.Fatalf("mkdir: %v", err)
		}
		if err := os.WriteFile(path, []byte(content), 0644); err != nil {
			t.Fatalf("write %s: %v", name, err)
		}
	}
}

func TestScanDirectory(t *testing.T) {
	root := t.TempDir()
	writeTree(t, root, map[string]string{
		"bad.py":    "import os\n",
		"clean.py":  "x = 1 + 2\n",
		"notes.txt": "import os\n",
	})

	results, err := newDefaultScanner(t).ScanDirectory(root)
	if err != nil {
		t.Fatalf("ScanDirectory() error: %v", err)
	}

	if len(results) != 1 {
		t.Fatalf("results = %d entries, want 1: %+v", len(results), results)
	}
	badPath, _ := filepath.Abs(filepath.Join(root, "bad.py"))
	if _, ok := results[badPath]; !ok {
		t.Errorf("missing %s in results: %+v", badPath, results)
	}
}

func TestScanDirectoryOmitsCleanFiles(t *testing.T) {
	root := t.TempDir()
	writeTree(t, root, map[string]string{"clean.py": "x = 1 + 2\n"})

	results, err := newDefaultScanner(t).ScanDirectory(root)
	if err != nil {
		t.Fatalf("ScanDirectory() error: %v", err)
	}

	if len(results) != 0 {
		t.Errorf("clean tree should produce an empty map, got %+v", results)
	}
}

func TestScanDirectoryExcludedDirs(t *testing.T) {
	root := t.TempDir()
	writeTree(t, root, map[string]string{
		filepath.Join("node_modules", "dep.py"): "import os\n",
		filepath.Join("venv", "lib.py"):         "import subprocess\n",
		filepath.Join("src", "app.py"):          "import os\n",
	})

	results, err := newDefaultScanner(t).ScanDirectory(root)
	if err != nil {
		t.Fatalf("ScanDirectory() error: %v", err)
	}

	if len(results) != 1 {
		t.Fatalf("results = %d entries, want only src/app.py: %+v", len(results), results)
	}
	appPath, _ := filepath.Abs(filepath.Join(root, "src", "app.py"))
	if _, ok := results[appPath]; !ok {
		t.Errorf("missing %s in results: %+v", appPath, results)
	}
}

func TestScanDirectoryExcludeFileGlobs(t *testing.T) {
	root := t.TempDir()
	writeTree(t, root, map[string]string{
		"bad.py":  "import os\n",
		"skip.py": "import os\n",
	})

	s, err := NewScanner(ScanConfig{ExcludeFiles: []string{"skip.*"}}, nil)
	if err != nil {
		t.Fatalf("NewScanner() error: %v", err)
	}
	results, err := s.ScanDirectory(root)
	if err != nil {
		t.Fatalf("ScanDirectory() error: %v", err)
	}

	if len(results) != 1 {
		t.Fatalf("results = %d entries, want 1: %+v", len(results), results)
	}
}

func TestScanDirectoryExtensionAllowList(t *testing.T) {
	root := t.TempDir()
	writeTree(t, root, map[string]string{
		"config.yaml": `password = "hunter2"` + "\n",
		"notes.txt":   `password = "hunter2"` + "\n",
	})

	s, err := NewScanner(ScanConfig{ScanExtensions: []string{".yaml"}}, nil)
	if err != nil {
		t.Fatalf("NewScanner() error: %v", err)
	}
	results, err := s.ScanDirectory(root)
	if err != nil {
		t.Fatalf("ScanDirectory() error: %v", err)
	}

	if len(results) != 1 {
		t.Fatalf("results = %d entries, want only config.yaml: %+v", len(results), results)
	}
}

func TestScanDirectoryPatternAllowList(t *testing.T) {
	root := t.TempDir()
	writeTree(t, root, map[string]string{
		"run.sh":    "rm -rf / | true\n",
		"README.md": "plain text, no findings\n",
	})

	s, err := NewScanner(ScanConfig{ScanPatterns: []string{"*.sh"}}, nil)
	if err != nil {
		t.Fatalf("NewScanner() error: %v", err)
	}
	results, err := s.ScanDirectory(root)
	if err != nil {
		t.Fatalf("ScanDirectory() error: %v", err)
	}

	shPath, _ := filepath.Abs(filepath.Join(root, "run.sh"))
	if _, ok := results[shPath]; !ok {
		t.Errorf("missing %s in results: %+v", shPath, results)
	}
	for path := range results {
		if filepath.Ext(path) == ".md" {
			t.Errorf("README.md should not have been scanned: %+v", results)
		}
	}
}

func TestEligibleDefaultExtensionIsCaseSensitive(t *testing.T) {
	s := newDefaultScanner(t)

	if !s.eligible("module.py") {
		t.Error("module.py should be eligible by default")
	}
	if s.eligible("MODULE.PY") {
		t.Error("MODULE.PY should not match the built-in extension")
	}
}

func TestEligibleAllowListNormalizesCase(t *testing.T) {
	s, err := NewScanner(ScanConfig{ScanExtensions: []string{".YAML"}}, nil)
	if err != nil {
		t.Fatalf("NewScanner() error: %v", err)
	}

	if !s.eligible("config.yaml") || !s.eligible("config.YAML") {
		t.Error("configured extensions should match case-insensitively")
	}
}

func TestScanDirectoryInvalidRoot(t *testing.T) {
	s := newDefaultScanner(t)

	if _, err := s.ScanDirectory(filepath.Join(t.TempDir(), "missing")); err == nil {
		t.Error("missing root should be a fatal error")
	}

	file := filepath.Join(t.TempDir(), "afile")
	if err := os.WriteFile(file, []byte("x"), 0644); err != nil {
		t.Fatalf("write: %v", err)
	}
	if _, err := s.ScanDirectory(file); err == nil {
		t.Error("non-directory root should be a fatal error")
	}
}

func TestScanFileDelegatesToValidator(t *testing.T) {
	root := t.TempDir()
	writeTree(t, root, map[string]string{"bad.py": "eval(x)\n"})

	issues := newDefaultScanner(t).ScanFile(filepath.Join(root, "bad.py"))

	if countLevel(issues, LevelCritical) == 0 {
		t.Fatalf("expected analyzer CRITICAL via ScanFile, got %+v", issues)
	}
}

func TestScanFileMissing(t *testing.T) {
	issues := newDefaultScanner(t).ScanFile(filepath.Join(t.TempDir(), "nope.py"))

	if len(issues) != 1 || issues[0].Level != LevelHigh {
		t.Fatalf("expected one HIGH read-failure issue, got %+v", issues)
	}
}
