package security

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/gobwas/glob"
	"go.uber.org/zap"
)

// sourceExtension is the extension scanned when no allow-list is
// configured.
const sourceExtension = ".py"

// ScanConfig controls which files a directory scan visits. Absent fields
// fall back to the defaults from DefaultScanConfig.
type ScanConfig struct {
	ExcludeDirs    []string `mapstructure:"exclude_dirs"`
	ExcludeFiles   []string `mapstructure:"exclude_files"`
	ScanExtensions []string `mapstructure:"scan_extensions"`
	ScanPatterns   []string `mapstructure:"scan_patterns"`
}

// DefaultScanConfig returns the built-in exclusion rules: version-control
// metadata, bytecode caches, virtual environments and dependency
// directories, plus compiled-artifact file globs.
func DefaultScanConfig() ScanConfig {
	return ScanConfig{
		ExcludeDirs:  []string{".git", "__pycache__", "venv", "env", "node_modules"},
		ExcludeFiles: []string{"*.pyc", "*.pyo", "*.pyd", "*.so", "*.dll"},
	}
}

// Scanner walks a directory tree, applies the exclusion rules and
// dispatches each eligible file to the validator. It keeps no state
// between scans.
type Scanner struct {
	validator    *Validator
	excludeDirs  map[string]bool
	excludeFiles []glob.Glob
	extensions   map[string]bool
	patterns     []glob.Glob
	log          *zap.Logger
}

// NewScanner creates a scanner for the given config. A nil logger
// disables traversal logging.
func NewScanner(cfg ScanConfig, logger *zap.Logger) (*Scanner, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	defaults := DefaultScanConfig()
	if cfg.ExcludeDirs == nil {
		cfg.ExcludeDirs = defaults.ExcludeDirs
	}
	if cfg.ExcludeFiles == nil {
		cfg.ExcludeFiles = defaults.ExcludeFiles
	}

	s := &Scanner{
		validator:   NewValidator(),
		excludeDirs: make(map[string]bool, len(cfg.ExcludeDirs)),
		extensions:  make(map[string]bool, len(cfg.ScanExtensions)),
		log:         logger,
	}
	for _, dir := range cfg.ExcludeDirs {
		s.excludeDirs[dir] = true
	}
	for _, ext := range cfg.ScanExtensions {
		if !strings.HasPrefix(ext, ".") {
			ext = "." + ext
		}
		s.extensions[strings.ToLower(ext)] = true
	}

	var err error
	if s.excludeFiles, err = compileGlobs(cfg.ExcludeFiles); err != nil {
		return nil, fmt.Errorf("exclude_files: %w", err)
	}
	if s.patterns, err = compileGlobs(cfg.ScanPatterns); err != nil {
		return nil, fmt.Errorf("scan_patterns: %w", err)
	}
	return s, nil
}

func compileGlobs(patterns []string) ([]glob.Glob, error) {
	globs := make([]glob.Glob, 0, len(patterns))
	for _, p := range patterns {
		g, err := glob.Compile(p)
		if err != nil {
			return nil, fmt.Errorf("invalid glob %q: %w", p, err)
		}
		globs = append(globs, g)
	}
	return globs, nil
}

// ScanDirectory walks the tree rooted at root and returns a map from
// absolute file path to the issues found there. Files with zero issues
// are omitted. Excluded directories are pruned before descent, so their
// subtrees are never traversed. Unreadable subtrees are logged and
// skipped; only an invalid root is returned as an error.
func (s *Scanner) ScanDirectory(root string) (map[string][]Issue, error) {
	absRoot, err := filepath.Abs(root)
	if err != nil {
		return nil, fmt.Errorf("resolve scan root: %w", err)
	}
	info, err := os.Stat(absRoot)
	if err != nil {
		return nil, fmt.Errorf("scan root: %w", err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("scan root %s is not a directory", root)
	}

	results := make(map[string][]Issue)
	walkErr := filepath.WalkDir(absRoot, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			s.log.Warn("skipping unreadable path",
				zap.String("path", path),
				zap.Error(err))
			if d != nil && d.IsDir() {
				return fs.SkipDir
			}
			return nil
		}

		if d.IsDir() {
			if path != absRoot && s.excludeDirs[d.Name()] {
				return fs.SkipDir
			}
			return nil
		}

		name := d.Name()
		if matchesAny(s.excludeFiles, name) || !s.eligible(name) {
			return nil
		}

		if issues := s.validator.ValidateFile(path); len(issues) > 0 {
			results[path] = issues
		}
		return nil
	})
	if walkErr != nil {
		return nil, fmt.Errorf("walk %s: %w", root, walkErr)
	}
	return results, nil
}

// ScanFile validates a single file, delegating directly to the validator.
func (s *Scanner) ScanFile(path string) []Issue {
	return s.validator.ValidateFile(path)
}

// eligible reports whether a file name should be scanned: the built-in
// source extension always is (exact match); otherwise a configured
// extension allow-list decides, case-insensitively, and failing that a
// configured filename glob allow-list.
func (s *Scanner) eligible(name string) bool {
	ext := filepath.Ext(name)
	if ext == sourceExtension {
		return true
	}
	if len(s.extensions) > 0 {
		return s.extensions[strings.ToLower(ext)]
	}
	if len(s.patterns) > 0 {
		return matchesAny(s.patterns, name)
	}
	return false
}

func matchesAny(globs []glob.Glob, name string) bool {
	for _, g := range globs {
		if g.Match(name) {
			return true
		}
	}
	return false
}
