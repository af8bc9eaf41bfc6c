package scanner

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/patternscan/patternscan/internal/domain"
)

var skipDirs = map[string]bool{
	"vendor":       true,
	"node_modules": true,
	".git":         true,
	"__pycache__":  true,
	"venv":         true,
	".venv":        true,
	"dist":         true,
	"bin":          true,
	"testdata":     true,
}

// FileScanner implements domain.ProjectScanner and domain.SourceReader on
// the local filesystem.
type FileScanner struct{}

func New() *FileScanner {
	return &FileScanner{}
}

// Scan walks projectPath and collects Go and Python sources, skipping
// dependency, build and VCS directories as well as test files.
func (s *FileScanner) Scan(projectPath string, excludePaths ...string) (*domain.ScanResult, error) {
	absPath, err := filepath.Abs(projectPath)
	if err != nil {
		return nil, err
	}
	info, err := os.Stat(absPath)
	if err != nil {
		return nil, fmt.Errorf("project path: %w", err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("project path %s is not a directory", absPath)
	}

	// Extra excludes match either a directory name or a root-relative path.
	extraSkip := make(map[string]bool, len(excludePaths))
	for _, p := range excludePaths {
		extraSkip[filepath.ToSlash(strings.TrimSuffix(p, "/"))] = true
	}

	result := &domain.ScanResult{
		RootPath: absPath,
	}

	err = filepath.WalkDir(absPath, func(path string, d os.DirEntry, err error) error {
		if err != nil {
			return err
		}

		relPath, _ := filepath.Rel(absPath, path)
		relSlash := filepath.ToSlash(relPath)

		if d.IsDir() {
			if path == absPath {
				return nil
			}
			if skipDirs[d.Name()] || extraSkip[d.Name()] || extraSkip[relSlash] {
				return filepath.SkipDir
			}
			return nil
		}
		if extraSkip[relSlash] || !d.Type().IsRegular() {
			return nil
		}

		name := d.Name()
		switch {
		case strings.HasSuffix(name, "_test.go"):
		case strings.HasSuffix(name, ".go"):
			result.GoFiles = append(result.GoFiles, relPath)
		case strings.HasPrefix(name, "test_") && strings.HasSuffix(name, ".py"):
		case strings.HasSuffix(name, ".py"):
			result.PythonFiles = append(result.PythonFiles, relPath)
		}
		return nil
	})

	return result, err
}

// ReadSource reads path, rejecting files larger than limit bytes.
func (s *FileScanner) ReadSource(path string, limit int64) ([]byte, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	if limit > 0 {
		info, err := f.Stat()
		if err != nil {
			return nil, err
		}
		if info.Size() > limit {
			return nil, fmt.Errorf("%s: %w (%d > %d bytes)", path, domain.ErrFileTooLarge, info.Size(), limit)
		}
		// Guard against files growing between Stat and read.
		data, err := io.ReadAll(io.LimitReader(f, limit+1))
		if err != nil {
			return nil, err
		}
		if int64(len(data)) > limit {
			return nil, fmt.Errorf("%s: %w", path, domain.ErrFileTooLarge)
		}
		return data, nil
	}
	return io.ReadAll(f)
}
