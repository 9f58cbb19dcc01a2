package scanner

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"time"

	"posinsight/internal/data/decoder"
	"posinsight/internal/util"
)

// FileScanner scans a directory tree for point-of-sale export files.
type FileScanner struct {
	baseDir string
}

// NewFileScanner creates a new FileScanner instance
func NewFileScanner(baseDir string) *FileScanner {
	return &FileScanner{baseDir: baseDir}
}

// Scan walks the directory and returns every file whose extension names a
// supported export format, sorted by path for deterministic load order.
func (s *FileScanner) Scan() ([]string, error) {
	start := time.Now()
	var files []string
	dirCount := 0
	totalCount := 0

	util.LogDebug(fmt.Sprintf("Start scanning directory: %s", s.baseDir))

	err := filepath.Walk(s.baseDir, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			util.LogDebug(fmt.Sprintf("Skip file (error): %s - %v", path, err))
			return nil
		}

		if info.IsDir() {
			dirCount++
			return nil
		}

		totalCount++
		if _, err := decoder.DetectFormat(path); err == nil {
			files = append(files, path)
		}

		return nil
	})

	sort.Strings(files)

	duration := time.Since(start)
	util.LogDebug(fmt.Sprintf("File scan completed: duration %v, scanned %d directories, %d files, found %d export files",
		duration, dirCount, totalCount, len(files)))

	return files, err
}

// Resolve expands a mixed list of file and directory arguments into a flat
// list of export file paths. Directories are scanned recursively; file
// arguments are passed through untouched so an unsupported extension still
// surfaces as a per-file failure downstream.
func Resolve(args []string) ([]string, error) {
	var files []string
	for _, arg := range args {
		info, err := os.Stat(arg)
		if err != nil {
			return nil, fmt.Errorf("stat %s: %w", arg, err)
		}
		if !info.IsDir() {
			files = append(files, arg)
			continue
		}

		found, err := NewFileScanner(arg).Scan()
		if err != nil {
			return nil, fmt.Errorf("scan %s: %w", arg, err)
		}
		files = append(files, found...)
	}
	return files, nil
}
