// =============================================================================
// Concrete Mix Report - File Manager Utility
// =============================================================================
//
// This module provides file management utilities for the report builder:
//   - Workbook discovery in the input directory
//   - Output file naming ({timestamp} and {uuid} placeholders)
//   - Optional archival of processed workbooks
//
// ARCHIVAL STRATEGY:
//   - Workbooks that contributed rows are moved to the archive directory
//     after the report is written successfully
//   - Skipped workbooks remain in the input directory
//   - Archival is disabled by default
//
// =============================================================================

package utils

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"
)

// =============================================================================
// FILE MANAGER
// =============================================================================

// FileManager handles file operations for the report builder.
type FileManager struct {
	// InputDir is the directory scanned for workbooks.
	InputDir string

	// ArchiveDir is the directory processed workbooks are moved to.
	ArchiveDir string

	// ArchiveProcessed enables moving workbooks after a successful run.
	ArchiveProcessed bool
}

// NewFileManager creates a FileManager for the given directories.
func NewFileManager(inputDir, archiveDir string, archiveProcessed bool) *FileManager {
	return &FileManager{
		InputDir:         inputDir,
		ArchiveDir:       archiveDir,
		ArchiveProcessed: archiveProcessed,
	}
}

// =============================================================================
// FILE DISCOVERY
// =============================================================================

// DiscoverInputFiles scans the input directory for files matching the glob
// pattern and returns them sorted by filename, so re-running the report
// processes workbooks in a stable order. Directories are filtered out.
func (fm *FileManager) DiscoverInputFiles(pattern string) ([]string, error) {
	if pattern == "" {
		pattern = "*.xlsx"
	}

	matches, err := filepath.Glob(filepath.Join(fm.InputDir, pattern))
	if err != nil {
		return nil, fmt.Errorf("failed to scan input directory: %w", err)
	}

	var files []string
	for _, file := range matches {
		info, err := os.Stat(file)
		if err != nil {
			continue
		}
		if !info.IsDir() {
			files = append(files, file)
		}
	}

	sort.Strings(files)
	return files, nil
}

// =============================================================================
// OUTPUT NAMING
// =============================================================================

// BuildOutputName expands the {timestamp} and {uuid} placeholders in an
// output name format. A plain name without placeholders passes through
// unchanged.
//
// Example: "Mix_Report_{timestamp}.csv" -> "Mix_Report_20260831_141502.csv"
func BuildOutputName(format string) string {
	name := format
	if strings.Contains(name, "{timestamp}") {
		name = strings.ReplaceAll(name, "{timestamp}", time.Now().Format("20060102_150405"))
	}
	if strings.Contains(name, "{uuid}") {
		name = strings.ReplaceAll(name, "{uuid}", uuid.New().String())
	}
	return name
}

// =============================================================================
// FILE ARCHIVAL
// =============================================================================

// ArchiveProcessedFile moves a workbook to the archive directory. When
// archival is disabled the file stays where it is and its original path is
// returned.
func (fm *FileManager) ArchiveProcessedFile(filePath string) (string, error) {
	if !fm.ArchiveProcessed {
		return filePath, nil
	}

	if err := os.MkdirAll(fm.ArchiveDir, 0755); err != nil {
		return "", fmt.Errorf("failed to create archive directory: %w", err)
	}

	archivePath := filepath.Join(fm.ArchiveDir, filepath.Base(filePath))
	if err := os.Rename(filePath, archivePath); err != nil {
		// Rename fails across devices; fall back to copy and delete.
		if err := copyFile(filePath, archivePath); err != nil {
			return "", fmt.Errorf("failed to copy file to archive: %w", err)
		}
		if err := os.Remove(filePath); err != nil {
			return "", fmt.Errorf("failed to remove original file: %w", err)
		}
	}

	return archivePath, nil
}

// copyFile copies src to dst, truncating dst if it exists.
func copyFile(src, dst string) error {
	in, err := os.Open(src)
	if err != nil {
		return err
	}
	defer in.Close()

	out, err := os.Create(dst)
	if err != nil {
		return err
	}

	if _, err := io.Copy(out, in); err != nil {
		out.Close()
		return err
	}
	return out.Close()
}
