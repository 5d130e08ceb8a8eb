package favorites

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/manav03panchal/muse/internal/errors"
)

// DefaultMinFreeSpace is the free space required before a write (1MB).
const DefaultMinFreeSpace = 1024 * 1024

// DiskSpaceInfo contains information about available disk space.
type DiskSpaceInfo struct {
	Path       string
	TotalBytes uint64
	FreeBytes  uint64
}

// CheckDiskSpace returns an error if free space at path is below minFree.
// If free space cannot be determined the check passes.
func CheckDiskSpace(path string, minFree uint64) error {
	if minFree == 0 {
		return nil
	}
	info, err := GetDiskSpace(path)
	if err != nil {
		return nil
	}

	if info.FreeBytes < minFree {
		return errors.NewSystemError(
			fmt.Sprintf("insufficient disk space: %d KB free, need at least %d KB",
				info.FreeBytes/1024, minFree/1024),
			errors.ErrDiskFull,
		)
	}
	return nil
}

// SafeWrite replaces the file at path with data. The data is written to a
// temporary file in the same directory, synced and renamed over path, so
// readers see either the old or the new content and never a partial file.
func SafeWrite(path string, data []byte, perm os.FileMode, minFree uint64) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		if isDiskFullError(err) {
			return errors.NewSystemErrorWithOp("mkdir", "disk full", errors.ErrDiskFull)
		}
		return fmt.Errorf("failed to create directory: %w", err)
	}

	if err := CheckDiskSpace(dir, minFree); err != nil {
		return err
	}

	tmpFile, err := os.CreateTemp(dir, ".muse-*.tmp")
	if err != nil {
		if isDiskFullError(err) {
			return errors.NewSystemErrorWithOp("create temp file", "disk full", errors.ErrDiskFull)
		}
		return fmt.Errorf("failed to create temp file: %w", err)
	}
	tmpPath := tmpFile.Name()

	success := false
	defer func() {
		if !success {
			tmpFile.Close()
			os.Remove(tmpPath)
		}
	}()

	if _, err := tmpFile.Write(data); err != nil {
		if isDiskFullError(err) {
			return errors.NewSystemErrorWithOp("write", "disk full", errors.ErrDiskFull)
		}
		return fmt.Errorf("failed to write data: %w", err)
	}

	if err := tmpFile.Sync(); err != nil {
		if isDiskFullError(err) {
			return errors.NewSystemErrorWithOp("sync", "disk full", errors.ErrDiskFull)
		}
		return fmt.Errorf("failed to sync data: %w", err)
	}

	if err := tmpFile.Close(); err != nil {
		return fmt.Errorf("failed to close temp file: %w", err)
	}

	if err := os.Chmod(tmpPath, perm); err != nil {
		return fmt.Errorf("failed to set permissions: %w", err)
	}

	if err := os.Rename(tmpPath, path); err != nil {
		return fmt.Errorf("failed to rename temp file: %w", err)
	}

	success = true
	return nil
}

// nearestExisting walks up from path until it finds something that exists.
func nearestExisting(path string) string {
	for {
		if _, err := os.Stat(path); err == nil {
			return path
		}
		parent := filepath.Dir(path)
		if parent == path {
			return path
		}
		path = parent
	}
}
