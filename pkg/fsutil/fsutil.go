// Package fsutil provides the file primitives the mod pipeline commits through:
// snapshot reads, atomic writes, removal and sidecar backups.
package fsutil

import (
	"context"
	"crypto/sha256"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"time"
)

// Sentinel errors for classification via errors.Is.
var (
	// ErrNotFound indicates the file does not exist.
	ErrNotFound = errors.New("file not found")

	// ErrPermissionDenied indicates a permission error.
	ErrPermissionDenied = errors.New("permission denied")

	// ErrIsDirectory indicates the path is a directory, not a file.
	ErrIsDirectory = errors.New("path is a directory")

	// ErrNilSnapshot is returned when a nil Snapshot is checked.
	ErrNilSnapshot = errors.New("nil snapshot")
)

// Snapshot records the state of a file when it was loaded, so the commit step
// can refuse to overwrite a file someone else changed in the meantime.
type Snapshot struct {
	Path    string
	Mode    os.FileMode
	ModTime time.Time
	Size    int64
	Hash    [32]byte

	// Missing is true when the file did not exist at load time.
	Missing bool
}

func checkContext(ctx context.Context, op string) error {
	select {
	case <-ctx.Done():
		return fmt.Errorf("%s: %w", op, ctx.Err())
	default:
		return nil
	}
}

func classify(path string, err error) error {
	switch {
	case errors.Is(err, fs.ErrNotExist):
		return fmt.Errorf("%w: %s: %w", ErrNotFound, path, err)
	case errors.Is(err, fs.ErrPermission):
		return fmt.Errorf("%w: %s: %w", ErrPermissionDenied, path, err)
	default:
		return fmt.Errorf("%s: %w", path, err)
	}
}

// ReadFile reads path and returns its content with a Snapshot.
func ReadFile(ctx context.Context, path string) ([]byte, *Snapshot, error) {
	if err := checkContext(ctx, "read file"); err != nil {
		return nil, nil, err
	}

	stat, err := os.Stat(path)
	if err != nil {
		return nil, nil, classify(path, err)
	}
	if stat.IsDir() {
		return nil, nil, fmt.Errorf("%w: %s", ErrIsDirectory, path)
	}

	content, err := os.ReadFile(path)
	if err != nil {
		return nil, nil, classify(path, err)
	}

	return content, &Snapshot{
		Path:    path,
		Mode:    stat.Mode(),
		ModTime: stat.ModTime(),
		Size:    stat.Size(),
		Hash:    sha256.Sum256(content),
	}, nil
}

// ReadFileOrMissing is ReadFile that treats a missing file as empty content
// with a Missing snapshot.
func ReadFileOrMissing(ctx context.Context, path string) ([]byte, *Snapshot, error) {
	content, snap, err := ReadFile(ctx, path)
	if errors.Is(err, ErrNotFound) {
		return nil, &Snapshot{Path: path, Missing: true}, nil
	}
	return content, snap, err
}

// Exists reports whether path exists and is a regular file.
func Exists(path string) bool {
	stat, err := os.Stat(path)
	return err == nil && !stat.IsDir()
}

// CheckModified reports whether the file changed since snap was taken.
// Size and mod time are checked first; the content hash settles ties.
func CheckModified(ctx context.Context, snap *Snapshot) (bool, error) {
	if snap == nil {
		return false, ErrNilSnapshot
	}
	if err := checkContext(ctx, "check modified"); err != nil {
		return false, err
	}

	stat, err := os.Stat(snap.Path)
	if errors.Is(err, fs.ErrNotExist) {
		return !snap.Missing, nil
	}
	if err != nil {
		return false, fmt.Errorf("stat %s: %w", snap.Path, err)
	}
	if snap.Missing {
		return true, nil
	}

	if !stat.ModTime().Equal(snap.ModTime) || stat.Size() != snap.Size {
		return true, nil
	}

	content, err := os.ReadFile(snap.Path)
	if err != nil {
		return false, fmt.Errorf("read %s: %w", snap.Path, err)
	}
	return sha256.Sum256(content) != snap.Hash, nil
}

// Remove deletes path. A missing file is not an error; the result reports
// whether a file was removed.
func Remove(ctx context.Context, path string) (bool, error) {
	if err := checkContext(ctx, "remove"); err != nil {
		return false, err
	}
	err := os.Remove(path)
	if errors.Is(err, fs.ErrNotExist) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("remove %s: %w", path, err)
	}
	return true, nil
}

// CopyFile copies src to dst atomically, creating parent directories.
func CopyFile(ctx context.Context, src, dst string) error {
	content, snap, err := ReadFile(ctx, src)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(dst), DefaultDirMode); err != nil {
		return fmt.Errorf("create directory for %s: %w", dst, err)
	}
	return WriteAtomic(ctx, dst, content, snap.Mode.Perm())
}
