// Package pngfile reads and writes whole PNG files for the chunk codec.
package pngfile

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/segmentio/ksuid"
	"github.com/ssargent/pngme/pkg/png"
)

// Options controls how Save writes a file
type Options struct {
	// Backup copies an existing destination aside before it is replaced.
	Backup bool
	// BackupDir holds backups; empty means next to the destination.
	BackupDir string
}

// Load reads the file at path and parses it as a PNG datastream
func Load(path string) (*png.Png, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}

	p, err := png.Parse(data)
	if err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", path, err)
	}
	return p, nil
}

// Save encodes p and writes it to path. The write goes to a temporary file in
// the same directory which is renamed over path, so readers never observe a
// partial file. It returns the backup path when one was taken.
func Save(path string, p *png.Png, opts Options) (string, error) {
	mode := fs.FileMode(0644)
	info, err := os.Stat(path)
	switch {
	case err == nil:
		mode = info.Mode().Perm()
	case !errors.Is(err, fs.ErrNotExist):
		return "", fmt.Errorf("failed to stat %s: %w", path, err)
	}

	var backupPath string
	if opts.Backup && info != nil {
		backupPath, err = backup(path, opts.BackupDir, mode)
		if err != nil {
			return "", err
		}
	}

	if err := writeAtomic(path, p.Bytes(), mode); err != nil {
		return backupPath, err
	}
	return backupPath, nil
}

func writeAtomic(path string, data []byte, mode fs.FileMode) error {
	dir := filepath.Dir(path)
	tmp, err := os.CreateTemp(dir, "."+filepath.Base(path)+".*.tmp")
	if err != nil {
		return fmt.Errorf("failed to create temp file: %w", err)
	}
	tmpName := tmp.Name()
	defer func() {
		// Removing after a successful rename fails harmlessly.
		_ = os.Remove(tmpName)
	}()

	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		return fmt.Errorf("failed to write %s: %w", tmpName, err)
	}
	if err := tmp.Sync(); err != nil {
		_ = tmp.Close()
		return fmt.Errorf("failed to sync %s: %w", tmpName, err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("failed to close %s: %w", tmpName, err)
	}
	if err := os.Chmod(tmpName, mode); err != nil {
		return fmt.Errorf("failed to set mode on %s: %w", tmpName, err)
	}
	if err := os.Rename(tmpName, path); err != nil {
		return fmt.Errorf("failed to replace %s: %w", path, err)
	}
	return nil
}

// backup copies path to <dir>/<name>.<ksuid>.bak. The ksuid keeps names
// unique and sorts backups by creation time.
func backup(path, dir string, mode fs.FileMode) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("failed to read %s for backup: %w", path, err)
	}

	if dir == "" {
		dir = filepath.Dir(path)
	}
	if err := os.MkdirAll(dir, 0750); err != nil {
		return "", fmt.Errorf("failed to create backup directory: %w", err)
	}

	backupPath := filepath.Join(dir, fmt.Sprintf("%s.%s.bak", filepath.Base(path), ksuid.New()))
	if err := os.WriteFile(backupPath, data, mode); err != nil {
		return "", fmt.Errorf("failed to write backup: %w", err)
	}
	return backupPath, nil
}
