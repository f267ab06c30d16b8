// Package fileutil hashes uploaded files and keeps content-addressed copies of
// them under the data directory.
package fileutil

import (
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
)

// HashFile returns the hex SHA-256 of the file at path.
func HashFile(path string) (string, error) {
	in, err := os.Open(path)
	if err != nil {
		return "", err
	}
	defer in.Close()

	h := sha256.New()
	if _, err := io.Copy(h, in); err != nil {
		return "", err
	}
	return hex.EncodeToString(h.Sum(nil)), nil
}

// StoreByHash copies src into dir as "<sha256><ext>", where ext is src's
// lowercased extension. The digest is computed while copying and the copy is
// verified by size before it is moved into place. Storing identical content
// twice keeps the first copy.
func StoreByHash(src, dir string) (sum, dst string, err error) {
	srcInfo, err := os.Stat(src)
	if err != nil {
		return "", "", fmt.Errorf("stat source: %w", err)
	}
	if srcInfo.IsDir() {
		return "", "", fmt.Errorf("%s is a directory", src)
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", "", fmt.Errorf("create store directory: %w", err)
	}

	in, err := os.Open(src)
	if err != nil {
		return "", "", err
	}
	defer in.Close()

	tmp, err := os.CreateTemp(dir, ".upload-*")
	if err != nil {
		return "", "", fmt.Errorf("create temp file: %w", err)
	}
	tmpPath := tmp.Name()
	defer func() {
		if tmpPath != "" {
			_ = os.Remove(tmpPath)
		}
	}()

	hasher := sha256.New()
	written, err := io.Copy(io.MultiWriter(tmp, hasher), in)
	if closeErr := tmp.Close(); err == nil {
		err = closeErr
	}
	if err != nil {
		return "", "", fmt.Errorf("copy %s: %w", src, err)
	}
	if written != srcInfo.Size() {
		return "", "", fmt.Errorf("copy size mismatch: source %d bytes, copied %d bytes", srcInfo.Size(), written)
	}

	sum = hex.EncodeToString(hasher.Sum(nil))
	dst = filepath.Join(dir, sum+strings.ToLower(filepath.Ext(src)))
	if _, statErr := os.Stat(dst); statErr == nil {
		return sum, dst, nil
	} else if !errors.Is(statErr, os.ErrNotExist) {
		return "", "", fmt.Errorf("stat %s: %w", dst, statErr)
	}

	if err := os.Chmod(tmpPath, 0o644); err != nil {
		return "", "", fmt.Errorf("chmod stored file: %w", err)
	}
	if err := os.Rename(tmpPath, dst); err != nil {
		return "", "", fmt.Errorf("move stored file: %w", err)
	}
	tmpPath = ""
	return sum, dst, nil
}
