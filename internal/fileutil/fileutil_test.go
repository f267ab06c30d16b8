package fileutil

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

const helloSHA256 = "b94d27b9934d3e08a52e52d7da7dabfac484efe37a5380ee9088f7ace2efcde9"

func TestHashFile(t *testing.T) {
	src := filepath.Join(t.TempDir(), "hello.txt")
	if err := os.WriteFile(src, []byte("hello world"), 0o644); err != nil {
		t.Fatal(err)
	}

	sum, err := HashFile(src)
	if err != nil {
		t.Fatal(err)
	}
	if sum != helloSHA256 {
		t.Fatalf("HashFile = %s, want %s", sum, helloSHA256)
	}

	if _, err := HashFile(filepath.Join(t.TempDir(), "missing")); err == nil {
		t.Fatal("expected error for missing file")
	}
}

func TestStoreByHash(t *testing.T) {
	dir := t.TempDir()
	src := filepath.Join(dir, "Paper.PDF")
	if err := os.WriteFile(src, []byte("hello world"), 0o644); err != nil {
		t.Fatal(err)
	}
	storeDir := filepath.Join(dir, "files")

	sum, dst, err := StoreByHash(src, storeDir)
	if err != nil {
		t.Fatal(err)
	}
	if sum != helloSHA256 {
		t.Fatalf("sum = %s, want %s", sum, helloSHA256)
	}
	if dst != filepath.Join(storeDir, helloSHA256+".pdf") {
		t.Fatalf("dst = %s", dst)
	}
	got, err := os.ReadFile(dst)
	if err != nil {
		t.Fatal(err)
	}
	if string(got) != "hello world" {
		t.Fatalf("content mismatch: %q", got)
	}

	again, dstAgain, err := StoreByHash(src, storeDir)
	if err != nil {
		t.Fatal(err)
	}
	if again != sum || dstAgain != dst {
		t.Fatalf("second store = %s %s, want %s %s", again, dstAgain, sum, dst)
	}

	entries, err := os.ReadDir(storeDir)
	if err != nil {
		t.Fatal(err)
	}
	for _, entry := range entries {
		if strings.HasPrefix(entry.Name(), ".upload-") {
			t.Fatalf("temp file left behind: %s", entry.Name())
		}
	}
	if len(entries) != 1 {
		t.Fatalf("expected one stored file, got %d", len(entries))
	}
}

func TestStoreByHashRejectsDirectory(t *testing.T) {
	dir := t.TempDir()
	if _, _, err := StoreByHash(dir, filepath.Join(dir, "files")); err == nil {
		t.Fatal("expected error for directory source")
	}
}
