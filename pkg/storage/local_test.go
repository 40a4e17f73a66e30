package storage

import (
	"context"
	"errors"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/sdejongh/sizediff/pkg/models"
)

func writeTree(t *testing.T, root string, files map[string]string) {
	t.Helper()
	for path, content := range files {
		fullPath := filepath.Join(root, path)
		if err := os.MkdirAll(filepath.Dir(fullPath), 0755); err != nil {
			t.Fatalf("failed to create dir: %v", err)
		}
		if err := os.WriteFile(fullPath, []byte(content), 0644); err != nil {
			t.Fatalf("failed to create file: %v", err)
		}
	}
}

// TestNewLocal tests the Local backend constructor
func TestNewLocal(t *testing.T) {
	t.Run("ValidDirectory", func(t *testing.T) {
		tempDir := t.TempDir()

		local, err := NewLocal(tempDir)
		if err != nil {
			t.Fatalf("NewLocal() error = %v", err)
		}
		defer local.Close()

		if !filepath.IsAbs(local.Root()) {
			t.Errorf("Root() = %s, want absolute path", local.Root())
		}
	})

	t.Run("NonExistentPath", func(t *testing.T) {
		_, err := NewLocal(filepath.Join(t.TempDir(), "missing"))
		var notDir *models.NotADirectoryError
		if !errors.As(err, &notDir) {
			t.Errorf("NewLocal() error = %v, want NotADirectoryError", err)
		}
	})

	t.Run("FileNotDirectory", func(t *testing.T) {
		tempDir := t.TempDir()
		file := filepath.Join(tempDir, "index.html")
		if err := os.WriteFile(file, []byte("<html>"), 0644); err != nil {
			t.Fatalf("failed to create file: %v", err)
		}

		_, err := NewLocal(file)
		var notDir *models.NotADirectoryError
		if !errors.As(err, &notDir) {
			t.Errorf("NewLocal() error = %v, want NotADirectoryError", err)
		}
	})
}

// TestLocalList tests the List method
func TestLocalList(t *testing.T) {
	tempDir := t.TempDir()
	writeTree(t, tempDir, map[string]string{
		"b.js":           "b",
		"a.js":           "a",
		"assets/app.css": "body{}",
		"assets/img/x":   "x",
	})

	local, err := NewLocal(tempDir)
	if err != nil {
		t.Fatalf("NewLocal() error = %v", err)
	}
	defer local.Close()

	ctx := context.Background()

	t.Run("ListAll", func(t *testing.T) {
		entries, err := local.List(ctx, "")
		if err != nil {
			t.Fatalf("List() error = %v", err)
		}

		var got []string
		for _, e := range entries {
			got = append(got, filepath.ToSlash(e.RelativePath))
		}
		want := []string{".", "a.js", "assets", "assets/app.css", "assets/img", "assets/img/x", "b.js"}
		if len(got) != len(want) {
			t.Fatalf("List() = %v, want %v", got, want)
		}
		for i := range want {
			if got[i] != want[i] {
				t.Errorf("entry %d = %s, want %s", i, got[i], want[i])
			}
		}

		if !entries[0].IsDir {
			t.Error("root entry should be a directory")
		}
		if !entries[1].IsRegular() || entries[1].Size != 1 {
			t.Errorf("a.js = %+v, want regular file of size 1", entries[1])
		}
	})

	t.Run("ContextCancellation", func(t *testing.T) {
		cancelled, cancel := context.WithCancel(ctx)
		cancel()

		if _, err := local.List(cancelled, ""); !errors.Is(err, context.Canceled) {
			t.Errorf("List() error = %v, want context.Canceled", err)
		}
	})
}

// TestLocalRead tests the Read method
func TestLocalRead(t *testing.T) {
	tempDir := t.TempDir()
	writeTree(t, tempDir, map[string]string{"index.html": "<html></html>"})

	local, err := NewLocal(tempDir)
	if err != nil {
		t.Fatalf("NewLocal() error = %v", err)
	}
	ctx := context.Background()

	t.Run("ReadExistingFile", func(t *testing.T) {
		reader, err := local.Read(ctx, "index.html")
		if err != nil {
			t.Fatalf("Read() error = %v", err)
		}
		defer reader.Close()

		data, err := io.ReadAll(reader)
		if err != nil {
			t.Fatalf("ReadAll() error = %v", err)
		}
		if string(data) != "<html></html>" {
			t.Errorf("Read() content = %q", data)
		}
	})

	t.Run("ReadNonExistentFile", func(t *testing.T) {
		_, err := local.Read(ctx, "missing.html")
		var fsErr *models.FileSystemError
		if !errors.As(err, &fsErr) {
			t.Errorf("Read() error = %v, want FileSystemError", err)
		}
	})
}

// TestLocalSymlinkedRoot tests that a root reached through a symlink is walked
func TestLocalSymlinkedRoot(t *testing.T) {
	tempDir := t.TempDir()
	realDir := filepath.Join(tempDir, "real")
	writeTree(t, realDir, map[string]string{"app.js": "console.log(1)"})

	link := filepath.Join(tempDir, "dist")
	if err := os.Symlink(realDir, link); err != nil {
		t.Skipf("symlinks not supported: %v", err)
	}

	local, err := NewLocal(link)
	if err != nil {
		t.Fatalf("NewLocal() error = %v", err)
	}

	entries, err := local.List(context.Background(), "")
	if err != nil {
		t.Fatalf("List() error = %v", err)
	}
	if len(entries) != 2 {
		t.Fatalf("List() returned %d entries, want 2: %+v", len(entries), entries)
	}
	if !entries[0].IsDir {
		t.Error("root entry should be a directory")
	}
	if entries[1].RelativePath != "app.js" || !entries[1].IsRegular() {
		t.Errorf("second entry = %+v, want regular app.js", entries[1])
	}
}

// TestBackendInterface verifies Local implements Backend
func TestBackendInterface(t *testing.T) {
	var _ Backend = (*Local)(nil)
}
