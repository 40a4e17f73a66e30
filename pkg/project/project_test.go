package project

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoad(t *testing.T) {
	tests := []struct {
		name     string
		manifest string
		want     string
		wantErr  bool
	}{
		{"named package", `{"name": "my-app", "version": "1.2.0"}`, "my-app", false},
		{"missing name", `{"version": "1.2.0"}`, Unknown, false},
		{"invalid json", `{"name":`, "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dir := t.TempDir()
			if err := os.WriteFile(filepath.Join(dir, ManifestFile), []byte(tt.manifest), 0644); err != nil {
				t.Fatalf("failed to write manifest: %v", err)
			}

			pkg, err := Load(dir)
			if (err != nil) != tt.wantErr {
				t.Fatalf("Load() error = %v, wantErr %v", err, tt.wantErr)
			}
			if tt.wantErr {
				return
			}
			if got := pkg.Name(); got != tt.want {
				t.Errorf("Name() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestLoadMissingManifest(t *testing.T) {
	pkg, err := Load(t.TempDir())
	if err == nil {
		t.Fatal("Load() should fail without package.json")
	}
	if got := pkg.Name(); got != Unknown {
		t.Errorf("nil package Name() = %q, want %q", got, Unknown)
	}
}

func TestNameOf(t *testing.T) {
	var missing *Package
	tests := []struct {
		name string
		src  Source
		want string
	}{
		{"nil source", nil, Unknown},
		{"static", Static("web"), "web"},
		{"empty static", Static(""), Unknown},
		{"nil package", missing, Unknown},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := NameOf(tt.src); got != tt.want {
				t.Errorf("NameOf() = %q, want %q", got, tt.want)
			}
		})
	}
}
