package fileutil

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"gopkg.in/yaml.v3"
)

func TestAtomicWriteFile(t *testing.T) {
	tests := []struct {
		name string
		data []byte
		perm os.FileMode
	}{
		{name: "successful write", data: []byte("hello world\n"), perm: 0644},
		{name: "empty data", data: []byte{}, perm: 0644},
		{name: "private permissions", data: []byte("secret\n"), perm: 0600},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "test-file")

			if err := AtomicWriteFile(path, tt.data, tt.perm); err != nil {
				t.Fatalf("AtomicWriteFile() error = %v", err)
			}

			got, err := os.ReadFile(path)
			if err != nil {
				t.Fatalf("reading file: %v", err)
			}
			if string(got) != string(tt.data) {
				t.Errorf("content = %q, want %q", got, tt.data)
			}

			info, err := os.Stat(path)
			if err != nil {
				t.Fatalf("stat: %v", err)
			}
			if info.Mode().Perm() != tt.perm {
				t.Errorf("perm = %v, want %v", info.Mode().Perm(), tt.perm)
			}
		})
	}
}

func TestAtomicWriteFile_DirectoryNotExists(t *testing.T) {
	path := filepath.Join(t.TempDir(), "missing", "file")
	if err := AtomicWriteFile(path, []byte("x"), 0644); err == nil {
		t.Error("AtomicWriteFile() expected error for missing directory")
	}
}

func TestAtomicWriteFile_OverwriteExisting(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "file")

	if err := os.WriteFile(path, []byte("old"), 0644); err != nil {
		t.Fatal(err)
	}
	if err := AtomicWriteFile(path, []byte("new"), 0644); err != nil {
		t.Fatalf("AtomicWriteFile() error = %v", err)
	}

	got, _ := os.ReadFile(path)
	if string(got) != "new" {
		t.Errorf("content = %q, want %q", got, "new")
	}

	entries, _ := os.ReadDir(dir)
	for _, e := range entries {
		if strings.HasPrefix(e.Name(), ".crosspost-atomic-") {
			t.Errorf("temp file left behind: %s", e.Name())
		}
	}
}

func TestAtomicWriteYAML(t *testing.T) {
	type entry struct {
		Path     string `yaml:"path"`
		Platform string `yaml:"platform"`
	}

	path := filepath.Join(t.TempDir(), "ledger.yaml")
	if err := AtomicWriteYAML(path, []entry{{Path: "posts/a.md", Platform: "devto"}}); err != nil {
		t.Fatalf("AtomicWriteYAML() error = %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.HasSuffix(string(data), "\n") {
		t.Errorf("content %q missing trailing newline", data)
	}

	var got []entry
	if err := yaml.Unmarshal(data, &got); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if len(got) != 1 || got[0].Path != "posts/a.md" || got[0].Platform != "devto" {
		t.Errorf("round trip = %+v", got)
	}
}

func TestAtomicWriteYAML_Unmarshalable(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.yaml")
	err := AtomicWriteYAML(path, map[string]any{"fn": func() {}})
	if err == nil {
		t.Fatal("AtomicWriteYAML() expected error for func value")
	}
	if _, statErr := os.Stat(path); statErr == nil {
		t.Error("file should not exist after failed marshal")
	}
}
