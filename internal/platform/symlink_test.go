package platform

import (
	"os"
	"path/filepath"
	"runtime"
	"testing"
)

func TestCreateAndResolveSymlink(t *testing.T) {
	if runtime.GOOS == "windows" && !IsSymlinkSupported() {
		t.Skip("symlinks not supported on this host")
	}

	dir := t.TempDir()
	target := filepath.Join(dir, "source.md")
	if err := os.WriteFile(target, []byte("content\n"), 0644); err != nil {
		t.Fatal(err)
	}
	link := filepath.Join(dir, "mirror", "link.md")
	if err := os.MkdirAll(filepath.Dir(link), 0755); err != nil {
		t.Fatal(err)
	}

	rel := RelativeLink(target, link)
	if err := CreateSymlink(rel, link); err != nil {
		t.Fatalf("CreateSymlink: %v", err)
	}

	if !IsSymlink(link) {
		t.Error("IsSymlink = false for created link")
	}

	got, err := ReadSymlinkTarget(link)
	if err != nil {
		t.Fatalf("ReadSymlinkTarget: %v", err)
	}
	if got != rel {
		t.Errorf("target = %q, want %q", got, rel)
	}

	resolved, err := ResolveLink(link)
	if err != nil {
		t.Fatalf("ResolveLink: %v", err)
	}
	if resolved != target {
		t.Errorf("resolved = %q, want %q", resolved, target)
	}

	// The link must read through to the source content.
	data, err := os.ReadFile(link)
	if err != nil {
		t.Fatal(err)
	}
	if string(data) != "content\n" {
		t.Errorf("read through link = %q", data)
	}
}

func TestRemoveSymlinkLeavesTarget(t *testing.T) {
	if runtime.GOOS == "windows" && !IsSymlinkSupported() {
		t.Skip("symlinks not supported on this host")
	}

	dir := t.TempDir()
	target := filepath.Join(dir, "source.md")
	if err := os.WriteFile(target, []byte("x"), 0644); err != nil {
		t.Fatal(err)
	}
	link := filepath.Join(dir, "link.md")
	if err := CreateSymlink(target, link); err != nil {
		t.Fatal(err)
	}

	if err := RemoveSymlink(link); err != nil {
		t.Fatalf("RemoveSymlink: %v", err)
	}
	if _, err := os.Lstat(link); !os.IsNotExist(err) {
		t.Error("link still present")
	}
	if _, err := os.Stat(target); err != nil {
		t.Errorf("target removed with the link: %v", err)
	}
}

func TestIsSymlinkFalseForRegularFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "plain.md")
	if err := os.WriteFile(path, []byte("x"), 0644); err != nil {
		t.Fatal(err)
	}
	if IsSymlink(path) {
		t.Error("regular file reported as symlink")
	}
	if IsSymlink(filepath.Join(t.TempDir(), "absent")) {
		t.Error("missing path reported as symlink")
	}
}

func TestRelativeLink(t *testing.T) {
	dir := t.TempDir()

	tests := []struct {
		name   string
		target string
		link   string
		want   string
	}{
		{
			"sibling dirs",
			filepath.Join(dir, ".claude", "skills", "review"),
			filepath.Join(dir, ".mirror", "skills", "review"),
			filepath.Join("..", "..", ".claude", "skills", "review"),
		},
		{
			"same dir",
			filepath.Join(dir, "a.md"),
			filepath.Join(dir, "b.md"),
			"a.md",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := RelativeLink(tt.target, tt.link); got != tt.want {
				t.Errorf("RelativeLink = %q, want %q", got, tt.want)
			}
		})
	}
}
