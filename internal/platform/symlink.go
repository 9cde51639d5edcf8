package platform

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"runtime"
	"strings"

	"github.com/aicsync-labs/aicsync/internal/branding"
)

// CreateSymlink creates a symbolic link at link pointing to target. The
// target may be relative to link's parent directory, which keeps mirrored
// trees resolving correctly when the whole project is relocated.
// On Windows it attempts os.Symlink first (requires developer mode), then
// falls back to copying the target and writing a .target sidecar.
func CreateSymlink(target, link string) error {
	if runtime.GOOS != "windows" {
		return os.Symlink(target, link)
	}

	if err := os.Symlink(target, link); err == nil {
		return nil
	}

	if err := copyForSymlink(target, link); err != nil {
		return fmt.Errorf("symlink fallback (copy) failed: %w", err)
	}

	// Sidecar lets ReadSymlinkTarget recover the original target.
	sidecar := link + ".target"
	_ = os.WriteFile(sidecar, []byte(target), 0644)
	return nil
}

// RemoveSymlink removes a symlink (or its fallback copy and sidecar).
func RemoveSymlink(path string) error {
	err := os.Remove(path)
	os.Remove(path + ".target") // best-effort sidecar cleanup
	return err
}

// ReadSymlinkTarget returns the target of a symlink. On Windows, if
// os.Readlink fails because a copy fallback was used, it reads the
// .target sidecar instead.
func ReadSymlinkTarget(path string) (string, error) {
	target, err := os.Readlink(path)
	if err == nil {
		return target, nil
	}

	if runtime.GOOS != "windows" {
		return "", err
	}

	data, readErr := os.ReadFile(path + ".target")
	if readErr != nil {
		return "", fmt.Errorf("readlink failed and no .target sidecar found: %w", err)
	}
	return strings.TrimSpace(string(data)), nil
}

// IsSymlink reports whether path is a symbolic link, without following it.
func IsSymlink(path string) bool {
	info, err := os.Lstat(path)
	if err != nil {
		return false
	}
	return info.Mode()&os.ModeSymlink != 0
}

// ResolveLink returns the absolute path a symlink at path points to,
// resolving relative targets against path's parent directory.
func ResolveLink(path string) (string, error) {
	target, err := ReadSymlinkTarget(path)
	if err != nil {
		return "", err
	}
	if !filepath.IsAbs(target) {
		target = filepath.Join(filepath.Dir(path), target)
	}
	return filepath.Abs(target)
}

// RelativeLink computes the link target to store when linking from link's
// location to target: a path relative to link's parent directory. Falls
// back to the absolute target when no relative path exists (e.g., across
// Windows volumes).
func RelativeLink(target, link string) string {
	absTarget, err := filepath.Abs(target)
	if err != nil {
		return target
	}
	rel, err := filepath.Rel(filepath.Dir(link), absTarget)
	if err != nil {
		return absTarget
	}
	return rel
}

// IsSymlinkSupported reports whether the current platform supports native
// symlinks. On Windows this attempts a test symlink to check developer mode.
func IsSymlinkSupported() bool {
	if runtime.GOOS != "windows" {
		return true
	}

	tmpDir := os.TempDir()
	link := filepath.Join(tmpDir, "."+branding.CLIName()+"-symlink-test")
	defer os.Remove(link)

	return os.Symlink(tmpDir, link) == nil
}

// copyForSymlink copies target (file or directory) to dst for the Windows
// fallback path. Relative targets resolve against dst's parent directory.
func copyForSymlink(target, dst string) error {
	resolved := target
	if !filepath.IsAbs(target) {
		resolved = filepath.Join(filepath.Dir(dst), target)
	}

	info, err := os.Stat(resolved)
	if err != nil {
		return err
	}
	if info.IsDir() {
		return copyTree(resolved, dst)
	}
	return copyFile(resolved, dst)
}

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
	defer out.Close()

	if _, err := io.Copy(out, in); err != nil {
		return err
	}
	return out.Close()
}

func copyTree(src, dst string) error {
	if err := os.MkdirAll(dst, 0755); err != nil {
		return err
	}
	entries, err := os.ReadDir(src)
	if err != nil {
		return err
	}
	for _, entry := range entries {
		s := filepath.Join(src, entry.Name())
		d := filepath.Join(dst, entry.Name())
		if entry.IsDir() {
			if err := copyTree(s, d); err != nil {
				return err
			}
		} else if entry.Type().IsRegular() {
			if err := copyFile(s, d); err != nil {
				return err
			}
		}
	}
	return nil
}
