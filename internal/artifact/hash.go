package artifact

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// HashBytes returns the hex SHA-256 digest of content.
func HashBytes(content []byte) string {
	sum := sha256.Sum256(content)
	return hex.EncodeToString(sum[:])
}

// HashFile returns the hex SHA-256 digest of a single file's contents.
func HashFile(path string) (string, error) {
	f, err := os.Open(path)
	if err != nil {
		return "", fmt.Errorf("opening %s for hashing: %w", path, err)
	}
	defer f.Close()

	h := sha256.New()
	if _, err := io.Copy(h, f); err != nil {
		return "", fmt.Errorf("hashing %s: %w", path, err)
	}
	return hex.EncodeToString(h.Sum(nil)), nil
}

// HashDir returns a deterministic hex SHA-256 digest of a directory tree.
// Each regular file contributes its slash-normalized relative path and its
// content digest; entries are sorted so the result is stable across
// platforms and walk orders. Symlinks and special files are skipped.
func HashDir(root string) (string, error) {
	type entry struct {
		rel string
		sum string
	}
	var entries []entry

	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.Type().IsRegular() {
			return nil
		}
		rel, err := filepath.Rel(root, path)
		if err != nil {
			return err
		}
		sum, err := HashFile(path)
		if err != nil {
			return err
		}
		entries = append(entries, entry{rel: filepath.ToSlash(rel), sum: sum})
		return nil
	})
	if err != nil {
		return "", fmt.Errorf("walking %s for hashing: %w", root, err)
	}

	sort.Slice(entries, func(i, j int) bool { return entries[i].rel < entries[j].rel })

	h := sha256.New()
	for _, e := range entries {
		io.WriteString(h, e.rel)
		io.WriteString(h, "\x00")
		io.WriteString(h, e.sum)
		io.WriteString(h, "\n")
	}
	return hex.EncodeToString(h.Sum(nil)), nil
}

// HashPath hashes a file or directory depending on what path points at.
func HashPath(path string) (string, error) {
	info, err := os.Stat(path)
	if err != nil {
		return "", fmt.Errorf("stat %s: %w", path, err)
	}
	if info.IsDir() {
		return HashDir(path)
	}
	return HashFile(path)
}

// MakeID builds a stable artifact identity from system, type, and name.
// The same logical artifact hashes to the same ID on every scan.
func MakeID(system string, t Type, name string) string {
	return strings.Join([]string{system, string(t), name}, ":")
}
