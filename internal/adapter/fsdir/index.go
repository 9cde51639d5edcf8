package fsdir

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// writeSkillIndex writes the generated index document and patches the
// system config file to reference it. The patch is idempotent: an existing
// reference is left alone.
func (a *sysAdapter) writeSkillIndex(projectRoot string, content []byte) (string, error) {
	indexPath := filepath.Join(projectRoot, filepath.FromSlash(a.layout.IndexFile))
	if err := os.MkdirAll(filepath.Dir(indexPath), 0755); err != nil {
		return "", fmt.Errorf("creating parent of %s: %w", indexPath, err)
	}
	if err := os.WriteFile(indexPath, content, 0644); err != nil {
		return "", fmt.Errorf("writing %s: %w", indexPath, err)
	}

	if err := a.ensureIndexReference(projectRoot); err != nil {
		return "", err
	}
	return indexPath, nil
}

func (a *sysAdapter) ensureIndexReference(projectRoot string) error {
	configPath := filepath.Join(projectRoot, filepath.FromSlash(a.layout.ConfigFile))
	ref := filepath.ToSlash(a.layout.IndexFile)

	data, err := os.ReadFile(configPath)
	if err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("reading %s: %w", configPath, err)
	}
	if strings.Contains(string(data), ref) {
		return nil
	}

	var b strings.Builder
	b.Write(data)
	if len(data) > 0 && !strings.HasSuffix(string(data), "\n") {
		b.WriteString("\n")
	}
	if len(data) > 0 {
		b.WriteString("\n")
	}
	fmt.Fprintf(&b, "## Available Skills\n\nSee [%s](%s) for the full skill index.\n", ref, ref)

	if err := os.MkdirAll(filepath.Dir(configPath), 0755); err != nil {
		return fmt.Errorf("creating parent of %s: %w", configPath, err)
	}
	if err := os.WriteFile(configPath, []byte(b.String()), 0644); err != nil {
		return fmt.Errorf("writing %s: %w", configPath, err)
	}
	return nil
}
