package artifact

import (
	"bytes"
	"fmt"
	"strings"

	"go.yaml.in/yaml/v3"
)

const frontmatterDelim = "---"

// Frontmatter holds the YAML header fields shared by markdown-based
// artifacts (SKILL.md, agent and command definitions).
type Frontmatter struct {
	Name        string   `yaml:"name"`
	Description string   `yaml:"description,omitempty"`
	Version     string   `yaml:"version,omitempty"`
	Tags        []string `yaml:"tags,omitempty"`
}

// SplitFrontmatter separates a YAML frontmatter block from the document
// body. Documents without a frontmatter block return a nil Frontmatter and
// the input unchanged.
func SplitFrontmatter(data []byte) (*Frontmatter, []byte, error) {
	if !bytes.HasPrefix(data, []byte(frontmatterDelim+"\n")) &&
		!bytes.HasPrefix(data, []byte(frontmatterDelim+"\r\n")) {
		return nil, data, nil
	}

	rest := data[len(frontmatterDelim):]
	// Skip the newline after the opening delimiter.
	rest = bytes.TrimPrefix(rest, []byte("\r"))
	rest = bytes.TrimPrefix(rest, []byte("\n"))

	end := bytes.Index(rest, []byte("\n"+frontmatterDelim))
	if end < 0 {
		return nil, data, fmt.Errorf("unterminated frontmatter block")
	}

	header := rest[:end]
	body := rest[end+1+len(frontmatterDelim):]
	body = bytes.TrimPrefix(body, []byte("\r"))
	body = bytes.TrimPrefix(body, []byte("\n"))

	var fm Frontmatter
	if err := yaml.Unmarshal(header, &fm); err != nil {
		return nil, data, fmt.Errorf("parsing frontmatter: %w", err)
	}
	return &fm, body, nil
}

// RenderFrontmatter serializes a frontmatter block followed by body.
func RenderFrontmatter(fm *Frontmatter, body []byte) ([]byte, error) {
	header, err := yaml.Marshal(fm)
	if err != nil {
		return nil, fmt.Errorf("marshaling frontmatter: %w", err)
	}
	var buf bytes.Buffer
	buf.WriteString(frontmatterDelim + "\n")
	buf.Write(header)
	buf.WriteString(frontmatterDelim + "\n")
	buf.Write(body)
	return buf.Bytes(), nil
}

// FirstProseLine returns the first line of body that is not a heading,
// blockquote, list item, or blank, truncated to maxLen characters. Used to
// derive a short description when no explicit one exists.
func FirstProseLine(body string, maxLen int) string {
	for _, line := range strings.Split(body, "\n") {
		trimmed := strings.TrimSpace(line)
		if trimmed == "" {
			continue
		}
		switch trimmed[0] {
		case '#', '>', '-', '*', '+':
			continue
		}
		if len(trimmed) > maxLen {
			return trimmed[:maxLen]
		}
		return trimmed
	}
	return ""
}
