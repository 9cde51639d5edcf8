package skillindex

import (
	"strings"
	"testing"

	"github.com/aicsync-labs/aicsync/internal/artifact"
)

func TestCategorize(t *testing.T) {
	tests := []struct {
		name string
		desc string
		want string
	}{
		{"unit-test-writer", "", "testing"},
		{"auth-helper", "hardens login flows", "security"},
		{"changelog-writer", "", "documentation"},
		{"sprint-planner", "", "planning"},
		{"flutter-helper", "", "mobile"},
		{"api-designer", "", "backend"},
		{"react-components", "", "frontend"},
		{"deploy-runner", "", "devops"},
		{"refactor-assistant", "", "development"},
		{"misc-helper", "something unmatched", "general"},
		// Case-insensitive match on the description.
		{"helper", "Improves TEST coverage", "testing"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Categorize(tt.name, tt.desc); got != tt.want {
				t.Errorf("Categorize(%q, %q) = %q, want %q", tt.name, tt.desc, got, tt.want)
			}
		})
	}
}

func TestCategorizeFirstMatchWins(t *testing.T) {
	// "api" (backend) and "test" (testing) both match; testing is listed
	// first so it must win, regardless of keyword position in the name.
	if got := Categorize("api-test-helper", ""); got != "testing" {
		t.Errorf("Categorize = %q, want testing", got)
	}
}

func skillArt(name, desc string) artifact.Artifact {
	return artifact.Artifact{
		ID:          artifact.MakeID("claude", artifact.TypeSkill, name),
		Name:        name,
		Type:        artifact.TypeSkill,
		Description: desc,
	}
}

func TestGenerate(t *testing.T) {
	arts := []artifact.Artifact{
		skillArt("deploy-runner", "Runs deployments"),
		skillArt("code-review", "Reviews code changes"),
		{ID: "claude:command:x", Name: "x", Type: artifact.TypeCommand, Description: "not a skill"},
	}

	res := Generate(arts)
	if res.SkillCount != 2 {
		t.Fatalf("SkillCount = %d, want 2 (non-skills ignored)", res.SkillCount)
	}

	content := res.Content
	if !strings.HasPrefix(content, "# Skill Index") {
		t.Errorf("missing title:\n%s", content)
	}
	if !strings.Contains(content, "| code-review | Reviews code changes |") {
		t.Errorf("missing table row:\n%s", content)
	}
	// Table is alphabetical.
	if strings.Index(content, "| code-review |") > strings.Index(content, "| deploy-runner |") {
		t.Error("quick-reference table not alphabetical")
	}
	// Section headings are title-cased category names.
	if !strings.Contains(content, "## Devops") || !strings.Contains(content, "## Development") {
		t.Errorf("missing category sections:\n%s", content)
	}
	if strings.Contains(content, "## General") {
		t.Error("empty fallback category rendered")
	}

	wantCats := []string{"devops", "development"}
	if len(res.Categories) != 2 || res.Categories[0] != wantCats[0] || res.Categories[1] != wantCats[1] {
		t.Errorf("Categories = %v, want %v", res.Categories, wantCats)
	}
}

func TestGenerateTruncatesDescriptions(t *testing.T) {
	long := strings.Repeat("d", 150)
	res := Generate([]artifact.Artifact{skillArt("misc", long)})

	if strings.Contains(res.Content, long) {
		t.Error("description not truncated")
	}
	if !strings.Contains(res.Content, strings.Repeat("d", descriptionLimit)) {
		t.Error("truncated description missing")
	}
}

func TestGenerateEmpty(t *testing.T) {
	res := Generate(nil)
	if res.SkillCount != 0 {
		t.Errorf("SkillCount = %d", res.SkillCount)
	}
	if !strings.Contains(res.Content, "0 skills available") {
		t.Errorf("empty index content:\n%s", res.Content)
	}
	if len(res.Categories) != 0 {
		t.Errorf("Categories = %v", res.Categories)
	}
}

func TestGenerateDeterministic(t *testing.T) {
	arts := []artifact.Artifact{
		skillArt("b-skill", "second"),
		skillArt("a-skill", "first"),
	}
	first := Generate(arts)
	second := Generate([]artifact.Artifact{arts[1], arts[0]})
	if first.Content != second.Content {
		t.Error("generation depends on input order")
	}
}
