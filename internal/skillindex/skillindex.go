// Package skillindex derives a condensed, categorized cross-reference
// document from skill artifacts, for systems that have no native skill
// concept. Generation is a pure function of the scanned artifacts.
package skillindex

import (
	"fmt"
	"sort"
	"strings"

	"github.com/aicsync-labs/aicsync/internal/artifact"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// category pairs a name with the keywords that select it. The list is
// ordered and first match wins, so categorization is deterministic.
type category struct {
	name     string
	keywords []string
}

var categories = []category{
	{"testing", []string{"test", "tdd", "coverage", "qa"}},
	{"security", []string{"secur", "vulnerab", "auth", "crypt"}},
	{"documentation", []string{"doc", "readme", "changelog"}},
	{"planning", []string{"plan", "roadmap", "estimate"}},
	{"mobile", []string{"mobile", "ios", "android", "flutter"}},
	{"backend", []string{"backend", "api", "database", "sql", "server"}},
	{"frontend", []string{"frontend", "ui", "react", "css", "component"}},
	{"devops", []string{"devops", "deploy", "docker", "kubernetes", "ci"}},
	{"development", []string{"develop", "code", "debug", "refactor", "git"}},
}

const fallbackCategory = "general"

// descriptionLimit caps per-skill descriptions in the index.
const descriptionLimit = 100

var titleCaser = cases.Title(language.English)

// Result is a generated index document plus its derived facts.
type Result struct {
	Content    string
	SkillCount int
	Categories []string
}

// Categorize assigns exactly one category by testing the ordered keyword
// groups against the lowercased name and description.
func Categorize(name, description string) string {
	haystack := strings.ToLower(name + " " + description)
	for _, c := range categories {
		for _, kw := range c.keywords {
			if strings.Contains(haystack, kw) {
				return c.name
			}
		}
	}
	return fallbackCategory
}

// Generate builds the index from skill-typed artifacts. Other types are
// ignored. Output is a flat alphabetical quick-reference table followed by
// per-category sections.
func Generate(arts []artifact.Artifact) *Result {
	type entry struct {
		name, desc, cat string
	}
	var skills []entry
	for _, a := range arts {
		if a.Type != artifact.TypeSkill {
			continue
		}
		desc := a.Description
		if len(desc) > descriptionLimit {
			desc = desc[:descriptionLimit]
		}
		skills = append(skills, entry{
			name: a.Name,
			desc: desc,
			cat:  Categorize(a.Name, desc),
		})
	}
	sort.Slice(skills, func(i, j int) bool { return skills[i].name < skills[j].name })

	byCategory := make(map[string][]entry)
	for _, s := range skills {
		byCategory[s.cat] = append(byCategory[s.cat], s)
	}

	var b strings.Builder
	b.WriteString("# Skill Index\n\n")
	fmt.Fprintf(&b, "%d skills available. Generated — do not edit by hand.\n\n", len(skills))

	b.WriteString("| Skill | Description |\n")
	b.WriteString("|-------|-------------|\n")
	for _, s := range skills {
		fmt.Fprintf(&b, "| %s | %s |\n", s.name, s.desc)
	}

	var present []string
	for _, c := range categories {
		if len(byCategory[c.name]) > 0 {
			present = append(present, c.name)
		}
	}
	if len(byCategory[fallbackCategory]) > 0 {
		present = append(present, fallbackCategory)
	}

	for _, cat := range present {
		fmt.Fprintf(&b, "\n## %s\n\n", titleCaser.String(cat))
		for _, s := range byCategory[cat] {
			if s.desc != "" {
				fmt.Fprintf(&b, "- **%s**: %s\n", s.name, s.desc)
			} else {
				fmt.Fprintf(&b, "- **%s**\n", s.name)
			}
		}
	}

	return &Result{
		Content:    b.String(),
		SkillCount: len(skills),
		Categories: present,
	}
}
