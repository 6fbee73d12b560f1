package backup

import (
	"fmt"
	"regexp"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

var frontmatterPattern = regexp.MustCompile(`(?s)^---\n(.*?)\n---\n?(.*)`)

// TimeLayout is how timestamps appear in exported frontmatter.
const TimeLayout = "2006-01-02 15:04:05"

// Frontmatter is the metadata header of an exported markdown note.
type Frontmatter struct {
	ID       string   `yaml:"id"`
	Title    string   `yaml:"title"`
	Folder   string   `yaml:"folder"`
	Tags     []string `yaml:"tags,flow"`
	Archived bool     `yaml:"archived,omitempty"`
	Reminder string   `yaml:"reminder,omitempty"`
	Created  string   `yaml:"created"`
	Updated  string   `yaml:"updated"`
}

// ParseFrontmatter splits a markdown file into its header and body. A file
// without a header returns a nil Frontmatter and the whole content as
// body.
func ParseFrontmatter(content string) (*Frontmatter, string, error) {
	matches := frontmatterPattern.FindStringSubmatch(content)
	if len(matches) != 3 {
		return nil, content, nil
	}

	var fm Frontmatter
	if err := yaml.Unmarshal([]byte(matches[1]), &fm); err != nil {
		return nil, content, fmt.Errorf("parse frontmatter: %w", err)
	}
	if fm.Tags == nil {
		fm.Tags = []string{}
	}
	return &fm, matches[2], nil
}

// BuildFrontmatter renders the header with fields in a fixed order so
// exports diff cleanly.
func BuildFrontmatter(fm *Frontmatter) string {
	var sb strings.Builder

	sb.WriteString("---\n")
	sb.WriteString(fmt.Sprintf("id: %s\n", fm.ID))
	sb.WriteString(fmt.Sprintf("title: %s\n", yamlScalar(fm.Title)))
	if fm.Folder != "" {
		sb.WriteString(fmt.Sprintf("folder: %s\n", yamlScalar(fm.Folder)))
	}
	sb.WriteString(fmt.Sprintf("tags: %s\n", yamlFlowList(fm.Tags)))
	if fm.Archived {
		sb.WriteString("archived: true\n")
	}
	if fm.Reminder != "" {
		sb.WriteString(fmt.Sprintf("reminder: %s\n", fm.Reminder))
	}
	sb.WriteString(fmt.Sprintf("created: %s\n", fm.Created))
	sb.WriteString(fmt.Sprintf("updated: %s\n", fm.Updated))
	sb.WriteString("---")

	return sb.String()
}

// BuildDocument joins a header and a markdown body.
func BuildDocument(fm *Frontmatter, body string) string {
	return BuildFrontmatter(fm) + "\n\n" + body
}

// FormatTime renders a timestamp for frontmatter; zero times render empty.
func FormatTime(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Format(TimeLayout)
}

// yamlScalar quotes values that would otherwise change meaning in yaml.
func yamlScalar(s string) string {
	if s == "" || strings.ContainsAny(s, ":#\"'\n{}[]&*!|>%@`") {
		data, err := yaml.Marshal(s)
		if err != nil {
			return s
		}
		return strings.TrimRight(string(data), "\n")
	}
	return s
}

func yamlFlowList(items []string) string {
	if len(items) == 0 {
		return "[]"
	}
	quoted := make([]string, len(items))
	for i, item := range items {
		quoted[i] = yamlScalar(item)
	}
	return "[" + strings.Join(quoted, ", ") + "]"
}
