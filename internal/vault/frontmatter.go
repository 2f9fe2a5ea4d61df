package vault

import (
	"strings"

	"gopkg.in/yaml.v3"
)

const frontmatterDelimiter = "---"

// frontmatter is the subset of page frontmatter this server consumes.
type frontmatter struct {
	CourseID string
	Tags     []string
}

// rawFrontmatter tolerates the loose shapes Obsidian users write: tags
// may be a single scalar or a list.
type rawFrontmatter struct {
	CourseID string `yaml:"course_id"`
	Tags     any    `yaml:"tags"`
}

// parseFrontmatter extracts the leading YAML frontmatter block, if any.
// Malformed frontmatter yields empty metadata, not an error.
func parseFrontmatter(content string) frontmatter {
	body, ok := frontmatterBlock(content)
	if !ok {
		return frontmatter{}
	}

	var raw rawFrontmatter
	if err := yaml.Unmarshal([]byte(body), &raw); err != nil {
		return frontmatter{}
	}

	return frontmatter{
		CourseID: raw.CourseID,
		Tags:     normalizeTags(raw.Tags),
	}
}

// frontmatterBlock returns the YAML between the opening and closing
// "---" delimiters. The opening delimiter must be the document's first
// line; the closing one must sit on its own line.
func frontmatterBlock(content string) (string, bool) {
	if !strings.HasPrefix(content, frontmatterDelimiter+"\n") {
		return "", false
	}
	rest := content[len(frontmatterDelimiter)+1:]
	i := strings.Index(rest, "\n"+frontmatterDelimiter)
	if i < 0 {
		return "", false
	}
	after := rest[i+1+len(frontmatterDelimiter):]
	if after != "" && !strings.HasPrefix(after, "\n") {
		return "", false
	}
	return rest[:i], true
}

func normalizeTags(v any) []string {
	switch v := v.(type) {
	case string:
		if v == "" {
			return nil
		}
		return []string{v}
	case []any:
		var tags []string
		for _, item := range v {
			if s, ok := item.(string); ok && s != "" {
				tags = append(tags, s)
			}
		}
		return tags
	default:
		return nil
	}
}
