// Package manifest parses the YAML frontmatter header of a SKILL.md
// document. The header block sits at the very top of the file between two
// `---` lines; everything after it is the skill body and is left untouched.
package manifest

import (
	"errors"
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"
)

const delimiter = "---"

// ErrNoFrontmatter is returned when a document does not start with a
// frontmatter block.
var ErrNoFrontmatter = errors.New("missing frontmatter header")

// Manifest is the metadata carried in a skill's frontmatter.
type Manifest struct {
	Name        string `yaml:"name"`
	Description string `yaml:"description"`
	Version     string `yaml:"version"`
	License     string `yaml:"license"`
}

// Parse extracts and decodes the frontmatter of doc. The source argument
// names the document in error messages only.
func Parse(source string, doc []byte) (*Manifest, error) {
	header, err := frontmatter(string(doc))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", source, err)
	}

	var m Manifest
	if err := yaml.Unmarshal([]byte(header), &m); err != nil {
		return nil, fmt.Errorf("%s: invalid frontmatter: %w", source, err)
	}

	if strings.TrimSpace(m.Name) == "" {
		return nil, fmt.Errorf("%s: frontmatter has no name", source)
	}
	m.Name = strings.TrimSpace(m.Name)

	return &m, nil
}

// Hint returns the description collapsed to a single line for display in a
// picker row. Internal runs of whitespace (including newlines) become single
// spaces.
func (m *Manifest) Hint() string {
	return strings.Join(strings.Fields(m.Description), " ")
}

// frontmatter returns the YAML between the opening and closing delimiter
// lines. The opening delimiter must be the first line of the document.
func frontmatter(doc string) (string, error) {
	doc = strings.TrimPrefix(doc, "\ufeff") // Tolerate a BOM.

	first, rest, found := strings.Cut(doc, "\n")
	if !found || strings.TrimRight(first, "\r") != delimiter {
		return "", ErrNoFrontmatter
	}

	var header []string
	for {
		line, tail, ok := strings.Cut(rest, "\n")
		if !ok && strings.TrimRight(rest, "\r") != delimiter {
			return "", fmt.Errorf("%w: unterminated header block", ErrNoFrontmatter)
		}
		if strings.TrimRight(line, "\r") == delimiter {
			return strings.Join(header, "\n"), nil
		}
		header = append(header, line)
		rest = tail
	}
}
