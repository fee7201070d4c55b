package docdb

import (
	"regexp"
	"strings"
)

// Cleaner strips boilerplate from markdown before it is stored.
type Cleaner struct {
	patterns    []*regexp.Regexp
	newlines    *regexp.Regexp
	replacement string
}

// NewCleaner compiles the remove patterns. Patterns match case-insensitively
// and "." matches newlines. Runs of more than maxNewlines line breaks
// (ignoring whitespace between them) collapse to maxNewlines; zero disables
// collapsing.
func NewCleaner(patterns []string, maxNewlines int) (*Cleaner, error) {
	c := &Cleaner{}
	for _, p := range patterns {
		re, err := regexp.Compile("(?is)" + p)
		if err != nil {
			return nil, Errorf(EINVALID, "invalid remove pattern %q: %v", p, err)
		}
		c.patterns = append(c.patterns, re)
	}

	if maxNewlines > 0 {
		c.newlines = regexp.MustCompile(`\n\s*` + strings.Repeat(`\n\s*`, maxNewlines-1) + `\n+`)
		c.replacement = strings.Repeat("\n", maxNewlines)
	}

	return c, nil
}

// Clean returns markdown with boilerplate removed and surrounding whitespace
// trimmed.
func (c *Cleaner) Clean(markdown string) string {
	if markdown == "" {
		return ""
	}
	for _, re := range c.patterns {
		markdown = re.ReplaceAllString(markdown, "")
	}
	if c.newlines != nil {
		markdown = c.newlines.ReplaceAllString(markdown, c.replacement)
	}
	return strings.TrimSpace(markdown)
}
