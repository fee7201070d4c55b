package docdb

import (
	"regexp"
	"strconv"
	"strings"
	"unicode"
)

var (
	headingRe   = regexp.MustCompile(`(?m)^(#{1,6})[ \t]+(.+?)[ \t]*$`)
	codeBlockRe = regexp.MustCompile("(?s)```.*?```")
)

// Heading represents a heading in a markdown document.
type Heading struct {
	Level  int    `json:"level"`
	Title  string `json:"title"`
	Anchor string `json:"anchor"`
}

// ExtractHeadings parses markdown and returns all ATX headings (H1-H6) in
// document order. Anchors are URL-safe and duplicates get numeric suffixes.
func ExtractHeadings(markdown string) []Heading {
	if markdown == "" {
		return nil
	}

	// Remove code blocks to avoid matching # in code
	matches := headingRe.FindAllStringSubmatch(codeBlockRe.ReplaceAllString(markdown, ""), -1)
	if len(matches) == 0 {
		return nil
	}

	headings := make([]Heading, 0, len(matches))
	anchorCounts := make(map[string]int)

	for _, match := range matches {
		title := strings.TrimSpace(match[2])
		baseAnchor := Anchor(title)

		anchor := baseAnchor
		if count, exists := anchorCounts[baseAnchor]; exists {
			anchor = baseAnchor + "-" + strconv.Itoa(count)
			anchorCounts[baseAnchor]++
		} else {
			anchorCounts[baseAnchor] = 1
		}

		headings = append(headings, Heading{
			Level:  len(match[1]),
			Title:  title,
			Anchor: anchor,
		})
	}

	return headings
}

// Anchor creates a URL-safe anchor from a title.
// Converts to lowercase, replaces spaces with hyphens, removes special chars.
func Anchor(title string) string {
	var sb strings.Builder
	prevHyphen := false

	for _, r := range strings.ToLower(title) {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			sb.WriteRune(r)
			prevHyphen = false
		} else if unicode.IsSpace(r) || r == '-' {
			if !prevHyphen && sb.Len() > 0 {
				sb.WriteRune('-')
				prevHyphen = true
			}
		}
	}

	return strings.TrimSuffix(sb.String(), "-")
}
