package docdb

import "strings"

// ContextSeparator separates documents in assembled LLM context.
const ContextSeparator = "\n\n---\n\n"

// FormatContextPart formats one document for LLM context.
func FormatContextPart(title, body string) string {
	return "## " + title + "\n\n" + body
}

// TruncateWords returns the first n whitespace-separated words of s followed
// by ellipsis. s is returned unchanged when it has n words or fewer.
func TruncateWords(s string, n int, ellipsis string) string {
	words := strings.Fields(s)
	if len(words) <= n {
		return s
	}
	return strings.Join(words[:n], " ") + ellipsis
}
