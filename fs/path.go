// Package fs exports the documentation store to files.
package fs

import (
	"fmt"
	"net/url"
	"path"
	"sort"
	"strings"
	"unicode"

	"github.com/fwojciec/docdb"
)

// URLToPath converts a page URL to a relative markdown file path.
// Example: https://example.com/docs/api/users → docs/api/users.md
// Paths cannot escape the export directory.
func URLToPath(rawURL string) (string, error) {
	u, err := url.Parse(rawURL)
	if err != nil {
		return "", err
	}

	p := path.Clean("/" + u.Path)
	if p == "/" {
		return "index.md", nil
	}
	p = strings.TrimPrefix(p, "/")

	if strings.HasSuffix(u.Path, "/") {
		return p + "/index.md", nil
	}
	return p + ".md", nil
}

// PagePaths assigns every URL a distinct relative markdown path. When the
// URLs span more than one host, paths are prefixed with the host. URLs that
// still map to a path already taken, such as ones differing only in their
// query, get a hash of the URL appended to the file name. URLs are processed
// in sorted order so the assignment is stable.
func PagePaths(urls []string) (map[string]string, error) {
	sorted := append([]string(nil), urls...)
	sort.Strings(sorted)

	hosts := make(map[string]string, len(sorted))
	distinct := make(map[string]bool)
	for _, raw := range sorted {
		u, err := url.Parse(raw)
		if err != nil {
			return nil, err
		}
		hosts[raw] = u.Host
		distinct[u.Host] = true
	}

	paths := make(map[string]string, len(sorted))
	taken := make(map[string]bool, len(sorted))
	for _, raw := range sorted {
		if _, ok := paths[raw]; ok {
			continue
		}
		rel, err := URLToPath(raw)
		if err != nil {
			return nil, err
		}
		if len(distinct) > 1 {
			rel = path.Join(hostDir(hosts[raw]), rel)
		}
		if taken[rel] {
			ext := path.Ext(rel)
			base := strings.TrimSuffix(rel, ext) + "-" + docdb.HashContent(raw)[:8]
			rel = base + ext
			for n := 2; taken[rel]; n++ {
				rel = fmt.Sprintf("%s-%d%s", base, n, ext)
			}
		}
		taken[rel] = true
		paths[raw] = rel
	}
	return paths, nil
}

// hostDir returns a directory name for a URL host. Relative URLs have no
// host and share one directory.
func hostDir(host string) string {
	dir := strings.TrimPrefix(path.Clean("/"+strings.ReplaceAll(host, ":", "_")), "/")
	if dir == "" {
		return "_"
	}
	return dir
}

// SectionTitle capitalizes the first letter of every word of a section
// name, where words are separated by anything that is not a letter.
func SectionTitle(section string) string {
	var sb strings.Builder
	prevLetter := false
	for _, r := range section {
		switch {
		case unicode.IsLetter(r) && !prevLetter:
			sb.WriteRune(unicode.ToUpper(r))
		case unicode.IsLetter(r):
			sb.WriteRune(unicode.ToLower(r))
		default:
			sb.WriteRune(r)
		}
		prevLetter = unicode.IsLetter(r)
	}
	return sb.String()
}
