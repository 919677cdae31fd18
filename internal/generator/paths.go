package generator

import (
	"path"
	"strings"
)

// buildOutputPath maps a permalink onto its output file. Directory style
// permalinks become pretty URLs ("/about/" -> "about/index.html"); a
// permalink whose last segment carries an extension is written as-is
// ("/feed.xml" -> "feed.xml").
func buildOutputPath(permalink string) string {
	clean := strings.Trim(strings.TrimSpace(permalink), " \t\r\n/")
	if clean == "" {
		return "index.html"
	}

	segments := strings.Split(clean, "/")
	last := segments[len(segments)-1]
	if strings.Contains(last, ".") {
		return path.Join(segments...)
	}
	return path.Join(clean, "index.html")
}

func joinOutputPath(base string, rel string) string {
	if strings.TrimSpace(base) == "" {
		return strings.TrimLeft(rel, "/")
	}
	return path.Join(strings.Trim(base, "/"), rel)
}
