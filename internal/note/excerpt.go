package note

import "strings"

var excerptMarkers = strings.NewReplacer("#", "", "*", "", "`", "")

// Excerpt is the card preview of a note body: the first non-blank line that
// is not a heading, without markdown markers, cut to max runes.
func Excerpt(content string, max int) string {
	for _, line := range strings.Split(content, "\n") {
		if strings.TrimSpace(line) == "" || strings.HasPrefix(line, "#") {
			continue
		}
		line = strings.TrimSpace(excerptMarkers.Replace(line))
		r := []rune(line)
		if max > 0 && len(r) > max {
			r = r[:max]
		}
		return string(r)
	}
	return ""
}
