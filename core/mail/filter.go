package mail

import "strings"

// ParseKeywords splits a comma-separated keyword list, trimming and
// lower-casing entries and dropping empty ones.
func ParseKeywords(list string) []string {
	var out []string
	for kw := range strings.SplitSeq(list, ",") {
		kw = strings.ToLower(strings.TrimSpace(kw))
		if kw != "" {
			out = append(out, kw)
		}
	}
	return out
}

// IsSpam reports whether subject or content contains any of the recipient's
// forbidden keywords, case-insensitively. Subject and content are joined by
// a space, so a keyword may span the two.
func IsSpam(keywords, subject, content string) bool {
	list := ParseKeywords(keywords)
	if len(list) == 0 {
		return false
	}
	text := strings.ToLower(subject + " " + content)
	for _, kw := range list {
		if strings.Contains(text, kw) {
			return true
		}
	}
	return false
}
