// Package linkify scans tweet content for hashtags and mentions. Tag lookup
// and tag rendering must agree on the same pattern, so both sides of the
// application use these expressions and nothing else.
package linkify

import (
	"fmt"
	"regexp"
	"strings"
)

var (
	hashtagRe = regexp.MustCompile(`#(\w+)`)
	mentionRe = regexp.MustCompile(`@([\w.-]+)`)
)

// ExtractHashtags returns the tags found in text, without the leading '#',
// lowercased and deduplicated in order of first appearance. Tag comparison is
// case-insensitive everywhere, so tags are normalized here.
func ExtractHashtags(text string) []string {
	var tags []string
	seen := make(map[string]bool)
	for _, m := range hashtagRe.FindAllStringSubmatch(text, -1) {
		tag := strings.ToLower(m[1])
		if !seen[tag] {
			seen[tag] = true
			tags = append(tags, tag)
		}
	}
	return tags
}

// ExtractMentions returns the handles found in text, without the leading '@',
// deduplicated in order of first appearance. Handles keep their case; handle
// lookup is exact.
func ExtractMentions(text string) []string {
	var handles []string
	seen := make(map[string]bool)
	for _, m := range mentionRe.FindAllStringSubmatch(text, -1) {
		if !seen[m[1]] {
			seen[m[1]] = true
			handles = append(handles, m[1])
		}
	}
	return handles
}

// HasTag reports whether text contains #tag as a whole word, ignoring case.
// This is the lookup side of the hashtag pattern above.
func HasTag(text, tag string) bool {
	re := regexp.MustCompile(`(?i)(^|\s)#(` + regexp.QuoteMeta(tag) + `)\b`)
	return re.MatchString(text)
}

// Linkify replaces hashtags and mentions with anchor tags for the
// presentation layer. tagURL and userURL are printf formats receiving the
// bare tag or handle.
func Linkify(text, tagURL, userURL string) string {
	out := hashtagRe.ReplaceAllStringFunc(text, func(m string) string {
		tag := m[1:]
		return fmt.Sprintf(`<a href="%s">#%s</a>`, fmt.Sprintf(tagURL, tag), tag)
	})
	out = mentionRe.ReplaceAllStringFunc(out, func(m string) string {
		handle := m[1:]
		return fmt.Sprintf(`<a href="%s">@%s</a>`, fmt.Sprintf(userURL, handle), handle)
	})
	return out
}
