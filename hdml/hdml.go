// Package hdml translates the upstream's inline markup dialect, used in
// dispatch messages and order briefs, into Markdown or plain text.
//
// The dialect is tiny: <i=3>...</i> marks bold emphasis and <i=1>...</i>
// marks highlight emphasis. Closing tags may carry the =N suffix or omit it;
// either way they close the nearest open tag. Anything else inside angle
// brackets is noise and gets stripped.
package hdml

import (
	"regexp"
	"strings"
)

var (
	tagRe   = regexp.MustCompile(`<[^<>]*>`)
	closeRe = regexp.MustCompile(`^</i(=\d+)?>$`)
)

const (
	boldMarker      = "**"
	highlightMarker = "*"
)

// ToMarkdown converts HDML emphasis tags into Markdown markers. Unrecognized
// tags are dropped. Input without tags passes through unchanged.
func ToMarkdown(s string) string {
	locs := tagRe.FindAllStringIndex(s, -1)
	if locs == nil {
		return s
	}
	var b strings.Builder
	b.Grow(len(s))
	var open []string
	last := 0
	for _, loc := range locs {
		b.WriteString(s[last:loc[0]])
		last = loc[1]
		switch tag := s[loc[0]:loc[1]]; {
		case tag == "<i=3>":
			b.WriteString(boldMarker)
			open = append(open, boldMarker)
		case tag == "<i=1>":
			b.WriteString(highlightMarker)
			open = append(open, highlightMarker)
		case closeRe.MatchString(tag):
			// Non-strict closing: </i> without a suffix still closes the
			// nearest open tag of either kind.
			if len(open) > 0 {
				b.WriteString(open[len(open)-1])
				open = open[:len(open)-1]
			}
		}
	}
	b.WriteString(s[last:])
	return b.String()
}

// ToPlaintext strips every tag, recognized or not. No entity decoding.
func ToPlaintext(s string) string {
	if !strings.Contains(s, "<") {
		return s
	}
	return tagRe.ReplaceAllString(s, "")
}
