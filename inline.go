package md2html

import "regexp"

// Inline patterns, in match priority order. The combined ***x*** form
// must be consumed before the simpler emphasis forms so its delimiters
// are not double-counted.
var (
	imagePattern      = regexp.MustCompile(`!\[([^\]]*)\]\(([^)]*)\)`)
	linkPattern       = regexp.MustCompile(`\[([^\]]*)\]\(([^)]*)\)`)
	inlineCodePattern = regexp.MustCompile("`([^`]+)`")
	strongEmPattern   = regexp.MustCompile(`\*\*\*([^*]+)\*\*\*`)
	strongPattern     = regexp.MustCompile(`\*\*([^*]+)\*\*`)
	emphasisPattern   = regexp.MustCompile(`\*([^*]+)\*`)
)

// inlineMatcher pairs a pattern with a span constructor.
type inlineMatcher struct {
	pattern *regexp.Regexp
	build   func(groups []string) InlineSpan
}

// inlineMatchers is the prioritized cascade tried left to right over
// the text. Order matters: image before link (shared bracket syntax),
// code before emphasis (backtick content is verbatim), and the
// three-star form before the two- and one-star forms.
var inlineMatchers []inlineMatcher

// init breaks the initialization cycle between inlineMatchers and
// ParseInline (via parseEmphasisContent).
func init() {
	inlineMatchers = []inlineMatcher{
		{imagePattern, func(g []string) InlineSpan { return Image{Alt: g[1], Src: g[2]} }},
		{linkPattern, func(g []string) InlineSpan { return Link{Text: g[1], Href: g[2]} }},
		{inlineCodePattern, func(g []string) InlineSpan { return InlineCode{Code: g[1]} }},
		{strongEmPattern, func(g []string) InlineSpan {
			return Emphasis{Strong: true, Children: []InlineSpan{Emphasis{Children: parseEmphasisContent(g[1])}}}
		}},
		{strongPattern, func(g []string) InlineSpan {
			return Emphasis{Strong: true, Children: parseEmphasisContent(g[1])}
		}},
		{emphasisPattern, func(g []string) InlineSpan {
			return Emphasis{Children: parseEmphasisContent(g[1])}
		}},
	}
}

// ParseInline resolves the inline spans of a block's text: images,
// links, code spans, and emphasis, left to right with non-overlapping
// matches. Unmatched runs fall back to literal text.
func ParseInline(text string) []InlineSpan {
	var spans []InlineSpan

	for len(text) > 0 {
		best := -1
		var bestLoc []int
		for idx, m := range inlineMatchers {
			loc := m.pattern.FindStringSubmatchIndex(text)
			if loc == nil {
				continue
			}
			if best < 0 || loc[0] < bestLoc[0] {
				best = idx
				bestLoc = loc
			}
		}
		if best < 0 {
			spans = append(spans, Text{Text: text})
			break
		}

		if bestLoc[0] > 0 {
			spans = append(spans, Text{Text: text[:bestLoc[0]]})
		}

		matcher := inlineMatchers[best]
		groups := make([]string, 0, len(bestLoc)/2)
		for g := 0; g < len(bestLoc)/2; g++ {
			groups = append(groups, text[bestLoc[2*g]:bestLoc[2*g+1]])
		}
		spans = append(spans, matcher.build(groups))

		text = text[bestLoc[1]:]
	}

	return spans
}

// parseEmphasisContent parses the interior of an emphasis span, which
// may itself hold code spans, links, or images, but no further
// same-delimiter emphasis.
func parseEmphasisContent(text string) []InlineSpan {
	if text == "" {
		return nil
	}
	return ParseInline(text)
}
