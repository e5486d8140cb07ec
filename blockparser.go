package md2html

import (
	"regexp"
	"strings"
)

// Precompiled block-level patterns. Matchers are tried in a fixed order
// per line (fence, heading, rule, directive, blockquote, table, list,
// raw HTML, paragraph), each owning its own termination rule.
var (
	headingPattern = regexp.MustCompile(`^(#{1,6})\s+(.*?)\s*$`)

	// Fence opener: three or more backticks plus an optional info tag.
	fenceOpenPattern = regexp.MustCompile("^(`{3,})[ \t]*([^`\\s]*)[ \t]*$")

	// Fence closer candidate: backticks only (length checked against the opener).
	fenceClosePattern = regexp.MustCompile("^(`{3,})[ \t]*$")

	horizontalRulePattern = regexp.MustCompile(`^ {0,3}(?:(?:-[ \t]*){3,}|(?:\*[ \t]*){3,}|(?:_[ \t]*){3,})$`)

	codeRefDirectivePattern = regexp.MustCompile(`^@code-ref\s+(.+?)\s*$`)

	// Bare hash reference: #symbol with no space after the hash, which
	// keeps it disjoint from ATX headings.
	bareHashPattern = regexp.MustCompile(`^#([A-Za-z_][A-Za-z0-9_]*)$`)

	// A line holding nothing but a markdown link; promoted to a
	// code-reference block when the target carries a code-ref fragment.
	linkOnlyPattern = regexp.MustCompile(`^\[([^\]]*)\]\(([^)\s]+)\)$`)

	blockquotePattern     = regexp.MustCompile(`^ {0,3}>`)
	blockquoteStripPrefix = regexp.MustCompile(`^ {0,3}> ?`)

	unorderedItemPattern = regexp.MustCompile(`^([ \t]*)[-*+]\s+(.*)$`)
	orderedItemPattern   = regexp.MustCompile(`^([ \t]*)\d+\.\s+(.*)$`)

	tableSeparatorCell = regexp.MustCompile(`^:?-+:?$`)

	rawHTMLOpenPattern = regexp.MustCompile(`^<(?:!--|/?[A-Za-z][A-Za-z0-9-]*)`)
)

// listIndentUnit is the fixed indentation width that advances one list
// nesting level. A tab counts as one unit.
const listIndentUnit = 2

// ParseBlocks splits body text (frontmatter already stripped) into an
// ordered block sequence. Parsing never fails: malformed structures
// degrade to paragraphs.
func ParseBlocks(body string) []Block {
	lines := strings.Split(normalizeLineEndings(body), "\n")

	var blocks []Block
	i := 0
	for i < len(lines) {
		line := lines[i]

		if isBlankLine(line) {
			i++
			continue
		}

		if m := fenceOpenPattern.FindStringSubmatch(line); m != nil {
			block, next, ok := parseFence(lines, i, m)
			if ok {
				blocks = append(blocks, block)
				i = next
				continue
			}
			// Unterminated fence: the remainder is one paragraph.
			blocks = append(blocks, Paragraph{Content: ParseInline(strings.Join(lines[i:], "\n"))})
			break
		}

		if m := headingPattern.FindStringSubmatch(line); m != nil {
			blocks = append(blocks, Heading{Level: len(m[1]), Content: ParseInline(m[2])})
			i++
			continue
		}

		if horizontalRulePattern.MatchString(line) {
			blocks = append(blocks, HorizontalRule{})
			i++
			continue
		}

		if m := codeRefDirectivePattern.FindStringSubmatch(line); m != nil {
			blocks = append(blocks, CodeReference{Directive: m[1]})
			i++
			continue
		}

		if m := bareHashPattern.FindStringSubmatch(line); m != nil {
			blocks = append(blocks, CodeReference{Directive: "#" + m[1]})
			i++
			continue
		}

		if m := linkOnlyPattern.FindStringSubmatch(strings.TrimSpace(line)); m != nil && isCodeRefTarget(m[2]) {
			blocks = append(blocks, CodeReference{Directive: m[2], Label: m[1]})
			i++
			continue
		}

		if blockquotePattern.MatchString(line) {
			block, next := parseBlockquote(lines, i)
			blocks = append(blocks, block)
			i = next
			continue
		}

		if block, next, ok := parseTable(lines, i); ok {
			blocks = append(blocks, block)
			i = next
			continue
		}

		if isListItemLine(line) {
			block, next := parseList(lines, i)
			blocks = append(blocks, block)
			i = next
			continue
		}

		if rawHTMLOpenPattern.MatchString(line) {
			block, next := parseRawHTML(lines, i)
			blocks = append(blocks, block)
			i = next
			continue
		}

		block, next := parseParagraph(lines, i)
		blocks = append(blocks, block)
		i = next
	}

	return blocks
}

var crlfOrCR = regexp.MustCompile(`\r\n?`)

// normalizeLineEndings converts \r\n and \r to \n.
func normalizeLineEndings(content string) string {
	return crlfOrCR.ReplaceAllString(content, "\n")
}

// isBlankLine returns true if the line is empty or whitespace only.
func isBlankLine(line string) bool {
	return strings.TrimSpace(line) == ""
}

// isListItemLine returns true if the line opens a list item.
func isListItemLine(line string) bool {
	return unorderedItemPattern.MatchString(line) || orderedItemPattern.MatchString(line)
}

// parseFence consumes a fenced code block opened at lines[start]. The
// block runs verbatim until the next backtick-only line at least as
// long as the opener. Returns ok=false when no closer exists.
func parseFence(lines []string, start int, opener []string) (Block, int, bool) {
	fenceLen := len(opener[1])
	lang := opener[2]

	for i := start + 1; i < len(lines); i++ {
		if m := fenceClosePattern.FindStringSubmatch(lines[i]); m != nil && len(m[1]) >= fenceLen {
			return CodeBlock{Lang: lang, Code: strings.Join(lines[start+1:i], "\n")}, i + 1, true
		}
	}
	return nil, 0, false
}

// parseBlockquote consumes consecutive quoted lines, strips one marker
// per line, and recursively parses the dedented content.
func parseBlockquote(lines []string, start int) (Block, int) {
	i := start
	var inner []string
	for i < len(lines) && blockquotePattern.MatchString(lines[i]) {
		inner = append(inner, blockquoteStripPrefix.ReplaceAllString(lines[i], ""))
		i++
	}
	return Blockquote{Blocks: ParseBlocks(strings.Join(inner, "\n"))}, i
}

// parseTable recognizes a header row followed immediately by a
// separator row whose cells all match :?-+:?. Column count comes from
// the header; short body rows are padded and long rows truncated.
func parseTable(lines []string, start int) (Block, int, bool) {
	if !strings.Contains(lines[start], "|") || start+1 >= len(lines) {
		return nil, 0, false
	}

	aligns, ok := parseSeparatorRow(lines[start+1])
	if !ok {
		return nil, 0, false
	}

	headerCells := splitTableRow(lines[start])
	if len(headerCells) == 0 {
		return nil, 0, false
	}

	columns := len(headerCells)
	aligns = fitAligns(aligns, columns)

	header := make([]TableCell, columns)
	for c, cell := range headerCells {
		header[c] = ParseInline(cell)
	}

	var rows [][]TableCell
	i := start + 2
	for i < len(lines) && strings.Contains(lines[i], "|") && !isBlankLine(lines[i]) {
		cells := splitTableRow(lines[i])
		row := make([]TableCell, columns)
		for c := 0; c < columns; c++ {
			if c < len(cells) {
				row[c] = ParseInline(cells[c])
			} else {
				row[c] = TableCell{}
			}
		}
		rows = append(rows, row)
		i++
	}

	return Table{Header: header, Aligns: aligns, Rows: rows}, i, true
}

// parseSeparatorRow validates a table separator row and derives column
// alignments from the leading/trailing colons.
func parseSeparatorRow(line string) ([]Alignment, bool) {
	if !strings.Contains(line, "-") {
		return nil, false
	}
	cells := splitTableRow(line)
	if len(cells) == 0 {
		return nil, false
	}

	aligns := make([]Alignment, len(cells))
	for i, cell := range cells {
		if !tableSeparatorCell.MatchString(cell) {
			return nil, false
		}
		left := strings.HasPrefix(cell, ":")
		right := strings.HasSuffix(cell, ":")
		switch {
		case left && right:
			aligns[i] = AlignCenter
		case right:
			aligns[i] = AlignRight
		case left:
			aligns[i] = AlignLeft
		default:
			aligns[i] = AlignNone
		}
	}
	return aligns, true
}

// splitTableRow splits a pipe-delimited row into trimmed cell strings,
// dropping the optional outer pipes.
func splitTableRow(line string) []string {
	trimmed := strings.TrimSpace(line)
	trimmed = strings.TrimPrefix(trimmed, "|")
	trimmed = strings.TrimSuffix(trimmed, "|")

	parts := strings.Split(trimmed, "|")
	cells := make([]string, len(parts))
	for i, p := range parts {
		cells[i] = strings.TrimSpace(p)
	}
	return cells
}

// fitAligns pads or truncates the alignment list to the header width.
func fitAligns(aligns []Alignment, columns int) []Alignment {
	if len(aligns) == columns {
		return aligns
	}
	fitted := make([]Alignment, columns)
	copy(fitted, aligns)
	return fitted
}

// listLine is one list item line with its computed indentation depth.
type listLine struct {
	depth   int
	ordered bool
	text    string
}

// parseList consumes a run of list item lines and builds the nested
// list structure from their indentation.
func parseList(lines []string, start int) (Block, int) {
	var items []listLine
	i := start
	for i < len(lines) {
		line := lines[i]
		if m := unorderedItemPattern.FindStringSubmatch(line); m != nil {
			items = append(items, listLine{depth: indentDepth(m[1]), text: m[2]})
			i++
			continue
		}
		if m := orderedItemPattern.FindStringSubmatch(line); m != nil {
			items = append(items, listLine{depth: indentDepth(m[1]), ordered: true, text: m[2]})
			i++
			continue
		}
		break
	}

	list, _ := buildList(items, 0, items[0].depth)
	return *list, i
}

// indentDepth converts leading whitespace into nesting units. A tab
// advances one full unit.
func indentDepth(indent string) int {
	width := 0
	for _, r := range indent {
		if r == '\t' {
			width += listIndentUnit
		} else {
			width++
		}
	}
	return width / listIndentUnit
}

// buildList constructs a list from items[pos:] at the given depth.
// Deeper items nest under the preceding item; a dedent below depth
// closes this level.
func buildList(items []listLine, pos, depth int) (*List, int) {
	list := &List{Ordered: items[pos].ordered}

	for pos < len(items) {
		item := items[pos]
		if item.depth < depth {
			break
		}
		if item.depth > depth {
			nested, next := buildList(items, pos, item.depth)
			if len(list.Items) == 0 {
				// Over-indented first item; treat as this level.
				list.Items = append(list.Items, nested.Items...)
			} else {
				list.Items[len(list.Items)-1].Nested = nested
			}
			pos = next
			continue
		}
		list.Items = append(list.Items, ListItem{Content: ParseInline(item.text)})
		pos++
	}

	return list, pos
}

// parseRawHTML consumes a verbatim HTML block: from an opening tag line
// until the next blank line.
func parseRawHTML(lines []string, start int) (Block, int) {
	i := start
	for i < len(lines) && !isBlankLine(lines[i]) {
		i++
	}
	return RawHTML{HTML: strings.Join(lines[start:i], "\n")}, i
}

// parseParagraph consumes text lines until a blank line or the start of
// another block type.
func parseParagraph(lines []string, start int) (Block, int) {
	i := start
	for i < len(lines) {
		line := lines[i]
		if isBlankLine(line) {
			break
		}
		if i > start && startsNewBlock(line) {
			break
		}
		i++
	}
	text := strings.Join(trimLines(lines[start:i]), "\n")
	return Paragraph{Content: ParseInline(text)}, i
}

// startsNewBlock reports whether a line interrupts a paragraph by
// opening a different block type.
func startsNewBlock(line string) bool {
	return headingPattern.MatchString(line) ||
		fenceOpenPattern.MatchString(line) ||
		horizontalRulePattern.MatchString(line) ||
		codeRefDirectivePattern.MatchString(line) ||
		blockquotePattern.MatchString(line) ||
		isListItemLine(line)
}

// trimLines trims surrounding whitespace from each line.
func trimLines(lines []string) []string {
	trimmed := make([]string, len(lines))
	for i, l := range lines {
		trimmed[i] = strings.TrimSpace(l)
	}
	return trimmed
}
