package markdown

import (
	"regexp"
	"strings"
	"unicode/utf8"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/parser"
	"github.com/yuin/goldmark/text"
	"github.com/yuin/goldmark/util"
)

var (
	customIdentifierRegexp = regexp.MustCompile(`\{(#|id=)([^}\s]+)\}`)
	headingParser          parser.Parser
)

func init() {
	headingParser = goldmark.New().Parser()
}

// ExtractIdentifier returns the anchor a line defines, if any, and the position where it starts.
// Custom identifiers ({#id} or {id=id}) win over heading slugs, which always start at 0.
func ExtractIdentifier(line string) (string, int, bool) {
	if match := customIdentifierRegexp.FindStringSubmatchIndex(line); match != nil {
		pos := utf8.RuneCountInString(line[:match[3]])
		return line[match[4]:match[5]], pos, true
	}

	content, ok := headingContent(line)
	if !ok {
		return "", 0, false
	}
	identifier := slugify(content)
	if identifier == "" {
		return "", 0, false
	}
	return identifier, 0, true
}

// headingContent returns the raw inline content of an ATX heading of level 2 or deeper.
func headingContent(line string) (string, bool) {
	source := []byte(strings.TrimRight(line, "\r\n"))
	document := headingParser.Parse(text.NewReader(source))
	heading, ok := document.FirstChild().(*ast.Heading)
	if !ok || heading.Level < 2 {
		return "", false
	}
	var content strings.Builder
	lines := heading.Lines()
	for i := 0; i < lines.Len(); i++ {
		segment := lines.At(i)
		content.Write(segment.Value(source))
	}
	return content.String(), true
}

func slugify(content string) string {
	s := []rune(content)
	var b strings.Builder
	prev := 0
	for _, link := range FindLinks(content) {
		start := link.Start
		replacement := link.Title
		if start > 0 && s[start-1] == '!' {
			start--
			replacement = ""
		}
		b.WriteString(string(s[prev:start]))
		b.WriteString(replacement)
		prev = link.End + 1
	}
	b.WriteString(string(s[prev:]))

	unescaped := string(util.UnescapePunctuations([]byte(b.String())))
	return strings.Join(strings.Fields(strings.ToLower(unescaped)), "-")
}
