package yamllint

import (
	"fmt"
	"regexp"
	"strings"
	"unicode/utf8"

	"github.com/osu-wiki/wikitools/pkg/wiki/application/model"
)

var (
	blockScalarIndicator = regexp.MustCompile(`(^|[\s:-])[|>][0-9+-]*$`)
	shebang              = regexp.MustCompile(`^!\S`)
)

// lines splits a payload on "\n". The last element is what follows the final line break.
func lines(payload string) []string {
	result := strings.Split(payload, "\n")
	for i := range result {
		result[i] = strings.TrimSuffix(result[i], "\r")
	}
	return result
}

// lintLines runs the rules that only need the text of the payload.
func lintLines(rules Rules, lines []string) []model.YAMLProblem {
	var problems []model.YAMLProblem
	if rules.TrailingSpaces.Enabled() {
		problems = append(problems, trailingSpaces(rules.TrailingSpaces, lines)...)
	}
	if rules.LineLength.Enabled() {
		problems = append(problems, lineLength(rules.LineLength, lines)...)
	}
	if rules.EmptyLines.Enabled() {
		problems = append(problems, emptyLines(rules.EmptyLines, lines)...)
	}
	if rules.NewLineAtEndOfFile.Enabled() {
		problems = append(problems, newLineAtEndOfFile(rules.NewLineAtEndOfFile, lines)...)
	}
	if rules.DocumentStart.Enabled() {
		problems = append(problems, documentStart(rules.DocumentStart, lines)...)
	}
	if rules.Comments.Enabled() {
		problems = append(problems, comments(rules.Comments, lines)...)
	}
	return problems
}

func trailingSpaces(rule Rule, lines []string) []model.YAMLProblem {
	var problems []model.YAMLProblem
	for i, line := range lines {
		trimmed := strings.TrimRight(line, " \t")
		if len(trimmed) != len(line) {
			problems = append(problems, problem(i+1, utf8.RuneCountInString(trimmed)+1, rule.Level,
				RuleTrailingSpaces, "trailing spaces"))
		}
	}
	return problems
}

func lineLength(rule LineLength, lines []string) []model.YAMLProblem {
	var problems []model.YAMLProblem
	for i, line := range lines {
		length := utf8.RuneCountInString(line)
		if length <= rule.Max {
			continue
		}
		if (rule.AllowNonBreakableWords || rule.AllowNonBreakableInlineMappings) &&
			isNonBreakable(line, rule.AllowNonBreakableInlineMappings) {
			continue
		}
		problems = append(problems, problem(i+1, rule.Max+1, rule.Level, RuleLineLength,
			fmt.Sprintf("line too long (%d > %d characters)", length, rule.Max)))
	}
	return problems
}

// isNonBreakable reports lines holding a single word, after any indentation, comment marks
// or list dash.
func isNonBreakable(line string, inlineMappings bool) bool {
	rest := strings.TrimLeft(line, " ")
	if rest == "" {
		return false
	}
	switch {
	case strings.HasPrefix(rest, "#"):
		rest = strings.TrimLeft(rest, "#")
		rest = rest[min(1, len(rest)):]
	case strings.HasPrefix(rest, "-"):
		rest = rest[min(2, len(rest)):]
	}
	if !strings.Contains(rest, " ") {
		return true
	}
	return inlineMappings && isInlineMapping(line)
}

func isInlineMapping(line string) bool {
	_, value, ok := strings.Cut(strings.TrimLeft(line, " -"), ": ")
	return ok && !strings.Contains(strings.TrimSpace(value), " ")
}

func isBlank(line string) bool {
	return line == ""
}

// emptyLines reports a run of blank lines once, on its last line.
func emptyLines(rule EmptyLines, lines []string) []model.YAMLProblem {
	var problems []model.YAMLProblem
	last := len(lines) - 1
	for i := 0; i < last; i++ {
		if !isBlank(lines[i]) || (i+1 < last && isBlank(lines[i+1])) {
			continue
		}
		count := 0
		j := i
		for ; j >= 0 && isBlank(lines[j]); j-- {
			count++
		}
		limit := rule.Max
		if j < 0 {
			limit = rule.MaxStart
		}
		if i == last-1 && lines[last] == "" {
			// a file made of a single line break
			if i == 0 {
				continue
			}
			limit = rule.MaxEnd
		}
		if count > limit {
			problems = append(problems, problem(i+1, 1, rule.Level, RuleEmptyLines,
				fmt.Sprintf("too many blank lines (%d > %d)", count, limit)))
		}
	}
	return problems
}

func newLineAtEndOfFile(rule Rule, lines []string) []model.YAMLProblem {
	last := lines[len(lines)-1]
	if last == "" {
		return nil
	}
	return []model.YAMLProblem{problem(len(lines), utf8.RuneCountInString(last)+1, rule.Level,
		RuleNewLineAtEndOfFile, "no new line character at the end of file")}
}

func isDocumentStart(line string) bool {
	return line == "---" || strings.HasPrefix(line, "--- ") || strings.HasPrefix(line, "---\t")
}

func isDocumentEnd(line string) bool {
	return line == "..." || strings.HasPrefix(line, "... ")
}

func documentStart(rule DocumentStart, lines []string) []model.YAMLProblem {
	var problems []model.YAMLProblem
	expectStart := true
	for i, line := range lines {
		trimmed := strings.TrimSpace(line)
		if trimmed == "" || strings.HasPrefix(trimmed, "#") || strings.HasPrefix(line, "%") {
			continue
		}
		switch {
		case isDocumentEnd(line):
			expectStart = true
		case !rule.Present && isDocumentStart(line):
			problems = append(problems, problem(i+1, 1, rule.Level, RuleDocumentStart,
				`found forbidden document start "---"`))
		case rule.Present && expectStart && !isDocumentStart(line):
			problems = append(problems, problem(i+1, 1, rule.Level, RuleDocumentStart,
				`missing document start "---"`))
			expectStart = false
		default:
			expectStart = false
		}
	}
	return problems
}

type comment struct {
	line   int
	column int
	text   string
	// spaces between the comment and the content before it, -1 when it has its own line
	spacesBefore int
}

// scanComments finds comments outside of quoted and block scalars.
func scanComments(lines []string) []comment {
	var (
		found       []comment
		quote       byte
		blockIndent = -1
	)
	for i, line := range lines {
		indent := len(line) - len(strings.TrimLeft(line, " "))
		if blockIndent >= 0 {
			if strings.TrimSpace(line) == "" || indent > blockIndent {
				continue
			}
			blockIndent = -1
		}

		hash := -1
		for j := 0; j < len(line) && hash < 0; j++ {
			c := line[j]
			switch {
			case quote == '\'':
				if c == '\'' {
					if j+1 < len(line) && line[j+1] == '\'' {
						j++
					} else {
						quote = 0
					}
				}
			case quote == '"':
				if c == '\\' {
					j++
				} else if c == '"' {
					quote = 0
				}
			case c == '#' && (j == 0 || line[j-1] == ' ' || line[j-1] == '\t'):
				hash = j
			case (c == '\'' || c == '"') && (j == 0 || strings.IndexByte(" \t[{,", line[j-1]) >= 0):
				quote = c
			}
		}

		content := line
		if hash >= 0 {
			content = line[:hash]
			spaces := -1
			if strings.TrimSpace(content) != "" {
				spaces = len(content) - len(strings.TrimRight(content, " \t"))
			}
			found = append(found, comment{
				line:         i + 1,
				column:       utf8.RuneCountInString(content) + 1,
				text:         line[hash:],
				spacesBefore: spaces,
			})
		}
		if quote == 0 && blockScalarIndicator.MatchString(strings.TrimRight(content, " \t")) {
			blockIndent = indent
		}
	}
	return found
}

func comments(rule Comments, lines []string) []model.YAMLProblem {
	var problems []model.YAMLProblem
	for _, c := range scanComments(lines) {
		if rule.MinSpacesFromContent >= 0 && c.spacesBefore >= 0 && c.spacesBefore < rule.MinSpacesFromContent {
			problems = append(problems, problem(c.line, c.column, rule.Level, RuleComments,
				"too few spaces before comment"))
		}
		if !rule.RequireStartingSpace {
			continue
		}
		text := strings.TrimLeft(c.text, "#")
		if text == "" || text[0] == ' ' {
			continue
		}
		if rule.IgnoreShebangs && c.line == 1 && c.column == 1 && shebang.MatchString(text) {
			continue
		}
		problems = append(problems, problem(c.line, c.column+len(c.text)-len(text), rule.Level, RuleComments,
			"missing starting space in comment"))
	}
	return problems
}
