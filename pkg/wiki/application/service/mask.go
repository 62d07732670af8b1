package service

import (
	"regexp"
	"strings"
)

// ExpandBraces expands shell style alternatives: "wiki/{A,B}/{fr,es}.md" gives four paths.
// Groups may nest. A group without a top-level comma is kept as written.
func ExpandBraces(pattern string) []string {
	start, end, alternatives := findBraceGroup(pattern)
	if start == -1 {
		return []string{pattern}
	}
	prefix, suffix := pattern[:start], pattern[end+1:]
	var result []string
	for _, alternative := range alternatives {
		result = append(result, ExpandBraces(prefix+alternative+suffix)...)
	}
	return result
}

// findBraceGroup returns the first brace group holding alternatives, with its bounds.
func findBraceGroup(pattern string) (int, int, []string) {
	for start := 0; start < len(pattern); start++ {
		if pattern[start] != '{' {
			continue
		}
		depth := 0
		last := start + 1
		var alternatives []string
		for i := start; i < len(pattern); i++ {
			switch pattern[i] {
			case '{':
				depth++
			case ',':
				if depth == 1 {
					alternatives = append(alternatives, pattern[last:i])
					last = i + 1
				}
			case '}':
				depth--
				if depth != 0 {
					continue
				}
				if len(alternatives) == 0 {
					i = len(pattern)
					continue
				}
				return start, i, append(alternatives, pattern[last:i])
			}
		}
	}
	return -1, -1, nil
}

// MatchMask matches a path against a shell mask in which "*" also spans slashes.
func MatchMask(filePath, mask string) bool {
	re, err := regexp.Compile(maskToRegexp(mask))
	if err != nil {
		return false
	}
	return re.MatchString(filePath)
}

func maskToRegexp(mask string) string {
	var b strings.Builder
	b.WriteString(`\A(?s:`)
	runes := []rune(mask)
	for i := 0; i < len(runes); i++ {
		switch c := runes[i]; c {
		case '*':
			b.WriteString(".*")
		case '?':
			b.WriteString(".")
		case '[':
			end := indexRune(runes, ']', i+1)
			if end == -1 {
				b.WriteString(`\[`)
				continue
			}
			set := string(runes[i+1 : end])
			if strings.HasPrefix(set, "!") {
				set = "^" + set[1:]
			}
			b.WriteString("[" + strings.ReplaceAll(set, `\`, `\\`) + "]")
			i = end
		default:
			b.WriteString(regexp.QuoteMeta(string(c)))
		}
	}
	b.WriteString(`)\z`)
	return b.String()
}

func indexRune(runes []rune, r rune, from int) int {
	for i := from; i < len(runes); i++ {
		if runes[i] == r {
			return i
		}
	}
	return -1
}
