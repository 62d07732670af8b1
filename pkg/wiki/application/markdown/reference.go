package markdown

import (
	"strings"

	"github.com/osu-wiki/wikitools/pkg/wiki/application/model"
)

// ExtractReference reads a reference definition occupying the whole line:
//
//	[name]: /wiki/Location "Title"
func ExtractReference(line string, lineno int) (model.Reference, bool) {
	split := strings.IndexByte(line, ':')
	if split < 2 || !strings.HasPrefix(line, "[") || line[split-1] != ']' {
		return model.Reference{}, false
	}
	if split+1 >= len(line) || line[split+1] != ' ' {
		return model.Reference{}, false
	}

	location, title, found := strings.Cut(line[split+2:], " ")
	if found {
		title = trimQuotes(title)
	}
	return model.Reference{
		Lineno:      lineno,
		Name:        line[1 : split-1],
		RawLocation: location,
		Location:    model.ParseLocation(location),
		Title:       title,
	}, true
}

// ExtractReferences collects the references of a text, numbering lines from 1.
func ExtractReferences(text string) model.References {
	references := make(model.References)
	for i, line := range splitLines(text) {
		if reference, ok := ExtractReference(line, i+1); ok {
			references[reference.Name] = reference
		}
	}
	return references
}

func trimQuotes(s string) string {
	r := []rune(s)
	if len(r) < 2 {
		return ""
	}
	return string(r[1 : len(r)-1])
}

func splitLines(text string) []string {
	lines := strings.Split(text, "\n")
	if len(lines) > 0 && lines[len(lines)-1] == "" {
		lines = lines[:len(lines)-1]
	}
	for i, line := range lines {
		lines[i] = strings.TrimSuffix(line, "\r")
	}
	return lines
}
