package table

import "strings"

// Generated is a rendered table to be placed after the descriptor ending on Line.
type Generated struct {
	Line           int
	Markdown       string
	ConsumeSection bool
}

// headingTracker follows the heading path of the lines read so far.
type headingTracker struct {
	path []string
}

func (t *headingTracker) level() int {
	return len(t.path)
}

func (t *headingTracker) update(line string) {
	if !strings.HasPrefix(line, "#") {
		return
	}
	level := len(line) - len(strings.TrimLeft(line, "#"))
	parts := strings.Split(line, "#")
	heading := strings.TrimSpace(parts[len(parts)-1])
	switch {
	case level > len(t.path):
		t.path = append(t.path, heading)
	case level == len(t.path):
		t.path[len(t.path)-1] = heading
	default:
		t.path = append(t.path[:level-1], heading)
	}
}

type lineReader struct {
	lines    []string
	next     int
	headings headingTracker
}

func (r *lineReader) read() (string, bool) {
	if r.next >= len(r.lines) {
		return "", false
	}
	line := r.lines[r.next]
	r.next++
	r.headings.update(line)
	return line, true
}

// skipUntil consumes lines until one satisfies reached and returns it, or "" at the end of input.
func (r *lineReader) skipUntil(reached func(line string) bool) string {
	for {
		line, ok := r.read()
		if !ok {
			return ""
		}
		if reached(line) {
			return line
		}
	}
}

// Rewrite places generated tables after their descriptors, replacing the tables generated
// before. A split table replaces the rest of its section. The result ends with one newline.
func Rewrite(content string, tables []Generated) string {
	byLine := make(map[int]Generated, len(tables))
	for _, t := range tables {
		byLine[t.Line] = t
	}

	lines := strings.SplitAfter(content, "\n")
	if lines[len(lines)-1] == "" {
		lines = lines[:len(lines)-1]
	}
	r := &lineReader{lines: lines}
	var b strings.Builder
	lineno := 0
	for {
		line, ok := r.read()
		if !ok {
			break
		}
		lineno++
		generated, found := byLine[lineno]
		if !found {
			b.WriteString(line)
			continue
		}

		b.WriteString(line)
		if !strings.HasSuffix(line, "\n") {
			b.WriteString("\n")
		}

		start := r.next
		if generated.ConsumeSection {
			// before any heading the section ends at the first heading of any level
			level := r.headings.level()
			line = r.skipUntil(func(l string) bool {
				return strings.HasPrefix(l, "#") && (level == 0 || r.headings.level() <= level)
			})
		} else {
			line = r.skipUntil(func(l string) bool { return !isSpace(l) })
			if strings.HasPrefix(line, "|") {
				line = r.skipUntil(func(l string) bool { return !strings.HasPrefix(l, "|") })
				if isSpace(line) {
					line = r.skipUntil(func(l string) bool { return !isSpace(l) })
				}
			}
		}
		lineno += r.next - start

		b.WriteString("\n")
		b.WriteString(strings.TrimSpace(generated.Markdown))
		if line != "" {
			b.WriteString("\n\n")
			b.WriteString(line)
		}
	}
	return strings.TrimRight(b.String(), "\n") + "\n"
}
