package markdown

import "github.com/osu-wiki/wikitools/pkg/wiki/application/model"

type linkState int

const (
	stateIdle linkState = iota
	stateStart
	stateInline
	stateReference
)

type brackets struct {
	left  rune
	right rune
	depth int
}

func (b *brackets) closed(c rune) bool {
	switch c {
	case b.left:
		b.depth++
	case b.right:
		b.depth--
	}
	return b.depth == 0
}

// FindLink returns the first link of the line that starts at or after the rune index from.
func FindLink(line string, from int) (model.Link, bool) {
	return findLink([]rune(line), from)
}

// FindLinks returns every link of the line, left to right.
func FindLinks(line string) []model.Link {
	s := []rune(line)
	var links []model.Link
	link, ok := findLink(s, 0)
	for ok {
		links = append(links, link)
		link, ok = findLink(s, link.End+1)
	}
	return links
}

func findLink(s []rune, from int) (model.Link, bool) {
	state := stateIdle
	start, location, extra := 0, 0, -1
	parens := brackets{left: '(', right: ')'}
	square := brackets{left: '[', right: ']'}

	for i := from; i < len(s); i++ {
		c := s[i]
		switch state {
		case stateIdle:
			if c == '[' {
				square.depth++
				state = stateStart
				start = i
			}
		case stateStart:
			if !square.closed(c) {
				continue
			}
			if i+1 >= len(s) {
				state = stateIdle
				continue
			}
			switch s[i+1] {
			case '(':
				state = stateInline
				location = i + 2
			case '[':
				state = stateReference
				location = i + 2
			default:
				state = stateIdle
			}
		case stateInline:
			if c == ' ' && extra == -1 {
				extra = i
			}
			if parens.closed(c) {
				if extra == -1 {
					extra = i
				}
				raw := string(s[location:extra])
				return model.Link{
					Start:       start,
					End:         i,
					Title:       string(s[start+1 : location-2]),
					RawLocation: raw,
					Location:    model.ParseLocation(raw),
					Extra:       string(s[extra:i]),
				}, true
			}
		case stateReference:
			if square.closed(c) {
				raw := string(s[location:i])
				return model.Link{
					Start:       start,
					End:         i,
					Title:       string(s[start+1 : location-2]),
					RawLocation: raw,
					Location:    model.ParseLocation(raw),
					IsReference: true,
				}, true
			}
		}
	}
	return model.Link{}, false
}
