package table

import (
	"strings"

	"github.com/osu-wiki/wikitools/pkg/wiki/application/markdown"
)

const (
	tagLeft            = "<<"
	tagRight           = ">>"
	tagActionSeparator = ":"
	tagListSeparator   = "|"
)

type Action func(value string) string

var actions = map[string]Action{
	"mode icon": ModeIcon,
	"icon link": IconLink,
}

func ModeIcon(mode string) string {
	switch mode {
	case "osu!":
		return "![](/wiki/shared/icon/osu.png)"
	case "osu!taiko":
		return "![](/wiki/shared/icon/taiko.png)"
	case "osu!catch":
		return "![](/wiki/shared/icon/catch.png)"
	case "osu!mania":
		return "![](/wiki/shared/icon/mania.png)"
	}
	return ""
}

func IconLink(link string) string {
	icon := ""
	switch {
	case strings.Contains(link, "osu.ppy.sh"), strings.Contains(link, "assets.ppy.sh"):
		icon = "osu"
	case strings.Contains(link, "soundcloud.com"):
		icon = "soundcloud"
	case strings.Contains(link, "youtube.com"), strings.Contains(link, "youtu.be"):
		icon = "youtube"
	case strings.Contains(link, "spotify.com"):
		icon = "spotify"
	case strings.Contains(link, "bandcamp.com"):
		icon = "bandcamp"
	default:
		return ""
	}
	return "[![](/wiki/shared/icon/" + icon + ".png)](" + link + ")"
}

type tag struct {
	columns []string
	action  Action
}

// component is either literal text or a tag.
type component struct {
	text string
	tag  *tag
}

// Format is a template string where <<[action:] Column | Fallback column>> tags are replaced
// with row values. The first non-empty column wins.
type Format struct {
	components []component
}

func ParseFormat(s string) Format {
	var format Format
	index := 0
	for {
		left, right, ok := findTag(s, index)
		if !ok {
			format.appendText(s[index:])
			return format
		}
		format.appendText(s[index:left])
		index = right + len(tagRight)

		split := strings.Split(s[left+len(tagLeft):right], tagActionSeparator)
		if len(split) > 2 {
			continue
		}
		var action Action
		rest := split[0]
		if len(split) == 2 {
			action = actions[strings.TrimSpace(split[0])]
			rest = split[1]
		}
		columns := strings.Split(rest, tagListSeparator)
		for i, column := range columns {
			columns[i] = strings.TrimSpace(column)
		}
		format.components = append(format.components, component{tag: &tag{columns: columns, action: action}})
	}
}

func (f *Format) appendText(s string) {
	// literal text is kept rune by rune so that single spaces between tags can be pruned
	for _, r := range s {
		f.components = append(f.components, component{text: string(r)})
	}
}

func findTag(s string, from int) (int, int, bool) {
	left := strings.Index(s[from:], tagLeft)
	if left == -1 {
		return 0, 0, false
	}
	left += from
	right := strings.Index(s[left+len(tagLeft):], tagRight)
	if right == -1 {
		return 0, 0, false
	}
	return left, right + left + len(tagLeft), true
}

func (f Format) Apply(row Row) string {
	evaluated := make([]string, 0, len(f.components))
	for _, c := range f.components {
		if c.tag == nil {
			evaluated = append(evaluated, c.text)
			continue
		}
		value := ""
		for _, column := range c.tag.columns {
			if v, _ := row.Get(column); v != "" {
				value = v
				break
			}
		}
		if value != "" && c.tag.action != nil {
			value = c.tag.action(value)
		}
		evaluated = append(evaluated, value)
	}
	return pruneLinks(strings.Join(pruneSpaces(evaluated), ""))
}

// pruneSpaces collapses whitespace around tags that evaluated to nothing into at most one space.
func pruneSpaces(evaluated []string) []string {
	pruned := append([]string(nil), evaluated...)
	last := len(evaluated) - 1
	for i, s := range evaluated {
		switch {
		case isSpace(s):
			if (i != 0 && evaluated[i-1] == "") || (i != last && evaluated[i+1] == "") {
				pruned[i] = ""
			}
		case s == "":
			if i != 0 && isSpace(evaluated[i-1]) && i != last && isSpace(evaluated[i+1]) {
				pruned[i] = " "
			}
		}
	}
	return pruned
}

// pruneLinks removes links without text and unwraps links without a location. Images are kept.
func pruneLinks(s string) string {
	links := markdown.FindLinks(s)
	if len(links) == 0 {
		return s
	}
	r := []rune(s)
	var b strings.Builder
	prev := 0
	for _, link := range links {
		switch {
		case link.Start > 0 && r[link.Start-1] == '!':
			b.WriteString(string(r[prev : link.End+1]))
		case link.Title == "":
			b.WriteString(string(r[prev:link.Start]))
		case link.RawLocation == "":
			b.WriteString(string(r[prev:link.Start]))
			b.WriteString(link.Title)
		default:
			b.WriteString(string(r[prev : link.End+1]))
		}
		prev = link.End + 1
	}
	b.WriteString(string(r[prev:]))
	return b.String()
}

func isSpace(s string) bool {
	return s != "" && strings.TrimSpace(s) == ""
}
