package markdown

import "strings"

// Comment is an HTML comment on a line. A bound of -1 means the comment continues
// from the previous line (Start) or to the next line (End).
type Comment struct {
	Start int
	End   int
}

type CommentParser struct {
	inMultiline bool
}

func (p *CommentParser) InMultiline() bool {
	return p.inMultiline
}

func (p *CommentParser) Parse(line string) []Comment {
	s := []rune(line)
	var comments []Comment
	index := 0
	for {
		start := -1
		if !p.inMultiline {
			start = runeIndex(s, "<!--", index)
			if start == -1 {
				return comments
			}
		}

		end := runeIndex(s, "-->", max(start, index))
		switch {
		case end != -1:
			comments = append(comments, Comment{Start: start, End: end + 2})
			p.inMultiline = false
			index = end + 3
		case p.inMultiline:
			return append(comments, Comment{Start: -1, End: -1})
		default:
			p.inMultiline = true
			return append(comments, Comment{Start: start, End: -1})
		}
	}
}

func IsInComment(pos int, comments []Comment) bool {
	for _, comment := range comments {
		if (comment.Start == -1 || pos >= comment.Start) && (comment.End == -1 || pos <= comment.End) {
			return true
		}
	}
	return false
}

func runeIndex(s []rune, substr string, from int) int {
	if from < 0 {
		from = 0
	}
	if from > len(s) {
		return -1
	}
	i := strings.Index(string(s[from:]), substr)
	if i == -1 {
		return -1
	}
	return from + len([]rune(string(s[from:])[:i]))
}
