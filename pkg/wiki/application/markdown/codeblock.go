package markdown

import "sort"

// CodeBlock is a backtick-delimited span. Start is the first backtick of the opening tag and
// ClosedAt the first backtick of the closing tag; -1 marks continuation across lines.
type CodeBlock struct {
	Start    int
	ClosedAt int
	TagLen   int
}

func (b CodeBlock) IsMultiline() bool {
	return b.ClosedAt == -1 && b.TagLen == 3
}

func (b CodeBlock) Contains(other CodeBlock) bool {
	return b.Start < other.Start && b.ClosedAt > other.ClosedAt && b.TagLen > other.TagLen
}

type codeTag struct {
	start int
	len   int
}

type CodeBlockParser struct {
	inMultiline bool
}

func (p *CodeBlockParser) InMultiline() bool {
	return p.inMultiline
}

func (p *CodeBlockParser) Parse(line string) []CodeBlock {
	s := []rune(line)
	var blocks []CodeBlock
	var stack []codeTag
	if p.inMultiline {
		stack = append(stack, codeTag{start: -1, len: 3})
	}

	for i := 0; i < len(s); {
		if s[i] != '`' {
			i++
			continue
		}
		cnt := 0
		for i+cnt < len(s) && s[i+cnt] == '`' {
			cnt++
		}
		if len(stack) > 0 && stack[len(stack)-1].len == cnt {
			opening := stack[len(stack)-1]
			stack = stack[:len(stack)-1]
			blocks = append(blocks, CodeBlock{Start: opening.start, ClosedAt: i, TagLen: opening.len})
		} else {
			stack = append(stack, codeTag{start: i, len: cnt})
		}
		i += cnt
	}

	if len(stack) > 0 {
		// an unclosed triple backtick takes priority over everything else on the line
		if stack[0].len == 3 {
			p.inMultiline = true
			return []CodeBlock{{Start: stack[0].start, ClosedAt: -1, TagLen: 3}}
		}
		p.inMultiline = len(blocks) > 0 && blocks[0].IsMultiline()
		return blocks
	}

	sort.Slice(blocks, func(i, j int) bool {
		a, b := blocks[i], blocks[j]
		if a.Start != b.Start {
			return a.Start < b.Start
		}
		if a.ClosedAt != b.ClosedAt {
			return a.ClosedAt < b.ClosedAt
		}
		return a.TagLen < b.TagLen
	})
	var filtered []CodeBlock
	for i := 0; i < len(blocks); {
		filtered = append(filtered, blocks[i])
		i++
		for i < len(blocks) && filtered[len(filtered)-1].Contains(blocks[i]) {
			i++
		}
	}

	p.inMultiline = len(filtered) > 0 && filtered[0].IsMultiline()
	return filtered
}

func IsInCodeBlock(pos int, blocks []CodeBlock) bool {
	for _, block := range blocks {
		if (block.Start == -1 || block.Start < pos) && (block.ClosedAt == -1 || pos < block.ClosedAt) {
			return true
		}
	}
	return false
}
