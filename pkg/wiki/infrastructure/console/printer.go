package console

import (
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"

	"github.com/osu-wiki/wikitools/pkg/wiki/application/model"
)

var (
	Red    = color.New(color.FgRed).SprintFunc()
	Green  = color.New(color.FgGreen).SprintFunc()
	Blue   = color.New(color.FgBlue).SprintFunc()
	Yellow = color.New(color.FgYellow).SprintFunc()
	Grey   = color.New(color.FgHiBlack).SprintFunc()
)

// Printer writes reports for humans. Colours are dropped when the output is not a terminal.
type Printer struct {
	out io.Writer
}

func NewPrinter(out io.Writer) *Printer {
	return &Printer{out: out}
}

func (p *Printer) Println(a ...any) {
	fmt.Fprintln(p.out, a...)
}

func (p *Printer) Printf(format string, a ...any) {
	fmt.Fprintf(p.out, format, a...)
}

func (p *Printer) Error(format string, a ...any) {
	p.Println(Red("Error:"), fmt.Sprintf(format, a...))
}

func (p *Printer) Note(format string, a ...any) {
	p.Println(Blue("Note:"), fmt.Sprintf(format, a...))
}

func (p *Printer) Notice(format string, a ...any) {
	p.Println(Grey("Notice:"), fmt.Sprintf(format, a...))
}

// List prints one "* item" line per item.
func (p *Printer) List(colour func(a ...any) string, items []string) {
	for _, item := range items {
		p.Println(colour("* " + item))
	}
}

// Plural counts a noun: "1 file", "2 files".
func Plural(n int, noun string) string {
	if n == 1 {
		return fmt.Sprintf("%d %v", n, noun)
	}
	return fmt.Sprintf("%d %vs", n, noun)
}

// Location formats a position the way compilers do, with a 1-based column.
func Location(filePath string, lineno int, link model.Link, location string) string {
	return fmt.Sprintf("%v:%d:%d: %v", Yellow(filePath), lineno, link.Start+1, Red(location))
}

// HighlightLinks colours the given links of a raw line. Links must be ordered by position.
func HighlightLinks(rawLine string, links []model.Link) string {
	line := []rune(strings.TrimRight(rawLine, "\r\n"))
	var b strings.Builder
	prev := 0
	for _, link := range links {
		if link.Start < prev || link.End >= len(line) {
			continue
		}
		b.WriteString(string(line[prev:link.Start]))
		b.WriteString(colourLink(link))
		prev = link.End + 1
	}
	b.WriteString(string(line[prev:]))
	return b.String()
}

func colourLink(link model.Link) string {
	left, right := "(", ")"
	if link.IsReference {
		left, right = "[", "]"
	}
	return Green("["+link.Title+"]") + Green(left) + Red(link.RawLocation) + Blue(link.Extra) + Green(right)
}
