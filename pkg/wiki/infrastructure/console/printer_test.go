package console

import (
	"bytes"
	"testing"

	"github.com/fatih/color"
	"github.com/stretchr/testify/assert"

	"github.com/osu-wiki/wikitools/pkg/wiki/application/markdown"
)

func TestMain(m *testing.M) {
	color.NoColor = true
	m.Run()
}

func TestPrinter(t *testing.T) {
	var out bytes.Buffer
	printer := NewPrinter(&out)

	printer.Error("%v broken", Plural(2, "link"))
	printer.Note("Found %v.", Plural(1, "error"))
	printer.Notice("nothing to do")
	printer.List(Green, []string{"wiki/A/ru.md", "wiki/B/ru.md"})

	assert.Equal(t, "Error: 2 links broken\n"+
		"Note: Found 1 error.\n"+
		"Notice: nothing to do\n"+
		"* wiki/A/ru.md\n"+
		"* wiki/B/ru.md\n", out.String())
}

func TestHighlightLinks(t *testing.T) {
	line := "See ![img](img/a.png \"title\") and [ref][r] here.\n"
	links := markdown.FindLinks(line)

	assert.Equal(t, "See ![img](img/a.png \"title\") and [ref][r] here.", HighlightLinks(line, links))
	assert.Equal(t, "wiki/A/en.md:1:6: img/a.png", Location("wiki/A/en.md", 1, links[0], links[0].RawLocation))
}
