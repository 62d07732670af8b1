package markdown

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/osu-wiki/wikitools/pkg/wiki/application/model"
)

func lines(s ...string) string {
	return strings.Join(s, "\n")
}

func parse(t *testing.T, content string) model.Article {
	t.Helper()
	return ParseArticle("wiki/Article/en.md", content, model.NewFrontMatter(), []string{"/wiki/Sitemap"})
}

func locations(article model.Article) []string {
	var result []string
	for _, line := range article.Lines {
		for _, link := range line.Links {
			result = append(result, link.RawLocation)
		}
	}
	return result
}

func TestParseArticle(t *testing.T) {
	article := parse(t, lines(
		"---",
		"stub: true",
		"tags:",
		"  - k1",
		"  - m1",
		"---",
		"",
		"# An article",
		"",
		"Links! [Links](https://example.com)!",
		"",
		"Links, [zwo](/wiki/Article_two), [drei](Nested_article), [vier][vier_ref]!",
		"",
		"[Links][links_ref]!",
		"",
		"[links_ref]: https://example.com",
		"",
		"## List of references",
		"",
		`[vier_ref]: /wiki/Article_three "Links!"`,
	))

	assert.Equal(t, "wiki/Article", article.Directory)
	assert.Equal(t, "en.md", article.Filename)
	assert.Equal(t, "wiki/Article/en.md", article.Path())
	assert.Equal(t, map[string]int{"list-of-references": 18}, article.Identifiers)

	require.Len(t, article.References, 2)
	assert.Equal(t, 16, article.References["links_ref"].Lineno)
	assert.Equal(t, 20, article.References["vier_ref"].Lineno)
	assert.Equal(t, "Links!", article.References["vier_ref"].Title)

	keys := make([]int, 0, len(article.Lines))
	for lineno := range article.Lines {
		keys = append(keys, lineno)
	}
	assert.ElementsMatch(t, []int{10, 12, 14}, keys)
	assert.Equal(t, "Links! [Links](https://example.com)!\n", article.Lines[10].RawLine)
	assert.Equal(t, 5, article.LinkCount())
}

func TestParseArticleSkipsComments(t *testing.T) {
	article := parse(t, lines(
		"# An article",
		"",
		"<!-- rewrite this? do we even need it?",
		"    Hear the poetry:",
		"-->",
		"",
		"Roses are [red](/wiki/Red),",
		"Violets are [blue][blue_ref] ![](img/violet.png),",
		"I've written a program",
		"<!-- Which didn't have [a clue](/wiki/Clue) -->",
		"But neither should you.",
		"",
		"<!--",
		"Multiline [comments](/wiki/Comment)?",
		"In my [test](/wiki/Not_a_test)?",
		"",
		"[blue_ref]: /wiki/Blue",
		"A wild {id=identifier}",
		"-->",
		"",
		"<!-- Another wild {#identifier} -->",
	))

	assert.Empty(t, article.References)
	assert.ElementsMatch(t, []string{"/wiki/Red", "blue_ref", "img/violet.png"}, locations(article))
	assert.Empty(t, article.Identifiers)
}

func TestParseArticleRepeatingHeadings(t *testing.T) {
	article := parse(t, lines(
		"# Ranking criteria",
		"",
		"## Section",
		"",
		"## Section",
		"",
		"## Something else",
		"",
		"## Random",
		"",
		"<!-- A {#random} comment -->",
		"",
		"## Tricky section {#random}",
		"",
		"## Section",
	))

	assert.Equal(t, map[string]int{
		"section":        3,
		"section.1":      5,
		"something-else": 7,
		"random":         9,
		"random.1":       13,
		"section.2":      15,
	}, article.Identifiers)
}

func TestParseArticleIgnoresCommentedLinks(t *testing.T) {
	article := parse(t, lines(
		"# Comments",
		"",
		"<!-- Don't mention [comments](/wiki/HTML#comment). -->",
		"",
		"<!-- Don't mention the [comments](/wiki/HTML#comment) at all.",
		"    Yes, even if they span across several [lines](/wiki/Power_line).",
		"    Please be [silent](/wiki/Silence) about that, okay? --> [Test](/wiki/Test)",
		"",
		"There is [no](/wiki/No) support<!-- for the [comments](/wiki/HTML#comment) --> on the wiki.",
	))

	require.Len(t, article.Lines, 2)
	require.Len(t, article.Lines[7].Links, 1)
	assert.Equal(t, "/wiki/Test", article.Lines[7].Links[0].RawLocation)
	require.Len(t, article.Lines[9].Links, 1)
	assert.Equal(t, "/wiki/No", article.Lines[9].Links[0].RawLocation)
}

func TestParseArticleIgnoresCodeBlocks(t *testing.T) {
	article := parse(t, lines(
		"# Code blocks",
		"",
		"## Examples",
		"",
		"`[Inline](/wiki/Inline)` | `[b][i]Inline[/i][/b]`",
		"",
		"`` `[Also inline](/wiki/Also_inline)` ``",
		"",
		"Let's take a [break](/wiki/Gameplay/Break)!",
		"",
		"``Some`` [fun stuff](/wiki/Fun_stuff) ``here``.",
		"",
		"```",
		"[Multiline](/wiki/Multiline)",
		"[b][i]No[/i][/b]",
		"```",
		"",
		"```markdown",
		"[Multiline with syntax highlighting](/wiki/Multiline#syntax-highlighting)",
		"[wow][wow_ref]",
		"",
		"[wow_ref]: /wiki/Wow",
		"```",
	))

	require.Len(t, article.Lines, 2)
	assert.Equal(t, "/wiki/Gameplay/Break", article.Lines[9].Links[0].RawLocation)
	assert.Equal(t, "/wiki/Fun_stuff", article.Lines[11].Links[0].RawLocation)
	assert.Empty(t, article.References)
}

func TestParseArticleIgnoredLinks(t *testing.T) {
	article := parse(t, "See the [sitemap](/wiki/Sitemap) and [more](/wiki/More).\n")
	assert.Equal(t, []string{"/wiki/More"}, locations(article))
}
