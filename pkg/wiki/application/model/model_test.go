package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseLocation(t *testing.T) {
	for raw, expected := range map[string]Location{
		"/wiki/Example":                        {Path: "/wiki/Example"},
		"/wiki/M#manual":                       {Path: "/wiki/M", Fragment: "manual"},
		"https://example.com/?test=1":          {Scheme: "https", Netloc: "example.com", Path: "/", Query: "test=1"},
		"mailto:accounts@example.com":          {Scheme: "mailto", Path: "accounts@example.com"},
		"irc://cho.ppy.sh":                     {Scheme: "irc", Netloc: "cho.ppy.sh"},
		"htttttttttttttttttps://example.com":   {Scheme: "htttttttttttttttttps", Netloc: "example.com"},
		"//example.com":                        {Netloc: "example.com"},
		"#references":                          {Fragment: "references"},
		"img/you%20tried.jpeg":                 {Path: "img/you%20tried.jpeg"},
		"HTTPS://osu.ppy.sh/home/news?x=1#top": {Scheme: "https", Netloc: "osu.ppy.sh", Path: "/home/news", Query: "x=1", Fragment: "top"},
	} {
		assert.Equal(t, expected, ParseLocation(raw), raw)
	}
}

func TestPathClassification(t *testing.T) {
	assert.True(t, IsArticle("wiki/Article/en.md"))
	assert.True(t, IsArticle("wiki/Article/fil.md"))
	assert.True(t, IsArticle("wiki/Article/zh-tw.md"))
	assert.False(t, IsArticle("wiki/Article/readme.md"))
	assert.False(t, IsArticle("wiki/Article/img/en.png"))

	assert.True(t, IsOriginal("wiki/Article/en.md"))
	assert.True(t, IsTranslation("wiki/Article/ru.md"))
	assert.False(t, IsTranslation("wiki/Article/en.md"))

	assert.True(t, IsNewspost("news/2023/some-news.md"))
	assert.False(t, IsNewspost("news/2023/image.png"))
	assert.False(t, IsNewspost("wiki/news/en.md"))

	assert.Equal(t, "Article/Sub", WikiRelative("wiki/Article/Sub"))
}

func TestFrontMatter(t *testing.T) {
	fm := NewFrontMatter()
	fm.Set("title", "test")
	fm.Set("outdated", true)
	fm.Set("tags", []any{"a"})
	fm.Set("title", "changed")

	assert.Equal(t, []string{"title", "outdated", "tags"}, fm.Keys())
	assert.True(t, fm.Bool("outdated"))
	assert.False(t, fm.Bool("stub"))

	clone := fm.Clone()
	assert.True(t, clone.Equal(fm))
	clone.Delete("outdated")
	assert.False(t, clone.Equal(fm))
	assert.Equal(t, []string{"title", "tags"}, clone.Keys())
	assert.Equal(t, 3, fm.Len())

	fm.Set("outdated_since", 1234567)
	hash, ok := fm.Text("outdated_since")
	assert.True(t, ok)
	assert.Equal(t, "1234567", hash)
	_, ok = fm.Text("tags")
	assert.False(t, ok)

	assert.True(t, NewFrontMatter().Equal(FrontMatter{}))
}

func TestArticleIsOutdated(t *testing.T) {
	article := NewArticle("wiki/Article/ru.md")
	assert.False(t, article.IsOutdated())
	assert.True(t, article.IsTranslation())
	article.FrontMatter.Set("outdated_translation", true)
	assert.True(t, article.IsOutdated())
}

func TestLinkErrorMessages(t *testing.T) {
	notFound := &LinkError{Kind: LinkNotFound, ResolvedLocation: "/wiki/Broken_link"}
	assert.Equal(t, `"/wiki/Broken_link" was not found`, notFound.Error())

	redirect := &LinkError{Kind: BrokenRedirect, ResolvedLocation: "Old_link", RedirectLineno: 2, RedirectDestination: "Wrong_redirect"}
	assert.Equal(t, "Broken redirect (redirect.yaml:2: old_link --> Wrong_redirect)", redirect.Error())

	reference := &Reference{Lineno: 1, Name: "flag_XX", RawLocation: "/wiki/shared/img/XX.gif"}
	withReference := &LinkError{Kind: LinkNotFound, Link: Link{RawLocation: "flag_XX", IsReference: true}, Reference: reference}
	assert.Equal(t, "/wiki/shared/img/XX.gif", withReference.Location())
	assert.Equal(t, []string{"Reference at line 1: [flag_XX]: /wiki/shared/img/XX.gif"}, withReference.Notes())
}

func TestReferenceEnd(t *testing.T) {
	assert.Equal(t, len("[ref]: /a"), Reference{Name: "ref", RawLocation: "/a"}.End())
	assert.Equal(t, len(`[ref]: /a "alt"`), Reference{Name: "ref", RawLocation: "/a", Title: "alt"}.End())
}
