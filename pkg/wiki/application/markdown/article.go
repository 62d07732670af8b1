package markdown

import (
	"fmt"
	"strings"

	"github.com/osu-wiki/wikitools/pkg/wiki/application/model"
)

// ParseArticle reads an article line by line, extracting links, identifiers and references.
// Anything inside HTML comments or code blocks is skipped. Line numbers count from the top of
// the file, front matter included.
func ParseArticle(filePath, content string, frontMatter model.FrontMatter, ignoredLinks []string) model.Article {
	article := model.NewArticle(filePath)
	article.FrontMatter = frontMatter

	ignored := make(map[string]struct{}, len(ignoredLinks))
	for _, link := range ignoredLinks {
		ignored[link] = struct{}{}
	}

	var comments CommentParser
	var codeBlocks CodeBlockParser
	counter := make(map[string]int)

	for i, line := range strings.SplitAfter(content, "\n") {
		if line == "" {
			continue
		}
		lineno := i + 1
		lineComments := comments.Parse(line)
		lineCodeBlocks := codeBlocks.Parse(line)
		if comments.InMultiline() || codeBlocks.InMultiline() {
			continue
		}

		var links []model.Link
		for _, link := range FindLinks(line) {
			if _, ok := ignored[link.Content()]; ok {
				continue
			}
			if IsInComment(link.Start, lineComments) || IsInCodeBlock(link.Start, lineCodeBlocks) {
				continue
			}
			links = append(links, link)
		}
		if len(links) > 0 {
			article.Lines[lineno] = model.ArticleLine{RawLine: line, Links: links}
		}

		if identifier, pos, ok := ExtractIdentifier(line); ok && !IsInComment(pos, lineComments) {
			counter[identifier]++
			if _, exists := article.Identifiers[identifier]; exists {
				identifier = fmt.Sprintf("%v.%d", identifier, counter[identifier]-1)
			}
			article.Identifiers[identifier] = lineno
		}

		if strings.HasPrefix(line, "[") {
			if reference, ok := ExtractReference(strings.TrimSpace(line), lineno); ok {
				article.References[reference.Name] = reference
			}
		}
	}
	return article
}
