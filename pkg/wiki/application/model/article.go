package model

import (
	"path"
	"strings"
)

const (
	WikiDir          = "wiki"
	NewsDir          = "news"
	OriginalFilename = "en.md"
)

type ArticleLine struct {
	RawLine string
	Links   []Link
}

// Article keeps the parts of a wiki file the checkers care about: lines with links,
// reference definitions and the identifiers other articles may link to.
type Article struct {
	Directory   string
	Filename    string
	Lines       map[int]ArticleLine
	References  References
	Identifiers map[string]int
	FrontMatter FrontMatter
}

func NewArticle(filePath string) Article {
	return Article{
		Directory:   path.Dir(filePath),
		Filename:    path.Base(filePath),
		Lines:       make(map[int]ArticleLine),
		References:  make(References),
		Identifiers: make(map[string]int),
		FrontMatter: NewFrontMatter(),
	}
}

func (a Article) Path() string {
	return a.Directory + "/" + a.Filename
}

func (a Article) LinkCount() int {
	count := 0
	for _, line := range a.Lines {
		count += len(line.Links)
	}
	return count
}

// IsOutdated reports articles explicitly marked as outdated or as outdated translations.
func (a Article) IsOutdated() bool {
	return a.FrontMatter.Bool("outdated") || a.FrontMatter.Bool("outdated_translation")
}

func (a Article) IsTranslation() bool {
	return IsTranslation(a.Path())
}

func IsArticle(filePath string) bool {
	name := path.Base(filePath)
	for _, pattern := range []string{"??.md", "???.md", "??-??.md"} {
		if ok, _ := path.Match(pattern, name); ok {
			return true
		}
	}
	return false
}

func IsOriginal(filePath string) bool {
	return path.Base(filePath) == OriginalFilename
}

func IsTranslation(filePath string) bool {
	return IsArticle(filePath) && !IsOriginal(filePath)
}

func IsNewspost(filePath string) bool {
	dir := path.Dir(filePath)
	return (dir == NewsDir || strings.HasPrefix(dir, NewsDir+"/")) && strings.HasSuffix(filePath, ".md")
}

// WikiRelative strips the wiki/ prefix from a repository path.
func WikiRelative(filePath string) string {
	if filePath == WikiDir {
		return ""
	}
	return strings.TrimPrefix(filePath, WikiDir+"/")
}
