package service_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/osu-wiki/wikitools/pkg/wiki/application/service"
)

func TestCheckFiles(t *testing.T) {
	workspace := newWorkspace(t, map[string]string{
		"wiki/Article/en.md":     "",
		"wiki/Article/ru.md":     "",
		"wiki/Orphan/fr.md":      "",
		"wiki/Wrong_case/EN.md":  "",
		"wiki/Wrong_case/de.md":  "",
		"news/2023/news-post.md": "",
	})

	filePaths, err := service.ListArticles(workspace)
	require.NoError(t, err)
	filePaths = append(filePaths, "news/2023/news-post.md")

	report := service.NewFileCheckerService(workspace).CheckFiles(filePaths)
	assert.Equal(t, 6, report.CheckedFiles)
	assert.Equal(t, []service.MissingOriginal{
		{Path: "wiki/Orphan/fr.md", OriginalPath: "wiki/Orphan/en.md"},
		{Path: "wiki/Wrong_case/EN.md", OriginalPath: "wiki/Wrong_case/en.md"},
		{Path: "wiki/Wrong_case/de.md", OriginalPath: "wiki/Wrong_case/en.md"},
	}, report.Errors)
	assert.Equal(t,
		"The original article wiki/Orphan/en.md is missing for this translation",
		report.Errors[0].Error(),
	)
}

func TestListing(t *testing.T) {
	workspace := newWorkspace(t, map[string]string{
		"wiki/Article/en.md":          "",
		"wiki/Article/ru.md":          "",
		"wiki/Article/img/pic.png":    "",
		"wiki/Article/Sub/en.md":      "",
		"wiki/Other/pt-br.md":         "",
		"wiki/redirect.yaml":          "",
		"news/2023/news-post-a.md":    "",
		"news/2023/img/picture.jpg":   "",
		"README.md":                   "",
		"meta/unused-files/something": "",
	})

	articles, err := service.ListArticles(workspace)
	require.NoError(t, err)
	assert.Equal(t, []string{
		"wiki/Article/Sub/en.md",
		"wiki/Article/en.md",
		"wiki/Article/ru.md",
		"wiki/Other/pt-br.md",
	}, articles)

	all, err := service.ListArticlesAndNewsposts(workspace)
	require.NoError(t, err)
	assert.Equal(t, append([]string{"news/2023/news-post-a.md"}, articles...), all)

	dirs, err := service.ListArticleDirs(workspace)
	require.NoError(t, err)
	assert.Equal(t, []string{"wiki/Article", "wiki/Article/Sub", "wiki/Other"}, dirs)

	translations, err := service.ListTranslations(workspace, dirs)
	require.NoError(t, err)
	assert.Equal(t, []string{"wiki/Article/ru.md", "wiki/Other/pt-br.md"}, translations)

	assert.Equal(t, []string{"wiki/Article/en.md", "news/2023/news-post-a.md"}, service.FilterArticlesAndNewsposts([]string{
		"./wiki/Article/en.md", "wiki/Article/img/pic.png", "news/2023/news-post-a.md", "README.md",
	}))
}
