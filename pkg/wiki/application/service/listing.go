package service

import (
	"path"

	"github.com/osu-wiki/wikitools/pkg/wiki/application/model"
)

func ListArticles(workspace Workspace) ([]string, error) {
	return listMatching(workspace, model.IsArticle, model.WikiDir)
}

func ListArticlesAndNewsposts(workspace Workspace) ([]string, error) {
	return listMatching(workspace, func(filePath string) bool {
		return model.IsArticle(filePath) || model.IsNewspost(filePath)
	}, model.WikiDir, model.NewsDir)
}

// FilterArticlesAndNewsposts keeps the given paths that name articles or news posts.
func FilterArticlesAndNewsposts(filePaths []string) []string {
	var result []string
	for _, filePath := range filePaths {
		filePath = path.Clean(filePath)
		if model.IsArticle(filePath) || model.IsNewspost(filePath) {
			result = append(result, filePath)
		}
	}
	return result
}

// ListArticleDirs returns every wiki directory holding at least one article.
func ListArticleDirs(workspace Workspace) ([]string, error) {
	articles, err := ListArticles(workspace)
	if err != nil {
		return nil, err
	}
	var dirs []string
	seen := make(map[string]struct{})
	for _, article := range articles {
		dir := path.Dir(article)
		if _, ok := seen[dir]; ok {
			continue
		}
		seen[dir] = struct{}{}
		dirs = append(dirs, dir)
	}
	return uniqueSorted(dirs), nil
}

// ListTranslations returns the translations found directly inside the directories.
func ListTranslations(workspace Workspace, dirs []string) ([]string, error) {
	var translations []string
	for _, dir := range dirs {
		names, err := workspace.ListDir(dir)
		if err != nil {
			return nil, err
		}
		for _, name := range names {
			if model.IsTranslation(name) {
				translations = append(translations, path.Join(dir, name))
			}
		}
	}
	return translations, nil
}

func listMatching(workspace Workspace, match func(filePath string) bool, dirs ...string) ([]string, error) {
	files, err := workspace.ListFiles(dirs...)
	if err != nil {
		return nil, err
	}
	var result []string
	for _, filePath := range files {
		if match(filePath) {
			result = append(result, filePath)
		}
	}
	return result, nil
}
