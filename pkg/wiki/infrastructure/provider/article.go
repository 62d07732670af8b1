package provider

import (
	"github.com/pkg/errors"

	"github.com/osu-wiki/wikitools/pkg/wiki/application/markdown"
	"github.com/osu-wiki/wikitools/pkg/wiki/application/model"
	"github.com/osu-wiki/wikitools/pkg/wiki/application/service"
	"github.com/osu-wiki/wikitools/pkg/wiki/infrastructure/frontmatter"
)

func NewArticleProvider(workspace service.Workspace, settings model.Settings) service.ArticleProvider {
	return &articleProvider{
		workspace:    workspace,
		ignoredLinks: settings.IgnoredLinks,
	}
}

type articleProvider struct {
	workspace    service.Workspace
	ignoredLinks []string
}

func (provider articleProvider) Load(filePath string) (model.Article, error) {
	content, err := provider.workspace.ReadFile(filePath)
	if err != nil {
		return model.Article{}, err
	}
	frontMatter, err := frontmatter.Parse(content)
	if err != nil {
		return model.Article{}, errors.Wrapf(err, "failed to load front matter of %v", filePath)
	}
	return markdown.ParseArticle(filePath, content, frontMatter, provider.ignoredLinks), nil
}

func NewFrontMatterStore(workspace service.Workspace) service.FrontMatterStore {
	return &frontMatterStore{workspace: workspace}
}

type frontMatterStore struct {
	workspace service.Workspace
}

func (store frontMatterStore) Load(filePath string) (model.FrontMatter, error) {
	content, err := store.workspace.ReadFile(filePath)
	if err != nil {
		return model.FrontMatter{}, err
	}
	frontMatter, err := frontmatter.Parse(content)
	return frontMatter, errors.Wrapf(err, "failed to load front matter of %v", filePath)
}

// Save replaces the front matter of the file and keeps the rest of it.
func (store frontMatterStore) Save(filePath string, frontMatter model.FrontMatter) error {
	content, err := store.workspace.ReadFile(filePath)
	if err != nil {
		return err
	}
	rendered, err := frontmatter.Render(frontMatter, frontmatter.Split(content).Body)
	if err != nil {
		return errors.Wrapf(err, "failed to save front matter of %v", filePath)
	}
	return store.workspace.WriteFile(filePath, rendered)
}
