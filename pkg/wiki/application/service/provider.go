package service

import (
	"context"

	"github.com/osu-wiki/wikitools/pkg/wiki/application/model"
	"github.com/osu-wiki/wikitools/pkg/wiki/application/table"
)

// Workspace gives access to the files of a wiki repository through slash separated paths
// relative to its root.
type Workspace interface {
	Exists(filePath string) bool
	Canonical(filePath string) (string, bool)
	ExistsCaseSensitive(filePath string) bool
	IsFile(filePath string) bool
	IsDir(filePath string) bool
	ReadFile(filePath string) (string, error)
	WriteFile(filePath, content string) error
	ListFiles(dirs ...string) ([]string, error)
	ListDir(dir string) ([]string, error)
}

type ArticleProvider interface {
	Load(filePath string) (model.Article, error)
}

type FrontMatterStore interface {
	Load(filePath string) (model.FrontMatter, error)
	Save(filePath string, frontMatter model.FrontMatter) error
}

type RedirectProvider interface {
	Redirects() (model.Redirects, error)
}

type GitProvider interface {
	DiffNames(ctx context.Context, base string, pathspecs ...string) ([]string, error)
	CommitExists(ctx context.Context, hash string) (bool, error)
	FirstBranchCommit(ctx context.Context, base string) (string, error)
	Add(ctx context.Context, paths ...string) error
	Commit(ctx context.Context, message string) error
	ShowHead(ctx context.Context) (string, error)
}

type YAMLLinter interface {
	Lint(payload string, frontMatter bool) []model.YAMLProblem
	IsIgnored(filePath string) bool
	IsYAMLFile(filePath string) bool
}

// YAMLLinterLoader builds a linter from a lint configuration file. A missing file means the defaults.
type YAMLLinterLoader interface {
	Load(configPath string) (YAMLLinter, error)
}

type TemplateProvider interface {
	Descriptors(filePath string) ([]table.Descriptor, error)
	Data(filePath string) (table.Data, error)
}
