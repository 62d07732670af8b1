package service_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tss-calculator/go-lib/pkg/infrastructure/logger"

	"github.com/osu-wiki/wikitools/pkg/wiki/application/model"
	"github.com/osu-wiki/wikitools/pkg/wiki/application/service"
	"github.com/osu-wiki/wikitools/pkg/wiki/infrastructure/provider"
)

const firstBranchCommit = "1f2e3d4c5b6a"

type fakeGitProvider struct {
	// diffs maps pathspecs to the files changed since the base commit
	diffs   map[string][]string
	commits map[string]bool

	existsCalls int
	added       []string
	commitMsg   string
}

func (git *fakeGitProvider) DiffNames(_ context.Context, _ string, pathspecs ...string) ([]string, error) {
	var result []string
	for _, pathspec := range pathspecs {
		result = append(result, git.diffs[pathspec]...)
	}
	return result, nil
}

func (git *fakeGitProvider) CommitExists(_ context.Context, hash string) (bool, error) {
	git.existsCalls++
	return git.commits[hash], nil
}

func (git *fakeGitProvider) FirstBranchCommit(context.Context, string) (string, error) {
	return firstBranchCommit, nil
}

func (git *fakeGitProvider) Add(_ context.Context, paths ...string) error {
	git.added = append(git.added, paths...)
	return nil
}

func (git *fakeGitProvider) Commit(_ context.Context, message string) error {
	git.commitMsg = message
	return nil
}

func (git *fakeGitProvider) ShowHead(context.Context) (string, error) {
	return "commit " + firstBranchCommit, nil
}

func newOutdatedChecker(workspace service.Workspace, git service.GitProvider) service.OutdatedChecker {
	return service.NewOutdatedCheckerService(
		logger.NewTextLogger(),
		model.DefaultSettings(),
		workspace,
		provider.NewFrontMatterStore(workspace),
		git,
	)
}

func outdatedRepository(t *testing.T) service.Workspace {
	t.Helper()
	return newWorkspace(t, map[string]string{
		"wiki/Article/en.md":     "# Article\n",
		"wiki/Article/ru.md":     "# Статья\n",
		"wiki/Article/fr.md":     "---\noutdated_translation: true\noutdated_since: 0a1b2c3d\n---\n\n# Article\n",
		"wiki/Article/es.md":     "---\noutdated_since: 0a1b2c3d\n---\n\n# Artículo\n",
		"wiki/Article/pt-br.md":  "# Artigo\n",
		"wiki/Article/Sub/en.md": "# Sub\n",
		"wiki/Article/Sub/ru.md": "# Под\n",
		"wiki/Other/en.md":       "# Other\n",
		"wiki/Other/ru.md":       "# Другая\n",
	})
}

func TestCheckOutdatedNoOriginalsModified(t *testing.T) {
	git := &fakeGitProvider{}
	report, err := newOutdatedChecker(outdatedRepository(t), git).CheckOutdated(
		context.Background(), service.OutdatedCheckOptions{BaseCommit: "master"},
	)
	require.NoError(t, err)
	assert.False(t, report.OriginalsModified)
	assert.Empty(t, report.ToOutdate)
	assert.False(t, report.Failed())
}

func TestCheckOutdatedFindsUnmarkedTranslations(t *testing.T) {
	git := &fakeGitProvider{
		diffs: map[string][]string{
			"wiki/**/en.md": {"wiki/Article/en.md", "wiki/Article/Sub/en.md"},
			"wiki/**/*.md":  {"wiki/Article/en.md", "wiki/Article/Sub/en.md", "wiki/Article/pt-br.md"},
		},
	}
	report, err := newOutdatedChecker(outdatedRepository(t), git).CheckOutdated(
		context.Background(), service.OutdatedCheckOptions{BaseCommit: "master"},
	)
	require.NoError(t, err)

	assert.True(t, report.OriginalsModified)
	assert.Equal(t, []string{"wiki/Article/ru.md", "wiki/Article/Sub/ru.md"}, report.ToOutdate)
	assert.Equal(t, 2, report.Candidates)
	assert.Equal(t, firstBranchCommit, report.Hash)
	assert.False(t, report.Autofixed)
	assert.True(t, report.Failed())
	assert.Empty(t, report.BadHashes)
}

func TestCheckOutdatedAutofix(t *testing.T) {
	workspace := outdatedRepository(t)
	git := &fakeGitProvider{
		diffs: map[string][]string{
			"wiki/**/en.md": {"wiki/Other/en.md"},
		},
	}
	report, err := newOutdatedChecker(workspace, git).CheckOutdated(context.Background(), service.OutdatedCheckOptions{
		BaseCommit:    "master",
		OutdatedSince: "abcdef0",
		Autofix:       true,
		Autocommit:    true,
	})
	require.NoError(t, err)

	assert.Equal(t, []string{"wiki/Other/ru.md"}, report.ToOutdate)
	assert.Equal(t, "abcdef0", report.Hash)
	assert.True(t, report.Autofixed)
	assert.True(t, report.Committed)
	assert.False(t, report.Failed())
	assert.Equal(t, "commit "+firstBranchCommit, report.HeadCommit)
	assert.Equal(t, []string{"wiki/Other/ru.md"}, git.added)
	assert.Equal(t, model.DefaultSettings().AutocommitMessage, git.commitMsg)

	content, err := workspace.ReadFile("wiki/Other/ru.md")
	require.NoError(t, err)
	assert.Equal(t, "---\noutdated_translation: true\noutdated_since: abcdef0\n---\n\n# Другая\n", content)
}

func TestCheckOutdatedBadHashes(t *testing.T) {
	git := &fakeGitProvider{
		diffs: map[string][]string{
			"wiki/**/*.md": {"wiki/Article/fr.md", "wiki/Article/es.md"},
		},
	}
	report, err := newOutdatedChecker(outdatedRepository(t), git).CheckOutdated(
		context.Background(), service.OutdatedCheckOptions{BaseCommit: "master"},
	)
	require.NoError(t, err)

	assert.Equal(t, []string{"wiki/Article/fr.md", "wiki/Article/es.md"}, report.BadHashes)
	assert.Equal(t, 1, git.existsCalls)
	assert.Equal(t, firstBranchCommit, report.Hash)
	assert.True(t, report.Failed())
}

func TestCheckOutdatedAllTranslations(t *testing.T) {
	git := &fakeGitProvider{commits: map[string]bool{"0a1b2c3d": true}}
	report, err := newOutdatedChecker(outdatedRepository(t), git).CheckOutdated(
		context.Background(), service.OutdatedCheckOptions{BaseCommit: "master", All: true},
	)
	require.NoError(t, err)
	assert.Empty(t, report.BadHashes)
	assert.Equal(t, 1, git.existsCalls)
	assert.False(t, report.Failed())
}

func TestCheckOutdatedExclude(t *testing.T) {
	workspace := newWorkspace(t, map[string]string{
		"wiki/Article/en.md":        "# Article\n",
		"wiki/Article/ru.md":        "# Статья\n",
		"wiki/Article/fr.md":        "# Article\n",
		"wiki/Article/Sub/en.md":    "# Sub\n",
		"wiki/Article/Sub/ru.md":    "# Под\n",
		"wiki/Article/Sub/es.md":    "# Sub\n",
		"wiki/Other_article/en.md":  "# Other\n",
		"wiki/Other_article/ru.md":  "# Другая\n",
		"wiki/Other_article/zh.md":  "# Other\n",
		"wiki/Other_article2/en.md": "# Other\n",
		"wiki/Other_article2/ru.md": "# Другая\n",
	})
	git := &fakeGitProvider{
		diffs: map[string][]string{
			"wiki/**/en.md": {
				"wiki/Article/en.md",
				"wiki/Article/Sub/en.md",
				"wiki/Other_article/en.md",
				"wiki/Other_article2/en.md",
			},
		},
	}
	all := []string{
		"wiki/Article/fr.md",
		"wiki/Article/ru.md",
		"wiki/Article/Sub/es.md",
		"wiki/Article/Sub/ru.md",
		"wiki/Other_article/ru.md",
		"wiki/Other_article/zh.md",
		"wiki/Other_article2/ru.md",
	}

	for _, testCase := range []struct {
		name     string
		exclude  []string
		expected []string
	}{
		{
			name:     "single file",
			exclude:  []string{"wiki/Article/ru.md"},
			expected: without(all, "wiki/Article/ru.md"),
		},
		{
			name:     "case insensitive file without prefix",
			exclude:  []string{"article/RU.md"},
			expected: without(all, "wiki/Article/ru.md"),
		},
		{
			name:     "directory excludes direct children only",
			exclude:  []string{"wiki/Article"},
			expected: without(all, "wiki/Article/fr.md", "wiki/Article/ru.md"),
		},
		{
			name:     "directory with a trailing slash",
			exclude:  []string{"wiki/Article/Sub/"},
			expected: without(all, "wiki/Article/Sub/es.md", "wiki/Article/Sub/ru.md"),
		},
		{
			name:    "mask spanning directories",
			exclude: []string{"wiki/Article/*"},
			expected: without(all,
				"wiki/Article/fr.md", "wiki/Article/ru.md", "wiki/Article/Sub/es.md", "wiki/Article/Sub/ru.md",
			),
		},
		{
			name:    "language mask",
			exclude: []string{"*/ru.md"},
			expected: without(all,
				"wiki/Article/ru.md", "wiki/Article/Sub/ru.md", "wiki/Other_article/ru.md", "wiki/Other_article2/ru.md",
			),
		},
		{
			name:     "brace expansion",
			exclude:  []string{"wiki/Other_article{,2}/ru.md"},
			expected: without(all, "wiki/Other_article/ru.md", "wiki/Other_article2/ru.md"),
		},
		{
			name:     "character class",
			exclude:  []string{"wiki/Other_article?/[!z]*.md"},
			expected: without(all, "wiki/Other_article2/ru.md"),
		},
		{
			name:     "everything",
			exclude:  []string{"*"},
			expected: nil,
		},
		{
			name:     "several patterns",
			exclude:  []string{"wiki/Article/fr.md", "Other_article"},
			expected: without(all, "wiki/Article/fr.md", "wiki/Other_article/ru.md", "wiki/Other_article/zh.md"),
		},
	} {
		t.Run(testCase.name, func(t *testing.T) {
			report, err := newOutdatedChecker(workspace, &fakeGitProvider{diffs: git.diffs}).CheckOutdated(
				context.Background(),
				service.OutdatedCheckOptions{BaseCommit: "master", Exclude: testCase.exclude},
			)
			require.NoError(t, err)
			assert.True(t, report.ExcludeApplied)
			assert.Equal(t, len(all), report.Candidates)
			assert.Equal(t, len(all)-len(testCase.expected), report.Excluded)
			assert.Equal(t, testCase.expected, report.ToOutdate)
		})
	}
}

func without(values []string, excluded ...string) []string {
	skip := make(map[string]struct{}, len(excluded))
	for _, value := range excluded {
		skip[value] = struct{}{}
	}
	var result []string
	for _, value := range values {
		if _, ok := skip[value]; !ok {
			result = append(result, value)
		}
	}
	return result
}
