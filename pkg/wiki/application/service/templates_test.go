package service_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tss-calculator/go-lib/pkg/infrastructure/logger"

	"github.com/osu-wiki/wikitools/pkg/wiki/application/service"
	"github.com/osu-wiki/wikitools/pkg/wiki/infrastructure/template"
)

var songsArticleHead = lines(
	"# Songs",
	"",
	"<!--",
	"songs 1.0",
	"",
	"---",
	"table:",
	"  data: wiki/Songs/songs.csv",
	"  header: [Song, Type]",
	`  format: ["<<Song>>", "<<Type>>"]`,
	"  sort:",
	"    by: Song",
	"---",
	"-->",
) + "\n"

const songsTable = "| Song | Type |\n| :-- | :-- |\n| a | OST |\n| b | OST |\n"

func newTemplateGenerator(workspace service.Workspace) service.TemplateGenerator {
	return service.NewTemplateGeneratorService(logger.NewTextLogger(), workspace, template.NewTemplateProvider(logger.NewTextLogger(), workspace))
}

func TestGenerateTemplates(t *testing.T) {
	workspace := newWorkspace(t, map[string]string{
		"wiki/Songs/en.md":     songsArticleHead + "\n| old |\n| :-- |\n",
		"wiki/Songs/songs.csv": "Song,Type\nb,OST\na,OST\n",
		"wiki/Plain/en.md":     "# Plain\n",
	})
	generator := newTemplateGenerator(workspace)

	report, err := generator.Generate(context.Background(), []string{"wiki/Plain/en.md", "wiki/Songs/en.md"})
	require.NoError(t, err)
	assert.Equal(t, service.TemplateReport{
		GeneratedTables: 1,
		UpdatedFiles:    []string{"wiki/Songs/en.md"},
		CheckedFiles:    2,
	}, report)

	content, err := workspace.ReadFile("wiki/Songs/en.md")
	require.NoError(t, err)
	assert.Equal(t, songsArticleHead+"\n"+songsTable, content)

	report, err = generator.Generate(context.Background(), []string{"wiki/Songs/en.md"})
	require.NoError(t, err)
	assert.Empty(t, report.UpdatedFiles)
	assert.Equal(t, 1, report.GeneratedTables)
}

func TestGenerateTemplatesRenderError(t *testing.T) {
	workspace := newWorkspace(t, map[string]string{
		"wiki/Songs/en.md": lines(
			"<!--",
			"songs 1.0",
			"---",
			"table:",
			"  data: wiki/Songs/songs.csv",
			"  header: [Song, Type]",
			`  format: ["<<Song>>"]`,
			"---",
			"-->",
		),
		"wiki/Songs/songs.csv": "Song,Type\na,OST\n",
	})

	_, err := newTemplateGenerator(workspace).Generate(context.Background(), []string{"wiki/Songs/en.md"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to generate table at wiki/Songs/en.md:9")
}

func TestGenerateTemplatesCancelled(t *testing.T) {
	workspace := newWorkspace(t, map[string]string{"wiki/Plain/en.md": "# Plain\n"})
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := newTemplateGenerator(workspace).Generate(ctx, []string{"wiki/Plain/en.md"})
	assert.ErrorIs(t, err, context.Canceled)
}
