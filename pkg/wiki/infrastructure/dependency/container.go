package dependency

import (
	"context"
	"errors"
	"io"

	applogger "github.com/tss-calculator/go-lib/pkg/application/logger"

	"github.com/osu-wiki/wikitools/pkg/wiki/application/model"
	"github.com/osu-wiki/wikitools/pkg/wiki/application/service"
	"github.com/osu-wiki/wikitools/pkg/wiki/infrastructure/command"
	"github.com/osu-wiki/wikitools/pkg/wiki/infrastructure/config/redirectconfig"
	"github.com/osu-wiki/wikitools/pkg/wiki/infrastructure/console"
	"github.com/osu-wiki/wikitools/pkg/wiki/infrastructure/frontmatter"
	"github.com/osu-wiki/wikitools/pkg/wiki/infrastructure/provider"
	"github.com/osu-wiki/wikitools/pkg/wiki/infrastructure/template"
	"github.com/osu-wiki/wikitools/pkg/wiki/infrastructure/yamllint"
)

var dependencyContainer = struct{}{}

type Container interface {
	Settings() model.Settings
	Printer() *console.Printer
	Workspace() service.Workspace
	LinkChecker() service.LinkChecker
	LinkFinder() service.LinkFinder
	FileChecker() service.FileChecker
	FrontMatterEditor() service.FrontMatterEditor
	YAMLChecker() service.YAMLChecker
	OutdatedChecker() service.OutdatedChecker
	TemplateGenerator() service.TemplateGenerator
}

// NewDependencyContainer wires the services for the repository checked out at root.
func NewDependencyContainer(
	logger applogger.Logger,
	settings model.Settings,
	root string,
	out io.Writer,
) (Container, error) {
	workspace, err := provider.NewRootWorkspace(root)
	if err != nil {
		return nil, err
	}
	gitProvider := provider.NewGitProvider(root, command.NewCommandRunner(logger))
	return NewContainer(logger, settings, workspace, gitProvider, out), nil
}

// NewContainer wires the services over an opened workspace.
func NewContainer(
	logger applogger.Logger,
	settings model.Settings,
	workspace service.Workspace,
	gitProvider service.GitProvider,
	out io.Writer,
) Container {
	articleProvider := provider.NewArticleProvider(workspace, settings)
	frontMatterStore := provider.NewFrontMatterStore(workspace)
	redirectLoader := redirectconfig.NewLoader(workspace)

	return &container{
		settings:  settings,
		printer:   console.NewPrinter(out),
		workspace: workspace,
		linkChecker: service.NewLinkCheckerService(
			logger, workspace, articleProvider, redirectLoader,
		),
		linkFinder: service.NewLinkFinderService(
			logger, workspace, articleProvider, redirectLoader,
		),
		fileChecker:       service.NewFileCheckerService(workspace),
		frontMatterEditor: service.NewFrontMatterEditorService(logger, frontMatterStore),
		yamlChecker: service.NewYAMLCheckerService(
			logger, workspace, yamllint.NewLoader(workspace, settings.AllowedTags), frontmatter.SplitPayload,
		),
		outdatedChecker: service.NewOutdatedCheckerService(
			logger, settings, workspace, frontMatterStore, gitProvider,
		),
		templateGenerator: service.NewTemplateGeneratorService(
			logger, workspace, template.NewTemplateProvider(logger, workspace),
		),
	}
}

type container struct {
	settings          model.Settings
	printer           *console.Printer
	workspace         service.Workspace
	linkChecker       service.LinkChecker
	linkFinder        service.LinkFinder
	fileChecker       service.FileChecker
	frontMatterEditor service.FrontMatterEditor
	yamlChecker       service.YAMLChecker
	outdatedChecker   service.OutdatedChecker
	templateGenerator service.TemplateGenerator
}

func (c *container) Settings() model.Settings {
	return c.settings
}

func (c *container) Printer() *console.Printer {
	return c.printer
}

func (c *container) Workspace() service.Workspace {
	return c.workspace
}

func (c *container) LinkChecker() service.LinkChecker {
	return c.linkChecker
}

func (c *container) LinkFinder() service.LinkFinder {
	return c.linkFinder
}

func (c *container) FileChecker() service.FileChecker {
	return c.fileChecker
}

func (c *container) FrontMatterEditor() service.FrontMatterEditor {
	return c.frontMatterEditor
}

func (c *container) YAMLChecker() service.YAMLChecker {
	return c.yamlChecker
}

func (c *container) OutdatedChecker() service.OutdatedChecker {
	return c.outdatedChecker
}

func (c *container) TemplateGenerator() service.TemplateGenerator {
	return c.templateGenerator
}

func ContainerFromContext(ctx context.Context) (Container, error) {
	v := ctx.Value(dependencyContainer)
	if c, ok := v.(Container); ok {
		return c, nil
	}
	return nil, errors.New("dependency container not found")
}

func ContainerToContext(ctx context.Context, c Container) context.Context {
	return context.WithValue(ctx, dependencyContainer, c)
}
