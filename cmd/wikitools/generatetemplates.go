package main

import (
	stdcontext "context"

	"github.com/osu-wiki/wikitools/pkg/wiki/application/service"
	"github.com/osu-wiki/wikitools/pkg/wiki/infrastructure/console"
	"github.com/osu-wiki/wikitools/pkg/wiki/infrastructure/dependency"
)

func generateTemplates(ctx stdcontext.Context, targets []string, all bool) error {
	dependencyContainer, err := dependency.ContainerFromContext(ctx)
	if err != nil {
		return err
	}
	printer := dependencyContainer.Printer()
	if len(targets) == 0 && !all {
		printer.Notice("No articles to check.")
		return nil
	}

	filePaths := service.FilterArticlesAndNewsposts(targets)
	if all {
		if filePaths, err = service.ListArticlesAndNewsposts(dependencyContainer.Workspace()); err != nil {
			return err
		}
	}

	report, err := dependencyContainer.TemplateGenerator().Generate(ctx, filePaths)
	if err != nil {
		return err
	}
	printer.List(console.Green, report.UpdatedFiles)
	printer.Note(
		"Generated %v, updated %v (%v checked).",
		console.Plural(report.GeneratedTables, "table"), console.Plural(len(report.UpdatedFiles), "file"),
		console.Plural(report.CheckedFiles, "file"),
	)
	return nil
}
