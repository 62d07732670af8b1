package main

import (
	stdcontext "context"

	"github.com/urfave/cli/v2"

	"github.com/osu-wiki/wikitools/pkg/wiki/application/service"
	"github.com/osu-wiki/wikitools/pkg/wiki/infrastructure/console"
	"github.com/osu-wiki/wikitools/pkg/wiki/infrastructure/dependency"
)

func checkFiles(ctx stdcontext.Context, targets []string, all bool) error {
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
		if filePaths, err = service.ListArticles(dependencyContainer.Workspace()); err != nil {
			return err
		}
	}

	report := dependencyContainer.FileChecker().CheckFiles(filePaths)
	if len(report.Errors) == 0 {
		printer.Notice("No file or folder structure errors detected.")
		return nil
	}
	for _, missing := range report.Errors {
		printer.Println(console.Yellow(missing.Path))
		printer.Println(console.Red(missing.Error()))
		printer.Println()
	}
	printer.Note(
		"Found %v (%v checked).",
		console.Plural(len(report.Errors), "error"), console.Plural(report.CheckedFiles, "file"),
	)
	return cli.Exit("", 1)
}
