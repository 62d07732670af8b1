package main

import (
	stdcontext "context"
	"errors"

	"github.com/urfave/cli/v2"

	"github.com/osu-wiki/wikitools/pkg/wiki/application/model"
	"github.com/osu-wiki/wikitools/pkg/wiki/application/service"
	"github.com/osu-wiki/wikitools/pkg/wiki/infrastructure/console"
	"github.com/osu-wiki/wikitools/pkg/wiki/infrastructure/dependency"
)

func whatLinksHere(ctx stdcontext.Context, target string, separate bool) error {
	dependencyContainer, err := dependency.ContainerFromContext(ctx)
	if err != nil {
		return err
	}
	printer := dependencyContainer.Printer()

	report, err := dependencyContainer.LinkFinder().WhatLinksHere(ctx, target)
	if errors.Is(err, service.ErrTargetNotFound) {
		printer.Error("entered target file %q does not exist.\n", target)
		return cli.Exit("", 1)
	}
	if err != nil {
		return err
	}

	for _, article := range report.Articles {
		filePath := article.Article.Path()
		for _, lineno := range article.Lines() {
			links := article.Matches[lineno]
			for _, link := range links {
				printer.Println(console.Location(filePath, lineno, link, link.RawLocation))
			}
			printer.Println()
			rawLine := article.Article.Lines[lineno].RawLine
			if separate {
				for _, link := range links {
					printer.Println(console.HighlightLinks(rawLine, []model.Link{link}))
					printer.Println()
				}
				continue
			}
			printer.Println(console.HighlightLinks(rawLine, links))
			printer.Println()
		}
	}
	printer.Note(
		"Found %v in %v (%v in %v checked).",
		console.Plural(report.MatchCount(), "link"), console.Plural(len(report.Articles), "file"),
		console.Plural(report.CheckedLinks, "link"), console.Plural(report.CheckedFiles, "file"),
	)
	return nil
}
