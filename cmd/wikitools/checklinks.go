package main

import (
	stdcontext "context"

	"github.com/urfave/cli/v2"

	"github.com/osu-wiki/wikitools/pkg/wiki/application/model"
	"github.com/osu-wiki/wikitools/pkg/wiki/application/service"
	"github.com/osu-wiki/wikitools/pkg/wiki/infrastructure/console"
	"github.com/osu-wiki/wikitools/pkg/wiki/infrastructure/dependency"
)

const linkStyleURL = "https://osu.ppy.sh/wiki/en/Article_styling_criteria/Formatting#links"

func linkCheckOptions(c *cli.Context) service.LinkCheckOptions {
	return service.LinkCheckOptions{
		CaseSensitive:                    c.Bool("case-sensitive"),
		InOutdatedArticles:               c.Bool("in-outdated-articles"),
		ToSectionsInOutdatedTranslations: c.Bool("to-sections-in-outdated-translations"),
		ToSectionsInMissingTranslations:  c.Bool("to-sections-in-missing-translations"),
	}
}

func checkLinks(
	ctx stdcontext.Context,
	targets []string,
	all bool,
	separate bool,
	options service.LinkCheckOptions,
) error {
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

	report, err := dependencyContainer.LinkChecker().CheckArticles(ctx, filePaths, options)
	if err != nil {
		return err
	}
	if len(report.Articles) == 0 {
		printer.Notice("No broken wiki or image links detected.")
		printer.Println()
	} else {
		printLinkErrorBanner(printer, options.CaseSensitive)
		for _, article := range report.Articles {
			printArticleLinkProblems(printer, article, separate)
		}
	}
	printer.Note(
		"Found %v in %v (%v in %v checked).",
		console.Plural(report.ErrorCount(), "error"), console.Plural(len(report.Articles), "file"),
		console.Plural(report.CheckedLinks, "link"), console.Plural(report.CheckedFiles, "file"),
	)
	if len(report.Articles) != 0 {
		return cli.Exit("", 1)
	}
	return nil
}

func printLinkErrorBanner(printer *console.Printer, caseSensitive bool) {
	capitalisation := ""
	if caseSensitive {
		capitalisation = " (make sure to match capitalisation)"
	}
	printer.Error("Some wiki or image links in the files you've changed have errors.\n")
	printer.Println("This can happen in one of the following ways:")
	printer.Println()
	printer.Println("- The article or image that the link points to has since been moved or renamed" + capitalisation)
	printer.Println("- The link simply contains typos or formatting errors")
	printer.Println("- The link works, but contains locale selection " +
		"(e.g. /wiki/en/Article_styling_criteria instead of /wiki/Article_styling_criteria)")
	printer.Println("- The link works, but contains URL-escaped characters " +
		"(https://en.wikipedia.org/wiki/Percent-encoding). This only applies for links to articles and images inside the wiki.")
	printer.Println("- The link works, but incurs multiple redirects. Use a direct link instead.")
	printer.Println("\nFor more information on link style, see " + linkStyleURL + ".")
	printer.Println("\nIf you need to bypass this check, add " + console.Red("SKIP_WIKILINK_CHECK") +
		" anywhere in the PR description.")
	printer.Println()
}

func printArticleLinkProblems(printer *console.Printer, article service.ArticleLinkProblems, separate bool) {
	var (
		lineno   int
		onLine   []service.LinkProblem
		filePath = article.Article.Path()
	)
	flush := func() {
		if len(onLine) == 0 {
			return
		}
		rawLine := article.Article.Lines[lineno].RawLine
		links := make([]model.Link, 0, len(onLine))
		for _, problem := range onLine {
			printer.Println(console.Location(filePath, lineno, problem.Error.Link, problem.Error.Location()))
			links = append(links, problem.Error.Link)
		}
		for _, problem := range onLine {
			printLinkError(printer, problem)
		}
		printer.Println()
		if separate {
			for _, link := range links {
				printer.Println(console.HighlightLinks(rawLine, []model.Link{link}))
				printer.Println()
			}
		} else {
			printer.Println(console.HighlightLinks(rawLine, links))
			printer.Println()
		}
		onLine = nil
	}
	for _, problem := range article.Problems {
		if problem.Lineno != lineno {
			flush()
			lineno = problem.Lineno
		}
		onLine = append(onLine, problem)
	}
	flush()
}

func printLinkError(printer *console.Printer, problem service.LinkProblem) {
	printer.Println(problem.Error.Error())
	for _, note := range problem.Error.Notes() {
		printer.Println(console.Grey(note))
	}
	if len(problem.Suggestions) == 0 {
		return
	}
	printer.Println(console.Blue("Suggestions:"))
	for _, suggestion := range problem.Suggestions {
		printer.Printf("\tline %d: %v\n", suggestion.Lineno, suggestion.Identifier)
	}
}
