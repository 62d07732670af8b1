package main

import (
	stdcontext "context"
	"fmt"
	"strings"

	"github.com/urfave/cli/v2"

	"github.com/osu-wiki/wikitools/pkg/wiki/application/service"
	"github.com/osu-wiki/wikitools/pkg/wiki/infrastructure/console"
	"github.com/osu-wiki/wikitools/pkg/wiki/infrastructure/dependency"
)

const (
	skipOutdatedCheckTag = "SKIP_OUTDATED_CHECK"
	frontMatterStyleURL  = "https://osu.ppy.sh/wiki/en/Article_styling_criteria/Formatting#front-matter"
)

func outdatedCheckOptions(c *cli.Context) service.OutdatedCheckOptions {
	return service.OutdatedCheckOptions{
		BaseCommit:    c.String("base-commit"),
		OutdatedSince: c.String("outdated-since"),
		All:           c.Bool("all"),
		Autofix:       c.Bool("autofix"),
		Autocommit:    c.Bool("autocommit"),
		Exclude:       c.StringSlice("exclude"),
	}
}

func checkOutdatedArticles(ctx stdcontext.Context, options service.OutdatedCheckOptions, noRecommendAutofix bool) error {
	dependencyContainer, err := dependency.ContainerFromContext(ctx)
	if err != nil {
		return err
	}
	printer := dependencyContainer.Printer()
	settings := dependencyContainer.Settings()

	report, err := dependencyContainer.OutdatedChecker().CheckOutdated(ctx, options)
	if err != nil {
		return err
	}

	if len(report.BadHashes) != 0 {
		suggestion := ""
		if report.Hash != "" {
			suggestion = fmt.Sprintf(" Did you mean to use %v instead?", console.Green(service.OutdatedHashTag+": "+report.Hash))
		}
		printer.Error(
			"The following translations are incorrectly outdated (the %v hash is invalid).%v",
			console.Red(service.OutdatedHashTag), suggestion,
		)
		printer.List(console.Red, report.BadHashes)
		printer.Println()
	}

	switch {
	case !report.OriginalsModified:
		printer.Notice("no originals are edited, not going to check translations.")
	case len(report.ToOutdate) == 0:
		if report.ExcludeApplied {
			printer.Printf("%d of %d translation(s) skipped due to --exclude\n", report.Excluded, report.Candidates)
		}
		printer.Notice("all unedited translations are properly outdated.")
	default:
		if report.ExcludeApplied {
			printer.Printf("%d of %d translation(s) skipped due to --exclude\n", report.Excluded, report.Candidates)
		}
		printOutdatingResult(printer, report, options, noRecommendAutofix, settings.AutocommitMessage)
	}

	if report.Failed() {
		return cli.Exit("", 1)
	}
	return nil
}

func printOutdatingResult(
	printer *console.Printer,
	report service.OutdatedReport,
	options service.OutdatedCheckOptions,
	noRecommendAutofix bool,
	commitMessage string,
) {
	if !options.Autofix {
		printTranslationsToOutdate(printer, report.ToOutdate, report.Hash, noRecommendAutofix)
		return
	}

	printer.Println(console.Green("--autofix specified, outdating translations..."))
	switch {
	case !report.Autofixed:
		printer.Error("--outdated-since was not specified and HEAD has not diverged from master.")
	case !report.Committed:
		printer.Println(console.Green("Done! To commit the changes, run:"))
		printer.Println(console.Green(fmt.Sprintf(
			"\tgit add %v; git commit -m %q", strings.Join(report.ToOutdate, " "), commitMessage,
		)))
	default:
		printer.Println(console.Green("--autocommit specified, committing changes..."))
		printer.Println(console.Green("Done! The changes have been committed for you."))
		printer.Println()
		printer.Println(report.HeadCommit)
		printer.Println("Changed files:")
		printer.List(console.Green, report.ToOutdate)
	}
}

func printTranslationsToOutdate(printer *console.Printer, translations []string, hash string, noRecommendAutofix bool) {
	printer.Error("You have edited some original articles (en.md), but did not outdate their translations:")
	printer.List(console.Red, translations)
	printer.Printf(
		"\nIf your changes DON'T NEED to be added to the translations, add %v anywhere in the description of your pull request.\n",
		console.Red(skipOutdatedCheckTag),
	)
	if noRecommendAutofix {
		printer.Println("Otherwise, add the following to each article's front matter (" + frontMatterStyleURL + "):")
	} else {
		printer.Printf(
			"Otherwise, rerun the script with %v (and perhaps %v), or add the following to each article's front matter (%v):\n",
			console.Green("--autofix"), console.Green("--autocommit"), frontMatterStyleURL,
		)
	}
	printer.Println()

	lines := []string{"---"}
	if hash != "" {
		lines = append(lines, service.OutdatedHashTag+": "+hash)
	}
	lines = append(lines, service.OutdatedTranslationTag+": true", "---")
	for _, line := range lines {
		printer.Println(console.Green(line))
	}
}
