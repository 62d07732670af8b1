package main

import (
	stdcontext "context"
	"fmt"
	"os"
	"strings"

	"github.com/fatih/color"
	"github.com/urfave/cli/v2"

	"github.com/osu-wiki/wikitools/pkg/wiki/application/model"
	"github.com/osu-wiki/wikitools/pkg/wiki/application/service"
	"github.com/osu-wiki/wikitools/pkg/wiki/infrastructure/console"
	"github.com/osu-wiki/wikitools/pkg/wiki/infrastructure/dependency"
)

const (
	formatParsable = "parsable"
	formatStandard = "standard"
	formatColored  = "colored"
	formatGithub   = "github"
	formatAuto     = "auto"
)

func checkYAML(ctx stdcontext.Context, options service.YAMLCheckOptions, format string) error {
	dependencyContainer, err := dependency.ContainerFromContext(ctx)
	if err != nil {
		return err
	}
	printer := dependencyContainer.Printer()
	format, err = resolveFormat(format)
	if err != nil {
		return err
	}

	report, err := dependencyContainer.YAMLChecker().CheckYAML(options)
	if err != nil {
		return err
	}
	for _, file := range report.Files {
		printYAMLProblems(printer, file, format)
	}
	if report.HasErrors() {
		return cli.Exit("", 1)
	}
	printer.Notice("No errors in YAML files detected.")
	return nil
}

// resolveFormat picks github inside GitHub Actions and colours on terminals for "auto".
func resolveFormat(format string) (string, error) {
	switch format {
	case formatParsable, formatStandard, formatColored, formatGithub:
		return format, nil
	case formatAuto:
		_, actions := os.LookupEnv("GITHUB_ACTIONS")
		_, workflow := os.LookupEnv("GITHUB_WORKFLOW")
		switch {
		case actions && workflow:
			return formatGithub, nil
		case !color.NoColor:
			return formatColored, nil
		}
		return formatStandard, nil
	}
	return "", cli.Exit(fmt.Sprintf("unknown output format %q", format), 2)
}

func printYAMLProblems(printer *console.Printer, file service.YAMLFileProblems, format string) {
	switch format {
	case formatParsable:
		for _, problem := range file.Problems {
			printer.Printf("%v:%d:%d: [%v] %v\n", file.Path, problem.Line, problem.Column, problem.Level,
				describe(problem))
		}
	case formatGithub:
		printer.Println("::group::" + file.Path)
		for _, problem := range file.Problems {
			message := problem.Message
			if problem.Rule != "" {
				message = "[" + problem.Rule + "] " + message
			}
			printer.Printf("::%v file=%v,line=%d,col=%d::%d:%d %v\n", problem.Level, file.Path,
				problem.Line, problem.Column, problem.Line, problem.Column, message)
		}
		printer.Println("::endgroup::")
		printer.Println()
	default:
		colored := format == formatColored
		if colored {
			printer.Println(console.Yellow(file.Path))
		} else {
			printer.Println(file.Path)
		}
		for _, problem := range file.Problems {
			printer.Println(formatYAMLProblem(problem, colored))
		}
		printer.Println()
	}
}

func describe(problem model.YAMLProblem) string {
	if problem.Rule == "" {
		return problem.Message
	}
	return problem.Message + " (" + problem.Rule + ")"
}

// formatYAMLProblem lays a problem out in columns: position, level, message and rule.
func formatYAMLProblem(problem model.YAMLProblem, colored bool) string {
	position := fmt.Sprintf("  %d:%d", problem.Line, problem.Column)
	level, rule := problem.Level, ""
	if problem.Rule != "" {
		rule = "  (" + problem.Rule + ")"
	}
	if colored {
		if problem.Level == model.LevelError {
			level = console.Red(level)
		} else {
			level = console.Yellow(level)
		}
		if rule != "" {
			rule = "  " + console.Grey("("+problem.Rule+")")
		}
	}
	return pad(position, 12) + level + strings.Repeat(" ", max(9-len(problem.Level), 0)) + problem.Message + rule
}

func pad(s string, width int) string {
	if len(s) >= width {
		return s
	}
	return s + strings.Repeat(" ", width-len(s))
}
