package service

import (
	"fmt"
	"path"
	"strings"

	applogger "github.com/tss-calculator/go-lib/pkg/application/logger"

	"github.com/osu-wiki/wikitools/pkg/wiki/application/model"
)

const (
	markdownExtension = ".md"

	RuleFrontMatter = "front-matter"
)

// FrontMatterSplitter cuts the front matter lines out of a Markdown file.
// delimiters is the number of delimiter lines seen up to the end of the front matter.
type FrontMatterSplitter func(content string) (payload string, delimiters int)

type YAMLFileProblems struct {
	Path     string
	Problems []model.YAMLProblem
}

type YAMLReport struct {
	Files        []YAMLFileProblems
	CheckedFiles int
}

func (r YAMLReport) HasErrors() bool {
	for _, file := range r.Files {
		for _, problem := range file.Problems {
			if problem.Level == model.LevelError {
				return true
			}
		}
	}
	return false
}

type YAMLCheckOptions struct {
	// Targets are files or directories; the repository root when empty.
	Targets    []string
	ConfigPath string
}

type YAMLChecker interface {
	CheckYAML(options YAMLCheckOptions) (YAMLReport, error)
}

func NewYAMLCheckerService(
	logger applogger.Logger,
	workspace Workspace,
	linters YAMLLinterLoader,
	splitter FrontMatterSplitter,
) YAMLChecker {
	return &yamlChecker{
		logger:    logger,
		workspace: workspace,
		linters:   linters,
		splitter:  splitter,
	}
}

type yamlChecker struct {
	logger    applogger.Logger
	workspace Workspace
	linters   YAMLLinterLoader
	splitter  FrontMatterSplitter
}

func (service yamlChecker) CheckYAML(options YAMLCheckOptions) (YAMLReport, error) {
	linter, err := service.linters.Load(options.ConfigPath)
	if err != nil {
		return YAMLReport{}, err
	}
	targets := options.Targets
	if len(targets) == 0 {
		targets = []string{"."}
	}
	filePaths, err := service.collect(linter, targets)
	if err != nil {
		return YAMLReport{}, err
	}

	var report YAMLReport
	for _, filePath := range filePaths {
		content, err := service.workspace.ReadFile(filePath)
		if err != nil {
			return YAMLReport{}, err
		}
		report.CheckedFiles++

		var problems []model.YAMLProblem
		if strings.HasSuffix(filePath, markdownExtension) {
			problems = service.lintFrontMatter(linter, content)
		} else {
			problems = linter.Lint(content, false)
		}
		if len(problems) != 0 {
			report.Files = append(report.Files, YAMLFileProblems{Path: filePath, Problems: problems})
		}
	}
	return report, nil
}

func (service yamlChecker) lintFrontMatter(linter YAMLLinter, content string) []model.YAMLProblem {
	payload, delimiters := service.splitter(content)
	switch delimiters {
	case 0:
		return nil
	case 1:
		return []model.YAMLProblem{{
			Line:    1,
			Column:  1,
			Level:   model.LevelError,
			Rule:    RuleFrontMatter,
			Message: "malformed front matter: the closing delimiter is missing",
		}}
	}
	return linter.Lint(payload, true)
}

// collect walks directories for Markdown and YAML files that the lint configuration does not ignore.
// Files named directly are always linted.
func (service yamlChecker) collect(linter YAMLLinter, targets []string) ([]string, error) {
	var filePaths []string
	for _, target := range targets {
		switch {
		case service.workspace.IsDir(target):
			files, err := service.workspace.ListFiles(target)
			if err != nil {
				return nil, err
			}
			for _, filePath := range files {
				if linter.IsIgnored(filePath) {
					continue
				}
				if path.Ext(filePath) == markdownExtension || linter.IsYAMLFile(filePath) {
					filePaths = append(filePaths, filePath)
				}
			}
		case service.workspace.IsFile(target):
			filePaths = append(filePaths, path.Clean(target))
		default:
			service.logger.Info(fmt.Sprintf("skipping %v: no such file or directory", target))
		}
	}
	return filePaths, nil
}
