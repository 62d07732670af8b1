package service

import (
	"context"
	"fmt"
	"sort"

	applogger "github.com/tss-calculator/go-lib/pkg/application/logger"

	"github.com/osu-wiki/wikitools/pkg/wiki/application/model"
)

type LinkCheckOptions struct {
	CaseSensitive                    bool
	InOutdatedArticles               bool
	ToSectionsInOutdatedTranslations bool
	ToSectionsInMissingTranslations  bool
}

type LinkProblem struct {
	Lineno int
	Error  *model.LinkError
	// Suggestions are the identifiers of the target article, only for section errors.
	Suggestions []IdentifierSuggestion
}

type ArticleLinkProblems struct {
	Article  model.Article
	Problems []LinkProblem
}

type LinkReport struct {
	Articles     []ArticleLinkProblems
	CheckedLinks int
	CheckedFiles int
}

func (r LinkReport) ErrorCount() int {
	count := 0
	for _, article := range r.Articles {
		count += len(article.Problems)
	}
	return count
}

type LinkChecker interface {
	CheckArticles(ctx context.Context, filePaths []string, options LinkCheckOptions) (LinkReport, error)
}

func NewLinkCheckerService(
	logger applogger.Logger,
	workspace Workspace,
	articleProvider ArticleProvider,
	redirectProvider RedirectProvider,
) LinkChecker {
	return &linkChecker{
		logger:           logger,
		workspace:        workspace,
		articleProvider:  articleProvider,
		redirectProvider: redirectProvider,
	}
}

type linkChecker struct {
	logger           applogger.Logger
	workspace        Workspace
	articleProvider  ArticleProvider
	redirectProvider RedirectProvider
}

func (service linkChecker) CheckArticles(
	ctx context.Context,
	filePaths []string,
	options LinkCheckOptions,
) (LinkReport, error) {
	redirects, err := service.redirectProvider.Redirects()
	if err != nil {
		return LinkReport{}, err
	}
	resolver := newLinkResolver(service.workspace, service.articleProvider, redirects, options.CaseSensitive)

	paths := uniqueSorted(filePaths)
	for _, filePath := range paths {
		if _, err = resolver.article(filePath); err != nil {
			return LinkReport{}, err
		}
	}
	service.logger.Debug(fmt.Sprintf("loaded %d articles, %d redirects", len(paths), len(redirects)))

	var report LinkReport
	for _, filePath := range paths {
		if err = ctx.Err(); err != nil {
			return LinkReport{}, err
		}
		article := resolver.cache[filePath]
		if !options.InOutdatedArticles && article.IsOutdated() {
			service.logger.Debug("skipping outdated article " + filePath)
			continue
		}
		report.CheckedLinks += article.LinkCount()
		report.CheckedFiles++

		problems, err := service.checkArticle(resolver, article, options)
		if err != nil {
			return LinkReport{}, err
		}
		if len(problems) != 0 {
			report.Articles = append(report.Articles, ArticleLinkProblems{Article: article, Problems: problems})
		}
	}
	return report, nil
}

func (service linkChecker) checkArticle(
	resolver *linkResolver,
	article model.Article,
	options LinkCheckOptions,
) ([]LinkProblem, error) {
	var problems []LinkProblem
	for _, lineno := range sortedLines(article) {
		for _, link := range article.Lines[lineno].Links {
			linkError, err := resolver.check(article, link)
			if err != nil {
				return nil, err
			}
			if linkError == nil || !reported(linkError, options) {
				continue
			}
			problem := LinkProblem{Lineno: lineno, Error: linkError}
			if linkError.IsSectionError() {
				problem.Suggestions = resolver.suggestions(linkError.Path)
			}
			problems = append(problems, problem)
		}
	}
	return problems, nil
}

func reported(linkError *model.LinkError, options LinkCheckOptions) bool {
	if !linkError.IsSectionError() {
		return true
	}
	if linkError.TranslationOutdated && !options.ToSectionsInOutdatedTranslations {
		return false
	}
	if linkError.NoTranslationAvailable && !options.ToSectionsInMissingTranslations {
		return false
	}
	return true
}

func sortedLines(article model.Article) []int {
	lines := make([]int, 0, len(article.Lines))
	for lineno := range article.Lines {
		lines = append(lines, lineno)
	}
	sort.Ints(lines)
	return lines
}

func uniqueSorted(values []string) []string {
	seen := make(map[string]struct{}, len(values))
	result := make([]string, 0, len(values))
	for _, value := range values {
		if _, ok := seen[value]; ok {
			continue
		}
		seen[value] = struct{}{}
		result = append(result, value)
	}
	sort.Strings(result)
	return result
}
