package service

import (
	"context"
	"errors"
	"fmt"
	"sort"

	applogger "github.com/tss-calculator/go-lib/pkg/application/logger"

	"github.com/osu-wiki/wikitools/pkg/wiki/application/model"
)

var ErrTargetNotFound = errors.New("target not found")

type ArticleLinkMatches struct {
	Article model.Article
	// Matches maps line numbers to the links on them, in line order.
	Matches map[int][]model.Link
}

func (m ArticleLinkMatches) Lines() []int {
	lines := make([]int, 0, len(m.Matches))
	for lineno := range m.Matches {
		lines = append(lines, lineno)
	}
	sort.Ints(lines)
	return lines
}

type LinkFinderReport struct {
	Articles     []ArticleLinkMatches
	CheckedLinks int
	CheckedFiles int
}

func (r LinkFinderReport) MatchCount() int {
	count := 0
	for _, article := range r.Articles {
		for _, links := range article.Matches {
			count += len(links)
		}
	}
	return count
}

type LinkFinder interface {
	WhatLinksHere(ctx context.Context, target string) (LinkFinderReport, error)
}

func NewLinkFinderService(
	logger applogger.Logger,
	workspace Workspace,
	articleProvider ArticleProvider,
	redirectProvider RedirectProvider,
) LinkFinder {
	return &linkFinder{
		logger:           logger,
		workspace:        workspace,
		articleProvider:  articleProvider,
		redirectProvider: redirectProvider,
	}
}

type linkFinder struct {
	logger           applogger.Logger
	workspace        Workspace
	articleProvider  ArticleProvider
	redirectProvider RedirectProvider
}

func (service linkFinder) WhatLinksHere(ctx context.Context, target string) (LinkFinderReport, error) {
	canonicalTarget, ok := service.workspace.Canonical(target)
	if !ok {
		return LinkFinderReport{}, ErrTargetNotFound
	}
	redirects, err := service.redirectProvider.Redirects()
	if err != nil {
		return LinkFinderReport{}, err
	}
	resolver := newLinkResolver(service.workspace, service.articleProvider, redirects, false)

	filePaths, err := ListArticlesAndNewsposts(service.workspace)
	if err != nil {
		return LinkFinderReport{}, err
	}
	service.logger.Debug(fmt.Sprintf("searching %d files for links to %v", len(filePaths), canonicalTarget))

	var report LinkFinderReport
	for _, filePath := range filePaths {
		if err = ctx.Err(); err != nil {
			return LinkFinderReport{}, err
		}
		article, err := resolver.article(filePath)
		if err != nil {
			return LinkFinderReport{}, err
		}
		report.CheckedLinks += article.LinkCount()
		report.CheckedFiles++

		matches := make(map[int][]model.Link)
		for lineno, line := range article.Lines {
			for _, link := range line.Links {
				d, linkError := resolver.follow(article, link)
				if linkError != nil || d == nil {
					continue
				}
				if d.Target == canonicalTarget {
					matches[lineno] = append(matches[lineno], link)
				}
			}
		}
		if len(matches) != 0 {
			report.Articles = append(report.Articles, ArticleLinkMatches{Article: article, Matches: matches})
		}
	}
	return report, nil
}
