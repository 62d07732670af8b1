package service

import (
	"context"
	"fmt"

	"github.com/pkg/errors"
	applogger "github.com/tss-calculator/go-lib/pkg/application/logger"

	"github.com/osu-wiki/wikitools/pkg/wiki/application/table"
)

type TemplateReport struct {
	GeneratedTables int
	UpdatedFiles    []string
	CheckedFiles    int
}

type TemplateGenerator interface {
	Generate(ctx context.Context, filePaths []string) (TemplateReport, error)
}

func NewTemplateGeneratorService(
	logger applogger.Logger,
	workspace Workspace,
	templateProvider TemplateProvider,
) TemplateGenerator {
	return &templateGenerator{
		logger:           logger,
		workspace:        workspace,
		templateProvider: templateProvider,
	}
}

type templateGenerator struct {
	logger           applogger.Logger
	workspace        Workspace
	templateProvider TemplateProvider
}

func (service templateGenerator) Generate(ctx context.Context, filePaths []string) (TemplateReport, error) {
	var report TemplateReport
	for _, filePath := range filePaths {
		if err := ctx.Err(); err != nil {
			return TemplateReport{}, err
		}
		report.CheckedFiles++

		descriptors, err := service.templateProvider.Descriptors(filePath)
		if err != nil {
			return TemplateReport{}, err
		}
		if len(descriptors) == 0 {
			continue
		}

		tables := make([]table.Generated, 0, len(descriptors))
		for _, descriptor := range descriptors {
			data, err := service.templateProvider.Data(descriptor.DataPath)
			if err != nil {
				return TemplateReport{}, err
			}
			markdown, err := table.Render(descriptor, data)
			if err != nil {
				return TemplateReport{}, errors.Wrapf(err, "failed to generate table at %v:%d", filePath, descriptor.Line)
			}
			tables = append(tables, table.Generated{
				Line:           descriptor.Line,
				Markdown:       markdown,
				ConsumeSection: descriptor.IsSplit(),
			})
		}
		report.GeneratedTables += len(tables)

		content, err := service.workspace.ReadFile(filePath)
		if err != nil {
			return TemplateReport{}, err
		}
		rewritten := table.Rewrite(content, tables)
		if rewritten == content {
			continue
		}
		if err = service.workspace.WriteFile(filePath, rewritten); err != nil {
			return TemplateReport{}, err
		}
		service.logger.Info(fmt.Sprintf("regenerated %d tables in %v", len(tables), filePath))
		report.UpdatedFiles = append(report.UpdatedFiles, filePath)
	}
	return report, nil
}
