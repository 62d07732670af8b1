package service

import (
	"path"

	"github.com/osu-wiki/wikitools/pkg/wiki/application/model"
)

// MissingOriginal is a translation whose directory has no en.md.
type MissingOriginal struct {
	Path         string
	OriginalPath string
}

func (e MissingOriginal) Error() string {
	return "The original article " + e.OriginalPath + " is missing for this translation"
}

type FileReport struct {
	Errors       []MissingOriginal
	CheckedFiles int
}

type FileChecker interface {
	CheckFiles(filePaths []string) FileReport
}

func NewFileCheckerService(workspace Workspace) FileChecker {
	return &fileChecker{workspace: workspace}
}

type fileChecker struct {
	workspace Workspace
}

func (service fileChecker) CheckFiles(filePaths []string) FileReport {
	var report FileReport
	for _, filePath := range filePaths {
		report.CheckedFiles++
		if !model.IsTranslation(filePath) {
			continue
		}
		original := path.Join(path.Dir(filePath), model.OriginalFilename)
		if !service.workspace.ExistsCaseSensitive(original) {
			report.Errors = append(report.Errors, MissingOriginal{Path: filePath, OriginalPath: original})
		}
	}
	return report
}
