package service

import (
	"context"
	"fmt"
	"path"
	"strings"

	applogger "github.com/tss-calculator/go-lib/pkg/application/logger"

	"github.com/osu-wiki/wikitools/pkg/wiki/application/model"
)

const (
	OutdatedTranslationTag = "outdated_translation"
	OutdatedHashTag        = "outdated_since"
)

type OutdatedCheckOptions struct {
	BaseCommit    string
	OutdatedSince string
	// All validates hashes of every translation instead of the modified ones.
	All        bool
	Autofix    bool
	Autocommit bool
	Exclude    []string
}

type OutdatedReport struct {
	// BadHashes lists translations whose outdated_since does not name a commit.
	BadHashes []string
	// Hash is the commit suggested or written as outdated_since. Empty when none could be found.
	Hash string

	OriginalsModified bool
	// Candidates counts translations needing an outdated marker before exclusion.
	Candidates     int
	Excluded       int
	ExcludeApplied bool
	ToOutdate      []string

	Autofixed  bool
	Committed  bool
	HeadCommit string
}

func (r OutdatedReport) Failed() bool {
	if len(r.BadHashes) != 0 {
		return true
	}
	return len(r.ToOutdate) != 0 && !r.Autofixed
}

type OutdatedChecker interface {
	CheckOutdated(ctx context.Context, options OutdatedCheckOptions) (OutdatedReport, error)
}

func NewOutdatedCheckerService(
	logger applogger.Logger,
	settings model.Settings,
	workspace Workspace,
	frontMatterStore FrontMatterStore,
	gitProvider GitProvider,
) OutdatedChecker {
	return &outdatedChecker{
		settings:         settings,
		logger:           logger,
		workspace:        workspace,
		frontMatterStore: frontMatterStore,
		gitProvider:      gitProvider,
	}
}

type outdatedChecker struct {
	settings model.Settings

	logger           applogger.Logger
	workspace        Workspace
	frontMatterStore FrontMatterStore
	gitProvider      GitProvider
}

func (service outdatedChecker) CheckOutdated(ctx context.Context, options OutdatedCheckOptions) (OutdatedReport, error) {
	var (
		report               OutdatedReport
		modifiedTranslations []string
		toValidate           []string
		err                  error
	)
	if options.All {
		// modified translations are not told apart here, so all of them need a marker too
		toValidate, err = service.allTranslations()
	} else {
		modifiedTranslations, err = service.modifiedTranslations(ctx, options.BaseCommit)
		toValidate = modifiedTranslations
	}
	if err != nil {
		return OutdatedReport{}, err
	}

	report.BadHashes, err = service.checkCommitHashes(ctx, toValidate)
	if err != nil {
		return OutdatedReport{}, err
	}
	if len(report.BadHashes) != 0 {
		if report.Hash, err = service.outdatedHash(ctx, options); err != nil {
			return OutdatedReport{}, err
		}
	}

	modifiedOriginals, err := service.gitProvider.DiffNames(ctx, options.BaseCommit, "wiki/**/"+model.OriginalFilename)
	if err != nil {
		return OutdatedReport{}, err
	}
	if len(modifiedOriginals) == 0 {
		return report, nil
	}
	report.OriginalsModified = true

	dirs := make([]string, 0, len(modifiedOriginals))
	for _, original := range modifiedOriginals {
		dirs = append(dirs, path.Dir(original))
	}
	translations, err := ListTranslations(service.workspace, uniqueSorted(dirs))
	if err != nil {
		return OutdatedReport{}, err
	}
	candidates, err := service.unmarkedTranslations(translations, modifiedTranslations)
	if err != nil {
		return OutdatedReport{}, err
	}
	report.Candidates = len(candidates)
	report.ToOutdate = candidates
	if len(options.Exclude) != 0 {
		report.ExcludeApplied = true
		report.ToOutdate, report.Excluded = exclude(candidates, options.Exclude)
	}
	if len(report.ToOutdate) == 0 {
		return report, nil
	}

	if report.Hash == "" {
		if report.Hash, err = service.outdatedHash(ctx, options); err != nil {
			return OutdatedReport{}, err
		}
	}
	if !options.Autofix || report.Hash == "" {
		return report, nil
	}

	if err = service.outdate(report.ToOutdate, report.Hash); err != nil {
		return OutdatedReport{}, err
	}
	report.Autofixed = true
	if !options.Autocommit {
		return report, nil
	}

	if err = service.gitProvider.Add(ctx, report.ToOutdate...); err != nil {
		return OutdatedReport{}, err
	}
	if err = service.gitProvider.Commit(ctx, service.settings.AutocommitMessage); err != nil {
		return OutdatedReport{}, err
	}
	report.Committed = true
	report.HeadCommit, err = service.gitProvider.ShowHead(ctx)
	return report, err
}

func (service outdatedChecker) modifiedTranslations(ctx context.Context, base string) ([]string, error) {
	changed, err := service.gitProvider.DiffNames(ctx, base, "wiki/**/*.md")
	if err != nil {
		return nil, err
	}
	var translations []string
	for _, filePath := range changed {
		if model.IsTranslation(filePath) {
			translations = append(translations, filePath)
		}
	}
	return translations, nil
}

func (service outdatedChecker) allTranslations() ([]string, error) {
	dirs, err := ListArticleDirs(service.workspace)
	if err != nil {
		return nil, err
	}
	return ListTranslations(service.workspace, dirs)
}

// checkCommitHashes returns the translations whose outdated_since is not a known commit.
// Each distinct hash is asked for once.
func (service outdatedChecker) checkCommitHashes(ctx context.Context, translations []string) ([]string, error) {
	known := make(map[string]bool)
	var bad []string
	for _, translation := range translations {
		frontMatter, err := service.frontMatterStore.Load(translation)
		if err != nil {
			return nil, err
		}
		hash, ok := frontMatter.Text(OutdatedHashTag)
		if !ok {
			continue
		}
		exists, checked := known[hash]
		if !checked {
			if exists, err = service.gitProvider.CommitExists(ctx, hash); err != nil {
				return nil, err
			}
			known[hash] = exists
		}
		if !exists {
			bad = append(bad, translation)
		}
	}
	return bad, nil
}

func (service outdatedChecker) unmarkedTranslations(translations, modified []string) ([]string, error) {
	skip := make(map[string]struct{}, len(modified))
	for _, filePath := range modified {
		skip[filePath] = struct{}{}
	}
	var result []string
	for _, translation := range translations {
		if _, ok := skip[translation]; ok {
			continue
		}
		frontMatter, err := service.frontMatterStore.Load(translation)
		if err != nil {
			return nil, err
		}
		if _, ok := frontMatter.Get(OutdatedHashTag); ok || frontMatter.Bool(OutdatedTranslationTag) {
			continue
		}
		result = append(result, translation)
	}
	return result, nil
}

func (service outdatedChecker) outdatedHash(ctx context.Context, options OutdatedCheckOptions) (string, error) {
	if options.OutdatedSince != "" {
		return options.OutdatedSince, nil
	}
	return service.gitProvider.FirstBranchCommit(ctx, service.settings.MasterBranch)
}

func (service outdatedChecker) outdate(translations []string, hash string) error {
	for _, translation := range translations {
		frontMatter, err := service.frontMatterStore.Load(translation)
		if err != nil {
			return err
		}
		frontMatter.Set(OutdatedTranslationTag, true)
		frontMatter.Set(OutdatedHashTag, hash)
		if err = service.frontMatterStore.Save(translation, frontMatter); err != nil {
			return err
		}
	}
	service.logger.Info(fmt.Sprintf("outdated %d translations since %v", len(translations), hash))
	return nil
}

func exclude(translations, patterns []string) ([]string, int) {
	var masks []string
	for _, pattern := range patterns {
		for _, mask := range ExpandBraces(pattern) {
			masks = append(masks, strings.ToLower(mask))
		}
	}
	var (
		kept     []string
		excluded int
	)
	for _, translation := range translations {
		if matchesAny(translation, masks) {
			excluded++
			continue
		}
		kept = append(kept, translation)
	}
	return kept, excluded
}

// matchesAny tells whether a translation is excluded by a file path, its directory, or a shell
// mask. The wiki/ prefix may be left out of masks.
func matchesAny(translation string, masks []string) bool {
	lowered := strings.ToLower(translation)
	for _, candidate := range []string{lowered, strings.TrimPrefix(lowered, model.WikiDir+"/")} {
		dir := path.Dir(candidate)
		for _, mask := range masks {
			if candidate == mask || dir == strings.TrimRight(mask, "/") || MatchMask(candidate, mask) {
				return true
			}
		}
	}
	return false
}
