package provider

import (
	"context"
	"fmt"
	"strings"

	"github.com/pkg/errors"

	"github.com/osu-wiki/wikitools/pkg/wiki/application/service"
	"github.com/osu-wiki/wikitools/pkg/wiki/infrastructure/command"
)

// git must never wait for credentials or open a pager
var gitEnv = []string{"GIT_TERMINAL_PROMPT=0", "GIT_PAGER=cat"}

func NewGitProvider(
	repoDir string,
	runner command.Runner,
) service.GitProvider {
	return &gitProvider{
		repoDir: repoDir,
		runner:  runner,
	}
}

type gitProvider struct {
	repoDir string
	runner  command.Runner
}

func (provider gitProvider) DiffNames(ctx context.Context, base string, pathspecs ...string) ([]string, error) {
	args := append([]string{"diff", "--diff-filter=d", "--name-only", base, "--"}, pathspecs...)
	output, err := provider.git(ctx, args...)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to list files changed since %v", base)
	}
	return lines(output), nil
}

func (provider gitProvider) CommitExists(ctx context.Context, hash string) (bool, error) {
	if hash == "" || strings.HasPrefix(hash, "-") {
		return false, nil
	}
	_, err := provider.git(ctx, "cat-file", "-e", fmt.Sprintf("%v^{commit}", hash))
	if err != nil {
		if ctx.Err() != nil {
			return false, ctx.Err()
		}
		return false, nil
	}
	return true, nil
}

// FirstBranchCommit returns the oldest commit of HEAD that base does not have, or "" if there is none.
func (provider gitProvider) FirstBranchCommit(ctx context.Context, base string) (string, error) {
	output, err := provider.git(ctx, "log", base+"..", "--pretty=format:%H")
	if err != nil {
		return "", errors.Wrapf(err, "failed to list commits since %v", base)
	}
	commits := lines(output)
	if len(commits) == 0 {
		return "", nil
	}
	return commits[len(commits)-1], nil
}

func (provider gitProvider) Add(ctx context.Context, paths ...string) error {
	_, err := provider.git(ctx, append([]string{"add", "--"}, paths...)...)
	return errors.Wrapf(err, "failed to stage %v", strings.Join(paths, " "))
}

func (provider gitProvider) Commit(ctx context.Context, message string) error {
	_, err := provider.git(ctx, "commit", "-m", message)
	return errors.Wrapf(err, "failed to commit %q", message)
}

func (provider gitProvider) ShowHead(ctx context.Context) (string, error) {
	output, err := provider.git(ctx, "show", "HEAD", "--no-patch")
	return output, errors.Wrap(err, "failed to show HEAD")
}

func (provider gitProvider) git(ctx context.Context, args ...string) (string, error) {
	return provider.runner.Execute(ctx, command.Command{
		WorkDir:    provider.repoDir,
		Executable: "git",
		Args:       args,
		Env:        gitEnv,
	})
}

func lines(output string) []string {
	var result []string
	for _, line := range strings.Split(output, "\n") {
		line = strings.TrimSpace(line)
		if line != "" {
			result = append(result, line)
		}
	}
	return result
}
