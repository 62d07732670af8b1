package provider

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/osu-wiki/wikitools/pkg/wiki/infrastructure/command"
)

type fakeRunner struct {
	commands []command.Command
	outputs  map[string]string
	failures map[string]bool
}

func (r *fakeRunner) Execute(_ context.Context, cmd command.Command) (string, error) {
	r.commands = append(r.commands, cmd)
	key := strings.Join(cmd.Args, " ")
	if r.failures[key] {
		return "", errors.New("exit status 1")
	}
	return r.outputs[key], nil
}

func TestGitProviderDiffNames(t *testing.T) {
	runner := &fakeRunner{outputs: map[string]string{
		"diff --diff-filter=d --name-only master -- wiki/**/en.md": "wiki/A/en.md\nwiki/B/en.md\n\n",
	}}
	git := NewGitProvider("/repo", runner)

	names, err := git.DiffNames(context.Background(), "master", "wiki/**/en.md")
	require.NoError(t, err)
	assert.Equal(t, []string{"wiki/A/en.md", "wiki/B/en.md"}, names)
	require.Len(t, runner.commands, 1)
	assert.Equal(t, "git", runner.commands[0].Executable)
	assert.Equal(t, "/repo", runner.commands[0].WorkDir)
}

func TestGitProviderCommitExists(t *testing.T) {
	runner := &fakeRunner{failures: map[string]bool{"cat-file -e deadbeef^{commit}": true}}
	git := NewGitProvider("/repo", runner)

	exists, err := git.CommitExists(context.Background(), "0a1b2c3")
	require.NoError(t, err)
	assert.True(t, exists)

	exists, err = git.CommitExists(context.Background(), "deadbeef")
	require.NoError(t, err)
	assert.False(t, exists)

	exists, err = git.CommitExists(context.Background(), "--all")
	require.NoError(t, err)
	assert.False(t, exists)
	assert.Len(t, runner.commands, 2)
}

func TestGitProviderFirstBranchCommit(t *testing.T) {
	runner := &fakeRunner{outputs: map[string]string{
		"log master.. --pretty=format:%H": "ccc\nbbb\naaa",
	}}
	git := NewGitProvider("/repo", runner)

	hash, err := git.FirstBranchCommit(context.Background(), "master")
	require.NoError(t, err)
	assert.Equal(t, "aaa", hash)

	hash, err = git.FirstBranchCommit(context.Background(), "other")
	require.NoError(t, err)
	assert.Empty(t, hash)
}

func TestGitProviderCommit(t *testing.T) {
	runner := &fakeRunner{}
	git := NewGitProvider("/repo", runner)

	require.NoError(t, git.Add(context.Background(), "wiki/A/ru.md", "wiki/B/ru.md"))
	require.NoError(t, git.Commit(context.Background(), "outdate translations"))
	assert.Equal(t, []string{"add", "--", "wiki/A/ru.md", "wiki/B/ru.md"}, runner.commands[0].Args)
	assert.Equal(t, []string{"commit", "-m", "outdate translations"}, runner.commands[1].Args)

	runner.failures = map[string]bool{"commit -m outdate translations": true}
	assert.Error(t, git.Commit(context.Background(), "outdate translations"))
}
