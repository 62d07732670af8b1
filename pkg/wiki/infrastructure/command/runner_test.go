package command

import (
	"context"
	"runtime"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tss-calculator/go-lib/pkg/infrastructure/logger"
)

func TestRunner(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("requires a POSIX shell")
	}
	runner := NewCommandRunner(logger.NewTextLogger())

	output, err := runner.Execute(context.Background(), Command{
		WorkDir:    t.TempDir(),
		Executable: "sh",
		Args:       []string{"-c", "echo \"$WIKITOOLS_TEST\""},
		Env:        []string{"WIKITOOLS_TEST=value"},
	})
	require.NoError(t, err)
	assert.Equal(t, "value\n", output)

	output, err = runner.Execute(context.Background(), Command{
		Executable: "sh",
		Args:       []string{"-c", "echo partial; echo 'fatal: bad revision' >&2; exit 3"},
	})
	require.Error(t, err)
	assert.Equal(t, "partial\n", output)
	assert.Contains(t, err.Error(), "fatal: bad revision")

	_, err = runner.Execute(context.Background(), Command{})
	assert.Error(t, err)
}
