package redirectconfig

import (
	"testing"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/osu-wiki/wikitools/pkg/wiki/application/model"
	"github.com/osu-wiki/wikitools/pkg/wiki/infrastructure/provider"
)

func TestLoader(t *testing.T) {
	workspace := provider.NewWorkspace(afero.NewMemMapFs())
	loader := NewLoader(workspace)

	redirects, err := loader.Redirects()
	require.NoError(t, err)
	assert.Empty(t, redirects)

	require.NoError(t, workspace.WriteFile(model.RedirectFile, "# comment\n\"Old_Link\": \"New_link#section\"\n"))
	redirects, err = loader.Load(model.RedirectFile)
	require.NoError(t, err)
	assert.Empty(t, redirects, "redirects are read once per path")

	redirects, err = NewLoader(workspace).Redirects()
	require.NoError(t, err)
	redirect, ok := redirects.Lookup("old_link")
	require.True(t, ok)
	assert.Equal(t, model.Redirect{Destination: "New_link#section", Lineno: 2}, redirect)
}
