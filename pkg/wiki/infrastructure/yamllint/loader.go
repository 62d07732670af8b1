package yamllint

import (
	"path"

	"github.com/pkg/errors"

	"github.com/osu-wiki/wikitools/pkg/wiki/application/service"
)

const DefaultConfigPath = ".yamllint.yaml"

func NewLoader(workspace service.Workspace, allowedTags []string) service.YAMLLinterLoader {
	return &loader{
		workspace:   workspace,
		allowedTags: allowedTags,
	}
}

type loader struct {
	workspace   service.Workspace
	allowedTags []string
}

// Load reads the yamllint config at configPath. Without one the default rules apply.
func (l loader) Load(configPath string) (service.YAMLLinter, error) {
	config := DefaultConfig()
	if configPath != "" && l.workspace.IsFile(path.Clean(configPath)) {
		content, err := l.workspace.ReadFile(path.Clean(configPath))
		if err != nil {
			return nil, err
		}
		config, err = ParseConfig(content)
		if err != nil {
			return nil, errors.Wrapf(err, "invalid config %v", configPath)
		}
	}
	return NewLinter(config, l.allowedTags), nil
}
