package redirectconfig

import (
	"github.com/osu-wiki/wikitools/pkg/wiki/application/markdown"
	"github.com/osu-wiki/wikitools/pkg/wiki/application/model"
	"github.com/osu-wiki/wikitools/pkg/wiki/application/service"
)

func NewLoader(workspace service.Workspace) *Loader {
	return &Loader{
		workspace: workspace,
		cache:     make(map[string]model.Redirects),
	}
}

// Loader reads redirect files once per path.
type Loader struct {
	workspace service.Workspace
	cache     map[string]model.Redirects
}

// Redirects returns the redirects of the wiki. A repository without a redirect file has none.
func (l *Loader) Redirects() (model.Redirects, error) {
	return l.Load(model.RedirectFile)
}

func (l *Loader) Load(path string) (model.Redirects, error) {
	redirects, ok := l.cache[path]
	if ok {
		return redirects, nil
	}
	redirects, err := l.load(path)
	if err != nil {
		return nil, err
	}
	l.cache[path] = redirects
	return redirects, nil
}

func (l *Loader) load(path string) (model.Redirects, error) {
	if !l.workspace.IsFile(path) {
		return model.Redirects{}, nil
	}
	content, err := l.workspace.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return markdown.ParseRedirects(content), nil
}
