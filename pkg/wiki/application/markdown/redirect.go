package markdown

import (
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/osu-wiki/wikitools/pkg/wiki/application/model"
)

// ParseRedirects reads "source": "destination" pairs line by line so that each redirect keeps
// its line number. Lines that are not a single YAML pair are skipped.
func ParseRedirects(content string) model.Redirects {
	redirects := make(model.Redirects)
	for i, line := range splitLines(content) {
		trimmed := strings.TrimSpace(line)
		if trimmed == "" || strings.HasPrefix(trimmed, "#") {
			continue
		}
		var pair map[string]string
		if err := yaml.Unmarshal([]byte(trimmed), &pair); err != nil || len(pair) != 1 {
			continue
		}
		for source, destination := range pair {
			redirects[strings.ToLower(source)] = model.Redirect{
				Destination: strings.TrimSpace(destination),
				Lineno:      i + 1,
			}
		}
	}
	return redirects
}
