package service

import (
	"path"
	"sort"
	"strings"

	"github.com/osu-wiki/wikitools/pkg/wiki/application/model"
)

// destination is where a wiki link leads once references and redirects are followed.
type destination struct {
	Reference *model.Reference
	Location  model.Location
	// Target is a repository path with its on-disk casing.
	Target   string
	Fragment string

	Redirected     bool
	RedirectSource string
	Redirect       model.Redirect
}

// linkResolver follows links of articles. Articles parsed on the way are shared through the cache.
type linkResolver struct {
	workspace     Workspace
	articles      ArticleProvider
	redirects     model.Redirects
	cache         map[string]model.Article
	caseSensitive bool
}

func newLinkResolver(
	workspace Workspace,
	articles ArticleProvider,
	redirects model.Redirects,
	caseSensitive bool,
) *linkResolver {
	return &linkResolver{
		workspace:     workspace,
		articles:      articles,
		redirects:     redirects,
		cache:         make(map[string]model.Article),
		caseSensitive: caseSensitive,
	}
}

func (r *linkResolver) article(filePath string) (model.Article, error) {
	if article, ok := r.cache[filePath]; ok {
		return article, nil
	}
	article, err := r.articles.Load(filePath)
	if err != nil {
		return model.Article{}, err
	}
	r.cache[filePath] = article
	return article, nil
}

func (r *linkResolver) find(filePath string) (string, bool) {
	if r.caseSensitive {
		return filePath, r.workspace.ExistsCaseSensitive(filePath)
	}
	return r.workspace.Canonical(filePath)
}

// follow resolves a link to an existing file or directory. External links give no destination
// and no error.
func (r *linkResolver) follow(article model.Article, link model.Link) (*destination, *model.LinkError) {
	linkError := &model.LinkError{Link: link}
	d := &destination{Location: link.Location}
	if link.IsReference {
		reference, ok := link.Resolve(article.References)
		if !ok {
			linkError.Kind = model.MissingReference
			return nil, linkError
		}
		linkError.Reference = &reference
		d.Reference = &reference
		d.Location = reference.Location
	}

	if d.Location.Scheme != "" {
		return nil, nil
	}
	if d.Location.Netloc != "" {
		linkError.Kind = model.MalformedLink
		return nil, linkError
	}

	target := targetPath(article, d.Location.Path)
	d.Fragment = d.Location.Fragment
	if found, ok := r.find(target); ok {
		d.Target = found
		return d, nil
	}

	source := model.WikiRelative(target)
	redirect, ok := r.redirects.Lookup(source)
	if !ok {
		linkError.Kind = model.LinkNotFound
		linkError.ResolvedLocation = "/" + target
		return nil, linkError
	}
	redirectPath, redirectFragment := redirect.Split()
	d.Redirected = true
	d.RedirectSource = source
	d.Redirect = redirect
	found, ok := r.find(path.Join(model.WikiDir, redirectPath))
	if !ok {
		linkError.Kind = model.BrokenRedirect
		linkError.ResolvedLocation = source
		linkError.RedirectLineno = redirect.Lineno
		linkError.RedirectDestination = redirect.Destination
		return nil, linkError
	}
	d.Target = found
	if d.Fragment == "" {
		d.Fragment = redirectFragment
	}
	return d, nil
}

// check returns the problem with a link, if any. Section links are checked against the
// translation in the language of the article when there is one, and the original otherwise.
func (r *linkResolver) check(article model.Article, link model.Link) (*model.LinkError, error) {
	d, linkError := r.follow(article, link)
	if linkError != nil || d == nil || d.Fragment == "" {
		return linkError, nil
	}
	if !r.workspace.IsDir(d.Target) {
		return nil, nil
	}

	translationPath := path.Join(d.Target, article.Filename)
	translationAvailable := article.Filename != model.OriginalFilename && r.workspace.IsFile(translationPath)
	targetFile := translationPath
	if !translationAvailable {
		targetFile = path.Join(d.Target, model.OriginalFilename)
		if !r.workspace.IsFile(targetFile) {
			return nil, nil
		}
	}

	target, err := r.article(targetFile)
	if err != nil {
		return nil, err
	}
	if _, ok := target.Identifiers[d.Fragment]; ok {
		return nil, nil
	}

	linkError = &model.LinkError{
		Kind:                   model.MissingIdentifier,
		Link:                   link,
		Reference:              d.Reference,
		Path:                   targetFile,
		Identifier:             d.Fragment,
		TranslationAvailable:   translationAvailable,
		TranslationOutdated:    translationAvailable && target.IsOutdated(),
		NoTranslationAvailable: article.IsTranslation() && !translationAvailable,
	}
	if d.Redirected {
		linkError.Kind = model.BrokenRedirectIdentifier
		linkError.ResolvedLocation = d.RedirectSource
		linkError.RedirectLineno = d.Redirect.Lineno
		linkError.RedirectDestination = d.Redirect.Destination
	}
	return linkError, nil
}

// suggestions lists the identifiers of an already parsed article by line.
func (r *linkResolver) suggestions(filePath string) []IdentifierSuggestion {
	article, ok := r.cache[filePath]
	if !ok {
		return nil
	}
	suggestions := make([]IdentifierSuggestion, 0, len(article.Identifiers))
	for identifier, lineno := range article.Identifiers {
		suggestions = append(suggestions, IdentifierSuggestion{Lineno: lineno, Identifier: identifier})
	}
	sort.Slice(suggestions, func(i, j int) bool {
		if suggestions[i].Lineno != suggestions[j].Lineno {
			return suggestions[i].Lineno < suggestions[j].Lineno
		}
		return suggestions[i].Identifier < suggestions[j].Identifier
	})
	return suggestions
}

// targetPath turns a link path into a repository path. Paths outside /wiki/ that start with a
// slash are taken from the repository root, other paths are relative to the article.
func targetPath(article model.Article, linkPath string) string {
	switch {
	case linkPath == "":
		return article.Directory
	case strings.HasPrefix(linkPath, "/"):
		return strings.TrimPrefix(path.Clean(linkPath), "/")
	default:
		return path.Join(article.Directory, linkPath)
	}
}

type IdentifierSuggestion struct {
	Lineno     int
	Identifier string
}
