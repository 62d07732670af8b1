package model

import (
	"fmt"
	"strings"
)

type LinkErrorKind int

const (
	LinkNotFound LinkErrorKind = iota
	BrokenRedirect
	MissingReference
	MalformedLink
	MissingIdentifier
	BrokenRedirectIdentifier
)

// LinkError describes why a link does not lead anywhere. Only the fields relevant to Kind are set.
type LinkError struct {
	Kind      LinkErrorKind
	Link      Link
	Reference *Reference

	ResolvedLocation    string
	RedirectLineno      int
	RedirectDestination string

	Path                   string
	Identifier             string
	TranslationAvailable   bool
	TranslationOutdated    bool
	NoTranslationAvailable bool
}

func (e *LinkError) Error() string {
	switch e.Kind {
	case LinkNotFound:
		return fmt.Sprintf("%q was not found", e.ResolvedLocation)
	case BrokenRedirect:
		return fmt.Sprintf(
			"Broken redirect (redirect.yaml:%d: %v --> %v)",
			e.RedirectLineno, strings.ToLower(e.ResolvedLocation), e.RedirectDestination,
		)
	case MissingReference:
		return fmt.Sprintf("No corresponding reference found for %q", e.Link.RawLocation)
	case MalformedLink:
		return fmt.Sprintf("Incorrect link structure (typo?): %q", e.Location())
	case MissingIdentifier:
		return fmt.Sprintf("There is no heading with identifier %q in %q", e.Identifier, e.Path)
	case BrokenRedirectIdentifier:
		return fmt.Sprintf(
			"Broken redirect (redirect.yaml:%d: %v --> %v): there is no heading with identifier %q in %q",
			e.RedirectLineno, strings.ToLower(e.ResolvedLocation), e.RedirectDestination, e.Identifier, e.Path,
		)
	}
	return "unknown link error"
}

// IsSectionError reports errors about a missing #section in an existing article.
func (e *LinkError) IsSectionError() bool {
	return e.Kind == MissingIdentifier || e.Kind == BrokenRedirectIdentifier
}

// Location is the link target as written, dereferenced for reference-style links.
func (e *LinkError) Location() string {
	if e.Reference != nil {
		return e.Reference.RawLocation
	}
	return e.Link.RawLocation
}

// Notes are the extra lines printed under the description.
func (e *LinkError) Notes() []string {
	var notes []string
	if e.Reference != nil {
		notes = append(notes, fmt.Sprintf("Reference at line %d: [%v]: %v", e.Reference.Lineno, e.Reference.Name, e.Reference.RawLocation))
	}
	if !e.IsSectionError() {
		return notes
	}
	switch {
	case e.TranslationOutdated:
		notes = append(notes, "The translation is outdated, so the heading may have changed in the original.")
	case e.NoTranslationAvailable:
		notes = append(notes, "There is no translation of the target article; the English version was checked.")
	case e.TranslationAvailable:
		notes = append(notes, "The target article is translated; the translation was checked.")
	}
	return notes
}
