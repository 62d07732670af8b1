package model

import "unicode/utf8"

// Link is an inline or reference-style Markdown link found on a line.
//
//	![Player is AFK](img/chat-console-afk.png "Player is away from keyboard")
//	 ^ Start        ^ RawLocation             ^ Extra                       ^ End
type Link struct {
	Start       int
	End         int
	Title       string
	RawLocation string
	Location    Location
	Extra       string
	IsReference bool
}

func (l Link) Content() string {
	return l.RawLocation + l.Extra
}

func (l Link) FullLink() string {
	if l.IsReference {
		return "[" + l.Title + "][" + l.Content() + "]"
	}
	return "[" + l.Title + "](" + l.Content() + ")"
}

// Resolve looks up the reference behind a reference-style link.
func (l Link) Resolve(references References) (Reference, bool) {
	if !l.IsReference {
		return Reference{}, false
	}
	reference, ok := references[l.RawLocation]
	return reference, ok
}

// Reference is the definition part of a reference-style link: [name]: location "title".
type Reference struct {
	Lineno      int
	Name        string
	RawLocation string
	Location    Location
	Title       string
}

func (r Reference) Start() int {
	return 0
}

func (r Reference) End() int {
	end := utf8.RuneCountInString(r.Name) + 4 + utf8.RuneCountInString(r.RawLocation)
	if r.Title != "" {
		end += 3 + utf8.RuneCountInString(r.Title)
	}
	return end
}

type References map[string]Reference
