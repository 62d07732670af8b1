package model

import "strings"

const RedirectFile = "wiki/redirect.yaml"

type Redirect struct {
	Destination string
	Lineno      int
}

// Redirects maps lowercased wiki paths (without the wiki/ prefix) to their destinations.
type Redirects map[string]Redirect

func (r Redirects) Lookup(source string) (Redirect, bool) {
	redirect, ok := r[strings.ToLower(source)]
	return redirect, ok
}

// Split separates the destination path from an optional #fragment.
func (r Redirect) Split() (string, string) {
	destination, fragment, _ := strings.Cut(r.Destination, "#")
	return destination, fragment
}
