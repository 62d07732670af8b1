package model

import "strings"

// Location is a link target split into URL components. Percent escapes are kept as written.
type Location struct {
	Scheme   string
	Netloc   string
	Path     string
	Query    string
	Fragment string
}

func ParseLocation(raw string) Location {
	var location Location
	rest := raw

	if i := strings.IndexByte(rest, ':'); i > 0 && isScheme(rest[:i]) {
		location.Scheme = strings.ToLower(rest[:i])
		rest = rest[i+1:]
	}

	if strings.HasPrefix(rest, "//") {
		rest = rest[2:]
		end := strings.IndexAny(rest, "/?#")
		if end == -1 {
			end = len(rest)
		}
		location.Netloc = rest[:end]
		rest = rest[end:]
	}

	if i := strings.IndexByte(rest, '#'); i != -1 {
		location.Fragment = rest[i+1:]
		rest = rest[:i]
	}
	if i := strings.IndexByte(rest, '?'); i != -1 {
		location.Query = rest[i+1:]
		rest = rest[:i]
	}
	location.Path = rest

	return location
}

func (l Location) IsExternal() bool {
	return l.Scheme != ""
}

func isScheme(s string) bool {
	for i, c := range s {
		switch {
		case c >= 'a' && c <= 'z', c >= 'A' && c <= 'Z':
		case i > 0 && (c >= '0' && c <= '9' || c == '+' || c == '-' || c == '.'):
		default:
			return false
		}
	}
	return true
}
