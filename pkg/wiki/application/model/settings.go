package model

// Settings tune the tools for a particular wiki repository.
type Settings struct {
	MasterBranch      string
	AllowedTags       []string
	IgnoredLinks      []string
	AutocommitMessage string
}

var DefaultAllowedTags = []string{
	"needs_cleanup",
	"layout",
	"legal",
	"outdated",
	"outdated_since",
	"outdated_translation",
	"stub",
	"tags",
	"translate_from",
	"date",
	"title",
	"tumblr_url",
}

func DefaultSettings() Settings {
	return Settings{
		MasterBranch:      "master",
		AllowedTags:       append([]string(nil), DefaultAllowedTags...),
		IgnoredLinks:      []string{"/wiki/Sitemap"},
		AutocommitMessage: "outdate translations",
	}
}
