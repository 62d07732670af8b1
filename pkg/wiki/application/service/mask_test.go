package service_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/osu-wiki/wikitools/pkg/wiki/application/service"
)

func TestExpandBraces(t *testing.T) {
	for _, testCase := range []struct {
		pattern  string
		expected []string
	}{
		{"wiki/Article/ru.md", []string{"wiki/Article/ru.md"}},
		{"wiki/{A,B}/ru.md", []string{"wiki/A/ru.md", "wiki/B/ru.md"}},
		{"wiki/{A,B}/{fr,es}.md", []string{"wiki/A/fr.md", "wiki/A/es.md", "wiki/B/fr.md", "wiki/B/es.md"}},
		{"wiki/Other{,2}", []string{"wiki/Other", "wiki/Other2"}},
		{"wiki/{A,B{1,2}}", []string{"wiki/A", "wiki/B1", "wiki/B2"}},
		{"wiki/{A}/{x,y}", []string{"wiki/{A}/x", "wiki/{A}/y"}},
		{"wiki/{A,B", []string{"wiki/{A,B"}},
	} {
		assert.Equal(t, testCase.expected, service.ExpandBraces(testCase.pattern), testCase.pattern)
	}
}

func TestMatchMask(t *testing.T) {
	for _, testCase := range []struct {
		path     string
		mask     string
		expected bool
	}{
		{"wiki/article/ru.md", "wiki/article/ru.md", true},
		{"wiki/article/sub/ru.md", "wiki/article/*", true},
		{"wiki/article/ru.md", "*", true},
		{"wiki/article/ru.md", "*/ru.md", true},
		{"wiki/article/fr.md", "*/ru.md", false},
		{"wiki/article/ru.md", "wiki/articl?/ru.md", true},
		{"wiki/article/ru.md", "wiki/article/[rs]u.md", true},
		{"wiki/article/ru.md", "wiki/article/[!r]u.md", false},
		{"wiki/article/ru.md", "wiki/article/ru.m", false},
		{"wiki/article(1)/ru.md", "wiki/article(1)/*", true},
		{"wiki/статья/ru.md", "wiki/стат?я/*", true},
		{"wiki/article/[ru.md", "wiki/article/[ru.md", true},
	} {
		assert.Equal(t, testCase.expected, service.MatchMask(testCase.path, testCase.mask), "%v ~ %v", testCase.path, testCase.mask)
	}
}
