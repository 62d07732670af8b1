package yamllint

import (
	"errors"
	"fmt"
	"io"
	"regexp"
	"slices"
	"sort"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/osu-wiki/wikitools/pkg/wiki/application/model"
	"github.com/osu-wiki/wikitools/pkg/wiki/application/service"
)

const (
	RuleSyntax          = "syntax"
	RuleKeyDuplicates   = "key-duplicates"
	RuleTopLevel        = "osu-wiki-top-level"
	RuleNestedStructure = "osu-wiki-nested-structure"
	RuleAllowedTags     = "osu-wiki-allowed-tags"
)

var (
	syntaxErrorRegexp = regexp.MustCompile(`^yaml: line (\d+): (.*)$`)
	truthyValues      = map[string]struct{}{
		"YES": {}, "Yes": {}, "yes": {}, "NO": {}, "No": {}, "no": {},
		"TRUE": {}, "True": {}, "true": {}, "FALSE": {}, "False": {}, "false": {},
		"ON": {}, "On": {}, "on": {}, "OFF": {}, "Off": {}, "off": {},
	}
)

func NewLinter(config Config, allowedTags []string) service.YAMLLinter {
	allowed := make(map[string]struct{}, len(allowedTags))
	for _, tag := range allowedTags {
		allowed[tag] = struct{}{}
	}
	return &linter{config: config, allowedTags: allowed}
}

type linter struct {
	config      Config
	allowedTags map[string]struct{}
}

func (l linter) IsIgnored(filePath string) bool {
	return l.config.IsIgnored(filePath)
}

func (l linter) IsYAMLFile(filePath string) bool {
	return l.config.IsYAMLFile(filePath)
}

// Lint checks every document of the payload. Front matter rules only apply when frontMatter is set.
// After a syntax error only the text rules run, and only on the lines before it.
func (l linter) Lint(payload string, frontMatter bool) []model.YAMLProblem {
	var (
		problems  []model.YAMLProblem
		documents []*yaml.Node
		syntax    *model.YAMLProblem
	)
	decoder := yaml.NewDecoder(strings.NewReader(payload))
	for {
		var document yaml.Node
		err := decoder.Decode(&document)
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			found := syntaxProblem(err)
			syntax = &found
			break
		}
		documents = append(documents, &document)
	}

	payloadLines := lines(payload)
	for _, found := range lintLines(l.config.Rules, payloadLines) {
		if syntax == nil || found.Line < syntax.Line {
			problems = append(problems, found)
		}
	}
	if syntax != nil {
		problems = append(problems, *syntax)
	} else {
		indentation := newIndentationChecker(l.config.Rules.Indentation, payloadLines)
		for _, document := range documents {
			for _, root := range document.Content {
				problems = append(problems, l.lintNode(root, nil, false, frontMatter)...)
				if l.config.Rules.Indentation.Enabled() {
					problems = append(problems, indentation.checkDocument(root)...)
				}
			}
		}
	}

	sort.SliceStable(problems, func(i, j int) bool {
		if problems[i].Line != problems[j].Line {
			return problems[i].Line < problems[j].Line
		}
		return problems[i].Column < problems[j].Column
	})
	return problems
}

func (l linter) lintNode(node, parent *yaml.Node, isKey, frontMatter bool) []model.YAMLProblem {
	var problems []model.YAMLProblem
	if frontMatter {
		problems = append(problems, l.lintStructure(node, parent)...)
	}

	switch node.Kind {
	case yaml.MappingNode:
		problems = append(problems, l.lintKeys(node, frontMatter)...)
	case yaml.ScalarNode:
		problems = append(problems, l.lintTruthy(node, isKey)...)
	}

	for i, child := range node.Content {
		isChildKey := node.Kind == yaml.MappingNode && i%2 == 0
		problems = append(problems, l.lintNode(child, node, isChildKey, frontMatter)...)
	}
	return problems
}

func (l linter) lintKeys(mapping *yaml.Node, frontMatter bool) []model.YAMLProblem {
	var problems []model.YAMLProblem
	duplicates := l.config.Rules.KeyDuplicates
	seen := make(map[string]struct{})
	for i := 0; i+1 < len(mapping.Content); i += 2 {
		key := mapping.Content[i]
		if key.Kind != yaml.ScalarNode {
			continue
		}
		if _, ok := seen[key.Value]; ok && duplicates.Enabled() {
			problems = append(problems, problem(key.Line, key.Column, duplicates.Level, RuleKeyDuplicates,
				fmt.Sprintf("duplication of key %q in mapping", key.Value)))
		}
		seen[key.Value] = struct{}{}
		if _, ok := l.allowedTags[key.Value]; frontMatter && !ok {
			problems = append(problems, problem(key.Line, key.Column, model.LevelError, RuleAllowedTags,
				fmt.Sprintf("bad front matter: '%v' is not in the list of allowed tags", key.Value)))
		}
	}
	return problems
}

// lintTruthy flags plain booleans spelled other than the allowed values. Quoted or tagged
// scalars carry a style and are left alone.
func (l linter) lintTruthy(node *yaml.Node, isKey bool) []model.YAMLProblem {
	rule := l.config.Rules.Truthy
	if !rule.Enabled() || node.Style != 0 || (isKey && !rule.CheckKeys) {
		return nil
	}
	if _, ok := truthyValues[node.Value]; !ok || slices.Contains(rule.AllowedValues, node.Value) {
		return nil
	}
	allowed := slices.Clone(rule.AllowedValues)
	sort.Strings(allowed)
	return []model.YAMLProblem{problem(node.Line, node.Column, rule.Level, RuleTruthy,
		fmt.Sprintf("truthy value should be one of [%v]", strings.Join(allowed, ", ")))}
}

func (l linter) lintStructure(node, parent *yaml.Node) []model.YAMLProblem {
	if node.Kind != yaml.MappingNode && node.Kind != yaml.SequenceNode {
		return nil
	}
	line, column := position(node)
	if parent == nil {
		if node.Kind == yaml.SequenceNode {
			return []model.YAMLProblem{problem(line, column, model.LevelError, RuleTopLevel,
				"bad front matter: the top level must be a dictionary, not a list")}
		}
		return nil
	}
	// a list of tags directly under a key is the only nesting allowed
	if parent.Kind == yaml.MappingNode && node.Kind == yaml.SequenceNode {
		return nil
	}
	return []model.YAMLProblem{problem(line, column, model.LevelError, RuleNestedStructure,
		"bad front matter: lists or dictionaries cannot contain other similarly complex objects")}
}

// position points at the first entry of a collection, or at its opening bracket when empty.
func position(node *yaml.Node) (int, int) {
	if node.Style&yaml.FlowStyle != 0 && len(node.Content) > 0 {
		return node.Content[0].Line, node.Content[0].Column
	}
	return node.Line, node.Column
}

func syntaxProblem(err error) model.YAMLProblem {
	line, message := 1, err.Error()
	if match := syntaxErrorRegexp.FindStringSubmatch(message); match != nil {
		line, _ = strconv.Atoi(match[1])
		message = match[2]
	}
	return problem(line, 1, model.LevelError, RuleSyntax, "syntax error: "+strings.TrimPrefix(message, "yaml: "))
}

func problem(line, column int, level, rule, message string) model.YAMLProblem {
	return model.YAMLProblem{
		Line:    line,
		Column:  column,
		Level:   level,
		Rule:    rule,
		Message: message,
	}
}
