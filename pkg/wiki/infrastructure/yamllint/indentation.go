package yamllint

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"gopkg.in/yaml.v3"

	"github.com/osu-wiki/wikitools/pkg/wiki/application/model"
)

// indentationChecker walks block collections. Node columns are 1-based, reported indentation is 0-based.
type indentationChecker struct {
	rule   Indentation
	lines  []string
	spaces int
	// decided by the first sequence under a key when sequences must be consistent
	sequencesIndented *bool
	problems          []model.YAMLProblem
}

func newIndentationChecker(rule Indentation, lines []string) *indentationChecker {
	return &indentationChecker{
		rule:   rule,
		lines:  lines,
		spaces: int(rule.Spaces),
	}
}

func (c *indentationChecker) checkDocument(root *yaml.Node) []model.YAMLProblem {
	c.problems = nil
	if isBlockCollection(root) && root.Column != 1 {
		c.report(root.Line, root.Column, 0)
	}
	c.check(root)
	return c.problems
}

func isBlockCollection(node *yaml.Node) bool {
	return (node.Kind == yaml.MappingNode || node.Kind == yaml.SequenceNode) && node.Style&yaml.FlowStyle == 0
}

func (c *indentationChecker) check(node *yaml.Node) {
	if !isBlockCollection(node) {
		return
	}
	switch node.Kind {
	case yaml.MappingNode:
		for i := 0; i+1 < len(node.Content); i += 2 {
			key, value := node.Content[i], node.Content[i+1]
			if key.Column != node.Column {
				c.report(key.Line, key.Column, node.Column-1)
			}
			c.checkValue(key, value)
		}
	case yaml.SequenceNode:
		for _, item := range node.Content {
			dash, sameLine := c.dashColumn(item)
			if sameLine && dash != node.Column {
				c.report(item.Line, dash, node.Column-1)
			}
			if !sameLine && isBlockCollection(item) {
				c.expect(item, node.Column-1+c.unit(item.Column-node.Column))
			}
			c.check(item)
		}
	}
}

func (c *indentationChecker) checkValue(key, value *yaml.Node) {
	if isBlockCollection(value) && value.Line != key.Line {
		found := value.Column - key.Column
		switch {
		case value.Kind == yaml.MappingNode:
			c.expect(value, key.Column-1+c.unit(found))
		case c.indentSequence(found > 0):
			c.expect(value, key.Column-1+c.unit(found))
		default:
			c.expect(value, key.Column-1)
		}
	}
	c.check(value)
}

// indentSequence reports whether a block sequence under a key has to be indented.
func (c *indentationChecker) indentSequence(indented bool) bool {
	switch c.rule.IndentSequences {
	case IndentSequencesFalse:
		return false
	case IndentSequencesWhatever:
		return indented
	case IndentSequencesConsistent:
		if c.sequencesIndented == nil {
			c.sequencesIndented = &indented
		}
		return *c.sequencesIndented
	}
	return true
}

// unit is the indentation width, taken from the first indented collection when not configured.
func (c *indentationChecker) unit(found int) int {
	if c.spaces == 0 && found > 0 {
		c.spaces = found
	}
	if c.spaces == 0 {
		return 2
	}
	return c.spaces
}

// dashColumn finds the "-" introducing a sequence item on the line the item starts on.
func (c *indentationChecker) dashColumn(item *yaml.Node) (int, bool) {
	if item.Line < 1 || item.Line > len(c.lines) {
		return 0, false
	}
	line := []rune(c.lines[item.Line-1])
	if item.Column-1 > len(line) {
		return 0, false
	}
	prefix := strings.TrimRight(string(line[:item.Column-1]), " ")
	if !strings.HasSuffix(prefix, "-") {
		return 0, false
	}
	return utf8.RuneCountInString(prefix), true
}

func (c *indentationChecker) expect(node *yaml.Node, expected int) {
	if node.Column-1 != expected {
		c.report(node.Line, node.Column, expected)
	}
}

func (c *indentationChecker) report(line, column, expected int) {
	c.problems = append(c.problems, problem(line, column, c.rule.Level, RuleIndentation,
		fmt.Sprintf("wrong indentation: expected %d but found %d", expected, column-1)))
}
