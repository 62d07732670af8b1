package frontmatter

import (
	"bytes"
	"sort"
	"strings"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"

	"github.com/osu-wiki/wikitools/pkg/wiki/application/model"
)

const (
	Delimiter      = "---"
	titleIndicator = "# "
)

// Block is a Markdown file cut at its front matter.
type Block struct {
	// Lines up to the closing delimiter: the opening delimiter is included, the closing one is not.
	Lines      []string
	Delimiters int
	// Body is what follows the closing delimiter, or the whole file without front matter.
	Body string
}

func (b Block) HasFrontMatter() bool {
	return b.Delimiters == 2
}

func (b Block) Payload() string {
	return strings.Join(b.Lines, "")
}

func IsDelimiter(line string) bool {
	before, _, _ := strings.Cut(line, "#")
	return strings.TrimSpace(before) == Delimiter
}

// Split reads lines until the second delimiter. A title line ends the search early.
func Split(content string) Block {
	var block Block
	lines := strings.SplitAfter(content, "\n")
	for i, line := range lines {
		if IsDelimiter(line) {
			block.Delimiters++
		}
		if block.Delimiters == 2 {
			block.Body = strings.Join(lines[i+1:], "")
			return block
		}
		if strings.HasPrefix(line, titleIndicator) {
			break
		}
		block.Lines = append(block.Lines, line)
	}
	block.Body = content
	return block
}

// SplitPayload returns the front matter lines of a file and the number of delimiters found.
func SplitPayload(content string) (string, int) {
	block := Split(content)
	return block.Payload(), block.Delimiters
}

func Parse(content string) (model.FrontMatter, error) {
	block := Split(content)
	if !block.HasFrontMatter() {
		return model.NewFrontMatter(), nil
	}
	return Decode(block.Payload())
}

// Decode reads a YAML mapping keeping the order of its keys.
func Decode(payload string) (model.FrontMatter, error) {
	frontMatter := model.NewFrontMatter()
	var document yaml.Node
	if err := yaml.Unmarshal([]byte(payload), &document); err != nil {
		return frontMatter, errors.Wrap(err, "failed to parse front matter")
	}
	if len(document.Content) == 0 {
		return frontMatter, nil
	}
	root := document.Content[0]
	if root.ShortTag() == "!!null" {
		return frontMatter, nil
	}
	if root.Kind != yaml.MappingNode {
		return frontMatter, errors.New("front matter is not a mapping")
	}
	for i := 0; i+1 < len(root.Content); i += 2 {
		value, err := decodeValue(root.Content[i+1])
		if err != nil {
			return frontMatter, errors.Wrapf(err, "failed to decode front matter key %v", root.Content[i].Value)
		}
		frontMatter.Set(root.Content[i].Value, value)
	}
	return frontMatter, nil
}

// decodeValue keeps timestamps as written so that saving a file never reformats its dates.
func decodeValue(node *yaml.Node) (any, error) {
	switch node.Kind {
	case yaml.AliasNode:
		return decodeValue(node.Alias)
	case yaml.SequenceNode:
		items := make([]any, 0, len(node.Content))
		for _, child := range node.Content {
			item, err := decodeValue(child)
			if err != nil {
				return nil, err
			}
			items = append(items, item)
		}
		return items, nil
	case yaml.MappingNode:
		mapping := make(map[string]any, len(node.Content)/2)
		for i := 0; i+1 < len(node.Content); i += 2 {
			item, err := decodeValue(node.Content[i+1])
			if err != nil {
				return nil, err
			}
			mapping[node.Content[i].Value] = item
		}
		return mapping, nil
	case yaml.ScalarNode:
		if node.ShortTag() == "!!timestamp" {
			return node.Value, nil
		}
	}
	var value any
	if err := node.Decode(&value); err != nil {
		return nil, err
	}
	return value, nil
}

// Render writes the front matter block followed by body. Empty front matter leaves the body alone.
func Render(frontMatter model.FrontMatter, body string) (string, error) {
	body = strings.TrimLeft(body, "\r\n")
	if frontMatter.Len() == 0 {
		return body, nil
	}

	mapping := &yaml.Node{Kind: yaml.MappingNode, Tag: "!!map"}
	for _, key := range frontMatter.Keys() {
		value, _ := frontMatter.Get(key)
		node, err := encodeValue(value)
		if err != nil {
			return "", errors.Wrapf(err, "failed to encode front matter key %v", key)
		}
		mapping.Content = append(mapping.Content, stringNode(key), node)
	}

	var buffer bytes.Buffer
	buffer.WriteString(Delimiter + "\n")
	encoder := yaml.NewEncoder(&buffer)
	encoder.SetIndent(2)
	if err := encoder.Encode(mapping); err != nil {
		return "", errors.Wrap(err, "failed to encode front matter")
	}
	if err := encoder.Close(); err != nil {
		return "", errors.Wrap(err, "failed to encode front matter")
	}
	buffer.WriteString(Delimiter + "\n\n")
	buffer.WriteString(body)
	return buffer.String(), nil
}

func encodeValue(value any) (*yaml.Node, error) {
	switch v := value.(type) {
	case string:
		return stringNode(v), nil
	case []any:
		node := &yaml.Node{Kind: yaml.SequenceNode, Tag: "!!seq"}
		for _, item := range v {
			child, err := encodeValue(item)
			if err != nil {
				return nil, err
			}
			node.Content = append(node.Content, child)
		}
		return node, nil
	case map[string]any:
		keys := make([]string, 0, len(v))
		for key := range v {
			keys = append(keys, key)
		}
		sort.Strings(keys)
		node := &yaml.Node{Kind: yaml.MappingNode, Tag: "!!map"}
		for _, key := range keys {
			child, err := encodeValue(v[key])
			if err != nil {
				return nil, err
			}
			node.Content = append(node.Content, stringNode(key), child)
		}
		return node, nil
	}
	node := &yaml.Node{}
	if err := node.Encode(value); err != nil {
		return nil, err
	}
	return node, nil
}

func stringNode(s string) *yaml.Node {
	node := &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: s}
	switch {
	case strings.Contains(s, ": "):
		node.Style = yaml.DoubleQuotedStyle
	case isTimestamp(s):
		// plain so the date reads back as the same text
		node.Tag = "!!timestamp"
	}
	return node
}

func isTimestamp(s string) bool {
	return (&yaml.Node{Kind: yaml.ScalarNode, Value: s}).ShortTag() == "!!timestamp"
}
