package template

import (
	"encoding/csv"
	"strings"

	"github.com/pkg/errors"
	applogger "github.com/tss-calculator/go-lib/pkg/application/logger"
	"gopkg.in/yaml.v3"

	"github.com/osu-wiki/wikitools/pkg/wiki/application/markdown"
	"github.com/osu-wiki/wikitools/pkg/wiki/application/service"
	"github.com/osu-wiki/wikitools/pkg/wiki/application/table"
)

const (
	yamlDelimiter = "---"
	tableKey      = "table"
)

// Skipped is a comment shaped like a descriptor whose YAML does not describe a table.
type Skipped struct {
	Line    int
	Name    string
	Version string
}

type Sort struct {
	By    string `yaml:"by"`
	Order string `yaml:"order"`
}

type Split struct {
	By           string `yaml:"by"`
	Order        string `yaml:"order"`
	PrefixFormat string `yaml:"prefix_format"`
}

type Table struct {
	Data       string   `yaml:"data"`
	Header     []string `yaml:"header"`
	Alignments []string `yaml:"alignments"`
	Format     []string `yaml:"format"`
	Filter     string   `yaml:"filter"`
	Sort       Sort     `yaml:"sort"`
	Split      Split    `yaml:"split"`
}

type Config struct {
	Table Table `yaml:"table"`
}

func NewTemplateProvider(logger applogger.Logger, workspace service.Workspace) service.TemplateProvider {
	return &templateProvider{
		logger:    logger,
		workspace: workspace,
	}
}

type templateProvider struct {
	logger    applogger.Logger
	workspace service.Workspace
}

// Descriptors finds table descriptors, HTML comments shaped like
//
//	<!--
//	NAME VERSION
//
//	Optional description
//
//	---
//	table: ...
//	---
//	-->
func (provider templateProvider) Descriptors(filePath string) ([]table.Descriptor, error) {
	content, err := provider.workspace.ReadFile(filePath)
	if err != nil {
		return nil, err
	}
	descriptors, skipped, err := ParseDescriptors(content)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to load table descriptors of %v", filePath)
	}
	for _, comment := range skipped {
		provider.logger.Warning(
			errors.Errorf("%v %v at %v:%d has no table", comment.Name, comment.Version, filePath, comment.Line),
			"skipping comment",
		)
	}
	return descriptors, nil
}

func (provider templateProvider) Data(filePath string) (table.Data, error) {
	content, err := provider.workspace.ReadFile(filePath)
	if err != nil {
		return table.Data{}, err
	}
	reader := csv.NewReader(strings.NewReader(content))
	reader.FieldsPerRecord = -1
	records, err := reader.ReadAll()
	if err != nil {
		return table.Data{}, errors.Wrapf(err, "failed to read table data %v", filePath)
	}
	data, err := table.NewData(records)
	return data, errors.Wrapf(err, "failed to read table data %v", filePath)
}

// ParseDescriptors returns the table descriptors of an article along with the comments that look
// like descriptors but hold other YAML.
func ParseDescriptors(content string) ([]table.Descriptor, []Skipped, error) {
	var (
		descriptors []table.Descriptor
		skipped     []Skipped
		comments    markdown.CommentParser
		named       bool
		inYAML      bool
		name        string
		version     string
		buffer      strings.Builder
	)
	for i, line := range strings.SplitAfter(content, "\n") {
		comments.Parse(line)

		switch {
		case comments.InMultiline() && !named:
			if strings.TrimSpace(line) == "" {
				continue
			}
			if split := strings.Split(line, " "); len(split) == 2 {
				name, version = strings.TrimSpace(split[0]), strings.TrimSpace(split[1])
				named = true
			}
		case comments.InMultiline() && named:
			if strings.TrimSpace(line) == yamlDelimiter {
				inYAML = !inYAML
			} else if inYAML {
				buffer.WriteString(line)
			}
		case named:
			if buffer.Len() != 0 {
				descriptor, ok, err := parseDescriptor(i+1, name, version, buffer.String())
				switch {
				case err != nil:
					return nil, nil, err
				case ok:
					descriptors = append(descriptors, descriptor)
				default:
					skipped = append(skipped, Skipped{Line: i + 1, Name: name, Version: version})
				}
			}
			named = false
			inYAML = false
			buffer.Reset()
		}
	}
	return descriptors, skipped, nil
}

// parseDescriptor reports false when the YAML is valid but has no table in it.
func parseDescriptor(line int, name, version, payload string) (table.Descriptor, bool, error) {
	var document yaml.Node
	if err := yaml.Unmarshal([]byte(payload), &document); err != nil {
		return table.Descriptor{}, false, errors.Wrapf(err, "failed to parse %v %v at line %d", name, version, line)
	}
	if !hasTable(&document) {
		return table.Descriptor{}, false, nil
	}
	var config Config
	if err := document.Decode(&config); err != nil {
		return table.Descriptor{}, false, errors.Wrapf(err, "failed to parse %v %v at line %d", name, version, line)
	}
	descriptor, err := mapConfigToDescriptor(config)
	if err != nil {
		return table.Descriptor{}, false, errors.Wrapf(err, "invalid %v %v at line %d", name, version, line)
	}
	descriptor.Line = line
	descriptor.Name = name
	descriptor.Version = version
	return descriptor, true, nil
}

func hasTable(document *yaml.Node) bool {
	if len(document.Content) == 0 || document.Content[0].Kind != yaml.MappingNode {
		return false
	}
	root := document.Content[0]
	for i := 0; i+1 < len(root.Content); i += 2 {
		if root.Content[i].Value == tableKey {
			return true
		}
	}
	return false
}

func mapConfigToDescriptor(config Config) (table.Descriptor, error) {
	descriptor := table.Descriptor{
		DataPath:   config.Table.Data,
		Header:     config.Table.Header,
		SortBy:     config.Table.Sort.By,
		SortOrder:  table.ParseSortOrder(config.Table.Sort.Order),
		SplitBy:    config.Table.Split.By,
		SplitOrder: table.ParseSortOrder(config.Table.Split.Order),
	}
	// groups keep their order of appearance unless an order is given
	descriptor.SplitSorted = config.Table.Split.Order != ""
	if descriptor.DataPath == "" {
		return table.Descriptor{}, errors.New("table data is not specified")
	}
	for _, alignment := range config.Table.Alignments {
		descriptor.Alignments = append(descriptor.Alignments, table.ParseAlignment(alignment))
	}
	for _, format := range config.Table.Format {
		descriptor.Formats = append(descriptor.Formats, table.ParseFormat(format))
	}
	if config.Table.Filter != "" {
		filter, err := table.ParseFilter(config.Table.Filter)
		if err != nil {
			return table.Descriptor{}, err
		}
		descriptor.Filter = &filter
	}
	if config.Table.Split.PrefixFormat != "" {
		prefix := table.ParseFormat(config.Table.Split.PrefixFormat)
		descriptor.SplitPrefixFormat = &prefix
	}
	return descriptor, nil
}
