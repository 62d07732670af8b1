package yamllint

import (
	"path"
	"strings"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"

	"github.com/osu-wiki/wikitools/pkg/wiki/application/model"
)

const (
	RuleComments           = "comments"
	RuleDocumentStart      = "document-start"
	RuleEmptyLines         = "empty-lines"
	RuleIndentation        = "indentation"
	RuleLineLength         = "line-length"
	RuleNewLineAtEndOfFile = "new-line-at-end-of-file"
	RuleTrailingSpaces     = "trailing-spaces"
	RuleTruthy             = "truthy"

	extendsDefault = "default"
	extendsRelaxed = "relaxed"

	ruleEnable  = "enable"
	ruleDisable = "disable"
)

type IndentSequences string

const (
	IndentSequencesTrue       IndentSequences = "true"
	IndentSequencesFalse      IndentSequences = "false"
	IndentSequencesWhatever   IndentSequences = "whatever"
	IndentSequencesConsistent IndentSequences = "consistent"
)

func (i *IndentSequences) UnmarshalYAML(value *yaml.Node) error {
	switch IndentSequences(value.Value) {
	case IndentSequencesTrue, IndentSequencesFalse, IndentSequencesWhatever, IndentSequencesConsistent:
		*i = IndentSequences(value.Value)
		return nil
	}
	return errors.Errorf("invalid indent-sequences value %q", value.Value)
}

// Spaces is an indentation width. Zero means the first indentation found sets the width.
type Spaces int

func (s *Spaces) UnmarshalYAML(value *yaml.Node) error {
	if value.Value == "consistent" {
		*s = 0
		return nil
	}
	var n int
	if err := value.Decode(&n); err != nil || n <= 0 {
		return errors.Errorf("invalid indentation spaces %q", value.Value)
	}
	*s = Spaces(n)
	return nil
}

// Rule holds the level a rule reports at. An empty level disables the rule.
type Rule struct {
	Level string `yaml:"level"`
}

func (r Rule) Enabled() bool {
	return r.Level != ""
}

type Comments struct {
	Rule                 `yaml:",inline"`
	RequireStartingSpace bool `yaml:"require-starting-space"`
	IgnoreShebangs       bool `yaml:"ignore-shebangs"`
	MinSpacesFromContent int  `yaml:"min-spaces-from-content"`
}

type DocumentStart struct {
	Rule    `yaml:",inline"`
	Present bool `yaml:"present"`
}

type EmptyLines struct {
	Rule     `yaml:",inline"`
	Max      int `yaml:"max"`
	MaxStart int `yaml:"max-start"`
	MaxEnd   int `yaml:"max-end"`
}

type Indentation struct {
	Rule            `yaml:",inline"`
	Spaces          Spaces          `yaml:"spaces"`
	IndentSequences IndentSequences `yaml:"indent-sequences"`
}

type LineLength struct {
	Rule                            `yaml:",inline"`
	Max                             int  `yaml:"max"`
	AllowNonBreakableWords          bool `yaml:"allow-non-breakable-words"`
	AllowNonBreakableInlineMappings bool `yaml:"allow-non-breakable-inline-mappings"`
}

type Truthy struct {
	Rule          `yaml:",inline"`
	AllowedValues []string `yaml:"allowed-values"`
	CheckKeys     bool     `yaml:"check-keys"`
}

type Rules struct {
	Comments           Comments
	DocumentStart      DocumentStart
	EmptyLines         EmptyLines
	Indentation        Indentation
	KeyDuplicates      Rule
	LineLength         LineLength
	NewLineAtEndOfFile Rule
	TrailingSpaces     Rule
	Truthy             Truthy
}

// lookup returns the options of a rule and the level embedded in them.
func (r *Rules) lookup(id string) (any, *Rule, bool) {
	switch id {
	case RuleComments:
		return &r.Comments, &r.Comments.Rule, true
	case RuleDocumentStart:
		return &r.DocumentStart, &r.DocumentStart.Rule, true
	case RuleEmptyLines:
		return &r.EmptyLines, &r.EmptyLines.Rule, true
	case RuleIndentation:
		return &r.Indentation, &r.Indentation.Rule, true
	case RuleKeyDuplicates:
		return &r.KeyDuplicates, &r.KeyDuplicates, true
	case RuleLineLength:
		return &r.LineLength, &r.LineLength.Rule, true
	case RuleNewLineAtEndOfFile:
		return &r.NewLineAtEndOfFile, &r.NewLineAtEndOfFile, true
	case RuleTrailingSpaces:
		return &r.TrailingSpaces, &r.TrailingSpaces, true
	case RuleTruthy:
		return &r.Truthy, &r.Truthy.Rule, true
	}
	return nil, nil, false
}

// Config is a yamllint configuration: the rules to run and the files they apply to.
type Config struct {
	Rules     Rules
	Ignore    []string
	YAMLFiles []string
}

func DefaultConfig() Config {
	errorLevel := Rule{Level: model.LevelError}
	warningLevel := Rule{Level: model.LevelWarning}
	return Config{
		Rules: Rules{
			Comments: Comments{
				Rule:                 warningLevel,
				RequireStartingSpace: true,
				IgnoreShebangs:       true,
				MinSpacesFromContent: 2,
			},
			DocumentStart: DocumentStart{Rule: warningLevel, Present: true},
			EmptyLines:    EmptyLines{Rule: errorLevel, Max: 2},
			Indentation: Indentation{
				Rule:            errorLevel,
				IndentSequences: IndentSequencesTrue,
			},
			KeyDuplicates: errorLevel,
			LineLength: LineLength{
				Rule:                   errorLevel,
				Max:                    80,
				AllowNonBreakableWords: true,
			},
			NewLineAtEndOfFile: errorLevel,
			TrailingSpaces:     errorLevel,
			Truthy: Truthy{
				Rule:          warningLevel,
				AllowedValues: []string{"true", "false"},
				CheckKeys:     true,
			},
		},
		YAMLFiles: []string{"*.yaml", "*.yml", ".yamllint"},
	}
}

func RelaxedConfig() Config {
	config := DefaultConfig()
	rules := &config.Rules
	rules.Comments.Level = ""
	rules.DocumentStart.Level = ""
	rules.EmptyLines.Level = model.LevelWarning
	rules.Indentation.Level = model.LevelWarning
	rules.Indentation.IndentSequences = IndentSequencesConsistent
	rules.LineLength.Level = model.LevelWarning
	rules.LineLength.AllowNonBreakableInlineMappings = true
	rules.Truthy.Level = ""
	return config
}

type configFile struct {
	Extends   string               `yaml:"extends"`
	Ignore    yaml.Node            `yaml:"ignore"`
	YAMLFiles []string             `yaml:"yaml-files"`
	Rules     map[string]yaml.Node `yaml:"rules"`
}

// ParseConfig reads a yamllint configuration file. Rules this linter does not know are skipped.
func ParseConfig(content string) (Config, error) {
	var file configFile
	if err := yaml.Unmarshal([]byte(content), &file); err != nil {
		return Config{}, errors.Wrap(err, "failed to parse yamllint config")
	}

	var config Config
	switch file.Extends {
	case "", extendsDefault:
		config = DefaultConfig()
	case extendsRelaxed:
		config = RelaxedConfig()
	default:
		return Config{}, errors.Errorf("unsupported base config %q", file.Extends)
	}
	defaults := DefaultConfig()

	for id, node := range file.Rules {
		options, rule, ok := config.Rules.lookup(id)
		if !ok {
			continue
		}
		if node.Kind == yaml.ScalarNode {
			switch node.Value {
			case ruleDisable:
				rule.Level = ""
			case ruleEnable:
				if !rule.Enabled() {
					_, defaultRule, _ := defaults.Rules.lookup(id)
					rule.Level = defaultRule.Level
				}
			default:
				return Config{}, errors.Errorf("invalid value %q for rule %v", node.Value, id)
			}
			continue
		}
		if err := node.Decode(options); err != nil {
			return Config{}, errors.Wrapf(err, "invalid options for rule %v", id)
		}
		switch rule.Level {
		case "":
			rule.Level = model.LevelError
		case model.LevelError, model.LevelWarning:
		default:
			return Config{}, errors.Errorf("invalid level %q for rule %v", rule.Level, id)
		}
	}

	ignore, err := parsePatterns(&file.Ignore)
	if err != nil {
		return Config{}, err
	}
	config.Ignore = ignore
	if len(file.YAMLFiles) != 0 {
		config.YAMLFiles = file.YAMLFiles
	}
	return config, nil
}

// parsePatterns accepts both a block of lines and a list of patterns.
func parsePatterns(node *yaml.Node) ([]string, error) {
	var lines []string
	switch node.Kind {
	case 0:
		return nil, nil
	case yaml.ScalarNode:
		lines = strings.Split(node.Value, "\n")
	case yaml.SequenceNode:
		if err := node.Decode(&lines); err != nil {
			return nil, errors.Wrap(err, "invalid ignore patterns")
		}
	default:
		return nil, errors.New("ignore must be a string or a list of patterns")
	}
	var patterns []string
	for _, line := range lines {
		line = strings.TrimSpace(line)
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		patterns = append(patterns, line)
	}
	return patterns, nil
}

// IsIgnored applies the ignore patterns in order; a "!" pattern takes a file back in.
func (c Config) IsIgnored(filePath string) bool {
	ignored := false
	for _, pattern := range c.Ignore {
		negated := strings.HasPrefix(pattern, "!")
		if matchPattern(strings.TrimPrefix(pattern, "!"), filePath) {
			ignored = !negated
		}
	}
	return ignored
}

func (c Config) IsYAMLFile(filePath string) bool {
	for _, pattern := range c.YAMLFiles {
		if matchPattern(pattern, filePath) {
			return true
		}
	}
	return false
}

// matchPattern follows the gitignore conventions: a trailing "/" matches directories only,
// and a pattern with a "/" before its end is anchored at the repository root.
func matchPattern(pattern, filePath string) bool {
	filePath = strings.TrimPrefix(path.Clean(filePath), "./")
	dirOnly := strings.HasSuffix(pattern, "/")
	pattern = strings.TrimSuffix(pattern, "/")
	pattern = strings.TrimPrefix(pattern, "**/")
	anchored := strings.Contains(pattern, "/")
	pattern = strings.TrimPrefix(pattern, "/")
	if pattern == "" {
		return false
	}

	parts := strings.Split(filePath, "/")
	candidates := len(parts)
	if dirOnly {
		candidates--
	}
	for i := 0; i < candidates; i++ {
		candidate := parts[i]
		if anchored {
			candidate = strings.Join(parts[:i+1], "/")
		}
		if ok, _ := path.Match(pattern, candidate); ok {
			return true
		}
	}
	return false
}
