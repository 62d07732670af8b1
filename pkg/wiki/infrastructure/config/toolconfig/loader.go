package toolconfig

import (
	"io"
	"os"
	"slices"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"

	"github.com/osu-wiki/wikitools/pkg/wiki/application/model"
)

const EnvConfigPath = "WIKITOOLS_CONFIG"

type FrontMatter struct {
	AllowedTags []string `yaml:"allowedTags"`
}

type Links struct {
	Ignored []string `yaml:"ignored"`
}

type Outdated struct {
	AutocommitMessage string `yaml:"autocommitMessage"`
}

type Config struct {
	MasterBranch string      `yaml:"masterBranch"`
	FrontMatter  FrontMatter `yaml:"frontMatter"`
	Links        Links       `yaml:"links"`
	Outdated     Outdated    `yaml:"outdated"`
}

// LoadFromEnv reads the file named by WIKITOOLS_CONFIG, or returns the defaults when it is unset.
func LoadFromEnv() (model.Settings, error) {
	filePath := os.Getenv(EnvConfigPath)
	if filePath == "" {
		return model.DefaultSettings(), nil
	}
	return Load(filePath)
}

func Load(filePath string) (model.Settings, error) {
	configFile, err := os.Open(filePath)
	if err != nil {
		if os.IsNotExist(err) {
			return model.DefaultSettings(), nil
		}
		return model.Settings{}, errors.Wrapf(err, "failed to open config file %v", filePath)
	}
	defer configFile.Close()
	configBody, err := io.ReadAll(configFile)
	if err != nil {
		return model.Settings{}, errors.Wrapf(err, "failed to read config file %v", filePath)
	}
	return Parse(configBody)
}

func Parse(configBody []byte) (model.Settings, error) {
	var config Config
	err := yaml.Unmarshal(configBody, &config)
	if err != nil {
		return model.Settings{}, errors.Wrap(err, "failed to unmarshal config")
	}
	return MapToSettings(config), nil
}

// MapToSettings fills the defaults in. Extra allowed tags extend the default set.
func MapToSettings(config Config) model.Settings {
	settings := model.DefaultSettings()
	if config.MasterBranch != "" {
		settings.MasterBranch = config.MasterBranch
	}
	for _, tag := range config.FrontMatter.AllowedTags {
		if !slices.Contains(settings.AllowedTags, tag) {
			settings.AllowedTags = append(settings.AllowedTags, tag)
		}
	}
	if config.Links.Ignored != nil {
		settings.IgnoredLinks = config.Links.Ignored
	}
	if config.Outdated.AutocommitMessage != "" {
		settings.AutocommitMessage = config.Outdated.AutocommitMessage
	}
	return settings
}

