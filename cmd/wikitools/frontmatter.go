package main

import (
	"bytes"
	stdcontext "context"
	"encoding/json"
	"path/filepath"

	"github.com/pkg/errors"
	"github.com/urfave/cli/v2"

	"github.com/osu-wiki/wikitools/pkg/wiki/application/service"
	"github.com/osu-wiki/wikitools/pkg/wiki/infrastructure/dependency"
)

// fileContainer roots the dependency container at the directory of the FILE argument.
func fileContainer(build containerBuilder) cli.BeforeFunc {
	return func(c *cli.Context) error {
		if c.NArg() != 1 {
			return cli.Exit("front-matter expects exactly one file", 2)
		}
		absPath, err := filepath.Abs(c.Args().First())
		if err != nil {
			return errors.Wrapf(err, "failed to resolve %v", c.Args().First())
		}
		return withContainer(c, build, filepath.Dir(absPath))
	}
}

func editFrontMatter(
	ctx stdcontext.Context,
	filePath string,
	printKeys []string,
	printAll bool,
	set []string,
	remove []string,
) error {
	dependencyContainer, err := dependency.ContainerFromContext(ctx)
	if err != nil {
		return err
	}
	edit := service.FrontMatterEdit{
		Print:    printKeys,
		PrintAll: printAll,
		Remove:   remove,
	}
	for _, item := range set {
		parsed, err := service.ParseFrontMatterItem(item)
		if err != nil {
			return cli.Exit("--set: "+err.Error(), 2)
		}
		edit.Set = append(edit.Set, parsed)
	}

	result, err := dependencyContainer.FrontMatterEditor().Edit(filepath.Base(filePath), edit)
	if err != nil {
		return err
	}
	if len(printKeys) == 0 && !printAll {
		return nil
	}
	output, err := marshalItems(result.Printed)
	if err != nil {
		return err
	}
	dependencyContainer.Printer().Println(output)
	return nil
}

// marshalItems writes items as a JSON object in their order, indented by four spaces.
func marshalItems(items []service.FrontMatterItem) (string, error) {
	if len(items) == 0 {
		return "{}", nil
	}
	var b bytes.Buffer
	b.WriteString("{\n")
	for i, item := range items {
		key, err := marshalJSON(item.Key)
		if err != nil {
			return "", err
		}
		value, err := marshalJSON(item.Value)
		if err != nil {
			return "", err
		}
		var indented bytes.Buffer
		if err = json.Indent(&indented, value, "    ", "    "); err != nil {
			return "", errors.Wrap(err, "failed to indent front matter value")
		}
		b.WriteString("    " + string(key) + ": " + indented.String())
		if i != len(items)-1 {
			b.WriteString(",")
		}
		b.WriteString("\n")
	}
	b.WriteString("}")
	return b.String(), nil
}

func marshalJSON(value any) ([]byte, error) {
	var b bytes.Buffer
	encoder := json.NewEncoder(&b)
	encoder.SetEscapeHTML(false)
	if err := encoder.Encode(value); err != nil {
		return nil, errors.Wrapf(err, "failed to encode %v as JSON", value)
	}
	return bytes.TrimRight(b.Bytes(), "\n"), nil
}
