package main

import (
	"context"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/tss-calculator/go-lib/pkg/infrastructure/logger"
	"github.com/urfave/cli/v2"

	"github.com/osu-wiki/wikitools/pkg/wiki/application/service"
	"github.com/osu-wiki/wikitools/pkg/wiki/infrastructure/config/toolconfig"
	"github.com/osu-wiki/wikitools/pkg/wiki/infrastructure/dependency"
	"github.com/osu-wiki/wikitools/pkg/wiki/infrastructure/yamllint"
)

const rootFlag = "root"

// containerBuilder opens the repository checked out at root.
type containerBuilder func(root string) (dependency.Container, error)

func main() {
	ctx, cancelFunc := context.WithCancel(context.Background())
	defer cancelFunc()
	ctx = listenOSKillSignalsContext(ctx)
	mainLogger := logger.NewTextLogger()

	app := newApp(func(root string) (dependency.Container, error) {
		settings, err := toolconfig.LoadFromEnv()
		if err != nil {
			return nil, err
		}
		return dependency.NewDependencyContainer(mainLogger, settings, root, os.Stdout)
	})
	err := app.RunContext(ctx, os.Args)
	if err != nil {
		mainLogger.FatalError(err, "failed execute command "+strings.Join(os.Args, " "))
	}
}

func newApp(build containerBuilder) *cli.App {
	return &cli.App{
		Name:                      "wikitools",
		Usage:                     "checks and maintenance for the osu! wiki repository",
		DisableSliceFlagSeparator: true,
		Commands: cli.Commands{
			&cli.Command{
				Name:  "check-links",
				Usage: "check wiki and image links in articles and news posts",
				Flags: append(targetFlags(),
					separateFlag(),
					&cli.BoolFlag{
						Name:  "in-outdated-articles",
						Usage: "also check outdated articles",
					},
					&cli.BoolFlag{
						Name:  "to-sections-in-outdated-translations",
						Usage: "report section links to outdated translations",
					},
					&cli.BoolFlag{
						Name:  "to-sections-in-missing-translations",
						Usage: "report section links to articles missing a translation",
					},
					&cli.BoolFlag{
						Name:  "case-sensitive",
						Usage: "require link locations to match the case of the files",
					},
				),
				Before: repositoryContainer(build),
				Action: func(c *cli.Context) error {
					return checkLinks(c.Context, targets(c), c.Bool("all"), c.Bool("separate"), linkCheckOptions(c))
				},
			},
			&cli.Command{
				Name:      "what-links-here",
				Usage:     "list links pointing to an article or file",
				ArgsUsage: "TARGET",
				Flags:     []cli.Flag{separateFlag(), rootFlagDefinition()},
				Before:    repositoryContainer(build),
				Action: func(c *cli.Context) error {
					if c.NArg() != 1 {
						return cli.Exit("what-links-here expects exactly one target", 2)
					}
					return whatLinksHere(c.Context, c.Args().First(), c.Bool("separate"))
				},
			},
			&cli.Command{
				Name:   "check-files",
				Usage:  "check that every translation has an English original",
				Flags:  targetFlags(),
				Before: repositoryContainer(build),
				Action: func(c *cli.Context) error {
					return checkFiles(c.Context, targets(c), c.Bool("all"))
				},
			},
			&cli.Command{
				Name:      "front-matter",
				Usage:     "print or edit the front matter of a Markdown file",
				ArgsUsage: "FILE",
				Flags: []cli.Flag{
					&cli.StringSliceFlag{
						Name:    "print",
						Aliases: []string{"p"},
						Usage:   "front matter items to print as JSON",
					},
					&cli.BoolFlag{
						Name:    "print-all",
						Aliases: []string{"P"},
						Usage:   "print the whole front matter as JSON",
					},
					&cli.StringSliceFlag{
						Name:    "set",
						Aliases: []string{"s"},
						Usage:   "front matter items to add or edit, as KEY:VALUE",
					},
					&cli.StringSliceFlag{
						Name:    "remove",
						Aliases: []string{"r"},
						Usage:   "front matter items to remove if they exist",
					},
				},
				Before: fileContainer(build),
				Action: func(c *cli.Context) error {
					return editFrontMatter(c.Context, c.Args().First(), c.StringSlice("print"), c.Bool("print-all"),
						c.StringSlice("set"), c.StringSlice("remove"))
				},
			},
			&cli.Command{
				Name:  "check-yaml",
				Usage: "lint YAML files and the front matter of Markdown files",
				Flags: []cli.Flag{
					&cli.StringSliceFlag{
						Name:    "target",
						Aliases: []string{"t"},
						Usage:   "files or directories to lint, the repository root by default",
					},
					&cli.StringFlag{
						Name:  "config",
						Value: yamllint.DefaultConfigPath,
						Usage: "path to the yamllint config, relative to the repository root",
					},
					&cli.StringFlag{
						Name:  "format",
						Value: formatColored,
						Usage: "output format: parsable, standard, colored, github or auto",
					},
					rootFlagDefinition(),
				},
				Before: repositoryContainer(build),
				Action: func(c *cli.Context) error {
					options := service.YAMLCheckOptions{
						Targets:    targets(c),
						ConfigPath: c.String("config"),
					}
					return checkYAML(c.Context, options, c.String("format"))
				},
			},
			&cli.Command{
				Name:  "check-outdated-articles",
				Usage: "check that translations of edited originals are marked as outdated",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:    "base-commit",
						Aliases: []string{"b"},
						Value:   "master",
						Usage:   "commit since which to look for changes",
					},
					&cli.StringFlag{
						Name:    "outdated-since",
						Aliases: []string{"o"},
						Usage:   "commit hash for the outdated_since tag, the first commit after master by default",
					},
					&cli.BoolFlag{
						Name:    "all",
						Aliases: []string{"a"},
						Usage:   "look for incorrect hashes in all translations",
					},
					&cli.BoolFlag{
						Name:    "autofix",
						Aliases: []string{"f"},
						Usage:   "outdate the translations",
					},
					&cli.BoolFlag{
						Name:    "autocommit",
						Aliases: []string{"c"},
						Usage:   "commit the outdated translations",
					},
					&cli.StringSliceFlag{
						Name:    "exclude",
						Aliases: []string{"e"},
						Usage:   "paths to skip: files, directories, shell masks and brace expansions",
					},
					&cli.BoolFlag{
						Name:  "no-recommend-autofix",
						Usage: "do not suggest rerunning with --autofix",
					},
					rootFlagDefinition(),
				},
				Before: repositoryContainer(build),
				Action: func(c *cli.Context) error {
					return checkOutdatedArticles(c.Context, outdatedCheckOptions(c), c.Bool("no-recommend-autofix"))
				},
			},
			&cli.Command{
				Name:   "generate-templates",
				Usage:  "regenerate tables described by templates in articles",
				Flags:  targetFlags(),
				Before: repositoryContainer(build),
				Action: func(c *cli.Context) error {
					return generateTemplates(c.Context, targets(c), c.Bool("all"))
				},
			},
		},
	}
}

// repositoryContainer builds the dependency container for the repository named by --root.
func repositoryContainer(build containerBuilder) cli.BeforeFunc {
	return func(c *cli.Context) error {
		return withContainer(c, build, c.String(rootFlag))
	}
}

func withContainer(c *cli.Context, build containerBuilder, root string) error {
	container, err := build(root)
	if err != nil {
		return err
	}
	c.Context = dependency.ContainerToContext(c.Context, container)
	return nil
}

func rootFlagDefinition() cli.Flag {
	return &cli.StringFlag{
		Name:    rootFlag,
		Aliases: []string{"r"},
		Value:   ".",
		Usage:   "repository root, the working directory by default",
	}
}

func separateFlag() cli.Flag {
	return &cli.BoolFlag{
		Name:    "separate",
		Aliases: []string{"s"},
		Usage:   "print links that appear on the same line separately",
	}
}

func targetFlags() []cli.Flag {
	return []cli.Flag{
		&cli.StringSliceFlag{
			Name:    "target",
			Aliases: []string{"t"},
			Usage:   "paths to the files to check, relative to the repository root",
		},
		&cli.BoolFlag{
			Name:    "all",
			Aliases: []string{"a"},
			Usage:   "check every article and news post",
		},
		rootFlagDefinition(),
	}
}

// targets joins --target values and positional arguments.
func targets(c *cli.Context) []string {
	return append(c.StringSlice("target"), c.Args().Slice()...)
}

func listenOSKillSignalsContext(ctx context.Context) context.Context {
	var cancelFunc context.CancelFunc
	ctx, cancelFunc = context.WithCancel(ctx)
	go func() {
		ch := make(chan os.Signal, 1)
		signal.Notify(ch, syscall.SIGTERM, syscall.SIGINT)
		select {
		case <-ch:
			cancelFunc()
		case <-ctx.Done():
			return
		}
	}()
	return ctx
}
