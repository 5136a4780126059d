package gtfsdb

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/urfave/cli/v2"

	"github.com/tadashi-aikawa/hibou/pkg/config"
	"github.com/tadashi-aikawa/hibou/pkg/extended/serviceroutes"
)

const defaultDatabase = "gtfs.db"

func RegisterCLI() *cli.Command {
	return &cli.Command{
		Name:  "db",
		Usage: "Build & query a GTFS-JP SQLite database",
		Subcommands: []*cli.Command{
			{
				Name:      "create",
				Usage:     "Create a database from a GTFS-JP feed directory",
				ArgsUsage: "<gtfs directory>",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:    "database",
						Aliases: []string{"d"},
						Usage:   "Path of the SQLite database to create",
					},
					&cli.StringFlag{
						Name:    "config",
						Aliases: []string{"c"},
						Usage:   "YAML file supplying defaults for the other options",
					},
					&cli.StringFlag{
						Name:    "service-route-identify-strategy",
						Aliases: []string{"S"},
						Usage:   "How trips are grouped into service routes, one of " + strings.Join(serviceroutes.Strategies(), ", "),
					},
					&cli.StringFlag{
						Name:    "service-route-identify",
						Aliases: []string{"s"},
						Usage:   "Identity table CSV pinning service route ids (identity_table strategy only)",
					},
					&cli.BoolFlag{
						Name:    "legacy-translations",
						Aliases: []string{"l"},
						Usage:   "Read and store translations in the pre-v3 trans_id/lang shape",
					},
				},
				Action: func(c *cli.Context) error {
					if c.NArg() != 1 {
						return errors.New("expected exactly one argument: the GTFS feed directory")
					}

					opts, err := resolveCreateOptions(c)
					if err != nil {
						return err
					}

					return Create(c.Context, opts)
				},
			},
			{
				Name:      "get",
				Usage:     "Print every row of one table",
				ArgsUsage: "<table>",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:    "database",
						Aliases: []string{"d"},
						Value:   defaultDatabase,
						Usage:   "Path of the SQLite database to read",
					},
					&cli.StringFlag{
						Name:    "format",
						Aliases: []string{"f"},
						Value:   FormatCSV,
						Usage:   "Output format, csv or json",
					},
				},
				Action: func(c *cli.Context) error {
					if c.NArg() != 1 {
						return fmt.Errorf("expected exactly one argument: the table, one of %s", strings.Join(Tables(), ", "))
					}

					return Export(c.Context, c.String("database"), c.Args().First(), c.String("format"), os.Stdout)
				},
			},
		},
	}
}

// resolveCreateOptions merges the three option layers: explicit flags win
// over the config file, the config file wins over built-in defaults.
func resolveCreateOptions(c *cli.Context) (CreateOptions, error) {
	opts := CreateOptions{
		GTFSDirectory: c.Args().First(),
		Database:      defaultDatabase,
		Strategy:      serviceroutes.StrategyStopNames,
	}

	if path := c.String("config"); path != "" {
		cfg, err := config.Load(path)
		if err != nil {
			return CreateOptions{}, err
		}

		if cfg.Database != "" {
			opts.Database = cfg.Database
		}
		if cfg.ServiceRouteIdentifyStrategy != "" {
			opts.Strategy = serviceroutes.Strategy(cfg.ServiceRouteIdentifyStrategy)
		}
		opts.IdentityTable = cfg.ServiceRouteIdentify
		opts.LegacyTranslations = cfg.LegacyTranslations
	}

	if c.IsSet("database") {
		opts.Database = c.String("database")
	}
	if c.IsSet("service-route-identify-strategy") {
		strategy, err := serviceroutes.ParseStrategy(c.String("service-route-identify-strategy"))
		if err != nil {
			return CreateOptions{}, err
		}
		opts.Strategy = strategy
	}
	if c.IsSet("service-route-identify") {
		opts.IdentityTable = c.String("service-route-identify")
	}
	if c.IsSet("legacy-translations") {
		opts.LegacyTranslations = c.Bool("legacy-translations")
	}

	if opts.Strategy == serviceroutes.StrategyIdentityTable && opts.IdentityTable == "" {
		return CreateOptions{}, errors.New("the identity_table strategy requires --service-route-identify")
	}

	return opts, nil
}
