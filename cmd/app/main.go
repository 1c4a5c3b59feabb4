package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/urfave/cli/v3"

	"github.com/atvirokodosprendimai/dataforge/internal/app"
	"github.com/atvirokodosprendimai/dataforge/internal/core/domain"
)

func main() {
	cmd := &cli.Command{
		Name:  "dataforge",
		Usage: "Schema-driven test data generation and validation",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "db-path",
				Value:   "./dataforge.sqlite",
				Sources: cli.EnvVars("DATAFORGE_DB_PATH"),
				Usage:   "SQLite file for schema documents and the dataset catalog",
			},
			&cli.StringFlag{
				Name:    "data-dir",
				Value:   "./testdata/generated",
				Sources: cli.EnvVars("DATAFORGE_DATA_DIR"),
				Usage:   "Directory generated datasets are written to",
			},
			&cli.IntFlag{
				Name:    "seed",
				Sources: cli.EnvVars("DATAFORGE_SEED"),
				Usage:   "Generator seed; 0 means a random seed per run",
			},
			&cli.StringFlag{
				Name:    "locale",
				Value:   "en_US",
				Sources: cli.EnvVars("DATAFORGE_LOCALE"),
				Usage:   "Locale hint passed to the realistic-data provider",
			},
		},
		Commands: []*cli.Command{
			serveCommand(),
			schemaCommand(),
			generateCommand(),
			validateCommand(),
			datasetsCommand(),
		},
	}

	if err := cmd.Run(context.Background(), os.Args); err != nil {
		log.Fatal(err)
	}
}

func configFrom(c *cli.Command) app.Config {
	return app.Config{
		DBPath:  c.String("db-path"),
		DataDir: c.String("data-dir"),
		Seed:    uint64(c.Int("seed")),
		Locale:  c.String("locale"),
	}
}

func serveCommand() *cli.Command {
	return &cli.Command{
		Name:  "serve",
		Usage: "Run the HTTP API",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:  "addr",
				Value: ":8080",
				Usage: "HTTP listen address",
			},
		},
		Action: func(ctx context.Context, c *cli.Command) error {
			cfg := configFrom(c)
			cfg.Addr = c.String("addr")

			server, closer, err := app.NewServer(ctx, cfg)
			if err != nil {
				return fmt.Errorf("create server: %w", err)
			}
			defer func() {
				if closeErr := closer.Close(); closeErr != nil {
					log.Printf("close resources: %v", closeErr)
				}
			}()

			errCh := make(chan error, 1)
			go func() {
				log.Printf("listening on %s", cfg.Addr)
				errCh <- server.ListenAndServe()
			}()

			sigCh := make(chan os.Signal, 1)
			signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
			defer signal.Stop(sigCh)

			select {
			case <-ctx.Done():
				shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
				defer cancel()
				return server.Shutdown(shutdownCtx)
			case sig := <-sigCh:
				log.Printf("received signal %s", sig)
				shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
				defer cancel()
				return server.Shutdown(shutdownCtx)
			case err := <-errCh:
				if errors.Is(err, http.ErrServerClosed) {
					return nil
				}
				return err
			}
		},
	}
}

func schemaCommand() *cli.Command {
	return &cli.Command{
		Name:  "schema",
		Usage: "Manage schema definitions",
		Commands: []*cli.Command{
			{
				Name:  "register",
				Usage: "Register a schema from a declarative JSON document",
				Flags: []cli.Flag{
					&cli.StringFlag{Name: "file", Aliases: []string{"f"}, Required: true, Usage: "Path to the schema document"},
				},
				Action: func(ctx context.Context, c *cli.Command) error {
					return withApp(ctx, c, func(a *app.App) error {
						doc, err := os.ReadFile(c.String("file"))
						if err != nil {
							return fmt.Errorf("read schema document: %w", err)
						}
						schema, err := a.Schemas.RegisterDocument(ctx, doc)
						if err != nil {
							return err
						}
						fmt.Printf("registered schema %q (%d fields)\n", schema.Name, len(schema.Fields))
						return nil
					})
				},
			},
			{
				Name:      "get",
				Usage:     "Print a schema document",
				ArgsUsage: "NAME",
				Action: func(ctx context.Context, c *cli.Command) error {
					return withApp(ctx, c, func(a *app.App) error {
						schema, err := a.Schemas.Load(ctx, c.Args().First())
						if err != nil {
							return err
						}
						return printJSON(schema)
					})
				},
			},
			{
				Name:  "list",
				Usage: "List registered schemas",
				Action: func(ctx context.Context, c *cli.Command) error {
					return withApp(ctx, c, func(a *app.App) error {
						schemas, err := a.Schemas.List(ctx)
						if err != nil {
							return err
						}
						for _, s := range schemas {
							fmt.Printf("%s\t%s\t%d fields\t%s\n", s.Name, s.Version, len(s.Fields), s.Description)
						}
						return nil
					})
				},
			},
			{
				Name:      "delete",
				Usage:     "Delete a schema",
				ArgsUsage: "NAME",
				Action: func(ctx context.Context, c *cli.Command) error {
					return withApp(ctx, c, func(a *app.App) error {
						deleted, err := a.Schemas.Delete(ctx, c.Args().First())
						if err != nil {
							return err
						}
						if !deleted {
							fmt.Println("nothing to delete")
							return nil
						}
						fmt.Println("deleted")
						return nil
					})
				},
			},
			{
				Name:  "seed",
				Usage: "Register the built-in sample schemas",
				Action: func(ctx context.Context, c *cli.Command) error {
					return withApp(ctx, c, func(a *app.App) error {
						for _, schema := range []domain.Schema{domain.UserSchema(), domain.ProductSchema()} {
							if err := a.Schemas.Register(ctx, schema); err != nil {
								return err
							}
							fmt.Printf("registered schema %q\n", schema.Name)
						}
						return nil
					})
				},
			},
		},
	}
}

func generateCommand() *cli.Command {
	return &cli.Command{
		Name:  "generate",
		Usage: "Generate records for a schema and store them as a dataset",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "schema", Required: true, Usage: "Schema name"},
			&cli.IntFlag{Name: "count", Value: 10, Usage: "Number of records"},
			&cli.StringFlag{Name: "format", Value: "json", Usage: "Dataset format: json, csv, or yaml"},
		},
		Action: func(ctx context.Context, c *cli.Command) error {
			return withApp(ctx, c, func(a *app.App) error {
				format, err := domain.ParseFormat(c.String("format"))
				if err != nil {
					return err
				}
				location, err := a.Schemas.GenerateAndStore(ctx, c.String("schema"), int(c.Int("count")), format)
				if err != nil {
					return err
				}
				fmt.Println(location)
				return nil
			})
		},
	}
}

func validateCommand() *cli.Command {
	return &cli.Command{
		Name:  "validate",
		Usage: "Validate a stored dataset against a schema",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "schema", Required: true, Usage: "Schema name"},
			&cli.StringFlag{Name: "source", Required: true, Usage: "Dataset file to validate"},
			&cli.StringFlag{Name: "format", Value: "json", Usage: "Dataset format: json, csv, or yaml"},
		},
		Action: func(ctx context.Context, c *cli.Command) error {
			return withApp(ctx, c, func(a *app.App) error {
				format, err := domain.ParseFormat(c.String("format"))
				if err != nil {
					return err
				}
				report, err := a.Schemas.ValidateStored(ctx, c.String("schema"), c.String("source"), format)
				if err != nil {
					return err
				}
				return printJSON(report)
			})
		},
	}
}

func datasetsCommand() *cli.Command {
	return &cli.Command{
		Name:  "datasets",
		Usage: "List the generated-dataset catalog",
		Flags: []cli.Flag{
			&cli.IntFlag{Name: "limit", Value: 100, Usage: "Maximum entries to list"},
		},
		Action: func(ctx context.Context, c *cli.Command) error {
			return withApp(ctx, c, func(a *app.App) error {
				datasets, err := a.Datasets.List(ctx, int(c.Int("limit")))
				if err != nil {
					return err
				}
				for _, ds := range datasets {
					fmt.Printf("%s\t%s\t%d records\t%s\t%s\n",
						ds.CreatedAt.Format(time.RFC3339), ds.SchemaName, ds.RecordCount, ds.Format, ds.Location)
				}
				return nil
			})
		},
	}
}

func withApp(ctx context.Context, c *cli.Command, fn func(a *app.App) error) error {
	a, err := app.New(ctx, configFrom(c))
	if err != nil {
		return err
	}
	defer func() {
		if closeErr := a.Close(); closeErr != nil {
			log.Printf("close resources: %v", closeErr)
		}
	}()
	return fn(a)
}

func printJSON(v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	fmt.Println(string(data))
	return nil
}
