package main

import (
	"context"
	"fmt"
	"io"
	"log"
	"net/http"
	"os"

	"github.com/go-logr/logr"
	"github.com/go-logr/stdr"
	"github.com/urfave/cli/v2"
	"github.com/vektah/gqlparser/v2/ast"
	"github.com/vvakame/subgraphsdl/internal/federation"
	"github.com/vvakame/subgraphsdl/internal/subgraph"
)

func main() {
	err := realMain(os.Args, os.Stdout)
	if err != nil {
		log.Fatal(err)
	}
}

func realMain(args []string, w io.Writer) error {
	app := &cli.App{
		Name:   "subgraphsdl",
		Writer: w,
		Usage:  "print the Apollo Federation subgraph SDL of a schema",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:     "schema",
				Usage:    "path to the subgraph schema (.graphqls)",
				Required: true,
			},
			&cli.StringFlag{
				Name:  "config",
				Usage: "path to the federation metadata (.yaml)",
			},
			&cli.StringFlag{
				Name:    "serve",
				Usage:   "serve `{ _service { sdl } }` on this address instead of printing",
				EnvVars: []string{"SUBGRAPHSDL_ADDR"},
			},
			&cli.IntFlag{
				Name:  "verbosity",
				Usage: "log verbosity",
			},
		},
		Action: run,
	}

	return app.Run(args)
}

func run(c *cli.Context) error {
	stdr.SetVerbosity(c.Int("verbosity"))
	logger := stdr.New(log.New(os.Stderr, "", log.LstdFlags))
	ctx := logr.NewContext(c.Context, logger)

	schema, err := loadSchema(ctx, c.String("schema"), c.String("config"))
	if err != nil {
		logger.Error(err, "failed to load schema")
		return err
	}

	addr := c.String("serve")
	if addr == "" {
		_, err = fmt.Fprint(c.App.Writer, federation.PrintSDL(ctx, schema))
		return err
	}

	ds := subgraph.NewServiceDataSource(ctx, schema)
	mux := http.NewServeMux()
	mux.Handle("/query", subgraph.Handler(ds))

	logger.Info("listening server", "addr", addr)

	return http.ListenAndServe(addr, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		r = r.WithContext(logr.NewContext(r.Context(), logger))
		mux.ServeHTTP(w, r)
	}))
}

func loadSchema(ctx context.Context, schemaPath, configPath string) (*federation.Schema, error) {
	b, err := os.ReadFile(schemaPath)
	if err != nil {
		return nil, err
	}

	var cfg *federation.Config
	if configPath != "" {
		cb, err := os.ReadFile(configPath)
		if err != nil {
			return nil, err
		}
		cfg, err = federation.ParseConfig(cb)
		if err != nil {
			return nil, err
		}
	}

	return federation.LoadSchema(ctx, &ast.Source{
		Name:  schemaPath,
		Input: string(b),
	}, cfg)
}
