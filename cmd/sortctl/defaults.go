package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"github.com/target/sortparam/config"
	"github.com/target/sortparam/internal/bootstrap"
	"github.com/target/sortparam/internal/domain/model"
	"github.com/target/sortparam/internal/service"
)

const defaultCommandTimeout = 30 * time.Second

type defaultsOptions struct {
	file   string
	asJSON bool
}

func newDefaultsCmd(root *rootOptions) *cobra.Command {
	opts := &defaultsOptions{}
	cmd := &cobra.Command{
		Use:   "defaults",
		Short: "Inspect per-site default sort declarations",
	}
	cmd.PersistentFlags().StringVarP(&opts.file, "file", "f", "", "read defaults from this YAML file instead of SORT_DEFAULTS_SOURCE")
	cmd.PersistentFlags().BoolVar(&opts.asJSON, "json", false, "print JSON")

	cmd.AddCommand(
		newDefaultsListCmd(root, opts),
		&cobra.Command{
			Use:   "show SITE",
			Short: "Show the declarations stored for a site",
			Args:  cobra.ExactArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				return withDefaultsService(cmd.Context(), root, opts, func(ctx context.Context, svc *service.SortDefaultsService) error {
					d, err := svc.Get(ctx, args[0])
					if err != nil {
						return err
					}
					if opts.asJSON {
						return json.NewEncoder(cmd.OutOrStdout()).Encode(d)
					}
					return writeDefaultsTable(cmd.OutOrStdout(), []*model.SortDefaults{d})
				})
			},
		},
		&cobra.Command{
			Use:   "resolve SITE",
			Short: "Show the sort a site resolves to when a request has no sort parameter",
			Args:  cobra.ExactArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				return withDefaultsService(cmd.Context(), root, opts, func(ctx context.Context, svc *service.SortDefaultsService) error {
					s, err := svc.Resolve(ctx, args[0])
					if err != nil {
						return err
					}
					if s == nil {
						_, err = fmt.Fprintln(cmd.OutOrStdout(), "no sort (fallback disabled)")
						return err
					}
					return writeSort(cmd.OutOrStdout(), *s, opts.asJSON)
				})
			},
		},
	)
	return cmd
}

func newDefaultsListCmd(root *rootOptions, opts *defaultsOptions) *cobra.Command {
	var (
		sortExprs []string
		filter    string
	)
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List sites with stored defaults",
		Example: `  sortctl defaults list -f defaults.yaml
  sortctl defaults list -f defaults.yaml --sort updated,desc --filter user`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			codec, err := root.codec()
			if err != nil {
				return err
			}
			listOpts := model.SortDefaultsListOptions{Sort: codec.Parse(sortExprs)}
			if filter = strings.TrimSpace(filter); filter != "" {
				listOpts.Q = &filter
			}
			return withDefaultsService(cmd.Context(), root, opts, func(ctx context.Context, svc *service.SortDefaultsService) error {
				page, err := svc.List(ctx, listOpts)
				if err != nil {
					return err
				}
				if opts.asJSON {
					return json.NewEncoder(cmd.OutOrStdout()).Encode(page.Items)
				}
				return writeDefaultsTable(cmd.OutOrStdout(), page.Items)
			})
		},
	}
	cmd.Flags().StringArrayVar(&sortExprs, "sort", nil, "order by site and/or updated, e.g. updated,desc (repeatable)")
	cmd.Flags().StringVar(&filter, "filter", "", "only list sites containing this text")
	return cmd
}

// withDefaultsService wires the configured repository, runs fn and releases connections.
func withDefaultsService(
	ctx context.Context,
	root *rootOptions,
	opts *defaultsOptions,
	fn func(context.Context, *service.SortDefaultsService) error,
) error {
	cfg, err := root.config()
	if err != nil {
		return err
	}
	if opts.file != "" {
		cfg.Defaults.Source = config.DefaultsSourceFile
		cfg.Defaults.File = opts.file
		cfg.Defaults.CacheEnabled = false
	}
	if cfg.Defaults.Source == config.DefaultsSourceNone {
		return errors.New("no defaults source configured; set SORT_DEFAULTS_SOURCE or pass --file")
	}

	if ctx == nil {
		ctx = context.Background()
	}
	ctx, cancel := context.WithTimeout(ctx, defaultCommandTimeout)
	defer cancel()

	logger := slog.New(slog.DiscardHandler)
	infra, err := bootstrap.ConnectInfrastructure(ctx, cfg, logger)
	if err != nil {
		return err
	}
	defer func() { _ = infra.Close() }()

	services, err := bootstrap.NewServices(&bootstrap.ServiceDeps{Config: cfg, DB: infra.DB, Redis: infra.Redis, Logger: logger})
	if err != nil {
		return err
	}
	return fn(ctx, services.SortDefaults)
}

func writeDefaultsTable(w io.Writer, all []*model.SortDefaults) error {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	if _, err := fmt.Fprintln(tw, "SITE\tFORM\tDECLARATIONS\tUPDATED"); err != nil {
		return err
	}
	for _, d := range all {
		form, decls := describeDefaults(d)
		updated := "-"
		if !d.UpdatedAt.IsZero() {
			updated = d.UpdatedAt.Format(time.RFC3339)
		}
		if _, err := fmt.Fprintf(tw, "%s\t%s\t%s\t%s\n", d.Site, form, decls, updated); err != nil {
			return err
		}
	}
	return tw.Flush()
}

func describeDefaults(d *model.SortDefaults) (string, string) {
	var parts []string
	if d.HasSingle() {
		parts = append(parts, d.Single.Sort().String())
	}
	for _, m := range d.Multiple {
		parts = append(parts, "["+m.Sort().String()+"]")
	}

	form := "none"
	switch {
	case d.HasSingle() && d.HasMultiple():
		form = "ambiguous"
	case d.HasSingle():
		form = "single"
	case d.HasMultiple():
		form = "multiple"
	}
	if len(parts) == 0 {
		return form, "UNSORTED"
	}
	return form, strings.Join(parts, " ")
}

func newMigrateCmd(root *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Apply the sort_defaults schema migrations to DB_* database",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := root.config()
			if err != nil {
				return err
			}
			ctx := cmd.Context()
			if ctx == nil {
				ctx = context.Background()
			}
			ctx, cancel := context.WithTimeout(ctx, 5*time.Minute)
			defer cancel()

			db, err := bootstrap.ConnectDB(ctx, bootstrap.DatabaseConfig{DBConfig: cfg.Postgres})
			if err != nil {
				return err
			}
			defer func() { _ = db.Close() }()

			if err := bootstrap.RunMigrations(ctx, db, nil); err != nil {
				return err
			}
			_, err = fmt.Fprintln(cmd.OutOrStdout(), "migrations applied")
			return err
		},
	}
}
