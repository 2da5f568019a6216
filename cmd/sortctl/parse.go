package main

import (
	"encoding/json"
	"fmt"
	"io"
	"net/url"

	"github.com/spf13/cobra"

	"github.com/target/sortparam/internal/domain/model"
	httpx "github.com/target/sortparam/internal/http"
)

func newParseCmd(root *rootOptions) *cobra.Command {
	var asJSON bool
	cmd := &cobra.Command{
		Use:   "parse VALUE...",
		Short: "Parse sort parameter values into an ordered sort",
		Example: `  sortctl parse firstname,lastname,asc age,desc
  sortctl parse --json 'name,DESC'`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			codec, err := root.codec()
			if err != nil {
				return err
			}
			return writeSort(cmd.OutOrStdout(), codec.Parse(args), asJSON)
		},
	}
	cmd.Flags().BoolVar(&asJSON, "json", false, "print the sort as JSON")
	return cmd
}

func writeSort(w io.Writer, s model.Sort, asJSON bool) error {
	if asJSON {
		enc := json.NewEncoder(w)
		return enc.Encode(s)
	}
	_, err := fmt.Fprintln(w, s.String())
	return err
}

type foldOptions struct {
	legacy    bool
	qualifier string
	query     bool
}

func newFoldCmd(root *rootOptions) *cobra.Command {
	opts := foldOptions{}
	cmd := &cobra.Command{
		Use:   "fold VALUE...",
		Short: "Parse sort parameter values and fold them back into canonical expressions",
		Example: `  sortctl fold a a,b,desc
  sortctl fold --legacy --query name,asc`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			codec, err := root.codec()
			if err != nil {
				return err
			}
			s := codec.Parse(args)

			var expressions []string
			if opts.legacy {
				expressions, err = codec.LegacyFold(s)
				if err != nil {
					return err
				}
			} else {
				expressions = codec.Fold(s)
			}

			out := cmd.OutOrStdout()
			if opts.query {
				q := httpx.AppendSortParams(url.Values{}, codec.ParameterName(opts.qualifier), expressions)
				_, err = fmt.Fprintln(out, q.Encode())
				return err
			}
			for _, e := range expressions {
				if _, err := fmt.Fprintln(out, e); err != nil {
					return err
				}
			}
			return nil
		},
	}
	fs := cmd.Flags()
	fs.BoolVar(&opts.legacy, "legacy", false, "fold into a single expression; fails on mixed directions")
	fs.BoolVar(&opts.query, "query", false, "print an encoded query string instead of one expression per line")
	fs.StringVar(&opts.qualifier, "qualifier", "", "qualifier prefixed to the parameter name with --query")
	return cmd
}
