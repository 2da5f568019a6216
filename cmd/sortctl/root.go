package main

import (
	"github.com/spf13/cobra"

	"github.com/target/sortparam/config"
	"github.com/target/sortparam/internal/bootstrap"
	"github.com/target/sortparam/internal/service/sortcodec"
)

// rootOptions are the persistent flags shared by every subcommand.
// Flags left empty fall back to the environment configuration.
type rootOptions struct {
	parameter string
	delimiter string
	loadEnv   bool

	cfg *config.AppConfig
}

func newRootCmd() *cobra.Command {
	opts := &rootOptions{}
	cmd := &cobra.Command{
		Use:           "sortctl",
		Short:         "Parse, fold and inspect sort request parameters",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	pf := cmd.PersistentFlags()
	pf.StringVar(&opts.parameter, "parameter", "", "sort parameter name (default from SORT_PARAMETER)")
	pf.StringVarP(&opts.delimiter, "delimiter", "d", "", "property delimiter (default from SORT_PROPERTY_DELIMITER)")
	pf.BoolVar(&opts.loadEnv, "env", true, "read SORT_* and DB_* settings from the environment and .env")

	cmd.AddCommand(
		newParseCmd(opts),
		newFoldCmd(opts),
		newDefaultsCmd(opts),
		newMigrateCmd(opts),
		newVersionCmd(),
	)
	return cmd
}

// config returns the effective configuration, loading it once.
func (o *rootOptions) config() (*config.AppConfig, error) {
	if o.cfg != nil {
		return o.cfg, nil
	}

	cfg := config.AppConfig{Sort: config.DefaultSortConfig()}
	if o.loadEnv {
		loaded, err := bootstrap.LoadConfig()
		if err != nil {
			return nil, err
		}
		cfg = loaded
	} else {
		cfg.Sanitize()
	}

	if o.parameter != "" {
		cfg.Sort.Parameter = o.parameter
	}
	if o.delimiter != "" {
		cfg.Sort.PropertyDelimiter = o.delimiter
	}
	o.cfg = &cfg
	return o.cfg, nil
}

func (o *rootOptions) codec() (*sortcodec.Codec, error) {
	cfg, err := o.config()
	if err != nil {
		return nil, err
	}
	return sortcodec.NewCodec(cfg.Sort)
}
