package main

import (
	"github.com/spf13/cobra"
	"github.com/zeebo/errs"
)

func newConfigCommand(root *rootConfig) *cobra.Command {
	return &cobra.Command{
		Use:   "config",
		Short: "Print the effective configuration as TOML",
		Args: func(cmd *cobra.Command, args []string) error {
			if len(args) > 0 {
				return usageErr.New("config takes no arguments")
			}
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := root.load(cmd)
			if err != nil {
				return err
			}
			b, err := cfg.Marshal()
			if err != nil {
				return err
			}
			_, err = cmd.OutOrStdout().Write(b)
			return errs.Wrap(err)
		},
	}
}
