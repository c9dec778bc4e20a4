package main

import (
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/vango-dev/proton/internal/config"
	"github.com/vango-dev/proton/internal/errors"
)

func initCmd() *cobra.Command {
	var (
		yamlFormat bool
		force      bool
		dir        string
	)

	cmd := &cobra.Command{
		Use:   "init",
		Short: "Write a default config file",
		Long: `Write proton.json (or proton.yaml with --yaml) holding every
setting at its default value.

Examples:
  proton init
  proton init --yaml --dir=./bench`,
		// init runs before any config exists.
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			if config.Exists(dir) && !force {
				return errors.Newf(errors.CategoryConfig, "config already exists in %s", dir).
					WithSuggestion("Pass --force to overwrite it.")
			}

			name := config.JSONFileName
			if yamlFormat {
				name = config.YAMLFileName
			}
			path := filepath.Join(dir, name)
			if err := config.Default().SaveTo(path); err != nil {
				return err
			}

			success(cmd.OutOrStdout(), "Wrote %s", path)
			return nil
		},
	}

	cmd.Flags().BoolVar(&yamlFormat, "yaml", false, "Write YAML instead of JSON")
	cmd.Flags().BoolVarP(&force, "force", "f", false, "Overwrite an existing config")
	cmd.Flags().StringVarP(&dir, "dir", "d", ".", "Directory to write into")

	return cmd
}
