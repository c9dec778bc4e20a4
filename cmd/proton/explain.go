package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/vango-dev/proton/internal/errors"
)

func explainCmd() *cobra.Command {
	var list bool

	cmd := &cobra.Command{
		Use:   "explain [CODE]",
		Short: "Describe an error code",
		Long: `Print the explanation and fix hint for an error code.

Examples:
  proton explain R001
  proton explain --list`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()

			if list || len(args) == 0 {
				for _, code := range errors.GetAllCodes() {
					tmpl, _ := errors.GetTemplate(code)
					fmt.Fprintf(out, "  %s  %-8s %s\n", code, tmpl.Category, tmpl.Message)
				}
				return nil
			}

			code := strings.ToUpper(args[0])
			if _, ok := errors.GetTemplate(code); !ok {
				return errors.New("X001").
					WithDetail(fmt.Sprintf("%q is not a known error code.", args[0])).
					WithSuggestion("Run 'proton explain --list' to see every code.")
			}

			fmt.Fprint(out, errors.New(code).Format())
			return nil
		},
	}

	cmd.Flags().BoolVarP(&list, "list", "l", false, "List every error code")

	return cmd
}
