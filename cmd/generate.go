package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/cmmoran/flugen/pkg/action/generate"
)

func init() {
	rootCmd.AddCommand(NewGenerateCommand())
}

func NewGenerateCommand() *cobra.Command {
	// generateCmd represents the flugen generate command
	var generateCmd = &cobra.Command{
		Use:     "generate",
		Aliases: []string{"gen"},
		Short:   "generate companions",
		Long:    "Generate the companion part file of every discovered unit that declares @flu classes",
		Args:    cobra.NoArgs,
		RunE: func(c *cobra.Command, args []string) error {
			opts, err := loadOptions(c)
			if err != nil {
				return err
			}
			r, err := generate.Generate(c.Context(), opts)
			if err != nil {
				return err
			}
			_, _ = fmt.Fprintln(c.OutOrStdout(), summarize(r))
			return r.Err()
		},
	}
	addOptionFlags(generateCmd)

	return generateCmd
}
