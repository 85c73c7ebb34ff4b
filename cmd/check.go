package cmd

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/cmmoran/flugen/pkg/action/check"
)

// ErrDrift is returned by check when any companion is out of date.
var ErrDrift = errors.New("generated units are out of date")

func init() {
	rootCmd.AddCommand(NewCheckCommand())
}

func NewCheckCommand() *cobra.Command {
	var quiet bool

	// checkCmd represents the flugen check command
	var checkCmd = &cobra.Command{
		Use:   "check",
		Short: "verify companions are current",
		Long:  "Render every unit in memory and fail when a generated companion differs from the file on disk",
		Args:  cobra.NoArgs,
		RunE: func(c *cobra.Command, args []string) error {
			opts, err := loadOptions(c)
			if err != nil {
				return err
			}
			drifts, err := check.Check(c.Context(), opts)
			if err != nil {
				return err
			}
			out := c.OutOrStdout()
			for _, d := range drifts {
				if d.Err != nil {
					_, _ = fmt.Fprintf(out, "%s: unable to check: %v\n", d.Source, d.Err)
					continue
				}
				_, _ = fmt.Fprintf(out, "%s: %s is out of date\n", d.Source, d.Output)
				if !quiet {
					_, _ = fmt.Fprintf(out, "%s\n", d.Diff)
				}
			}
			if len(drifts) > 0 {
				return fmt.Errorf("%w: %s", ErrDrift, plural(len(drifts), "unit"))
			}
			return nil
		},
	}
	addOptionFlags(checkCmd)
	checkCmd.Flags().BoolVarP(&quiet, "quiet", "q", false, "list drifted units without diffs")

	return checkCmd
}
