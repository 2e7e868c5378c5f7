package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/marcus/splitview/internal/output"
	"github.com/marcus/splitview/pkg/splitpane"
)

var checkCmd = &cobra.Command{
	Use:   "check <size>...",
	Short: "Parse size expressions and show the styles they produce",
	Long: `Parse one or more size expressions ("240px", "30%", "2rem", "5") and
print the magnitude, unit, and the inline style each would produce for a
pane. Exits non-zero if any expression is invalid.`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		orientationFlag, _ := cmd.Flags().GetString("orientation")
		minFlag, _ := cmd.Flags().GetString("min")

		orientation, err := splitpane.ParseOrientation(orientationFlag)
		if err != nil {
			output.Error("%v", err)
			return err
		}
		min, err := splitpane.ParseSize(minFlag)
		if err != nil {
			output.Error("min size: %v", err)
			return err
		}

		var firstErr error
		for _, expr := range args {
			size, err := splitpane.ParseSize(expr)
			if err != nil {
				output.Error("%q: %v", expr, err)
				if firstErr == nil {
					firstErr = err
				}
				continue
			}

			if size.IsEmpty() {
				fmt.Printf("%-10s flex-fill\n", quoted(expr))
			} else {
				fmt.Printf("%-10s magnitude=%d unit=%s\n", quoted(expr), size.Magnitude, size.Unit)
			}
			fmt.Printf("%-10s style: %s\n", "", splitpane.ComputeStyle(size, min, orientation))
		}
		return firstErr
	},
}

func quoted(s string) string {
	return fmt.Sprintf("%q", s)
}

func init() {
	rootCmd.AddCommand(checkCmd)

	checkCmd.Flags().StringP("orientation", "o", "vertical", "Orientation to compute styles for (vertical|horizontal)")
	checkCmd.Flags().String("min", "", "Minimum size expression to include in the style")
}
