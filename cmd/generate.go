package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/alexiusacademia/gochimney/internal/diagram"
	"github.com/alexiusacademia/gochimney/internal/workbook"
)

var (
	generateDesign designFlags
	generateOutput string
)

var generateCmd = &cobra.Command{
	Use:   "generate",
	Short: "Generate the level grid of a chimney and save it as a project",
	Long: `Generate the level grid from the top of the shell down to the base and
save it as a project file. The grid can then be edited (platform, liner and
corbel loads, diameters, thickness) and analysed.

Levels are spaced by --step from the total height down to 0. With
--legacy-levels the fixed station list of the reference chimney is used
instead. Inner diameters grow downward by 2·depth/X for a 1:X taper.

Examples:
  # Reference 30 m cylindrical chimney
  gochimney generate -o stack.json

  # 45 m tapered chimney, 3 m lifts, as YAML
  gochimney generate -H 45 -d 2.2 --taper 60 --step 3 -o stack.yaml`,
	Args: cobra.NoArgs,
	RunE: runGenerate,
}

func init() {
	rootCmd.AddCommand(generateCmd)

	generateDesign.register(generateCmd)
	generateCmd.Flags().StringVarP(&generateOutput, "output", "o", "", "Project file to write (.json, .yaml or .toml) [required]")
	generateCmd.MarkFlagRequired("output")
}

func runGenerate(cmd *cobra.Command, args []string) error {
	p, err := generateDesign.params(cmd)
	if err != nil {
		return err
	}
	wb, err := workbook.New(generateDesign.name, p, loggerFromContext(cmd.Context()))
	if err != nil {
		return err
	}
	if err := wb.Save(generateOutput); err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	fmt.Fprint(out, diagram.DrawShellElevation(wb.Result().Table))
	fmt.Fprintf(out, "\n  %d levels written to %s\n\n", len(wb.Grid()), generateOutput)
	return nil
}
