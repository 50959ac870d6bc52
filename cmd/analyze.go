package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/alexiusacademia/gochimney/internal/diagram"
)

var (
	analyzeDesign  designFlags
	analyzeExport  exportFlags
	analyzeDiagram bool
	analyzeSave    string
)

var analyzeCmd = &cobra.Command{
	Use:   "analyze [project file]",
	Short: "Run the full chimney calculation",
	Long: `Run the complete level-wise calculation of an RC chimney: dead loads,
wind loads (IS 875 Part 3), seismic loads (IS 1893) and the extreme fibre
stress check.

The chimney is read from a project file (.json, .yaml or .toml) when one is
given, and flags set on the command line override its stored parameters.
Geometry flags rebuild its grid. Otherwise the level grid is generated from
--config and the command line flags.

Examples:
  # Reference 30 m cylindrical chimney
  gochimney analyze

  # 45 m chimney tapering 1 in 60, seismic zone IV, with a PDF report
  gochimney analyze -H 45 -d 2.2 --taper 60 --zone IV --pdf stack.pdf

  # Saved project with ASCII diagrams and an XLSX workbook
  gochimney analyze stack.json --diagram --xlsx stack.xlsx`,
	Args: cobra.MaximumNArgs(1),
	RunE: runAnalyze,
}

func init() {
	rootCmd.AddCommand(analyzeCmd)

	analyzeDesign.register(analyzeCmd)
	analyzeExport.register(analyzeCmd)
	analyzeCmd.Flags().BoolVar(&analyzeDiagram, "diagram", false, "Print ASCII shell, moment and stress diagrams")
	analyzeCmd.Flags().StringVarP(&analyzeSave, "output", "o", "", "Save the analysed chimney as a project file")
}

func runAnalyze(cmd *cobra.Command, args []string) error {
	wb, err := openWorkbook(cmd, args, &analyzeDesign)
	if err != nil {
		return err
	}
	res := wb.Result()
	out := cmd.OutOrStdout()

	printHeading(out, "RC CHIMNEY ANALYSIS - IS 4998 / IS 875 / IS 1893")
	printInputs(out, wb.Document().Meta.Name, wb.Params(), res)
	printGeometry(out, res.Table)
	printWind(out, res.Table)
	printSeismic(out, res)
	printStress(out, res.Table)

	fmt.Fprint(out, diagram.DrawSummaryBox("DESIGN SUMMARY", summaryLines(res)))
	fmt.Fprintln(out)

	if analyzeDiagram {
		fmt.Fprint(out, diagram.DrawShellElevation(res.Table))
		fmt.Fprintln(out)
		fmt.Fprintln(out, diagram.DrawMomentProfile(res.Table))
		fmt.Fprintln(out)
		fmt.Fprintln(out, diagram.DrawStressProfile(res.Table))
		fmt.Fprintln(out)
	}

	if analyzeSave != "" {
		if err := wb.Save(analyzeSave); err != nil {
			return err
		}
	}
	return analyzeExport.write(cmd, wb)
}
