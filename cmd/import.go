package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/alexiusacademia/gochimney/internal/project"
	"github.com/alexiusacademia/gochimney/internal/report"
	"github.com/alexiusacademia/gochimney/internal/workbook"
)

var (
	importDesign designFlags
	importOutput string
)

var importCmd = &cobra.Command{
	Use:   "import <grid.xlsx>",
	Short: "Create a project from a level grid in an XLSX workbook",
	Long: `Read a level grid from an XLSX workbook and save it as a project file.

The "Grid" sheet is used when present, otherwise the first sheet. The header
row names the columns; elevation, outer_diameter and inner_diameter are
required, and thickness, density, platform_load, liner_load and corbel_load
are optional. Headers such as "Outer Diameter (m)" are accepted. Levels run
from the top of the chimney down to the base.

The global parameters come from --config and the command line flags.

Examples:
  gochimney import survey.xlsx -o stack.json --zone IV`,
	Args: cobra.ExactArgs(1),
	RunE: runImport,
}

func init() {
	rootCmd.AddCommand(importCmd)

	importDesign.register(importCmd)
	importCmd.Flags().StringVarP(&importOutput, "output", "o", "", "Project file to write (.json, .yaml or .toml) [required]")
	importCmd.MarkFlagRequired("output")
}

func runImport(cmd *cobra.Command, args []string) error {
	logger := loggerFromContext(cmd.Context())

	grid, err := report.ImportGridFile(args[0])
	if err != nil {
		return err
	}
	p, err := importDesign.params(cmd)
	if err != nil {
		return err
	}

	// The imported stations replace the generator's
	p.Geometry.Elevations = make([]float64, len(grid))
	for i, r := range grid {
		p.Geometry.Elevations[i] = r.Elevation
	}
	p.Geometry.TotalHeight = grid[0].Elevation - grid[len(grid)-1].Elevation

	doc := project.New(importDesign.name, p, project.ToTable(grid))
	wb, err := workbook.Open(doc, logger)
	if err != nil {
		return err
	}
	if err := wb.Save(importOutput); err != nil {
		return err
	}

	res := wb.Result()
	fmt.Fprintf(cmd.OutOrStdout(), "  %d levels imported from %s to %s (%s self-weight, %d in tension)\n",
		len(grid), args[0], importOutput, res.Policy, len(res.TensionLevels))
	return nil
}
