package cmd

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/alexiusacademia/gochimney/internal/iscode"
)

var materialGrade string

var materialCmd = &cobra.Command{
	Use:   "material",
	Short: "Show the concrete grade constants",
	Long: `Show the permissible compressive stress in bending (σcbc), modular ratio
m = 280/(3·σcbc) and elastic modulus Ec = 5700·√fck of the supported concrete
grades.

Examples:
  gochimney material
  gochimney material --grade M35`,
	Args: cobra.NoArgs,
	RunE: runMaterial,
}

func init() {
	rootCmd.AddCommand(materialCmd)
	materialCmd.Flags().StringVarP(&materialGrade, "grade", "g", "", "Show a single grade")
}

func runMaterial(cmd *cobra.Command, args []string) error {
	grades := iscode.Grades()
	if materialGrade != "" {
		g, err := iscode.Grade(materialGrade)
		if err != nil {
			return err
		}
		grades = []string{g.Grade}
	}

	out := cmd.OutOrStdout()
	printHeading(out, "CONCRETE GRADES - IS 456 / IS 4998")

	tw := tabwriter.NewWriter(out, 0, 0, 2, ' ', tabwriter.AlignRight)
	fmt.Fprintln(tw, "Grade\tfck (MPa)\tσcbc (MPa)\tσcbc (t/m²)\tm\tEc (MPa)\tEc (t/m²)\t")
	for _, name := range grades {
		g, err := iscode.Grade(name)
		if err != nil {
			return err
		}
		fmt.Fprintf(tw, "%s\t%.0f\t%.1f\t%.2f\t%.2f\t%.0f\t%.0f\t\n",
			g.Grade, g.Fck, g.Sigma, g.SigmaTonne, g.ModularRatio, g.Ec, g.EcTonne)
	}
	tw.Flush()
	fmt.Fprintln(out)
	return nil
}
